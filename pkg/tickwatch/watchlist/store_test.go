package watchlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddNormalizesAndDeduplicates(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "tickers.txt"))

	ok, err := s.Add("  aapl ")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"AAPL"}, s.Symbols())

	// Same symbol in different case and whitespace is a duplicate.
	ok, err = s.Add("AAPL")
	require.NoError(t, err)
	require.False(t, ok)
	ok, err = s.Add(" aApL\t")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, []string{"AAPL"}, s.Symbols())
}

func TestAddEmptyIsError(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "tickers.txt"))
	_, err := s.Add("   ")
	require.ErrorIs(t, err, ErrEmptySymbol)
	require.Zero(t, s.Len())
}

func TestPersistLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickers.txt")
	s := NewStore(path)
	for _, sym := range []string{"AAPL", "MSFT", "BRK-B"} {
		_, err := s.Add(sym)
		require.NoError(t, err)
	}
	require.NoError(t, s.Persist())

	fresh := NewStore(path)
	require.NoError(t, fresh.Load())
	require.Equal(t, []string{"AAPL", "MSFT", "BRK-B"}, fresh.Symbols())
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope.txt"))
	require.NoError(t, s.Load())
	require.Zero(t, s.Len())
}

func TestLoadSkipsBlanksAndDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickers.txt")
	require.NoError(t, os.WriteFile(path, []byte("aapl\n\n MSFT \naapl\nAAPL\n"), 0o644))

	s := NewStore(path)
	require.NoError(t, s.Load())
	require.Equal(t, []string{"AAPL", "MSFT"}, s.Symbols())
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickers.txt")
	s := NewStore(path)
	_, err := s.Add("AAPL")
	require.NoError(t, err)
	s.Clear()
	require.Zero(t, s.Len())
	require.NoError(t, s.Persist())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Empty(t, data)

	// Cleared symbols can be re-added.
	ok, err := s.Add("AAPL")
	require.NoError(t, err)
	require.True(t, ok)
}
