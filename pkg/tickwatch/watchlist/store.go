// Package watchlist owns the ordered, duplicate-free sequence of ticker
// symbols and its line-oriented file persistence.
package watchlist

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEmptySymbol reports an add with nothing left after trimming.
var ErrEmptySymbol = errors.New("empty ticker symbol")

// Store is the sole source of truth for which tickers exist. Insertion
// order is preserved and determines table and export row order.
type Store struct {
	path string
	syms []string
	idx  map[string]struct{}
}

// NewStore returns an empty store backed by the file at path. The file is
// not touched until Load or Persist.
func NewStore(path string) *Store {
	return &Store{path: path, idx: map[string]struct{}{}}
}

// Load reads the backing file, one symbol per line, upper-casing and
// trimming each, dropping blanks and duplicates while preserving first-seen
// order. A missing file leaves the store empty without error.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", s.path, err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		sym := Normalize(line)
		if sym == "" {
			continue
		}
		if _, dup := s.idx[sym]; dup {
			continue
		}
		s.syms = append(s.syms, sym)
		s.idx[sym] = struct{}{}
	}
	return nil
}

// Add appends the normalized symbol. It returns false when the symbol is
// already present, and ErrEmptySymbol when nothing remains after trimming.
// The caller persists after a successful add.
func (s *Store) Add(sym string) (bool, error) {
	sym = Normalize(sym)
	if sym == "" {
		return false, ErrEmptySymbol
	}
	if _, dup := s.idx[sym]; dup {
		return false, nil
	}
	s.syms = append(s.syms, sym)
	s.idx[sym] = struct{}{}
	return true, nil
}

// Clear empties the sequence. The caller persists afterwards.
func (s *Store) Clear() {
	s.syms = nil
	s.idx = map[string]struct{}{}
}

// Persist overwrites the backing file with one symbol per line in current
// order, keeping file and memory consistent after every mutation.
func (s *Store) Persist() error {
	var b strings.Builder
	for _, sym := range s.syms {
		b.WriteString(sym)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// Symbols returns the symbols in insertion order. The slice is a copy.
func (s *Store) Symbols() []string {
	return append([]string(nil), s.syms...)
}

// Len reports the number of symbols.
func (s *Store) Len() int { return len(s.syms) }

// Contains reports whether the normalized symbol is present.
func (s *Store) Contains(sym string) bool {
	_, ok := s.idx[Normalize(sym)]
	return ok
}

// Normalize trims surrounding whitespace and upper-cases a symbol.
func Normalize(sym string) string {
	return strings.ToUpper(strings.TrimSpace(sym))
}
