package watchlist

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlFile accepts the two common watchlist YAML shapes:
//
//	- sym: AAPL
//	- sym: MSFT
//
// or
//
//	watchlist:
//	  - sym: AAPL
//	  - MSFT
type yamlFile struct {
	Watchlist []yamlItem `yaml:"watchlist"`
}

type yamlItem struct {
	Sym string
}

func (it *yamlItem) UnmarshalYAML(node *yaml.Node) error {
	// A plain scalar is the symbol itself.
	if node.Kind == yaml.ScalarNode {
		it.Sym = node.Value
		return nil
	}
	var m struct {
		Sym string `yaml:"sym"`
	}
	if err := node.Decode(&m); err != nil {
		return err
	}
	it.Sym = m.Sym
	return nil
}

// ImportYAML merges the symbols from a watchlist YAML file into the store,
// in file order, skipping blanks and symbols already present. It returns
// the symbols actually added; the caller persists when any were.
func (s *Store) ImportYAML(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var items []yamlItem
	if err := yaml.Unmarshal(data, &items); err != nil {
		var f yamlFile
		if err2 := yaml.Unmarshal(data, &f); err2 != nil {
			return nil, fmt.Errorf("parse yaml %s: %w", path, err)
		}
		items = f.Watchlist
	}

	var added []string
	for _, it := range items {
		ok, err := s.Add(it.Sym)
		if err != nil {
			// Blank entries in the file are skipped, not fatal.
			continue
		}
		if ok {
			added = append(added, Normalize(it.Sym))
		}
	}
	return added, nil
}
