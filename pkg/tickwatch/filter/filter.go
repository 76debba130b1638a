// Package filter selects watch-list symbols by expression.
package filter

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Filter matches a ticker symbol.
type Filter interface {
	Match(sym string) bool
}

// Parse builds a filter from an expression:
//   - comma-separated exact symbols: "AAPL,MSFT"
//   - glob: "BRK*"
//   - regex: "/^[AB]/"
//   - anything else: case-insensitive substring
//
// An empty expression matches everything.
func Parse(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Always(true), nil
	}
	if strings.HasPrefix(expr, "/") && strings.HasSuffix(expr, "/") && len(expr) > 2 {
		re, err := regexp.Compile(expr[1 : len(expr)-1])
		if err != nil {
			return nil, err
		}
		return regex{re: re}, nil
	}
	if strings.Contains(expr, ",") {
		set := map[string]struct{}{}
		for _, p := range strings.Split(expr, ",") {
			p = strings.ToUpper(strings.TrimSpace(p))
			if p == "" {
				continue
			}
			set[p] = struct{}{}
		}
		return exactSet{set: set}, nil
	}
	if strings.ContainsAny(expr, "*?") {
		return glob{pattern: strings.ToUpper(expr)}, nil
	}
	return substr{needle: strings.ToUpper(expr)}, nil
}

// Always matches everything (true) or nothing (false).
type Always bool

func (a Always) Match(string) bool { return bool(a) }

type exactSet struct{ set map[string]struct{} }

func (e exactSet) Match(sym string) bool {
	_, ok := e.set[strings.ToUpper(sym)]
	return ok
}

type glob struct{ pattern string }

func (g glob) Match(sym string) bool {
	ok, _ := filepath.Match(g.pattern, strings.ToUpper(sym))
	return ok
}

type regex struct{ re *regexp.Regexp }

func (r regex) Match(sym string) bool { return r.re.MatchString(sym) }

type substr struct{ needle string }

func (s substr) Match(sym string) bool {
	return strings.Contains(strings.ToUpper(sym), s.needle)
}
