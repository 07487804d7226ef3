package view

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/noobCode-69/reusable-table/pkg/types"
)

// matcher holds a prepared search term. A cases.Caser is stateful, so each
// matcher owns one and must not be shared between goroutines.
type matcher struct {
	caser  cases.Caser
	needle string
}

func newMatcher(term string) *matcher {
	m := &matcher{caser: cases.Lower(language.Und)}
	m.needle = m.normalize(term)
	return m
}

func (m *matcher) normalize(s string) string {
	return strings.TrimSpace(m.caser.String(s))
}

// match reports whether any field of the row contains the needle. The
// Selected and Editable flags are not fields and never match.
func (m *matcher) match(r types.Row) bool {
	if m.needle == "" {
		return true
	}
	for _, v := range r.Record {
		if strings.Contains(m.normalize(Text(v)), m.needle) {
			return true
		}
	}
	return false
}

// Matches reports whether a single row matches the search term.
func Matches(r types.Row, term string) bool {
	return newMatcher(term).match(r)
}

// Filter returns the rows that match term, in their original order. An empty
// (or blank) term returns every row. The result is a new slice; its rows
// share records with the input.
func Filter(rows []types.Row, term string) []types.Row {
	if rows == nil {
		return nil
	}
	idx := FilterIndex(rows, term)
	out := make([]types.Row, len(idx))
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out
}

// FilterIndex is Filter expressed as positions into rows, so callers can
// map a derived view back onto the rows it came from.
func FilterIndex(rows []types.Row, term string) []int {
	m := newMatcher(term)
	out := make([]int, 0, len(rows))
	for i, r := range rows {
		if m.match(r) {
			out = append(out, i)
		}
	}
	return out
}
