// Package teams holds the team catalog served by the dashboard: the current
// team table, filtering, filter option lists and refresh with fallback to the
// last stored snapshot.
package teams

import (
	"sort"
	"strings"

	"courtmap/dashboard/pkg/dataset"
)

// Column names of the team workbook.
const (
	ColumnTeam    = "Team"
	ColumnCountry = "Country"
	ColumnLeague  = "League"
	ColumnSports  = "Sports"
)

// Filter selects teams. Empty fields do not filter.
type Filter struct {
	Country string `json:"country,omitempty"`
	League  string `json:"league,omitempty"`
	Sport   string `json:"sport,omitempty"`
	// Search is a comma-separated list of terms. A team matches when its name
	// contains any term, ignoring case.
	Search string `json:"search,omitempty"`
}

// IsZero reports whether f selects every team.
func (f Filter) IsZero() bool {
	return f.Country == "" && f.League == "" && f.Sport == "" && len(f.terms()) == 0
}

// Apply returns the records of ds matching f, in their original order.
func (f Filter) Apply(ds dataset.Dataset) dataset.Dataset {
	terms := f.terms()
	out := make(dataset.Dataset, 0, len(ds))
	for _, r := range ds {
		if f.Country != "" && r.Text(ColumnCountry) != f.Country {
			continue
		}
		if f.League != "" && r.Text(ColumnLeague) != f.League {
			continue
		}
		if f.Sport != "" && r.Text(ColumnSports) != f.Sport {
			continue
		}
		if len(terms) > 0 && !matchesAny(strings.ToLower(r.Text(ColumnTeam)), terms) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// terms returns the lower-cased, trimmed, non-empty search terms.
func (f Filter) terms() []string {
	if f.Search == "" {
		return nil
	}
	var terms []string
	for _, t := range strings.Split(f.Search, ",") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

func matchesAny(name string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(name, t) {
			return true
		}
	}
	return false
}

// Options are the values offered by the dashboard's filter controls.
type Options struct {
	Countries []string `json:"countries"`
	Leagues   []string `json:"leagues"`
	Sports    []string `json:"sports"`
}

// BuildOptions collects the sorted distinct non-empty countries, leagues and
// sports of ds.
func BuildOptions(ds dataset.Dataset) Options {
	return Options{
		Countries: distinct(ds, ColumnCountry),
		Leagues:   distinct(ds, ColumnLeague),
		Sports:    distinct(ds, ColumnSports),
	}
}

func distinct(ds dataset.Dataset, column string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range ds {
		v := r.Text(column)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Find returns the first team whose name is exactly name.
func Find(ds dataset.Dataset, name string) (*dataset.Record, bool) {
	for _, r := range ds {
		if r.Text(ColumnTeam) == name {
			return r, true
		}
	}
	return nil, false
}
