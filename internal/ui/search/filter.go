package search

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"unibooks/internal/domain"
)

// Policy decides what a blank query shows
type Policy int

const (
	// PolicyShowAll lists every item until the user types
	PolicyShowAll Policy = iota
	// PolicyHideUntilTyped lists nothing until the user types
	PolicyHideUntilTyped
)

// ParsePolicy maps a config value onto a Policy
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "show_all", "":
		return PolicyShowAll, nil
	case "hide_until_typed":
		return PolicyHideUntilTyped, nil
	default:
		return 0, fmt.Errorf("unknown empty query policy %q", s)
	}
}

func (p Policy) String() string {
	if p == PolicyHideUntilTyped {
		return "hide_until_typed"
	}
	return "show_all"
}

// Group is one category section of the results
type Group struct {
	Config domain.CategoryConfig
	Items  []domain.SearchItem
}

// Result is everything the dropdown needs to render one query
type Result struct {
	Query    string
	Filtered []domain.SearchItem
	Groups   []Group
	// Rows are the groups flattened in render order. The active cursor indexes this.
	Rows []domain.SearchItem

	ShowEmptyState     bool
	ShowNoResultsState bool
}

// fold is not safe for concurrent use, so each call builds its own caser
func fold(s string) string {
	return cases.Fold().String(s)
}

// IsBlank reports whether a query has nothing but whitespace
func IsBlank(query string) bool {
	return strings.TrimSpace(query) == ""
}

// Match checks title, subtitle and metadata for a case-insensitive substring
func Match(item domain.SearchItem, query string) bool {
	q := fold(strings.TrimSpace(query))
	return matchFolded(item, q)
}

func matchFolded(item domain.SearchItem, q string) bool {
	if strings.Contains(fold(item.Title), q) {
		return true
	}
	if item.Subtitle != "" && strings.Contains(fold(item.Subtitle), q) {
		return true
	}
	return item.Metadata != "" && strings.Contains(fold(item.Metadata), q)
}

// Filter returns the matching items in their original order
func Filter(items []domain.SearchItem, query string, policy Policy) []domain.SearchItem {
	if IsBlank(query) {
		if policy == PolicyHideUntilTyped {
			return []domain.SearchItem{}
		}
		out := make([]domain.SearchItem, len(items))
		copy(out, items)
		return out
	}

	q := fold(strings.TrimSpace(query))
	out := make([]domain.SearchItem, 0, len(items))
	for _, item := range items {
		if matchFolded(item, q) {
			out = append(out, item)
		}
	}
	return out
}

// GroupByCategory partitions items by category. Groups appear in first-seen
// order and items keep their relative order inside a group.
func GroupByCategory(items []domain.SearchItem) []Group {
	var groups []Group
	index := make(map[domain.Category]int)
	for _, item := range items {
		i, ok := index[item.Category]
		if !ok {
			i = len(groups)
			index[item.Category] = i
			groups = append(groups, Group{Config: domain.ConfigFor(item.Category)})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// Flatten lists the rows of groups in render order
func Flatten(groups []Group) []domain.SearchItem {
	var rows []domain.SearchItem
	for _, g := range groups {
		rows = append(rows, g.Items...)
	}
	return rows
}

// Evaluate runs filter and grouping for one query
func Evaluate(items []domain.SearchItem, query string, policy Policy) Result {
	filtered := Filter(items, query, policy)
	groups := GroupByCategory(filtered)
	rows := Flatten(groups)
	blank := IsBlank(query)

	return Result{
		Query:              query,
		Filtered:           filtered,
		Groups:             groups,
		Rows:               rows,
		ShowEmptyState:     blank && len(rows) == 0,
		ShowNoResultsState: !blank && len(filtered) == 0,
	}
}

// FormatNoResults fills the first {query} placeholder with the query as typed
func FormatNoResults(template, query string) string {
	return strings.Replace(template, "{query}", query, 1)
}
