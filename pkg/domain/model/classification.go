package model

import (
	"sort"
	"strings"
)

// Category is one formatting rule: a named group of path patterns and the
// command that formats files in that group.
type Category struct {
	Name     string   `json:"name" toml:"name" firestore:"name"`
	Suffixes []string `json:"suffixes,omitempty" toml:"suffixes" firestore:"suffixes,omitempty"`
	Prefixes []string `json:"prefixes,omitempty" toml:"prefixes" firestore:"prefixes,omitempty"`
	Command  []string `json:"command" toml:"command" firestore:"command"`
}

// Matches reports whether the given repository-relative path belongs to this
// category. A path matches when it ends with any of the suffixes or starts
// with any of the prefixes. A category without patterns matches nothing.
func (c *Category) Matches(path string) bool {
	for _, s := range c.Suffixes {
		if strings.HasSuffix(path, s) {
			return true
		}
	}
	for _, p := range c.Prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// CategoryMatch pairs a matched category with the changed files that fell
// into it.
type CategoryMatch struct {
	Category Category `json:"category" firestore:"category"`
	Files    []string `json:"files" firestore:"files"`
}

// Classify maps the changed files of a pull request onto the configured
// categories. Only categories with at least one matching file are returned,
// in the order the categories are declared. The file order of the input does
// not affect the result: matched files are sorted.
func Classify(categories []Category, files []string) []CategoryMatch {
	var matches []CategoryMatch
	for _, cat := range categories {
		var hit []string
		for _, f := range files {
			if cat.Matches(f) {
				hit = append(hit, f)
			}
		}
		if len(hit) == 0 {
			continue
		}
		sort.Strings(hit)
		matches = append(matches, CategoryMatch{Category: cat, Files: hit})
	}
	return matches
}
