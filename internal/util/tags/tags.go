// Package tags provides tag normalization helpers shared by the store,
// the repository, and the CLI.
package tags

import (
	"sort"
	"strings"
)

// Tagged is anything that carries a tag list.
type Tagged interface {
	TagList() []string
}

// ExtractUnique collects every tag from the given items, drops empty
// values, deduplicates, and sorts for stable display.
func ExtractUnique[T Tagged](items []T) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		for _, tag := range item.TagList() {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			seen[tag] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// Union merges tag lists, dropping empties and duplicates, sorted.
func Union(lists ...[]string) []string {
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, tag := range list {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			seen[tag] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// Normalize trims whitespace and drops empty entries, preserving order
// and first occurrence of duplicates.
func Normalize(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// ParseCommaSeparated splits a comma-separated tag flag value into a
// normalized tag list.
func ParseCommaSeparated(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return Normalize(strings.Split(s, ","))
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for tag := range set {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
