package search

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	titlefuzzy "github.com/sahilm/fuzzy"

	"github.com/mmcdole/hema/internal/domain"
)

// Filter returns the indexes of the items matching query.
//
// Title matches come first, ranked best-first by sahilm/fuzzy. Items whose
// title does not match but whose description has a word containing the
// query's characters in order follow, in list order. An empty query
// matches nothing.
func Filter(query string, items []domain.ListItem) []int {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = strings.ToLower(item.GetTitle())
	}

	matches := titlefuzzy.Find(strings.ToLower(query), titles)
	idx := make([]int, 0, len(matches))
	seen := make(map[int]bool, len(matches))
	for _, match := range matches {
		idx = append(idx, match.Index)
		seen[match.Index] = true
	}

	for i, item := range items {
		if seen[i] {
			continue
		}
		if matchesDescription(query, item.GetDescription()) {
			idx = append(idx, i)
		}
	}
	return idx
}

// matchesDescription reports whether any description word fuzzily contains query
func matchesDescription(query, description string) bool {
	if description == "" {
		return false
	}
	return len(fuzzy.FindFold(query, strings.Fields(description))) > 0
}
