package pokedex

import "strings"

// Filter keeps records whose name contains searchText and that carry at least
// one of the selected categories. An empty selection matches every record.
//
// Only the search text is lower-cased; record names are compared as stored.
// PokeAPI names are already lower case, so this matches case-insensitively in
// practice but not for arbitrary input.
func Filter(records []Record, searchText string, selected []string) []Record {
	needle := strings.ToLower(searchText)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if !strings.Contains(r.Name, needle) {
			continue
		}
		if !matchesAnyCategory(r, selected) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesAnyCategory(r Record, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, c := range selected {
		if r.HasCategory(c) {
			return true
		}
	}
	return false
}
