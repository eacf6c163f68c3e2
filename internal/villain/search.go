package villain

import (
	"fmt"
	"strings"
)

// SearchField selects which attribute Filter matches against.
type SearchField string

const (
	ByName      SearchField = "nombre"
	ByFranchise SearchField = "franquicia"
)

// ParseSearchField validates a --by flag value.
func ParseSearchField(s string) (SearchField, error) {
	switch SearchField(s) {
	case ByName, ByFranchise:
		return SearchField(s), nil
	case "":
		return ByName, nil
	}
	return "", fmt.Errorf("invalid search field %q (nombre|franquicia)", s)
}

// Filter returns villains whose field contains query, case-insensitively.
// An empty query returns nothing.
func Filter(villains []*Villain, query string, field SearchField) []*Villain {
	if query == "" {
		return nil
	}
	q := strings.ToLower(query)

	var out []*Villain
	for _, v := range villains {
		hay := v.Name
		if field == ByFranchise {
			hay = v.Franchise
		}
		if strings.Contains(strings.ToLower(hay), q) {
			out = append(out, v)
		}
	}
	return out
}
