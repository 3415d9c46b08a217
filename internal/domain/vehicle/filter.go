package vehicle

import (
	"fmt"
	"strings"
)

// searchText is the haystack the free-text search runs against.
func searchText(v *Vehicle) string {
	return strings.ToLower(fmt.Sprintf("%s %s %d", v.Make, v.Model, v.Year))
}

// Matches reports whether a vehicle satisfies every provided predicate.
// Empty filter fields match everything, so ANDing is commutative: applying
// filters one at a time in any order gives the same set as applying them at
// once.
func (f ListFilters) Matches(v *Vehicle) bool {
	if f.Status != "" && v.Status != f.Status {
		return false
	}
	if f.Make != "" && !strings.EqualFold(v.Make, f.Make) {
		return false
	}
	if f.Fuel != "" && v.Fuel != f.Fuel {
		return false
	}
	if f.BodyType != "" && v.BodyType != f.BodyType {
		return false
	}
	if f.Search != "" && !strings.Contains(searchText(v), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// Apply filters the materialized set, preserving order.
func (f ListFilters) Apply(vehicles []*Vehicle) []*Vehicle {
	out := make([]*Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if f.Matches(v) {
			out = append(out, v)
		}
	}
	return out
}

// MatchesAdmin extends the free-text search to the business identifiers shown
// in the admin inventory table.
func (f ListFilters) MatchesAdmin(v *Vehicle) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(searchText(v), needle) &&
			!strings.Contains(strings.ToLower(v.ReferenceNumber), needle) &&
			!strings.Contains(strings.ToLower(v.ChassisNumber), needle) {
			return false
		}
	}
	rest := f
	rest.Search = ""
	return rest.Matches(v)
}
