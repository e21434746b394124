package vehicle

import "strings"

// Filter matches vehicles by case-insensitive substring containment on each
// provided field. An empty field matches everything.
type Filter struct {
	Type     string
	Make     string
	Model    string
	Location string
}

func (f Filter) Matches(v *Vehicle) bool {
	return contains(v.Type, f.Type) &&
		contains(v.Make, f.Make) &&
		contains(v.Model, f.Model) &&
		contains(v.Location, f.Location)
}

func contains(field, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(needle))
}
