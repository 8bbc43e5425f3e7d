package domain

import "fmt"

// FacilityTable is the ordered, immutable-after-build sequence of
// deduplicated facilities.
type FacilityTable struct {
	facilities []Facility
	index      map[string]int // pk_unique_id -> position
}

// NewFacilityTable builds a table from already-deduplicated, validated
// facilities, preserving their order.
func NewFacilityTable(facilities []Facility) (*FacilityTable, error) {
	index := make(map[string]int, len(facilities))
	for i, f := range facilities {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("facility %d: %w", i, err)
		}
		if _, exists := index[f.PKUniqueID]; exists {
			return nil, fmt.Errorf("duplicate pk_unique_id %q after build", f.PKUniqueID)
		}
		index[f.PKUniqueID] = i
	}
	return &FacilityTable{facilities: facilities, index: index}, nil
}

// Len returns the number of facilities in the table.
func (t *FacilityTable) Len() int { return len(t.facilities) }

// At returns the facility at position i (O(1)).
func (t *FacilityTable) At(i int) *Facility { return &t.facilities[i] }

// All returns every facility in insertion order.
func (t *FacilityTable) All() []Facility { return t.facilities }

// ByID looks up a facility by its pk_unique_id.
func (t *FacilityTable) ByID(pkUniqueID string) (*Facility, bool) {
	i, ok := t.index[pkUniqueID]
	if !ok {
		return nil, false
	}
	return &t.facilities[i], true
}

// Select returns a positional subset satisfying predicate, preserving
// original order and positional indices into the parent table.
func (t *FacilityTable) Select(predicate func(*Facility) bool) []Facility {
	var out []Facility
	for i := range t.facilities {
		if predicate(&t.facilities[i]) {
			out = append(out, t.facilities[i])
		}
	}
	return out
}

// WithCoords returns the subset of facilities with valid (lat, lng).
func (t *FacilityTable) WithCoords() []Facility {
	return t.Select(func(f *Facility) bool { return f.HasCoords })
}
