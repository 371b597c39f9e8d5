// Package records defines the unit of work (one named HA sequence) and
// reads batches of them from a whitespace-separated table.
package records

import (
	"fmt"

	"hamark/internal/strain"
)

// Record is one sequence to annotate and render.
type Record struct {
	Name      string
	Structure string
	Strain    strain.Type
	Clade     string
	Subclade  string // bare or prefixed; empty means none
	HA1       []int
	HA2       []int
	Color     string // empty means the default mutation color
}

// Mutations returns the total number of highlighted positions.
func (r Record) Mutations() int { return len(r.HA1) + len(r.HA2) }

func (r Record) String() string {
	sub := r.Subclade
	if sub == "" {
		sub = "-"
	}
	return fmt.Sprintf("%s (%s %s/%s)", r.Name, r.Strain, r.Clade, sub)
}

// Structures maps a strain to the structure file used when a record leaves
// its structure column empty.
type Structures map[strain.Type]string

// Resolve fills an empty Structure from defaults.
func (d Structures) Resolve(r *Record) error {
	if r.Structure != "" {
		return nil
	}
	if p := d[r.Strain]; p != "" {
		r.Structure = p
		return nil
	}
	return fmt.Errorf("record %s: no structure file and no default for %s", r.Name, r.Strain)
}
