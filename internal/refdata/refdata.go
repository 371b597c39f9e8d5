// Package refdata holds the static reference tables: antigenic sites, clade
// and subclade residue sets, and the hand-tuned camera views for the two HA
// structures. The tables are compiled from their literal form when the
// package loads; a malformed entry panics at startup.
package refdata

import (
	"errors"
	"fmt"
	"strings"

	"hamark/internal/selection"
	"hamark/internal/strain"
)

var (
	ErrUnknownStrain    = strain.ErrUnknown
	ErrUnknownClade     = errors.New("clade not recognized")
	ErrSubcladeMismatch = errors.New("subclade does not match clade")
	ErrNoView           = errors.New("no camera view")
)

// LookupError describes a miss in the clade or subclade tables.
type LookupError struct {
	Kind      error // ErrUnknownClade or ErrSubcladeMismatch
	Strain    strain.Type
	Clade     string
	Subclade  string
	Available []string
}

func (e *LookupError) Error() string {
	switch e.Kind {
	case ErrSubcladeMismatch:
		return fmt.Sprintf("subclade %s does not match clade %s (%s); available: [%s]",
			e.Subclade, e.Clade, e.Strain, strings.Join(e.Available, ", "))
	case ErrUnknownClade:
		return fmt.Sprintf("clade %q not recognized for %s; known: [%s]",
			e.Clade, e.Strain, strings.Join(e.Available, ", "))
	}
	return fmt.Sprintf("%v: %s %s %s", e.Kind, e.Strain, e.Clade, e.Subclade)
}

func (e *LookupError) Unwrap() error { return e.Kind }

// Layer is one (chain group, residues) pair.
type Layer struct {
	Chains   selection.Chains
	Residues selection.Residues
}

// Expr renders the layer as a selection expression.
func (l Layer) Expr() string { return selection.Clause(l.Chains, l.Residues) }

type rawLayer struct{ chains, resi string }

func compileLayers(owner string, raw []rawLayer) []Layer {
	if len(raw) == 0 {
		panic(fmt.Sprintf("refdata: %s has no residue layers", owner))
	}
	out := make([]Layer, 0, len(raw))
	for _, r := range raw {
		c, err := selection.ParseChains(r.chains)
		if err != nil {
			panic(fmt.Sprintf("refdata: %s: %v", owner, err))
		}
		rs, err := selection.ParseResidues(r.resi)
		if err != nil {
			panic(fmt.Sprintf("refdata: %s: %v", owner, err))
		}
		out = append(out, Layer{Chains: c, Residues: rs})
	}
	return out
}

// MutationChains returns the chain groups for HA1 and HA2 in the strain's
// structure.
func MutationChains(t strain.Type) (ha1, ha2 selection.Chains, err error) {
	switch t {
	case strain.H1N1:
		return selection.Chains{"A", "C", "E"}, selection.Chains{"B", "D", "F"}, nil
	case strain.H3N2:
		return selection.Chains{"A", "A-2", "A-3"}, selection.Chains{"B", "B-2", "B-3"}, nil
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrUnknownStrain, t)
}

// Validate re-checks the compiled tables.
func Validate() error {
	for _, st := range strain.All {
		ss := sites[st]
		if len(ss) == 0 {
			return fmt.Errorf("no antigenic sites for %s", st)
		}
		for _, s := range ss {
			if s.Color == "" || len(s.Residues) == 0 || len(s.Chains) == 0 {
				return fmt.Errorf("site %s/%s incomplete", st, s.Name)
			}
		}
		cs := clades[st]
		if len(cs) == 0 {
			return fmt.Errorf("no clades for %s", st)
		}
		for _, c := range cs {
			if len(c.Layers) == 0 {
				return fmt.Errorf("clade %s/%s has no layers", st, c.Name)
			}
			for _, sc := range c.Subclades {
				if !strings.HasPrefix(sc.Name, selection.SubcladePrefix) {
					return fmt.Errorf("subclade %s/%s/%s lacks prefix", st, c.Name, sc.Name)
				}
				if sc.Clade != c.Name || len(sc.Layers) == 0 {
					return fmt.Errorf("subclade %s/%s/%s malformed", st, c.Name, sc.Name)
				}
			}
		}
	}
	if len(views) != 4 {
		return fmt.Errorf("want 4 camera views, have %d", len(views))
	}
	return nil
}
