package scene

import (
	"errors"
	"fmt"
	"strings"

	"hamark/internal/refdata"
	"hamark/internal/selection"
	"hamark/internal/strain"
)

// AnnotateSites colors every antigenic site of the strain in table order.
// An unsupported strain produces one diagnostic, touches nothing and
// returns refdata.ErrUnknownStrain.
func (s *Scene) AnnotateSites(t strain.Type) error {
	sites, err := refdata.Sites(t)
	if err != nil {
		s.note("invalid strain type %s: use H1N1 or H3N2", t)
		return err
	}
	for _, site := range sites {
		if err := s.paint(site.Name, site.Expr(), site.Color); err != nil {
			return fmt.Errorf("site %s: %w", site.Name, err)
		}
	}
	return nil
}

// AnnotateClade paints the clade layers, then the subclade layers on top.
// Table misses are diagnostics, not errors: an unknown clade leaves the scene
// untouched and a subclade outside the clade keeps the clade layer only.
func (s *Scene) AnnotateClade(t strain.Type, clade, subclade string) error {
	subclade = selection.NormalizeSubclade(subclade)
	s.log.Debugf("strain=%s clade=%s subclade=%s", t, clade, subclade)

	c, err := refdata.LookupClade(t, clade)
	if err != nil {
		return s.lookupMiss(err)
	}
	for _, l := range c.Layers {
		if err := s.paint(c.Name, l.Expr(), refdata.CladeColor); err != nil {
			return fmt.Errorf("clade %s: %w", c.Name, err)
		}
	}
	if subclade == "" {
		return nil
	}

	s.log.Debugf("available subclades for clade %s: [%s]", clade, strings.Join(refdata.Subclades(t, clade), ", "))
	sc, err := refdata.LookupSubclade(t, clade, subclade)
	if err != nil {
		return s.lookupMiss(err)
	}
	for _, l := range sc.Layers {
		if err := s.paint(sc.Name, l.Expr(), refdata.SubcladeColor); err != nil {
			return fmt.Errorf("subclade %s: %w", sc.Name, err)
		}
	}
	return nil
}

func (s *Scene) lookupMiss(err error) error {
	var le *refdata.LookupError
	if errors.As(err, &le) && le.Kind != refdata.ErrUnknownStrain {
		s.note("%v", le)
		return nil
	}
	return err
}

// DefaultMutationSelection names the mutation selection when the record
// has no name.
const DefaultMutationSelection = "mutations"

// AnnotateMutations highlights HA1/HA2 positions under one selection. With
// both lists empty nothing is sent to the host.
func (s *Scene) AnnotateMutations(t strain.Type, name string, ha1, ha2 []int, color string) error {
	c1, c2, err := refdata.MutationChains(t)
	if err != nil {
		return err
	}
	expr, ok := selection.Mutations(c1, c2, ha1, ha2)
	if !ok {
		return nil
	}
	if name == "" {
		name = DefaultMutationSelection
	}
	if color == "" {
		color = refdata.MutationColor
	}
	if err := s.paint(name, expr, color); err != nil {
		return fmt.Errorf("mutations %s: %w", name, err)
	}
	return nil
}
