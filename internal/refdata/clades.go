package refdata

import (
	"sort"

	"hamark/internal/selection"
	"hamark/internal/strain"
)

// Clade is a named residue set for one strain.
type Clade struct {
	Strain    strain.Type
	Name      string
	Layers    []Layer
	Subclades []Subclade
}

// Subclade is scoped under a clade. Name carries selection.SubcladePrefix.
type Subclade struct {
	Strain strain.Type
	Clade  string
	Name   string
	Layers []Layer
}

type rawSubclade struct {
	name   string
	layers []rawLayer
}

type rawClade struct {
	name      string
	layers    []rawLayer
	subclades []rawSubclade
}

var rawClades = map[strain.Type][]rawClade{
	strain.H1N1: {
		{
			name: "5a.2",
			layers: []rawLayer{
				{"A+C+E", "74+97+129+162+163+164+185+216+256+295"},
				{"B+D+F", "124"},
			},
			subclades: []rawSubclade{
				{"C", []rawLayer{{"A+C+E", "156+161"}}},
			},
		},
		{
			name:   "5a.2a",
			layers: []rawLayer{{"A+C+E", "54+129+156+161+185+186+189+308"}},
			subclades: []rawSubclade{
				{"C.1", []rawLayer{{"A+C+E", "54+186+189+308"}}},
				{"C.1.8", []rawLayer{{"A+C+E", "54+186+189+308+120+47"}}},
				{"C.1.9", []rawLayer{{"A+C+E", "54+186+189+308+120+169"}}},
			},
		},
		{
			name:   "5a.2a.1",
			layers: []rawLayer{{"A+C+E", "54+129+137+142+156+161+185+186+189+308"}},
			subclades: []rawSubclade{
				{"C.1.1", []rawLayer{{"A+C+E", "137+142"}}},
				{"D", []rawLayer{{"A+C+E", "54+186+189+308+216"}}},
				{"D.1", []rawLayer{{"A+C+E", "54+186+189+308+45+216"}}},
				{"D.2", []rawLayer{{"A+C+E", "54+186+189+308+113+216"}}},
				{"D.3", []rawLayer{{"A+C+E", "54+186+189+308+120"}, {"B+D+F", "45"}}},
			},
		},
	},
	strain.H3N2: {
		{
			name: "2a.1",
			layers: []rawLayer{
				{"A+A-2+A-3", "3+45+48+53+62+83+94+104+121+131+142+144+159+159+160+164+171+186+190+193+195+276+311"},
				{"B+B-2+B-3", "77+155+160+103+200"},
			},
			subclades: []rawSubclade{
				{"G.1.1", []rawLayer{{"A+A-2+A-3", "159+160+164+186+190+193+195+156+53+104+276"}}},
			},
		},
		{
			name: "2a.1b",
			layers: []rawLayer{
				{"A+A-2+A-3", "45+48+3+144+159+160+121+171+62+142+311+131+83+94+164+186+190+193+195+156+53+104+276+140+299"},
				{"B+B-2+B-3", "160+77+155+200+193"},
			},
			subclades: []rawSubclade{
				{"G.1.1.2", []rawLayer{{"A+A-2+A-3", "159+160+164+186+190+193+195+156+53+104+276+140+299"}}},
			},
		},
		{
			name: "2b",
			layers: []rawLayer{
				{"A+A-2+A-3", "45+48+3+144+159+160+121+171+62+142+311+131+83+94+164+186+190+193+195+50+79+140"},
				{"B+B-2+B-3", "160+77+155+200+193"},
			},
			subclades: []rawSubclade{
				{"G.2", []rawLayer{{"A+A-2+A-3", "159+160+164+186+190+193+195+50+79+140"}}},
				{"G.2.1", []rawLayer{{"A+A-2+A-3", "159+160+164+186+190+193+195+50+79+140+135+262"}}},
			},
		},
	},
}

var clades = compileClades()

func compileClades() map[strain.Type][]Clade {
	out := make(map[strain.Type][]Clade, len(rawClades))
	for st, raw := range rawClades {
		for _, rc := range raw {
			c := Clade{
				Strain: st,
				Name:   rc.name,
				Layers: compileLayers(st.String()+"/"+rc.name, rc.layers),
			}
			for _, rs := range rc.subclades {
				name := selection.NormalizeSubclade(rs.name)
				c.Subclades = append(c.Subclades, Subclade{
					Strain: st,
					Clade:  rc.name,
					Name:   name,
					Layers: compileLayers(st.String()+"/"+rc.name+"/"+name, rs.layers),
				})
			}
			out[st] = append(out[st], c)
		}
	}
	return out
}

// Clades lists the strain's clade names in table order.
func Clades(t strain.Type) []string {
	var names []string
	for _, c := range clades[t] {
		names = append(names, c.Name)
	}
	return names
}

// Subclades lists the (prefixed) subclade names under a clade, sorted.
func Subclades(t strain.Type, clade string) []string {
	var names []string
	for _, c := range clades[t] {
		if c.Name != clade {
			continue
		}
		for _, sc := range c.Subclades {
			names = append(names, sc.Name)
		}
	}
	sort.Strings(names)
	return names
}

// LookupClade finds a clade by exact name.
func LookupClade(t strain.Type, name string) (Clade, error) {
	cs, ok := clades[t]
	if !ok {
		return Clade{}, &LookupError{Kind: ErrUnknownStrain, Strain: t, Clade: name}
	}
	for _, c := range cs {
		if c.Name == name {
			return c, nil
		}
	}
	return Clade{}, &LookupError{Kind: ErrUnknownClade, Strain: t, Clade: name, Available: Clades(t)}
}

// LookupSubclade normalizes name and finds it under (strain, clade).
func LookupSubclade(t strain.Type, clade, name string) (Subclade, error) {
	name = selection.NormalizeSubclade(name)
	c, err := LookupClade(t, clade)
	if err != nil {
		return Subclade{}, err
	}
	for _, sc := range c.Subclades {
		if sc.Name == name {
			return sc, nil
		}
	}
	return Subclade{}, &LookupError{
		Kind:      ErrSubcladeMismatch,
		Strain:    t,
		Clade:     clade,
		Subclade:  name,
		Available: Subclades(t, clade),
	}
}
