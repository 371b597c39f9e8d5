package refdata

import (
	"fmt"

	"hamark/internal/strain"
)

// Site is a named antigenic region with its display color.
type Site struct {
	Name  string
	Color string
	Layer
}

type rawSite struct {
	name, color string
	layer       rawLayer
}

// Table order is application order; overlapping residues end up in the color
// of the later site.
var rawSites = map[strain.Type][]rawSite{
	strain.H1N1: {
		{"site_Sa", "lightpink", rawLayer{"A+C+E", "124-125+153-157+159-164"}},
		{"site_Sb", "lightblue", rawLayer{"A+C+E", "184-194"}},
		{"site_Ca1", "paleyellow", rawLayer{"A+C+E", "166-170+203-205+235-237"}},
		{"site_Ca2", "palecyan", rawLayer{"A+C+E", "137-142+221-222"}},
		{"site_Cb", "lightorange", rawLayer{"A+C+E", "70-75"}},
	},
	strain.H3N2: {
		{"site_A", "lightpink", rawLayer{"A+A-2+A-3", "122-127+129+131-138+142-146"}},
		{"site_B", "lightblue", rawLayer{"A+A-2+A-3", "155-160+164+188-190+193-194+196-197"}},
		{"site_C", "paleyellow", rawLayer{"A+A-2+A-3", "50+53+54+275"}},
		{"site_D", "palecyan", rawLayer{"A+A-2+A-3", "201-207+213+217-220+230+244"}},
		{"site_E", "lightorange", rawLayer{"A+A-2+A-3", "62-63+75+79-83"}},
	},
}

var sites = compileSites()

func compileSites() map[strain.Type][]Site {
	out := make(map[strain.Type][]Site, len(rawSites))
	for st, raw := range rawSites {
		for _, r := range raw {
			if r.color == "" {
				panic(fmt.Sprintf("refdata: site %s/%s has no color", st, r.name))
			}
			ls := compileLayers(st.String()+"/"+r.name, []rawLayer{r.layer})
			out[st] = append(out[st], Site{Name: r.name, Color: r.color, Layer: ls[0]})
		}
	}
	return out
}

// Sites returns the strain's antigenic sites in application order.
func Sites(t strain.Type) ([]Site, error) {
	ss, ok := sites[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrain, t)
	}
	return append([]Site(nil), ss...), nil
}
