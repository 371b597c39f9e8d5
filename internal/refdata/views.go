package refdata

import "fmt"

// View labels.
const (
	Side = "side"
	Top  = "top"
)

// ViewLabels is the export order for every record.
var ViewLabels = []string{Side, Top}

// View is a host camera in get_view layout: a 3x3 rotation, the camera
// position, the origin of rotation, then front/back clipping distances and
// the orthoscopic flag.
type View [18]float64

type viewKey struct{ protein, label string }

// Tuned by hand against 4lxv-assembly1 (H1) and 4o5n-assembly1 (H3).
var views = map[viewKey]View{
	{"H1", Side}: {
		0.888682842, 0.371483058, -0.268776417,
		-0.303239465, 0.915848851, 0.263189942,
		0.343927294, -0.152389228, 0.926546395,
		0.000021487, 0.000063539, -474.919036865,
		76.153892517, 223.045745850, 287.983581543,
		-19575.746093750, 20525.484375000, -20.000000000,
	},
	{"H1", Top}: {
		0.795617044, 0.577678502, 0.182431772,
		-0.285880089, 0.092522122, 0.953790188,
		0.534102142, -0.811003804, 0.238758013,
		0.000021487, 0.000063539, -474.919036865,
		76.153892517, 223.045745850, 287.983581543,
		-21575.746093750, 22525.484375000, -20.000000000,
	},
	{"H3", Side}: {
		0.136302233, 0.264822513, -0.954613864,
		0.989724994, 0.005639514, 0.142883018,
		0.043221079, -0.964281559, -0.261330694,
		-0.000014514, 0.000120746, -413.245788574,
		46.526790619, -30.711526871, -48.703193665,
		346.461273193, 480.010101318, -20.000000000,
	},
	{"H3", Top}: {
		0.645424068, 0.758313954, -0.091568671,
		0.763582408, -0.643582523, 0.052419290,
		-0.019184131, -0.103754535, -0.994418800,
		-0.000014514, 0.000120746, -413.245788574,
		46.526790619, -30.711526871, -48.703193665,
		346.461273193, 480.010101318, -20.000000000,
	},
}

// LookupView returns the camera for (protein, label). There is no fallback:
// an unknown pair is ErrNoView.
func LookupView(protein, label string) (View, error) {
	v, ok := views[viewKey{protein, label}]
	if !ok {
		return View{}, fmt.Errorf("%w for protein %q view %q", ErrNoView, protein, label)
	}
	return v, nil
}
