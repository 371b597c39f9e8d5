package report

import (
	"errors"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"hamark/internal/pipeline"
)

// ErrNothingToChart is returned when no record highlights any mutation.
var ErrNothingToChart = errors.New("no mutations to chart")

// MutationChart builds a bar chart with one bar per record: the number of
// highlighted HA1 + HA2 positions. Failed records are drawn in red.
func MutationChart(sum pipeline.Summary) (chart.BarChart, error) {
	var (
		bars []chart.Value
		top  int
	)
	for _, r := range sum.Results {
		n := r.Record.Mutations()
		if n > top {
			top = n
		}
		style := chart.Style{FillColor: chart.ColorBlue, StrokeColor: chart.ColorBlue, StrokeWidth: 1}
		if !r.OK() {
			style = chart.Style{FillColor: chart.ColorRed, StrokeColor: chart.ColorRed, StrokeWidth: 1}
		}
		bars = append(bars, chart.Value{Label: r.Record.Name, Value: float64(n), Style: style})
	}
	if top == 0 {
		return chart.BarChart{}, ErrNothingToChart
	}
	return chart.BarChart{
		Title:      "Highlighted mutations per sequence",
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      120 + 60*len(bars),
		Height:     480,
		BarWidth:   40,
		BarSpacing: 20,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(top + 1)},
		},
		Bars: bars,
	}, nil
}

// WriteChart renders MutationChart to a PNG file.
func WriteChart(path string, sum pipeline.Summary) error {
	bc, err := MutationChart(sum)
	if err != nil {
		return err
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bc.Render(chart.PNG, fh); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
