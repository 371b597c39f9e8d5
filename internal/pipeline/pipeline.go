package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"hamark/internal/host"
	"hamark/internal/records"
	"hamark/internal/refdata"
	"hamark/internal/scene"
)

// ErrMissingOutput is returned when a flushing host finished without
// producing an expected file.
var ErrMissingOutput = errors.New("host produced no output file")

// Result is what one record left on disk.
type Result struct {
	Record  records.Record
	Protein string
	Images  []string
	Session string
	Notes   []string
	Err     error
}

// OK reports whether the record completed.
func (r Result) OK() bool { return r.Err == nil }

// Process annotates and exports one record.
func Process(ctx context.Context, sc *scene.Scene, rec records.Record) (Result, error) {
	res := Result{Record: rec}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	fail := func(err error) (Result, error) {
		res.Notes = sc.Notes()
		res.Err = err
		if d, ok := sc.Host().(host.Discarder); ok {
			d.Discard()
		}
		return res, err
	}

	if err := sc.Reset(); err != nil {
		return fail(err)
	}
	protein, err := rec.Strain.Protein()
	if err != nil {
		return fail(fmt.Errorf("%s: %w", rec.Name, err))
	}
	res.Protein = protein

	if err := sc.Setup(rec.Structure); err != nil {
		return fail(err)
	}
	if err := sc.AnnotateSites(rec.Strain); err != nil {
		return fail(err)
	}
	if err := sc.AnnotateClade(rec.Strain, rec.Clade, rec.Subclade); err != nil {
		return fail(err)
	}
	if err := sc.AnnotateMutations(rec.Strain, rec.Name, rec.HA1, rec.HA2, rec.Color); err != nil {
		return fail(err)
	}
	for _, view := range refdata.ViewLabels {
		p, err := sc.ExportImage(rec.Name, view, protein, rec.Clade, rec.Subclade)
		if err != nil {
			return fail(err)
		}
		res.Images = append(res.Images, p)
	}
	if res.Session, err = sc.SaveSession(rec.Name, rec.Clade, rec.Subclade, protein); err != nil {
		return fail(err)
	}

	if fl, ok := sc.Host().(host.Flusher); ok {
		if err := fl.Flush(ctx); err != nil {
			return fail(fmt.Errorf("%s: %w", rec.Name, err))
		}
		if err := checkOutputs(append(append([]string(nil), res.Images...), res.Session)); err != nil {
			return fail(fmt.Errorf("%s: %w", rec.Name, err))
		}
	}
	res.Notes = sc.Notes()
	return res, nil
}

func checkOutputs(paths []string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("%w: %s", ErrMissingOutput, p)
		}
	}
	return nil
}
