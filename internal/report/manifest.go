// Package report writes run summaries: a JSON manifest of every output and
// a bar chart of highlighted mutations per sequence.
package report

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"hamark/internal/pipeline"
	"hamark/internal/version"
	"hamark/pkg/api"
)

// Run describes the invocation the manifest belongs to.
type Run struct {
	ID      uuid.UUID
	Started time.Time
	Backend string
	Script  string
}

// NewRun stamps a fresh run id.
func NewRun(backend, script string) Run {
	return Run{ID: uuid.New(), Started: time.Now().UTC(), Backend: backend, Script: script}
}

// Manifest converts batch results to the v1 wire schema.
func Manifest(run Run, sum pipeline.Summary) api.ManifestV1 {
	m := api.ManifestV1{
		RunID:     run.ID.String(),
		CreatedAt: run.Started.UTC().Format(time.RFC3339),
		Version:   version.Version,
		Backend:   run.Backend,
		Script:    run.Script,
		Records:   make([]api.RecordV1, 0, len(sum.Results)),
		Failed:    sum.Failed,
	}
	for _, r := range sum.Results {
		rec := api.RecordV1{
			Name:      r.Record.Name,
			Strain:    r.Record.Strain.String(),
			Protein:   r.Protein,
			Structure: r.Record.Structure,
			Clade:     r.Record.Clade,
			Subclade:  r.Record.Subclade,
			HA1:       r.Record.HA1,
			HA2:       r.Record.HA2,
			Images:    r.Images,
			Session:   r.Session,
			Notes:     r.Notes,
		}
		if r.Err != nil {
			rec.Error = r.Err.Error()
		}
		m.Records = append(m.Records, rec)
	}
	return m
}

// EncodePretty writes v as indented JSON.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteManifest writes the manifest to path.
func WriteManifest(path string, run Run, sum pipeline.Summary) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodePretty(fh, Manifest(run, sum)); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
