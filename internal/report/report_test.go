package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"hamark/internal/pipeline"
	"hamark/internal/records"
	"hamark/internal/strain"
	"hamark/pkg/api"
)

func summary() pipeline.Summary {
	return pipeline.Summary{
		Results: []pipeline.Result{
			{
				Record:  records.Record{Name: "H1_04", Structure: "h1.cif", Strain: strain.H1N1, Clade: "5a.2a", Subclade: "C.1.8", HA1: []int{96, 265}, HA2: []int{200}},
				Protein: "H1",
				Images:  []string{"ImageOutput/H1/H1_04_H1_5a2a_C18_side.png", "ImageOutput/H1/H1_04_H1_5a2a_C18_top.png"},
				Session: "StructureSessions/H1/H1_04_5a2a_C18.pse",
			},
			{
				Record: records.Record{Name: "bad", Strain: strain.Unknown, Clade: "x", HA2: []int{4}},
				Err:    errors.New("unknown strain type"),
			},
		},
		Failed: 1,
	}
}

func TestManifest(t *testing.T) {
	run := Run{ID: uuid.MustParse("6f1c2b8e-3a57-4d3e-9a0e-0f5b0c7d2a11"), Started: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), Backend: "script", Script: "run.pml"}
	var b bytes.Buffer
	if err := EncodePretty(&b, Manifest(run, summary())); err != nil {
		t.Fatal(err)
	}
	var m api.ManifestV1
	if err := json.Unmarshal(b.Bytes(), &m); err != nil {
		t.Fatal(err)
	}
	if m.RunID != "6f1c2b8e-3a57-4d3e-9a0e-0f5b0c7d2a11" || m.CreatedAt != "2024-03-01T12:00:00Z" {
		t.Fatalf("header %+v", m)
	}
	if len(m.Records) != 2 || m.Failed != 1 {
		t.Fatalf("records %+v", m.Records)
	}
	if m.Records[0].Strain != "H1N1" || len(m.Records[0].Images) != 2 || m.Records[0].Error != "" {
		t.Fatalf("record 0 %+v", m.Records[0])
	}
	if m.Records[1].Error == "" {
		t.Fatalf("failed record must carry its error")
	}
}

func TestNewRunUnique(t *testing.T) {
	a, b := NewRun("pymol", ""), NewRun("pymol", "")
	if a.ID == b.ID {
		t.Fatalf("run ids collide")
	}
}

func TestWriteManifest(t *testing.T) {
	p := filepath.Join(t.TempDir(), "manifest.json")
	if err := WriteManifest(p, NewRun("script", "-"), summary()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(p)
	if err != nil || !json.Valid(data) {
		t.Fatalf("manifest unreadable: %v", err)
	}
}

func TestWriteChart(t *testing.T) {
	p := filepath.Join(t.TempDir(), "mutations.png")
	if err := WriteChart(p, summary()); err != nil {
		t.Fatal(err)
	}
	fh, err := os.Open(p)
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()
	img, err := png.Decode(fh)
	if err != nil {
		t.Fatalf("chart is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 240 {
		t.Fatalf("width %d", img.Bounds().Dx())
	}
}

func TestChartNothingToDraw(t *testing.T) {
	sum := pipeline.Summary{Results: []pipeline.Result{{Record: records.Record{Name: "H3_15_Consensus"}}}}
	if _, err := MutationChart(sum); !errors.Is(err, ErrNothingToChart) {
		t.Fatalf("want ErrNothingToChart, got %v", err)
	}
}
