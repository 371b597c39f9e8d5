package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hamark/internal/cmdutil"
	"hamark/internal/host"
	"hamark/internal/host/hosttest"
	"hamark/internal/records"
	"hamark/internal/refdata"
	"hamark/internal/scene"
	"hamark/internal/strain"
)

func newScene(t *testing.T, h host.Host, log *cmdutil.Logger) *scene.Scene {
	t.Helper()
	cfg := scene.DefaultConfig()
	dir := t.TempDir()
	cfg.ImageRoot = filepath.Join(dir, "ImageOutput")
	cfg.SessionRoot = filepath.Join(dir, "StructureSessions")
	return scene.New(h, cfg, log)
}

func h1Record() records.Record {
	return records.Record{
		Name:      "H1_01",
		Structure: "4lxv-assembly1.cif",
		Strain:    strain.H1N1,
		Clade:     "5a.2a",
		HA2:       []int{91, 177},
	}
}

func TestProcessEndToEnd(t *testing.T) {
	var logBuf bytes.Buffer
	f := &hosttest.Flushing{Fake: hosttest.New()}
	f.WriteFiles = true
	sc := newScene(t, f, cmdutil.NewLogger(&logBuf, false, true, true))

	res, err := Process(context.Background(), sc, h1Record())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Images) != 2 {
		t.Fatalf("want 2 images, got %v", res.Images)
	}
	if !strings.HasSuffix(res.Images[0], "_side.png") || !strings.HasSuffix(res.Images[1], "_top.png") {
		t.Fatalf("image order %v", res.Images)
	}
	if filepath.Base(res.Session) != "H1_01_5a2a.pse" {
		t.Fatalf("session %q", res.Session)
	}
	for _, p := range append(res.Images, res.Session) {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("missing output %s", p)
		}
	}
	for _, c := range f.Find("select") {
		if strings.HasPrefix(c.Args[0], "Subclade_") {
			t.Fatalf("subclade selected without a subclade: %v", c)
		}
	}
	if strings.Contains(logBuf.String(), "available subclades") {
		t.Fatalf("subclade lookup attempted:\n%s", logBuf.String())
	}
	if f.Flushes != 1 {
		t.Fatalf("want one flush, got %d", f.Flushes)
	}
	if res.Protein != "H1" || len(res.Notes) != 0 {
		t.Fatalf("result %+v", res)
	}
}

func TestProcessCallOrder(t *testing.T) {
	f := hosttest.New()
	sc := newScene(t, f, nil)
	if _, err := Process(context.Background(), sc, h1Record()); err != nil {
		t.Fatal(err)
	}
	ops := f.Ops()
	idx := func(op string) int {
		for i, o := range ops {
			if o == op {
				return i
			}
		}
		return -1
	}
	if ops[0] != "hide" || idx("delete") > idx("load") {
		t.Fatalf("reset must precede load: %v", ops)
	}
	if idx("set_view") < idx("load") || ops[len(ops)-1] != "save" {
		t.Fatalf("unexpected order: %v", ops)
	}
	if f.Count("png") != 2 {
		t.Fatalf("want 2 png calls, got %d", f.Count("png"))
	}
}

func TestProcessUnknownStrain(t *testing.T) {
	f := hosttest.New()
	sc := newScene(t, f, nil)
	rec := h1Record()
	rec.Strain = strain.Unknown
	res, err := Process(context.Background(), sc, rec)
	if !errors.Is(err, refdata.ErrUnknownStrain) {
		t.Fatalf("want ErrUnknownStrain, got %v", err)
	}
	if f.Count("load") != 0 || f.Count("png") != 0 || f.Count("save") != 0 {
		t.Fatalf("nothing may be written for a bad strain: %v", f.Ops())
	}
	if res.OK() {
		t.Fatalf("result should carry the error")
	}
}

func TestProcessUnknownCladeContinues(t *testing.T) {
	f := hosttest.New()
	sc := newScene(t, f, nil)
	rec := h1Record()
	rec.Clade = "6b.1"
	res, err := Process(context.Background(), sc, rec)
	if err != nil {
		t.Fatalf("unknown clade must not abort: %v", err)
	}
	if len(res.Notes) != 1 || len(res.Images) != 2 || res.Session == "" {
		t.Fatalf("result %+v", res)
	}
}

func TestProcessMissingOutput(t *testing.T) {
	f := &hosttest.Flushing{Fake: hosttest.New()}
	sc := newScene(t, f, nil)
	_, err := Process(context.Background(), sc, h1Record())
	if !errors.Is(err, ErrMissingOutput) {
		t.Fatalf("want ErrMissingOutput, got %v", err)
	}
}

func TestProcessHostFailure(t *testing.T) {
	f := hosttest.New()
	boom := errors.New("ray trace failed")
	f.FailOn = map[string]error{"png": boom}
	sc := newScene(t, f, nil)
	res, err := Process(context.Background(), sc, h1Record())
	if !errors.Is(err, boom) {
		t.Fatalf("want host error, got %v", err)
	}
	if f.Count("save") != 0 || len(res.Images) != 0 {
		t.Fatalf("processing must stop at the failure: %v", f.Ops())
	}
}

func TestRunBatch(t *testing.T) {
	good := h1Record()
	bad := h1Record()
	bad.Name, bad.Strain = "bad", strain.Unknown
	h3 := records.Record{Name: "H3_02", Structure: "4o5n.cif", Strain: strain.H3N2, Clade: "2a.1b", Subclade: "G.1.1.2"}

	t.Run("stop at first failure", func(t *testing.T) {
		sc := newScene(t, hosttest.New(), nil)
		sum, err := RunBatch(context.Background(), sc, []records.Record{good, bad, h3}, BatchOptions{})
		if err == nil || len(sum.Results) != 2 || sum.Failed != 1 {
			t.Fatalf("err=%v results=%d failed=%d", err, len(sum.Results), sum.Failed)
		}
	})

	t.Run("keep going", func(t *testing.T) {
		sc := newScene(t, hosttest.New(), nil)
		var seen []string
		sum, err := RunBatch(context.Background(), sc, []records.Record{good, bad, h3}, BatchOptions{
			KeepGoing: true,
			OnResult:  func(r Result) { seen = append(seen, r.Record.Name) },
		})
		if !errors.Is(err, refdata.ErrUnknownStrain) {
			t.Fatalf("first error should be reported, got %v", err)
		}
		if len(sum.Results) != 3 || sum.Failed != 1 || len(sum.Images()) != 4 {
			t.Fatalf("summary %+v", sum)
		}
		if strings.Join(seen, ",") != "H1_01,bad,H3_02" {
			t.Fatalf("callback order %v", seen)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		f := hosttest.New()
		sc := newScene(t, f, nil)
		_, err := RunBatch(ctx, sc, []records.Record{good}, BatchOptions{KeepGoing: true})
		if !errors.Is(err, context.Canceled) || len(f.Calls) != 0 {
			t.Fatalf("err=%v calls=%v", err, f.Ops())
		}
	})
}

func TestFailedRecordDiscardsQueuedCommands(t *testing.T) {
	f := &hosttest.Flushing{Fake: hosttest.New()}
	f.WriteFiles = true
	sc := newScene(t, f, nil)
	blocked := filepath.Join(sc.Config().SessionRoot, "H1")
	if err := os.MkdirAll(filepath.Dir(blocked), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(blocked, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	bad := h1Record()
	good := records.Record{Name: "H3_02", Structure: "7tz5.cif", Strain: strain.H3N2, Clade: "2b"}
	sum, err := RunBatch(context.Background(), sc, []records.Record{bad, good}, BatchOptions{KeepGoing: true})
	if err == nil || sum.Failed != 1 {
		t.Fatalf("err=%v summary=%+v", err, sum)
	}
	if f.Discards != 1 {
		t.Fatalf("failed record should discard its queue once, got %d", f.Discards)
	}
	if f.Flushes != 1 || !sum.Results[1].OK() {
		t.Fatalf("flushes=%d results=%+v", f.Flushes, sum.Results)
	}
}
