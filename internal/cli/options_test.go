// internal/cli/options_test.go
package cli

import (
	"bytes"
	"errors"
	"flag"
	"reflect"
	"strings"
	"testing"

	"hamark/internal/strain"
)

func newFS() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	return fs
}

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func TestSingleRecordOK(t *testing.T) {
	o := mustParse(t,
		"--strain", "H3N2", "--clade", "2b", "--subclade", "G.2.1",
		"-n", "seq1", "-s", "7tz5.cif", "--ha1", "96,265", "--ha1", "135", "--ha2", "17",
	)
	if o.Batch() {
		t.Fatalf("no batch expected: %+v", o)
	}
	if o.Name != "seq1" || o.Structure != "7tz5.cif" || o.Subclade != "G.2.1" {
		t.Errorf("bad single parse %+v", o)
	}
	if !reflect.DeepEqual(o.HA1, []int{96, 265, 135}) || !reflect.DeepEqual(o.HA2, []int{17}) {
		t.Errorf("positions: ha1=%v ha2=%v", o.HA1, o.HA2)
	}
	if o.Backend != BackendScript || o.Script != "-" || o.DPI != 300 {
		t.Errorf("defaults: %+v", o)
	}
}

func TestBatchPositionalsAndFlags(t *testing.T) {
	o := mustParse(t, "-b", "a.tsv", "b.tsv", "--keep-going", "--h1-structure", "4jtv.cif")
	if !reflect.DeepEqual(o.BatchFiles, []string{"a.tsv", "b.tsv"}) {
		t.Errorf("batch files = %v", o.BatchFiles)
	}
	if !o.KeepGoing {
		t.Error("keep-going not set")
	}
	d := o.Defaults()
	if d[strain.H1N1] != "4jtv.cif" || d[strain.H3N2] != "" {
		t.Errorf("defaults = %v", d)
	}
}

func TestValidationErrors(t *testing.T) {
	cases := map[string][]string{
		"no input":         {},
		"missing clade":    {"--strain", "H1N1"},
		"bad strain":       {"--strain", "H5N1", "--clade", "x"},
		"batch and single": {"--clade", "x", "a.tsv"},
		"two stdin":        {"-b", "-", "-"},
		"bad backend":      {"--strain", "H1N1", "--clade", "x", "--backend", "chimera"},
		"caption script":   {"--strain", "H1N1", "--clade", "x", "--caption"},
		"bad dpi":          {"--strain", "H1N1", "--clade", "x", "--dpi", "0"},
		"quiet verbose":    {"--strain", "H1N1", "--clade", "x", "-q", "--verbose"},
		"bad positions":    {"--strain", "H1N1", "--clade", "x", "--ha1", "9a"},
	}
	for name, args := range cases {
		if _, err := ParseArgs(newFS(), args); err == nil {
			t.Errorf("%s: expected error for %v", name, args)
		}
	}
}

func TestCaptionWithPyMOL(t *testing.T) {
	o := mustParse(t, "--strain", "h1n1", "--clade", "5a.2a", "--backend", "pymol", "--caption")
	if !o.Caption || o.PyMOL != "pymol" {
		t.Errorf("bad pymol parse %+v", o)
	}
}

func TestHelpVersionExamples(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("-h: %v", err)
	}
	if _, err := ParseArgs(newFS(), []string{"--examples"}); !errors.Is(err, ErrPrintedAndExitOK) {
		t.Errorf("--examples: %v", err)
	}
	o, err := ParseArgs(newFS(), []string{"-v"})
	if err != nil || !o.Version {
		t.Errorf("-v: %+v %v", o, err)
	}
}

func TestUsageMentionsFlags(t *testing.T) {
	fs := NewFlagSet("hamark")
	var buf bytes.Buffer
	fs.SetOutput(&buf)
	if _, err := ParseArgs(fs, []string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("err = %v", err)
	}
	fs.Usage()
	for _, want := range []string{"--strain", "--batch", "--backend", "--manifest", "[300]"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("usage missing %q", want)
		}
	}
}
