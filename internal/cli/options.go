// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"hamark/internal/cliutil"
	"hamark/internal/naming"
	"hamark/internal/pymol"
	"hamark/internal/strain"
)

// Backends
const (
	BackendScript = "script"
	BackendPyMOL  = "pymol"
)

// ErrPrintedAndExitOK is returned by ParseArgs when the caller asked for the
// quickstart examples. Apps print them and exit 0.
var ErrPrintedAndExitOK = errors.New("examples requested")

// Options holds all CLI flags and arguments.
type Options struct {
	// Single record
	Name      string
	Structure string
	Strain    string
	Clade     string
	Subclade  string
	HA1       []int
	HA2       []int
	Color     string

	// Batch
	BatchFiles  []string
	H1Structure string
	H3Structure string
	KeepGoing   bool

	// Backend
	Backend string
	Script  string
	PyMOL   string

	// Output
	ImageDir   string
	SessionDir string
	DPI        int
	Caption    bool
	Manifest   string
	Report     string

	// Misc
	Quiet   bool
	Verbose bool
	NoColor bool
	Version bool
}

// Batch reports whether records come from batch tables.
func (o Options) Batch() bool { return len(o.BatchFiles) > 0 }

// Defaults returns the per-strain structure fallbacks.
func (o Options) Defaults() map[strain.Type]string {
	return map[strain.Type]string{strain.H1N1: o.H1Structure, strain.H3N2: o.H3Structure}
}

// NewFlagSet returns a FlagSet with hamark's usage text.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	installUsage(fs, name)
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help, showExamples bool

	// Single record
	fs.StringVar(&opt.Name, "name", "", "sequence name")
	fs.StringVar(&opt.Name, "n", "", "alias of --name")
	fs.StringVar(&opt.Structure, "structure", "", "structure file (mmCIF/PDB) loaded by the host")
	fs.StringVar(&opt.Structure, "s", "", "alias of --structure")
	fs.StringVar(&opt.Strain, "strain", "", "strain type: H1N1 | H3N2")
	fs.StringVar(&opt.Clade, "clade", "", "clade, e.g. 5a.2a")
	fs.StringVar(&opt.Subclade, "subclade", "", "subclade, e.g. C.1 (optional)")
	fs.Var(cliutil.NewPositions(&opt.HA1), "ha1", "HA1 mutation positions, e.g. 96,265 (repeatable)")
	fs.Var(cliutil.NewPositions(&opt.HA2), "ha2", "HA2 mutation positions (repeatable)")
	fs.StringVar(&opt.Color, "color", "", "mutation highlight color [grey20]")

	// Batch
	fs.Var(cliutil.NewStrings(&opt.BatchFiles), "batch", "batch table (repeatable) or '-'")
	fs.Var(cliutil.NewStrings(&opt.BatchFiles), "b", "alias of --batch")
	fs.StringVar(&opt.H1Structure, "h1-structure", "", "default H1 structure for records without one")
	fs.StringVar(&opt.H3Structure, "h3-structure", "", "default H3 structure for records without one")
	fs.BoolVar(&opt.KeepGoing, "keep-going", false, "continue after a failed record [false]")
	fs.BoolVar(&opt.KeepGoing, "k", false, "alias of --keep-going")

	// Backend
	fs.StringVar(&opt.Backend, "backend", BackendScript, "host backend: script | pymol [script]")
	fs.StringVar(&opt.Script, "script", "-", "PyMOL script output for --backend script ('-' = stdout) [-]")
	fs.StringVar(&opt.PyMOL, "pymol", pymol.DefaultBinary, "PyMOL executable for --backend pymol [pymol]")

	// Output
	fs.StringVar(&opt.ImageDir, "image-dir", naming.DefaultImageRoot, "image output root ["+naming.DefaultImageRoot+"]")
	fs.StringVar(&opt.SessionDir, "session-dir", naming.DefaultSessionRoot, "session output root ["+naming.DefaultSessionRoot+"]")
	fs.IntVar(&opt.DPI, "dpi", 300, "image resolution [300]")
	fs.BoolVar(&opt.Caption, "caption", false, "stamp a caption on rendered images (pymol backend) [false]")
	fs.StringVar(&opt.Manifest, "manifest", "", "write a JSON run manifest to this path")
	fs.StringVar(&opt.Report, "report", "", "write a mutation summary chart (PNG) to this path")

	// Misc
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress INFO and WARN lines [false]")
	fs.BoolVar(&opt.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&opt.Verbose, "verbose", false, "print debug lines [false]")
	fs.BoolVar(&opt.NoColor, "no-color", false, "disable colored diagnostics [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")
	fs.BoolVar(&showExamples, "examples", false, "show quickstart examples and exit [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if showExamples {
		return opt, ErrPrintedAndExitOK
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	if len(posArgs) > 0 {
		exp, err := cliutil.ExpandPositionals(posArgs)
		if err != nil {
			return opt, err
		}
		opt.BatchFiles = append(opt.BatchFiles, exp...)
	}
	return opt, Validate(&opt)
}

// Validate applies the CLI invariants.
func Validate(o *Options) error {
	single := o.Name != "" || o.Structure != "" || o.Strain != "" || o.Clade != "" ||
		o.Subclade != "" || len(o.HA1) > 0 || len(o.HA2) > 0 || o.Color != ""
	switch {
	case o.Batch() && single:
		return errors.New("batch tables conflict with single-record flags (--name/--strain/--clade/...)")
	case !o.Batch() && o.Strain == "":
		return errors.New("provide --strain and --clade, or a batch table")
	case !o.Batch() && o.Clade == "":
		return errors.New("--clade is required")
	}
	if o.Strain != "" {
		if _, err := strain.Parse(o.Strain); err != nil {
			return err
		}
	}
	stdinTables := 0
	for _, b := range o.BatchFiles {
		if b == "-" {
			stdinTables++
		}
	}
	if stdinTables > 1 {
		return errors.New("'-' (stdin) may be given only once")
	}
	switch o.Backend {
	case BackendScript:
		if o.Caption {
			return errors.New("--caption needs --backend pymol (images exist only after rendering)")
		}
		if o.Script == "" {
			return errors.New("--script must not be empty")
		}
	case BackendPyMOL:
		if o.PyMOL == "" {
			return errors.New("--pymol must not be empty")
		}
	default:
		return fmt.Errorf("invalid --backend %q", o.Backend)
	}
	if o.DPI <= 0 {
		return errors.New("--dpi must be > 0")
	}
	if o.ImageDir == "" || o.SessionDir == "" {
		return errors.New("--image-dir and --session-dir must not be empty")
	}
	if o.Quiet && o.Verbose {
		return errors.New("--quiet conflicts with --verbose")
	}
	return nil
}
