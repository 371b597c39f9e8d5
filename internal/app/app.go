// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"syscall"

	"hamark/internal/caption"
	"hamark/internal/cli"
	"hamark/internal/cmdutil"
	"hamark/internal/host"
	"hamark/internal/pipeline"
	"hamark/internal/pymol"
	"hamark/internal/records"
	"hamark/internal/refdata"
	"hamark/internal/report"
	"hamark/internal/scene"
	"hamark/internal/selection"
	"hamark/internal/strain"
	"hamark/internal/version"
)

const progName = "hamark"

// Exit codes.
const (
	ExitOK          = 0
	ExitFailed      = 1
	ExitUsage       = 2
	ExitRuntime     = 3
	ExitInterrupted = 130
)

func isBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// flushOut flushes w and maps the result to an exit code, treating a closed
// reader as success.
func flushOut(w *bufio.Writer, stderr io.Writer, code int) int {
	if err := w.Flush(); isBrokenPipe(err) {
		return code
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitRuntime
	}
	return code
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := cli.NewFlagSet(progName)
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(outw)
		fs.Usage()
		return flushOut(outw, stderr, ExitOK)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, cli.ErrPrintedAndExitOK):
			cli.PrintExamples(outw, progName)
			return flushOut(outw, stderr, ExitOK)
		case errors.Is(err, flag.ErrHelp):
			fs.SetOutput(outw)
			fs.Usage()
			return flushOut(outw, stderr, ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.Usage()
		return ExitUsage
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", progName, version.Version)
		return flushOut(outw, stderr, ExitOK)
	}

	log := cmdutil.NewLogger(stderr, opts.Quiet, opts.Verbose, opts.NoColor)

	list, err := loadRecords(opts, os.Stdin)
	if err != nil {
		log.Errorf("%v", err)
		return ExitUsage
	}
	if len(list) == 0 {
		log.Warnf("no records to process")
		return ExitOK
	}

	code := run(parent, opts, list, outw, log)
	return flushOut(outw, stderr, code)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// loadRecords builds the record list from batch tables or the single-record
// flags, then fills missing structures from the per-strain defaults.
func loadRecords(opts cli.Options, stdin io.Reader) ([]records.Record, error) {
	var list []records.Record
	if opts.Batch() {
		for _, path := range opts.BatchFiles {
			var (
				recs []records.Record
				err  error
			)
			if path == "-" {
				recs, err = records.Read(stdin, "<stdin>")
			} else {
				recs, err = records.LoadTSV(path)
			}
			if err != nil {
				return nil, err
			}
			list = append(list, recs...)
		}
	} else {
		st, err := strain.Parse(opts.Strain)
		if err != nil {
			return nil, err
		}
		list = append(list, records.Record{
			Name:      opts.Name,
			Structure: opts.Structure,
			Strain:    st,
			Clade:     opts.Clade,
			Subclade:  opts.Subclade,
			HA1:       opts.HA1,
			HA2:       opts.HA2,
			Color:     opts.Color,
		})
	}
	defaults := records.Structures(opts.Defaults())
	for i := range list {
		if err := defaults.Resolve(&list[i]); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// backend is the selected host plus whatever must happen once the batch is
// over.
type backend struct {
	host   host.Host
	script *host.Script
	finish func() error
}

func openBackend(opts cli.Options, stdout io.Writer, log *cmdutil.Logger) (backend, error) {
	switch opts.Backend {
	case cli.BackendPyMOL:
		r := pymol.New(opts.PyMOL, log)
		return backend{host: r, finish: r.Close}, nil
	default:
		if opts.Script == "-" {
			s := host.NewScript(stdout)
			return backend{host: s, script: s, finish: s.Flush}, nil
		}
		fh, err := os.Create(opts.Script)
		if err != nil {
			return backend{}, err
		}
		s := host.NewScript(fh)
		finish := func() error {
			if err := s.Flush(); err != nil {
				fh.Close()
				return err
			}
			return fh.Close()
		}
		return backend{host: s, script: s, finish: finish}, nil
	}
}

func run(ctx context.Context, opts cli.Options, list []records.Record, stdout io.Writer, log *cmdutil.Logger) int {
	be, err := openBackend(opts, stdout, log)
	if err != nil {
		log.Errorf("%v", err)
		return ExitRuntime
	}
	if be.script != nil {
		_ = be.script.Comment("%s %s: %d record(s)", progName, version.Version, len(list))
	}

	cfg := scene.DefaultConfig()
	cfg.ImageRoot = opts.ImageDir
	cfg.SessionRoot = opts.SessionDir
	cfg.DPI = opts.DPI
	sc := scene.New(be.host, cfg, log)

	sum, batchErr := pipeline.RunBatch(ctx, sc, list, pipeline.BatchOptions{
		KeepGoing: opts.KeepGoing,
		OnResult: func(res pipeline.Result) {
			if res.Err != nil {
				log.Errorf("%s: %v", res.Record, res.Err)
				return
			}
			log.Infof("%s: %d image(s), session %s", res.Record, len(res.Images), res.Session)
		},
	})

	code := ExitOK
	switch {
	case batchErr == nil:
	case errors.Is(batchErr, context.Canceled), errors.Is(batchErr, context.DeadlineExceeded):
		code = ExitInterrupted
	case opts.KeepGoing:
		code = ExitFailed
	default:
		code = ExitRuntime
	}

	if err := be.finish(); err != nil {
		log.Errorf("finish %s backend: %v", opts.Backend, err)
		if code == ExitOK {
			code = ExitRuntime
		}
	}

	if opts.Caption {
		if err := stampCaptions(sum); err != nil {
			log.Errorf("caption: %v", err)
			if code == ExitOK {
				code = ExitRuntime
			}
		}
	}

	if opts.Manifest != "" {
		scriptPath := ""
		if opts.Backend == cli.BackendScript {
			scriptPath = opts.Script
		}
		if err := report.WriteManifest(opts.Manifest, report.NewRun(opts.Backend, scriptPath), sum); err != nil {
			log.Errorf("manifest: %v", err)
			if code == ExitOK {
				code = ExitRuntime
			}
		} else {
			log.Infof("manifest saved to: %s", opts.Manifest)
		}
	}

	if opts.Report != "" {
		switch err := report.WriteChart(opts.Report, sum); {
		case errors.Is(err, report.ErrNothingToChart):
			log.Warnf("report: %v", err)
		case err != nil:
			log.Errorf("report: %v", err)
			if code == ExitOK {
				code = ExitRuntime
			}
		default:
			log.Infof("report saved to: %s", opts.Report)
		}
	}

	if sum.Failed > 0 {
		log.Warnf("%d of %d record(s) failed", sum.Failed, len(sum.Results))
	}
	return code
}

// stampCaptions labels every image of every successful record. Images are
// exported in refdata.ViewLabels order.
func stampCaptions(sum pipeline.Summary) error {
	for _, res := range sum.Results {
		if !res.OK() {
			continue
		}
		rec := res.Record
		for i, path := range res.Images {
			if i >= len(refdata.ViewLabels) {
				break
			}
			label := caption.Text(rec.Name, res.Protein, rec.Clade,
				selection.StripSubcladePrefix(rec.Subclade), refdata.ViewLabels[i])
			if err := caption.StampFile(path, label); err != nil {
				return err
			}
		}
	}
	return nil
}
