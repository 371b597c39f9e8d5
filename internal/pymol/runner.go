// Package pymol executes queued host commands with the PyMOL binary.
package pymol

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"hamark/internal/cmdutil"
	"hamark/internal/host"
)

// DefaultBinary is looked up on PATH.
const DefaultBinary = "pymol"

// Runner queues commands in a PyMOL script and runs them headless on Flush.
// Each Flush starts a fresh PyMOL process, so nothing carries over between
// flushes.
type Runner struct {
	*host.Script

	bin    string
	args   []string
	log    *cmdutil.Logger
	buf    bytes.Buffer
	tmpDir string
	runs   int
}

// New returns a Runner for the given binary ("" means DefaultBinary).
func New(bin string, log *cmdutil.Logger) *Runner {
	if bin == "" {
		bin = DefaultBinary
	}
	if log == nil {
		log = cmdutil.Discard()
	}
	r := &Runner{bin: bin, args: []string{"-c", "-q"}, log: log}
	r.Script = host.NewScript(&r.buf)
	return r
}

// Pending returns the queued script text.
func (r *Runner) Pending() string {
	_ = r.Script.Flush()
	return r.buf.String()
}

// Flush writes the queued commands to a temporary .pml file and runs it.
// The child's output is relayed line by line to the logger's writer.
func (r *Runner) Flush(ctx context.Context) error {
	if err := r.Script.Flush(); err != nil {
		return err
	}
	if r.buf.Len() == 0 {
		return nil
	}
	if r.tmpDir == "" {
		dir, err := os.MkdirTemp("", "hamark-pymol-")
		if err != nil {
			return err
		}
		r.tmpDir = dir
	}
	r.runs++
	script := filepath.Join(r.tmpDir, fmt.Sprintf("run%03d.pml", r.runs))
	if err := os.WriteFile(script, r.buf.Bytes(), 0o644); err != nil {
		return err
	}
	r.buf.Reset()

	cmd := exec.CommandContext(ctx, r.bin, append(append([]string(nil), r.args...), script)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}
	r.log.Debugf("%s %v %s", r.bin, r.args, script)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", r.bin, err)
	}

	var g errgroup.Group
	g.Go(func() error { return relay(stdout, r.log, false) })
	g.Go(func() error { return relay(stderr, r.log, true) })
	relayErr := g.Wait()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("%s %s: %w", r.bin, filepath.Base(script), err)
	}
	return relayErr
}

func relay(rd io.Reader, log *cmdutil.Logger, isErr bool) error {
	sc := bufio.NewScanner(rd)
	for sc.Scan() {
		if isErr {
			log.Warnf("pymol: %s", sc.Text())
		} else {
			log.Debugf("pymol: %s", sc.Text())
		}
	}
	return sc.Err()
}

// Discard drops queued commands that were never run.
func (r *Runner) Discard() {
	r.buf.Reset()
	r.Script = host.NewScript(&r.buf)
}

// Close removes the temporary scripts.
func (r *Runner) Close() error {
	if r.tmpDir == "" {
		return nil
	}
	err := os.RemoveAll(r.tmpDir)
	r.tmpDir = ""
	return err
}

var (
	_ host.Host    = (*Runner)(nil)
	_ host.Flusher = (*Runner)(nil)
)
