package pymol

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"hamark/internal/cmdutil"
)

const fakePyMOL = `#!/bin/sh
for last; do :; done
echo "fake pymol running $last"
echo "Selector-Warning: fake" >&2
grep -E '^(png|save) ' "$last" | while read -r cmd path rest; do
  path=${path%,}
  : > "$path"
done
`

func writeExe(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell fake needs a POSIX sh")
	}
	p := filepath.Join(t.TempDir(), "pymol")
	if err := os.WriteFile(p, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRunnerFlush(t *testing.T) {
	bin := writeExe(t, fakePyMOL)
	out := t.TempDir()
	var logBuf bytes.Buffer
	r := New(bin, cmdutil.NewLogger(&logBuf, false, true, true))
	defer r.Close()

	img := filepath.Join(out, "a_side.png")
	pse := filepath.Join(out, "a.pse")
	if err := r.Load("/data/4lxv.cif"); err != nil {
		t.Fatal(err)
	}
	if err := r.PNG(img, 300); err != nil {
		t.Fatal(err)
	}
	if err := r.Save(pse); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(r.Pending(), "png "+img) {
		t.Fatalf("pending script:\n%s", r.Pending())
	}
	if err := r.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v\n%s", err, logBuf.String())
	}
	for _, p := range []string{img, pse} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("fake pymol did not write %s", p)
		}
	}
	if r.Pending() != "" {
		t.Fatalf("queue not drained")
	}
	log := logBuf.String()
	if !strings.Contains(log, "DEBUG: pymol: fake pymol running") || !strings.Contains(log, "WARN: pymol: Selector-Warning") {
		t.Fatalf("child output not relayed:\n%s", log)
	}
}

func TestRunnerFlushEmptyIsNoop(t *testing.T) {
	r := New("/nonexistent/pymol", nil)
	if err := r.Flush(context.Background()); err != nil {
		t.Fatalf("empty flush should not start pymol: %v", err)
	}
}

func TestRunnerExitStatus(t *testing.T) {
	bin := writeExe(t, "#!/bin/sh\necho 'Error: no such file' >&2\nexit 3\n")
	r := New(bin, nil)
	defer r.Close()
	_ = r.Load("missing.cif")
	if err := r.Flush(context.Background()); err == nil {
		t.Fatalf("want error for non-zero exit")
	}
}

func TestRunnerMissingBinary(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "nope"), nil)
	defer r.Close()
	_ = r.Deselect()
	if err := r.Flush(context.Background()); err == nil {
		t.Fatalf("want start error")
	}
}

func TestRunnerDiscardDropsQueue(t *testing.T) {
	bin := writeExe(t, fakePyMOL)
	out := t.TempDir()
	r := New(bin, nil)
	defer r.Close()

	dropped := filepath.Join(out, "bad_side.png")
	kept := filepath.Join(out, "good_side.png")
	if err := r.PNG(dropped, 300); err != nil {
		t.Fatal(err)
	}
	r.Discard()
	if r.Pending() != "" {
		t.Fatalf("queue not cleared:\n%s", r.Pending())
	}
	if err := r.PNG(kept, 300); err != nil {
		t.Fatal(err)
	}
	if err := r.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(kept); err != nil {
		t.Fatalf("queued image not rendered: %v", err)
	}
	if _, err := os.Stat(dropped); err == nil {
		t.Fatalf("discarded command ran")
	}
}
