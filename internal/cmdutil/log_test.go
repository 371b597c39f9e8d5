package cmdutil

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var b bytes.Buffer
	l := NewLogger(&b, false, false, true)
	l.Infof("image saved to %s", "x.png")
	l.Debugf("hidden")
	l.Warnf("clade %s not recognized", "9z")
	l.Errorf("boom")
	want := "INFO: image saved to x.png\nWARN: clade 9z not recognized\nERROR: boom\n"
	if b.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", b.String(), want)
	}
	if l.Warnings() != 1 {
		t.Fatalf("Warnings()=%d", l.Warnings())
	}
}

func TestLoggerQuietKeepsErrors(t *testing.T) {
	var b bytes.Buffer
	l := NewLogger(&b, true, true, true)
	l.Infof("a")
	l.Warnf("b")
	l.Debugf("c")
	l.Errorf("d")
	out := b.String()
	if strings.Contains(out, "INFO") || strings.Contains(out, "WARN") {
		t.Fatalf("quiet leaked: %q", out)
	}
	if !strings.Contains(out, "DEBUG: c") || !strings.Contains(out, "ERROR: d") {
		t.Fatalf("missing lines: %q", out)
	}
	if l.Warnings() != 1 {
		t.Fatalf("suppressed warnings still count")
	}
}
