// Package cmdutil holds the console logger shared by hamark's commands.
package cmdutil

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Logger writes leveled, optionally colored lines. Quiet suppresses INFO and
// WARN; ERROR always prints. DEBUG prints only when Verbose is set.
type Logger struct {
	dst     io.Writer
	Quiet   bool
	Verbose bool

	warns int
	info  *color.Color
	warn  *color.Color
	fail  *color.Color
	debug *color.Color
}

// NewLogger returns a Logger writing to dst.
func NewLogger(dst io.Writer, quiet, verbose, noColor bool) *Logger {
	l := &Logger{
		dst:     dst,
		Quiet:   quiet,
		Verbose: verbose,
		info:    color.New(color.FgCyan),
		warn:    color.New(color.FgYellow, color.Bold),
		fail:    color.New(color.FgRed, color.Bold),
		debug:   color.New(color.Faint),
	}
	if noColor {
		for _, c := range []*color.Color{l.info, l.warn, l.fail, l.debug} {
			c.DisableColor()
		}
	}
	return l
}

// Discard returns a Logger that drops everything.
func Discard() *Logger { return NewLogger(io.Discard, true, false, true) }

func (l *Logger) emit(c *color.Color, tag, format string, a ...any) {
	_, _ = c.Fprint(l.dst, tag)
	_, _ = fmt.Fprintf(l.dst, format+"\n", a...)
}

func (l *Logger) Infof(format string, a ...any) {
	if l.Quiet {
		return
	}
	l.emit(l.info, "INFO: ", format, a...)
}

func (l *Logger) Debugf(format string, a ...any) {
	if !l.Verbose {
		return
	}
	l.emit(l.debug, "DEBUG: ", format, a...)
}

// Warnf reports a recoverable problem. The count includes suppressed lines.
func (l *Logger) Warnf(format string, a ...any) {
	l.warns++
	if l.Quiet {
		return
	}
	l.emit(l.warn, "WARN: ", format, a...)
}

func (l *Logger) Errorf(format string, a ...any) {
	l.emit(l.fail, "ERROR: ", format, a...)
}

// Warnings returns how many warnings were reported.
func (l *Logger) Warnings() int { return l.warns }
