package host

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Script writes PyMOL commands, one per line. It can be run later with
// `pymol -cq file.pml`. The first write error is sticky and returned by
// every later call.
type Script struct {
	w   *bufio.Writer
	n   int
	err error
}

// NewScript returns a Script writing to w. Call Flush before w is closed.
func NewScript(w io.Writer) *Script {
	return &Script{w: bufio.NewWriter(w)}
}

// Commands returns how many commands were written.
func (s *Script) Commands() int { return s.n }

// Comment writes a "# ..." line; PyMOL ignores it.
func (s *Script) Comment(format string, a ...any) error {
	return s.line("# " + fmt.Sprintf(format, a...))
}

// Flush pushes buffered commands to the underlying writer.
func (s *Script) Flush() error {
	if s.err != nil {
		return s.err
	}
	s.err = s.w.Flush()
	return s.err
}

func (s *Script) line(l string) error {
	if s.err != nil {
		return s.err
	}
	if _, err := s.w.WriteString(l + "\n"); err != nil {
		s.err = err
	}
	return s.err
}

func (s *Script) cmd(name string, args ...string) error {
	var b strings.Builder
	b.WriteString(name)
	first := true
	for _, a := range args {
		if a == "" {
			continue
		}
		if first {
			b.WriteByte(' ')
			first = false
		} else {
			b.WriteString(", ")
		}
		b.WriteString(a)
	}
	if err := s.line(b.String()); err != nil {
		return err
	}
	s.n++
	return nil
}

func required(op string, vals ...string) error {
	for _, v := range vals {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s: %w", op, ErrEmptyArgument)
		}
	}
	return nil
}

// quote wraps paths the command parser would otherwise split.
func quote(p string) string {
	if strings.ContainsAny(p, " ,;\t\"") {
		return strconv.Quote(p)
	}
	return p
}

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func (s *Script) Load(path string) error {
	if err := required("load", path); err != nil {
		return err
	}
	return s.cmd("load", quote(path))
}

func (s *Script) Hide(rep, target string) error { return s.cmd("hide", rep, target) }

func (s *Script) Show(rep, target string) error { return s.cmd("show", rep, target) }

func (s *Script) Color(color, target string) error {
	if err := required("color", color, target); err != nil {
		return err
	}
	return s.cmd("color", color, target)
}

func (s *Script) Select(name, expr string) error {
	if err := required("select", name, expr); err != nil {
		return err
	}
	return s.cmd("select", name, expr)
}

func (s *Script) Set(name, value, target string) error {
	if err := required("set", name, value); err != nil {
		return err
	}
	return s.cmd("set", name, value, target)
}

func (s *Script) Space(name string) error {
	if err := required("space", name); err != nil {
		return err
	}
	return s.cmd("space", name)
}

func (s *Script) SetView(v [18]float64) error {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = strconv.FormatFloat(f, 'f', 9, 64)
	}
	return s.cmd("set_view", "("+strings.Join(parts, ", ")+")")
}

func (s *Script) Zoom(target string, buffer float64) error {
	return s.cmd("zoom", target, num(buffer))
}

func (s *Script) Clip(plane string, offset float64) error {
	if err := required("clip", plane); err != nil {
		return err
	}
	return s.cmd("clip", plane, num(offset))
}

func (s *Script) Deselect() error { return s.cmd("deselect") }

// PNG always ray-traces; without a GUI PyMOL writes nothing otherwise.
func (s *Script) PNG(path string, dpi int) error {
	if err := required("png", path); err != nil {
		return err
	}
	return s.cmd("png", quote(path), "dpi="+strconv.Itoa(dpi), "ray=1")
}

func (s *Script) Save(path string) error {
	if err := required("save", path); err != nil {
		return err
	}
	return s.cmd("save", quote(path))
}

func (s *Script) Delete(target string) error {
	if err := required("delete", target); err != nil {
		return err
	}
	return s.cmd("delete", target)
}

var _ Host = (*Script)(nil)
