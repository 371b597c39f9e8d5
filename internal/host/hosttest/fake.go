// Package hosttest provides an in-memory host.Host for tests.
package hosttest

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"sort"
	"strings"

	"hamark/internal/host"
)

// Call is one recorded host command.
type Call struct {
	Op   string
	Args []string
}

func (c Call) String() string { return c.Op + "(" + strings.Join(c.Args, ", ") + ")" }

// State is a coarse model of the host scene.
type State struct {
	Objects    []string
	Selections map[string]string
	Colors     map[string]string
	Shown      []string
	Settings   map[string]string
}

// Fake records every call and keeps a State. With WriteFiles set, PNG and
// Save create real files so callers can check outputs on disk.
type Fake struct {
	Calls      []Call
	WriteFiles bool
	// FailOn makes the named op return the error.
	FailOn map[string]error

	state State
	shown map[string]bool
}

// New returns an empty Fake.
func New() *Fake {
	f := &Fake{}
	f.state = State{Selections: map[string]string{}, Colors: map[string]string{}, Settings: map[string]string{}}
	f.shown = map[string]bool{}
	return f
}

// State returns a copy of the scene model.
func (f *Fake) State() State {
	s := State{
		Objects:    append([]string(nil), f.state.Objects...),
		Selections: map[string]string{},
		Colors:     map[string]string{},
		Settings:   map[string]string{},
	}
	for k, v := range f.state.Selections {
		s.Selections[k] = v
	}
	for k, v := range f.state.Colors {
		s.Colors[k] = v
	}
	for k, v := range f.state.Settings {
		s.Settings[k] = v
	}
	for k := range f.shown {
		s.Shown = append(s.Shown, k)
	}
	sort.Strings(s.Shown)
	return s
}

// Ops returns the op names in call order.
func (f *Fake) Ops() []string {
	out := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		out[i] = c.Op
	}
	return out
}

// Count returns how many calls used op.
func (f *Fake) Count(op string) int {
	n := 0
	for _, c := range f.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Find returns the calls for op.
func (f *Fake) Find(op string) []Call {
	var out []Call
	for _, c := range f.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// ClearCalls forgets recorded calls but keeps the scene model.
func (f *Fake) ClearCalls() { f.Calls = nil }

func (f *Fake) record(op string, args ...string) error {
	f.Calls = append(f.Calls, Call{Op: op, Args: args})
	if err := f.FailOn[op]; err != nil {
		return err
	}
	return nil
}

func (f *Fake) Load(path string) error {
	if err := f.record("load", path); err != nil {
		return err
	}
	f.state.Objects = append(f.state.Objects, path)
	return nil
}

func (f *Fake) Hide(rep, target string) error {
	if err := f.record("hide", rep, target); err != nil {
		return err
	}
	if target == "" || target == "all" {
		f.shown = map[string]bool{}
		return nil
	}
	for k := range f.shown {
		if strings.HasSuffix(k, "@"+target) {
			delete(f.shown, k)
		}
	}
	return nil
}

func (f *Fake) Show(rep, target string) error {
	if err := f.record("show", rep, target); err != nil {
		return err
	}
	if target == "" {
		target = "all"
	}
	f.shown[rep+"@"+target] = true
	return nil
}

func (f *Fake) Color(c, target string) error {
	if err := f.record("color", c, target); err != nil {
		return err
	}
	if target == "all" {
		f.state.Colors = map[string]string{}
	}
	f.state.Colors[target] = c
	return nil
}

func (f *Fake) Select(name, expr string) error {
	if err := f.record("select", name, expr); err != nil {
		return err
	}
	f.state.Selections[name] = expr
	return nil
}

func (f *Fake) Set(name, value, target string) error {
	if err := f.record("set", name, value, target); err != nil {
		return err
	}
	key := name
	if target != "" {
		key += "@" + target
	}
	f.state.Settings[key] = value
	return nil
}

func (f *Fake) Space(name string) error {
	if err := f.record("space", name); err != nil {
		return err
	}
	f.state.Settings["space"] = name
	return nil
}

func (f *Fake) SetView(v [18]float64) error {
	return f.record("set_view", fmt.Sprint(v))
}

func (f *Fake) Zoom(target string, buffer float64) error {
	return f.record("zoom", target, fmt.Sprint(buffer))
}

func (f *Fake) Clip(plane string, offset float64) error {
	return f.record("clip", plane, fmt.Sprint(offset))
}

func (f *Fake) Deselect() error { return f.record("deselect") }

func (f *Fake) PNG(path string, dpi int) error {
	if err := f.record("png", path, fmt.Sprint(dpi)); err != nil {
		return err
	}
	if f.WriteFiles {
		return WhitePNG(path, 120, 80)
	}
	return nil
}

func (f *Fake) Save(path string) error {
	if err := f.record("save", path); err != nil {
		return err
	}
	if f.WriteFiles {
		return os.WriteFile(path, []byte("session"), 0o644)
	}
	return nil
}

func (f *Fake) Delete(target string) error {
	if err := f.record("delete", target); err != nil {
		return err
	}
	if target == "all" {
		f.state.Objects = nil
		f.state.Selections = map[string]string{}
		for k := range f.state.Colors {
			if k != "all" {
				delete(f.state.Colors, k)
			}
		}
		for k := range f.state.Settings {
			if strings.Contains(k, "@") {
				delete(f.state.Settings, k)
			}
		}
		return nil
	}
	delete(f.state.Selections, target)
	return nil
}

// Flushing is a Fake that also satisfies host.Flusher.
type Flushing struct {
	*Fake
	Flushes  int
	FlushErr error
	Discards int
}

func (f *Flushing) Discard() { f.Discards++ }

func (f *Flushing) Flush(ctx context.Context) error {
	f.Flushes++
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.FlushErr
}

// WhitePNG writes a blank w x h PNG.
func WhitePNG(path string, w, h int) error {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(fh, img); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

var (
	_ host.Host      = (*Fake)(nil)
	_ host.Flusher   = (*Flushing)(nil)
	_ host.Discarder = (*Flushing)(nil)
)
