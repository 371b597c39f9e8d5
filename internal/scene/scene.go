// Package scene applies hamark's annotation layers to a host scene.
//
// A Scene wraps one host.Host and owns it exclusively; every operation is a
// method on the Scene so separate hosts can be driven side by side without
// shared state.
package scene

import (
	"fmt"
	"os"

	"hamark/internal/cmdutil"
	"hamark/internal/host"
	"hamark/internal/naming"
	"hamark/internal/refdata"
)

// Config holds the fixed export parameters.
type Config struct {
	ImageRoot   string
	SessionRoot string
	DPI         int
	ZoomBuffer  float64
	ClipNear    float64
	ClipFar     float64
}

// DefaultConfig matches the published figure settings: 300 dpi, tight zoom,
// a 10 Å slab.
func DefaultConfig() Config {
	return Config{
		ImageRoot:   naming.DefaultImageRoot,
		SessionRoot: naming.DefaultSessionRoot,
		DPI:         300,
		ZoomBuffer:  0,
		ClipNear:    -5,
		ClipFar:     5,
	}
}

// Scene is the annotation session for one host.
type Scene struct {
	h     host.Host
	cfg   Config
	log   *cmdutil.Logger
	notes []string
}

// New returns a Scene. A nil logger discards output.
func New(h host.Host, cfg Config, log *cmdutil.Logger) *Scene {
	if log == nil {
		log = cmdutil.Discard()
	}
	return &Scene{h: h, cfg: cfg, log: log}
}

// Host returns the wrapped host.
func (s *Scene) Host() host.Host { return s.h }

// Config returns the export parameters.
func (s *Scene) Config() Config { return s.cfg }

// Notes returns the recoverable diagnostics raised since the last Reset.
func (s *Scene) Notes() []string { return append([]string(nil), s.notes...) }

func (s *Scene) note(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	s.notes = append(s.notes, msg)
	s.log.Warnf("%s", msg)
}

// Reset returns the host to an empty, default-colored scene. Calling it
// twice leaves the same state as calling it once.
func (s *Scene) Reset() error {
	s.notes = nil
	steps := []func() error{
		func() error { return s.h.Hide("everything", "") },
		func() error { return s.h.Color(refdata.DefaultColor, "all") },
		func() error { return s.h.Show("surface", "") },
		func() error { return s.h.Show("cartoon", "") },
		func() error { return s.h.Delete("all") },
	}
	return run("reset", steps)
}

type setting struct{ name, value string }

// Ray-trace and lighting profile applied after every load.
var baseProfile = []setting{
	{"surface_color", refdata.DefaultColor},
	{"cartoon_color", refdata.DefaultColor},
	{"bg_rgb", "[1, 1, 1]"},
	{"ambient", "0.4"},
}

var rayProfile = []setting{
	{"ray_trace_fog", "0"},
	{"depth_cue", "1"},
	{"ray_trace_mode", "1"},
	{"ray_trace_gain", "0.002"},
}

// Setup loads the structure and applies the base appearance. A load failure
// is fatal for the record.
func (s *Scene) Setup(structurePath string) error {
	if err := s.h.Load(structurePath); err != nil {
		return fmt.Errorf("load %s: %w", structurePath, err)
	}
	steps := []func() error{
		func() error { return s.h.Hide("all", "") },
		func() error { return s.h.Show("surface", "") },
		func() error { return s.h.Show("cartoon", "") },
	}
	for _, st := range baseProfile {
		st := st
		steps = append(steps, func() error { return s.h.Set(st.name, st.value, "") })
	}
	steps = append(steps, func() error { return s.h.Space("cmyk") })
	for _, st := range rayProfile {
		st := st
		steps = append(steps, func() error { return s.h.Set(st.name, st.value, "") })
	}
	return run("setup", steps)
}

// paint selects expr under name and gives it a colored surface.
func (s *Scene) paint(name, expr, color string) error {
	if err := s.h.Select(name, expr); err != nil {
		return err
	}
	if err := s.h.Color(color, name); err != nil {
		return err
	}
	if err := s.h.Show("surface", name); err != nil {
		return err
	}
	return s.h.Set("surface_color", color, name)
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return nil
}

func run(stage string, steps []func() error) error {
	for _, f := range steps {
		if err := f(); err != nil {
			return fmt.Errorf("%s: %w", stage, err)
		}
	}
	return nil
}
