package scene

import (
	"fmt"
	"path/filepath"

	"hamark/internal/naming"
	"hamark/internal/refdata"
)

// ExportImage frames the scene with the fixed camera for (protein, view)
// and renders it. It returns the image path. A missing camera is an error
// and nothing is rendered.
func (s *Scene) ExportImage(seq, view, protein, clade, subclade string) (string, error) {
	v, err := refdata.LookupView(protein, view)
	if err != nil {
		return "", err
	}
	if err := s.h.SetView(v); err != nil {
		return "", fmt.Errorf("set view: %w", err)
	}
	path := naming.ImagePath(s.cfg.ImageRoot, seq, protein, clade, subclade, view)
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return "", err
	}
	steps := []func() error{
		s.h.Deselect,
		func() error { return s.h.Zoom("visible", s.cfg.ZoomBuffer) },
		func() error { return s.h.Clip("near", s.cfg.ClipNear) },
		func() error { return s.h.Clip("far", s.cfg.ClipFar) },
		func() error { return s.h.PNG(path, s.cfg.DPI) },
	}
	if err := run("image "+view, steps); err != nil {
		return "", err
	}
	s.log.Infof("image saved to: %s", path)
	return path, nil
}

// SaveSession writes the whole scene to a session file and returns its path.
func (s *Scene) SaveSession(seq, clade, subclade, protein string) (string, error) {
	path := naming.SessionPath(s.cfg.SessionRoot, seq, protein, clade, subclade)
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return "", err
	}
	if err := s.h.Save(path); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	s.log.Infof("session saved to: %s", path)
	return path, nil
}
