// Package host defines the narrow command surface hamark needs from a
// molecular-visualization program and a PyMOL command-script implementation
// of it.
//
// Everything the host does (structure parsing, representations, selection
// algebra, ray tracing, image and session I/O) stays on the other side of
// this interface.
package host

import (
	"context"
	"errors"
)

// Host is a single mutable scene. Calls are blocking and must be serialized
// by the caller; no implementation is safe for concurrent use.
type Host interface {
	Load(path string) error
	Hide(rep, target string) error
	Show(rep, target string) error
	Color(color, target string) error
	Select(name, expr string) error
	// Set changes a setting, globally when target is empty.
	Set(name, value, target string) error
	Space(name string) error
	SetView(view [18]float64) error
	Zoom(target string, buffer float64) error
	Clip(plane string, offset float64) error
	Deselect() error
	PNG(path string, dpi int) error
	Save(path string) error
	Delete(target string) error
}

// Flusher is implemented by hosts that queue commands and execute them in
// bulk. Output files exist only after Flush returns.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Discarder is implemented by queuing hosts that can drop commands not yet
// executed.
type Discarder interface {
	Discard()
}

// ErrEmptyArgument is returned for calls missing a required argument.
var ErrEmptyArgument = errors.New("empty host argument")
