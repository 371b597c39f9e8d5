// Package naming builds the deterministic output paths for rendered images
// and saved sessions.
package naming

import (
	"path/filepath"
	"strings"
)

// Default output roots, relative to the working directory.
const (
	DefaultImageRoot   = "ImageOutput"
	DefaultSessionRoot = "StructureSessions"
	// NoSeqName stands in for an empty sequence name in image filenames.
	NoSeqName  = "NoSeqName"
	ImageExt   = ".png"
	SessionExt = ".pse"
)

// StripDots removes every '.' ("5a.2a.1" -> "5a2a1").
func StripDots(s string) string { return strings.ReplaceAll(s, ".", "") }

// ImageName returns
//
//	{seq|NoSeqName}_{protein}_{clade}[_{subclade}]_{view}.png
//
// with dots removed from clade and subclade.
func ImageName(seq, protein, clade, subclade, view string) string {
	if seq == "" {
		seq = NoSeqName
	}
	parts := []string{seq, protein, StripDots(clade)}
	if subclade != "" {
		parts = append(parts, StripDots(subclade))
	}
	parts = append(parts, view)
	return strings.Join(parts, "_") + ImageExt
}

// SessionName returns [{seq}_]{clade}[_{subclade}].pse. The protein is not
// part of the name; it only picks the directory.
func SessionName(seq, clade, subclade string) string {
	var parts []string
	if seq != "" {
		parts = append(parts, seq)
	}
	parts = append(parts, StripDots(clade))
	if subclade != "" {
		parts = append(parts, StripDots(subclade))
	}
	return strings.Join(parts, "_") + SessionExt
}

// ImagePath joins root/protein/ImageName(...).
func ImagePath(root, seq, protein, clade, subclade, view string) string {
	return filepath.Join(root, protein, ImageName(seq, protein, clade, subclade, view))
}

// SessionPath joins root/protein/SessionName(...).
func SessionPath(root, seq, protein, clade, subclade string) string {
	return filepath.Join(root, protein, SessionName(seq, clade, subclade))
}
