// Package version holds the hamark release string.
package version

// Version is overridden at build time with -ldflags "-X hamark/internal/version.Version=...".
var Version = "0.3.0"
