// Package strain names the influenza A subtypes hamark knows how to annotate.
package strain

import (
	"errors"
	"fmt"
	"strings"
)

// Type is an influenza A subtype. The zero value is not a valid strain.
type Type int

const (
	Unknown Type = iota
	H1N1
	H3N2
)

// ErrUnknown is returned by Parse for anything other than H1N1 or H3N2.
var ErrUnknown = errors.New("unknown strain type")

// All lists the supported strains in display order.
var All = []Type{H1N1, H3N2}

func (t Type) String() string {
	switch t {
	case H1N1:
		return "H1N1"
	case H3N2:
		return "H3N2"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t is one of the supported strains.
func (t Type) Valid() bool { return t == H1N1 || t == H3N2 }

// Protein returns the HA subtype label used in output paths ("H1", "H3").
func (t Type) Protein() (string, error) {
	switch t {
	case H1N1:
		return "H1", nil
	case H3N2:
		return "H3", nil
	}
	return "", fmt.Errorf("%w: %s (use H1N1 or H3N2)", ErrUnknown, t)
}

// Parse accepts "H1N1" or "H3N2" in any case.
func Parse(s string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "H1N1":
		return H1N1, nil
	case "H3N2":
		return H3N2, nil
	}
	return Unknown, fmt.Errorf("%w: %q (use H1N1 or H3N2)", ErrUnknown, s)
}
