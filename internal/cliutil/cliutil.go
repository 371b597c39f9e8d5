// internal/cliutil/cliutil.go
package cliutil

import (
	"flag"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"hamark/internal/selection"
)

// BoolFlags returns names of flags that don't take a value.
func BoolFlags(fs *flag.FlagSet) map[string]bool {
	m := map[string]bool{}
	fs.VisitAll(func(f *flag.Flag) {
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			m[f.Name] = true
		}
	})
	return m
}

// SplitFlagsAndPositionals lets positionals (batch tables) appear before,
// between or after flags. '--' ends flag parsing; a lone '-' is positional.
func SplitFlagsAndPositionals(fs *flag.FlagSet, argv []string) (flagArgs, posArgs []string) {
	boolFlags := BoolFlags(fs)
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--":
			return flagArgs, append(posArgs, argv[i+1:]...)
		case arg == "-" || !strings.HasPrefix(arg, "-"):
			posArgs = append(posArgs, arg)
		case strings.Contains(arg, "="):
			flagArgs = append(flagArgs, arg)
		default:
			flagArgs = append(flagArgs, arg)
			if !boolFlags[strings.TrimLeft(arg, "-")] && i+1 < len(argv) {
				i++
				flagArgs = append(flagArgs, argv[i])
			}
		}
	}
	return flagArgs, posArgs
}

// ExpandPositionals expands globs among path positionals; a glob matching
// nothing is an error.
func ExpandPositionals(posArgs []string) ([]string, error) {
	var out []string
	for _, a := range posArgs {
		if a == "-" || !strings.ContainsAny(a, "*?[") {
			out = append(out, a)
			continue
		}
		m, err := filepath.Glob(a)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %v", a, err)
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("no input matched %q", a)
		}
		out = append(out, m...)
	}
	return out, nil
}

// Positions is a repeatable flag.Value for residue positions; each use may
// carry a comma- or '+'-separated list.
type Positions struct{ dst *[]int }

// NewPositions binds a Positions value to dst.
func NewPositions(dst *[]int) *Positions { return &Positions{dst: dst} }

func (p *Positions) String() string {
	if p == nil || p.dst == nil {
		return ""
	}
	parts := make([]string, len(*p.dst))
	for i, n := range *p.dst {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func (p *Positions) Set(v string) error {
	ns, err := selection.ParsePositions(v)
	if err != nil {
		return err
	}
	*p.dst = append(*p.dst, ns...)
	return nil
}

// Strings is a repeatable string flag.
type Strings struct{ dst *[]string }

// NewStrings binds a Strings value to dst.
func NewStrings(dst *[]string) *Strings { return &Strings{dst: dst} }

func (s *Strings) String() string {
	if s == nil || s.dst == nil {
		return ""
	}
	return strings.Join(*s.dst, ",")
}

func (s *Strings) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}
