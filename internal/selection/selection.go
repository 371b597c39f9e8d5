// Package selection builds expressions in the host's selection language:
//
//	chain <group> and resi <residues>
//
// where <group> is a '+'-joined list of chain identifiers and <residues> a
// '+'-joined list of integers or a-b ranges. Expressions are only ever
// constructed here, never parsed back from the host.
package selection

import (
	"fmt"
	"strconv"
	"strings"
)

// Chains is a chain group such as A+C+E.
type Chains []string

func (c Chains) String() string { return strings.Join(c, "+") }

// ParseChains splits a '+'-joined chain group.
func ParseChains(spec string) (Chains, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("empty chain group")
	}
	parts := strings.Split(spec, "+")
	for _, p := range parts {
		if p == "" || strings.ContainsAny(p, " \t,") {
			return nil, fmt.Errorf("bad chain group %q", spec)
		}
	}
	return Chains(parts), nil
}

// Range is an inclusive residue interval; Lo == Hi for a single residue.
type Range struct{ Lo, Hi int }

func (r Range) String() string {
	if r.Lo == r.Hi {
		return strconv.Itoa(r.Lo)
	}
	return strconv.Itoa(r.Lo) + "-" + strconv.Itoa(r.Hi)
}

// Residues keeps author order; duplicates are kept as written.
type Residues []Range

func (rs Residues) String() string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.String()
	}
	return strings.Join(parts, "+")
}

// Ints turns residue positions into single-residue ranges.
func Ints(ns ...int) Residues {
	out := make(Residues, len(ns))
	for i, n := range ns {
		out[i] = Range{n, n}
	}
	return out
}

// ParseResidues reads a residue spec like "124-125+153-157+159".
func ParseResidues(spec string) (Residues, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("empty residue spec")
	}
	var out Residues
	for _, tok := range strings.Split(spec, "+") {
		lo, hi, isRange := strings.Cut(tok, "-")
		a, err := strconv.Atoi(lo)
		if err != nil || a <= 0 {
			return nil, fmt.Errorf("bad residue %q in %q", tok, spec)
		}
		b := a
		if isRange {
			b, err = strconv.Atoi(hi)
			if err != nil || b < a {
				return nil, fmt.Errorf("bad residue range %q in %q", tok, spec)
			}
		}
		out = append(out, Range{a, b})
	}
	return out, nil
}

// ParsePositions reads a mutation list. Separators may be ',' or '+';
// "" and "-" mean no positions.
func ParsePositions(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil, nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '+' || r == ' ' })
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("bad residue position %q", f)
		}
		out = append(out, n)
	}
	return out, nil
}

// Clause renders "chain <chains> and resi <residues>".
func Clause(c Chains, rs Residues) string {
	return "chain " + c.String() + " and resi " + rs.String()
}

// Mutations joins the non-empty per-group clauses with "or". It reports
// false when both lists are empty; callers must then leave the scene alone.
func Mutations(ha1Chains, ha2Chains Chains, ha1, ha2 []int) (string, bool) {
	var clauses []string
	if len(ha1) > 0 {
		clauses = append(clauses, "("+Clause(ha1Chains, Ints(ha1...))+")")
	}
	if len(ha2) > 0 {
		clauses = append(clauses, "("+Clause(ha2Chains, Ints(ha2...))+")")
	}
	if len(clauses) == 0 {
		return "", false
	}
	return strings.Join(clauses, " or "), true
}
