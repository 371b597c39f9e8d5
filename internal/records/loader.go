package records

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"hamark/internal/selection"
	"hamark/internal/strain"
)

// Columns of a batch table, in order. A trailing color column is optional.
var Columns = []string{"name", "structure", "strain", "clade", "subclade", "ha1", "ha2", "color"}

const empty = "-"

// LoadTSV reads a batch table from path.
//
//	name  structure  strain  clade  subclade  ha1  ha2  [color]
//
// Fields are whitespace separated; '-' marks an empty field; mutation lists
// use ',' or '+' between positions. Blank lines and '#' comments are
// skipped. A header line starting with "name" is ignored.
func LoadTSV(path string) ([]Record, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Read(fh, path)
}

// Read parses a batch table; src labels errors.
func Read(r io.Reader, src string) ([]Record, error) {
	var list []Record
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if ln == 1 && strings.EqualFold(f[0], Columns[0]) {
			continue
		}
		if len(f) < len(Columns)-1 || len(f) > len(Columns) {
			return nil, fmt.Errorf("%s:%d bad field count %d (want %d or %d)", src, ln, len(f), len(Columns)-1, len(Columns))
		}
		rec, err := parseFields(f)
		if err != nil {
			return nil, fmt.Errorf("%s:%d %w", src, ln, err)
		}
		list = append(list, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func field(s string) string {
	if s == empty {
		return ""
	}
	return s
}

func parseFields(f []string) (Record, error) {
	st, err := strain.Parse(f[2])
	if err != nil {
		return Record{}, err
	}
	rec := Record{
		Name:      field(f[0]),
		Structure: field(f[1]),
		Strain:    st,
		Clade:     field(f[3]),
		Subclade:  field(f[4]),
	}
	if rec.Clade == "" {
		return Record{}, fmt.Errorf("record %s: clade is required", rec.Name)
	}
	if rec.HA1, err = selection.ParsePositions(f[5]); err != nil {
		return Record{}, fmt.Errorf("ha1: %w", err)
	}
	if rec.HA2, err = selection.ParsePositions(f[6]); err != nil {
		return Record{}, fmt.Errorf("ha2: %w", err)
	}
	if len(f) == 8 {
		rec.Color = field(f[7])
	}
	return rec, nil
}
