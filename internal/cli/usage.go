// internal/cli/usage.go
package cli

import (
	"flag"
	"fmt"
	"io"

	"hamark/internal/version"
)

func installUsage(fs *flag.FlagSet, name string) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s – hemagglutinin structure annotation\n\n", name)
		fmt.Fprintln(out, "License: MIT")
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		fmt.Fprintln(out, "Usage:")
		fmt.Fprintf(out, "  %s --strain H3N2 --clade 2b --subclade G.2.1 -n seq1 -s 7tz5.cif --ha1 96,265\n", name)
		fmt.Fprintf(out, "  %s [flags] batch.tsv [more.tsv ...]\n", name)

		fmt.Fprintln(out, "\nRecord:")
		fmt.Fprintln(out, "  -n, --name string           Sequence name (used in output file names)")
		fmt.Fprintln(out, "  -s, --structure file        Structure file loaded by the host [*]")
		fmt.Fprintln(out, "      --strain string         H1N1 | H3N2 [*]")
		fmt.Fprintln(out, "      --clade string          Clade name [*]")
		fmt.Fprintln(out, "      --subclade string       Subclade name (optional)")
		fmt.Fprintln(out, "      --ha1 list              HA1 mutation positions (repeatable)")
		fmt.Fprintln(out, "      --ha2 list              HA2 mutation positions (repeatable)")
		fmt.Fprintln(out, "      --color string          Mutation highlight color [grey20]")

		fmt.Fprintln(out, "\nBatch:")
		fmt.Fprintln(out, "  -b, --batch file            Record table (repeatable) or '-' for STDIN")
		fmt.Fprintln(out, "      --h1-structure file     Structure for H1N1 records that name none")
		fmt.Fprintln(out, "      --h3-structure file     Structure for H3N2 records that name none")
		fmt.Fprintf(out, "  -k, --keep-going            Continue after a failed record [%s]\n", def("keep-going"))

		fmt.Fprintln(out, "\nBackend:")
		fmt.Fprintf(out, "      --backend string        script | pymol [%s]\n", def("backend"))
		fmt.Fprintf(out, "      --script file           Script output ('-' = stdout) [%s]\n", def("script"))
		fmt.Fprintf(out, "      --pymol path            PyMOL executable [%s]\n", def("pymol"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "      --image-dir dir         Image root [%s]\n", def("image-dir"))
		fmt.Fprintf(out, "      --session-dir dir       Session root [%s]\n", def("session-dir"))
		fmt.Fprintf(out, "      --dpi int               Image resolution [%s]\n", def("dpi"))
		fmt.Fprintf(out, "      --caption               Stamp captions on images (pymol) [%s]\n", def("caption"))
		fmt.Fprintln(out, "      --manifest file         Write a JSON run manifest")
		fmt.Fprintln(out, "      --report file           Write a mutation chart (PNG)")

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "  -q, --quiet                 Suppress INFO and WARN lines [%s]\n", def("quiet"))
		fmt.Fprintf(out, "      --verbose               Print debug lines [%s]\n", def("verbose"))
		fmt.Fprintf(out, "      --no-color              Disable colored diagnostics [%s]\n", def("no-color"))
		fmt.Fprintln(out, "      --examples              Show quickstart examples and exit")
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}

// PrintExamples prints a small quickstart, followed by a one-line tip to
// discover full help.
func PrintExamples(out io.Writer, name string) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s quickstart\n\n", name)
	_, _ = fmt.Fprintf(out, `  # Print the PyMOL script for one H1N1 record
  %[1]s --strain H1N1 --clade 5a.2a --subclade C.1.9 -n A_Sydney -s 4jtv.cif --ha1 137,142

  # Render directly with PyMOL, captions on
  %[1]s --backend pymol --caption --strain H3N2 --clade 2b -s 7tz5.cif

  # Batch table with default structures and a run manifest
  %[1]s --h1-structure 4jtv.cif --h3-structure 7tz5.cif --manifest run.json records.tsv

  # Table columns (tab separated, '-' = empty)
  #   name structure strain clade subclade ha1 ha2 [color]
`, name)
	_, _ = fmt.Fprintln(out, "\nTip: run with --help for all flags.")
}
