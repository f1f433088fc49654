package main

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/smasonuk/wirevis"
)

// report prints one coloured line per template file and returns how many
// failed.
func report(w io.Writer, results []wirevis.FileResult) int {
	out := termenv.NewOutput(w)
	ok := out.String("ok  ").Foreground(out.Color("2")).Bold()
	bad := out.String("FAIL").Foreground(out.Color("1")).Bold()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "%s %s: %v\n", bad, r.Path, r.Err)
			continue
		}
		fmt.Fprintf(w, "%s %s (%s, %d items)\n", ok, r.Path, r.Name, r.Items)
	}

	summary := fmt.Sprintf("%d templates, %d failed", len(results), failed)
	if failed > 0 {
		fmt.Fprintln(w, out.String(summary).Foreground(out.Color("1")))
	} else {
		fmt.Fprintln(w, out.String(summary).Faint())
	}
	return failed
}
