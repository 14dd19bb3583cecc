package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/chains/internal/script"
)

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printReports writes reports as text, or as JSON with --json. A single
// report is written as an object, several as an array.
func printReports(w io.Writer, reports ...*script.Report) error {
	if flagJSON {
		if len(reports) == 1 {
			return writeJSON(w, reports[0])
		}
		return writeJSON(w, reports)
	}
	for i, rep := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printReport(w, rep)
	}
	return nil
}

func printReport(w io.Writer, rep *script.Report) {
	title := rep.Topology
	if rep.Name != "" && rep.Name != rep.Topology {
		title = rep.Name + " (" + rep.Topology + ")"
	}
	fmt.Fprintf(w, "== %s  list %s\n", title, rep.ListID)
	for _, res := range rep.Results {
		fmt.Fprintf(w, "%3d  %-17s %s\n", res.Step, opLabel(res), resultText(res))
	}
	fmt.Fprintf(w, "forward:  %s\n", strings.Join(rep.Forward, ", "))
	if rep.Backward != nil {
		fmt.Fprintf(w, "backward: %s\n", strings.Join(rep.Backward, ", "))
	}
	fmt.Fprintf(w, "chain:    %s\n", rep.Chain)
	fmt.Fprintf(w, "bytes:    live=%d allocs=%d frees=%d\n", rep.Stats.Live, rep.Stats.Allocs, rep.Stats.Frees)
}

func opLabel(res script.Result) string {
	if res.Mode == "" {
		return res.Op
	}
	return res.Op + "/" + res.Mode
}

func resultText(res script.Result) string {
	var b strings.Builder
	if res.OK {
		b.WriteString("ok")
	} else {
		b.WriteString("FAIL")
	}
	fmt.Fprintf(&b, "  len=%d", res.Len)
	if res.Value != "" {
		fmt.Fprintf(&b, "  value=%q", res.Value)
	}
	if res.Index != nil {
		fmt.Fprintf(&b, "  index=%d", *res.Index)
	}
	if res.SlotCleared {
		b.WriteString("  slot cleared")
	}
	if res.Error != "" {
		fmt.Fprintf(&b, "  (%s)", res.Error)
	}
	return b.String()
}
