package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/domtools/dommerge/internal/model"
)

// renderReport writes report to w in the requested format: "json",
// "yaml", or the default human-readable table, mirroring the donor's
// `x-format table|json|yaml|csv` flag (nanostore/cmd/root.go).
func renderReport(w io.Writer, report *model.MergeReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(report)
	default:
		return renderReportTable(w, report)
	}
}

func renderReportTable(w io.Writer, report *model.MergeReport) error {
	if _, err := fmt.Fprintf(w, "merged %d mod(s)\n", len(report.Mods)); err != nil {
		return err
	}
	if report.OutputPath != "" {
		if _, err := fmt.Fprintf(w, "output: %s\n", report.OutputPath); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(w, "output: (dry run, nothing written)"); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "collisions: %d\n", len(report.Collisions)); err != nil {
		return err
	}
	for _, c := range report.Collisions {
		if _, err := fmt.Fprintf(w, "  %s %d: %s kept, %s moved to %d\n", c.Kind, c.ID, c.WinnerMod, c.LoserMod, c.NewID); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "warnings: %d\n", len(report.Warnings)); err != nil {
		return err
	}
	for _, wr := range report.Warnings {
		if _, err := fmt.Fprintf(w, "  [%s] %s\n", wr.Kind, wr.Message); err != nil {
			return err
		}
	}
	return nil
}
