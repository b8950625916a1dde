// Package output renders planning results as row-labelled period tables in
// text, JSON or CSV.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mherran/prodplan/pkg/application/dto"
	"github.com/mherran/prodplan/pkg/domain/entities"
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{"text", "json", "csv"}

// IsValidFormat reports whether the format name is supported.
func IsValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// WriteRun renders a full scenario run in the given format.
func WriteRun(w io.Writer, run *dto.PlanRunResult, format string) error {
	switch format {
	case "text":
		return writeRunText(w, run)
	case "json":
		return writeJSON(w, run)
	case "csv":
		return writeRunCSV(w, run)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteItem renders one item's plan in the given format.
func WriteItem(w io.Writer, res *dto.ItemPlanResult, format string) error {
	switch format {
	case "text":
		return writeItemText(w, res)
	case "json":
		return writeJSON(w, res)
	case "csv":
		return writeItemCSV(w, res)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeRunText(w io.Writer, run *dto.PlanRunResult) error {
	if _, err := fmt.Fprintf(w, "Plan run %s (%d items)\n\n", run.RunID, len(run.Items)); err != nil {
		return err
	}
	for _, res := range run.Items {
		if err := writeItemText(w, res); err != nil {
			return err
		}
	}
	if run.Capacity != nil {
		if err := writeCapacityText(w, run.Capacity); err != nil {
			return err
		}
	}
	return nil
}

func writeItemText(w io.Writer, res *dto.ItemPlanResult) error {
	if _, err := fmt.Fprintf(w, "Item %s (%s)\n", res.ItemID, res.Strategy); err != nil {
		return err
	}

	switch {
	case res.Plan != nil:
		writePeriodHeader(w, res.Plan.Periods())
		for _, row := range res.Plan.Rows() {
			series, err := res.Plan.Row(row)
			if err != nil {
				return err
			}
			writeSeriesRow(w, row.String(), series)
		}
	case res.MRPTable != nil:
		writePeriodHeader(w, res.MRPTable.Periods())
		for _, row := range res.MRPTable.Rows() {
			series, err := res.MRPTable.Row(row)
			if err != nil {
				return err
			}
			writeSeriesRow(w, row.String(), series)
		}
		if res.OverdueReleases.Sign() > 0 {
			fmt.Fprintf(w, "Overdue releases (before period 1): %s\n", res.OverdueReleases)
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}

func writeCapacityText(w io.Writer, report *dto.CapacityReport) error {
	if _, err := fmt.Fprintln(w, "Capacity check"); err != nil {
		return err
	}
	for _, line := range report.Lines {
		fmt.Fprintf(w, "Item %s\n", line.ItemID)
		writePeriodHeader(w, len(line.Required))
		writeSeriesRow(w, "Required", line.Required)
		writeSeriesRow(w, "Capacity", line.Capacity)
		writeSeriesRow(w, "Balance", line.Balance)
	}
	if report.Feasible {
		fmt.Fprintln(w, "Capacity feasible across the horizon")
	} else {
		fmt.Fprintf(w, "Total capacity deficit: %s\n", report.TotalDeficit)
	}
	_, err := fmt.Fprintln(w)
	return err
}

const (
	labelWidth = 22
	colWidth   = 10
)

func writePeriodHeader(w io.Writer, periods int) {
	fmt.Fprintf(w, "%-*s", labelWidth, "Period")
	for t := 1; t <= periods; t++ {
		fmt.Fprintf(w, "%*d", colWidth, t)
	}
	fmt.Fprintln(w)
}

func writeSeriesRow(w io.Writer, label string, series entities.Series) {
	fmt.Fprintf(w, "%-*s", labelWidth, label)
	for _, v := range series {
		fmt.Fprintf(w, "%*s", colWidth, v.String())
	}
	fmt.Fprintln(w)
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
