package output

import (
	"encoding/csv"
	"io"

	"github.com/mherran/prodplan/pkg/application/dto"
	"github.com/mherran/prodplan/pkg/domain/entities"
)

// CSV output is one record per table row: item_id, row label, then one
// column per period. Different items may have different horizons, so no
// shared period header is written.

func writeRunCSV(w io.Writer, run *dto.PlanRunResult) error {
	writer := csv.NewWriter(w)
	for _, res := range run.Items {
		if err := writeItemRecords(writer, res); err != nil {
			return err
		}
	}
	if run.Capacity != nil {
		for _, line := range run.Capacity.Lines {
			if err := writeRecord(writer, line.ItemID, "Capacity Balance", line.Balance); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeItemCSV(w io.Writer, res *dto.ItemPlanResult) error {
	writer := csv.NewWriter(w)
	if err := writeItemRecords(writer, res); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func writeItemRecords(writer *csv.Writer, res *dto.ItemPlanResult) error {
	switch {
	case res.Plan != nil:
		for _, row := range res.Plan.Rows() {
			series, err := res.Plan.Row(row)
			if err != nil {
				return err
			}
			if err := writeRecord(writer, res.ItemID, row.String(), series); err != nil {
				return err
			}
		}
	case res.MRPTable != nil:
		for _, row := range res.MRPTable.Rows() {
			series, err := res.MRPTable.Row(row)
			if err != nil {
				return err
			}
			if err := writeRecord(writer, res.ItemID, row.String(), series); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeRecord(writer *csv.Writer, id entities.ItemID, label string, series entities.Series) error {
	record := make([]string, 0, len(series)+2)
	record = append(record, string(id), label)
	record = append(record, series.Strings()...)
	return writer.Write(record)
}
