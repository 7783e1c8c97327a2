package report

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/jayjaychukwu/reconcilation/pkg/reconcile"
)

// discrepancyHeader is the fixed column layout for discrepancy sections
// in tabular formats. Fields equal on both sides render as empty cells.
var discrepancyHeader = []string{
	"id",
	"name", "target_name",
	"date", "target_date",
	"amount", "target_amount",
}

// rowHeader is the column layout for missing-record sections.
var rowHeader = []string{"id", "name", "date", "amount"}

func renderJSON(w io.Writer, result *reconcile.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func renderYAML(w io.Writer, result *reconcile.Result) error {
	return yaml.NewEncoder(w).Encode(result)
}

func renderCSV(w io.Writer, result *reconcile.Result) error {
	cw := csv.NewWriter(w)

	sections := []struct {
		title string
		rows  [][]string
	}{
		{"missing_data_in_target_file", rowSection(result.MissingInTarget)},
		{"missing_data_in_source_file", rowSection(result.MissingInSource)},
		{"discrepancies", discrepancySection(result.Discrepancies)},
	}

	for i, section := range sections {
		if i > 0 {
			if err := cw.Write([]string{}); err != nil {
				return err
			}
		}
		if err := cw.Write([]string{section.title}); err != nil {
			return err
		}
		for _, row := range section.rows {
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func rowSection(rows []reconcile.Row) [][]string {
	out := make([][]string, 0, len(rows)+1)
	out = append(out, rowHeader)
	for _, r := range rows {
		out = append(out, []string{cell(r.ID), cell(r.Name), cell(r.Date), cell(r.Amount)})
	}
	return out
}

func discrepancySection(entries []reconcile.Discrepancy) [][]string {
	out := make([][]string, 0, len(entries)+1)
	out = append(out, discrepancyHeader)
	for _, e := range entries {
		row := make([]string, len(discrepancyHeader))
		row[0] = cell(e.ID)
		for _, f := range e.Fields {
			switch f.Field {
			case "name":
				row[1], row[2] = cell(f.Source), cell(f.Target)
			case "date":
				row[3], row[4] = cell(f.Source), cell(f.Target)
			case "amount":
				row[5], row[6] = cell(f.Source), cell(f.Target)
			}
		}
		out = append(out, row)
	}
	return out
}
