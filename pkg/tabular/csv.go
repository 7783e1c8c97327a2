package tabular

import (
	"bytes"
	"encoding/csv"
	stderrors "errors"
	"io"
	"strconv"
	"strings"

	"github.com/jayjaychukwu/reconcilation/pkg/errors"
)

// ParseCSV parses a fully materialized CSV payload into a Dataset. The
// first row is the header; every data row must have the same number of
// fields as the header. The dataset name ("source" or "target") is only
// used in error messages.
func ParseCSV(data []byte, dataset string) (*Dataset, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewParseError(dataset, 0, "empty input, expected a header row", nil)
	}
	if err != nil {
		return nil, csvError(dataset, err)
	}

	ds := NewDataset(header)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvError(dataset, err)
		}

		rec := NewRecord()
		for i, name := range header {
			rec.Set(name, inferValue(row[i]))
		}
		ds.Append(rec)
	}

	return ds, nil
}

// csvError converts an encoding/csv error into a ParseError, carrying the
// line number when the reader reports one.
func csvError(dataset string, err error) error {
	var parseErr *csv.ParseError
	if stderrors.As(err, &parseErr) {
		return errors.NewParseError(dataset, parseErr.Line, parseErr.Err.Error(), err)
	}
	return errors.NewParseError(dataset, 0, err.Error(), err)
}

// inferValue types a raw CSV cell: empty cells become null, numeric cells
// become numbers, everything else stays textual. Date parsing is deferred
// to normalization, where the date column is known.
func inferValue(cell string) Value {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return Null()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Number(f)
	}
	return String(cell)
}
