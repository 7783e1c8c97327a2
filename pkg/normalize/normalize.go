// Package normalize canonicalizes raw tabular datasets so two
// independently produced files become comparable: text case and
// whitespace are folded, headers are canonicalized, the required column
// set is validated, and date cells are parsed into temporal values.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/utc"

	"github.com/jayjaychukwu/reconcilation/pkg/errors"
	"github.com/jayjaychukwu/reconcilation/pkg/tabular"
)

// Required columns every dataset must carry after header normalization.
const (
	ColumnID     = "id"
	ColumnName   = "name"
	ColumnDate   = "date"
	ColumnAmount = "amount"
)

// RequiredColumns lists the columns a dataset must contain, in canonical
// output order.
var RequiredColumns = []string{ColumnID, ColumnName, ColumnDate, ColumnAmount}

// dateLayouts are tried in order when parsing the date column.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Normalize canonicalizes a raw dataset. The dataset name ("source" or
// "target") is used in error messages only. The input is never mutated;
// normalizing an already-normalized dataset yields an identical one.
//
// It fails with a SchemaError when a required column is missing after
// header normalization, or when two rows share the same id.
func Normalize(ds *tabular.Dataset, dataset string) (*tabular.Dataset, error) {
	columns, err := normalizeHeader(ds.Columns(), dataset)
	if err != nil {
		return nil, err
	}

	for _, required := range RequiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, errors.NewSchemaError(dataset, required)
		}
	}

	out := tabular.NewDataset(headerOrder(ds.Columns()))
	seen := make(map[string]int, ds.Len())

	for i, rec := range ds.Records() {
		normalized := tabular.NewRecord()
		for _, raw := range rec.Columns() {
			name := canonical(raw)
			v := normalizeCell(rec.Value(raw))
			if name == ColumnDate {
				v = normalizeDate(v)
			}
			normalized.Set(name, v)
		}

		key := normalized.Value(ColumnID).Render()
		if prev, dup := seen[key]; dup {
			return nil, errors.NewSchemaViolation(dataset,
				fmt.Sprintf("duplicate id %q in rows %d and %d", key, prev+1, i+1))
		}
		seen[key] = i

		out.Append(normalized)
	}

	return out, nil
}

// normalizeHeader canonicalizes header names and rejects collisions
// (two raw headers folding to the same canonical name).
func normalizeHeader(raw []string, dataset string) (map[string]struct{}, error) {
	columns := make(map[string]struct{}, len(raw))
	for _, h := range raw {
		name := canonical(h)
		if _, dup := columns[name]; dup {
			return nil, errors.NewSchemaViolation(dataset,
				fmt.Sprintf("duplicate column %q after header normalization", name))
		}
		columns[name] = struct{}{}
	}
	return columns, nil
}

// headerOrder returns the canonical column names in original header order.
func headerOrder(raw []string) []string {
	out := make([]string, len(raw))
	for i, h := range raw {
		out[i] = canonical(h)
	}
	return out
}

// canonical folds a column name: surrounding whitespace stripped, lowercased.
func canonical(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// normalizeCell folds textual cells; every other kind passes through.
func normalizeCell(v tabular.Value) tabular.Value {
	if v.Kind() != tabular.KindString {
		return v
	}
	return tabular.String(strings.ToLower(strings.TrimSpace(v.Text())))
}

// normalizeDate parses a date cell into a temporal value. Unparseable
// cells become null rather than failing the dataset; they flow through
// matching as non-matching sentinels.
func normalizeDate(v tabular.Value) tabular.Value {
	switch v.Kind() {
	case tabular.KindDate, tabular.KindNull:
		return v
	case tabular.KindNumber:
		// Numeric date cells (e.g. 20240101) have no defined layout.
		return tabular.Null()
	case tabular.KindString:
		if t, ok := ParseDate(v.Text()); ok {
			return tabular.Date(t)
		}
		return tabular.Null()
	default:
		return tabular.Null()
	}
}

// ParseDate parses a date string against the supported layouts.
func ParseDate(s string) (utc.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return utc.Time{Time: t.UTC()}, true
		}
	}
	return utc.Time{}, false
}
