package reconcile

import (
	"github.com/jayjaychukwu/reconcilation/pkg/normalize"
	"github.com/jayjaychukwu/reconcilation/pkg/tabular"
)

// comparedFields are the non-key fields examined on each joined pair, in
// output order.
var comparedFields = []string{
	normalize.ColumnName,
	normalize.ColumnDate,
	normalize.ColumnAmount,
}

// FindDiscrepancies inner-joins source and target on id and reports each
// joined pair whose name, date, or amount differ. Dates compare by parsed
// value; two null dates are equal, a null against a parsed date differs.
// Each entry carries only the differing fields, so an entry with zero
// differences is never built. Rows with no counterpart on either side are
// the matcher's concern and are skipped here.
func FindDiscrepancies(source, target *tabular.Dataset) []Discrepancy {
	targetByID := make(map[string]tabular.Record, target.Len())
	for _, rec := range target.Records() {
		targetByID[rec.Value(normalize.ColumnID).Render()] = rec
	}

	discrepancies := make([]Discrepancy, 0)
	for _, src := range source.Records() {
		tgt, joined := targetByID[src.Value(normalize.ColumnID).Render()]
		if !joined {
			continue
		}

		var fields []FieldDiff
		for _, field := range comparedFields {
			sv := src.Value(field)
			tv := tgt.Value(field)
			if sv.Equal(tv) {
				continue
			}
			fields = append(fields, FieldDiff{
				Field:  field,
				Source: sv.Export(),
				Target: tv.Export(),
			})
		}

		if len(fields) == 0 {
			continue
		}
		discrepancies = append(discrepancies, Discrepancy{
			ID:     src.Value(normalize.ColumnID).Export(),
			Fields: fields,
		})
	}
	return discrepancies
}
