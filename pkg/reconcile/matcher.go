package reconcile

import (
	"github.com/jayjaychukwu/reconcilation/pkg/normalize"
	"github.com/jayjaychukwu/reconcilation/pkg/tabular"
)

// matchKey is the two-column tuple used for missing-record detection.
// Both identifying fields must agree before a row counts as present.
type matchKey struct {
	id   string
	name string
}

// keyOf builds the match key for a normalized record. Values are folded
// to their rendered form so a numeric 1 and a textual "1" id match.
func keyOf(rec tabular.Record) matchKey {
	return matchKey{
		id:   rec.Value(normalize.ColumnID).Render(),
		name: rec.Value(normalize.ColumnName).Render(),
	}
}

// FindMissing returns the rows of have whose (id, name) tuple does not
// occur anywhere in want, in have's input order. A key present in want at
// all suppresses the row, regardless of how many want-rows share it.
// Output rows take the canonical four-column shape.
func FindMissing(have, want *tabular.Dataset) []Row {
	present := make(map[matchKey]struct{}, want.Len())
	for _, rec := range want.Records() {
		present[keyOf(rec)] = struct{}{}
	}

	missing := make([]Row, 0)
	for _, rec := range have.Records() {
		if _, ok := present[keyOf(rec)]; ok {
			continue
		}
		missing = append(missing, rowOf(rec))
	}
	return missing
}

// rowOf projects a normalized record onto the canonical result shape,
// rendering the date as an ISO-8601 string or null at this boundary.
func rowOf(rec tabular.Record) Row {
	return Row{
		ID:     rec.Value(normalize.ColumnID).Export(),
		Name:   rec.Value(normalize.ColumnName).Export(),
		Date:   rec.Value(normalize.ColumnDate).Export(),
		Amount: rec.Value(normalize.ColumnAmount).Export(),
	}
}
