package reconcile

import (
	"github.com/jayjaychukwu/reconcilation/pkg/normalize"
	"github.com/jayjaychukwu/reconcilation/pkg/tabular"
)

// Dataset names used in error messages.
const (
	DatasetSource = "source"
	DatasetTarget = "target"
)

// Reconcile runs the full pipeline over two raw CSV payloads: parse,
// normalize, missing-record detection in both directions, and
// discrepancy extraction. It is a pure function over its inputs: no
// shared state, no I/O, no internal concurrency.
//
// It fails with a ParseError when either payload is not well-formed
// delimited text, and a SchemaError when a required column is missing.
// No partial Result is ever returned for a failed run.
func Reconcile(sourceRaw, targetRaw []byte) (*Result, error) {
	source, err := tabular.ParseCSV(sourceRaw, DatasetSource)
	if err != nil {
		return nil, err
	}
	target, err := tabular.ParseCSV(targetRaw, DatasetTarget)
	if err != nil {
		return nil, err
	}
	return Datasets(source, target)
}

// Datasets reconciles two already-parsed raw datasets. Both are
// normalized first; the inputs are never mutated.
func Datasets(source, target *tabular.Dataset) (*Result, error) {
	normSource, err := normalize.Normalize(source, DatasetSource)
	if err != nil {
		return nil, err
	}
	normTarget, err := normalize.Normalize(target, DatasetTarget)
	if err != nil {
		return nil, err
	}

	// "Missing in target" and "missing in source" are genuinely
	// different queries over the same two sets, hence both directions.
	return &Result{
		MissingInTarget: FindMissing(normSource, normTarget),
		MissingInSource: FindMissing(normTarget, normSource),
		Discrepancies:   FindDiscrepancies(normSource, normTarget),
		Status:          StatusSuccess,
	}, nil
}
