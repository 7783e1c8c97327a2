// Package reconcile implements the reconciliation engine: normalization
// of two raw tabular payloads, missing-record detection in both
// directions, and field-level discrepancy extraction over key-matched
// rows.
package reconcile

import "encoding/json"

// Status is the lifecycle state of a reconciliation job.
type Status string

// Job lifecycle states. A job leaves PROCESSING exactly once.
const (
	StatusProcessing Status = "PROCESSING"
	StatusSuccess    Status = "SUCCESS"
	StatusFailed     Status = "FAILED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusProcessing, StatusSuccess, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether the status is a final state.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// Row is the canonical four-column shape a record takes when it crosses
// into the structured result. Dates are ISO-8601 strings or null.
type Row struct {
	ID     any `json:"id" yaml:"id"`
	Name   any `json:"name" yaml:"name"`
	Date   any `json:"date" yaml:"date"`
	Amount any `json:"amount" yaml:"amount"`
}

// FieldDiff is a single differing field on a key-matched pair of rows.
type FieldDiff struct {
	Field  string
	Source any
	Target any
}

// Discrepancy reports a pair of rows matched on id that differ in at
// least one non-key field. Only differing fields are carried; equal
// fields are absent from the entry entirely.
type Discrepancy struct {
	ID     any
	Fields []FieldDiff
}

// entryMap flattens a discrepancy into its wire shape: the id plus a
// source-named and target_-prefixed key per differing field.
func (d Discrepancy) entryMap() map[string]any {
	m := make(map[string]any, 1+2*len(d.Fields))
	m["id"] = d.ID
	for _, f := range d.Fields {
		m[f.Field] = f.Source
		m["target_"+f.Field] = f.Target
	}
	return m
}

// MarshalJSON implements json.Marshaler.
func (d Discrepancy) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.entryMap())
}

// MarshalYAML implements yaml.InterfaceMarshaler for goccy/go-yaml.
func (d Discrepancy) MarshalYAML() (any, error) {
	return d.entryMap(), nil
}

// UnmarshalJSON rebuilds a Discrepancy from its wire shape. Field pairs
// are restored in canonical column order.
func (d *Discrepancy) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	d.ID = m["id"]
	d.Fields = nil
	for _, field := range []string{"name", "date", "amount"} {
		source, hasSource := m[field]
		target, hasTarget := m["target_"+field]
		if !hasSource && !hasTarget {
			continue
		}
		d.Fields = append(d.Fields, FieldDiff{Field: field, Source: source, Target: target})
	}
	return nil
}

// Result is the full outcome of one reconciliation run. It is assembled
// once by Reconcile and immutable afterwards; the caller owns persistence.
type Result struct {
	MissingInTarget []Row         `json:"missing_data_in_target_file" yaml:"missing_data_in_target_file"`
	MissingInSource []Row         `json:"missing_data_in_source_file" yaml:"missing_data_in_source_file"`
	Discrepancies   []Discrepancy `json:"discrepancies" yaml:"discrepancies"`
	Status          Status        `json:"status" yaml:"status"`
}
