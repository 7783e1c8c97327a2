// Package tabular provides the in-memory data model for delimited
// datasets: a closed scalar value type, ordered records, and datasets
// parsed from raw CSV payloads.
package tabular

import (
	"strconv"

	"github.com/agentstation/utc"
)

// Kind identifies the concrete type held by a Value.
type Kind int

// The closed set of scalar kinds a cell can hold.
const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindDate
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// Value is a single cell value. It is a tagged variant over the closed
// set of scalar kinds; every comparison and rendering operation switches
// exhaustively on the kind.
type Value struct {
	kind Kind
	str  string
	num  float64
	date utc.Time
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// String returns a textual value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Date returns a temporal value.
func Date(t utc.Time) Value {
	return Value{kind: KindDate, date: t}
}

// Kind returns the kind tag of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Text returns the string payload. It is only meaningful for KindString.
func (v Value) Text() string {
	return v.str
}

// Float returns the numeric payload. It is only meaningful for KindNumber.
func (v Value) Float() float64 {
	return v.num
}

// Time returns the temporal payload. It is only meaningful for KindDate.
func (v Value) Time() utc.Time {
	return v.date
}

// Equal reports whether two values are equal. Values of different kinds
// are never equal; two nulls are equal; dates compare by instant.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindDate:
		return v.date.Time.Equal(other.date.Time)
	default:
		return false
	}
}

// Render formats the value for the structured result boundary: dates as
// ISO-8601 date strings, numbers in their shortest decimal form, null as
// the empty string.
func (v Value) Render() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindDate:
		return v.date.Time.Format("2006-01-02")
	default:
		return ""
	}
}

// Export converts the value to its native Go representation for
// serialization: string, float64, ISO-8601 date string, or nil.
func (v Value) Export() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindDate:
		return v.date.Time.Format("2006-01-02")
	default:
		return nil
	}
}
