// Package report renders a reconciliation result into downloadable
// document formats: JSON, CSV, HTML, and YAML.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jayjaychukwu/reconcilation/pkg/errors"
	"github.com/jayjaychukwu/reconcilation/pkg/reconcile"
)

// Format identifies a report output format.
type Format string

// Supported report formats.
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats in presentation order.
var Formats = []Format{FormatJSON, FormatCSV, FormatHTML, FormatYAML}

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.NewValidationError("format", s,
		fmt.Sprintf("unknown report format, expected one of %v", Formats))
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatYAML:
		return "application/yaml"
	default:
		return "application/octet-stream"
	}
}

// Filename returns the attachment file name for a task's report.
func (f Format) Filename(taskID string) string {
	return fmt.Sprintf("reconciliation_%s.%s", taskID, string(f))
}

// Render writes the result to w in the given format.
func Render(w io.Writer, result *reconcile.Result, f Format) error {
	switch f {
	case FormatJSON:
		return renderJSON(w, result)
	case FormatCSV:
		return renderCSV(w, result)
	case FormatHTML:
		return renderHTML(w, result)
	case FormatYAML:
		return renderYAML(w, result)
	default:
		return errors.NewValidationError("format", string(f), "unknown report format")
	}
}

// cell formats an exported result value for tabular output. Null renders
// as the empty cell.
func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}
