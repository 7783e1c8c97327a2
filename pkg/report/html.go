package report

import (
	"html/template"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jayjaychukwu/reconcilation/pkg/reconcile"
)

var titleCaser = cases.Title(language.English)

// sectionTitle turns a result key into a human heading, e.g.
// "missing_data_in_target_file" -> "Missing Data In Target File".
func sectionTitle(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// htmlSection is one rendered table of the HTML report.
type htmlSection struct {
	Title  string
	Header []string
	Rows   [][]string
	Empty  bool
}

type htmlReport struct {
	Status   reconcile.Status
	Sections []htmlSection
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Reconciliation Report</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
h1 { font-size: 1.4rem; }
h2 { font-size: 1.1rem; margin-top: 2rem; }
table { border-collapse: collapse; margin-top: 0.5rem; }
th, td { border: 1px solid #999; padding: 0.3rem 0.6rem; text-align: left; }
th { background: #eee; }
.status { font-weight: bold; }
.empty { color: #777; font-style: italic; }
</style>
</head>
<body>
<h1>Reconciliation Report</h1>
<p>Status: <span class="status">{{.Status}}</span></p>
{{range .Sections}}
<h2>{{.Title}}</h2>
{{if .Empty}}<p class="empty">No records.</p>{{else}}<table>
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>{{end}}
{{end}}
</body>
</html>
`))

func renderHTML(w io.Writer, result *reconcile.Result) error {
	data := htmlReport{
		Status: result.Status,
		Sections: []htmlSection{
			htmlRowSection("missing_data_in_target_file", result.MissingInTarget),
			htmlRowSection("missing_data_in_source_file", result.MissingInSource),
			htmlDiscrepancySection(result.Discrepancies),
		},
	}
	return reportTemplate.Execute(w, data)
}

func htmlRowSection(key string, rows []reconcile.Row) htmlSection {
	section := rowSection(rows)
	return htmlSection{
		Title:  sectionTitle(key),
		Header: section[0],
		Rows:   section[1:],
		Empty:  len(rows) == 0,
	}
}

func htmlDiscrepancySection(entries []reconcile.Discrepancy) htmlSection {
	section := discrepancySection(entries)
	return htmlSection{
		Title:  sectionTitle("discrepancies"),
		Header: section[0],
		Rows:   section[1:],
		Empty:  len(entries) == 0,
	}
}
