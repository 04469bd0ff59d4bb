package export

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/vizlab/heatsel/model"
)

// reportTemplate renders one table row per selection row. Annotation
// markers show a dash in the slice columns.
const reportTemplate = `<!DOCTYPE html>
<html>
<head><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<table>
<thead>
<tr><th>heatmap</th><th>slice</th><th>rows</th><th>columns</th>{{if .Labels}}<th>row labels</th><th>column labels</th>{{end}}</tr>
</thead>
<tbody>
{{range .Rows}}<tr><td>{{.Panel}}</td><td>{{.Slice}}</td><td>{{.Rows}}</td><td>{{.Columns}}</td>{{if $.Labels}}<td>{{.RowLabels}}</td><td>{{.ColumnLabels}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</body>
</html>
`

type reportRow struct {
	Panel        string
	Slice        string
	Rows         string
	Columns      string
	RowLabels    string
	ColumnLabels string
}

type reportData struct {
	Title  string
	Labels bool
	Rows   []reportRow
}

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

func writeHTML(w io.Writer, rec model.SelectionRecord, cfg Config) error {
	data := reportData{
		Title:  cfg.Title,
		Labels: cfg.IncludeLabels,
	}
	for _, row := range rec {
		out := reportRow{
			Panel:        row.Panel,
			Slice:        "-",
			Rows:         joinInts(row.RowIndices),
			Columns:      joinInts(row.ColumnIndices),
			RowLabels:    strings.Join(row.RowLabels, ", "),
			ColumnLabels: strings.Join(row.ColumnLabels, ", "),
		}
		if !row.IsAnnotation() {
			out.Slice = row.SliceID().String()
		}
		data.Rows = append(data.Rows, out)
	}

	if err := reportTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}
