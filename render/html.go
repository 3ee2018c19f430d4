package render

import (
	"bytes"
	"html/template"
	"io"

	"github.com/cnosuke/seo-analyzer/types"
	"github.com/cockroachdb/errors"
)

// Section is the template view of one report entry.
type Section struct {
	Name   string
	Status string
	Class  string
	Fields []types.Field
}

const sectionsTemplate = `{{define "sections"}}{{if .Error}}<p class="error"><strong>error</strong>: {{.Error}}</p>
{{else}}{{range .Sections}}<details class="check {{.Class}}">
  <summary>{{.Name}}: {{.Status}}</summary>
  <dl>{{range .Fields}}
    <dt>{{.Name}}</dt><dd>{{.Value}}</dd>{{end}}
  </dl>
</details>
{{end}}{{end}}{{end}}`

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>SEO Analysis Report</title>
<style>{{template "style"}}</style>
</head>
<body>
<h1>SEO Analysis Report</h1>
<p class="url">{{.URL}}</p>
{{template "sections" .}}</body>
</html>
`

const styleTemplate = `{{define "style"}}
body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; }
details.check { border: 1px solid #ddd; border-radius: 4px; margin: .5rem 0; padding: .5rem 1rem; }
details.ok summary { color: #1a7f37; }
details.warn summary { color: #9a6700; }
details.fail summary, p.error { color: #cf222e; }
dt { font-weight: bold; }
dd { margin: 0 0 .5rem 1rem; white-space: pre-wrap; word-break: break-all; }
{{end}}`

// Templates holds the report section templates so that other pages can
// embed them with {{template "sections" .}} and {{template "style"}}.
var Templates = template.Must(template.New("report").Parse(sectionsTemplate + styleTemplate))

var documentTmpl = template.Must(template.Must(Templates.Clone()).New("document").Parse(documentTemplate))

// View is the data passed to the report templates.
type View struct {
	URL      string
	Error    string
	Sections []Section
}

// NewView converts a report into template data.
func NewView(report *types.Report) View {
	v := View{URL: report.URL}
	if report.Failed() {
		v.Error = report.ErrorMessage()
		return v
	}
	report.Each(func(name string, result types.CheckResult) {
		v.Sections = append(v.Sections, Section{
			Name:   name,
			Status: string(result.Status),
			Class:  statusClass(result.Status),
			Fields: result.Fields()[1:],
		})
	})
	return v
}

func statusClass(s types.Status) string {
	switch {
	case s.OK():
		return "ok"
	case s.IsError():
		return "fail"
	default:
		return "warn"
	}
}

// HTML writes a standalone page with one collapsible section per check.
func HTML(w io.Writer, report *types.Report) error {
	var buf bytes.Buffer
	if err := documentTmpl.ExecuteTemplate(&buf, "document", NewView(report)); err != nil {
		return errors.Wrap(err, "failed to render HTML report")
	}
	_, err := buf.WriteTo(w)
	return errors.Wrap(err, "failed to write report")
}
