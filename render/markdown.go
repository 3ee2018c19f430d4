package render

import (
	"bytes"
	"html/template"
	"io"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/cnosuke/seo-analyzer/types"
	"github.com/cockroachdb/errors"
)

// markdownSource is a flat HTML outline of the report that converts to
// headings and bullet lists.
var markdownSource = template.Must(template.New("markdown").Parse(`<h1>SEO Analysis Report</h1>
<p>{{.URL}}</p>
{{if .Error}}<p><strong>error</strong>: {{.Error}}</p>
{{else}}{{range .Sections}}<h2>{{.Name}}</h2>
<ul>
<li><strong>status</strong>: {{.Status}}</li>{{range .Fields}}
<li><strong>{{.Name}}</strong>: {{.Value}}</li>{{end}}
</ul>
{{end}}{{end}}`))

// Markdown writes the report as a Markdown document.
func Markdown(w io.Writer, report *types.Report) error {
	var buf bytes.Buffer
	if err := markdownSource.Execute(&buf, NewView(report)); err != nil {
		return errors.Wrap(err, "failed to render report outline")
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(buf.String())
	if err != nil {
		return errors.Wrap(err, "failed to convert report to Markdown")
	}

	_, err = io.WriteString(w, strings.TrimSpace(markdown)+"\n")
	return errors.Wrap(err, "failed to write report")
}
