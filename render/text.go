package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/cnosuke/seo-analyzer/types"
	"github.com/cockroachdb/errors"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	nameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("110"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Text writes the report as line-oriented key/value blocks. An error report
// is a single "error: ..." line.
func Text(w io.Writer, report *types.Report, opts Options) error {
	style := func(s lipgloss.Style, text string) string {
		if !opts.Color {
			return text
		}
		return s.Render(text)
	}

	if report.Failed() {
		_, err := fmt.Fprintf(w, "%s: %s\n", style(errorStyle, types.ErrorKey), report.ErrorMessage())
		return errors.Wrap(err, "failed to write report")
	}

	var werr error
	printf := func(format string, args ...any) {
		if werr == nil {
			_, werr = fmt.Fprintf(w, format, args...)
		}
	}

	printf("%s\n\n", style(headingStyle, "SEO Analysis Report: "+report.URL))
	report.Each(func(name string, result types.CheckResult) {
		printf("%s:\n", style(nameStyle, name))
		for _, field := range result.Fields() {
			value := field.Value
			if field.Name == "status" {
				value = style(statusStyle(result.Status), value)
			}
			printf("  %s: %s\n", style(labelStyle, field.Name), value)
		}
	})
	return errors.Wrap(werr, "failed to write report")
}

func statusStyle(s types.Status) lipgloss.Style {
	switch {
	case s.OK():
		return okStyle
	case s.IsError():
		return errorStyle
	default:
		return warnStyle
	}
}
