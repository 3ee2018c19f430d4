package render

import (
	"io"
	"strings"

	"github.com/cnosuke/seo-analyzer/types"
	"github.com/cockroachdb/errors"
)

// Format selects how a report is written.
type Format string

const (
	FormatText     = Format("text")
	FormatJSON     = Format("json")
	FormatHTML     = Format("html")
	FormatMarkdown = Format("markdown")
)

// Formats lists the accepted format names.
var Formats = []Format{FormatText, FormatJSON, FormatHTML, FormatMarkdown}

// ParseFormat - Resolve a format name, case-insensitively
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if f == "md" {
		return FormatMarkdown, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.Newf("unknown format %q (want one of text, json, html, markdown)", name)
}

// Options - Presentation switches
type Options struct {
	Color bool // text only
}

// Render - Write report to w in the given format
func Render(w io.Writer, report *types.Report, format Format, opts Options) error {
	switch format {
	case FormatText:
		return Text(w, report, opts)
	case FormatJSON:
		return JSON(w, report)
	case FormatHTML:
		return HTML(w, report)
	case FormatMarkdown:
		return Markdown(w, report)
	default:
		return errors.Newf("unknown format %q", format)
	}
}
