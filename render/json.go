package render

import (
	"encoding/json"
	"io"

	"github.com/cnosuke/seo-analyzer/types"
	"github.com/cockroachdb/errors"
)

// JSON writes the report as an indented JSON object keyed by check name.
func JSON(w io.Writer, report *types.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return errors.Wrap(enc.Encode(report), "failed to encode report")
}
