package document

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	ierrors "github.com/cnosuke/seo-analyzer/internal/errors"
	"golang.org/x/net/html"
)

// Parse - Build a queryable document tree from HTML text
func Parse(body string) (*goquery.Document, error) {
	root, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, ierrors.Mark(ierrors.Wrap(err, "failed to parse HTML"), ierrors.ErrParse)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// Attr returns the value of attribute name on the first node of sel and
// whether the attribute is present at all.
func Attr(sel *goquery.Selection, name string) (string, bool) {
	if sel.Length() == 0 {
		return "", false
	}
	return sel.First().Attr(name)
}

// Texts returns the whitespace-trimmed text of every node in sel.
func Texts(sel *goquery.Selection) []string {
	texts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(s.Text()))
	})
	return texts
}
