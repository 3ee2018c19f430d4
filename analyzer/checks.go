package analyzer

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/cnosuke/seo-analyzer/document"
	"github.com/cnosuke/seo-analyzer/types"
)

const (
	openGraphPrefix = "og:"

	noH1Note = "No H1 tags found"
	noH2Note = "No H2 tags found"
)

// checkTitle passes when the first title element has between 1 and
// TitleMaxLength characters.
func (a *Analyzer) checkTitle(doc *goquery.Document) types.CheckResult {
	sel := doc.Find("title").First()
	if sel.Length() == 0 {
		return types.CheckResult{
			Status:  types.StatusTooLongOrMissing,
			Content: types.String(""),
			Length:  types.Int(0),
		}
	}

	title := sel.Text()
	length := utf8.RuneCountInString(title)
	return types.CheckResult{
		Status:  lengthStatus(length, a.opts.TitleMaxLength),
		Content: types.String(title),
		Length:  types.Int(length),
	}
}

// checkMetaDescription passes when <meta name="description"> carries a
// non-empty content of at most DescriptionMaxLength characters.
func (a *Analyzer) checkMetaDescription(doc *goquery.Document) types.CheckResult {
	content, ok := document.Attr(doc.Find(`meta[name="description"]`), "content")
	if !ok {
		content = ""
	}

	length := utf8.RuneCountInString(content)
	return types.CheckResult{
		Status:  lengthStatus(length, a.opts.DescriptionMaxLength),
		Content: types.String(content),
		Length:  types.Int(length),
	}
}

func lengthStatus(length, limit int) types.Status {
	if length == 0 || length > limit {
		return types.StatusTooLongOrMissing
	}
	return types.StatusOK
}

// checkH1 passes when there is exactly one h1.
func checkH1(doc *goquery.Document) types.CheckResult {
	sel := doc.Find("h1")
	status := types.StatusMultipleOrMissing
	if sel.Length() == 1 {
		status = types.StatusOK
	}
	return types.CheckResult{
		Status:  status,
		Count:   types.Int(sel.Length()),
		Details: headingDetails(sel, noH1Note),
	}
}

// checkH2 passes when there is at least one h2.
func checkH2(doc *goquery.Document) types.CheckResult {
	sel := doc.Find("h2")
	status := types.StatusMissing
	if sel.Length() > 0 {
		status = types.StatusOK
	}
	return types.CheckResult{
		Status:  status,
		Count:   types.Int(sel.Length()),
		Details: headingDetails(sel, noH2Note),
	}
}

// headingDetails lists the heading texts, or the note when there are none.
func headingDetails(sel *goquery.Selection, note string) []string {
	if sel.Length() == 0 {
		return []string{note}
	}
	return document.Texts(sel)
}

// checkImages counts img elements whose alt is absent or empty.
func checkImages(doc *goquery.Document) types.CheckResult {
	imgs := doc.Find("img")
	missing := 0
	imgs.Each(func(_ int, img *goquery.Selection) {
		if alt, ok := img.Attr("alt"); !ok || alt == "" {
			missing++
		}
	})

	status := types.StatusOK
	if missing > 0 {
		status = types.StatusMissingAlt
	}
	return types.CheckResult{
		Status:     status,
		Total:      types.Int(imgs.Length()),
		MissingAlt: types.Int(missing),
	}
}

// checkOpenGraph counts meta elements whose property starts with "og:".
// The prefix match is case-sensitive.
func checkOpenGraph(doc *goquery.Document) types.CheckResult {
	var properties []string
	doc.Find("meta[property]").Each(func(_ int, meta *goquery.Selection) {
		if prop, _ := meta.Attr("property"); strings.HasPrefix(prop, openGraphPrefix) {
			properties = append(properties, prop)
		}
	})

	status := types.StatusMissing
	if len(properties) > 0 {
		status = types.StatusOK
	}
	return types.CheckResult{
		Status:  status,
		Count:   types.Int(len(properties)),
		Details: properties,
	}
}

// checkCanonical looks for a link whose rel list contains "canonical".
func checkCanonical(doc *goquery.Document) types.CheckResult {
	sel := doc.Find(`link[rel~="canonical"]`).First()
	if sel.Length() == 0 {
		return types.CheckResult{Status: types.StatusMissing}
	}
	href, _ := sel.Attr("href")
	return types.CheckResult{
		Status:  types.StatusOK,
		Content: types.String(href),
	}
}
