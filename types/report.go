package types

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// unknownFailure stands in for errors that carry no message.
const unknownFailure = "analysis failed"

// Report check names, in the order the analyzer produces them.
const (
	CheckTitle           = "Title"
	CheckMetaDescription = "Meta Description"
	CheckH1              = "H1 Tags"
	CheckH2              = "H2 Tags"
	CheckImages          = "Images"
	CheckOpenGraph       = "Open Graph Tags"
	CheckCanonical       = "Canonical URL"
	CheckRobots          = "Robots.txt"
	CheckSitemap         = "Sitemap.xml"

	// ErrorKey is the only key of a report whose page could not be analysed.
	ErrorKey = "error"
)

// CheckNames lists every report key in check order.
var CheckNames = []string{
	CheckTitle,
	CheckMetaDescription,
	CheckH1,
	CheckH2,
	CheckImages,
	CheckOpenGraph,
	CheckCanonical,
	CheckRobots,
	CheckSitemap,
}

// Report - Ordered mapping from check name to result, or a single error
// record when the page itself could not be fetched or parsed.
type Report struct {
	URL string

	failed     bool
	errMessage string
	checks     *orderedmap.OrderedMap[string, CheckResult]
}

// NewReport returns an empty report for url.
func NewReport(url string) *Report {
	return &Report{
		URL:    url,
		checks: orderedmap.New[string, CheckResult](),
	}
}

// NewErrorReport returns a report holding only the failure description.
func NewErrorReport(url string, err error) *Report {
	msg := unknownFailure
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &Report{
		URL:        url,
		failed:     true,
		errMessage: msg,
		checks:     orderedmap.New[string, CheckResult](),
	}
}

// Add appends a check result. Adding to an error report is a no-op.
func (r *Report) Add(name string, result CheckResult) {
	if r.Failed() {
		return
	}
	r.checks.Set(name, result)
}

// Failed reports whether this is a single-entry error report.
func (r *Report) Failed() bool {
	return r.failed
}

// ErrorMessage returns the failure description of an error report.
func (r *Report) ErrorMessage() string {
	return r.errMessage
}

// Get returns the result recorded under name.
func (r *Report) Get(name string) (CheckResult, bool) {
	return r.checks.Get(name)
}

// Names returns the keys of the report in order.
func (r *Report) Names() []string {
	if r.Failed() {
		return []string{ErrorKey}
	}
	names := make([]string, 0, r.checks.Len())
	for pair := r.checks.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Len returns the number of report entries.
func (r *Report) Len() int {
	if r.Failed() {
		return 1
	}
	return r.checks.Len()
}

// Each calls fn for every check in order.
func (r *Report) Each(fn func(name string, result CheckResult)) {
	for pair := r.checks.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// MarshalJSON encodes the report as a JSON object whose keys keep check order.
func (r *Report) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(map[string]string{ErrorKey: r.errMessage})
	}
	return r.checks.MarshalJSON()
}
