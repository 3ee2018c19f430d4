package analyzer

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cnosuke/seo-analyzer/document"
	"github.com/cnosuke/seo-analyzer/fetcher"
	ierrors "github.com/cnosuke/seo-analyzer/internal/errors"
	"github.com/cnosuke/seo-analyzer/types"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Options - Timeouts and thresholds used during an analysis
type Options struct {
	PageTimeout          time.Duration
	SubresourceTimeout   time.Duration
	UserAgent            string
	TitleMaxLength       int
	DescriptionMaxLength int
	SnippetLength        int
}

// DefaultOptions returns the options used when no configuration is given.
func DefaultOptions() Options {
	return Options{
		PageTimeout:          15 * time.Second,
		SubresourceTimeout:   5 * time.Second,
		UserAgent:            "Mozilla/5.0",
		TitleMaxLength:       40,
		DescriptionMaxLength: 50,
		SnippetLength:        200,
	}
}

// Analyzer fetches a page and runs the fixed set of SEO checks against it.
// It keeps no state between calls; Analyze is safe for concurrent use.
type Analyzer struct {
	fetcher fetcher.Fetcher
	opts    Options
}

// New returns an Analyzer backed by the given Fetcher.
func New(f fetcher.Fetcher, opts Options) *Analyzer {
	return &Analyzer{fetcher: f, opts: opts}
}

// Analyze runs every check against targetURL and returns the report.
// Failures never escape as errors: a page that cannot be fetched or parsed
// yields a single-entry error report, and sub-resource failures are
// recorded in their own check entries.
func (a *Analyzer) Analyze(ctx context.Context, targetURL string) (report *types.Report) {
	logger := zap.S().With("url", targetURL)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err := errors.Newf("analysis aborted: %v", r)
			logger.Errorw("analysis panicked", "error", err)
			report = types.NewErrorReport(targetURL, err)
		}
	}()

	doc, err := a.loadPage(ctx, targetURL)
	if err != nil {
		logger.Warnw("analysis failed", "error", err)
		return types.NewErrorReport(targetURL, err)
	}

	base, err := url.Parse(targetURL)
	if err != nil {
		// The fetch already succeeded, so this only trips on odd inputs the
		// HTTP client tolerated.
		logger.Warnw("analysis failed", "error", err)
		return types.NewErrorReport(targetURL, ierrors.Wrap(err, "failed to parse URL"))
	}

	report = types.NewReport(targetURL)
	a.addCheck(report, types.CheckTitle, a.checkTitle(doc))
	a.addCheck(report, types.CheckMetaDescription, a.checkMetaDescription(doc))
	a.addCheck(report, types.CheckH1, checkH1(doc))
	a.addCheck(report, types.CheckH2, checkH2(doc))
	a.addCheck(report, types.CheckImages, checkImages(doc))
	a.addCheck(report, types.CheckOpenGraph, checkOpenGraph(doc))
	a.addCheck(report, types.CheckCanonical, checkCanonical(doc))
	a.addCheck(report, types.CheckRobots, a.checkRobots(ctx, base))
	a.addCheck(report, types.CheckSitemap, a.checkSitemap(ctx, base))

	logger.Infow("analysis complete",
		"checks", report.Len(),
		"duration", time.Since(start))
	return report
}

func (a *Analyzer) addCheck(report *types.Report, name string, result types.CheckResult) {
	zap.S().Debugw("check evaluated", "url", report.URL, "check", name, "status", result.Status)
	report.Add(name, result)
}

// loadPage fetches the page under the page timeout and parses it.
func (a *Analyzer) loadPage(ctx context.Context, targetURL string) (*goquery.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, a.opts.PageTimeout)
	defer cancel()

	resp, err := a.fetcher.Fetch(ctx, targetURL)
	if err != nil {
		return nil, err
	}
	if !resp.Successful() {
		return nil, ierrors.Mark(
			errors.Newf("%d %s for url: %s", resp.StatusCode, http.StatusText(resp.StatusCode), resp.URL),
			ierrors.ErrStatus,
		)
	}

	return document.Parse(resp.Content)
}
