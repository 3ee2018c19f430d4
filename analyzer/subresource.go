package analyzer

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cnosuke/seo-analyzer/types"
	"github.com/temoto/robotstxt"
	"go.uber.org/zap"
)

const (
	robotsPath  = "/robots.txt"
	sitemapPath = "/sitemap.xml"

	// accessDenied replaces the body of a sub-resource answering non-200.
	accessDenied = "Access Denied"
)

// checkRobots fetches /robots.txt from the page origin. On success the file
// is also parsed to report whether the page may be crawled and which
// sitemaps it announces.
func (a *Analyzer) checkRobots(ctx context.Context, base *url.URL) types.CheckResult {
	result, resp := a.fetchSubresource(ctx, base, robotsPath)
	if resp == nil {
		return result
	}

	robots, err := robotstxt.FromStatusAndBytes(resp.StatusCode, []byte(resp.Content))
	if err != nil {
		zap.S().Debugw("robots.txt could not be parsed", "url", resp.URL, "error", err)
		return result
	}

	result.Allowed = types.Bool(robots.TestAgent(base.RequestURI(), a.opts.UserAgent))
	result.Sitemaps = robots.Sitemaps
	return result
}

// checkSitemap fetches /sitemap.xml from the page origin.
func (a *Analyzer) checkSitemap(ctx context.Context, base *url.URL) types.CheckResult {
	result, _ := a.fetchSubresource(ctx, base, sitemapPath)
	return result
}

// fetchSubresource resolves path against the origin of base and fetches it
// under the sub-resource timeout. The response is returned only on 200.
func (a *Analyzer) fetchSubresource(ctx context.Context, base *url.URL, path string) (types.CheckResult, *types.FetchResponse) {
	target := base.ResolveReference(&url.URL{Path: path}).String()

	ctx, cancel := context.WithTimeout(ctx, a.opts.SubresourceTimeout)
	defer cancel()

	resp, err := a.fetcher.Fetch(ctx, target)
	if err != nil {
		zap.S().Warnw("sub-resource fetch failed", "url", target, "error", err)
		return types.CheckResult{
			Status:  types.StatusError,
			Content: types.String(err.Error()),
		}, nil
	}

	if resp.StatusCode != http.StatusOK {
		zap.S().Infow("sub-resource unavailable", "url", target, "status", resp.StatusCode)
		return types.CheckResult{
			Status:  types.ErrorStatus(resp.StatusCode),
			Content: types.String(accessDenied),
		}, nil
	}

	return types.CheckResult{
		Status:  types.StatusOK,
		Content: types.String(truncate(resp.Content, a.opts.SnippetLength)),
	}, resp
}

// truncate keeps the first n characters of s.
func truncate(s string, n int) string {
	runes := 0
	for i := range s {
		if runes == n {
			return s[:i]
		}
		runes++
	}
	return s
}
