package fetcher

import (
	"context"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	ierrors "github.com/cnosuke/seo-analyzer/internal/errors"
	"github.com/cnosuke/seo-analyzer/types"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

const maxRedirects = 10

// Config - HTTP fetcher settings
type Config struct {
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
}

// Fetcher defines the interface for retrieving a URL.
type Fetcher interface {
	// Fetch issues a GET request and returns the response for any status
	// code. An error means the request never produced a response
	// (invalid URL, DNS, connection, timeout, body read).
	Fetch(ctx context.Context, urlStr string) (*types.FetchResponse, error)
}

// httpFetcher implements the Fetcher interface using HTTP.
type httpFetcher struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
}

// NewHTTPFetcher creates a new httpFetcher.
func NewHTTPFetcher(cfg *Config) Fetcher {
	zap.S().Debugw("creating new HTTP fetcher",
		"timeout", cfg.Timeout,
		"user_agent", cfg.UserAgent,
		"max_body_bytes", cfg.MaxBodyBytes)

	return newHTTPFetcher(cfg, &http.Client{Timeout: cfg.Timeout})
}

func newHTTPFetcher(cfg *Config, client *http.Client) *httpFetcher {
	client.CheckRedirect = redirectPolicy
	return &httpFetcher{
		client:       client,
		userAgent:    cfg.UserAgent,
		maxBodyBytes: cfg.MaxBodyBytes,
	}
}

func redirectPolicy(_ *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return errors.Newf("stopped after %d redirects", maxRedirects)
	}
	return nil
}

// Fetch retrieves urlStr with a browser-identifying User-Agent.
func (f *httpFetcher) Fetch(ctx context.Context, urlStr string) (*types.FetchResponse, error) {
	zap.S().Debugw("fetching URL", "url", urlStr)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, ierrors.Mark(ierrors.Wrap(err, "failed to create request"), ierrors.ErrFetch)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,text/plain;q=0.8,*/*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, ierrors.Mark(ierrors.Wrap(err, "failed to execute request"), ierrors.ErrFetch)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return nil, ierrors.Mark(ierrors.Wrap(err, "failed to read response body"), ierrors.ErrFetch)
	}

	// Set only if redirect occurred
	var originalURL string
	if finalURL := resp.Request.URL.String(); finalURL != req.URL.String() {
		originalURL = urlStr
		urlStr = finalURL
	}

	zap.S().Debugw(
		"response received",
		"url", urlStr,
		"original_url", originalURL,
		"status", resp.StatusCode,
		"content-length", resp.ContentLength,
		"bytes", len(bodyBytes),
		"content_type", resp.Header.Get("Content-Type"),
	)

	contentType := resp.Header.Get("Content-Type")
	return &types.FetchResponse{
		URL:         urlStr,
		ContentType: contentType,
		Content:     decodeBody(bodyBytes, contentType),
		StatusCode:  resp.StatusCode,
		OriginalURL: originalURL,
	}, nil
}

// decodeBody converts body to UTF-8 using the charset declared in the
// Content-Type header, a BOM or a <meta charset> tag. Undeclared bodies that
// are already valid UTF-8 are kept as is.
func decodeBody(body []byte, contentType string) string {
	enc, name, certain := charset.DetermineEncoding(body, contentType)
	if name == "utf-8" || (!certain && name == "windows-1252" && utf8.Valid(body)) {
		return string(body)
	}

	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		zap.S().Debugw("failed to decode body, keeping raw bytes", "charset", name, "error", err)
		return string(body)
	}
	return string(decoded)
}
