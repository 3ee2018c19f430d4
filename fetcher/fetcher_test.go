package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ierrors "github.com/cnosuke/seo-analyzer/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
)

// --- Mock HTTP Server Setup ---

type mockResponse struct {
	Body        string
	ContentType string
	StatusCode  int
}

func startMockServer(t *testing.T, responses map[string]mockResponse) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if resp, ok := responses[r.URL.Path]; ok {
			w.Header().Set("Content-Type", resp.ContentType)
			w.WriteHeader(resp.StatusCode)
			_, err := w.Write([]byte(resp.Body))
			assert.NoError(t, err, "Failed to write response body in mock server")
			return
		}
		// Default response for unexpected paths
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Not Found"))
		assert.NoError(t, err, "Failed to write 404 response body in mock server")
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestFetcher(t *testing.T) Fetcher {
	t.Helper()
	return NewHTTPFetcher(&Config{
		Timeout:      5 * time.Second,
		UserAgent:    "Mozilla/5.0 (test)",
		MaxBodyBytes: 1 << 20,
	})
}

func TestHTTPFetcher_Fetch_Success(t *testing.T) {
	server := startMockServer(t, map[string]mockResponse{
		"/html": {
			Body:        "<html><head><title>Test Page</title></head><body><h1>Main</h1></body></html>",
			ContentType: "text/html; charset=utf-8",
			StatusCode:  http.StatusOK,
		},
	})

	resp, err := newTestFetcher(t).Fetch(context.Background(), server.URL+"/html")
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, server.URL+"/html", resp.URL)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.ContentType, "text/html")
	assert.Contains(t, resp.Content, "<title>Test Page</title>")
	assert.Empty(t, resp.OriginalURL)
	assert.True(t, resp.Successful())
}

func TestHTTPFetcher_Fetch_SendsBrowserUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	_, err := newTestFetcher(t).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Mozilla/5.0 (test)", gotUA)
}

func TestHTTPFetcher_Fetch_ErrorStatusIsNotAnError(t *testing.T) {
	server := startMockServer(t, map[string]mockResponse{
		"/robots.txt": {Body: "forbidden", ContentType: "text/plain", StatusCode: http.StatusForbidden},
	})

	resp, err := newTestFetcher(t).Fetch(context.Background(), server.URL+"/robots.txt")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "forbidden", resp.Content)
	assert.False(t, resp.Successful())

	resp, err = newTestFetcher(t).Fetch(context.Background(), server.URL+"/nope")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHTTPFetcher_Fetch_Redirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("moved here"))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	resp, err := newTestFetcher(t).Fetch(context.Background(), server.URL+"/old")
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/new", resp.URL)
	assert.Equal(t, server.URL+"/old", resp.OriginalURL)
	assert.Equal(t, "moved here", resp.Content)
}

func TestHTTPFetcher_Fetch_RedirectLoop(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.URL.Path, http.StatusFound)
	}))
	t.Cleanup(server.Close)

	_, err := newTestFetcher(t).Fetch(context.Background(), server.URL+"/loop")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stopped after 10 redirects")
	assert.True(t, ierrors.Is(err, ierrors.ErrFetch))
}

func TestHTTPFetcher_Fetch_BodyLimit(t *testing.T) {
	server := startMockServer(t, map[string]mockResponse{
		"/big": {Body: strings.Repeat("a", 100), ContentType: "text/plain", StatusCode: http.StatusOK},
	})

	f := NewHTTPFetcher(&Config{Timeout: 5 * time.Second, UserAgent: "Mozilla/5.0", MaxBodyBytes: 10})
	resp, err := f.Fetch(context.Background(), server.URL+"/big")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 10), resp.Content)
}

func TestHTTPFetcher_Fetch_InvalidURL(t *testing.T) {
	_, err := newTestFetcher(t).Fetch(context.Background(), "://bad-url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create request")
	assert.True(t, ierrors.Is(err, ierrors.ErrFetch))
}

func TestHTTPFetcher_Fetch_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestFetcher(t).Fetch(ctx, server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to execute request")
	assert.True(t, ierrors.Is(err, ierrors.ErrFetch))
}

func TestRedirectPolicy(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	assert.NoError(t, redirectPolicy(req, make([]*http.Request, 3)))
	assert.Error(t, redirectPolicy(req, make([]*http.Request, maxRedirects)))
}

func TestHTTPFetcher_Fetch_DecodesDeclaredCharset(t *testing.T) {
	eucKR, err := korean.EUCKR.NewEncoder().String("<html><head><title>안녕하세요</title></head></html>")
	require.NoError(t, err)
	shiftJIS, err := japanese.ShiftJIS.NewEncoder().String(`<html><head><meta charset="shift_jis"><title>こんにちは</title></head></html>`)
	require.NoError(t, err)

	server := startMockServer(t, map[string]mockResponse{
		"/header": {Body: eucKR, ContentType: "text/html; charset=euc-kr", StatusCode: http.StatusOK},
		"/meta":   {Body: shiftJIS, ContentType: "text/html", StatusCode: http.StatusOK},
	})
	f := newTestFetcher(t)

	tests := map[string]string{
		"/header": "<title>안녕하세요</title>",
		"/meta":   "<title>こんにちは</title>",
	}
	for path, want := range tests {
		t.Run(path, func(t *testing.T) {
			resp, err := f.Fetch(context.Background(), server.URL+path)
			require.NoError(t, err)
			assert.Contains(t, resp.Content, want)
		})
	}
}

func TestHTTPFetcher_Fetch_KeepsUndeclaredUTF8(t *testing.T) {
	// Non-ASCII text only after the first KiB, where sniffing cannot see it
	body := "<html><head><title>" + strings.Repeat("a", 1100) + "</title></head><body>Grüße 日本語</body></html>"
	server := startMockServer(t, map[string]mockResponse{
		"/page": {Body: body, ContentType: "text/html", StatusCode: http.StatusOK},
	})

	resp, err := newTestFetcher(t).Fetch(context.Background(), server.URL+"/page")
	require.NoError(t, err)
	assert.Equal(t, body, resp.Content)
}

func TestDecodeBody(t *testing.T) {
	latin1 := []byte("<p>caf\xe9</p>")

	assert.Equal(t, "<p>café</p>", decodeBody(latin1, "text/html; charset=iso-8859-1"))
	assert.Equal(t, "plain ascii", decodeBody([]byte("plain ascii"), ""))
	assert.Equal(t, "<p>café</p>", decodeBody([]byte("<p>café</p>"), "text/html; charset=utf-8"))
}
