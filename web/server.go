package web

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/cnosuke/seo-analyzer/render"
	"github.com/cnosuke/seo-analyzer/types"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Analyzer is the part of the analyzer the page needs.
type Analyzer interface {
	Analyze(ctx context.Context, targetURL string) *types.Report
}

var pageTmpl = template.Must(template.Must(render.Templates.Clone()).New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>SEO Analyzer</title>
<style>{{template "style"}}
form { display: flex; gap: .5rem; }
form input[type=url] { flex: 1; padding: .4rem; }
</style>
</head>
<body>
<h1>SEO Analyzer</h1>
<form method="get" action="/">
  <input type="url" name="url" placeholder="https://example.com" value="{{.Query}}" required>
  <button type="submit">Analyze</button>
</form>
{{if .Report}}<h2>Report</h2>
<p class="url">{{.Report.URL}}</p>
{{template "sections" .Report}}{{end}}</body>
</html>
`))

type pageData struct {
	Query  string
	Report *render.View
}

// handler serves the interactive page and its JSON endpoint.
type handler struct {
	analyzer Analyzer
	mux      *http.ServeMux
}

// NewHandler returns the page handler wrapped in request-ID and access-log
// middleware.
func NewHandler(a Analyzer) http.Handler {
	h := &handler{analyzer: a, mux: http.NewServeMux()}
	h.mux.HandleFunc("GET /{$}", h.handlePage)
	h.mux.HandleFunc("GET /api/analyze", h.handleAPI)
	h.mux.HandleFunc("POST /api/analyze", h.handleAPI)
	return requestID(accessLog(h.mux))
}

func (h *handler) handlePage(w http.ResponseWriter, r *http.Request) {
	data := pageData{Query: strings.TrimSpace(r.URL.Query().Get("url"))}
	if data.Query != "" {
		view := render.NewView(h.analyze(r.Context(), data.Query))
		data.Report = &view
	}

	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		zap.S().Errorw("failed to render page", "error", err, "request_id", RequestIDFromContext(r.Context()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

type analyzeRequest struct {
	URL string `json:"url"`
}

func (h *handler) handleAPI(w http.ResponseWriter, r *http.Request) {
	req := analyzeRequest{URL: r.URL.Query().Get("url")}
	if r.Method == http.MethodPost {
		const maxRequestBody = 1 << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			renderJSON(w, http.StatusBadRequest, map[string]string{"error": `invalid request body, send a JSON object with a "url" field`})
			return
		}
	}

	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		renderJSON(w, http.StatusBadRequest, map[string]string{"error": `the "url" field is required`})
		return
	}

	// Failed analyses answer 502 with the error report as body.
	report := h.analyze(r.Context(), req.URL)
	status := http.StatusOK
	if report.Failed() {
		status = http.StatusBadGateway
	}
	renderJSON(w, status, report)
}

func (h *handler) analyze(ctx context.Context, targetURL string) *types.Report {
	zap.S().Infow("analysis requested", "url", targetURL, "request_id", RequestIDFromContext(ctx))
	return h.analyzer.Analyze(ctx, targetURL)
}

func renderJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		zap.S().Errorw("failed to encode response", "error", err)
		http.Error(w, `{"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Serve - Run the interactive page on addr until ctx is cancelled
func Serve(ctx context.Context, addr string, a Analyzer) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewHandler(a),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.S().Infow("serving interactive page", "addr", "http://"+addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "failed to serve interactive page")
	case <-ctx.Done():
	}

	zap.S().Infow("shutting down interactive page")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "failed to shut down interactive page")
	}
	return nil
}
