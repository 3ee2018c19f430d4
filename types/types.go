package types

// FetchResponse - Response from fetch operation
type FetchResponse struct {
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
	StatusCode  int    `json:"status_code"`
	// OriginalURL is set only if a redirect occurred. It represents the initial URL before any redirects.
	OriginalURL string `json:"original_url,omitempty"`
}

// Successful reports whether the response carries a 2xx status code.
func (r *FetchResponse) Successful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
