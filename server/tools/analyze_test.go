package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/cnosuke/seo-analyzer/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockAnalyzer for testing
type MockAnalyzer struct {
	fail      bool
	requested []string
}

// Analyze - Mock implementation
func (m *MockAnalyzer) Analyze(_ context.Context, targetURL string) *types.Report {
	m.requested = append(m.requested, targetURL)
	if m.fail {
		return types.NewErrorReport(targetURL, errors.New("failed to execute request: connection refused"))
	}
	r := types.NewReport(targetURL)
	r.Add(types.CheckTitle, types.CheckResult{Status: types.StatusOK, Content: types.String("Home"), Length: types.Int(4)})
	r.Add(types.CheckCanonical, types.CheckResult{Status: types.StatusMissing})
	return r
}

func TestAnalyzeHandler(t *testing.T) {
	mock := &MockAnalyzer{}
	handler := analyzeHandler(context.Background(), mock)

	resp, err := handler(AnalyzeArgs{URL: " https://example.com "})
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.Len(t, resp.Content, 1)
	require.NotNil(t, resp.Content[0].TextContent)

	assert.Equal(t, []string{"https://example.com"}, mock.requested)
	assert.Equal(t,
		`{"Title":{"status":"OK","content":"Home","length":4},"Canonical URL":{"status":"Missing"}}`,
		resp.Content[0].TextContent.Text)
}

func TestAnalyzeHandler_ErrorReport(t *testing.T) {
	handler := analyzeHandler(context.Background(), &MockAnalyzer{fail: true})

	resp, err := handler(AnalyzeArgs{URL: "https://down.example.com"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"failed to execute request: connection refused"}`, resp.Content[0].TextContent.Text)
}

func TestAnalyzeHandler_MissingURL(t *testing.T) {
	mock := &MockAnalyzer{}
	handler := analyzeHandler(context.Background(), mock)

	_, err := handler(AnalyzeArgs{URL: "  "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "URL is required")
	assert.Empty(t, mock.requested)
}
