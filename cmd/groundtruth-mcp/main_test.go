package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/groundtruth/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *apiClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &apiClient{baseURL: srv.URL, http: srv.Client()}
}

func callTool(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestWebQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/query", r.URL.Path)
		var req models.QueryRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "golang", req.Query)
		_ = json.NewEncoder(w).Encode(models.QueryResponse{Success: true, URLs: []string{"https://a", "https://b"}})
	})

	res := callTool(t, handleWebQuery(c), map[string]any{"query": "golang"})
	assert.False(t, res.IsError)
	assert.Equal(t, "1. https://a\n2. https://b\n", resultText(t, res))
}

func TestWebQuery_MissingArgument(t *testing.T) {
	res := callTool(t, handleWebQuery(&apiClient{}), map[string]any{})
	assert.True(t, res.IsError)
}

func TestExtractURL_ForwardsClicks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req models.ExtractRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if assert.Len(t, req.Steps, 1) {
			assert.Equal(t, "#more", req.Steps[0].Value)
			assert.Equal(t, "css", req.Steps[0].By)
		}
		_ = json.NewEncoder(w).Encode(models.ExtractResponse{
			Success:  true,
			Document: &models.Document{URL: req.URL, Extractor: "stackexchange", Text: "body"},
		})
	})

	res := callTool(t, handleExtractURL(c), map[string]any{
		"url":   "https://stackoverflow.com/questions/1",
		"click": []any{"#more"},
	})
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "Extractor: stackexchange\n\nbody")
}

func TestRewardScore_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(models.ScoreResponse{
			Error: &models.ErrorDetail{Code: "RESULTS_LIST_EMPTY", Message: "no results"},
		})
	})

	res := callTool(t, handleRewardScore(c), map[string]any{"prompt": "p", "completion": "c"})
	assert.True(t, res.IsError)
	assert.Equal(t, "[RESULTS_LIST_EMPTY] no results", resultText(t, res))
}

func TestRewardScore(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.ScoreResponse{
			Success: true,
			Reward:  0.5,
			Samples: []models.ScoreSample{{URL: "https://a", Score: 1, Parsed: true}, {URL: "https://b"}},
		})
	})

	res := callTool(t, handleRewardScore(c), map[string]any{"prompt": "p", "completion": "c"})
	assert.False(t, res.IsError)
	assert.Equal(t, "Reward: +0.500\n  +1.00  https://a\n  +0.00  https://b\n", resultText(t, res))
}
