package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/use-agent/groundtruth/models"
)

func main() {
	// stdout carries the MCP protocol; logs go to stderr.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	apiURL := os.Getenv("GROUNDTRUTH_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	c := &apiClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Minute},
	}

	s := server.NewMCPServer(
		"groundtruth",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	webQueryTool := mcp.NewTool("web_query",
		mcp.WithDescription("Search the web through a headless browser and return the top result URLs, restricted to the configured reference sites (Wikipedia and Stack Overflow by default)."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free-text search query"),
		),
	)
	s.AddTool(webQueryTool, handleWebQuery(c))

	extractURLTool := mcp.NewTool("extract_url",
		mcp.WithDescription("Fetch a Wikipedia or Stack Exchange page and return its article or question/answer text with page chrome removed."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the page to extract"),
		),
		mcp.WithArray("click",
			mcp.Description("CSS selectors clicked in order before extraction, e.g. to expand collapsed comments"),
			mcp.WithStringItems(),
		),
	)
	s.AddTool(extractURLTool, handleExtractURL(c))

	rewardTool := mcp.NewTool("reward_score",
		mcp.WithDescription("Rate how well a completion is supported by web evidence for the prompt. Returns a reward in [-1, 1] averaged over every retrieved document."),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("The user prompt"),
		),
		mcp.WithString("completion",
			mcp.Required(),
			mcp.Description("The assistant answer to judge"),
		),
	)
	s.AddTool(rewardTool, handleRewardScore(c))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// apiClient forwards tool calls to a running groundtruth HTTP server.
type apiClient struct {
	baseURL string
	http    *http.Client
}

// post sends payload to path and decodes the reply into out. A response
// with success=false is returned as an error carrying the API's code.
func (c *apiClient) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var envelope struct {
		Success bool                `json:"success"`
		Error   *models.ErrorDetail `json:"error"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("parse response (HTTP %d): %w", resp.StatusCode, err)
	}
	if !envelope.Success {
		if envelope.Error != nil {
			return fmt.Errorf("[%s] %s", envelope.Error.Code, envelope.Error.Message)
		}
		return fmt.Errorf("request failed with HTTP %d", resp.StatusCode)
	}
	return json.Unmarshal(respBody, out)
}

func handleWebQuery(c *apiClient) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError("query is required"), nil
		}

		var resp models.QueryResponse
		if err := c.post(ctx, "/api/v1/query", models.QueryRequest{Query: query}, &resp); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if len(resp.URLs) == 0 {
			return mcp.NewToolResultText("No results."), nil
		}

		var sb strings.Builder
		for i, u := range resp.URLs {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, u)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func handleExtractURL(c *apiClient) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		payload := models.ExtractRequest{URL: url}
		for _, sel := range request.GetStringSlice("click", nil) {
			payload.Steps = append(payload.Steps, models.StepRequest{
				By:     string(models.LocateCSS),
				Value:  sel,
				WaitMs: 500,
			})
		}

		var resp models.ExtractResponse
		if err := c.post(ctx, "/api/v1/extract", payload, &resp); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if resp.Document == nil {
			return mcp.NewToolResultError("extract returned no document"), nil
		}

		d := resp.Document
		return mcp.NewToolResultText(fmt.Sprintf("Source: %s\nExtractor: %s\n\n%s", d.URL, d.Extractor, d.Text)), nil
	}
}

func handleRewardScore(c *apiClient) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		prompt, err := request.RequireString("prompt")
		if err != nil {
			return mcp.NewToolResultError("prompt is required"), nil
		}
		completion, err := request.RequireString("completion")
		if err != nil {
			return mcp.NewToolResultError("completion is required"), nil
		}

		var resp models.ScoreResponse
		payload := models.ScoreRequest{Prompt: prompt, Completion: completion}
		if err := c.post(ctx, "/api/v1/score", payload, &resp); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Reward: %+.3f\n", resp.Reward)
		if resp.NoEvidence {
			sb.WriteString("No search results; reward defaulted to neutral.\n")
		}
		for _, s := range resp.Samples {
			fmt.Fprintf(&sb, "  %+.2f  %s\n", s.Score, s.URL)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}
