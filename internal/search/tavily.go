// Package search adds web search results to chat context through Tavily.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"sportsgpt-backend/internal/logger"
)

// DefaultBaseURL is Tavily's public API root.
const DefaultBaseURL = "https://api.tavily.com"

const (
	maxResults   = 5
	contentLimit = 300
)

type searchRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	MaxResults    int    `json:"max_results"`
	IncludeAnswer bool   `json:"include_answer"`
}

type searchResponse struct {
	Answer  string `json:"answer"`
	Results []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		URL     string `json:"url"`
	} `json:"results"`
}

// Client is a Tavily web search client. A Client without an API key is disabled.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        logrus.FieldLogger
}

// NewClient creates a search client.
func NewClient(apiKey, baseURL string, timeout time.Duration, log logrus.FieldLogger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.WithField("component", "search.tavily"),
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Search returns formatted context for query, or "" when disabled or on failure.
func (c *Client) Search(ctx context.Context, query string) string {
	if !c.Enabled() {
		return ""
	}

	c.log.WithField("query", logger.Truncate(query, 100)).Info("web search")
	resp, err := c.search(ctx, query)
	if err != nil {
		c.log.WithError(err).Error("web search failed")
		return ""
	}

	var parts []string
	if resp.Answer != "" {
		parts = append(parts, "Summary: "+resp.Answer)
	}
	for _, r := range resp.Results {
		if r.Content == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("- %s: %s", r.Title, truncateRunes(r.Content, contentLimit)))
	}

	out := strings.Join(parts, "\n")
	c.log.WithFields(logrus.Fields{"results": len(resp.Results), "chars": len(out)}).Info("web search returned")
	return out
}

func (c *Client) search(ctx context.Context, query string) (*searchResponse, error) {
	body, err := json.Marshal(searchRequest{
		APIKey:        c.apiKey,
		Query:         "sports " + query,
		SearchDepth:   "basic",
		MaxResults:    maxResults,
		IncludeAnswer: true,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling search API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	return &out, nil
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
