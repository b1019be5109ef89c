// Package news fetches trending sports headlines from an RSS feed.
package news

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sirupsen/logrus"

	"sportsgpt-backend/internal/models"
)

const (
	// DefaultCount is how many headlines the API returns.
	DefaultCount = 4

	summaryLimit = 150
)

// Client reads a single syndication feed.
type Client struct {
	feedURL    string
	httpClient *http.Client
	parser     *gofeed.Parser
	log        logrus.FieldLogger
}

// NewClient creates a feed client bounded by timeout.
func NewClient(feedURL string, timeout time.Duration, log logrus.FieldLogger) *Client {
	return &Client{
		feedURL:    feedURL,
		httpClient: &http.Client{Timeout: timeout},
		parser:     gofeed.NewParser(),
		log:        log.WithField("component", "news"),
	}
}

// Trending returns up to count headlines. Failures are logged and yield an
// empty list.
func (c *Client) Trending(ctx context.Context, count int) []models.NewsArticle {
	articles, err := c.fetch(ctx, count)
	if err != nil {
		c.log.WithError(err).Error("failed to fetch trending news")
		return []models.NewsArticle{}
	}
	c.log.WithField("count", len(articles)).Info("fetched trending news articles")
	return articles
}

func (c *Client) fetch(ctx context.Context, count int) ([]models.NewsArticle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building feed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching feed: unexpected status %d", resp.StatusCode)
	}

	feed, err := c.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	items := feed.Items
	if count >= 0 && len(items) > count {
		items = items[:count]
	}

	articles := make([]models.NewsArticle, 0, len(items))
	for _, item := range items {
		articles = append(articles, models.NewsArticle{
			Title:     item.Title,
			Summary:   truncateRunes(item.Description, summaryLimit),
			Link:      item.Link,
			Image:     mediaURL(item),
			Published: item.Published,
		})
	}
	return articles, nil
}

// mediaURL prefers media:content over media:thumbnail.
func mediaURL(item *gofeed.Item) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	for _, name := range []string{"content", "thumbnail"} {
		if exts := media[name]; len(exts) > 0 {
			return exts[0].Attrs["url"]
		}
	}
	return ""
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
