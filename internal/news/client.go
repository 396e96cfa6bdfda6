package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"newsrelay/internal/config"
	"newsrelay/internal/logging"
	"newsrelay/internal/upstream"
)

const (
	serviceName = "GNews"

	// NoNews is the headline block used when the API returns no articles.
	NoNews = "No news available."
)

// Article is one headline as returned by GNews. A missing or null title
// or description decodes to the empty string and renders as such, never
// as a "None"/"null" placeholder.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Client fetches top headlines from the GNews API
type Client struct {
	BaseURL     string
	APIKey      string
	Language    string
	MaxArticles int
	HTTPClient  *http.Client
}

// NewClient creates a GNews client from config
func NewClient(cfg config.GNewsConfig) *Client {
	return &Client{
		BaseURL:     cfg.URL,
		APIKey:      cfg.APIKey,
		Language:    cfg.Language,
		MaxArticles: cfg.MaxArticles,
		HTTPClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Fetch returns the articles in the order the API sent them.
func (c *Client) Fetch(ctx context.Context) ([]Article, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Set("lang", c.Language)
	q.Set("max", strconv.Itoa(c.MaxArticles))
	q.Set("apikey", c.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	log := logging.FromContext(ctx).WithField("service", serviceName)
	log.Debug("fetching top headlines")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &upstream.Error{Service: serviceName, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &upstream.Error{Service: serviceName, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithField("status", resp.StatusCode).Warn("headline request rejected")
		return nil, &upstream.Error{Service: serviceName, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed struct {
		Articles []Article `json:"articles"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &upstream.Error{Service: serviceName, Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	log.WithField("articles", len(parsed.Articles)).Debug("headlines received")
	return parsed.Articles, nil
}

// FetchHeadlines fetches the articles and renders them as a headline block.
func (c *Client) FetchHeadlines(ctx context.Context) (string, error) {
	articles, err := c.Fetch(ctx)
	if err != nil {
		return "", err
	}
	return FormatHeadlines(articles), nil
}

// FormatHeadlines renders one "- title: description" line per article.
func FormatHeadlines(articles []Article) string {
	if len(articles) == 0 {
		return NoNews
	}
	lines := make([]string, 0, len(articles))
	for _, a := range articles {
		lines = append(lines, fmt.Sprintf("- %s: %s", a.Title, a.Description))
	}
	return strings.Join(lines, "\n")
}
