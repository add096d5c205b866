package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"

	"github.com/alanhe1219-web/Pulse-Bodega/pkg/clients"
	"github.com/alanhe1219-web/Pulse-Bodega/pkg/models"
)

const (
	defaultBaseURL   = "https://www.reddit.com"
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "pulse-bodega/0.1 (live buzz meme seed)"

	// Reddit drops the selftext cap on some endpoints; keep bodies bounded.
	maxBodyLen = 2000
)

// APIError reports a non-200 answer from Reddit.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("reddit returned status: %d", e.StatusCode)
}

// Client reads public subreddit feeds. No credentials are required, but
// Reddit rate-limits aggressively without a User-Agent.
type Client struct {
	baseURL      string
	userAgent    string
	client       *http.Client
	httpExecutor failsafe.Executor[*http.Response]
}

// Option customizes a Client.
type Option func(*Client)

// NewClient creates a Reddit feed client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:      defaultBaseURL,
		userAgent:    defaultUserAgent,
		client:       &http.Client{Timeout: defaultTimeout},
		httpExecutor: clients.NewHTTPExecutor(clients.DefaultHTTPExecutorConfig()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithBaseURL overrides the API endpoint (tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.client = httpClient
		}
	}
}

// WithHTTPExecutorConfig overrides retry/breaker behavior.
func WithHTTPExecutorConfig(cfg clients.HTTPExecutorConfig) Option {
	return func(c *Client) { c.httpExecutor = clients.NewHTTPExecutor(cfg) }
}

// FetchPosts pulls recent posts from a subreddit. When query is
// non-empty the subreddit search endpoint is used instead of the new
// feed, which gives a better chance of relevant posts with images.
func (c *Client) FetchPosts(ctx context.Context, subreddit, query string, limit int) ([]models.Post, error) {
	var endpoint string
	params := url.Values{}
	if strings.TrimSpace(query) != "" {
		endpoint = fmt.Sprintf("%s/r/%s/search.json", c.baseURL, url.PathEscape(subreddit))
		params.Set("q", query)
		params.Set("sort", "new")
		params.Set("restrict_sr", "1")
	} else {
		endpoint = fmt.Sprintf("%s/r/%s/new.json", c.baseURL, url.PathEscape(subreddit))
	}
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := clients.ExecuteHTTP(ctx, c.httpExecutor, func() (*http.Response, error) {
		return c.client.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("reddit request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode}
	}

	var body listing
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to parse reddit listing: %w", err)
	}

	posts := make([]models.Post, 0, len(body.Data.Children))
	for _, child := range body.Data.Children {
		d := child.Data
		title := strings.TrimSpace(d.Title)
		text := strings.TrimSpace(title + "\n" + d.Selftext)
		if len(text) < 6 {
			continue
		}
		selftext := d.Selftext
		if len(selftext) > maxBodyLen {
			selftext = selftext[:maxBodyLen]
		}
		id := d.Name
		if id == "" {
			id = d.ID
		}
		postURL := d.URL
		if d.Permalink != "" {
			postURL = c.baseURL + d.Permalink
		}
		posts = append(posts, models.Post{
			ID:        id,
			Title:     title,
			Body:      selftext,
			URL:       postURL,
			CreatedAt: time.Unix(int64(d.CreatedUTC), 0).UTC(),
			ImageURLs: extractImageURLs(d),
		})
	}
	return posts, nil
}
