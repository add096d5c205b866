package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"

	"github.com/alanhe1219-web/Pulse-Bodega/pkg/cache"
	"github.com/alanhe1219-web/Pulse-Bodega/pkg/clients"
)

const (
	defaultAPIBase     = "https://en.wikipedia.org"
	defaultWikidataURL = "https://www.wikidata.org"
	defaultTimeout     = 10 * time.Second
	defaultUserAgent   = "pulse-bodega/0.1 (live buzz meme seed)"

	// instance-of human
	humanQID = "Q5"
)

var wordPattern = regexp.MustCompile(`[A-Za-z]+`)

// descriptionHints accepts a person without a Wikidata record when the
// summary description clearly names a public figure.
var descriptionHints = []string{
	"actor", "actress", "singer", "rapper", "musician", "comedian",
	"american football", "quarterback", "athlete", "player",
}

// Client resolves names to verified humans via Wikipedia search, the
// REST summary endpoint and a Wikidata P31 check. Lookups are cached.
type Client struct {
	apiBase      string
	wikidataBase string
	userAgent    string
	client       *http.Client
	httpExecutor failsafe.Executor[*http.Response]
	lookups      *cache.Cache
}

// Option customizes a Client.
type Option func(*Client)

// NewClient creates a Wikipedia/Wikidata enrichment client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		apiBase:      defaultAPIBase,
		wikidataBase: defaultWikidataURL,
		userAgent:    defaultUserAgent,
		client:       &http.Client{Timeout: defaultTimeout},
		httpExecutor: clients.NewHTTPExecutor(clients.DefaultHTTPExecutorConfig()),
		lookups: cache.New(cache.Options{
			TTL:         5 * time.Minute,
			NegativeTTL: 5 * time.Minute,
			MaxEntries:  512,
		}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithBaseURLs overrides both API endpoints (tests).
func WithBaseURLs(apiBase, wikidataBase string) Option {
	return func(c *Client) {
		c.apiBase = strings.TrimSuffix(apiBase, "/")
		c.wikidataBase = strings.TrimSuffix(wikidataBase, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.client = httpClient
		}
	}
}

// WithCacheOptions replaces the lookup cache configuration.
func WithCacheOptions(opts cache.Options) Option {
	return func(c *Client) { c.lookups = cache.New(opts) }
}

// ErrNotPerson marks a name that resolved to something other than a
// verified human, or did not resolve at all.
var ErrNotPerson = fmt.Errorf("wiki: name did not resolve to a person")

// LookupPerson resolves a name. Results (including misses) are cached
// so repeated meme renders stay cheap and rate-limit friendly.
func (c *Client) LookupPerson(ctx context.Context, name string) (*PersonInfo, error) {
	val, ok, err := c.lookups.Get(ctx, strings.ToLower(strings.TrimSpace(name)), func(ctx context.Context, _ string) (interface{}, bool, error) {
		info, err := c.lookupPerson(ctx, name)
		if err != nil {
			return nil, false, err
		}
		return info, true, nil
	})
	if !ok {
		return nil, err
	}
	return val.(*PersonInfo), nil
}

func (c *Client) lookupPerson(ctx context.Context, name string) (*PersonInfo, error) {
	title, err := c.searchTitle(ctx, name)
	if err != nil {
		return nil, err
	}

	// Require at least one token overlap between the requested name and
	// the resolved title, so "John Smith" cannot resolve to an airport.
	if !tokensOverlap(name, title) {
		return nil, ErrNotPerson
	}

	summary, err := c.fetchSummary(ctx, title)
	if err != nil {
		return nil, err
	}

	isHuman := false
	if summary.WikibaseItem != "" {
		isHuman, _ = c.isHuman(ctx, summary.WikibaseItem)
	}
	if !isHuman {
		desc := strings.ToLower(summary.Description)
		for _, hint := range descriptionHints {
			if strings.Contains(desc, hint) {
				isHuman = true
				break
			}
		}
	}
	if !isHuman {
		return nil, ErrNotPerson
	}

	return &PersonInfo{
		Name:        name,
		Title:       title,
		Description: summary.Description,
		Extract:     summary.Extract,
		Thumbnail:   summary.Thumbnail.Source,
		WikidataQID: summary.WikibaseItem,
		URL:         summary.ContentURLs.Desktop.Page,
	}, nil
}

func (c *Client) searchTitle(ctx context.Context, name string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", name)
	params.Set("srlimit", "1")
	params.Set("format", "json")

	var body searchResponse
	if err := c.getJSON(ctx, c.apiBase+"/w/api.php?"+params.Encode(), &body); err != nil {
		return "", err
	}
	if len(body.Query.Search) == 0 || body.Query.Search[0].Title == "" {
		return "", ErrNotPerson
	}
	return body.Query.Search[0].Title, nil
}

func (c *Client) fetchSummary(ctx context.Context, title string) (*summaryResponse, error) {
	endpoint := c.apiBase + "/api/rest_v1/page/summary/" + url.PathEscape(title)
	var body summaryResponse
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

func (c *Client) isHuman(ctx context.Context, qid string) (bool, error) {
	endpoint := fmt.Sprintf("%s/wiki/Special:EntityData/%s.json", c.wikidataBase, url.PathEscape(qid))
	var body entityResponse
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		return false, err
	}
	ent, ok := body.Entities[qid]
	if !ok {
		return false, nil
	}
	for _, stmt := range ent.Claims["P31"] {
		if stmt.Mainsnak.Datavalue.Value.ID == humanQID {
			return true, nil
		}
	}
	return false, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := clients.ExecuteHTTP(ctx, c.httpExecutor, func() (*http.Response, error) {
		return c.client.Do(req)
	})
	if err != nil {
		return fmt.Errorf("wiki request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wiki returned status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse wiki response: %w", err)
	}
	return nil
}

func tokensOverlap(a, b string) bool {
	set := make(map[string]bool)
	for _, tok := range wordPattern.FindAllString(strings.ToLower(a), -1) {
		set[tok] = true
	}
	for _, tok := range wordPattern.FindAllString(strings.ToLower(b), -1) {
		if set[tok] {
			return true
		}
	}
	return false
}
