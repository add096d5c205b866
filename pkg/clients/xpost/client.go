package xpost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/dghubble/oauth1"
)

const (
	defaultUploadURL = "https://upload.twitter.com/1.1/media/upload.json"
	defaultTweetURL  = "https://api.twitter.com/2/tweets"
	defaultTimeout   = 30 * time.Second
)

// Credentials holds the OAuth1.0a user-context keys required to post.
type Credentials struct {
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
}

// Complete reports whether all four keys are present.
func (c Credentials) Complete() bool {
	return c.APIKey != "" && c.APISecret != "" && c.AccessToken != "" && c.AccessTokenSecret != ""
}

// PostResult is the outcome of a post attempt.
type PostResult struct {
	OK       bool            `json:"ok"`
	Error    string          `json:"error,omitempty"`
	MediaID  string          `json:"media_id,omitempty"`
	Response json.RawMessage `json:"response,omitempty"`
}

// Client posts an image plus text to X. Media goes through the v1.1
// upload endpoint, the post itself through the v2 tweet endpoint.
type Client struct {
	uploadURL string
	tweetURL  string
	client    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// NewClient builds a posting client from OAuth1 user credentials.
func NewClient(creds Credentials, opts ...Option) *Client {
	config := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	httpClient.Timeout = defaultTimeout

	c := &Client{
		uploadURL: defaultUploadURL,
		tweetURL:  defaultTweetURL,
		client:    httpClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithEndpoints overrides the upload and tweet URLs (tests).
func WithEndpoints(uploadURL, tweetURL string) Option {
	return func(c *Client) {
		c.uploadURL = uploadURL
		c.tweetURL = tweetURL
	}
}

// WithHTTPClient replaces the OAuth-signing client (tests).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.client = httpClient
		}
	}
}

// PostImage uploads pngBytes as media and creates a post referencing it.
func (c *Client) PostImage(ctx context.Context, pngBytes []byte, text string) (*PostResult, error) {
	mediaID, err := c.uploadMedia(ctx, pngBytes)
	if err != nil {
		return &PostResult{OK: false, Error: err.Error()}, err
	}

	payload := map[string]interface{}{
		"text":  text,
		"media": map[string]interface{}{"media_ids": []string{mediaID}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tweet payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tweetURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create tweet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &PostResult{OK: false, Error: err.Error(), MediaID: mediaID}, fmt.Errorf("tweet create failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if resp.StatusCode >= 300 {
		err := fmt.Errorf("tweet create failed: status %d", resp.StatusCode)
		return &PostResult{OK: false, Error: err.Error(), MediaID: mediaID, Response: respBody}, err
	}

	return &PostResult{OK: true, MediaID: mediaID, Response: respBody}, nil
}

func (c *Client) uploadMedia(ctx context.Context, pngBytes []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("media", "meme.png")
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(pngBytes); err != nil {
		return "", fmt.Errorf("failed to write media bytes: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("media upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("media upload failed: status %d", resp.StatusCode)
	}

	var uploaded struct {
		MediaIDString string `json:"media_id_string"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return "", fmt.Errorf("failed to parse upload response: %w", err)
	}
	if uploaded.MediaIDString == "" {
		return "", fmt.Errorf("media upload succeeded but no media id returned")
	}
	return uploaded.MediaIDString, nil
}
