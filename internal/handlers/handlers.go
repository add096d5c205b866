package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/png"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/alanhe1219-web/Pulse-Bodega/internal/caption"
	"github.com/alanhe1219-web/Pulse-Bodega/internal/config"
	"github.com/alanhe1219-web/Pulse-Bodega/internal/pipeline"
	"github.com/alanhe1219-web/Pulse-Bodega/internal/render"
	"github.com/alanhe1219-web/Pulse-Bodega/internal/vibe"
	"github.com/alanhe1219-web/Pulse-Bodega/pkg/clients/wiki"
	"github.com/alanhe1219-web/Pulse-Bodega/pkg/clients/xpost"
	"github.com/alanhe1219-web/Pulse-Bodega/pkg/logging"
	"github.com/alanhe1219-web/Pulse-Bodega/pkg/middleware"
	"github.com/alanhe1219-web/Pulse-Bodega/pkg/models"
)

// PostSource pulls a batch of recent posts.
type PostSource interface {
	FetchPosts(ctx context.Context, subreddit, query string, limit int) ([]models.Post, error)
}

// PersonResolver verifies that a name belongs to a real person.
type PersonResolver interface {
	LookupPerson(ctx context.Context, name string) (*wiki.PersonInfo, error)
}

// SocialPoster publishes a rendered meme.
type SocialPoster interface {
	PostImage(ctx context.Context, pngBytes []byte, text string) (*xpost.PostResult, error)
}

// MemeComposer runs the meme pipeline for a post batch.
type MemeComposer interface {
	Compose(ctx context.Context, posts []models.Post, cfg models.StyleConfig, rng *rand.Rand) (*models.RenderedMeme, error)
}

// Handlers serves the HTTP surface of the service.
type Handlers struct {
	cfg      *config.Config
	posts    PostSource
	people   PersonResolver
	poster   SocialPoster
	composer MemeComposer
	card     *render.CardRenderer
	logger   logging.Logger

	classifier *vibe.Classifier
	keywords   *vibe.KeywordExtractor
	captions   *caption.Selector

	memesRendered *prometheus.CounterVec
}

// NewHandlers wires the endpoint dependencies. poster may be nil when
// posting credentials are not configured.
func NewHandlers(cfg *config.Config, posts PostSource, people PersonResolver, poster SocialPoster, composer MemeComposer, logger logging.Logger, memesRendered *prometheus.CounterVec) *Handlers {
	return &Handlers{
		cfg:           cfg,
		posts:         posts,
		people:        people,
		poster:        poster,
		composer:      composer,
		card:          render.NewCardRenderer(render.NewLayout(render.NewFontResolver())),
		logger:        logger,
		classifier:    vibe.NewClassifier(nil),
		keywords:      vibe.NewKeywordExtractor(vibe.DefaultTopK),
		captions:      caption.NewSelector(),
		memesRendered: memesRendered,
	}
}

// RegisterRoutes attaches all endpoints to the router.
func (h *Handlers) RegisterRoutes(router *gin.Engine) {
	router.GET("/buzz", h.GetBuzz)
	router.GET("/celebs", h.GetCelebs)
	router.GET("/trend", h.GetTrend)
	router.GET("/meme", h.GetMeme)
	router.GET("/meme_suggestion", h.GetMemeSuggestion)
	router.GET("/meme.png", h.GetMemePNG)
	router.GET("/meme_card.png", h.GetMemeCardPNG)
	router.POST("/x/post_latest", h.PostLatest)
}

// rng builds the per-request random source. A configured seed (or a
// seed query param) pins every draw for reproducible output.
func (h *Handlers) rng(c *gin.Context) *rand.Rand {
	if raw := c.Query("seed"); raw != "" {
		if seed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return rand.New(rand.NewSource(seed))
		}
	}
	if h.cfg.Seed != 0 {
		return rand.New(rand.NewSource(h.cfg.Seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func (h *Handlers) fetchPosts(c *gin.Context) ([]models.Post, string, string, error) {
	subreddit := c.DefaultQuery("subreddit", h.cfg.Subreddit)
	query := c.DefaultQuery("q", h.cfg.Query)
	limit := intQuery(c, "limit", h.cfg.PostLimit)
	posts, err := h.posts.FetchPosts(c.Request.Context(), subreddit, query, limit)
	return posts, subreddit, query, err
}

// styleConfig resolves the render knobs for this request: service
// defaults overlaid with query params.
func (h *Handlers) styleConfig(c *gin.Context) models.StyleConfig {
	cfg := h.cfg.DefaultStyleConfig()
	if v := c.Query("style"); v != "" {
		cfg.Style = models.Style(v)
	}
	cfg.Tiles = intQuery(c, "tiles", cfg.Tiles)
	cfg.Width = intQuery(c, "width", cfg.Width)
	cfg.Height = intQuery(c, "height", cfg.Height)
	if v := c.Query("focus"); v != "" {
		cfg.FocusBias = isTruthy(v)
	}
	if v := c.Query("two_bg"); v != "" {
		cfg.TwoImageBackground = isTruthy(v)
	}
	if v := c.Query("topic"); v != "" {
		cfg.Topic = v
	}
	if v := c.Query("business"); v != "" {
		cfg.Business = v
	}
	if v := c.Query("offer"); v != "" {
		cfg.Offer = v
	}
	return cfg.Normalize()
}

// GetBuzz reports the scored batch without rendering anything.
func (h *Handlers) GetBuzz(c *gin.Context) {
	posts, subreddit, query, err := h.fetchPosts(c)
	if err != nil {
		h.upstreamError(c, "reddit fetch failed", err)
		return
	}

	scored := h.classifier.Score(posts)
	mood, mean := h.classifier.Mood(scored)
	keywords := h.keywords.Extract(scored, mood)

	type buzzPost struct {
		ID        string  `json:"id"`
		Title     string  `json:"title"`
		URL       string  `json:"url"`
		Polarity  float64 `json:"polarity"`
		Event     string  `json:"event,omitempty"`
		ImageURLs int     `json:"image_count"`
	}
	out := make([]buzzPost, 0, len(scored))
	for _, p := range scored {
		out = append(out, buzzPost{
			ID: p.ID, Title: p.Title, URL: p.URL,
			Polarity: p.Polarity, Event: p.Event, ImageURLs: len(p.ImageURLs),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"subreddit":    subreddit,
		"query":        query,
		"mood":         mood,
		"avg_polarity": mean,
		"keywords":     keywords,
		"event":        vibe.FirstEvent(scored),
		"posts":        out,
	})
}

// GetCelebs extracts name candidates from the batch and verifies them
// against Wikipedia until the limit is reached.
func (h *Handlers) GetCelebs(c *gin.Context) {
	posts, subreddit, _, err := h.fetchPosts(c)
	if err != nil {
		h.upstreamError(c, "reddit fetch failed", err)
		return
	}

	limit := intQuery(c, "celebs", h.cfg.CelebLimit)
	counts := make(map[string]int)
	var order []string
	for _, p := range posts {
		for _, name := range vibe.ExtractNameCandidates(p.Text()) {
			if counts[name] == 0 {
				order = append(order, name)
			}
			counts[name]++
		}
	}

	verified := make([]*wiki.PersonInfo, 0, limit)
	for _, name := range order {
		if len(verified) >= limit {
			break
		}
		info, err := h.people.LookupPerson(c.Request.Context(), name)
		if err != nil {
			if !errors.Is(err, wiki.ErrNotPerson) {
				h.logger.WithFields(logging.Fields{
					"request_id": middleware.GetRequestID(c),
					"name":       name,
					"error":      err.Error(),
				}).Warn("Person lookup failed")
			}
			continue
		}
		verified = append(verified, info)
	}

	c.JSON(http.StatusOK, gin.H{
		"subreddit":  subreddit,
		"candidates": counts,
		"people":     verified,
	})
}

// GetTrend combines the buzz summary with the most-mentioned verified
// person into one compact payload.
func (h *Handlers) GetTrend(c *gin.Context) {
	posts, subreddit, query, err := h.fetchPosts(c)
	if err != nil {
		h.upstreamError(c, "reddit fetch failed", err)
		return
	}

	scored := h.classifier.Score(posts)
	mood, mean := h.classifier.Mood(scored)
	keywords := h.keywords.Extract(scored, mood)

	counts := make(map[string]int)
	var top string
	for _, p := range scored {
		for _, name := range vibe.ExtractNameCandidates(p.Text()) {
			counts[name]++
			if top == "" || counts[name] > counts[top] {
				top = name
			}
		}
	}

	var person *wiki.PersonInfo
	if top != "" {
		if info, err := h.people.LookupPerson(c.Request.Context(), top); err == nil {
			person = info
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"subreddit":    subreddit,
		"query":        query,
		"mood":         mood,
		"avg_polarity": mean,
		"keywords":     keywords,
		"event":        vibe.FirstEvent(scored),
		"top_person":   person,
	})
}

// GetMemeSuggestion returns caption copy and an image-generation prompt
// from the live buzz without rendering anything. Useful for previewing
// copy or feeding an external image model.
func (h *Handlers) GetMemeSuggestion(c *gin.Context) {
	posts, subreddit, query, err := h.fetchPosts(c)
	if err != nil {
		h.upstreamError(c, "reddit fetch failed", err)
		return
	}
	if len(posts) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no posts available to seed a suggestion"})
		return
	}

	scored := h.classifier.Score(posts)
	mood, mean := h.classifier.Mood(scored)
	keywords := h.keywords.Extract(scored, mood)
	event := vibe.FirstEvent(scored)

	cfg := h.styleConfig(c)
	top, bottom := h.captions.Build(caption.Input{
		Mood:     mood,
		Keywords: keywords,
		Topic:    cfg.Topic,
		Business: cfg.Business,
		Offer:    cfg.Offer,
		Event:    event,
	}, h.rng(c))

	c.JSON(http.StatusOK, gin.H{
		"subreddit":    subreddit,
		"query":        query,
		"mood":         mood,
		"avg_polarity": mean,
		"keywords":     keywords,
		"event":        event,
		"top_text":     top,
		"bottom_text":  bottom,
		"caption":      caption.ClassicSummary(top, bottom, cfg.Offer, cfg.Business),
		"image_prompt": imagePrompt(mood, keywords, cfg.Topic),
	})
}

// imagePrompt describes a background an external image model could
// generate for the current buzz.
func imagePrompt(mood models.Mood, keywords []string, topic string) string {
	shown := keywords
	if len(shown) > 3 {
		shown = shown[:3]
	}
	subject := strings.Join(shown, ", ")
	if subject == "" {
		subject = "the crowd"
	}
	return fmt.Sprintf("bold meme-style photo of %s, featuring %s, %s energy, dramatic stadium lighting, high contrast",
		topic, subject, strings.ToLower(mood.Word()))
}

// GetMeme renders a meme and returns it as a base64 data URL with the
// full metadata alongside.
func (h *Handlers) GetMeme(c *gin.Context) {
	meme, ok := h.composeFromRequest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"caption":  meme.Caption,
		"metadata": meme.Metadata,
		"image":    "data:image/png;base64," + base64.StdEncoding.EncodeToString(meme.PNG),
	})
}

// GetMemePNG renders a meme and returns the raw PNG.
func (h *Handlers) GetMemePNG(c *gin.Context) {
	meme, ok := h.composeFromRequest(c)
	if !ok {
		return
	}
	c.Header("X-Meme-Caption", meme.Caption)
	c.Data(http.StatusOK, "image/png", meme.PNG)
}

// GetMemeCardPNG renders the static promo card, no live posts involved.
func (h *Handlers) GetMemeCardPNG(c *gin.Context) {
	cfg := h.styleConfig(c)
	img, err := h.card.Render(render.CardCopy{
		Headline:  c.DefaultQuery("headline", "GAME NIGHT INCOMING"),
		Punchline: c.DefaultQuery("punchline", "your couch called, it wants snacks"),
		CTA:       cfg.Offer,
		Footer:    cfg.Business,
	}, cfg.Width, cfg.Height)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "card render failed"})
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "card encode failed"})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// PostLatest renders a meme and publishes it to X. Without configured
// credentials it returns the ready-to-post payload instead of failing.
func (h *Handlers) PostLatest(c *gin.Context) {
	meme, ok := h.composeFromRequest(c)
	if !ok {
		return
	}

	if h.poster == nil {
		c.JSON(http.StatusOK, gin.H{
			"posted":   false,
			"reason":   "posting credentials not configured",
			"caption":  meme.Caption,
			"metadata": meme.Metadata,
		})
		return
	}

	result, err := h.poster.PostImage(c.Request.Context(), meme.PNG, meme.Caption)
	if err != nil {
		h.logger.WithFields(logging.Fields{
			"request_id": middleware.GetRequestID(c),
			"error":      err.Error(),
		}).Error("Post to X failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"posted":  false,
			"error":   err.Error(),
			"result":  result,
			"caption": meme.Caption,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posted":   true,
		"result":   result,
		"caption":  meme.Caption,
		"metadata": meme.Metadata,
	})
}

func (h *Handlers) composeFromRequest(c *gin.Context) (*models.RenderedMeme, bool) {
	posts, _, _, err := h.fetchPosts(c)
	if err != nil {
		h.upstreamError(c, "reddit fetch failed", err)
		return nil, false
	}

	cfg := h.styleConfig(c)
	meme, err := h.composer.Compose(c.Request.Context(), posts, cfg, h.rng(c))
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyBatch) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no posts available to render"})
			return nil, false
		}
		logging.WithPipeline(h.logger, "compose", middleware.GetRequestID(c)).
			WithError(err).Error("Meme composition failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "meme composition failed"})
		return nil, false
	}

	if h.memesRendered != nil {
		h.memesRendered.WithLabelValues(string(meme.Metadata.Style), string(meme.Metadata.Mood)).Inc()
	}
	return meme, true
}

func (h *Handlers) upstreamError(c *gin.Context, msg string, err error) {
	h.logger.WithFields(logging.Fields{
		"request_id": middleware.GetRequestID(c),
		"error":      err.Error(),
	}).Error("Upstream fetch failed")
	c.JSON(http.StatusBadGateway, gin.H{"error": msg})
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
