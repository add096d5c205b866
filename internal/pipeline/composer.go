package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"math/rand"

	"github.com/alanhe1219-web/Pulse-Bodega/internal/caption"
	"github.com/alanhe1219-web/Pulse-Bodega/internal/render"
	"github.com/alanhe1219-web/Pulse-Bodega/internal/vibe"
	"github.com/alanhe1219-web/Pulse-Bodega/pkg/logging"
	"github.com/alanhe1219-web/Pulse-Bodega/pkg/models"
)

// ErrEmptyBatch is the pipeline's only hard failure: there is nothing
// to classify and no mood to render. Every other degradation (no
// images, no keywords, fetch failures) still yields a meme.
var ErrEmptyBatch = errors.New("pipeline: empty post batch")

// ImageSource downloads and decodes images; failures are omissions,
// never errors.
type ImageSource interface {
	FetchAll(ctx context.Context, urls []string) []image.Image
}

// Composer runs the full post-batch to finished-meme pipeline:
// classify, extract keywords, bias, select, fetch, caption, render.
type Composer struct {
	classifier *vibe.Classifier
	keywords   *vibe.KeywordExtractor
	focus      *vibe.FocusBias
	captions   *caption.Selector
	fetcher    ImageSource
	grid       *render.GridRenderer
	classic    *render.ClassicRenderer
	logger     logging.Logger
}

// ComposerOption customizes a Composer.
type ComposerOption func(*Composer)

// WithScorer swaps the sentiment model, mainly to pin scores in tests.
func WithScorer(s vibe.Scorer) ComposerOption {
	return func(c *Composer) { c.classifier = vibe.NewClassifier(s) }
}

// NewComposer wires the pipeline stages together.
func NewComposer(logger logging.Logger, fetcher ImageSource, opts ...ComposerOption) *Composer {
	layout := render.NewLayout(render.NewFontResolver())
	c := &Composer{
		classifier: vibe.NewClassifier(nil),
		keywords:   vibe.NewKeywordExtractor(vibe.DefaultTopK),
		focus:      vibe.NewFocusBias(),
		captions:   caption.NewSelector(),
		fetcher:    fetcher,
		grid:       render.NewGridRenderer(layout),
		classic:    render.NewClassicRenderer(layout),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose renders one meme from a batch of posts. rng drives every
// random decision (focus draws, post sampling, template choice) so a
// fixed seed reproduces the exact output.
func (c *Composer) Compose(ctx context.Context, posts []models.Post, cfg models.StyleConfig, rng *rand.Rand) (*models.RenderedMeme, error) {
	cfg = cfg.Normalize()
	if len(posts) == 0 {
		return nil, ErrEmptyBatch
	}

	scored := c.classifier.Score(posts)
	mood, mean := c.classifier.Mood(scored)
	keywords := c.keywords.Extract(scored, mood)
	event := vibe.FirstEvent(scored)

	var terms []models.FocusTerm
	var termLabels []string
	if cfg.FocusBias {
		terms = c.focus.PickTerms(rng)
		keywords = c.focus.BiasKeywords(keywords, terms, vibe.DefaultTopK)
		for _, t := range terms {
			termLabels = append(termLabels, t.Label())
		}
	}

	c.logger.WithFields(logging.Fields{
		"posts":    len(posts),
		"mood":     mood,
		"polarity": mean,
		"keywords": keywords,
		"style":    cfg.Style,
	}).Debug("Batch classified")

	meta := models.MemeMetadata{
		Mood:           mood,
		AvgPolarity:    mean,
		Keywords:       keywords,
		Event:          event,
		Style:          cfg.Style,
		TilesRequested: cfg.Tiles,
		FocusTerms:     termLabels,
	}

	var (
		canvas  image.Image
		capText string
		err     error
	)
	if cfg.Style == models.StyleClassic {
		canvas, capText, err = c.composeClassic(ctx, scored, cfg, terms, mood, keywords, event, rng, &meta)
	} else {
		canvas, capText, err = c.composeGrid(ctx, scored, cfg, terms, mood, keywords, rng, &meta)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, err
	}
	return &models.RenderedMeme{
		PNG:      buf.Bytes(),
		Width:    cfg.Width,
		Height:   cfg.Height,
		Caption:  capText,
		Metadata: meta,
	}, nil
}

func (c *Composer) composeGrid(ctx context.Context, posts []models.Post, cfg models.StyleConfig, terms []models.FocusTerm, mood models.Mood, keywords []string, rng *rand.Rand, meta *models.MemeMetadata) (image.Image, string, error) {
	urls := selectGridImageURLs(posts, terms, cfg.Tiles, rng)
	images := c.fetchImages(ctx, urls)

	tilesUsed := cfg.Tiles
	if len(images) == 0 {
		tilesUsed = 1
	}
	meta.TilesUsed = tilesUsed
	meta.ImagesRequested = len(urls)
	meta.ImagesUsed = len(images)
	meta.ImageURLs = urls

	canvas, err := c.grid.Render(render.Scene{
		Images:   images,
		MoodWord: mood.Word(),
		Keywords: keywords,
		Business: cfg.Business,
		Offer:    cfg.Offer,
		ShowCTA:  cfg.Business != "" && cfg.Offer != "",
		Tiles:    tilesUsed,
		Width:    cfg.Width,
		Height:   cfg.Height,
	})
	if err != nil {
		return nil, "", err
	}
	return canvas, caption.Summary(mood, keywords, cfg.Offer, cfg.Business), nil
}

func (c *Composer) composeClassic(ctx context.Context, posts []models.Post, cfg models.StyleConfig, terms []models.FocusTerm, mood models.Mood, keywords []string, event string, rng *rand.Rand, meta *models.MemeMetadata) (image.Image, string, error) {
	var urls []string
	if src, ok := selectClassicSource(posts, terms, rng); ok {
		urls = classicBackgroundURLs(src, cfg.TwoImageBackground, rng)
	}
	images := c.fetchImages(ctx, urls)

	meta.TilesUsed = 1
	meta.ImagesRequested = len(urls)
	meta.ImagesUsed = len(images)
	meta.ImageURLs = urls

	top, bottom := c.captions.Build(caption.Input{
		Mood:     mood,
		Keywords: keywords,
		Topic:    cfg.Topic,
		Business: cfg.Business,
		Offer:    cfg.Offer,
		Event:    event,
	}, rng)

	canvas, err := c.classic.Render(render.Scene{
		Images:     images,
		MoodWord:   mood.Word(),
		Keywords:   keywords,
		TopText:    top,
		BottomText: bottom,
		Business:   cfg.Business,
		Offer:      cfg.Offer,
		ShowCTA:    cfg.Business != "" && cfg.Offer != "",
		Tiles:      1,
		Width:      cfg.Width,
		Height:     cfg.Height,
	})
	if err != nil {
		return nil, "", err
	}
	return canvas, caption.ClassicSummary(top, bottom, cfg.Offer, cfg.Business), nil
}

func (c *Composer) fetchImages(ctx context.Context, urls []string) []image.Image {
	if len(urls) == 0 || c.fetcher == nil {
		return nil
	}
	return c.fetcher.FetchAll(ctx, urls)
}
