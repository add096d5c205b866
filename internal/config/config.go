package config

import (
	"time"

	"github.com/alanhe1219-web/Pulse-Bodega/pkg/clients/xpost"
	"github.com/alanhe1219-web/Pulse-Bodega/pkg/config"
	"github.com/alanhe1219-web/Pulse-Bodega/pkg/models"
)

// Config holds the service configuration, loaded once at startup.
type Config struct {
	Port     string
	LogLevel string

	// Post source.
	Subreddit string
	Query     string
	PostLimit int

	// Default meme knobs; per-request query params override them.
	Topic    string
	Business string
	Offer    string
	Style    models.Style
	Tiles    int
	Width    int
	Height   int

	// FocusBias steers keyword and post selection toward the focus pools.
	FocusBias          bool
	TwoImageBackground bool

	// Image fetching.
	FetchTimeout  time.Duration
	ImageCacheTTL time.Duration

	// Celebrity lookups.
	CelebLimit int

	// Seed pins every random draw when nonzero, for reproducible output.
	Seed int64

	XCredentials xpost.Credentials
}

// Load reads the environment into a Config.
func Load() *Config {
	return &Config{
		Port:     config.GetEnv("PORT", "8080"),
		LogLevel: config.GetEnv("LOG_LEVEL", "info"),

		Subreddit: config.GetEnv("SUBREDDIT", "nfl"),
		Query:     config.GetEnv("SEARCH_QUERY", ""),
		PostLimit: config.GetEnvInt("POST_LIMIT", 30),

		Topic:    config.GetEnv("MEME_TOPIC", "super bowl"),
		Business: config.GetEnv("BUSINESS_NAME", "your local spot"),
		Offer:    config.GetEnv("OFFER_TEXT", "game night special"),
		Style:    models.Style(config.GetEnv("MEME_STYLE", string(models.StyleGrid))),
		Tiles:    config.GetEnvInt("MEME_TILES", 4),
		Width:    config.GetEnvInt("MEME_WIDTH", 1024),
		Height:   config.GetEnvInt("MEME_HEIGHT", 1024),

		FocusBias:          config.GetEnvBool("FOCUS_BIAS", false),
		TwoImageBackground: config.GetEnvBool("TWO_IMAGE_BACKGROUND", true),

		FetchTimeout:  config.GetEnvDuration("IMAGE_FETCH_TIMEOUT", 4*time.Second),
		ImageCacheTTL: config.GetEnvDuration("IMAGE_CACHE_TTL", 10*time.Minute),

		CelebLimit: config.GetEnvInt("CELEB_LIMIT", 5),

		Seed: int64(config.GetEnvInt("MEME_SEED", 0)),

		XCredentials: xpost.Credentials{
			APIKey:            config.GetEnv("X_API_KEY", ""),
			APISecret:         config.GetEnv("X_API_SECRET", ""),
			AccessToken:       config.GetEnv("X_ACCESS_TOKEN", ""),
			AccessTokenSecret: config.GetEnv("X_ACCESS_TOKEN_SECRET", ""),
		},
	}
}

// DefaultStyleConfig derives the per-request rendering defaults.
func (c *Config) DefaultStyleConfig() models.StyleConfig {
	return models.StyleConfig{
		Style:              c.Style,
		Tiles:              c.Tiles,
		FocusBias:          c.FocusBias,
		TwoImageBackground: c.TwoImageBackground,
		Topic:              c.Topic,
		Business:           c.Business,
		Offer:              c.Offer,
		Width:              c.Width,
		Height:             c.Height,
	}.Normalize()
}
