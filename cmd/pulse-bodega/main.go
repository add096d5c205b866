package main

import (
	"time"

	"github.com/alanhe1219-web/Pulse-Bodega/internal/config"
	"github.com/alanhe1219-web/Pulse-Bodega/internal/fetch"
	"github.com/alanhe1219-web/Pulse-Bodega/internal/handlers"
	"github.com/alanhe1219-web/Pulse-Bodega/internal/pipeline"
	"github.com/alanhe1219-web/Pulse-Bodega/pkg/clients/reddit"
	"github.com/alanhe1219-web/Pulse-Bodega/pkg/clients/wiki"
	"github.com/alanhe1219-web/Pulse-Bodega/pkg/clients/xpost"
	pkgconfig "github.com/alanhe1219-web/Pulse-Bodega/pkg/config"
	"github.com/alanhe1219-web/Pulse-Bodega/pkg/logging"
	"github.com/alanhe1219-web/Pulse-Bodega/pkg/monitoring"
	"github.com/alanhe1219-web/Pulse-Bodega/pkg/server"
	"github.com/alanhe1219-web/Pulse-Bodega/pkg/version"
)

const serviceName = "pulse-bodega"

func main() {
	logger := logging.NewLoggerWithService(serviceName)
	pkgconfig.LoadEnv(logger)
	logger.SetLevel(pkgconfig.GetLogLevel())

	cfg := config.Load()

	logger.WithFields(logging.Fields{
		"version":   version.Version,
		"subreddit": cfg.Subreddit,
		"style":     cfg.Style,
	}).Info("Starting pulse-bodega")

	redditClient := reddit.NewClient()
	wikiClient := wiki.NewClient()

	var poster handlers.SocialPoster
	if cfg.XCredentials.Complete() {
		poster = xpost.NewClient(cfg.XCredentials)
		logger.Info("X posting enabled")
	} else {
		logger.Info("X posting disabled, credentials not configured")
	}

	fetcher := fetch.NewFetcher(logger,
		fetch.WithTimeout(cfg.FetchTimeout),
		fetch.WithCacheTTL(cfg.ImageCacheTTL),
	)
	composer := pipeline.NewComposer(logger, fetcher)

	metricsCollector := monitoring.NewMetricsCollector(serviceName, version.Version, version.GitCommit)
	memesRendered := metricsCollector.NewCounter(
		"memes_rendered_total",
		"Total memes rendered, by style and mood",
		[]string{"style", "mood"},
	)

	healthChecker := monitoring.NewHealthChecker(serviceName, version.Version)
	healthChecker.AddCheck("reddit", monitoring.URLCheck("https://www.reddit.com", 5*time.Second))
	healthChecker.AddCheck("wikipedia", monitoring.URLCheck("https://en.wikipedia.org", 5*time.Second))

	router := server.SetupRouter(logger, serviceName)
	router.Use(metricsCollector.HTTPMiddleware())
	router.GET("/healthz", healthChecker.Handler())
	router.GET("/metrics", metricsCollector.Handler())

	h := handlers.NewHandlers(cfg, redditClient, wikiClient, poster, composer, logger, memesRendered)
	h.RegisterRoutes(router)

	serverCfg := server.DefaultConfig(serviceName, cfg.Port)
	if err := server.Start(serverCfg, router, logger); err != nil {
		logger.WithError(err).Fatal("Server error")
	}
}
