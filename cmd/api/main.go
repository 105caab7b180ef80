package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"timelessme/internal/adapter/repo"
	"timelessme/internal/domain"
	"timelessme/internal/http/handlers"
	httpapi "timelessme/internal/http/httpapi"
	"timelessme/internal/infra"
	"timelessme/internal/infra/credentials"
	"timelessme/internal/infra/geoip"
	"timelessme/internal/middleware"
	"timelessme/internal/providers/genai"
	"timelessme/internal/wizard"
)

const sessionCleanupInterval = time.Minute

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, cfg.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The database is optional: without it the journal lives in memory and
	// the API key comes from the environment only.
	var (
		journal domain.GenerationRepository = repo.NewGenerationRepositoryMemory()
		keys    credentials.KeySource       = credentials.DefaultEnvSource()
		ping    func(context.Context) error
	)
	if cfg.HasDatabase() {
		dbpool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer dbpool.Close()

		runner := infra.NewSQLRunner(dbpool, logger)
		if err := repo.EnsureSchema(ctx, runner); err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare schema")
		}
		journal = repo.NewGenerationRepository(runner)
		keys = credentials.Chain{credentials.DefaultEnvSource(), credentials.NewStore(runner)}
		ping = dbpool.Ping
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()
	var lookup middleware.CountryLookup
	if resolver != nil {
		lookup = resolver.CountryCode
	}

	client, err := genai.NewClient(genai.Options{
		Keys:    keys,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		Timeout: cfg.GeminiTimeout,
		Logger:  &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build gemini client")
	}
	if key, _ := keys.GeminiAPIKey(ctx); key == "" {
		logger.Warn().Msg("no Gemini API key configured; generations will fail until one is set")
	}

	sessions := wizard.NewStore(cfg.SessionTTL, wizard.Deps{
		Transformer: client,
		Journal:     journal,
		Logger:      logger.With().Str("component", "wizard").Logger(),
	})
	sessions.StartCleanupTicker(ctx, sessionCleanupInterval)

	app := handlers.NewApp(sessions, journal, logger, cfg)
	app.Ping = ping

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:            logger,
		DefaultLocale:     cfg.DefaultLocale,
		CountryLookup:     lookup,
		DecadesPerMinute:  cfg.RateLimitPerMin,
		TrustProxyHeaders: cfg.TrustProxyHeaders,
	})
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("model", client.Model()).Msgf("listening on %s", server.Addr())
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	sessions.Close()
	logger.Info().Msg("server stopped")
}
