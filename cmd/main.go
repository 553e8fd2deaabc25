package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/config"
	"github.com/markjakearzadon/qrplatba-gobackend/internal/db"
	"github.com/markjakearzadon/qrplatba-gobackend/internal/handlers"
	"github.com/markjakearzadon/qrplatba-gobackend/internal/services"
)

func main() {
	// Load .env
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("error loading .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogger(cfg)

	ctx := context.Background()

	var (
		history     services.HistoryStore     = services.NewMemoryHistory()
		preferences services.PreferencesStore = services.NewMemoryPreferences()
	)
	if cfg.MongoURI != "" {
		client, err := db.Connect(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatal().Err(err).Msg("mongo unavailable")
		}
		defer db.Disconnect(client)

		database := client.Database(cfg.MongoDB)
		historyService := services.NewHistoryService(database)
		preferencesService := services.NewPreferencesService(database)
		if err := historyService.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to prepare generations collection")
		}
		if err := preferencesService.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to prepare preferences collection")
		}
		history, preferences = historyService, preferencesService
	} else {
		log.Warn().Msg("MONGOURI not set, history and preferences are kept in memory")
	}

	var generator services.ImageGenerator
	switch cfg.Generator {
	case config.GeneratorLocal:
		generator = services.NewSPAYDGenerator(cfg.ImageSize)
	default:
		generator = services.NewPayliboGenerator(cfg.PayliboURL, cfg.APITimeout)
	}
	if cfg.RedisAddr != "" {
		redisClient := services.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		defer redisClient.Close()

		cache := services.NewRedisImageCache(redisClient)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := cache.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, cache calls will fail open")
		}
		cancel()
		generator = services.NewCachedGenerator(generator, cache, cfg.Generator, cfg.CacheTTL)
	}

	router := handlers.NewRouter(handlers.Dependencies{
		QR:          services.NewQRService(generator, history),
		History:     history,
		Preferences: preferences,
		Locale:      cfg.Locale,
	})

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.APITimeout + 15*time.Second,
	}

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		log.Info().Msg("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("generator", cfg.Generator).Msg("server running")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
