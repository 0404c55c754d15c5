package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mediarepo/admin-api/api"
	"github.com/mediarepo/admin-api/apptoken"
	"github.com/mediarepo/admin-api/cache"
	redisstore "github.com/mediarepo/admin-api/cache/redis"
	"github.com/mediarepo/admin-api/config"
	"github.com/mediarepo/admin-api/feed"
	"github.com/mediarepo/admin-api/internal/federation"
	"github.com/mediarepo/admin-api/middleware"
	"github.com/mediarepo/admin-api/mongodb"
	"github.com/mediarepo/admin-api/services"
	"github.com/mediarepo/admin-api/tracing"
)

const memoryProfileCacheTTL = 10 * time.Minute

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg)
	log.Info().
		Str("http_port", cfg.HTTPPort).
		Str("mongo_db_name", cfg.MongoDBName).
		Str("otel_service", cfg.OtelServiceName).
		Msg("Starting media admin API server")

	tp, err := tracing.InitTracerProvider(cfg.OtelServiceName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize TracerProvider")
	}

	ctx := context.Background()
	client, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	db := client.Database(cfg.MongoDBName)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure MongoDB indexes")
	}

	medias := mongodb.NewMediaRepository(db)
	participants := mongodb.NewParticipantRepository(db)
	reactionTypes := mongodb.NewReactionTypeRepository(db)
	reactions := mongodb.NewReactionRepository(db)
	comments := mongodb.NewCommentRepository(db)
	sessionRepo := mongodb.NewSessionRepository(db)

	tokens := apptoken.NewService([]byte(cfg.BridgeTokenSecret))
	if cfg.BridgeTokenSecret == "" {
		log.Warn().Msg("BRIDGE_TOKEN_SECRET is not set, token exchange is disabled")
	}

	external := buildExternalVerifier(cfg)
	directory := buildDirectory(cfg)

	sessions := middleware.NewCookieSessionAuthenticator(sessionRepo, cfg.SessionCookieName)
	resolver := middleware.NewResolver(tokens, sessions)
	paginator := feed.NewPaginator(medias)
	reactionService := services.NewReactionService(reactionTypes, reactions, directory)

	server := api.NewServer(
		tokens, external, directory, resolver, sessions,
		paginator, reactionService,
		medias, participants, reactionTypes, comments,
	)

	e := echo.New()
	e.HideBanner = true
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(":" + cfg.HTTPPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()
	log.Info().Str("port", cfg.HTTPPort).Msg("HTTP server listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("MongoDB disconnect failed")
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("TracerProvider shutdown failed")
	}
	log.Info().Msg("Shutdown complete")
}

func setupLogger(cfg *config.ServerConfig) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	if err != nil {
		log.Warn().Str("configured_log_level", cfg.LogLevel).Msg("Invalid LOG_LEVEL, defaulting to info")
	}
}

// buildExternalVerifier wires the client-IdP token verifier; without a
// configured public key the exchange endpoint rejects everything.
func buildExternalVerifier(cfg *config.ServerConfig) federation.SubjectVerifier {
	if cfg.ClientIdPPublicKey == "" {
		log.Warn().Msg("CLIENT_IDP_JWT_PUBLIC_KEY is not set, token exchange is disabled")
		return disabledVerifier{}
	}
	verifier, err := federation.NewClientTokenVerifier([]byte(cfg.ClientIdPPublicKey))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse CLIENT_IDP_JWT_PUBLIC_KEY")
	}
	return verifier
}

// buildDirectory wires the identity directory with a Redis-backed
// profile cache when Redis is configured, an in-process one otherwise.
func buildDirectory(cfg *config.ServerConfig) federation.Directory {
	if cfg.DirectoryBaseURL == "" {
		log.Info().Msg("DIRECTORY_BASE_URL is not set, author name enrichment is disabled")
		return nil
	}

	dir := federation.NewHTTPDirectory(cfg.DirectoryBaseURL, cfg.DirectoryAPIKey)

	var store cache.ProfileStore
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		store = redisstore.NewProfileStore(rdb, "profiles")
		log.Info().Str("addr", cfg.RedisAddr).Msg("Using Redis profile cache")
	} else {
		store = cache.NewMemoryProfileStore(memoryProfileCacheTTL)
	}

	return federation.NewCachedDirectory(dir, store)
}

type disabledVerifier struct{}

func (disabledVerifier) VerifySubject(context.Context, string) (string, error) {
	return "", errors.New("external token verification is not configured")
}
