package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	httpAdapter "github.com/lorrc/chat-relay-backend/internal/adapters/primary/http"
	mw "github.com/lorrc/chat-relay-backend/internal/adapters/primary/http/middleware"
	"github.com/lorrc/chat-relay-backend/internal/adapters/primary/websocket"
	openaiAdapter "github.com/lorrc/chat-relay-backend/internal/adapters/secondary/openai"
	"github.com/lorrc/chat-relay-backend/internal/adapters/secondary/postgres"
	"github.com/lorrc/chat-relay-backend/internal/adapters/secondary/whatsapp"
	"github.com/lorrc/chat-relay-backend/internal/config"
	"github.com/lorrc/chat-relay-backend/internal/core/ports"
	"github.com/lorrc/chat-relay-backend/internal/core/services"
	"github.com/lorrc/chat-relay-backend/internal/infrastructure/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	// 3. Initialize Contact Store (optional) and seed set
	ctx := context.Background()
	seed := cfg.Database.ContactSeed

	var pool *pgxpool.Pool
	var directory ports.ContactDirectory
	if cfg.Database.URL != "" {
		poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
		if err != nil {
			logger.Error("failed to parse database URL", "error", err)
			os.Exit(1)
		}
		poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
		poolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
		poolConfig.MaxConnLifetime = cfg.Database.ConnMaxLifetime

		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			logger.Error("failed to connect to contact store", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Error("contact store ping failed", "error", err)
			os.Exit(1)
		}

		repo := postgres.NewContactRepository(pool)
		directory = repo

		stored, err := repo.LoadAll(ctx)
		if err != nil {
			logger.Error("failed to load contact seed set", "error", err)
			os.Exit(1)
		}
		seed = append(stored, seed...)
		logger.Info("contact store connected", "contacts", len(stored))
	}

	// 4. Initialize Real-time Components
	hub := websocket.NewHub(logger)
	resolver := services.NewIdentityService(seed)

	// 5. External Collaborators (nil when credentials are absent)
	var sender ports.MessageSender
	if cfg.WhatsApp.AccessToken != "" && cfg.WhatsApp.PhoneNumberID != "" {
		sender = whatsapp.NewClient(cfg.WhatsApp.APIBaseURL, cfg.WhatsApp.AccessToken, cfg.WhatsApp.PhoneNumberID, logger)
	} else {
		logger.Warn("outbound sender not configured, send endpoints will refuse")
	}

	var assistant ports.AIAssistant
	if cfg.OpenAI.APIKey != "" {
		assistant = openaiAdapter.NewAssistant(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)
	} else {
		logger.Warn("ai assistant not configured, ai endpoints will refuse")
	}

	// 6. Dependency Injection (Wiring the Hexagon)
	errorHandler := httpAdapter.NewErrorHandler(logger)

	ingressService := services.NewIngressService(resolver, hub, cfg.WhatsApp.VerifyToken, logger)
	commandService := services.NewCommandService(resolver, sender, assistant, logger)
	contactService := services.NewContactService(resolver, directory, seed, logger)

	webhookHandler := httpAdapter.NewWebhookHandler(ingressService, errorHandler, logger)
	commandHandler := httpAdapter.NewCommandHandler(commandService, errorHandler, logger)
	contactHandler := httpAdapter.NewContactHandler(contactService, errorHandler, logger)
	wsHandler := httpAdapter.NewWebSocketHandler(hub, cfg, logger)
	healthHandler := httpAdapter.NewHealthHandler(poolChecker(pool), hub, cfg.App.Version)

	// 7. Setup Router
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins(cfg),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	}))

	if cfg.RateLimit.Enabled {
		limiter := mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.BurstSize,
			CleanupInterval:   time.Minute,
			TTL:               3 * time.Minute,
		})
		r.Use(limiter.Middleware)
	}

	// Health check endpoints (outside /api/v1 for standard probe paths)
	r.Get("/health", healthHandler.HandleHealth)
	r.Get("/health/live", healthHandler.HandleLiveness)
	r.Get("/health/ready", healthHandler.HandleReadiness)

	// Provider webhook (challenge + delivery)
	r.Route("/webhook", webhookHandler.RegisterRoutes)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ws", wsHandler.ServeHTTP)
		r.Group(commandHandler.RegisterRoutes)
		r.Route("/contacts", contactHandler.RegisterRoutes)
	})

	// 8. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}

// poolChecker adapts an optional pool to the health handler, keeping the nil
// check in one place.
func poolChecker(pool *pgxpool.Pool) httpAdapter.HealthChecker {
	if pool == nil {
		return nil
	}
	return pool
}

// corsOrigins derives CORS origins from the websocket allow-list, defaulting
// to permissive in development.
func corsOrigins(cfg *config.Config) []string {
	if len(cfg.WebSocket.AllowedOrigins) > 0 {
		origins := make([]string, 0, len(cfg.WebSocket.AllowedOrigins))
		for _, o := range cfg.WebSocket.AllowedOrigins {
			if !strings.Contains(o, "://") {
				o = "https://" + o
			}
			origins = append(origins, o)
		}
		return origins
	}
	return []string{"*"}
}
