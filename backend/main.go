// ABOUTME: Entry point for the EVSE installation calculator backend service
// ABOUTME: Provides HTTP API for charge point sizing, session estimates and lightning risk

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markalston/evse-calc/backend/cache"
	"github.com/markalston/evse-calc/backend/config"
	"github.com/markalston/evse-calc/backend/handlers"
	"github.com/markalston/evse-calc/backend/logger"
	"github.com/markalston/evse-calc/backend/middleware"
	"github.com/markalston/evse-calc/backend/models"
	"github.com/markalston/evse-calc/backend/reference"
)

func main() {
	// Initialize structured logging
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting EVSE Installation Calculator Backend")

	ref, err := loadReference(cfg)
	if err != nil {
		slog.Error("Failed to load reference data", "error", err)
		os.Exit(1)
	}
	slog.Info("Reference data loaded", "version", ref.Version, "cables", len(ref.Cables))

	// Initialize cache
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	c := cache.New[models.InstallationReport](cacheTTL)
	defer c.Close()
	slog.Info("Cache initialized", "ttl", cacheTTL)

	h := handlers.NewHandler(cfg, ref, c)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newMux(cfg, h),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

// loadReference builds the tables once at startup. They are read-only from
// here on and shared by every request.
func loadReference(cfg *config.Config) (*models.ReferenceData, error) {
	ref, err := reference.LoadOrDefault(cfg.ReferenceDataFile)
	if err != nil {
		return nil, err
	}
	cfg.ApplySafetyOverrides(ref)
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return ref, nil
}

// newMux registers every route with its middleware chain. Calculation
// routes get the stricter rate limit and the body size cap.
func newMux(cfg *config.Config, h *handlers.Handler) *http.ServeMux {
	calcLimiter := middleware.NewRateLimiter(cfg.RateLimitCalculate, time.Minute)
	defaultLimiter := middleware.NewRateLimiter(cfg.RateLimitDefault, time.Minute)
	cors := middleware.CORS(cfg.CORSAllowedOrigins)

	mux := http.NewServeMux()
	preflight := make(map[string]bool)
	for _, route := range h.Routes() {
		chain := []middleware.Middleware{middleware.LogRequest, cors}
		if cfg.RateLimitEnabled {
			limiter := defaultLimiter
			if route.Calculation {
				limiter = calcLimiter
			}
			chain = append(chain, middleware.RateLimit(limiter, middleware.ClientIP))
		}
		if route.Calculation {
			chain = append(chain, middleware.LimitBody(cfg.MaxBodyBytes))
		}

		mux.HandleFunc(route.Method+" "+route.Path, middleware.Chain(route.Handler, chain...))
		// Preflight requests carry no method match, so give CORS its own entry
		if !preflight[route.Path] {
			mux.HandleFunc(http.MethodOptions+" "+route.Path, middleware.Chain(route.Handler, middleware.LogRequest, cors))
			preflight[route.Path] = true
		}
	}

	if cfg.RateLimitEnabled {
		slog.Info("Rate limiting enabled", "calculate", cfg.RateLimitCalculate, "default", cfg.RateLimitDefault)
	} else {
		slog.Warn("Rate limiting disabled")
	}
	return mux
}
