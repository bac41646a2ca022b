package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/sameerfidai/FiveLegFlex/external/oddsapi"
	"github.com/sameerfidai/FiveLegFlex/external/prizepicks"
	"github.com/sameerfidai/FiveLegFlex/internal/config"
	"github.com/sameerfidai/FiveLegFlex/internal/interfaces/httpapi"
	"github.com/sameerfidai/FiveLegFlex/internal/observability"
	"github.com/sameerfidai/FiveLegFlex/internal/platform/cache"
	"github.com/sameerfidai/FiveLegFlex/internal/platform/logging"
	"github.com/sameerfidai/FiveLegFlex/internal/platform/resilience"
	"github.com/sameerfidai/FiveLegFlex/internal/usecase"
)

// Application owns the HTTP server plus every background collaborator
// that needs an ordered shutdown (profilers, tracers, log sinks).
type Application struct {
	Server *http.Server
	Logger *logging.Logger

	pprofServer   *http.Server
	stopPyroscope func() error
	stopTracing   func(context.Context) error
	flushLogs     func(context.Context) error
	edgeLogger    *slog.Logger
}

func New(cfg config.Config, edgeLogger *slog.Logger) (*Application, error) {
	if edgeLogger == nil {
		edgeLogger = slog.Default()
	}

	logger, flushLogs, err := observability.InitBetterStackLogger(cfg, logging.NewJSON(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	logging.SetDefault(logger)

	stopTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	stopPyroscope, err := observability.InitPyroscope(cfg, edgeLogger)
	if err != nil {
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}

	pprofServer, err := observability.StartPprofServer(cfg, edgeLogger)
	if err != nil {
		return nil, fmt.Errorf("start pprof: %w", err)
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	oddsClient := oddsapi.NewClient(oddsapi.ClientConfig{
		BaseURL:    cfg.OddsAPIBaseURL,
		APIKey:     cfg.OddsAPIKey,
		Regions:    cfg.OddsAPIRegions,
		Timeout:    cfg.OddsAPITimeout,
		MaxRetries: cfg.OddsAPIMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.OddsAPICircuitEnabled,
			FailureThreshold: cfg.OddsAPICircuitFailureCount,
			OpenTimeout:      cfg.OddsAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.OddsAPICircuitHalfOpenMaxReq,
		},
	})

	projectionsClient := prizepicks.NewClient(prizepicks.ClientConfig{
		HTTPClient: &fasthttp.Client{
			ReadTimeout:  cfg.PrizePicksTimeout,
			WriteTimeout: cfg.PrizePicksTimeout,
		},
		BaseURL:    cfg.PrizePicksBaseURL,
		Timeout:    cfg.PrizePicksTimeout,
		MaxRetries: cfg.PrizePicksMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.PrizePicksCircuitEnabled,
			FailureThreshold: cfg.PrizePicksCircuitFailureCount,
			OpenTimeout:      cfg.PrizePicksCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.PrizePicksCircuitHalfOpenMaxReq,
		},
	})

	bestPropsService := usecase.NewBestPropsService(
		oddsClient,
		projectionsClient,
		store,
		cfg.FetchWorkers,
		logger,
	)

	handler := httpapi.NewHandler(bestPropsService, logger)
	router := httpapi.NewRouter(handler, edgeLogger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &Application{
		Server:        server,
		Logger:        logger,
		pprofServer:   pprofServer,
		stopPyroscope: stopPyroscope,
		stopTracing:   stopTracing,
		flushLogs:     flushLogs,
		edgeLogger:    edgeLogger,
	}, nil
}

// Shutdown stops background collaborators after the HTTP server has
// drained. Individual failures are logged but do not abort the rest of
// the sequence.
func (a *Application) Shutdown(ctx context.Context) {
	if err := observability.StopPprofServer(a.pprofServer, a.edgeLogger, 5*time.Second); err != nil {
		a.edgeLogger.Error("stop pprof server", "error", err)
	}
	if a.stopPyroscope != nil {
		if err := a.stopPyroscope(); err != nil {
			a.edgeLogger.Error("stop pyroscope", "error", err)
		}
	}
	if a.stopTracing != nil {
		if err := a.stopTracing(ctx); err != nil {
			a.edgeLogger.Error("stop tracing", "error", err)
		}
	}
	if a.flushLogs != nil {
		if err := a.flushLogs(ctx); err != nil {
			a.edgeLogger.Error("flush logs", "error", err)
		}
	}
	_ = a.Logger.Sync()
}
