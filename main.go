package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"searxproxy/api"
	"searxproxy/config"
	"searxproxy/service"
	"searxproxy/util"
	"searxproxy/util/logger"
)

func main() {
	if err := initApp(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	if err := startServer(); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

// initApp loads configuration and sets up logging.
func initApp() error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.AppConfig

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	return nil
}

// startServer wires the services and serves until SIGINT/SIGTERM.
func startServer() error {
	cfg := config.AppConfig

	transport, err := util.NewTransport(cfg.ProxyURL, cfg.HTTPMaxConnsPerHost)
	if err != nil {
		return fmt.Errorf("build upstream transport: %w", err)
	}
	client := util.NewUpstreamClient(transport)

	searchService := service.NewSearchService(client, service.SearchOptions{
		PrimaryURL:    cfg.SearxngURL,
		Fallbacks:     cfg.PublicInstances,
		Timeout:       cfg.SearchTimeout(),
		ForceEngine:   cfg.ForceEngine,
		FilterResults: cfg.FilterResults,
		Engines:       service.NewEngineMap(service.DefaultCategoryEngines, cfg.DefaultEngine),
	})
	upstreamService := service.NewUpstreamService(client, service.UpstreamOptions{
		PrimaryURL:     cfg.SearxngURL,
		Fallbacks:      cfg.PublicInstances,
		EnginesTimeout: cfg.EnginesTimeout(),
		HealthTimeout:  cfg.HealthTimeout(),
		FallbackProbes: cfg.HealthFallbackProbes,
	})

	router := api.SetupRouter(api.NewHandler(searchService, upstreamService), api.RouterOptions{
		EnableCompression: cfg.EnableCompression,
		MinSizeToCompress: cfg.MinSizeToCompress,
		MetricsEnabled:    cfg.MetricsEnabled,
	})

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout(),
		WriteTimeout: cfg.HTTPWriteTimeout(),
		IdleTimeout:  cfg.HTTPIdleTimeout(),
	}

	printServiceInfo(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// printServiceInfo logs the effective configuration.
func printServiceInfo(cfg *config.Config) {
	log.Info().
		Str("address", "http://0.0.0.0:"+cfg.Port).
		Str("searxng_url", cfg.SearxngURL).
		Strs("public_instances", cfg.PublicInstances).
		Bool("debug", cfg.Debug).
		Msg("starting Golligog SearXNG backend")

	log.Info().
		Bool("force_engine", cfg.ForceEngine).
		Str("default_engine", cfg.DefaultEngine).
		Bool("filter_results", cfg.FilterResults).
		Dur("search_timeout", cfg.SearchTimeout()).
		Msg("search settings")

	if cfg.UseProxy() {
		log.Info().Str("proxy", cfg.ProxyURL).Msg("outbound proxy enabled")
	}
	if cfg.EnableCompression {
		log.Info().Int("min_size", cfg.MinSizeToCompress).Msg("response compression enabled")
	}
}
