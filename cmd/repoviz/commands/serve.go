package commands

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
	"github.com/spf13/cobra"

	"github.com/repoviz/repoviz/internal/config"
	"github.com/repoviz/repoviz/internal/server"
	"github.com/repoviz/repoviz/pkg/observability"
	"github.com/repoviz/repoviz/pkg/version"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var (
		configFile string
		listenAddr string
		repoPath   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the visualization HTTP server",
		Long: `Serve the analysis API over HTTP: commit embedding, file heatmap,
branch graph, SSE streaming and a realtime WebSocket feed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			if listenAddr != "" {
				cfg.Server.ListenAddr = listenAddr
			}

			if repoPath != "" {
				cfg.Server.RepoPath = repoPath
			}

			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path")
	cmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "listen address (overrides config)")
	cmd.Flags().StringVarP(&repoPath, "repo", "r", "", "default repository path (overrides config)")

	return cmd
}

// observabilityConfig maps loaded file/env settings onto the telemetry
// config, parsing the raw header and level strings.
func observabilityConfig(cfg *config.Config) observability.Config {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.OTLPEndpoint = cfg.OTLP.Endpoint
	obsCfg.OTLPInsecure = cfg.OTLP.Insecure
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.OTLP.Headers)
	obsCfg.LogLevel = observability.ParseLogLevel(cfg.Log.Level)
	obsCfg.LogJSON = cfg.Log.JSON

	return obsCfg
}

func runServe(ctx context.Context, cfg *config.Config) error {
	providers, err := observability.Init(observabilityConfig(cfg))
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if shutdownErr := providers.Shutdown(shutdownCtx); shutdownErr != nil {
			providers.Logger.Error("telemetry shutdown failed", "error", shutdownErr)
		}
	}()

	logger := providers.Logger

	promHandler, promProvider, err := observability.PrometheusHandler()
	if err != nil {
		return fmt.Errorf("init prometheus: %w", err)
	}

	metrics, err := observability.NewAnalysisMetrics(promProvider.Meter("repoviz"))
	if err != nil {
		return fmt.Errorf("init analysis metrics: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)

	srv := server.New(cfg.Server, logger,
		server.WithAnalysisMetrics(metrics),
		server.WithMetricsHandler(promHandler))

	httpSrv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)

	go func() {
		logger.Info("server listening", "addr", cfg.Server.ListenAddr)
		serveErr <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
