package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/credguard/verdict/cache"
	"github.com/credguard/verdict/comparison"
	"github.com/credguard/verdict/observability"
	"github.com/credguard/verdict/pipeline"
	"github.com/credguard/verdict/server"
	"github.com/credguard/verdict/stages"
)

// serveConfig combines the pipeline and server sections of one config file.
type serveConfig struct {
	Pipeline pipeline.Config `json:"pipeline"`
	Server   server.Config   `json:"server"`
}

func loadServeConfig(path string) (*serveConfig, error) {
	cfg := serveConfig{
		Pipeline: pipeline.DefaultConfig(),
		Server:   server.DefaultConfig(),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded serveConfig
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Pipeline.Merge(&loaded.Pipeline)
	cfg.Server.Merge(&loaded.Server)
	return &cfg, nil
}

func newServeCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server exposing verdicts and lender comparisons",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServeConfig(configFile)
			if err != nil {
				return err
			}

			// Pipeline events feed both logs and the /metrics endpoint.
			promObserver, err := observability.NewPrometheusObserver(prometheus.DefaultRegisterer)
			if err != nil {
				return err
			}
			slogObserver, err := observability.GetObserver("slog")
			if err != nil {
				return err
			}
			observability.RegisterObserver(
				"multi",
				observability.NewMultiObserver(slogObserver, promObserver),
			)
			cfg.Pipeline.Observer = "multi"

			p, err := pipeline.New(&cfg.Pipeline)
			if err != nil {
				return err
			}

			var store cache.Cache
			if cfg.Server.RedisAddr != "" {
				redisCache := cache.NewRedis(cfg.Server.RedisAddr)
				defer redisCache.Close()
				store = redisCache
			} else {
				store = cache.NewMemory()
			}

			var limiter *server.RateLimiter
			if cfg.Server.RateLimit > 0 {
				limiter = server.NewRateLimiter(
					cfg.Server.RateLimit,
					time.Duration(cfg.Server.RateWindowSeconds)*time.Second,
				)
				defer limiter.Stop()
			}

			aux := stages.NewClient(cfg.Pipeline.BaseURL)
			handler := server.New(p, comparison.NewService(store), aux, limiter)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			slog.Info("verdict server listening", "addr", cfg.Server.Addr)
			return server.ListenAndServe(ctx, &cfg.Server, handler.Routes())
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "combined pipeline/server config JSON file (required)")
	cmd.MarkFlagRequired("config")

	return cmd
}
