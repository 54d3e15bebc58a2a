package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	httpAdapter "github.com/fsmlab/dfakit/internal/adapters/http"
	"github.com/fsmlab/dfakit/internal/config"
	"github.com/fsmlab/dfakit/internal/logging"
	"github.com/fsmlab/dfakit/internal/metrics"
	"github.com/fsmlab/dfakit/pkg/adapters/memory"
	redisAdapter "github.com/fsmlab/dfakit/pkg/adapters/redis"
	"github.com/fsmlab/dfakit/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the automaton builder HTTP server",
	Long:  `Exposes the evaluation endpoints and the builder session API over HTTP. Sessions live in memory unless DFAKIT_REDIS_ADDR points at a Redis instance.`,
	Run: func(cmd *cobra.Command, args []string) {
		var cfg config.Server
		if err := config.Load(&cfg); err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}

		logger := newLogger(cfg)

		var store ports.SessionStore
		if cfg.RedisAddr != "" {
			var opts []redisAdapter.Option
			if cfg.SessionTTL > 0 {
				opts = append(opts, redisAdapter.WithTTL(cfg.SessionTTL))
			}
			store = redisAdapter.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, opts...)
			logger.Info("using redis session store", "addr", cfg.RedisAddr)
		} else {
			store = memory.NewStore()
			logger.Info("using in-memory session store")
		}

		reg := prometheus.NewRegistry()
		m := metrics.New(reg)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		mux.Handle("/", httpAdapter.NewHandler(store, m, logger))

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: mux,
		}

		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			logger.Error("server error", "error", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown incomplete", "error", err)
				if err := srv.Close(); err != nil {
					logger.Error("forced close failed", "error", err)
				}
			}
			logger.Info("server stopped")
		}
	},
}

func newLogger(cfg config.Server) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	if cfg.LogFormat == "json" {
		return logging.NewJSON(level)
	}
	return logging.New(level)
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address (overrides DFAKIT_ADDR)")
}
