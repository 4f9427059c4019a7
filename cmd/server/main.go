package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baditaflorin/go_user_registry/internal/adapters/logger"
	"github.com/baditaflorin/go_user_registry/internal/config"
	"github.com/baditaflorin/go_user_registry/internal/httpapi"
	"github.com/baditaflorin/go_user_registry/internal/warmup"
	"github.com/baditaflorin/go_user_registry/pkg/normalize"
	"github.com/baditaflorin/go_user_registry/pkg/streaming"
	"github.com/baditaflorin/go_user_registry/pkg/user"
	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	lg, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Close()

	lg.Info("starting registry HTTP server",
		"port", cfg.AppPort,
		"registry_target", cfg.RegistryTarget,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"max_request_body_size", cfg.MaxRequestBodySize,
		"warm_up", cfg.WarmUp,
	)

	registry, err := user.New(
		user.WithConnectionTarget(cfg.RegistryTarget),
		user.WithLogger(lg),
	)
	if err != nil {
		lg.Error("failed to initialize registry", "error", err)
		os.Exit(1)
	}

	normOpts := []normalize.Option{
		normalize.WithLogger(lg),
		normalize.WithOptimizedNormalizer(),
	}
	if cfg.WarmUp {
		normOpts = append(normOpts, normalize.WithWarmUp(true))
	}
	normalizer, err := normalize.New(normOpts...)
	if err != nil {
		lg.Error("failed to initialize normalizer", "error", err)
		os.Exit(1)
	}

	streamer, err := streaming.New(
		streaming.WithLogger(lg),
		streaming.WithOptimizedNormalizer(),
	)
	if err != nil {
		lg.Error("failed to initialize stream normalizer", "error", err)
		os.Exit(1)
	}
	if cfg.WarmUp {
		streamer.WarmUp(context.Background(), warmup.DefaultConfig())
	}

	handler := httpapi.New(registry, normalizer, streamer, logger.FromExisting(lg))

	server := &fasthttp.Server{
		Handler:            handler.Handle,
		ReadTimeout:        cfg.ReadTimeout,
		WriteTimeout:       cfg.WriteTimeout,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		TCPKeepalive:       true,
		TCPKeepalivePeriod: 3 * time.Minute,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lg.Info("shutting down server")
		if err := server.Shutdown(); err != nil {
			lg.Error("error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	addr := fmt.Sprintf(":%d", cfg.AppPort)
	lg.Info("server listening", "address", addr)
	if err := server.ListenAndServe(addr); err != nil {
		lg.Error("server error", "error", err)
	}

	<-idleConnsClosed
	lg.Info("server stopped")
}

// createLogger creates the server logger from configuration.
func createLogger(cfg *config.Config) (l.Logger, error) {
	var output io.Writer = os.Stdout
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	lg, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  cfg.JSONLogs(),
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return lg, nil
}
