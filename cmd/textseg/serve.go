package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/realtime-ai/textseg/pkg/logging"
	"github.com/realtime-ai/textseg/pkg/server"
	"github.com/realtime-ai/textseg/pkg/trace"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the segmentation HTTP server",
		Long: `Starts an HTTP server exposing /v1/tokenize, /v1/sentences, /v1/batch and
the /v1/ws WebSocket endpoint, plus /metrics and /healthz.`,
		RunE: runServe,
	}
	cmd.Flags().StringP("addr", "a", "", "Address to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := trace.Initialize(ctx, &cfg.Trace); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := trace.Shutdown(shutdownCtx); err != nil {
			logger.Warn("trace shutdown failed", zap.Error(err))
		}
	}()

	srv := server.NewServer(&cfg.Server, &cfg.Tokenizer, logger)
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info("textseg serving",
		zap.String("addr", srv.Addr().String()),
		zap.String("version", Version),
		zap.Bool("normalize_ascii", cfg.Tokenizer.NormalizeASCII),
		zap.Bool("keep_whitespace", cfg.Tokenizer.KeepWhitespace),
		zap.String("trace_exporter", cfg.Trace.ExporterType),
	)

	<-ctx.Done()
	logger.Info("shutdown signal received")

	// Give outstanding requests a deadline for completion.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
	}
	logger.Info("server stopped gracefully")
	return nil
}
