package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"equinet/internal/completion"
	"equinet/internal/config"
	"equinet/internal/fetcher"
	"equinet/internal/server"
	"equinet/internal/summary"
	"equinet/internal/transform"
)

const (
	pageFetchTimeout    = 15 * time.Second
	summaryFetchTimeout = 12 * time.Second
	shutdownTimeout     = 10 * time.Second
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.LoadConfig()

	if cfg.CompletionAPIKey == "" {
		log.WarnContext(ctx, "HUGGINGFACE_API_KEY is missing so rewrite and summary calls will fail and pages will degrade to original text",
			"envVar", "HUGGINGFACE_API_KEY")
	}

	client := completion.NewRouterClient(
		cfg.CompletionAPIKey,
		cfg.CompletionBaseURL,
		cfg.CompletionModel,
	)

	transformer := transform.New(
		fetcher.New(pageFetchTimeout, log),
		client,
		log,
	)
	summarizer := summary.New(
		fetcher.New(summaryFetchTimeout, log),
		client,
		log,
	)

	srv := server.New(cfg.Addr, transformer, summarizer, log)

	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.ErrorContext(ctx, "Server failed",
				"error", err,
				"addr", cfg.Addr)

			cancel()
		}
	}()
	log.InfoContext(ctx, "Server is started",
		"addr", cfg.Addr,
		"model", cfg.CompletionModel,
		"completionBaseURL", cfg.CompletionBaseURL)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-c:
		log.InfoContext(ctx, "Shutdown signal is received",
			"signal", sig.String())
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(ctx, "Failed to shut down server",
			"error", err,
			"addr", cfg.Addr)
	}

	log.InfoContext(ctx, "Exiting...",
		"uptimeSeconds", time.Since(start).Seconds())
}
