package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spacesedan/crawlsentiment/config"
	"github.com/spacesedan/crawlsentiment/internal/logging"
	"github.com/spacesedan/crawlsentiment/internal/server"
	"github.com/spacesedan/crawlsentiment/internal/sinks"
	"github.com/spacesedan/crawlsentiment/internal/textanalytics"
)

func main() {
	config.LoadEnv(config.AppEnv())
	logging.InitLogger()
	cfg := config.Load()

	service, err := textanalytics.NewSentimentService()
	if err != nil {
		slog.Error("[Main] Failed to configure text analytics service",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	sink, err := sinks.FromConfig(context.Background(), cfg)
	if err != nil {
		slog.Error("[Main] Failed to create output sink",
			slog.String("sink", cfg.OutputSink),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer sink.Close()

	srv := server.New(cfg.Server, textanalytics.NewSentimentAnalyzer(service), sink)
	if err := srv.Run(); err != nil {
		slog.Error("[Main] Server stopped", slog.String("error", err.Error()))
	}
}
