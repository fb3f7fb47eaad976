package main

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spacesedan/crawlsentiment/config"
	"github.com/spacesedan/crawlsentiment/internal/logging"
	"github.com/spacesedan/crawlsentiment/internal/sinks"
	"github.com/spacesedan/crawlsentiment/internal/streams"
	"github.com/spacesedan/crawlsentiment/internal/textanalytics"
)

var processor *streams.CrawlStreamProcessor

// init runs once per Lambda cold start
func init() {
	slog.Info("Lambda cold start: Initializing...")
	env := config.AppEnv()
	config.LoadEnv(env)
	logging.InitLogger()
	cfg := config.Load()

	service, err := textanalytics.NewSentimentService()
	if err != nil {
		panic(err)
	}

	sink, err := sinks.FromConfig(context.Background(), cfg)
	if err != nil {
		panic(err)
	}

	processor = streams.NewCrawlStreamProcessor(textanalytics.NewSentimentAnalyzer(service), sink)
	slog.Info("Initialization complete.",
		slog.String("environment", env),
		slog.String("sink", cfg.OutputSink))
}

func main() {
	// The aws-lambda-go library handles the main loop and passes events to ProcessEvent.
	lambda.Start(processor.ProcessEvent)
}
