package main

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spacesedan/crawlsentiment/config"
	"github.com/spacesedan/crawlsentiment/internal/logging"
	"github.com/spacesedan/crawlsentiment/internal/models"
	"github.com/spacesedan/crawlsentiment/internal/server"
	"github.com/spacesedan/crawlsentiment/internal/sinks"
	"github.com/spacesedan/crawlsentiment/internal/textanalytics"
)

var (
	analyzer server.Analyzer
	sink     sinks.Sink
)

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
	analyzer = textanalytics.NewSentimentAnalyzer(service)

	sink, err = sinks.FromConfig(context.Background(), cfg)
	if err != nil {
		panic(err)
	}

	slog.Info("Initialization complete.",
		slog.String("environment", env),
		slog.String("sink", cfg.OutputSink))
}

// HandleRequest scores one crawled article and returns the published output.
func HandleRequest(ctx context.Context, req models.CrawlRequest) (map[string]any, error) {
	blob, err := analyzer.Run(ctx, req)
	if err != nil {
		slog.Error("Sentiment analysis failed",
			slog.String("content_id", req.ID),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := sink.Publish(ctx, sinks.NewRecord(req, blob)); err != nil {
		slog.Error("Failed to publish sentiment result",
			slog.String("content_id", req.ID),
			slog.String("error", err.Error()))
		return nil, err
	}

	if blob.Output == nil {
		return map[string]any{}, nil
	}
	return blob.Output, nil
}

func main() {
	lambda.Start(HandleRequest)
}
