package streams

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/spacesedan/crawlsentiment/internal/models"
	"github.com/spacesedan/crawlsentiment/internal/sinks"
)

type Analyzer interface {
	Run(ctx context.Context, req models.CrawlRequest) (*models.BlobContent, error)
}

// CrawlStreamProcessor scores articles inserted into the crawl table.
type CrawlStreamProcessor struct {
	analyzer Analyzer
	sink     sinks.Sink
}

func NewCrawlStreamProcessor(analyzer Analyzer, sink sinks.Sink) *CrawlStreamProcessor {
	return &CrawlStreamProcessor{analyzer: analyzer, sink: sink}
}

// ProcessEvent stops at the first failing record so Lambda retries the batch.
func (p *CrawlStreamProcessor) ProcessEvent(ctx context.Context, event events.DynamoDBEvent) error {
	slog.Info("[CrawlStream] Received DynamoDB event", slog.Int("record_count", len(event.Records)))

	for _, record := range event.Records {
		if err := p.ProcessRecord(ctx, record); err != nil {
			slog.Error("[CrawlStream] Error processing record, failing batch",
				slog.String("event_id", record.EventID),
				slog.String("error", err.Error()))
			return err
		}
	}
	return nil
}

// ProcessRecord ignores everything except INSERT events.
func (p *CrawlStreamProcessor) ProcessRecord(ctx context.Context, record events.DynamoDBEventRecord) error {
	if record.EventName != string(events.DynamoDBOperationTypeInsert) {
		slog.Debug("[CrawlStream] Skipping non-INSERT event",
			slog.String("event_id", record.EventID),
			slog.String("event_name", record.EventName))
		return nil
	}

	var req models.CrawlRequest
	if err := UnmarshalEventStreamImage(record.Change.NewImage, &req); err != nil {
		return fmt.Errorf("failed to unmarshal crawl record %s: %w", record.EventID, err)
	}

	blob, err := p.analyzer.Run(ctx, req)
	if err != nil {
		return err
	}

	return p.sink.Publish(ctx, sinks.NewRecord(req, blob))
}
