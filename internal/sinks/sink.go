package sinks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spacesedan/crawlsentiment/config"
	"github.com/spacesedan/crawlsentiment/internal/clients"
	"github.com/spacesedan/crawlsentiment/internal/clients/kafka_client"
	"github.com/spacesedan/crawlsentiment/internal/db"
	"github.com/spacesedan/crawlsentiment/internal/models"
	"github.com/spacesedan/crawlsentiment/internal/textanalytics"
)

// Sink republishes the result of one analyzed article.
type Sink interface {
	Publish(ctx context.Context, record models.SentimentRecord) error
	Close()
}

// NewRecord builds the record for req from the analyzer output. Articles
// without an ID get a random one.
func NewRecord(req models.CrawlRequest, blob *models.BlobContent) models.SentimentRecord {
	contentID := req.ID
	if contentID == "" {
		contentID = uuid.NewString()
	}

	record := models.SentimentRecord{
		ContentID: contentID,
		Title:     req.Title,
		URL:       req.URL,
		CreatedAt: time.Now().UTC(),
	}
	if blob == nil || len(blob.Output) == 0 {
		return record
	}

	record.Output = blob.Output
	if score, ok := blob.Output[textanalytics.SentimentOutputKey].(float64); ok {
		record.Sentiment = &score
	}
	return record
}

// FromConfig picks the sink named by cfg.OutputSink.
func FromConfig(ctx context.Context, cfg config.Config) (Sink, error) {
	switch cfg.OutputSink {
	case config.SinkDynamoDB:
		client, err := clients.GetDynamoDBClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("[Sinks] failed to create DynamoDB client: %w", err)
		}
		return NewDynamoDBSink(db.NewSentimentStore(client, cfg.SentimentTable)), nil
	case config.SinkKafka:
		producer, err := kafka_client.NewProducer(kafka_client.GetKafkaConfig())
		if err != nil {
			return nil, err
		}
		return NewKafkaSink(producer), nil
	case config.SinkLog, "":
		return LogSink{}, nil
	default:
		return nil, fmt.Errorf("[Sinks] unknown output sink %q", cfg.OutputSink)
	}
}

type LogSink struct{}

func (LogSink) Publish(_ context.Context, record models.SentimentRecord) error {
	attrs := []any{slog.String("content_id", record.ContentID)}
	if record.Sentiment != nil {
		attrs = append(attrs, slog.Float64("sentiment", *record.Sentiment))
	}
	slog.Info("[LogSink] Sentiment result", attrs...)
	return nil
}

func (LogSink) Close() {}

type recordStore interface {
	StoreSentimentRecord(ctx context.Context, record models.SentimentRecord) error
}

type DynamoDBSink struct {
	store recordStore
}

func NewDynamoDBSink(store recordStore) *DynamoDBSink {
	return &DynamoDBSink{store: store}
}

func (s *DynamoDBSink) Publish(ctx context.Context, record models.SentimentRecord) error {
	return s.store.StoreSentimentRecord(ctx, record)
}

func (s *DynamoDBSink) Close() {}

type publisher interface {
	Publish(ctx context.Context, key string, value any) error
	Close()
}

type KafkaSink struct {
	producer publisher
}

func NewKafkaSink(producer publisher) *KafkaSink {
	return &KafkaSink{producer: producer}
}

func (s *KafkaSink) Publish(ctx context.Context, record models.SentimentRecord) error {
	return s.producer.Publish(ctx, record.ContentID, record)
}

func (s *KafkaSink) Close() {
	s.producer.Close()
}
