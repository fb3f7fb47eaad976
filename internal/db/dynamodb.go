package db

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/spacesedan/crawlsentiment/internal/models"
)

const RECORD_TTL = 24 * time.Hour

// DynamoDBPutAPI is the subset of *dynamodb.Client the store needs.
type DynamoDBPutAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type SentimentStore struct {
	client DynamoDBPutAPI
	table  string
}

func NewSentimentStore(client DynamoDBPutAPI, table string) *SentimentStore {
	return &SentimentStore{client: client, table: table}
}

func (s *SentimentStore) StoreSentimentRecord(ctx context.Context, record models.SentimentRecord) error {
	item, err := RecordToDynamoDBItem(record)
	if err != nil {
		return err
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to store sentiment record: %w", err)
	}

	slog.Info("[DynamoDB] Successfully stored sentiment record",
		slog.String("content_id", record.ContentID),
		slog.String("table", s.table))
	return nil
}

func RecordToDynamoDBItem(record models.SentimentRecord) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, fmt.Errorf("[DynamoDB] Failed to marshal sentiment record: %w", err)
	}

	item["ttl"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(record.CreatedAt.Add(RECORD_TTL).Unix(), 10)}
	return item, nil
}
