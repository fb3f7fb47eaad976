package models

import "time"

// CrawlRequest is the crawled article handed to the enrichment functions.
type CrawlRequest struct {
	ID      string `json:"id,omitempty" dynamodbav:"id"`
	URL     string `json:"url,omitempty" dynamodbav:"url,omitempty"`
	Title   string `json:"title,omitempty" dynamodbav:"title,omitempty"`
	Article string `json:"article,omitempty" dynamodbav:"article,omitempty"`
}

// BlobContent carries the raw service response and the properties an
// enrichment function decided to publish.
type BlobContent struct {
	Value  string         `json:"-"`
	Output map[string]any `json:"output"`
}

type SentimentRecord struct {
	ContentID string         `json:"content_id" dynamodbav:"content_id"`
	Title     string         `json:"title,omitempty" dynamodbav:"title,omitempty"`
	URL       string         `json:"url,omitempty" dynamodbav:"url,omitempty"`
	Sentiment *float64       `json:"sentiment,omitempty" dynamodbav:"sentiment,omitempty"`
	Output    map[string]any `json:"output,omitempty" dynamodbav:"output,omitempty"`
	CreatedAt time.Time      `json:"created_at" dynamodbav:"created_at"`
}
