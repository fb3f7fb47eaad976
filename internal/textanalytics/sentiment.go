package textanalytics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spacesedan/crawlsentiment/internal/clients"
	"github.com/spacesedan/crawlsentiment/internal/models"
)

const (
	SentimentServiceName = "CogTextAnalytics"
	SentimentQueryParams = "/sentiment"
	SentimentOutputKey   = "XSentiment"
	DocumentID           = "1"

	// MaxTextLength is the per-document limit of the text analytics API,
	// counted in characters.
	MaxTextLength = 10240 / 2
)

// SentimentAnalyzer scores crawled articles with the text analytics
// sentiment endpoint.
type SentimentAnalyzer struct {
	service *clients.CognitiveService
}

func NewSentimentAnalyzer(service *clients.CognitiveService) *SentimentAnalyzer {
	return &SentimentAnalyzer{service: service}
}

// NewSentimentService builds the service handle the analyzer expects.
func NewSentimentService() (*clients.CognitiveService, error) {
	return clients.NewCognitiveService(SentimentServiceName, SentimentQueryParams)
}

// Run analyzes one article. Errors from the request, the call or the
// response parsing are returned unchanged.
func (a *SentimentAnalyzer) Run(ctx context.Context, req models.CrawlRequest) (*models.BlobContent, error) {
	return clients.Invoke(ctx, a.service, req, BuildRequest, ProjectSentiment, true)
}

// BuildRequest returns nil when the article has no text to analyze.
func BuildRequest(req models.CrawlRequest) *models.TextAnalyticsRequest {
	text, ok := BuildText(req)
	if !ok {
		return nil
	}

	request := CreateRequestFromText(text)
	return &request
}

// BuildText joins title and article, one per line, and truncates the result.
func BuildText(req models.CrawlRequest) (string, bool) {
	var sb strings.Builder
	if req.Title != "" {
		sb.WriteString(req.Title)
		sb.WriteString("\n")
	}
	if req.Article != "" {
		sb.WriteString(req.Article)
		sb.WriteString("\n")
	}

	if sb.Len() == 0 {
		return "", false
	}

	return Truncate(sb.String()), true
}

// Truncate keeps at most MaxTextLength characters. It does not look for
// word boundaries.
func Truncate(text string) string {
	if len(text) < MaxTextLength {
		return text
	}

	runes := []rune(text)
	if len(runes) >= MaxTextLength {
		return string(runes[:MaxTextLength])
	}
	return text
}

func CreateRequestFromText(text string) models.TextAnalyticsRequest {
	return models.TextAnalyticsRequest{
		Documents: []models.TextAnalyticsDocument{
			{
				ID:   DocumentID,
				Text: Truncate(text),
			},
		},
	}
}

func ParseSentimentResponse(body string) (*models.TextAnalyticsResponse[models.DocumentSentiment], error) {
	var response models.TextAnalyticsResponse[models.DocumentSentiment]
	if err := json.Unmarshal([]byte(body), &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sentiment response: %w", err)
	}
	return &response, nil
}

// ProjectSentiment copies the score into blob.Output when the service
// returned exactly one document. Any other count leaves the output as is.
func ProjectSentiment(_ models.CrawlRequest, blob *models.BlobContent) error {
	if blob.Output == nil {
		blob.Output = map[string]any{}
	}

	response, err := ParseSentimentResponse(blob.Value)
	if err != nil {
		return err
	}

	if len(response.Documents) != 1 {
		return nil
	}

	blob.Output[SentimentOutputKey] = response.Documents[0].Score
	return nil
}
