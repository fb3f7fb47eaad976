package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spacesedan/crawlsentiment/internal/models"
)

const (
	USER_AGENT              = "crawlsentiment/1.0"
	SUBSCRIPTION_KEY_HEADER = "Ocp-Apim-Subscription-Key"
)

var ErrMissingEndpoint = errors.New("cognitive service endpoint is not configured")

// ServiceError is returned when the service answers with a non-success status.
type ServiceError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s responded with status code %d: %s", e.Service, e.StatusCode, e.Body)
}

// CognitiveService is a configured handle to one cognitive services API.
// It is built once at startup and is safe for concurrent use.
type CognitiveService struct {
	Name        string
	QueryParams string
	Endpoint    string
	APIKey      string
	Client      *http.Client
}

// NewCognitiveService reads <NAME>_ENDPOINT and <NAME>_KEY from the
// environment, e.g. COGTEXTANALYTICS_ENDPOINT for "CogTextAnalytics".
func NewCognitiveService(name string, queryParams string) (*CognitiveService, error) {
	prefix := strings.ToUpper(name)
	endpoint := os.Getenv(prefix + "_ENDPOINT")
	if endpoint == "" {
		return nil, fmt.Errorf("[CognitiveService] %s: %w", name, ErrMissingEndpoint)
	}

	timeout := serviceTimeout()
	slog.Info("[CognitiveService] Initializing Client",
		slog.String("service", name),
		slog.Duration("timeout", timeout))

	return &CognitiveService{
		Name:        name,
		QueryParams: queryParams,
		Endpoint:    endpoint,
		APIKey:      os.Getenv(prefix + "_KEY"),
		Client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func serviceTimeout() time.Duration {
	if raw := os.Getenv("COGNITIVE_SERVICE_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
		slog.Warn("[CognitiveService] Invalid COGNITIVE_SERVICE_TIMEOUT, using default",
			slog.String("value", raw))
	}
	if os.Getenv("APP_ENV") == "production" {
		return 10 * time.Second
	}
	return 60 * time.Second
}

func (c *CognitiveService) URL() string {
	return strings.TrimRight(c.Endpoint, "/") + c.QueryParams
}

// Invoke runs one enrichment call against svc. build turns the inbound body
// into the outbound one; a nil result means there is nothing to send and no
// call is made. process receives the raw response in blob.Value and fills
// blob.Output. The call is made exactly once and ctx is passed to the
// transport unchanged.
func Invoke[In any, Out any](
	ctx context.Context,
	svc *CognitiveService,
	reqBody In,
	build func(In) *Out,
	process func(In, *models.BlobContent) error,
	isPost bool,
) (*models.BlobContent, error) {
	blob := &models.BlobContent{}

	outbound := build(reqBody)
	if outbound == nil {
		slog.Debug("[CognitiveService] Nothing to send, skipping request",
			slog.String("service", svc.Name))
		return blob, nil
	}

	start := time.Now()
	body, err := svc.do(ctx, outbound, isPost)
	if err != nil {
		slog.Error("[CognitiveService] Request failed",
			slog.String("service", svc.Name),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return nil, err
	}

	slog.Info("[CognitiveService] Request successful",
		slog.String("service", svc.Name),
		slog.Duration("elapsed", time.Since(start)))

	blob.Value = string(body)
	if err := process(reqBody, blob); err != nil {
		slog.Error("[CognitiveService] Failed to process response",
			slog.String("service", svc.Name),
			slog.String("error", err.Error()),
			getPreview(body))
		return nil, err
	}

	return blob, nil
}

func (c *CognitiveService) do(ctx context.Context, input any, isPost bool) ([]byte, error) {
	endpoint := c.URL()

	method := http.MethodGet
	var reader io.Reader
	if isPost {
		method = http.MethodPost
		payload, err := json.Marshal(input)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal input: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)
	if c.APIKey != "" {
		req.Header.Set(SUBSCRIPTION_KEY_HEADER, c.APIKey)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", c.Name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ServiceError{
			Service:    c.Name,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	return respBody, nil
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}
