package textanalytics

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spacesedan/crawlsentiment/internal/clients"
	"github.com/spacesedan/crawlsentiment/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildText(t *testing.T) {
	tests := []struct {
		name string
		req  models.CrawlRequest
		want string
		ok   bool
	}{
		{name: "empty", req: models.CrawlRequest{}, ok: false},
		{name: "title only", req: models.CrawlRequest{Title: "Markets rally"}, want: "Markets rally\n", ok: true},
		{name: "article only", req: models.CrawlRequest{Article: "Stocks rose."}, want: "Stocks rose.\n", ok: true},
		{name: "both", req: models.CrawlRequest{Title: "Markets rally", Article: "Stocks rose."}, want: "Markets rally\nStocks rose.\n", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BuildText(tt.req)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTruncate_Boundaries(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantLen int
	}{
		{name: "below limit", length: MaxTextLength - 1, wantLen: MaxTextLength - 1},
		{name: "at limit", length: MaxTextLength, wantLen: MaxTextLength},
		{name: "above limit", length: MaxTextLength + 1, wantLen: MaxTextLength},
		{name: "far above limit", length: 3 * MaxTextLength, wantLen: MaxTextLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Repeat("a", tt.length-1) + "z"
			got := Truncate(text)
			assert.Len(t, got, tt.wantLen)
			assert.Equal(t, text[:tt.wantLen], got)
		})
	}
}

func TestTruncate_CountsCharacters(t *testing.T) {
	text := strings.Repeat("é", MaxTextLength+10)

	got := Truncate(text)

	assert.Equal(t, MaxTextLength, len([]rune(got)))
	assert.Equal(t, strings.Repeat("é", MaxTextLength), got)
}

func TestTruncate_MultibyteBelowLimitUntouched(t *testing.T) {
	// 3000 two-byte runes: more bytes than the limit, fewer characters.
	text := strings.Repeat("ß", 3000)

	assert.Equal(t, text, Truncate(text))
}

func TestBuildRequest_TruncatesCombinedText(t *testing.T) {
	req := models.CrawlRequest{
		Title:   "Headline",
		Article: strings.Repeat("x", MaxTextLength),
	}

	out := BuildRequest(req)

	require.NotNil(t, out)
	require.Len(t, out.Documents, 1)
	text := out.Documents[0].Text
	assert.Len(t, text, MaxTextLength)
	assert.True(t, strings.HasPrefix(text, "Headline\nxxx"))
}

func TestBuildRequest_NoText(t *testing.T) {
	assert.Nil(t, BuildRequest(models.CrawlRequest{ID: "abc", URL: "https://example.com"}))
}

func TestCreateRequestFromText_Serialization(t *testing.T) {
	b, err := json.Marshal(CreateRequestFromText("hello"))

	require.NoError(t, err)
	assert.Equal(t, `{"documents":[{"id":"1","text":"hello"}]}`, string(b))
	assert.NotContains(t, string(b), "language")
}

func TestProjectSentiment(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantScore any
		wantKey   bool
	}{
		{
			name:      "single document",
			body:      `{"documents":[{"id":"1","score":0.87}],"errors":[]}`,
			wantScore: 0.87,
			wantKey:   true,
		},
		{
			name: "no documents with errors",
			body: `{"documents":[],"errors":[{"id":"1","message":"too long"}]}`,
		},
		{
			name: "two documents",
			body: `{"documents":[{"id":"1","score":0.1},{"id":"2","score":0.2}]}`,
		},
		{
			name: "documents absent",
			body: `{"errors":[]}`,
		},
		{
			name: "documents null",
			body: `{"documents":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob := &models.BlobContent{Value: tt.body}

			err := ProjectSentiment(models.CrawlRequest{}, blob)

			require.NoError(t, err)
			score, ok := blob.Output[SentimentOutputKey]
			assert.Equal(t, tt.wantKey, ok)
			if tt.wantKey {
				assert.Equal(t, tt.wantScore, score)
			} else {
				assert.Empty(t, blob.Output)
			}
		})
	}
}

func TestProjectSentiment_MalformedBody(t *testing.T) {
	for _, body := range []string{"not json", `"not json"`, ""} {
		blob := &models.BlobContent{Value: body}

		err := ProjectSentiment(models.CrawlRequest{}, blob)

		assert.Error(t, err, "body %q", body)
		assert.NotContains(t, blob.Output, SentimentOutputKey)
	}
}

func TestProjectSentiment_KeepsExistingOutput(t *testing.T) {
	blob := &models.BlobContent{
		Value:  `{"documents":[]}`,
		Output: map[string]any{"XLanguage": "en"},
	}

	require.NoError(t, ProjectSentiment(models.CrawlRequest{}, blob))
	assert.Equal(t, map[string]any{"XLanguage": "en"}, blob.Output)
}

func newAnalyzer(t *testing.T, handler http.HandlerFunc) (*SentimentAnalyzer, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	svc := &clients.CognitiveService{
		Name:        SentimentServiceName,
		QueryParams: SentimentQueryParams,
		Endpoint:    srv.URL,
		Client:      srv.Client(),
	}
	return NewSentimentAnalyzer(svc), &calls
}

func TestSentimentAnalyzer_Run(t *testing.T) {
	var gotBody string
	var gotPath string
	analyzer, calls := newAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(`{"documents":[{"id":"1","score":0.87}],"errors":[]}`))
	})

	blob, err := analyzer.Run(context.Background(), models.CrawlRequest{Title: "Good news", Article: "Everything is great."})

	require.NoError(t, err)
	assert.Equal(t, 1, *calls)
	assert.Equal(t, "/sentiment", gotPath)
	assert.JSONEq(t, `{"documents":[{"id":"1","text":"Good news\nEverything is great.\n"}]}`, gotBody)
	assert.Equal(t, 0.87, blob.Output[SentimentOutputKey])
}

func TestSentimentAnalyzer_Run_NoTextSkipsCall(t *testing.T) {
	analyzer, calls := newAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	blob, err := analyzer.Run(context.Background(), models.CrawlRequest{})

	require.NoError(t, err)
	assert.Equal(t, 0, *calls)
	assert.Empty(t, blob.Output)
}

func TestSentimentAnalyzer_Run_MalformedResponseFails(t *testing.T) {
	analyzer, _ := newAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	blob, err := analyzer.Run(context.Background(), models.CrawlRequest{Title: "Headline"})

	require.Error(t, err)
	assert.Nil(t, blob)
}

func TestSentimentAnalyzer_Run_ServiceErrorPropagates(t *testing.T) {
	analyzer, _ := newAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := analyzer.Run(context.Background(), models.CrawlRequest{Title: "Headline"})

	var svcErr *clients.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusUnauthorized, svcErr.StatusCode)
}
