package models

type TextAnalyticsRequest struct {
	Documents []TextAnalyticsDocument `json:"documents"`
}

// Language is left empty on purpose; the service detects it and an empty
// value is never serialized.
type TextAnalyticsDocument struct {
	Language string `json:"language,omitempty"`
	ID       string `json:"id"`
	Text     string `json:"text"`
}

// DocumentResult is implemented by every per-document result kind the
// text analytics service can return.
type DocumentResult interface {
	DocumentID() string
}

type DocumentResultBase struct {
	ID string `json:"id"`
}

func (d DocumentResultBase) DocumentID() string {
	return d.ID
}

type DocumentSentiment struct {
	DocumentResultBase
	Score float64 `json:"score"`
}

// TextAnalyticsResponse is the envelope shared by all text analytics
// endpoints, parameterized by the result kind of the endpoint.
type TextAnalyticsResponse[T DocumentResult] struct {
	Documents []T                  `json:"documents"`
	Errors    []TextAnalyticsError `json:"errors"`
}

type TextAnalyticsError struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
