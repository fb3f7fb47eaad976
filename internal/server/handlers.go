package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/spacesedan/crawlsentiment/internal/clients"
	"github.com/spacesedan/crawlsentiment/internal/models"
	"github.com/spacesedan/crawlsentiment/internal/sinks"
)

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	var req models.CrawlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	ctx := r.Context()
	blob, err := s.analyzer.Run(ctx, req)
	if err != nil {
		slog.Error("[Server] Sentiment analysis failed",
			slog.String("request_id", middleware.GetReqID(ctx)),
			slog.String("content_id", req.ID),
			slog.String("error", err.Error()))
		writeError(w, statusFor(err), err.Error())
		return
	}

	if err := s.sink.Publish(ctx, sinks.NewRecord(req, blob)); err != nil {
		slog.Error("[Server] Failed to publish sentiment result",
			slog.String("request_id", middleware.GetReqID(ctx)),
			slog.String("content_id", req.ID),
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	output := blob.Output
	if output == nil {
		output = map[string]any{}
	}
	writeJSON(w, http.StatusOK, output)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps upstream failures to 502 so callers can tell them apart
// from failures of this service.
func statusFor(err error) int {
	var svcErr *clients.ServiceError
	if errors.As(err, &svcErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("[Server] Failed to encode response", slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
