// internal/handlers/completion_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"signlearn/internal/middleware"
	"signlearn/internal/service"
	"signlearn/internal/webutil"
)

type CompletionHandler struct {
	service service.CompletionService
	logger  *slog.Logger
}

func NewCompletionHandler(s service.CompletionService, logger *slog.Logger) *CompletionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompletionHandler{
		service: s,
		logger:  logger,
	}
}

// GetCompletionStatus はトピック内サブトピックの完了集計を返すハンドラ
func (h *CompletionHandler) GetCompletionStatus(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCompletionStatus"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Error("Error getting user ID from context", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	topicID, ok := parseUUIDParam(w, r, logger, "topic_id")
	if !ok {
		return
	}

	status, err := h.service.CompletionStatus(r.Context(), userID, topicID)
	if err != nil {
		logger.Error("Error computing completion status in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, status, logger)
}
