// internal/handlers/progress_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"signlearn/internal/middleware"
	"signlearn/internal/model"
	"signlearn/internal/service"
	"signlearn/internal/webutil"
)

type ProgressHandler struct {
	service service.ProgressService
	logger  *slog.Logger
}

func NewProgressHandler(s service.ProgressService, logger *slog.Logger) *ProgressHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressHandler{
		service: s,
		logger:  logger,
	}
}

// GetProgress はサブトピックの学習進捗を取得するハンドラ
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetProgress"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	subtopicID, ok := parseUUIDParam(w, r, logger, "subtopic_id")
	if !ok {
		return
	}

	resp, err := h.service.GetProgress(r.Context(), userID, subtopicID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Progress not found", slog.String("subtopic_id", subtopicID.String()))
		} else {
			logger.Error("Error getting progress from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// SaveProgress はサブトピックの学習進捗を上書き保存するハンドラ
func (h *ProgressHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SaveProgress"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	subtopicID, ok := parseUUIDParam(w, r, logger, "subtopic_id")
	if !ok {
		return
	}

	var req model.SaveProgressRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if !validateStruct(w, logger, &req) {
		return
	}

	resp, err := h.service.SaveProgress(r.Context(), userID, subtopicID, &req)
	if err != nil {
		logger.Error("Error saving progress in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Progress saved successfully", slog.String("subtopic_id", subtopicID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}
