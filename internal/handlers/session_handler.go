// internal/handlers/session_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"signlearn/internal/middleware"
	"signlearn/internal/model"
	"signlearn/internal/service"
	"signlearn/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type SessionHandler struct {
	service service.SessionService
	logger  *slog.Logger
}

func NewSessionHandler(s service.SessionService, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionHandler{
		service: s,
		logger:  logger,
	}
}

// StartSession は学習セッションを開始するハンドラ
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "StartSession"))

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

	// ボディは任意 (練習間隔・再開フラグのみ)
	req := &model.StartSessionRequest{}
	if r.ContentLength > 0 {
		if err := webutil.DecodeJSONBody(r, req); err != nil {
			logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
			appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		if !validateStruct(w, logger, req) {
			return
		}
	}

	state, err := h.service.StartSession(r.Context(), userID, subtopicID, req)
	if err != nil {
		logger.Error("Error starting session in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Session started", slog.String("session_id", state.SessionID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, state, logger)
}

// GetSession は現在のセッション状態を返すハンドラ
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSession"))

	userID, sessionID, ok := h.sessionParams(w, r, logger)
	if !ok {
		return
	}

	state, err := h.service.GetState(r.Context(), userID, sessionID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, state, logger)
}

// Flip はカードを反転するハンドラ。タイムラインは進まない。
func (h *SessionHandler) Flip(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Flip"))

	userID, sessionID, ok := h.sessionParams(w, r, logger)
	if !ok {
		return
	}

	state, err := h.service.Flip(r.Context(), userID, sessionID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, state, logger)
}

// Next は次のステップへ進むハンドラ
func (h *SessionHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, service.DirectionNext)
}

// Prev は前のステップへ戻るハンドラ
func (h *SessionHandler) Prev(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, service.DirectionPrev)
}

func (h *SessionHandler) navigate(w http.ResponseWriter, r *http.Request, direction string) {
	logger := h.logger.With(slog.String("handler", "Navigate"), slog.String("direction", direction))

	userID, sessionID, ok := h.sessionParams(w, r, logger)
	if !ok {
		return
	}

	state, err := h.service.Navigate(r.Context(), userID, sessionID, direction)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, state, logger)
}

// Answer は練習設問への回答を受け付けるハンドラ
func (h *SessionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Answer"))

	userID, sessionID, ok := h.sessionParams(w, r, logger)
	if !ok {
		return
	}

	var req model.AnswerRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if !validateStruct(w, logger, &req) {
		return
	}

	resp, err := h.service.Answer(r.Context(), userID, sessionID, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// Complete はセッション完了を確定し、完了画面に必要な情報を返すハンドラ
func (h *SessionHandler) Complete(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Complete"))

	userID, sessionID, ok := h.sessionParams(w, r, logger)
	if !ok {
		return
	}

	// ボディは任意 (完了状況取得に失敗した場合のフォールバック値のみ)
	req := &model.CompleteSessionRequest{}
	if r.ContentLength > 0 {
		if err := webutil.DecodeJSONBody(r, req); err != nil {
			logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
			appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
	}

	resp, err := h.service.Complete(r.Context(), userID, sessionID, req.Params())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// Choose は完了画面でのユーザー選択を遷移指示に変換するハンドラ
func (h *SessionHandler) Choose(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Choose"))

	userID, sessionID, ok := h.sessionParams(w, r, logger)
	if !ok {
		return
	}

	var req model.NavigateRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if !validateStruct(w, logger, &req) {
		return
	}

	intent, err := h.service.Choose(r.Context(), userID, sessionID, req.Choice, req.Params())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, intent, logger)
}

// sessionParams は認証情報とURLのセッションIDをまとめて取り出すヘルパー
func (h *SessionHandler) sessionParams(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (userID, sessionID uuid.UUID, ok bool) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, uuid.Nil, false
	}

	sessionID, ok = parseUUIDParam(w, r, logger, "session_id")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return userID, sessionID, true
}

// parseUUIDParam はURLパラメータをUUIDとして解釈します
func parseUUIDParam(w http.ResponseWriter, r *http.Request, logger *slog.Logger, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.Warn("Invalid UUID format in URL", slog.String("param", name), slog.String("value", raw))
		appErr := model.NewAppError("INVALID_URL_PARAM", name+"の形式が正しくありません。", name, model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return id, true
}

// validateStruct はDTOのバリデーションを行い、失敗時は最初のエラーを
// 日本語メッセージでレスポンスします
func validateStruct(w http.ResponseWriter, logger *slog.Logger, v interface{}) bool {
	if err := webutil.Validator.Struct(v); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))
			firstErr := validationErrors[0]
			translatedMsg := firstErr.Translate(webutil.Trans)
			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				translatedMsg,
				firstErr.Field(),
				model.ErrInvalidInput,
			)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return false
	}
	return true
}
