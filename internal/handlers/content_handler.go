// internal/handlers/content_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"signlearn/internal/model"
	"signlearn/internal/service"
	"signlearn/internal/webutil"
)

type ContentHandler struct {
	service service.ContentService
	logger  *slog.Logger
}

func NewContentHandler(s service.ContentService, logger *slog.Logger) *ContentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentHandler{
		service: s,
		logger:  logger,
	}
}

// GetFlashcards はサブトピックのカード一覧を返すハンドラ
func (h *ContentHandler) GetFlashcards(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetFlashcards"))

	subtopicID, ok := parseUUIDParam(w, r, logger, "subtopic_id")
	if !ok {
		return
	}

	cards, err := h.service.GetFlashcards(r.Context(), subtopicID)
	if err != nil {
		logger.Error("Error listing flashcards in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if cards == nil {
		cards = []model.Flashcard{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, cards, logger)
}

// GetTimeline はサブトピックの学習タイムラインを返すハンドラ。
// クエリパラメータ interval で練習間隔を上書きできる。
func (h *ContentHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetTimeline"))

	subtopicID, ok := parseUUIDParam(w, r, logger, "subtopic_id")
	if !ok {
		return
	}

	interval := 0
	if raw := r.URL.Query().Get("interval"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			appErr := model.NewAppError("INVALID_QUERY_PARAM", "intervalは1以上の整数を指定してください。", "interval", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		interval = v
	}

	steps, err := h.service.GetTimeline(r.Context(), subtopicID, interval)
	if err != nil {
		logger.Error("Error building timeline in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, steps, logger)
}

// GetPracticeQuestions は [start, end) のカード範囲の練習設問を返すハンドラ
func (h *ContentHandler) GetPracticeQuestions(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetPracticeQuestions"))

	subtopicID, ok := parseUUIDParam(w, r, logger, "subtopic_id")
	if !ok {
		return
	}

	start, ok := parseIntQuery(w, r, logger, "start")
	if !ok {
		return
	}
	end, ok := parseIntQuery(w, r, logger, "end")
	if !ok {
		return
	}

	questions, err := h.service.GetPracticeQuestions(r.Context(), subtopicID, start, end)
	if err != nil {
		logger.Error("Error building practice questions in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, questions, logger)
}

// GetNextSubtopic は次のサブトピックの有無と情報を返すハンドラ
func (h *ContentHandler) GetNextSubtopic(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetNextSubtopic"))

	subtopicID, ok := parseUUIDParam(w, r, logger, "subtopic_id")
	if !ok {
		return
	}

	resp, err := h.service.GetNextSubtopic(r.Context(), subtopicID)
	if err != nil {
		logger.Error("Error finding next subtopic in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// GetSentenceBuilding はトピックの文章組み立て練習の対応状況と設問を返すハンドラ
func (h *ContentHandler) GetSentenceBuilding(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSentenceBuilding"))

	topicID, ok := parseUUIDParam(w, r, logger, "topic_id")
	if !ok {
		return
	}

	available, questions, err := h.service.GetSentenceBuilding(r.Context(), topicID)
	if err != nil {
		logger.Error("Error loading sentence building in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if questions == nil {
		questions = []model.SentenceQuestion{}
	}

	resp := map[string]interface{}{
		"available": available,
		"questions": questions,
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

func parseIntQuery(w http.ResponseWriter, r *http.Request, logger *slog.Logger, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		logger.Warn("Invalid integer query param", slog.String("param", name), slog.String("value", raw))
		appErr := model.NewAppError("INVALID_QUERY_PARAM", name+"は0以上の整数を指定してください。", name, model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return 0, false
	}
	return v, true
}
