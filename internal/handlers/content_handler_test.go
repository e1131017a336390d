// internal/handlers/content_handler_test.go
package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"signlearn/internal/handlers"
	"signlearn/internal/middleware"
	"signlearn/internal/model"
	"signlearn/internal/service/mocks"
)

func newContentTestRouter(mockService *mocks.ContentService) *chi.Mux {
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handlers.NewContentHandler(mockService, testLogger)

	router := chi.NewRouter()
	router.Use(middleware.DevUserContextMiddleware)
	router.Get("/api/v1/subtopics/{subtopic_id}/flashcards", h.GetFlashcards)
	router.Get("/api/v1/subtopics/{subtopic_id}/timeline", h.GetTimeline)
	router.Get("/api/v1/subtopics/{subtopic_id}/practice-questions", h.GetPracticeQuestions)
	router.Get("/api/v1/subtopics/{subtopic_id}/next", h.GetNextSubtopic)
	router.Get("/api/v1/topics/{topic_id}/sentence-building", h.GetSentenceBuilding)
	return router
}

func TestContentHandler_GetFlashcards(t *testing.T) {
	userID := uuid.New()
	subtopicID := uuid.New()

	cards := []model.Flashcard{
		{CardID: uuid.New(), SubtopicID: subtopicID, Ordinal: 0, FrontType: model.FrontTypeVideo, FrontContent: "https://example.com/a.mp4", BackWord: "犬"},
		{CardID: uuid.New(), SubtopicID: subtopicID, Ordinal: 1, FrontType: model.FrontTypeImage, FrontContent: "https://example.com/b.png", BackWord: "猫"},
	}

	t.Run("正常系: カード一覧取得", func(t *testing.T) {
		mockService := new(mocks.ContentService)
		router := newContentTestRouter(mockService)
		mockService.On("GetFlashcards", mock.Anything, subtopicID).Return(cards, nil).Once()

		url := fmt.Sprintf("/api/v1/subtopics/%s/flashcards", subtopicID)
		req := createRequest(t, "GET", url, nil, &userID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp []model.Flashcard
		err := json.Unmarshal(rr.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "犬", resp[0].BackWord)
		mockService.AssertExpectations(t)
	})

	t.Run("正常系: カードなしは空配列", func(t *testing.T) {
		mockService := new(mocks.ContentService)
		router := newContentTestRouter(mockService)
		mockService.On("GetFlashcards", mock.Anything, subtopicID).Return(nil, nil).Once()

		url := fmt.Sprintf("/api/v1/subtopics/%s/flashcards", subtopicID)
		req := createRequest(t, "GET", url, nil, &userID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
		mockService.AssertExpectations(t)
	})
}

func TestContentHandler_GetTimeline(t *testing.T) {
	userID := uuid.New()
	subtopicID := uuid.New()

	steps := []model.TimelineStep{
		model.FlashcardStep(0),
		model.FlashcardStep(1),
		model.PracticeStep(0, 2),
	}

	tests := []struct {
		name           string
		query          string
		setupMock      func(m *mocks.ContentService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "正常系: 既定の練習間隔",
			setupMock: func(m *mocks.ContentService) {
				m.On("GetTimeline", mock.Anything, subtopicID, 0).Return(steps, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "正常系: 間隔をクエリで指定",
			query: "?interval=3",
			setupMock: func(m *mocks.ContentService) {
				m.On("GetTimeline", mock.Anything, subtopicID, 3).Return(steps, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "異常系: intervalが整数でない",
			query:          "?interval=abc",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_QUERY_PARAM",
		},
		{
			name:           "異常系: intervalが0以下",
			query:          "?interval=0",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_QUERY_PARAM",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(mocks.ContentService)
			router := newContentTestRouter(mockService)
			if tc.setupMock != nil {
				tc.setupMock(mockService)
			}

			url := fmt.Sprintf("/api/v1/subtopics/%s/timeline%s", subtopicID, tc.query)
			req := createRequest(t, "GET", url, nil, &userID)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus == http.StatusOK {
				var resp []model.TimelineStep
				err := json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.NoError(t, err)
				assert.Len(t, resp, 3)
			} else {
				assertErrorResponse(t, rr, tc.expectedCode)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestContentHandler_GetPracticeQuestions(t *testing.T) {
	userID := uuid.New()
	subtopicID := uuid.New()

	questions := []model.PracticeQuestion{
		{QuestionID: uuid.New(), Prompt: "この手話の動画はどの単語ですか？", CorrectAnswer: "犬"},
	}

	tests := []struct {
		name           string
		query          string
		setupMock      func(m *mocks.ContentService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:  "正常系: 範囲指定で設問取得",
			query: "?start=0&end=5",
			setupMock: func(m *mocks.ContentService) {
				m.On("GetPracticeQuestions", mock.Anything, subtopicID, 0, 5).Return(questions, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "異常系: startがない",
			query:          "?end=5",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_QUERY_PARAM",
		},
		{
			name:           "異常系: endが負数",
			query:          "?start=0&end=-1",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_QUERY_PARAM",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(mocks.ContentService)
			router := newContentTestRouter(mockService)
			if tc.setupMock != nil {
				tc.setupMock(mockService)
			}

			url := fmt.Sprintf("/api/v1/subtopics/%s/practice-questions%s", subtopicID, tc.query)
			req := createRequest(t, "GET", url, nil, &userID)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedCode != "" {
				assertErrorResponse(t, rr, tc.expectedCode)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestContentHandler_GetNextSubtopic(t *testing.T) {
	userID := uuid.New()
	subtopicID := uuid.New()
	nextID := uuid.New()

	t.Run("正常系: 次のサブトピックあり", func(t *testing.T) {
		mockService := new(mocks.ContentService)
		router := newContentTestRouter(mockService)
		mockService.On("GetNextSubtopic", mock.Anything, subtopicID).
			Return(&model.NextSubtopicResponse{HasNext: true, NextSubtopicID: &nextID, NextSubtopicName: "数字"}, nil).Once()

		url := fmt.Sprintf("/api/v1/subtopics/%s/next", subtopicID)
		req := createRequest(t, "GET", url, nil, &userID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp model.NextSubtopicResponse
		err := json.Unmarshal(rr.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.True(t, resp.HasNext)
		assert.Equal(t, "数字", resp.NextSubtopicName)
		mockService.AssertExpectations(t)
	})

	t.Run("正常系: 最後のサブトピック", func(t *testing.T) {
		mockService := new(mocks.ContentService)
		router := newContentTestRouter(mockService)
		mockService.On("GetNextSubtopic", mock.Anything, subtopicID).
			Return(&model.NextSubtopicResponse{HasNext: false}, nil).Once()

		url := fmt.Sprintf("/api/v1/subtopics/%s/next", subtopicID)
		req := createRequest(t, "GET", url, nil, &userID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp model.NextSubtopicResponse
		err := json.Unmarshal(rr.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.False(t, resp.HasNext)
		assert.Nil(t, resp.NextSubtopicID)
		mockService.AssertExpectations(t)
	})
}

func TestContentHandler_GetSentenceBuilding(t *testing.T) {
	userID := uuid.New()
	topicID := uuid.New()

	t.Run("正常系: 対応トピック", func(t *testing.T) {
		mockService := new(mocks.ContentService)
		router := newContentTestRouter(mockService)
		questions := []model.SentenceQuestion{
			{QuestionID: uuid.New(), TopicID: topicID, Words: []string{"私", "犬", "好き"}, Answer: "私 犬 好き"},
		}
		mockService.On("GetSentenceBuilding", mock.Anything, topicID).Return(true, questions, nil).Once()

		url := fmt.Sprintf("/api/v1/topics/%s/sentence-building", topicID)
		req := createRequest(t, "GET", url, nil, &userID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			Available bool                     `json:"available"`
			Questions []model.SentenceQuestion `json:"questions"`
		}
		err := json.Unmarshal(rr.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.True(t, resp.Available)
		assert.Len(t, resp.Questions, 1)
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: トピックが存在しない", func(t *testing.T) {
		mockService := new(mocks.ContentService)
		router := newContentTestRouter(mockService)
		mockService.On("GetSentenceBuilding", mock.Anything, topicID).
			Return(false, nil, model.NewAppError("TOPIC_NOT_FOUND", "トピックが見つかりません。", "", model.ErrNotFound)).Once()

		url := fmt.Sprintf("/api/v1/topics/%s/sentence-building", topicID)
		req := createRequest(t, "GET", url, nil, &userID)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assertErrorResponse(t, rr, "TOPIC_NOT_FOUND")
		mockService.AssertExpectations(t)
	})
}
