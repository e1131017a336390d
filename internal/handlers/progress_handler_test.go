// internal/handlers/progress_handler_test.go
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

func newProgressTestRouter(mockService *mocks.ProgressService) *chi.Mux {
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handlers.NewProgressHandler(mockService, testLogger)

	router := chi.NewRouter()
	router.Use(middleware.DevUserContextMiddleware)
	router.Get("/api/v1/subtopics/{subtopic_id}/progress", h.GetProgress)
	router.Put("/api/v1/subtopics/{subtopic_id}/progress", h.SaveProgress)
	return router
}

func TestProgressHandler_GetProgress(t *testing.T) {
	userID := uuid.New()
	subtopicID := uuid.New()

	tests := []struct {
		name           string
		userID         *uuid.UUID
		setupMock      func(m *mocks.ProgressService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "正常系: 進捗取得成功",
			userID: &userID,
			setupMock: func(m *mocks.ProgressService) {
				m.On("GetProgress", mock.Anything, userID, subtopicID).
					Return(&model.ProgressResponse{
						Success:            true,
						SubtopicID:         subtopicID,
						CompletedCards:     []int{0, 1, 2},
						CompletedPractice:  false,
						CompletedPractices: []string{},
						ProgressPercentage: 30,
					}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "異常系: 進捗が存在しない",
			userID: &userID,
			setupMock: func(m *mocks.ProgressService) {
				m.On("GetProgress", mock.Anything, userID, subtopicID).
					Return(nil, model.NewAppError("PROGRESS_NOT_FOUND", "学習進捗が見つかりません。", "", model.ErrNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "PROGRESS_NOT_FOUND",
		},
		{
			name:           "異常系: 認証ヘッダーなし",
			userID:         nil,
			expectedStatus: http.StatusForbidden,
			expectedCode:   "UNAUTHORIZED",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(mocks.ProgressService)
			router := newProgressTestRouter(mockService)
			if tc.setupMock != nil {
				tc.setupMock(mockService)
			}

			url := fmt.Sprintf("/api/v1/subtopics/%s/progress", subtopicID)
			req := createRequest(t, "GET", url, nil, tc.userID)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus == http.StatusOK {
				var resp model.ProgressResponse
				err := json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.NoError(t, err)
				assert.True(t, resp.Success)
				assert.Equal(t, 30, resp.ProgressPercentage)
			} else {
				assertErrorResponse(t, rr, tc.expectedCode)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestProgressHandler_SaveProgress(t *testing.T) {
	userID := uuid.New()
	subtopicID := uuid.New()
	completed := true

	validReq := model.SaveProgressRequest{
		CompletedCards:     []int{0, 1, 2, 3, 4},
		CompletedPractice:  &completed,
		CompletedPractices: []string{"0-5"},
		LastPosition:       6,
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(m *mocks.ProgressService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "正常系: 保存成功",
			body: validReq,
			setupMock: func(m *mocks.ProgressService) {
				m.On("SaveProgress", mock.Anything, userID, subtopicID, &validReq).
					Return(&model.ProgressResponse{
						Success:            true,
						SubtopicID:         subtopicID,
						CompletedCards:     validReq.CompletedCards,
						CompletedPractice:  true,
						CompletedPractices: validReq.CompletedPractices,
						ProgressPercentage: 100,
					}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "異常系: completed_practiceがない",
			body:           map[string]interface{}{"completed_cards": []int{0}},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "異常系: user_choiceの値が不正",
			body:           map[string]interface{}{"completed_cards": []int{0}, "completed_practice": true, "user_choice": "skip"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "異常系: 不正なJSONボディ",
			body:           "this is not json",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_REQUEST_BODY",
		},
		{
			name: "異常系: サブトピックが存在しない",
			body: validReq,
			setupMock: func(m *mocks.ProgressService) {
				m.On("SaveProgress", mock.Anything, userID, subtopicID, &validReq).
					Return(nil, model.NewAppError("SUBTOPIC_NOT_FOUND", "サブトピックが見つかりません。", "", model.ErrNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "SUBTOPIC_NOT_FOUND",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(mocks.ProgressService)
			router := newProgressTestRouter(mockService)
			if tc.setupMock != nil {
				tc.setupMock(mockService)
			}

			url := fmt.Sprintf("/api/v1/subtopics/%s/progress", subtopicID)
			req := createRequest(t, "PUT", url, tc.body, &userID)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus == http.StatusOK {
				var resp model.ProgressResponse
				err := json.Unmarshal(rr.Body.Bytes(), &resp)
				assert.NoError(t, err)
				assert.True(t, resp.Success)
				assert.Equal(t, 100, resp.ProgressPercentage)
			} else {
				assertErrorResponse(t, rr, tc.expectedCode)
			}
			mockService.AssertExpectations(t)
		})
	}
}
