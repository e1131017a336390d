//go:generate mockery --name ProgressService --output ./mocks --outpkg mocks --case=underscore
// internal/service/progress_service.go
package service

import (
	"context"
	"errors"

	"signlearn/internal/middleware"
	"signlearn/internal/model"
	"signlearn/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressService はサブトピック進捗の読み書きAPIの背後にあるロジックです
type ProgressService interface {
	GetProgress(ctx context.Context, userID, subtopicID uuid.UUID) (*model.ProgressResponse, error)
	SaveProgress(ctx context.Context, userID, subtopicID uuid.UUID, req *model.SaveProgressRequest) (*model.ProgressResponse, error)
}

type progressService struct {
	db          *gorm.DB
	contentRepo repository.ContentRepository
	progRepo    repository.ProgressRepository
}

func NewProgressService(db *gorm.DB, contentRepo repository.ContentRepository, progRepo repository.ProgressRepository) ProgressService {
	return &progressService{
		db:          db,
		contentRepo: contentRepo,
		progRepo:    progRepo,
	}
}

func (s *progressService) GetProgress(ctx context.Context, userID, subtopicID uuid.UUID) (*model.ProgressResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "subtopic_id", subtopicID)

	progress, err := s.progRepo.Find(ctx, s.db, userID, subtopicID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PROGRESS_NOT_FOUND", "学習進捗が見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to find progress", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の取得に失敗しました。", "", err)
	}

	return s.toResponse(ctx, progress), nil
}

// SaveProgress は進捗を上書き保存します。同じ内容を複数回保存しても
// 結果は同じです (冪等)。
func (s *progressService) SaveProgress(ctx context.Context, userID, subtopicID uuid.UUID, req *model.SaveProgressRequest) (*model.ProgressResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "subtopic_id", subtopicID)

	// サブトピックの存在確認
	if _, err := s.contentRepo.FindSubtopic(ctx, s.db, subtopicID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("SUBTOPIC_NOT_FOUND", "サブトピックが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to find subtopic", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サブトピックの確認中にエラーが発生しました。", "", err)
	}

	completedPractice := false
	if req.CompletedPractice != nil {
		completedPractice = *req.CompletedPractice
	}
	progress := &model.SubtopicProgress{
		UserID:             userID,
		SubtopicID:         subtopicID,
		CompletedCards:     req.CompletedCards,
		CompletedPractice:  completedPractice,
		CompletedPractices: req.CompletedPractices,
		UserChoice:         req.UserChoice,
		LastPosition:       req.LastPosition,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.progRepo.Upsert(ctx, tx, progress)
	})
	if err != nil {
		logger.Error("Failed to upsert progress", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の保存に失敗しました。", "", err)
	}

	logger.Info("Progress saved", "completed_practice", progress.CompletedPractice, "cards", len(progress.CompletedCards))
	return s.toResponse(ctx, progress), nil
}

// toResponse は進捗レコードをレスポンスDTOに変換し、達成率を計算します。
// 練習まで完了していれば100%、そうでなければ閲覧済みカードの割合。
func (s *progressService) toResponse(ctx context.Context, progress *model.SubtopicProgress) *model.ProgressResponse {
	percentage := 0
	if progress.CompletedPractice {
		percentage = 100
	} else if len(progress.CompletedCards) > 0 {
		cards, err := s.contentRepo.FindFlashcards(ctx, s.db, progress.SubtopicID)
		if err != nil || len(cards) == 0 {
			// カード数が取れなければ割合は出せない。0のままにする
			middleware.GetLogger(ctx).Warn("Failed to count flashcards for percentage", "error", err)
		} else {
			percentage = len(progress.CompletedCards) * 100 / len(cards)
			if percentage > 100 {
				percentage = 100
			}
		}
	}

	resp := &model.ProgressResponse{
		Success:            true,
		SubtopicID:         progress.SubtopicID,
		CompletedCards:     progress.CompletedCards,
		CompletedPractice:  progress.CompletedPractice,
		CompletedPractices: progress.CompletedPractices,
		UserChoice:         progress.UserChoice,
		LastPosition:       progress.LastPosition,
		ProgressPercentage: percentage,
	}
	if resp.CompletedCards == nil {
		resp.CompletedCards = []int{}
	}
	if resp.CompletedPractices == nil {
		resp.CompletedPractices = []string{}
	}
	if !progress.UpdatedAt.IsZero() {
		t := progress.UpdatedAt
		resp.UpdatedAt = &t
	}
	return resp
}
