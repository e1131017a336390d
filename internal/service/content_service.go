//go:generate mockery --name ContentService --output ./mocks --outpkg mocks --case=underscore
// internal/service/content_service.go
package service

import (
	"context"
	"errors"
	"time"

	"signlearn/internal/config"
	"signlearn/internal/middleware"
	"signlearn/internal/model"
	"signlearn/internal/practice"
	"signlearn/internal/repository"
	"signlearn/internal/timeline"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentService は学習コンテンツの読み取り操作を提供します。
// セッションを介さずタイムラインや設問を自前で組みたいクライアント
// (プレビュー画面など) 向けの口です。
type ContentService interface {
	GetFlashcards(ctx context.Context, subtopicID uuid.UUID) ([]model.Flashcard, error)
	GetTimeline(ctx context.Context, subtopicID uuid.UUID, practiceInterval int) ([]model.TimelineStep, error)
	GetPracticeQuestions(ctx context.Context, subtopicID uuid.UUID, start, end int) ([]model.PracticeQuestion, error)
	GetNextSubtopic(ctx context.Context, subtopicID uuid.UUID) (*model.NextSubtopicResponse, error)
	GetSentenceBuilding(ctx context.Context, topicID uuid.UUID) (bool, []model.SentenceQuestion, error)
}

type contentService struct {
	db          *gorm.DB
	contentRepo repository.ContentRepository
	cfg         *config.Config
}

func NewContentService(db *gorm.DB, contentRepo repository.ContentRepository, cfg *config.Config) ContentService {
	return &contentService{
		db:          db,
		contentRepo: contentRepo,
		cfg:         cfg,
	}
}

func (s *contentService) GetFlashcards(ctx context.Context, subtopicID uuid.UUID) ([]model.Flashcard, error) {
	logger := middleware.GetLogger(ctx).With("subtopic_id", subtopicID)

	cards, err := s.contentRepo.FindFlashcards(ctx, s.db, subtopicID)
	if err != nil {
		logger.Error("Failed to find flashcards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "フラッシュカードの取得に失敗しました。", "", err)
	}
	return cards, nil
}

func (s *contentService) GetTimeline(ctx context.Context, subtopicID uuid.UUID, practiceInterval int) ([]model.TimelineStep, error) {
	cards, err := s.GetFlashcards(ctx, subtopicID)
	if err != nil {
		return nil, err
	}
	if practiceInterval <= 0 {
		practiceInterval = s.cfg.App.PracticeInterval
	}
	return timeline.Build(len(cards), practiceInterval), nil
}

// GetPracticeQuestions は [start, end) のカード群を対象とした設問を
// 生成します。範囲はカード数に収まるよう丸められます。
func (s *contentService) GetPracticeQuestions(ctx context.Context, subtopicID uuid.UUID, start, end int) ([]model.PracticeQuestion, error) {
	cards, err := s.GetFlashcards(ctx, subtopicID)
	if err != nil {
		return nil, err
	}

	if start < 0 {
		start = 0
	}
	if end > len(cards) {
		end = len(cards)
	}
	if start >= end {
		return []model.PracticeQuestion{}, nil
	}

	builder := practice.NewBuilder(time.Now().UnixNano())
	return builder.Build(cards[start:end], cards), nil
}

func (s *contentService) GetNextSubtopic(ctx context.Context, subtopicID uuid.UUID) (*model.NextSubtopicResponse, error) {
	logger := middleware.GetLogger(ctx).With("subtopic_id", subtopicID)

	current, err := s.contentRepo.FindSubtopic(ctx, s.db, subtopicID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("SUBTOPIC_NOT_FOUND", "サブトピックが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to find subtopic", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サブトピックの取得に失敗しました。", "", err)
	}

	next, err := s.contentRepo.FindNextSubtopic(ctx, s.db, current)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return &model.NextSubtopicResponse{HasNext: false}, nil
		}
		logger.Error("Failed to find next subtopic", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "次のサブトピックの取得に失敗しました。", "", err)
	}

	resp := &model.NextSubtopicResponse{
		HasNext:          true,
		NextSubtopicName: next.Name,
	}
	nextID := next.SubtopicID
	resp.NextSubtopicID = &nextID
	if next.Topic != nil {
		resp.TopicName = next.Topic.Name
	}
	return resp, nil
}

// GetSentenceBuilding はトピックが文章組み立て練習に対応しているかと、
// その設問一覧を返します。設問の取得に失敗した場合は警告を残して空リスト
// に劣化させます (完了画面の表示を止めない)。
func (s *contentService) GetSentenceBuilding(ctx context.Context, topicID uuid.UUID) (bool, []model.SentenceQuestion, error) {
	logger := middleware.GetLogger(ctx).With("topic_id", topicID)

	topic, err := s.contentRepo.FindTopic(ctx, s.db, topicID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, nil, model.NewAppError("TOPIC_NOT_FOUND", "トピックが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to find topic", "error", err)
		return false, nil, model.NewAppError("INTERNAL_SERVER_ERROR", "トピックの取得に失敗しました。", "", err)
	}
	if !topic.HasSentenceBuilding {
		return false, []model.SentenceQuestion{}, nil
	}

	questions, err := s.contentRepo.FindSentenceQuestions(ctx, s.db, topicID)
	if err != nil {
		logger.Warn("Failed to load sentence questions, degrading to empty list", "error", err)
		return true, []model.SentenceQuestion{}, nil
	}
	return true, questions, nil
}
