//go:generate mockery --name ContentRepository --output ./mocks --outpkg mocks --case=underscore
// internal/repository/content_repository.go
package repository

import (
	"context"
	"errors"

	"signlearn/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentRepository は学習コンテンツ (トピック・サブトピック・カード・
// 文章組み立て設問) の読み取り口です。DB接続はService層から渡されます。
type ContentRepository interface {
	FindSubtopic(ctx context.Context, db *gorm.DB, subtopicID uuid.UUID) (*model.Subtopic, error)
	FindTopic(ctx context.Context, db *gorm.DB, topicID uuid.UUID) (*model.Topic, error)
	FindFlashcards(ctx context.Context, db *gorm.DB, subtopicID uuid.UUID) ([]model.Flashcard, error)
	FindNextSubtopic(ctx context.Context, db *gorm.DB, current *model.Subtopic) (*model.Subtopic, error)
	CountSubtopics(ctx context.Context, db *gorm.DB, topicID uuid.UUID) (int64, error)
	FindSentenceQuestions(ctx context.Context, db *gorm.DB, topicID uuid.UUID) ([]model.SentenceQuestion, error)
}

type gormContentRepository struct{}

func NewGormContentRepository() ContentRepository {
	return &gormContentRepository{}
}

func (r *gormContentRepository) FindSubtopic(ctx context.Context, db *gorm.DB, subtopicID uuid.UUID) (*model.Subtopic, error) {
	var subtopic model.Subtopic
	result := db.WithContext(ctx).Preload("Topic").Where("subtopic_id = ?", subtopicID).First(&subtopic)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &subtopic, nil
}

func (r *gormContentRepository) FindTopic(ctx context.Context, db *gorm.DB, topicID uuid.UUID) (*model.Topic, error) {
	var topic model.Topic
	result := db.WithContext(ctx).Where("topic_id = ?", topicID).First(&topic)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &topic, nil
}

func (r *gormContentRepository) FindFlashcards(ctx context.Context, db *gorm.DB, subtopicID uuid.UUID) ([]model.Flashcard, error) {
	var cards []model.Flashcard
	result := db.WithContext(ctx).
		Where("subtopic_id = ?", subtopicID).
		Order("ordinal ASC").
		Find(&cards)
	if result.Error != nil {
		return nil, result.Error
	}
	return cards, nil
}

// FindNextSubtopic は同一トピック内で現在のサブトピックの次 (SortOrder順)
// を返します。次が存在しない場合は model.ErrNotFound を返します。
func (r *gormContentRepository) FindNextSubtopic(ctx context.Context, db *gorm.DB, current *model.Subtopic) (*model.Subtopic, error) {
	var next model.Subtopic
	result := db.WithContext(ctx).
		Preload("Topic").
		Where("topic_id = ? AND sort_order > ?", current.TopicID, current.SortOrder).
		Order("sort_order ASC").
		First(&next)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &next, nil
}

func (r *gormContentRepository) CountSubtopics(ctx context.Context, db *gorm.DB, topicID uuid.UUID) (int64, error) {
	var count int64
	result := db.WithContext(ctx).
		Model(&model.Subtopic{}).
		Where("topic_id = ?", topicID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (r *gormContentRepository) FindSentenceQuestions(ctx context.Context, db *gorm.DB, topicID uuid.UUID) ([]model.SentenceQuestion, error) {
	var questions []model.SentenceQuestion
	result := db.WithContext(ctx).
		Where("topic_id = ?", topicID).
		Order("created_at ASC").
		Find(&questions)
	if result.Error != nil {
		return nil, result.Error
	}
	return questions, nil
}
