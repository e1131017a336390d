//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
// internal/repository/progress_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"signlearn/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressRepository はサブトピック進捗の永続化口です。
// (user_id, subtopic_id) につき1レコードで、Upsert は常に上書きします。
type ProgressRepository interface {
	Find(ctx context.Context, db *gorm.DB, userID, subtopicID uuid.UUID) (*model.SubtopicProgress, error)
	Upsert(ctx context.Context, tx *gorm.DB, progress *model.SubtopicProgress) error // トランザクション対応
	ListCompletedSubtopicIDs(ctx context.Context, db *gorm.DB, userID, topicID uuid.UUID) ([]uuid.UUID, error)
}

type gormProgressRepository struct {
	// DB接続はService層から渡される想定
}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) Find(ctx context.Context, db *gorm.DB, userID, subtopicID uuid.UUID) (*model.SubtopicProgress, error) {
	var progress model.SubtopicProgress
	result := db.WithContext(ctx).
		Where("user_id = ? AND subtopic_id = ?", userID, subtopicID).
		First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &progress, nil
}

// Upsert は既存レコードがあれば全フィールドを上書きし、なければ新規作成
// します。同じ内容で複数回呼んでも結果は変わりません (追記セマンティクス
// ではない)。
func (r *gormProgressRepository) Upsert(ctx context.Context, tx *gorm.DB, progress *model.SubtopicProgress) error {
	var existing model.SubtopicProgress
	result := tx.WithContext(ctx).
		Where("user_id = ? AND subtopic_id = ?", progress.UserID, progress.SubtopicID).
		First(&existing)

	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}
		// 新規作成
		if progress.ProgressID == uuid.Nil {
			progress.ProgressID = uuid.New()
		}
		return tx.WithContext(ctx).Create(progress).Error
	}

	// 既存レコードの主キーと作成日時を引き継いで上書き
	progress.ProgressID = existing.ProgressID
	progress.CreatedAt = existing.CreatedAt
	progress.UpdatedAt = time.Now()
	return tx.WithContext(ctx).Save(progress).Error
}

func (r *gormProgressRepository) ListCompletedSubtopicIDs(ctx context.Context, db *gorm.DB, userID, topicID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	result := db.WithContext(ctx).
		Model(&model.SubtopicProgress{}).
		Joins("JOIN subtopics ON subtopics.subtopic_id = subtopic_progress.subtopic_id AND subtopics.deleted_at IS NULL").
		Where("subtopic_progress.user_id = ? AND subtopics.topic_id = ? AND subtopic_progress.completed_practice = ?", userID, topicID, true).
		Order("subtopics.sort_order ASC").
		Pluck("subtopic_progress.subtopic_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}
