// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// 完了画面でのユーザー選択
const (
	UserChoiceContinue = "continue"
	UserChoiceReview   = "review"
)

// SubtopicProgress はユーザーごとのサブトピック学習進捗を表します。
// (user_id, subtopic_id) の組につき1レコードで、保存のたびに上書きされます
// (追記ではない)。削除経路は持ちません。
type SubtopicProgress struct {
	ProgressID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index:idx_user_subtopic,unique"` // 複合ユニークインデックスの一部
	SubtopicID         uuid.UUID `gorm:"type:uuid;not null;index:idx_user_subtopic,unique"` // 複合ユニークインデックスの一部
	CompletedCards     []int     `gorm:"serializer:json;type:text"`                         // 閲覧済みカードのインデックス
	CompletedPractice  bool      `gorm:"not null;default:false"`
	CompletedPractices []string  `gorm:"serializer:json;type:text"` // 完了した練習グループ ("start-end" 形式)
	UserChoice         string    // continue | review | 空
	LastPosition       int       `gorm:"not null;default:0"` // タイムライン上の最終到達位置 (再開用)
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// 関連 (Preload用)
	Subtopic *Subtopic `gorm:"foreignKey:SubtopicID;references:SubtopicID" json:"-"`
}

func (SubtopicProgress) TableName() string {
	return "subtopic_progress"
}

// SaveProgressRequest は進捗保存APIのリクエストDTO
type SaveProgressRequest struct {
	CompletedCards     []int    `json:"completed_cards" validate:"required"`
	CompletedPractice  *bool    `json:"completed_practice" validate:"required"`
	CompletedPractices []string `json:"completed_practices,omitempty"`
	UserChoice         string   `json:"user_choice,omitempty" validate:"omitempty,oneof=continue review"`
	LastPosition       int      `json:"last_position,omitempty" validate:"omitempty,min=0"`
}

// ProgressResponse は進捗取得・保存APIのレスポンスDTO
type ProgressResponse struct {
	Success            bool       `json:"success"`
	SubtopicID         uuid.UUID  `json:"subtopic_id"`
	CompletedCards     []int      `json:"completed_cards"`
	CompletedPractice  bool       `json:"completed_practice"`
	CompletedPractices []string   `json:"completed_practices"`
	UserChoice         string     `json:"user_choice,omitempty"`
	LastPosition       int        `json:"last_position"`
	ProgressPercentage int        `json:"progress_percentage"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}
