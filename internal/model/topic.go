// internal/model/topic.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Topic は手話学習のトピック（単元）を表します
type Topic struct {
	TopicID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"topic_id"`
	Name                string         `gorm:"not null" json:"name"`
	HasSentenceBuilding bool           `gorm:"not null;default:false" json:"has_sentence_building"` // 文章組み立て練習の有無
	SortOrder           int            `gorm:"not null;default:0;index" json:"sort_order"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用

	// 関連 (Preload用)
	Subtopics []Subtopic `gorm:"foreignKey:TopicID;references:TopicID" json:"-"`
}

func (Topic) TableName() string {
	return "topics"
}

// Subtopic はトピック配下のサブトピック（1学習セッションの単位）を表します
type Subtopic struct {
	SubtopicID uuid.UUID      `gorm:"type:uuid;primaryKey" json:"subtopic_id"`
	TopicID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"topic_id"`
	Name       string         `gorm:"not null" json:"name"`
	SortOrder  int            `gorm:"not null;default:0;index" json:"sort_order"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Topic *Topic `gorm:"foreignKey:TopicID;references:TopicID" json:"-"`
}

func (Subtopic) TableName() string {
	return "subtopics"
}

// NextSubtopicResponse は「次のサブトピック」問い合わせのレスポンスDTO
type NextSubtopicResponse struct {
	HasNext          bool       `json:"has_next"`
	NextSubtopicID   *uuid.UUID `json:"next_subtopic_id,omitempty"`
	NextSubtopicName string     `json:"next_subtopic_name,omitempty"`
	TopicName        string     `json:"topic_name,omitempty"`
}

// CompletionStatusResponse はトピック内の全サブトピック完了状況のレスポンスDTO
type CompletionStatusResponse struct {
	AllSubtopicsCompleted bool        `json:"all_subtopics_completed"`
	TotalSubtopics        int         `json:"total_subtopics"`
	CompletedCount        int         `json:"completed_count"`
	CompletedSubtopicIDs  []uuid.UUID `json:"completed_subtopic_ids"`
}
