// internal/model/flashcard.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// フラッシュカード表面のメディア種別
const (
	FrontTypeVideo = "video"
	FrontTypeImage = "image"
)

// Flashcard は手話のフラッシュカード1枚を表します。
// 表面は手話の動画または画像、裏面は対応する単語と説明です。
type Flashcard struct {
	CardID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"card_id"`
	SubtopicID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_subtopic_ordinal,unique" json:"subtopic_id"`
	Ordinal         int            `gorm:"not null;index:idx_subtopic_ordinal,unique" json:"ordinal"` // サブトピック内の表示順
	FrontType       string         `gorm:"not null" json:"front_type"`                                // video | image
	FrontContent    string         `gorm:"not null" json:"front_content"`                             // メディアURL
	FrontTitle      string         `json:"front_title"`
	BackWord        string         `gorm:"not null" json:"back_word"`
	BackDescription string         `json:"back_description"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Flashcard) TableName() string {
	return "flashcards"
}

// SentenceQuestion は文章組み立て練習（単語の並べ替え）の設問を表します
type SentenceQuestion struct {
	QuestionID uuid.UUID      `gorm:"type:uuid;primaryKey" json:"question_id"`
	TopicID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"topic_id"`
	VideoURL   string         `json:"video_url"`
	Words      []string       `gorm:"serializer:json;type:text" json:"words"` // 並べ替え候補の単語
	Answer     string         `gorm:"not null" json:"answer"`                 // 正しい語順の文
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (SentenceQuestion) TableName() string {
	return "sentence_questions"
}
