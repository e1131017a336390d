// internal/model/session.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
)

// セッション状態
const (
	SessionStateViewing   = "viewing_flashcard"
	SessionStateAnswering = "answering_practice"
	SessionStateCompleted = "completed"
)

// StartSessionRequest はセッション開始APIのリクエストDTO
type StartSessionRequest struct {
	PracticeInterval int  `json:"practice_interval,omitempty" validate:"omitempty,min=1,max=50"`
	Resume           bool `json:"resume,omitempty"` // 保存済み進捗からの再開を試みる
}

// SessionStateResponse はセッション状態のスナップショットDTO
type SessionStateResponse struct {
	SessionID      uuid.UUID          `json:"session_id"`
	SubtopicID     uuid.UUID          `json:"subtopic_id"`
	SubtopicName   string             `json:"subtopic_name"`
	State          string             `json:"state"`
	Timeline       []TimelineStep     `json:"timeline"`
	Position       int                `json:"position"`
	TotalSteps     int                `json:"total_steps"`
	Card           *Flashcard         `json:"card,omitempty"`     // カード閲覧中のみ
	Flipped        bool               `json:"flipped"`            // カード裏面表示中か
	Question       *PracticeQuestion  `json:"question,omitempty"` // 練習中のみ (現在の設問)
	QuestionNumber int                `json:"question_number,omitempty"`
	QuestionTotal  int                `json:"question_total,omitempty"`
	CompletedCards []int              `json:"completed_cards"`
	StartedAt      time.Time          `json:"started_at"`
}

// CompleteSessionRequest はセッション完了APIのリクエストDTO。ボディは省略
// 可能で、各フィールドはページシェルがナビゲーションパラメータから引き
// 継いだ推測値。バックエンドの完了状況取得に失敗した場合のみ参照される。
type CompleteSessionRequest struct {
	HasNextSubtopic       bool `json:"has_next_subtopic"`
	AllSubtopicsCompleted bool `json:"all_subtopics_completed"`
}

// Params は推測値をフォールバックパラメータに詰め替えます
func (r *CompleteSessionRequest) Params() CompletionParams {
	return CompletionParams{
		HasNextSubtopic:       r.HasNextSubtopic,
		AllSubtopicsCompleted: r.AllSubtopicsCompleted,
	}
}

// CompleteSessionResponse はセッション完了APIのレスポンスDTO
type CompleteSessionResponse struct {
	Context CompletionContext `json:"context"`
	Actions CompletionActions `json:"actions"`
}
