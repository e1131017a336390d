// internal/model/completion.go
package model

import "github.com/google/uuid"

// ナビゲーション先
const (
	NavTargetRetry            = "retry"
	NavTargetNextSubtopic     = "next-subtopic"
	NavTargetStartTest        = "start-test"
	NavTargetHome             = "home"
	NavTargetSentenceBuilding = "sentence-building"
)

// CompletionContext はサブトピック完了時点の状況をまとめた値オブジェクトです。
// バックエンドで取得した完了フラグを正とし、取得に失敗した場合のみ
// 呼び出し元から渡されたパラメータにフォールバックして構築されます。
type CompletionContext struct {
	SubtopicName          string     `json:"subtopic_name"`
	HasNextSubtopic       bool       `json:"has_next_subtopic"`
	HasSentenceBuilding   bool       `json:"has_sentence_building"`
	AllSubtopicsCompleted bool       `json:"all_subtopics_completed"`
	NextSubtopicID        *uuid.UUID `json:"next_subtopic_id,omitempty"`
	TopicID               *uuid.UUID `json:"topic_id,omitempty"`
}

// CompletionActions は完了画面で有効化されるアクションの集合です
type CompletionActions struct {
	Retry            bool   `json:"retry"`             // 常に有効
	SentenceBuilding bool   `json:"sentence_building"` // hasSentenceBuilding の場合のみ
	Next             bool   `json:"next"`              // hasNextSubtopic または allSubtopicsCompleted
	GoHome           bool   `json:"go_home"`           // 常に有効
	NextLabel        string `json:"next_label,omitempty"`
	Notice           string `json:"notice,omitempty"` // Next が無効な場合の説明
}

// CompletionParams は完了コンテキスト構築時に呼び出し元が持ち込む
// パラメータ (ナビゲーションパラメータ由来の推測値)
type CompletionParams struct {
	HasNextSubtopic       bool `json:"has_next_subtopic"`
	AllSubtopicsCompleted bool `json:"all_subtopics_completed"`
}

// NavigationIntent はページシェルに渡す遷移指示です。実際のルート変更は
// シェル側の責務で、コアは意図のみを表明します。
type NavigationIntent struct {
	Target string            `json:"target"` // retry | next-subtopic | start-test | home | sentence-building
	Params map[string]string `json:"params,omitempty"`
}

// NavigateRequest は完了画面での選択リクエストDTO。
// 推測値フィールドは任意で、完了状況の取得に失敗した場合のフォールバック。
type NavigateRequest struct {
	Choice                string `json:"choice" validate:"required,oneof=retry next sentence-building home"`
	HasNextSubtopic       bool   `json:"has_next_subtopic"`
	AllSubtopicsCompleted bool   `json:"all_subtopics_completed"`
}

// Params は推測値をフォールバックパラメータに詰め替えます
func (r *NavigateRequest) Params() CompletionParams {
	return CompletionParams{
		HasNextSubtopic:       r.HasNextSubtopic,
		AllSubtopicsCompleted: r.AllSubtopicsCompleted,
	}
}
