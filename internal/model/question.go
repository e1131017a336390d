// internal/model/question.go
package model

import "github.com/google/uuid"

// QuestionOption は多肢選択問題の選択肢
type QuestionOption struct {
	Text string `json:"text"`
}

// PracticeQuestion は練習クイズの設問です。出題元カードのメディアを見せて
// 対応する単語を4択から選ばせます。セッション中に都度生成され、永続化は
// されません。
type PracticeQuestion struct {
	QuestionID    uuid.UUID        `json:"question_id"` // 出題元カードの CardID
	VideoURL      string           `json:"video_url,omitempty"`
	ImageURL      string           `json:"image_url,omitempty"`
	Prompt        string           `json:"question"`
	Options       []QuestionOption `json:"options"` // 正解はちょうど1つ
	CorrectAnswer string           `json:"correct_answer"`
}

// AnswerRequest は練習問題への回答リクエストDTO
type AnswerRequest struct {
	QuestionID uuid.UUID `json:"question_id" validate:"required"`
	OptionText string    `json:"option_text" validate:"required"`
}

// AnswerResponse は回答結果のフィードバックDTO。
// 不正解の場合は正解を開示し、同じ問題に留まる (再挑戦必須)。
// グループ最後の問題に正解した場合は AutoAdvanceInMs 経過後に
// 次のステップへ自動遷移済みであることを示す。
type AnswerResponse struct {
	Correct         bool   `json:"correct"`
	CorrectAnswer   string `json:"correct_answer"`
	LastInGroup     bool   `json:"last_in_group"`
	AutoAdvanceInMs int    `json:"auto_advance_in_ms,omitempty"`
	GroupCompleted  bool   `json:"group_completed"`
}
