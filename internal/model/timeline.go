// internal/model/timeline.go
package model

// タイムラインステップの種別
const (
	StepTypeFlashcard = "flashcard"
	StepTypePractice  = "practice"
)

// TimelineStep は学習セッションのタイムラインを構成する1ステップです。
// Type が flashcard の場合は Index が、practice の場合は [Start, End) の
// 半開区間が有効になります。
type TimelineStep struct {
	Type  string `json:"type"` // flashcard | practice
	Index int    `json:"index,omitempty"`
	Start int    `json:"start,omitempty"`
	End   int    `json:"end,omitempty"`
}

// FlashcardStep はカード閲覧ステップを生成します
func FlashcardStep(index int) TimelineStep {
	return TimelineStep{Type: StepTypeFlashcard, Index: index}
}

// PracticeStep は直前に学習したカード群 [start, end) を対象とする
// 練習クイズステップを生成します
func PracticeStep(start, end int) TimelineStep {
	return TimelineStep{Type: StepTypePractice, Start: start, End: end}
}

func (s TimelineStep) IsFlashcard() bool {
	return s.Type == StepTypeFlashcard
}

func (s TimelineStep) IsPractice() bool {
	return s.Type == StepTypePractice
}
