// internal/timeline/timeline_test.go
package timeline

import (
	"testing"

	"signlearn/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Example(t *testing.T) {
	// totalCards=5, practiceInterval=3 の代表例
	steps := Build(5, 3)

	want := []model.TimelineStep{
		model.FlashcardStep(0),
		model.FlashcardStep(1),
		model.FlashcardStep(2),
		model.PracticeStep(0, 3),
		model.FlashcardStep(3),
		model.FlashcardStep(4),
		model.PracticeStep(3, 5),
	}
	assert.Equal(t, want, steps)
}

func TestBuild_EdgeCases(t *testing.T) {
	tests := []struct {
		name             string
		totalCards       int
		practiceInterval int
		wantLen          int
	}{
		{name: "カード0枚なら空タイムライン", totalCards: 0, practiceInterval: 3, wantLen: 0},
		{name: "負のカード数も空タイムライン", totalCards: -1, practiceInterval: 3, wantLen: 0},
		{name: "カード1枚", totalCards: 1, practiceInterval: 3, wantLen: 2},
		{name: "バッチ境界ちょうど (重複練習ステップを作らない)", totalCards: 6, practiceInterval: 3, wantLen: 8},
		{name: "間隔1はカードごとに練習", totalCards: 3, practiceInterval: 1, wantLen: 6},
		{name: "間隔0は1として扱う", totalCards: 2, practiceInterval: 0, wantLen: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := Build(tt.totalCards, tt.practiceInterval)
			assert.Len(t, steps, tt.wantLen)
			assertCoverage(t, steps, tt.totalCards)
		})
	}
}

func TestBuild_CoverageProperty(t *testing.T) {
	// 全インデックスがちょうど1つの閲覧ステップに現れ、練習区間が
	// [0, totalCards) を隙間も重複もなく覆うこと
	for totalCards := 0; totalCards <= 40; totalCards++ {
		for interval := 1; interval <= 12; interval++ {
			steps := Build(totalCards, interval)
			assertCoverage(t, steps, totalCards)
		}
	}
}

func assertCoverage(t *testing.T, steps []model.TimelineStep, totalCards int) {
	t.Helper()

	seen := make(map[int]int)
	practicedUpTo := 0
	lastIndex := -1
	for _, s := range steps {
		switch s.Type {
		case model.StepTypeFlashcard:
			seen[s.Index]++
			// インデックスは単調非減少
			require.Greater(t, s.Index, lastIndex, "flashcard indices must be increasing")
			lastIndex = s.Index
			// 練習ステップは学習済みのカードのみを対象にする
			require.GreaterOrEqual(t, s.Index, practicedUpTo)
		case model.StepTypePractice:
			// 練習区間は直前の未練習区間とぴったり一致する (隙間・重複なし)
			require.Equal(t, practicedUpTo, s.Start, "practice range must start at first unpracticed index")
			require.Greater(t, s.End, s.Start, "practice range must be non-empty")
			practicedUpTo = s.End
		default:
			t.Fatalf("unknown step type: %q", s.Type)
		}
	}

	if totalCards <= 0 {
		assert.Empty(t, steps)
		return
	}
	assert.Equal(t, totalCards, practicedUpTo, "final practice step must end at totalCards")
	assert.Len(t, seen, totalCards)
	for i := 0; i < totalCards; i++ {
		assert.Equal(t, 1, seen[i], "card %d must appear in exactly one flashcard step", i)
	}
}
