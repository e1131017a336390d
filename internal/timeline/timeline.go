// internal/timeline/timeline.go
package timeline

import "signlearn/internal/model"

// Build はカード総数と練習間隔から学習タイムラインを生成します。
// カードを practiceInterval 枚ずつのバッチで歩き、各バッチの閲覧ステップの
// 直後にそのバッチを対象とする練習ステップを1つ挟みます。
//
// 末尾の取りこぼし判定は「最後に練習対象となったインデックス」を明示的に
// 追跡して行います。最後のステップ種別だけを見る判定では、カード総数が
// バッチ境界に一致した場合に練習ステップを重複させる恐れがあるためです。
//
// 純粋関数であり、同じ入力に対して常に同じ結果を返します。
func Build(totalCards, practiceInterval int) []model.TimelineStep {
	steps := []model.TimelineStep{}
	if totalCards <= 0 {
		return steps
	}
	if practiceInterval < 1 {
		practiceInterval = 1
	}

	practicedUpTo := 0 // [0, practicedUpTo) は練習ステップで網羅済み
	for batchStart := 0; batchStart < totalCards; batchStart += practiceInterval {
		batchEnd := batchStart + practiceInterval
		if batchEnd > totalCards {
			batchEnd = totalCards
		}
		for i := batchStart; i < batchEnd; i++ {
			steps = append(steps, model.FlashcardStep(i))
		}
		steps = append(steps, model.PracticeStep(batchStart, batchEnd))
		practicedUpTo = batchEnd
	}

	// 安全網: 未練習のカードが残っていれば末尾に練習ステップを追加する。
	// 上のループが末端まで網羅するため通常は到達しない。
	if practicedUpTo < totalCards {
		steps = append(steps, model.PracticeStep(practicedUpTo, totalCards))
	}

	return steps
}
