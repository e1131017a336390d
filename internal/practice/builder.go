// internal/practice/builder.go
package practice

import (
	"math/rand"

	"signlearn/internal/model"
)

// Builder は練習グループのカードから多肢選択問題を組み立てます。
// 乱数源を注入できるため、テストではシードを固定して出題順・選択肢順を
// 再現できます。セッション中は生成結果をセッション側が保持し、再描画の
// たびに再生成はしません (生成はステップ進入時の1回)。
type Builder struct {
	rng *rand.Rand
}

// NewBuilder は指定シードの乱数源を持つ Builder を生成します
func NewBuilder(seed int64) *Builder {
	return &Builder{rng: rand.New(rand.NewSource(seed))}
}

// NewBuilderFromSource は外部の乱数源をそのまま使う Builder を生成します
func NewBuilderFromSource(rng *rand.Rand) *Builder {
	return &Builder{rng: rng}
}

// Build は practiceCards (直前に学習したグループ) の各カードにつき1問を
// 生成します。誤答選択肢はまずグループ内から、足りなければ allCards
// (全カードプール) から補充します。プール全体でも3つ確保できない場合は
// 選択肢が4未満の問題になりますが、これは小さなサブトピックで起こり得る
// 正常な縮退ケースです。
//
// 戻り値の問題配列はシャッフル済みです。practiceCards が空なら空配列を
// 返します (エラーにはしない)。
func (b *Builder) Build(practiceCards, allCards []model.Flashcard) []model.PracticeQuestion {
	questions := make([]model.PracticeQuestion, 0, len(practiceCards))

	for _, card := range practiceCards {
		questions = append(questions, b.buildQuestion(card, practiceCards, allCards))
	}

	b.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	return questions
}

func (b *Builder) buildQuestion(card model.Flashcard, practiceCards, allCards []model.Flashcard) model.PracticeQuestion {
	correct := card.BackWord

	// 誤答候補プール。単語の重複を除外して選択肢のテキストが被らないようにする
	used := map[string]bool{correct: true}
	pool := make([]string, 0, len(allCards))
	appendCandidates := func(cards []model.Flashcard) {
		for _, c := range cards {
			if c.CardID == card.CardID || used[c.BackWord] {
				continue
			}
			used[c.BackWord] = true
			pool = append(pool, c.BackWord)
		}
	}
	appendCandidates(practiceCards)
	if len(pool) < distractorCount {
		appendCandidates(allCards)
	}

	// プールから3つを非復元抽出。足りなければある分だけ使う
	b.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	n := distractorCount
	if len(pool) < n {
		n = len(pool)
	}

	options := make([]model.QuestionOption, 0, n+1)
	options = append(options, model.QuestionOption{Text: correct})
	for _, d := range pool[:n] {
		options = append(options, model.QuestionOption{Text: d})
	}
	b.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	q := model.PracticeQuestion{
		QuestionID:    card.CardID,
		Prompt:        prompt(card),
		Options:       options,
		CorrectAnswer: correct,
	}
	switch card.FrontType {
	case model.FrontTypeVideo:
		q.VideoURL = card.FrontContent
	case model.FrontTypeImage:
		q.ImageURL = card.FrontContent
	}
	return q
}

const distractorCount = 3

func prompt(card model.Flashcard) string {
	if card.FrontType == model.FrontTypeImage {
		return "この画像の手話はどの単語ですか？"
	}
	return "この手話の動画はどの単語ですか？"
}
