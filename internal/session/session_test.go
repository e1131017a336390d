// internal/session/session_test.go
package session

import (
	"testing"

	"signlearn/internal/model"
	"signlearn/internal/practice"
	"signlearn/internal/timeline"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCards(n int) []model.Flashcard {
	words := []string{"犬", "猫", "鳥", "魚", "馬", "牛", "羊", "兎", "熊", "鹿"}
	cards := make([]model.Flashcard, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, model.Flashcard{
			CardID:       uuid.New(),
			Ordinal:      i,
			FrontType:    model.FrontTypeVideo,
			FrontContent: "https://cdn.example.com/signs/" + words[i%len(words)] + ".mp4",
			BackWord:     words[i%len(words)],
		})
	}
	return cards
}

func newTestSession(t *testing.T, cardCount, interval int, resume *model.SubtopicProgress) *Session {
	t.Helper()
	cards := testCards(cardCount)
	builder := practice.NewBuilder(1) // シード固定で再現可能に
	return New(Config{
		UserID:        uuid.New(),
		SubtopicID:    uuid.New(),
		TopicID:       uuid.New(),
		SubtopicName:  "あいさつ",
		Cards:         cards,
		Timeline:      timeline.Build(cardCount, interval),
		BuildQuestion: builder.Build,
		AutoAdvanceMs: 1000,
		Resume:        resume,
	})
}

// answerCurrent は現在の設問に正解を回答するヘルパー
func answerCurrent(t *testing.T, s *Session) *model.AnswerResponse {
	t.Helper()
	snap := s.Snapshot()
	require.NotNil(t, snap.Question)
	resp, err := s.Answer(snap.Question.QuestionID, snap.Question.CorrectAnswer)
	require.NoError(t, err)
	require.True(t, resp.Correct)
	return resp
}

func TestSession_FlipDoesNotAdvance(t *testing.T) {
	s := newTestSession(t, 5, 3, nil)

	snap := s.Snapshot()
	assert.Equal(t, model.SessionStateViewing, snap.State)
	assert.Equal(t, 0, snap.Position)
	assert.False(t, snap.Flipped)

	require.NoError(t, s.Flip())
	snap = s.Snapshot()
	assert.True(t, snap.Flipped)
	assert.Equal(t, 0, snap.Position, "flip must not move the timeline")

	require.NoError(t, s.Flip())
	assert.False(t, s.Snapshot().Flipped)
}

func TestSession_NextResetsFlipState(t *testing.T) {
	s := newTestSession(t, 5, 3, nil)

	require.NoError(t, s.Flip())
	require.NoError(t, s.Next())
	snap := s.Snapshot()
	assert.Equal(t, 1, snap.Position)
	assert.False(t, snap.Flipped)
}

func TestSession_PrevClampsAtStart(t *testing.T) {
	s := newTestSession(t, 5, 3, nil)

	require.NoError(t, s.Prev())
	assert.Equal(t, 0, s.Snapshot().Position)

	require.NoError(t, s.Next())
	require.NoError(t, s.Prev())
	assert.Equal(t, 0, s.Snapshot().Position)
}

func TestSession_EnteringPracticeBuildsQuestionsOnce(t *testing.T) {
	s := newTestSession(t, 5, 3, nil)

	// カード3枚を見ると練習ステップに入る
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())

	snap := s.Snapshot()
	require.Equal(t, model.SessionStateAnswering, snap.State)
	require.NotNil(t, snap.Question)
	assert.Equal(t, 1, snap.QuestionNumber)
	assert.Equal(t, 3, snap.QuestionTotal)

	// 別スナップショットでも同じ設問 (再描画で再生成しない)
	snap2 := s.Snapshot()
	assert.Equal(t, snap.Question, snap2.Question)
}

func TestSession_RetryUntilCorrect(t *testing.T) {
	s := newTestSession(t, 5, 3, nil)
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())

	snap := s.Snapshot()
	require.Equal(t, model.SessionStateAnswering, snap.State)
	q := snap.Question

	// 誤答しても設問は進まず、正解が開示される
	resp, err := s.Answer(q.QuestionID, q.CorrectAnswer+"_wrong")
	require.NoError(t, err)
	assert.False(t, resp.Correct)
	assert.Equal(t, q.CorrectAnswer, resp.CorrectAnswer)

	after := s.Snapshot()
	assert.Equal(t, q.QuestionID, after.Question.QuestionID, "wrong answer must not advance")
	assert.Equal(t, snap.Position, after.Position)

	// 練習中は Next で逃げられない
	assert.ErrorIs(t, s.Next(), model.ErrInvalidState)

	// 正解すると次の設問へ
	resp, err = s.Answer(q.QuestionID, q.CorrectAnswer)
	require.NoError(t, err)
	assert.True(t, resp.Correct)
	assert.Equal(t, 2, s.Snapshot().QuestionNumber)
}

func TestSession_LastQuestionAutoAdvances(t *testing.T) {
	s := newTestSession(t, 5, 3, nil)
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())

	// 3問中2問に正解
	resp := answerCurrent(t, s)
	assert.False(t, resp.GroupCompleted)
	assert.Zero(t, resp.AutoAdvanceInMs)
	resp = answerCurrent(t, s)
	assert.False(t, resp.GroupCompleted)

	// 最終問に正解すると「続ける」クリックなしで次ステップへ遷移済み
	resp = answerCurrent(t, s)
	assert.True(t, resp.LastInGroup)
	assert.True(t, resp.GroupCompleted)
	assert.Equal(t, 1000, resp.AutoAdvanceInMs)

	snap := s.Snapshot()
	assert.Equal(t, model.SessionStateViewing, snap.State)
	assert.Equal(t, 4, snap.Position) // practice(0,3) の次は flashcard(3)
}

func TestSession_AnswerWrongQuestionID(t *testing.T) {
	s := newTestSession(t, 5, 3, nil)
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())

	_, err := s.Answer(uuid.New(), "whatever")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestSession_CompletesAfterFinalStep(t *testing.T) {
	s := newTestSession(t, 5, 3, nil)

	// flashcard(0..2) → practice(0,3) → flashcard(3..4) → practice(3,5)
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())
	answerCurrent(t, s)
	answerCurrent(t, s)
	answerCurrent(t, s) // 自動で flashcard(3) へ
	require.NoError(t, s.Next())
	require.NoError(t, s.Next()) // practice(3,5) へ
	answerCurrent(t, s)
	answerCurrent(t, s) // 最終グループ完了 → セッション完了

	assert.True(t, s.Completed())
	snap := s.Snapshot()
	assert.Equal(t, model.SessionStateCompleted, snap.State)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, snap.CompletedCards)

	// 完了後の進捗レコード
	prog := s.Progress()
	assert.True(t, prog.CompletedPractice)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, prog.CompletedCards)
	assert.ElementsMatch(t, []string{"0-3", "3-5"}, prog.CompletedPractices)

	// 完了後の操作は拒否される
	assert.ErrorIs(t, s.Next(), model.ErrInvalidState)
	assert.ErrorIs(t, s.Flip(), model.ErrInvalidState)
}

func TestSession_CompletedPracticeIsNotRevisited(t *testing.T) {
	s := newTestSession(t, 5, 3, nil)
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())
	answerCurrent(t, s)
	answerCurrent(t, s)
	answerCurrent(t, s) // practice(0,3) 完了 → flashcard(3) へ

	// 戻ってから再び進んでも、完了済みグループのクイズは再出題されない
	require.NoError(t, s.Prev())
	assert.Equal(t, 2, s.Snapshot().Position)
	require.NoError(t, s.Next())

	snap := s.Snapshot()
	assert.Equal(t, model.SessionStateViewing, snap.State)
	assert.Equal(t, 4, snap.Position)

	// 残りを完了しても練習キーは重複しない
	require.NoError(t, s.Next())
	require.NoError(t, s.Next())
	answerCurrent(t, s)
	answerCurrent(t, s)
	require.True(t, s.Completed())
	assert.ElementsMatch(t, []string{"0-3", "3-5"}, s.Progress().CompletedPractices)
}

func TestSession_ResumeSkipsCompletedPractice(t *testing.T) {
	// 保存位置が完了済みの練習ステップを指していても、再開時は次のカードへ
	resume := &model.SubtopicProgress{
		CompletedCards:     []int{0, 1, 2},
		CompletedPractices: []string{"0-3"},
		LastPosition:       3, // practice(0,3)
	}
	s := newTestSession(t, 5, 3, resume)

	snap := s.Snapshot()
	assert.Equal(t, model.SessionStateViewing, snap.State)
	assert.Equal(t, 4, snap.Position)
	assert.ElementsMatch(t, []string{"0-3"}, s.Progress().CompletedPractices)
}

func TestSession_EmptyQuestionGroupIsSkipped(t *testing.T) {
	cards := testCards(2)
	noQuestions := func(group, all []model.Flashcard) []model.PracticeQuestion {
		return nil
	}
	s := New(Config{
		UserID:        uuid.New(),
		SubtopicID:    uuid.New(),
		SubtopicName:  "空の練習",
		Cards:         cards,
		Timeline:      timeline.Build(2, 2),
		BuildQuestion: noQuestions,
		AutoAdvanceMs: 1000,
	})

	require.NoError(t, s.Next())
	// practice(0,2) は設問0件なので即スキップされ、そのまま完了する
	require.NoError(t, s.Next())
	assert.True(t, s.Completed())
	assert.ElementsMatch(t, []string{"0-2"}, s.Progress().CompletedPractices)
}

func TestSession_EmptyTimelineCompletesImmediately(t *testing.T) {
	builder := practice.NewBuilder(1)
	s := New(Config{
		UserID:        uuid.New(),
		SubtopicID:    uuid.New(),
		Cards:         nil,
		Timeline:      timeline.Build(0, 3),
		BuildQuestion: builder.Build,
	})
	assert.True(t, s.Completed())
}

func TestSession_ResumeFromSavedProgress(t *testing.T) {
	resume := &model.SubtopicProgress{
		CompletedCards:     []int{0, 1, 2},
		CompletedPractices: []string{"0-3"},
		LastPosition:       4, // flashcard(3)
	}
	s := newTestSession(t, 5, 3, resume)

	snap := s.Snapshot()
	assert.Equal(t, 4, snap.Position)
	require.NotNil(t, snap.Card)
	assert.Equal(t, 3, snap.Card.Ordinal)
	// 再開時も既読カードは保持される
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, snap.CompletedCards)
}

func TestSession_ResumeIgnoresOutOfRangePosition(t *testing.T) {
	resume := &model.SubtopicProgress{LastPosition: 99}
	s := newTestSession(t, 5, 3, resume)
	assert.Equal(t, 0, s.Snapshot().Position)
}
