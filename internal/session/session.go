// internal/session/session.go
package session

import (
	"fmt"
	"sync"
	"time"

	"signlearn/internal/model"

	"github.com/google/uuid"
)

// QuestionBuilder は練習グループのカードから設問を生成する関数です。
// practice.Builder の Build をそのまま渡せます。
type QuestionBuilder func(practiceCards, allCards []model.Flashcard) []model.PracticeQuestion

// Config はセッション生成時の設定です
type Config struct {
	UserID        uuid.UUID
	SubtopicID    uuid.UUID
	TopicID       uuid.UUID
	SubtopicName  string
	Cards         []model.Flashcard
	Timeline      []model.TimelineStep
	BuildQuestion QuestionBuilder
	AutoAdvanceMs int                     // 最終問題正解後の自動遷移までの遅延
	Resume        *model.SubtopicProgress // 保存済み進捗からの再開 (任意)
}

// Session は1人の学習者が1つのサブトピックを学習するあいだの状態機械です。
// タイムライン上の現在位置・カードの反転状態・練習グループの設問と回答の
// 進み具合を保持します。すべてのメソッドは内部ミューテックスで直列化され、
// 複数goroutineから安全に呼べます。
//
// 状態遷移:
//
//	viewing_flashcard <-> answering_practice -> completed
//
// カード閲覧中の Flip はUI上の反転のみでタイムラインは進めません。
// 練習中は現在の設問に正解するまで先に進めません (誤答スキップなし)。
type Session struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	SubtopicID   uuid.UUID
	TopicID      uuid.UUID
	SubtopicName string

	mu            sync.Mutex
	cards         []model.Flashcard
	timeline      []model.TimelineStep
	pos           int
	state         string
	flipped       bool
	questions     []model.PracticeQuestion // 現在の練習グループの設問 (進入時に一度だけ生成)
	qIndex        int
	seenCards     map[int]bool
	donePractices []string
	buildQuestion QuestionBuilder
	autoAdvanceMs int
	startedAt     time.Time
	lastAccess    time.Time
}

// New は読み込み済みのカードとタイムラインからセッションを生成します。
// cfg.Resume が与えられた場合は保存済みの到達位置から再開します
// (範囲外の位置は先頭に丸める)。
func New(cfg Config) *Session {
	now := time.Now()
	s := &Session{
		ID:            uuid.New(),
		UserID:        cfg.UserID,
		SubtopicID:    cfg.SubtopicID,
		TopicID:       cfg.TopicID,
		SubtopicName:  cfg.SubtopicName,
		cards:         cfg.Cards,
		timeline:      cfg.Timeline,
		state:         model.SessionStateViewing,
		seenCards:     make(map[int]bool),
		donePractices: []string{},
		buildQuestion: cfg.BuildQuestion,
		autoAdvanceMs: cfg.AutoAdvanceMs,
		startedAt:     now,
		lastAccess:    now,
	}

	if cfg.Resume != nil {
		for _, idx := range cfg.Resume.CompletedCards {
			if idx >= 0 && idx < len(cfg.Cards) {
				s.seenCards[idx] = true
			}
		}
		s.donePractices = append(s.donePractices, cfg.Resume.CompletedPractices...)
		if cfg.Resume.LastPosition > 0 && cfg.Resume.LastPosition < len(cfg.Timeline) {
			s.pos = cfg.Resume.LastPosition
		}
	}

	s.enterStep()
	return s
}

// Flip はカードの表裏を切り替えます。タイムラインは進めません。
func (s *Session) Flip() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.state != model.SessionStateViewing {
		return model.ErrInvalidState
	}
	s.flipped = !s.flipped
	return nil
}

// Next は次のタイムラインステップへ進みます。最終ステップを越えると
// セッションは完了状態になります。練習ステップ進入中 (未回答の設問が
// 残っている状態) の Next は許可されません。
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.state == model.SessionStateCompleted {
		return model.ErrInvalidState
	}
	if s.state == model.SessionStateAnswering {
		// 練習は正解して抜けるのが唯一の出口
		return model.ErrInvalidState
	}
	s.pos++
	s.enterStep()
	return nil
}

// Prev は前のタイムラインステップへ戻ります。先頭では何もしません。
func (s *Session) Prev() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.state == model.SessionStateCompleted {
		return model.ErrInvalidState
	}
	if s.pos == 0 {
		return nil
	}
	s.pos--
	// 戻った先が練習ステップならさらに手前のカードまで戻る。
	// 完了済みの練習を再度強制しないため。
	for s.pos > 0 && s.timeline[s.pos].IsPractice() {
		s.pos--
	}
	s.enterStep()
	return nil
}

// Answer は現在の練習設問への回答を判定します。
// 不正解の場合は正解を開示しつつ同じ設問に留まります (再挑戦必須)。
// 正解した場合は次の設問へ進み、グループ最終問だった場合は次の
// タイムラインステップへ自動遷移します (レスポンスの AutoAdvanceInMs は
// クライアントがフィードバック表示に使う遅延ヒント)。
func (s *Session) Answer(questionID uuid.UUID, optionText string) (*model.AnswerResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.state != model.SessionStateAnswering {
		return nil, model.ErrInvalidState
	}
	q := s.questions[s.qIndex]
	if q.QuestionID != questionID {
		return nil, model.NewAppError("QUESTION_MISMATCH", "現在の設問ではありません。", "question_id", model.ErrInvalidInput)
	}

	last := s.qIndex == len(s.questions)-1
	if optionText != q.CorrectAnswer {
		return &model.AnswerResponse{
			Correct:       false,
			CorrectAnswer: q.CorrectAnswer,
			LastInGroup:   last,
		}, nil
	}

	resp := &model.AnswerResponse{
		Correct:       true,
		CorrectAnswer: q.CorrectAnswer,
		LastInGroup:   last,
	}
	if last {
		step := s.timeline[s.pos]
		s.donePractices = append(s.donePractices, practiceKey(step))
		resp.GroupCompleted = true
		resp.AutoAdvanceInMs = s.autoAdvanceMs
		s.pos++
		s.enterStep()
	} else {
		s.qIndex++
	}
	return resp, nil
}

// Completed はセッションが完了状態かどうかを返します
func (s *Session) Completed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == model.SessionStateCompleted
}

// Snapshot は現在状態のスナップショットを返します
func (s *Session) Snapshot() *model.SessionStateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	resp := &model.SessionStateResponse{
		SessionID:      s.ID,
		SubtopicID:     s.SubtopicID,
		SubtopicName:   s.SubtopicName,
		State:          s.state,
		Timeline:       s.timeline,
		Position:       s.pos,
		TotalSteps:     len(s.timeline),
		Flipped:        s.flipped,
		CompletedCards: s.completedCardsLocked(),
		StartedAt:      s.startedAt,
	}

	switch s.state {
	case model.SessionStateViewing:
		idx := s.timeline[s.pos].Index
		card := s.cards[idx]
		resp.Card = &card
	case model.SessionStateAnswering:
		q := s.questions[s.qIndex]
		resp.Question = &q
		resp.QuestionNumber = s.qIndex + 1
		resp.QuestionTotal = len(s.questions)
	}
	return resp
}

// Progress はこのセッションの進捗を永続化用レコードとして切り出します。
// 保存そのものは呼び出し側 (サービス層) の責務です。
func (s *Session) Progress() *model.SubtopicProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed := s.state == model.SessionStateCompleted
	pos := s.pos
	if pos > len(s.timeline) {
		pos = len(s.timeline)
	}
	return &model.SubtopicProgress{
		UserID:             s.UserID,
		SubtopicID:         s.SubtopicID,
		CompletedCards:     s.completedCardsLocked(),
		CompletedPractice:  completed,
		CompletedPractices: append([]string{}, s.donePractices...),
		LastPosition:       pos,
	}
}

// LastAccess はセッションが最後に操作された時刻を返します (TTL掃除用)
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

// enterStep は現在位置のステップに応じて状態を整えます。
// カード閲覧ステップなら閲覧済みとして記録し、練習ステップなら設問を
// 生成します。完了済みの練習グループと設問が0件の練習グループは即座に
// スキップします。
// タイムラインの終端を越えていれば完了状態に遷移します。
// 呼び出し側でロック取得済みであること。
func (s *Session) enterStep() {
	s.flipped = false
	s.questions = nil
	s.qIndex = 0

	for {
		if s.pos >= len(s.timeline) {
			s.pos = len(s.timeline)
			s.state = model.SessionStateCompleted
			return
		}
		step := s.timeline[s.pos]
		if step.IsFlashcard() {
			s.seenCards[step.Index] = true
			s.state = model.SessionStateViewing
			return
		}

		key := practiceKey(step)
		if s.practiceDoneLocked(key) {
			// 完了済みの練習グループは再出題しない (Prevで戻ったあとの
			// Nextや再開時にそのまま通過する)
			s.pos++
			continue
		}
		group := s.cards[step.Start:step.End]
		qs := s.buildQuestion(group, s.cards)
		if len(qs) == 0 {
			// 設問を作れないグループは完了扱いで即スキップ
			s.donePractices = append(s.donePractices, key)
			s.pos++
			continue
		}
		s.questions = qs
		s.state = model.SessionStateAnswering
		return
	}
}

func (s *Session) practiceDoneLocked(key string) bool {
	for _, k := range s.donePractices {
		if k == key {
			return true
		}
	}
	return false
}

func (s *Session) completedCardsLocked() []int {
	indices := make([]int, 0, len(s.seenCards))
	for i := 0; i < len(s.cards); i++ {
		if s.seenCards[i] {
			indices = append(indices, i)
		}
	}
	return indices
}

func (s *Session) touch() {
	s.lastAccess = time.Now()
}

func practiceKey(step model.TimelineStep) string {
	return fmt.Sprintf("%d-%d", step.Start, step.End)
}
