//go:generate mockery --name SessionService --output ./mocks --outpkg mocks --case=underscore
// internal/service/session_service.go
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"signlearn/internal/config"
	"signlearn/internal/middleware"
	"signlearn/internal/model"
	"signlearn/internal/practice"
	"signlearn/internal/repository"
	"signlearn/internal/session"
	"signlearn/internal/timeline"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ナビゲーション方向
const (
	DirectionNext = "next"
	DirectionPrev = "previous"
)

// SessionService は学習セッションのライフサイクルを司ります。
// セッションの開始 (必要なら保存済み進捗からの再開)・ステップ操作・回答
// 判定・完了時の進捗永続化と完了コンテキストの構築を行います。
type SessionService interface {
	StartSession(ctx context.Context, userID, subtopicID uuid.UUID, req *model.StartSessionRequest) (*model.SessionStateResponse, error)
	GetState(ctx context.Context, userID, sessionID uuid.UUID) (*model.SessionStateResponse, error)
	Flip(ctx context.Context, userID, sessionID uuid.UUID) (*model.SessionStateResponse, error)
	Navigate(ctx context.Context, userID, sessionID uuid.UUID, direction string) (*model.SessionStateResponse, error)
	Answer(ctx context.Context, userID, sessionID uuid.UUID, req *model.AnswerRequest) (*model.AnswerResponse, error)
	Complete(ctx context.Context, userID, sessionID uuid.UUID, params model.CompletionParams) (*model.CompleteSessionResponse, error)
	Choose(ctx context.Context, userID, sessionID uuid.UUID, choice string, params model.CompletionParams) (*model.NavigationIntent, error)
}

type sessionService struct {
	db          *gorm.DB
	contentRepo repository.ContentRepository
	progRepo    repository.ProgressRepository
	manager     *session.Manager
	completion  CompletionService
	cfg         *config.Config
	now         func() time.Time // テストで差し替え可能に
}

func NewSessionService(db *gorm.DB, contentRepo repository.ContentRepository, progRepo repository.ProgressRepository, manager *session.Manager, completion CompletionService, cfg *config.Config) SessionService {
	return &sessionService{
		db:          db,
		contentRepo: contentRepo,
		progRepo:    progRepo,
		manager:     manager,
		completion:  completion,
		cfg:         cfg,
		now:         time.Now,
	}
}

func (s *sessionService) StartSession(ctx context.Context, userID, subtopicID uuid.UUID, req *model.StartSessionRequest) (*model.SessionStateResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "subtopic_id", subtopicID)

	subtopic, err := s.contentRepo.FindSubtopic(ctx, s.db, subtopicID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("SUBTOPIC_NOT_FOUND", "サブトピックが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to find subtopic", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サブトピックの取得に失敗しました。", "", err)
	}

	cards, err := s.contentRepo.FindFlashcards(ctx, s.db, subtopicID)
	if err != nil {
		logger.Error("Failed to load flashcards", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "フラッシュカードの取得に失敗しました。", "", err)
	}
	if len(cards) == 0 {
		// カードが1枚もなければセッションを開始できない。
		// これが学習者に見える唯一の初期ロード失敗となる。
		return nil, model.NewAppError("NO_FLASHCARDS", "このサブトピックにはフラッシュカードがありません。", "", model.ErrNotFound)
	}

	interval := s.cfg.App.PracticeInterval
	if req != nil && req.PracticeInterval > 0 {
		interval = req.PracticeInterval
	}
	steps := timeline.Build(len(cards), interval)

	// 再開: 保存済み進捗があれば途中から。取得失敗は警告のみで
	// 最初からのセッションに劣化させる (再開はあくまで任意機能)。
	var resume *model.SubtopicProgress
	if req != nil && req.Resume {
		prog, err := s.progRepo.Find(ctx, s.db, userID, subtopicID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			logger.Warn("Failed to load saved progress, starting from the beginning", "error", err)
		} else if err == nil && !prog.CompletedPractice {
			// 完了済みのレコードからは再開しない (retry は常に先頭から)
			resume = prog
		}
	}

	// 乱数源はセッションごとに取り直す (出題順はセッション間で変わる)
	builder := practice.NewBuilder(s.now().UnixNano())

	sess := session.New(session.Config{
		UserID:        userID,
		SubtopicID:    subtopicID,
		TopicID:       subtopic.TopicID,
		SubtopicName:  subtopic.Name,
		Cards:         cards,
		Timeline:      steps,
		BuildQuestion: builder.Build,
		AutoAdvanceMs: s.cfg.App.AutoAdvanceMs,
		Resume:        resume,
	})
	s.manager.Put(sess)

	logger.Info("Session started", "session_id", sess.ID, "cards", len(cards), "steps", len(steps), "resumed", resume != nil)
	return sess.Snapshot(), nil
}

func (s *sessionService) GetState(ctx context.Context, userID, sessionID uuid.UUID) (*model.SessionStateResponse, error) {
	sess, err := s.manager.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}
	return sess.Snapshot(), nil
}

func (s *sessionService) Flip(ctx context.Context, userID, sessionID uuid.UUID) (*model.SessionStateResponse, error) {
	sess, err := s.manager.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := sess.Flip(); err != nil {
		return nil, model.NewAppError("INVALID_STATE", "カード閲覧中のみ反転できます。", "", err)
	}
	return sess.Snapshot(), nil
}

func (s *sessionService) Navigate(ctx context.Context, userID, sessionID uuid.UUID, direction string) (*model.SessionStateResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "session_id", sessionID)

	sess, err := s.manager.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}

	switch direction {
	case DirectionNext:
		err = sess.Next()
	case DirectionPrev:
		err = sess.Prev()
	default:
		return nil, model.NewAppError("INVALID_DIRECTION", "directionはnextまたはpreviousを指定してください。", "direction", model.ErrInvalidInput)
	}
	if err != nil {
		return nil, model.NewAppError("INVALID_STATE", "現在の状態ではその操作はできません。", "", err)
	}

	if sess.Completed() {
		s.persistAsync(logger, sess)
	}
	return sess.Snapshot(), nil
}

func (s *sessionService) Answer(ctx context.Context, userID, sessionID uuid.UUID, req *model.AnswerRequest) (*model.AnswerResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "session_id", sessionID)

	sess, err := s.manager.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}

	resp, err := sess.Answer(req.QuestionID, req.OptionText)
	if err != nil {
		if errors.Is(err, model.ErrInvalidState) {
			return nil, model.NewAppError("INVALID_STATE", "練習中ではありません。", "", err)
		}
		return nil, err
	}

	// グループ完了で練習済み範囲が広がるたび、および最終ステップ通過で
	// 進捗を保存する。保存は状態遷移をブロックしない (失敗はログのみ)。
	if resp.GroupCompleted {
		s.persistAsync(logger, sess)
	}
	return resp, nil
}

func (s *sessionService) Complete(ctx context.Context, userID, sessionID uuid.UUID, params model.CompletionParams) (*model.CompleteSessionResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "session_id", sessionID)

	sess, err := s.manager.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if !sess.Completed() {
		return nil, model.NewAppError("SESSION_NOT_COMPLETED", "セッションはまだ完了していません。", "", model.ErrInvalidState)
	}

	// 完了時は同期で保存を試みるが、失敗してもセッションは完了扱いのまま
	// 完了画面を返す (可用性を永続性より優先する)
	if err := s.persist(ctx, sess); err != nil {
		logger.Warn("Failed to persist progress at completion, continuing", "error", err)
	}

	completionCtx := s.completion.BuildContext(ctx, userID, sess.SubtopicID, params)
	actions := Resolve(*completionCtx)

	logger.Info("Session completed", "subtopic_id", sess.SubtopicID)
	return &model.CompleteSessionResponse{
		Context: *completionCtx,
		Actions: actions,
	}, nil
}

func (s *sessionService) Choose(ctx context.Context, userID, sessionID uuid.UUID, choice string, params model.CompletionParams) (*model.NavigationIntent, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "session_id", sessionID)

	sess, err := s.manager.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if !sess.Completed() {
		return nil, model.NewAppError("SESSION_NOT_COMPLETED", "セッションはまだ完了していません。", "", model.ErrInvalidState)
	}

	// ユーザー選択を進捗に反映して保存 (失敗はログのみ)
	prog := sess.Progress()
	if choice == model.NavTargetRetry {
		prog.UserChoice = model.UserChoiceReview
	} else {
		prog.UserChoice = model.UserChoiceContinue
	}
	if err := s.upsert(ctx, prog); err != nil {
		logger.Warn("Failed to persist user choice, continuing", "error", err)
	}

	completionCtx := s.completion.BuildContext(ctx, userID, sess.SubtopicID, params)
	intent, err := s.completion.Navigate(completionCtx, choice, sess.SubtopicID)
	if err != nil {
		return nil, err
	}

	// 遷移先が決まったらセッションは破棄する
	s.manager.Delete(sessionID)
	logger.Info("Navigation intent issued", "target", intent.Target)
	return intent, nil
}

// persistAsync は進捗保存を発射して忘れる。状態遷移をブロックしないため
// 専用goroutineで行い、失敗はログにのみ残す。リクエストのキャンセルに
// 巻き込まれないよう独立したコンテキストを使う。
func (s *sessionService) persistAsync(logger *slog.Logger, sess *session.Session) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.persist(ctx, sess); err != nil {
			logger.Warn("Failed to persist progress in background", "error", err)
		}
	}()
}

func (s *sessionService) persist(ctx context.Context, sess *session.Session) error {
	return s.upsert(ctx, sess.Progress())
}

func (s *sessionService) upsert(ctx context.Context, prog *model.SubtopicProgress) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.progRepo.Upsert(ctx, tx, prog)
	})
}
