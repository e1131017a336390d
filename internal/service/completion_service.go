//go:generate mockery --name CompletionService --output ./mocks --outpkg mocks --case=underscore
// internal/service/completion_service.go
package service

import (
	"context"
	"errors"

	"signlearn/internal/middleware"
	"signlearn/internal/model"
	"signlearn/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompletionService はサブトピック完了後の分岐を決定します。
// 完了フラグはバックエンドで取り直した値を正とし、取得に失敗した場合のみ
// 呼び出し元パラメータにフォールバックします (二重ソースの曖昧さを
// ここで一本化する)。
type CompletionService interface {
	CompletionStatus(ctx context.Context, userID, topicID uuid.UUID) (*model.CompletionStatusResponse, error)
	BuildContext(ctx context.Context, userID, subtopicID uuid.UUID, params model.CompletionParams) *model.CompletionContext
	Navigate(cctx *model.CompletionContext, choice string, subtopicID uuid.UUID) (*model.NavigationIntent, error)
}

type completionService struct {
	db          *gorm.DB
	contentRepo repository.ContentRepository
	progRepo    repository.ProgressRepository
}

func NewCompletionService(db *gorm.DB, contentRepo repository.ContentRepository, progRepo repository.ProgressRepository) CompletionService {
	return &completionService{
		db:          db,
		contentRepo: contentRepo,
		progRepo:    progRepo,
	}
}

func (s *completionService) CompletionStatus(ctx context.Context, userID, topicID uuid.UUID) (*model.CompletionStatusResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "topic_id", topicID)

	total, err := s.contentRepo.CountSubtopics(ctx, s.db, topicID)
	if err != nil {
		logger.Error("Failed to count subtopics", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "完了状況の取得に失敗しました。", "", err)
	}

	completedIDs, err := s.progRepo.ListCompletedSubtopicIDs(ctx, s.db, userID, topicID)
	if err != nil {
		logger.Error("Failed to list completed subtopics", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "完了状況の取得に失敗しました。", "", err)
	}

	return &model.CompletionStatusResponse{
		AllSubtopicsCompleted: total > 0 && int64(len(completedIDs)) >= total,
		TotalSubtopics:        int(total),
		CompletedCount:        len(completedIDs),
		CompletedSubtopicIDs:  completedIDs,
	}, nil
}

// BuildContext は完了コンテキストを構築します。各フラグの取得に失敗しても
// 完了画面の表示を妨げず、呼び出し元パラメータまたは安全側の既定値に
// 劣化させます。エラーは返しません。
func (s *completionService) BuildContext(ctx context.Context, userID, subtopicID uuid.UUID, params model.CompletionParams) *model.CompletionContext {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "subtopic_id", subtopicID)

	cctx := &model.CompletionContext{
		HasNextSubtopic:       params.HasNextSubtopic,
		AllSubtopicsCompleted: params.AllSubtopicsCompleted,
	}

	subtopic, err := s.contentRepo.FindSubtopic(ctx, s.db, subtopicID)
	if err != nil {
		logger.Warn("Failed to load subtopic for completion context, using params only", "error", err)
		return cctx
	}
	cctx.SubtopicName = subtopic.Name
	topicID := subtopic.TopicID
	cctx.TopicID = &topicID

	// 次のサブトピック (存在しないのは正常)
	next, err := s.contentRepo.FindNextSubtopic(ctx, s.db, subtopic)
	switch {
	case err == nil:
		cctx.HasNextSubtopic = true
		nextID := next.SubtopicID
		cctx.NextSubtopicID = &nextID
	case errors.Is(err, model.ErrNotFound):
		cctx.HasNextSubtopic = false
	default:
		logger.Warn("Failed to look up next subtopic, falling back to caller params", "error", err)
	}

	// 文章組み立て練習の有無
	topic, err := s.contentRepo.FindTopic(ctx, s.db, topicID)
	if err != nil {
		logger.Warn("Failed to load topic, sentence building disabled", "error", err)
	} else {
		cctx.HasSentenceBuilding = topic.HasSentenceBuilding
	}

	// 全サブトピック完了フラグ (取得失敗時のみ呼び出し元の値を使う)
	status, err := s.CompletionStatus(ctx, userID, topicID)
	if err != nil {
		logger.Warn("Failed to fetch completion status, falling back to caller params", "error", err)
	} else {
		cctx.AllSubtopicsCompleted = status.AllSubtopicsCompleted
	}

	return cctx
}

// Navigate は完了画面でのユーザー選択を遷移指示に変換します。
// 無効化されているアクションの選択はエラーになります。
func (s *completionService) Navigate(cctx *model.CompletionContext, choice string, subtopicID uuid.UUID) (*model.NavigationIntent, error) {
	actions := Resolve(*cctx)

	switch choice {
	case model.NavTargetRetry:
		return &model.NavigationIntent{
			Target: model.NavTargetRetry,
			Params: map[string]string{"subtopic_id": subtopicID.String()},
		}, nil

	case "next":
		if !actions.Next {
			return nil, model.NewAppError("NEXT_UNAVAILABLE", actions.Notice, "choice", model.ErrInvalidInput)
		}
		if cctx.HasNextSubtopic && cctx.NextSubtopicID != nil {
			return &model.NavigationIntent{
				Target: model.NavTargetNextSubtopic,
				Params: map[string]string{"subtopic_id": cctx.NextSubtopicID.String()},
			}, nil
		}
		params := map[string]string{}
		if cctx.TopicID != nil {
			params["topic_id"] = cctx.TopicID.String()
		}
		return &model.NavigationIntent{Target: model.NavTargetStartTest, Params: params}, nil

	case model.NavTargetSentenceBuilding:
		if !actions.SentenceBuilding {
			return nil, model.NewAppError("SENTENCE_BUILDING_UNAVAILABLE", "このトピックには文章組み立て練習がありません。", "choice", model.ErrInvalidInput)
		}
		params := map[string]string{}
		if cctx.TopicID != nil {
			params["topic_id"] = cctx.TopicID.String()
		}
		return &model.NavigationIntent{Target: model.NavTargetSentenceBuilding, Params: params}, nil

	case model.NavTargetHome:
		return &model.NavigationIntent{Target: model.NavTargetHome}, nil

	default:
		return nil, model.NewAppError("INVALID_CHOICE", "不明な選択です。", "choice", model.ErrInvalidInput)
	}
}

// Resolve は完了コンテキストから有効なアクションの集合を導きます。純粋関数。
//   - retry と goHome は常に有効
//   - sentenceBuilding はトピックが対応している場合のみ
//   - next は「次のサブトピックがある」か「全サブトピック完了」のときのみ。
//     ラベルは前者なら次へ進む、後者ならテスト開始になる
func Resolve(cctx model.CompletionContext) model.CompletionActions {
	actions := model.CompletionActions{
		Retry:            true,
		GoHome:           true,
		SentenceBuilding: cctx.HasSentenceBuilding,
		Next:             cctx.HasNextSubtopic || cctx.AllSubtopicsCompleted,
	}

	switch {
	case cctx.HasNextSubtopic:
		actions.NextLabel = "次のサブトピックへ進む"
	case cctx.AllSubtopicsCompleted:
		actions.NextLabel = "テストを開始する"
	default:
		actions.Notice = "すべてのサブトピックを完了するとテストに進めます。"
	}
	return actions
}
