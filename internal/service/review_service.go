// internal/service/review_service.go
package service

import (
	"context"
	"errors"
	"time"

	"vocab_review_keep/internal/config"
	"vocab_review_keep/internal/middleware"
	"vocab_review_keep/internal/model"
	"vocab_review_keep/internal/repository"
	"vocab_review_keep/internal/srs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewService は復習スケジューラの本体です。
// 「いま復習すべきアイテム」の選択（日次クォータ適用）と、
// 復習結果による状態遷移の永続化を担います。
type ReviewService interface {
	// GetReviewItems は現在レビュー可能なアイテムを limit 件まで返します。
	// クォータ消化済みの場合は空スライス（エラーではない）。limit <= 0 は
	// 設定のバッチ上限を使います。
	GetReviewItems(ctx context.Context, learnerID uuid.UUID, limit int) ([]*model.ReviewItemResponse, error)
	// GetNextReviewItem は次にレビューすべきアイテムを1件返します。
	// 対象がない場合は (nil, nil)。
	GetNextReviewItem(ctx context.Context, learnerID uuid.UUID) (*model.ReviewItemResponse, error)
	// GetReviewItemCount は本日まだレビューできる件数を返します。
	GetReviewItemCount(ctx context.Context, learnerID uuid.UUID) (int64, error)
	// SubmitReviewResult は復習結果を反映します。remembered=true で段階が進み、
	// false でステージ0へリセットされます。
	SubmitReviewResult(ctx context.Context, learnerID, itemID uuid.UUID, remembered bool) (*model.VocabularyItem, error)
	// MarkMastered は管理用の習得フラグ上書きです（通常の復習フロー外）。
	MarkMastered(ctx context.Context, learnerID, itemID uuid.UUID) (*model.VocabularyItem, error)
}

type reviewService struct {
	db       *gorm.DB
	itemRepo repository.ItemRepository
	cfg      *config.Config
	// now はテストで時刻を固定するために差し替え可能にしておく
	now func() time.Time
}

func NewReviewService(db *gorm.DB, itemRepo repository.ItemRepository, cfg *config.Config) ReviewService {
	return &reviewService{
		db:       db,
		itemRepo: itemRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

// remainingQuota は現在の復習日のクォータ残数を返します。
// 「本日レビュー済み」は永続化された状態からの導出値で、設定は呼び出しごとに
// 読み直します。クォータは助言的な上限であり、同時アクセス時に1件超過し得ます
// が、それは許容される縮退です。
func (s *reviewService) remainingQuota(ctx context.Context, learnerID uuid.UUID, windowStart time.Time) (int, error) {
	reviewed, err := s.itemRepo.CountReviewedInWindow(ctx, s.db, learnerID, windowStart, srs.WindowEnd(windowStart))
	if err != nil {
		return 0, err
	}
	remaining := s.cfg.Review.DailyQuota - int(reviewed)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (s *reviewService) GetReviewItems(ctx context.Context, learnerID uuid.UUID, limit int) ([]*model.ReviewItemResponse, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID)

	now := s.now()
	windowStart := srs.WindowStart(now, s.cfg.Review.CutoverHour)

	remaining, err := s.remainingQuota(ctx, learnerID, windowStart)
	if err != nil {
		logger.Error("Failed to count reviewed items for quota", "error", err)
		return nil, model.NewAppError("STORE_UNAVAILABLE", "復習状況の取得に失敗しました。", "", model.ErrStoreUnavailable)
	}
	if remaining == 0 {
		logger.Info("Daily review quota exhausted", "quota", s.cfg.Review.DailyQuota)
		return []*model.ReviewItemResponse{}, nil
	}

	if limit <= 0 || limit > remaining {
		limit = remaining
	}
	if limit > s.cfg.Review.BatchLimit {
		limit = s.cfg.Review.BatchLimit
	}

	items, err := s.itemRepo.FindDue(ctx, s.db, learnerID, windowStart, limit)
	if err != nil {
		logger.Error("Failed to find due items from repository", "error", err)
		return nil, model.NewAppError("STORE_UNAVAILABLE", "復習対象の取得に失敗しました。", "", model.ErrStoreUnavailable)
	}

	responses := make([]*model.ReviewItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, s.toReviewResponse(ctx, item))
	}

	logger.Info("Successfully retrieved review items", "count", len(responses))
	return responses, nil
}

func (s *reviewService) GetNextReviewItem(ctx context.Context, learnerID uuid.UUID) (*model.ReviewItemResponse, error) {
	items, err := s.GetReviewItems(ctx, learnerID, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		// 「復習対象なし」は正常系。ストア障害とは区別して返す。
		return nil, nil
	}
	return items[0], nil
}

func (s *reviewService) GetReviewItemCount(ctx context.Context, learnerID uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID)

	now := s.now()
	windowStart := srs.WindowStart(now, s.cfg.Review.CutoverHour)

	remaining, err := s.remainingQuota(ctx, learnerID, windowStart)
	if err != nil {
		logger.Error("Failed to count reviewed items for quota", "error", err)
		return 0, model.NewAppError("STORE_UNAVAILABLE", "復習状況の取得に失敗しました。", "", model.ErrStoreUnavailable)
	}
	if remaining == 0 {
		return 0, nil
	}

	items, err := s.itemRepo.FindDue(ctx, s.db, learnerID, windowStart, remaining)
	if err != nil {
		logger.Error("Failed to find due items for count", "error", err)
		return 0, model.NewAppError("STORE_UNAVAILABLE", "復習対象数の取得に失敗しました。", "", model.ErrStoreUnavailable)
	}

	return int64(len(items)), nil
}

func (s *reviewService) SubmitReviewResult(ctx context.Context, learnerID, itemID uuid.UUID, remembered bool) (*model.VocabularyItem, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID, "item_id", itemID)

	now := s.now()
	cutoverHour := s.cfg.Review.CutoverHour

	updated, err := s.itemRepo.AtomicUpdate(ctx, s.db, learnerID, itemID, func(item *model.VocabularyItem) error {
		if item.ReviewStage < model.MinReviewStage || item.ReviewStage > model.MaxReviewStage {
			// スケジューラ外の書き込みで壊れた行。丸めて続行する。
			logger.Warn("Item has out-of-range review stage, clamping",
				"review_stage", item.ReviewStage)
			item.ReviewStage = srs.ClampStage(item.ReviewStage)
		}
		if remembered {
			srs.ApplyRemembered(item, now, cutoverHour)
		} else {
			srs.ApplyForgotten(item, now, cutoverHour)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Review result submitted for unknown item")
			return nil, model.NewAppError("NOT_FOUND", "対象のアイテムが見つかりませんでした。", "", model.ErrNotFound)
		}
		logger.Error("Failed to apply review transition", "error", err)
		return nil, model.NewAppError("STORE_UNAVAILABLE", "復習結果の保存に失敗しました。", "", model.ErrStoreUnavailable)
	}

	logger.Info("Review result applied",
		"remembered", remembered,
		"review_stage", updated.ReviewStage,
		"mastered", updated.Mastered,
	)
	return updated, nil
}

func (s *reviewService) MarkMastered(ctx context.Context, learnerID, itemID uuid.UUID) (*model.VocabularyItem, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID, "item_id", itemID)

	updated, err := s.itemRepo.AtomicUpdate(ctx, s.db, learnerID, itemID, func(item *model.VocabularyItem) error {
		srs.ApplyMarkMastered(item)
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "対象のアイテムが見つかりませんでした。", "", model.ErrNotFound)
		}
		logger.Error("Failed to mark item as mastered", "error", err)
		return nil, model.NewAppError("STORE_UNAVAILABLE", "習得フラグの保存に失敗しました。", "", model.ErrStoreUnavailable)
	}

	logger.Info("Item marked as mastered (administrative override)",
		"review_stage", updated.ReviewStage)
	return updated, nil
}

func (s *reviewService) toReviewResponse(ctx context.Context, item *model.VocabularyItem) *model.ReviewItemResponse {
	stage := item.ReviewStage
	if stage < model.MinReviewStage || stage > model.MaxReviewStage {
		middleware.GetLogger(ctx).Warn("Item has out-of-range review stage, clamping for response",
			"item_id", item.ItemID, "review_stage", stage)
		stage = srs.ClampStage(stage)
	}
	return &model.ReviewItemResponse{
		ItemID:           item.ItemID,
		Word:             item.Word,
		Reading:          item.Reading,
		Meaning:          item.Meaning,
		ReviewStage:      stage,
		FamiliarityLevel: item.FamiliarityLevel,
		NextReviewAt:     item.NextReviewAt,
	}
}
