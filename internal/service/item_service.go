// internal/service/item_service.go
package service

import (
	"context"
	"errors"
	"time"

	"vocab_review_keep/internal/middleware"
	"vocab_review_keep/internal/model"
	"vocab_review_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemService interface {
	CreateItem(ctx context.Context, learnerID uuid.UUID, req *model.CreateItemRequest) (*model.VocabularyItem, error)
	GetItem(ctx context.Context, learnerID, itemID uuid.UUID) (*model.VocabularyItem, error)
	ListItems(ctx context.Context, learnerID uuid.UUID) ([]*model.VocabularyItem, error)
	UpdateItem(ctx context.Context, learnerID, itemID uuid.UUID, req *model.PatchItemRequest) (*model.VocabularyItem, error)
	DeleteItem(ctx context.Context, learnerID, itemID uuid.UUID) error
}

type itemService struct {
	db       *gorm.DB // トランザクション用にDB接続を持つ
	itemRepo repository.ItemRepository
}

func NewItemService(db *gorm.DB, itemRepo repository.ItemRepository) ItemService {
	return &itemService{
		db:       db,
		itemRepo: itemRepo,
	}
}

func (s *itemService) CreateItem(ctx context.Context, learnerID uuid.UUID, req *model.CreateItemRequest) (*model.VocabularyItem, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID)

	var createdItem *model.VocabularyItem

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 重複チェック
		exists, err := s.itemRepo.CheckWordExists(ctx, tx, learnerID, req.Word, nil)
		if err != nil {
			logger.Error("Error checking word existence in transaction", "error", err)
			return model.NewAppError("STORE_UNAVAILABLE", "単語の確認中にエラーが発生しました。", "", model.ErrStoreUnavailable)
		}
		if exists {
			return model.NewAppError("DUPLICATE_WORD", "この単語は既に登録されています。", "word", model.ErrConflict)
		}

		// 新規アイテムは即時レビュー対象として登録する
		// （ステージ0・カウンタ0・next_review_at = 現在時刻）。
		now := time.Now()
		item := &model.VocabularyItem{
			ItemID:           uuid.New(),
			LearnerID:        learnerID,
			Word:             req.Word,
			Reading:          req.Reading,
			Meaning:          req.Meaning,
			SourceRef:        req.SourceRef,
			ReviewStage:      model.MinReviewStage,
			FamiliarityLevel: 0,
			Mastered:         false,
			NextReviewAt:     &now,
		}
		if err := s.itemRepo.Create(ctx, tx, item); err != nil {
			logger.Error("Error creating item in transaction", "error", err)
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return model.NewAppError("DUPLICATE_WORD", "この単語は既に登録されています。", "word", model.ErrConflict)
			}
			return model.NewAppError("STORE_UNAVAILABLE", "単語の登録に失敗しました。", "", model.ErrStoreUnavailable)
		}

		createdItem = item
		return nil // コミット
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Item created", "item_id", createdItem.ItemID, "word", createdItem.Word)
	return createdItem, nil
}

func (s *itemService) GetItem(ctx context.Context, learnerID, itemID uuid.UUID) (*model.VocabularyItem, error) {
	item, err := s.itemRepo.FindByID(ctx, s.db, learnerID, itemID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "対象のアイテムが見つかりませんでした。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("STORE_UNAVAILABLE", "単語の取得に失敗しました。", "", model.ErrStoreUnavailable)
	}
	return item, nil
}

func (s *itemService) ListItems(ctx context.Context, learnerID uuid.UUID) ([]*model.VocabularyItem, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID)
	items, err := s.itemRepo.FindByLearner(ctx, s.db, learnerID)
	if err != nil {
		logger.Error("Error listing items", "error", err)
		return nil, model.NewAppError("STORE_UNAVAILABLE", "単語一覧の取得に失敗しました。", "", model.ErrStoreUnavailable)
	}
	return items, nil
}

func (s *itemService) UpdateItem(ctx context.Context, learnerID, itemID uuid.UUID, req *model.PatchItemRequest) (*model.VocabularyItem, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID, "item_id", itemID)

	var updatedItem *model.VocabularyItem

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 存在確認
		item, err := s.itemRepo.FindByID(ctx, tx, learnerID, itemID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "対象のアイテムが見つかりませんでした。", "", model.ErrNotFound)
			}
			return model.NewAppError("STORE_UNAVAILABLE", "単語の取得に失敗しました。", "", model.ErrStoreUnavailable)
		}

		// 更新内容の準備と重複チェック。スケジュール状態はここでは触らない
		// （復習状態の変更は ReviewService の遷移経由のみ）。
		updates := make(map[string]interface{})
		if req.Word != nil && *req.Word != "" && *req.Word != item.Word {
			exists, err := s.itemRepo.CheckWordExists(ctx, tx, learnerID, *req.Word, &itemID)
			if err != nil {
				logger.Error("Error checking word existence during update", "error", err)
				return model.NewAppError("STORE_UNAVAILABLE", "単語の確認中にエラーが発生しました。", "", model.ErrStoreUnavailable)
			}
			if exists {
				return model.NewAppError("DUPLICATE_WORD", "この単語は既に登録されています。", "word", model.ErrConflict)
			}
			updates["word"] = *req.Word
		}
		if req.Reading != nil && *req.Reading != item.Reading {
			updates["reading"] = *req.Reading
		}
		if req.Meaning != nil && *req.Meaning != "" && *req.Meaning != item.Meaning {
			updates["meaning"] = *req.Meaning
		}

		if len(updates) > 0 {
			if err := s.itemRepo.Update(ctx, tx, learnerID, itemID, updates); err != nil {
				if errors.Is(err, model.ErrNotFound) {
					return model.NewAppError("NOT_FOUND", "対象のアイテムが見つかりませんでした。", "", model.ErrNotFound)
				}
				logger.Error("Error updating item in transaction", "error", err)
				return model.NewAppError("STORE_UNAVAILABLE", "単語の更新に失敗しました。", "", model.ErrStoreUnavailable)
			}
		}

		// 更新後のデータをトランザクション内で取得する
		updatedItem, err = s.itemRepo.FindByID(ctx, tx, learnerID, itemID)
		if err != nil {
			logger.Error("Error fetching updated item in transaction", "error", err)
			return model.NewAppError("STORE_UNAVAILABLE", "更新後の単語の取得に失敗しました。", "", model.ErrStoreUnavailable)
		}

		return nil // コミット
	})
	if err != nil {
		return nil, err
	}

	return updatedItem, nil
}

func (s *itemService) DeleteItem(ctx context.Context, learnerID, itemID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID, "item_id", itemID)

	// 削除は利用者の明示操作によるもので、スケジューラは関与しない（論理削除）。
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.itemRepo.Delete(ctx, tx, learnerID, itemID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "対象のアイテムが見つかりませんでした。", "", model.ErrNotFound)
			}
			logger.Error("Error deleting item", "error", err)
			return model.NewAppError("STORE_UNAVAILABLE", "単語の削除に失敗しました。", "", model.ErrStoreUnavailable)
		}
		return nil
	})
	return err
}
