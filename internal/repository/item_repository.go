//go:generate mockery --name ItemRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vocab_review_keep/internal/middleware"
	"vocab_review_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ItemRepository はスケジューラから見た単語アイテムストアです。
// DB接続/トランザクションはサービス層から渡されます。
type ItemRepository interface {
	Create(ctx context.Context, tx *gorm.DB, item *model.VocabularyItem) error
	FindByID(ctx context.Context, db *gorm.DB, learnerID, itemID uuid.UUID) (*model.VocabularyItem, error)
	FindByLearner(ctx context.Context, db *gorm.DB, learnerID uuid.UUID) ([]*model.VocabularyItem, error)
	// FindDue は windowStart より前に期日を迎えたアイテム（と新規アイテム）を
	// 決定的な順序で limit 件まで返します。
	FindDue(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, windowStart time.Time, limit int) ([]*model.VocabularyItem, error)
	// CountReviewedInWindow は [windowStart, windowEnd) の間にレビューされた
	// アイテム数を返します。日次クォータの残数計算に使います。
	CountReviewedInWindow(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, windowStart, windowEnd time.Time) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, learnerID, itemID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, learnerID, itemID uuid.UUID) error
	// AtomicUpdate は行ロック付きの read-modify-write を1トランザクションで
	// 実行します。mutate がエラーを返した場合はロールバックし、部分的な
	// 状態は永続化されません。
	AtomicUpdate(ctx context.Context, db *gorm.DB, learnerID, itemID uuid.UUID, mutate func(item *model.VocabularyItem) error) (*model.VocabularyItem, error)
	CheckWordExists(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, word string, excludeItemID *uuid.UUID) (bool, error)
}

type gormItemRepository struct{}

func NewGormItemRepository() ItemRepository {
	return &gormItemRepository{}
}

func (r *gormItemRepository) Create(ctx context.Context, tx *gorm.DB, item *model.VocabularyItem) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(item)
	if result.Error != nil {
		logger.Error("Error creating item in DB",
			"error", result.Error,
			"learner_id", item.LearnerID.String(),
			"word", item.Word,
		)
		return fmt.Errorf("gormItemRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormItemRepository) FindByID(ctx context.Context, db *gorm.DB, learnerID, itemID uuid.UUID) (*model.VocabularyItem, error) {
	logger := middleware.GetLogger(ctx)
	var item model.VocabularyItem
	result := db.WithContext(ctx).Where("learner_id = ? AND item_id = ?", learnerID, itemID).First(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding item by ID in DB",
			"error", result.Error,
			"learner_id", learnerID.String(),
			"item_id", itemID.String(),
		)
		return nil, fmt.Errorf("gormItemRepository.FindByID: %w", result.Error)
	}
	return &item, nil
}

func (r *gormItemRepository) FindByLearner(ctx context.Context, db *gorm.DB, learnerID uuid.UUID) ([]*model.VocabularyItem, error) {
	logger := middleware.GetLogger(ctx)
	var items []*model.VocabularyItem
	result := db.WithContext(ctx).Where("learner_id = ?", learnerID).Order("created_at DESC").Find(&items)
	if result.Error != nil {
		logger.Error("Error finding items by learner in DB",
			"error", result.Error,
			"learner_id", learnerID.String(),
		)
		return nil, fmt.Errorf("gormItemRepository.FindByLearner: %w", result.Error)
	}
	return items, nil
}

func (r *gormItemRepository) FindDue(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, windowStart time.Time, limit int) ([]*model.VocabularyItem, error) {
	logger := middleware.GetLogger(ctx)
	var items []*model.VocabularyItem

	// 対象: 未習得で、(a) 期日未設定 (b) 期日が現在の復習日開始より前
	// (c) ステージ0の新規/リセット直後、のいずれか。
	// 現在の復習日内にレビュー済みのものは next_review_at が未来に
	// 進んでいるため自然に除外される。
	// 並び順は固定スナップショットに対して決定的: 未設定(新規)が先頭、
	// 次に期日の古い順、同時刻は登録順。
	result := db.WithContext(ctx).
		Where("learner_id = ? AND mastered = ?", learnerID, false).
		Where("next_review_at IS NULL OR next_review_at < ? OR review_stage = 0", windowStart).
		Order("CASE WHEN next_review_at IS NULL THEN 0 ELSE 1 END, next_review_at ASC, created_at ASC, item_id ASC").
		Limit(limit).
		Find(&items)
	if result.Error != nil {
		logger.Error("Error finding due items in DB",
			"error", result.Error,
			"learner_id", learnerID.String(),
		)
		return nil, fmt.Errorf("gormItemRepository.FindDue: %w", result.Error)
	}
	return items, nil
}

func (r *gormItemRepository) CountReviewedInWindow(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, windowStart, windowEnd time.Time) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	// 「本日レビュー済み」は永続化された last_reviewed_at から導出する。
	// プロセス内カウンタは持たない（再起動・複数プロセスでずれるため）。
	result := db.WithContext(ctx).Model(&model.VocabularyItem{}).
		Where("learner_id = ? AND review_count > 0", learnerID).
		Where("last_reviewed_at >= ? AND last_reviewed_at < ?", windowStart, windowEnd).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error counting reviewed items in DB",
			"error", result.Error,
			"learner_id", learnerID.String(),
		)
		return 0, fmt.Errorf("gormItemRepository.CountReviewedInWindow: %w", result.Error)
	}
	return count, nil
}

func (r *gormItemRepository) Update(ctx context.Context, tx *gorm.DB, learnerID, itemID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := tx.WithContext(ctx).Model(&model.VocabularyItem{}).
		Where("learner_id = ? AND item_id = ?", learnerID, itemID).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating item in DB",
			"error", result.Error,
			"learner_id", learnerID.String(),
			"item_id", itemID.String(),
		)
		return fmt.Errorf("gormItemRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormItemRepository) Delete(ctx context.Context, tx *gorm.DB, learnerID, itemID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("learner_id = ?", learnerID).Delete(&model.VocabularyItem{}, "item_id = ?", itemID)
	if result.Error != nil {
		logger.Error("Error deleting item in DB",
			"error", result.Error,
			"learner_id", learnerID.String(),
			"item_id", itemID.String(),
		)
		return fmt.Errorf("gormItemRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormItemRepository) AtomicUpdate(ctx context.Context, db *gorm.DB, learnerID, itemID uuid.UUID, mutate func(item *model.VocabularyItem) error) (*model.VocabularyItem, error) {
	logger := middleware.GetLogger(ctx)
	var updated *model.VocabularyItem

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.VocabularyItem
		// SELECT ... FOR UPDATE で同一アイテムへの同時遷移を直列化する
		// （reviewCount/correctCount の更新消失を防ぐ）。
		// sqlite（テスト用）は FOR UPDATE 構文を持たないためスキップする。
		// sqlite は書き込みがDBレベルで直列化されるので問題にならない。
		query := tx.Where("learner_id = ? AND item_id = ?", learnerID, itemID)
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		result := query.First(&item)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return model.ErrNotFound
			}
			return fmt.Errorf("gormItemRepository.AtomicUpdate find: %w", result.Error)
		}

		if err := mutate(&item); err != nil {
			return err
		}

		if err := tx.Save(&item).Error; err != nil {
			return fmt.Errorf("gormItemRepository.AtomicUpdate save: %w", err)
		}
		updated = &item
		return nil
	})
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Atomic item update failed",
				"error", err,
				"learner_id", learnerID.String(),
				"item_id", itemID.String(),
			)
		}
		return nil, err
	}
	return updated, nil
}

func (r *gormItemRepository) CheckWordExists(ctx context.Context, db *gorm.DB, learnerID uuid.UUID, word string, excludeItemID *uuid.UUID) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	query := db.WithContext(ctx).Model(&model.VocabularyItem{}).Where("learner_id = ? AND word = ?", learnerID, word)
	if excludeItemID != nil {
		query = query.Where("item_id != ?", *excludeItemID)
	}
	result := query.Count(&count)
	if result.Error != nil {
		logger.Error("Error checking word existence in DB",
			"error", result.Error,
			"learner_id", learnerID.String(),
			"word", word,
		)
		return false, fmt.Errorf("gormItemRepository.CheckWordExists: %w", result.Error)
	}
	return count > 0, nil
}
