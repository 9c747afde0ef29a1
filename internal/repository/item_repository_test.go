// internal/repository/item_repository_test.go
package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"vocab_review_keep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.VocabularyItem{}))
	// cache=shared のため、前のテストの行が残っていることがある
	require.NoError(t, db.Exec("DELETE FROM items").Error)
	return db
}

func timePtr(tm time.Time) *time.Time { return &tm }

func seedItem(t *testing.T, db *gorm.DB, item *model.VocabularyItem) *model.VocabularyItem {
	if item.ItemID == uuid.Nil {
		item.ItemID = uuid.New()
	}
	if item.Word == "" {
		item.Word = "word-" + item.ItemID.String()[:8]
	}
	if item.Meaning == "" {
		item.Meaning = "meaning"
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

// --- Test FindDue ---
func Test_gormItemRepository_FindDue(t *testing.T) {
	ctx := context.Background()
	repo := NewGormItemRepository()

	// 復習日の開始は 2025-03-10 02:00 とする
	windowStart := time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)

	t.Run("正常系: 期日・習得・本日レビュー済みの条件で絞り込まれる", func(t *testing.T) {
		db := setupTestDB(t)
		learnerID := uuid.New()

		// 対象: 期日が境界より前
		due := seedItem(t, db, &model.VocabularyItem{
			LearnerID: learnerID, Word: "due", ReviewStage: 2,
			NextReviewAt: timePtr(windowStart.Add(-time.Hour)),
		})
		// 対象: 期日未設定（新規）
		fresh := seedItem(t, db, &model.VocabularyItem{
			LearnerID: learnerID, Word: "fresh", ReviewStage: 0,
		})
		// 対象外: 期日が未来（本日レビュー済みで次の復習日に進んでいる）
		seedItem(t, db, &model.VocabularyItem{
			LearnerID: learnerID, Word: "reviewed-today", ReviewStage: 1,
			NextReviewAt:   timePtr(windowStart.AddDate(0, 0, 1)),
			ReviewCount:    1,
			LastReviewedAt: timePtr(windowStart.Add(3 * time.Hour)),
		})
		// 対象外: 習得済み
		seedItem(t, db, &model.VocabularyItem{
			LearnerID: learnerID, Word: "mastered", ReviewStage: 5, Mastered: true,
			NextReviewAt: timePtr(windowStart.Add(-time.Hour)),
		})
		// 対象外: 別の学習者
		seedItem(t, db, &model.VocabularyItem{
			LearnerID: uuid.New(), Word: "other-learner",
			NextReviewAt: timePtr(windowStart.Add(-time.Hour)),
		})

		items, err := repo.FindDue(ctx, db, learnerID, windowStart, 10)
		require.NoError(t, err)
		require.Len(t, items, 2)

		got := []uuid.UUID{items[0].ItemID, items[1].ItemID}
		assert.Contains(t, got, due.ItemID)
		assert.Contains(t, got, fresh.ItemID)
	})

	t.Run("正常系: 期日が境界ちょうどのアイテムは対象外（半開区間）", func(t *testing.T) {
		db := setupTestDB(t)
		learnerID := uuid.New()

		seedItem(t, db, &model.VocabularyItem{
			LearnerID: learnerID, Word: "on-boundary", ReviewStage: 1,
			NextReviewAt: timePtr(windowStart),
		})

		items, err := repo.FindDue(ctx, db, learnerID, windowStart, 10)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("正常系: ステージ0は期日が未来でも対象（リセット直後の再出題）", func(t *testing.T) {
		db := setupTestDB(t)
		learnerID := uuid.New()

		reset := seedItem(t, db, &model.VocabularyItem{
			LearnerID: learnerID, Word: "reset", ReviewStage: 0,
			NextReviewAt: timePtr(windowStart.AddDate(0, 0, 1)),
		})

		items, err := repo.FindDue(ctx, db, learnerID, windowStart, 10)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, reset.ItemID, items[0].ItemID)
	})

	t.Run("正常系: 並び順は期日未設定が先頭、次に期日の古い順", func(t *testing.T) {
		db := setupTestDB(t)
		learnerID := uuid.New()

		older := seedItem(t, db, &model.VocabularyItem{
			LearnerID: learnerID, Word: "older", ReviewStage: 1,
			NextReviewAt: timePtr(windowStart.Add(-48 * time.Hour)),
		})
		newer := seedItem(t, db, &model.VocabularyItem{
			LearnerID: learnerID, Word: "newer", ReviewStage: 1,
			NextReviewAt: timePtr(windowStart.Add(-time.Hour)),
		})
		noDue := seedItem(t, db, &model.VocabularyItem{
			LearnerID: learnerID, Word: "no-due", ReviewStage: 0,
		})

		items, err := repo.FindDue(ctx, db, learnerID, windowStart, 10)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, noDue.ItemID, items[0].ItemID)
		assert.Equal(t, older.ItemID, items[1].ItemID)
		assert.Equal(t, newer.ItemID, items[2].ItemID)
	})

	t.Run("正常系: limitで件数が切り詰められる", func(t *testing.T) {
		db := setupTestDB(t)
		learnerID := uuid.New()

		for i := 0; i < 5; i++ {
			seedItem(t, db, &model.VocabularyItem{
				LearnerID: learnerID, ReviewStage: 1,
				NextReviewAt: timePtr(windowStart.Add(time.Duration(-i-1) * time.Hour)),
			})
		}

		items, err := repo.FindDue(ctx, db, learnerID, windowStart, 3)
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("正常系: 論理削除済みのアイテムは対象外", func(t *testing.T) {
		db := setupTestDB(t)
		learnerID := uuid.New()

		deleted := seedItem(t, db, &model.VocabularyItem{
			LearnerID: learnerID, Word: "deleted", ReviewStage: 1,
			NextReviewAt: timePtr(windowStart.Add(-time.Hour)),
		})
		require.NoError(t, db.Delete(deleted).Error)

		items, err := repo.FindDue(ctx, db, learnerID, windowStart, 10)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

// --- Test CountReviewedInWindow ---
func Test_gormItemRepository_CountReviewedInWindow(t *testing.T) {
	ctx := context.Background()
	repo := NewGormItemRepository()

	windowStart := time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 0, 1)

	t.Run("正常系: 区間内のレビューだけ数える（半開区間）", func(t *testing.T) {
		db := setupTestDB(t)
		learnerID := uuid.New()

		// 区間内
		seedItem(t, db, &model.VocabularyItem{
			LearnerID: learnerID, ReviewCount: 1,
			LastReviewedAt: timePtr(windowStart), // 始端は含む
		})
		seedItem(t, db, &model.VocabularyItem{
			LearnerID: learnerID, ReviewCount: 2,
			LastReviewedAt: timePtr(windowStart.Add(10 * time.Hour)),
		})
		// 区間外: 前日のレビュー
		seedItem(t, db, &model.VocabularyItem{
			LearnerID: learnerID, ReviewCount: 1,
			LastReviewedAt: timePtr(windowStart.Add(-time.Minute)),
		})
		// 区間外: 終端ちょうど（翌日の始端）は含まない
		seedItem(t, db, &model.VocabularyItem{
			LearnerID: learnerID, ReviewCount: 1,
			LastReviewedAt: timePtr(windowEnd),
		})
		// 対象外: 未レビュー（last_reviewed_at なし）
		seedItem(t, db, &model.VocabularyItem{LearnerID: learnerID})
		// 対象外: 別の学習者
		seedItem(t, db, &model.VocabularyItem{
			LearnerID: uuid.New(), ReviewCount: 1,
			LastReviewedAt: timePtr(windowStart.Add(time.Hour)),
		})

		count, err := repo.CountReviewedInWindow(ctx, db, learnerID, windowStart, windowEnd)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("正常系: レビューがなければ0", func(t *testing.T) {
		db := setupTestDB(t)
		learnerID := uuid.New()

		count, err := repo.CountReviewedInWindow(ctx, db, learnerID, windowStart, windowEnd)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

// --- Test AtomicUpdate ---
func Test_gormItemRepository_AtomicUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewGormItemRepository()

	t.Run("正常系: mutateの結果が永続化される", func(t *testing.T) {
		db := setupTestDB(t)
		learnerID := uuid.New()
		item := seedItem(t, db, &model.VocabularyItem{
			LearnerID: learnerID, ReviewStage: 1, ReviewCount: 3, CorrectCount: 2,
		})

		updated, err := repo.AtomicUpdate(ctx, db, learnerID, item.ItemID, func(it *model.VocabularyItem) error {
			it.ReviewStage = 2
			it.ReviewCount++
			it.CorrectCount++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, updated.ReviewStage)
		assert.Equal(t, 4, updated.ReviewCount)

		// DBにも反映されていること
		var stored model.VocabularyItem
		require.NoError(t, db.Where("item_id = ?", item.ItemID).First(&stored).Error)
		assert.Equal(t, 2, stored.ReviewStage)
		assert.Equal(t, 4, stored.ReviewCount)
		assert.Equal(t, 3, stored.CorrectCount)
	})

	t.Run("異常系: mutateがエラーを返したらロールバック", func(t *testing.T) {
		db := setupTestDB(t)
		learnerID := uuid.New()
		item := seedItem(t, db, &model.VocabularyItem{
			LearnerID: learnerID, ReviewStage: 1, ReviewCount: 3,
		})

		mutateErr := errors.New("mutate failed")
		updated, err := repo.AtomicUpdate(ctx, db, learnerID, item.ItemID, func(it *model.VocabularyItem) error {
			it.ReviewStage = 4
			return mutateErr
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, mutateErr)
		assert.Nil(t, updated)

		// 部分的な状態は残らない
		var stored model.VocabularyItem
		require.NoError(t, db.Where("item_id = ?", item.ItemID).First(&stored).Error)
		assert.Equal(t, 1, stored.ReviewStage)
		assert.Equal(t, 3, stored.ReviewCount)
	})

	t.Run("異常系: アイテムが存在しない", func(t *testing.T) {
		db := setupTestDB(t)

		updated, err := repo.AtomicUpdate(ctx, db, uuid.New(), uuid.New(), func(it *model.VocabularyItem) error {
			t.Fatal("mutate should not be called for missing item")
			return nil
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, updated)
	})

	t.Run("異常系: 学習者が違えば見えない", func(t *testing.T) {
		db := setupTestDB(t)
		item := seedItem(t, db, &model.VocabularyItem{LearnerID: uuid.New()})

		_, err := repo.AtomicUpdate(ctx, db, uuid.New(), item.ItemID, func(it *model.VocabularyItem) error {
			return nil
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

// --- Test Update / Delete ---
func Test_gormItemRepository_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewGormItemRepository()

	t.Run("正常系: Updateで指定カラムのみ更新", func(t *testing.T) {
		db := setupTestDB(t)
		learnerID := uuid.New()
		item := seedItem(t, db, &model.VocabularyItem{
			LearnerID: learnerID, Word: "before", Meaning: "変更前", ReviewStage: 2,
		})

		err := repo.Update(ctx, db, learnerID, item.ItemID, map[string]interface{}{"word": "after"})
		require.NoError(t, err)

		var stored model.VocabularyItem
		require.NoError(t, db.Where("item_id = ?", item.ItemID).First(&stored).Error)
		assert.Equal(t, "after", stored.Word)
		assert.Equal(t, "変更前", stored.Meaning)
		assert.Equal(t, 2, stored.ReviewStage)
	})

	t.Run("異常系: Updateの対象が存在しない", func(t *testing.T) {
		db := setupTestDB(t)

		err := repo.Update(ctx, db, uuid.New(), uuid.New(), map[string]interface{}{"word": "x"})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("正常系: Deleteは論理削除でFindByIDから見えなくなる", func(t *testing.T) {
		db := setupTestDB(t)
		learnerID := uuid.New()
		item := seedItem(t, db, &model.VocabularyItem{LearnerID: learnerID})

		require.NoError(t, repo.Delete(ctx, db, learnerID, item.ItemID))

		_, err := repo.FindByID(ctx, db, learnerID, item.ItemID)
		assert.ErrorIs(t, err, model.ErrNotFound)

		// 行自体は deleted_at 付きで残っている
		var stored model.VocabularyItem
		require.NoError(t, db.Unscoped().Where("item_id = ?", item.ItemID).First(&stored).Error)
		assert.True(t, stored.DeletedAt.Valid)
	})

	t.Run("異常系: Deleteの対象が存在しない", func(t *testing.T) {
		db := setupTestDB(t)

		err := repo.Delete(ctx, db, uuid.New(), uuid.New())
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

// --- Test CheckWordExists ---
func Test_gormItemRepository_CheckWordExists(t *testing.T) {
	ctx := context.Background()
	repo := NewGormItemRepository()

	t.Run("正常系: 同一学習者の同一単語を検出", func(t *testing.T) {
		db := setupTestDB(t)
		learnerID := uuid.New()
		item := seedItem(t, db, &model.VocabularyItem{LearnerID: learnerID, Word: "dup"})

		exists, err := repo.CheckWordExists(ctx, db, learnerID, "dup", nil)
		require.NoError(t, err)
		assert.True(t, exists)

		// 自分自身を除外すれば重複なし（更新時のチェック）
		exists, err = repo.CheckWordExists(ctx, db, learnerID, "dup", &item.ItemID)
		require.NoError(t, err)
		assert.False(t, exists)

		// 別の学習者の同一単語は重複にならない
		exists, err = repo.CheckWordExists(ctx, db, uuid.New(), "dup", nil)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
