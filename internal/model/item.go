// internal/model/item.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 復習ステージの範囲。ステージ5かつ正解数6以上で習得（mastered）となる。
const (
	MinReviewStage = 0
	MaxReviewStage = 5

	// 習得に必要な累計正解数
	MasteryCorrectCount = 6
)

// VocabularyItem は学習者ごとの単語と、その復習スケジュール状態を表します。
// スケジュール状態を同じ行に持つことで、復習結果の反映を1行の
// アトミックな更新として実行できます。
type VocabularyItem struct {
	ItemID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"item_id"`
	LearnerID uuid.UUID `gorm:"type:uuid;not null;index:idx_learner_word,unique" json:"-"`

	Word      string `gorm:"not null;index:idx_learner_word,unique" json:"word"` // 単語
	Reading   string `json:"reading,omitempty"`                                  // 読み（任意）
	Meaning   string `gorm:"not null" json:"meaning"`                            // 意味・説明
	SourceRef string `json:"source_ref,omitempty"`                               // 出典（任意）

	// スケジュール状態
	ReviewStage      int        `gorm:"not null;default:0" json:"review_stage"`      // 0〜5
	FamiliarityLevel int        `gorm:"not null;default:0" json:"familiarity_level"` // 0〜5
	Mastered         bool       `gorm:"not null;default:false;index" json:"mastered"`
	NextReviewAt     *time.Time `gorm:"index" json:"next_review_at"` // NULL は「即時レビュー対象」
	ReviewCount      int        `gorm:"not null;default:0" json:"review_count"`
	CorrectCount     int        `gorm:"not null;default:0" json:"correct_count"`
	LastReviewedAt   *time.Time `gorm:"index" json:"last_reviewed_at"` // 日次クォータ算出に使用

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用（削除はスケジューラの責務外）
}

func (VocabularyItem) TableName() string {
	return "items"
}

// 単語登録リクエストDTO
type CreateItemRequest struct {
	Word      string `json:"word" validate:"required,min=1,max=255"`
	Reading   string `json:"reading" validate:"max=255"`
	Meaning   string `json:"meaning" validate:"required,min=1"`
	SourceRef string `json:"source_ref" validate:"max=512"`
}

// 単語更新（全体）リクエストDTO
type PutItemRequest struct {
	Word    string `json:"word" validate:"required,min=1,max=255"`
	Reading string `json:"reading" validate:"max=255"`
	Meaning string `json:"meaning" validate:"required,min=1"`
}

// 単語更新（部分）リクエストDTO
type PatchItemRequest struct {
	Word    *string `json:"word,omitempty" validate:"omitempty,min=1,max=255"`
	Reading *string `json:"reading,omitempty" validate:"omitempty,max=255"`
	Meaning *string `json:"meaning,omitempty" validate:"omitempty,min=1"`
}
