// internal/model/review.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewItemResponse は復習対象アイテムのレスポンスDTO
type ReviewItemResponse struct {
	ItemID           uuid.UUID  `json:"item_id"`
	Word             string     `json:"word"`
	Reading          string     `json:"reading,omitempty"`
	Meaning          string     `json:"meaning"` // 正解表示用に含める
	ReviewStage      int        `json:"review_stage"`
	FamiliarityLevel int        `json:"familiarity_level"`
	NextReviewAt     *time.Time `json:"next_review_at"`
}

// SubmitReviewRequest は復習結果送信リクエストのDTO
type SubmitReviewRequest struct {
	Remembered *bool `json:"remembered" validate:"required"`
}

// ReviewCountResponse は本日レビュー可能な残り件数のレスポンスDTO
type ReviewCountResponse struct {
	Count int64 `json:"count"`
}
