// internal/model/learner.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Learner は学習者の基本情報
type Learner struct {
	LearnerID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"learner_id"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"unique;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Learner) TableName() string {
	return "learners"
}

type ContextKey string

const (
	LearnerIDKey ContextKey = "learnerID"
)

// RegisterRequest は学習者登録APIのリクエストボディ (DTO)
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LearnerResponse はクライアントに返す学習者情報
type LearnerResponse struct {
	LearnerID uuid.UUID `json:"learner_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
