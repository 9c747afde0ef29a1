//go:generate mockery --name LearnerRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vocab_review_keep/internal/middleware"
	"vocab_review_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LearnerRepository interface {
	Create(ctx context.Context, tx *gorm.DB, learner *model.Learner) error
	FindByID(ctx context.Context, db *gorm.DB, learnerID uuid.UUID) (*model.Learner, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Learner, error)
}

type gormLearnerRepository struct{}

func NewGormLearnerRepository() LearnerRepository {
	return &gormLearnerRepository{}
}

func (r *gormLearnerRepository) Create(ctx context.Context, tx *gorm.DB, learner *model.Learner) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(learner)
	if result.Error != nil {
		// 一意制約違反はドライバ依存のエラーになるため文字列でも判定する
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) ||
			strings.Contains(result.Error.Error(), "duplicate") ||
			strings.Contains(result.Error.Error(), "UNIQUE constraint") {
			return model.ErrConflict
		}
		logger.Error("Error creating learner in DB",
			"error", result.Error,
			"email", learner.Email,
		)
		return fmt.Errorf("gormLearnerRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormLearnerRepository) FindByID(ctx context.Context, db *gorm.DB, learnerID uuid.UUID) (*model.Learner, error) {
	logger := middleware.GetLogger(ctx)
	var learner model.Learner
	result := db.WithContext(ctx).Where("learner_id = ?", learnerID).First(&learner)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding learner by ID in DB",
			"error", result.Error,
			"learner_id", learnerID.String(),
		)
		return nil, fmt.Errorf("gormLearnerRepository.FindByID: %w", result.Error)
	}
	return &learner, nil
}

func (r *gormLearnerRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Learner, error) {
	logger := middleware.GetLogger(ctx)
	var learner model.Learner
	result := db.WithContext(ctx).Where("email = ?", email).First(&learner)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding learner by email in DB", "error", result.Error)
		return nil, fmt.Errorf("gormLearnerRepository.FindByEmail: %w", result.Error)
	}
	return &learner, nil
}
