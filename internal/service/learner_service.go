// internal/service/learner_service.go
package service

import (
	"context"
	"errors"
	"time"

	"vocab_review_keep/internal/config"
	"vocab_review_keep/internal/middleware"
	"vocab_review_keep/internal/model"
	"vocab_review_keep/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LearnerService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.Learner, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	GetLearner(ctx context.Context, learnerID uuid.UUID) (*model.Learner, error)
}

type learnerService struct {
	db          *gorm.DB
	learnerRepo repository.LearnerRepository
	cfg         *config.Config
}

func NewLearnerService(db *gorm.DB, learnerRepo repository.LearnerRepository, cfg *config.Config) LearnerService {
	return &learnerService{
		db:          db,
		learnerRepo: learnerRepo,
		cfg:         cfg,
	}
}

// Register は新しい学習者を登録します
func (s *learnerService) Register(ctx context.Context, req *model.RegisterRequest) (*model.Learner, error) {
	logger := middleware.GetLogger(ctx)
	var newLearner *model.Learner

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Emailでの重複チェック
		_, err := s.learnerRepo.FindByEmail(ctx, tx, req.Email)
		if err == nil {
			logger.Warn("Email already exists", "email", req.Email)
			return model.NewAppError("DUPLICATE_EMAIL", "このメールアドレスは既に使用されています。", "email", model.ErrConflict)
		}
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Failed to check email existence", "error", err)
			return model.NewAppError("STORE_UNAVAILABLE", "サーバー内部でエラーが発生しました。", "", model.ErrStoreUnavailable)
		}

		// パスワードのハッシュ化
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash password", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "パスワードの処理中にエラーが発生しました。", "", model.ErrInternalServer)
		}

		learner := &model.Learner{
			LearnerID:    uuid.New(),
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(hashedPassword),
			IsActive:     true,
		}

		if err := s.learnerRepo.Create(ctx, tx, learner); err != nil {
			// レースコンディションでの重複
			if errors.Is(err, model.ErrConflict) {
				logger.Warn("Conflict during learner creation (race condition)", "error", err)
				return model.NewAppError("DUPLICATE_ENTRY", "指定されたメールアドレスは既に使用されています。", "email", model.ErrConflict)
			}
			logger.Error("Failed to create learner in DB", "error", err)
			return model.NewAppError("STORE_UNAVAILABLE", "学習者の作成に失敗しました。", "", model.ErrStoreUnavailable)
		}
		newLearner = learner
		return nil // トランザクション成功
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Learner registered", "learner_id", newLearner.LearnerID)
	return newLearner, nil
}

// Login は認証に成功した場合、アクセストークン(JWT)を発行します
func (s *learnerService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	logger := middleware.GetLogger(ctx)

	learner, err := s.learnerRepo.FindByEmail(ctx, s.db, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// 存在しないメールアドレスでもパスワード不一致と同じ応答にする
			return nil, model.NewAppError("INVALID_CREDENTIALS", "メールアドレスまたはパスワードが正しくありません。", "", model.ErrForbidden)
		}
		logger.Error("Failed to find learner by email", "error", err)
		return nil, model.NewAppError("STORE_UNAVAILABLE", "サーバー内部でエラーが発生しました。", "", model.ErrStoreUnavailable)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(learner.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Login failed: password mismatch", "learner_id", learner.LearnerID)
		return nil, model.NewAppError("INVALID_CREDENTIALS", "メールアドレスまたはパスワードが正しくありません。", "", model.ErrForbidden)
	}

	if !learner.IsActive {
		return nil, model.NewAppError("ACCOUNT_INACTIVE", "アカウントが無効化されています。", "", model.ErrForbidden)
	}

	now := time.Now()
	claims := model.JWTCustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    config.AppName,
			Subject:   learner.LearnerID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.JWT.ExpiryHours) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		logger.Error("Failed to sign JWT", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "トークンの発行に失敗しました。", "", model.ErrInternalServer)
	}

	logger.Info("Login succeeded", "learner_id", learner.LearnerID)
	return &model.LoginResponse{AccessToken: signed}, nil
}

func (s *learnerService) GetLearner(ctx context.Context, learnerID uuid.UUID) (*model.Learner, error) {
	learner, err := s.learnerRepo.FindByID(ctx, s.db, learnerID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "学習者が見つかりませんでした。", "", model.ErrLearnerNotFound)
		}
		return nil, model.NewAppError("STORE_UNAVAILABLE", "学習者情報の取得に失敗しました。", "", model.ErrStoreUnavailable)
	}
	return learner, nil
}
