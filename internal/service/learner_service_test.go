// internal/service/learner_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"vocab_review_keep/internal/config"
	"vocab_review_keep/internal/model"
	"vocab_review_keep/internal/repository/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDBLearner() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for learner service testing: " + err.Error())
	}
	if err := db.AutoMigrate(&model.Learner{}); err != nil {
		panic("failed to migrate database for learner service testing: " + err.Error())
	}
	return db
}

func testLearnerConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret-key"
	cfg.JWT.ExpiryHours = 1
	return cfg
}

// --- Test Register ---
func Test_learnerService_Register(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBLearner()
	cfg := testLearnerConfig()

	validReq := &model.RegisterRequest{
		Name:     "テスト学習者",
		Email:    "learner@example.com",
		Password: "password123",
	}

	tests := []struct {
		name      string
		req       *model.RegisterRequest
		setupMock func(m *mocks.LearnerRepository)
		wantErr   error
	}{
		{
			name: "正常系: 登録成功",
			req:  validReq,
			setupMock: func(m *mocks.LearnerRepository) {
				m.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), validReq.Email).
					Return(nil, model.ErrNotFound).Once()
				m.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.MatchedBy(func(l *model.Learner) bool {
					assert.Equal(t, validReq.Name, l.Name)
					assert.Equal(t, validReq.Email, l.Email)
					assert.True(t, l.IsActive)
					// 平文パスワードを保存していないこと
					assert.NotEqual(t, validReq.Password, l.PasswordHash)
					assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(l.PasswordHash), []byte(validReq.Password)))
					return true
				})).Return(nil).Once()
			},
		},
		{
			name: "異常系: メールアドレスが既に使用されている",
			req:  validReq,
			setupMock: func(m *mocks.LearnerRepository) {
				m.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), validReq.Email).
					Return(&model.Learner{LearnerID: uuid.New(), Email: validReq.Email}, nil).Once()
			},
			wantErr: model.ErrConflict,
		},
		{
			name: "異常系: レースコンディションでの重複（Createで一意制約違反）",
			req:  validReq,
			setupMock: func(m *mocks.LearnerRepository) {
				m.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), validReq.Email).
					Return(nil, model.ErrNotFound).Once()
				m.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Learner")).
					Return(model.ErrConflict).Once()
			},
			wantErr: model.ErrConflict,
		},
		{
			name: "異常系: 重複チェックでDBエラー",
			req:  validReq,
			setupMock: func(m *mocks.LearnerRepository) {
				m.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), validReq.Email).
					Return(nil, errors.New("db error finding email")).Once()
			},
			wantErr: model.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.LearnerRepository)
			tt.setupMock(mockRepo)
			learnerService := NewLearnerService(db, mockRepo, cfg)

			learner, err := learnerService.Register(ctx, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, learner)
			} else {
				require.NoError(t, err)
				require.NotNil(t, learner)
				assert.NotEqual(t, uuid.Nil, learner.LearnerID)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

// --- Test Login ---
func Test_learnerService_Login(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBLearner()
	cfg := testLearnerConfig()

	learnerID := uuid.New()
	password := "correct-password"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	activeLearner := func() *model.Learner {
		return &model.Learner{
			LearnerID:    learnerID,
			Name:         "テスト学習者",
			Email:        "learner@example.com",
			PasswordHash: string(hashed),
			IsActive:     true,
		}
	}

	tests := []struct {
		name      string
		req       *model.LoginRequest
		setupMock func(m *mocks.LearnerRepository)
		wantErr   error
	}{
		{
			name: "正常系: ログイン成功",
			req:  &model.LoginRequest{Email: "learner@example.com", Password: password},
			setupMock: func(m *mocks.LearnerRepository) {
				m.On("FindByEmail", ctx, db, "learner@example.com").Return(activeLearner(), nil).Once()
			},
		},
		{
			name: "異常系: パスワード不一致",
			req:  &model.LoginRequest{Email: "learner@example.com", Password: "wrong-password"},
			setupMock: func(m *mocks.LearnerRepository) {
				m.On("FindByEmail", ctx, db, "learner@example.com").Return(activeLearner(), nil).Once()
			},
			wantErr: model.ErrForbidden,
		},
		{
			name: "異常系: 存在しないメールアドレス（パスワード不一致と同じ応答）",
			req:  &model.LoginRequest{Email: "unknown@example.com", Password: password},
			setupMock: func(m *mocks.LearnerRepository) {
				m.On("FindByEmail", ctx, db, "unknown@example.com").Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrForbidden,
		},
		{
			name: "異常系: アカウントが無効",
			req:  &model.LoginRequest{Email: "learner@example.com", Password: password},
			setupMock: func(m *mocks.LearnerRepository) {
				inactive := activeLearner()
				inactive.IsActive = false
				m.On("FindByEmail", ctx, db, "learner@example.com").Return(inactive, nil).Once()
			},
			wantErr: model.ErrForbidden,
		},
		{
			name: "異常系: DBエラー",
			req:  &model.LoginRequest{Email: "learner@example.com", Password: password},
			setupMock: func(m *mocks.LearnerRepository) {
				m.On("FindByEmail", ctx, db, "learner@example.com").Return(nil, errors.New("db down")).Once()
			},
			wantErr: model.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.LearnerRepository)
			tt.setupMock(mockRepo)
			learnerService := NewLearnerService(db, mockRepo, cfg)

			resp, err := learnerService.Login(ctx, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				require.NotEmpty(t, resp.AccessToken)

				// 発行されたトークンの subject が学習者IDであること
				token, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
					return []byte(cfg.JWT.SecretKey), nil
				})
				require.NoError(t, err)
				require.True(t, token.Valid)
				subject, err := token.Claims.GetSubject()
				require.NoError(t, err)
				assert.Equal(t, learnerID.String(), subject)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

// --- Test GetLearner ---
func Test_learnerService_GetLearner(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBLearner()
	cfg := testLearnerConfig()
	learnerID := uuid.New()

	t.Run("正常系: 取得成功", func(t *testing.T) {
		mockRepo := new(mocks.LearnerRepository)
		mockRepo.On("FindByID", ctx, db, learnerID).
			Return(&model.Learner{LearnerID: learnerID, Name: "n", Email: "e@example.com"}, nil).Once()
		learnerService := NewLearnerService(db, mockRepo, cfg)

		learner, err := learnerService.GetLearner(ctx, learnerID)
		require.NoError(t, err)
		assert.Equal(t, learnerID, learner.LearnerID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("異常系: 学習者が見つからない", func(t *testing.T) {
		mockRepo := new(mocks.LearnerRepository)
		mockRepo.On("FindByID", ctx, db, learnerID).Return(nil, model.ErrNotFound).Once()
		learnerService := NewLearnerService(db, mockRepo, cfg)

		learner, err := learnerService.GetLearner(ctx, learnerID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrLearnerNotFound)
		assert.Nil(t, learner)
		mockRepo.AssertExpectations(t)
	})
}
