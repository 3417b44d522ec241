package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/liftwerk/zeiterfassung-api/internal/config"
	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/liftwerk/zeiterfassung-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type mockUserRepo struct {
	repository.UserRepository
	mockFindByEmail func(ctx context.Context, email string) (*models.User, error)
	mockFindByID    func(ctx context.Context, id uint) (*models.User, error)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.mockFindByEmail(ctx, email)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.mockFindByID(ctx, id)
}

type mockSessionRepo struct {
	repository.SessionRepository
	mockCreate func(ctx context.Context, session *models.Session) error
	mockDelete func(ctx context.Context, id uint) error
}

func (m *mockSessionRepo) Create(ctx context.Context, session *models.Session) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, session)
	}
	session.ID = 1
	return nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, id uint) error {
	if m.mockDelete != nil {
		return m.mockDelete(ctx, id)
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:     "test",
		SessionSecret:   "test-secret",
		SessionTTLHours: 12,
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	mockRepo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	service := NewAuthService(mockRepo, &mockSessionRepo{}, newTestAudit(), testConfig())

	result, err := service.Login(context.Background(), "nobody@example.com", "password", "127.0.0.1", "test")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, _ := HashPassword("correct-password")
	mockRepo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email, EncryptedPassword: hash, Status: models.StatusActive}, nil
		},
	}
	service := NewAuthService(mockRepo, &mockSessionRepo{}, newTestAudit(), testConfig())

	result, err := service.Login(context.Background(), "user@example.com", "wrong-password", "127.0.0.1", "test")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	hash, _ := HashPassword("password")
	mockRepo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email, EncryptedPassword: hash, Status: models.StatusInactive}, nil
		},
	}
	service := NewAuthService(mockRepo, &mockSessionRepo{}, newTestAudit(), testConfig())

	result, err := service.Login(context.Background(), "inactive@example.com", "password", "127.0.0.1", "test")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestAuthService_Login_Success(t *testing.T) {
	hash, _ := HashPassword("password")
	mockRepo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{
				ID:                7,
				Email:             email,
				EncryptedPassword: hash,
				FullName:          "Max Monteur",
				Role:              models.RoleMonteur,
				Status:            models.StatusActive,
			}, nil
		},
	}
	var createdSession *models.Session
	sessions := &mockSessionRepo{
		mockCreate: func(ctx context.Context, session *models.Session) error {
			session.ID = 42
			createdSession = session
			return nil
		},
	}
	service := NewAuthService(mockRepo, sessions, newTestAudit(), testConfig())

	result, err := service.Login(context.Background(), "monteur@example.com", "password", "127.0.0.1", "test")
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, uint(7), result.User.ID)
	assert.Equal(t, models.RoleMonteur, result.User.Role)

	assert.NotNil(t, createdSession)
	assert.Equal(t, uint(7), createdSession.UserID)
	assert.NotEmpty(t, createdSession.Token)
	assert.NotNil(t, createdSession.ExpiresAt)
}

func TestAuthService_Login_LegacySHA256Password(t *testing.T) {
	// Hashes imported from the previous deployment: sha256$<salt>$<hex>
	salt := "pepper"
	sum := sha256.Sum256([]byte(salt + "old-password"))
	legacy := "sha256$" + salt + "$" + hex.EncodeToString(sum[:])

	mockRepo := &mockUserRepo{
		mockFindByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: 2, Email: email, EncryptedPassword: legacy, Status: models.StatusActive}, nil
		},
	}
	service := NewAuthService(mockRepo, &mockSessionRepo{}, newTestAudit(), testConfig())

	result, err := service.Login(context.Background(), "legacy@example.com", "old-password", "127.0.0.1", "test")
	assert.NoError(t, err)
	assert.NotNil(t, result)

	result, err = service.Login(context.Background(), "legacy@example.com", "not-it", "127.0.0.1", "test")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Logout_DeletesSession(t *testing.T) {
	var deletedID uint
	sessions := &mockSessionRepo{
		mockDelete: func(ctx context.Context, id uint) error {
			deletedID = id
			return nil
		},
	}
	service := NewAuthService(&mockUserRepo{}, sessions, newTestAudit(), testConfig())

	err := service.Logout(context.Background(), 42, 7, "127.0.0.1", "test")
	assert.NoError(t, err)
	assert.Equal(t, uint(42), deletedID)
}
