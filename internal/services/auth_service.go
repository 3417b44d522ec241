package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/liftwerk/zeiterfassung-api/internal/config"
	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/liftwerk/zeiterfassung-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles login sessions
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	audit       *AuditService
	cfg         *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, audit *AuditService, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		audit:       audit,
		cfg:         cfg,
	}
}

// LoginResult represents the result of a login attempt
type LoginResult struct {
	Token string              `json:"-"`
	User  models.UserResponse `json:"user"`
}

// Login authenticates a user, creates a server-side session and returns
// the signed session token. Failed attempts are audited.
func (s *AuthService) Login(ctx context.Context, email, password, ip, userAgent string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.audit.Record(ctx, nil, models.AuditActionLoginFailed, "user", 0, "unknown email "+email, ip, userAgent)
		return nil, ErrInvalidCredentials
	}

	if !verifyPassword(password, user.EncryptedPassword) {
		s.audit.Record(ctx, &user.ID, models.AuditActionLoginFailed, "user", user.ID, "password mismatch", ip, userAgent)
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive() {
		s.audit.Record(ctx, &user.ID, models.AuditActionLoginFailed, "user", user.ID, "account disabled", ip, userAgent)
		return nil, ErrAccountDisabled
	}

	session, err := s.createSession(ctx, user, ip, userAgent)
	if err != nil {
		return nil, err
	}

	token, err := s.signToken(user, session)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &user.ID, models.AuditActionLogin, "session", session.ID, "", ip, userAgent)

	return &LoginResult{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

// Logout deletes the server-side session, invalidating the token
// immediately.
func (s *AuthService) Logout(ctx context.Context, sessionID uint, userID uint, ip, userAgent string) error {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.audit.Record(ctx, &userID, models.AuditActionLogout, "session", sessionID, "", ip, userAgent)
	return nil
}

// CurrentUser returns the authenticated user's fresh record
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// CleanupExpiredSessions removes expired session rows. Run periodically
// by the background worker.
func (s *AuthService) CleanupExpiredSessions(ctx context.Context) error {
	_, err := s.sessionRepo.DeleteExpired(ctx)
	return err
}

func (s *AuthService) createSession(ctx context.Context, user *models.User, ip, userAgent string) (*models.Session, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(time.Duration(s.cfg.SessionTTLHours) * time.Hour)

	session := &models.Session{
		UserID:    user.ID,
		Token:     hex.EncodeToString(bytes),
		IPAddress: ip,
		UserAgent: userAgent,
		ExpiresAt: &expiresAt,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *AuthService) signToken(user *models.User, session *models.Session) (string, error) {
	claims := jwt.MapClaims{
		"session_id": session.ID,
		"user_id":    user.ID,
		"email":      user.Email,
		"role":       user.Role,
		"exp":        session.ExpiresAt.Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SessionSecret))
}

// SessionTTL exposes the configured session lifetime for the cookie
func (s *AuthService) SessionTTL() time.Duration {
	return time.Duration(s.cfg.SessionTTLHours) * time.Hour
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// verifyPassword compares a password against a stored hash. Besides
// bcrypt it accepts the legacy "sha256$<salt>$<hex>" format imported
// from the previous deployment, compared in constant time.
func verifyPassword(password, hash string) bool {
	if strings.HasPrefix(hash, "sha256$") {
		parts := strings.SplitN(hash, "$", 3)
		if len(parts) != 3 {
			return false
		}
		sum := sha256.Sum256([]byte(parts[1] + password))
		expected := hex.EncodeToString(sum[:])
		return subtle.ConstantTimeCompare([]byte(expected), []byte(parts[2])) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
