package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/liftwerk/zeiterfassung-api/internal/repository"
)

// UserService manages accounts. Administration only; self-service
// password recovery is not part of this deployment.
type UserService struct {
	repo        repository.UserRepository
	sessionRepo repository.SessionRepository
	audit       *AuditService
}

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepository, sessionRepo repository.SessionRepository, audit *AuditService) *UserService {
	return &UserService{repo: repo, sessionRepo: sessionRepo, audit: audit}
}

// List returns all non-discarded users, newest first
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

// FindByID returns a single user
func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// CreateUserRequest carries the fields of a new account
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

// Create registers a new account with a bcrypt password hash
func (s *UserService) Create(ctx context.Context, actor Actor, req *CreateUserRequest) (*models.User, error) {
	if err := requireFields(map[string]string{
		"email":    req.Email,
		"password": req.Password,
		"name":     req.FullName,
	}); err != nil {
		return nil, err
	}
	if req.Role != "" && !models.ValidRole(req.Role) {
		return nil, &ValidationError{Fields: []string{"role"}}
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		EncryptedPassword: hash,
		FullName:          req.FullName,
		Phone:             req.Phone,
		Role:              req.Role,
		Status:            models.StatusActive,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actor.ID, models.AuditActionCreate, "user", user.ID, user.Email, actor.IP, actor.UserAgent)
	return user, nil
}

// userUpdateColumns excludes email: identity is immutable after
// registration.
var userUpdateColumns = map[string]bool{
	"full_name": true,
	"phone":     true,
	"role":      true,
}

// Update applies a partial update to name, phone or role
func (s *UserService) Update(ctx context.Context, actor Actor, id uint, partial map[string]interface{}) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	fields := filterColumns(partial, userUpdateColumns)
	if role, ok := fields["role"].(string); ok && !models.ValidRole(role) {
		return nil, &ValidationError{Fields: []string{"role"}}
	}

	if len(fields) > 0 {
		if role, ok := fields["role"].(string); ok {
			user.Role = role
		}
		if name, ok := fields["full_name"].(string); ok {
			user.FullName = name
		}
		if phone, ok := fields["phone"].(string); ok {
			user.Phone = phone
		}
		if err := s.repo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	s.audit.Record(ctx, &actor.ID, models.AuditActionUpdate, "user", user.ID, "", actor.IP, actor.UserAgent)
	return user, nil
}

// ToggleStatus flips an account between active and inactive. Disabling
// an account kills its sessions so the lockout is immediate.
func (s *UserService) ToggleStatus(ctx context.Context, actor Actor, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	newStatus := models.StatusInactive
	if user.Status == models.StatusInactive {
		newStatus = models.StatusActive
	}
	if err := s.repo.SetStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	user.Status = newStatus

	if newStatus == models.StatusInactive {
		if err := s.sessionRepo.DeleteByUser(ctx, id); err != nil {
			return nil, err
		}
		s.audit.Record(ctx, &actor.ID, models.AuditActionUserDisabled, "user", id, user.Email, actor.IP, actor.UserAgent)
	} else {
		s.audit.Record(ctx, &actor.ID, models.AuditActionUpdate, "user", id,
			fmt.Sprintf("status -> %s", newStatus), actor.IP, actor.UserAgent)
	}

	return user, nil
}

// Discard soft-deletes an account. Rows are never hard-deleted, audit
// entries keep referencing them.
func (s *UserService) Discard(ctx context.Context, actor Actor, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	if err := s.sessionRepo.DeleteByUser(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, &actor.ID, models.AuditActionDelete, "user", id, "discarded", actor.IP, actor.UserAgent)
	return nil
}
