package services

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/liftwerk/zeiterfassung-api/internal/repository"
	"github.com/liftwerk/zeiterfassung-api/pkg/logger"
)

// AuditService appends audit log entries. Writes are best effort: a
// failed insert is logged and reported but never fails the request that
// triggered it.
type AuditService struct {
	repo          repository.AuditRepository
	retentionDays int
}

// NewAuditService creates a new audit service
func NewAuditService(repo repository.AuditRepository, retentionDays int) *AuditService {
	return &AuditService{repo: repo, retentionDays: retentionDays}
}

// Record appends an audit entry. userID is nil for system actions.
func (s *AuditService) Record(ctx context.Context, userID *uint, action, entity string, entityID uint, details, ip, userAgent string) {
	entry := &models.AuditLog{
		UserID:    userID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   details,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		logger.Error("audit write failed", "action", action, "error", err)
		sentry.CaptureException(err)
	}
}

// PermissionDenied records an authorization denial. Satisfies the
// middleware Auditor interface.
func (s *AuditService) PermissionDenied(ctx context.Context, userID *uint, requirement, path, ip, userAgent string) {
	s.Record(ctx, userID, models.AuditActionPermissionDenied, "endpoint", 0,
		requirement+" "+path, ip, userAgent)
}

// List retrieves audit logs, newest first
func (s *AuditService) List(ctx context.Context, limit, offset int) ([]models.AuditLog, int64, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.List(ctx, limit, offset)
}

// Alerts returns recent security-relevant entries for the monitoring view
func (s *AuditService) Alerts(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListByActions(ctx, models.SecurityCriticalActions, limit)
}

// Sweep deletes entries older than the retention horizon. Security
// critical actions are kept indefinitely.
func (s *AuditService) Sweep(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	removed, err := s.repo.DeleteOlderThan(ctx, cutoff, models.SecurityCriticalActions)
	if err != nil {
		return err
	}
	if removed > 0 {
		logger.Info("audit retention sweep", "removed", removed, "cutoff", cutoff)
	}
	return nil
}
