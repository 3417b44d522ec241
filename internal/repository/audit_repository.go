package repository

import (
	"context"
	"time"

	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"gorm.io/gorm"
)

// AuditRepository defines the interface for audit log data access.
// There is no update method, audit rows are append-only.
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, limit, offset int) ([]models.AuditLog, int64, error)
	ListByActions(ctx context.Context, actions []string, limit int) ([]models.AuditLog, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time, excludedActions []string) (int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit log repository
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) List(ctx context.Context, limit, offset int) ([]models.AuditLog, int64, error) {
	var logs []models.AuditLog
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	return logs, total, err
}

func (r *auditRepository) ListByActions(ctx context.Context, actions []string, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := r.db.WithContext(ctx).
		Where("action IN ?", actions).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// DeleteOlderThan removes entries past the retention horizon, keeping
// the excluded security-critical actions indefinitely.
func (r *auditRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time, excludedActions []string) (int64, error) {
	db := r.db.WithContext(ctx).Where("created_at < ?", cutoff)
	if len(excludedActions) > 0 {
		db = db.Where("action NOT IN ?", excludedActions)
	}
	res := db.Delete(&models.AuditLog{})
	return res.RowsAffected, res.Error
}
