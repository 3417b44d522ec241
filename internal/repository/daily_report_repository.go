package repository

import (
	"context"

	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"gorm.io/gorm"
)

// DailyReportRepository defines the interface for daily report data access
type DailyReportRepository interface {
	FindByID(ctx context.Context, id uint) (*models.DailyReport, error)
	Create(ctx context.Context, report *models.DailyReport) error
	Update(ctx context.Context, report *models.DailyReport) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) (int64, error)
	List(ctx context.Context, scope OwnerScope) ([]models.DailyReport, error)
	GetStats(ctx context.Context, scope OwnerScope) (*DailyReportStats, error)
}

// DailyReportStats aggregates report counts for the summary endpoint
type DailyReportStats struct {
	TotalDailyReports int64 `json:"total_daily_reports"`
	PendingReports    int64 `json:"pending_reports"`
	ApprovedReports   int64 `json:"approved_reports"`
}

type dailyReportRepository struct {
	db *gorm.DB
}

// NewDailyReportRepository creates a new daily report repository
func NewDailyReportRepository(db *gorm.DB) DailyReportRepository {
	return &dailyReportRepository{db: db}
}

func (r *dailyReportRepository) FindByID(ctx context.Context, id uint) (*models.DailyReport, error) {
	var report models.DailyReport
	err := r.db.WithContext(ctx).First(&report, id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *dailyReportRepository) Create(ctx context.Context, report *models.DailyReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *dailyReportRepository) Update(ctx context.Context, report *models.DailyReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}

// UpdateFields applies a partial column update inside a transaction.
func (r *dailyReportRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.DailyReport{}).
			Where("id = ?", id).
			Updates(fields).Error
	})
}

func (r *dailyReportRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.DailyReport{}, id)
	return res.RowsAffected, res.Error
}

func (r *dailyReportRepository) List(ctx context.Context, scope OwnerScope) ([]models.DailyReport, error) {
	var reports []models.DailyReport
	db := r.db.WithContext(ctx)
	if !scope.All {
		db = db.Where("user_id = ?", scope.UserID)
	}
	err := db.Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (r *dailyReportRepository) GetStats(ctx context.Context, scope OwnerScope) (*DailyReportStats, error) {
	stats := &DailyReportStats{}
	db := r.db.WithContext(ctx).Model(&models.DailyReport{})
	if !scope.All {
		db = db.Where("user_id = ?", scope.UserID)
	}

	if err := db.Session(&gorm.Session{}).Count(&stats.TotalDailyReports).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).
		Where("status = ?", models.ReviewStatusPending).
		Count(&stats.PendingReports).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).
		Where("status = ?", models.ReviewStatusApproved).
		Count(&stats.ApprovedReports).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
