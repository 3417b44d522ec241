package repository

import (
	"context"
	"time"

	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"gorm.io/gorm"
)

// TimeEntryRepository defines the interface for time entry data access
type TimeEntryRepository interface {
	FindByID(ctx context.Context, id uint) (*models.TimeEntry, error)
	FindOpenByUser(ctx context.Context, userID uint) (*models.TimeEntry, error)
	Create(ctx context.Context, entry *models.TimeEntry) error
	Update(ctx context.Context, entry *models.TimeEntry) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) (int64, error)
	List(ctx context.Context, scope OwnerScope) ([]models.TimeEntry, error)
	ListForMonth(ctx context.Context, userID uint, year int, month int) ([]models.TimeEntry, error)
}

type timeEntryRepository struct {
	db *gorm.DB
}

// NewTimeEntryRepository creates a new time entry repository
func NewTimeEntryRepository(db *gorm.DB) TimeEntryRepository {
	return &timeEntryRepository{db: db}
}

func (r *timeEntryRepository) FindByID(ctx context.Context, id uint) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	err := r.db.WithContext(ctx).First(&entry, id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindOpenByUser returns the user's entry without a clock-out, if any.
func (r *timeEntryRepository) FindOpenByUser(ctx context.Context, userID uint) (*models.TimeEntry, error) {
	var entry models.TimeEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.TimeEntryStatusOpen).
		Order("clock_in DESC").
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *timeEntryRepository) Create(ctx context.Context, entry *models.TimeEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *timeEntryRepository) Update(ctx context.Context, entry *models.TimeEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// UpdateFields applies a partial column update inside a transaction.
func (r *timeEntryRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.TimeEntry{}).
			Where("id = ?", id).
			Updates(fields).Error
	})
}

func (r *timeEntryRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.TimeEntry{}, id)
	return res.RowsAffected, res.Error
}

func (r *timeEntryRepository) List(ctx context.Context, scope OwnerScope) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	db := r.db.WithContext(ctx)
	if !scope.All {
		db = db.Where("user_id = ?", scope.UserID)
	}
	err := db.Order("created_at DESC").Find(&entries).Error
	return entries, err
}

// ListForMonth returns entries of one calendar month ordered by work
// date, as needed by the payroll export. userID 0 selects all users.
// The half-open date range keeps the query portable between the sqlite
// and postgres date representations.
func (r *timeEntryRepository) ListForMonth(ctx context.Context, userID uint, year int, month int) ([]models.TimeEntry, error) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	var entries []models.TimeEntry
	db := r.db.WithContext(ctx).
		Preload("User").
		Where("work_date >= ? AND work_date < ?",
			first.Format("2006-01-02"), next.Format("2006-01-02"))
	if userID != 0 {
		db = db.Where("user_id = ?", userID)
	}
	err := db.Order("work_date ASC, clock_in ASC").Find(&entries).Error
	return entries, err
}
