package repository

import (
	"context"

	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"gorm.io/gorm"
)

// VacationRepository defines the interface for vacation request data access
type VacationRepository interface {
	FindByID(ctx context.Context, id uint) (*models.VacationRequest, error)
	Create(ctx context.Context, req *models.VacationRequest) error
	Update(ctx context.Context, req *models.VacationRequest) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) (int64, error)
	List(ctx context.Context, scope OwnerScope) ([]models.VacationRequest, error)
}

type vacationRepository struct {
	db *gorm.DB
}

// NewVacationRepository creates a new vacation request repository
func NewVacationRepository(db *gorm.DB) VacationRepository {
	return &vacationRepository{db: db}
}

func (r *vacationRepository) FindByID(ctx context.Context, id uint) (*models.VacationRequest, error) {
	var req models.VacationRequest
	err := r.db.WithContext(ctx).First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *vacationRepository) Create(ctx context.Context, req *models.VacationRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *vacationRepository) Update(ctx context.Context, req *models.VacationRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *vacationRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.VacationRequest{}).
			Where("id = ?", id).
			Updates(fields).Error
	})
}

func (r *vacationRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.VacationRequest{}, id)
	return res.RowsAffected, res.Error
}

func (r *vacationRepository) List(ctx context.Context, scope OwnerScope) ([]models.VacationRequest, error) {
	var reqs []models.VacationRequest
	db := r.db.WithContext(ctx)
	if !scope.All {
		db = db.Where("user_id = ?", scope.UserID)
	}
	err := db.Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}

// SickLeaveRepository defines the interface for sick leave data access
type SickLeaveRepository interface {
	FindByID(ctx context.Context, id uint) (*models.SickLeave, error)
	Create(ctx context.Context, leave *models.SickLeave) error
	Update(ctx context.Context, leave *models.SickLeave) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) (int64, error)
	List(ctx context.Context, scope OwnerScope) ([]models.SickLeave, error)
}

type sickLeaveRepository struct {
	db *gorm.DB
}

// NewSickLeaveRepository creates a new sick leave repository
func NewSickLeaveRepository(db *gorm.DB) SickLeaveRepository {
	return &sickLeaveRepository{db: db}
}

func (r *sickLeaveRepository) FindByID(ctx context.Context, id uint) (*models.SickLeave, error) {
	var leave models.SickLeave
	err := r.db.WithContext(ctx).First(&leave, id).Error
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

func (r *sickLeaveRepository) Create(ctx context.Context, leave *models.SickLeave) error {
	return r.db.WithContext(ctx).Create(leave).Error
}

func (r *sickLeaveRepository) Update(ctx context.Context, leave *models.SickLeave) error {
	return r.db.WithContext(ctx).Save(leave).Error
}

func (r *sickLeaveRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.SickLeave{}).
			Where("id = ?", id).
			Updates(fields).Error
	})
}

func (r *sickLeaveRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.SickLeave{}, id)
	return res.RowsAffected, res.Error
}

func (r *sickLeaveRepository) List(ctx context.Context, scope OwnerScope) ([]models.SickLeave, error) {
	var leaves []models.SickLeave
	db := r.db.WithContext(ctx)
	if !scope.All {
		db = db.Where("user_id = ?", scope.UserID)
	}
	err := db.Order("created_at DESC").Find(&leaves).Error
	return leaves, err
}
