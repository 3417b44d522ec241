package repository

import (
	"context"

	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"gorm.io/gorm"
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, order *models.Order) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) (int64, error)
	List(ctx context.Context, scope OwnerScope) ([]models.Order, error)
	GetStats(ctx context.Context, scope OwnerScope) (*OrderStats, error)
}

// OrderStats aggregates order counts for the summary endpoint
type OrderStats struct {
	TotalOrders     int64 `json:"total_orders"`
	ActiveOrders    int64 `json:"active_orders"`
	CompletedOrders int64 `json:"completed_orders"`
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Preload("Customer").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// UpdateFields applies a partial column update inside a transaction.
func (r *orderRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Order{}).
			Where("id = ?", id).
			Updates(fields).Error
	})
}

func (r *orderRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Order{}, id)
	return res.RowsAffected, res.Error
}

func (r *orderRepository) List(ctx context.Context, scope OwnerScope) ([]models.Order, error) {
	var orders []models.Order
	db := r.db.WithContext(ctx).Preload("Assignee").Preload("Customer")
	if !scope.All {
		db = db.Where("assigned_to = ?", scope.UserID)
	}
	err := db.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetStats(ctx context.Context, scope OwnerScope) (*OrderStats, error) {
	stats := &OrderStats{}
	db := r.db.WithContext(ctx).Model(&models.Order{})
	if !scope.All {
		db = db.Where("assigned_to = ?", scope.UserID)
	}

	if err := db.Session(&gorm.Session{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).
		Where("status IN ?", []string{models.OrderStatusAssigned, models.OrderStatusInProgress}).
		Count(&stats.ActiveOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).
		Where("status = ?", models.OrderStatusCompleted).
		Count(&stats.CompletedOrders).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
