package models

import (
	"time"
)

// Order is a job assignment (Auftrag) for a technician.
type Order struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	OrderNumber   string     `gorm:"uniqueIndex;not null" json:"order_number"`
	Location      string     `gorm:"not null" json:"location"`
	FactoryNumber string     `gorm:"not null" json:"factory_number"`
	Activity      string     `gorm:"not null" json:"activity"`
	Description   string     `gorm:"type:text" json:"description"`
	Priority      string     `gorm:"default:normal" json:"priority"`
	Status        string     `gorm:"default:assigned;index" json:"status"`
	AssignedTo    uint       `gorm:"not null;index" json:"assigned_to"`
	CustomerID    *uint      `gorm:"index" json:"customer_id"`
	CreatedBy     *uint      `json:"created_by"`
	CompletedAt   *time.Time `json:"completed_at"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Associations
	Assignee *User     `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "orders"
}

// Order status constants
const (
	OrderStatusAssigned   = "assigned"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Order priority constants
const (
	PriorityLow       = "low"
	PriorityNormal    = "normal"
	PriorityHigh      = "high"
	PriorityEmergency = "emergency"
)

// MayStart returns true if the order can move to in_progress
func (o *Order) MayStart() bool {
	return o.Status == OrderStatusAssigned
}

// MayComplete returns true if the order can be completed
func (o *Order) MayComplete() bool {
	return o.Status == OrderStatusAssigned || o.Status == OrderStatusInProgress
}

// MayCancel returns true if the order can be cancelled
func (o *Order) MayCancel() bool {
	return o.Status == OrderStatusAssigned || o.Status == OrderStatusInProgress
}

// IsTerminal returns true once the order reached a final state
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}
