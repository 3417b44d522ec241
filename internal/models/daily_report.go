package models

import (
	"time"
)

// DailyReport is a technician's daily activity report (Tagesbericht).
type DailyReport struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"not null;index" json:"user_id"`
	ReportDate       string     `gorm:"type:date;not null;index" json:"report_date"`
	Location         string     `gorm:"not null" json:"location"`
	FactoryNumber    string     `gorm:"not null" json:"factory_number"`
	Activity         string     `gorm:"not null" json:"activity"`
	PerformanceValue float64    `gorm:"type:decimal(6,2);default:0" json:"performance_value"`
	EmergencyService bool       `gorm:"default:false" json:"emergency_service"`
	Note             string     `gorm:"type:text" json:"note"`
	Status           string     `gorm:"default:pending;index" json:"status"`
	ReviewedBy       *uint      `json:"reviewed_by"`
	ReviewedAt       *time.Time `json:"reviewed_at"`
	CreatedAt        time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for DailyReport
func (DailyReport) TableName() string {
	return "daily_reports"
}

// Review status constants, shared by daily reports and absence requests
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// MayReview returns true while the report awaits a decision
func (d *DailyReport) MayReview() bool {
	return d.Status == ReviewStatusPending
}
