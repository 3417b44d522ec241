package models

import (
	"time"
)

// VacationRequest is a technician's vacation request over a date range.
type VacationRequest struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	StartDate  string     `gorm:"type:date;not null" json:"start_date"`
	EndDate    string     `gorm:"type:date;not null" json:"end_date"`
	HalfDay    bool       `gorm:"default:false" json:"half_day"`
	Comment    string     `gorm:"type:text" json:"comment"`
	Status     string     `gorm:"default:pending;index" json:"status"`
	ReviewedBy *uint      `json:"reviewed_by"`
	ReviewedAt *time.Time `json:"reviewed_at"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for VacationRequest
func (VacationRequest) TableName() string {
	return "vacation_requests"
}

// MayReview returns true while the request awaits a decision
func (v *VacationRequest) MayReview() bool {
	return v.Status == ReviewStatusPending
}

// SickLeave is a reported sick-leave period. Same shape as a vacation
// request but kept in its own table, they are reviewed by different roles
// in some deployments.
type SickLeave struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	StartDate  string     `gorm:"type:date;not null" json:"start_date"`
	EndDate    string     `gorm:"type:date;not null" json:"end_date"`
	HalfDay    bool       `gorm:"default:false" json:"half_day"`
	Comment    string     `gorm:"type:text" json:"comment"`
	Status     string     `gorm:"default:pending;index" json:"status"`
	ReviewedBy *uint      `json:"reviewed_by"`
	ReviewedAt *time.Time `json:"reviewed_at"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for SickLeave
func (SickLeave) TableName() string {
	return "sick_leaves"
}

// MayReview returns true while the sick leave awaits a decision
func (s *SickLeave) MayReview() bool {
	return s.Status == ReviewStatusPending
}
