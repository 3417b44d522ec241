package models

import (
	"time"
)

// TimeEntry is a single clock-in/clock-out record of a technician.
// Hours are derived on clock-out; everything above RegularHoursPerDay
// counts as overtime.
type TimeEntry struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	WorkDate      string     `gorm:"type:date;not null;index" json:"work_date"`
	ClockIn       time.Time  `gorm:"not null" json:"clock_in"`
	ClockOut      *time.Time `json:"clock_out"`
	BreakStart    *time.Time `json:"break_start"`
	BreakEnd      *time.Time `json:"break_end"`
	TotalHours    float64    `gorm:"type:decimal(5,2);default:0" json:"total_hours"`
	RegularHours  float64    `gorm:"type:decimal(5,2);default:0" json:"regular_hours"`
	OvertimeHours float64    `gorm:"type:decimal(5,2);default:0" json:"overtime_hours"`
	WorkType      string     `gorm:"default:regular" json:"work_type"`
	Note          string     `gorm:"type:text" json:"note"`
	Status        string     `gorm:"default:open;index" json:"status"`
	ApprovedBy    *uint      `json:"approved_by"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for TimeEntry
func (TimeEntry) TableName() string {
	return "time_entries"
}

// RegularHoursPerDay is the threshold above which worked time counts as overtime.
const RegularHoursPerDay = 8.0

// Time entry status constants
const (
	TimeEntryStatusOpen      = "open"
	TimeEntryStatusCompleted = "completed"
	TimeEntryStatusApproved  = "approved"
	TimeEntryStatusRejected  = "rejected"
)

// Work type constants
const (
	WorkTypeRegular     = "regular"
	WorkTypeEmergency   = "emergency"
	WorkTypeMaintenance = "maintenance"
	WorkTypeAssembly    = "assembly"
)

// IsOpen returns true while the entry has no clock-out yet
func (t *TimeEntry) IsOpen() bool {
	return t.Status == TimeEntryStatusOpen
}

// DeriveHours fills TotalHours, RegularHours and OvertimeHours from the
// clock and break windows. A break is only subtracted when both ends are set.
func (t *TimeEntry) DeriveHours() {
	if t.ClockOut == nil {
		return
	}
	worked := t.ClockOut.Sub(t.ClockIn)
	if t.BreakStart != nil && t.BreakEnd != nil {
		worked -= t.BreakEnd.Sub(*t.BreakStart)
	}
	if worked < 0 {
		worked = 0
	}

	total := worked.Hours()
	t.TotalHours = total
	if total > RegularHoursPerDay {
		t.RegularHours = RegularHoursPerDay
		t.OvertimeHours = total - RegularHoursPerDay
	} else {
		t.RegularHours = total
		t.OvertimeHours = 0
	}
}
