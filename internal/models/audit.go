package models

import (
	"time"
)

// AuditLog represents a system audit entry. Rows are append-only; the
// only deletion path is the scheduled retention sweep, which skips
// security-critical actions.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"` // nil for system actions
	Action    string    `gorm:"size:50;not null;index" json:"action"`
	Entity    string    `gorm:"size:50" json:"entity"`
	EntityID  uint      `json:"entity_id"`
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	UserAgent string    `gorm:"size:255" json:"user_agent"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit action constants
const (
	AuditActionLogin            = "login"
	AuditActionLoginFailed      = "login_failed"
	AuditActionLogout           = "logout"
	AuditActionPermissionDenied = "permission_denied"
	AuditActionCreate           = "create"
	AuditActionUpdate           = "update"
	AuditActionDelete           = "delete"
	AuditActionStatusChange     = "status_change"
	AuditActionUserDisabled     = "user_disabled"
	AuditActionExport           = "export"
)

// SecurityCriticalActions are exempt from the retention sweep and kept
// indefinitely.
var SecurityCriticalActions = []string{
	AuditActionLoginFailed,
	AuditActionPermissionDenied,
	AuditActionUserDisabled,
}
