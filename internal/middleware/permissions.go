package middleware

import (
	"github.com/liftwerk/zeiterfassung-api/internal/models"
)

// Permission strings used by RequirePermission and the services
const (
	PermOrdersRead      = "orders.read"
	PermOrdersManage    = "orders.manage"
	PermReportsCreate   = "reports.create"
	PermReportsReview   = "reports.review"
	PermTimeTrack       = "time.track"
	PermTimeApprove     = "time.approve"
	PermAbsencesRequest = "absences.request"
	PermAbsencesReview  = "absences.review"
	PermPayrollExport   = "payroll.export"
	PermCustomersManage = "customers.manage"
	PermAuditRead       = "audit.read"
	PermUsersManage     = "users.manage"
	PermMonitoringRead  = "monitoring.read"
)

// rolePermissions is the static role to permission-set table. Admin is
// not listed, it implicitly holds every permission.
var rolePermissions = map[string][]string{
	models.RoleMonteur: {
		PermOrdersRead,
		PermReportsCreate,
		PermTimeTrack,
		PermAbsencesRequest,
	},
	models.RoleBuero: {
		PermOrdersRead,
		PermOrdersManage,
		PermReportsCreate,
		PermReportsReview,
		PermAbsencesReview,
		PermCustomersManage,
	},
	models.RoleLohn: {
		PermOrdersRead,
		PermTimeApprove,
		PermPayrollExport,
	},
}

// RoleHasPermission reports whether a role holds the given permission.
// Unknown roles and unknown permissions deny.
func RoleHasPermission(role, permission string) bool {
	if role == models.RoleAdmin {
		return true
	}
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
