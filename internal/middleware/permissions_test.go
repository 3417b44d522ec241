package middleware

import (
	"testing"

	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRoleHasPermission(t *testing.T) {
	tests := []struct {
		role       string
		permission string
		want       bool
	}{
		{models.RoleAdmin, PermPayrollExport, true},
		{models.RoleAdmin, "whatever.even.unknown", true},
		{models.RoleMonteur, PermTimeTrack, true},
		{models.RoleMonteur, PermOrdersManage, false},
		{models.RoleMonteur, PermAuditRead, false},
		{models.RoleBuero, PermOrdersManage, true},
		{models.RoleBuero, PermReportsReview, true},
		{models.RoleBuero, PermPayrollExport, false},
		{models.RoleLohn, PermPayrollExport, true},
		{models.RoleLohn, PermTimeApprove, true},
		{models.RoleLohn, PermCustomersManage, false},
		{"", PermOrdersRead, false},
		{"unknown", PermOrdersRead, false},
		{models.RoleMonteur, "unknown.permission", false},
	}

	for _, tt := range tests {
		got := RoleHasPermission(tt.role, tt.permission)
		assert.Equal(t, tt.want, got, "role=%q permission=%q", tt.role, tt.permission)
	}
}
