package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/liftwerk/zeiterfassung-api/internal/services"
)

type AuditHandler struct {
	auditService      *services.AuditService
	monitoringService *services.MonitoringService
}

func NewAuditHandler(auditService *services.AuditService, monitoringService *services.MonitoringService) *AuditHandler {
	return &AuditHandler{auditService: auditService, monitoringService: monitoringService}
}

// @Summary Audit Logs
// @Description Paginated audit trail, newest first (Admin)
// @Tags Security
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} map[string]interface{}
// @Router /api/security/audit-logs [get]
func (h *AuditHandler) Index(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	logs, total, err := h.auditService.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "logs": logs, "total": total})
}

// @Summary System Status
// @Description Database, worker and session health (Admin)
// @Tags Monitoring
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/monitoring/status [get]
func (h *AuditHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "status": h.monitoringService.Status(c.Request.Context())})
}

// @Summary Security Alerts
// @Description Recent security-relevant audit entries (Admin)
// @Tags Monitoring
// @Produce json
// @Param limit query int false "Max entries" default(50)
// @Success 200 {object} map[string]interface{}
// @Router /api/monitoring/alerts [get]
func (h *AuditHandler) Alerts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	alerts, err := h.auditService.Alerts(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "alerts": alerts})
}
