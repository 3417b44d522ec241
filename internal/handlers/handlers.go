package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/liftwerk/zeiterfassung-api/internal/middleware"
	"github.com/liftwerk/zeiterfassung-api/internal/services"
	"github.com/liftwerk/zeiterfassung-api/pkg/logger"
)

// Handlers holds all handler instances
type Handlers struct {
	Health      *HealthHandler
	Auth        *AuthHandler
	User        *UserHandler
	Order       *OrderHandler
	DailyReport *DailyReportHandler
	TimeEntry   *TimeEntryHandler
	Absence     *AbsenceHandler
	Customer    *CustomerHandler
	Export      *ExportHandler
	Audit       *AuditHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(),
		Auth:        NewAuthHandler(svcs.Auth),
		User:        NewUserHandler(svcs.User),
		Order:       NewOrderHandler(svcs.Order),
		DailyReport: NewDailyReportHandler(svcs.DailyReport),
		TimeEntry:   NewTimeEntryHandler(svcs.TimeEntry),
		Absence:     NewAbsenceHandler(svcs.Absence),
		Customer:    NewCustomerHandler(svcs.Customer),
		Export:      NewExportHandler(svcs.Export, svcs.Report),
		Audit:       NewAuditHandler(svcs.Audit, svcs.Monitoring),
	}
}

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// @Summary Health Check
// @Description Checks if the API is running
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"service":   "zeiterfassung-api",
		"version":   "1.0.0",
	})
}

// actorFrom builds the acting-user context passed into services
func actorFrom(c *gin.Context) services.Actor {
	return services.Actor{
		ID:        middleware.GetUserID(c),
		Role:      middleware.GetUserRole(c),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// parseID reads a numeric path parameter. A zero return with ok=false
// means the 400 response has already been written.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s", name)})
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors onto HTTP statuses. Storage errors
// are logged but never leaked to the client.
func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, services.ErrAccountDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": "account disabled"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, services.ErrInvalidState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error(fmt.Sprintf("[%s] %v", c.FullPath(), err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
