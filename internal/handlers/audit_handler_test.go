package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/liftwerk/zeiterfassung-api/internal/jobs"
	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/liftwerk/zeiterfassung-api/internal/repository"
	"github.com/liftwerk/zeiterfassung-api/internal/services"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestAuditHandler_Status_UsesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}, &models.Session{}))

	worker := jobs.NewWorker(1)
	defer worker.Shutdown()

	repos := repository.NewRepositories(db)
	monitoring := services.NewMonitoringService(db, worker, repos.Session, repos.User)
	audit := services.NewAuditService(&mockAuditRepo{}, 90)
	handler := NewAuditHandler(audit, monitoring)

	router := gin.New()
	router.GET("/monitoring/status", handler.Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/monitoring/status", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])

	status, ok := resp["status"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "healthy", status["database"])
}
