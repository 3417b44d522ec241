package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/liftwerk/zeiterfassung-api/internal/repository"
	"github.com/liftwerk/zeiterfassung-api/internal/services"
	"github.com/stretchr/testify/assert"
)

type mockOrderRepo struct {
	repository.OrderRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Order, error)
	mockCreate   func(ctx context.Context, order *models.Order) error
	mockList     func(ctx context.Context, scope repository.OwnerScope) ([]models.Order, error)
}

func (m *mockOrderRepo) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockOrderRepo) Create(ctx context.Context, order *models.Order) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, order)
	}
	order.ID = 1
	return nil
}

func (m *mockOrderRepo) List(ctx context.Context, scope repository.OwnerScope) ([]models.Order, error) {
	return m.mockList(ctx, scope)
}

type mockAuditRepo struct {
	repository.AuditRepository
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	return nil
}

func orderTestRouter(repo repository.OrderRepository, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	audit := services.NewAuditService(&mockAuditRepo{}, 90)
	service := services.NewOrderService(repo, nil, audit)
	handler := NewOrderHandler(service)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", uint(1))
		c.Set("userRole", role)
	})
	router.GET("/orders", handler.Index)
	router.POST("/order", handler.Create)
	router.GET("/order/:id", handler.Show)
	return router
}

func TestOrderHandler_Create_MissingFields(t *testing.T) {
	router := orderTestRouter(&mockOrderRepo{}, models.RoleBuero)

	body, _ := json.Marshal(map[string]interface{}{"location": "Hamburg"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/order", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing required fields")
	assert.Contains(t, w.Body.String(), "activity")
	assert.Contains(t, w.Body.String(), "factory_number")
}

func TestOrderHandler_Create_Success(t *testing.T) {
	router := orderTestRouter(&mockOrderRepo{}, models.RoleBuero)

	body, _ := json.Marshal(map[string]interface{}{
		"location":       "Hamburg",
		"factory_number": "F-1001",
		"activity":       "Wartung",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/order", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool         `json:"success"`
		Order   models.Order `json:"order"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Order.OrderNumber)
}

func TestOrderHandler_Index_ScopedForMonteur(t *testing.T) {
	var capturedScope repository.OwnerScope
	repo := &mockOrderRepo{
		mockList: func(ctx context.Context, scope repository.OwnerScope) ([]models.Order, error) {
			capturedScope = scope
			return []models.Order{}, nil
		},
	}
	router := orderTestRouter(repo, models.RoleMonteur)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/orders", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, capturedScope.All)
	assert.Equal(t, uint(1), capturedScope.UserID)
}

func TestOrderHandler_Show_ForeignOrderIs404(t *testing.T) {
	repo := &mockOrderRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Order, error) {
			return &models.Order{ID: id, AssignedTo: 99, Status: models.OrderStatusAssigned}, nil
		},
	}
	router := orderTestRouter(repo, models.RoleMonteur)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/order/7", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestOrderHandler_Show_InvalidID(t *testing.T) {
	router := orderTestRouter(&mockOrderRepo{}, models.RoleBuero)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/order/abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
