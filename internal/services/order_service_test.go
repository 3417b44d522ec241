package services

import (
	"context"
	"strings"
	"testing"

	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/liftwerk/zeiterfassung-api/internal/repository"
	"github.com/stretchr/testify/assert"
)

type mockOrderRepo struct {
	repository.OrderRepository
	mockFindByID     func(ctx context.Context, id uint) (*models.Order, error)
	mockCreate       func(ctx context.Context, order *models.Order) error
	mockUpdate       func(ctx context.Context, order *models.Order) error
	mockUpdateFields func(ctx context.Context, id uint, fields map[string]interface{}) error
	mockDelete       func(ctx context.Context, id uint) (int64, error)
	mockList         func(ctx context.Context, scope repository.OwnerScope) ([]models.Order, error)
	mockGetStats     func(ctx context.Context, scope repository.OwnerScope) (*repository.OrderStats, error)
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

func (m *mockOrderRepo) Update(ctx context.Context, order *models.Order) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, order)
	}
	return nil
}

func (m *mockOrderRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return m.mockUpdateFields(ctx, id, fields)
}

func (m *mockOrderRepo) Delete(ctx context.Context, id uint) (int64, error) {
	return m.mockDelete(ctx, id)
}

func (m *mockOrderRepo) List(ctx context.Context, scope repository.OwnerScope) ([]models.Order, error) {
	return m.mockList(ctx, scope)
}

func (m *mockOrderRepo) GetStats(ctx context.Context, scope repository.OwnerScope) (*repository.OrderStats, error) {
	return m.mockGetStats(ctx, scope)
}

type mockDailyReportRepo struct {
	repository.DailyReportRepository
	mockFindByID func(ctx context.Context, id uint) (*models.DailyReport, error)
	mockDelete   func(ctx context.Context, id uint) (int64, error)
	mockGetStats func(ctx context.Context, scope repository.OwnerScope) (*repository.DailyReportStats, error)
}

func (m *mockDailyReportRepo) FindByID(ctx context.Context, id uint) (*models.DailyReport, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockDailyReportRepo) Delete(ctx context.Context, id uint) (int64, error) {
	return m.mockDelete(ctx, id)
}

func (m *mockDailyReportRepo) GetStats(ctx context.Context, scope repository.OwnerScope) (*repository.DailyReportStats, error) {
	return m.mockGetStats(ctx, scope)
}

func monteurActor(id uint) Actor {
	return Actor{ID: id, Role: models.RoleMonteur, IP: "127.0.0.1", UserAgent: "test"}
}

func bueroActor(id uint) Actor {
	return Actor{ID: id, Role: models.RoleBuero, IP: "127.0.0.1", UserAgent: "test"}
}

func TestOrderService_Create_MissingFields(t *testing.T) {
	service := NewOrderService(&mockOrderRepo{}, &mockDailyReportRepo{}, newTestAudit())

	order, err := service.Create(context.Background(), bueroActor(1), &CreateOrderRequest{
		Location: "Hamburg",
	})
	assert.Nil(t, order)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"activity", "factory_number"}, verr.Fields)
	assert.Equal(t, "missing required fields: activity, factory_number", err.Error())
}

func TestOrderService_Create_Defaults(t *testing.T) {
	service := NewOrderService(&mockOrderRepo{}, &mockDailyReportRepo{}, newTestAudit())

	order, err := service.Create(context.Background(), bueroActor(9), &CreateOrderRequest{
		Location:      "Hamburg",
		FactoryNumber: "F-1001",
		Activity:      "Wartung",
	})
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "A-"))
	assert.Equal(t, models.PriorityNormal, order.Priority)
	assert.Equal(t, models.OrderStatusAssigned, order.Status)
	assert.Equal(t, uint(9), order.AssignedTo)
}

func TestOrderService_List_ScopesMonteurToOwnOrders(t *testing.T) {
	var capturedScope repository.OwnerScope
	mockRepo := &mockOrderRepo{
		mockList: func(ctx context.Context, scope repository.OwnerScope) ([]models.Order, error) {
			capturedScope = scope
			return []models.Order{}, nil
		},
	}
	service := NewOrderService(mockRepo, &mockDailyReportRepo{}, newTestAudit())

	orders, err := service.List(context.Background(), monteurActor(3))
	assert.NoError(t, err)
	assert.Empty(t, orders)
	assert.False(t, capturedScope.All)
	assert.Equal(t, uint(3), capturedScope.UserID)

	_, err = service.List(context.Background(), bueroActor(4))
	assert.NoError(t, err)
	assert.True(t, capturedScope.All)
}

func TestOrderService_Get_HidesForeignOrdersFromMonteur(t *testing.T) {
	mockRepo := &mockOrderRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Order, error) {
			return &models.Order{ID: id, AssignedTo: 2, Status: models.OrderStatusAssigned}, nil
		},
	}
	service := NewOrderService(mockRepo, &mockDailyReportRepo{}, newTestAudit())

	order, err := service.Get(context.Background(), monteurActor(1), 5)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrNotFound)

	order, err = service.Get(context.Background(), bueroActor(1), 5)
	assert.NoError(t, err)
	assert.NotNil(t, order)
}

func TestOrderService_Update_FiltersUnknownColumns(t *testing.T) {
	var capturedFields map[string]interface{}
	mockRepo := &mockOrderRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Order, error) {
			return &models.Order{ID: id, AssignedTo: 1, Status: models.OrderStatusAssigned}, nil
		},
		mockUpdateFields: func(ctx context.Context, id uint, fields map[string]interface{}) error {
			capturedFields = fields
			return nil
		},
	}
	service := NewOrderService(mockRepo, &mockDailyReportRepo{}, newTestAudit())

	_, err := service.Update(context.Background(), bueroActor(1), 5, map[string]interface{}{
		"location": "Berlin",
		"status":   "completed",
		"id":       99,
	})
	assert.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"location": "Berlin"}, capturedFields)
}

func TestOrderService_Delete_MissingIDIsNotAnError(t *testing.T) {
	mockRepo := &mockOrderRepo{
		mockDelete: func(ctx context.Context, id uint) (int64, error) {
			return 0, nil
		},
	}
	service := NewOrderService(mockRepo, &mockDailyReportRepo{}, newTestAudit())

	deleted, err := service.Delete(context.Background(), bueroActor(1), 12345)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestOrderService_Start_FromAssigned(t *testing.T) {
	order := &models.Order{ID: 5, AssignedTo: 1, Status: models.OrderStatusAssigned}
	mockRepo := &mockOrderRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Order, error) {
			return order, nil
		},
	}
	service := NewOrderService(mockRepo, &mockDailyReportRepo{}, newTestAudit())

	updated, err := service.Start(context.Background(), monteurActor(1), 5)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusInProgress, updated.Status)
}

func TestOrderService_Complete_SetsCompletedAt(t *testing.T) {
	order := &models.Order{ID: 5, AssignedTo: 1, Status: models.OrderStatusInProgress}
	mockRepo := &mockOrderRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Order, error) {
			return order, nil
		},
	}
	service := NewOrderService(mockRepo, &mockDailyReportRepo{}, newTestAudit())

	updated, err := service.Complete(context.Background(), monteurActor(1), 5)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, updated.Status)
	assert.NotNil(t, updated.CompletedAt)
}

func TestOrderService_Start_FromTerminalState(t *testing.T) {
	mockRepo := &mockOrderRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Order, error) {
			return &models.Order{ID: id, AssignedTo: 1, Status: models.OrderStatusCompleted}, nil
		},
	}
	service := NewOrderService(mockRepo, &mockDailyReportRepo{}, newTestAudit())

	updated, err := service.Start(context.Background(), monteurActor(1), 5)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestOrderService_Summary_CombinesStats(t *testing.T) {
	mockRepo := &mockOrderRepo{
		mockGetStats: func(ctx context.Context, scope repository.OwnerScope) (*repository.OrderStats, error) {
			return &repository.OrderStats{TotalOrders: 10, ActiveOrders: 4, CompletedOrders: 6}, nil
		},
	}
	reportRepo := &mockDailyReportRepo{
		mockGetStats: func(ctx context.Context, scope repository.OwnerScope) (*repository.DailyReportStats, error) {
			return &repository.DailyReportStats{TotalDailyReports: 20, PendingReports: 3, ApprovedReports: 17}, nil
		},
	}
	service := NewOrderService(mockRepo, reportRepo, newTestAudit())

	summary, err := service.Summary(context.Background(), bueroActor(1))
	assert.NoError(t, err)
	assert.Equal(t, int64(10), summary.TotalOrders)
	assert.Equal(t, int64(3), summary.PendingReports)
}
