package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/liftwerk/zeiterfassung-api/internal/repository"
	"github.com/stretchr/testify/assert"
)

type mockAuditRepo struct {
	repository.AuditRepository
	mockCreate          func(ctx context.Context, entry *models.AuditLog) error
	mockList            func(ctx context.Context, limit, offset int) ([]models.AuditLog, int64, error)
	mockListByActions   func(ctx context.Context, actions []string, limit int) ([]models.AuditLog, error)
	mockDeleteOlderThan func(ctx context.Context, cutoff time.Time, excludedActions []string) (int64, error)
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, entry)
	}
	return nil
}

func (m *mockAuditRepo) List(ctx context.Context, limit, offset int) ([]models.AuditLog, int64, error) {
	return m.mockList(ctx, limit, offset)
}

func (m *mockAuditRepo) ListByActions(ctx context.Context, actions []string, limit int) ([]models.AuditLog, error) {
	return m.mockListByActions(ctx, actions, limit)
}

func (m *mockAuditRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time, excludedActions []string) (int64, error) {
	return m.mockDeleteOlderThan(ctx, cutoff, excludedActions)
}

// newTestAudit builds an audit service with a discarding repository,
// used by the other service tests.
func newTestAudit() *AuditService {
	return NewAuditService(&mockAuditRepo{}, 90)
}

func TestAuditService_Record_SwallowsRepoErrors(t *testing.T) {
	mockRepo := &mockAuditRepo{
		mockCreate: func(ctx context.Context, entry *models.AuditLog) error {
			return errors.New("disk full")
		},
	}
	service := NewAuditService(mockRepo, 90)

	// Must not panic or surface the error in any way
	userID := uint(1)
	service.Record(context.Background(), &userID, models.AuditActionCreate, "order", 7, "", "127.0.0.1", "test")
}

func TestAuditService_Record_PersistsEntry(t *testing.T) {
	var captured *models.AuditLog
	mockRepo := &mockAuditRepo{
		mockCreate: func(ctx context.Context, entry *models.AuditLog) error {
			captured = entry
			return nil
		},
	}
	service := NewAuditService(mockRepo, 90)

	userID := uint(5)
	service.Record(context.Background(), &userID, models.AuditActionStatusChange, "order", 3, "assigned -> in_progress", "10.0.0.1", "cli")

	assert.NotNil(t, captured)
	assert.Equal(t, models.AuditActionStatusChange, captured.Action)
	assert.Equal(t, "order", captured.Entity)
	assert.Equal(t, uint(3), captured.EntityID)
	assert.Equal(t, &userID, captured.UserID)
}

func TestAuditService_PermissionDenied_RecordsAction(t *testing.T) {
	var captured *models.AuditLog
	mockRepo := &mockAuditRepo{
		mockCreate: func(ctx context.Context, entry *models.AuditLog) error {
			captured = entry
			return nil
		},
	}
	service := NewAuditService(mockRepo, 90)

	userID := uint(2)
	service.PermissionDenied(context.Background(), &userID, "permission:payroll.export", "/api/lohn/export", "10.0.0.1", "cli")

	assert.NotNil(t, captured)
	assert.Equal(t, models.AuditActionPermissionDenied, captured.Action)
	assert.Contains(t, captured.Details, "payroll.export")
	assert.Contains(t, captured.Details, "/api/lohn/export")
}

func TestAuditService_List_ClampsLimit(t *testing.T) {
	var capturedLimit int
	mockRepo := &mockAuditRepo{
		mockList: func(ctx context.Context, limit, offset int) ([]models.AuditLog, int64, error) {
			capturedLimit = limit
			return nil, 0, nil
		},
	}
	service := NewAuditService(mockRepo, 90)

	_, _, err := service.List(context.Background(), 10000, 0)
	assert.NoError(t, err)
	assert.Equal(t, 50, capturedLimit)

	_, _, err = service.List(context.Background(), -1, 0)
	assert.NoError(t, err)
	assert.Equal(t, 50, capturedLimit)
}

func TestAuditService_Sweep_KeepsSecurityCriticalActions(t *testing.T) {
	var capturedExcluded []string
	var capturedCutoff time.Time
	mockRepo := &mockAuditRepo{
		mockDeleteOlderThan: func(ctx context.Context, cutoff time.Time, excludedActions []string) (int64, error) {
			capturedCutoff = cutoff
			capturedExcluded = excludedActions
			return 12, nil
		},
	}
	service := NewAuditService(mockRepo, 30)

	err := service.Sweep(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, models.SecurityCriticalActions, capturedExcluded)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -30), capturedCutoff, time.Minute)
}

func TestAuditService_Alerts_UsesSecurityCriticalActions(t *testing.T) {
	var capturedActions []string
	mockRepo := &mockAuditRepo{
		mockListByActions: func(ctx context.Context, actions []string, limit int) ([]models.AuditLog, error) {
			capturedActions = actions
			return []models.AuditLog{}, nil
		},
	}
	service := NewAuditService(mockRepo, 90)

	alerts, err := service.Alerts(context.Background(), 20)
	assert.NoError(t, err)
	assert.Empty(t, alerts)
	assert.Equal(t, models.SecurityCriticalActions, capturedActions)
}
