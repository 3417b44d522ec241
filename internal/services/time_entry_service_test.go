package services

import (
	"context"
	"testing"
	"time"

	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/liftwerk/zeiterfassung-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type mockTimeEntryRepo struct {
	repository.TimeEntryRepository
	mockFindByID       func(ctx context.Context, id uint) (*models.TimeEntry, error)
	mockFindOpenByUser func(ctx context.Context, userID uint) (*models.TimeEntry, error)
	mockCreate         func(ctx context.Context, entry *models.TimeEntry) error
	mockUpdate         func(ctx context.Context, entry *models.TimeEntry) error
	mockDelete         func(ctx context.Context, id uint) (int64, error)
}

func (m *mockTimeEntryRepo) FindByID(ctx context.Context, id uint) (*models.TimeEntry, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockTimeEntryRepo) FindOpenByUser(ctx context.Context, userID uint) (*models.TimeEntry, error) {
	return m.mockFindOpenByUser(ctx, userID)
}

func (m *mockTimeEntryRepo) Create(ctx context.Context, entry *models.TimeEntry) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, entry)
	}
	entry.ID = 1
	return nil
}

func (m *mockTimeEntryRepo) Update(ctx context.Context, entry *models.TimeEntry) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, entry)
	}
	return nil
}

func (m *mockTimeEntryRepo) Delete(ctx context.Context, id uint) (int64, error) {
	return m.mockDelete(ctx, id)
}

func TestTimeEntryService_ClockIn_RejectsSecondOpenEntry(t *testing.T) {
	mockRepo := &mockTimeEntryRepo{
		mockFindOpenByUser: func(ctx context.Context, userID uint) (*models.TimeEntry, error) {
			return &models.TimeEntry{ID: 1, UserID: userID, ClockIn: time.Now().Add(-2 * time.Hour), Status: models.TimeEntryStatusOpen}, nil
		},
	}
	service := NewTimeEntryService(mockRepo, newTestAudit())

	entry, err := service.ClockIn(context.Background(), monteurActor(1), &ClockInRequest{})
	assert.Nil(t, entry)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestTimeEntryService_ClockIn_OpensEntry(t *testing.T) {
	mockRepo := &mockTimeEntryRepo{
		mockFindOpenByUser: func(ctx context.Context, userID uint) (*models.TimeEntry, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	service := NewTimeEntryService(mockRepo, newTestAudit())

	entry, err := service.ClockIn(context.Background(), monteurActor(7), &ClockInRequest{})
	assert.NoError(t, err)
	assert.Equal(t, uint(7), entry.UserID)
	assert.Equal(t, models.TimeEntryStatusOpen, entry.Status)
	assert.Equal(t, models.WorkTypeRegular, entry.WorkType)
	assert.Equal(t, time.Now().Format("2006-01-02"), entry.WorkDate)
}

func TestTimeEntryService_ClockOut_NoOpenEntry(t *testing.T) {
	mockRepo := &mockTimeEntryRepo{
		mockFindOpenByUser: func(ctx context.Context, userID uint) (*models.TimeEntry, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	service := NewTimeEntryService(mockRepo, newTestAudit())

	entry, err := service.ClockOut(context.Background(), monteurActor(1), &ClockOutRequest{})
	assert.Nil(t, entry)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTimeEntryService_ClockOut_DerivesHours(t *testing.T) {
	clockIn := time.Now().Add(-10 * time.Hour)
	mockRepo := &mockTimeEntryRepo{
		mockFindOpenByUser: func(ctx context.Context, userID uint) (*models.TimeEntry, error) {
			return &models.TimeEntry{ID: 3, UserID: userID, ClockIn: clockIn, Status: models.TimeEntryStatusOpen}, nil
		},
	}
	service := NewTimeEntryService(mockRepo, newTestAudit())

	breakStart := clockIn.Add(4 * time.Hour)
	breakEnd := breakStart.Add(1 * time.Hour)
	entry, err := service.ClockOut(context.Background(), monteurActor(1), &ClockOutRequest{
		BreakStart: &breakStart,
		BreakEnd:   &breakEnd,
	})
	assert.NoError(t, err)
	assert.Equal(t, models.TimeEntryStatusCompleted, entry.Status)
	assert.NotNil(t, entry.ClockOut)
	// 10h minus 1h break: 8h regular, 1h overtime
	assert.InDelta(t, 9.0, entry.TotalHours, 0.01)
	assert.InDelta(t, 8.0, entry.RegularHours, 0.01)
	assert.InDelta(t, 1.0, entry.OvertimeHours, 0.01)
}

func TestTimeEntryService_Approve_RequiresCompletedStatus(t *testing.T) {
	mockRepo := &mockTimeEntryRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.TimeEntry, error) {
			return &models.TimeEntry{ID: id, UserID: 1, Status: models.TimeEntryStatusOpen}, nil
		},
	}
	service := NewTimeEntryService(mockRepo, newTestAudit())

	lohn := Actor{ID: 9, Role: models.RoleLohn, IP: "127.0.0.1", UserAgent: "test"}
	entry, err := service.Approve(context.Background(), lohn, 3)
	assert.Nil(t, entry)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestTimeEntryService_Approve_SetsApprover(t *testing.T) {
	mockRepo := &mockTimeEntryRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.TimeEntry, error) {
			return &models.TimeEntry{ID: id, UserID: 1, Status: models.TimeEntryStatusCompleted}, nil
		},
	}
	service := NewTimeEntryService(mockRepo, newTestAudit())

	lohn := Actor{ID: 9, Role: models.RoleLohn, IP: "127.0.0.1", UserAgent: "test"}
	entry, err := service.Approve(context.Background(), lohn, 3)
	assert.NoError(t, err)
	assert.Equal(t, models.TimeEntryStatusApproved, entry.Status)
	assert.Equal(t, uint(9), *entry.ApprovedBy)
}

func TestTimeEntryService_Delete_HiddenFromOtherMonteur(t *testing.T) {
	deleteCalled := false
	mockRepo := &mockTimeEntryRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.TimeEntry, error) {
			return &models.TimeEntry{ID: id, UserID: 2, Status: models.TimeEntryStatusCompleted}, nil
		},
		mockDelete: func(ctx context.Context, id uint) (int64, error) {
			deleteCalled = true
			return 1, nil
		},
	}
	service := NewTimeEntryService(mockRepo, newTestAudit())

	deleted, err := service.Delete(context.Background(), monteurActor(1), 7)
	assert.NoError(t, err)
	assert.False(t, deleted)
	assert.False(t, deleteCalled)
}

func TestTimeEntryService_Delete_OwnEntry(t *testing.T) {
	mockRepo := &mockTimeEntryRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.TimeEntry, error) {
			return &models.TimeEntry{ID: id, UserID: 1, Status: models.TimeEntryStatusCompleted}, nil
		},
		mockDelete: func(ctx context.Context, id uint) (int64, error) {
			return 1, nil
		},
	}
	service := NewTimeEntryService(mockRepo, newTestAudit())

	deleted, err := service.Delete(context.Background(), monteurActor(1), 7)
	assert.NoError(t, err)
	assert.True(t, deleted)
}

func TestTimeEntryService_Delete_MissingIDIsNotAnError(t *testing.T) {
	mockRepo := &mockTimeEntryRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.TimeEntry, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	service := NewTimeEntryService(mockRepo, newTestAudit())

	deleted, err := service.Delete(context.Background(), monteurActor(1), 12345)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestTimeEntryDeriveHours_NoBreak(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	clockOut := clockIn.Add(7*time.Hour + 30*time.Minute)
	entry := &models.TimeEntry{ClockIn: clockIn, ClockOut: &clockOut}

	entry.DeriveHours()
	assert.InDelta(t, 7.5, entry.TotalHours, 0.001)
	assert.InDelta(t, 7.5, entry.RegularHours, 0.001)
	assert.Zero(t, entry.OvertimeHours)
}
