package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/liftwerk/zeiterfassung-api/internal/repository"
	"gorm.io/gorm"
)

// TimeEntryService manages clock-in/clock-out time tracking
type TimeEntryService struct {
	repo  repository.TimeEntryRepository
	audit *AuditService
}

// NewTimeEntryService creates a new time entry service
func NewTimeEntryService(repo repository.TimeEntryRepository, audit *AuditService) *TimeEntryService {
	return &TimeEntryService{repo: repo, audit: audit}
}

// ClockInRequest carries the optional fields of a clock-in
type ClockInRequest struct {
	WorkType string `json:"work_type"`
	Note     string `json:"note"`
}

// ClockIn opens a new time entry for the actor. A user can only have one
// open entry at a time.
func (s *TimeEntryService) ClockIn(ctx context.Context, actor Actor, req *ClockInRequest) (*models.TimeEntry, error) {
	if open, err := s.repo.FindOpenByUser(ctx, actor.ID); err == nil && open != nil {
		return nil, fmt.Errorf("%w: already clocked in since %s", ErrInvalidState, open.ClockIn.Format(time.RFC3339))
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	entry := &models.TimeEntry{
		UserID:   actor.ID,
		WorkDate: now.Format("2006-01-02"),
		ClockIn:  now,
		WorkType: req.WorkType,
		Note:     req.Note,
		Status:   models.TimeEntryStatusOpen,
	}
	if entry.WorkType == "" {
		entry.WorkType = models.WorkTypeRegular
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actor.ID, models.AuditActionCreate, "time_entry", entry.ID, "clock-in", actor.IP, actor.UserAgent)
	return entry, nil
}

// ClockOutRequest carries the optional break window reported on clock-out
type ClockOutRequest struct {
	BreakStart *time.Time `json:"break_start"`
	BreakEnd   *time.Time `json:"break_end"`
	Note       string     `json:"note"`
}

// ClockOut closes the actor's open entry and derives worked hours
func (s *TimeEntryService) ClockOut(ctx context.Context, actor Actor, req *ClockOutRequest) (*models.TimeEntry, error) {
	entry, err := s.repo.FindOpenByUser(ctx, actor.ID)
	if err != nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	entry.ClockOut = &now
	entry.BreakStart = req.BreakStart
	entry.BreakEnd = req.BreakEnd
	if req.Note != "" {
		entry.Note = req.Note
	}
	entry.Status = models.TimeEntryStatusCompleted
	entry.DeriveHours()

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actor.ID, models.AuditActionUpdate, "time_entry", entry.ID, "clock-out", actor.IP, actor.UserAgent)
	return entry, nil
}

// List returns entries visible to the actor, newest first
func (s *TimeEntryService) List(ctx context.Context, actor Actor) ([]models.TimeEntry, error) {
	return s.repo.List(ctx, actor.scope())
}

var timeEntryUpdateColumns = map[string]bool{
	"work_type":   true,
	"note":        true,
	"break_start": true,
	"break_end":   true,
}

// Update applies a partial update and re-derives hours for completed
// entries when the break window changed.
func (s *TimeEntryService) Update(ctx context.Context, actor Actor, id uint, partial map[string]interface{}) (*models.TimeEntry, error) {
	entry, err := s.visibleEntry(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	fields := filterColumns(partial, timeEntryUpdateColumns)
	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, entry.ID, fields); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.FindByID(ctx, entry.ID)
	if err != nil {
		return nil, err
	}

	if updated.ClockOut != nil {
		updated.DeriveHours()
		if err := s.repo.Update(ctx, updated); err != nil {
			return nil, err
		}
	}

	s.audit.Record(ctx, &actor.ID, models.AuditActionUpdate, "time_entry", entry.ID, "", actor.IP, actor.UserAgent)
	return updated, nil
}

// Delete removes an entry visible to the actor; false when no such row
func (s *TimeEntryService) Delete(ctx context.Context, actor Actor, id uint) (bool, error) {
	entry, err := s.visibleEntry(ctx, actor, id)
	if err != nil {
		return false, nil
	}
	rows, err := s.repo.Delete(ctx, entry.ID)
	if err != nil {
		return false, err
	}
	if rows == 0 {
		return false, nil
	}
	s.audit.Record(ctx, &actor.ID, models.AuditActionDelete, "time_entry", id, "", actor.IP, actor.UserAgent)
	return true, nil
}

// Approve marks a completed entry as approved
func (s *TimeEntryService) Approve(ctx context.Context, actor Actor, id uint) (*models.TimeEntry, error) {
	return s.review(ctx, actor, id, models.TimeEntryStatusApproved)
}

// Reject marks a completed entry as rejected
func (s *TimeEntryService) Reject(ctx context.Context, actor Actor, id uint) (*models.TimeEntry, error) {
	return s.review(ctx, actor, id, models.TimeEntryStatusRejected)
}

func (s *TimeEntryService) review(ctx context.Context, actor Actor, id uint, status string) (*models.TimeEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if entry.Status != models.TimeEntryStatusCompleted {
		return nil, fmt.Errorf("%w: entry is %s, expected %s", ErrInvalidState, entry.Status, models.TimeEntryStatusCompleted)
	}

	entry.Status = status
	entry.ApprovedBy = &actor.ID
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actor.ID, models.AuditActionStatusChange, "time_entry", entry.ID, status, actor.IP, actor.UserAgent)
	return entry, nil
}

func (s *TimeEntryService) visibleEntry(ctx context.Context, actor Actor, id uint) (*models.TimeEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if !models.RoleSeesAllRecords(actor.Role) && entry.UserID != actor.ID {
		return nil, ErrNotFound
	}
	return entry, nil
}
