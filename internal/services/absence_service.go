package services

import (
	"context"
	"fmt"
	"time"

	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/liftwerk/zeiterfassung-api/internal/repository"
	"github.com/liftwerk/zeiterfassung-api/internal/statemachine"
)

// AbsenceService manages vacation requests and sick leaves. Both follow
// the same pending → approved | rejected workflow but live in separate
// tables.
type AbsenceService struct {
	vacationRepo repository.VacationRepository
	sickRepo     repository.SickLeaveRepository
	audit        *AuditService
}

// NewAbsenceService creates a new absence service
func NewAbsenceService(vacationRepo repository.VacationRepository, sickRepo repository.SickLeaveRepository, audit *AuditService) *AbsenceService {
	return &AbsenceService{vacationRepo: vacationRepo, sickRepo: sickRepo, audit: audit}
}

// CreateAbsenceRequest carries the fields of a new vacation request or
// sick leave
type CreateAbsenceRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	HalfDay   bool   `json:"half_day"`
	Comment   string `json:"comment"`
}

func (r *CreateAbsenceRequest) validate() error {
	return requireFields(map[string]string{
		"start_date": r.StartDate,
		"end_date":   r.EndDate,
	})
}

var absenceUpdateColumns = map[string]bool{
	"start_date": true,
	"end_date":   true,
	"half_day":   true,
	"comment":    true,
}

// CreateVacation persists a new vacation request owned by the actor
func (s *AbsenceService) CreateVacation(ctx context.Context, actor Actor, req *CreateAbsenceRequest) (*models.VacationRequest, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	vacation := &models.VacationRequest{
		UserID:    actor.ID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		HalfDay:   req.HalfDay,
		Comment:   req.Comment,
		Status:    models.ReviewStatusPending,
	}
	if err := s.vacationRepo.Create(ctx, vacation); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actor.ID, models.AuditActionCreate, "vacation_request", vacation.ID,
		req.StartDate+" - "+req.EndDate, actor.IP, actor.UserAgent)
	return vacation, nil
}

// ListVacations returns vacation requests visible to the actor
func (s *AbsenceService) ListVacations(ctx context.Context, actor Actor) ([]models.VacationRequest, error) {
	return s.vacationRepo.List(ctx, actor.scope())
}

// UpdateVacation applies a partial update; unknown fields are ignored
func (s *AbsenceService) UpdateVacation(ctx context.Context, actor Actor, id uint, partial map[string]interface{}) (*models.VacationRequest, error) {
	vacation, err := s.visibleVacation(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	fields := filterColumns(partial, absenceUpdateColumns)
	if len(fields) > 0 {
		if err := s.vacationRepo.UpdateFields(ctx, vacation.ID, fields); err != nil {
			return nil, err
		}
	}

	updated, err := s.vacationRepo.FindByID(ctx, vacation.ID)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actor.ID, models.AuditActionUpdate, "vacation_request", vacation.ID, "", actor.IP, actor.UserAgent)
	return updated, nil
}

// DeleteVacation removes a request visible to the actor; false when no
// such row
func (s *AbsenceService) DeleteVacation(ctx context.Context, actor Actor, id uint) (bool, error) {
	vacation, err := s.visibleVacation(ctx, actor, id)
	if err != nil {
		return false, nil
	}
	rows, err := s.vacationRepo.Delete(ctx, vacation.ID)
	if err != nil {
		return false, err
	}
	if rows == 0 {
		return false, nil
	}
	s.audit.Record(ctx, &actor.ID, models.AuditActionDelete, "vacation_request", id, "", actor.IP, actor.UserAgent)
	return true, nil
}

// ReviewVacation approves or rejects a pending vacation request
func (s *AbsenceService) ReviewVacation(ctx context.Context, actor Actor, id uint, approve bool) (*models.VacationRequest, error) {
	vacation, err := s.vacationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	status, err := reviewTransition(ctx, vacation.Status, approve)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	vacation.Status = status
	vacation.ReviewedBy = &actor.ID
	vacation.ReviewedAt = &now
	if err := s.vacationRepo.Update(ctx, vacation); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actor.ID, models.AuditActionStatusChange, "vacation_request", vacation.ID,
		status, actor.IP, actor.UserAgent)
	return vacation, nil
}

// CreateSickLeave persists a new sick leave owned by the actor
func (s *AbsenceService) CreateSickLeave(ctx context.Context, actor Actor, req *CreateAbsenceRequest) (*models.SickLeave, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	leave := &models.SickLeave{
		UserID:    actor.ID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		HalfDay:   req.HalfDay,
		Comment:   req.Comment,
		Status:    models.ReviewStatusPending,
	}
	if err := s.sickRepo.Create(ctx, leave); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actor.ID, models.AuditActionCreate, "sick_leave", leave.ID,
		req.StartDate+" - "+req.EndDate, actor.IP, actor.UserAgent)
	return leave, nil
}

// ListSickLeaves returns sick leaves visible to the actor
func (s *AbsenceService) ListSickLeaves(ctx context.Context, actor Actor) ([]models.SickLeave, error) {
	return s.sickRepo.List(ctx, actor.scope())
}

// UpdateSickLeave applies a partial update; unknown fields are ignored
func (s *AbsenceService) UpdateSickLeave(ctx context.Context, actor Actor, id uint, partial map[string]interface{}) (*models.SickLeave, error) {
	leave, err := s.visibleSickLeave(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	fields := filterColumns(partial, absenceUpdateColumns)
	if len(fields) > 0 {
		if err := s.sickRepo.UpdateFields(ctx, leave.ID, fields); err != nil {
			return nil, err
		}
	}

	updated, err := s.sickRepo.FindByID(ctx, leave.ID)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actor.ID, models.AuditActionUpdate, "sick_leave", leave.ID, "", actor.IP, actor.UserAgent)
	return updated, nil
}

// DeleteSickLeave removes a sick leave visible to the actor; false when
// no such row
func (s *AbsenceService) DeleteSickLeave(ctx context.Context, actor Actor, id uint) (bool, error) {
	leave, err := s.visibleSickLeave(ctx, actor, id)
	if err != nil {
		return false, nil
	}
	rows, err := s.sickRepo.Delete(ctx, leave.ID)
	if err != nil {
		return false, err
	}
	if rows == 0 {
		return false, nil
	}
	s.audit.Record(ctx, &actor.ID, models.AuditActionDelete, "sick_leave", id, "", actor.IP, actor.UserAgent)
	return true, nil
}

// ReviewSickLeave approves or rejects a pending sick leave
func (s *AbsenceService) ReviewSickLeave(ctx context.Context, actor Actor, id uint, approve bool) (*models.SickLeave, error) {
	leave, err := s.sickRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	status, err := reviewTransition(ctx, leave.Status, approve)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	leave.Status = status
	leave.ReviewedBy = &actor.ID
	leave.ReviewedAt = &now
	if err := s.sickRepo.Update(ctx, leave); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actor.ID, models.AuditActionStatusChange, "sick_leave", leave.ID,
		status, actor.IP, actor.UserAgent)
	return leave, nil
}

// reviewTransition runs the shared review state machine
func reviewTransition(ctx context.Context, current string, approve bool) (string, error) {
	fsm := statemachine.NewReviewFSM(current)
	var err error
	if approve {
		err = fsm.Approve(ctx)
	} else {
		err = fsm.Reject(ctx)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	return fsm.Current(), nil
}

func (s *AbsenceService) visibleVacation(ctx context.Context, actor Actor, id uint) (*models.VacationRequest, error) {
	vacation, err := s.vacationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if !models.RoleSeesAllRecords(actor.Role) && vacation.UserID != actor.ID {
		return nil, ErrNotFound
	}
	return vacation, nil
}

func (s *AbsenceService) visibleSickLeave(ctx context.Context, actor Actor, id uint) (*models.SickLeave, error) {
	leave, err := s.sickRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if !models.RoleSeesAllRecords(actor.Role) && leave.UserID != actor.ID {
		return nil, ErrNotFound
	}
	return leave, nil
}
