package services

import (
	"context"
	"fmt"
	"time"

	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/liftwerk/zeiterfassung-api/internal/repository"
	"github.com/liftwerk/zeiterfassung-api/internal/statemachine"
)

// DailyReportService manages technician daily reports (Tagesberichte)
type DailyReportService struct {
	repo  repository.DailyReportRepository
	audit *AuditService
}

// NewDailyReportService creates a new daily report service
func NewDailyReportService(repo repository.DailyReportRepository, audit *AuditService) *DailyReportService {
	return &DailyReportService{repo: repo, audit: audit}
}

// CreateDailyReportRequest carries the fields of a new report
type CreateDailyReportRequest struct {
	ReportDate       string  `json:"report_date"`
	Location         string  `json:"location"`
	FactoryNumber    string  `json:"factory_number"`
	Activity         string  `json:"activity"`
	PerformanceValue float64 `json:"performance_value"`
	EmergencyService bool    `json:"emergency_service"`
	Note             string  `json:"note"`
}

// Create validates and persists a new daily report owned by the actor
func (s *DailyReportService) Create(ctx context.Context, actor Actor, req *CreateDailyReportRequest) (*models.DailyReport, error) {
	if err := requireFields(map[string]string{
		"report_date":    req.ReportDate,
		"location":       req.Location,
		"factory_number": req.FactoryNumber,
		"activity":       req.Activity,
	}); err != nil {
		return nil, err
	}

	report := &models.DailyReport{
		UserID:           actor.ID,
		ReportDate:       req.ReportDate,
		Location:         req.Location,
		FactoryNumber:    req.FactoryNumber,
		Activity:         req.Activity,
		PerformanceValue: req.PerformanceValue,
		EmergencyService: req.EmergencyService,
		Note:             req.Note,
		Status:           models.ReviewStatusPending,
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actor.ID, models.AuditActionCreate, "daily_report", report.ID, report.ReportDate, actor.IP, actor.UserAgent)
	return report, nil
}

// List returns reports visible to the actor, newest first
func (s *DailyReportService) List(ctx context.Context, actor Actor) ([]models.DailyReport, error) {
	return s.repo.List(ctx, actor.scope())
}

var dailyReportUpdateColumns = map[string]bool{
	"report_date":       true,
	"location":          true,
	"factory_number":    true,
	"activity":          true,
	"performance_value": true,
	"emergency_service": true,
	"note":              true,
}

// Update applies a partial update; unknown field names are ignored
func (s *DailyReportService) Update(ctx context.Context, actor Actor, id uint, partial map[string]interface{}) (*models.DailyReport, error) {
	report, err := s.visibleReport(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	fields := filterColumns(partial, dailyReportUpdateColumns)
	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, report.ID, fields); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.FindByID(ctx, report.ID)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actor.ID, models.AuditActionUpdate, "daily_report", report.ID, "", actor.IP, actor.UserAgent)
	return updated, nil
}

// Delete removes a report visible to the actor; false when no such row
func (s *DailyReportService) Delete(ctx context.Context, actor Actor, id uint) (bool, error) {
	report, err := s.visibleReport(ctx, actor, id)
	if err != nil {
		return false, nil
	}
	rows, err := s.repo.Delete(ctx, report.ID)
	if err != nil {
		return false, err
	}
	if rows == 0 {
		return false, nil
	}
	s.audit.Record(ctx, &actor.ID, models.AuditActionDelete, "daily_report", id, "", actor.IP, actor.UserAgent)
	return true, nil
}

// Approve accepts a pending report
func (s *DailyReportService) Approve(ctx context.Context, actor Actor, id uint) (*models.DailyReport, error) {
	return s.review(ctx, actor, id, true)
}

// Reject declines a pending report
func (s *DailyReportService) Reject(ctx context.Context, actor Actor, id uint) (*models.DailyReport, error) {
	return s.review(ctx, actor, id, false)
}

func (s *DailyReportService) review(ctx context.Context, actor Actor, id uint, approve bool) (*models.DailyReport, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	fsm := statemachine.NewReviewFSM(report.Status)
	if approve {
		err = fsm.Approve(ctx)
	} else {
		err = fsm.Reject(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	now := time.Now()
	report.Status = fsm.Current()
	report.ReviewedBy = &actor.ID
	report.ReviewedAt = &now
	if err := s.repo.Update(ctx, report); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actor.ID, models.AuditActionStatusChange, "daily_report", report.ID,
		report.Status, actor.IP, actor.UserAgent)
	return report, nil
}

func (s *DailyReportService) visibleReport(ctx context.Context, actor Actor, id uint) (*models.DailyReport, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if !models.RoleSeesAllRecords(actor.Role) && report.UserID != actor.ID {
		return nil, ErrNotFound
	}
	return report, nil
}
