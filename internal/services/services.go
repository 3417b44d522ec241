package services

import (
	"github.com/liftwerk/zeiterfassung-api/internal/config"
	"github.com/liftwerk/zeiterfassung-api/internal/jobs"
	"github.com/liftwerk/zeiterfassung-api/internal/repository"
	"gorm.io/gorm"
)

// Services holds all service instances
type Services struct {
	Auth        *AuthService
	User        *UserService
	Order       *OrderService
	DailyReport *DailyReportService
	TimeEntry   *TimeEntryService
	Absence     *AbsenceService
	Customer    *CustomerService
	Export      *ExportService
	Report      *ReportService
	Audit       *AuditService
	Monitoring  *MonitoringService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config, db *gorm.DB) *Services {
	auditSvc := NewAuditService(repos.Audit, cfg.AuditRetentionDays)

	return &Services{
		Auth:        NewAuthService(repos.User, repos.Session, auditSvc, cfg),
		User:        NewUserService(repos.User, repos.Session, auditSvc),
		Order:       NewOrderService(repos.Order, repos.DailyReport, auditSvc),
		DailyReport: NewDailyReportService(repos.DailyReport, auditSvc),
		TimeEntry:   NewTimeEntryService(repos.TimeEntry, auditSvc),
		Absence:     NewAbsenceService(repos.Vacation, repos.SickLeave, auditSvc),
		Customer:    NewCustomerService(repos.Customer, auditSvc),
		Export:      NewExportService(repos.TimeEntry, auditSvc),
		Report:      NewReportService(repos.TimeEntry, repos.User, auditSvc),
		Audit:       auditSvc,
		Monitoring:  NewMonitoringService(db, worker, repos.Session, repos.User),
	}
}
