package services

import (
	"context"
	"time"

	"github.com/liftwerk/zeiterfassung-api/internal/jobs"
	"github.com/liftwerk/zeiterfassung-api/internal/repository"
	"gorm.io/gorm"
)

// MonitoringService aggregates subsystem health for the admin views
type MonitoringService struct {
	db          *gorm.DB
	worker      *jobs.Worker
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
}

// NewMonitoringService creates a new monitoring service
func NewMonitoringService(db *gorm.DB, worker *jobs.Worker, sessionRepo repository.SessionRepository, userRepo repository.UserRepository) *MonitoringService {
	return &MonitoringService{
		db:          db,
		worker:      worker,
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
	}
}

// SystemStatus is the aggregated health report
type SystemStatus struct {
	Status         string           `json:"status"`
	Timestamp      time.Time        `json:"timestamp"`
	Database       string           `json:"database"`
	Worker         jobs.WorkerStats `json:"worker"`
	ActiveSessions int64            `json:"active_sessions"`
	Users          int64            `json:"users"`
}

// Status pings the database and collects worker and session figures.
// Overall status degrades to "degraded" when a subsystem check fails.
func (s *MonitoringService) Status(ctx context.Context) *SystemStatus {
	status := &SystemStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Database:  "healthy",
		Worker:    s.worker.GetStats(),
	}

	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		status.Database = "unhealthy"
		status.Status = "degraded"
	}

	if sessions, err := s.sessionRepo.CountActive(ctx); err == nil {
		status.ActiveSessions = sessions
	} else {
		status.Status = "degraded"
	}
	if users, err := s.userRepo.Count(ctx); err == nil {
		status.Users = users
	} else {
		status.Status = "degraded"
	}

	return status
}
