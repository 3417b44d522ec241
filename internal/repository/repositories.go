package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User        UserRepository
	Session     SessionRepository
	TimeEntry   TimeEntryRepository
	Order       OrderRepository
	DailyReport DailyReportRepository
	Vacation    VacationRepository
	SickLeave   SickLeaveRepository
	Customer    CustomerRepository
	Audit       AuditRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Session:     NewSessionRepository(db),
		TimeEntry:   NewTimeEntryRepository(db),
		Order:       NewOrderRepository(db),
		DailyReport: NewDailyReportRepository(db),
		Vacation:    NewVacationRepository(db),
		SickLeave:   NewSickLeaveRepository(db),
		Customer:    NewCustomerRepository(db),
		Audit:       NewAuditRepository(db),
	}
}

// OwnerScope restricts list queries to a single owner unless All is set.
// Monteure list with their own user id; office, payroll and admin roles
// list with All.
type OwnerScope struct {
	UserID uint
	All    bool
}

// ScopeAll returns a scope that sees every row
func ScopeAll() OwnerScope {
	return OwnerScope{All: true}
}

// ScopeOwner returns a scope limited to one user's rows
func ScopeOwner(userID uint) OwnerScope {
	return OwnerScope{UserID: userID}
}
