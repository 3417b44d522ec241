package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/liftwerk/zeiterfassung-api/internal/repository"
	"github.com/liftwerk/zeiterfassung-api/internal/statemachine"
)

// Actor identifies the caller of a service operation, taken from the
// authenticated session.
type Actor struct {
	ID        uint
	Role      string
	IP        string
	UserAgent string
}

// scope translates the actor's role into a repository owner scope
func (a Actor) scope() repository.OwnerScope {
	if models.RoleSeesAllRecords(a.Role) {
		return repository.ScopeAll()
	}
	return repository.ScopeOwner(a.ID)
}

// OrderService manages job orders (Auftraege)
type OrderService struct {
	repo       repository.OrderRepository
	reportRepo repository.DailyReportRepository
	audit      *AuditService
}

// NewOrderService creates a new order service
func NewOrderService(repo repository.OrderRepository, reportRepo repository.DailyReportRepository, audit *AuditService) *OrderService {
	return &OrderService{repo: repo, reportRepo: reportRepo, audit: audit}
}

// CreateOrderRequest carries the fields of a new order
type CreateOrderRequest struct {
	OrderNumber   string `json:"order_number"`
	Location      string `json:"location"`
	FactoryNumber string `json:"factory_number"`
	Activity      string `json:"activity"`
	Description   string `json:"description"`
	Priority      string `json:"priority"`
	AssignedTo    uint   `json:"assigned_to"`
	CustomerID    *uint  `json:"customer_id"`
}

// Create validates and persists a new order. Orders without an explicit
// assignee go to the creating user.
func (s *OrderService) Create(ctx context.Context, actor Actor, req *CreateOrderRequest) (*models.Order, error) {
	if err := requireFields(map[string]string{
		"location":       req.Location,
		"factory_number": req.FactoryNumber,
		"activity":       req.Activity,
	}); err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNumber:   req.OrderNumber,
		Location:      req.Location,
		FactoryNumber: req.FactoryNumber,
		Activity:      req.Activity,
		Description:   req.Description,
		Priority:      req.Priority,
		Status:        models.OrderStatusAssigned,
		AssignedTo:    req.AssignedTo,
		CustomerID:    req.CustomerID,
		CreatedBy:     &actor.ID,
	}
	if order.OrderNumber == "" {
		order.OrderNumber = "A-" + uuid.NewString()[:8]
	}
	if order.Priority == "" {
		order.Priority = models.PriorityNormal
	}
	if order.AssignedTo == 0 {
		order.AssignedTo = actor.ID
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actor.ID, models.AuditActionCreate, "order", order.ID, order.OrderNumber, actor.IP, actor.UserAgent)
	return order, nil
}

// List returns orders visible to the actor, newest first. Monteure only
// see orders assigned to them.
func (s *OrderService) List(ctx context.Context, actor Actor) ([]models.Order, error) {
	return s.repo.List(ctx, actor.scope())
}

// Get returns a single order, subject to the actor's visibility
func (s *OrderService) Get(ctx context.Context, actor Actor, id uint) (*models.Order, error) {
	return s.visibleOrder(ctx, actor, id)
}

// orderUpdateColumns is the whitelist of patchable columns; unknown
// field names in a partial update are ignored, not rejected.
var orderUpdateColumns = map[string]bool{
	"location":       true,
	"factory_number": true,
	"activity":       true,
	"description":    true,
	"priority":       true,
	"assigned_to":    true,
	"customer_id":    true,
}

// Update applies a partial update. Fields absent from the request stay
// untouched.
func (s *OrderService) Update(ctx context.Context, actor Actor, id uint, partial map[string]interface{}) (*models.Order, error) {
	order, err := s.visibleOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	fields := filterColumns(partial, orderUpdateColumns)
	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, order.ID, fields); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.FindByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actor.ID, models.AuditActionUpdate, "order", order.ID, "", actor.IP, actor.UserAgent)
	return updated, nil
}

// Delete removes an order. Returns false when no row matched; a missing
// id is not an error.
func (s *OrderService) Delete(ctx context.Context, actor Actor, id uint) (bool, error) {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if rows == 0 {
		return false, nil
	}
	s.audit.Record(ctx, &actor.ID, models.AuditActionDelete, "order", id, "", actor.IP, actor.UserAgent)
	return true, nil
}

// Start moves an order to in_progress
func (s *OrderService) Start(ctx context.Context, actor Actor, id uint) (*models.Order, error) {
	return s.transition(ctx, actor, id, func(fsm *statemachine.OrderFSM) error {
		return fsm.Start(ctx)
	})
}

// Complete finishes an order
func (s *OrderService) Complete(ctx context.Context, actor Actor, id uint) (*models.Order, error) {
	return s.transition(ctx, actor, id, func(fsm *statemachine.OrderFSM) error {
		return fsm.Complete(ctx)
	})
}

// Cancel cancels an order
func (s *OrderService) Cancel(ctx context.Context, actor Actor, id uint) (*models.Order, error) {
	return s.transition(ctx, actor, id, func(fsm *statemachine.OrderFSM) error {
		return fsm.Cancel(ctx)
	})
}

func (s *OrderService) transition(ctx context.Context, actor Actor, id uint, event func(*statemachine.OrderFSM) error) (*models.Order, error) {
	order, err := s.visibleOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	from := order.Status
	if err := event(statemachine.NewOrderFSM(order)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if order.Status == models.OrderStatusCompleted && order.CompletedAt == nil {
		now := time.Now()
		order.CompletedAt = &now
	}

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actor.ID, models.AuditActionStatusChange, "order", order.ID,
		from+" -> "+order.Status, actor.IP, actor.UserAgent)
	return order, nil
}

// visibleOrder loads an order and hides other users' orders from
// monteure behind ErrNotFound.
func (s *OrderService) visibleOrder(ctx context.Context, actor Actor, id uint) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if !models.RoleSeesAllRecords(actor.Role) && order.AssignedTo != actor.ID {
		return nil, ErrNotFound
	}
	return order, nil
}

// Summary aggregates order and daily report counts
type Summary struct {
	repository.OrderStats
	repository.DailyReportStats
}

// Summary returns the dashboard counters scoped to the actor
func (s *OrderService) Summary(ctx context.Context, actor Actor) (*Summary, error) {
	scope := actor.scope()
	orderStats, err := s.repo.GetStats(ctx, scope)
	if err != nil {
		return nil, err
	}
	reportStats, err := s.reportRepo.GetStats(ctx, scope)
	if err != nil {
		return nil, err
	}
	return &Summary{OrderStats: *orderStats, DailyReportStats: *reportStats}, nil
}

// filterColumns keeps only whitelisted keys of a partial update
func filterColumns(partial map[string]interface{}, allowed map[string]bool) map[string]interface{} {
	fields := make(map[string]interface{}, len(partial))
	for key, value := range partial {
		if allowed[key] {
			fields[key] = value
		}
	}
	return fields
}
