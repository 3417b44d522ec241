package services

import (
	"context"

	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/liftwerk/zeiterfassung-api/internal/repository"
)

// CustomerService manages site operators referenced by orders
type CustomerService struct {
	repo  repository.CustomerRepository
	audit *AuditService
}

// NewCustomerService creates a new customer service
func NewCustomerService(repo repository.CustomerRepository, audit *AuditService) *CustomerService {
	return &CustomerService{repo: repo, audit: audit}
}

// CreateCustomerRequest carries the fields of a new customer
type CreateCustomerRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

// Create persists a new customer
func (s *CustomerService) Create(ctx context.Context, actor Actor, req *CreateCustomerRequest) (*models.Customer, error) {
	if err := requireFields(map[string]string{"name": req.Name}); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &actor.ID, models.AuditActionCreate, "customer", customer.ID, customer.Name, actor.IP, actor.UserAgent)
	return customer, nil
}

// List returns all customers, newest first
func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	return s.repo.List(ctx)
}
