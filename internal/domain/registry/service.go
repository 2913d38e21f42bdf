package registry

import (
	"context"
	"strings"
	"time"

	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/clinicore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogService is a billable clinic service with its current list price.
// Bills snapshot the price at item creation, so editing a service price
// here never changes existing bill items.
type CatalogService struct {
	shared.BaseAggregateRoot
	Code        string
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	IsActive    bool
	IsDeleted   bool
}

// NewCatalogService registers a billable service
func NewCatalogService(code, name string, unitPrice valueobject.Money) (*CatalogService, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)

	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Service code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Service name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Service price cannot be negative")
	}
	if !unitPrice.HasMoneyPrecision() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Service price cannot carry more than 2 decimal places")
	}

	return &CatalogService{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		UnitPrice:         unitPrice.Amount(),
		IsActive:          true,
	}, nil
}

// GetUnitPriceMoney returns the current list price as Money
func (s *CatalogService) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyPHP(s.UnitPrice)
}

// UpdatePrice changes the current list price
func (s *CatalogService) UpdatePrice(unitPrice valueobject.Money) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Service price cannot be negative")
	}
	if !unitPrice.HasMoneyPrecision() {
		return shared.NewDomainError("INVALID_INPUT", "Service price cannot carry more than 2 decimal places")
	}
	s.UnitPrice = unitPrice.Amount()
	s.UpdatedAt = time.Now()
	return nil
}

// Deactivate removes the service from the orderable catalog
func (s *CatalogService) Deactivate() {
	s.IsActive = false
	s.UpdatedAt = time.Now()
}

// Activate restores the service to the orderable catalog
func (s *CatalogService) Activate() {
	s.IsActive = true
	s.UpdatedAt = time.Now()
}

// MarkDeleted soft-deletes the service. Unlike deactivation, a deleted
// service is treated as absent by billing lookups.
func (s *CatalogService) MarkDeleted() error {
	if s.IsDeleted {
		return shared.NewDomainError("STATE_CONFLICT", "Service is already deleted")
	}
	s.IsDeleted = true
	s.UpdatedAt = time.Now()
	return nil
}

// Restore clears the soft-delete flag
func (s *CatalogService) Restore() error {
	if !s.IsDeleted {
		return shared.NewDomainError("STATE_CONFLICT", "Service is not deleted")
	}
	s.IsDeleted = false
	s.UpdatedAt = time.Now()
	return nil
}

// ServiceCatalog is the pricing contract the billing service uses to
// snapshot unit prices onto new line items.
type ServiceCatalog interface {
	Get(ctx context.Context, id uuid.UUID) (*CatalogService, error)
}
