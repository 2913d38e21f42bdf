package registry

import (
	"context"

	"github.com/clinicore/backend/internal/domain/registry"
	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/clinicore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ServiceCatalogService handles the billable service catalog
type ServiceCatalogService struct {
	repo registry.CatalogServiceRepository
}

// NewServiceCatalogService creates a new ServiceCatalogService
func NewServiceCatalogService(repo registry.CatalogServiceRepository) *ServiceCatalogService {
	return &ServiceCatalogService{repo: repo}
}

// Create adds a billable service to the catalog
func (s *ServiceCatalogService) Create(ctx context.Context, req CreateServiceRequest) (*ServiceResponse, error) {
	existing, err := s.repo.FindByCode(ctx, req.Code)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Service code already registered")
	}

	svc, err := registry.NewCatalogService(req.Code, req.Name, valueobject.NewMoneyPHP(req.UnitPrice))
	if err != nil {
		return nil, err
	}
	svc.Description = req.Description

	if err := s.repo.Save(ctx, svc); err != nil {
		return nil, err
	}

	response := ToServiceResponse(svc)
	return &response, nil
}

// Update applies a partial update to a catalog service. Price changes
// affect future bill items only; existing items keep their snapshot.
func (s *ServiceCatalogService) Update(ctx context.Context, id uuid.UUID, req UpdateServiceRequest) (*ServiceResponse, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.UnitPrice != nil {
		if err := svc.UpdatePrice(valueobject.NewMoneyPHP(*req.UnitPrice)); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		if *req.IsActive {
			svc.Activate()
		} else {
			svc.Deactivate()
		}
	}

	if err := s.repo.Save(ctx, svc); err != nil {
		return nil, err
	}

	response := ToServiceResponse(svc)
	return &response, nil
}

// GetByID retrieves a catalog service by ID
func (s *ServiceCatalogService) GetByID(ctx context.Context, id uuid.UUID) (*ServiceResponse, error) {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToServiceResponse(svc)
	return &response, nil
}

// List retrieves catalog services with search and pagination
func (s *ServiceCatalogService) List(ctx context.Context, filter ListFilter) ([]ServiceResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search

	services, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ServiceResponse, 0, len(services))
	for _, svc := range services {
		responses = append(responses, ToServiceResponse(svc))
	}
	return responses, total, nil
}

// Delete soft-deletes a catalog service. Bill items that snapshotted
// its price are untouched; new items can no longer reference it.
func (s *ServiceCatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	svc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := svc.MarkDeleted(); err != nil {
		return err
	}
	return s.repo.Save(ctx, svc)
}

// Get loads a catalog service for the billing side's pricing contract
func (s *ServiceCatalogService) Get(ctx context.Context, id uuid.UUID) (*registry.CatalogService, error) {
	return s.repo.FindByID(ctx, id)
}
