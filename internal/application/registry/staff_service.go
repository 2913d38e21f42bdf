package registry

import (
	"context"

	"github.com/clinicore/backend/internal/domain/registry"
	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StaffService handles staff registry operations
type StaffService struct {
	repo registry.StaffRepository
}

// NewStaffService creates a new StaffService
func NewStaffService(repo registry.StaffRepository) *StaffService {
	return &StaffService{repo: repo}
}

// Create registers a new staff member
func (s *StaffService) Create(ctx context.Context, req CreateStaffRequest) (*StaffResponse, error) {
	existing, err := s.repo.FindByEmployeeNumber(ctx, req.EmployeeNumber)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee number already registered")
	}

	staff, err := registry.NewStaff(req.EmployeeNumber, req.FirstName, req.LastName, registry.StaffRole(req.Role))
	if err != nil {
		return nil, err
	}
	staff.Email = req.Email

	if err := s.repo.Save(ctx, staff); err != nil {
		return nil, err
	}

	response := ToStaffResponse(staff)
	return &response, nil
}

// GetByID retrieves a staff member by ID
func (s *StaffService) GetByID(ctx context.Context, id uuid.UUID) (*StaffResponse, error) {
	staff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToStaffResponse(staff)
	return &response, nil
}

// List retrieves staff members with search and pagination
func (s *StaffService) List(ctx context.Context, filter ListFilter) ([]StaffResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search

	members, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]StaffResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, ToStaffResponse(m))
	}
	return responses, total, nil
}

// Deactivate marks a staff member inactive
func (s *StaffService) Deactivate(ctx context.Context, id uuid.UUID) (*StaffResponse, error) {
	staff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	staff.Deactivate()
	if err := s.repo.Save(ctx, staff); err != nil {
		return nil, err
	}
	response := ToStaffResponse(staff)
	return &response, nil
}

// Exists reports whether an active staff record exists.
// This satisfies the billing side's staff directory contract.
func (s *StaffService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	staff, err := s.repo.FindByID(ctx, id)
	if err == shared.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return staff.IsActive, nil
}

// Resolve loads a staff record for the billing side's directory contract
func (s *StaffService) Resolve(ctx context.Context, id uuid.UUID) (*registry.Staff, error) {
	return s.repo.FindByID(ctx, id)
}
