package registry

import (
	"context"

	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PatientRepository defines the persistence contract for patients
type PatientRepository interface {
	Save(ctx context.Context, patient *Patient) error
	FindByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	FindByMRN(ctx context.Context, mrn string) (*Patient, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Patient, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// StaffRepository defines the persistence contract for staff
type StaffRepository interface {
	Save(ctx context.Context, staff *Staff) error
	FindByID(ctx context.Context, id uuid.UUID) (*Staff, error)
	FindByEmployeeNumber(ctx context.Context, employeeNumber string) (*Staff, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Staff, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// CatalogServiceRepository defines the persistence contract for the
// service catalog
type CatalogServiceRepository interface {
	Save(ctx context.Context, service *CatalogService) error
	FindByID(ctx context.Context, id uuid.UUID) (*CatalogService, error)
	FindByCode(ctx context.Context, code string) (*CatalogService, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*CatalogService, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
