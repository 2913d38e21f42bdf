package registry

import (
	"context"

	"github.com/clinicore/backend/internal/domain/registry"
	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PatientService handles patient registry operations
type PatientService struct {
	repo registry.PatientRepository
}

// NewPatientService creates a new PatientService
func NewPatientService(repo registry.PatientRepository) *PatientService {
	return &PatientService{repo: repo}
}

// Create registers a new patient
func (s *PatientService) Create(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error) {
	existing, err := s.repo.FindByMRN(ctx, req.MedicalRecordNumber)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Medical record number already registered")
	}

	patient, err := registry.NewPatient(req.MedicalRecordNumber, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	patient.DateOfBirth = req.DateOfBirth
	patient.UpdateContact(req.Phone, req.Email, req.Address)

	if err := s.repo.Save(ctx, patient); err != nil {
		return nil, err
	}

	response := ToPatientResponse(patient)
	return &response, nil
}

// Update applies a partial update to a patient record
func (s *PatientService) Update(ctx context.Context, id uuid.UUID, req UpdatePatientRequest) (*PatientResponse, error) {
	patient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		patient.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		patient.LastName = *req.LastName
	}
	if req.DOB != nil {
		patient.DateOfBirth = req.DOB
	}
	if req.Phone != nil || req.Email != nil || req.Address != nil {
		phone, email, address := patient.Phone, patient.Email, patient.Address
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}
		if req.Address != nil {
			address = *req.Address
		}
		patient.UpdateContact(phone, email, address)
	}
	if req.IsActive != nil {
		if *req.IsActive {
			patient.Activate()
		} else {
			patient.Deactivate()
		}
	}

	if err := s.repo.Save(ctx, patient); err != nil {
		return nil, err
	}

	response := ToPatientResponse(patient)
	return &response, nil
}

// GetByID retrieves a patient by ID
func (s *PatientService) GetByID(ctx context.Context, id uuid.UUID) (*PatientResponse, error) {
	patient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPatientResponse(patient)
	return &response, nil
}

// List retrieves patients with search and pagination
func (s *PatientService) List(ctx context.Context, filter ListFilter) ([]PatientResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search

	patients, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PatientResponse, 0, len(patients))
	for _, p := range patients {
		responses = append(responses, ToPatientResponse(p))
	}
	return responses, total, nil
}

// Delete soft-deletes a patient record. Bills already referencing the
// patient are untouched; new bills can no longer target it.
func (s *PatientService) Delete(ctx context.Context, id uuid.UUID) error {
	patient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := patient.MarkDeleted(); err != nil {
		return err
	}
	return s.repo.Save(ctx, patient)
}

// Exists reports whether a patient record exists and is not deleted.
// This satisfies the billing side's patient directory contract.
func (s *PatientService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	patient, err := s.repo.FindByID(ctx, id)
	if err == shared.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !patient.IsDeleted, nil
}
