package registry

import (
	"context"
	"testing"

	"github.com/clinicore/backend/internal/domain/registry"
	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPatientRepository is a mock implementation of PatientRepository
type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Save(ctx context.Context, patient *registry.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepository) FindByID(ctx context.Context, id uuid.UUID) (*registry.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindByMRN(ctx context.Context, mrn string) (*registry.Patient, error) {
	args := m.Called(ctx, mrn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*registry.Patient, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*registry.Patient), args.Error(1)
}

func (m *MockPatientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newTestPatient(t *testing.T) *registry.Patient {
	patient, err := registry.NewPatient("MRN-2026-0001", "Juan", "Dela Cruz")
	require.NoError(t, err)
	return patient
}

func TestPatientService_Exists(t *testing.T) {
	repo := new(MockPatientRepository)
	svc := NewPatientService(repo)
	ctx := context.Background()
	patient := newTestPatient(t)

	repo.On("FindByID", ctx, patient.ID).Return(patient, nil)

	exists, err := svc.Exists(ctx, patient.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPatientService_Exists_Unknown(t *testing.T) {
	repo := new(MockPatientRepository)
	svc := NewPatientService(repo)
	ctx := context.Background()
	id := uuid.New()

	repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

	exists, err := svc.Exists(ctx, id)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPatientService_Exists_Deleted(t *testing.T) {
	repo := new(MockPatientRepository)
	svc := NewPatientService(repo)
	ctx := context.Background()
	patient := newTestPatient(t)
	require.NoError(t, patient.MarkDeleted())

	repo.On("FindByID", ctx, patient.ID).Return(patient, nil)

	exists, err := svc.Exists(ctx, patient.ID)
	require.NoError(t, err)
	assert.False(t, exists, "a deleted patient cannot be billed")
}

func TestPatientService_Delete(t *testing.T) {
	repo := new(MockPatientRepository)
	svc := NewPatientService(repo)
	ctx := context.Background()
	patient := newTestPatient(t)

	repo.On("FindByID", ctx, patient.ID).Return(patient, nil)
	repo.On("Save", ctx, patient).Return(nil)

	require.NoError(t, svc.Delete(ctx, patient.ID))
	assert.True(t, patient.IsDeleted)
	repo.AssertExpectations(t)

	// repeating the delete conflicts instead of silently succeeding
	err := svc.Delete(ctx, patient.ID)
	require.Error(t, err)
	domainErr, ok := err.(*shared.DomainError)
	require.True(t, ok)
	assert.Equal(t, "STATE_CONFLICT", domainErr.Code)
}
