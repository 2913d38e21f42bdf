package persistence

import (
	"context"
	"errors"

	"github.com/clinicore/backend/internal/domain/registry"
	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/clinicore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPatientRepository implements registry.PatientRepository using GORM
type GormPatientRepository struct {
	db *gorm.DB
}

// NewGormPatientRepository creates a new GormPatientRepository
func NewGormPatientRepository(db *gorm.DB) *GormPatientRepository {
	return &GormPatientRepository{db: db}
}

// Save creates or updates a patient
func (r *GormPatientRepository) Save(ctx context.Context, patient *registry.Patient) error {
	var model models.PatientModel
	model.FromDomain(patient)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a patient by ID
func (r *GormPatientRepository) FindByID(ctx context.Context, id uuid.UUID) (*registry.Patient, error) {
	var model models.PatientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMRN finds a patient by medical record number
func (r *GormPatientRepository) FindByMRN(ctx context.Context, mrn string) (*registry.Patient, error) {
	var model models.PatientModel
	if err := r.db.WithContext(ctx).First(&model, "medical_record_number = ?", mrn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds patients with search and pagination
func (r *GormPatientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*registry.Patient, error) {
	var rows []models.PatientModel
	query := r.db.WithContext(ctx).Model(&models.PatientModel{})
	query = applyPatientSearch(query, filter.Search)
	query = applyPagination(query, filter, "last_name ASC")

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	patients := make([]*registry.Patient, len(rows))
	for i := range rows {
		patients[i] = rows[i].ToDomain()
	}
	return patients, nil
}

// Count counts patients matching the filter
func (r *GormPatientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PatientModel{})
	query = applyPatientSearch(query, filter.Search)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applyPatientSearch(query *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return query
	}
	like := "%" + search + "%"
	return query.Where(
		"first_name LIKE ? OR last_name LIKE ? OR medical_record_number LIKE ?",
		like, like, like,
	)
}

// applyPagination applies ordering and pagination shared by registry repos
func applyPagination(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	query = query.Order(defaultOrder)
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}
