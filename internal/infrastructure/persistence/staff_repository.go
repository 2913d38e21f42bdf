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

// GormStaffRepository implements registry.StaffRepository using GORM
type GormStaffRepository struct {
	db *gorm.DB
}

// NewGormStaffRepository creates a new GormStaffRepository
func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// Save creates or updates a staff member
func (r *GormStaffRepository) Save(ctx context.Context, staff *registry.Staff) error {
	var model models.StaffModel
	model.FromDomain(staff)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a staff member by ID
func (r *GormStaffRepository) FindByID(ctx context.Context, id uuid.UUID) (*registry.Staff, error) {
	var model models.StaffModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmployeeNumber finds a staff member by employee number
func (r *GormStaffRepository) FindByEmployeeNumber(ctx context.Context, employeeNumber string) (*registry.Staff, error) {
	var model models.StaffModel
	if err := r.db.WithContext(ctx).First(&model, "employee_number = ?", employeeNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds staff members with search and pagination
func (r *GormStaffRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*registry.Staff, error) {
	var rows []models.StaffModel
	query := r.db.WithContext(ctx).Model(&models.StaffModel{})
	query = applyStaffSearch(query, filter.Search)
	query = applyPagination(query, filter, "last_name ASC")

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	members := make([]*registry.Staff, len(rows))
	for i := range rows {
		members[i] = rows[i].ToDomain()
	}
	return members, nil
}

// Count counts staff members matching the filter
func (r *GormStaffRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.StaffModel{})
	query = applyStaffSearch(query, filter.Search)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applyStaffSearch(query *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return query
	}
	like := "%" + search + "%"
	return query.Where(
		"first_name LIKE ? OR last_name LIKE ? OR employee_number LIKE ?",
		like, like, like,
	)
}
