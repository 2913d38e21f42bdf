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

// GormCatalogServiceRepository implements registry.CatalogServiceRepository using GORM
type GormCatalogServiceRepository struct {
	db *gorm.DB
}

// NewGormCatalogServiceRepository creates a new GormCatalogServiceRepository
func NewGormCatalogServiceRepository(db *gorm.DB) *GormCatalogServiceRepository {
	return &GormCatalogServiceRepository{db: db}
}

// Save creates or updates a catalog service
func (r *GormCatalogServiceRepository) Save(ctx context.Context, service *registry.CatalogService) error {
	var model models.CatalogServiceModel
	model.FromDomain(service)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a catalog service by ID
func (r *GormCatalogServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*registry.CatalogService, error) {
	var model models.CatalogServiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a catalog service by its code
func (r *GormCatalogServiceRepository) FindByCode(ctx context.Context, code string) (*registry.CatalogService, error) {
	var model models.CatalogServiceModel
	if err := r.db.WithContext(ctx).First(&model, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds catalog services with search and pagination
func (r *GormCatalogServiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*registry.CatalogService, error) {
	var rows []models.CatalogServiceModel
	query := r.db.WithContext(ctx).Model(&models.CatalogServiceModel{})
	query = applyServiceSearch(query, filter.Search)
	query = applyPagination(query, filter, "code ASC")

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	services := make([]*registry.CatalogService, len(rows))
	for i := range rows {
		services[i] = rows[i].ToDomain()
	}
	return services, nil
}

// Count counts catalog services matching the filter
func (r *GormCatalogServiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CatalogServiceModel{})
	query = applyServiceSearch(query, filter.Search)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applyServiceSearch(query *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return query
	}
	like := "%" + search + "%"
	return query.Where("code LIKE ? OR name LIKE ?", like, like)
}
