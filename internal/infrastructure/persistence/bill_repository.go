package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/clinicore/backend/internal/domain/billing"
	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/clinicore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBillRepository implements billing.BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// FindByID finds a bill with all its items, soft-deleted ones included
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	return r.findByID(r.db.WithContext(ctx), id, false)
}

func (r *GormBillRepository) findByID(tx *gorm.DB, id uuid.UUID, forUpdate bool) (*billing.Bill, error) {
	query := tx.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	})
	if forUpdate && tx.Dialector.Name() == "postgres" {
		// sqlite has no row locks; its single-writer model serializes anyway
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model models.BillModel
	if err := query.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByItemID resolves the owning bill of a line item
func (r *GormBillRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) (*billing.Bill, error) {
	var item models.BillItemModel
	if err := r.db.WithContext(ctx).First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.FindByID(ctx, item.BillID)
}

// FindByPatient finds bills for a patient with filtering
func (r *GormBillRepository) FindByPatient(ctx context.Context, patientID uuid.UUID, filter shared.Filter) ([]*billing.Bill, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.BillModel{}).Where("patient_id = ?", patientID),
		filter,
	)
	return r.findBills(query)
}

// FindAll finds all bills with filtering
func (r *GormBillRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*billing.Bill, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BillModel{}), filter)
	return r.findBills(query)
}

func (r *GormBillRepository) findBills(query *gorm.DB) ([]*billing.Bill, error) {
	var rows []models.BillModel
	if err := query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Find(&rows).Error; err != nil {
		return nil, err
	}

	bills := make([]*billing.Bill, len(rows))
	for i := range rows {
		bills[i] = rows[i].ToDomain()
	}
	return bills, nil
}

// Count counts bills matching the filter
func (r *GormBillRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.BillModel{})
	query = r.applyWhere(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumActiveItems recomputes the bill total directly from non-deleted item rows
func (r *GormBillRepository) SumActiveItems(ctx context.Context, billID uuid.UUID) (decimal.Decimal, error) {
	return sumActiveItems(r.db.WithContext(ctx), billID)
}

func sumActiveItems(tx *gorm.DB, billID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := tx.Model(&models.BillItemModel{}).
		Select("COALESCE(SUM(subtotal), 0) AS total").
		Where("bill_id = ? AND is_deleted = ?", billID, false).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Save creates or updates a bill together with its items
func (r *GormBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveInTx(tx, bill)
	})
}

func (r *GormBillRepository) saveInTx(tx *gorm.DB, bill *billing.Bill) error {
	var model models.BillModel
	model.FromDomain(bill)

	items := model.Items
	model.Items = nil
	if err := tx.Save(&model).Error; err != nil {
		return err
	}

	// Items are soft-deleted through the domain, never removed, so a
	// plain upsert per item is enough.
	for i := range items {
		items[i].BillID = model.ID
		if err := tx.Save(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// UpdateWithLock loads the bill under a row lock, applies fn, verifies the
// stored total against the summed item rows, and persists the result.
// Concurrent writers to the same bill serialize here.
func (r *GormBillRepository) UpdateWithLock(ctx context.Context, billID uuid.UUID, fn func(bill *billing.Bill) error) (*billing.Bill, error) {
	var updated *billing.Bill
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bill, err := r.findByID(tx, billID, true)
		if err != nil {
			return err
		}

		if err := fn(bill); err != nil {
			return err
		}

		bill.IncrementVersion()
		if err := r.saveInTx(tx, bill); err != nil {
			return err
		}

		// The persisted total must equal the sum of the persisted item
		// rows; a mismatch would mean the aggregate and its rows
		// diverged, so the transaction rolls back.
		total, err := sumActiveItems(tx, bill.ID)
		if err != nil {
			return err
		}
		if !total.Equal(bill.TotalAmount) {
			return shared.NewDomainError("INTERNAL_ERROR", "Bill total does not match its items")
		}

		updated = bill
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// applyFilter applies pagination, ordering, and field filters to a query
func (r *GormBillRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyWhere(query, filter)

	orderBy := "created_at"
	if filter.OrderBy != "" {
		orderBy = filter.OrderBy
	}
	orderDir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		orderDir = "ASC"
	}
	query = query.Order(orderBy + " " + orderDir)

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

func (r *GormBillRepository) applyWhere(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for field, value := range filter.Filters {
		switch field {
		case "payment_status", "is_deleted", "patient_id":
			query = query.Where(field+" = ?", value)
		}
	}
	return query
}
