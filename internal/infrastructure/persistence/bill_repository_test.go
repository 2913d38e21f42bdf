package persistence

import (
	"context"
	"testing"

	"github.com/clinicore/backend/internal/domain/billing"
	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/clinicore/backend/internal/domain/shared/valueobject"
	"github.com/clinicore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupBillTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.BillModel{}, &models.BillItemModel{})
	require.NoError(t, err)

	return db
}

func newPersistedBill(t *testing.T, repo *GormBillRepository, itemCount int) *billing.Bill {
	ctx := context.Background()
	bill, err := billing.NewBill(uuid.New(), uuid.New())
	require.NoError(t, err)
	for i := 0; i < itemCount; i++ {
		_, err := bill.AddItem(uuid.New(), "Consultation", 2, valueobject.NewMoneyPHPFromFloat(50), uuid.New())
		require.NoError(t, err)
	}
	require.NoError(t, repo.Save(ctx, bill))
	return bill
}

func TestGormBillRepository_SaveAndFindByID(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewGormBillRepository(db)
	ctx := context.Background()

	bill := newPersistedBill(t, repo, 2)

	found, err := repo.FindByID(ctx, bill.ID)
	require.NoError(t, err)

	assert.Equal(t, bill.ID, found.ID)
	assert.Equal(t, bill.PatientID, found.PatientID)
	assert.Equal(t, billing.PaymentStatusPending, found.PaymentStatus)
	assert.Len(t, found.Items, 2)
	assert.Equal(t, "200.00", found.TotalAmount.StringFixed(2))
	assert.Equal(t, bill.CreatedBy, found.CreatedBy)
}

func TestGormBillRepository_FindByID_NotFound(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewGormBillRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestGormBillRepository_FindByItemID(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewGormBillRepository(db)
	ctx := context.Background()

	bill := newPersistedBill(t, repo, 1)
	itemID := bill.Items[0].ID

	t.Run("resolves owning bill", func(t *testing.T) {
		owner, err := repo.FindByItemID(ctx, itemID)
		require.NoError(t, err)
		assert.Equal(t, bill.ID, owner.ID)
		assert.Len(t, owner.Items, 1)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := repo.FindByItemID(ctx, uuid.New())
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormBillRepository_UpdateWithLock(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewGormBillRepository(db)
	ctx := context.Background()

	bill := newPersistedBill(t, repo, 1)
	itemID := bill.Items[0].ID

	t.Run("applies mutation and persists", func(t *testing.T) {
		updated, err := repo.UpdateWithLock(ctx, bill.ID, func(b *billing.Bill) error {
			qty := int64(3)
			_, err := b.UpdateItem(itemID, billing.ItemChanges{Quantity: &qty}, uuid.New())
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, "150.00", updated.TotalAmount.StringFixed(2))

		reloaded, err := repo.FindByID(ctx, bill.ID)
		require.NoError(t, err)
		assert.Equal(t, "150.00", reloaded.TotalAmount.StringFixed(2))
		assert.Equal(t, int64(3), reloaded.Items[0].Quantity)
	})

	t.Run("rolls back on mutation error", func(t *testing.T) {
		_, err := repo.UpdateWithLock(ctx, bill.ID, func(b *billing.Bill) error {
			qty := int64(9)
			if _, err := b.UpdateItem(itemID, billing.ItemChanges{Quantity: &qty}, uuid.New()); err != nil {
				return err
			}
			return shared.NewDomainError("STATE_CONFLICT", "forced failure")
		})
		require.Error(t, err)

		reloaded, err := repo.FindByID(ctx, bill.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), reloaded.Items[0].Quantity, "failed mutation must not persist")
	})

	t.Run("unknown bill", func(t *testing.T) {
		_, err := repo.UpdateWithLock(ctx, uuid.New(), func(b *billing.Bill) error {
			return nil
		})
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormBillRepository_UpdateWithLock_SoftDeletedItemSurvives(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewGormBillRepository(db)
	ctx := context.Background()

	bill := newPersistedBill(t, repo, 2)
	itemID := bill.Items[0].ID

	_, err := repo.UpdateWithLock(ctx, bill.ID, func(b *billing.Bill) error {
		_, err := b.ToggleItemDeleted(itemID, true, uuid.New())
		return err
	})
	require.NoError(t, err)

	reloaded, err := repo.FindByID(ctx, bill.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Items, 2, "soft-deleted items stay on the bill")
	assert.Equal(t, 1, reloaded.ActiveItemCount())
	assert.Equal(t, "100.00", reloaded.TotalAmount.StringFixed(2))
}

func TestGormBillRepository_SumActiveItems(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewGormBillRepository(db)
	ctx := context.Background()

	bill := newPersistedBill(t, repo, 3)

	sum, err := repo.SumActiveItems(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, "300.00", sum.StringFixed(2))

	// Soft delete one item and resum
	_, err = repo.UpdateWithLock(ctx, bill.ID, func(b *billing.Bill) error {
		_, err := b.ToggleItemDeleted(b.Items[0].ID, true, uuid.New())
		return err
	})
	require.NoError(t, err)

	sum, err = repo.SumActiveItems(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, "200.00", sum.StringFixed(2))

	// Unknown bill sums to zero
	sum, err = repo.SumActiveItems(ctx, uuid.New())
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
}

func TestGormBillRepository_UpdateWithLock_TotalMismatchRollsBack(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewGormBillRepository(db)
	ctx := context.Background()

	bill := newPersistedBill(t, repo, 2)

	// Corrupt an item row behind the aggregate's back so the stored
	// total no longer matches the item sum.
	err := db.Model(&models.BillItemModel{}).
		Where("id = ?", bill.Items[0].ID).
		Update("subtotal", decimal.NewFromInt(999)).Error
	require.NoError(t, err)

	_, err = repo.UpdateWithLock(ctx, bill.ID, func(b *billing.Bill) error {
		return nil
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
}

func TestGormBillRepository_FindByPatientAndFindAll(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewGormBillRepository(db)
	ctx := context.Background()

	first := newPersistedBill(t, repo, 1)
	newPersistedBill(t, repo, 1)

	t.Run("FindByPatient", func(t *testing.T) {
		bills, err := repo.FindByPatient(ctx, first.PatientID, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, bills, 1)
		assert.Equal(t, first.ID, bills[0].ID)
	})

	t.Run("FindAll", func(t *testing.T) {
		bills, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, bills, 2)
	})

	t.Run("filter by deletion flag", func(t *testing.T) {
		_, err := repo.UpdateWithLock(ctx, first.ID, func(b *billing.Bill) error {
			b.ToggleDeleted(uuid.New())
			return nil
		})
		require.NoError(t, err)

		filter := shared.DefaultFilter()
		filter.Filters["is_deleted"] = false
		bills, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, bills, 1)

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestGormBillRepository_FinalizePersists(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewGormBillRepository(db)
	ctx := context.Background()

	bill := newPersistedBill(t, repo, 1)
	staffID := uuid.New()

	_, err := repo.UpdateWithLock(ctx, bill.ID, func(b *billing.Bill) error {
		return b.Finalize(staffID)
	})
	require.NoError(t, err)

	reloaded, err := repo.FindByID(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, billing.PaymentStatusPaid, reloaded.PaymentStatus)
	assert.NotNil(t, reloaded.FinalizedAt)
	require.NotNil(t, reloaded.FinalizedBy)
	assert.Equal(t, staffID, *reloaded.FinalizedBy)

	// A second finalize fails inside the transaction
	_, err = repo.UpdateWithLock(ctx, bill.ID, func(b *billing.Bill) error {
		return b.Finalize(staffID)
	})
	require.Error(t, err)
}
