package billing

import (
	"context"

	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillRepository defines the persistence contract for the Bill aggregate
type BillRepository interface {
	Save(ctx context.Context, bill *Bill) error
	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	// FindByItemID resolves the owning bill of a line item, loaded in full.
	FindByItemID(ctx context.Context, itemID uuid.UUID) (*Bill, error)
	FindByPatient(ctx context.Context, patientID uuid.UUID, filter shared.Filter) ([]*Bill, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Bill, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// SumActiveItems recomputes the total directly from the non-deleted
	// item rows of a bill, bypassing the stored total.
	SumActiveItems(ctx context.Context, billID uuid.UUID) (decimal.Decimal, error)
	// UpdateWithLock loads the bill under a row lock inside a transaction,
	// applies fn, and persists the result. All mutations of a bill go
	// through this method so concurrent writers to the same bill serialize.
	UpdateWithLock(ctx context.Context, billID uuid.UUID, fn func(bill *Bill) error) (*Bill, error)
}
