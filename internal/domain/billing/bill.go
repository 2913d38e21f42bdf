package billing

import (
	"time"

	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/clinicore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the payment state of a bill
type PaymentStatus string

const (
	PaymentStatusPending       PaymentStatus = "pending"
	PaymentStatusPaid          PaymentStatus = "paid"
	PaymentStatusPartiallyPaid PaymentStatus = "partially_paid"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusPartiallyPaid:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// MaxItemDescription is the maximum length of a line item description
const MaxItemDescription = 100

// BillItem represents one priced charge within a bill, tied to a catalog service.
// The unit price is snapshotted from the catalog when the item is created, so
// later catalog price changes never alter existing items.
type BillItem struct {
	ID          uuid.UUID
	BillID      uuid.UUID
	ServiceID   uuid.UUID
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal // Snapshot of the service price at creation
	Subtotal    decimal.Decimal // Quantity * UnitPrice, money precision
	IsDeleted   bool
	DeletedBy   *uuid.UUID
	DeletedAt   *time.Time
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// newBillItem creates a new line item for the given bill
func newBillItem(billID, serviceID uuid.UUID, description string, quantity int64, unitPrice valueobject.Money, createdBy uuid.UUID) (*BillItem, error) {
	if serviceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Service ID cannot be empty")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity cannot be negative")
	}
	if len(description) > MaxItemDescription {
		return nil, shared.NewDomainError("INVALID_INPUT", "Description cannot exceed 100 characters")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}
	if !unitPrice.HasMoneyPrecision() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot carry more than 2 decimal places")
	}

	now := time.Now()
	item := &BillItem{
		ID:          uuid.New(),
		BillID:      billID,
		ServiceID:   serviceID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	item.recalculateSubtotal()
	return item, nil
}

// recalculateSubtotal derives the subtotal from the current quantity and price
func (i *BillItem) recalculateSubtotal() {
	i.Subtotal = i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity)).Round(valueobject.MoneyPlaces)
}

// GetUnitPriceMoney returns the unit price as a Money value object
func (i *BillItem) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyPHP(i.UnitPrice)
}

// GetSubtotalMoney returns the subtotal as a Money value object
func (i *BillItem) GetSubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyPHP(i.Subtotal)
}

// ItemChanges is a partial update of a line item. Nil fields are left unchanged.
type ItemChanges struct {
	ServiceID   *uuid.UUID
	Description *string
	Quantity    *int64
	UnitPrice   *decimal.Decimal
}

// IsEmpty returns true if no field is set
func (c ItemChanges) IsEmpty() bool {
	return c.ServiceID == nil && c.Description == nil && c.Quantity == nil && c.UnitPrice == nil
}

// Bill represents the aggregate billing record for one patient encounter.
// It owns its line items and keeps TotalAmount equal to the sum of the
// subtotals of its non-deleted items after every mutation.
type Bill struct {
	shared.AuditedAggregateRoot
	PatientID     uuid.UUID
	Items         []BillItem
	TotalAmount   decimal.Decimal
	PaymentStatus PaymentStatus
	FinalizedAt   *time.Time
	FinalizedBy   *uuid.UUID
	IsDeleted     bool
}

// NewBill creates an empty bill for a patient
func NewBill(patientID, createdBy uuid.UUID) (*Bill, error) {
	if patientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Patient ID cannot be empty")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Creating staff ID cannot be empty")
	}

	return &Bill{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		PatientID:            patientID,
		Items:                make([]BillItem, 0),
		TotalAmount:          decimal.Zero,
		PaymentStatus:        PaymentStatusPending,
	}, nil
}

// IsFinalized returns true once the bill has gone through Finalize
func (b *Bill) IsFinalized() bool {
	return b.FinalizedAt != nil
}

// CanModify returns true if item mutations are still allowed
func (b *Bill) CanModify() bool {
	return !b.IsDeleted && !b.IsFinalized()
}

// AssertMutable guards every item mutation: a deleted or finalized bill
// rejects all further item changes.
func (b *Bill) AssertMutable() error {
	if b.IsDeleted {
		return shared.NewDomainError("STATE_CONFLICT", "Bill is deleted and cannot be modified")
	}
	if b.IsFinalized() {
		return shared.NewDomainError("STATE_CONFLICT", "Bill is finalized and cannot be modified")
	}
	return nil
}

// AddItem adds a new line item and recomputes the bill total.
// The unit price must be the catalog snapshot taken by the caller.
func (b *Bill) AddItem(serviceID uuid.UUID, description string, quantity int64, unitPrice valueobject.Money, createdBy uuid.UUID) (*BillItem, error) {
	if err := b.AssertMutable(); err != nil {
		return nil, err
	}

	item, err := newBillItem(b.ID, serviceID, description, quantity, unitPrice, createdBy)
	if err != nil {
		return nil, err
	}

	b.Items = append(b.Items, *item)
	b.recalculateTotal()
	b.UpdatedAt = time.Now()

	return &b.Items[len(b.Items)-1], nil
}

// UpdateItem applies a partial update to an existing item, recomputing the
// subtotal from the resulting quantity and price, then the bill total.
// An empty change set is rejected rather than silently accepted.
func (b *Bill) UpdateItem(itemID uuid.UUID, changes ItemChanges, updatedBy uuid.UUID) (*BillItem, error) {
	if err := b.AssertMutable(); err != nil {
		return nil, err
	}
	if changes.IsEmpty() {
		return nil, shared.NewDomainError("STATE_CONFLICT", "No fields provided to update")
	}

	item := b.GetItem(itemID)
	if item == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Bill item not found")
	}
	if item.IsDeleted {
		return nil, shared.NewDomainError("STATE_CONFLICT", "Bill item is deleted and cannot be modified")
	}

	if changes.ServiceID != nil {
		if *changes.ServiceID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Service ID cannot be empty")
		}
		item.ServiceID = *changes.ServiceID
	}
	if changes.Description != nil {
		if len(*changes.Description) > MaxItemDescription {
			return nil, shared.NewDomainError("INVALID_INPUT", "Description cannot exceed 100 characters")
		}
		item.Description = *changes.Description
	}
	if changes.Quantity != nil {
		if *changes.Quantity < 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Quantity cannot be negative")
		}
		item.Quantity = *changes.Quantity
	}
	if changes.UnitPrice != nil {
		price := valueobject.NewMoneyPHP(*changes.UnitPrice)
		if price.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
		}
		if !price.HasMoneyPrecision() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot carry more than 2 decimal places")
		}
		item.UnitPrice = *changes.UnitPrice
	}

	if changes.Quantity != nil || changes.UnitPrice != nil {
		item.recalculateSubtotal()
	}
	item.UpdatedAt = time.Now()

	b.recalculateTotal()
	b.SetUpdatedBy(updatedBy)
	b.UpdatedAt = time.Now()

	return item, nil
}

// ToggleItemDeleted flips an item's soft-delete flag. Toggling to the state
// the item is already in is rejected as a no-op conflict, not a success.
func (b *Bill) ToggleItemDeleted(itemID uuid.UUID, deleted bool, toggledBy uuid.UUID) (*BillItem, error) {
	if err := b.AssertMutable(); err != nil {
		return nil, err
	}

	item := b.GetItem(itemID)
	if item == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Bill item not found")
	}
	if item.IsDeleted == deleted {
		if deleted {
			return nil, shared.NewDomainError("STATE_CONFLICT", "Bill item is already deleted")
		}
		return nil, shared.NewDomainError("STATE_CONFLICT", "Bill item is not deleted")
	}

	now := time.Now()
	item.IsDeleted = deleted
	if deleted {
		item.DeletedBy = &toggledBy
		item.DeletedAt = &now
	} else {
		item.DeletedBy = nil
		item.DeletedAt = nil
	}
	item.UpdatedAt = now

	b.recalculateTotal()
	b.SetUpdatedBy(toggledBy)
	b.UpdatedAt = now

	return item, nil
}

// Finalize transitions the bill to its terminal paid state exactly once.
// Preconditions are checked in order so a retried finalize reports
// "already finalized" before any recomputation happens.
func (b *Bill) Finalize(finalizedBy uuid.UUID) error {
	if b.IsDeleted {
		return shared.NewDomainError("STATE_CONFLICT", "Bill is deleted and cannot be finalized")
	}
	if b.IsFinalized() {
		return shared.NewDomainError("STATE_CONFLICT", "Bill is already finalized")
	}
	if b.ActiveItemCount() == 0 {
		return shared.NewDomainError("STATE_CONFLICT", "Bill has no items and cannot be finalized")
	}

	// Authoritative final snapshot of the total
	b.recalculateTotal()
	if !b.TotalAmount.IsPositive() {
		return shared.NewDomainError("STATE_CONFLICT", "Bill total must be greater than zero to finalize")
	}

	now := time.Now()
	b.PaymentStatus = PaymentStatusPaid
	b.FinalizedAt = &now
	b.FinalizedBy = &finalizedBy
	b.SetUpdatedBy(finalizedBy)
	b.UpdatedAt = now

	return nil
}

// ToggleDeleted flips the bill's soft-delete flag. Unlike item toggles this
// is a pure flip; it never cascades to items and is independent of finalize.
func (b *Bill) ToggleDeleted(updatedBy uuid.UUID) {
	now := time.Now()
	b.IsDeleted = !b.IsDeleted
	b.SetUpdatedBy(updatedBy)
	b.UpdatedAt = now
}

// recalculateTotal derives the bill total from the non-deleted items
func (b *Bill) recalculateTotal() {
	total := decimal.Zero
	for _, item := range b.Items {
		if item.IsDeleted {
			continue
		}
		total = total.Add(item.Subtotal)
	}
	b.TotalAmount = total.Round(valueobject.MoneyPlaces)
}

// GetTotalAmountMoney returns the bill total as Money
func (b *Bill) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyPHP(b.TotalAmount)
}

// ActiveItemCount returns the number of non-deleted items
func (b *Bill) ActiveItemCount() int {
	count := 0
	for _, item := range b.Items {
		if !item.IsDeleted {
			count++
		}
	}
	return count
}

// ItemCount returns the number of items including soft-deleted ones
func (b *Bill) ItemCount() int {
	return len(b.Items)
}

// GetItem returns an item by its ID, including soft-deleted items
func (b *Bill) GetItem(itemID uuid.UUID) *BillItem {
	for idx := range b.Items {
		if b.Items[idx].ID == itemID {
			return &b.Items[idx]
		}
	}
	return nil
}
