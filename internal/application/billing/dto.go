package billing

import (
	"time"

	"github.com/clinicore/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Bill DTOs ====================

// CreateBillRequest represents a request to open a new bill
type CreateBillRequest struct {
	PatientID uuid.UUID             `json:"patient_id" binding:"required"`
	Items     []CreateBillItemInput `json:"items"`
}

// CreateBillItemInput represents an initial item in the create bill request
type CreateBillItemInput struct {
	ServiceID   uuid.UUID `json:"service_id" binding:"required"`
	Description string    `json:"description" binding:"omitempty,max=100"`
	Quantity    int64     `json:"quantity" binding:"min=0"`
}

// AddBillItemRequest represents a request to add a line item to a bill
type AddBillItemRequest struct {
	ServiceID   uuid.UUID `json:"service_id" binding:"required"`
	Description string    `json:"description" binding:"omitempty,max=100"`
	Quantity    int64     `json:"quantity" binding:"min=0"`
}

// UpdateBillItemRequest represents a partial update of a line item.
// At least one field must be present.
type UpdateBillItemRequest struct {
	ServiceID   *uuid.UUID       `json:"service_id"`
	Description *string          `json:"description" binding:"omitempty,max=100"`
	Quantity    *int64           `json:"quantity" binding:"omitempty,min=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// IsEmpty reports whether the request carries no field at all
func (r UpdateBillItemRequest) IsEmpty() bool {
	return r.ServiceID == nil && r.Description == nil && r.Quantity == nil && r.UnitPrice == nil
}

// ToggleBillItemRequest represents a request to soft-delete or restore an item
type ToggleBillItemRequest struct {
	Deleted *bool `json:"deleted" binding:"required"`
}

// BillListFilter represents filter options for the bill list
type BillListFilter struct {
	PatientID      *uuid.UUID             `form:"patient_id"`
	PaymentStatus  *billing.PaymentStatus `form:"payment_status"`
	IncludeDeleted bool                   `form:"include_deleted"`
	Page           int                    `form:"page" binding:"omitempty,min=1"`
	PageSize       int                    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy        string                 `form:"order_by"`
	OrderDir       string                 `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ==================== Responses ====================

// BillItemResponse represents a line item in API responses
type BillItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	BillID      uuid.UUID       `json:"billing_id"`
	ServiceID   uuid.UUID       `json:"service_id"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	IsDeleted   bool            `json:"is_deleted"`
	DeletedBy   *uuid.UUID      `json:"deleted_by,omitempty"`
	DeletedAt   *time.Time      `json:"deleted_at,omitempty"`
	CreatedBy   uuid.UUID       `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BillResponse represents a full bill in API responses
type BillResponse struct {
	ID            uuid.UUID          `json:"id"`
	PatientID     uuid.UUID          `json:"patient_id"`
	Items         []BillItemResponse `json:"items"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaymentStatus string             `json:"payment_status"`
	FinalizedAt   *time.Time         `json:"finalized_at,omitempty"`
	FinalizedBy   *uuid.UUID         `json:"finalized_by,omitempty"`
	IsDeleted     bool               `json:"is_deleted"`
	CreatedBy     uuid.UUID          `json:"created_by"`
	UpdatedBy     *uuid.UUID         `json:"updated_by,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// BillListItemResponse is the compact bill shape used in list endpoints
type BillListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	PatientID     uuid.UUID       `json:"patient_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentStatus string          `json:"payment_status"`
	ItemCount     int             `json:"item_count"`
	FinalizedAt   *time.Time      `json:"finalized_at,omitempty"`
	IsDeleted     bool            `json:"is_deleted"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToBillItemResponse converts a domain item to its response shape
func ToBillItemResponse(item *billing.BillItem) BillItemResponse {
	return BillItemResponse{
		ID:          item.ID,
		BillID:      item.BillID,
		ServiceID:   item.ServiceID,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Subtotal:    item.Subtotal,
		IsDeleted:   item.IsDeleted,
		DeletedBy:   item.DeletedBy,
		DeletedAt:   item.DeletedAt,
		CreatedBy:   item.CreatedBy,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// ToBillResponse converts a domain bill to its response shape
func ToBillResponse(bill *billing.Bill) BillResponse {
	items := make([]BillItemResponse, 0, len(bill.Items))
	for idx := range bill.Items {
		items = append(items, ToBillItemResponse(&bill.Items[idx]))
	}

	return BillResponse{
		ID:            bill.ID,
		PatientID:     bill.PatientID,
		Items:         items,
		TotalAmount:   bill.TotalAmount,
		PaymentStatus: bill.PaymentStatus.String(),
		FinalizedAt:   bill.FinalizedAt,
		FinalizedBy:   bill.FinalizedBy,
		IsDeleted:     bill.IsDeleted,
		CreatedBy:     bill.CreatedBy,
		UpdatedBy:     bill.UpdatedBy,
		CreatedAt:     bill.CreatedAt,
		UpdatedAt:     bill.UpdatedAt,
	}
}

// ToBillListItemResponse converts a domain bill to its list shape
func ToBillListItemResponse(bill *billing.Bill) BillListItemResponse {
	return BillListItemResponse{
		ID:            bill.ID,
		PatientID:     bill.PatientID,
		TotalAmount:   bill.TotalAmount,
		PaymentStatus: bill.PaymentStatus.String(),
		ItemCount:     bill.ActiveItemCount(),
		FinalizedAt:   bill.FinalizedAt,
		IsDeleted:     bill.IsDeleted,
		CreatedAt:     bill.CreatedAt,
	}
}
