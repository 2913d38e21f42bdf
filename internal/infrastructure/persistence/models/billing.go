package models

import (
	"time"

	"github.com/clinicore/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillModel is the persistence model for the Bill aggregate root.
type BillModel struct {
	AuditedAggregateModel
	PatientID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Items         []BillItemModel `gorm:"foreignKey:BillID;references:ID"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentStatus string          `gorm:"type:varchar(20);not null;default:'pending';index"`
	FinalizedAt   *time.Time      `gorm:"index"`
	FinalizedBy   *uuid.UUID      `gorm:"type:uuid"`
	IsDeleted     bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts the persistence model to a domain Bill entity.
func (m *BillModel) ToDomain() *billing.Bill {
	bill := &billing.Bill{
		PatientID:     m.PatientID,
		TotalAmount:   m.TotalAmount,
		PaymentStatus: billing.PaymentStatus(m.PaymentStatus),
		FinalizedAt:   m.FinalizedAt,
		FinalizedBy:   m.FinalizedBy,
		IsDeleted:     m.IsDeleted,
		Items:         make([]billing.BillItem, len(m.Items)),
	}
	m.PopulateAuditedAggregateRoot(&bill.AuditedAggregateRoot)
	for i, item := range m.Items {
		bill.Items[i] = *item.ToDomain()
	}
	return bill
}

// FromDomain populates the persistence model from a domain Bill entity.
func (m *BillModel) FromDomain(b *billing.Bill) {
	m.FromDomainAuditedAggregateRoot(b.AuditedAggregateRoot)
	m.PatientID = b.PatientID
	m.TotalAmount = b.TotalAmount
	m.PaymentStatus = b.PaymentStatus.String()
	m.FinalizedAt = b.FinalizedAt
	m.FinalizedBy = b.FinalizedBy
	m.IsDeleted = b.IsDeleted
	m.Items = make([]BillItemModel, len(b.Items))
	for i := range b.Items {
		m.Items[i].FromDomain(&b.Items[i])
	}
}

// BillItemModel is the persistence model for bill line items.
type BillItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	BillID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ServiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(100);not null"`
	Quantity    int64           `gorm:"not null;default:0"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	IsDeleted   bool            `gorm:"not null;default:false;index"`
	DeletedBy   *uuid.UUID      `gorm:"type:uuid"`
	DeletedAt   *time.Time
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BillItemModel) TableName() string {
	return "bill_items"
}

// ToDomain converts the persistence model to a domain BillItem.
func (m *BillItemModel) ToDomain() *billing.BillItem {
	return &billing.BillItem{
		ID:          m.ID,
		BillID:      m.BillID,
		ServiceID:   m.ServiceID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Subtotal:    m.Subtotal,
		IsDeleted:   m.IsDeleted,
		DeletedBy:   m.DeletedBy,
		DeletedAt:   m.DeletedAt,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain BillItem.
func (m *BillItemModel) FromDomain(item *billing.BillItem) {
	m.ID = item.ID
	m.BillID = item.BillID
	m.ServiceID = item.ServiceID
	m.Description = item.Description
	m.Quantity = item.Quantity
	m.UnitPrice = item.UnitPrice
	m.Subtotal = item.Subtotal
	m.IsDeleted = item.IsDeleted
	m.DeletedBy = item.DeletedBy
	m.DeletedAt = item.DeletedAt
	m.CreatedBy = item.CreatedBy
	m.CreatedAt = item.CreatedAt
	m.UpdatedAt = item.UpdatedAt
}
