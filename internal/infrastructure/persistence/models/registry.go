package models

import (
	"time"

	"github.com/clinicore/backend/internal/domain/registry"
	"github.com/shopspring/decimal"
)

// PatientModel is the persistence model for patients.
type PatientModel struct {
	AggregateModel
	MedicalRecordNumber string `gorm:"type:varchar(50);not null;uniqueIndex"`
	FirstName           string `gorm:"type:varchar(100);not null"`
	LastName            string `gorm:"type:varchar(100);not null"`
	DateOfBirth         *time.Time
	Phone               string `gorm:"type:varchar(30)"`
	Email               string `gorm:"type:varchar(200)"`
	Address             string `gorm:"type:varchar(300)"`
	IsActive            bool   `gorm:"not null;default:true;index"`
	IsDeleted           bool   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (PatientModel) TableName() string {
	return "patients"
}

// ToDomain converts the persistence model to a domain Patient.
func (m *PatientModel) ToDomain() *registry.Patient {
	p := &registry.Patient{
		MedicalRecordNumber: m.MedicalRecordNumber,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		DateOfBirth:         m.DateOfBirth,
		Phone:               m.Phone,
		Email:               m.Email,
		Address:             m.Address,
		IsActive:            m.IsActive,
		IsDeleted:           m.IsDeleted,
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Patient.
func (m *PatientModel) FromDomain(p *registry.Patient) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.MedicalRecordNumber = p.MedicalRecordNumber
	m.FirstName = p.FirstName
	m.LastName = p.LastName
	m.DateOfBirth = p.DateOfBirth
	m.Phone = p.Phone
	m.Email = p.Email
	m.Address = p.Address
	m.IsActive = p.IsActive
	m.IsDeleted = p.IsDeleted
}

// StaffModel is the persistence model for staff members.
type StaffModel struct {
	AggregateModel
	EmployeeNumber string `gorm:"type:varchar(50);not null;uniqueIndex"`
	FirstName      string `gorm:"type:varchar(100);not null"`
	LastName       string `gorm:"type:varchar(100);not null"`
	Role           string `gorm:"type:varchar(20);not null"`
	Email          string `gorm:"type:varchar(200)"`
	IsActive       bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (StaffModel) TableName() string {
	return "staff"
}

// ToDomain converts the persistence model to a domain Staff.
func (m *StaffModel) ToDomain() *registry.Staff {
	s := &registry.Staff{
		EmployeeNumber: m.EmployeeNumber,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Role:           registry.StaffRole(m.Role),
		Email:          m.Email,
		IsActive:       m.IsActive,
	}
	m.PopulateAggregateRoot(&s.BaseAggregateRoot)
	return s
}

// FromDomain populates the persistence model from a domain Staff.
func (m *StaffModel) FromDomain(s *registry.Staff) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.EmployeeNumber = s.EmployeeNumber
	m.FirstName = s.FirstName
	m.LastName = s.LastName
	m.Role = string(s.Role)
	m.Email = s.Email
	m.IsActive = s.IsActive
}

// CatalogServiceModel is the persistence model for the service catalog.
type CatalogServiceModel struct {
	AggregateModel
	Code        string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:varchar(500)"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	IsActive    bool            `gorm:"not null;default:true;index"`
	IsDeleted   bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (CatalogServiceModel) TableName() string {
	return "services"
}

// ToDomain converts the persistence model to a domain CatalogService.
func (m *CatalogServiceModel) ToDomain() *registry.CatalogService {
	s := &registry.CatalogService{
		Code:        m.Code,
		Name:        m.Name,
		Description: m.Description,
		UnitPrice:   m.UnitPrice,
		IsActive:    m.IsActive,
		IsDeleted:   m.IsDeleted,
	}
	m.PopulateAggregateRoot(&s.BaseAggregateRoot)
	return s
}

// FromDomain populates the persistence model from a domain CatalogService.
func (m *CatalogServiceModel) FromDomain(s *registry.CatalogService) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Code = s.Code
	m.Name = s.Name
	m.Description = s.Description
	m.UnitPrice = s.UnitPrice
	m.IsActive = s.IsActive
	m.IsDeleted = s.IsDeleted
}
