package registry

import (
	"time"

	"github.com/clinicore/backend/internal/domain/registry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Patient DTOs ====================

// CreatePatientRequest represents a request to register a patient
type CreatePatientRequest struct {
	MedicalRecordNumber string     `json:"medical_record_number" binding:"required,min=1,max=50"`
	FirstName           string     `json:"first_name" binding:"required,min=1,max=100"`
	LastName            string     `json:"last_name" binding:"required,min=1,max=100"`
	DateOfBirth         *time.Time `json:"date_of_birth"`
	Phone               string     `json:"phone" binding:"omitempty,max=30"`
	Email               string     `json:"email" binding:"omitempty,email"`
	Address             string     `json:"address" binding:"omitempty,max=300"`
}

// UpdatePatientRequest represents a partial update of a patient record
type UpdatePatientRequest struct {
	FirstName *string    `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string    `json:"last_name" binding:"omitempty,min=1,max=100"`
	Phone     *string    `json:"phone" binding:"omitempty,max=30"`
	Email     *string    `json:"email" binding:"omitempty,email"`
	Address   *string    `json:"address" binding:"omitempty,max=300"`
	IsActive  *bool      `json:"is_active"`
	DOB       *time.Time `json:"date_of_birth"`
}

// PatientResponse represents a patient in API responses
type PatientResponse struct {
	ID                  uuid.UUID  `json:"id"`
	MedicalRecordNumber string     `json:"medical_record_number"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	FullName            string     `json:"full_name"`
	DateOfBirth         *time.Time `json:"date_of_birth,omitempty"`
	Phone               string     `json:"phone,omitempty"`
	Email               string     `json:"email,omitempty"`
	Address             string     `json:"address,omitempty"`
	IsActive            bool       `json:"is_active"`
	IsDeleted           bool       `json:"is_deleted"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// ToPatientResponse converts a domain patient to its response shape
func ToPatientResponse(p *registry.Patient) PatientResponse {
	return PatientResponse{
		ID:                  p.ID,
		MedicalRecordNumber: p.MedicalRecordNumber,
		FirstName:           p.FirstName,
		LastName:            p.LastName,
		FullName:            p.FullName(),
		DateOfBirth:         p.DateOfBirth,
		Phone:               p.Phone,
		Email:               p.Email,
		Address:             p.Address,
		IsActive:            p.IsActive,
		IsDeleted:           p.IsDeleted,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// ==================== Staff DTOs ====================

// CreateStaffRequest represents a request to register a staff member
type CreateStaffRequest struct {
	EmployeeNumber string `json:"employee_number" binding:"required,min=1,max=50"`
	FirstName      string `json:"first_name" binding:"required,min=1,max=100"`
	LastName       string `json:"last_name" binding:"required,min=1,max=100"`
	Role           string `json:"role" binding:"required,oneof=doctor nurse cashier administrator"`
	Email          string `json:"email" binding:"omitempty,email"`
}

// StaffResponse represents a staff member in API responses
type StaffResponse struct {
	ID             uuid.UUID `json:"id"`
	EmployeeNumber string    `json:"employee_number"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	FullName       string    `json:"full_name"`
	Role           string    `json:"role"`
	Email          string    `json:"email,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToStaffResponse converts a domain staff member to its response shape
func ToStaffResponse(s *registry.Staff) StaffResponse {
	return StaffResponse{
		ID:             s.ID,
		EmployeeNumber: s.EmployeeNumber,
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		FullName:       s.FullName(),
		Role:           string(s.Role),
		Email:          s.Email,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// ==================== Service Catalog DTOs ====================

// CreateServiceRequest represents a request to add a billable service
type CreateServiceRequest struct {
	Code        string          `json:"code" binding:"required,min=1,max=50"`
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"omitempty,max=500"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// UpdateServiceRequest represents a partial update of a catalog service
type UpdateServiceRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	IsActive    *bool            `json:"is_active"`
}

// ServiceResponse represents a catalog service in API responses
type ServiceResponse struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	IsActive    bool            `json:"is_active"`
	IsDeleted   bool            `json:"is_deleted"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToServiceResponse converts a domain catalog service to its response shape
func ToServiceResponse(s *registry.CatalogService) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Code:        s.Code,
		Name:        s.Name,
		Description: s.Description,
		UnitPrice:   s.UnitPrice,
		IsActive:    s.IsActive,
		IsDeleted:   s.IsDeleted,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ListFilter represents the common list filter for registry resources
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}
