package registry

import (
	"context"
	"strings"
	"time"

	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StaffRole classifies what a staff member does at the clinic
type StaffRole string

const (
	StaffRoleDoctor       StaffRole = "doctor"
	StaffRoleNurse        StaffRole = "nurse"
	StaffRoleCashier      StaffRole = "cashier"
	StaffRoleAdministrator StaffRole = "administrator"
)

// IsValid checks if the role is a known StaffRole
func (r StaffRole) IsValid() bool {
	switch r {
	case StaffRoleDoctor, StaffRoleNurse, StaffRoleCashier, StaffRoleAdministrator:
		return true
	}
	return false
}

// Staff is a clinic employee who creates and finalizes bills
type Staff struct {
	shared.BaseAggregateRoot
	EmployeeNumber string
	FirstName      string
	LastName       string
	Role           StaffRole
	Email          string
	IsActive       bool
}

// NewStaff registers a staff member
func NewStaff(employeeNumber, firstName, lastName string, role StaffRole) (*Staff, error) {
	employeeNumber = strings.TrimSpace(employeeNumber)
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	if employeeNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee number cannot be empty")
	}
	if firstName == "" || lastName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Staff name cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid staff role")
	}

	return &Staff{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EmployeeNumber:    employeeNumber,
		FirstName:         firstName,
		LastName:          lastName,
		Role:              role,
		IsActive:          true,
	}, nil
}

// FullName returns the display name of the staff member
func (s *Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Deactivate marks the staff record inactive
func (s *Staff) Deactivate() {
	s.IsActive = false
	s.UpdatedAt = time.Now()
}

// Activate restores an inactive staff record
func (s *Staff) Activate() {
	s.IsActive = true
	s.UpdatedAt = time.Now()
}

// StaffDirectory is the lookup contract the billing service uses to
// validate the staff member acting on a bill.
type StaffDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Resolve(ctx context.Context, id uuid.UUID) (*Staff, error)
}
