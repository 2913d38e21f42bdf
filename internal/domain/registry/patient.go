// Package registry holds the supporting master data for billing: the
// patients being billed, the staff acting on bills, and the service
// catalog that prices line items.
package registry

import (
	"context"
	"strings"
	"time"

	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Patient is a person the clinic can bill
type Patient struct {
	shared.BaseAggregateRoot
	MedicalRecordNumber string
	FirstName           string
	LastName            string
	DateOfBirth         *time.Time
	Phone               string
	Email               string
	Address             string
	IsActive            bool
	IsDeleted           bool
}

// NewPatient registers a patient
func NewPatient(mrn, firstName, lastName string) (*Patient, error) {
	mrn = strings.TrimSpace(mrn)
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	if mrn == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Medical record number cannot be empty")
	}
	if firstName == "" || lastName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Patient name cannot be empty")
	}

	return &Patient{
		BaseAggregateRoot:   shared.NewBaseAggregateRoot(),
		MedicalRecordNumber: mrn,
		FirstName:           firstName,
		LastName:            lastName,
		IsActive:            true,
	}, nil
}

// FullName returns the display name of the patient
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// UpdateContact updates the patient's contact details
func (p *Patient) UpdateContact(phone, email, address string) {
	p.Phone = strings.TrimSpace(phone)
	p.Email = strings.TrimSpace(email)
	p.Address = strings.TrimSpace(address)
	p.UpdatedAt = time.Now()
}

// Deactivate marks the patient record inactive
func (p *Patient) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
}

// Activate restores an inactive patient record
func (p *Patient) Activate() {
	p.IsActive = true
	p.UpdatedAt = time.Now()
}

// MarkDeleted soft-deletes the patient record. New bills can no longer
// target a deleted patient; existing bills keep their reference.
func (p *Patient) MarkDeleted() error {
	if p.IsDeleted {
		return shared.NewDomainError("STATE_CONFLICT", "Patient is already deleted")
	}
	p.IsDeleted = true
	p.UpdatedAt = time.Now()
	return nil
}

// Restore clears the soft-delete flag
func (p *Patient) Restore() error {
	if !p.IsDeleted {
		return shared.NewDomainError("STATE_CONFLICT", "Patient is not deleted")
	}
	p.IsDeleted = false
	p.UpdatedAt = time.Now()
	return nil
}

// PatientDirectory is the lookup contract the billing service uses to
// check that a bill targets a real patient.
type PatientDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
