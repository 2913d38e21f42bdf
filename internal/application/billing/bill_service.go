package billing

import (
	"context"

	"github.com/clinicore/backend/internal/domain/billing"
	"github.com/clinicore/backend/internal/domain/registry"
	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/clinicore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// BillService handles billing business operations. Every bill mutation
// runs inside BillRepository.UpdateWithLock so concurrent writers to the
// same bill serialize on the database row.
type BillService struct {
	billRepo billing.BillRepository
	patients registry.PatientDirectory
	staff    registry.StaffDirectory
	catalog  registry.ServiceCatalog
}

// NewBillService creates a new BillService
func NewBillService(
	billRepo billing.BillRepository,
	patients registry.PatientDirectory,
	staff registry.StaffDirectory,
	catalog registry.ServiceCatalog,
) *BillService {
	return &BillService{
		billRepo: billRepo,
		patients: patients,
		staff:    staff,
		catalog:  catalog,
	}
}

// resolveStaff verifies the acting staff member exists and is active
func (s *BillService) resolveStaff(ctx context.Context, staffID uuid.UUID) error {
	if staffID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Acting staff ID is required")
	}
	ok, err := s.staff.Exists(ctx, staffID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewDomainError("NOT_FOUND", "Staff member not found")
	}
	return nil
}

// snapshotService resolves a catalog service and returns the price to
// freeze onto the new line item. Later catalog edits never touch items
// created from this snapshot.
func (s *BillService) snapshotService(ctx context.Context, serviceID uuid.UUID) (*registry.CatalogService, valueobject.Money, error) {
	svc, err := s.catalog.Get(ctx, serviceID)
	if err != nil {
		return nil, valueobject.ZeroPHP(), err
	}
	if svc.IsDeleted {
		return nil, valueobject.ZeroPHP(), shared.NewDomainError("NOT_FOUND", "Service not found")
	}
	if !svc.IsActive {
		return nil, valueobject.ZeroPHP(), shared.NewDomainError("INVALID_INPUT", "Service is not active")
	}
	return svc, svc.GetUnitPriceMoney(), nil
}

// Create opens a new bill for a patient, optionally seeded with items
func (s *BillService) Create(ctx context.Context, req CreateBillRequest, staffID uuid.UUID) (*BillResponse, error) {
	if err := s.resolveStaff(ctx, staffID); err != nil {
		return nil, err
	}

	exists, err := s.patients.Exists(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("NOT_FOUND", "Patient not found")
	}

	bill, err := billing.NewBill(req.PatientID, staffID)
	if err != nil {
		return nil, err
	}

	for _, input := range req.Items {
		svc, price, err := s.snapshotService(ctx, input.ServiceID)
		if err != nil {
			return nil, err
		}
		description := input.Description
		if description == "" {
			description = svc.Name
		}
		if _, err := bill.AddItem(input.ServiceID, description, input.Quantity, price, staffID); err != nil {
			return nil, err
		}
	}

	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// AddItem appends a line item to a bill, snapshotting the catalog price
func (s *BillService) AddItem(ctx context.Context, billID uuid.UUID, req AddBillItemRequest, staffID uuid.UUID) (*BillResponse, error) {
	if err := s.resolveStaff(ctx, staffID); err != nil {
		return nil, err
	}

	// The catalog lookup happens after the bill is loaded and its state
	// checked, so a missing or frozen bill is reported before any
	// complaint about the service being added.
	bill, err := s.billRepo.UpdateWithLock(ctx, billID, func(bill *billing.Bill) error {
		if err := bill.AssertMutable(); err != nil {
			return err
		}
		svc, price, err := s.snapshotService(ctx, req.ServiceID)
		if err != nil {
			return err
		}
		description := req.Description
		if description == "" {
			description = svc.Name
		}
		_, err = bill.AddItem(req.ServiceID, description, req.Quantity, price, staffID)
		return err
	})
	if err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// resolveItemBill resolves which bill owns an item and enforces that it
// matches the bill the caller addressed. A mismatch is reported as
// forbidden, not as not-found, so the caller learns the item exists but
// does not belong to the bill they are working on.
func (s *BillService) resolveItemBill(ctx context.Context, billID, itemID uuid.UUID) error {
	owner, err := s.billRepo.FindByItemID(ctx, itemID)
	if err != nil {
		return err
	}
	if owner.ID != billID {
		return shared.NewDomainError("FORBIDDEN", "Bill item does not belong to this bill")
	}
	return nil
}

// UpdateItem applies a partial update to a line item
func (s *BillService) UpdateItem(ctx context.Context, billID, itemID uuid.UUID, req UpdateBillItemRequest, staffID uuid.UUID) (*BillResponse, error) {
	if err := s.resolveStaff(ctx, staffID); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return nil, shared.NewDomainError("STATE_CONFLICT", "No fields provided to update")
	}
	if err := s.resolveItemBill(ctx, billID, itemID); err != nil {
		return nil, err
	}

	changes := billing.ItemChanges{
		ServiceID:   req.ServiceID,
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
	}

	bill, err := s.billRepo.UpdateWithLock(ctx, billID, func(bill *billing.Bill) error {
		if err := bill.AssertMutable(); err != nil {
			return err
		}
		// A supplied service reference always goes through the catalog,
		// even when the caller pins the price. The snapshot price only
		// applies when no explicit price came with the request.
		if req.ServiceID != nil {
			_, price, err := s.snapshotService(ctx, *req.ServiceID)
			if err != nil {
				return err
			}
			if req.UnitPrice == nil {
				amount := price.Amount()
				changes.UnitPrice = &amount
			}
		}
		_, err := bill.UpdateItem(itemID, changes, staffID)
		return err
	})
	if err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// ToggleItemDeleted soft-deletes or restores a line item
func (s *BillService) ToggleItemDeleted(ctx context.Context, billID, itemID uuid.UUID, deleted bool, staffID uuid.UUID) (*BillResponse, error) {
	if err := s.resolveStaff(ctx, staffID); err != nil {
		return nil, err
	}
	if err := s.resolveItemBill(ctx, billID, itemID); err != nil {
		return nil, err
	}

	bill, err := s.billRepo.UpdateWithLock(ctx, billID, func(bill *billing.Bill) error {
		_, err := bill.ToggleItemDeleted(itemID, deleted, staffID)
		return err
	})
	if err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// Finalize closes a bill and marks it paid. Retrying a finalize reports
// a state conflict instead of silently succeeding.
func (s *BillService) Finalize(ctx context.Context, billID uuid.UUID, staffID uuid.UUID) (*BillResponse, error) {
	if err := s.resolveStaff(ctx, staffID); err != nil {
		return nil, err
	}

	bill, err := s.billRepo.UpdateWithLock(ctx, billID, func(bill *billing.Bill) error {
		return bill.Finalize(staffID)
	})
	if err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// ToggleDeleted flips the bill's soft-delete flag
func (s *BillService) ToggleDeleted(ctx context.Context, billID uuid.UUID, staffID uuid.UUID) (*BillResponse, error) {
	if err := s.resolveStaff(ctx, staffID); err != nil {
		return nil, err
	}

	bill, err := s.billRepo.UpdateWithLock(ctx, billID, func(bill *billing.Bill) error {
		bill.ToggleDeleted(staffID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// GetByID retrieves a bill with all its items, soft-deleted ones included
func (s *BillService) GetByID(ctx context.Context, billID uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	response := ToBillResponse(bill)
	return &response, nil
}

// List retrieves bills with filtering and pagination
func (s *BillService) List(ctx context.Context, filter BillListFilter) ([]BillListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.PaymentStatus != nil {
		domainFilter.Filters["payment_status"] = filter.PaymentStatus.String()
	}
	if !filter.IncludeDeleted {
		domainFilter.Filters["is_deleted"] = false
	}

	var (
		bills []*billing.Bill
		err   error
	)
	if filter.PatientID != nil {
		bills, err = s.billRepo.FindByPatient(ctx, *filter.PatientID, domainFilter)
	} else {
		bills, err = s.billRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	if filter.PatientID != nil {
		domainFilter.Filters["patient_id"] = *filter.PatientID
	}
	total, err := s.billRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BillListItemResponse, 0, len(bills))
	for _, bill := range bills {
		responses = append(responses, ToBillListItemResponse(bill))
	}
	return responses, total, nil
}
