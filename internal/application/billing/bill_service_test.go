package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/clinicore/backend/internal/domain/billing"
	"github.com/clinicore/backend/internal/domain/registry"
	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/clinicore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBillRepository is a mock implementation of BillRepository
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) (*billing.Bill, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByPatient(ctx context.Context, patientID uuid.UUID, filter shared.Filter) ([]*billing.Bill, error) {
	args := m.Called(ctx, patientID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*billing.Bill, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBillRepository) SumActiveItems(ctx context.Context, billID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, billID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBillRepository) UpdateWithLock(ctx context.Context, billID uuid.UUID, fn func(bill *billing.Bill) error) (*billing.Bill, error) {
	args := m.Called(ctx, billID, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

// MockPatientDirectory is a mock implementation of PatientDirectory
type MockPatientDirectory struct {
	mock.Mock
}

func (m *MockPatientDirectory) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockStaffDirectory is a mock implementation of StaffDirectory
type MockStaffDirectory struct {
	mock.Mock
}

func (m *MockStaffDirectory) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockStaffDirectory) Resolve(ctx context.Context, id uuid.UUID) (*registry.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Staff), args.Error(1)
}

// MockServiceCatalog is a mock implementation of ServiceCatalog
type MockServiceCatalog struct {
	mock.Mock
}

func (m *MockServiceCatalog) Get(ctx context.Context, id uuid.UUID) (*registry.CatalogService, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.CatalogService), args.Error(1)
}

// Test fixtures

type serviceFixture struct {
	svc      *BillService
	billRepo *MockBillRepository
	patients *MockPatientDirectory
	staff    *MockStaffDirectory
	catalog  *MockServiceCatalog
}

func newServiceFixture() *serviceFixture {
	billRepo := new(MockBillRepository)
	patients := new(MockPatientDirectory)
	staff := new(MockStaffDirectory)
	catalog := new(MockServiceCatalog)
	return &serviceFixture{
		svc:      NewBillService(billRepo, patients, staff, catalog),
		billRepo: billRepo,
		patients: patients,
		staff:    staff,
		catalog:  catalog,
	}
}

func newCatalogService(t *testing.T, name string, price float64) *registry.CatalogService {
	svc, err := registry.NewCatalogService("SVC-001", name, valueobject.NewMoneyPHPFromFloat(price))
	require.NoError(t, err)
	return svc
}

func newStoredBill(t *testing.T) *billing.Bill {
	bill, err := billing.NewBill(uuid.New(), uuid.New())
	require.NoError(t, err)
	return bill
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected *shared.DomainError, got %T", err)
	assert.Equal(t, code, domainErr.Code)
}

// ============================================
// Create Tests
// ============================================

func TestBillService_Create(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	staffID := uuid.New()
	patientID := uuid.New()
	serviceID := uuid.New()

	f.staff.On("Exists", ctx, staffID).Return(true, nil)
	f.patients.On("Exists", ctx, patientID).Return(true, nil)
	f.catalog.On("Get", ctx, serviceID).Return(newCatalogService(t, "Consultation", 50), nil)
	f.billRepo.On("Save", ctx, mock.AnythingOfType("*billing.Bill")).Return(nil)

	resp, err := f.svc.Create(ctx, CreateBillRequest{
		PatientID: patientID,
		Items: []CreateBillItemInput{
			{ServiceID: serviceID, Quantity: 2},
		},
	}, staffID)
	require.NoError(t, err)

	assert.Equal(t, patientID, resp.PatientID)
	assert.Equal(t, "pending", resp.PaymentStatus)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Consultation", resp.Items[0].Description, "empty description falls back to service name")
	assert.Equal(t, "50", resp.Items[0].UnitPrice.String())
	assert.Equal(t, "100", resp.TotalAmount.String())
	f.billRepo.AssertExpectations(t)
}

func TestBillService_Create_PatientNotFound(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	staffID := uuid.New()
	patientID := uuid.New()

	f.staff.On("Exists", ctx, staffID).Return(true, nil)
	f.patients.On("Exists", ctx, patientID).Return(false, nil)

	_, err := f.svc.Create(ctx, CreateBillRequest{PatientID: patientID}, staffID)
	assertCode(t, err, "NOT_FOUND")
	f.billRepo.AssertNotCalled(t, "Save")
}

func TestBillService_Create_StaffNotFound(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	staffID := uuid.New()

	f.staff.On("Exists", ctx, staffID).Return(false, nil)

	_, err := f.svc.Create(ctx, CreateBillRequest{PatientID: uuid.New()}, staffID)
	assertCode(t, err, "NOT_FOUND")
	f.patients.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestBillService_Create_InactiveService(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	staffID := uuid.New()
	patientID := uuid.New()
	serviceID := uuid.New()

	svc := newCatalogService(t, "Retired panel", 80)
	svc.Deactivate()

	f.staff.On("Exists", ctx, staffID).Return(true, nil)
	f.patients.On("Exists", ctx, patientID).Return(true, nil)
	f.catalog.On("Get", ctx, serviceID).Return(svc, nil)

	_, err := f.svc.Create(ctx, CreateBillRequest{
		PatientID: patientID,
		Items:     []CreateBillItemInput{{ServiceID: serviceID, Quantity: 1}},
	}, staffID)
	assertCode(t, err, "INVALID_INPUT")
}

// ============================================
// AddItem Tests
// ============================================

func TestBillService_AddItem_SnapshotsCatalogPrice(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	staffID := uuid.New()
	serviceID := uuid.New()
	bill := newStoredBill(t)

	f.staff.On("Exists", ctx, staffID).Return(true, nil)
	f.catalog.On("Get", ctx, serviceID).Return(newCatalogService(t, "X-ray", 120.50), nil)
	f.billRepo.On("UpdateWithLock", ctx, bill.ID, mock.AnythingOfType("func(*billing.Bill) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(2).(func(bill *billing.Bill) error)
			require.NoError(t, fn(bill))
		}).
		Return(bill, nil)

	resp, err := f.svc.AddItem(ctx, bill.ID, AddBillItemRequest{ServiceID: serviceID, Quantity: 2}, staffID)
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, "120.50", resp.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "241.00", resp.TotalAmount.StringFixed(2))
}

func TestBillService_AddItem_ServiceNotFound(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	staffID := uuid.New()
	serviceID := uuid.New()
	bill := newStoredBill(t)

	f.staff.On("Exists", ctx, staffID).Return(true, nil)
	f.catalog.On("Get", ctx, serviceID).Return(nil, shared.ErrNotFound)
	f.billRepo.On("UpdateWithLock", ctx, bill.ID, mock.AnythingOfType("func(*billing.Bill) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(2).(func(bill *billing.Bill) error)
			assertCode(t, fn(bill), "NOT_FOUND")
		}).
		Return(nil, shared.ErrNotFound)

	_, err := f.svc.AddItem(ctx, bill.ID, AddBillItemRequest{ServiceID: serviceID, Quantity: 1}, staffID)
	assertCode(t, err, "NOT_FOUND")
	assert.Zero(t, bill.ItemCount())
}

func TestBillService_AddItem_MissingBillReportedBeforeBadService(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	staffID := uuid.New()
	serviceID := uuid.New()
	billID := uuid.New()

	retired := newCatalogService(t, "Retired panel", 80)
	retired.Deactivate()

	f.staff.On("Exists", ctx, staffID).Return(true, nil)
	f.catalog.On("Get", ctx, serviceID).Return(retired, nil)
	f.billRepo.On("UpdateWithLock", ctx, billID, mock.AnythingOfType("func(*billing.Bill) error")).
		Return(nil, shared.ErrNotFound)

	_, err := f.svc.AddItem(ctx, billID, AddBillItemRequest{ServiceID: serviceID, Quantity: 1}, staffID)
	assertCode(t, err, "NOT_FOUND")
	f.catalog.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestBillService_AddItem_DeletedBillReportedBeforeBadService(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	staffID := uuid.New()
	serviceID := uuid.New()
	bill := newStoredBill(t)
	bill.ToggleDeleted(staffID)

	retired := newCatalogService(t, "Retired panel", 80)
	retired.Deactivate()

	f.staff.On("Exists", ctx, staffID).Return(true, nil)
	f.catalog.On("Get", ctx, serviceID).Return(retired, nil)
	f.billRepo.On("UpdateWithLock", ctx, bill.ID, mock.AnythingOfType("func(*billing.Bill) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(2).(func(bill *billing.Bill) error)
			assertCode(t, fn(bill), "STATE_CONFLICT")
		}).
		Return(nil, shared.NewDomainError("STATE_CONFLICT", "Bill is deleted and cannot be modified"))

	_, err := f.svc.AddItem(ctx, bill.ID, AddBillItemRequest{ServiceID: serviceID, Quantity: 1}, staffID)
	assertCode(t, err, "STATE_CONFLICT")
	f.catalog.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestBillService_AddItem_DeletedService(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	staffID := uuid.New()
	serviceID := uuid.New()
	bill := newStoredBill(t)

	gone := newCatalogService(t, "Removed panel", 80)
	require.NoError(t, gone.MarkDeleted())

	f.staff.On("Exists", ctx, staffID).Return(true, nil)
	f.catalog.On("Get", ctx, serviceID).Return(gone, nil)
	f.billRepo.On("UpdateWithLock", ctx, bill.ID, mock.AnythingOfType("func(*billing.Bill) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(2).(func(bill *billing.Bill) error)
			assertCode(t, fn(bill), "NOT_FOUND")
		}).
		Return(nil, shared.ErrNotFound)

	_, err := f.svc.AddItem(ctx, bill.ID, AddBillItemRequest{ServiceID: serviceID, Quantity: 1}, staffID)
	assertCode(t, err, "NOT_FOUND")
	assert.Zero(t, bill.ItemCount())
}

// ============================================
// UpdateItem Tests
// ============================================

func TestBillService_UpdateItem_CrossBillForbidden(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	staffID := uuid.New()
	otherBill := newStoredBill(t)
	item, err := otherBill.AddItem(uuid.New(), "Consultation", 1, valueobject.NewMoneyPHPFromFloat(50), staffID)
	require.NoError(t, err)

	targetBillID := uuid.New()

	f.staff.On("Exists", ctx, staffID).Return(true, nil)
	f.billRepo.On("FindByItemID", ctx, item.ID).Return(otherBill, nil)

	qty := int64(3)
	_, err = f.svc.UpdateItem(ctx, targetBillID, item.ID, UpdateBillItemRequest{Quantity: &qty}, staffID)
	assertCode(t, err, "FORBIDDEN")
	f.billRepo.AssertNotCalled(t, "UpdateWithLock", mock.Anything, mock.Anything, mock.Anything)
}

func TestBillService_UpdateItem_EmptyRequest(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	staffID := uuid.New()

	f.staff.On("Exists", ctx, staffID).Return(true, nil)

	_, err := f.svc.UpdateItem(ctx, uuid.New(), uuid.New(), UpdateBillItemRequest{}, staffID)
	assertCode(t, err, "STATE_CONFLICT")
	f.billRepo.AssertNotCalled(t, "FindByItemID", mock.Anything, mock.Anything)
}

func TestBillService_UpdateItem_ItemNotFound(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	staffID := uuid.New()
	itemID := uuid.New()

	f.staff.On("Exists", ctx, staffID).Return(true, nil)
	f.billRepo.On("FindByItemID", ctx, itemID).Return(nil, shared.ErrNotFound)

	qty := int64(3)
	_, err := f.svc.UpdateItem(ctx, uuid.New(), itemID, UpdateBillItemRequest{Quantity: &qty}, staffID)
	assertCode(t, err, "NOT_FOUND")
}

func TestBillService_UpdateItem_ServiceSwitchResnapshotsPrice(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	staffID := uuid.New()
	bill := newStoredBill(t)
	item, err := bill.AddItem(uuid.New(), "Consultation", 1, valueobject.NewMoneyPHPFromFloat(50), staffID)
	require.NoError(t, err)

	newServiceID := uuid.New()

	f.staff.On("Exists", ctx, staffID).Return(true, nil)
	f.billRepo.On("FindByItemID", ctx, item.ID).Return(bill, nil)
	f.catalog.On("Get", ctx, newServiceID).Return(newCatalogService(t, "Ultrasound", 300), nil)
	f.billRepo.On("UpdateWithLock", ctx, bill.ID, mock.AnythingOfType("func(*billing.Bill) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(2).(func(bill *billing.Bill) error)
			require.NoError(t, fn(bill))
		}).
		Return(bill, nil)

	resp, err := f.svc.UpdateItem(ctx, bill.ID, item.ID, UpdateBillItemRequest{ServiceID: &newServiceID}, staffID)
	require.NoError(t, err)
	assert.Equal(t, "300.00", resp.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "300.00", resp.TotalAmount.StringFixed(2))
}

func TestBillService_UpdateItem_PinnedPriceStillValidatesService(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	staffID := uuid.New()
	bill := newStoredBill(t)
	item, err := bill.AddItem(uuid.New(), "Consultation", 1, valueobject.NewMoneyPHPFromFloat(50), staffID)
	require.NoError(t, err)

	newServiceID := uuid.New()
	retired := newCatalogService(t, "Retired panel", 300)
	retired.Deactivate()

	f.staff.On("Exists", ctx, staffID).Return(true, nil)
	f.billRepo.On("FindByItemID", ctx, item.ID).Return(bill, nil)
	f.catalog.On("Get", ctx, newServiceID).Return(retired, nil)
	f.billRepo.On("UpdateWithLock", ctx, bill.ID, mock.AnythingOfType("func(*billing.Bill) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(2).(func(bill *billing.Bill) error)
			assertCode(t, fn(bill), "INVALID_INPUT")
		}).
		Return(nil, shared.NewDomainError("INVALID_INPUT", "Service is not active"))

	pinned := decimal.NewFromInt(75)
	_, err = f.svc.UpdateItem(ctx, bill.ID, item.ID, UpdateBillItemRequest{ServiceID: &newServiceID, UnitPrice: &pinned}, staffID)
	assertCode(t, err, "INVALID_INPUT")
	f.catalog.AssertCalled(t, "Get", ctx, newServiceID)
	assert.Equal(t, "50.00", item.UnitPrice.StringFixed(2), "rejected switch leaves the item untouched")
}

func TestBillService_UpdateItem_PinnedPriceOverridesSnapshot(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	staffID := uuid.New()
	bill := newStoredBill(t)
	item, err := bill.AddItem(uuid.New(), "Consultation", 1, valueobject.NewMoneyPHPFromFloat(50), staffID)
	require.NoError(t, err)

	newServiceID := uuid.New()

	f.staff.On("Exists", ctx, staffID).Return(true, nil)
	f.billRepo.On("FindByItemID", ctx, item.ID).Return(bill, nil)
	f.catalog.On("Get", ctx, newServiceID).Return(newCatalogService(t, "Ultrasound", 300), nil)
	f.billRepo.On("UpdateWithLock", ctx, bill.ID, mock.AnythingOfType("func(*billing.Bill) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(2).(func(bill *billing.Bill) error)
			require.NoError(t, fn(bill))
		}).
		Return(bill, nil)

	pinned := decimal.NewFromInt(75)
	resp, err := f.svc.UpdateItem(ctx, bill.ID, item.ID, UpdateBillItemRequest{ServiceID: &newServiceID, UnitPrice: &pinned}, staffID)
	require.NoError(t, err)
	f.catalog.AssertCalled(t, "Get", ctx, newServiceID)
	assert.Equal(t, "75.00", resp.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "75.00", resp.TotalAmount.StringFixed(2))
}

// ============================================
// ToggleItemDeleted Tests
// ============================================

func TestBillService_ToggleItemDeleted(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	staffID := uuid.New()
	bill := newStoredBill(t)
	item, err := bill.AddItem(uuid.New(), "Consultation", 2, valueobject.NewMoneyPHPFromFloat(50), staffID)
	require.NoError(t, err)

	f.staff.On("Exists", ctx, staffID).Return(true, nil)
	f.billRepo.On("FindByItemID", ctx, item.ID).Return(bill, nil)
	f.billRepo.On("UpdateWithLock", ctx, bill.ID, mock.AnythingOfType("func(*billing.Bill) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(2).(func(bill *billing.Bill) error)
			require.NoError(t, fn(bill))
		}).
		Return(bill, nil)

	resp, err := f.svc.ToggleItemDeleted(ctx, bill.ID, item.ID, true, staffID)
	require.NoError(t, err)
	assert.True(t, resp.Items[0].IsDeleted)
	assert.Equal(t, "0.00", resp.TotalAmount.StringFixed(2))
}

func TestBillService_ToggleItemDeleted_CrossBillForbidden(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	staffID := uuid.New()
	owner := newStoredBill(t)
	item, err := owner.AddItem(uuid.New(), "Consultation", 1, valueobject.NewMoneyPHPFromFloat(50), staffID)
	require.NoError(t, err)

	f.staff.On("Exists", ctx, staffID).Return(true, nil)
	f.billRepo.On("FindByItemID", ctx, item.ID).Return(owner, nil)

	_, err = f.svc.ToggleItemDeleted(ctx, uuid.New(), item.ID, true, staffID)
	assertCode(t, err, "FORBIDDEN")
}

// ============================================
// Finalize Tests
// ============================================

func TestBillService_Finalize(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	staffID := uuid.New()
	bill := newStoredBill(t)
	_, err := bill.AddItem(uuid.New(), "Consultation", 2, valueobject.NewMoneyPHPFromFloat(50), staffID)
	require.NoError(t, err)

	f.staff.On("Exists", ctx, staffID).Return(true, nil)
	f.billRepo.On("UpdateWithLock", ctx, bill.ID, mock.AnythingOfType("func(*billing.Bill) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(2).(func(bill *billing.Bill) error)
			require.NoError(t, fn(bill))
		}).
		Return(bill, nil)

	resp, err := f.svc.Finalize(ctx, bill.ID, staffID)
	require.NoError(t, err)
	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.NotNil(t, resp.FinalizedAt)
	require.NotNil(t, resp.FinalizedBy)
	assert.Equal(t, staffID, *resp.FinalizedBy)
}

func TestBillService_Finalize_PropagatesConflict(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	staffID := uuid.New()
	billID := uuid.New()

	f.staff.On("Exists", ctx, staffID).Return(true, nil)
	f.billRepo.On("UpdateWithLock", ctx, billID, mock.AnythingOfType("func(*billing.Bill) error")).
		Return(nil, shared.NewDomainError("STATE_CONFLICT", "Bill is already finalized"))

	_, err := f.svc.Finalize(ctx, billID, staffID)
	assertCode(t, err, "STATE_CONFLICT")
}

// ============================================
// ToggleDeleted / GetByID / List Tests
// ============================================

func TestBillService_ToggleDeleted(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	staffID := uuid.New()
	bill := newStoredBill(t)

	f.staff.On("Exists", ctx, staffID).Return(true, nil)
	f.billRepo.On("UpdateWithLock", ctx, bill.ID, mock.AnythingOfType("func(*billing.Bill) error")).
		Run(func(args mock.Arguments) {
			fn := args.Get(2).(func(bill *billing.Bill) error)
			require.NoError(t, fn(bill))
		}).
		Return(bill, nil)

	resp, err := f.svc.ToggleDeleted(ctx, bill.ID, staffID)
	require.NoError(t, err)
	assert.True(t, resp.IsDeleted)
}

func TestBillService_GetByID_NotFound(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	billID := uuid.New()

	f.billRepo.On("FindByID", ctx, billID).Return(nil, shared.ErrNotFound)

	_, err := f.svc.GetByID(ctx, billID)
	assertCode(t, err, "NOT_FOUND")
}

func TestBillService_List(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	bill := newStoredBill(t)

	f.billRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).Return([]*billing.Bill{bill}, nil)
	f.billRepo.On("Count", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	items, total, err := f.svc.List(ctx, BillListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, bill.ID, items[0].ID)
}
