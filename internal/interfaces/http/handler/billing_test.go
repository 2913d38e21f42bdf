package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	billingapp "github.com/clinicore/backend/internal/application/billing"
	"github.com/clinicore/backend/internal/domain/registry"
	"github.com/clinicore/backend/internal/domain/shared/valueobject"
	"github.com/clinicore/backend/internal/infrastructure/persistence"
	"github.com/clinicore/backend/internal/infrastructure/persistence/models"
	"github.com/clinicore/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubPatientDirectory struct {
	known map[uuid.UUID]bool
}

func (d *stubPatientDirectory) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return d.known[id], nil
}

type stubStaffDirectory struct {
	known map[uuid.UUID]*registry.Staff
}

func (d *stubStaffDirectory) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := d.known[id]
	return ok, nil
}

func (d *stubStaffDirectory) Resolve(_ context.Context, id uuid.UUID) (*registry.Staff, error) {
	staff, ok := d.known[id]
	if !ok {
		return nil, fmt.Errorf("staff %s not found", id)
	}
	return staff, nil
}

type stubServiceCatalog struct {
	known map[uuid.UUID]*registry.CatalogService
}

func (c *stubServiceCatalog) Get(_ context.Context, id uuid.UUID) (*registry.CatalogService, error) {
	svc, ok := c.known[id]
	if !ok {
		return nil, fmt.Errorf("service %s not found", id)
	}
	return svc, nil
}

// billTestEnv wires a BillHandler over a real sqlite-backed repository
// with stubbed registry lookups.
type billTestEnv struct {
	engine    *gin.Engine
	patientID uuid.UUID
	staffID   uuid.UUID
	serviceID uuid.UUID
}

func setupBillHandler(t *testing.T) *billTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.BillModel{}, &models.BillItemModel{}))

	patientID := uuid.New()
	staffID := uuid.New()

	svc, err := registry.NewCatalogService("CONSULT", "General Consultation", valueobject.NewMoneyPHP(decimal.NewFromInt(50)))
	require.NoError(t, err)

	staff, err := registry.NewStaff("EMP-0001", "Maria", "Santos", registry.StaffRoleCashier)
	require.NoError(t, err)
	staff.ID = staffID

	billService := billingapp.NewBillService(
		persistence.NewGormBillRepository(db),
		&stubPatientDirectory{known: map[uuid.UUID]bool{patientID: true}},
		&stubStaffDirectory{known: map[uuid.UUID]*registry.Staff{staffID: staff}},
		&stubServiceCatalog{known: map[uuid.UUID]*registry.CatalogService{svc.ID: svc}},
	)

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewBillHandler(billService).RegisterRoutes(api)

	return &billTestEnv{
		engine:    engine,
		patientID: patientID,
		staffID:   staffID,
		serviceID: svc.ID,
	}
}

func (e *billTestEnv) do(t *testing.T, method, path string, body any, staffID string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if staffID != "" {
		req.Header.Set(StaffIDHeader, staffID)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (e *billTestEnv) createBill(t *testing.T, items []map[string]any) map[string]any {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/v1/bills", map[string]any{
		"patient_id": e.patientID,
		"items":      items,
	}, e.staffID.String())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decodeResponse(t, w)
	require.True(t, resp.Success)
	return resp.Data.(map[string]any)
}

func TestBillHandler_Create(t *testing.T) {
	env := setupBillHandler(t)

	bill := env.createBill(t, []map[string]any{
		{"service_id": env.serviceID, "quantity": 2},
	})

	assert.Equal(t, env.patientID.String(), bill["patient_id"])
	assert.Equal(t, "pending", bill["payment_status"])
	assert.Equal(t, "100", bill["total_amount"])

	items := bill["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "General Consultation", item["description"])
	assert.Equal(t, "50", item["unit_price"])
}

func TestBillHandler_Create_MissingStaffHeader(t *testing.T) {
	env := setupBillHandler(t)

	w := env.do(t, http.MethodPost, "/api/v1/bills", map[string]any{
		"patient_id": env.patientID,
	}, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInvalidInput, resp.Error.Code)
}

func TestBillHandler_Create_UnknownPatient(t *testing.T) {
	env := setupBillHandler(t)

	w := env.do(t, http.MethodPost, "/api/v1/bills", map[string]any{
		"patient_id": uuid.New(),
	}, env.staffID.String())

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestBillHandler_GetByID_NotFound(t *testing.T) {
	env := setupBillHandler(t)

	w := env.do(t, http.MethodGet, "/api/v1/bills/"+uuid.NewString(), nil, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestBillHandler_GetByID_InvalidUUID(t *testing.T) {
	env := setupBillHandler(t)

	w := env.do(t, http.MethodGet, "/api/v1/bills/not-a-uuid", nil, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBillHandler_Finalize_EmptyBill(t *testing.T) {
	env := setupBillHandler(t)
	bill := env.createBill(t, nil)

	w := env.do(t, http.MethodPost, "/api/v1/bills/"+bill["id"].(string)+"/finalize", nil, env.staffID.String())

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeStateConflict, resp.Error.Code)
}

func TestBillHandler_Finalize(t *testing.T) {
	env := setupBillHandler(t)
	bill := env.createBill(t, []map[string]any{
		{"service_id": env.serviceID, "quantity": 1},
	})

	w := env.do(t, http.MethodPost, "/api/v1/bills/"+bill["id"].(string)+"/finalize", nil, env.staffID.String())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeResponse(t, w)
	finalized := resp.Data.(map[string]any)
	assert.Equal(t, "paid", finalized["payment_status"])
	assert.NotNil(t, finalized["finalized_at"])

	// A second finalize must be rejected.
	w = env.do(t, http.MethodPost, "/api/v1/bills/"+bill["id"].(string)+"/finalize", nil, env.staffID.String())
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBillHandler_UpdateItem_CrossBill(t *testing.T) {
	env := setupBillHandler(t)
	billA := env.createBill(t, []map[string]any{
		{"service_id": env.serviceID, "quantity": 1},
	})
	billB := env.createBill(t, nil)

	itemA := billA["items"].([]any)[0].(map[string]any)

	qty := int64(5)
	w := env.do(t, http.MethodPut,
		"/api/v1/bills/"+billB["id"].(string)+"/items/"+itemA["id"].(string),
		map[string]any{"quantity": qty}, env.staffID.String())

	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeForbidden, resp.Error.Code)
}

func TestBillHandler_UpdateItem_EmptyBody(t *testing.T) {
	env := setupBillHandler(t)
	bill := env.createBill(t, []map[string]any{
		{"service_id": env.serviceID, "quantity": 1},
	})
	item := bill["items"].([]any)[0].(map[string]any)

	w := env.do(t, http.MethodPut,
		"/api/v1/bills/"+bill["id"].(string)+"/items/"+item["id"].(string),
		map[string]any{}, env.staffID.String())

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeStateConflict, resp.Error.Code)
}

func TestBillHandler_ToggleItemDeleted(t *testing.T) {
	env := setupBillHandler(t)
	bill := env.createBill(t, []map[string]any{
		{"service_id": env.serviceID, "quantity": 2},
	})
	item := bill["items"].([]any)[0].(map[string]any)
	path := "/api/v1/bills/" + bill["id"].(string) + "/items/" + item["id"].(string) + "/toggle-delete"

	w := env.do(t, http.MethodPost, path, map[string]any{"deleted": true}, env.staffID.String())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeResponse(t, w)
	updated := resp.Data.(map[string]any)
	assert.Equal(t, "0", updated["total_amount"])

	// Deleting an already deleted item is a state conflict.
	w = env.do(t, http.MethodPost, path, map[string]any{"deleted": true}, env.staffID.String())
	assert.Equal(t, http.StatusConflict, w.Code)

	// Restore brings the subtotal back.
	w = env.do(t, http.MethodPost, path, map[string]any{"deleted": false}, env.staffID.String())
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeResponse(t, w)
	restored := resp.Data.(map[string]any)
	assert.Equal(t, "100", restored["total_amount"])
}

func TestBillHandler_ToggleItemDeleted_MissingFlag(t *testing.T) {
	env := setupBillHandler(t)
	bill := env.createBill(t, []map[string]any{
		{"service_id": env.serviceID, "quantity": 1},
	})
	item := bill["items"].([]any)[0].(map[string]any)

	w := env.do(t, http.MethodPost,
		"/api/v1/bills/"+bill["id"].(string)+"/items/"+item["id"].(string)+"/toggle-delete",
		map[string]any{}, env.staffID.String())

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBillHandler_AddItem_AfterFinalize(t *testing.T) {
	env := setupBillHandler(t)
	bill := env.createBill(t, []map[string]any{
		{"service_id": env.serviceID, "quantity": 1},
	})

	w := env.do(t, http.MethodPost, "/api/v1/bills/"+bill["id"].(string)+"/finalize", nil, env.staffID.String())
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/bills/"+bill["id"].(string)+"/items",
		map[string]any{"service_id": env.serviceID, "quantity": 1}, env.staffID.String())

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeStateConflict, resp.Error.Code)
}

func TestBillHandler_List(t *testing.T) {
	env := setupBillHandler(t)
	env.createBill(t, nil)
	env.createBill(t, []map[string]any{
		{"service_id": env.serviceID, "quantity": 3},
	})

	w := env.do(t, http.MethodGet, "/api/v1/bills?page=1&page_size=10", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeResponse(t, w)
	require.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(2), resp.Meta.Total)
	assert.Len(t, resp.Data.([]any), 2)
}
