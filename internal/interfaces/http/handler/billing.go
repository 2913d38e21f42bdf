package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/clinicore/backend/internal/application/billing"
)

// BillHandler handles bill and bill item HTTP requests
type BillHandler struct {
	BaseHandler
	billService *billingapp.BillService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *billingapp.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *BillHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bills := rg.Group("/bills")
	{
		bills.POST("", h.Create)
		bills.GET("", h.List)
		bills.GET("/:id", h.GetByID)
		bills.POST("/:id/finalize", h.Finalize)
		bills.POST("/:id/toggle-delete", h.ToggleDeleted)
		bills.POST("/:id/items", h.AddItem)
		bills.PUT("/:id/items/:itemId", h.UpdateItem)
		bills.POST("/:id/items/:itemId/toggle-delete", h.ToggleItemDeleted)
	}
}

// Create opens a new bill for a patient, optionally seeded with items
func (h *BillHandler) Create(c *gin.Context) {
	staffID, ok := h.requireStaffID(c)
	if !ok {
		return
	}

	var req billingapp.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bill, err := h.billService.Create(c.Request.Context(), req, staffID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, bill)
}

// GetByID retrieves a bill with all of its items, deleted ones included
func (h *BillHandler) GetByID(c *gin.Context) {
	billID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	bill, err := h.billService.GetByID(c.Request.Context(), billID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, bill)
}

// List retrieves a paginated list of bills
func (h *BillHandler) List(c *gin.Context) {
	var filter billingapp.BillListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bills, total, err := h.billService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	h.SuccessWithMeta(c, bills, total, page, pageSize)
}

// AddItem appends a line item to an open bill
func (h *BillHandler) AddItem(c *gin.Context) {
	staffID, ok := h.requireStaffID(c)
	if !ok {
		return
	}

	billID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req billingapp.AddBillItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bill, err := h.billService.AddItem(c.Request.Context(), billID, req, staffID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, bill)
}

// UpdateItem applies a partial update to a line item
func (h *BillHandler) UpdateItem(c *gin.Context) {
	staffID, ok := h.requireStaffID(c)
	if !ok {
		return
	}

	billID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	itemID, ok := h.parseUUIDParam(c, "itemId")
	if !ok {
		return
	}

	var req billingapp.UpdateBillItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bill, err := h.billService.UpdateItem(c.Request.Context(), billID, itemID, req, staffID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, bill)
}

// ToggleItemDeleted soft-deletes or restores a line item
func (h *BillHandler) ToggleItemDeleted(c *gin.Context) {
	staffID, ok := h.requireStaffID(c)
	if !ok {
		return
	}

	billID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	itemID, ok := h.parseUUIDParam(c, "itemId")
	if !ok {
		return
	}

	var req billingapp.ToggleBillItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bill, err := h.billService.ToggleItemDeleted(c.Request.Context(), billID, itemID, *req.Deleted, staffID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, bill)
}

// Finalize marks a bill as paid and locks it against further edits
func (h *BillHandler) Finalize(c *gin.Context) {
	staffID, ok := h.requireStaffID(c)
	if !ok {
		return
	}

	billID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	bill, err := h.billService.Finalize(c.Request.Context(), billID, staffID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, bill)
}

// ToggleDeleted flips a bill's soft-delete flag without touching its items
func (h *BillHandler) ToggleDeleted(c *gin.Context) {
	staffID, ok := h.requireStaffID(c)
	if !ok {
		return
	}

	billID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	bill, err := h.billService.ToggleDeleted(c.Request.Context(), billID, staffID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, bill)
}
