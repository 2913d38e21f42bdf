package handler

import (
	"github.com/gin-gonic/gin"

	registryapp "github.com/clinicore/backend/internal/application/registry"
)

// StaffHandler handles staff HTTP requests
type StaffHandler struct {
	BaseHandler
	staffService *registryapp.StaffService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService *registryapp.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *StaffHandler) RegisterRoutes(rg *gin.RouterGroup) {
	staff := rg.Group("/staff")
	{
		staff.POST("", h.Create)
		staff.GET("", h.List)
		staff.GET("/:id", h.GetByID)
		staff.POST("/:id/deactivate", h.Deactivate)
	}
}

// Create registers a new staff member
func (h *StaffHandler) Create(c *gin.Context) {
	var req registryapp.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	staff, err := h.staffService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, staff)
}

// GetByID retrieves a staff member by ID
func (h *StaffHandler) GetByID(c *gin.Context) {
	staffID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	staff, err := h.staffService.GetByID(c.Request.Context(), staffID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, staff)
}

// Deactivate marks a staff member as no longer active
func (h *StaffHandler) Deactivate(c *gin.Context) {
	staffID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	staff, err := h.staffService.Deactivate(c.Request.Context(), staffID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, staff)
}

// List retrieves a paginated list of staff members
func (h *StaffHandler) List(c *gin.Context) {
	var filter registryapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	staff, total, err := h.staffService.List(c.Request.Context(), filter)
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

	h.SuccessWithMeta(c, staff, total, page, pageSize)
}
