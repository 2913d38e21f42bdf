package handler

import (
	"github.com/gin-gonic/gin"

	registryapp "github.com/clinicore/backend/internal/application/registry"
)

// ServiceCatalogHandler handles service catalog HTTP requests
type ServiceCatalogHandler struct {
	BaseHandler
	catalogService *registryapp.ServiceCatalogService
}

// NewServiceCatalogHandler creates a new service catalog handler
func NewServiceCatalogHandler(catalogService *registryapp.ServiceCatalogService) *ServiceCatalogHandler {
	return &ServiceCatalogHandler{catalogService: catalogService}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *ServiceCatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	services := rg.Group("/services")
	{
		services.POST("", h.Create)
		services.GET("", h.List)
		services.GET("/:id", h.GetByID)
		services.PUT("/:id", h.Update)
		services.DELETE("/:id", h.Delete)
	}
}

// Create adds a new billable service to the catalog
func (h *ServiceCatalogHandler) Create(c *gin.Context) {
	var req registryapp.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	service, err := h.catalogService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, service)
}

// GetByID retrieves a catalog service by ID
func (h *ServiceCatalogHandler) GetByID(c *gin.Context) {
	serviceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	service, err := h.catalogService.GetByID(c.Request.Context(), serviceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, service)
}

// Update modifies a catalog service. Price changes do not touch
// already-snapshotted bill items.
func (h *ServiceCatalogHandler) Update(c *gin.Context) {
	serviceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req registryapp.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	service, err := h.catalogService.Update(c.Request.Context(), serviceID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, service)
}

// Delete soft-deletes a catalog service. Bill items keep the prices
// they snapshotted from it.
func (h *ServiceCatalogHandler) Delete(c *gin.Context) {
	serviceID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.Delete(c.Request.Context(), serviceID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"deleted": true})
}

// List retrieves a paginated list of catalog services
func (h *ServiceCatalogHandler) List(c *gin.Context) {
	var filter registryapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	services, total, err := h.catalogService.List(c.Request.Context(), filter)
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

	h.SuccessWithMeta(c, services, total, page, pageSize)
}
