package handler

import (
	"github.com/gin-gonic/gin"

	registryapp "github.com/clinicore/backend/internal/application/registry"
)

// PatientHandler handles patient HTTP requests
type PatientHandler struct {
	BaseHandler
	patientService *registryapp.PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(patientService *registryapp.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *PatientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	patients := rg.Group("/patients")
	{
		patients.POST("", h.Create)
		patients.GET("", h.List)
		patients.GET("/:id", h.GetByID)
		patients.PUT("/:id", h.Update)
		patients.DELETE("/:id", h.Delete)
	}
}

// Create registers a new patient
func (h *PatientHandler) Create(c *gin.Context) {
	var req registryapp.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	patient, err := h.patientService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, patient)
}

// GetByID retrieves a patient by ID
func (h *PatientHandler) GetByID(c *gin.Context) {
	patientID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	patient, err := h.patientService.GetByID(c.Request.Context(), patientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, patient)
}

// Update modifies a patient's demographic and contact details
func (h *PatientHandler) Update(c *gin.Context) {
	patientID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req registryapp.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	patient, err := h.patientService.Update(c.Request.Context(), patientID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, patient)
}

// Delete soft-deletes a patient record
func (h *PatientHandler) Delete(c *gin.Context) {
	patientID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.patientService.Delete(c.Request.Context(), patientID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"deleted": true})
}

// List retrieves a paginated list of patients
func (h *PatientHandler) List(c *gin.Context) {
	var filter registryapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	patients, total, err := h.patientService.List(c.Request.Context(), filter)
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

	h.SuccessWithMeta(c, patients, total, page, pageSize)
}
