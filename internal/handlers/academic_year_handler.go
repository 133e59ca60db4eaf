package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
	"github.com/SAP-F-2025/school-service/internal/services"
	"github.com/SAP-F-2025/school-service/internal/utils"
)

type AcademicYearHandler struct {
	BaseHandler
	service services.AcademicYearService
}

func NewAcademicYearHandler(service services.AcademicYearService, logger utils.Logger) *AcademicYearHandler {
	return &AcademicYearHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateYear creates a new academic year. The year is born active; creation
// fails while another active year exists for the school.
// @Summary Create academic year
// @Tags academic-years
// @Accept json
// @Produce json
// @Param school_id query string false "School ID (system admin only, scoped callers use their own school)"
// @Param request body services.CreateYearRequest true "Academic year data"
// @Success 201 {object} models.AcademicYear
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 409 {object} ErrorResponse "Active year or span conflict"
// @Router /academic-years [post]
func (h *AcademicYearHandler) CreateYear(c *gin.Context) {
	h.LogRequest(c, "Creating academic year")

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.CreateYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	year, err := h.service.Create(c.Request.Context(), c.Query("school_id"), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, year)
}

// GetYear retrieves an academic year with its lifecycle capabilities
// @Summary Get academic year
// @Tags academic-years
// @Produce json
// @Param id path int true "Academic year ID"
// @Success 200 {object} services.YearResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /academic-years/{id} [get]
func (h *AcademicYearHandler) GetYear(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Getting academic year", "year_id", id)

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	year, err := h.service.GetByID(c.Request.Context(), id, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, year)
}

// GetActiveYear retrieves the school's single active academic year
// @Summary Get active academic year
// @Tags academic-years
// @Produce json
// @Param school_id query string false "School ID (system admin only)"
// @Success 200 {object} models.AcademicYear
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 409 {object} ErrorResponse "No active year"
// @Router /academic-years/active [get]
func (h *AcademicYearHandler) GetActiveYear(c *gin.Context) {
	h.LogRequest(c, "Getting active academic year")

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	year, err := h.service.GetActive(c.Request.Context(), c.Query("school_id"), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, year)
}

// UpdateYear updates an academic year. Structural edits (span, semesters)
// are only accepted while the year is active and unconfigured; status flips
// follow the lifecycle rules.
// @Summary Update academic year
// @Tags academic-years
// @Accept json
// @Produce json
// @Param id path int true "Academic year ID"
// @Param request body services.UpdateYearRequest true "Academic year data"
// @Success 200 {object} services.YearResponse
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 403 {object} ErrorResponse "Lifecycle rule violation"
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 409 {object} ErrorResponse "Conflict"
// @Router /academic-years/{id} [put]
func (h *AcademicYearHandler) UpdateYear(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Updating academic year", "year_id", id)

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.UpdateYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	year, err := h.service.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, year)
}

// ActivateYear activates an inactive academic year
// @Summary Activate academic year
// @Tags academic-years
// @Param id path int true "Academic year ID"
// @Success 204 "No content"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 409 {object} ErrorResponse "Another year is already active"
// @Router /academic-years/{id}/activate [post]
func (h *AcademicYearHandler) ActivateYear(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Activating academic year", "year_id", id)

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	if err := h.service.Activate(c.Request.Context(), id, actor); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeactivateYear retires an active academic year
// @Summary Deactivate academic year
// @Tags academic-years
// @Param id path int true "Academic year ID"
// @Success 204 "No content"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /academic-years/{id}/deactivate [post]
func (h *AcademicYearHandler) DeactivateYear(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Deactivating academic year", "year_id", id)

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id, actor); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteYear removes an academic year. Only inactive, never-configured
// years can be deleted.
// @Summary Delete academic year
// @Tags academic-years
// @Param id path int true "Academic year ID"
// @Success 204 "No content"
// @Failure 403 {object} ErrorResponse "Lifecycle rule violation"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /academic-years/{id} [delete]
func (h *AcademicYearHandler) DeleteYear(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Deleting academic year", "year_id", id)

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, actor); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListYears lists academic years
// @Summary List academic years
// @Tags academic-years
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Param status query string false "Filter by status (active, inactive)"
// @Param from_year query int false "Filter by starting year"
// @Success 200 {object} services.YearListResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /academic-years [get]
func (h *AcademicYearHandler) ListYears(c *gin.Context) {
	h.LogRequest(c, "Listing academic years")

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	limit, offset := parsePagination(c)
	filters := repositories.AcademicYearFilters{
		Limit:  limit,
		Offset: offset,
	}
	if schoolID := c.Query("school_id"); schoolID != "" {
		filters.SchoolID = &schoolID
	}
	if status := c.Query("status"); status != "" {
		s := models.YearStatus(status)
		filters.Status = &s
	}
	if fromYearStr := c.Query("from_year"); fromYearStr != "" {
		if fromYear, err := strconv.Atoi(fromYearStr); err == nil {
			filters.FromYear = &fromYear
		}
	}

	years, err := h.service.List(c.Request.Context(), filters, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, years)
}
