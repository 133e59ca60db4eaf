package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
	"github.com/SAP-F-2025/school-service/internal/services"
	"github.com/SAP-F-2025/school-service/internal/utils"
)

type SchoolHandler struct {
	BaseHandler
	service services.SchoolService
}

func NewSchoolHandler(service services.SchoolService, logger utils.Logger) *SchoolHandler {
	return &SchoolHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateSchool creates a new school tenant
// @Summary Create school
// @Description Create a new school (system admin only)
// @Tags schools
// @Accept json
// @Produce json
// @Param request body services.CreateSchoolRequest true "School data"
// @Success 201 {object} models.School
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 409 {object} ErrorResponse "School code already in use"
// @Router /schools [post]
func (h *SchoolHandler) CreateSchool(c *gin.Context) {
	h.LogRequest(c, "Creating school")

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	school, err := h.service.Create(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, school)
}

// GetSchool retrieves a school by ID
// @Summary Get school
// @Tags schools
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} services.SchoolResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /schools/{id} [get]
func (h *SchoolHandler) GetSchool(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Getting school", "school_id", id)

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	school, err := h.service.GetByID(c.Request.Context(), id, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, school)
}

// UpdateSchool updates a school
// @Summary Update school
// @Tags schools
// @Accept json
// @Produce json
// @Param id path string true "School ID"
// @Param request body services.UpdateSchoolRequest true "School data"
// @Success 200 {object} models.School
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /schools/{id} [put]
func (h *SchoolHandler) UpdateSchool(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Updating school", "school_id", id)

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.UpdateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	school, err := h.service.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, school)
}

// DeleteSchool removes a school
// @Summary Delete school
// @Tags schools
// @Param id path string true "School ID"
// @Success 204 "No content"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /schools/{id} [delete]
func (h *SchoolHandler) DeleteSchool(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Deleting school", "school_id", id)

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

// ListSchools lists schools
// @Summary List schools
// @Tags schools
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Param q query string false "Search query (name or code)"
// @Param status query string false "Filter by status (active, inactive)"
// @Success 200 {object} services.SchoolListResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /schools [get]
func (h *SchoolHandler) ListSchools(c *gin.Context) {
	h.LogRequest(c, "Listing schools")

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	limit, offset := parsePagination(c)
	filters := repositories.SchoolFilters{
		Query:  c.Query("q"),
		Limit:  limit,
		Offset: offset,
	}
	if status := c.Query("status"); status != "" {
		s := models.SchoolStatus(status)
		filters.Status = &s
	}

	schools, err := h.service.List(c.Request.Context(), filters, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, schools)
}
