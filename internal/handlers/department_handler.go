package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/school-service/internal/repositories"
	"github.com/SAP-F-2025/school-service/internal/services"
	"github.com/SAP-F-2025/school-service/internal/utils"
)

type DepartmentHandler struct {
	BaseHandler
	service services.DepartmentService
}

func NewDepartmentHandler(service services.DepartmentService, logger utils.Logger) *DepartmentHandler {
	return &DepartmentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateDepartment creates a department in the school's active academic
// year. The first dependent entity marks the year as configured.
// @Summary Create department
// @Tags departments
// @Accept json
// @Produce json
// @Param school_id query string false "School ID (system admin only)"
// @Param request body services.CreateDepartmentRequest true "Department data"
// @Success 201 {object} models.Department
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 409 {object} ErrorResponse "No active year or duplicate code"
// @Router /departments [post]
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	h.LogRequest(c, "Creating department")

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	dept, err := h.service.Create(c.Request.Context(), c.Query("school_id"), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dept)
}

// GetDepartment retrieves a department by ID
// @Summary Get department
// @Tags departments
// @Produce json
// @Param id path int true "Department ID"
// @Success 200 {object} models.Department
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /departments/{id} [get]
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Getting department", "department_id", id)

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	dept, err := h.service.GetByID(c.Request.Context(), id, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dept)
}

// UpdateDepartment updates a department. Rejected when its academic year is
// no longer active.
// @Summary Update department
// @Tags departments
// @Accept json
// @Produce json
// @Param id path int true "Department ID"
// @Param request body services.UpdateDepartmentRequest true "Department data"
// @Success 200 {object} models.Department
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 403 {object} ErrorResponse "Forbidden or year retired"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /departments/{id} [put]
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Updating department", "department_id", id)

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	dept, err := h.service.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dept)
}

// DeleteDepartment removes a department
// @Summary Delete department
// @Tags departments
// @Param id path int true "Department ID"
// @Success 204 "No content"
// @Failure 403 {object} ErrorResponse "Forbidden or year retired"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /departments/{id} [delete]
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Deleting department", "department_id", id)

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

// ListDepartments lists departments
// @Summary List departments
// @Tags departments
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Param q query string false "Search query (name or code)"
// @Param academic_year_id query int false "Filter by academic year"
// @Success 200 {object} services.DepartmentListResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /departments [get]
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	h.LogRequest(c, "Listing departments")

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	limit, offset := parsePagination(c)
	filters := repositories.DepartmentFilters{
		Query:  c.Query("q"),
		Limit:  limit,
		Offset: offset,
	}
	if schoolID := c.Query("school_id"); schoolID != "" {
		filters.SchoolID = &schoolID
	}
	if yearID, ok := parseUintQuery(c, "academic_year_id"); ok {
		filters.AcademicYearID = &yearID
	}

	depts, err := h.service.List(c.Request.Context(), filters, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, depts)
}
