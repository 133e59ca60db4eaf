package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/school-service/internal/repositories"
	"github.com/SAP-F-2025/school-service/internal/services"
	"github.com/SAP-F-2025/school-service/internal/utils"
)

type ClassHandler struct {
	BaseHandler
	service services.ClassService
}

func NewClassHandler(service services.ClassService, logger utils.Logger) *ClassHandler {
	return &ClassHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateClass creates a class in the school's active academic year
// @Summary Create class
// @Tags classes
// @Accept json
// @Produce json
// @Param school_id query string false "School ID (system admin only)"
// @Param request body services.CreateClassRequest true "Class data"
// @Success 201 {object} models.Class
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 409 {object} ErrorResponse "No active year"
// @Router /classes [post]
func (h *ClassHandler) CreateClass(c *gin.Context) {
	h.LogRequest(c, "Creating class")

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	class, err := h.service.Create(c.Request.Context(), c.Query("school_id"), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, class)
}

// GetClass retrieves a class by ID
// @Summary Get class
// @Tags classes
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} models.Class
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /classes/{id} [get]
func (h *ClassHandler) GetClass(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Getting class", "class_id", id)

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	class, err := h.service.GetByID(c.Request.Context(), id, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, class)
}

// UpdateClass updates a class. Rejected when its academic year is retired.
// @Summary Update class
// @Tags classes
// @Accept json
// @Produce json
// @Param id path int true "Class ID"
// @Param request body services.UpdateClassRequest true "Class data"
// @Success 200 {object} models.Class
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 403 {object} ErrorResponse "Forbidden or year retired"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /classes/{id} [put]
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Updating class", "class_id", id)

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	class, err := h.service.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, class)
}

// DeleteClass removes a class
// @Summary Delete class
// @Tags classes
// @Param id path int true "Class ID"
// @Success 204 "No content"
// @Failure 403 {object} ErrorResponse "Forbidden or year retired"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /classes/{id} [delete]
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Deleting class", "class_id", id)

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

// ListClasses lists classes
// @Summary List classes
// @Tags classes
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Param grade query int false "Filter by grade"
// @Param teacher_id query string false "Filter by homeroom teacher"
// @Param academic_year_id query int false "Filter by academic year"
// @Success 200 {object} services.ClassListResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /classes [get]
func (h *ClassHandler) ListClasses(c *gin.Context) {
	h.LogRequest(c, "Listing classes")

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	limit, offset := parsePagination(c)
	filters := repositories.ClassFilters{
		Limit:  limit,
		Offset: offset,
	}
	if schoolID := c.Query("school_id"); schoolID != "" {
		filters.SchoolID = &schoolID
	}
	if yearID, ok := parseUintQuery(c, "academic_year_id"); ok {
		filters.AcademicYearID = &yearID
	}
	if gradeStr := c.Query("grade"); gradeStr != "" {
		if grade, err := strconv.Atoi(gradeStr); err == nil {
			filters.Grade = &grade
		}
	}
	if teacherID := c.Query("teacher_id"); teacherID != "" {
		filters.TeacherID = &teacherID
	}

	classes, err := h.service.List(c.Request.Context(), filters, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, classes)
}
