package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
	"github.com/SAP-F-2025/school-service/internal/services"
	"github.com/SAP-F-2025/school-service/internal/utils"
)

type PersonnelHandler struct {
	BaseHandler
	service services.PersonnelService
}

func NewPersonnelHandler(service services.PersonnelService, logger utils.Logger) *PersonnelHandler {
	return &PersonnelHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== PERSONNEL RECORDS =====

// CreateRecord creates an employment record for an existing user
// @Summary Create personnel record
// @Tags personnel
// @Accept json
// @Produce json
// @Param school_id query string false "School ID (system admin only)"
// @Param request body services.CreatePersonnelRequest true "Personnel record data"
// @Success 201 {object} models.PersonnelRecord
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /personnel [post]
func (h *PersonnelHandler) CreateRecord(c *gin.Context) {
	h.LogRequest(c, "Creating personnel record")

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.CreatePersonnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	record, err := h.service.CreateRecord(c.Request.Context(), c.Query("school_id"), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// GetRecord retrieves a personnel record
// @Summary Get personnel record
// @Tags personnel
// @Produce json
// @Param id path int true "Personnel record ID"
// @Success 200 {object} models.PersonnelRecord
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /personnel/{id} [get]
func (h *PersonnelHandler) GetRecord(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Getting personnel record", "record_id", id)

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	record, err := h.service.GetRecord(c.Request.Context(), id, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// UpdateRecord updates a personnel record
// @Summary Update personnel record
// @Tags personnel
// @Accept json
// @Produce json
// @Param id path int true "Personnel record ID"
// @Param request body services.UpdatePersonnelRequest true "Personnel record data"
// @Success 200 {object} models.PersonnelRecord
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /personnel/{id} [put]
func (h *PersonnelHandler) UpdateRecord(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Updating personnel record", "record_id", id)

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.UpdatePersonnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	record, err := h.service.UpdateRecord(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// DeleteRecord removes a personnel record
// @Summary Delete personnel record
// @Tags personnel
// @Param id path int true "Personnel record ID"
// @Success 204 "No content"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /personnel/{id} [delete]
func (h *PersonnelHandler) DeleteRecord(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Deleting personnel record", "record_id", id)

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRecord(c.Request.Context(), id, actor); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListRecords lists personnel records
// @Summary List personnel records
// @Tags personnel
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Param q query string false "Search query (position)"
// @Param department_id query int false "Filter by department"
// @Param user_id query string false "Filter by user"
// @Success 200 {object} services.PersonnelListResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /personnel [get]
func (h *PersonnelHandler) ListRecords(c *gin.Context) {
	h.LogRequest(c, "Listing personnel records")

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	limit, offset := parsePagination(c)
	filters := repositories.PersonnelFilters{
		Query:  c.Query("q"),
		Limit:  limit,
		Offset: offset,
	}
	if schoolID := c.Query("school_id"); schoolID != "" {
		filters.SchoolID = &schoolID
	}
	if deptID, ok := parseUintQuery(c, "department_id"); ok {
		filters.DepartmentID = &deptID
	}
	if userID := c.Query("user_id"); userID != "" {
		filters.UserID = &userID
	}

	records, err := h.service.ListRecords(c.Request.Context(), filters, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// ===== EVALUATIONS =====

// CreateEvaluation records an evaluation against the active academic year.
// The evaluator is always the authenticated caller.
// @Summary Create evaluation
// @Tags evaluations
// @Accept json
// @Produce json
// @Param school_id query string false "School ID (system admin only)"
// @Param request body services.CreateEvaluationRequest true "Evaluation data"
// @Success 201 {object} models.PersonnelEvaluation
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 409 {object} ErrorResponse "No active year"
// @Router /evaluations [post]
func (h *PersonnelHandler) CreateEvaluation(c *gin.Context) {
	h.LogRequest(c, "Creating evaluation")

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.CreateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	eval, err := h.service.CreateEvaluation(c.Request.Context(), c.Query("school_id"), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, eval)
}

// GetEvaluation retrieves an evaluation
// @Summary Get evaluation
// @Tags evaluations
// @Produce json
// @Param id path int true "Evaluation ID"
// @Success 200 {object} models.PersonnelEvaluation
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /evaluations/{id} [get]
func (h *PersonnelHandler) GetEvaluation(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Getting evaluation", "evaluation_id", id)

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	eval, err := h.service.GetEvaluation(c.Request.Context(), id, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, eval)
}

// UpdateEvaluation updates an evaluation. Rejected once its academic year
// is retired.
// @Summary Update evaluation
// @Tags evaluations
// @Accept json
// @Produce json
// @Param id path int true "Evaluation ID"
// @Param request body services.UpdateEvaluationRequest true "Evaluation data"
// @Success 200 {object} models.PersonnelEvaluation
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 403 {object} ErrorResponse "Forbidden or year retired"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /evaluations/{id} [put]
func (h *PersonnelHandler) UpdateEvaluation(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Updating evaluation", "evaluation_id", id)

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.UpdateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	eval, err := h.service.UpdateEvaluation(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, eval)
}

// DeleteEvaluation removes an evaluation
// @Summary Delete evaluation
// @Tags evaluations
// @Param id path int true "Evaluation ID"
// @Success 204 "No content"
// @Failure 403 {object} ErrorResponse "Forbidden or year retired"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /evaluations/{id} [delete]
func (h *PersonnelHandler) DeleteEvaluation(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	h.LogRequest(c, "Deleting evaluation", "evaluation_id", id)

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	if err := h.service.DeleteEvaluation(c.Request.Context(), id, actor); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListEvaluations lists evaluations
// @Summary List evaluations
// @Tags evaluations
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Param academic_year_id query int false "Filter by academic year"
// @Param personnel_record_id query int false "Filter by personnel record"
// @Param grade query string false "Filter by grade (xuat_sac, tot, dat, chua_dat)"
// @Success 200 {object} services.EvaluationListResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /evaluations [get]
func (h *PersonnelHandler) ListEvaluations(c *gin.Context) {
	h.LogRequest(c, "Listing evaluations")

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	limit, offset := parsePagination(c)
	filters := repositories.EvaluationFilters{
		Limit:  limit,
		Offset: offset,
	}
	if schoolID := c.Query("school_id"); schoolID != "" {
		filters.SchoolID = &schoolID
	}
	if yearID, ok := parseUintQuery(c, "academic_year_id"); ok {
		filters.AcademicYearID = &yearID
	}
	if recordID, ok := parseUintQuery(c, "personnel_record_id"); ok {
		filters.PersonnelRecordID = &recordID
	}
	if gradeStr := c.Query("grade"); gradeStr != "" {
		grade := models.EvaluationGrade(gradeStr)
		filters.Grade = &grade
	}

	evals, err := h.service.ListEvaluations(c.Request.Context(), filters, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, evals)
}
