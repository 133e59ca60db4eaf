package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/school-service/internal/services"
	"github.com/SAP-F-2025/school-service/internal/utils"
)

type ExportHandler struct {
	BaseHandler
	service services.ExportService
}

func NewExportHandler(service services.ExportService, logger utils.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ExportEvaluations streams an Excel workbook with the evaluations of one
// academic year.
// @Summary Export evaluations
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param academic_year_id path int true "Academic year ID"
// @Param school_id query string false "School ID (system admin only)"
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /exports/evaluations/{academic_year_id} [get]
func (h *ExportHandler) ExportEvaluations(c *gin.Context) {
	yearID, ok := parseUintParam(c, "academic_year_id")
	if !ok {
		return
	}
	h.LogRequest(c, "Exporting evaluations", "academic_year_id", yearID)

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	result, err := h.service.ExportEvaluations(c.Request.Context(), c.Query("school_id"), yearID, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	writeExport(c, result)
}

// ExportPersonnel streams an Excel workbook with the school's personnel
// records.
// @Summary Export personnel
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param school_id query string false "School ID (system admin only)"
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /exports/personnel [get]
func (h *ExportHandler) ExportPersonnel(c *gin.Context) {
	h.LogRequest(c, "Exporting personnel")

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	result, err := h.service.ExportPersonnel(c.Request.Context(), c.Query("school_id"), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	writeExport(c, result)
}

func writeExport(c *gin.Context, result *services.ExportResult) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
