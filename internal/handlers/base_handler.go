package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/school-service/internal/authz"
	"github.com/SAP-F-2025/school-service/internal/services"
	"github.com/SAP-F-2025/school-service/internal/utils"
	"github.com/SAP-F-2025/school-service/internal/validator"
)

// ErrorResponse is the uniform error body of the API.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// BaseHandler carries the helpers shared by every resource handler.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.GetLogger(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.GetLogger(c, h.logger).Error(msg, append(args, "error", err)...)
}

// handleServiceError maps service errors to HTTP status codes. Every handler
// funnels its service failures through here so the mapping stays in one place.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	var permErr *services.PermissionError

	switch {
	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrs,
		})
	case errors.Is(err, services.ErrValidationFailed), errors.Is(err, services.ErrBadRequest):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Unauthorized",
		})
	case errors.As(err, &permErr):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Forbidden",
			Details: permErr.Reason,
		})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Forbidden",
			Details: err.Error(),
		})
	case isNotFoundError(err):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: err.Error(),
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}

var notFoundErrors = []error{
	services.ErrSchoolNotFound,
	services.ErrYearNotFound,
	services.ErrDepartmentNotFound,
	services.ErrClassNotFound,
	services.ErrPersonnelNotFound,
	services.ErrEvaluationNotFound,
	services.ErrUserNotFound,
}

func isNotFoundError(err error) bool {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// principal returns the authenticated principal, writing a 401 response when
// the auth middleware did not run. The bool reports whether the handler
// should continue.
func (h *BaseHandler) principal(c *gin.Context) (*authz.Principal, bool) {
	p, err := GetPrincipalFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return nil, false
	}
	return p, true
}

// ===== SHARED PARSING HELPERS =====

// parsePagination reads page/size query params and converts them to
// limit/offset. Size is capped at 100.
func parsePagination(c *gin.Context) (limit, offset int) {
	page := 1
	size := 10

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if sizeStr := c.Query("size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
			size = s
		}
	}

	return size, (page - 1) * size
}

// parseUintQuery parses an optional numeric query parameter. The bool
// reports whether a valid value was present.
func parseUintQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// parseUintParam parses a numeric path parameter, writing a 400 response on
// failure. The bool reports whether the handler should continue.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + name + " parameter",
			Details: raw,
		})
		return 0, false
	}
	return uint(v), true
}
