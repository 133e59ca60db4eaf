package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
	"github.com/SAP-F-2025/school-service/internal/services"
	"github.com/SAP-F-2025/school-service/internal/utils"
)

type UserHandler struct {
	BaseHandler
	service services.UserService
}

func NewUserHandler(service services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateUser creates a user account. The school binding is stamped from the
// caller's own scope; the payload never chooses the school.
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param school_id query string false "School ID (system admin only)"
// @Param request body services.CreateUserRequest true "User data"
// @Success 201 {object} models.User
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 409 {object} ErrorResponse "Email or root conflict"
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	h.LogRequest(c, "Creating user")

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	user, err := h.service.Create(c.Request.Context(), c.Query("school_id"), &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetUser retrieves a user with the permissions of its role
// @Summary Get user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} services.UserResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Getting user", "user_id", id)

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), id, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetCurrentUser retrieves the authenticated caller's own record
// @Summary Get current user
// @Tags users
// @Produce json
// @Success 200 {object} services.UserResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /users/me [get]
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	actor, ok := h.principal(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Getting current user", "user_id", actor.ID)

	user, err := h.service.GetByID(c.Request.Context(), actor.ID, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser updates a user account, including role and root changes. The
// root escalation rules apply: promotions require the caller to be root or
// admin, and a school never holds two roots.
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body services.UpdateUserRequest true "User data"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Failure 409 {object} ErrorResponse "Root conflict"
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Updating user", "user_id", id)

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	user, err := h.service.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the self-service profile fields of a user. Role,
// root and status can never travel through this route.
// @Summary Update user profile
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body services.UpdateProfileRequest true "Profile data"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /users/{id}/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Updating user profile", "user_id", id)

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user account. Deleting a root account requires the
// system admin role.
// @Summary Delete user
// @Tags users
// @Param id path string true "User ID"
// @Success 204 "No content"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Deleting user", "user_id", id)

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

// ListUsers lists users within the caller's school scope
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10, max: 100)"
// @Param q query string false "Search query (name or email)"
// @Param role query string false "Filter by role"
// @Param status query string false "Filter by status (active, disabled)"
// @Success 200 {object} services.UserListResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	actor, ok := h.principal(c)
	if !ok {
		return
	}

	limit, offset := parsePagination(c)
	filters := repositories.UserFilters{
		Query:  c.Query("q"),
		Limit:  limit,
		Offset: offset,
	}
	if schoolID := c.Query("school_id"); schoolID != "" {
		filters.SchoolID = &schoolID
	}
	if roleStr := c.Query("role"); roleStr != "" {
		role := models.UserRole(roleStr)
		filters.Role = &role
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.UserStatus(statusStr)
		filters.Status = &status
	}

	users, err := h.service.List(c.Request.Context(), filters, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}
