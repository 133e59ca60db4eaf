package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/school-service/internal/authz"
	"github.com/SAP-F-2025/school-service/internal/config"
	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
	"github.com/SAP-F-2025/school-service/internal/utils"
)

const principalContextKey = "principal"

// CasdoorAuthMiddleware authenticates requests with Casdoor-issued tokens.
// The token only proves identity; the principal's role, school binding and
// root flag come from a fresh database read so revoked privileges take
// effect immediately.
type CasdoorAuthMiddleware struct {
	client    *casdoorsdk.Client
	userRepo  repositories.UserRepository
	directory repositories.UserDirectory
	logger    utils.Logger
}

// NewCasdoorAuthMiddleware creates the authentication middleware. The
// directory is optional; when nil, unknown users are rejected instead of
// backfilled.
func NewCasdoorAuthMiddleware(cfg config.CasdoorConfig, userRepo repositories.UserRepository, directory repositories.UserDirectory, logger utils.Logger) *CasdoorAuthMiddleware {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Application,
		cfg.Organization,
	)

	return &CasdoorAuthMiddleware{
		client:    client,
		userRepo:  userRepo,
		directory: directory,
		logger:    logger,
	}
}

// AuthMiddleware validates the bearer token and loads the principal.
func (cam *CasdoorAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "authorization header missing")
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := cam.client.ParseJwtToken(tokenParts[1])
		if err != nil {
			abortUnauthorized(c, fmt.Sprintf("invalid token: %v", err))
			return
		}

		user, err := cam.resolveUser(c.Request.Context(), claims)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}

		if user.Status != models.UserActive {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "Forbidden",
				Details: "account is disabled",
			})
			c.Abort()
			return
		}

		principal := &authz.Principal{
			ID:       user.ID,
			Role:     user.Role,
			SchoolID: user.SchoolID,
			IsRoot:   user.IsRoot,
		}

		c.Set(principalContextKey, principal)
		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("user_role", user.Role)

		c.Next()
	}
}

// resolveUser loads the local user record for the token subject. On first
// login the record may not exist yet; the identity directory backfills it
// with the least-privileged role so an admin can assign the real one.
func (cam *CasdoorAuthMiddleware) resolveUser(ctx context.Context, claims *casdoorsdk.Claims) (*models.User, error) {
	userID := claims.Id
	if userID == "" {
		return nil, fmt.Errorf("token carries no user id")
	}

	user, err := cam.userRepo.GetByID(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if cam.directory == nil {
		return nil, fmt.Errorf("user %s is not registered", userID)
	}

	user, err = cam.directory.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %s not found in identity provider: %w", userID, err)
	}
	if err := cam.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to backfill user %s: %w", userID, err)
	}

	cam.logger.Info("Backfilled user from identity provider", "user_id", userID, "role", user.Role)
	return user, nil
}

// RequirePermission gates a route on the evaluator's permission check. Scope
// checks (which school the data belongs to) remain with the services; this
// only answers whether the role may perform the operation class at all.
func (cam *CasdoorAuthMiddleware) RequirePermission(evaluator *authz.Evaluator, required ...authz.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := GetPrincipalFromContext(c)
		if err != nil {
			abortUnauthorized(c, "user not authenticated")
			return
		}

		if err := evaluator.Evaluate(principal.Role, required...); err != nil {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "Forbidden",
				Details: err.Error(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequirePermissionOrOwner behaves like RequirePermission but lets a caller
// through when the given path parameter equals its own user id. Used for
// self-service routes such as profile updates.
func (cam *CasdoorAuthMiddleware) RequirePermissionOrOwner(evaluator *authz.Evaluator, idParam string, required ...authz.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := GetPrincipalFromContext(c)
		if err != nil {
			abortUnauthorized(c, "user not authenticated")
			return
		}

		if err := evaluator.EvaluateOrOwner(principal.Role, required, principal.ID, c.Param(idParam)); err != nil {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "Forbidden",
				Details: err.Error(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireSameSchool gates routes whose path parameter names a school id.
// System admins pass; every other principal must target its own school. The
// services re-check the scope anyway, this just fails cross-tenant requests
// before they reach a service.
func (cam *CasdoorAuthMiddleware) RequireSameSchool(idParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := GetPrincipalFromContext(c)
		if err != nil {
			abortUnauthorized(c, "user not authenticated")
			return
		}

		if !principal.IsAdmin() {
			if principal.SchoolID == nil || *principal.SchoolID != c.Param(idParam) {
				c.JSON(http.StatusForbidden, ErrorResponse{
					Message: "Forbidden",
					Details: "resource belongs to another school",
				})
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Message: "Unauthorized",
		Details: message,
	})
	c.Abort()
}

// GetPrincipalFromContext extracts the authenticated principal from the Gin
// context.
func GetPrincipalFromContext(c *gin.Context) (*authz.Principal, error) {
	v, exists := c.Get(principalContextKey)
	if !exists {
		return nil, fmt.Errorf("principal not found in context")
	}

	principal, ok := v.(*authz.Principal)
	if !ok {
		return nil, fmt.Errorf("invalid principal type in context")
	}

	return principal, nil
}

// GetUserIDFromContext extracts the authenticated user id from the Gin
// context.
func GetUserIDFromContext(c *gin.Context) (string, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", fmt.Errorf("user ID not found in context")
	}

	id, ok := userID.(string)
	if !ok {
		return "", fmt.Errorf("invalid user ID type in context")
	}

	return id, nil
}
