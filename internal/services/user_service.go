package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/school-service/internal/authz"
	"github.com/SAP-F-2025/school-service/internal/events"
	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
	"github.com/SAP-F-2025/school-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	registry  *authz.Registry
	publisher events.EventPublisher
}

func NewUserService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, registry *authz.Registry, publisher events.EventPublisher) UserService {
	return &userService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		registry:  registry,
		publisher: publisher,
	}
}

// Create provisions a school-scoped account. The school binding always
// comes from the resolved scope, never from the request body, so a caller
// cannot plant users into a foreign school.
func (s *userService) Create(ctx context.Context, schoolID string, req *CreateUserRequest, actor *authz.Principal) (*models.User, error) {
	school, err := resolveSchoolID(actor, schoolID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Creating user", "school_id", school, "role", req.Role, "actor_id", actor.ID)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	rootExists := false
	if req.IsRoot {
		rootExists, err = s.repo.User().HasRoot(ctx, school, "")
		if err != nil {
			return nil, fmt.Errorf("failed to check root account: %w", err)
		}
	}
	if err := authz.CheckUserCreate(*actor, req.Role, req.IsRoot, rootExists); err != nil {
		return nil, err
	}

	emailTaken, err := s.repo.User().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if emailTaken {
		return nil, ErrEmailExists
	}

	if _, err := s.repo.School().GetByID(ctx, school); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to get school: %w", err)
	}

	user := &models.User{
		ID:       req.ID,
		FullName: req.FullName,
		Email:    req.Email,
		Role:     req.Role,
		SchoolID: &school,
		IsRoot:   req.IsRoot,
		Status:   models.UserActive,
		Phone:    req.Phone,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.publishUserEvent(ctx, events.EventUserCreated, user)
	s.logger.Info("User created", "user_id", user.ID, "role", user.Role)

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string, actor *authz.Principal) (*UserResponse, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Reading one's own record needs no cross-check.
	if actor.ID != user.ID {
		if err := authz.CheckSameSchool(*actor, user); err != nil {
			return nil, err
		}
	}

	resp := &UserResponse{User: user}
	if set, ok := s.registry.Grants(user.Role); ok {
		resp.Permissions = set.List()
	}
	return resp, nil
}

func (s *userService) Update(ctx context.Context, id string, req *UpdateUserRequest, actor *authz.Principal) (*models.User, error) {
	s.logger.Info("Updating user", "user_id", id, "actor_id", actor.ID)

	target, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := authz.CheckSameSchool(*actor, target); err != nil {
		return nil, err
	}

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	changes := authz.UserChanges{}
	if req.Role != nil {
		changes.RoleChanged = true
		changes.NewRole = *req.Role
	}
	if req.IsRoot != nil {
		changes.RootChanged = true
		changes.NewIsRoot = *req.IsRoot
	}

	rootExists := false
	if changes.RootChanged && changes.NewIsRoot && target.SchoolID != nil {
		rootExists, err = s.repo.User().HasRoot(ctx, *target.SchoolID, target.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check root account: %w", err)
		}
	}

	if err := authz.CheckUserUpdate(*actor, target, changes, rootExists); err != nil {
		return nil, err
	}

	if req.FullName != nil {
		target.FullName = *req.FullName
	}
	if req.Role != nil {
		target.Role = *req.Role
	}
	if req.IsRoot != nil {
		target.IsRoot = *req.IsRoot
	}
	if req.Status != nil {
		target.Status = *req.Status
	}
	if req.Phone != nil {
		target.Phone = req.Phone
	}
	if req.AvatarURL != nil {
		target.AvatarURL = req.AvatarURL
	}

	if err := s.repo.User().Update(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.publishUserEvent(ctx, events.EventUserUpdated, target)
	s.logger.Info("User updated", "user_id", id)

	return target, nil
}

// UpdateProfile is the self-service path. It only ever touches profile
// fields, so no guard beyond the owner check is needed.
func (s *userService) UpdateProfile(ctx context.Context, id string, req *UpdateProfileRequest, actor *authz.Principal) (*models.User, error) {
	if actor.ID != id && !actor.IsAdmin() {
		return nil, NewPermissionError(actor.ID, "user", "update", "profile updates are self-service only")
	}

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User profile updated", "user_id", id)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id string, actor *authz.Principal) error {
	s.logger.Info("Deleting user", "user_id", id, "actor_id", actor.ID)

	target, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := authz.CheckSameSchool(*actor, target); err != nil {
		return err
	}
	if err := authz.CheckUserDelete(*actor, target); err != nil {
		return err
	}

	if err := s.repo.User().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.publishUserEvent(ctx, events.EventUserDeleted, target)
	s.logger.Info("User deleted", "user_id", id)

	return nil
}

func (s *userService) List(ctx context.Context, filters repositories.UserFilters, actor *authz.Principal) (*UserListResponse, error) {
	scopeSchoolFilter(actor, &filters.SchoolID)
	if !actor.IsAdmin() && filters.SchoolID == nil {
		return nil, NewPermissionError(actor.ID, "user", "list", "missing school binding")
	}

	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &UserListResponse{Users: users, Total: total}, nil
}

func (s *userService) publishUserEvent(ctx context.Context, eventType string, user *models.User) {
	payload := events.UserPayload{
		ID:       user.ID,
		SchoolID: user.SchoolID,
		Role:     string(user.Role),
		IsRoot:   user.IsRoot,
	}
	if err := s.publisher.Publish(ctx, eventType, payload); err != nil {
		s.logger.Error("Failed to publish user event", "event_type", eventType, "user_id", user.ID, "error", err)
	}
}
