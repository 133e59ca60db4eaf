package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/school-service/internal/authz"
	"github.com/SAP-F-2025/school-service/internal/events"
	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
	"github.com/SAP-F-2025/school-service/internal/validator"
)

type schoolService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewSchoolService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) SchoolService {
	return &schoolService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

func (s *schoolService) Create(ctx context.Context, req *CreateSchoolRequest, actor *authz.Principal) (*models.School, error) {
	s.logger.Info("Creating school", "actor_id", actor.ID, "code", req.Code)

	if !actor.IsAdmin() {
		return nil, NewPermissionError(actor.ID, "school", "create", "only a system admin can create schools")
	}

	if errs := s.validator.ValidateSchoolCreate(req); len(errs) > 0 {
		return nil, errs
	}

	exists, err := s.repo.School().ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to check school code: %w", err)
	}
	if exists {
		return nil, ErrSchoolCodeExists
	}

	school := &models.School{
		ID:      uuid.New().String(),
		Name:    req.Name,
		Code:    req.Code,
		Address: req.Address,
		Phone:   req.Phone,
		Status:  models.SchoolActive,
	}

	if err := s.repo.School().Create(ctx, school); err != nil {
		return nil, fmt.Errorf("failed to create school: %w", err)
	}

	s.publishSchoolEvent(ctx, events.EventSchoolCreated, school)
	s.logger.Info("School created", "school_id", school.ID, "code", school.Code)

	return school, nil
}

func (s *schoolService) GetByID(ctx context.Context, id string, actor *authz.Principal) (*SchoolResponse, error) {
	scope, err := authz.ScopeFor(*actor)
	if err != nil {
		return nil, err
	}
	if err := authz.CheckSchoolID(scope, id); err != nil {
		return nil, err
	}

	school, err := s.repo.School().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to get school: %w", err)
	}

	resp := &SchoolResponse{School: school}

	// Stats are best-effort; the profile read must not fail on them.
	if stats, err := s.repo.School().GetStats(ctx, id); err == nil {
		resp.Stats = stats
	} else {
		s.logger.Warn("Failed to load school stats", "school_id", id, "error", err)
	}

	return resp, nil
}

func (s *schoolService) Update(ctx context.Context, id string, req *UpdateSchoolRequest, actor *authz.Principal) (*models.School, error) {
	s.logger.Info("Updating school", "school_id", id, "actor_id", actor.ID)

	scope, err := authz.ScopeFor(*actor)
	if err != nil {
		return nil, err
	}
	if err := authz.CheckSchoolID(scope, id); err != nil {
		return nil, err
	}

	// Status flips are reserved for the system admin; school principals may
	// only edit profile fields of their own school.
	if req.Status != nil && !actor.IsAdmin() {
		return nil, NewPermissionError(actor.ID, "school", "update", "only a system admin can change school status")
	}

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	school, err := s.repo.School().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to get school: %w", err)
	}

	if req.Name != nil {
		school.Name = *req.Name
	}
	if req.Address != nil {
		school.Address = req.Address
	}
	if req.Phone != nil {
		school.Phone = req.Phone
	}
	if req.Status != nil {
		school.Status = *req.Status
	}

	if err := s.repo.School().Update(ctx, school); err != nil {
		return nil, fmt.Errorf("failed to update school: %w", err)
	}

	s.logger.Info("School updated", "school_id", id)
	return school, nil
}

func (s *schoolService) Delete(ctx context.Context, id string, actor *authz.Principal) error {
	s.logger.Info("Deleting school", "school_id", id, "actor_id", actor.ID)

	if !actor.IsAdmin() {
		return NewPermissionError(actor.ID, "school", "delete", "only a system admin can delete schools")
	}

	if _, err := s.repo.School().GetByID(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrSchoolNotFound
		}
		return fmt.Errorf("failed to get school: %w", err)
	}

	if err := s.repo.School().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete school: %w", err)
	}

	s.logger.Info("School deleted", "school_id", id)
	return nil
}

func (s *schoolService) List(ctx context.Context, filters repositories.SchoolFilters, actor *authz.Principal) (*SchoolListResponse, error) {
	if !actor.IsAdmin() {
		return nil, NewPermissionError(actor.ID, "school", "list", "only a system admin can list schools")
	}

	schools, total, err := s.repo.School().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list schools: %w", err)
	}

	return &SchoolListResponse{Schools: schools, Total: total}, nil
}

func (s *schoolService) publishSchoolEvent(ctx context.Context, eventType string, school *models.School) {
	payload := events.SchoolPayload{ID: school.ID, Code: school.Code, Name: school.Name}
	if err := s.publisher.Publish(ctx, eventType, payload); err != nil {
		s.logger.Error("Failed to publish school event", "event_type", eventType, "school_id", school.ID, "error", err)
	}
}
