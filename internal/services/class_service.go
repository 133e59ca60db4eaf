package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/school-service/internal/authz"
	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
	"github.com/SAP-F-2025/school-service/internal/validator"
)

type classService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewClassService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ClassService {
	return &classService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *classService) Create(ctx context.Context, schoolID string, req *CreateClassRequest, actor *authz.Principal) (*models.Class, error) {
	school, err := resolveSchoolID(actor, schoolID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Creating class", "school_id", school, "name", req.Name, "actor_id", actor.ID)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	var class *models.Class
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		year, err := activeYearForAttach(ctx, txRepo, school)
		if err != nil {
			return err
		}

		class = &models.Class{
			SchoolID:       school,
			AcademicYearID: year.ID,
			Name:           req.Name,
			Grade:          req.Grade,
			Capacity:       req.Capacity,
			TeacherID:      req.TeacherID,
		}
		if class.Capacity == 0 {
			class.Capacity = 40
		}
		if err := txRepo.Class().Create(ctx, class); err != nil {
			return fmt.Errorf("failed to create class: %w", err)
		}

		return txRepo.AcademicYear().MarkConfigured(ctx, year.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Class created", "class_id", class.ID, "year_id", class.AcademicYearID)
	return class, nil
}

func (s *classService) GetByID(ctx context.Context, id uint, actor *authz.Principal) (*models.Class, error) {
	return s.getScopedClass(ctx, id, actor)
}

func (s *classService) Update(ctx context.Context, id uint, req *UpdateClassRequest, actor *authz.Principal) (*models.Class, error) {
	s.logger.Info("Updating class", "class_id", id, "actor_id", actor.ID)

	class, err := s.getScopedClass(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if err := requireYearActive(ctx, s.repo, class.AcademicYearID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		class.Name = *req.Name
	}
	if req.Grade != nil {
		class.Grade = *req.Grade
	}
	if req.Capacity != nil {
		class.Capacity = *req.Capacity
	}
	if req.TeacherID != nil {
		class.TeacherID = req.TeacherID
	}

	if err := s.repo.Class().Update(ctx, class); err != nil {
		return nil, fmt.Errorf("failed to update class: %w", err)
	}

	s.logger.Info("Class updated", "class_id", id)
	return class, nil
}

func (s *classService) Delete(ctx context.Context, id uint, actor *authz.Principal) error {
	s.logger.Info("Deleting class", "class_id", id, "actor_id", actor.ID)

	class, err := s.getScopedClass(ctx, id, actor)
	if err != nil {
		return err
	}

	if err := requireYearActive(ctx, s.repo, class.AcademicYearID); err != nil {
		return err
	}

	if err := s.repo.Class().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
	}

	s.logger.Info("Class deleted", "class_id", id)
	return nil
}

func (s *classService) List(ctx context.Context, filters repositories.ClassFilters, actor *authz.Principal) (*ClassListResponse, error) {
	scopeSchoolFilter(actor, &filters.SchoolID)
	if !actor.IsAdmin() && filters.SchoolID == nil {
		return nil, NewPermissionError(actor.ID, "class", "list", "missing school binding")
	}

	classes, total, err := s.repo.Class().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}

	return &ClassListResponse{Classes: classes, Total: total}, nil
}

func (s *classService) getScopedClass(ctx context.Context, id uint, actor *authz.Principal) (*models.Class, error) {
	class, err := s.repo.Class().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("failed to get class: %w", err)
	}

	scope, err := authz.ScopeFor(*actor)
	if err != nil {
		return nil, err
	}
	if err := authz.CheckSchoolID(scope, class.SchoolID); err != nil {
		return nil, err
	}
	return class, nil
}
