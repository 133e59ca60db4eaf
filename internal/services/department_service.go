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

type departmentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewDepartmentService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) DepartmentService {
	return &departmentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// Create attaches a department to the school's active year. The lifecycle
// check, the insert and the configured flip run in one transaction so a
// concurrent retirement cannot slip between them.
func (s *departmentService) Create(ctx context.Context, schoolID string, req *CreateDepartmentRequest, actor *authz.Principal) (*models.Department, error) {
	school, err := resolveSchoolID(actor, schoolID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Creating department", "school_id", school, "code", req.Code, "actor_id", actor.ID)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	var dept *models.Department
	var firstDependent bool

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		year, err := activeYearForAttach(ctx, txRepo, school)
		if err != nil {
			return err
		}
		firstDependent = !year.IsConfig

		exists, err := txRepo.Department().ExistsByCode(ctx, year.ID, req.Code)
		if err != nil {
			return fmt.Errorf("failed to check department code: %w", err)
		}
		if exists {
			return ErrDepartmentCodeExists
		}

		dept = &models.Department{
			SchoolID:       school,
			AcademicYearID: year.ID,
			Name:           req.Name,
			Code:           req.Code,
			HeadID:         req.HeadID,
		}
		if err := txRepo.Department().Create(ctx, dept); err != nil {
			return fmt.Errorf("failed to create department: %w", err)
		}

		return txRepo.AcademicYear().MarkConfigured(ctx, year.ID)
	})
	if err != nil {
		return nil, err
	}

	s.publishCreated(ctx, dept)
	if firstDependent {
		s.publishConfigured(ctx, dept.AcademicYearID, school)
	}

	s.logger.Info("Department created", "department_id", dept.ID, "year_id", dept.AcademicYearID)
	return dept, nil
}

func (s *departmentService) GetByID(ctx context.Context, id uint, actor *authz.Principal) (*models.Department, error) {
	return s.getScopedDepartment(ctx, id, actor)
}

func (s *departmentService) Update(ctx context.Context, id uint, req *UpdateDepartmentRequest, actor *authz.Principal) (*models.Department, error) {
	s.logger.Info("Updating department", "department_id", id, "actor_id", actor.ID)

	dept, err := s.getScopedDepartment(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if err := requireYearActive(ctx, s.repo, dept.AcademicYearID); err != nil {
		return nil, err
	}

	if req.Code != nil && *req.Code != dept.Code {
		exists, err := s.repo.Department().ExistsByCode(ctx, dept.AcademicYearID, *req.Code)
		if err != nil {
			return nil, fmt.Errorf("failed to check department code: %w", err)
		}
		if exists {
			return nil, ErrDepartmentCodeExists
		}
		dept.Code = *req.Code
	}
	if req.Name != nil {
		dept.Name = *req.Name
	}
	if req.HeadID != nil {
		dept.HeadID = req.HeadID
	}

	if err := s.repo.Department().Update(ctx, dept); err != nil {
		return nil, fmt.Errorf("failed to update department: %w", err)
	}

	s.logger.Info("Department updated", "department_id", id)
	return dept, nil
}

func (s *departmentService) Delete(ctx context.Context, id uint, actor *authz.Principal) error {
	s.logger.Info("Deleting department", "department_id", id, "actor_id", actor.ID)

	dept, err := s.getScopedDepartment(ctx, id, actor)
	if err != nil {
		return err
	}

	if err := requireYearActive(ctx, s.repo, dept.AcademicYearID); err != nil {
		return err
	}

	if err := s.repo.Department().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}

	s.logger.Info("Department deleted", "department_id", id)
	return nil
}

func (s *departmentService) List(ctx context.Context, filters repositories.DepartmentFilters, actor *authz.Principal) (*DepartmentListResponse, error) {
	scopeSchoolFilter(actor, &filters.SchoolID)
	if !actor.IsAdmin() && filters.SchoolID == nil {
		return nil, NewPermissionError(actor.ID, "department", "list", "missing school binding")
	}

	depts, total, err := s.repo.Department().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	return &DepartmentListResponse{Departments: depts, Total: total}, nil
}

func (s *departmentService) getScopedDepartment(ctx context.Context, id uint, actor *authz.Principal) (*models.Department, error) {
	dept, err := s.repo.Department().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}

	scope, err := authz.ScopeFor(*actor)
	if err != nil {
		return nil, err
	}
	if err := authz.CheckSchoolID(scope, dept.SchoolID); err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *departmentService) publishCreated(ctx context.Context, dept *models.Department) {
	payload := events.DepartmentPayload{
		ID:             dept.ID,
		SchoolID:       dept.SchoolID,
		AcademicYearID: dept.AcademicYearID,
		Code:           dept.Code,
		Name:           dept.Name,
	}
	if err := s.publisher.Publish(ctx, events.EventDepartmentCreated, payload); err != nil {
		s.logger.Error("Failed to publish department created event", "department_id", dept.ID, "error", err)
	}
}

func (s *departmentService) publishConfigured(ctx context.Context, yearID uint, schoolID string) {
	payload := events.YearPayload{ID: yearID, SchoolID: schoolID, Status: string(models.YearActive)}
	if err := s.publisher.Publish(ctx, events.EventYearConfigured, payload); err != nil {
		s.logger.Error("Failed to publish year configured event", "year_id", yearID, "error", err)
	}
}
