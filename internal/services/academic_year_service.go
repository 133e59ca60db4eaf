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

type academicYearService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewAcademicYearService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) AcademicYearService {
	return &academicYearService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

func (s *academicYearService) Create(ctx context.Context, schoolID string, req *CreateYearRequest, actor *authz.Principal) (*models.AcademicYear, error) {
	school, err := resolveSchoolID(actor, schoolID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Creating academic year", "school_id", school, "from_year", req.FromYear, "actor_id", actor.ID)

	if errs := s.validator.ValidateYearCreate(req); len(errs) > 0 {
		return nil, errs
	}

	if _, err := s.repo.School().GetByID(ctx, school); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to get school: %w", err)
	}

	// A new year is born active, so the single-active invariant applies at
	// creation time. The partial unique index backs this check up under
	// concurrency.
	hasActive, err := s.repo.AcademicYear().HasActive(ctx, school, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check active academic year: %w", err)
	}
	if hasActive {
		return nil, ErrActiveYearExists
	}

	spanExists, err := s.repo.AcademicYear().ExistsSpan(ctx, school, req.FromYear)
	if err != nil {
		return nil, fmt.Errorf("failed to check academic year span: %w", err)
	}
	if spanExists {
		return nil, ErrYearSpanExists
	}

	year := &models.AcademicYear{
		SchoolID:  school,
		FromYear:  req.FromYear,
		ToYear:    req.ToYear,
		Status:    models.YearActive,
		IsConfig:  false,
		Semesters: req.Semesters,
	}

	if err := s.repo.AcademicYear().Create(ctx, year); err != nil {
		return nil, fmt.Errorf("failed to create academic year: %w", err)
	}

	s.publishYearEvent(ctx, events.EventYearActivated, year)
	s.logger.Info("Academic year created", "year_id", year.ID, "school_id", school)

	return year, nil
}

func (s *academicYearService) GetByID(ctx context.Context, id uint, actor *authz.Principal) (*YearResponse, error) {
	year, err := s.getScopedYear(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	return s.buildYearResponse(year), nil
}

func (s *academicYearService) GetActive(ctx context.Context, schoolID string, actor *authz.Principal) (*models.AcademicYear, error) {
	school, err := resolveSchoolID(actor, schoolID)
	if err != nil {
		return nil, err
	}

	year, err := s.repo.AcademicYear().GetActive(ctx, school)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNoActiveYear
		}
		return nil, fmt.Errorf("failed to get active academic year: %w", err)
	}
	return year, nil
}

// Update applies a mixed payload through the lifecycle table. Structural
// fields and the status flip are inspected separately and every implied
// event must pass before anything is written.
func (s *academicYearService) Update(ctx context.Context, id uint, req *UpdateYearRequest, actor *authz.Principal) (*YearResponse, error) {
	s.logger.Info("Updating academic year", "year_id", id, "actor_id", actor.ID)

	year, err := s.getScopedYear(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if errs := s.validator.ValidateYearUpdate(req); len(errs) > 0 {
		return nil, errs
	}

	update := authz.YearUpdate{
		Structural: req.FromYear != nil || req.ToYear != nil || len(req.Semesters) > 0,
		Status:     req.Status,
	}
	lifecycleEvents := authz.EventsForYearUpdate(update)
	if len(lifecycleEvents) == 0 {
		return s.buildYearResponse(year), nil
	}

	for _, event := range lifecycleEvents {
		if err := authz.CheckYearEvent(year.Status, year.IsConfig, event); err != nil {
			return nil, err
		}
	}

	activating := req.Status != nil && *req.Status == models.YearActive && year.Status != models.YearActive
	deactivating := req.Status != nil && *req.Status == models.YearInactive && year.Status == models.YearActive

	if activating {
		otherActive, err := s.repo.AcademicYear().HasActive(ctx, year.SchoolID, year.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check active academic year: %w", err)
		}
		if err := authz.CheckYearActivation(otherActive); err != nil {
			return nil, err
		}
	}

	if update.Structural && req.FromYear != nil && *req.FromYear != year.FromYear {
		spanExists, err := s.repo.AcademicYear().ExistsSpan(ctx, year.SchoolID, *req.FromYear)
		if err != nil {
			return nil, fmt.Errorf("failed to check academic year span: %w", err)
		}
		if spanExists {
			return nil, ErrYearSpanExists
		}
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		current, err := txRepo.AcademicYear().GetByID(ctx, year.ID)
		if err != nil {
			return fmt.Errorf("failed to reload academic year: %w", err)
		}

		// The state may have moved between the read and the transaction;
		// the table is consulted again on current data.
		for _, event := range lifecycleEvents {
			if err := authz.CheckYearEvent(current.Status, current.IsConfig, event); err != nil {
				return err
			}
		}

		if req.FromYear != nil {
			current.FromYear = *req.FromYear
		}
		if req.ToYear != nil {
			current.ToYear = *req.ToYear
		}
		if len(req.Semesters) > 0 {
			current.Semesters = req.Semesters
		}
		if req.Status != nil {
			current.Status = *req.Status
		}

		if err := txRepo.AcademicYear().Update(ctx, current); err != nil {
			return fmt.Errorf("failed to update academic year: %w", err)
		}

		*year = *current
		return nil
	})
	if err != nil {
		return nil, err
	}

	if activating {
		s.publishYearEvent(ctx, events.EventYearActivated, year)
	}
	if deactivating {
		s.publishYearEvent(ctx, events.EventYearRetired, year)
	}

	s.logger.Info("Academic year updated", "year_id", id, "status", year.Status)
	return s.buildYearResponse(year), nil
}

func (s *academicYearService) Activate(ctx context.Context, id uint, actor *authz.Principal) error {
	status := models.YearActive
	_, err := s.Update(ctx, id, &UpdateYearRequest{Status: &status}, actor)
	return err
}

func (s *academicYearService) Deactivate(ctx context.Context, id uint, actor *authz.Principal) error {
	status := models.YearInactive
	_, err := s.Update(ctx, id, &UpdateYearRequest{Status: &status}, actor)
	return err
}

func (s *academicYearService) Delete(ctx context.Context, id uint, actor *authz.Principal) error {
	s.logger.Info("Deleting academic year", "year_id", id, "actor_id", actor.ID)

	year, err := s.getScopedYear(ctx, id, actor)
	if err != nil {
		return err
	}

	if err := authz.CheckYearEvent(year.Status, year.IsConfig, authz.EventDelete); err != nil {
		return err
	}

	if err := s.repo.AcademicYear().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete academic year: %w", err)
	}

	s.logger.Info("Academic year deleted", "year_id", id)
	return nil
}

func (s *academicYearService) List(ctx context.Context, filters repositories.AcademicYearFilters, actor *authz.Principal) (*YearListResponse, error) {
	scopeSchoolFilter(actor, &filters.SchoolID)
	if !actor.IsAdmin() && filters.SchoolID == nil {
		return nil, NewPermissionError(actor.ID, "academic_year", "list", "missing school binding")
	}

	years, total, err := s.repo.AcademicYear().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list academic years: %w", err)
	}

	resp := &YearListResponse{Total: total, Years: make([]*YearResponse, 0, len(years))}
	for _, year := range years {
		resp.Years = append(resp.Years, s.buildYearResponse(year))
	}
	return resp, nil
}

func (s *academicYearService) getScopedYear(ctx context.Context, id uint, actor *authz.Principal) (*models.AcademicYear, error) {
	year, err := s.repo.AcademicYear().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrYearNotFound
		}
		return nil, fmt.Errorf("failed to get academic year: %w", err)
	}

	scope, err := authz.ScopeFor(*actor)
	if err != nil {
		return nil, err
	}
	if err := authz.CheckSchoolID(scope, year.SchoolID); err != nil {
		return nil, err
	}
	return year, nil
}

func (s *academicYearService) buildYearResponse(year *models.AcademicYear) *YearResponse {
	return &YearResponse{
		AcademicYear:  year,
		CanEdit:       authz.CheckYearEvent(year.Status, year.IsConfig, authz.EventStructuralEdit) == nil,
		CanActivate:   authz.CheckYearEvent(year.Status, year.IsConfig, authz.EventActivate) == nil,
		CanDeactivate: authz.CheckYearEvent(year.Status, year.IsConfig, authz.EventDeactivate) == nil,
		CanDelete:     authz.CheckYearEvent(year.Status, year.IsConfig, authz.EventDelete) == nil,
	}
}

func (s *academicYearService) publishYearEvent(ctx context.Context, eventType string, year *models.AcademicYear) {
	payload := events.YearPayload{
		ID:       year.ID,
		SchoolID: year.SchoolID,
		FromYear: year.FromYear,
		ToYear:   year.ToYear,
		Status:   string(year.Status),
	}
	if err := s.publisher.Publish(ctx, eventType, payload); err != nil {
		s.logger.Error("Failed to publish academic year event", "event_type", eventType, "year_id", year.ID, "error", err)
	}
}
