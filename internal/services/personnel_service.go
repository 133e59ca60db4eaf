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

type personnelService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewPersonnelService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) PersonnelService {
	return &personnelService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ===== PERSONNEL RECORDS =====

func (s *personnelService) CreateRecord(ctx context.Context, schoolID string, req *CreatePersonnelRequest, actor *authz.Principal) (*models.PersonnelRecord, error) {
	school, err := resolveSchoolID(actor, schoolID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Creating personnel record", "school_id", school, "user_id", req.UserID, "actor_id", actor.ID)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	// The record must point at an existing user of the same school.
	user, err := s.repo.User().GetByID(ctx, req.UserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.SchoolID == nil || *user.SchoolID != school {
		return nil, NewPermissionError(actor.ID, "personnel", "create", "user belongs to another school")
	}

	record := &models.PersonnelRecord{
		SchoolID:     school,
		UserID:       req.UserID,
		Position:     req.Position,
		DepartmentID: req.DepartmentID,
		HiredAt:      req.HiredAt,
		Note:         req.Note,
	}

	if err := s.repo.Personnel().Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create personnel record: %w", err)
	}

	s.logger.Info("Personnel record created", "record_id", record.ID)
	return record, nil
}

func (s *personnelService) GetRecord(ctx context.Context, id uint, actor *authz.Principal) (*models.PersonnelRecord, error) {
	return s.getScopedRecord(ctx, id, actor)
}

func (s *personnelService) UpdateRecord(ctx context.Context, id uint, req *UpdatePersonnelRequest, actor *authz.Principal) (*models.PersonnelRecord, error) {
	s.logger.Info("Updating personnel record", "record_id", id, "actor_id", actor.ID)

	record, err := s.getScopedRecord(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if req.Position != nil {
		record.Position = *req.Position
	}
	if req.DepartmentID != nil {
		record.DepartmentID = req.DepartmentID
	}
	if req.HiredAt != nil {
		record.HiredAt = req.HiredAt
	}
	if req.Note != nil {
		record.Note = req.Note
	}

	if err := s.repo.Personnel().Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update personnel record: %w", err)
	}

	s.logger.Info("Personnel record updated", "record_id", id)
	return record, nil
}

func (s *personnelService) DeleteRecord(ctx context.Context, id uint, actor *authz.Principal) error {
	s.logger.Info("Deleting personnel record", "record_id", id, "actor_id", actor.ID)

	if _, err := s.getScopedRecord(ctx, id, actor); err != nil {
		return err
	}

	if err := s.repo.Personnel().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete personnel record: %w", err)
	}

	s.logger.Info("Personnel record deleted", "record_id", id)
	return nil
}

func (s *personnelService) ListRecords(ctx context.Context, filters repositories.PersonnelFilters, actor *authz.Principal) (*PersonnelListResponse, error) {
	scopeSchoolFilter(actor, &filters.SchoolID)
	if !actor.IsAdmin() && filters.SchoolID == nil {
		return nil, NewPermissionError(actor.ID, "personnel", "list", "missing school binding")
	}

	records, total, err := s.repo.Personnel().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list personnel records: %w", err)
	}

	return &PersonnelListResponse{Records: records, Total: total}, nil
}

// ===== EVALUATIONS =====

// CreateEvaluation attaches a review to the school's active year. Like every
// dependent write, the year gate and the insert share one transaction.
func (s *personnelService) CreateEvaluation(ctx context.Context, schoolID string, req *CreateEvaluationRequest, actor *authz.Principal) (*models.PersonnelEvaluation, error) {
	school, err := resolveSchoolID(actor, schoolID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Creating evaluation", "school_id", school, "record_id", req.PersonnelRecordID, "actor_id", actor.ID)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	var eval *models.PersonnelEvaluation
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		year, err := activeYearForAttach(ctx, txRepo, school)
		if err != nil {
			return err
		}

		record, err := txRepo.Personnel().GetByID(ctx, req.PersonnelRecordID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrPersonnelNotFound
			}
			return fmt.Errorf("failed to get personnel record: %w", err)
		}
		if record.SchoolID != school {
			return NewPermissionError(actor.ID, "evaluation", "create", "personnel record belongs to another school")
		}

		eval = &models.PersonnelEvaluation{
			SchoolID:          school,
			AcademicYearID:    year.ID,
			PersonnelRecordID: record.ID,
			Grade:             req.Grade,
			EvaluatorID:       actor.ID,
			Criteria:          req.Criteria,
			Comment:           req.Comment,
		}
		if err := txRepo.Evaluation().Create(ctx, eval); err != nil {
			return fmt.Errorf("failed to create evaluation: %w", err)
		}

		return txRepo.AcademicYear().MarkConfigured(ctx, year.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Evaluation created", "evaluation_id", eval.ID, "year_id", eval.AcademicYearID)
	return eval, nil
}

func (s *personnelService) GetEvaluation(ctx context.Context, id uint, actor *authz.Principal) (*models.PersonnelEvaluation, error) {
	return s.getScopedEvaluation(ctx, id, actor)
}

func (s *personnelService) UpdateEvaluation(ctx context.Context, id uint, req *UpdateEvaluationRequest, actor *authz.Principal) (*models.PersonnelEvaluation, error) {
	s.logger.Info("Updating evaluation", "evaluation_id", id, "actor_id", actor.ID)

	eval, err := s.getScopedEvaluation(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if err := requireYearActive(ctx, s.repo, eval.AcademicYearID); err != nil {
		return nil, err
	}

	if req.Grade != nil {
		eval.Grade = *req.Grade
	}
	if len(req.Criteria) > 0 {
		eval.Criteria = req.Criteria
	}
	if req.Comment != nil {
		eval.Comment = req.Comment
	}

	if err := s.repo.Evaluation().Update(ctx, eval); err != nil {
		return nil, fmt.Errorf("failed to update evaluation: %w", err)
	}

	s.logger.Info("Evaluation updated", "evaluation_id", id)
	return eval, nil
}

func (s *personnelService) DeleteEvaluation(ctx context.Context, id uint, actor *authz.Principal) error {
	s.logger.Info("Deleting evaluation", "evaluation_id", id, "actor_id", actor.ID)

	eval, err := s.getScopedEvaluation(ctx, id, actor)
	if err != nil {
		return err
	}

	if err := requireYearActive(ctx, s.repo, eval.AcademicYearID); err != nil {
		return err
	}

	if err := s.repo.Evaluation().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete evaluation: %w", err)
	}

	s.logger.Info("Evaluation deleted", "evaluation_id", id)
	return nil
}

func (s *personnelService) ListEvaluations(ctx context.Context, filters repositories.EvaluationFilters, actor *authz.Principal) (*EvaluationListResponse, error) {
	scopeSchoolFilter(actor, &filters.SchoolID)
	if !actor.IsAdmin() && filters.SchoolID == nil {
		return nil, NewPermissionError(actor.ID, "evaluation", "list", "missing school binding")
	}

	evals, total, err := s.repo.Evaluation().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}

	return &EvaluationListResponse{Evaluations: evals, Total: total}, nil
}

func (s *personnelService) getScopedRecord(ctx context.Context, id uint, actor *authz.Principal) (*models.PersonnelRecord, error) {
	record, err := s.repo.Personnel().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrPersonnelNotFound
		}
		return nil, fmt.Errorf("failed to get personnel record: %w", err)
	}

	scope, err := authz.ScopeFor(*actor)
	if err != nil {
		return nil, err
	}
	if err := authz.CheckSchoolID(scope, record.SchoolID); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *personnelService) getScopedEvaluation(ctx context.Context, id uint, actor *authz.Principal) (*models.PersonnelEvaluation, error) {
	eval, err := s.repo.Evaluation().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}

	scope, err := authz.ScopeFor(*actor)
	if err != nil {
		return nil, err
	}
	if err := authz.CheckSchoolID(scope, eval.SchoolID); err != nil {
		return nil, err
	}
	return eval, nil
}
