package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
)

type PersonnelPostgreSQL struct {
	db *gorm.DB
}

func NewPersonnelPostgreSQL(db *gorm.DB) repositories.PersonnelRepository {
	return &PersonnelPostgreSQL{db: db}
}

func (p *PersonnelPostgreSQL) Create(ctx context.Context, record *models.PersonnelRecord) error {
	if err := p.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create personnel record: %w", err)
	}
	return nil
}

func (p *PersonnelPostgreSQL) GetByID(ctx context.Context, id uint) (*models.PersonnelRecord, error) {
	var record models.PersonnelRecord
	if err := p.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get personnel record: %w", err)
	}
	return &record, nil
}

func (p *PersonnelPostgreSQL) Update(ctx context.Context, record *models.PersonnelRecord) error {
	if err := p.db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("failed to update personnel record: %w", err)
	}
	return nil
}

func (p *PersonnelPostgreSQL) Delete(ctx context.Context, id uint) error {
	if err := p.db.WithContext(ctx).Delete(&models.PersonnelRecord{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete personnel record: %w", err)
	}
	return nil
}

func (p *PersonnelPostgreSQL) List(ctx context.Context, filters repositories.PersonnelFilters) ([]*models.PersonnelRecord, int64, error) {
	query := p.db.WithContext(ctx).Model(&models.PersonnelRecord{})

	if filters.SchoolID != nil {
		query = query.Where("school_id = ?", *filters.SchoolID)
	}
	if filters.DepartmentID != nil {
		query = query.Where("department_id = ?", *filters.DepartmentID)
	}
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.Query != "" {
		query = query.Where("position ILIKE ?", "%"+filters.Query+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count personnel records: %w", err)
	}

	query = applySort(query, "created_at", "desc", map[string]bool{"created_at": true})
	query = applyPagination(query, filters.Limit, filters.Offset)

	var records []*models.PersonnelRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list personnel records: %w", err)
	}
	return records, total, nil
}

type EvaluationPostgreSQL struct {
	db *gorm.DB
}

func NewEvaluationPostgreSQL(db *gorm.DB) repositories.EvaluationRepository {
	return &EvaluationPostgreSQL{db: db}
}

func (e *EvaluationPostgreSQL) Create(ctx context.Context, eval *models.PersonnelEvaluation) error {
	if err := e.db.WithContext(ctx).Create(eval).Error; err != nil {
		return fmt.Errorf("failed to create evaluation: %w", err)
	}
	return nil
}

func (e *EvaluationPostgreSQL) GetByID(ctx context.Context, id uint) (*models.PersonnelEvaluation, error) {
	var eval models.PersonnelEvaluation
	if err := e.db.WithContext(ctx).First(&eval, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	return &eval, nil
}

func (e *EvaluationPostgreSQL) Update(ctx context.Context, eval *models.PersonnelEvaluation) error {
	if err := e.db.WithContext(ctx).Save(eval).Error; err != nil {
		return fmt.Errorf("failed to update evaluation: %w", err)
	}
	return nil
}

func (e *EvaluationPostgreSQL) Delete(ctx context.Context, id uint) error {
	if err := e.db.WithContext(ctx).Delete(&models.PersonnelEvaluation{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete evaluation: %w", err)
	}
	return nil
}

func (e *EvaluationPostgreSQL) List(ctx context.Context, filters repositories.EvaluationFilters) ([]*models.PersonnelEvaluation, int64, error) {
	query := e.db.WithContext(ctx).Model(&models.PersonnelEvaluation{})

	if filters.SchoolID != nil {
		query = query.Where("school_id = ?", *filters.SchoolID)
	}
	if filters.AcademicYearID != nil {
		query = query.Where("academic_year_id = ?", *filters.AcademicYearID)
	}
	if filters.PersonnelRecordID != nil {
		query = query.Where("personnel_record_id = ?", *filters.PersonnelRecordID)
	}
	if filters.Grade != nil {
		query = query.Where("grade = ?", *filters.Grade)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count evaluations: %w", err)
	}

	query = applySort(query, "created_at", "desc", map[string]bool{"created_at": true})
	query = applyPagination(query, filters.Limit, filters.Offset)

	var evals []*models.PersonnelEvaluation
	if err := query.Find(&evals).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list evaluations: %w", err)
	}
	return evals, total, nil
}

func (e *EvaluationPostgreSQL) ListForExport(ctx context.Context, schoolID string, academicYearID uint) ([]*models.PersonnelEvaluation, error) {
	var evals []*models.PersonnelEvaluation
	err := e.db.WithContext(ctx).
		Preload("PersonnelRecord").
		Where("school_id = ? AND academic_year_id = ?", schoolID, academicYearID).
		Order("personnel_record_id ASC, created_at ASC").
		Find(&evals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load evaluations for export: %w", err)
	}
	return evals, nil
}
