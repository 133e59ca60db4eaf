package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
)

type DepartmentPostgreSQL struct {
	db *gorm.DB
}

func NewDepartmentPostgreSQL(db *gorm.DB) repositories.DepartmentRepository {
	return &DepartmentPostgreSQL{db: db}
}

func (d *DepartmentPostgreSQL) Create(ctx context.Context, dept *models.Department) error {
	if err := d.db.WithContext(ctx).Create(dept).Error; err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}

func (d *DepartmentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Department, error) {
	var dept models.Department
	if err := d.db.WithContext(ctx).First(&dept, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return &dept, nil
}

func (d *DepartmentPostgreSQL) Update(ctx context.Context, dept *models.Department) error {
	if err := d.db.WithContext(ctx).Save(dept).Error; err != nil {
		return fmt.Errorf("failed to update department: %w", err)
	}
	return nil
}

func (d *DepartmentPostgreSQL) Delete(ctx context.Context, id uint) error {
	if err := d.db.WithContext(ctx).Delete(&models.Department{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	return nil
}

func (d *DepartmentPostgreSQL) List(ctx context.Context, filters repositories.DepartmentFilters) ([]*models.Department, int64, error) {
	query := d.db.WithContext(ctx).Model(&models.Department{})

	if filters.SchoolID != nil {
		query = query.Where("school_id = ?", *filters.SchoolID)
	}
	if filters.AcademicYearID != nil {
		query = query.Where("academic_year_id = ?", *filters.AcademicYearID)
	}
	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count departments: %w", err)
	}

	query = applySort(query, "created_at", "desc", map[string]bool{"created_at": true})
	query = applyPagination(query, filters.Limit, filters.Offset)

	var depts []*models.Department
	if err := query.Find(&depts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list departments: %w", err)
	}
	return depts, total, nil
}

func (d *DepartmentPostgreSQL) CountByYear(ctx context.Context, academicYearID uint) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&models.Department{}).
		Where("academic_year_id = ?", academicYearID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count departments by year: %w", err)
	}
	return count, nil
}

func (d *DepartmentPostgreSQL) ExistsByCode(ctx context.Context, academicYearID uint, code string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&models.Department{}).
		Where("academic_year_id = ? AND code = ?", academicYearID, code).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check department code: %w", err)
	}
	return count > 0, nil
}
