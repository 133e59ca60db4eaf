package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
)

type ClassPostgreSQL struct {
	db *gorm.DB
}

func NewClassPostgreSQL(db *gorm.DB) repositories.ClassRepository {
	return &ClassPostgreSQL{db: db}
}

func (c *ClassPostgreSQL) Create(ctx context.Context, class *models.Class) error {
	if err := c.db.WithContext(ctx).Create(class).Error; err != nil {
		return fmt.Errorf("failed to create class: %w", err)
	}
	return nil
}

func (c *ClassPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Class, error) {
	var class models.Class
	if err := c.db.WithContext(ctx).First(&class, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	return &class, nil
}

func (c *ClassPostgreSQL) Update(ctx context.Context, class *models.Class) error {
	if err := c.db.WithContext(ctx).Save(class).Error; err != nil {
		return fmt.Errorf("failed to update class: %w", err)
	}
	return nil
}

func (c *ClassPostgreSQL) Delete(ctx context.Context, id uint) error {
	if err := c.db.WithContext(ctx).Delete(&models.Class{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
	}
	return nil
}

func (c *ClassPostgreSQL) List(ctx context.Context, filters repositories.ClassFilters) ([]*models.Class, int64, error) {
	query := c.db.WithContext(ctx).Model(&models.Class{})

	if filters.SchoolID != nil {
		query = query.Where("school_id = ?", *filters.SchoolID)
	}
	if filters.AcademicYearID != nil {
		query = query.Where("academic_year_id = ?", *filters.AcademicYearID)
	}
	if filters.Grade != nil {
		query = query.Where("grade = ?", *filters.Grade)
	}
	if filters.TeacherID != nil {
		query = query.Where("teacher_id = ?", *filters.TeacherID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count classes: %w", err)
	}

	query = applySort(query, "created_at", "desc", map[string]bool{"created_at": true})
	query = applyPagination(query, filters.Limit, filters.Offset)

	var classes []*models.Class
	if err := query.Find(&classes).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list classes: %w", err)
	}
	return classes, total, nil
}
