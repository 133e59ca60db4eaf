package repositories

import (
	"context"

	"github.com/SAP-F-2025/school-service/internal/models"
)

type AcademicYearRepository interface {
	Create(ctx context.Context, year *models.AcademicYear) error
	GetByID(ctx context.Context, id uint) (*models.AcademicYear, error)
	Update(ctx context.Context, year *models.AcademicYear) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters AcademicYearFilters) ([]*models.AcademicYear, int64, error)

	// GetActive returns the single active year of a school, if any.
	GetActive(ctx context.Context, schoolID string) (*models.AcademicYear, error)

	// HasActive reports whether the school holds an active year,
	// optionally excluding one year id (activation of the same year).
	HasActive(ctx context.Context, schoolID string, excludeID uint) (bool, error)

	// ExistsSpan reports whether the school already has a year starting at
	// fromYear.
	ExistsSpan(ctx context.Context, schoolID string, fromYear int) (bool, error)

	// MarkConfigured flips is_config once the first dependent entity is
	// created under the year. Idempotent.
	MarkConfigured(ctx context.Context, id uint) error
}

type DepartmentRepository interface {
	Create(ctx context.Context, dept *models.Department) error
	GetByID(ctx context.Context, id uint) (*models.Department, error)
	Update(ctx context.Context, dept *models.Department) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters DepartmentFilters) ([]*models.Department, int64, error)

	CountByYear(ctx context.Context, academicYearID uint) (int64, error)
	ExistsByCode(ctx context.Context, academicYearID uint, code string) (bool, error)
}

type ClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id uint) (*models.Class, error)
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters ClassFilters) ([]*models.Class, int64, error)
}
