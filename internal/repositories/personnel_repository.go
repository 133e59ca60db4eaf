package repositories

import (
	"context"

	"github.com/SAP-F-2025/school-service/internal/models"
)

type PersonnelRepository interface {
	Create(ctx context.Context, record *models.PersonnelRecord) error
	GetByID(ctx context.Context, id uint) (*models.PersonnelRecord, error)
	Update(ctx context.Context, record *models.PersonnelRecord) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters PersonnelFilters) ([]*models.PersonnelRecord, int64, error)
}

type EvaluationRepository interface {
	Create(ctx context.Context, eval *models.PersonnelEvaluation) error
	GetByID(ctx context.Context, id uint) (*models.PersonnelEvaluation, error)
	Update(ctx context.Context, eval *models.PersonnelEvaluation) error
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, filters EvaluationFilters) ([]*models.PersonnelEvaluation, int64, error)

	// ListForExport loads a school/year evaluation sheet with personnel
	// records preloaded, ordered for the spreadsheet export.
	ListForExport(ctx context.Context, schoolID string, academicYearID uint) ([]*models.PersonnelEvaluation, error)
}
