package repositories

import (
	"context"

	"github.com/SAP-F-2025/school-service/internal/models"
)

type SchoolRepository interface {
	Create(ctx context.Context, school *models.School) error
	GetByID(ctx context.Context, id string) (*models.School, error)
	GetByCode(ctx context.Context, code string) (*models.School, error)
	Update(ctx context.Context, school *models.School) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filters SchoolFilters) ([]*models.School, int64, error)

	ExistsByCode(ctx context.Context, code string) (bool, error)
	GetStats(ctx context.Context, id string) (*SchoolStats, error)
}
