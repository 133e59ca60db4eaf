package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/school-service/internal/cache"
	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
)

type AcademicYearPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewAcademicYearPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.AcademicYearRepository {
	return &AcademicYearPostgreSQL{db: db, cacheManager: cacheManager}
}

func (a *AcademicYearPostgreSQL) Create(ctx context.Context, year *models.AcademicYear) error {
	if err := a.db.WithContext(ctx).Create(year).Error; err != nil {
		return fmt.Errorf("failed to create academic year: %w", err)
	}
	cache.InvalidateYearCache(ctx, a.cacheManager, year.ID, year.SchoolID)
	return nil
}

func (a *AcademicYearPostgreSQL) GetByID(ctx context.Context, id uint) (*models.AcademicYear, error) {
	cacheKey := fmt.Sprintf("id:%d", id)
	var year models.AcademicYear

	err := a.cacheManager.Year.CacheOrExecute(ctx, cacheKey, &year, cache.YearCacheConfig.TTL, func() (interface{}, error) {
		var dbYear models.AcademicYear
		if err := a.db.WithContext(ctx).First(&dbYear, id).Error; err != nil {
			return nil, fmt.Errorf("failed to get academic year: %w", err)
		}
		return &dbYear, nil
	})
	if err != nil {
		return nil, err
	}
	return &year, nil
}

func (a *AcademicYearPostgreSQL) Update(ctx context.Context, year *models.AcademicYear) error {
	if err := a.db.WithContext(ctx).Save(year).Error; err != nil {
		return fmt.Errorf("failed to update academic year: %w", err)
	}
	cache.InvalidateYearCache(ctx, a.cacheManager, year.ID, year.SchoolID)
	return nil
}

func (a *AcademicYearPostgreSQL) Delete(ctx context.Context, id uint) error {
	var year models.AcademicYear
	if err := a.db.WithContext(ctx).First(&year, id).Error; err != nil {
		return fmt.Errorf("failed to get academic year for delete: %w", err)
	}
	if err := a.db.WithContext(ctx).Delete(&year).Error; err != nil {
		return fmt.Errorf("failed to delete academic year: %w", err)
	}
	cache.InvalidateYearCache(ctx, a.cacheManager, year.ID, year.SchoolID)
	return nil
}

func (a *AcademicYearPostgreSQL) List(ctx context.Context, filters repositories.AcademicYearFilters) ([]*models.AcademicYear, int64, error) {
	query := a.db.WithContext(ctx).Model(&models.AcademicYear{})

	if filters.SchoolID != nil {
		query = query.Where("school_id = ?", *filters.SchoolID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.FromYear != nil {
		query = query.Where("from_year = ?", *filters.FromYear)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count academic years: %w", err)
	}

	query = applySort(query, filters.SortBy, filters.SortOrder, map[string]bool{
		"created_at": true, "from_year": true,
	})
	query = applyPagination(query, filters.Limit, filters.Offset)

	var years []*models.AcademicYear
	if err := query.Find(&years).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list academic years: %w", err)
	}
	return years, total, nil
}

// GetActive bypasses the generic year cache on purpose: dependent writes
// call it at the moment of the operation and must see a mid-session
// retirement.
func (a *AcademicYearPostgreSQL) GetActive(ctx context.Context, schoolID string) (*models.AcademicYear, error) {
	var year models.AcademicYear
	err := a.db.WithContext(ctx).
		Where("school_id = ? AND status = ?", schoolID, models.YearActive).
		First(&year).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get active academic year: %w", err)
	}
	return &year, nil
}

func (a *AcademicYearPostgreSQL) HasActive(ctx context.Context, schoolID string, excludeID uint) (bool, error) {
	query := a.db.WithContext(ctx).Model(&models.AcademicYear{}).
		Where("school_id = ? AND status = ?", schoolID, models.YearActive)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check active academic year: %w", err)
	}
	return count > 0, nil
}

func (a *AcademicYearPostgreSQL) ExistsSpan(ctx context.Context, schoolID string, fromYear int) (bool, error) {
	var count int64
	err := a.db.WithContext(ctx).Model(&models.AcademicYear{}).
		Where("school_id = ? AND from_year = ?", schoolID, fromYear).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check academic year span: %w", err)
	}
	return count > 0, nil
}

func (a *AcademicYearPostgreSQL) MarkConfigured(ctx context.Context, id uint) error {
	result := a.db.WithContext(ctx).Model(&models.AcademicYear{}).
		Where("id = ? AND is_config = false", id).
		Update("is_config", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark academic year configured: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		var year models.AcademicYear
		if err := a.db.WithContext(ctx).First(&year, id).Error; err == nil {
			cache.InvalidateYearCache(ctx, a.cacheManager, year.ID, year.SchoolID)
		}
	}
	return nil
}
