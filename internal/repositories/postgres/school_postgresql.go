package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/school-service/internal/cache"
	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
)

type SchoolPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewSchoolPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.SchoolRepository {
	return &SchoolPostgreSQL{db: db, cacheManager: cacheManager}
}

func (s *SchoolPostgreSQL) Create(ctx context.Context, school *models.School) error {
	if err := s.db.WithContext(ctx).Create(school).Error; err != nil {
		return fmt.Errorf("failed to create school: %w", err)
	}
	cache.InvalidateSchoolCache(ctx, s.cacheManager, school.ID)
	return nil
}

func (s *SchoolPostgreSQL) GetByID(ctx context.Context, id string) (*models.School, error) {
	cacheKey := fmt.Sprintf("id:%s", id)
	var school models.School

	err := s.cacheManager.School.CacheOrExecute(ctx, cacheKey, &school, cache.SchoolCacheConfig.TTL, func() (interface{}, error) {
		var dbSchool models.School
		if err := s.db.WithContext(ctx).First(&dbSchool, "id = ?", id).Error; err != nil {
			return nil, fmt.Errorf("failed to get school: %w", err)
		}
		return &dbSchool, nil
	})
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (s *SchoolPostgreSQL) GetByCode(ctx context.Context, code string) (*models.School, error) {
	var school models.School
	if err := s.db.WithContext(ctx).First(&school, "code = ?", code).Error; err != nil {
		return nil, fmt.Errorf("failed to get school by code: %w", err)
	}
	return &school, nil
}

func (s *SchoolPostgreSQL) Update(ctx context.Context, school *models.School) error {
	if err := s.db.WithContext(ctx).Save(school).Error; err != nil {
		return fmt.Errorf("failed to update school: %w", err)
	}
	cache.InvalidateSchoolCache(ctx, s.cacheManager, school.ID)
	return nil
}

func (s *SchoolPostgreSQL) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&models.School{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete school: %w", err)
	}
	cache.InvalidateSchoolCache(ctx, s.cacheManager, id)
	return nil
}

func (s *SchoolPostgreSQL) List(ctx context.Context, filters repositories.SchoolFilters) ([]*models.School, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.School{})

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count schools: %w", err)
	}

	query = applySort(query, filters.SortBy, filters.SortOrder, map[string]bool{
		"created_at": true, "name": true, "code": true,
	})
	query = applyPagination(query, filters.Limit, filters.Offset)

	var schools []*models.School
	if err := query.Find(&schools).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list schools: %w", err)
	}
	return schools, total, nil
}

func (s *SchoolPostgreSQL) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.School{}).Where("code = ?", code).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check school code: %w", err)
	}
	return count > 0, nil
}

func (s *SchoolPostgreSQL) GetStats(ctx context.Context, id string) (*repositories.SchoolStats, error) {
	cacheKey := fmt.Sprintf("school:%s:overview", id)
	var stats repositories.SchoolStats

	err := s.cacheManager.Stats.CacheOrExecute(ctx, cacheKey, &stats, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		var dbStats repositories.SchoolStats
		if err := s.db.WithContext(ctx).Model(&models.User{}).Where("school_id = ?", id).Count(&dbStats.UserCount).Error; err != nil {
			return nil, fmt.Errorf("failed to count users: %w", err)
		}
		if err := s.db.WithContext(ctx).Model(&models.Department{}).Where("school_id = ?", id).Count(&dbStats.DepartmentCount).Error; err != nil {
			return nil, fmt.Errorf("failed to count departments: %w", err)
		}
		if err := s.db.WithContext(ctx).Model(&models.Class{}).Where("school_id = ?", id).Count(&dbStats.ClassCount).Error; err != nil {
			return nil, fmt.Errorf("failed to count classes: %w", err)
		}
		if err := s.db.WithContext(ctx).Model(&models.PersonnelEvaluation{}).Where("school_id = ?", id).Count(&dbStats.EvaluationCount).Error; err != nil {
			return nil, fmt.Errorf("failed to count evaluations: %w", err)
		}
		return &dbStats, nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
