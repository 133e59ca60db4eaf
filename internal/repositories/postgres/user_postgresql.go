package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/school-service/internal/cache"
	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
)

type UserPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewUserPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.UserRepository {
	return &UserPostgreSQL{db: db, cacheManager: cacheManager}
}

func (u *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	if err := u.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	cache.InvalidateUserCache(ctx, u.cacheManager, user.ID, user.SchoolID)
	return nil
}

// GetByID reads the current database state of a user. This path backs
// principal construction, so the cache TTL is deliberately short and every
// write invalidates it.
func (u *UserPostgreSQL) GetByID(ctx context.Context, id string) (*models.User, error) {
	cacheKey := fmt.Sprintf("id:%s", id)
	var user models.User

	err := u.cacheManager.User.CacheOrExecute(ctx, cacheKey, &user, cache.UserCacheConfig.TTL, func() (interface{}, error) {
		var dbUser models.User
		if err := u.db.WithContext(ctx).First(&dbUser, "id = ?", id).Error; err != nil {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		return &dbUser, nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (u *UserPostgreSQL) Update(ctx context.Context, user *models.User) error {
	if err := u.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	cache.InvalidateUserCache(ctx, u.cacheManager, user.ID, user.SchoolID)
	return nil
}

func (u *UserPostgreSQL) Delete(ctx context.Context, id string) error {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to get user for delete: %w", err)
	}
	if err := u.db.WithContext(ctx).Delete(&user).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	cache.InvalidateUserCache(ctx, u.cacheManager, user.ID, user.SchoolID)
	return nil
}

func (u *UserPostgreSQL) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	query := u.db.WithContext(ctx).Model(&models.User{})

	if filters.SchoolID != nil {
		query = query.Where("school_id = ?", *filters.SchoolID)
	}
	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.IsRoot != nil {
		query = query.Where("is_root = ?", *filters.IsRoot)
	}
	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query = applySort(query, filters.SortBy, filters.SortOrder, map[string]bool{
		"created_at": true, "full_name": true, "email": true,
	})
	query = applyPagination(query, filters.Limit, filters.Offset)

	var users []*models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (u *UserPostgreSQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := u.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

func (u *UserPostgreSQL) HasRoot(ctx context.Context, schoolID string, excludeUserID string) (bool, error) {
	query := u.db.WithContext(ctx).Model(&models.User{}).
		Where("school_id = ? AND role = ? AND is_root = true", schoolID, models.RoleBanGiamHieu)
	if excludeUserID != "" {
		query = query.Where("id <> ?", excludeUserID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check root existence: %w", err)
	}
	return count > 0, nil
}
