package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/school-service/internal/cache"
	"github.com/SAP-F-2025/school-service/internal/repositories"
	"github.com/SAP-F-2025/school-service/internal/repositories/casdoor"
)

// PostgreSQLRepository implements the main Repository interface
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	// Repository instances
	school       repositories.SchoolRepository
	academicYear repositories.AcademicYearRepository
	department   repositories.DepartmentRepository
	class        repositories.ClassRepository
	personnel    repositories.PersonnelRepository
	evaluation   repositories.EvaluationRepository
	user         repositories.UserRepository
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	DB            *gorm.DB
	RedisClient   *redis.Client
	CasdoorConfig casdoor.CasdoorConfig
}

// NewPostgreSQLRepository creates a new repository manager with all sub-repositories
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	cacheManager := cache.NewCacheManager(config.RedisClient)
	return newPostgreSQLRepository(config.DB, config.RedisClient, cacheManager)
}

func newPostgreSQLRepository(db *gorm.DB, redisClient *redis.Client, cacheManager *cache.CacheManager) *PostgreSQLRepository {
	return &PostgreSQLRepository{
		db:           db,
		redisClient:  redisClient,
		cacheManager: cacheManager,

		school:       NewSchoolPostgreSQL(db, cacheManager),
		academicYear: NewAcademicYearPostgreSQL(db, cacheManager),
		department:   NewDepartmentPostgreSQL(db),
		class:        NewClassPostgreSQL(db),
		personnel:    NewPersonnelPostgreSQL(db),
		evaluation:   NewEvaluationPostgreSQL(db),
		user:         NewUserPostgreSQL(db, cacheManager),
	}
}

func (r *PostgreSQLRepository) School() repositories.SchoolRepository             { return r.school }
func (r *PostgreSQLRepository) AcademicYear() repositories.AcademicYearRepository { return r.academicYear }
func (r *PostgreSQLRepository) Department() repositories.DepartmentRepository     { return r.department }
func (r *PostgreSQLRepository) Class() repositories.ClassRepository               { return r.class }
func (r *PostgreSQLRepository) Personnel() repositories.PersonnelRepository       { return r.personnel }
func (r *PostgreSQLRepository) Evaluation() repositories.EvaluationRepository     { return r.evaluation }
func (r *PostgreSQLRepository) User() repositories.UserRepository                 { return r.user }

// WithTransaction runs fn against a Repository bound to a single database
// transaction. Any error rolls back every write.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newPostgreSQLRepository(tx, r.redisClient, r.cacheManager))
	})
}

// Ping checks database connectivity
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// repositoryManager implements repositories.RepositoryManager
type repositoryManager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

// NewRepositoryManager creates a repository manager from configuration
func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &repositoryManager{config: config}
}

func (m *repositoryManager) Initialize() error {
	if m.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}
	m.repo = NewPostgreSQLRepository(m.config)
	return nil
}

func (m *repositoryManager) GetRepository() repositories.Repository {
	return m.repo
}

func (m *repositoryManager) HealthCheck(ctx context.Context) error {
	if m.repo == nil {
		return fmt.Errorf("repositories not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.repo.Ping(ctx)
}

func (m *repositoryManager) Shutdown(_ context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close()
}
