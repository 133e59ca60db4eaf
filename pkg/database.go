package pkg

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SAP-F-2025/school-service/internal/config"
	"github.com/SAP-F-2025/school-service/internal/models"
)

// InitDatabase opens the Postgres connection and migrates the schema.
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{}
	if cfg.Environment == "production" {
		gormConfig.Logger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.School{},
		&models.User{},
		&models.AcademicYear{},
		&models.Department{},
		&models.Class{},
		&models.PersonnelRecord{},
		&models.PersonnelEvaluation{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Partial unique indexes that GORM tags cannot express. They are the
	// database-level backstop for two invariants the services also enforce:
	// at most one active academic year per school, and at most one root
	// board account per school.
	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_academic_years_one_active
			ON academic_years (school_id)
			WHERE status = 'active' AND deleted_at IS NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_one_root
			ON users (school_id)
			WHERE role = 'ban_giam_hieu' AND is_root AND deleted_at IS NULL`,
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
