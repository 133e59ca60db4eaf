package services

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/school-service/internal/authz"
	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
)

// activeYearForAttach loads the school's active year and verifies it accepts
// new dependent entities. Called inside the creating transaction so the
// check and the insert see the same year state.
func activeYearForAttach(ctx context.Context, repo repositories.Repository, schoolID string) (*models.AcademicYear, error) {
	year, err := repo.AcademicYear().GetActive(ctx, schoolID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrNoActiveYear
		}
		return nil, fmt.Errorf("failed to get active academic year: %w", err)
	}
	if err := authz.CheckYearEvent(year.Status, year.IsConfig, authz.EventAttachDependent); err != nil {
		return nil, err
	}
	return year, nil
}

// requireYearActive gates writes to entities that live under an academic
// year: once the year is retired its dependents are read-only.
func requireYearActive(ctx context.Context, repo repositories.Repository, yearID uint) error {
	year, err := repo.AcademicYear().GetByID(ctx, yearID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrYearNotFound
		}
		return fmt.Errorf("failed to get academic year: %w", err)
	}
	if year.Status != models.YearActive {
		return fmt.Errorf("academic year is not active: %w", ErrForbidden)
	}
	return nil
}
