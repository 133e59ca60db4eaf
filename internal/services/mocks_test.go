package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/school-service/internal/authz"
	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
)

// mockRepository aggregates per-entity fakes. Unset sub-repos embed a nil
// interface, so an unexpected call fails the test loudly.
type mockRepository struct {
	school     repositories.SchoolRepository
	year       repositories.AcademicYearRepository
	department repositories.DepartmentRepository
	class      repositories.ClassRepository
	personnel  repositories.PersonnelRepository
	evaluation repositories.EvaluationRepository
	user       repositories.UserRepository
}

func (m *mockRepository) School() repositories.SchoolRepository             { return m.school }
func (m *mockRepository) AcademicYear() repositories.AcademicYearRepository { return m.year }
func (m *mockRepository) Department() repositories.DepartmentRepository     { return m.department }
func (m *mockRepository) Class() repositories.ClassRepository               { return m.class }
func (m *mockRepository) Personnel() repositories.PersonnelRepository       { return m.personnel }
func (m *mockRepository) Evaluation() repositories.EvaluationRepository     { return m.evaluation }
func (m *mockRepository) User() repositories.UserRepository                 { return m.user }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// Per-entity fakes override only what a test needs.

type mockYearRepo struct {
	repositories.AcademicYearRepository

	getByID        func(id uint) (*models.AcademicYear, error)
	getActive      func(schoolID string) (*models.AcademicYear, error)
	hasActive      func(schoolID string, excludeID uint) (bool, error)
	existsSpan     func(schoolID string, fromYear int) (bool, error)
	create         func(year *models.AcademicYear) error
	update         func(year *models.AcademicYear) error
	delete         func(id uint) error
	markConfigured func(id uint) error
}

func (m *mockYearRepo) GetByID(ctx context.Context, id uint) (*models.AcademicYear, error) {
	return m.getByID(id)
}
func (m *mockYearRepo) GetActive(ctx context.Context, schoolID string) (*models.AcademicYear, error) {
	return m.getActive(schoolID)
}
func (m *mockYearRepo) HasActive(ctx context.Context, schoolID string, excludeID uint) (bool, error) {
	return m.hasActive(schoolID, excludeID)
}
func (m *mockYearRepo) ExistsSpan(ctx context.Context, schoolID string, fromYear int) (bool, error) {
	return m.existsSpan(schoolID, fromYear)
}
func (m *mockYearRepo) Create(ctx context.Context, year *models.AcademicYear) error {
	return m.create(year)
}
func (m *mockYearRepo) Update(ctx context.Context, year *models.AcademicYear) error {
	return m.update(year)
}
func (m *mockYearRepo) Delete(ctx context.Context, id uint) error { return m.delete(id) }
func (m *mockYearRepo) MarkConfigured(ctx context.Context, id uint) error {
	return m.markConfigured(id)
}

type mockSchoolRepo struct {
	repositories.SchoolRepository

	getByID      func(id string) (*models.School, error)
	existsByCode func(code string) (bool, error)
	create       func(school *models.School) error
}

func (m *mockSchoolRepo) GetByID(ctx context.Context, id string) (*models.School, error) {
	return m.getByID(id)
}
func (m *mockSchoolRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return m.existsByCode(code)
}
func (m *mockSchoolRepo) Create(ctx context.Context, school *models.School) error {
	return m.create(school)
}

type mockUserRepo struct {
	repositories.UserRepository

	getByID       func(id string) (*models.User, error)
	create        func(user *models.User) error
	update        func(user *models.User) error
	delete        func(id string) error
	list          func(filters repositories.UserFilters) ([]*models.User, int64, error)
	existsByEmail func(email string) (bool, error)
	hasRoot       func(schoolID, excludeUserID string) (bool, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.getByID(id)
}
func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error { return m.create(user) }
func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error { return m.update(user) }
func (m *mockUserRepo) Delete(ctx context.Context, id string) error         { return m.delete(id) }
func (m *mockUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	return m.list(filters)
}
func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.existsByEmail(email)
}
func (m *mockUserRepo) HasRoot(ctx context.Context, schoolID, excludeUserID string) (bool, error) {
	return m.hasRoot(schoolID, excludeUserID)
}

type mockDepartmentRepo struct {
	repositories.DepartmentRepository

	create       func(dept *models.Department) error
	getByID      func(id uint) (*models.Department, error)
	existsByCode func(yearID uint, code string) (bool, error)
}

func (m *mockDepartmentRepo) Create(ctx context.Context, dept *models.Department) error {
	return m.create(dept)
}
func (m *mockDepartmentRepo) GetByID(ctx context.Context, id uint) (*models.Department, error) {
	return m.getByID(id)
}
func (m *mockDepartmentRepo) ExistsByCode(ctx context.Context, yearID uint, code string) (bool, error) {
	return m.existsByCode(yearID, code)
}

// Shared test fixtures

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func strptr(s string) *string { return &s }

func boardActor(schoolID string) *authz.Principal {
	return &authz.Principal{ID: "board-1", Role: models.RoleBanGiamHieu, SchoolID: strptr(schoolID), IsRoot: false}
}

func rootActor(schoolID string) *authz.Principal {
	return &authz.Principal{ID: "root-1", Role: models.RoleBanGiamHieu, SchoolID: strptr(schoolID), IsRoot: true}
}

func adminActor() *authz.Principal {
	return &authz.Principal{ID: "admin-1", Role: models.RoleAdmin}
}

func notFound() error { return gorm.ErrRecordNotFound }

func wantErrIs(t *testing.T, err, target error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected error %v, got %v", target, err)
	}
}
