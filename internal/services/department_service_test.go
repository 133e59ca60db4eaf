package services

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/school-service/internal/events"
	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
	"github.com/SAP-F-2025/school-service/internal/validator"
)

func newDepartmentService(repo repositories.Repository, publisher events.EventPublisher) DepartmentService {
	return NewDepartmentService(repo, testLogger(), validator.New(), publisher)
}

func TestDepartmentCreate_MarksYearConfigured(t *testing.T) {
	year := &models.AcademicYear{ID: 11, SchoolID: "school-a", Status: models.YearActive, IsConfig: false}
	var configured []uint
	repo := &mockRepository{
		year: &mockYearRepo{
			getActive: func(schoolID string) (*models.AcademicYear, error) { return year, nil },
			markConfigured: func(id uint) error {
				configured = append(configured, id)
				return nil
			},
		},
		department: &mockDepartmentRepo{
			existsByCode: func(uint, string) (bool, error) { return false, nil },
			create: func(dept *models.Department) error {
				dept.ID = 1
				return nil
			},
		},
	}
	publisher := events.NewMockEventPublisher(testLogger())
	svc := newDepartmentService(repo, publisher)

	dept, err := svc.Create(context.Background(), "", &CreateDepartmentRequest{Name: "To Toan", Code: "TOAN"}, boardActor("school-a"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if dept.AcademicYearID != 11 {
		t.Errorf("department must attach to the active year, got %d", dept.AcademicYearID)
	}
	if len(configured) != 1 || configured[0] != 11 {
		t.Fatalf("year was not marked configured, calls: %v", configured)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 2 {
		t.Fatalf("expected created and configured events, got %+v", published)
	}
	if published[0].Type != events.EventDepartmentCreated || published[1].Type != events.EventYearConfigured {
		t.Fatalf("unexpected event order: %s, %s", published[0].Type, published[1].Type)
	}
}

func TestDepartmentCreate_ConfiguredYearStillAcceptsDependents(t *testing.T) {
	year := &models.AcademicYear{ID: 12, SchoolID: "school-a", Status: models.YearActive, IsConfig: true}
	repo := &mockRepository{
		year: &mockYearRepo{
			getActive:      func(schoolID string) (*models.AcademicYear, error) { return year, nil },
			markConfigured: func(id uint) error { return nil },
		},
		department: &mockDepartmentRepo{
			existsByCode: func(uint, string) (bool, error) { return false, nil },
			create:       func(dept *models.Department) error { return nil },
		},
	}
	publisher := events.NewMockEventPublisher(testLogger())
	svc := newDepartmentService(repo, publisher)

	if _, err := svc.Create(context.Background(), "", &CreateDepartmentRequest{Name: "To Van", Code: "VAN"}, boardActor("school-a")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	// The year was already configured, so no configured event fires again.
	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventDepartmentCreated {
		t.Fatalf("expected only %s, got %+v", events.EventDepartmentCreated, published)
	}
}

func TestDepartmentCreate_NoActiveYearRejected(t *testing.T) {
	repo := &mockRepository{
		year: &mockYearRepo{getActive: func(schoolID string) (*models.AcademicYear, error) {
			return nil, notFound()
		}},
	}
	svc := newDepartmentService(repo, events.NewMockEventPublisher(testLogger()))

	_, err := svc.Create(context.Background(), "", &CreateDepartmentRequest{Name: "To Toan", Code: "TOAN"}, boardActor("school-a"))
	wantErrIs(t, err, ErrNoActiveYear)
}

func TestDepartmentCreate_DuplicateCodeRejected(t *testing.T) {
	year := &models.AcademicYear{ID: 13, SchoolID: "school-a", Status: models.YearActive}
	repo := &mockRepository{
		year: &mockYearRepo{getActive: func(schoolID string) (*models.AcademicYear, error) { return year, nil }},
		department: &mockDepartmentRepo{
			existsByCode: func(yearID uint, code string) (bool, error) { return true, nil },
		},
	}
	svc := newDepartmentService(repo, events.NewMockEventPublisher(testLogger()))

	_, err := svc.Create(context.Background(), "", &CreateDepartmentRequest{Name: "To Toan", Code: "TOAN"}, boardActor("school-a"))
	wantErrIs(t, err, ErrDepartmentCodeExists)
}

func TestDepartmentUpdate_RetiredYearReadOnly(t *testing.T) {
	dept := &models.Department{ID: 2, SchoolID: "school-a", AcademicYearID: 14, Name: "To Toan", Code: "TOAN"}
	repo := &mockRepository{
		department: &mockDepartmentRepo{getByID: func(id uint) (*models.Department, error) { return dept, nil }},
		year: &mockYearRepo{getByID: func(id uint) (*models.AcademicYear, error) {
			return &models.AcademicYear{ID: id, SchoolID: "school-a", Status: models.YearInactive, IsConfig: true}, nil
		}},
	}
	svc := newDepartmentService(repo, events.NewMockEventPublisher(testLogger()))

	name := "To Tin"
	_, err := svc.Update(context.Background(), 2, &UpdateDepartmentRequest{Name: &name}, boardActor("school-a"))
	wantErrIs(t, err, ErrForbidden)
}
