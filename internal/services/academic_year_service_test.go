package services

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/school-service/internal/events"
	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
	"github.com/SAP-F-2025/school-service/internal/validator"
)

func newYearService(repo repositories.Repository, publisher events.EventPublisher) AcademicYearService {
	return NewAcademicYearService(repo, testLogger(), validator.New(), publisher)
}

func TestYearCreate_RejectsSecondActive(t *testing.T) {
	repo := &mockRepository{
		school: &mockSchoolRepo{getByID: func(id string) (*models.School, error) {
			return &models.School{ID: id}, nil
		}},
		year: &mockYearRepo{hasActive: func(schoolID string, excludeID uint) (bool, error) {
			return true, nil
		}},
	}
	svc := newYearService(repo, events.NewMockEventPublisher(testLogger()))

	_, err := svc.Create(context.Background(), "", &CreateYearRequest{FromYear: 2026, ToYear: 2027}, boardActor("school-a"))
	wantErrIs(t, err, ErrActiveYearExists)
	wantErrIs(t, err, ErrConflict)
}

func TestYearCreate_SpanMustBeConsecutive(t *testing.T) {
	svc := newYearService(&mockRepository{}, events.NewMockEventPublisher(testLogger()))

	_, err := svc.Create(context.Background(), "", &CreateYearRequest{FromYear: 2026, ToYear: 2028}, boardActor("school-a"))
	if err == nil {
		t.Fatal("expected validation error for non-consecutive span")
	}
	if _, ok := err.(validator.ValidationErrors); !ok {
		t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
	}
}

func TestYearCreate_PublishesActivatedEvent(t *testing.T) {
	var created *models.AcademicYear
	repo := &mockRepository{
		school: &mockSchoolRepo{getByID: func(id string) (*models.School, error) {
			return &models.School{ID: id}, nil
		}},
		year: &mockYearRepo{
			hasActive:  func(string, uint) (bool, error) { return false, nil },
			existsSpan: func(string, int) (bool, error) { return false, nil },
			create: func(year *models.AcademicYear) error {
				year.ID = 7
				created = year
				return nil
			},
		},
	}
	publisher := events.NewMockEventPublisher(testLogger())
	svc := newYearService(repo, publisher)

	year, err := svc.Create(context.Background(), "", &CreateYearRequest{FromYear: 2026, ToYear: 2027}, boardActor("school-a"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if year.Status != models.YearActive {
		t.Errorf("new year should be active, got %s", year.Status)
	}
	if year.IsConfig {
		t.Error("new year should not be configured")
	}
	if created.SchoolID != "school-a" {
		t.Errorf("year should be stamped with the actor school, got %q", created.SchoolID)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventYearActivated {
		t.Fatalf("expected one %s event, got %+v", events.EventYearActivated, published)
	}
}

func TestYearUpdate_ConfiguredYearRejectsStructuralEdit(t *testing.T) {
	year := &models.AcademicYear{ID: 3, SchoolID: "school-a", FromYear: 2025, ToYear: 2026, Status: models.YearActive, IsConfig: true}
	repo := &mockRepository{
		year: &mockYearRepo{getByID: func(id uint) (*models.AcademicYear, error) { return year, nil }},
	}
	svc := newYearService(repo, events.NewMockEventPublisher(testLogger()))

	from, to := 2026, 2027
	_, err := svc.Update(context.Background(), 3, &UpdateYearRequest{FromYear: &from, ToYear: &to}, boardActor("school-a"))
	wantErrIs(t, err, ErrForbidden)
}

func TestYearUpdate_RetireConfiguredYear(t *testing.T) {
	year := &models.AcademicYear{ID: 3, SchoolID: "school-a", FromYear: 2025, ToYear: 2026, Status: models.YearActive, IsConfig: true}
	var saved *models.AcademicYear
	repo := &mockRepository{
		year: &mockYearRepo{
			getByID: func(id uint) (*models.AcademicYear, error) {
				copy := *year
				return &copy, nil
			},
			update: func(y *models.AcademicYear) error {
				saved = y
				return nil
			},
		},
	}
	publisher := events.NewMockEventPublisher(testLogger())
	svc := newYearService(repo, publisher)

	status := models.YearInactive
	resp, err := svc.Update(context.Background(), 3, &UpdateYearRequest{Status: &status}, boardActor("school-a"))
	if err != nil {
		t.Fatalf("retire failed: %v", err)
	}
	if saved == nil || saved.Status != models.YearInactive {
		t.Fatal("year was not persisted as inactive")
	}
	if resp.CanEdit || resp.CanDelete {
		t.Error("retired configured year must be read-only and undeletable")
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventYearRetired {
		t.Fatalf("expected one %s event, got %+v", events.EventYearRetired, published)
	}
}

func TestYearUpdate_MixedPayloadOnConfiguredYearRejected(t *testing.T) {
	year := &models.AcademicYear{ID: 3, SchoolID: "school-a", FromYear: 2025, ToYear: 2026, Status: models.YearActive, IsConfig: true}
	repo := &mockRepository{
		year: &mockYearRepo{getByID: func(id uint) (*models.AcademicYear, error) { return year, nil }},
	}
	svc := newYearService(repo, events.NewMockEventPublisher(testLogger()))

	// A status flip bundled with a structural edit must fail atomically:
	// the configured year accepts the flip alone but never the edit.
	from, to := 2026, 2027
	status := models.YearInactive
	_, err := svc.Update(context.Background(), 3, &UpdateYearRequest{FromYear: &from, ToYear: &to, Status: &status}, boardActor("school-a"))
	wantErrIs(t, err, ErrForbidden)
}

func TestYearActivate_ConflictsWithOtherActive(t *testing.T) {
	year := &models.AcademicYear{ID: 4, SchoolID: "school-a", FromYear: 2024, ToYear: 2025, Status: models.YearInactive, IsConfig: false}
	repo := &mockRepository{
		year: &mockYearRepo{
			getByID:   func(id uint) (*models.AcademicYear, error) { return year, nil },
			hasActive: func(schoolID string, excludeID uint) (bool, error) { return true, nil },
		},
	}
	svc := newYearService(repo, events.NewMockEventPublisher(testLogger()))

	err := svc.Activate(context.Background(), 4, boardActor("school-a"))
	wantErrIs(t, err, ErrConflict)
}

func TestYearDelete_ActiveRejected(t *testing.T) {
	year := &models.AcademicYear{ID: 5, SchoolID: "school-a", Status: models.YearActive, IsConfig: false}
	repo := &mockRepository{
		year: &mockYearRepo{getByID: func(id uint) (*models.AcademicYear, error) { return year, nil }},
	}
	svc := newYearService(repo, events.NewMockEventPublisher(testLogger()))

	err := svc.Delete(context.Background(), 5, boardActor("school-a"))
	wantErrIs(t, err, ErrForbidden)
}

func TestYearDelete_InactiveUnconfiguredAllowed(t *testing.T) {
	year := &models.AcademicYear{ID: 6, SchoolID: "school-a", Status: models.YearInactive, IsConfig: false}
	deleted := false
	repo := &mockRepository{
		year: &mockYearRepo{
			getByID: func(id uint) (*models.AcademicYear, error) { return year, nil },
			delete: func(id uint) error {
				deleted = true
				return nil
			},
		},
	}
	svc := newYearService(repo, events.NewMockEventPublisher(testLogger()))

	if err := svc.Delete(context.Background(), 6, boardActor("school-a")); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !deleted {
		t.Error("repository delete was not called")
	}
}

func TestYearGetByID_OtherSchoolRejected(t *testing.T) {
	year := &models.AcademicYear{ID: 8, SchoolID: "school-b", Status: models.YearActive}
	repo := &mockRepository{
		year: &mockYearRepo{getByID: func(id uint) (*models.AcademicYear, error) { return year, nil }},
	}
	svc := newYearService(repo, events.NewMockEventPublisher(testLogger()))

	_, err := svc.GetByID(context.Background(), 8, boardActor("school-a"))
	wantErrIs(t, err, ErrForbidden)
}

func TestYearGetActive_NoneYieldsConflict(t *testing.T) {
	repo := &mockRepository{
		year: &mockYearRepo{getActive: func(schoolID string) (*models.AcademicYear, error) {
			return nil, notFound()
		}},
	}
	svc := newYearService(repo, events.NewMockEventPublisher(testLogger()))

	_, err := svc.GetActive(context.Background(), "", boardActor("school-a"))
	wantErrIs(t, err, ErrNoActiveYear)
}
