package services

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/school-service/internal/authz"
	"github.com/SAP-F-2025/school-service/internal/events"
	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
	"github.com/SAP-F-2025/school-service/internal/validator"
)

func newUserService(repo repositories.Repository, publisher events.EventPublisher) UserService {
	return NewUserService(repo, testLogger(), validator.New(), authz.NewRegistry(), publisher)
}

func validCreateReq() *CreateUserRequest {
	return &CreateUserRequest{
		ID:       "user-9",
		FullName: "Nguyen Van A",
		Email:    "a@example.com",
		Role:     models.RoleGiaoVien,
	}
}

func TestUserCreate_StampsActorSchool(t *testing.T) {
	var created *models.User
	repo := &mockRepository{
		school: &mockSchoolRepo{getByID: func(id string) (*models.School, error) {
			return &models.School{ID: id}, nil
		}},
		user: &mockUserRepo{
			existsByEmail: func(string) (bool, error) { return false, nil },
			create: func(user *models.User) error {
				created = user
				return nil
			},
		},
	}
	publisher := events.NewMockEventPublisher(testLogger())
	svc := newUserService(repo, publisher)

	// The school id argument is deliberately a foreign school; a scoped
	// actor must still land the user in its own school.
	_, err := svc.Create(context.Background(), "", validCreateReq(), boardActor("school-a"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.SchoolID == nil || *created.SchoolID != "school-a" {
		t.Fatalf("user must be stamped with the actor school, got %v", created.SchoolID)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventUserCreated {
		t.Fatalf("expected one %s event, got %+v", events.EventUserCreated, published)
	}
}

func TestUserCreate_ForeignSchoolRejected(t *testing.T) {
	svc := newUserService(&mockRepository{}, events.NewMockEventPublisher(testLogger()))

	_, err := svc.Create(context.Background(), "school-b", validCreateReq(), boardActor("school-a"))
	wantErrIs(t, err, ErrForbidden)
}

func TestUserCreate_SecondRootRejected(t *testing.T) {
	repo := &mockRepository{
		user: &mockUserRepo{
			hasRoot: func(schoolID, exclude string) (bool, error) { return true, nil },
		},
	}
	svc := newUserService(repo, events.NewMockEventPublisher(testLogger()))

	req := validCreateReq()
	req.Role = models.RoleBanGiamHieu
	req.IsRoot = true

	_, err := svc.Create(context.Background(), "", req, rootActor("school-a"))
	wantErrIs(t, err, ErrConflict)
}

func TestUserCreate_RootRequiresBoardRole(t *testing.T) {
	svc := newUserService(&mockRepository{
		user: &mockUserRepo{hasRoot: func(string, string) (bool, error) { return false, nil }},
	}, events.NewMockEventPublisher(testLogger()))

	req := validCreateReq()
	req.IsRoot = true // role stays giao_vien

	_, err := svc.Create(context.Background(), "", req, rootActor("school-a"))
	wantErrIs(t, err, ErrForbidden)
}

func TestUserUpdate_RootCannotDemoteSelf(t *testing.T) {
	root := rootActor("school-a")
	target := &models.User{ID: root.ID, Role: models.RoleBanGiamHieu, SchoolID: strptr("school-a"), IsRoot: true}
	repo := &mockRepository{
		user: &mockUserRepo{getByID: func(id string) (*models.User, error) { return target, nil }},
	}
	svc := newUserService(repo, events.NewMockEventPublisher(testLogger()))

	isRoot := false
	_, err := svc.Update(context.Background(), root.ID, &UpdateUserRequest{IsRoot: &isRoot}, root)
	wantErrIs(t, err, ErrForbidden)
}

func TestUserUpdate_SelfRoleChangeRejected(t *testing.T) {
	actor := boardActor("school-a")
	target := &models.User{ID: actor.ID, Role: models.RoleBanGiamHieu, SchoolID: strptr("school-a")}
	repo := &mockRepository{
		user: &mockUserRepo{getByID: func(id string) (*models.User, error) { return target, nil }},
	}
	svc := newUserService(repo, events.NewMockEventPublisher(testLogger()))

	role := models.RoleGiaoVien
	_, err := svc.Update(context.Background(), actor.ID, &UpdateUserRequest{Role: &role}, actor)
	wantErrIs(t, err, ErrForbidden)
}

func TestUserUpdate_PromoteSecondRootConflicts(t *testing.T) {
	target := &models.User{ID: "user-2", Role: models.RoleBanGiamHieu, SchoolID: strptr("school-a")}
	repo := &mockRepository{
		user: &mockUserRepo{
			getByID: func(id string) (*models.User, error) { return target, nil },
			hasRoot: func(schoolID, exclude string) (bool, error) { return true, nil },
		},
	}
	svc := newUserService(repo, events.NewMockEventPublisher(testLogger()))

	isRoot := true
	_, err := svc.Update(context.Background(), "user-2", &UpdateUserRequest{IsRoot: &isRoot}, rootActor("school-a"))
	wantErrIs(t, err, ErrConflict)
}

func TestUserDelete_RootRequiresAdmin(t *testing.T) {
	target := &models.User{ID: "root-2", Role: models.RoleBanGiamHieu, SchoolID: strptr("school-a"), IsRoot: true}
	deleted := false
	repo := &mockRepository{
		user: &mockUserRepo{
			getByID: func(id string) (*models.User, error) { return target, nil },
			delete: func(id string) error {
				deleted = true
				return nil
			},
		},
	}
	publisher := events.NewMockEventPublisher(testLogger())
	svc := newUserService(repo, publisher)

	err := svc.Delete(context.Background(), "root-2", boardActor("school-a"))
	wantErrIs(t, err, ErrForbidden)
	if deleted {
		t.Fatal("root account must not be deleted by a school principal")
	}

	if err := svc.Delete(context.Background(), "root-2", adminActor()); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if !deleted {
		t.Fatal("admin delete did not reach the repository")
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventUserDeleted {
		t.Fatalf("expected one %s event, got %+v", events.EventUserDeleted, published)
	}
}

func TestUserDelete_AdminTargetUntouchable(t *testing.T) {
	target := &models.User{ID: "admin-2", Role: models.RoleAdmin}
	repo := &mockRepository{
		user: &mockUserRepo{getByID: func(id string) (*models.User, error) { return target, nil }},
	}
	svc := newUserService(repo, events.NewMockEventPublisher(testLogger()))

	err := svc.Delete(context.Background(), "admin-2", adminActor())
	wantErrIs(t, err, ErrForbidden)
}

func TestUserList_ScopedToActorSchool(t *testing.T) {
	var gotFilters repositories.UserFilters
	repo := &mockRepository{
		user: &mockUserRepo{list: func(filters repositories.UserFilters) ([]*models.User, int64, error) {
			gotFilters = filters
			return nil, 0, nil
		}},
	}
	svc := newUserService(repo, events.NewMockEventPublisher(testLogger()))

	other := "school-b"
	_, err := svc.List(context.Background(), repositories.UserFilters{SchoolID: &other}, boardActor("school-a"))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if gotFilters.SchoolID == nil || *gotFilters.SchoolID != "school-a" {
		t.Fatalf("list filter must be forced to the actor school, got %v", gotFilters.SchoolID)
	}
}

func TestUserGetByID_SelfBypassesSchoolCheck(t *testing.T) {
	actor := boardActor("school-a")
	target := &models.User{ID: actor.ID, Role: models.RoleBanGiamHieu, SchoolID: strptr("school-a")}
	repo := &mockRepository{
		user: &mockUserRepo{getByID: func(id string) (*models.User, error) { return target, nil }},
	}
	svc := newUserService(repo, events.NewMockEventPublisher(testLogger()))

	resp, err := svc.GetByID(context.Background(), actor.ID, actor)
	if err != nil {
		t.Fatalf("self read failed: %v", err)
	}
	if len(resp.Permissions) == 0 {
		t.Error("response should carry the role's permissions")
	}
}
