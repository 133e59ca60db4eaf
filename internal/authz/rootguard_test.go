package authz

import (
	"errors"
	"testing"

	"github.com/SAP-F-2025/school-service/internal/models"
)

func strptr(s string) *string { return &s }

func rootPrincipal(id, school string) Principal {
	return Principal{ID: id, Role: models.RoleBanGiamHieu, SchoolID: strptr(school), IsRoot: true}
}

func boardPrincipal(id, school string) Principal {
	return Principal{ID: id, Role: models.RoleBanGiamHieu, SchoolID: strptr(school)}
}

func adminPrincipal(id string) Principal {
	return Principal{ID: id, Role: models.RoleAdmin}
}

func TestCheckUserCreate(t *testing.T) {
	tests := []struct {
		name       string
		actor      Principal
		role       models.UserRole
		isRoot     bool
		rootExists bool
		wantErr    error // nil, ErrForbidden or ErrConflict
	}{
		{name: "plain teacher create passes the guard", actor: boardPrincipal("u1", "S1"), role: models.RoleGiaoVien},
		{name: "non-root creating root is forbidden", actor: boardPrincipal("u1", "S1"), role: models.RoleBanGiamHieu, isRoot: true, wantErr: ErrForbidden},
		{name: "root creating root passes when school has none", actor: rootPrincipal("u1", "S1"), role: models.RoleBanGiamHieu, isRoot: true},
		{name: "admin creating root passes when school has none", actor: adminPrincipal("a1"), role: models.RoleBanGiamHieu, isRoot: true},
		{name: "second root conflicts", actor: rootPrincipal("u1", "S1"), role: models.RoleBanGiamHieu, isRoot: true, rootExists: true, wantErr: ErrConflict},
		{name: "root flag outside top role is forbidden", actor: adminPrincipal("a1"), role: models.RoleGiaoVien, isRoot: true, wantErr: ErrForbidden},
		{name: "school role creating admin is forbidden", actor: rootPrincipal("u1", "S1"), role: models.RoleAdmin, wantErr: ErrForbidden},
		{name: "admin creating admin passes", actor: adminPrincipal("a1"), role: models.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckUserCreate(tt.actor, tt.role, tt.isRoot, tt.rootExists)
			checkGuardErr(t, err, tt.wantErr)
		})
	}
}

func TestCheckUserUpdate(t *testing.T) {
	rootUser := &models.User{ID: "r1", Role: models.RoleBanGiamHieu, SchoolID: strptr("S1"), IsRoot: true}
	boardUser := &models.User{ID: "b1", Role: models.RoleBanGiamHieu, SchoolID: strptr("S1")}
	teacher := &models.User{ID: "t1", Role: models.RoleGiaoVien, SchoolID: strptr("S1")}
	adminUser := &models.User{ID: "a9", Role: models.RoleAdmin}

	tests := []struct {
		name       string
		actor      Principal
		target     *models.User
		changes    UserChanges
		rootExists bool
		wantErr    error
	}{
		{name: "admin target is never updatable", actor: adminPrincipal("a1"), target: adminUser, wantErr: ErrForbidden},
		{name: "non-root touching a root record is forbidden", actor: boardPrincipal("b1", "S1"), target: rootUser, wantErr: ErrForbidden},
		{name: "root self-edit of profile passes", actor: rootPrincipal("r1", "S1"), target: rootUser},
		{name: "admin editing a root passes", actor: adminPrincipal("a1"), target: rootUser},
		{name: "root cannot clear its own root flag", actor: rootPrincipal("r1", "S1"), target: rootUser, changes: UserChanges{RootChanged: true, NewIsRoot: false}, wantErr: ErrForbidden},
		{name: "root cannot change its own role", actor: rootPrincipal("r1", "S1"), target: rootUser, changes: UserChanges{RoleChanged: true, NewRole: models.RoleGiaoVien}, wantErr: ErrForbidden},
		{name: "non-root cannot set its own root flag", actor: boardPrincipal("b1", "S1"), target: boardUser, changes: UserChanges{RootChanged: true, NewIsRoot: true}, wantErr: ErrForbidden},
		{name: "non-root cannot change its own role", actor: Principal{ID: "t1", Role: models.RoleGiaoVien, SchoolID: strptr("S1")}, target: teacher, changes: UserChanges{RoleChanged: true, NewRole: models.RoleBanGiamHieu}, wantErr: ErrForbidden},
		{name: "root promoting a board member passes when no root exists elsewhere", actor: rootPrincipal("r1", "S1"), target: boardUser, changes: UserChanges{RootChanged: true, NewIsRoot: true}},
		{name: "promotion conflicts when school already has a root", actor: adminPrincipal("a1"), target: boardUser, changes: UserChanges{RootChanged: true, NewIsRoot: true}, rootExists: true, wantErr: ErrConflict},
		{name: "promotion outside the top role is forbidden", actor: adminPrincipal("a1"), target: teacher, changes: UserChanges{RootChanged: true, NewIsRoot: true}, wantErr: ErrForbidden},
		{name: "non-root promoting someone is forbidden", actor: boardPrincipal("b2", "S1"), target: boardUser, changes: UserChanges{RootChanged: true, NewIsRoot: true}, wantErr: ErrForbidden},
		{name: "plain profile edit of a teacher passes", actor: boardPrincipal("b1", "S1"), target: teacher},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckUserUpdate(tt.actor, tt.target, tt.changes, tt.rootExists)
			checkGuardErr(t, err, tt.wantErr)
		})
	}
}

func TestCheckUserDelete(t *testing.T) {
	rootUser := &models.User{ID: "r1", Role: models.RoleBanGiamHieu, SchoolID: strptr("S1"), IsRoot: true}
	teacher := &models.User{ID: "t1", Role: models.RoleGiaoVien, SchoolID: strptr("S1")}
	adminUser := &models.User{ID: "a9", Role: models.RoleAdmin}

	tests := []struct {
		name    string
		actor   Principal
		target  *models.User
		wantErr error
	}{
		{name: "admin target is never deletable", actor: adminPrincipal("a1"), target: adminUser, wantErr: ErrForbidden},
		{name: "root cannot delete itself", actor: rootPrincipal("r1", "S1"), target: rootUser, wantErr: ErrForbidden},
		{name: "only admin deletes a root", actor: boardPrincipal("b1", "S1"), target: rootUser, wantErr: ErrForbidden},
		{name: "admin deletes a root", actor: adminPrincipal("a1"), target: rootUser},
		{name: "board deletes a teacher", actor: boardPrincipal("b1", "S1"), target: teacher},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckUserDelete(tt.actor, tt.target)
			checkGuardErr(t, err, tt.wantErr)
		})
	}
}

func checkGuardErr(t *testing.T, err, want error) {
	t.Helper()
	if want == nil {
		if err != nil {
			t.Fatalf("expected allow, got %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected denial wrapping %v, got allow", want)
	}
	if !errors.Is(err, want) {
		t.Fatalf("expected denial wrapping %v, got %v", want, err)
	}
}
