package authz

import (
	"errors"
	"testing"

	"github.com/SAP-F-2025/school-service/internal/models"
)

func TestEvaluator_Evaluate(t *testing.T) {
	e := NewEvaluator(NewRegistry())

	tests := []struct {
		name     string
		role     models.UserRole
		required []Permission
		wantErr  bool
	}{
		{name: "empty required list always allows", role: models.RolePhuHuynh, required: nil},
		{name: "empty required list allows unknown role", role: models.UserRole("ghost"), required: nil},
		{name: "single match allows", role: models.RoleGiaoVien, required: []Permission{PermViewClass}},
		{name: "any-of semantics, one of many matches", role: models.RoleGiaoVien, required: []Permission{PermDeleteUser, PermViewClass}},
		{name: "no intersection denies", role: models.RoleGiaoVien, required: []Permission{PermDeleteUser}, wantErr: true},
		{name: "unknown role denies", role: models.UserRole("ghost"), required: []Permission{PermViewDashboard}, wantErr: true},
		{name: "parent only sees dashboard", role: models.RolePhuHuynh, required: []Permission{PermViewDashboard}},
		{name: "parent cannot view users", role: models.RolePhuHuynh, required: []Permission{PermViewUser}, wantErr: true},
		{name: "admin namespace is disjoint from school permissions", role: models.RoleAdmin, required: []Permission{PermViewUser}, wantErr: true},
		{name: "school role never gets admin permissions", role: models.RoleBanGiamHieu, required: []Permission{PermAdminManageSchools}, wantErr: true},
		{name: "admin permission allows admin", role: models.RoleAdmin, required: []Permission{PermAdminManageSchools}},
		{name: "board has full school surface", role: models.RoleBanGiamHieu, required: []Permission{PermDeleteAcademicYear}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.Evaluate(tt.role, tt.required...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Evaluate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrForbidden) {
				t.Errorf("Evaluate() denial should wrap ErrForbidden, got %v", err)
			}
		})
	}
}

func TestEvaluator_EvaluateOrOwner(t *testing.T) {
	e := NewEvaluator(NewRegistry())

	tests := []struct {
		name        string
		role        models.UserRole
		required    []Permission
		principalID string
		targetID    string
		wantErr     bool
	}{
		{name: "self access short-circuits", role: models.RolePhuHuynh, required: []Permission{PermUpdateUser}, principalID: "u1", targetID: "u1"},
		{name: "non-self falls back to table and denies", role: models.RolePhuHuynh, required: []Permission{PermUpdateUser}, principalID: "u1", targetID: "u2", wantErr: true},
		{name: "non-self falls back to table and allows", role: models.RoleBanGiamHieu, required: []Permission{PermUpdateUser}, principalID: "u1", targetID: "u2"},
		{name: "empty principal never matches", role: models.RolePhuHuynh, required: []Permission{PermUpdateUser}, principalID: "", targetID: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.EvaluateOrOwner(tt.role, tt.required, tt.principalID, tt.targetID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("EvaluateOrOwner() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHasAny(t *testing.T) {
	granted := NewPermissionSet(PermViewClass, PermViewDashboard)

	if !HasAny(nil, granted) {
		t.Error("empty required list must pass")
	}
	if !HasAny([]Permission{PermViewClass}, granted) {
		t.Error("direct match must pass")
	}
	if HasAny([]Permission{PermDeleteClass}, granted) {
		t.Error("disjoint sets must fail")
	}
	if HasAny([]Permission{PermDeleteClass}, nil) {
		t.Error("empty grant set must fail")
	}
}
