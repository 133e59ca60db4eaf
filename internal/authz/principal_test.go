package authz

import (
	"errors"
	"testing"

	"github.com/SAP-F-2025/school-service/internal/models"
)

func TestScopeFor(t *testing.T) {
	t.Run("admin scope is unbounded", func(t *testing.T) {
		scope, err := ScopeFor(adminPrincipal("a1"))
		if err != nil {
			t.Fatalf("ScopeFor() error = %v", err)
		}
		if !scope.Unbounded() {
			t.Error("admin scope must be unbounded")
		}
		if scope.PrincipalID != "a1" {
			t.Errorf("PrincipalID = %q, want a1", scope.PrincipalID)
		}
	})

	t.Run("school role is pinned to its school", func(t *testing.T) {
		scope, err := ScopeFor(boardPrincipal("u1", "S1"))
		if err != nil {
			t.Fatalf("ScopeFor() error = %v", err)
		}
		if scope.Unbounded() || *scope.SchoolID != "S1" {
			t.Errorf("scope.SchoolID = %v, want S1", scope.SchoolID)
		}
	})

	t.Run("school role without school binding is denied", func(t *testing.T) {
		_, err := ScopeFor(Principal{ID: "u1", Role: models.RoleGiaoVien})
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestCheckSameSchool(t *testing.T) {
	tests := []struct {
		name    string
		actor   Principal
		target  *models.User
		wantErr bool
	}{
		{name: "same school passes", actor: boardPrincipal("u1", "S1"), target: &models.User{ID: "u2", Role: models.RoleGiaoVien, SchoolID: strptr("S1")}},
		{name: "other school is denied", actor: boardPrincipal("u1", "S1"), target: &models.User{ID: "u2", Role: models.RoleGiaoVien, SchoolID: strptr("S2")}, wantErr: true},
		{name: "admin target is untouchable", actor: adminPrincipal("a1"), target: &models.User{ID: "a2", Role: models.RoleAdmin}, wantErr: true},
		{name: "admin actor passes any school", actor: adminPrincipal("a1"), target: &models.User{ID: "u2", Role: models.RoleGiaoVien, SchoolID: strptr("S2")}},
		{name: "unbound target is denied", actor: boardPrincipal("u1", "S1"), target: &models.User{ID: "u2", Role: models.RoleGiaoVien}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSameSchool(tt.actor, tt.target)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckSameSchool() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckSchoolID(t *testing.T) {
	adminScope := Scope{PrincipalID: "a1", Role: models.RoleAdmin}
	schoolScope := Scope{PrincipalID: "u1", Role: models.RoleGiaoVien, SchoolID: strptr("S1")}

	if err := CheckSchoolID(adminScope, "S2"); err != nil {
		t.Errorf("unbounded scope must pass, got %v", err)
	}
	if err := CheckSchoolID(schoolScope, "S1"); err != nil {
		t.Errorf("own school must pass, got %v", err)
	}
	if err := CheckSchoolID(schoolScope, "S2"); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign school must be denied with ErrForbidden, got %v", err)
	}
}
