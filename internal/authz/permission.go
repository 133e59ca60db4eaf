package authz

import (
	"sort"

	"github.com/SAP-F-2025/school-service/internal/models"
)

// Permission is a single capability tag. Permissions are never combined at
// runtime; the role→permission mapping is a fixed table built once at
// process start (NewRegistry) and injected into the Evaluator.
type Permission string

// School-level permissions.
const (
	PermViewDashboard Permission = "view_dashboard"

	PermViewSchool   Permission = "view_school"
	PermUpdateSchool Permission = "update_school"

	PermViewAcademicYear   Permission = "view_academic_year"
	PermCreateAcademicYear Permission = "create_academic_year"
	PermUpdateAcademicYear Permission = "update_academic_year"
	PermDeleteAcademicYear Permission = "delete_academic_year"

	PermViewDepartment   Permission = "view_department"
	PermCreateDepartment Permission = "create_department"
	PermUpdateDepartment Permission = "update_department"
	PermDeleteDepartment Permission = "delete_department"

	PermViewClass   Permission = "view_class"
	PermCreateClass Permission = "create_class"
	PermUpdateClass Permission = "update_class"
	PermDeleteClass Permission = "delete_class"

	PermViewPersonnel   Permission = "view_personnel"
	PermCreatePersonnel Permission = "create_personnel"
	PermUpdatePersonnel Permission = "update_personnel"
	PermDeletePersonnel Permission = "delete_personnel"

	PermViewEvaluation   Permission = "view_evaluation"
	PermCreateEvaluation Permission = "create_evaluation"
	PermUpdateEvaluation Permission = "update_evaluation"
	PermDeleteEvaluation Permission = "delete_evaluation"

	PermViewUser   Permission = "view_user"
	PermCreateUser Permission = "create_user"
	PermUpdateUser Permission = "update_user"
	PermDeleteUser Permission = "delete_user"

	PermExportReport Permission = "export_report"
)

// System-admin permissions. The admin role is never checked against
// school-level permissions; its namespace is prefixed distinctly.
const (
	PermAdminManageSchools Permission = "admin_manage_schools"
	PermAdminManageUsers   Permission = "admin_manage_users"
	PermAdminViewSystem    Permission = "admin_view_system"
)

// PermissionSet is an immutable set of permissions.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from the given permissions.
func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// Contains reports whether p is in the set.
func (s PermissionSet) Contains(p Permission) bool {
	_, ok := s[p]
	return ok
}

// List returns the set's permissions in stable sorted order.
func (s PermissionSet) List() []Permission {
	out := make([]Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HasAny reports whether any required permission is granted. Empty required
// means no gate and always passes.
func HasAny(required []Permission, granted PermissionSet) bool {
	if len(required) == 0 {
		return true
	}
	for _, p := range required {
		if granted.Contains(p) {
			return true
		}
	}
	return false
}

// Registry maps each role to its permission set. It is built once and never
// mutated afterwards.
type Registry struct {
	roles map[models.UserRole]PermissionSet
}

// NewRegistry builds the default role→permission table.
func NewRegistry() *Registry {
	return &Registry{roles: map[models.UserRole]PermissionSet{
		models.RoleAdmin: NewPermissionSet(
			PermAdminManageSchools,
			PermAdminManageUsers,
			PermAdminViewSystem,
		),
		models.RoleBanGiamHieu: NewPermissionSet(
			PermViewDashboard,
			PermViewSchool, PermUpdateSchool,
			PermViewAcademicYear, PermCreateAcademicYear, PermUpdateAcademicYear, PermDeleteAcademicYear,
			PermViewDepartment, PermCreateDepartment, PermUpdateDepartment, PermDeleteDepartment,
			PermViewClass, PermCreateClass, PermUpdateClass, PermDeleteClass,
			PermViewPersonnel, PermCreatePersonnel, PermUpdatePersonnel, PermDeletePersonnel,
			PermViewEvaluation, PermCreateEvaluation, PermUpdateEvaluation, PermDeleteEvaluation,
			PermViewUser, PermCreateUser, PermUpdateUser, PermDeleteUser,
			PermExportReport,
		),
		models.RoleToTruong: NewPermissionSet(
			PermViewDashboard,
			PermViewSchool,
			PermViewAcademicYear,
			PermViewDepartment, PermUpdateDepartment,
			PermViewClass,
			PermViewPersonnel,
			PermViewEvaluation, PermCreateEvaluation, PermUpdateEvaluation,
			PermViewUser,
			PermExportReport,
		),
		models.RoleGiaoVien: NewPermissionSet(
			PermViewDashboard,
			PermViewSchool,
			PermViewAcademicYear,
			PermViewDepartment,
			PermViewClass,
			PermViewEvaluation,
		),
		models.RoleNhanVien: NewPermissionSet(
			PermViewDashboard,
			PermViewSchool,
			PermViewAcademicYear,
			PermViewPersonnel, PermCreatePersonnel, PermUpdatePersonnel,
			PermViewUser,
		),
		// Parents only see the dashboard. The child-record ownership rule
		// is enforced elsewhere, not by the permission table.
		models.RolePhuHuynh: NewPermissionSet(
			PermViewDashboard,
		),
	}}
}

// Grants returns the permission set of a role and whether the role is known.
func (r *Registry) Grants(role models.UserRole) (PermissionSet, bool) {
	set, ok := r.roles[role]
	return set, ok
}
