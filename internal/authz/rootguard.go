package authz

import (
	"github.com/SAP-F-2025/school-service/internal/models"
)

// UserChanges describes the sensitive fields an update payload touches,
// extracted by the service layer before the guard runs.
type UserChanges struct {
	RoleChanged bool
	NewRole     models.UserRole
	RootChanged bool
	NewIsRoot   bool
}

// CheckUserCreate guards creation of privileged accounts. rootExists tells
// whether the target school already holds a root ban_giam_hieu user; like
// the active-year guard, the partial unique index is authoritative and this
// produces the early Conflict.
func CheckUserCreate(actor Principal, role models.UserRole, isRoot bool, rootExists bool) error {
	if role == models.RoleAdmin && !actor.IsAdmin() {
		return forbidden("only a system admin can create system admin accounts")
	}
	if !isRoot {
		return nil
	}
	if role != models.RoleBanGiamHieu {
		return forbidden("root flag is reserved for the %s role", models.RoleBanGiamHieu)
	}
	if !actor.IsRoot && !actor.IsAdmin() {
		return forbidden("only a root principal or system admin can create a root account")
	}
	if rootExists {
		return conflict("school already has a root account")
	}
	return nil
}

// CheckUserUpdate guards mutation of another (or one's own) user record.
func CheckUserUpdate(actor Principal, target *models.User, changes UserChanges, rootExists bool) error {
	if target.Role == models.RoleAdmin {
		return forbidden("system admin accounts cannot be updated")
	}

	self := actor.ID == target.ID

	// A root record may only be touched by itself or by a system admin.
	if target.IsRoot && !self && !actor.IsAdmin() {
		return forbidden("only the root account itself or a system admin can update a root account")
	}

	if self && !actor.IsAdmin() {
		if changes.RoleChanged && changes.NewRole != target.Role {
			return forbidden("cannot change own role")
		}
		if changes.RootChanged && changes.NewIsRoot != target.IsRoot {
			if target.IsRoot {
				return forbidden("root account cannot clear its own root flag")
			}
			return forbidden("cannot set own root flag")
		}
	}

	// Promotion of another user to root.
	if changes.RootChanged && changes.NewIsRoot && !target.IsRoot {
		role := target.Role
		if changes.RoleChanged {
			role = changes.NewRole
		}
		if role != models.RoleBanGiamHieu {
			return forbidden("root flag is reserved for the %s role", models.RoleBanGiamHieu)
		}
		if !actor.IsRoot && !actor.IsAdmin() {
			return forbidden("only a root principal or system admin can promote to root")
		}
		if rootExists {
			return conflict("school already has a root account")
		}
	}

	return nil
}

// CheckUserDelete guards deletion of a user record.
func CheckUserDelete(actor Principal, target *models.User) error {
	if target.Role == models.RoleAdmin {
		return forbidden("system admin accounts cannot be deleted")
	}
	if target.IsRoot {
		if actor.ID == target.ID {
			return forbidden("root account cannot delete itself")
		}
		if !actor.IsAdmin() {
			return forbidden("only a system admin can delete a root account")
		}
	}
	return nil
}
