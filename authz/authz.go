// Package authz decides whether a caller may act on a record or a set of
// records. Every predicate is evaluated before the handler touches the store.
package authz

import (
	"github.com/issue-tracker/models"
)

// Permission names an action on a record family
type Permission string

const (
	ChangeProject Permission = "change_project"
	DeleteProject Permission = "delete_project"
	ChangeIssue   Permission = "change_issue"
	DeleteIssue   Permission = "delete_issue"
	ManageProduct Permission = "manage_product"
)

var rolePermissions = map[models.Role]map[Permission]bool{
	models.RoleModerator: {
		ChangeProject: true,
		DeleteProject: true,
		ChangeIssue:   true,
		DeleteIssue:   true,
	},
}

// HasPerm reports whether caller's role grants perm. Admins hold every permission.
func HasPerm(caller *models.User, perm Permission) bool {
	if caller == nil {
		return false
	}
	if caller.Role == models.RoleAdmin {
		return true
	}
	return rolePermissions[caller.Role][perm]
}

// IsPrivileged reports whether caller is staff
func IsPrivileged(caller *models.User) bool {
	return caller != nil && (caller.Role == models.RoleAdmin || caller.Role == models.RoleModerator)
}

// CanChangeProject requires the change_project permission
func CanChangeProject(caller *models.User) bool {
	return HasPerm(caller, ChangeProject)
}

// CanDeleteProject allows the permission holder or the project's author
func CanDeleteProject(caller *models.User, project models.Project) bool {
	if caller == nil {
		return false
	}
	return HasPerm(caller, DeleteProject) || project.AuthoredBy(caller.ID)
}

// CanChangeIssue requires the change_issue permission
func CanChangeIssue(caller *models.User) bool {
	return HasPerm(caller, ChangeIssue)
}

// CanDeleteIssue allows the permission holder or the issue's author
func CanDeleteIssue(caller *models.User, issue models.Issue) bool {
	if caller == nil {
		return false
	}
	return HasPerm(caller, DeleteIssue) || issue.AuthoredBy(caller.ID)
}

// CanMassAct allows staff, or a caller who authored every targeted project.
// One foreign project denies the whole set.
func CanMassAct(caller *models.User, projects []models.Project) bool {
	if caller == nil {
		return false
	}
	if IsPrivileged(caller) {
		return true
	}
	for _, p := range projects {
		if !p.AuthoredBy(caller.ID) {
			return false
		}
	}
	return true
}

// CanManageProducts gates stocking the shop
func CanManageProducts(caller *models.User) bool {
	return HasPerm(caller, ManageProduct)
}
