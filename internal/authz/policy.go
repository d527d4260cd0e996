// Package authz holds the authorization policy for migration items as a pure
// decision function. Handlers and services consult it before every mutating
// operation; it never touches the store.
package authz

import "github.com/noah-isme/data-migration-api/internal/models"

// Action enumerates the operations the policy decides on.
type Action string

const (
	ActionCreate           Action = "create"
	ActionEdit             Action = "edit"
	ActionDelete           Action = "delete"
	ActionApprove          Action = "approve"
	ActionMarkInProduction Action = "mark_in_production"
	ActionViewPDF          Action = "view_pdf"
)

// CanPerform reports whether the actor may perform the action on the item.
// Item may be nil for actions that are not item-scoped (create,
// mark_in_production).
//
//	create              any authenticated user
//	edit/delete         item under_review AND (actor is creator OR superadmin)
//	approve             approver AND item under_review
//	mark_in_production  superadmin
//	view_pdf            item approved (any authenticated user)
func CanPerform(action Action, actor *models.JWTClaims, item *models.MigrationItem) bool {
	if actor == nil {
		return false
	}

	switch action {
	case ActionCreate:
		return true
	case ActionEdit, ActionDelete:
		if item == nil || item.Status != models.StatusUnderReview {
			return false
		}
		return actor.UserID == item.CreatedBy || actor.Role == models.RoleSuperadmin
	case ActionApprove:
		return item != nil && actor.Role == models.RoleApprover && item.Status == models.StatusUnderReview
	case ActionMarkInProduction:
		return actor.Role == models.RoleSuperadmin
	case ActionViewPDF:
		return item != nil && item.Status == models.StatusApproved
	}
	return false
}
