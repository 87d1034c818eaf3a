package authz

import (
	"errors"

	"github.com/workhive/workhive-api/internal/models"
)

// Sentinel errors for authorization outcomes. Handlers map each to a
// distinct response so the UI can show a specific message.
var (
	ErrNotAMember       = errors.New("you are not a member of this organization")
	ErrInsufficientRole = errors.New("your role does not permit this action")
	ErrOwnerRequired    = errors.New("only organization owners can perform this action")
	ErrTargetIsOwner    = errors.New("cannot remove an owner from the organization")
	ErrCannotRemoveSelf = errors.New("cannot remove yourself from the organization")
)

// Decision is the outcome of the authorization policy.
type Decision int

const (
	Deny Decision = iota
	Allow
)

// Decide determines whether a caller with the given membership may perform
// an action. A nil membership means the caller has no relationship to the
// organization and is denied everything. Unknown actions are denied.
//
// Decide is pure: it never touches storage. Callers fetch the membership row
// and pass it in.
func Decide(membership *models.OrganizationMember, action Action) Decision {
	if membership == nil {
		return Deny
	}

	role := membership.EffectiveRole()

	switch action {
	case ActionRemoveMember, ActionChangeMemberRole, ActionDeleteOrganization, ActionManagePin:
		if role == models.RoleOwner {
			return Allow
		}
		return Deny
	case ActionDeleteResource, ActionDeleteCategory, ActionDeleteTask, ActionDeletePrompt:
		if role == models.RoleOwner || role == models.RoleAdmin {
			return Allow
		}
		return Deny
	default:
		// Fail closed.
		return Deny
	}
}

// DecideError runs Decide and converts a denial into the matching sentinel.
func DecideError(membership *models.OrganizationMember, action Action) error {
	if membership == nil {
		return ErrNotAMember
	}
	if Decide(membership, action) == Allow {
		return nil
	}
	switch action {
	case ActionRemoveMember, ActionChangeMemberRole, ActionDeleteOrganization, ActionManagePin:
		return ErrOwnerRequired
	default:
		return ErrInsufficientRole
	}
}

// DecideRemoveMember applies the extra constraints of member removal: the
// target must not be an owner, and the caller may not remove themselves.
// The caller's own authorization is checked with Decide first; this check
// uses the target's membership row.
func DecideRemoveMember(caller, target *models.OrganizationMember) error {
	if caller == nil {
		return ErrNotAMember
	}
	if target == nil {
		return nil
	}
	if caller.UserID == target.UserID {
		return ErrCannotRemoveSelf
	}
	if target.EffectiveRole() == models.RoleOwner {
		return ErrTargetIsOwner
	}
	return nil
}
