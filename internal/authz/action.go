package authz

// Action is a named category of sensitive operation subject to the
// authorization and PIN gate.
type Action string

const (
	ActionRemoveMember       Action = "remove_member"
	ActionChangeMemberRole   Action = "change_member_role"
	ActionDeleteResource     Action = "delete_resource"
	ActionDeleteCategory     Action = "delete_category"
	ActionDeleteTask         Action = "delete_task"
	ActionDeleteOrganization Action = "delete_organization"
	ActionDeletePrompt       Action = "delete_prompt"
	ActionManagePin          Action = "manage_pin"
)

// RequiresPin reports whether the action needs PIN confirmation on top of
// role authorization. Setting the PIN itself is the one owner action that
// cannot require a PIN, otherwise a fresh organization could never configure
// one.
func (a Action) RequiresPin() bool {
	switch a {
	case ActionRemoveMember,
		ActionChangeMemberRole,
		ActionDeleteResource,
		ActionDeleteCategory,
		ActionDeleteTask,
		ActionDeleteOrganization,
		ActionDeletePrompt:
		return true
	default:
		return false
	}
}
