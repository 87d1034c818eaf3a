package models

import "time"

type OrganizationRole string

const (
	RoleOwner  OrganizationRole = "owner"
	RoleAdmin  OrganizationRole = "admin"
	RoleMember OrganizationRole = "member"
)

// OrganizationMember links a user to an organization with a role.
//
// Rows written by older versions of the product carry the IsOwner/IsAdmin
// flag pair instead of Role. NormalizeRole resolves the pair in exactly one
// place; everything else in the codebase consumes EffectiveRole.
type OrganizationMember struct {
	OrganizationID uint64           `gorm:"primarykey" json:"organization_id"`
	UserID         uint64           `gorm:"primarykey" json:"user_id"`
	Role           OrganizationRole `gorm:"type:varchar(20)" json:"role"`
	IsOwner        bool             `json:"-"`
	IsAdmin        *bool            `json:"-"`
	JoinedAt       time.Time        `json:"joined_at"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// NormalizeRole maps the legacy flag pair onto the three-state role.
// A nil IsAdmin is treated as admin, matching how the live system has always
// behaved for rows that predate the flag.
func NormalizeRole(isOwner bool, isAdmin *bool) OrganizationRole {
	switch {
	case isOwner:
		return RoleOwner
	case isAdmin == nil || *isAdmin:
		return RoleAdmin
	default:
		return RoleMember
	}
}

// EffectiveRole returns the explicit role when present, otherwise the role
// derived from the legacy flags.
func (m OrganizationMember) EffectiveRole() OrganizationRole {
	if m.Role != "" {
		return m.Role
	}
	return NormalizeRole(m.IsOwner, m.IsAdmin)
}
