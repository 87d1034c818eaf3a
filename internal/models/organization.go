package models

import (
	"time"

	"gorm.io/gorm"
)

type Organization struct {
	ID         uint64 `gorm:"primarykey" json:"id"`
	Name       string `gorm:"type:varchar(255);not null" json:"name"`
	AvatarURL  string `gorm:"type:varchar(512)" json:"avatar_url"`
	InviteCode string `gorm:"type:varchar(50);uniqueIndex;not null" json:"invite_code"`
	// Pin is the 4-digit confirmation code for destructive actions.
	// Empty string means no PIN has been configured yet.
	Pin       string         `gorm:"type:varchar(4)" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Members    []OrganizationMember `gorm:"foreignKey:OrganizationID" json:"members,omitempty"`
	Tasks      []Task               `gorm:"foreignKey:OrganizationID" json:"tasks,omitempty"`
	Categories []Category           `gorm:"foreignKey:OrganizationID" json:"categories,omitempty"`
	Resources  []Resource           `gorm:"foreignKey:OrganizationID" json:"resources,omitempty"`
	Prompts    []Prompt             `gorm:"foreignKey:OrganizationID" json:"prompts,omitempty"`
}

// HasPin reports whether a confirmation PIN has been configured.
func (o Organization) HasPin() bool {
	return o.Pin != ""
}
