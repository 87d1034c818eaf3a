package models

import (
	"time"

	"gorm.io/gorm"
)

// Category groups resources inside an organization's library.
type Category struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	Name           string         `gorm:"type:varchar(100);not null" json:"name"`
	OrganizationID uint64         `gorm:"not null" json:"organization_id"`
	CreatorID      uint64         `gorm:"not null" json:"creator_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Creator      User         `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Resources    []Resource   `gorm:"foreignKey:CategoryID" json:"resources,omitempty"`
}
