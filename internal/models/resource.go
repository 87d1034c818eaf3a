package models

import (
	"time"

	"gorm.io/gorm"
)

// Resource is a shared link in an organization's library.
type Resource struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	URL            string         `gorm:"type:varchar(2048);not null" json:"url"`
	Description    string         `gorm:"type:text" json:"description"`
	CategoryID     *uint64        `json:"category_id"`
	OrganizationID uint64         `gorm:"not null" json:"organization_id"`
	CreatorID      uint64         `gorm:"not null" json:"creator_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Creator      User         `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Category     *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
