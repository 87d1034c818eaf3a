package models

import (
	"time"

	"gorm.io/gorm"
)

// Prompt is a reusable email/prompt template in an organization's library.
type Prompt struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	Body           string         `gorm:"type:text;not null" json:"body"`
	Tone           string         `gorm:"type:varchar(50)" json:"tone"`
	OrganizationID uint64         `gorm:"not null" json:"organization_id"`
	CreatorID      uint64         `gorm:"not null" json:"creator_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Creator      User         `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}
