package dto

import (
	"time"

	"github.com/workhive/workhive-api/internal/models"
)

// PromptDTO represents a prompt template in API responses
type PromptDTO struct {
	ID             uint64    `json:"id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	Tone           string    `json:"tone"`
	OrganizationID uint64    `json:"organization_id"`
	CreatorID      uint64    `json:"creator_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Creator        *UserDTO  `json:"creator,omitempty"`
}

// PromptListResponse represents a paginated list of prompts
type PromptListResponse struct {
	Prompts    []PromptDTO `json:"prompts"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalCount int64       `json:"total_count"`
	TotalPages int         `json:"total_pages"`
}

// DraftedPromptDTO represents an AI-drafted template, not yet saved
type DraftedPromptDTO struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tone  string `json:"tone"`
}

// ToPromptDTO converts a Prompt model to PromptDTO
func ToPromptDTO(prompt models.Prompt) PromptDTO {
	dto := PromptDTO{
		ID:             prompt.ID,
		Title:          prompt.Title,
		Body:           prompt.Body,
		Tone:           prompt.Tone,
		OrganizationID: prompt.OrganizationID,
		CreatorID:      prompt.CreatorID,
		CreatedAt:      prompt.CreatedAt,
		UpdatedAt:      prompt.UpdatedAt,
	}

	// Include creator if preloaded
	if prompt.Creator.ID != 0 {
		creator := ToUserDTO(prompt.Creator)
		dto.Creator = &creator
	}

	return dto
}

// ToPromptListResponse converts a slice of prompts to PromptListResponse
func ToPromptListResponse(prompts []models.Prompt, page, pageSize int, totalCount int64) PromptListResponse {
	items := make([]PromptDTO, len(prompts))
	for i, prompt := range prompts {
		items[i] = ToPromptDTO(prompt)
	}

	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return PromptListResponse{
		Prompts:    items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
