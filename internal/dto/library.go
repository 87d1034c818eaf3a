package dto

import (
	"time"

	"github.com/workhive/workhive-api/internal/models"
)

// CategoryDTO represents a resource category in API responses
type CategoryDTO struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	ResourceCount int64     `json:"resource_count"`
	CreatorID     uint64    `json:"creator_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// ResourceDTO represents a library resource in API responses
type ResourceDTO struct {
	ID             uint64       `json:"id"`
	Title          string       `json:"title"`
	URL            string       `json:"url"`
	Description    string       `json:"description"`
	CategoryID     *uint64      `json:"category_id"`
	OrganizationID uint64       `json:"organization_id"`
	CreatorID      uint64       `json:"creator_id"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	Creator        *UserDTO     `json:"creator,omitempty"`
	Category       *CategoryDTO `json:"category,omitempty"`
}

// ResourceListResponse represents a paginated list of resources
type ResourceListResponse struct {
	Resources  []ResourceDTO `json:"resources"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalCount int64         `json:"total_count"`
	TotalPages int           `json:"total_pages"`
}

// ToCategoryDTO converts a Category model to CategoryDTO
func ToCategoryDTO(category models.Category, resourceCount int64) CategoryDTO {
	return CategoryDTO{
		ID:            category.ID,
		Name:          category.Name,
		ResourceCount: resourceCount,
		CreatorID:     category.CreatorID,
		CreatedAt:     category.CreatedAt,
	}
}

// ToResourceDTO converts a Resource model to ResourceDTO
func ToResourceDTO(resource models.Resource) ResourceDTO {
	dto := ResourceDTO{
		ID:             resource.ID,
		Title:          resource.Title,
		URL:            resource.URL,
		Description:    resource.Description,
		CategoryID:     resource.CategoryID,
		OrganizationID: resource.OrganizationID,
		CreatorID:      resource.CreatorID,
		CreatedAt:      resource.CreatedAt,
		UpdatedAt:      resource.UpdatedAt,
	}

	// Include creator if preloaded
	if resource.Creator.ID != 0 {
		creator := ToUserDTO(resource.Creator)
		dto.Creator = &creator
	}

	// Include category if preloaded
	if resource.Category != nil && resource.Category.ID != 0 {
		category := ToCategoryDTO(*resource.Category, 0)
		dto.Category = &category
	}

	return dto
}

// ToResourceListResponse converts a slice of resources to ResourceListResponse
func ToResourceListResponse(resources []models.Resource, page, pageSize int, totalCount int64) ResourceListResponse {
	items := make([]ResourceDTO, len(resources))
	for i, resource := range resources {
		items[i] = ToResourceDTO(resource)
	}

	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return ResourceListResponse{
		Resources:  items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
