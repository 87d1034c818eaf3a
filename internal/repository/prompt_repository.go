package repository

import (
	"github.com/workhive/workhive-api/internal/models"
	"gorm.io/gorm"
)

// GormPromptRepository is a GORM implementation of PromptRepository
type GormPromptRepository struct {
	db *gorm.DB
}

// NewPromptRepository creates a new PromptRepository
func NewPromptRepository(db *gorm.DB) PromptRepository {
	return &GormPromptRepository{db: db}
}

// Create creates a new prompt
func (r *GormPromptRepository) Create(prompt *models.Prompt) error {
	return r.db.Create(prompt).Error
}

// FindByID finds a prompt scoped to an organization
func (r *GormPromptRepository) FindByID(id, organizationID uint64) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := r.db.Where("organization_id = ?", organizationID).
		First(&prompt, id).Error; err != nil {
		return nil, err
	}
	return &prompt, nil
}

// List lists an organization's prompts with pagination
func (r *GormPromptRepository) List(organizationID uint64, page, pageSize int) ([]models.Prompt, int64, error) {
	var prompts []models.Prompt

	query := r.db.Model(&models.Prompt{}).
		Where("organization_id = ?", organizationID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at DESC")
	if page > 0 && pageSize > 0 {
		listQuery = listQuery.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	if err := listQuery.Preload("Creator").Find(&prompts).Error; err != nil {
		return nil, 0, err
	}

	return prompts, total, nil
}

// Update updates a prompt
func (r *GormPromptRepository) Update(prompt *models.Prompt) error {
	return r.db.Save(prompt).Error
}

// Delete soft deletes a prompt, scoped by organization
func (r *GormPromptRepository) Delete(id, organizationID uint64) error {
	return r.db.Where("organization_id = ?", organizationID).
		Delete(&models.Prompt{}, id).Error
}
