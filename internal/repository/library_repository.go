package repository

import (
	"github.com/workhive/workhive-api/internal/models"
	"gorm.io/gorm"
)

// GormLibraryRepository is a GORM implementation of LibraryRepository
type GormLibraryRepository struct {
	db *gorm.DB
}

// NewLibraryRepository creates a new LibraryRepository
func NewLibraryRepository(db *gorm.DB) LibraryRepository {
	return &GormLibraryRepository{db: db}
}

// CreateCategory creates a new category
func (r *GormLibraryRepository) CreateCategory(category *models.Category) error {
	return r.db.Create(category).Error
}

// FindCategoryByID finds a category scoped to an organization
func (r *GormLibraryRepository) FindCategoryByID(id, organizationID uint64) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("organization_id = ?", organizationID).
		First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategories lists an organization's categories
func (r *GormLibraryRepository) ListCategories(organizationID uint64) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Where("organization_id = ?", organizationID).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// UpdateCategory updates a category
func (r *GormLibraryRepository) UpdateCategory(category *models.Category) error {
	return r.db.Save(category).Error
}

// DeleteCategory soft deletes a category, scoped by organization
func (r *GormLibraryRepository) DeleteCategory(id, organizationID uint64) error {
	return r.db.Where("organization_id = ?", organizationID).
		Delete(&models.Category{}, id).Error
}

// CountResourcesInCategory counts live resources under a category
func (r *GormLibraryRepository) CountResourcesInCategory(categoryID, organizationID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Resource{}).
		Where("category_id = ? AND organization_id = ?", categoryID, organizationID).
		Count(&count).Error
	return count, err
}

// CreateResource creates a new resource
func (r *GormLibraryRepository) CreateResource(resource *models.Resource) error {
	return r.db.Create(resource).Error
}

// FindResourceByID finds a resource scoped to an organization
func (r *GormLibraryRepository) FindResourceByID(id, organizationID uint64) (*models.Resource, error) {
	var resource models.Resource
	if err := r.db.Preload("Category").
		Where("organization_id = ?", organizationID).
		First(&resource, id).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

// ListResources retrieves resources with filtering and pagination
func (r *GormLibraryRepository) ListResources(filter ResourceFilter) ([]models.Resource, int64, error) {
	var resources []models.Resource

	query := r.db.Model(&models.Resource{}).
		Where("resources.organization_id = ?", filter.OrganizationID)

	if filter.CategoryID != nil {
		query = query.Where("resources.category_id = ?", *filter.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("resources.created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Preload("Category").Preload("Creator").Find(&resources).Error; err != nil {
		return nil, 0, err
	}

	return resources, total, nil
}

// UpdateResource updates a resource
func (r *GormLibraryRepository) UpdateResource(resource *models.Resource) error {
	return r.db.Save(resource).Error
}

// DeleteResource soft deletes a resource, scoped by organization
func (r *GormLibraryRepository) DeleteResource(id, organizationID uint64) error {
	return r.db.Where("organization_id = ?", organizationID).
		Delete(&models.Resource{}, id).Error
}
