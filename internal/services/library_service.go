package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/workhive/workhive-api/internal/authz"
	"github.com/workhive/workhive-api/internal/models"
	"github.com/workhive/workhive-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrCategoryHasResources = errors.New("category still has resources; move or delete them first")
	ErrResourceNotFound     = errors.New("resource not found")
	ErrResourceTitleMissing = errors.New("resource title is required")
	ErrResourceURLMissing   = errors.New("resource URL is required")
)

// LibraryService handles the resource library: categories and the
// resources filed under them. Deletions run through the authorization
// gate; category deletion additionally requires the category to be empty,
// checked before the PIN so the user is never prompted for a doomed action.
type LibraryService struct {
	libRepo repository.LibraryRepository
	gate    *authz.Gate
}

// NewLibraryService creates a new LibraryService
func NewLibraryService(libRepo repository.LibraryRepository, gate *authz.Gate) *LibraryService {
	return &LibraryService{
		libRepo: libRepo,
		gate:    gate,
	}
}

// CreateCategoryInput represents input for creating a category
type CreateCategoryInput struct {
	Name           string
	OrganizationID uint64
	CreatorID      uint64
}

// CreateCategory creates a new category
func (s *LibraryService) CreateCategory(input CreateCategoryInput) (*models.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrCategoryNameRequired
	}

	category := &models.Category{
		Name:           input.Name,
		OrganizationID: input.OrganizationID,
		CreatorID:      input.CreatorID,
	}

	if err := s.libRepo.CreateCategory(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// ListCategories lists an organization's categories
func (s *LibraryService) ListCategories(organizationID uint64) ([]models.Category, error) {
	categories, err := s.libRepo.ListCategories(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CountResources returns how many resources are filed under a category
func (s *LibraryService) CountResources(categoryID, organizationID uint64) (int64, error) {
	count, err := s.libRepo.CountResourcesInCategory(categoryID, organizationID)
	if err != nil {
		return 0, fmt.Errorf("failed to count category resources: %w", err)
	}
	return count, nil
}

// RenameCategory updates a category's name
func (s *LibraryService) RenameCategory(categoryID, organizationID uint64, name string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrCategoryNameRequired
	}

	category, err := s.libRepo.FindCategoryByID(categoryID, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	category.Name = name
	if err := s.libRepo.UpdateCategory(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// DeleteCategory deletes a category through the gate. The category must
// have no resources left; that precondition fails before the PIN check.
func (s *LibraryService) DeleteCategory(categoryID, organizationID, actorID uint64, suppliedPin string) error {
	if _, err := s.gate.Check(actorID, organizationID, authz.ActionDeleteCategory); err != nil {
		return err
	}

	if _, err := s.libRepo.FindCategoryByID(categoryID, organizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to find category: %w", err)
	}

	count, err := s.libRepo.CountResourcesInCategory(categoryID, organizationID)
	if err != nil {
		return fmt.Errorf("failed to count category resources: %w", err)
	}
	if count > 0 {
		return ErrCategoryHasResources
	}

	if err := s.gate.ConfirmPin(organizationID, suppliedPin); err != nil {
		return err
	}

	if err := s.libRepo.DeleteCategory(categoryID, organizationID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}

// CreateResourceInput represents input for creating a resource
type CreateResourceInput struct {
	Title          string
	URL            string
	Description    string
	CategoryID     *uint64
	OrganizationID uint64
	CreatorID      uint64
}

// CreateResource creates a new resource
func (s *LibraryService) CreateResource(input CreateResourceInput) (*models.Resource, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrResourceTitleMissing
	}
	if strings.TrimSpace(input.URL) == "" {
		return nil, ErrResourceURLMissing
	}

	if input.CategoryID != nil {
		if _, err := s.libRepo.FindCategoryByID(*input.CategoryID, input.OrganizationID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to find category: %w", err)
		}
	}

	resource := &models.Resource{
		Title:          input.Title,
		URL:            input.URL,
		Description:    input.Description,
		CategoryID:     input.CategoryID,
		OrganizationID: input.OrganizationID,
		CreatorID:      input.CreatorID,
	}

	if err := s.libRepo.CreateResource(resource); err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	return resource, nil
}

// GetResource returns a resource scoped to an organization
func (s *LibraryService) GetResource(resourceID, organizationID uint64) (*models.Resource, error) {
	resource, err := s.libRepo.FindResourceByID(resourceID, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to find resource: %w", err)
	}
	return resource, nil
}

// ListResourcesInput represents filters for listing resources
type ListResourcesInput struct {
	OrganizationID uint64
	CategoryID     *uint64
	Page           int
	PageSize       int
}

// ListResources retrieves an organization's resources
func (s *LibraryService) ListResources(input ListResourcesInput) ([]models.Resource, int64, error) {
	resources, total, err := s.libRepo.ListResources(repository.ResourceFilter{
		OrganizationID: input.OrganizationID,
		CategoryID:     input.CategoryID,
		Page:           input.Page,
		PageSize:       input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list resources: %w", err)
	}
	return resources, total, nil
}

// UpdateResourceInput represents updatable resource fields
type UpdateResourceInput struct {
	Title         *string
	URL           *string
	Description   *string
	CategoryID    *uint64
	ClearCategory bool
}

// UpdateResource updates a resource
func (s *LibraryService) UpdateResource(resourceID, organizationID uint64, input UpdateResourceInput) (*models.Resource, error) {
	resource, err := s.libRepo.FindResourceByID(resourceID, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to find resource: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrResourceTitleMissing
		}
		resource.Title = *input.Title
	}
	if input.URL != nil {
		if strings.TrimSpace(*input.URL) == "" {
			return nil, ErrResourceURLMissing
		}
		resource.URL = *input.URL
	}
	if input.Description != nil {
		resource.Description = *input.Description
	}
	if input.ClearCategory {
		resource.CategoryID = nil
	} else if input.CategoryID != nil {
		if _, err := s.libRepo.FindCategoryByID(*input.CategoryID, organizationID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to find category: %w", err)
		}
		resource.CategoryID = input.CategoryID
	}

	if err := s.libRepo.UpdateResource(resource); err != nil {
		return nil, fmt.Errorf("failed to update resource: %w", err)
	}

	return resource, nil
}

// DeleteResource deletes a resource through the gate, PIN confirmed.
func (s *LibraryService) DeleteResource(resourceID, organizationID, actorID uint64, suppliedPin string) error {
	if _, err := s.gate.Authorize(actorID, organizationID, authz.ActionDeleteResource, suppliedPin); err != nil {
		return err
	}

	if err := s.libRepo.DeleteResource(resourceID, organizationID); err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}

	return nil
}
