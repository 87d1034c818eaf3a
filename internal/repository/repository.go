package repository

import (
	"time"

	"github.com/workhive/workhive-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithPersonalOrganization creates a user, their personal organization,
	// and corresponding membership within a single transaction.
	CreateWithPersonalOrganization(user *models.User, org *models.Organization, member *models.OrganizationMember) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// Create creates a new organization
	Create(org *models.Organization) error

	// FindByID finds an organization by ID
	FindByID(id uint64) (*models.Organization, error)

	// FindByInviteCode finds an organization by invite code
	FindByInviteCode(code string) (*models.Organization, error)

	// Update updates an organization
	Update(org *models.Organization) error

	// SetPin persists the organization's confirmation PIN
	SetPin(id uint64, pin string) error

	// Delete deletes an organization and all related data
	Delete(id uint64) error

	// AddMember adds a member to an organization
	AddMember(member *models.OrganizationMember) error

	// RemoveMember removes a member from an organization
	RemoveMember(organizationID, userID uint64) error

	// UpdateMemberRole rewrites a member's role as an explicit three-state value
	UpdateMemberRole(organizationID, userID uint64, role models.OrganizationRole) error

	// FindMember finds a specific organization member
	FindMember(organizationID, userID uint64) (*models.OrganizationMember, error)

	// ListMembersByUserID lists all organizations a user is a member of
	ListMembersByUserID(userID uint64) ([]models.OrganizationMember, error)

	// ListMembers lists all members of an organization
	ListMembers(organizationID uint64) ([]models.OrganizationMember, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task, scoped by organization
	Delete(id, organizationID uint64) error

	// AssignUsers assigns multiple users to a task
	AssignUsers(taskID uint64, userIDs []uint64) error

	// UnassignUsers removes user assignments from a task
	UnassignUsers(taskID uint64, userIDs []uint64) error

	// FindAssignment finds a specific task assignment
	FindAssignment(taskID, userID uint64) (*models.TaskAssignment, error)

	// CountUsersByIDs counts how many of the given user IDs are organization members
	CountUsersByIDs(userIDs []uint64, organizationID uint64) (int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	OrganizationIDs []uint64
	Status          *models.TaskStatus
	CreatorID       *uint64
	AssignedUserID  *uint64
	DueDateFrom     *time.Time
	DueDateTo       *time.Time
	SortByDueDate   bool
	Page            int
	PageSize        int
}

// LibraryRepository defines data access for the resource library
// (categories and the resources under them).
type LibraryRepository interface {
	// CreateCategory creates a new category
	CreateCategory(category *models.Category) error

	// FindCategoryByID finds a category scoped to an organization
	FindCategoryByID(id, organizationID uint64) (*models.Category, error)

	// ListCategories lists an organization's categories
	ListCategories(organizationID uint64) ([]models.Category, error)

	// UpdateCategory updates a category
	UpdateCategory(category *models.Category) error

	// DeleteCategory soft deletes a category, scoped by organization
	DeleteCategory(id, organizationID uint64) error

	// CountResourcesInCategory counts live resources under a category
	CountResourcesInCategory(categoryID, organizationID uint64) (int64, error)

	// CreateResource creates a new resource
	CreateResource(resource *models.Resource) error

	// FindResourceByID finds a resource scoped to an organization
	FindResourceByID(id, organizationID uint64) (*models.Resource, error)

	// ListResources retrieves resources with filtering and pagination
	ListResources(filter ResourceFilter) ([]models.Resource, int64, error)

	// UpdateResource updates a resource
	UpdateResource(resource *models.Resource) error

	// DeleteResource soft deletes a resource, scoped by organization
	DeleteResource(id, organizationID uint64) error
}

// ResourceFilter holds filtering options for listing resources
type ResourceFilter struct {
	OrganizationID uint64
	CategoryID     *uint64
	Page           int
	PageSize       int
}

// PromptRepository defines data access for the prompt library
type PromptRepository interface {
	// Create creates a new prompt
	Create(prompt *models.Prompt) error

	// FindByID finds a prompt scoped to an organization
	FindByID(id, organizationID uint64) (*models.Prompt, error)

	// List lists an organization's prompts with pagination
	List(organizationID uint64, page, pageSize int) ([]models.Prompt, int64, error)

	// Update updates a prompt
	Update(prompt *models.Prompt) error

	// Delete soft deletes a prompt, scoped by organization
	Delete(id, organizationID uint64) error
}
