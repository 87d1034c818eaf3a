package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/workhive/workhive-api/internal/dto"
	apierrors "github.com/workhive/workhive-api/internal/errors"
	"github.com/workhive/workhive-api/internal/middleware"
	"github.com/workhive/workhive-api/internal/services"
	"github.com/workhive/workhive-api/internal/utils"
)

// LibraryHandler coordinates resource library HTTP handlers. All routes
// are nested under an organization and rely on RequireOrganizationAccess.
type LibraryHandler struct {
	libraryService *services.LibraryService
}

// NewLibraryHandler creates a new LibraryHandler.
func NewLibraryHandler(libraryService *services.LibraryService) *LibraryHandler {
	return &LibraryHandler{
		libraryService: libraryService,
	}
}

// CreateCategory creates a new category in the organization's library
func (h *LibraryHandler) CreateCategory(c *gin.Context) {
	org, ok := middleware.GetOrganization(c)
	if !ok {
		apierrors.InternalError(c, "Organization not found in context")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateCategoryRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.libraryService.CreateCategory(services.CreateCategoryInput{
		Name:           req.Name,
		OrganizationID: org.ID,
		CreatorID:      userID,
	})
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryDTO(*category, 0))
}

// ListCategories lists the organization's categories with resource counts
func (h *LibraryHandler) ListCategories(c *gin.Context) {
	org, ok := middleware.GetOrganization(c)
	if !ok {
		apierrors.InternalError(c, "Organization not found in context")
		return
	}

	categories, err := h.libraryService.ListCategories(org.ID)
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	categoryDTOs := make([]dto.CategoryDTO, len(categories))
	for i, category := range categories {
		count, err := h.libraryService.CountResources(category.ID, org.ID)
		if err != nil {
			respondLibraryError(c, err)
			return
		}
		categoryDTOs[i] = dto.ToCategoryDTO(category, count)
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categoryDTOs,
	})
}

// RenameCategory renames a category
func (h *LibraryHandler) RenameCategory(c *gin.Context) {
	org, ok := middleware.GetOrganization(c)
	if !ok {
		apierrors.InternalError(c, "Organization not found in context")
		return
	}

	categoryID, err := strconv.ParseUint(c.Param("category_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid category ID")
		return
	}

	type RenameCategoryRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req RenameCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.libraryService.RenameCategory(categoryID, org.ID, req.Name)
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	count, err := h.libraryService.CountResources(category.ID, org.ID)
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category, count))
}

// DeleteCategory deletes an empty category. Owners and admins only, PIN
// confirmed.
func (h *LibraryHandler) DeleteCategory(c *gin.Context) {
	org, ok := middleware.GetOrganization(c)
	if !ok {
		apierrors.InternalError(c, "Organization not found in context")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	categoryID, err := strconv.ParseUint(c.Param("category_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid category ID")
		return
	}

	type DeleteCategoryRequest struct {
		Pin string `json:"pin"`
	}

	var req DeleteCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.libraryService.DeleteCategory(categoryID, org.ID, userID, req.Pin); err != nil {
		respondLibraryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted successfully",
	})
}

// CreateResource adds a resource to the organization's library
func (h *LibraryHandler) CreateResource(c *gin.Context) {
	org, ok := middleware.GetOrganization(c)
	if !ok {
		apierrors.InternalError(c, "Organization not found in context")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateResourceRequest struct {
		Title       string  `json:"title" binding:"required"`
		URL         string  `json:"url" binding:"required"`
		Description string  `json:"description"`
		CategoryID  *uint64 `json:"category_id"`
	}

	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	resource, err := h.libraryService.CreateResource(services.CreateResourceInput{
		Title:          req.Title,
		URL:            req.URL,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		OrganizationID: org.ID,
		CreatorID:      userID,
	})
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToResourceDTO(*resource))
}

// ListResources lists the organization's resources, optionally filtered
// by category
func (h *LibraryHandler) ListResources(c *gin.Context) {
	org, ok := middleware.GetOrganization(c)
	if !ok {
		apierrors.InternalError(c, "Organization not found in context")
		return
	}

	input := services.ListResourcesInput{
		OrganizationID: org.ID,
	}

	if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
		categoryID, err := strconv.ParseUint(categoryIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid category_id")
			return
		}
		input.CategoryID = &categoryID
	}

	params := utils.GetPaginationParams(c)
	input.Page = params.Page
	input.PageSize = params.Limit

	resources, total, err := h.libraryService.ListResources(input)
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToResourceListResponse(resources, params.Page, params.Limit, total))
}

// GetResource returns a single resource
func (h *LibraryHandler) GetResource(c *gin.Context) {
	org, ok := middleware.GetOrganization(c)
	if !ok {
		apierrors.InternalError(c, "Organization not found in context")
		return
	}

	resourceID, err := strconv.ParseUint(c.Param("resource_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid resource ID")
		return
	}

	resource, err := h.libraryService.GetResource(resourceID, org.ID)
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToResourceDTO(*resource))
}

// UpdateResource updates a resource's fields or moves it between categories
func (h *LibraryHandler) UpdateResource(c *gin.Context) {
	org, ok := middleware.GetOrganization(c)
	if !ok {
		apierrors.InternalError(c, "Organization not found in context")
		return
	}

	resourceID, err := strconv.ParseUint(c.Param("resource_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid resource ID")
		return
	}

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateResourceInput

	if title, ok := rawReq["title"].(string); ok {
		input.Title = &title
	}
	if url, ok := rawReq["url"].(string); ok {
		input.URL = &url
	}
	if description, ok := rawReq["description"].(string); ok {
		input.Description = &description
	}
	if _, ok := rawReq["category_id"]; ok {
		// category_id was provided (might be null to file under no category)
		if rawReq["category_id"] == nil {
			input.ClearCategory = true
		} else if categoryIDFloat, ok := rawReq["category_id"].(float64); ok {
			categoryID := uint64(categoryIDFloat)
			input.CategoryID = &categoryID
		}
	}

	resource, err := h.libraryService.UpdateResource(resourceID, org.ID, input)
	if err != nil {
		respondLibraryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToResourceDTO(*resource))
}

// DeleteResource deletes a resource. Owners and admins only, PIN confirmed.
func (h *LibraryHandler) DeleteResource(c *gin.Context) {
	org, ok := middleware.GetOrganization(c)
	if !ok {
		apierrors.InternalError(c, "Organization not found in context")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	resourceID, err := strconv.ParseUint(c.Param("resource_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid resource ID")
		return
	}

	type DeleteResourceRequest struct {
		Pin string `json:"pin"`
	}

	var req DeleteResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.libraryService.DeleteResource(resourceID, org.ID, userID, req.Pin); err != nil {
		respondLibraryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Resource deleted successfully",
	})
}

func respondLibraryError(c *gin.Context, err error) {
	if respondGateError(c, err) {
		return
	}

	switch {
	case errors.Is(err, services.ErrCategoryNameRequired),
		errors.Is(err, services.ErrResourceTitleMissing),
		errors.Is(err, services.ErrResourceURLMissing):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrCategoryHasResources):
		apierrors.RespondWithError(c, http.StatusConflict,
			apierrors.NewAPIError(apierrors.ErrCodeInvalidOperation, err.Error()))
	case errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrResourceNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
