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

// PromptHandler coordinates prompt library HTTP handlers.
type PromptHandler struct {
	promptService *services.PromptService
}

// NewPromptHandler creates a new PromptHandler.
func NewPromptHandler(promptService *services.PromptService) *PromptHandler {
	return &PromptHandler{
		promptService: promptService,
	}
}

// CreatePrompt saves a prompt template to the organization's library
func (h *PromptHandler) CreatePrompt(c *gin.Context) {
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

	type CreatePromptRequest struct {
		Title string `json:"title" binding:"required"`
		Body  string `json:"body" binding:"required"`
		Tone  string `json:"tone"`
	}

	var req CreatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	prompt, err := h.promptService.CreatePrompt(services.CreatePromptInput{
		Title:          req.Title,
		Body:           req.Body,
		Tone:           req.Tone,
		OrganizationID: org.ID,
		CreatorID:      userID,
	})
	if err != nil {
		respondPromptError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPromptDTO(*prompt))
}

// ListPrompts lists the organization's prompt templates
func (h *PromptHandler) ListPrompts(c *gin.Context) {
	org, ok := middleware.GetOrganization(c)
	if !ok {
		apierrors.InternalError(c, "Organization not found in context")
		return
	}

	params := utils.GetPaginationParams(c)

	prompts, total, err := h.promptService.ListPrompts(org.ID, params.Page, params.Limit)
	if err != nil {
		respondPromptError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPromptListResponse(prompts, params.Page, params.Limit, total))
}

// GetPrompt returns a single prompt template
func (h *PromptHandler) GetPrompt(c *gin.Context) {
	org, ok := middleware.GetOrganization(c)
	if !ok {
		apierrors.InternalError(c, "Organization not found in context")
		return
	}

	promptID, err := strconv.ParseUint(c.Param("prompt_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid prompt ID")
		return
	}

	prompt, err := h.promptService.GetPrompt(promptID, org.ID)
	if err != nil {
		respondPromptError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPromptDTO(*prompt))
}

// UpdatePrompt updates a prompt template
func (h *PromptHandler) UpdatePrompt(c *gin.Context) {
	org, ok := middleware.GetOrganization(c)
	if !ok {
		apierrors.InternalError(c, "Organization not found in context")
		return
	}

	promptID, err := strconv.ParseUint(c.Param("prompt_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid prompt ID")
		return
	}

	type UpdatePromptRequest struct {
		Title *string `json:"title"`
		Body  *string `json:"body"`
		Tone  *string `json:"tone"`
	}

	var req UpdatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	prompt, err := h.promptService.UpdatePrompt(promptID, org.ID, services.UpdatePromptInput{
		Title: req.Title,
		Body:  req.Body,
		Tone:  req.Tone,
	})
	if err != nil {
		respondPromptError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPromptDTO(*prompt))
}

// DeletePrompt deletes a prompt template. Owners and admins only, PIN
// confirmed.
func (h *PromptHandler) DeletePrompt(c *gin.Context) {
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

	promptID, err := strconv.ParseUint(c.Param("prompt_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid prompt ID")
		return
	}

	type DeletePromptRequest struct {
		Pin string `json:"pin"`
	}

	var req DeletePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.promptService.DeletePrompt(promptID, org.ID, userID, req.Pin); err != nil {
		respondPromptError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Prompt deleted successfully",
	})
}

// DraftPrompt asks the AI service for a template draft without saving it
func (h *PromptHandler) DraftPrompt(c *gin.Context) {
	if _, ok := middleware.GetOrganization(c); !ok {
		apierrors.InternalError(c, "Organization not found in context")
		return
	}

	type DraftPromptRequest struct {
		Subject string `json:"subject" binding:"required"`
		Tone    string `json:"tone"`
	}

	var req DraftPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	drafted, err := h.promptService.DraftPrompt(c.Request.Context(), services.DraftPromptInput{
		Subject: req.Subject,
		Tone:    req.Tone,
	})
	if err != nil {
		respondPromptError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DraftedPromptDTO{
		Title: drafted.Title,
		Body:  drafted.Body,
		Tone:  req.Tone,
	})
}

func respondPromptError(c *gin.Context, err error) {
	if respondGateError(c, err) {
		return
	}

	switch {
	case errors.Is(err, services.ErrPromptTitleRequired),
		errors.Is(err, services.ErrPromptBodyRequired),
		errors.Is(err, services.ErrDraftSubjectRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPromptNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
