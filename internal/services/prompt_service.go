package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/workhive/workhive-api/internal/authz"
	"github.com/workhive/workhive-api/internal/models"
	"github.com/workhive/workhive-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPromptNotFound       = errors.New("prompt not found")
	ErrPromptTitleRequired  = errors.New("prompt title is required")
	ErrPromptBodyRequired   = errors.New("prompt body is required")
	ErrDraftSubjectRequired = errors.New("draft subject is required")
)

// PromptService handles the email/prompt template library.
type PromptService struct {
	promptRepo repository.PromptRepository
	gate       *authz.Gate
	aiService  *AIService
}

// NewPromptService creates a new PromptService
func NewPromptService(promptRepo repository.PromptRepository, gate *authz.Gate, aiService *AIService) *PromptService {
	return &PromptService{
		promptRepo: promptRepo,
		gate:       gate,
		aiService:  aiService,
	}
}

// CreatePromptInput represents input for creating a prompt
type CreatePromptInput struct {
	Title          string
	Body           string
	Tone           string
	OrganizationID uint64
	CreatorID      uint64
}

// CreatePrompt creates a new prompt template
func (s *PromptService) CreatePrompt(input CreatePromptInput) (*models.Prompt, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrPromptTitleRequired
	}
	if strings.TrimSpace(input.Body) == "" {
		return nil, ErrPromptBodyRequired
	}

	prompt := &models.Prompt{
		Title:          input.Title,
		Body:           input.Body,
		Tone:           input.Tone,
		OrganizationID: input.OrganizationID,
		CreatorID:      input.CreatorID,
	}

	if err := s.promptRepo.Create(prompt); err != nil {
		return nil, fmt.Errorf("failed to create prompt: %w", err)
	}

	return prompt, nil
}

// GetPrompt returns a prompt scoped to an organization
func (s *PromptService) GetPrompt(promptID, organizationID uint64) (*models.Prompt, error) {
	prompt, err := s.promptRepo.FindByID(promptID, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, fmt.Errorf("failed to find prompt: %w", err)
	}
	return prompt, nil
}

// ListPrompts lists an organization's prompts
func (s *PromptService) ListPrompts(organizationID uint64, page, pageSize int) ([]models.Prompt, int64, error) {
	prompts, total, err := s.promptRepo.List(organizationID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list prompts: %w", err)
	}
	return prompts, total, nil
}

// UpdatePromptInput represents updatable prompt fields
type UpdatePromptInput struct {
	Title *string
	Body  *string
	Tone  *string
}

// UpdatePrompt updates a prompt template
func (s *PromptService) UpdatePrompt(promptID, organizationID uint64, input UpdatePromptInput) (*models.Prompt, error) {
	prompt, err := s.promptRepo.FindByID(promptID, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, fmt.Errorf("failed to find prompt: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrPromptTitleRequired
		}
		prompt.Title = *input.Title
	}
	if input.Body != nil {
		if strings.TrimSpace(*input.Body) == "" {
			return nil, ErrPromptBodyRequired
		}
		prompt.Body = *input.Body
	}
	if input.Tone != nil {
		prompt.Tone = *input.Tone
	}

	if err := s.promptRepo.Update(prompt); err != nil {
		return nil, fmt.Errorf("failed to update prompt: %w", err)
	}

	return prompt, nil
}

// DeletePrompt deletes a prompt through the gate, PIN confirmed.
func (s *PromptService) DeletePrompt(promptID, organizationID, actorID uint64, suppliedPin string) error {
	if _, err := s.gate.Authorize(actorID, organizationID, authz.ActionDeletePrompt, suppliedPin); err != nil {
		return err
	}

	if err := s.promptRepo.Delete(promptID, organizationID); err != nil {
		return fmt.Errorf("failed to delete prompt: %w", err)
	}

	return nil
}

// DraftPromptInput represents input for AI prompt drafting
type DraftPromptInput struct {
	Subject string
	Tone    string
}

// DraftPrompt asks the AI service to draft a template body
func (s *PromptService) DraftPrompt(ctx context.Context, input DraftPromptInput) (*DraftedPrompt, error) {
	if strings.TrimSpace(input.Subject) == "" {
		return nil, ErrDraftSubjectRequired
	}

	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	drafted, err := s.aiService.DraftPrompt(ctx, input.Subject, input.Tone)
	if err != nil {
		return nil, fmt.Errorf("failed to draft prompt: %w", err)
	}

	if strings.TrimSpace(drafted.Body) == "" {
		return nil, fmt.Errorf("AI returned an empty draft")
	}

	return drafted, nil
}
