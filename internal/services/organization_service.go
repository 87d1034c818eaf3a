package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/workhive/workhive-api/internal/authz"
	"github.com/workhive/workhive-api/internal/models"
	"github.com/workhive/workhive-api/internal/repository"
	"github.com/workhive/workhive-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrOrganizationNotFound       = errors.New("organization not found")
	ErrInvalidOrganizationName    = errors.New("organization name cannot be empty")
	ErrInviteCodeGenerationFailed = errors.New("failed to generate invite code")
	ErrInvalidInviteCode          = errors.New("invalid invite code")
	ErrAlreadyOrganizationMember  = errors.New("user is already a member of this organization")
	ErrOrganizationMemberNotFound = errors.New("organization member not found")
	ErrInvalidMemberRole          = errors.New("role must be admin or member")
	ErrNameConfirmationMismatch   = errors.New("organization name confirmation does not match")
)

// OrganizationService provides business logic for organization operations.
// Sensitive mutations run through the authorization gate: role check first,
// operation-specific preconditions next, PIN confirmation last, and only
// then the mutation.
type OrganizationService struct {
	orgRepo repository.OrganizationRepository
	gate    *authz.Gate
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo repository.OrganizationRepository, gate *authz.Gate) *OrganizationService {
	return &OrganizationService{
		orgRepo: orgRepo,
		gate:    gate,
	}
}

// CreateOrganizationInput represents parameters to create a new organization.
type CreateOrganizationInput struct {
	Name    string
	OwnerID uint64
}

// CreateOrganization creates a new organization and assigns the owner.
func (s *OrganizationService) CreateOrganization(input CreateOrganizationInput) (*models.Organization, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidOrganizationName
	}

	inviteCode, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, ErrInviteCodeGenerationFailed
	}

	org := &models.Organization{
		Name:       input.Name,
		InviteCode: inviteCode,
	}

	if err := s.orgRepo.Create(org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	member := &models.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         input.OwnerID,
		Role:           models.RoleOwner,
		IsOwner:        true,
		JoinedAt:       time.Now(),
	}

	if err := s.orgRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add owner to organization: %w", err)
	}

	return org, nil
}

// ListOrganizationsForUser returns organizations the user belongs to.
func (s *OrganizationService) ListOrganizationsForUser(userID uint64) ([]models.OrganizationMember, error) {
	memberships, err := s.orgRepo.ListMembersByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return memberships, nil
}

// GetOrganizationWithMembers returns an organization and all of its members.
func (s *OrganizationService) GetOrganizationWithMembers(orgID uint64) (*models.Organization, []models.OrganizationMember, error) {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrOrganizationNotFound
		}
		return nil, nil, fmt.Errorf("failed to find organization: %w", err)
	}

	members, err := s.orgRepo.ListMembers(orgID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list organization members: %w", err)
	}

	return org, members, nil
}

// UpdateOrganizationInput holds updatable organization fields.
type UpdateOrganizationInput struct {
	Name      *string
	AvatarURL *string
}

// UpdateOrganization updates an organization's name and avatar.
func (s *OrganizationService) UpdateOrganization(orgID uint64, input UpdateOrganizationInput) (*models.Organization, error) {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidOrganizationName
		}
		org.Name = *input.Name
	}
	if input.AvatarURL != nil {
		org.AvatarURL = *input.AvatarURL
	}

	if err := s.orgRepo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	return org, nil
}

// JoinOrganizationByInvite adds a user to an organization via invite code.
func (s *OrganizationService) JoinOrganizationByInvite(userID uint64, inviteCode string) (*models.Organization, error) {
	org, err := s.orgRepo.FindByInviteCode(inviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, fmt.Errorf("failed to find organization by invite code: %w", err)
	}

	if _, err := s.orgRepo.FindMember(org.ID, userID); err == nil {
		return nil, ErrAlreadyOrganizationMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	isAdmin := false
	member := &models.OrganizationMember{
		OrganizationID: org.ID,
		UserID:         userID,
		Role:           models.RoleMember,
		IsAdmin:        &isAdmin,
		JoinedAt:       time.Now(),
	}

	if err := s.orgRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member to organization: %w", err)
	}

	return org, nil
}

// RegenerateInviteCode generates a new invite code for the organization.
func (s *OrganizationService) RegenerateInviteCode(orgID uint64) (*models.Organization, error) {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	code, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, ErrInviteCodeGenerationFailed
	}

	org.InviteCode = code
	if err := s.orgRepo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to update invite code: %w", err)
	}

	return org, nil
}

// SetPin configures or rotates the organization's confirmation PIN.
// Owner-only; the PIN itself must be exactly four digits.
func (s *OrganizationService) SetPin(orgID, actorID uint64, newPin string) error {
	if _, err := s.gate.Check(actorID, orgID, authz.ActionManagePin); err != nil {
		return err
	}

	if err := authz.ValidatePin(newPin); err != nil {
		return err
	}

	if err := s.orgRepo.SetPin(orgID, newPin); err != nil {
		return fmt.Errorf("failed to set organization PIN: %w", err)
	}

	return nil
}

// RemoveMember removes a member from the organization. Owner-only, PIN
// confirmed. Owners cannot be removed, and the actor cannot remove
// themselves; both fail before the PIN is checked.
func (s *OrganizationService) RemoveMember(orgID, actorID, targetID uint64, suppliedPin string) error {
	caller, err := s.gate.Check(actorID, orgID, authz.ActionRemoveMember)
	if err != nil {
		return err
	}

	target, err := s.orgRepo.FindMember(orgID, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganizationMemberNotFound
		}
		return fmt.Errorf("failed to find organization member: %w", err)
	}

	if err := authz.DecideRemoveMember(caller, target); err != nil {
		return err
	}

	if err := s.gate.ConfirmPin(orgID, suppliedPin); err != nil {
		return err
	}

	if err := s.orgRepo.RemoveMember(orgID, targetID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

// ChangeMemberRole promotes or demotes a member between admin and member.
// Owner-only, PIN confirmed. Owner roles cannot be changed through this
// operation.
func (s *OrganizationService) ChangeMemberRole(orgID, actorID, targetID uint64, role models.OrganizationRole, suppliedPin string) error {
	if role != models.RoleAdmin && role != models.RoleMember {
		return ErrInvalidMemberRole
	}

	if _, err := s.gate.Check(actorID, orgID, authz.ActionChangeMemberRole); err != nil {
		return err
	}

	target, err := s.orgRepo.FindMember(orgID, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganizationMemberNotFound
		}
		return fmt.Errorf("failed to find organization member: %w", err)
	}

	if target.EffectiveRole() == models.RoleOwner {
		return authz.ErrTargetIsOwner
	}

	if err := s.gate.ConfirmPin(orgID, suppliedPin); err != nil {
		return err
	}

	if err := s.orgRepo.UpdateMemberRole(orgID, targetID, role); err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	return nil
}

// DeleteOrganization removes an organization and everything in it.
// Owner-only, and the caller must retype the organization's exact name
// before the PIN is checked.
func (s *OrganizationService) DeleteOrganization(orgID, actorID uint64, nameConfirmation, suppliedPin string) error {
	if _, err := s.gate.Check(actorID, orgID, authz.ActionDeleteOrganization); err != nil {
		return err
	}

	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganizationNotFound
		}
		return fmt.Errorf("failed to find organization: %w", err)
	}

	if org.Name != nameConfirmation {
		return ErrNameConfirmationMismatch
	}

	if err := s.gate.ConfirmPin(orgID, suppliedPin); err != nil {
		return err
	}

	if err := s.orgRepo.Delete(orgID); err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}

	return nil
}
