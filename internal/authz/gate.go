package authz

import (
	"errors"
	"fmt"

	"github.com/workhive/workhive-api/internal/models"
	"github.com/workhive/workhive-api/internal/repository"
	"gorm.io/gorm"
)

// Gate composes the authorization policy with PIN confirmation for the
// sensitive-action sequence: resolve membership, decide, confirm PIN,
// and only then let the caller run the mutation.
//
// Services with extra preconditions (a category that still has resources,
// a delete-organization name confirmation) run Check first, apply the
// precondition, then ConfirmPin, so preconditions fail before the user is
// ever asked for a PIN.
type Gate struct {
	orgRepo repository.OrganizationRepository
}

// NewGate creates a Gate backed by the organization repository.
func NewGate(orgRepo repository.OrganizationRepository) *Gate {
	return &Gate{orgRepo: orgRepo}
}

// Check resolves the caller's membership and applies the policy. It returns
// the membership row so callers can reuse it without a second lookup.
func (g *Gate) Check(userID, organizationID uint64, action Action) (*models.OrganizationMember, error) {
	member, err := g.orgRepo.FindMember(organizationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAMember
		}
		return nil, fmt.Errorf("failed to resolve membership: %w", err)
	}

	if err := DecideError(member, action); err != nil {
		return nil, err
	}

	return member, nil
}

// ConfirmPin verifies a supplied PIN against the organization's stored PIN.
// Malformed input is rejected before the organization is loaded.
func (g *Gate) ConfirmPin(organizationID uint64, suppliedPin string) error {
	if err := ValidatePin(suppliedPin); err != nil {
		return err
	}

	org, err := g.orgRepo.FindByID(organizationID)
	if err != nil {
		return fmt.Errorf("failed to load organization: %w", err)
	}

	switch VerifyPin(org.Pin, suppliedPin) {
	case PinVerified:
		return nil
	case PinNotConfigured:
		return ErrPinNotConfigured
	default:
		return ErrPinRejected
	}
}

// Authorize runs the full sequence for actions without extra preconditions.
func (g *Gate) Authorize(userID, organizationID uint64, action Action, suppliedPin string) (*models.OrganizationMember, error) {
	member, err := g.Check(userID, organizationID, action)
	if err != nil {
		return nil, err
	}

	if action.RequiresPin() {
		if err := g.ConfirmPin(organizationID, suppliedPin); err != nil {
			return nil, err
		}
	}

	return member, nil
}
