package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/workhive/workhive-api/internal/authz"
	apierrors "github.com/workhive/workhive-api/internal/errors"
)

// respondGateError maps authorization gate failures to API responses.
// It returns true when err was a gate error and a response has been written.
//
// Membership failures come back as 404 so non-members cannot probe what an
// organization contains.
func respondGateError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, authz.ErrNotAMember):
		apierrors.NotFound(c, "Organization not found")
	case errors.Is(err, authz.ErrInsufficientRole), errors.Is(err, authz.ErrOwnerRequired):
		apierrors.ForbiddenWithCode(c, apierrors.ErrCodeInsufficientRole, "You do not have permission to perform this action")
	case errors.Is(err, authz.ErrTargetIsOwner):
		apierrors.ForbiddenWithCode(c, apierrors.ErrCodeTargetIsOwner, "Owners cannot be targeted by this action")
	case errors.Is(err, authz.ErrCannotRemoveSelf):
		apierrors.BadRequest(c, "You cannot remove yourself from the organization")
	case errors.Is(err, authz.ErrInvalidPinFormat):
		apierrors.BadRequestWithCode(c, apierrors.ErrCodeInvalidFormat, "PIN must be exactly 4 digits")
	case errors.Is(err, authz.ErrPinNotConfigured):
		apierrors.ForbiddenWithCode(c, apierrors.ErrCodePinNotConfigured, "Set a confirmation PIN before performing destructive actions")
	case errors.Is(err, authz.ErrPinRejected):
		apierrors.ForbiddenWithCode(c, apierrors.ErrCodePinRejected, "Incorrect PIN")
	default:
		return false
	}
	return true
}
