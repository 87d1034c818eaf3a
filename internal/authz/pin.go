package authz

import (
	"crypto/subtle"
	"errors"

	"github.com/workhive/workhive-api/internal/constants"
)

var (
	ErrPinNotConfigured = errors.New("organization PIN has not been configured")
	ErrPinRejected      = errors.New("incorrect PIN")
	ErrInvalidPinFormat = errors.New("PIN must be exactly 4 digits")
)

// PinStatus is the outcome of verifying a supplied PIN against the
// organization's stored PIN.
type PinStatus int

const (
	PinRejected PinStatus = iota
	PinVerified
	PinNotConfigured
)

// ValidatePin checks that a PIN is exactly four numeric digits. Callers
// reject malformed input locally before any storage round trip.
func ValidatePin(pin string) error {
	if len(pin) != constants.PinLength {
		return ErrInvalidPinFormat
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return ErrInvalidPinFormat
		}
	}
	return nil
}

// VerifyPin compares a supplied PIN against the organization's stored PIN.
// An empty stored PIN means none was ever configured, which callers must
// treat differently from a mismatch: owners are sent to set a PIN, non-owner
// admins are told to contact an owner.
func VerifyPin(storedPin, suppliedPin string) PinStatus {
	if storedPin == "" {
		return PinNotConfigured
	}
	if subtle.ConstantTimeCompare([]byte(storedPin), []byte(suppliedPin)) == 1 {
		return PinVerified
	}
	return PinRejected
}
