package authz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatePin(t *testing.T) {
	tests := []struct {
		name    string
		pin     string
		wantErr bool
	}{
		{"valid pin", "1234", false},
		{"valid with leading zero", "0000", false},
		{"too short", "123", true},
		{"too long", "12345", true},
		{"empty", "", true},
		{"letters", "12ab", true},
		{"spaces", "12 4", true},
		{"unicode digits rejected", "１２３４", true},
		{"negative-looking", "-123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePin(tt.pin)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPinFormat)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestVerifyPin(t *testing.T) {
	require.Equal(t, PinVerified, VerifyPin("1234", "1234"))
	require.Equal(t, PinRejected, VerifyPin("1234", "4321"))
	require.Equal(t, PinRejected, VerifyPin("1234", ""))

	// An unconfigured PIN is not a mismatch; callers route owners to
	// PIN setup instead of telling them the PIN was wrong.
	require.Equal(t, PinNotConfigured, VerifyPin("", "1234"))
	require.Equal(t, PinNotConfigured, VerifyPin("", ""))
}
