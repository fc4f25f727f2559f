package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/identitysvc/domain"
)

func TestPasswordHashRoundtrip(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("passw0rd")
	require.NoError(t, err)
	assert.NotEqual(t, "passw0rd", hash)

	assert.True(t, svc.Verify(hash, "passw0rd"))
	assert.False(t, svc.Verify(hash, "wrong"))
}

func TestValidatePolicy(t *testing.T) {
	svc := NewPasswordService()

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"too short", "a1b2c3", domain.ErrPasswordTooShort},
		{"digits only", "12345678", domain.ErrPasswordComposition},
		{"letters only", "abcdefgh", domain.ErrPasswordComposition},
		{"letters and digits", "passw0rd", nil},
		{"mixed with symbols", "pa$$w0rd!", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidatePolicy(tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
