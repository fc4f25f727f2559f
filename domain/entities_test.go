package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOtpCodeIsExpired(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		ts := now.Add(d)
		return &ts
	}

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{"nil expiry never expires", nil, false},
		{"future expiry", at(time.Minute), false},
		{"expiry instant counts as expired", at(0), true},
		{"past expiry", at(-time.Second), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			otp := &OtpCode{ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, otp.IsExpired(now))
		})
	}
}
