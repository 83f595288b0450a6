package auth_test

import (
	"errors"
	"fmt"
	"testing"

	"passkey-server/auth"

	"github.com/stretchr/testify/assert"
)

func TestIsCeremonyFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unknown user", auth.ErrUnknownUser, true},
		{"no credentials", auth.ErrNoCredentials, true},
		{"no pending session", auth.ErrNoPendingSession, true},
		{"ceremony rejected", auth.ErrCeremonyRejected, true},
		{"duplicate credential", auth.ErrDuplicateCredential, true},
		{"credential not found", auth.ErrCredentialNotFound, true},
		{"wrapped rejection", fmt.Errorf("%w: signature counter regression", auth.ErrCeremonyRejected), true},
		{"store unavailable", auth.ErrStoreUnavailable, false},
		{"arbitrary error", errors.New("disk on fire"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.IsCeremonyFailure(tt.err))
		})
	}
}
