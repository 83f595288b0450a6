package store

import (
	"testing"
	"time"

	"passkey-server/auth"

	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionData(id uuid.UUID, challenge string, expires time.Time) *webauthn.SessionData {
	return &webauthn.SessionData{
		Challenge: challenge,
		UserID:    id[:],
		Expires:   expires,
	}
}

func TestTakeConsumesSession(t *testing.T) {
	s := newTestStore(t)
	id := uuid.New()
	expires := time.Now().Add(time.Minute).UTC()

	require.NoError(t, s.Begin(id, auth.CeremonyRegistration, newSessionData(id, "challenge-a", expires)))

	session, err := s.Take(id)
	require.NoError(t, err)
	assert.Equal(t, auth.CeremonyRegistration, session.Kind)
	assert.Equal(t, newSessionData(id, "challenge-a", expires), session.Data)

	_, err = s.Take(id)
	assert.ErrorIs(t, err, auth.ErrNoPendingSession)
}

func TestTakeWithoutBegin(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Take(uuid.New())
	assert.ErrorIs(t, err, auth.ErrNoPendingSession)
}

func TestBeginOverwritesPendingSession(t *testing.T) {
	s := newTestStore(t)
	id := uuid.New()
	expires := time.Now().Add(time.Minute).UTC()

	require.NoError(t, s.Begin(id, auth.CeremonyRegistration, newSessionData(id, "stale", expires)))
	require.NoError(t, s.Begin(id, auth.CeremonyAuthentication, newSessionData(id, "fresh", expires)))

	session, err := s.Take(id)
	require.NoError(t, err)
	assert.Equal(t, auth.CeremonyAuthentication, session.Kind)
	assert.Equal(t, "fresh", session.Data.Challenge)
}

func TestTakeExpiredSession(t *testing.T) {
	s := newTestStore(t)
	id := uuid.New()

	expired := time.Now().Add(-time.Second).UTC()
	require.NoError(t, s.Begin(id, auth.CeremonyAuthentication, newSessionData(id, "old", expired)))

	_, err := s.Take(id)
	assert.ErrorIs(t, err, auth.ErrNoPendingSession)

	_, err = s.Take(id)
	assert.ErrorIs(t, err, auth.ErrNoPendingSession)
}

func TestSessionsArePerIdentity(t *testing.T) {
	s := newTestStore(t)
	alice, bob := uuid.New(), uuid.New()
	expires := time.Now().Add(time.Minute).UTC()

	require.NoError(t, s.Begin(alice, auth.CeremonyRegistration, newSessionData(alice, "for-alice", expires)))
	require.NoError(t, s.Begin(bob, auth.CeremonyRegistration, newSessionData(bob, "for-bob", expires)))

	session, err := s.Take(alice)
	require.NoError(t, err)
	assert.Equal(t, "for-alice", session.Data.Challenge)

	session, err = s.Take(bob)
	require.NoError(t, err)
	assert.Equal(t, "for-bob", session.Data.Challenge)
}
