package store

import (
	"testing"

	"passkey-server/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOrCreateIsStable(t *testing.T) {
	s := newTestStore(t)

	first, err := s.ResolveOrCreate("alice")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.Equal(t, "alice", first.Username)

	second, err := s.ResolveOrCreate("alice")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveOrCreateAssignsDistinctHandles(t *testing.T) {
	s := newTestStore(t)

	alice, err := s.ResolveOrCreate("alice")
	require.NoError(t, err)

	bob, err := s.ResolveOrCreate("bob")
	require.NoError(t, err)

	assert.NotEqual(t, alice.ID, bob.ID)
}

func TestResolveUnknownUser(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Resolve("never-registered")
	assert.ErrorIs(t, err, auth.ErrUnknownUser)
}

func TestResolveAfterCreate(t *testing.T) {
	s := newTestStore(t)

	created, err := s.ResolveOrCreate("carol")
	require.NoError(t, err)

	resolved, err := s.Resolve("carol")
	require.NoError(t, err)
	assert.Equal(t, created, resolved)
}
