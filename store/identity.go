package store

import (
	"errors"

	"passkey-server/auth"

	"github.com/google/uuid"
)

// Resolve returns the identity for username, or auth.ErrUnknownUser if the
// username has never registered.
func (s *Store) Resolve(username string) (auth.Identity, error) {
	b, err := s.users.Get([]byte(username))
	if err != nil {
		return auth.Identity{}, storeErr("get identity", err)
	}
	if b == nil {
		return auth.Identity{}, auth.ErrUnknownUser
	}

	id, err := uuid.FromBytes(b)
	if err != nil {
		return auth.Identity{}, storeErr("decode identity", err)
	}

	return auth.Identity{ID: id, Username: username}, nil
}

// ResolveOrCreate returns the existing identity for username, assigning and
// persisting a fresh handle on first sight. A mapping is written at most
// once and never reassigned.
func (s *Store) ResolveOrCreate(username string) (auth.Identity, error) {
	mu := s.lock("identity:" + username)
	mu.Lock()
	defer mu.Unlock()

	identity, err := s.Resolve(username)
	if err == nil {
		return identity, nil
	}
	if !errors.Is(err, auth.ErrUnknownUser) {
		return auth.Identity{}, err
	}

	id := uuid.New()
	if err := s.users.Put([]byte(username), id[:]); err != nil {
		return auth.Identity{}, storeErr("put identity", err)
	}

	return auth.Identity{ID: id, Username: username}, nil
}
