package store

import (
	"bytes"

	"passkey-server/auth"

	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/google/uuid"
)

// List returns the identity's credentials in insertion order. An identity
// without credentials yields an empty slice.
func (s *Store) List(id uuid.UUID) ([]webauthn.Credential, error) {
	b, err := s.credentials.Get(id[:])
	if err != nil {
		return nil, storeErr("get credentials", err)
	}
	if b == nil {
		return []webauthn.Credential{}, nil
	}

	var credentials []webauthn.Credential
	if err := unmarshalBinary(b, &credentials); err != nil {
		return nil, storeErr("decode credentials", err)
	}

	return credentials, nil
}

// Append adds a credential to the identity's set. The engine guarantees
// fresh credential IDs, so a collision here means a replayed or misrouted
// registration and fails with auth.ErrDuplicateCredential.
func (s *Store) Append(id uuid.UUID, credential *webauthn.Credential) error {
	mu := s.lock("credentials:" + id.String())
	mu.Lock()
	defer mu.Unlock()

	credentials, err := s.List(id)
	if err != nil {
		return err
	}

	for _, existing := range credentials {
		if bytes.Equal(existing.ID, credential.ID) {
			return auth.ErrDuplicateCredential
		}
	}

	return s.putCredentials(id, append(credentials, *credential))
}

// Update overwrites the credential with the given ID, carrying the new
// signature counter and authenticator metadata. auth.ErrCredentialNotFound
// means the authenticator does not belong to the claimed identity.
func (s *Store) Update(id uuid.UUID, credentialID []byte, credential *webauthn.Credential) error {
	mu := s.lock("credentials:" + id.String())
	mu.Lock()
	defer mu.Unlock()

	credentials, err := s.List(id)
	if err != nil {
		return err
	}

	for i := range credentials {
		if bytes.Equal(credentials[i].ID, credentialID) {
			credentials[i] = *credential
			return s.putCredentials(id, credentials)
		}
	}

	return auth.ErrCredentialNotFound
}

func (s *Store) putCredentials(id uuid.UUID, credentials []webauthn.Credential) error {
	b, err := marshalBinary(credentials)
	if err != nil {
		return storeErr("encode credentials", err)
	}
	if err := s.credentials.Put(id[:], b); err != nil {
		return storeErr("put credentials", err)
	}
	return nil
}
