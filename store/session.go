package store

import (
	"time"

	"passkey-server/auth"

	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/google/uuid"
)

// sessionRecord is the stored form of a pending ceremony session. Data is an
// engine-owned blob and round-trips unchanged.
type sessionRecord struct {
	Kind auth.CeremonyKind
	Data *webauthn.SessionData
}

// Begin stores the session for the identity, unconditionally discarding any
// pending one. Challenges are single-use and short-lived; last writer wins.
func (s *Store) Begin(id uuid.UUID, kind auth.CeremonyKind, data *webauthn.SessionData) error {
	mu := s.lock("session:" + id.String())
	mu.Lock()
	defer mu.Unlock()

	b, err := marshalBinary(sessionRecord{Kind: kind, Data: data})
	if err != nil {
		return storeErr("encode session", err)
	}
	if err := s.challenges.Put(id[:], b); err != nil {
		return storeErr("put session", err)
	}
	return nil
}

// Take reads and deletes the identity's pending session. The per-identity
// lock makes the read+delete atomic in-process; two concurrent verify calls
// cannot both consume the same challenge. An expired session counts as
// absent.
func (s *Store) Take(id uuid.UUID) (*auth.ChallengeSession, error) {
	mu := s.lock("session:" + id.String())
	mu.Lock()
	defer mu.Unlock()

	b, err := s.challenges.Get(id[:])
	if err != nil {
		return nil, storeErr("get session", err)
	}
	if b == nil {
		return nil, auth.ErrNoPendingSession
	}

	if err := s.challenges.Delete(id[:]); err != nil {
		return nil, storeErr("delete session", err)
	}

	var record sessionRecord
	if err := unmarshalBinary(b, &record); err != nil {
		return nil, storeErr("decode session", err)
	}

	if record.Data != nil && !record.Data.Expires.IsZero() && time.Now().After(record.Data.Expires) {
		return nil, auth.ErrNoPendingSession
	}

	return &auth.ChallengeSession{Kind: record.Kind, Data: record.Data}, nil
}
