package auth

import (
	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/google/uuid"
)

// Identity binds a user-chosen username to its handle. The handle is assigned
// on first registration and never reassigned.
type Identity struct {
	ID       uuid.UUID
	Username string
}

type CeremonyKind uint8

const (
	CeremonyRegistration CeremonyKind = iota + 1
	CeremonyAuthentication
)

func (k CeremonyKind) String() string {
	switch k {
	case CeremonyRegistration:
		return "registration"
	case CeremonyAuthentication:
		return "authentication"
	}
	return "unknown"
}

// ChallengeSession is the pending ceremony state for one identity. Data is
// produced and consumed by the engine; it round-trips through the store
// unchanged.
type ChallengeSession struct {
	Kind CeremonyKind
	Data *webauthn.SessionData
}

type IdentityStore interface {
	// ResolveOrCreate returns the handle for username, assigning and
	// persisting a fresh one on first sight.
	ResolveOrCreate(username string) (Identity, error)

	// Resolve returns ErrUnknownUser for a username that never registered.
	Resolve(username string) (Identity, error)
}

type CredentialStore interface {
	// List returns the identity's credentials in insertion order. An identity
	// without credentials yields an empty slice, not an error.
	List(id uuid.UUID) ([]webauthn.Credential, error)

	// Append returns ErrDuplicateCredential if the credential ID is already
	// in the identity's set.
	Append(id uuid.UUID, credential *webauthn.Credential) error

	// Update overwrites the credential with the given ID, returning
	// ErrCredentialNotFound if it is not in the identity's set.
	Update(id uuid.UUID, credentialID []byte, credential *webauthn.Credential) error
}

type SessionStore interface {
	// Begin stores the session, unconditionally discarding any pending one
	// for the identity. Last writer wins.
	Begin(id uuid.UUID, kind CeremonyKind, data *webauthn.SessionData) error

	// Take reads and deletes the identity's pending session atomically,
	// returning ErrNoPendingSession if there is none or it has expired.
	Take(id uuid.UUID) (*ChallengeSession, error)
}

// Engine is the ceremony engine contract, satisfied by *webauthn.WebAuthn.
// All cryptographic verification and challenge generation happens behind it.
type Engine interface {
	BeginRegistration(user webauthn.User, opts ...webauthn.RegistrationOption) (*protocol.CredentialCreation, *webauthn.SessionData, error)
	CreateCredential(user webauthn.User, session webauthn.SessionData, response *protocol.ParsedCredentialCreationData) (*webauthn.Credential, error)
	BeginLogin(user webauthn.User, opts ...webauthn.LoginOption) (*protocol.CredentialAssertion, *webauthn.SessionData, error)
	ValidateLogin(user webauthn.User, session webauthn.SessionData, response *protocol.ParsedCredentialAssertionData) (*webauthn.Credential, error)
}
