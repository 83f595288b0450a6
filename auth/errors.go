package auth

import "errors"

var (
	// ErrUnknownUser is returned when a username has never registered.
	ErrUnknownUser = errors.New("unknown user")

	// ErrNoCredentials is returned when an identity has no registered
	// credentials to authenticate against.
	ErrNoCredentials = errors.New("no registered credentials")

	// ErrNoPendingSession is returned when a verify call finds no pending
	// challenge for the identity: never started, expired, or already consumed.
	ErrNoPendingSession = errors.New("no pending ceremony session")

	// ErrCeremonyRejected is returned when the engine rejects an
	// authenticator response: signature or challenge mismatch, malformed
	// response, or a signature counter regression.
	ErrCeremonyRejected = errors.New("ceremony rejected")

	// ErrDuplicateCredential is returned when a credential ID is already
	// present in the identity's set.
	ErrDuplicateCredential = errors.New("duplicate credential")

	// ErrCredentialNotFound is returned when a credential ID is not in the
	// identity's set.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrStoreUnavailable wraps I/O failures talking to the persistence
	// layer.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// IsCeremonyFailure reports whether err is a request-scoped ceremony failure.
// All of these surface as one indistinguishable response so the caller cannot
// learn which check failed (username enumeration, credential guessing).
func IsCeremonyFailure(err error) bool {
	return errors.Is(err, ErrUnknownUser) ||
		errors.Is(err, ErrNoCredentials) ||
		errors.Is(err, ErrNoPendingSession) ||
		errors.Is(err, ErrCeremonyRejected) ||
		errors.Is(err, ErrDuplicateCredential) ||
		errors.Is(err, ErrCredentialNotFound)
}
