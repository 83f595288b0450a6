package auth

import (
	"fmt"
	"time"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
)

const CHALLENGE_TTL = 2 * time.Minute

type EngineConfig struct {
	RPID          string
	RPOrigin      string
	RPDisplayName string
}

// NewEngine builds the ceremony engine for one relying party. Challenges it
// issues expire after CHALLENGE_TTL; both the engine and the session store
// reject expired state.
func NewEngine(config EngineConfig) (*webauthn.WebAuthn, error) {
	return webauthn.New(&webauthn.Config{
		RPDisplayName: config.RPDisplayName,
		RPID:          config.RPID,
		RPOrigins:     []string{config.RPOrigin},
		AuthenticatorSelection: protocol.AuthenticatorSelection{
			RequireResidentKey: protocol.ResidentKeyNotRequired(),
			ResidentKey:        protocol.ResidentKeyRequirementDiscouraged,
			UserVerification:   protocol.VerificationPreferred,
		},
		Timeouts: webauthn.TimeoutsConfig{
			Login: webauthn.TimeoutConfig{
				Enforce:    true,
				Timeout:    CHALLENGE_TTL,
				TimeoutUVD: CHALLENGE_TTL,
			},
			Registration: webauthn.TimeoutConfig{
				Enforce:    true,
				Timeout:    CHALLENGE_TTL,
				TimeoutUVD: CHALLENGE_TTL,
			},
		},
	})
}

// Orchestrator runs the four ceremony operations against injected
// collaborators. Per identity and ceremony kind it moves Idle ->
// PendingChallenge on an options call and back to Idle on the matching verify
// call, whatever the outcome. It never inspects engine-owned state itself.
type Orchestrator struct {
	engine      Engine
	identities  IdentityStore
	credentials CredentialStore
	sessions    SessionStore
}

type OrchestratorParams struct {
	Engine      Engine
	Identities  IdentityStore
	Credentials CredentialStore
	Sessions    SessionStore
}

func NewOrchestrator(params OrchestratorParams) (*Orchestrator, error) {
	if params.Engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if params.Identities == nil {
		return nil, fmt.Errorf("identity store is required")
	}
	if params.Credentials == nil {
		return nil, fmt.Errorf("credential store is required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}

	return &Orchestrator{
		engine:      params.Engine,
		identities:  params.Identities,
		credentials: params.Credentials,
		sessions:    params.Sessions,
	}, nil
}

// RegistrationOptions starts a registration ceremony for username, creating
// the identity on first sight. Credentials already in the identity's set are
// excluded so the same authenticator cannot be registered twice.
func (o *Orchestrator) RegistrationOptions(username string) (*protocol.CredentialCreation, error) {
	identity, err := o.identities.ResolveOrCreate(username)
	if err != nil {
		return nil, err
	}

	credentials, err := o.credentials.List(identity.ID)
	if err != nil {
		return nil, err
	}

	var opts []webauthn.RegistrationOption
	if len(credentials) > 0 {
		opts = append(opts, webauthn.WithExclusions(credentialDescriptors(credentials)))
	}

	user := &ceremonyUser{identity: identity, credentials: credentials}
	creation, session, err := o.engine.BeginRegistration(user, opts...)
	if err != nil {
		return nil, fmt.Errorf("begin registration: %w", err)
	}

	if err := o.sessions.Begin(identity.ID, CeremonyRegistration, session); err != nil {
		return nil, err
	}

	return creation, nil
}

// RegistrationVerify consumes the pending registration challenge and hands
// the authenticator response to the engine. The consumed session is gone even
// if verification fails, so a response can never be verified twice. The
// credential set is only touched after the engine accepts.
func (o *Orchestrator) RegistrationVerify(username string, response *protocol.ParsedCredentialCreationData) error {
	identity, err := o.identities.Resolve(username)
	if err != nil {
		return err
	}

	session, err := o.sessions.Take(identity.ID)
	if err != nil {
		return err
	}
	if session.Kind != CeremonyRegistration {
		return ErrNoPendingSession
	}

	user := &ceremonyUser{identity: identity}
	credential, err := o.engine.CreateCredential(user, *session.Data, response)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCeremonyRejected, err)
	}

	return o.credentials.Append(identity.ID, credential)
}

// AuthenticationOptions starts an authentication ceremony scoped to the
// identity's registered credentials.
func (o *Orchestrator) AuthenticationOptions(username string) (*protocol.CredentialAssertion, error) {
	identity, err := o.identities.Resolve(username)
	if err != nil {
		return nil, err
	}

	credentials, err := o.credentials.List(identity.ID)
	if err != nil {
		return nil, err
	}
	if len(credentials) == 0 {
		return nil, ErrNoCredentials
	}

	user := &ceremonyUser{identity: identity, credentials: credentials}
	assertion, session, err := o.engine.BeginLogin(user)
	if err != nil {
		return nil, fmt.Errorf("begin authentication: %w", err)
	}

	if err := o.sessions.Begin(identity.ID, CeremonyAuthentication, session); err != nil {
		return nil, err
	}

	return assertion, nil
}

// AuthenticationVerify consumes the pending authentication challenge,
// validates the assertion through the engine and persists the credential the
// engine reports back, carrying its new signature counter. A counter at or
// below the stored value marks a cloned authenticator and rejects the
// ceremony without mutating anything.
func (o *Orchestrator) AuthenticationVerify(username string, response *protocol.ParsedCredentialAssertionData) error {
	identity, err := o.identities.Resolve(username)
	if err != nil {
		return err
	}

	credentials, err := o.credentials.List(identity.ID)
	if err != nil {
		return err
	}

	session, err := o.sessions.Take(identity.ID)
	if err != nil {
		return err
	}
	if session.Kind != CeremonyAuthentication {
		return ErrNoPendingSession
	}

	user := &ceremonyUser{identity: identity, credentials: credentials}
	credential, err := o.engine.ValidateLogin(user, *session.Data, response)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCeremonyRejected, err)
	}
	if credential.Authenticator.CloneWarning {
		return fmt.Errorf("%w: signature counter regression", ErrCeremonyRejected)
	}

	return o.credentials.Update(identity.ID, credential.ID, credential)
}

// ceremonyUser adapts an identity and its credential set to the engine's user
// contract. The handle's raw 16 bytes are the WebAuthn user handle.
type ceremonyUser struct {
	identity    Identity
	credentials []webauthn.Credential
}

func (u *ceremonyUser) WebAuthnID() []byte {
	return u.identity.ID[:]
}

func (u *ceremonyUser) WebAuthnName() string {
	return u.identity.Username
}

func (u *ceremonyUser) WebAuthnDisplayName() string {
	return u.identity.Username
}

func (u *ceremonyUser) WebAuthnCredentials() []webauthn.Credential {
	return u.credentials
}

func (u *ceremonyUser) WebAuthnIcon() string {
	return ""
}

func credentialDescriptors(credentials []webauthn.Credential) []protocol.CredentialDescriptor {
	descriptors := make([]protocol.CredentialDescriptor, len(credentials))
	for i, credential := range credentials {
		descriptors[i] = credential.Descriptor()
	}
	return descriptors
}
