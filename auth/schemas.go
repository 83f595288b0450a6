package auth

import (
	"github.com/go-webauthn/webauthn/protocol"
)

type OptionsRequest struct {
	Username string `json:"username"`
}

type RegistrationVerifyRequest struct {
	Username              string                               `json:"username"`
	AuthenticatorResponse *protocol.CredentialCreationResponse `json:"authenticatorResponse"`
}

type AuthenticationVerifyRequest struct {
	Username              string                                `json:"username"`
	AuthenticatorResponse *protocol.CredentialAssertionResponse `json:"authenticatorResponse"`
}
