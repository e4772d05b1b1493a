package auth

import "context"

// TokenValidator validates an opaque access token and resolves it to an
// Identity. Implementations cover specific token formats (static tokens for
// tests and small deployments, JWTs against a JWKS endpoint).
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (Identity, error)
}

// TokenAuthenticator authenticates bearer tokens via a TokenValidator.
type TokenAuthenticator struct {
	Validator TokenValidator
}

// NewTokenAuthenticator creates a bearer-token authenticator.
func NewTokenAuthenticator(validator TokenValidator) *TokenAuthenticator {
	return &TokenAuthenticator{Validator: validator}
}

// Authenticate implements Authenticator. A request without a bearer
// credential passes through (nil, nil) so other authenticators can run; an
// invalid credential is a hard failure.
func (a *TokenAuthenticator) Authenticate(ctx context.Context, headers map[string]string) (Identity, error) {
	token, err := BearerToken(headers)
	if err != nil {
		return nil, nil
	}
	identity, err := a.Validator.ValidateToken(ctx, token)
	if err != nil {
		if authErr, ok := err.(*Error); ok {
			return nil, authErr
		}
		return nil, NewNotAuthenticated(err.Error(), a.Scheme())
	}
	return identity, nil
}

// Scheme implements Authenticator.
func (a *TokenAuthenticator) Scheme() string { return "Bearer" }

var _ Authenticator = (*TokenAuthenticator)(nil)

// StaticIdentity is a minimal Identity for static-token and test setups.
type StaticIdentity struct {
	Name  string
	Extra map[string]interface{}
}

func (s *StaticIdentity) Subject() string     { return s.Name }
func (s *StaticIdentity) Claims() interface{} { return s.Extra }

// StaticTokenValidator resolves tokens against a fixed map. Intended for
// development and tests, mirroring a shared-secret deployment.
type StaticTokenValidator struct {
	Tokens map[string]Identity
}

// ValidateToken implements TokenValidator.
func (v *StaticTokenValidator) ValidateToken(ctx context.Context, token string) (Identity, error) {
	identity, ok := v.Tokens[token]
	if !ok {
		return nil, NewNotAuthenticated("Invalid token.", "Bearer")
	}
	return identity, nil
}

var _ TokenValidator = (*StaticTokenValidator)(nil)
