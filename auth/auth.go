// Package auth defines the authentication and authorization interfaces
// consumed by the execution adapter, plus bearer-token implementations.
// Only the pass/fail outcome and the error shape of these checks are part
// of the protocol contract; concrete backends are replaceable.
package auth

import (
	"context"
	"fmt"
	"net/http"
)

// Identity represents the authenticated entity (user or client application)
// after a successful check. It can carry claims from the credential.
type Identity interface {
	// Subject returns a unique identifier for the identity.
	Subject() string
	// Claims returns the claims associated with the identity; the concrete
	// type depends on the credential format.
	Claims() interface{}
}

// Authenticator attempts to establish an Identity from request headers.
// Returning (nil, nil) means "no credentials for my scheme present" so the
// next authenticator can run; returning an error aborts the check chain.
type Authenticator interface {
	Authenticate(ctx context.Context, headers map[string]string) (Identity, error)
	// Scheme returns the WWW-Authenticate challenge advertised when
	// authentication fails, e.g. "Bearer".
	Scheme() string
}

// PermissionChecker decides whether an identity may perform an action.
// A nil identity means the request is anonymous.
type PermissionChecker interface {
	CheckPermission(ctx context.Context, identity Identity, action string) error
}

// ErrorKind distinguishes the two failure classes this package produces.
type ErrorKind int

const (
	KindAuthentication ErrorKind = iota
	KindPermission
)

// Error is the typed failure returned by authenticators and permission
// checkers. StatusCode and Scheme are the machine-readable detail that must
// survive translation into the tool-level error payload.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Scheme     string // WWW-Authenticate hint; empty for permission failures
}

func (e *Error) Error() string { return e.Message }

// NewNotAuthenticated creates an authentication failure with a 401 status.
func NewNotAuthenticated(message, scheme string) *Error {
	if message == "" {
		message = "Authentication credentials were not provided."
	}
	return &Error{
		Kind:       KindAuthentication,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
		Scheme:     scheme,
	}
}

// NewPermissionDenied creates a permission failure with a 403 status.
func NewPermissionDenied(message string) *Error {
	if message == "" {
		message = "You do not have permission to perform this action."
	}
	return &Error{
		Kind:       KindPermission,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// AllowAll is a PermissionChecker that grants every action. Useful for
// resources that gate on authentication alone.
type AllowAll struct{}

func (AllowAll) CheckPermission(ctx context.Context, identity Identity, action string) error {
	return nil
}

// RequireAuthenticated denies anonymous access and nothing else.
type RequireAuthenticated struct{}

func (RequireAuthenticated) CheckPermission(ctx context.Context, identity Identity, action string) error {
	if identity == nil {
		return NewPermissionDenied("Authentication required.")
	}
	return nil
}

var (
	_ PermissionChecker = AllowAll{}
	_ PermissionChecker = RequireAuthenticated{}
)

// --- Context handling ---

type identityKeyType struct{}

var identityKey = identityKeyType{}

// ContextWithIdentity returns a context carrying the given identity.
func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext retrieves the identity from the context, if present.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

// BearerToken extracts the token from an "Authorization: Bearer ..." header.
func BearerToken(headers map[string]string) (string, error) {
	header := headers["Authorization"]
	if header == "" {
		return "", fmt.Errorf("no Authorization header")
	}
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return "", fmt.Errorf("Authorization header is not a Bearer credential")
	}
	return header[len(prefix):], nil
}
