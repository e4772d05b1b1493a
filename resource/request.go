package resource

import (
	"context"

	"github.com/tidewater-labs/restmcp/auth"
)

// Request is the caller-visible invocation context handed to action
// handlers. It is built fresh for every dispatch and never reused.
type Request struct {
	// Action is the name of the action being invoked.
	Action string
	// Body is the primary payload channel of the argument envelope.
	Body map[string]interface{}
	// Kwargs is the identifier channel (record keys and the like).
	Kwargs map[string]string
	// Headers carries transport headers, used by authenticators.
	Headers map[string]string
	// Identity is the authenticated caller, nil when anonymous.
	Identity auth.Identity
	// Version is the resolved API version, empty when unversioned.
	Version string

	// protocolOrigin is a tri-state flag: unset until tagged, then true for
	// protocol-originated calls. Handlers that branch on calling context
	// must be able to tell "not tagged" apart from "tagged false".
	protocolOrigin *bool
}

// SetProtocolOrigin tags the request with its transport origin.
func (r *Request) SetProtocolOrigin(fromProtocol bool) {
	r.protocolOrigin = &fromProtocol
}

// ProtocolOrigin reports the origin flag. ok is false when the request was
// never tagged, which is distinct from a request tagged false.
func (r *Request) ProtocolOrigin() (value, ok bool) {
	if r.protocolOrigin == nil {
		return false, false
	}
	return *r.protocolOrigin, true
}

// HandlerFunc executes one resource action. The returned value is serialized
// verbatim as the tool's output; a nil value with a nil error denotes a
// completed operation with no payload (e.g. destroy).
type HandlerFunc func(ctx context.Context, req *Request) (interface{}, error)
