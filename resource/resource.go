package resource

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidewater-labs/restmcp/auth"
)

// StandardActions is the conventional CRUD family. Actions in this set get
// default tool schemas generated from the resource's field graph; any other
// action must declare its input explicitly at registration.
var StandardActions = []string{"list", "create", "retrieve", "update", "partial_update", "destroy"}

// IsStandardAction reports whether name belongs to the conventional family.
func IsStandardAction(name string) bool {
	for _, a := range StandardActions {
		if a == name {
			return true
		}
	}
	return false
}

// DetailActions are the standard actions operating on one record; they get
// a generated lookup parameter in their kwargs channel.
func isDetailAction(name string) bool {
	switch name {
	case "retrieve", "update", "partial_update", "destroy":
		return true
	}
	return false
}

// VersionScheme resolves the API version of a request, mirroring the version
// resolution stage of the underlying action pipeline.
type VersionScheme interface {
	Determine(ctx context.Context, req *Request) (string, error)
}

// Resource declares one resource-action pipeline: its identity, input field
// graph, action handlers, and pre-invocation policy. Resources are built at
// startup and treated as immutable afterwards.
type Resource struct {
	// Name is the singular resource name, e.g. "customer".
	Name string

	// Fields is the input field graph used for default schema generation.
	Fields []Field

	// LookupField names the record key parameter of detail actions.
	// Defaults to "id".
	LookupField string

	// Handlers maps action name to implementation.
	Handlers map[string]HandlerFunc

	// DetailActions lists custom actions that operate on one record and so
	// need the lookup parameter. Standard detail actions are implied.
	DetailActions []string

	// Pre-invocation policy, applied by the execution adapter in order:
	// authentication, permissions, throttles, version resolution.
	Authenticators []auth.Authenticator
	Permissions    []auth.PermissionChecker
	Throttles      []Throttle
	Versioning     VersionScheme
}

// Lookup returns the lookup field name, defaulting to "id".
func (r *Resource) Lookup() string {
	if r.LookupField == "" {
		return "id"
	}
	return r.LookupField
}

// Handler returns the handler for an action.
func (r *Resource) Handler(action string) (HandlerFunc, bool) {
	h, ok := r.Handlers[action]
	return h, ok
}

// NeedsLookup reports whether an action addresses a single record.
func (r *Resource) NeedsLookup(action string) bool {
	if isDetailAction(action) {
		return true
	}
	for _, a := range r.DetailActions {
		if a == action {
			return true
		}
	}
	return false
}

// DefaultBasename derives the plural catalog basename from the resource
// name: "customer" becomes "customers".
func (r *Resource) DefaultBasename() string {
	name := strings.ToLower(r.Name)
	if name == "" {
		return ""
	}
	if strings.HasSuffix(name, "s") {
		return name
	}
	return name + "s"
}

// Validate checks the declaration for startup-fatal mistakes.
func (r *Resource) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("resource name cannot be empty")
	}
	if len(r.Handlers) == 0 {
		return fmt.Errorf("resource %q declares no action handlers", r.Name)
	}
	for action, h := range r.Handlers {
		if action == "" {
			return fmt.Errorf("resource %q has a handler with an empty action name", r.Name)
		}
		if h == nil {
			return fmt.Errorf("resource %q has a nil handler for action %q", r.Name, action)
		}
	}
	return nil
}
