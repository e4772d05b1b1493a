// Package server implements the tool catalog and the JSON-RPC execution
// engine that exposes registered resources as MCP tools.
package server

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tidewater-labs/restmcp/protocol"
	"github.com/tidewater-labs/restmcp/resource"
	"github.com/tidewater-labs/restmcp/schema"
)

// ToolOverride customizes a single exposed action at registration time.
// For custom actions an input field graph is mandatory: set Input for a
// payload-bearing action, or NoInput for one that takes no payload.
type ToolOverride struct {
	Name        string
	Title       string
	Description string
	Input       []resource.Field
	NoInput     bool
	Output      []resource.Field
}

// ToolDescriptor is a fully materialized catalog entry. Name, titles and
// schemas are computed once at registration and never regenerated.
type ToolDescriptor struct {
	Name         string
	Title        string
	Description  string
	InputSchema  *protocol.SchemaNode
	OutputSchema *protocol.SchemaNode

	res    *resource.Resource
	action string
}

// Binding returns the resource name and action the descriptor routes to.
func (d *ToolDescriptor) Binding() (resourceName, action string) {
	return d.res.Name, d.action
}

// Tool converts the descriptor to its wire representation.
func (d *ToolDescriptor) Tool() protocol.Tool {
	return protocol.Tool{
		Name:         d.Name,
		Title:        d.Title,
		Description:  d.Description,
		InputSchema:  d.InputSchema,
		OutputSchema: d.OutputSchema,
	}
}

// Registry holds the tool catalog in registration order. Registration is
// fail-fast and the registry freezes when serving starts; lookups after
// the freeze need no locking.
type Registry struct {
	mu      sync.Mutex
	frozen  bool
	byName  map[string]*ToolDescriptor
	ordered []*ToolDescriptor
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*ToolDescriptor)}
}

type registerConfig struct {
	basename string
	actions  []string
	// overrideOrder preserves WithTool call order so derived catalog order
	// is the same in every process.
	overrideOrder []string
	overrides     map[string]ToolOverride
}

// RegisterOption configures a RegisterResource call.
type RegisterOption func(*registerConfig)

// WithBasename overrides the derived basename used in tool names and
// generated titles.
func WithBasename(basename string) RegisterOption {
	return func(c *registerConfig) { c.basename = basename }
}

// WithActions restricts the exposed actions to the given subset. Every
// listed action must have a handler on the resource.
func WithActions(actions ...string) RegisterOption {
	return func(c *registerConfig) { c.actions = actions }
}

// WithTool attaches per-action metadata and, for custom actions, the
// mandatory input field graph. Naming a custom action here also exposes it.
func WithTool(action string, o ToolOverride) RegisterOption {
	return func(c *registerConfig) {
		if c.overrides == nil {
			c.overrides = make(map[string]ToolOverride)
		}
		if _, seen := c.overrides[action]; !seen {
			c.overrideOrder = append(c.overrideOrder, action)
		}
		c.overrides[action] = o
	}
}

// RegisterResource materializes one tool per exposed action of the
// resource. Without WithActions, every standard action with a handler is
// exposed; custom actions are exposed only when named via WithActions or
// WithTool.
func (r *Registry) RegisterResource(res *resource.Resource, opts ...RegisterOption) error {
	if res == nil {
		return fmt.Errorf("register: nil resource")
	}
	if err := res.Validate(); err != nil {
		return fmt.Errorf("register %s: %w", res.Name, err)
	}

	cfg := registerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.basename == "" {
		cfg.basename = res.DefaultBasename()
	}

	actions := cfg.actions
	if actions == nil {
		for _, a := range resource.StandardActions {
			if _, ok := res.Handler(a); ok {
				actions = append(actions, a)
			}
		}
		for _, a := range cfg.overrideOrder {
			if !resource.IsStandardAction(a) {
				actions = append(actions, a)
			}
		}
	}
	if len(actions) == 0 {
		return fmt.Errorf("register %s: no actions to expose", res.Name)
	}

	for _, action := range actions {
		if _, ok := res.Handler(action); !ok {
			return fmt.Errorf("register %s: action %q has no handler", res.Name, action)
		}
		if err := r.registerAction(res, action, cfg); err != nil {
			return err
		}
	}
	return nil
}

// RegisterTool materializes a single tool bound to one resource action,
// bypassing the resource-wide defaults. The override carries the optional
// name, title, description and input spec.
func (r *Registry) RegisterTool(res *resource.Resource, action string, o ToolOverride) error {
	if res == nil {
		return fmt.Errorf("register: nil resource")
	}
	if err := res.Validate(); err != nil {
		return fmt.Errorf("register %s: %w", res.Name, err)
	}
	if _, ok := res.Handler(action); !ok {
		return fmt.Errorf("register %s: action %q has no handler", res.Name, action)
	}
	cfg := registerConfig{
		basename:  res.DefaultBasename(),
		overrides: map[string]ToolOverride{action: o},
	}
	return r.registerAction(res, action, cfg)
}

func (r *Registry) registerAction(res *resource.Resource, action string, cfg registerConfig) error {
	o := cfg.overrides[action]

	var input *protocol.SchemaNode
	var err error
	switch {
	case resource.IsStandardAction(action) && o.Input == nil && !o.NoInput:
		input, err = schema.ActionInputSchema(res, action)
	case o.NoInput:
		input, err = schema.ExplicitInputSchema(res, action, nil)
	case o.Input != nil:
		input, err = schema.ExplicitInputSchema(res, action, o.Input)
	default:
		return fmt.Errorf("register %s: custom action %q needs an input field graph (set Input or NoInput)", res.Name, action)
	}
	if err != nil {
		return fmt.Errorf("register %s/%s: %w", res.Name, action, err)
	}

	var output *protocol.SchemaNode
	if o.Output != nil {
		output, err = schema.ObjectSchema(o.Output)
		if err != nil {
			return fmt.Errorf("register %s/%s: output schema: %w", res.Name, action, err)
		}
	}

	name := o.Name
	if name == "" {
		name = cfg.basename + "_" + action
	}
	title := o.Title
	if title == "" {
		title = defaultTitle(action, cfg.basename)
	}
	desc := o.Description
	if desc == "" {
		desc = defaultDescription(action, cfg.basename)
	}

	d := &ToolDescriptor{
		Name:         name,
		Title:        title,
		Description:  desc,
		InputSchema:  input,
		OutputSchema: output,
		res:          res,
		action:       action,
	}
	return r.add(d)
}

func (r *Registry) add(d *ToolDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return fmt.Errorf("register %s: registry is frozen", d.Name)
	}
	if _, exists := r.byName[d.Name]; exists {
		return fmt.Errorf("register %s: duplicate tool name", d.Name)
	}
	r.byName[d.Name] = d
	r.ordered = append(r.ordered, d)
	return nil
}

// Freeze stops further registration. Idempotent.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Get looks up a descriptor by tool name.
func (r *Registry) Get(name string) (*ToolDescriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// List returns the descriptors in registration order.
func (r *Registry) List() []*ToolDescriptor {
	return r.ordered
}

// Len reports the number of registered tools.
func (r *Registry) Len() int {
	return len(r.ordered)
}

var titleVerbs = map[string]string{
	"list":           "List",
	"retrieve":       "Get",
	"create":         "Create",
	"update":         "Update",
	"partial_update": "Partially Update",
	"destroy":        "Delete",
}

// defaultTitle renders "List Customers" for list and "Get Customer" for
// detail actions over a basename of "customers".
func defaultTitle(action, basename string) string {
	words := titleWords(basename)
	verb, ok := titleVerbs[action]
	if !ok {
		verb = titleWords(action)
	}
	if ok && action != "list" {
		words = singular(words)
	}
	return verb + " " + words
}

func defaultDescription(action, basename string) string {
	return capitalize(action) + " " + strings.ReplaceAll(basename, "_", " ")
}

func titleWords(s string) string {
	parts := strings.Split(s, "_")
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func singular(s string) string {
	if strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss") {
		return strings.TrimSuffix(s, "s")
	}
	return s
}
