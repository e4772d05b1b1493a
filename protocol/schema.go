package protocol

// SchemaNode is the recursive JSON-Schema-shaped description of a value.
// It is the only contract a non-interactive caller sees, so every node is
// expected to carry enough title/description/format metadata to be usable
// without documentation.
//
// Type is a string for ordinary nodes, or a two-element ["<type>","null"]
// slice for nullable fields, matching JSON Schema's union form.
type SchemaNode struct {
	Type        interface{}            `json:"type,omitempty"`
	Format      string                 `json:"format,omitempty"`
	Title       string                 `json:"title,omitempty"`
	Description string                 `json:"description,omitempty"`
	Enum        []string               `json:"enum,omitempty"`
	Default     interface{}            `json:"default,omitempty"`
	Pattern     string                 `json:"pattern,omitempty"`
	Minimum     *float64               `json:"minimum,omitempty"`
	Maximum     *float64               `json:"maximum,omitempty"`
	MinLength   *int                   `json:"minLength,omitempty"`
	MaxLength   *int                   `json:"maxLength,omitempty"`
	MinItems    *int                   `json:"minItems,omitempty"`
	MaxItems    *int                   `json:"maxItems,omitempty"`
	Properties  map[string]*SchemaNode `json:"properties,omitempty"`
	Required    []string               `json:"required,omitempty"`
	Items       *SchemaNode            `json:"items,omitempty"`
}

// IntPtr returns a pointer to v, a convenience for constraint literals.
func IntPtr(v int) *int { return &v }

// TypeName returns the node's base type name, unwrapping the nullable
// ["<type>","null"] form.
func (n *SchemaNode) TypeName() string {
	switch t := n.Type.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	case []interface{}:
		if len(t) > 0 {
			if s, ok := t[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

// Nullable reports whether the node accepts JSON null.
func (n *SchemaNode) Nullable() bool {
	switch t := n.Type.(type) {
	case []string:
		for _, v := range t {
			if v == "null" {
				return true
			}
		}
	case []interface{}:
		for _, v := range t {
			if v == "null" {
				return true
			}
		}
	}
	return false
}

// MarkNullable rewrites the node's type to the ["<type>","null"] union form.
func (n *SchemaNode) MarkNullable() {
	if name := n.TypeName(); name != "" && !n.Nullable() {
		n.Type = []string{name, "null"}
	}
}
