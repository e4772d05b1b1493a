// Package schema generates JSON-Schema-shaped tool input descriptions from a
// resource field graph, and validates argument envelopes against them.
// Generation happens once at registration time; nothing here runs on the
// hot path except validation.
package schema

import (
	"fmt"
	"strings"

	"github.com/tidewater-labs/restmcp/protocol"
	"github.com/tidewater-labs/restmcp/resource"
)

// docDelimiter joins label, help text, and format hints into one
// description. Fixed so generated output is stable and testable.
const docDelimiter = ". "

// FieldSchema converts one field definition into a schema node. Unsupported
// kinds are an error so registration fails at startup instead of a caller
// discovering a silently wrong schema.
func FieldSchema(f resource.Field) (*protocol.SchemaNode, error) {
	if f.Many {
		elem := f
		elem.Many = false
		itemNode, err := FieldSchema(elem)
		if err != nil {
			return nil, err
		}
		node := &protocol.SchemaNode{Type: "array", Items: itemNode}
		if !f.AllowEmpty {
			node.MinItems = protocol.IntPtr(1)
		}
		node.Title = f.Label
		node.Description = joinDoc(f.Label, f.HelpText)
		return node, nil
	}

	node, err := baseSchema(f)
	if err != nil {
		return nil, err
	}

	applyConstraints(f, node)

	if f.Default != nil {
		node.Default = f.Default
	}
	if f.Label != "" {
		node.Title = f.Label
	}
	node.Description = joinDoc(f.Label, f.HelpText, node.Description)

	if f.AllowNull {
		node.MarkNullable()
	}
	return node, nil
}

// baseSchema maps a field kind to its schema variant, including the kind's
// own format hints. Choice sets override the base shape with a string enum.
func baseSchema(f resource.Field) (*protocol.SchemaNode, error) {
	if len(f.Choices) > 0 {
		return choiceSchema(f), nil
	}

	switch f.Kind {
	case resource.KindString:
		return stringSchema(f), nil
	case resource.KindInteger:
		return &protocol.SchemaNode{Type: "integer"}, nil
	case resource.KindNumber:
		return &protocol.SchemaNode{Type: "number"}, nil
	case resource.KindBoolean:
		return &protocol.SchemaNode{Type: "boolean"}, nil
	case resource.KindDate:
		return &protocol.SchemaNode{Type: "string", Format: "date", Description: "Date in format: ISO-8601"}, nil
	case resource.KindDateTime:
		return &protocol.SchemaNode{Type: "string", Format: "date-time", Description: "DateTime in format: ISO-8601"}, nil
	case resource.KindTime:
		return &protocol.SchemaNode{Type: "string", Description: "Time in format: ISO-8601"}, nil
	case resource.KindDecimal:
		return decimalSchema(f), nil
	case resource.KindIdentifier:
		return identifierSchema(f), nil
	case resource.KindObject:
		return ObjectSchema(f.Fields)
	default:
		return nil, fmt.Errorf("unsupported field kind: %s", f.Kind)
	}
}

func stringSchema(f resource.Field) *protocol.SchemaNode {
	switch f.Format {
	case resource.FormatEmail:
		return &protocol.SchemaNode{Type: "string", Format: "email", Description: `Valid email address (e.g., "user@example.com")`}
	case resource.FormatURL:
		return &protocol.SchemaNode{Type: "string", Format: "uri", Description: `Valid URL (e.g., "https://example.com")`}
	case resource.FormatUUID:
		return &protocol.SchemaNode{Type: "string", Description: `UUID format (e.g., "123e4567-e89b-12d3-a456-426614174000")`}
	case resource.FormatIPv4:
		return &protocol.SchemaNode{Type: "string", Description: "Valid IPv4 address (e.g., 192.168.1.1)"}
	case resource.FormatIPv6:
		return &protocol.SchemaNode{Type: "string", Description: "Valid IPv6 address (e.g., 2001:db8::1)"}
	case resource.FormatIPAny:
		return &protocol.SchemaNode{Type: "string", Description: "Valid IPv4 or IPv6 address"}
	default:
		return &protocol.SchemaNode{Type: "string"}
	}
}

// choiceSchema renders an enumerated field. Enum values are always strings
// on the wire; the value-to-label mapping goes into the description when the
// labels add information.
func choiceSchema(f resource.Field) *protocol.SchemaNode {
	values := make([]string, 0, len(f.Choices)+1)
	var mappings []string
	for _, c := range f.Choices {
		values = append(values, c.Value)
		if c.Label != "" && c.Label != c.Value {
			mappings = append(mappings, fmt.Sprintf("%q = %s", c.Value, c.Label))
		}
	}
	if f.AllowBlank {
		values = append(values, "")
	}

	node := &protocol.SchemaNode{Type: "string", Enum: values}
	if len(mappings) > 0 {
		node.Description = "Valid choices: " + strings.Join(mappings, ", ")
	}
	return node
}

func decimalSchema(f resource.Field) *protocol.SchemaNode {
	node := &protocol.SchemaNode{Type: "string"}
	var parts []string
	if f.MaxDigits != nil {
		parts = append(parts, fmt.Sprintf("max %d digits", *f.MaxDigits))
	}
	if f.DecimalPlaces != nil {
		parts = append(parts, fmt.Sprintf("%d decimal places", *f.DecimalPlaces))
	}
	if len(parts) > 0 {
		node.Description = fmt.Sprintf("Decimal in format: (%s)", strings.Join(parts, ", "))
	}
	return node
}

func identifierSchema(f resource.Field) *protocol.SchemaNode {
	node := &protocol.SchemaNode{Type: "string"}
	if f.RelatedResource != "" {
		node.Description = fmt.Sprintf("Primary key of the %s", f.RelatedResource)
	} else {
		node.Description = "Primary key of the related record"
	}
	return node
}

// applyConstraints copies every declared constraint verbatim onto the node.
func applyConstraints(f resource.Field, node *protocol.SchemaNode) {
	if f.MaxValue != nil {
		node.Maximum = f.MaxValue
	}
	if f.MinValue != nil {
		node.Minimum = f.MinValue
	}
	if f.MaxLength != nil {
		node.MaxLength = f.MaxLength
	}
	if f.MinLength != nil {
		node.MinLength = f.MinLength
	}
	// A non-blank string field demands at least one character unless a
	// stricter minimum is already declared.
	if isStringShaped(f) && !f.AllowBlank && len(f.Choices) == 0 {
		if node.MinLength == nil || *node.MinLength < 1 {
			node.MinLength = protocol.IntPtr(1)
		}
	}
	if f.Pattern != "" {
		node.Pattern = f.Pattern
	}
}

func isStringShaped(f resource.Field) bool {
	switch f.Kind {
	case resource.KindString, resource.KindDecimal:
		return true
	}
	return false
}

// ObjectSchema renders an object node from a field list, partitioning it
// into properties and the required set. Read-only fields are output-only
// and never appear in input schemas. The required list preserves field
// declaration order.
func ObjectSchema(fields []resource.Field) (*protocol.SchemaNode, error) {
	properties := make(map[string]*protocol.SchemaNode, len(fields))
	required := []string{}

	for _, f := range fields {
		if f.ReadOnly {
			continue
		}
		if f.Name == "" {
			return nil, fmt.Errorf("field with empty name in field graph")
		}
		if _, exists := properties[f.Name]; exists {
			return nil, fmt.Errorf("duplicate field %q in field graph", f.Name)
		}
		node, err := FieldSchema(f)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		properties[f.Name] = node
		if f.Required {
			required = append(required, f.Name)
		}
	}

	return &protocol.SchemaNode{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}, nil
}

func joinDoc(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, docDelimiter)
}
