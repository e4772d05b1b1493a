package schema

import (
	"fmt"

	"github.com/tidewater-labs/restmcp/protocol"
	"github.com/tidewater-labs/restmcp/resource"
)

// The argument envelope of every tool is partitioned into two named input
// channels so arguments from different logical sources can never collide by
// field name: "kwargs" carries identifier parameters (record keys), "body"
// carries the action payload.
const (
	ChannelKwargs = "kwargs"
	ChannelBody   = "body"
)

// ActionInputSchema builds the complete input schema for a standard action
// from the resource's own field graph. Called once at registration.
func ActionInputSchema(r *resource.Resource, action string) (*protocol.SchemaNode, error) {
	if !resource.IsStandardAction(action) {
		return nil, fmt.Errorf("action %q is not a standard action and needs an explicit input spec", action)
	}

	var body *protocol.SchemaNode
	switch action {
	case "create", "update", "partial_update":
		node, err := ObjectSchema(r.Fields)
		if err != nil {
			return nil, err
		}
		if action == "partial_update" {
			node.Required = []string{}
		}
		body = node
	}
	// list, retrieve and destroy take no body.

	return assembleEnvelope(r, action, body), nil
}

// ExplicitInputSchema builds the input schema for a custom action from an
// explicitly supplied field graph. A nil field list declares that the action
// takes no payload; detail actions still receive their lookup parameter.
func ExplicitInputSchema(r *resource.Resource, action string, fields []resource.Field) (*protocol.SchemaNode, error) {
	var body *protocol.SchemaNode
	if fields != nil {
		node, err := ObjectSchema(fields)
		if err != nil {
			return nil, err
		}
		body = node
	}
	return assembleEnvelope(r, action, body), nil
}

func assembleEnvelope(r *resource.Resource, action string, body *protocol.SchemaNode) *protocol.SchemaNode {
	properties := map[string]*protocol.SchemaNode{}
	required := []string{}

	if r.NeedsLookup(action) {
		lookup := r.Lookup()
		properties[ChannelKwargs] = &protocol.SchemaNode{
			Type: "object",
			Properties: map[string]*protocol.SchemaNode{
				lookup: {
					Type:        "string",
					Description: fmt.Sprintf("The %s of the %s", lookup, r.Name),
				},
			},
			Required: []string{lookup},
		}
		required = append(required, ChannelKwargs)
	}

	if body != nil {
		properties[ChannelBody] = body
		if len(body.Required) > 0 {
			required = append(required, ChannelBody)
		}
	}

	return &protocol.SchemaNode{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}
