package schema

import (
	"encoding/json"
	"fmt"

	"github.com/tidewater-labs/restmcp/protocol"
	"github.com/tidewater-labs/restmcp/resource"
)

// ValidateEnvelope checks a split argument envelope against a tool's input
// schema before the action runs. Failures come back as a
// *resource.ValidationError whose message names each offending field, so the
// resulting tool-level error tells an automated caller exactly what to fix.
func ValidateEnvelope(input *protocol.SchemaNode, kwargs map[string]string, body map[string]interface{}) error {
	if input == nil {
		return nil
	}
	verr := &resource.ValidationError{}

	for _, channel := range input.Required {
		switch channel {
		case ChannelKwargs:
			if len(kwargs) == 0 {
				verr.Add(ChannelKwargs, "This field is required.")
			}
		case ChannelBody:
			if len(body) == 0 {
				verr.Add(ChannelBody, "This field is required.")
			}
		}
	}

	if node, ok := input.Properties[ChannelKwargs]; ok && len(kwargs) > 0 {
		for _, name := range node.Required {
			if kwargs[name] == "" {
				verr.Add(ChannelKwargs+"."+name, "This field is required.")
			}
		}
	}

	if node, ok := input.Properties[ChannelBody]; ok && len(body) > 0 {
		asValue := make(map[string]interface{}, len(body))
		for k, v := range body {
			asValue[k] = v
		}
		validateObject(ChannelBody, node, asValue, verr)
	}

	if verr.Empty() {
		return nil
	}
	return verr
}

func validateObject(path string, node *protocol.SchemaNode, value map[string]interface{}, verr *resource.ValidationError) {
	for _, name := range node.Required {
		if _, present := value[name]; !present {
			verr.Add(path+"."+name, "This field is required.")
		}
	}
	for name, v := range value {
		prop, known := node.Properties[name]
		if !known {
			// Unknown fields pass through untouched; the action owns the
			// final word on its payload.
			continue
		}
		validateValue(path+"."+name, prop, v, verr)
	}
}

func validateValue(path string, node *protocol.SchemaNode, value interface{}, verr *resource.ValidationError) {
	if value == nil {
		if !node.Nullable() {
			verr.Add(path, "This field may not be null.")
		}
		return
	}

	switch node.TypeName() {
	case "string":
		s, ok := value.(string)
		if !ok {
			verr.Add(path, fmt.Sprintf("Expected a string but got %T.", value))
			return
		}
		if node.MinLength != nil && len(s) < *node.MinLength {
			if *node.MinLength == 1 && s == "" {
				verr.Add(path, "This field may not be blank.")
			} else {
				verr.Add(path, fmt.Sprintf("Ensure this field has at least %d characters.", *node.MinLength))
			}
		}
		if node.MaxLength != nil && len(s) > *node.MaxLength {
			verr.Add(path, fmt.Sprintf("Ensure this field has no more than %d characters.", *node.MaxLength))
		}
		if len(node.Enum) > 0 && !containsString(node.Enum, s) {
			verr.Add(path, fmt.Sprintf("%q is not a valid choice.", s))
		}
	case "integer":
		n, ok := asNumber(value)
		if !ok || n != float64(int64(n)) {
			verr.Add(path, "A valid integer is required.")
			return
		}
		checkBounds(path, node, n, verr)
	case "number":
		n, ok := asNumber(value)
		if !ok {
			verr.Add(path, "A valid number is required.")
			return
		}
		checkBounds(path, node, n, verr)
	case "boolean":
		if _, ok := value.(bool); !ok {
			verr.Add(path, "Must be a valid boolean.")
		}
	case "object":
		m, ok := value.(map[string]interface{})
		if !ok {
			verr.Add(path, fmt.Sprintf("Expected an object but got %T.", value))
			return
		}
		validateObject(path, node, m, verr)
	case "array":
		items, ok := value.([]interface{})
		if !ok {
			verr.Add(path, fmt.Sprintf("Expected an array but got %T.", value))
			return
		}
		if node.MinItems != nil && len(items) < *node.MinItems {
			verr.Add(path, fmt.Sprintf("Ensure this field has at least %d items.", *node.MinItems))
		}
		if node.MaxItems != nil && len(items) > *node.MaxItems {
			verr.Add(path, fmt.Sprintf("Ensure this field has no more than %d items.", *node.MaxItems))
		}
		if node.Items != nil {
			for i, item := range items {
				validateValue(fmt.Sprintf("%s[%d]", path, i), node.Items, item, verr)
			}
		}
	}
}

func checkBounds(path string, node *protocol.SchemaNode, n float64, verr *resource.ValidationError) {
	if node.Minimum != nil && n < *node.Minimum {
		verr.Add(path, fmt.Sprintf("Ensure this value is greater than or equal to %v.", *node.Minimum))
	}
	if node.Maximum != nil && n > *node.Maximum {
		verr.Add(path, fmt.Sprintf("Ensure this value is less than or equal to %v.", *node.Maximum))
	}
}

func asNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
