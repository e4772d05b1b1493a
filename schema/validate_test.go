package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewater-labs/restmcp/resource"
	"github.com/tidewater-labs/restmcp/schema"
)

func TestValidateEnvelope_MissingRequiredChannel(t *testing.T) {
	input, err := schema.ActionInputSchema(customerResource(), "create")
	require.NoError(t, err)

	verr := schema.ValidateEnvelope(input, nil, nil)
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "body: This field is required.")
}

func TestValidateEnvelope_MissingRequiredField(t *testing.T) {
	input, err := schema.ActionInputSchema(customerResource(), "create")
	require.NoError(t, err)

	verr := schema.ValidateEnvelope(input, nil, map[string]interface{}{"email": "a@b.co"})
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "body.name: This field is required.")
}

func TestValidateEnvelope_BlankRequiredString(t *testing.T) {
	input, err := schema.ActionInputSchema(customerResource(), "create")
	require.NoError(t, err)

	verr := schema.ValidateEnvelope(input, nil, map[string]interface{}{"name": ""})
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "body.name: This field may not be blank.")
}

func TestValidateEnvelope_TypeMismatch(t *testing.T) {
	input, err := schema.ActionInputSchema(customerResource(), "create")
	require.NoError(t, err)

	verr := schema.ValidateEnvelope(input, nil, map[string]interface{}{"name": 42})
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "Expected a string but got int.")
}

func TestValidateEnvelope_MissingLookup(t *testing.T) {
	input, err := schema.ActionInputSchema(customerResource(), "retrieve")
	require.NoError(t, err)

	verr := schema.ValidateEnvelope(input, nil, nil)
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "kwargs: This field is required.")

	verr = schema.ValidateEnvelope(input, map[string]string{"other": "x"}, nil)
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "kwargs.id: This field is required.")
}

func TestValidateEnvelope_ValidInput(t *testing.T) {
	input, err := schema.ActionInputSchema(customerResource(), "create")
	require.NoError(t, err)

	verr := schema.ValidateEnvelope(input, nil, map[string]interface{}{
		"name":  "Ada",
		"email": "ada@example.com",
	})
	assert.NoError(t, verr)
}

func TestValidateEnvelope_UnknownFieldsPassThrough(t *testing.T) {
	input, err := schema.ActionInputSchema(customerResource(), "create")
	require.NoError(t, err)

	verr := schema.ValidateEnvelope(input, nil, map[string]interface{}{
		"name":  "Ada",
		"notes": "handler decides what to do with this",
	})
	assert.NoError(t, verr)
}

func TestValidateEnvelope_EnumAndBounds(t *testing.T) {
	res := &resource.Resource{
		Name: "device",
		Fields: []resource.Field{
			{Name: "state", Kind: resource.KindString, Required: true, Choices: []resource.Choice{
				{Value: "on"}, {Value: "off"},
			}},
			{Name: "level", Kind: resource.KindInteger, MinValue: resource.FloatPtr(0), MaxValue: resource.FloatPtr(10)},
		},
	}
	input, err := schema.ActionInputSchema(res, "create")
	require.NoError(t, err)

	verr := schema.ValidateEnvelope(input, nil, map[string]interface{}{
		"state": "standby",
		"level": float64(11),
	})
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), `"standby" is not a valid choice.`)
	assert.Contains(t, verr.Error(), "Ensure this value is less than or equal to 10.")

	verr = schema.ValidateEnvelope(input, nil, map[string]interface{}{
		"state": "on",
		"level": 2.5,
	})
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "A valid integer is required.")
}

func TestValidateEnvelope_NullHandling(t *testing.T) {
	res := &resource.Resource{
		Name: "note",
		Fields: []resource.Field{
			{Name: "title", Kind: resource.KindString, Required: true},
			{Name: "body", Kind: resource.KindString, AllowNull: true, AllowBlank: true},
		},
	}
	input, err := schema.ActionInputSchema(res, "create")
	require.NoError(t, err)

	verr := schema.ValidateEnvelope(input, nil, map[string]interface{}{
		"title": nil,
	})
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "body.title: This field may not be null.")

	verr = schema.ValidateEnvelope(input, nil, map[string]interface{}{
		"title": "ok",
		"body":  nil,
	})
	assert.NoError(t, verr)
}

func TestValidateEnvelope_NestedArray(t *testing.T) {
	res := &resource.Resource{
		Name: "order",
		Fields: []resource.Field{
			{Name: "items", Kind: resource.KindObject, Many: true, Required: true, Fields: []resource.Field{
				{Name: "sku", Kind: resource.KindString, Required: true},
				{Name: "qty", Kind: resource.KindInteger, Required: true},
			}},
		},
	}
	input, err := schema.ActionInputSchema(res, "create")
	require.NoError(t, err)

	verr := schema.ValidateEnvelope(input, nil, map[string]interface{}{
		"items": []interface{}{},
	})
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "Ensure this field has at least 1 items.")

	verr = schema.ValidateEnvelope(input, nil, map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"sku": "A-1"},
		},
	})
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "body.items[0].qty: This field is required.")
}
