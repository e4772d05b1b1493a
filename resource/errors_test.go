package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_MessageIsDeterministic(t *testing.T) {
	verr := &ValidationError{}
	verr.Add("body.zeta", "This field is required.")
	verr.Add("body.alpha", "This field may not be blank.")

	want := "invalid input: body.alpha: This field may not be blank., body.zeta: This field is required."
	assert.Equal(t, want, verr.Error())
	assert.Equal(t, want, verr.Error())
}

func TestValidationError_MultipleProblemsPerField(t *testing.T) {
	verr := &ValidationError{}
	verr.Add("body.age", "A valid integer is required.")
	verr.Add("body.age", "Ensure this value is greater than or equal to 0.")

	assert.Contains(t, verr.Error(),
		"body.age: A valid integer is required.; Ensure this value is greater than or equal to 0.")
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Resource: "customer", Key: "42"}
	assert.Equal(t, `customer with key "42" not found`, err.Error())
}

func TestDefaultBasename(t *testing.T) {
	assert.Equal(t, "customers", (&Resource{Name: "customer"}).DefaultBasename())
	assert.Equal(t, "orders", (&Resource{Name: "Order"}).DefaultBasename())
	assert.Equal(t, "address", (&Resource{Name: "address"}).DefaultBasename())
}

func TestResourceValidate(t *testing.T) {
	noop := func(ctx context.Context, req *Request) (interface{}, error) { return nil, nil }

	assert.Error(t, (&Resource{}).Validate())
	assert.Error(t, (&Resource{Name: "x"}).Validate())
	assert.Error(t, (&Resource{
		Name:     "x",
		Handlers: map[string]HandlerFunc{"list": nil},
	}).Validate())
	assert.NoError(t, (&Resource{
		Name:     "x",
		Handlers: map[string]HandlerFunc{"list": noop},
	}).Validate())
}

func TestNeedsLookup(t *testing.T) {
	r := &Resource{Name: "x", DetailActions: []string{"deactivate"}}

	assert.True(t, r.NeedsLookup("retrieve"))
	assert.True(t, r.NeedsLookup("destroy"))
	assert.True(t, r.NeedsLookup("deactivate"))
	assert.False(t, r.NeedsLookup("list"))
	assert.False(t, r.NeedsLookup("create"))
	assert.False(t, r.NeedsLookup("export"))
}
