package protocol_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewater-labs/restmcp/protocol"
)

func TestRequestUnmarshal(t *testing.T) {
	raw := []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{"cursor":"abc"}}`)

	var req protocol.Request
	require.NoError(t, json.Unmarshal(raw, &req))

	assert.Equal(t, "2.0", req.JSONRPC)
	assert.Equal(t, "tools/list", req.Method)
	assert.False(t, req.IsNotification())

	var params protocol.ListToolsParams
	require.NoError(t, protocol.UnmarshalParams(req.Params, &params))
	assert.Equal(t, "abc", params.Cursor)
}

func TestRequestNotification(t *testing.T) {
	raw := []byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`)

	var req protocol.Request
	require.NoError(t, json.Unmarshal(raw, &req))
	assert.True(t, req.IsNotification())
}

func TestUnmarshalParams_AbsentAndNull(t *testing.T) {
	var params protocol.ListToolsParams
	assert.NoError(t, protocol.UnmarshalParams(nil, &params))
	assert.NoError(t, protocol.UnmarshalParams([]byte("null"), &params))
	assert.Equal(t, "", params.Cursor)
}

func TestSuccessResponseMarshal(t *testing.T) {
	resp := protocol.NewSuccessResponse(float64(7), map[string]string{"ok": "yes"})
	out, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.JSONEq(t, `{"jsonrpc":"2.0","id":7,"result":{"ok":"yes"}}`, string(out))
}

func TestErrorResponseMarshal_NullID(t *testing.T) {
	resp := protocol.NewErrorResponse(nil, protocol.CodeParseError, "Parse error", nil)
	out, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.JSONEq(t, `{"jsonrpc":"2.0","id":null,"error":{"code":-32700,"message":"Parse error"}}`, string(out))
}

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, protocol.ErrorCode(-32700), protocol.CodeParseError)
	assert.Equal(t, protocol.ErrorCode(-32600), protocol.CodeInvalidRequest)
	assert.Equal(t, protocol.ErrorCode(-32601), protocol.CodeMethodNotFound)
	assert.Equal(t, protocol.ErrorCode(-32602), protocol.CodeInvalidParams)
	assert.Equal(t, protocol.ErrorCode(-32603), protocol.CodeInternalError)
}

func TestCallToolResultMarshal(t *testing.T) {
	result := protocol.CallToolResult{
		Content:           []protocol.TextContent{protocol.NewTextContent(`{"a":1}`)},
		StructuredContent: map[string]int{"a": 1},
	}
	out, err := json.Marshal(result)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"content":[{"type":"text","text":"{\"a\":1}"}],
		"structuredContent":{"a":1}
	}`, string(out))
}

func TestSchemaNodeNullableForms(t *testing.T) {
	node := &protocol.SchemaNode{Type: "string"}
	assert.Equal(t, "string", node.TypeName())
	assert.False(t, node.Nullable())

	node.MarkNullable()
	assert.Equal(t, "string", node.TypeName())
	assert.True(t, node.Nullable())

	// Idempotent.
	node.MarkNullable()
	assert.Equal(t, []string{"string", "null"}, node.Type)
}
