// Package protocol defines the wire-level structures and constants for the
// MCP-facing JSON-RPC surface of restmcp.
package protocol

import (
	"encoding/json"
	"fmt"
)

// ErrorPayload is the 'error' object of a JSON-RPC error response.
type ErrorPayload struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Request represents a JSON-RPC request or notification. Params are kept raw
// so each handler can unmarshal into its own parameter type.
type Request struct {
	JSONRPC string          `json:"jsonrpc"` // MUST be "2.0"
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the request carries no correlation id and
// therefore must never receive a response.
func (r *Request) IsNotification() bool {
	return r.ID == nil
}

// Response represents a JSON-RPC response object. Exactly one of Result and
// Error is populated; the ID echoes the request's (null when the request id
// could not be parsed).
type Response struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      interface{}   `json:"id"`
	Result  interface{}   `json:"result,omitempty"`
	Error   *ErrorPayload `json:"error,omitempty"`
}

// NewSuccessResponse creates a JSON-RPC success response.
func NewSuccessResponse(id interface{}, result interface{}) *Response {
	return &Response{JSONRPC: JSONRPCVersion, ID: id, Result: result}
}

// NewErrorResponse creates a JSON-RPC error response. The id may be nil when
// the failure occurred before the request id was known.
func NewErrorResponse(id interface{}, code ErrorCode, message string, data interface{}) *Response {
	return &Response{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Error:   &ErrorPayload{Code: code, Message: message, Data: data},
	}
}

// UnmarshalParams decodes a raw params payload into target. A missing or
// null payload decodes into the target's zero value, since several methods
// (initialize without params, tools/list) legitimately omit params.
func UnmarshalParams(raw json.RawMessage, target interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to unmarshal params into %T: %w", target, err)
	}
	return nil
}
