package protocol

import "fmt"

// ErrorCode is a JSON-RPC error code. The engine only ever emits codes from
// the fixed set below; tool execution failures never surface here (they are
// reported inside a successful response, see CallToolResult.IsError).
type ErrorCode int

const (
	CodeParseError     ErrorCode = -32700
	CodeInvalidRequest ErrorCode = -32600
	CodeMethodNotFound ErrorCode = -32601
	CodeInvalidParams  ErrorCode = -32602
	CodeInternalError  ErrorCode = -32603
)

// RPCError wraps ErrorPayload so handlers can return a specific protocol
// error through an ordinary error value.
type RPCError struct {
	ErrorPayload
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// NewRPCError creates an RPCError with the given code and message.
func NewRPCError(code ErrorCode, message string) *RPCError {
	return &RPCError{ErrorPayload: ErrorPayload{Code: code, Message: message}}
}

// NewMethodNotFoundError creates the error returned for unknown methods and
// unknown tool names; both belong to the method-not-found class.
func NewMethodNotFoundError(name string) *RPCError {
	return NewRPCError(CodeMethodNotFound, fmt.Sprintf("Method not found: %s", name))
}
