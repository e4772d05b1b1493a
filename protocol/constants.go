package protocol

const (
	// JSONRPCVersion is the only JSON-RPC envelope version accepted.
	JSONRPCVersion = "2.0"

	// CurrentProtocolVersion is the MCP revision this server implements.
	CurrentProtocolVersion = "2025-06-18"
	// OldProtocolVersion is an older revision accepted for compatibility.
	// Its tool surface is identical for the subset served here.
	OldProtocolVersion = "2025-03-26"

	// Lifecycle
	MethodInitialize  = "initialize"
	MethodInitialized = "notifications/initialized" // notification, never answered

	// Tools
	MethodListTools = "tools/list"
	MethodCallTool  = "tools/call"

	// Ping
	MethodPing = "ping"
)
