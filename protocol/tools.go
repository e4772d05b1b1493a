package protocol

import "encoding/json"

// Tool describes one invocable operation as published by tools/list.
type Tool struct {
	Name         string      `json:"name"`
	Title        string      `json:"title,omitempty"`
	Description  string      `json:"description,omitempty"`
	InputSchema  *SchemaNode `json:"inputSchema"`
	OutputSchema *SchemaNode `json:"outputSchema,omitempty"`
}

// ListToolsParams defines the parameters for a 'tools/list' request. The
// cursor is accepted but unused; catalogs here are below any practical
// pagination threshold.
type ListToolsParams struct {
	Cursor string `json:"cursor,omitempty"`
}

// ListToolsResult is the result payload of 'tools/list'. NextCursor is
// reserved so pagination can be added without changing the response shape.
type ListToolsResult struct {
	Tools      []Tool `json:"tools"`
	NextCursor string `json:"nextCursor,omitempty"`
}

// CallToolParams defines the parameters for a 'tools/call' request.
// Arguments stay raw until the target tool's descriptor is resolved.
type CallToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// TextContent is the single content variant emitted by this server.
type TextContent struct {
	Type string `json:"type"` // always "text"
	Text string `json:"text"`
}

// NewTextContent creates a text content item.
func NewTextContent(text string) TextContent {
	return TextContent{Type: "text", Text: text}
}

// CallToolResult is the result payload of 'tools/call'. Per the 2025-06-18
// revision the structured result is carried twice: serialized into the text
// content for backward compatibility and verbatim in StructuredContent.
// IsError marks a tool-level failure; the protocol exchange itself succeeded.
type CallToolResult struct {
	Content           []TextContent `json:"content"`
	StructuredContent interface{}   `json:"structuredContent,omitempty"`
	IsError           bool          `json:"isError,omitempty"`
}
