package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidewater-labs/restmcp/logx"
	"github.com/tidewater-labs/restmcp/protocol"
	"github.com/tidewater-labs/restmcp/resource"
)

// Server routes JSON-RPC messages to the tool catalog and runs the
// request pipeline around resource handlers.
type Server struct {
	name         string
	version      string
	instructions string
	logger       logx.Logger
	settings     Settings
	registry     *Registry
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request tracing.
func WithLogger(l logx.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithSettings applies deployment settings.
func WithSettings(st Settings) Option {
	return func(s *Server) { s.settings = st }
}

// WithVersion sets the server version reported at initialize.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithInstructions sets the usage instructions reported at initialize.
func WithInstructions(text string) Option {
	return func(s *Server) { s.instructions = text }
}

// NewServer creates a server with an empty catalog.
func NewServer(name string, opts ...Option) *Server {
	s := &Server{
		name:     name,
		version:  "1.0.0",
		logger:   logx.NewDefaultLogger(),
		registry: NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry exposes the catalog for registration before serving starts.
func (s *Server) Registry() *Registry {
	return s.registry
}

// RegisterResource registers a resource's actions as tools.
func (s *Server) RegisterResource(res *resource.Resource, opts ...RegisterOption) error {
	return s.registry.RegisterResource(res, opts...)
}

// RegisterTool registers a single tool bound to one resource action.
func (s *Server) RegisterTool(res *resource.Resource, action string, o ToolOverride) error {
	return s.registry.RegisterTool(res, action, o)
}

// Settings returns the active deployment settings.
func (s *Server) Settings() Settings {
	return s.settings
}

// HandleMessage processes one raw JSON-RPC message and returns the
// response, or nil when the message is a notification.
func (s *Server) HandleMessage(ctx context.Context, sess *Session, raw []byte) *protocol.Response {
	var req protocol.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		s.logger.Warn("parse error: %v", err)
		return protocol.NewErrorResponse(nil, protocol.CodeParseError, "Parse error", nil)
	}
	if req.JSONRPC != protocol.JSONRPCVersion {
		return protocol.NewErrorResponse(req.ID, protocol.CodeInvalidRequest, "Invalid Request: jsonrpc must be \"2.0\"", nil)
	}
	if req.Method == "" {
		return protocol.NewErrorResponse(req.ID, protocol.CodeInvalidRequest, "Invalid Request: missing method", nil)
	}

	if req.IsNotification() {
		s.handleNotification(sess, &req)
		return nil
	}

	s.logger.Debug("request: method=%s id=%v", req.Method, req.ID)

	switch req.Method {
	case protocol.MethodInitialize:
		return s.handleInitialize(sess, &req)
	case protocol.MethodPing:
		return protocol.NewSuccessResponse(req.ID, map[string]interface{}{})
	case protocol.MethodListTools:
		if resp := s.requireInitialized(sess, &req); resp != nil {
			return resp
		}
		return s.handleListTools(&req)
	case protocol.MethodCallTool:
		if resp := s.requireInitialized(sess, &req); resp != nil {
			return resp
		}
		return s.handleCallTool(ctx, &req)
	default:
		return protocol.NewErrorResponse(req.ID, protocol.CodeMethodNotFound,
			fmt.Sprintf("Method not found: %s", req.Method), nil)
	}
}

func (s *Server) handleNotification(sess *Session, req *protocol.Request) {
	switch req.Method {
	case protocol.MethodInitialized:
		s.logger.Debug("session %s confirmed initialization", sess.ID())
	default:
		s.logger.Debug("ignoring notification: %s", req.Method)
	}
}

func (s *Server) requireInitialized(sess *Session, req *protocol.Request) *protocol.Response {
	if !s.settings.RequireInitialize || sess.Initialized() {
		return nil
	}
	return protocol.NewErrorResponse(req.ID, protocol.CodeInvalidRequest,
		"Invalid Request: session not initialized, send an \"initialize\" request first", nil)
}

func (s *Server) handleInitialize(sess *Session, req *protocol.Request) *protocol.Response {
	var params protocol.InitializeParams
	if err := protocol.UnmarshalParams(req.Params, &params); err != nil {
		return protocol.NewErrorResponse(req.ID, protocol.CodeInvalidParams, "Invalid params", nil)
	}

	requested := params.ProtocolVersion
	if requested == "" {
		requested = protocol.CurrentProtocolVersion
	}
	switch requested {
	case protocol.CurrentProtocolVersion, protocol.OldProtocolVersion:
	default:
		return protocol.NewErrorResponse(req.ID, protocol.CodeInvalidParams,
			fmt.Sprintf("Unsupported protocol version: %s", requested),
			map[string]interface{}{
				"supported": []string{protocol.CurrentProtocolVersion, protocol.OldProtocolVersion},
			})
	}

	sess.Initialize(requested)
	s.logger.Info("session %s initialized: client=%s version=%s",
		sess.ID(), params.ClientInfo.Name, requested)

	result := protocol.InitializeResult{
		ProtocolVersion: requested,
		Capabilities: protocol.ServerCapabilities{
			Tools: &protocol.ToolsCapability{},
		},
		ServerInfo: protocol.Implementation{
			Name:    s.name,
			Version: s.version,
		},
		Instructions: s.instructions,
	}
	return protocol.NewSuccessResponse(req.ID, result)
}

func (s *Server) handleListTools(req *protocol.Request) *protocol.Response {
	var params protocol.ListToolsParams
	if err := protocol.UnmarshalParams(req.Params, &params); err != nil {
		return protocol.NewErrorResponse(req.ID, protocol.CodeInvalidParams, "Invalid params", nil)
	}

	descriptors := s.registry.List()
	tools := make([]protocol.Tool, 0, len(descriptors))
	for _, d := range descriptors {
		tools = append(tools, d.Tool())
	}
	return protocol.NewSuccessResponse(req.ID, protocol.ListToolsResult{Tools: tools})
}

func (s *Server) handleCallTool(ctx context.Context, req *protocol.Request) *protocol.Response {
	var params protocol.CallToolParams
	if err := protocol.UnmarshalParams(req.Params, &params); err != nil {
		return protocol.NewErrorResponse(req.ID, protocol.CodeInvalidParams, "Invalid params", nil)
	}
	if params.Name == "" {
		return protocol.NewErrorResponse(req.ID, protocol.CodeInvalidParams,
			"Invalid params: missing tool name", nil)
	}

	desc, ok := s.registry.Get(params.Name)
	if !ok {
		return protocol.NewErrorResponse(req.ID, protocol.CodeMethodNotFound,
			fmt.Sprintf("Tool not found: %s", params.Name), nil)
	}

	env, err := decodeArguments(params.Arguments)
	if err != nil {
		return protocol.NewErrorResponse(req.ID, protocol.CodeInvalidParams,
			fmt.Sprintf("Invalid params: %v", err), nil)
	}

	result := s.invokeTool(ctx, desc, env)
	return protocol.NewSuccessResponse(req.ID, result)
}
