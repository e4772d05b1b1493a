package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/tidewater-labs/restmcp/auth"
	"github.com/tidewater-labs/restmcp/protocol"
	"github.com/tidewater-labs/restmcp/resource"
	"github.com/tidewater-labs/restmcp/schema"
)

// argumentEnvelope is the decoded two-channel tool argument object.
type argumentEnvelope struct {
	Kwargs map[string]string      `mapstructure:"kwargs"`
	Body   map[string]interface{} `mapstructure:"body"`
}

// decodeArguments splits the raw arguments object into the kwargs and body
// channels. Scalar kwargs values arriving as numbers are coerced to their
// string form, since record keys travel as strings internally.
func decodeArguments(raw json.RawMessage) (argumentEnvelope, error) {
	var env argumentEnvelope
	if len(raw) == 0 {
		return env, nil
	}

	var top map[string]interface{}
	if err := json.Unmarshal(raw, &top); err != nil {
		return env, fmt.Errorf("arguments must be an object: %w", err)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &env,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return env, err
	}
	if err := dec.Decode(top); err != nil {
		return env, fmt.Errorf("malformed arguments: %w", err)
	}
	return env, nil
}

// invokeTool runs the full pipeline around one action handler. Every
// failure past tool resolution is a tool-level error; the JSON-RPC
// response itself stays successful.
func (s *Server) invokeTool(ctx context.Context, desc *ToolDescriptor, env argumentEnvelope) *protocol.CallToolResult {
	res, action := desc.res, desc.action

	req := &resource.Request{
		Action:  action,
		Body:    env.Body,
		Kwargs:  env.Kwargs,
		Headers: HeadersFromContext(ctx),
	}
	req.SetProtocolOrigin(true)

	if !s.settings.BypassAuthentication {
		if result := s.authenticate(ctx, res, req); result != nil {
			return result
		}
	}

	if !s.settings.BypassPermissions {
		for _, p := range res.Permissions {
			if err := p.CheckPermission(ctx, req.Identity, action); err != nil {
				s.logger.Info("tool %s: permission denied: %v", desc.Name, err)
				return authFailureResult(err)
			}
		}
	}

	// Throttles run regardless of the bypass settings.
	for _, t := range res.Throttles {
		if err := t.Allow(ctx, req); err != nil {
			s.logger.Info("tool %s: throttled: %v", desc.Name, err)
			return throttleFailureResult(err)
		}
	}

	if res.Versioning != nil {
		version, err := res.Versioning.Determine(ctx, req)
		if err != nil {
			return executionFailureResult(err)
		}
		req.Version = version
	}

	if err := schema.ValidateEnvelope(desc.InputSchema, req.Kwargs, req.Body); err != nil {
		s.logger.Debug("tool %s: invalid input: %v", desc.Name, err)
		return executionFailureResult(err)
	}

	handler, _ := res.Handler(action)
	out, err := handler(auth.ContextWithIdentity(ctx, req.Identity), req)
	if err != nil {
		s.logger.Info("tool %s: handler error: %v", desc.Name, err)
		return executionFailureResult(err)
	}

	if out == nil {
		out = map[string]interface{}{"message": "Operation completed successfully"}
	}
	return successResult(out)
}

// authenticate runs the resource's authenticator chain. It returns a framed
// failure result, or nil when the request may proceed.
func (s *Server) authenticate(ctx context.Context, res *resource.Resource, req *resource.Request) *protocol.CallToolResult {
	if len(res.Authenticators) == 0 {
		return nil
	}
	for _, a := range res.Authenticators {
		identity, err := a.Authenticate(ctx, req.Headers)
		if err != nil {
			s.logger.Info("authentication failed: %v", err)
			return authFailureResult(err)
		}
		if identity != nil {
			req.Identity = identity
			return nil
		}
	}
	// Authenticators are declared but none matched a credential.
	scheme := res.Authenticators[0].Scheme()
	return authFailureResult(auth.NewNotAuthenticated(
		"Authentication credentials were not provided.", scheme))
}

func successResult(out interface{}) *protocol.CallToolResult {
	text, err := json.Marshal(out)
	if err != nil {
		return &protocol.CallToolResult{
			Content: []protocol.TextContent{protocol.NewTextContent(
				fmt.Sprintf("Error executing tool: result not serializable: %v", err))},
			IsError: true,
		}
	}
	return &protocol.CallToolResult{
		Content:           []protocol.TextContent{protocol.NewTextContent(string(text))},
		StructuredContent: out,
	}
}

// authFailureResult frames authentication and permission failures. The
// machine detail lands in structuredContent so callers never have to parse
// the human-readable text.
func authFailureResult(err error) *protocol.CallToolResult {
	detail := map[string]interface{}{}
	message := err.Error()

	var ae *auth.Error
	if errors.As(err, &ae) {
		detail["status_code"] = ae.StatusCode
		if ae.Scheme != "" {
			detail["www_authenticate"] = ae.Scheme
		}
	} else {
		detail["status_code"] = 403
	}

	return &protocol.CallToolResult{
		Content:           []protocol.TextContent{protocol.NewTextContent(message)},
		StructuredContent: detail,
		IsError:           true,
	}
}

func throttleFailureResult(err error) *protocol.CallToolResult {
	detail := map[string]interface{}{"status_code": 429}

	var te *resource.ThrottleError
	if errors.As(err, &te) && te.RetryAfter > 0 {
		detail["retry_after"] = int(te.RetryAfter.Seconds())
	}

	return &protocol.CallToolResult{
		Content:           []protocol.TextContent{protocol.NewTextContent(err.Error())},
		StructuredContent: detail,
		IsError:           true,
	}
}

// executionFailureResult frames validation, lookup and handler failures.
func executionFailureResult(err error) *protocol.CallToolResult {
	result := &protocol.CallToolResult{
		Content: []protocol.TextContent{protocol.NewTextContent(
			fmt.Sprintf("Error executing tool: %v", err))},
		IsError: true,
	}

	var nf *resource.NotFoundError
	if errors.As(err, &nf) {
		result.StructuredContent = map[string]interface{}{"status_code": 404}
	}
	return result
}
