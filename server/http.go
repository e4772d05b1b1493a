package server

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/tidewater-labs/restmcp/protocol"
)

const sessionHeader = "Mcp-Session-Id"

// httpHandler serves the single MCP endpoint over plain HTTP POST. With
// RequireInitialize set it tracks sessions across calls via the
// Mcp-Session-Id header; otherwise every call gets a throwaway session.
type httpHandler struct {
	server *Server

	mu       sync.Mutex
	sessions map[string]*Session
}

// Handler returns the HTTP handler for the MCP endpoint. Building the
// handler freezes the tool catalog.
func (s *Server) Handler() http.Handler {
	s.registry.Freeze()
	return &httpHandler{server: s, sessions: make(map[string]*Session)}
}

// ListenAndServe freezes the catalog and serves the MCP endpoint at the
// given address.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("serving %d tools on %s", s.registry.Len(), addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	sess, created := h.session(r)
	ctx := ContextWithHeaders(r.Context(), flattenHeaders(r.Header))

	resp := h.server.HandleMessage(ctx, sess, body)
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	status := h.responseStatus(w, resp)
	w.Header().Set("Content-Type", "application/json")
	if created && h.server.settings.RequireInitialize {
		w.Header().Set(sessionHeader, sess.ID())
	}
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.server.logger.Error("write response: %v", err)
	}
}

// session returns the session for the call. Sessions persist only in
// strict mode; the returned flag reports whether one was created.
func (h *httpHandler) session(r *http.Request) (*Session, bool) {
	if !h.server.settings.RequireInitialize {
		return NewSession(), false
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if id := r.Header.Get(sessionHeader); id != "" {
		if sess, ok := h.sessions[id]; ok {
			return sess, false
		}
	}
	sess := NewSession()
	h.sessions[sess.ID()] = sess
	return sess, true
}

// responseStatus mirrors authentication and permission outcomes onto the
// HTTP status line, and surfaces the challenge scheme, unless masking is
// configured. Everything else stays 200: tool-level errors are successful
// JSON-RPC exchanges.
func (h *httpHandler) responseStatus(w http.ResponseWriter, resp *protocol.Response) int {
	if h.server.settings.MaskAuthStatus {
		return http.StatusOK
	}

	result, ok := resp.Result.(*protocol.CallToolResult)
	if !ok || !result.IsError {
		return http.StatusOK
	}
	detail, ok := result.StructuredContent.(map[string]interface{})
	if !ok {
		return http.StatusOK
	}
	code, ok := detail["status_code"].(int)
	if !ok || (code != http.StatusUnauthorized && code != http.StatusForbidden) {
		return http.StatusOK
	}
	if scheme, ok := detail["www_authenticate"].(string); ok && scheme != "" {
		w.Header().Set("WWW-Authenticate", scheme)
	}
	return code
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name := range h {
		out[name] = h.Get(name)
	}
	return out
}
