package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewater-labs/restmcp/resource"
	"github.com/tidewater-labs/restmcp/server"
)

func postJSON(t *testing.T, h http.Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHTTP_MethodNotAllowed(t *testing.T) {
	h := newTestServer(t, fullCustomerResource()).Handler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestHTTP_NotificationGets204(t *testing.T) {
	h := newTestServer(t, fullCustomerResource()).Handler()

	rec := postJSON(t, h, `{"jsonrpc":"2.0","method":"notifications/initialized"}`, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestHTTP_ListTools(t *testing.T) {
	h := newTestServer(t, fullCustomerResource()).Handler()

	rec := postJSON(t, h, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	out := decodeResponse(t, rec)
	result := out["result"].(map[string]interface{})
	tools := result["tools"].([]interface{})
	assert.Len(t, tools, 6)
}

func TestHTTP_AuthFailureMirrorsStatus(t *testing.T) {
	h := newTestServer(t, protectedResource()).Handler()

	rec := postJSON(t, h, callParams("customers_list", nil), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

	// The JSON-RPC exchange itself still succeeded.
	out := decodeResponse(t, rec)
	assert.NotContains(t, out, "error")
	result := out["result"].(map[string]interface{})
	assert.Equal(t, true, result["isError"])
}

func TestHTTP_AuthFailureMasked(t *testing.T) {
	srv := newTestServer(t, protectedResource(),
		server.WithSettings(server.Settings{MaskAuthStatus: true}))
	h := srv.Handler()

	rec := postJSON(t, h, callParams("customers_list", nil), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("WWW-Authenticate"))

	out := decodeResponse(t, rec)
	result := out["result"].(map[string]interface{})
	assert.Equal(t, true, result["isError"])
}

func TestHTTP_SuccessfulCall(t *testing.T) {
	res := protectedResource()
	h := newTestServer(t, res).Handler()

	rec := postJSON(t, h, callParams("customers_list", nil), map[string]string{
		"Authorization": "Bearer good-token",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	out := decodeResponse(t, rec)
	result := out["result"].(map[string]interface{})
	assert.NotContains(t, result, "isError")
}

func TestHTTP_ToolLevelErrorStays200(t *testing.T) {
	h := newTestServer(t, fullCustomerResource()).Handler()

	rec := postJSON(t, h, callParams("customers_create", map[string]interface{}{
		"body": map[string]interface{}{"name": ""},
	}), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	out := decodeResponse(t, rec)
	result := out["result"].(map[string]interface{})
	assert.Equal(t, true, result["isError"])
}

func TestHTTP_StrictModeSessionTracking(t *testing.T) {
	srv := newTestServer(t, fullCustomerResource(),
		server.WithSettings(server.Settings{RequireInitialize: true}))
	h := srv.Handler()

	rec := postJSON(t, h, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18"}}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	sessionID := rec.Header().Get("Mcp-Session-Id")
	require.NotEmpty(t, sessionID)

	// Without the session header the next call hits a fresh session.
	rec = postJSON(t, h, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`, nil)
	out := decodeResponse(t, rec)
	assert.Contains(t, out, "error")

	// With the header the initialized session is reused.
	rec = postJSON(t, h, `{"jsonrpc":"2.0","id":3,"method":"tools/list"}`, map[string]string{
		"Mcp-Session-Id": sessionID,
	})
	out = decodeResponse(t, rec)
	assert.NotContains(t, out, "error")
	require.Contains(t, out, "result")
}

func TestHTTP_HandlerFreezesCatalog(t *testing.T) {
	srv := newTestServer(t, fullCustomerResource())
	_ = srv.Handler()

	err := srv.RegisterResource(&resource.Resource{
		Name: "order",
		Handlers: map[string]resource.HandlerFunc{
			"list": noopHandler,
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frozen")
}
