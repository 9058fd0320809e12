package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tradegate/mtgate/internal/metaapi"
)

func newTestServer(t *testing.T) (*Server, *metaapi.MockGateway, http.Handler) {
	t.Helper()
	gateway := metaapi.NewMockGateway()
	srv, err := New(Config{
		DBPath:    filepath.Join(t.TempDir(), "test.db"),
		JWTSecret: []byte("test-secret"),
	}, gateway)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })
	return srv, gateway, srv.Router()
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router http.Handler, username string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "",
		map[string]any{"username": username, "password": "pass123"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "",
		map[string]any{"username": username, "password": "pass123"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// createTestAccount provisions an account through the API with the mock
// gateway reporting the given external id.
func createTestAccount(t *testing.T, router http.Handler, gateway *metaapi.MockGateway, token, mt5ID string) {
	t.Helper()
	gateway.ProvisionResult.ID = mt5ID
	w := doJSON(t, router, http.MethodPost, "/api/mt5/accounts", token, map[string]any{
		"login":    "10001",
		"password": "trader-pass",
		"name":     "Test Account",
		"server":   "Demo-Server",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHealthz(t *testing.T) {
	_, _, router := newTestServer(t)
	w := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
