// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, contextPath string) (*httptest.Server, *Registry, *clock) {
	t.Helper()
	clk := newClock()
	reg := NewRegistry(clk.now)
	require.NoError(t, reg.Register("users", &Cache{Name: "Users", Age: time.Hour, Loader: static(2)}))
	require.NoError(t, reg.Register("roles", &Cache{Name: "Roles", Loader: static(5)}))

	srv := httptest.NewServer(NewHandler(reg, contextPath))
	t.Cleanup(srv.Close)
	return srv, reg, clk
}

func do(t *testing.T, method, url string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func message(t *testing.T, body []byte) string {
	t.Helper()
	var e ErrorBody
	require.NoError(t, json.Unmarshal(body, &e))
	return e.Message
}

func TestHandler_List(t *testing.T) {
	srv, _, clk := newTestServer(t, "/app")

	status, body := do(t, http.MethodGet, srv.URL+"/app/aclAdmin/cache/list")
	require.Equal(t, http.StatusOK, status)

	var list map[string]Summary
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 2)
	assert.Equal(t, "Users", list["users"].Name)
	assert.Equal(t, 5, list["roles"].Size)
	assert.Equal(t, clk.now().UnixMilli(), list["roles"].InitializedTime)
}

func TestHandler_Get(t *testing.T) {
	srv, _, _ := newTestServer(t, "")

	status, body := do(t, http.MethodGet, srv.URL+"/aclAdmin/cache/users")
	require.Equal(t, http.StatusOK, status)
	var s Summary
	require.NoError(t, json.Unmarshal(body, &s))
	assert.Equal(t, "Users", s.Name)

	status, body = do(t, http.MethodGet, srv.URL+"/aclAdmin/cache/nope")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Cache [nope] not found", message(t, body))
}

func TestHandler_ErrorBodies(t *testing.T) {
	srv, reg, _ := newTestServer(t, "/app")

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"outside context path", http.MethodGet, "/aclAdmin/cache/list", http.StatusNotFound},
		{"nested id", http.MethodGet, "/app/aclAdmin/cache/a/b", http.StatusNotFound},
		{"wrong method", http.MethodDelete, "/app/aclAdmin/cache/users", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, tt.method, srv.URL+tt.path)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, message(t, body))
		})
	}

	reg.SetUnavailable("Cache manager is restarting")
	status, body := do(t, http.MethodGet, srv.URL+"/app/aclAdmin/cache/list")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "Cache manager is restarting", message(t, body))
}

func TestHandler_Refresh(t *testing.T) {
	srv, _, clk := newTestServer(t, "/app")
	clk.advance(time.Minute)

	status, body := do(t, http.MethodPost, srv.URL+"/app/aclAdmin/cache/users/refresh")
	require.Equal(t, http.StatusOK, status)
	var s Summary
	require.NoError(t, json.Unmarshal(body, &s))
	assert.Equal(t, clk.now().UnixMilli(), s.LastRefreshedTime)

	status, _ = do(t, http.MethodPost, srv.URL+"/app/aclAdmin/cache/roles/refresh")
	assert.Equal(t, http.StatusConflict, status)

	status, _ = do(t, http.MethodPost, srv.URL+"/app/aclAdmin/cache/nope/refresh")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHandler_RefreshWhileUnavailable(t *testing.T) {
	srv, reg, _ := newTestServer(t, "/app")
	reg.SetUnavailable("Cache manager is restarting")

	status, body := do(t, http.MethodPost, srv.URL+"/app/aclAdmin/cache/users/refresh")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "Cache manager is restarting", message(t, body))
}
