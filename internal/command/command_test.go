// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/staranto/aclctl/internal/config"
	"github.com/staranto/aclctl/internal/server"
)

// isolate points the config lookup at body (or at nothing when body is
// empty) and clears the connection env vars.
func isolate(t *testing.T, body string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), config.FileName)
	if body != "" {
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	}
	t.Setenv("ACLCTL_CFG", path)
	for _, env := range []string{"ACLCTL_HOST", "ACLCTL_RETRIES", "ACLCTL_ADDR"} {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })
}

func static(n int) server.Loader {
	return func() (map[string]string, error) {
		data := make(map[string]string, n)
		for i := range n {
			data[strings.Repeat("k", i+1)] = "v"
		}
		return data, nil
	}
}

// adminServer serves three caches under /app.
func adminServer(t *testing.T) string {
	t.Helper()

	at := time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC)
	reg := server.NewRegistry(func() time.Time { return at })
	require.NoError(t, reg.Register("roles", &server.Cache{Name: "Roles", Loader: static(2)}))
	require.NoError(t, reg.Register("users", &server.Cache{Name: "Users", Age: time.Hour, Loader: static(7)}))
	require.NoError(t, reg.Register("menus", &server.Cache{Name: "Menus", Loader: static(4)}))

	ts := httptest.NewServer(server.NewHandler(reg, "/app"))
	t.Cleanup(ts.Close)
	return ts.URL + "/app"
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	full := append([]string{"aclctl"}, args...)
	app, err := InitApp(context.Background(), full, WithOutput(&out, &errOut))
	require.NoError(t, err)

	err = app.Run(context.Background(), full)
	return out.String(), errOut.String(), err
}

func TestInitApp(t *testing.T) {
	isolate(t, "")

	app, err := InitApp(context.Background(), []string{"aclctl", "list"})
	require.NoError(t, err)
	assert.Equal(t, "aclctl", app.Name)

	var names []string
	for _, c := range app.Commands {
		names = append(names, c.Name)

		for i := 1; i < len(c.Flags); i++ {
			assert.LessOrEqual(t, c.Flags[i-1].Names()[0], c.Flags[i].Names()[0], "flags of %s are not sorted", c.Name)
		}
	}
	assert.Equal(t, []string{"list", "get", "ui", "serve", "completion"}, names)
}

func TestList(t *testing.T) {
	isolate(t, "")
	host := adminServer(t)

	out, _, err := run(t, "list", "--host", host, "-o", "json")
	require.NoError(t, err)

	rows := gjson.Parse(out).Array()
	require.Len(t, rows, 3)
	assert.Equal(t, "menus", rows[0].Get("id").String())
	assert.Equal(t, "roles", rows[1].Get("id").String())
	assert.Equal(t, "users", rows[2].Get("id").String())
	assert.Equal(t, int64(7), rows[2].Get("size").Int())
	assert.Equal(t, "Users", rows[2].Get("name").String())
	assert.True(t, rows[2].Get("initializedTime").Exists())
}

func TestList_FilterAndSort(t *testing.T) {
	isolate(t, "")
	host := adminServer(t)

	out, _, err := run(t, "list", "--host", host, "-o", "json", "--filter", "size>2", "--sort", "-size")
	require.NoError(t, err)

	var ids []string
	for _, r := range gjson.Parse(out).Array() {
		ids = append(ids, r.Get("id").String())
	}
	assert.Equal(t, []string{"users", "menus"}, ids)
}

func TestList_Text(t *testing.T) {
	isolate(t, "")
	host := adminServer(t)

	out, _, err := run(t, "list", "--host", host, "--titles")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "name")
	assert.Contains(t, lines[3], "Users")
}

func TestList_Raw(t *testing.T) {
	isolate(t, "")
	host := adminServer(t)

	out, _, err := run(t, "list", "--host", host, "-o", "raw")
	require.NoError(t, err)

	// The server's own shape: an object keyed by id with epoch times.
	assert.Equal(t, "Roles", gjson.Get(out, "roles.name").String())
	assert.Equal(t, int64(1738573200000), gjson.Get(out, "roles.initializedTime").Int())
}

func TestList_HostFromConfig(t *testing.T) {
	host := adminServer(t)
	isolate(t, "list:\n  host: "+host+"\n  output: json\n")

	out, _, err := run(t, "list")
	require.NoError(t, err)
	assert.Len(t, gjson.Parse(out).Array(), 3)
}

func TestList_Schema(t *testing.T) {
	isolate(t, "")

	out, _, err := run(t, "list", "--schema")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema for")
	assert.Contains(t, out, "lastRefreshedTime")
}

func TestList_InteractiveWithoutTerminal(t *testing.T) {
	isolate(t, "")
	host := adminServer(t)

	out, _, err := run(t, "list", "--host", host, "-i", "-o", "json")
	require.NoError(t, err)
	assert.Len(t, gjson.Parse(out).Array(), 3)
}

func TestGet(t *testing.T) {
	isolate(t, "")
	host := adminServer(t)

	out, _, err := run(t, "get", "users", "--host", host, "-o", "json")
	require.NoError(t, err)

	rows := gjson.Parse(out).Array()
	require.Len(t, rows, 1)
	assert.Equal(t, "users", rows[0].Get("id").String())
	assert.Equal(t, int64(7), rows[0].Get("size").Int())
}

func TestGet_Errors(t *testing.T) {
	isolate(t, "")
	host := adminServer(t)

	_, _, err := run(t, "get", "nope", "--host", host)
	require.Error(t, err)
	assert.Equal(t, "Cache [nope] not found", err.Error())

	var buf bytes.Buffer
	ReportError(&buf, err)
	assert.Equal(t, "Error:Cache [nope] not found\n", buf.String())

	_, _, err = run(t, "get", "--host", host)
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no host", []string{"list"}, "host is not set"},
		{"bad output", []string{"list", "--host", "http://localhost", "-o", "csv"}, "must be one of"},
		{"bad host", []string{"list", "--host", "localhost:8080"}, "http or https"},
		{"negative retries", []string{"list", "--host", "http://localhost", "--retries=-1"}, "must not be negative"},
		{"jammed filter", []string{"list", "--host", "http://localhost", "--filter", "--sort"}, "must not begin with '--'"},
		{"local and relative", []string{"list", "--host", "http://localhost", "--local", "--relative"}, "mutually exclusive"},
		{"ui without terminal", []string{"ui", "--host", "http://localhost"}, ErrNotTerminal.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t, "")
			_, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReportError_Plain(t *testing.T) {
	var buf bytes.Buffer
	ReportError(&buf, ErrMissingID)
	assert.Equal(t, "a cache id is required\n", buf.String())
}

func TestCompletion(t *testing.T) {
	isolate(t, "")

	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -F _aclctl aclctl")

	out, _, err = run(t, "completion", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "compdef _aclctl aclctl")

	t.Setenv("SHELL", "/bin/fish")
	out, errOut, err := run(t, "completion")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "usage: aclctl completion")
}

func TestServe(t *testing.T) {
	isolate(t, "")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	full := []string{"aclctl", "serve", "--addr", "127.0.0.1:0", "--context", "/app"}
	app, err := InitApp(ctx, full, WithOutput(&bytes.Buffer{}, &bytes.Buffer{}))
	require.NoError(t, err)
	assert.NoError(t, app.Run(ctx, full))
}

func TestExpandArgSets(t *testing.T) {
	isolate(t, `
list:
  defaults:
    - -o json
  wide:
    - --sort -size
    - -t
`)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "defaults",
			args: []string{"aclctl", "list", "--host", "h"},
			want: []string{"aclctl", "list", "-o", "json", "--host", "h"},
		},
		{
			name: "named set",
			args: []string{"aclctl", "list", "--host", "h", "@wide", "-o", "yaml"},
			want: []string{"aclctl", "list", "--sort", "-size", "-t", "--host", "h", "-o", "yaml"},
		},
		{
			name: "explicit args before the set still win",
			args: []string{"aclctl", "list", "--sort", "name", "@wide"},
			want: []string{"aclctl", "list", "--sort", "-size", "-t", "--sort", "name"},
		},
		{
			name: "unknown set",
			args: []string{"aclctl", "list", "@nope"},
			want: []string{"aclctl", "list"},
		},
		{
			name: "no set for command",
			args: []string{"aclctl", "get", "users"},
			want: []string{"aclctl", "get", "users"},
		},
		{
			name: "help",
			args: []string{"aclctl", "list", "-o", "json", "--help"},
			want: []string{"aclctl", "list", "--help"},
		},
		{
			name: "flag first",
			args: []string{"aclctl", "--version"},
			want: []string{"aclctl", "--version"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandArgSets(tt.args))
		})
	}
}
