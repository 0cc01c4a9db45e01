// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package server_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/aclctl/internal/cache"
	"github.com/staranto/aclctl/internal/datatable"
	"github.com/staranto/aclctl/internal/normalize"
	"github.com/staranto/aclctl/internal/server"
	"github.com/staranto/aclctl/internal/transport"
	"github.com/staranto/aclctl/internal/view"
)

func setup(t *testing.T) (*server.Registry, *cache.Service, time.Time) {
	t.Helper()

	now := time.Date(2025, time.February, 3, 12, 0, 0, 0, time.UTC)
	reg := server.NewRegistry(func() time.Time { return now })
	require.NoError(t, server.Seed(reg))

	srv := httptest.NewServer(server.NewHandler(reg, "/app"))
	t.Cleanup(srv.Close)

	adapter, err := transport.New(srv.URL + "/app/")
	require.NoError(t, err)
	return reg, cache.NewService(adapter), now
}

func TestEndToEnd_ListRendersEveryCache(t *testing.T) {
	reg, svc, _ := setup(t)

	page := datatable.NewPage()
	ctrl := view.NewCacheController(svc, page, view.CellFormat{Location: time.UTC})
	require.NoError(t, ctrl.Activate(context.Background()))

	table, ok := ctrl.Table()
	require.True(t, ok)
	assert.Equal(t, len(reg.IDs()), table.Len())

	var ids []string
	for _, row := range table.Rows() {
		ids = append(ids, row.ID)
	}
	assert.Equal(t, reg.IDs(), ids)

	users, ok := table.Row("aclUsers")
	require.True(t, ok)
	assert.Equal(t, []string{"ACL Users", "1,250", "02/03/2025 09:00:00", "02/03/2025 09:00:00"}, table.Cells(users))

	action, ok := table.ClickRow(users)
	assert.True(t, ok)
	assert.Equal(t, "View Cache: aclUsers", action)
}

func TestEndToEnd_Get(t *testing.T) {
	_, svc, now := setup(t)

	e, err := svc.Get(context.Background(), "sessions")
	require.NoError(t, err)
	assert.Equal(t, "Web Sessions", e.Name)
	require.NotNil(t, e.Size)
	assert.Equal(t, int64(9876), *e.Size)
	require.NotNil(t, e.InitializedTime)
	assert.True(t, e.InitializedTime.Time.Equal(now.Add(-90*time.Second)))
	assert.Empty(t, e.ID)
}

func TestEndToEnd_Failures(t *testing.T) {
	reg, svc, _ := setup(t)
	ctx := context.Background()

	var f *normalize.Failure

	_, err := svc.Get(ctx, "nope")
	require.True(t, errors.As(err, &f))
	assert.Equal(t, normalize.ApplicationFailure, f.Kind)
	assert.Equal(t, "Cache [nope] not found", f.Message)

	_, err = svc.Get(ctx, "a/b")
	require.True(t, errors.As(err, &f))
	assert.Equal(t, normalize.ApplicationFailure, f.Kind)
	assert.Contains(t, f.Message, "/app/aclAdmin/cache/a/b")

	reg.SetUnavailable("Cache manager is restarting")
	page := datatable.NewPage()
	ctrl := view.NewCacheController(svc, page, view.CellFormat{})
	err = ctrl.Activate(ctx)
	require.True(t, errors.As(err, &f))
	assert.Equal(t, "Cache manager is restarting", f.Message)

	state, _ := ctrl.State()
	assert.Equal(t, view.StateError, state)
	table, _ := ctrl.Table()
	assert.Zero(t, table.Len())
}

func TestEndToEnd_ServerGone(t *testing.T) {
	srv := httptest.NewServer(server.NewHandler(server.NewRegistry(nil), ""))
	adapter, err := transport.New(srv.URL)
	require.NoError(t, err)
	srv.Close()

	_, err = cache.NewService(adapter).List(context.Background())
	var f *normalize.Failure
	require.True(t, errors.As(err, &f))
	assert.Equal(t, normalize.TransportFailure, f.Kind)
	assert.Equal(t, normalize.UnknownError, f.Message)
}
