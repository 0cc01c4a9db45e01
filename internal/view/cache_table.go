// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package view

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/staranto/aclctl/internal/cache"
	"github.com/staranto/aclctl/internal/datatable"
	"github.com/staranto/aclctl/internal/dates"
)

const (
	// CacheTableID is the element the cache list renders into.
	CacheTableID = "cacheListDT"
	// CachePageLength is the number of rows per page.
	CachePageLength = 5
)

// CacheTable is the widget type for the cache list.
type CacheTable = datatable.Table[cache.Entry]

// CellFormat controls how sizes and timestamps are shown.
type CellFormat struct {
	// Location converts timestamps before display. Nil keeps each
	// timestamp's own location.
	Location *time.Location
	// Relative renders timestamps as "3 hours ago".
	Relative bool
	// Now is the reference for relative times; defaults to time.Now.
	Now func() time.Time
}

// Size renders a cache size with thousands separators.
func (f CellFormat) Size(e cache.Entry) (string, bool) {
	if e.Size == nil {
		return "", false
	}
	return humanize.Comma(*e.Size), true
}

// Time renders a timestamp, or reports false when it is missing.
func (f CellFormat) Time(ts *cache.Timestamp) (string, bool) {
	if ts == nil {
		return "", false
	}
	if !ts.Parsed() {
		return ts.String(), ts.String() != ""
	}

	t := ts.Time
	if f.Relative {
		now := time.Now
		if f.Now != nil {
			now = f.Now
		}
		return humanize.RelTime(t, now(), "ago", "from now"), true
	}
	if f.Location != nil {
		t = t.In(f.Location)
	}
	return dates.Display(t), true
}

// CacheColumns are the four fixed columns of the cache list. A missing field
// renders as an empty cell.
func CacheColumns(f CellFormat) []datatable.Column[cache.Entry] {
	return []datatable.Column[cache.Entry]{
		{
			Title: "Cache Name",
			Data:  "name",
			Width: 24,
			Value: func(e cache.Entry) (string, bool) { return e.Name, e.Name != "" },
		},
		{
			Title: "Cache Size",
			Data:  "size",
			Width: 12,
			Value: f.Size,
		},
		{
			Title: "Initialized At",
			Data:  "initializedTime",
			Width: 21,
			Value: func(e cache.Entry) (string, bool) { return f.Time(e.InitializedTime) },
		},
		{
			Title: "Refreshed At",
			Data:  "lastRefreshedTime",
			Width: 21,
			Value: func(e cache.Entry) (string, bool) { return f.Time(e.LastRefreshedTime) },
		},
	}
}

// ViewCacheAction is what a row click produces until a detail view exists.
func ViewCacheAction(id string) string {
	return "View Cache: " + id
}

// NewCacheTable builds the cache list widget.
func NewCacheTable(f CellFormat) *CacheTable {
	return datatable.New(CacheTableID, datatable.Options[cache.Entry]{
		PageLength: CachePageLength,
		RowID:      func(e cache.Entry) string { return e.ID },
		Columns:    CacheColumns(f),
		OnClick:    func(id string, _ cache.Entry) string { return ViewCacheAction(id) },
	})
}

// InitCacheTable mounts the cache list widget on page unless one is already
// live there, and returns the mounted widget.
func InitCacheTable(page *datatable.Page, f CellFormat) *CacheTable {
	if !page.IsTable(CacheTableID) {
		// Losing a concurrent mount is fine; the winner's table is used.
		_ = page.Mount(NewCacheTable(f))
	}
	t, _ := datatable.Lookup[cache.Entry](page, CacheTableID)
	return t
}
