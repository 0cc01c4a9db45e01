// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package view

import (
	"context"
	"sync"

	"github.com/apex/log"

	"github.com/staranto/aclctl/internal/cache"
	"github.com/staranto/aclctl/internal/datatable"
)

// CacheHeader is the page header while the cache list is shown.
const CacheHeader = "Cache Home"

// State is where the cache controller is in its fetch cycle.
type State int

const (
	StateLoading State = iota
	StateRendered
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateRendered:
		return "rendered"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// CacheLister is what the controller needs from the cache service.
type CacheLister interface {
	List(ctx context.Context) (cache.List, error)
}

// CacheController drives the cache list view.
type CacheController struct {
	lister CacheLister
	page   *datatable.Page
	format CellFormat

	mu    sync.Mutex
	state State
	err   error
}

func NewCacheController(lister CacheLister, page *datatable.Page, format CellFormat) *CacheController {
	return &CacheController{
		lister: lister,
		page:   page,
		format: format,
	}
}

// Activate runs one fetch cycle: set the header, make sure the table exists,
// list the caches and replace the table rows with the result.
//
// On failure the error is logged and returned, the state becomes StateError
// and the table keeps whatever it showed before. The controller renders no
// error of its own.
//
// Overlapping activations are not coordinated; each replaces the rows in a
// single batch, so the last one to settle wins.
func (c *CacheController) Activate(ctx context.Context) error {
	c.page.SetHeader(CacheHeader)
	table := InitCacheTable(c.page, c.format)
	c.setState(StateLoading, nil)

	list, err := c.lister.List(ctx)
	if err != nil {
		log.WithError(err).Error("failed to list caches")
		c.setState(StateError, err)
		return err
	}

	rows := Materialize(list)
	if err := table.Replace(rows); err != nil {
		// Ids come from map keys, so this only trips on an empty key.
		log.WithError(err).Warn("some cache rows were rejected")
	}
	c.setState(StateRendered, nil)

	log.Debugf("rendered %d caches", len(rows))
	return nil
}

// Table returns the mounted cache table, if any.
func (c *CacheController) Table() (*CacheTable, bool) {
	return datatable.Lookup[cache.Entry](c.page, CacheTableID)
}

// State returns the current state and, in StateError, the failure.
func (c *CacheController) State() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.err
}

func (c *CacheController) setState(s State, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
	c.err = err
}

// Materialize turns the keyed list into rows ordered by id, each carrying
// its key as ID.
func Materialize(list cache.List) []cache.Entry {
	rows := make([]cache.Entry, 0, len(list))
	for _, id := range list.IDs() {
		e := list[id]
		e.ID = id
		rows = append(rows, e)
	}
	return rows
}
