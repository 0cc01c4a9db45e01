// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/apex/log"
)

var (
	ErrNotFound       = errors.New("cache not found")
	ErrNotRefreshable = errors.New("cache not refreshable")
	ErrRefreshing     = errors.New("cache is refreshing")
)

// Loader fills a cache from its data source.
type Loader func() (map[string]string, error)

// Cache is one named cache. A positive Age makes it refreshable; it is then
// due for a refresh once Age has passed since the last one.
type Cache struct {
	Name   string
	Age    time.Duration
	Loader Loader

	data        map[string]string
	initialized time.Time
	refreshed   time.Time
	refreshing  bool
}

// Refreshable reports whether the cache can be refreshed.
func (c *Cache) Refreshable() bool { return c.Age > 0 }

// Summary is the wire form of a cache. Times are epoch milliseconds.
type Summary struct {
	Name              string `json:"name"`
	Size              int    `json:"size"`
	InitializedTime   int64  `json:"initializedTime"`
	LastRefreshedTime int64  `json:"lastRefreshedTime"`
}

// Registry holds the caches by id.
type Registry struct {
	mu          sync.RWMutex
	caches      map[string]*Cache
	now         func() time.Time
	unavailable string
}

// NewRegistry returns an empty registry. A nil now uses time.Now.
func NewRegistry(now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{caches: map[string]*Cache{}, now: now}
}

// Register loads c and adds it under id, replacing any cache already there.
func (r *Registry) Register(id string, c *Cache) error {
	return r.register(id, c, r.now())
}

func (r *Registry) register(id string, c *Cache, at time.Time) error {
	data, err := load(c)
	if err != nil {
		return fmt.Errorf("failed to initialize cache %s: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c.data = data
	c.initialized = at
	c.refreshed = at
	r.caches[id] = c

	log.WithField("cache", id).Infof("cache initialized with %d entries", len(data))
	return nil
}

// List summarizes every cache, keyed by id.
func (r *Registry) List() (map[string]Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.unavailable != "" {
		return nil, errors.New(r.unavailable)
	}

	out := make(map[string]Summary, len(r.caches))
	for id, c := range r.caches {
		out[id] = summarize(c)
	}
	return out, nil
}

// Get summarizes one cache.
func (r *Registry) Get(id string) (Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.unavailable != "" {
		return Summary{}, errors.New(r.unavailable)
	}

	c, ok := r.caches[id]
	if !ok {
		return Summary{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return summarize(c), nil
}

// IDs returns the registered ids in ascending order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.caches))
	for id := range r.caches {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Refresh reloads a refreshable cache and stamps its refresh time. The
// loader runs outside the registry lock; a second refresh of the same cache
// while one is running fails with ErrRefreshing.
func (r *Registry) Refresh(id string) error {
	r.mu.Lock()
	c, ok := r.caches[id]
	switch {
	case !ok:
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	case !c.Refreshable():
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotRefreshable, id)
	case c.refreshing:
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrRefreshing, id)
	}
	c.refreshing = true
	r.mu.Unlock()

	data, err := load(c)

	r.mu.Lock()
	defer r.mu.Unlock()
	c.refreshing = false
	if err != nil {
		return fmt.Errorf("failed to refresh cache %s: %w", id, err)
	}
	c.data = data
	c.refreshed = r.now()

	log.WithField("cache", id).Info("cache refreshed")
	return nil
}

// RefreshDue refreshes every refreshable cache whose age has passed and
// returns the ids it refreshed.
func (r *Registry) RefreshDue() []string {
	var due []string

	r.mu.RLock()
	now := r.now()
	for id, c := range r.caches {
		if c.Refreshable() && !c.refreshing && now.Sub(c.refreshed) > c.Age {
			due = append(due, id)
		}
	}
	r.mu.RUnlock()

	sort.Strings(due)
	refreshed := due[:0]
	for _, id := range due {
		if err := r.Refresh(id); err != nil {
			log.WithError(err).Warn("scheduled refresh failed")
			continue
		}
		refreshed = append(refreshed, id)
	}
	return refreshed
}

// SetUnavailable makes reads fail with msg until called again with "".
func (r *Registry) SetUnavailable(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unavailable = msg
}

func load(c *Cache) (map[string]string, error) {
	if c.Loader == nil {
		return map[string]string{}, nil
	}
	data, err := c.Loader()
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = map[string]string{}
	}
	return data, nil
}

func summarize(c *Cache) Summary {
	return Summary{
		Name:              c.Name,
		Size:              len(c.data),
		InitializedTime:   c.initialized.UnixMilli(),
		LastRefreshedTime: c.refreshed.UnixMilli(),
	}
}
