// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package route

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/apex/log"
	"github.com/go-chi/chi/v5"
)

// Route names.
const (
	Dashboard   = "dashboard"
	CacheHome   = "cache.home"
	CacheDetail = "cache.detail"
)

// Paths and patterns.
const (
	DashboardPath   = "/dashboard"
	CacheHomePath   = "/cache/home"
	CacheDetailPath = "/cache/detail/{cacheId}"

	// DefaultPath is where unknown paths land.
	DefaultPath = DashboardPath
)

// CacheIDParam is the path parameter of the detail route.
const CacheIDParam = "cacheId"

var ErrUnknownRoute = errors.New("unknown route")

// Controller names the controller that handles a route.
type Controller string

const (
	DashboardController Controller = "DashboardCtrl"
	CacheController     Controller = "CacheCtrl"
)

// Match is a resolved path.
type Match struct {
	Name       string
	Path       string
	Pattern    string
	Controller Controller
	Params     map[string]string
	// Redirected is set when Path did not match and the default was used.
	Redirected bool
}

// Param returns a path parameter, or "" when absent.
func (m Match) Param(key string) string {
	return m.Params[key]
}

type definition struct {
	name       string
	pattern    string
	controller Controller
}

var definitions = []definition{
	{Dashboard, DashboardPath, DashboardController},
	{CacheHome, CacheHomePath, CacheController},
	{CacheDetail, CacheDetailPath, CacheController},
}

// Router holds the route table and the current location.
type Router struct {
	mux       *chi.Mux
	byPattern map[string]definition

	mu        sync.Mutex
	current   Match
	listeners []func(Match)
}

// New builds the router positioned on the default route.
func New() *Router {
	r := &Router{
		mux:       chi.NewRouter(),
		byPattern: map[string]definition{},
	}

	// Handlers are never invoked; chi is only used to match.
	noop := func(http.ResponseWriter, *http.Request) {}
	for _, d := range definitions {
		r.mux.Get(d.pattern, noop)
		r.byPattern[d.pattern] = d
	}

	m, _ := r.Resolve(DefaultPath)
	r.current = m
	return r
}

// Resolve matches path against the route table. A path that matches nothing
// resolves to the default route with Redirected set, along with
// ErrUnknownRoute.
func (r *Router) Resolve(path string) (Match, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	if m, ok := r.match(path); ok {
		return m, nil
	}

	m, _ := r.match(DefaultPath)
	m.Redirected = true
	return m, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
}

func (r *Router) match(path string) (Match, bool) {
	rctx := chi.NewRouteContext()
	if !r.mux.Match(rctx, http.MethodGet, path) {
		return Match{}, false
	}

	d, ok := r.byPattern[rctx.RoutePattern()]
	if !ok {
		return Match{}, false
	}

	params := map[string]string{}
	for i, k := range rctx.URLParams.Keys {
		params[k] = rctx.URLParams.Values[i]
	}

	return Match{
		Name:       d.name,
		Path:       path,
		Pattern:    d.pattern,
		Controller: d.controller,
		Params:     params,
	}, true
}

// Change moves to path and notifies listeners. Unknown paths redirect to the
// default route; the returned error reports the redirect.
func (r *Router) Change(path string) (Match, error) {
	m, err := r.Resolve(path)
	if err != nil {
		log.WithError(err).Warnf("redirecting to %s", m.Path)
	}

	r.mu.Lock()
	r.current = m
	listeners := slices.Clone(r.listeners)
	r.mu.Unlock()

	log.Debugf("route changed: %s -> %s", path, m.Name)
	for _, fn := range listeners {
		fn(m)
	}
	return m, err
}

// Current returns the route the router is on.
func (r *Router) Current() Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// OnChange registers fn to run after every Change.
func (r *Router) OnChange(fn func(Match)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// DetailPath builds the detail path for a cache id.
func DetailPath(id string) string {
	return "/cache/detail/" + id
}
