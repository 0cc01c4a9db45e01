// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package datatable

import (
	"errors"
	"fmt"
	"sync"
)

// ErrAlreadyMounted is returned when an element already holds a live table.
var ErrAlreadyMounted = errors.New("table already mounted")

// Widget is anything mounted on a Page under an element id.
type Widget interface {
	ID() string
}

// Page is the render target: element ids mapped to live widgets, plus the
// page header. It is shared by every view on screen.
type Page struct {
	mu      sync.RWMutex
	header  string
	widgets map[string]Widget
}

func NewPage() *Page {
	return &Page{widgets: map[string]Widget{}}
}

// IsTable reports whether a live table is mounted at id.
func (p *Page) IsTable(id string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.widgets[id]
	return ok
}

// Mount attaches w under its id. Mounting twice on the same id fails; the
// first widget stays.
func (p *Page) Mount(w Widget) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.widgets[w.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyMounted, w.ID())
	}
	p.widgets[w.ID()] = w
	return nil
}

// Widget returns the widget mounted at id.
func (p *Page) Widget(id string) (Widget, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	w, ok := p.widgets[id]
	return w, ok
}

// Len returns the number of mounted widgets.
func (p *Page) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.widgets)
}

func (p *Page) SetHeader(h string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.header = h
}

func (p *Page) Header() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.header
}

// Lookup returns the table of row type R mounted at id.
func Lookup[R any](p *Page, id string) (*Table[R], bool) {
	w, ok := p.Widget(id)
	if !ok {
		return nil, false
	}
	t, ok := w.(*Table[R])
	return t, ok
}
