// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package datatable

import (
	"errors"
	"fmt"
	"sync"

	"github.com/apex/log"
)

// DefaultPageLength is used when Options.PageLength is not positive.
const DefaultPageLength = 10

var ErrDuplicateRowID = errors.New("duplicate row id")

// Column describes one column. Value extracts the cell for a record and
// reports false when the record has no value, in which case DefaultContent
// is shown.
type Column[R any] struct {
	Title          string
	Data           string
	DefaultContent string
	Width          int
	Value          func(R) (string, bool)
}

// Options configure a Table.
type Options[R any] struct {
	PageLength int
	// RowID derives the row identity. Ids must be unique and non-empty.
	RowID   func(R) string
	Columns []Column[R]
	// OnClick produces the action for a clicked row.
	OnClick func(id string, row R) string
}

// Table holds the current row set. All methods are safe for concurrent use.
type Table[R any] struct {
	mu    sync.RWMutex
	id    string
	opts  Options[R]
	rows  []R
	index map[string]int
	page  int
	draws int
}

// New creates a table for the element id.
func New[R any](id string, opts Options[R]) *Table[R] {
	if opts.PageLength <= 0 {
		opts.PageLength = DefaultPageLength
	}
	return &Table[R]{
		id:    id,
		opts:  opts,
		index: map[string]int{},
	}
}

func (t *Table[R]) ID() string { return t.id }

func (t *Table[R]) PageLength() int { return t.opts.PageLength }

func (t *Table[R]) Columns() []Column[R] { return t.opts.Columns }

// Headers returns the column titles.
func (t *Table[R]) Headers() []string {
	headers := make([]string, 0, len(t.opts.Columns))
	for _, c := range t.opts.Columns {
		headers = append(headers, c.Title)
	}
	return headers
}

// Clear removes every row.
func (t *Table[R]) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clear()
}

// Add appends rows. A row whose id is empty or already present is rejected;
// the rest are still added and the first error is returned.
func (t *Table[R]) Add(rows ...R) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.add(rows)
}

// Draw clamps the current page to the row set and counts the redraw.
func (t *Table[R]) Draw() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.draw()
}

// Replace clears, adds and draws as one batch, so no reader ever sees a
// partial row set.
func (t *Table[R]) Replace(rows []R) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.clear()
	err := t.add(rows)
	t.draw()

	log.Debugf("table %s: replaced with %d rows", t.id, len(t.rows))
	return err
}

// Rows returns a copy of the rows in display order.
func (t *Table[R]) Rows() []R {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]R(nil), t.rows...)
}

func (t *Table[R]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Draws reports how many times the table has been drawn.
func (t *Table[R]) Draws() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.draws
}

// Row looks a row up by id.
func (t *Table[R]) Row(id string) (R, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	i, ok := t.index[id]
	if !ok {
		var zero R
		return zero, false
	}
	return t.rows[i], true
}

// RowID returns the id of a record.
func (t *Table[R]) RowID(row R) string {
	return t.opts.RowID(row)
}

// PageCount is at least one, even for an empty table.
func (t *Table[R]) PageCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pageCount()
}

// Page returns the zero-based current page.
func (t *Table[R]) Page() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.page
}

// SetPage moves to page n, clamped to the valid range.
func (t *Table[R]) SetPage(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.page = n
	t.clampPage()
}

// PageRows returns the rows on the current page.
func (t *Table[R]) PageRows() []R {
	t.mu.RLock()
	defer t.mu.RUnlock()

	start := t.page * t.opts.PageLength
	if start >= len(t.rows) {
		return nil
	}
	end := min(start+t.opts.PageLength, len(t.rows))
	return append([]R(nil), t.rows[start:end]...)
}

// Cells renders a record into one string per column.
func (t *Table[R]) Cells(row R) []string {
	cells := make([]string, 0, len(t.opts.Columns))
	for _, c := range t.opts.Columns {
		cells = append(cells, c.Cell(row))
	}
	return cells
}

// Cell renders a record for this column, falling back to DefaultContent.
func (c Column[R]) Cell(row R) string {
	if c.Value == nil {
		return c.DefaultContent
	}
	if v, ok := c.Value(row); ok {
		return v
	}
	return c.DefaultContent
}

// Click fires the click action for the row at index i of the current page.
// It reports false when there is no such row.
func (t *Table[R]) Click(i int) (string, bool) {
	rows := t.PageRows()
	if i < 0 || i >= len(rows) {
		return "", false
	}
	return t.ClickRow(rows[i])
}

// ClickRow fires the click action for a record.
func (t *Table[R]) ClickRow(row R) (string, bool) {
	id := t.opts.RowID(row)
	if t.opts.OnClick == nil {
		return id, true
	}
	return t.opts.OnClick(id, row), true
}

func (t *Table[R]) clear() {
	t.rows = nil
	t.index = map[string]int{}
}

func (t *Table[R]) add(rows []R) error {
	var first error
	for _, row := range rows {
		id := t.opts.RowID(row)
		if _, dup := t.index[id]; dup {
			first = firstErr(first, fmt.Errorf("%w: %s", ErrDuplicateRowID, id))
			continue
		}
		t.index[id] = len(t.rows)
		t.rows = append(t.rows, row)
	}
	return first
}

func (t *Table[R]) draw() {
	t.clampPage()
	t.draws++
}

func (t *Table[R]) pageCount() int {
	if len(t.rows) == 0 {
		return 1
	}
	return (len(t.rows) + t.opts.PageLength - 1) / t.opts.PageLength
}

func (t *Table[R]) clampPage() {
	if last := t.pageCount() - 1; t.page > last {
		t.page = last
	}
	if t.page < 0 {
		t.page = 0
	}
}

func firstErr(have, next error) error {
	if have != nil {
		return have
	}
	return next
}
