// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/staranto/aclctl/internal/route"
	"github.com/staranto/aclctl/internal/view"
)

// DashboardHeader is shown above the dashboard.
const DashboardHeader = "Dashboard"

// Options wire the console to its collaborators.
type Options struct {
	Router    *route.Router
	Cache     *view.CacheController
	Dashboard *view.DashboardController
	// Start is the initial path; empty keeps the router where it is.
	Start string
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx       context.Context
	router    *route.Router
	cache     *view.CacheController
	dashboard *view.DashboardController

	match   route.Match
	keys    keyMap
	help    help.Model
	table   table.Model
	status  string
	loading bool
	err     error
	width   int
	height  int
}

// New builds the console positioned on opts.Start.
func New(ctx context.Context, opts Options) Model {
	m := Model{
		ctx:       ctx,
		router:    opts.Router,
		cache:     opts.Cache,
		dashboard: opts.Dashboard,
		keys:      defaultKeyMap(),
		help:      help.New(),
		table: table.New(
			table.WithFocused(true),
			table.WithHeight(view.CachePageLength),
			table.WithStyles(tableStyles()),
		),
	}

	if opts.Start != "" {
		m.match, _ = m.router.Change(opts.Start)
	} else {
		m.match = m.router.Current()
	}
	m.loading = m.onCache()

	return m
}

// Init starts the first activation when the console opens on the cache list.
func (m Model) Init() tea.Cmd {
	if m.onCache() {
		return activate(m.ctx, m.cache)
	}
	return nil
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ActivatedMsg:
		if msg.Err != nil {
			// The list stays in its loading state; nothing is shown for the
			// failure beyond the log.
			m.err = msg.Err
			log.WithError(msg.Err).Debug("activation failed")
			return m, nil
		}
		m.err = nil
		m.loading = false
		m.syncRows(false)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Switch):
		next := route.CacheHomePath
		if m.onCache() {
			next = route.DashboardPath
		}
		return m.navigate(next)
	case key.Matches(msg, m.keys.Reload) && m.onCache() && m.err != nil:
		// A failed activation leaves the list loading; r retries it.
		m.err = nil
		m.status = ""
		return m, activate(m.ctx, m.cache)
	}

	if !m.onCache() || m.loading {
		return m, nil
	}

	widget, ok := m.cache.Table()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Enter):
		if action, ok := widget.Click(m.table.Cursor()); ok {
			m.status = action
		}
		return m, nil
	case key.Matches(msg, m.keys.Next):
		widget.SetPage(widget.Page() + 1)
		m.syncRows(true)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		widget.SetPage(widget.Page() - 1)
		m.syncRows(true)
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		m.status = ""
		return m, activate(m.ctx, m.cache)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// navigate changes route and starts an activation when the new route shows
// the cache list.
func (m Model) navigate(path string) (tea.Model, tea.Cmd) {
	m.match, _ = m.router.Change(path)
	m.status = ""
	if !m.onCache() {
		return m, nil
	}
	m.loading = true
	return m, activate(m.ctx, m.cache)
}

func (m Model) onCache() bool {
	return m.match.Controller == route.CacheController
}

// syncRows copies the widget's current page into the bubbles table.
func (m *Model) syncRows(resetCursor bool) {
	widget, ok := m.cache.Table()
	if !ok {
		return
	}

	cols := make([]table.Column, 0, len(widget.Columns()))
	for _, c := range widget.Columns() {
		cols = append(cols, table.Column{Title: c.Title, Width: c.Width})
	}

	var rows []table.Row
	for _, r := range widget.PageRows() {
		rows = append(rows, table.Row(widget.Cells(r)))
	}

	m.table.SetColumns(cols)
	m.table.SetHeight(widget.PageLength() + tableHeaderHeight)
	m.table.SetRows(rows)
	if resetCursor || m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

// View renders the current route with the help bar.
func (m Model) View() string {
	var body string
	var keys help.KeyMap = dashboardKeys{m.keys}
	if m.onCache() {
		body = m.viewCache()
		keys = m.keys
	} else {
		body = m.viewDashboard()
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, "", m.help.View(keys))
}

func (m Model) viewDashboard() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(DashboardHeader))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Service check: %s", m.dashboard.CheckString)
	return b.String()
}

func (m Model) viewCache() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(view.CacheHeader))
	b.WriteString("\n")

	if id := m.match.Param(route.CacheIDParam); id != "" {
		b.WriteString(dimStyle.Render("No detail view for " + id + "; showing all caches."))
		b.WriteString("\n")
	}

	widget, ok := m.cache.Table()
	if m.loading || !ok {
		b.WriteString(dimStyle.Render("Loading caches..."))
		return b.String()
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Page %d of %d (%d caches)",
		widget.Page()+1, widget.PageCount(), widget.Len())))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}
	return b.String()
}

// Status returns the last row action.
func (m Model) Status() string { return m.status }

// Route returns the route on screen.
func (m Model) Route() route.Match { return m.match }

// Loading reports whether the cache list is waiting on an activation.
func (m Model) Loading() bool { return m.loading }

// Run starts the console on the terminal and blocks until it exits.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	opts = append(opts, tea.WithContext(ctx))
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
