// Package tui renders a datatable Controller as an interactive terminal pager.
//
// The model never owns table state: key presses become controller calls, and the
// controller's subscription wakes the program to redraw.
package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nrfta/datatable-go"
)

var titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)

// StateChangedMsg tells the program that the controller published a new state.
type StateChangedMsg struct{}

// Model is a bubbletea model over a Controller.
type Model[T any] struct {
	ctrl  *datatable.Controller[T]
	keys  KeyMap
	pager paginator.Model
	help  help.Model

	title       string
	column      int
	changed     chan struct{}
	unsubscribe func()
}

// Option configures a Model.
type Option func(*options)

type options struct {
	title string
	keys  KeyMap
}

// WithTitle sets the line drawn above the table.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(o *options) {
		o.keys = k
	}
}

// New creates a model over ctrl and subscribes to its state. The controller should be
// started by the caller; Close releases the subscription.
func New[T any](ctrl *datatable.Controller[T], opts ...Option) *Model[T] {
	o := &options{keys: DefaultKeyMap()}
	for _, opt := range opts {
		opt(o)
	}

	pager := paginator.New()
	pager.Type = paginator.Arabic
	pager.KeyMap = paginator.KeyMap{PrevPage: o.keys.PrevPage, NextPage: o.keys.NextPage}

	m := &Model[T]{
		ctrl:    ctrl,
		keys:    o.keys,
		pager:   pager,
		help:    help.New(),
		title:   o.title,
		changed: make(chan struct{}, 1),
	}
	m.unsubscribe = ctrl.Subscribe(func(*datatable.State[T]) {
		select {
		case m.changed <- struct{}{}:
		default:
		}
	})
	m.column = m.activeColumn()
	return m
}

// Close removes the controller subscription.
func (m *Model[T]) Close() {
	m.unsubscribe()
}

func (m *Model[T]) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateChangedMsg:
		return m, m.waitForChange()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model[T]) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	p := m.ctrl.Pagination()

	switch {
	case key.Matches(msg, k.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, k.NextPage), key.Matches(msg, k.PrevPage):
		m.syncPager(p)
		var cmd tea.Cmd
		m.pager, cmd = m.pager.Update(msg)
		if m.pager.Page != p.Page {
			m.ctrl.SetPage(m.pager.Page)
		}
		return m, cmd

	case key.Matches(msg, k.FirstPage):
		m.ctrl.SetPage(0)

	case key.Matches(msg, k.LastPage):
		m.ctrl.SetPage(max(p.PageCount-1, 0))

	case key.Matches(msg, k.PerPage):
		m.ctrl.SetPerPage(nextOption(p.PerPageOptions, p.PerPage))

	case key.Matches(msg, k.NextColumn):
		m.moveColumn(1)

	case key.Matches(msg, k.PrevColumn):
		m.moveColumn(-1)

	case key.Matches(msg, k.Sort):
		if col, ok := m.selected(); ok {
			m.ctrl.Sort(col.ID())
		}

	case key.Matches(msg, k.Refresh):
		m.ctrl.Refresh()
	}
	return m, nil
}

func (m *Model[T]) View() string {
	p := m.ctrl.Pagination()
	m.syncPager(p)

	selected := ""
	if col, ok := m.selected(); ok {
		selected = col.ID()
	}

	body := RenderTable(TableView[T]{
		Columns:  m.ctrl.Columns(),
		State:    m.ctrl.State(),
		Selected: selected,
		Loading:  m.ctrl.Loading(),
	})

	parts := []string{}
	if m.title != "" {
		parts = append(parts, titleStyle.Render(m.title))
	}
	parts = append(parts, body, m.pager.View(), m.help.ShortHelpView(m.keys.ShortHelp()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// waitForChange blocks until the controller publishes and turns that into a message.
func (m *Model[T]) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-m.changed
		return StateChangedMsg{}
	}
}

// syncPager mirrors the safe page into the paginator, which only translates key
// presses into 0-based page changes.
func (m *Model[T]) syncPager(p datatable.Pagination) {
	m.pager.PerPage = max(p.PerPage, 1)
	m.pager.TotalPages = max(p.PageCount, 1)
	m.pager.Page = p.Page
}

func (m *Model[T]) sortable() []datatable.Column[T] {
	var out []datatable.Column[T]
	for _, col := range m.ctrl.Columns() {
		if col.Sortable() {
			out = append(out, col)
		}
	}
	return out
}

func (m *Model[T]) selected() (datatable.Column[T], bool) {
	cols := m.sortable()
	if len(cols) == 0 {
		return datatable.Column[T]{}, false
	}
	return cols[min(m.column, len(cols)-1)], true
}

func (m *Model[T]) moveColumn(delta int) {
	n := len(m.sortable())
	if n == 0 {
		return
	}
	m.column = ((m.column+delta)%n + n) % n
}

// activeColumn is the index of the current sort column among the sortable ones.
func (m *Model[T]) activeColumn() int {
	orderBy := m.ctrl.Params().OrderBy
	i := slices.IndexFunc(m.sortable(), func(c datatable.Column[T]) bool { return c.ID() == orderBy })
	return max(i, 0)
}

func nextOption(options []int, current int) int {
	if len(options) == 0 {
		return current
	}
	i := slices.Index(options, current)
	return options[(i+1)%len(options)]
}
