package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kungfusheep/chipflow"
	"github.com/kungfusheep/chipflow/internal/debug"
)

type chipView = chipflow.FlexibleView[*chipflow.Chip, string]

// model is the interactive chip picker.
type model struct {
	renderer *chipflow.ChipRenderer
	lg       *lipgloss.Renderer

	all       *chipflow.Observable[*chipflow.Chip]
	visible   *chipflow.Observable[*chipflow.Chip]
	selection *chipflow.Selection[*chipflow.Chip]
	view      *chipView

	fixedWidth bool
	showFocus  bool
	focus      int
	filtering  bool
	query      string

	dirty bool
	err   error
}

// newModel builds a picker over the configured chips. width > 0 pins the
// container width; otherwise it follows the window.
func newModel(cfg Config, lg *lipgloss.Renderer, width int) (*model, error) {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	all := chipflow.NewObservable(cfg.NewChips()...)
	m := &model{
		renderer:   cfg.NewRenderer(lg),
		lg:         lg,
		all:        all,
		visible:    chipflow.NewObservable(slices.Clone(all.Items())...),
		selection:  chipflow.NewSelection(all),
		fixedWidth: width > 0,
	}

	m.view = chipflow.NewFlexibleView(m.visible, chipflow.ChipKey[*chipflow.Chip]).
		Alignment(cfg.Alignment()).
		MaxPasses(cfg.Layout.MaxPasses)
	if err := m.view.SetSpacing(float64(cfg.Layout.Spacing)); err != nil {
		return nil, err
	}
	if width > 0 {
		if err := m.view.SetAvailableWidth(float64(width)); err != nil {
			return nil, err
		}
	}
	m.view.OnInvalidate(func() { m.dirty = true })

	m.settle()
	return m, nil
}

// settle measures until the rows stop moving. An unsettled layout is still
// drawn; the last measurements win.
func (m *model) settle() {
	passes, err := m.view.Settle(chipflow.Measurer[*chipflow.Chip](m.renderer))
	switch {
	case errors.Is(err, chipflow.ErrUnsettled):
		debug.Log("layout unsettled: %v", err)
	case err != nil:
		m.err = err
	default:
		debug.Log("layout settled in %d passes at width %v", passes, m.view.AvailableWidth())
	}
	m.dirty = false
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.fixedWidth {
			if err := m.view.SetAvailableWidth(float64(msg.Width)); err != nil {
				m.err = err
			}
		}

	case tea.KeyMsg:
		if m.filtering {
			cmd = m.handleFilterKey(msg)
		} else {
			cmd = m.handleKey(msg)
		}
	}

	if m.dirty {
		m.settle()
	}
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "left", "h":
		m.moveFocus(-1)
	case "right", "l":
		m.moveFocus(1)
	case "up", "k":
		m.moveRow(-1)
	case "down", "j":
		m.moveRow(1)
	case " ", "enter":
		if c := m.focused(); c != nil {
			m.selection.Toggle(c.ID())
		}
	case "c":
		m.selection.Clear()
	case "/":
		m.filtering = true
	case "esc":
		m.setQuery("")
	}
	return nil
}

func (m *model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEnter:
		m.filtering = false
	case tea.KeyEsc:
		m.filtering = false
		m.setQuery("")
	case tea.KeyBackspace:
		if r := []rune(m.query); len(r) > 0 {
			m.setQuery(string(r[:len(r)-1]))
		}
	case tea.KeySpace:
		m.setQuery(m.query + " ")
	case tea.KeyRunes:
		m.setQuery(m.query + string(msg.Runes))
	}
	return nil
}

// setQuery refilters the visible chips, keeping focus on the same chip when
// it is still visible.
func (m *model) setQuery(q string) {
	if q == m.query {
		return
	}
	var focusID string
	if c := m.focused(); c != nil {
		focusID = c.ID()
	}

	m.query = q
	m.visible.Set(slices.Clone(chipflow.FilterChips(chipflow.ParseQuery(q), m.all.Items())))

	m.focus = max(0, m.visible.IndexFunc(func(c *chipflow.Chip) bool { return c.ID() == focusID }))
}

func (m *model) focused() *chipflow.Chip {
	if m.focus < 0 || m.focus >= m.visible.Len() {
		return nil
	}
	return m.visible.At(m.focus)
}

func (m *model) moveFocus(d int) {
	if n := m.visible.Len(); n > 0 {
		m.focus = max(0, min(m.focus+d, n-1))
	}
}

// moveRow moves focus to the same column of the row above or below,
// or the last chip of that row if it is shorter.
func (m *model) moveRow(d int) {
	rows := m.view.Rows()
	start := 0
	for r, row := range rows {
		if m.focus < start+len(row.Items) {
			target := r + d
			if target < 0 || target >= len(rows) {
				return
			}
			col := m.focus - start
			targetStart := start
			if d < 0 {
				targetStart -= len(rows[target].Items)
			} else {
				targetStart += len(row.Items)
			}
			m.focus = targetStart + min(col, len(rows[target].Items)-1)
			return
		}
		start += len(row.Items)
	}
}

// chips renders just the laid-out chips.
func (m *model) chips() string {
	var focusID string
	if c := m.focused(); c != nil && m.showFocus {
		focusID = c.ID()
	}
	return chipflow.RenderView(m.renderer, m.view, focusID)
}

func (m *model) selectedLine() string {
	names := m.selection.Names()
	if len(names) == 0 {
		return "selected: none"
	}
	return "selected: " + strings.Join(names, ", ")
}

func (m *model) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}
	if m.view.AvailableWidth() == 0 {
		return ""
	}

	faint := m.lg.NewStyle().Faint(true)
	parts := []string{faint.Render("←/→ move  space toggle  / filter  c clear  q quit")}

	if m.filtering || m.query != "" {
		cursor := ""
		if m.filtering {
			cursor = "█"
		}
		parts = append(parts, "/"+m.query+cursor)
	}

	if m.visible.Len() == 0 {
		parts = append(parts, faint.Render("no chips match"))
	} else {
		parts = append(parts, m.chips())
	}

	parts = append(parts, m.selectedLine())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
