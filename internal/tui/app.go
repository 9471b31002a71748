package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/galaxy/internal/registry"
	"github.com/1broseidon/galaxy/internal/shortcut"
)

// Client is the daemon surface the editor needs. *ipc.Client satisfies it.
type Client interface {
	ListShortcuts() ([]registry.Entry, error)
	UpdateShortcut(id, shortcut string) (*registry.Entry, error)
	ReloadShortcuts() (*registry.ReloadReport, error)
}

// shortcutItem is a list item for one binding.
type shortcutItem struct {
	entry registry.Entry
}

func (i shortcutItem) Title() string {
	mark := okStyle.Render("●")
	if !i.entry.Active {
		mark = errStyle.Render("○")
	}
	return mark + " " + i.entry.Name
}

func (i shortcutItem) Description() string {
	if i.entry.Shortcut == "" {
		return "(unbound)"
	}
	if c, err := shortcut.Parse(i.entry.Shortcut); err == nil {
		return c.Display()
	}
	return i.entry.Shortcut
}

func (i shortcutItem) FilterValue() string { return i.entry.Name }

type (
	shortcutsLoadedMsg struct {
		entries []registry.Entry
		err     error
	}
	shortcutUpdatedMsg struct {
		id    string
		entry *registry.Entry
		err   error
	}
	shortcutsReloadedMsg struct {
		report *registry.ReloadReport
		err    error
	}
)

// model is the root bubbletea model for the shortcut editor.
type model struct {
	client Client

	list  list.Model
	input textinput.Model

	editing   bool
	editingID string

	status    string
	statusErr bool

	width  int
	height int
}

func newModel(client Client) model {
	ti := textinput.New()
	ti.Placeholder = "ctrl+alt+left"
	ti.Prompt = "› "
	ti.CharLimit = 64

	return model{
		client: client,
		list:   newList(nil),
		input:  ti,
	}
}

func (m model) loadShortcuts() tea.Msg {
	entries, err := m.client.ListShortcuts()
	return shortcutsLoadedMsg{entries: entries, err: err}
}

func (m model) updateShortcut(id, value string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		entry, err := client.UpdateShortcut(id, value)
		return shortcutUpdatedMsg{id: id, entry: entry, err: err}
	}
}

func (m model) reloadShortcuts() tea.Msg {
	report, err := m.client.ReloadShortcuts()
	return shortcutsReloadedMsg{report: report, err: err}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return m.loadShortcuts
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.listWidth(), m.contentHeight())
		return m, nil

	case shortcutsLoadedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("load failed: %v", msg.err), true)
			return m, nil
		}
		m.setEntries(msg.entries)
		return m, nil

	case shortcutUpdatedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("%s: %v", msg.id, msg.err), true)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("%s bound to %s", msg.id, msg.entry.Normalized), false)
		return m, m.loadShortcuts

	case shortcutsReloadedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("reload failed: %v", msg.err), true)
			return m, nil
		}
		m.setStatus(summarizeReload(msg.report), msg.report != nil && len(msg.report.Failed) > 0)
		return m, m.loadShortcuts

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter", "e":
			item, ok := m.list.SelectedItem().(shortcutItem)
			if !ok {
				return m, nil
			}
			m.editing = true
			m.editingID = item.entry.ID
			m.input.SetValue(item.entry.Shortcut)
			m.input.CursorEnd()
			m.status = ""
			return m, m.input.Focus()
		case "r":
			m.setStatus("reloading…", false)
			return m, m.reloadShortcuts
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.stopEditing()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		if _, err := shortcut.Parse(value); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		id := m.editingID
		m.stopEditing()
		m.setStatus("saving "+id+"…", false)
		return m, m.updateShortcut(id, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) stopEditing() {
	m.editing = false
	m.editingID = ""
	m.input.Blur()
	m.input.Reset()
}

func (m *model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *model) setEntries(entries []registry.Entry) {
	selected := m.list.Index()
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, shortcutItem{entry: e})
	}
	m.list.SetItems(items)
	if selected < len(items) {
		m.list.Select(selected)
	}
}

func (m model) listWidth() int {
	w := m.width * 2 / 5
	if w < 24 {
		w = 24
	}
	return w
}

func (m model) contentHeight() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	left := lipgloss.NewStyle().
		Width(m.listWidth()).
		Height(m.contentHeight()).
		Render(m.list.View())

	rightWidth := m.width - m.listWidth() - 2
	if rightWidth < 10 {
		rightWidth = 10
	}
	right := m.renderDetail(rightWidth)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatus(), m.renderHelp())
}

func (m model) renderDetail(width int) string {
	item, ok := m.list.SelectedItem().(shortcutItem)
	if !ok {
		return lipgloss.NewStyle().
			Width(width).
			Height(m.contentHeight()).
			Foreground(lipgloss.Color("241")).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No shortcuts\nPress r to reload")
	}

	e := item.entry
	state := okStyle.Render("registered")
	if !e.Active {
		state = errStyle.Render("not registered")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Action:  "), e.Name)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("ID:      "), dimStyle.Render(e.ID))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Shortcut:"), e.Shortcut)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Combo:   "), e.Normalized)
	fmt.Fprintf(&b, "%s %s", labelStyle.Render("State:   "), state)

	if m.editing && m.editingID == e.ID {
		b.WriteString("\n\n")
		b.WriteString(labelStyle.Render("New shortcut"))
		b.WriteString("\n")
		b.WriteString(m.input.View())
	}

	return detailStyle.Width(width - 2).Render(b.String())
}

func (m model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return errStyle.Render("✗ " + m.status)
	}
	return okStyle.Render("✓ " + m.status)
}

func (m model) renderHelp() string {
	keys := "↑/↓ select  enter edit  r reload  q quit"
	if m.editing {
		keys = "enter save  esc cancel"
	}
	return helpBarStyle.Width(m.width).Render(keys)
}

func summarizeReload(r *registry.ReloadReport) string {
	if r == nil {
		return "reloaded"
	}
	parts := []string{
		fmt.Sprintf("%d added", len(r.Added)),
		fmt.Sprintf("%d removed", len(r.Removed)),
		fmt.Sprintf("%d changed", len(r.Changed)),
	}
	if len(r.Failed) > 0 {
		ids := make([]string, 0, len(r.Failed))
		for _, f := range r.Failed {
			ids = append(ids, f.ID)
		}
		parts = append(parts, fmt.Sprintf("failed: %s", strings.Join(ids, ", ")))
	}
	return "reloaded: " + strings.Join(parts, ", ")
}
