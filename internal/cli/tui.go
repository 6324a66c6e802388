package cli

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/arbor/pkg/editor"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/tree"
)

// Tree styles
var (
	treeRootStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	treeSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	treeNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	treeCutStyle      = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
	panelStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

const (
	sepPath  = " / "
	helpLine = "↑/↓ move  ⏎ menu  a add  x cut  c copy  v paste  d delete  y yank path  q quit"
)

// menuEntry is one line of the context menu.
type menuEntry struct {
	key   string
	label string
	on    func(editor.ActionSet) bool
}

var menuEntries = []menuEntry{
	{"a", "add child", func(a editor.ActionSet) bool { return a.AddChild }},
	{"x", "cut", func(a editor.ActionSet) bool { return a.Cut }},
	{"c", "copy", func(a editor.ActionSet) bool { return a.Copy }},
	{"v", "paste", func(a editor.ActionSet) bool { return a.Paste }},
	{"d", "delete", func(a editor.ActionSet) bool { return a.Delete }},
}

// =============================================================================
// editModel - Interactive document editor
// =============================================================================

// editModel is the bubbletea model for the terminal editor. All document
// state lives in the controller; the model only tracks the selected row.
type editModel struct {
	ctrl     *editor.Controller
	selected tree.ID
	input    textinput.Model
	status   string
	failed   bool
	height   int
	offset   int

	// yank writes text to the system clipboard.
	yank func(string) error
}

func newEditModel(ctrl *editor.Controller) editModel {
	ti := textinput.New()
	ti.Placeholder = "label"
	ti.Prompt = "› "
	ti.CharLimit = errors.MaxLabelLength

	return editModel{
		ctrl:     ctrl,
		selected: tree.RootID,
		input:    ti,
		height:   20,
		yank:     clipboard.WriteAll,
	}
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-10, 5)
		m.scroll()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.ctrl.Snapshot().Interaction.Dialog {
		case editor.DialogAddChild:
			return m.updateDialog(msg)
		case editor.DialogMenu:
			return m.updateMenu(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m editModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		if err := m.ctrl.OpenMenu(m.selected); err != nil {
			m.report("", err)
		}
	case "y":
		m.yankPath()
	case "a", "x", "c", "v", "d":
		return m.apply(key)
	}
	return m, nil
}

func (m editModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "esc" || key == "q" || key == "enter" {
		m.ctrl.CloseMenu()
		return m, nil
	}

	actions := m.ctrl.Actions(m.selected)
	for _, e := range menuEntries {
		if e.key != key {
			continue
		}
		if !e.on(actions) {
			m.status, m.failed = e.label+" is not available here", true
			return m, nil
		}
		return m.apply(key)
	}
	return m, nil
}

func (m editModel) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ctrl.CancelAddChild()
		m.closeInput()
		m.status, m.failed = "", false
		return m, nil
	case "enter":
		id, err := m.ctrl.ConfirmAddChild()
		if err != nil {
			m.report("", err)
			return m, nil
		}
		m.closeInput()
		m.selected = id
		m.scroll()
		m.report("Added "+m.label(id), nil)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetPendingLabel(m.input.Value())
	return m, cmd
}

// apply runs the edit bound to key on the selected node.
func (m editModel) apply(key string) (tea.Model, tea.Cmd) {
	id := m.selected
	switch key {
	case "a":
		if err := m.ctrl.BeginAddChild(id); err != nil {
			m.report("", err)
			return m, nil
		}
		m.input.Reset()
		m.status = ""
		return m, m.input.Focus()
	case "x":
		m.report("Cut "+m.label(id), m.ctrl.Cut(id))
	case "c":
		m.report("Copied "+m.label(id), m.ctrl.Copy(id))
	case "v":
		m.report("Pasted under "+m.label(id), m.ctrl.Paste(id))
	case "d":
		label := m.label(id)
		parent, _ := m.ctrl.Snapshot().Forest.Parent(id)
		err := m.ctrl.Delete(id)
		if err == nil {
			m.selected = parent.ID
			m.scroll()
		}
		m.report("Deleted "+label, err)
	}
	return m, nil
}

func (m *editModel) closeInput() {
	m.input.Blur()
	m.input.Reset()
}

func (m *editModel) report(ok string, err error) {
	if err != nil {
		m.status, m.failed = errors.UserMessage(err), true
		return
	}
	m.status, m.failed = ok, false
}

func (m *editModel) yankPath() {
	path := strings.Join(m.ctrl.Snapshot().Forest.Path(m.selected), sepPath)
	if err := m.yank(path); err != nil {
		m.status, m.failed = "clipboard unavailable: "+err.Error(), true
		return
	}
	m.status, m.failed = "Copied "+path, false
}

// move shifts the selection by delta rows.
func (m *editModel) move(delta int) {
	nodes := m.ctrl.Snapshot().Forest.Flatten()
	row := max(rowOf(nodes, m.selected), 0) + delta
	row = min(max(row, 0), len(nodes)-1)
	m.selected = nodes[row].ID
	m.scroll()
}

// scroll keeps the selected row inside the visible window.
func (m *editModel) scroll() {
	row := rowOf(m.ctrl.Snapshot().Forest.Flatten(), m.selected)
	if row < m.offset {
		m.offset = row
	}
	if row >= m.offset+m.height {
		m.offset = row - m.height + 1
	}
	m.offset = max(m.offset, 0)
}

func (m editModel) label(id tree.ID) string {
	n, ok := m.ctrl.Snapshot().Forest.Find(id)
	if !ok {
		return string(id)
	}
	return fmt.Sprintf("%q", n.Label)
}

func rowOf(nodes []tree.Node, id tree.ID) int {
	for i, n := range nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (m editModel) View() string {
	snap := m.ctrl.Snapshot()
	nodes := snap.Forest.Flatten()

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Arbor"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  rev %d · %d nodes · clipboard: %s", snap.Revision, len(nodes), clipboardStatus(snap))))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(nodes))
	for _, n := range nodes[m.offset:end] {
		b.WriteString(m.renderRow(n, snap))
		b.WriteString("\n")
	}
	if end < len(nodes) {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  … %d more", len(nodes)-end)))
		b.WriteString("\n")
	}

	switch snap.Interaction.Dialog {
	case editor.DialogMenu:
		b.WriteString("\n")
		b.WriteString(m.renderMenu())
		b.WriteString("\n")
	case editor.DialogAddChild:
		b.WriteString("\n")
		b.WriteString(panelStyle.Render("Add child to " + m.label(snap.Interaction.Target) + "\n" + m.input.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		style := StyleSuccess
		if m.failed {
			style = StyleError
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render(helpLine))
	return b.String()
}

func (m editModel) renderRow(n tree.Node, snap editor.Snapshot) string {
	cursor := "  "
	style := treeNormalStyle
	switch {
	case n.ID == m.selected:
		cursor = "▸ "
		style = treeSelectedStyle
	case n.IsRoot():
		style = treeRootStyle
	case n.Cut:
		style = treeCutStyle
	}

	label := n.Label
	if n.ID == snap.Clipboard.NodeID() && !snap.Clipboard.Empty() {
		label += " [" + snap.Clipboard.Mode().String() + "]"
	}
	return cursor + strings.Repeat("  ", n.Col) + style.Render(label)
}

func (m editModel) renderMenu() string {
	actions := m.ctrl.Actions(m.selected)
	lines := make([]string, len(menuEntries))
	for i, e := range menuEntries {
		line := e.key + "  " + e.label
		if e.on(actions) {
			lines[i] = StyleValue.Render(line)
		} else {
			lines[i] = StyleDim.Render(line)
		}
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func clipboardStatus(s editor.Snapshot) string {
	if s.Clipboard.Empty() {
		return "empty"
	}
	return s.Clipboard.Mode().String()
}
