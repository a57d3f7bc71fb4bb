// Package tui contains help view components
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/nettracex/netlistx/internal/domain"
)

// HelpModel displays the dialog help, rendered from Markdown, in a
// scrollable viewport
type HelpModel struct {
	width    int
	height   int
	theme    domain.Theme
	keyMap   KeyMap
	focused  bool
	viewport viewport.Model
	ready    bool
	content  string
	closed   bool
}

// NewHelpModel creates a new help model
func NewHelpModel() *HelpModel {
	return &HelpModel{
		keyMap:   DefaultKeyMap(),
		focused:  true,
		viewport: viewport.New(0, 0),
	}
}

// Closed reports whether the user left the help view
func (m *HelpModel) Closed() bool {
	return m.closed
}

// Reset prepares the help view to be shown again
func (m *HelpModel) Reset() {
	m.closed = false
	m.viewport.GotoTop()
}

// Init implements tea.Model
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keyMap.Back), key.Matches(msg, m.keyMap.Help):
			m.closed = true
			return m, nil
		default:
			// Delegate scrolling to viewport
			m.viewport, cmd = m.viewport.Update(msg)
		}

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}

	return m, cmd
}

// View implements tea.Model
func (m *HelpModel) View() string {
	if !m.ready {
		return "\n  Initializing help..."
	}

	return m.headerView() + "\n" + m.viewport.View() + "\n" + m.footerView()
}

// SetSize implements domain.TUIComponent
func (m *HelpModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := 2 // Space for title
	footerHeight := 2 // Space for help text

	// Ensure minimum content height
	contentHeight := height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	m.viewport.Width = width
	m.viewport.Height = contentHeight
	m.content = renderMarkdown(helpMarkdown, width)
	m.viewport.SetContent(m.content)
	m.ready = width > 0
}

// SetTheme implements domain.TUIComponent
func (m *HelpModel) SetTheme(theme domain.Theme) {
	m.theme = theme
}

// Focus implements domain.TUIComponent
func (m *HelpModel) Focus() {
	m.focused = true
}

// Blur implements domain.TUIComponent
func (m *HelpModel) Blur() {
	m.focused = false
}

// headerView renders the help header
func (m *HelpModel) headerView() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		Align(lipgloss.Center).
		Width(m.width)

	return titleStyle.Render("Netlist Help")
}

// footerView renders the help footer
func (m *HelpModel) footerView() string {
	info := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render(fmt.Sprintf("%.0f%% • Press Esc or F1 to close • Use ↑/↓ PgUp/PgDown to scroll", m.viewport.ScrollPercent()*100))

	line := strings.Repeat("─", max(0, m.width-lipgloss.Width(info)))
	return lipgloss.JoinHorizontal(lipgloss.Center, line, info)
}

// renderMarkdown renders md for a terminal of the given width. The raw
// Markdown is returned when rendering fails.
func renderMarkdown(md string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return md
	}

	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

const helpMarkdown = `# Netlist

Each page exports the schematic netlist in one format. The page marked
**default** is selected the next time the dialog opens.

## Pages

| Page | Output |
|------|--------|
| Pcbnew | S-expression netlist for the board editor (*.net) |
| OrcadPCB2 | OrcadPCB2 netlist (*.net) |
| CadStar | CadStar netlist (*.frp) |
| Spice | Spice netlist (*.cir) |
| Plugins | Output of a user generator command |

## Keys

| Key | Action |
|-----|--------|
| ctrl+→ / ctrl+← | Next / previous page |
| tab / shift+tab | Move between fields and buttons |
| space or enter | Toggle a checkbox or press a button |
| ctrl+g | Generate the netlist |
| ctrl+n | Add a generator |
| ctrl+x | Remove the generator on this page |
| ctrl+r | Run the simulator (Spice page) |
| ctrl+o | Browse for a generator script (Add a Plugin) |
| F1 | Toggle this help |
| esc | Cancel |

## Generator commands

A generator receives an intermediate XML netlist and writes the final file.
The command line may use:

- ` + "`%I`" + ` the intermediate netlist path
- ` + "`%O`" + ` the output path without extension
- ` + "`%B`" + ` the output base name
- ` + "`%P`" + ` the project directory

Browsing for a script fills in a template: ` + "`.xsl`" + ` files run through
xsltproc, ` + "`.py`" + ` files through python, executables and files without
an extension read the netlist on stdin.

## Simulator

**Run Simulator** writes ` + "`<schematic>.cir`" + ` next to the schematic
and starts the simulator command with that file as its last argument.
`
