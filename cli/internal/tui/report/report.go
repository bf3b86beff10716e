// ABOUTME: Scrollable report viewer for the interactive wizard
// ABOUTME: Pages a rendered installation report in the alternate screen

package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/evse-calc/cli/internal/tui/styles"
)

// Lines reserved for the header and footer around the viewport.
const chromeHeight = 4

var (
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	dividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// Viewer is a bubbletea model that shows one report body.
type Viewer struct {
	title     string
	body      string
	compliant bool
	viewport  viewport.Model
	ready     bool
}

// New creates a viewer for an already-rendered report.
func New(title, body string, compliant bool) *Viewer {
	return &Viewer{title: title, body: body, compliant: compliant}
}

// Init implements tea.Model
func (v *Viewer) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-chromeHeight, 1)
		if !v.ready {
			v.viewport = viewport.New(msg.Width, height)
			v.viewport.SetContent(v.body)
			v.ready = true
		} else {
			v.viewport.Width = msg.Width
			v.viewport.Height = height
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return v, tea.Quit
		case "g", "home":
			v.viewport.GotoTop()
			return v, nil
		case "G", "end":
			v.viewport.GotoBottom()
			return v, nil
		}
	}

	if !v.ready {
		return v, nil
	}
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View implements tea.Model
func (v *Viewer) View() string {
	if !v.ready {
		return "Loading report..."
	}

	var sb strings.Builder
	sb.WriteString(v.header())
	sb.WriteString("\n")
	sb.WriteString(v.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(v.footer())
	return sb.String()
}

func (v *Viewer) header() string {
	verdict := styles.StatusOK.Render("COMPLIANT")
	if !v.compliant {
		verdict = styles.StatusCritical.Render("NON-COMPLIANT")
	}
	line := dividerStyle.Render(strings.Repeat("─", max(v.viewport.Width, 0)))
	return styles.Title.Render(v.title) + "  " + verdict + "\n" + line
}

func (v *Viewer) footer() string {
	line := dividerStyle.Render(strings.Repeat("─", max(v.viewport.Width, 0)))
	help := helpStyle.Render(fmt.Sprintf("↑/↓ scroll • g/G top/bottom • q quit   %3.0f%%", v.viewport.ScrollPercent()*100))
	return line + "\n" + help
}

// Run shows the viewer in the alternate screen until the user quits.
func Run(title, body string, compliant bool) error {
	p := tea.NewProgram(
		New(title, body, compliant),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
