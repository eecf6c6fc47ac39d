package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const sceneWatchInterval = time.Second

// sceneWatchMsg fires on the polling tick that doubles as the redraw
// frame: hierarchy changes are detected and the render pass re-runs.
type sceneWatchMsg struct{}

func watchScene() tea.Cmd {
	return tea.Tick(sceneWatchInterval, func(time.Time) tea.Msg {
		return sceneWatchMsg{}
	})
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	typeHeadingStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#F7B801"))
	instanceHeadingStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#CCCCCC"))
	inactiveBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888"))
	fieldLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A0AEC0"))
	overriddenStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4CAF50"))
	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE"))
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444444"))
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// View renders the whole window: title bar, scrollable inspector body,
// and the footer with either key hints or the active value editor.
func (a *App) View() string {
	if !a.ready {
		return "Opening tweakboard..."
	}
	title := titleStyle.Render("⬡ TWEAKBOARD") + "  " +
		statusStyle.Render(a.config.ScenePath())

	footer := hintStyle.Render("↑/↓ select · enter edit · space fold · u undo · r refresh · q quit")
	if a.editing {
		footer = a.input.View()
	}
	status := ""
	if a.statusMsg != "" {
		status = statusStyle.Render(a.statusMsg)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, a.viewport.View(), status, footer)
}

// syncViewport re-renders the row list into the scroll container and
// keeps the selected row visible.
func (a *App) syncViewport() {
	if !a.ready {
		return
	}
	a.viewport.SetContent(a.renderRows())
	idx := a.selectedIndex()
	if idx < 0 {
		return
	}
	if idx < a.viewport.YOffset {
		a.viewport.SetYOffset(idx)
	} else if idx >= a.viewport.YOffset+a.viewport.Height {
		a.viewport.SetYOffset(idx - a.viewport.Height + 1)
	}
}

func (a *App) renderRows() string {
	if len(a.rows) == 0 {
		return statusStyle.Render("No tweakable instances in the scene.")
	}
	lines := make([]string, 0, len(a.rows))
	for _, r := range a.rows {
		lines = append(lines, a.renderRow(r))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderRow(r row) string {
	indent := strings.Repeat("  ", max(0, r.depth))
	cursor := "  "
	if selectable(r) && r.key == a.selectedKey {
		cursor = selectedStyle.Render("❯ ")
	}
	switch r.kind {
	case rowTypeHeading:
		return indent + typeHeadingStyle.Render(r.label)
	case rowInstanceHeading:
		label := instanceHeadingStyle.Render(r.label)
		if r.inactive {
			label += " " + inactiveBadgeStyle.Render("(inactive)")
		}
		return indent + label
	case rowSeparator:
		return separatorStyle.Render(strings.Repeat("─", max(8, a.width-2)))
	case rowArrayHeader:
		fold := "▸"
		if r.expanded {
			fold = "▾"
		}
		label := fieldLabelStyle.Render(r.label)
		if r.overridden {
			label = overriddenStyle.Render(r.label)
		}
		return indent + cursor + fold + " " + label + " " + statusStyle.Render(r.value)
	case rowArraySize:
		return indent + cursor + fieldLabelStyle.Render(r.label) + " " + valueStyle.Render(r.value)
	default:
		label := fieldLabelStyle.Render(r.label)
		if r.overridden {
			label = overriddenStyle.Render(r.label)
		}
		return indent + cursor + label + " " + valueStyle.Render(r.value)
	}
}
