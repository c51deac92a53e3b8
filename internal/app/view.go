package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/incordes/incordes/internal/ui"
)

// updateSizes recalculates panel dimensions after a resize.
func (m *Model) updateSizes() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)

	mainHeight := m.height - ui.HeaderHeight - ui.FooterHeight
	if mainHeight < 1 {
		mainHeight = 1
	}

	sidebarWidth := ui.SidebarWidth
	if sidebarWidth > m.width/2 {
		sidebarWidth = m.width / 2
	}

	m.sidebar.SetSize(sidebarWidth, mainHeight)
	m.chat.SetSize(m.width-sidebarWidth, mainHeight)
}

// View renders the application
func (m *Model) View() tea.View {
	if m.width == 0 || m.height == 0 {
		return tea.NewView("")
	}

	mainHeight := m.height - ui.HeaderHeight - ui.FooterHeight
	if mainHeight < 1 {
		mainHeight = 1
	}

	var main string
	if m.modal.IsVisible() {
		main = m.modal.View(m.width, mainHeight)
	} else {
		main = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), m.chat.View())
	}

	return tea.NewView(lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		main,
		m.footer.View(),
	))
}
