package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/incordes/incordes/internal/logger"
	"github.com/incordes/incordes/internal/ui"
)

// Update handles messages. This is the core Bubble Tea update function
// that routes all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()

	case tea.FocusMsg:
		m.windowFocused = true
		logger.Debug("App: window focused")

	case tea.BlurMsg:
		m.windowFocused = false
		logger.Debug("App: window blurred")

	case tea.KeyPressMsg:
		if model, cmd := m.handleKeyPress(msg); model != nil {
			return model, cmd
		}
		// Not handled globally; fall through to the focused panel

	case ui.FlashTickMsg:
		if m.footer.HasFlash() {
			if !m.footer.ClearIfExpired() {
				cmds = append(cmds, ui.FlashTick())
			}
		}

	case AuthResultMsg:
		return m.handleAuthResult(msg)

	case FriendsRefreshedMsg:
		return m.handleFriendsRefreshed(msg)

	case ServersRefreshedMsg:
		return m.handleServersRefreshed(msg)

	case ChannelsLoadedMsg:
		return m.handleChannelsLoaded(msg)

	case TranscriptMsg:
		return m.handleTranscript(msg)

	case SentMsg:
		return m.handleSent(msg)

	case FriendAddedMsg:
		return m.handleFriendAdded(msg)

	case FriendAcceptedMsg:
		return m.handleFriendAccepted(msg)

	case FriendRemovedMsg:
		return m.handleFriendRemoved(msg)

	case ServerCreatedMsg:
		return m.handleServerCreated(msg)

	case ChannelCreatedMsg:
		return m.handleChannelCreated(msg)
	}

	// Delegate remaining messages to the focused panel
	if m.modal.IsVisible() {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	switch m.focus {
	case FocusSidebar:
		var cmd tea.Cmd
		m.sidebar, cmd = m.sidebar.Update(msg)
		cmds = append(cmds, cmd)
	case FocusChat:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		cmds = append(cmds, cmd)
		m.footer.SetDraft(m.chat.Input())
	}

	m.syncFooter()
	return m, tea.Batch(cmds...)
}
