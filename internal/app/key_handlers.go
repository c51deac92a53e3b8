package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/incordes/incordes/internal/clipboard"
	"github.com/incordes/incordes/internal/errors"
	"github.com/incordes/incordes/internal/logger"
	"github.com/incordes/incordes/internal/selection"
	"github.com/incordes/incordes/internal/ui"
)

// handleKeyPress routes key presses. Returns (nil, nil) when the key was
// not handled here and should fall through to the focused panel.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	switch msg.String() {
	case "tab":
		if m.focus == FocusSidebar && m.sel.Target().Active() {
			m.setFocus(FocusChat)
		} else if m.focus == FocusChat {
			m.setFocus(FocusSidebar)
		}
		return m, nil
	}

	if m.focus == FocusChat {
		return m.handleChatKey(msg)
	}
	return m.handleSidebarKey(msg)
}

func (m *Model) setFocus(focus Focus) {
	m.focus = focus
	m.sidebar.SetFocused(focus == FocusSidebar)
	m.chat.SetFocused(focus == FocusChat)
	m.syncFooter()
}

// handleChatKey handles keys while the composer has focus. Anything not
// handled here falls through to the textarea.
func (m *Model) handleChatKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.setFocus(FocusSidebar)
		return m, nil
	case "enter":
		return m.sendDraft()
	}
	return nil, nil
}

// sendDraft snapshots the composer input and posts it to the active
// conversation. The draft stays in the input until the send succeeds.
func (m *Model) sendDraft() (tea.Model, tea.Cmd) {
	m.comp.SetDraft(m.chat.Input())
	out, err := m.comp.Prepare()
	if err != nil {
		// Empty draft or no target; nothing to do
		return m, nil
	}
	logger.Debug("App: sending %d bytes to %v", len(out.Content), m.comp.Target())
	return m, m.sendCmd(out, m.comp.Target())
}

// handleSidebarKey handles keys while the sidebar has focus.
func (m *Model) handleSidebarKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "enter":
		return m.openSelectedItem()

	case "1":
		m.sel.SetViewMode(selection.ViewFriends)
		m.syncSidebar()
		return m, nil

	case "2":
		m.sel.SetViewMode(selection.ViewDirectMessages)
		m.syncSidebar()
		return m, nil

	case "a":
		m.modal.Show(ui.NewAddFriendState())
		return m, nil

	case "n":
		m.modal.Show(ui.NewCreateServerState())
		return m, nil

	case "c":
		if sid := m.sel.ServerID(); sid != 0 {
			srv, _ := m.dir.Server(sid)
			m.modal.Show(ui.NewCreateChannelState(sid, srv.Name))
		}
		return m, nil

	case "y":
		if it := m.sidebar.SelectedItem(); it != nil && it.Kind == ui.ItemFriend && !it.Friend.Accepted() {
			return m, m.acceptFriendCmd(it.Friend.ID)
		}
		return m, nil

	case "x":
		if it := m.sidebar.SelectedItem(); it != nil && it.Kind == ui.ItemFriend {
			return m, m.removeFriendCmd(it.Friend.ID)
		}
		return m, nil

	case "g":
		m.sel.SelectHome()
		m.loader.Reset()
		m.comp.Rebind(m.sel.Target())
		m.chat.ClearConversation()
		m.syncSidebar()
		m.syncFooter()
		return m, nil

	case "r":
		return m, tea.Batch(m.refreshFriendsCmd(), m.refreshServersCmd(), m.beginTranscriptFetch())

	case "ctrl+y":
		return m.copyIncordesID()

	case "L":
		m.modal.Show(ui.NewConfirmLogoutState())
		return m, nil
	}

	// up/down/j/k fall through to the sidebar's own Update
	return nil, nil
}

// openSelectedItem acts on the sidebar row under the cursor.
func (m *Model) openSelectedItem() (tea.Model, tea.Cmd) {
	it := m.sidebar.SelectedItem()
	if it == nil {
		return m, nil
	}

	switch it.Kind {
	case ui.ItemServer:
		return m.enterServer(it.Server.ID)
	case ui.ItemChannel:
		return m.enterChannel(it.Channel.ID)
	case ui.ItemFriend:
		if !it.Friend.Accepted() {
			return m, m.ShowFlashInfo("Friend request pending. Press y to accept.")
		}
		return m.enterFriend(it.Friend.ID)
	}
	return m, nil
}

// enterServer selects a server and loads its channels. The first channel
// is opened automatically once the list is available.
func (m *Model) enterServer(serverID int64) (tea.Model, tea.Cmd) {
	if err := m.sel.SelectServer(serverID); err != nil {
		return m, m.ShowFlashError(errors.UserMessage(err))
	}
	m.chat.ClearConversation()
	m.comp.Rebind(m.sel.Target())
	m.syncSidebar()
	m.syncFooter()

	if m.dir.HasChannels(serverID) {
		if chans := m.dir.Channels(serverID); len(chans) > 0 {
			return m.enterChannel(chans[0].ID)
		}
		return m, nil
	}
	return m, m.loadChannelsCmd(serverID)
}

func (m *Model) enterChannel(channelID int64) (tea.Model, tea.Cmd) {
	prev := m.sel.Target()
	if err := m.sel.SelectChannel(channelID); err != nil {
		return m, m.ShowFlashError(errors.UserMessage(err))
	}
	if prev.Equal(m.sel.Target()) {
		return m, nil
	}
	return m.openConversation()
}

func (m *Model) enterFriend(friendID int64) (tea.Model, tea.Cmd) {
	prev := m.sel.Target()
	if err := m.sel.SelectFriend(friendID); err != nil {
		return m, m.ShowFlashError(errors.UserMessage(err))
	}
	if prev.Equal(m.sel.Target()) {
		return m, nil
	}
	return m.openConversation()
}

// openConversation points the chat panel and composer at the newly
// selected target and starts the transcript fetch.
func (m *Model) openConversation() (tea.Model, tea.Cmd) {
	m.comp.Rebind(m.sel.Target())
	m.chat.SetConversation(m.conversationName(), m.selfID())
	m.chat.SetInput(m.comp.Draft())
	m.syncSidebar()
	m.syncFooter()
	return m, m.beginTranscriptFetch()
}

func (m *Model) copyIncordesID() (tea.Model, tea.Cmd) {
	id := m.session.Current()
	if id == nil {
		return m, nil
	}
	if err := clipboard.WriteText(id.IncordesID); err != nil {
		return m, m.ShowFlashWarning("Clipboard unavailable")
	}
	return m, m.ShowFlashSuccess("Incordes ID copied: " + id.IncordesID)
}
