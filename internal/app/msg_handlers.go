package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/incordes/incordes/internal/api"
	"github.com/incordes/incordes/internal/errors"
	"github.com/incordes/incordes/internal/logger"
	"github.com/incordes/incordes/internal/notification"
	"github.com/incordes/incordes/internal/selection"
	"github.com/incordes/incordes/internal/ui"
)

func (m *Model) handleAuthResult(msg AuthResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logger.Warn("App: auth failed: %v", msg.Err)
		if state, ok := m.modal.State.(*ui.LoginState); ok {
			m.modal.SetError(errors.UserMessage(msg.Err))
			state.Reopen()
		}
		return m, nil
	}

	m.header.SetIdentity(&msg.Identity)
	m.modal.Hide()
	m.syncFooter()

	greeting := "Welcome back, " + msg.Identity.Tag()
	if msg.Mode == api.ModeRegister {
		greeting = "Account created. Your Incordes ID is " + msg.Identity.IncordesID
	}

	return m, tea.Batch(
		m.ShowFlashSuccess(greeting),
		m.refreshFriendsCmd(),
		m.refreshServersCmd(),
	)
}

func (m *Model) handleFriendsRefreshed(msg FriendsRefreshedMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg.Err != nil {
		// The cache kept its previous contents; just say so
		cmds = append(cmds, m.ShowFlashWarning("Couldn't refresh friends: "+errors.UserMessage(msg.Err)))
	} else {
		cmds = append(cmds, m.notifyNewRequests(msg)...)
	}

	// Drop the active DM if the friendship no longer stands
	if t := m.sel.Target(); t.Kind == selection.TargetFriend {
		if f, ok := m.dir.Friend(t.FriendID); !ok || !f.Accepted() {
			m.clearConversation()
		}
	}

	m.syncSidebar()
	m.syncFooter()
	return m, tea.Batch(cmds...)
}

// notifyNewRequests fires a desktop notification for pending requests not
// seen before. Only while the window is unfocused.
func (m *Model) notifyNewRequests(msg FriendsRefreshedMsg) []tea.Cmd {
	seen := make(map[int64]bool, len(msg.Friends))
	var cmds []tea.Cmd
	for _, f := range msg.Friends {
		if f.Accepted() {
			continue
		}
		seen[f.ID] = true
		if m.knownPending[f.ID] {
			continue
		}
		if !m.windowFocused && m.cfg.GetNotificationsEnabled() {
			if err := notification.FriendRequest(f.Tag()); err != nil {
				logger.Debug("App: notification failed: %v", err)
			}
		}
	}
	m.knownPending = seen
	return cmds
}

func (m *Model) handleServersRefreshed(msg ServersRefreshedMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if msg.Err != nil {
		cmd = m.ShowFlashWarning("Couldn't refresh servers: " + errors.UserMessage(msg.Err))
	}

	// A selected server that vanished sends the view home
	if sid := m.sel.ServerID(); sid != 0 {
		if _, ok := m.dir.Server(sid); !ok {
			m.sel.SelectHome()
			m.clearConversation()
		}
	}

	m.syncSidebar()
	m.syncFooter()
	return m, cmd
}

func (m *Model) handleChannelsLoaded(msg ChannelsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.ShowFlashWarning("Couldn't load channels: " + errors.UserMessage(msg.Err))
	}

	if msg.ServerID != m.sel.ServerID() {
		// User moved on while the fetch was in flight
		return m, nil
	}

	m.syncSidebar()

	// Opening a server lands in its first channel once the list arrives
	if !m.sel.Target().Active() && len(msg.Channels) > 0 {
		return m.enterChannel(msg.Channels[0].ID)
	}

	// The active channel may have been deleted server-side
	if t := m.sel.Target(); t.Kind == selection.TargetChannel && t.ServerID == msg.ServerID {
		if _, ok := m.dir.Channel(t.ServerID, t.ChannelID); !ok {
			m.clearConversation()
			_ = m.sel.SelectServer(msg.ServerID)
			if len(msg.Channels) > 0 {
				return m.enterChannel(msg.Channels[0].ID)
			}
		}
	}

	m.syncFooter()
	return m, nil
}

func (m *Model) handleTranscript(msg TranscriptMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if m.loader.Fail(msg.Token, msg.Err) {
			m.chat.SetLoading(false)
			return m, m.ShowFlashWarning("Couldn't load messages: " + errors.UserMessage(msg.Err))
		}
		// Stale failure; the user has moved on
		return m, nil
	}

	prior := m.loader.Messages()
	var priorLastID int64
	if len(prior) > 0 {
		priorLastID = prior[len(prior)-1].ID
	}

	if !m.loader.Apply(msg.Token, msg.Messages) {
		logger.Debug("App: discarded stale transcript (token %s)", msg.Token.ID)
		return m, nil
	}

	m.maybeNotifyNewMessages(priorLastID, len(prior) > 0)
	m.chat.SetMessages(m.loader.Messages())
	return m, nil
}

// maybeNotifyNewMessages pings the desktop when a refresh brought in
// messages from someone else while the window is unfocused.
func (m *Model) maybeNotifyNewMessages(priorLastID int64, hadPrior bool) {
	if m.windowFocused || !hadPrior || !m.cfg.GetNotificationsEnabled() {
		return
	}

	count := 0
	for _, msg := range m.loader.Messages() {
		if msg.ID > priorLastID && msg.Sender.ID != m.selfID() {
			count++
		}
	}
	if count == 0 {
		return
	}
	if err := notification.NewMessages(m.conversationName(), count); err != nil {
		logger.Debug("App: notification failed: %v", err)
	}
}

func (m *Model) handleSent(msg SentMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		// The draft stays put; the user can retry or edit
		return m, m.ShowFlashError("Send failed: " + errors.UserMessage(msg.Err))
	}

	if !msg.Target.Equal(m.sel.Target()) {
		// Sent into a conversation that is no longer open
		return m, nil
	}

	m.comp.Clear()
	m.chat.ClearInput()
	m.footer.SetDraft("")
	return m, m.beginTranscriptFetch()
}

func (m *Model) handleFriendAdded(msg FriendAddedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if _, ok := m.modal.State.(*ui.AddFriendState); ok {
			m.modal.SetError(errors.UserMessage(msg.Err))
			return m, nil
		}
		return m, m.ShowFlashError("Friend request failed: " + errors.UserMessage(msg.Err))
	}

	m.modal.Hide()
	return m, tea.Batch(
		m.ShowFlashSuccess("Friend request sent to "+msg.IncordesID),
		m.refreshFriendsCmd(),
	)
}

func (m *Model) handleFriendAccepted(msg FriendAcceptedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.ShowFlashError("Accept failed: " + errors.UserMessage(msg.Err))
	}
	return m, tea.Batch(
		m.ShowFlashSuccess("Friend request accepted"),
		m.refreshFriendsCmd(),
	)
}

func (m *Model) handleFriendRemoved(msg FriendRemovedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, m.ShowFlashError("Remove failed: " + errors.UserMessage(msg.Err))
	}

	if t := m.sel.Target(); t.Kind == selection.TargetFriend && t.FriendID == msg.FriendID {
		m.clearConversation()
	}

	return m, tea.Batch(
		m.ShowFlashInfo("Friend removed"),
		m.refreshFriendsCmd(),
	)
}

func (m *Model) handleServerCreated(msg ServerCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if _, ok := m.modal.State.(*ui.CreateServerState); ok {
			m.modal.SetError(errors.UserMessage(msg.Err))
			return m, nil
		}
		return m, m.ShowFlashError("Server creation failed: " + errors.UserMessage(msg.Err))
	}

	m.modal.Hide()
	return m, tea.Batch(
		m.ShowFlashSuccess(fmt.Sprintf("Server %q created", msg.Name)),
		m.refreshServersCmd(),
	)
}

func (m *Model) handleChannelCreated(msg ChannelCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if _, ok := m.modal.State.(*ui.CreateChannelState); ok {
			m.modal.SetError(errors.UserMessage(msg.Err))
			return m, nil
		}
		return m, m.ShowFlashError("Channel creation failed: " + errors.UserMessage(msg.Err))
	}

	m.modal.Hide()
	return m, tea.Batch(
		m.ShowFlashSuccess(fmt.Sprintf("Channel #%s created", msg.Name)),
		m.reloadChannelsCmd(msg.ServerID),
	)
}

// clearConversation drops the active target and everything hanging off it.
func (m *Model) clearConversation() {
	m.sel.SelectHome()
	m.loader.Reset()
	m.comp.Rebind(m.sel.Target())
	m.chat.ClearConversation()
	if m.focus == FocusChat {
		m.setFocus(FocusSidebar)
	}
}
