package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/incordes/incordes/internal/api"
	"github.com/incordes/incordes/internal/composer"
	"github.com/incordes/incordes/internal/selection"
	"github.com/incordes/incordes/internal/transcript"
)

// Commands run on Bubble Tea's goroutines; each wraps one client call and
// reports back with a typed message. Timeouts are enforced by the client,
// so context.Background() is fine here.

func (m *Model) authenticateCmd(creds api.Credentials, mode api.AuthMode) tea.Cmd {
	return func() tea.Msg {
		id, err := m.session.Authenticate(context.Background(), creds, mode)
		return AuthResultMsg{Identity: id, Mode: mode, Err: err}
	}
}

func (m *Model) refreshFriendsCmd() tea.Cmd {
	return func() tea.Msg {
		friends, err := m.dir.RefreshFriends(context.Background())
		return FriendsRefreshedMsg{Friends: friends, Err: err}
	}
}

func (m *Model) refreshServersCmd() tea.Cmd {
	return func() tea.Msg {
		servers, err := m.dir.RefreshServers(context.Background())
		return ServersRefreshedMsg{Servers: servers, Err: err}
	}
}

func (m *Model) loadChannelsCmd(serverID int64) tea.Cmd {
	return func() tea.Msg {
		channels, err := m.dir.LoadChannels(context.Background(), serverID)
		return ChannelsLoadedMsg{ServerID: serverID, Channels: channels, Err: err}
	}
}

func (m *Model) reloadChannelsCmd(serverID int64) tea.Cmd {
	return func() tea.Msg {
		channels, err := m.dir.ReloadChannels(context.Background(), serverID)
		return ChannelsLoadedMsg{ServerID: serverID, Channels: channels, Err: err}
	}
}

// fetchTranscriptCmd fetches messages for the query the token was issued
// under. The token rides along so the loader can reject the result if the
// user has moved on by the time it lands.
func (m *Model) fetchTranscriptCmd(tok transcript.Token, q api.MessageQuery) tea.Cmd {
	return func() tea.Msg {
		msgs, err := m.client.Messages(context.Background(), q)
		return TranscriptMsg{Token: tok, Messages: msgs, Err: err}
	}
}

func (m *Model) sendCmd(out composer.Outgoing, target selection.Target) tea.Cmd {
	return func() tea.Msg {
		err := m.client.Send(context.Background(), out.Content, out.Query)
		return SentMsg{Target: target, Err: err}
	}
}

func (m *Model) addFriendCmd(incordesID string) tea.Cmd {
	return func() tea.Msg {
		err := m.client.AddFriend(context.Background(), incordesID)
		return FriendAddedMsg{IncordesID: incordesID, Err: err}
	}
}

func (m *Model) acceptFriendCmd(friendID int64) tea.Cmd {
	return func() tea.Msg {
		err := m.client.AcceptFriend(context.Background(), friendID)
		return FriendAcceptedMsg{FriendID: friendID, Err: err}
	}
}

func (m *Model) removeFriendCmd(friendID int64) tea.Cmd {
	return func() tea.Msg {
		err := m.client.RemoveFriend(context.Background(), friendID)
		return FriendRemovedMsg{FriendID: friendID, Err: err}
	}
}

func (m *Model) createServerCmd(name string) tea.Cmd {
	return func() tea.Msg {
		id, err := m.client.CreateServer(context.Background(), name)
		return ServerCreatedMsg{ServerID: id, Name: name, Err: err}
	}
}

func (m *Model) createChannelCmd(serverID int64, name string) tea.Cmd {
	return func() tea.Msg {
		id, err := m.client.CreateChannel(context.Background(), serverID, name)
		return ChannelCreatedMsg{ServerID: serverID, ChannelID: id, Name: name, Err: err}
	}
}

// beginTranscriptFetch issues a fresh live token for the current target
// and returns the fetch command, or nil when nothing is selected.
func (m *Model) beginTranscriptFetch() tea.Cmd {
	target := m.sel.Target()
	if !target.Active() {
		return nil
	}
	tok := m.loader.Begin(target)
	return m.fetchTranscriptCmd(tok, target.Query())
}
