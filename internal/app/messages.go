package app

import (
	"github.com/incordes/incordes/internal/api"
	"github.com/incordes/incordes/internal/selection"
	"github.com/incordes/incordes/internal/transcript"
)

// AuthResultMsg is sent when a login or register attempt completes
type AuthResultMsg struct {
	Identity api.Identity
	Mode     api.AuthMode
	Err      error
}

// FriendsRefreshedMsg is sent when a friends fetch completes
type FriendsRefreshedMsg struct {
	Friends []api.Friend
	Err     error
}

// ServersRefreshedMsg is sent when a servers fetch completes
type ServersRefreshedMsg struct {
	Servers []api.Server
	Err     error
}

// ChannelsLoadedMsg is sent when a server's channel list is loaded
type ChannelsLoadedMsg struct {
	ServerID int64
	Channels []api.Channel
	Err      error
}

// TranscriptMsg is sent when a transcript fetch completes. The token ties
// the result back to the fetch that produced it so stale responses can be
// discarded.
type TranscriptMsg struct {
	Token    transcript.Token
	Messages []api.Message
	Err      error
}

// SentMsg is sent when a message send completes
type SentMsg struct {
	Target selection.Target
	Err    error
}

// FriendAddedMsg is sent when a friend request completes
type FriendAddedMsg struct {
	IncordesID string
	Err        error
}

// FriendAcceptedMsg is sent when accepting a friend request completes
type FriendAcceptedMsg struct {
	FriendID int64
	Err      error
}

// FriendRemovedMsg is sent when removing a friend completes
type FriendRemovedMsg struct {
	FriendID int64
	Err      error
}

// ServerCreatedMsg is sent when server creation completes
type ServerCreatedMsg struct {
	ServerID int64
	Name     string
	Err      error
}

// ChannelCreatedMsg is sent when channel creation completes
type ChannelCreatedMsg struct {
	ServerID  int64
	ChannelID int64
	Name      string
	Err       error
}
