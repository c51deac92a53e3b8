// Package selection implements the conversation selection state machine:
// at any moment the client is viewing the friends list, a server channel,
// or a direct-message thread with one friend. Selecting a channel clears
// any friend selection and vice versa; that exclusivity is the central
// invariant of the client.
package selection

import (
	"github.com/incordes/incordes/internal/api"
	"github.com/incordes/incordes/internal/directory"
	"github.com/incordes/incordes/internal/errors"
	"github.com/incordes/incordes/internal/logger"
)

// TargetKind tags the active conversation target.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetChannel
	TargetFriend
)

// Target is the single active conversation selection. At most one of the
// channel or friend references is set.
type Target struct {
	Kind      TargetKind
	ServerID  int64 // set when Kind == TargetChannel
	ChannelID int64 // set when Kind == TargetChannel
	FriendID  int64 // set when Kind == TargetFriend
}

// Equal reports whether two targets refer to the same conversation.
func (t Target) Equal(o Target) bool {
	return t == o
}

// Active reports whether the target refers to a conversation.
func (t Target) Active() bool {
	return t.Kind != TargetNone
}

// Query maps the target onto a message service query. Exactly one of the
// two identifiers is ever set per request.
func (t Target) Query() api.MessageQuery {
	switch t.Kind {
	case TargetChannel:
		return api.MessageQuery{ChannelID: t.ChannelID}
	case TargetFriend:
		return api.MessageQuery{RecipientID: t.FriendID}
	default:
		return api.MessageQuery{}
	}
}

// ViewMode controls which list renders when no server is selected.
type ViewMode int

const (
	ViewFriends ViewMode = iota
	ViewDirectMessages
)

// State names the three mutually exclusive machine states.
type State int

const (
	ViewingFriendsList State = iota
	ViewingChannel
	ViewingDirectMessage
)

// Controller is the selection state machine. It validates transitions
// against the directory cache and exposes the single active target that
// drives transcript loading.
type Controller struct {
	dir      *directory.Cache
	viewMode ViewMode
	serverID int64 // selected server, 0 when none
	target   Target
}

// NewController creates a controller in the home state.
func NewController(dir *directory.Cache) *Controller {
	return &Controller{dir: dir}
}

// State returns the current machine state.
func (c *Controller) State() State {
	switch c.target.Kind {
	case TargetChannel:
		return ViewingChannel
	case TargetFriend:
		return ViewingDirectMessage
	default:
		return ViewingFriendsList
	}
}

// Target returns the active conversation target.
func (c *Controller) Target() Target {
	return c.target
}

// ServerID returns the selected server, 0 when none.
func (c *Controller) ServerID() int64 {
	return c.serverID
}

// ViewMode returns the list shown when no server is selected.
func (c *Controller) ViewMode() ViewMode {
	return c.viewMode
}

// SetViewMode switches between the friends and direct-message lists
// without touching the active target.
func (c *Controller) SetViewMode(mode ViewMode) {
	c.viewMode = mode
}

// SelectHome clears every selection and shows the friends list.
// Always legal.
func (c *Controller) SelectHome() {
	c.serverID = 0
	c.target = Target{}
	c.viewMode = ViewFriends
	logger.Debug("Selection: home")
}

// SelectServer selects a server and clears any friend selection. The
// active channel is not set here; channels load asynchronously and the
// first one auto-selects when they arrive.
func (c *Controller) SelectServer(serverID int64) error {
	if _, ok := c.dir.Server(serverID); !ok {
		return errors.E(errors.Op("selection.SelectServer"), errors.KindNotFound, "unknown server")
	}
	c.serverID = serverID
	c.target = Target{}
	logger.Debug("Selection: server %d", serverID)
	return nil
}

// SelectChannel makes a channel the active target. The channel must belong
// to the currently selected server.
func (c *Controller) SelectChannel(channelID int64) error {
	op := errors.Op("selection.SelectChannel")
	if c.serverID == 0 {
		return errors.E(op, errors.KindInvalid, "no server selected")
	}
	if _, ok := c.dir.Channel(c.serverID, channelID); !ok {
		return errors.E(op, errors.KindNotFound, "channel is not in the selected server")
	}
	c.target = Target{Kind: TargetChannel, ServerID: c.serverID, ChannelID: channelID}
	logger.Debug("Selection: channel %d in server %d", channelID, c.serverID)
	return nil
}

// SelectFriend makes a direct-message thread the active target. Only
// accepted friend edges are eligible; selecting a pending edge is rejected.
// Clears any server/channel selection and switches the view mode to
// direct messages.
func (c *Controller) SelectFriend(friendID int64) error {
	op := errors.Op("selection.SelectFriend")
	f, ok := c.dir.Friend(friendID)
	if !ok {
		return errors.E(op, errors.KindNotFound, "unknown friend")
	}
	if !f.Accepted() {
		return errors.E(op, errors.KindInvalid, "friend request is still pending")
	}
	c.serverID = 0
	c.target = Target{Kind: TargetFriend, FriendID: friendID}
	c.viewMode = ViewDirectMessages
	logger.Debug("Selection: friend %d", friendID)
	return nil
}

// Reset returns the machine to its initial state. Part of the logout
// hard reset.
func (c *Controller) Reset() {
	c.serverID = 0
	c.target = Target{}
	c.viewMode = ViewFriends
}
