// Package app wires the Bubble Tea model together: it owns the session
// store, the directory cache, the selection controller, the transcript
// loader, and the composer, and routes every message through a single
// Update loop so conversation state never races.
package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/incordes/incordes/internal/api"
	"github.com/incordes/incordes/internal/clipboard"
	"github.com/incordes/incordes/internal/composer"
	"github.com/incordes/incordes/internal/config"
	"github.com/incordes/incordes/internal/directory"
	"github.com/incordes/incordes/internal/logger"
	"github.com/incordes/incordes/internal/selection"
	"github.com/incordes/incordes/internal/session"
	"github.com/incordes/incordes/internal/transcript"
	"github.com/incordes/incordes/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota
	FocusChat
)

// Model is the main Bubble Tea model
type Model struct {
	cfg     *config.Config
	client  *api.Client
	session *session.Store
	dir     *directory.Cache
	sel     *selection.Controller
	loader  *transcript.Loader
	comp    *composer.Composer

	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	modal   *ui.Modal

	width  int
	height int
	focus  Focus

	// windowFocused gates desktop notifications: no pings while the
	// user is already looking at the window.
	windowFocused bool

	// knownPending tracks pending friend-request IDs so a refresh can
	// tell a new request from one already seen.
	knownPending map[int64]bool
}

// New creates a new app model
func New(cfg *config.Config, version string) *Model {
	client := api.NewClient(cfg.GetServices())
	dir := directory.NewCache(client)

	m := &Model{
		cfg:     cfg,
		client:  client,
		session: session.NewStore(cfg, client),
		dir:     dir,
		sel:     selection.NewController(dir),
		loader:  transcript.NewLoader(),
		comp:    composer.New(),

		header:  ui.NewHeader(version),
		footer:  ui.NewFooter(),
		sidebar: ui.NewSidebar(),
		chat:    ui.NewChat(),
		modal:   ui.NewModal(),

		focus:         FocusSidebar,
		windowFocused: true,
		knownPending:  make(map[int64]bool),
	}

	if id := m.session.Restore(); id != nil {
		m.header.SetIdentity(id)
	}

	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	if err := clipboard.Init(); err != nil {
		logger.Warn("App: clipboard unavailable: %v", err)
	}

	if !m.session.LoggedIn() {
		m.modal.Show(ui.NewLoginState())
		m.syncFooter()
		return nil
	}

	m.syncFooter()
	return tea.Batch(
		m.refreshFriendsCmd(),
		m.refreshServersCmd(),
	)
}

// selfID returns the authenticated user's ID, 0 when logged out.
func (m *Model) selfID() int64 {
	if id := m.session.Current(); id != nil {
		return id.ID
	}
	return 0
}

// conversationName returns the display name for the active target,
// "# general" for channels and "@ maren#0042" for direct messages.
func (m *Model) conversationName() string {
	t := m.sel.Target()
	switch t.Kind {
	case selection.TargetChannel:
		if ch, ok := m.dir.Channel(t.ServerID, t.ChannelID); ok {
			return "# " + ch.Name
		}
		return "# channel"
	case selection.TargetFriend:
		if f, ok := m.dir.Friend(t.FriendID); ok {
			return "@ " + f.Tag()
		}
		return "@ friend"
	}
	return ""
}

// syncSidebar pushes the directory cache and selection into the sidebar.
func (m *Model) syncSidebar() {
	var channels []api.Channel
	if sid := m.sel.ServerID(); sid != 0 {
		channels = m.dir.Channels(sid)
	}

	tab := ui.TabFriends
	if m.sel.ViewMode() == selection.ViewDirectMessages {
		tab = ui.TabDirectMessages
	}
	m.sidebar.SetTab(tab)
	m.sidebar.SetData(m.dir.Servers(), channels, m.dir.Friends())

	t := m.sel.Target()
	m.sidebar.SetActive(m.sel.ServerID(), t.ChannelID, t.FriendID)
}

// syncFooter pushes the current context into the footer's key hints.
func (m *Model) syncFooter() {
	pending, friend := false, false
	if it := m.sidebar.SelectedItem(); it != nil && it.Kind == ui.ItemFriend {
		friend = true
		pending = !it.Friend.Accepted()
	}
	m.footer.SetContext(
		m.session.LoggedIn(),
		m.focus == FocusSidebar,
		m.sel.Target().Active(),
		m.sel.ServerID() != 0,
		pending,
		friend,
	)
	m.footer.SetDraft(m.chat.Input())
}
