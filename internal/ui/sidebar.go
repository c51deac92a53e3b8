package ui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/incordes/incordes/internal/api"
)

// Tab selects which list the lower sidebar section shows when browsing.
type Tab int

const (
	TabFriends Tab = iota
	TabDirectMessages
)

// ItemKind tags a selectable sidebar row.
type ItemKind int

const (
	ItemServer ItemKind = iota
	ItemChannel
	ItemFriend
)

// Item is one selectable row in the sidebar.
type Item struct {
	Kind    ItemKind
	Server  api.Server
	Channel api.Channel
	Friend  api.Friend
}

// row is a rendered sidebar line; selectable rows carry an item index.
type row struct {
	text     string
	itemIdx  int // -1 for section headers and spacers
	selected bool
}

// Sidebar is the left panel listing servers, channels of the selected
// server, and the friends / direct-messages tab.
type Sidebar struct {
	width   int
	height  int
	focused bool
	cursor  int
	scroll  int

	tab              Tab
	servers          []api.Server
	channels         []api.Channel
	friends          []api.Friend
	selectedServerID int64
	activeChannelID  int64
	activeFriendID   int64

	items []Item
	rows  []row
}

// NewSidebar creates a new sidebar
func NewSidebar() *Sidebar {
	return &Sidebar{}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetTab switches the friends / direct-messages section.
func (s *Sidebar) SetTab(tab Tab) {
	s.tab = tab
	s.rebuild()
}

// Tab returns the current tab.
func (s *Sidebar) Tab() Tab {
	return s.tab
}

// SetData replaces the directory data rendered by the sidebar. Channels
// are those of the selected server, nil when none is selected or loaded.
func (s *Sidebar) SetData(servers []api.Server, channels []api.Channel, friends []api.Friend) {
	s.servers = servers
	s.channels = channels
	s.friends = friends
	s.rebuild()
}

// SetActive marks the current selection so it renders highlighted.
func (s *Sidebar) SetActive(serverID, channelID, friendID int64) {
	s.selectedServerID = serverID
	s.activeChannelID = channelID
	s.activeFriendID = friendID
	s.rebuild()
}

// rebuild flattens the directory data into rows and items, preserving the
// cursor position where possible.
func (s *Sidebar) rebuild() {
	prev := s.SelectedItem()

	s.items = s.items[:0]
	s.rows = s.rows[:0]

	addHeader := func(text string) {
		s.rows = append(s.rows, row{text: SidebarSectionStyle.Render(text), itemIdx: -1})
	}
	addItem := func(it Item, text string, active bool) {
		s.items = append(s.items, it)
		s.rows = append(s.rows, row{text: text, itemIdx: len(s.items) - 1, selected: active})
	}

	if len(s.servers) > 0 {
		addHeader("SERVERS")
		for _, srv := range s.servers {
			label := srv.Name
			if srv.ID == s.selectedServerID {
				label = "▾ " + label
			} else {
				label = "▸ " + label
			}
			addItem(Item{Kind: ItemServer, Server: srv}, label, false)

			if srv.ID == s.selectedServerID {
				for _, ch := range s.channels {
					addItem(Item{Kind: ItemChannel, Channel: ch}, "  # "+ch.Name, ch.ID == s.activeChannelID)
				}
			}
		}
		s.rows = append(s.rows, row{itemIdx: -1})
	}

	switch s.tab {
	case TabDirectMessages:
		addHeader("DIRECT MESSAGES")
		for _, f := range s.friends {
			if !f.Accepted() {
				continue
			}
			addItem(Item{Kind: ItemFriend, Friend: f}, "@ "+f.Tag(), f.ID == s.activeFriendID)
		}
	default:
		addHeader("FRIENDS")
		for _, f := range s.friends {
			label := "@ " + f.Tag()
			if !f.Accepted() {
				label += SidebarPendingStyle.Render(" (pending)")
			} else if f.Status != "" {
				label += SidebarPresenceStyle.Render(" · " + f.Status)
			}
			addItem(Item{Kind: ItemFriend, Friend: f}, label, f.ID == s.activeFriendID)
		}
	}

	// Keep the cursor on the same item across rebuilds when it survives
	s.cursor = 0
	if prev != nil {
		for i, it := range s.items {
			if sameItem(it, *prev) {
				s.cursor = i
				break
			}
		}
	}
	s.clampCursor()
}

func sameItem(a, b Item) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ItemServer:
		return a.Server.ID == b.Server.ID
	case ItemChannel:
		return a.Channel.ID == b.Channel.ID
	default:
		return a.Friend.ID == b.Friend.ID
	}
}

func (s *Sidebar) clampCursor() {
	if s.cursor >= len(s.items) {
		s.cursor = len(s.items) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// MoveCursor moves the selection cursor by delta, clamped to the list.
func (s *Sidebar) MoveCursor(delta int) {
	s.cursor += delta
	s.clampCursor()
}

// SelectedItem returns the item under the cursor, nil when the list is empty.
func (s *Sidebar) SelectedItem() *Item {
	if s.cursor < 0 || s.cursor >= len(s.items) {
		return nil
	}
	it := s.items[s.cursor]
	return &it
}

// Update handles navigation keys when the sidebar is focused.
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	if !s.focused {
		return s, nil
	}
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "up", "k":
			s.MoveCursor(-1)
		case "down", "j":
			s.MoveCursor(1)
		}
	}
	return s, nil
}

// View renders the sidebar
func (s *Sidebar) View() string {
	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	innerWidth := s.width - 2
	innerHeight := s.height - 2
	if innerWidth < 1 || innerHeight < 1 {
		return style.Width(s.width).Height(s.height).Render("")
	}

	var lines []string
	for _, r := range s.rows {
		text := r.text
		if r.itemIdx >= 0 {
			itemStyle := SidebarItemStyle
			if r.itemIdx == s.cursor && s.focused {
				itemStyle = SidebarSelectedStyle
			} else if r.selected {
				itemStyle = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
			}
			text = itemStyle.Render(runewidth.Truncate(r.text, innerWidth-2, "…"))
		}
		lines = append(lines, text)
	}

	if len(s.items) == 0 {
		lines = []string{ChatEmptyStyle.Render(" No servers yet"), ChatEmptyStyle.Render(" Add a friend by Incordes ID")}
	}

	// Scroll the window to keep the cursor row visible
	cursorRow := 0
	for i, r := range s.rows {
		if r.itemIdx == s.cursor {
			cursorRow = i
			break
		}
	}
	if cursorRow < s.scroll {
		s.scroll = cursorRow
	}
	if cursorRow >= s.scroll+innerHeight {
		s.scroll = cursorRow - innerHeight + 1
	}
	end := min(s.scroll+innerHeight, len(lines))
	visible := lines[s.scroll:end]

	content := strings.Join(visible, "\n")
	return style.Width(s.width).Height(s.height).Render(lipgloss.NewStyle().Width(innerWidth).Render(content))
}

// CountPending returns the number of pending friend edges, shown as a
// badge hint by the app.
func (s *Sidebar) CountPending() int {
	n := 0
	for _, f := range s.friends {
		if f.FriendStatus == api.FriendPending {
			n++
		}
	}
	return n
}

// Title returns the panel title with a pending-request badge.
func (s *Sidebar) Title() string {
	if n := s.CountPending(); n > 0 {
		return fmt.Sprintf("Incordes (%d pending)", n)
	}
	return "Incordes"
}
