package ui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rivo/uniseg"
)

// FlashType categorizes flash messages for styling
type FlashType int

const (
	FlashError FlashType = iota
	FlashWarning
	FlashInfo
	FlashSuccess
)

// DefaultFlashDuration is how long a flash message stays visible
const DefaultFlashDuration = 4 * time.Second

// FlashMessage is a transient status message shown in the footer
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message's display window has passed
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg drives flash expiry checks
type FlashTickMsg time.Time

// FlashTick returns a command that checks flash expiry shortly
func FlashTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer is the bottom bar with contextual keybindings and flash messages.
type Footer struct {
	width        int
	flashMessage *FlashMessage

	loggedIn        bool // an identity is active
	sidebarFocused  bool // sidebar vs chat focus
	hasTarget       bool // a conversation target is active
	serverSelected  bool // a server is selected (channel keys apply)
	pendingSelected bool // sidebar cursor is on a pending friend edge
	friendSelected  bool // sidebar cursor is on a friend edge
	draftGraphemes  int  // user-perceived character count of the draft
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(loggedIn, sidebarFocused, hasTarget, serverSelected, pendingSelected, friendSelected bool) {
	f.loggedIn = loggedIn
	f.sidebarFocused = sidebarFocused
	f.hasTarget = hasTarget
	f.serverSelected = serverSelected
	f.pendingSelected = pendingSelected
	f.friendSelected = friendSelected
}

// SetDraft updates the draft text used for the character counter.
// Counting graphemes rather than bytes keeps the number honest for emoji
// and combining characters.
func (f *Footer) SetDraft(draft string) {
	f.draftGraphemes = uniseg.GraphemeClusterCount(draft)
}

// SetFlash displays a flash message with the default duration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration displays a flash message with a custom duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// HasFlash reports whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearFlash removes the flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// ClearIfExpired clears the flash if its window has passed.
// Returns true when a flash was cleared.
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

func (f *Footer) flashView() string {
	var style lipgloss.Style
	switch f.flashMessage.Type {
	case FlashError:
		style = FlashErrorStyle
	case FlashWarning:
		style = FlashWarningStyle
	case FlashSuccess:
		style = FlashSuccessStyle
	default:
		style = FlashInfoStyle
	}
	return FooterStyle.Width(f.width).Render(style.Render(f.flashMessage.Text))
}

// bindings returns the keybindings for the current context
func (f *Footer) bindings() []KeyBinding {
	if !f.loggedIn {
		return []KeyBinding{
			{Key: "tab/enter", Desc: "next field"},
			{Key: "ctrl+t", Desc: "login/register"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	}

	if f.sidebarFocused {
		b := []KeyBinding{
			{Key: "↑/↓", Desc: "navigate"},
			{Key: "enter", Desc: "open"},
			{Key: "1/2", Desc: "friends/dms"},
			{Key: "a", Desc: "add friend"},
			{Key: "n", Desc: "new server"},
		}
		if f.serverSelected {
			b = append(b, KeyBinding{Key: "c", Desc: "new channel"})
		}
		if f.pendingSelected {
			b = append(b, KeyBinding{Key: "y", Desc: "accept"})
		}
		if f.friendSelected {
			b = append(b, KeyBinding{Key: "x", Desc: "remove"})
		}
		b = append(b,
			KeyBinding{Key: "g", Desc: "home"},
			KeyBinding{Key: "r", Desc: "refresh"},
			KeyBinding{Key: "ctrl+y", Desc: "copy id"},
			KeyBinding{Key: "L", Desc: "logout"},
			KeyBinding{Key: "q", Desc: "quit"},
		)
		if f.hasTarget {
			b = append(b, KeyBinding{Key: "tab", Desc: "chat"})
		}
		return b
	}

	return []KeyBinding{
		{Key: "enter", Desc: "send"},
		{Key: "tab", Desc: "sidebar"},
		{Key: "pgup/dn", Desc: "scroll"},
		{Key: "esc", Desc: "back"},
	}
}

// View renders the footer
func (f *Footer) View() string {
	// A flash message takes over the whole footer until it expires
	if f.flashMessage != nil {
		return f.flashView()
	}

	var parts []string
	for _, b := range f.bindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	if !f.sidebarFocused && f.loggedIn && f.draftGraphemes > 0 {
		counter := FooterDescStyle.Render(fmt.Sprintf("%d chars", f.draftGraphemes))
		gap := f.width - lipgloss.Width(content) - lipgloss.Width(counter) - 3
		if gap > 0 {
			content += strings.Repeat(" ", gap) + counter
		}
	}

	return FooterStyle.Width(f.width).Render(content)
}
