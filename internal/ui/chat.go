package ui

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/incordes/incordes/internal/api"
)

// Chat is the right panel: the transcript viewport for the active
// conversation plus the composer input.
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	width    int
	height   int
	focused  bool

	conversation string // "# general" or "@ maren#0042"
	hasTarget    bool
	loading      bool
	selfID       int64
	messages     []api.Message
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Message..."
	ti.CharLimit = 0
	ti.SetHeight(InputHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	innerWidth := width - 2
	viewportHeight := height - InputTotalHeight - 2
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	if innerWidth < 1 {
		innerWidth = 1
	}

	c.viewport.SetWidth(innerWidth)
	c.viewport.SetHeight(viewportHeight)
	c.input.SetWidth(innerWidth - 2)
	c.updateContent()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetConversation names the active conversation and empties the transcript
// display until messages arrive.
func (c *Chat) SetConversation(name string, selfID int64) {
	c.conversation = name
	c.selfID = selfID
	c.hasTarget = true
	c.messages = nil
	c.loading = true
	c.updateContent()
}

// ClearConversation returns the panel to its empty state.
func (c *Chat) ClearConversation() {
	c.conversation = ""
	c.hasTarget = false
	c.loading = false
	c.messages = nil
	c.input.Reset()
	c.updateContent()
}

// SetMessages replaces the rendered transcript.
func (c *Chat) SetMessages(msgs []api.Message) {
	c.messages = msgs
	c.loading = false
	c.updateContent()
	c.viewport.GotoBottom()
}

// SetLoading toggles the loading indicator without touching messages.
func (c *Chat) SetLoading(loading bool) {
	c.loading = loading
	c.updateContent()
}

// Messages returns the rendered transcript (for tests).
func (c *Chat) Messages() []api.Message {
	return c.messages
}

// Input returns the trimmed composer text.
func (c *Chat) Input() string {
	return c.input.Value()
}

// SetInput replaces the composer text (used when restoring a kept draft).
func (c *Chat) SetInput(text string) {
	c.input.SetValue(text)
}

// ClearInput clears the composer input.
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// Update handles input when the chat panel is focused. Page keys scroll
// the transcript via the viewport's own bindings; everything else goes to
// the composer input.
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	var cmds []tea.Cmd

	isPageKey := false
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "pgup", "pgdown":
			isPageKey = true
		}
	}

	if c.focused && c.hasTarget && !isPageKey {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

// updateContent re-renders the transcript into the viewport
func (c *Chat) updateContent() {
	width := c.viewport.Width()
	if width < 1 {
		width = 80
	}

	var b strings.Builder
	switch {
	case !c.hasTarget:
		b.WriteString(ChatEmptyStyle.Render("Select a channel or friend to start talking."))
		b.WriteString("\n\n")
		b.WriteString(ChatEmptyStyle.Render("Share your Incordes ID so friends can add you (ctrl+y to copy)."))
	case c.loading && len(c.messages) == 0:
		b.WriteString(ChatEmptyStyle.Render("Loading messages..."))
	case len(c.messages) == 0:
		b.WriteString(ChatEmptyStyle.Render("No messages yet. Say hello!"))
	default:
		for i, m := range c.messages {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(renderMessage(m, c.selfID, width))
		}
	}

	c.viewport.SetContent(b.String())
}

// View renders the chat panel
func (c *Chat) View() string {
	style := PanelStyle
	if c.focused {
		style = PanelFocusedStyle
	}

	title := c.conversation
	if title == "" {
		title = "Welcome"
	}

	header := PanelTitleStyle.Render(title)
	body := lipgloss.JoinVertical(lipgloss.Left, header, c.viewport.View())
	panel := style.Width(c.width).Height(c.height - InputTotalHeight).Render(body)

	inputStyle := InputStyle
	if c.focused {
		inputStyle = InputFocusedStyle
	}
	var inputView string
	if c.hasTarget {
		inputView = inputStyle.Width(c.width).Render(c.input.View())
	} else {
		inputView = inputStyle.Width(c.width).Render(ChatEmptyStyle.Render("No conversation selected"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, panel, inputView)
}
