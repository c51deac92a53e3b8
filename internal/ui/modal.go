package ui

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// ModalState is a discriminated union interface for modal-specific state.
// Each modal type implements this interface with its own state struct,
// ensuring type-safe access to modal-specific fields.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// Modal represents a popup dialog with type-safe state management.
// The State field is nil when no modal is visible.
type Modal struct {
	State ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal centered on the screen
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	content := m.State.Render()

	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	modal := ModalStyle.Render(content)

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}

// newModalInput creates a focused single-line input for modal forms.
func newModalInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetWidth(40)
	ti.Focus()
	return ti
}

// =============================================================================
// AddFriendState - State for the Add Friend modal
// =============================================================================

type AddFriendState struct {
	Input textinput.Model
}

func (*AddFriendState) modalState() {}

// NewAddFriendState creates the add-friend modal state.
func NewAddFriendState() *AddFriendState {
	return &AddFriendState{Input: newModalInput("INCRD-XXXX-XXXX")}
}

func (s *AddFriendState) Title() string { return "Add Friend" }

func (s *AddFriendState) Help() string {
	return "Enter your friend's Incordes ID, Enter to send, Esc to cancel"
}

func (s *AddFriendState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.Input.View(), help)
}

func (s *AddFriendState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// Value returns the trimmed Incordes ID entered by the user.
func (s *AddFriendState) Value() string {
	return s.Input.Value()
}

// =============================================================================
// CreateServerState - State for the Create Server modal
// =============================================================================

type CreateServerState struct {
	Input textinput.Model
}

func (*CreateServerState) modalState() {}

// NewCreateServerState creates the create-server modal state.
func NewCreateServerState() *CreateServerState {
	return &CreateServerState{Input: newModalInput("Server name")}
}

func (s *CreateServerState) Title() string { return "Create Server" }

func (s *CreateServerState) Help() string {
	return "Enter to create, Esc to cancel"
}

func (s *CreateServerState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.Input.View(), help)
}

func (s *CreateServerState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// Value returns the entered server name.
func (s *CreateServerState) Value() string {
	return s.Input.Value()
}

// =============================================================================
// CreateChannelState - State for the Create Channel modal
// =============================================================================

type CreateChannelState struct {
	ServerID   int64
	ServerName string
	Input      textinput.Model
}

func (*CreateChannelState) modalState() {}

// NewCreateChannelState creates the create-channel modal state for the
// given server.
func NewCreateChannelState(serverID int64, serverName string) *CreateChannelState {
	return &CreateChannelState{
		ServerID:   serverID,
		ServerName: serverName,
		Input:      newModalInput("channel-name"),
	}
}

func (s *CreateChannelState) Title() string { return "Create Channel in " + s.ServerName }

func (s *CreateChannelState) Help() string {
	return "Enter to create, Esc to cancel"
}

func (s *CreateChannelState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.Input.View(), help)
}

func (s *CreateChannelState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// Value returns the entered channel name.
func (s *CreateChannelState) Value() string {
	return s.Input.Value()
}

// =============================================================================
// ConfirmLogoutState - State for the logout confirmation modal
// =============================================================================

type ConfirmLogoutState struct{}

func (*ConfirmLogoutState) modalState() {}

// NewConfirmLogoutState creates the logout confirmation modal state.
func NewConfirmLogoutState() *ConfirmLogoutState {
	return &ConfirmLogoutState{}
}

func (s *ConfirmLogoutState) Title() string { return "Log Out" }

func (s *ConfirmLogoutState) Help() string {
	return "Enter to log out, Esc to cancel"
}

func (s *ConfirmLogoutState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	body := "Log out and clear the saved session on this machine?"
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, body, help)
}

func (s *ConfirmLogoutState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}
