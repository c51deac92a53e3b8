package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/incordes/incordes/internal/ui"
)

// handleModalKey routes keys while a modal is open. Submission keeps the
// modal visible until the result message lands so errors can render inside
// it.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch state := m.modal.State.(type) {
	case *ui.LoginState:
		// No Esc here: the app is unusable without an identity, so the
		// only ways out are submitting or ctrl+c.
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		if state.Completed() {
			creds := state.Credentials()
			if creds.Email == "" || creds.Password == "" {
				m.modal.SetError("Email and password are required")
				state.Reopen()
				return m, cmd
			}
			m.modal.SetError("")
			return m, tea.Batch(cmd, m.authenticateCmd(creds, state.Mode))
		}
		return m, cmd

	case *ui.AddFriendState:
		switch msg.String() {
		case "esc":
			m.modal.Hide()
			return m, nil
		case "enter":
			id := strings.TrimSpace(state.Value())
			if id == "" {
				m.modal.SetError("Enter an Incordes ID")
				return m, nil
			}
			return m, m.addFriendCmd(id)
		}

	case *ui.CreateServerState:
		switch msg.String() {
		case "esc":
			m.modal.Hide()
			return m, nil
		case "enter":
			name := strings.TrimSpace(state.Value())
			if name == "" {
				m.modal.SetError("Enter a server name")
				return m, nil
			}
			return m, m.createServerCmd(name)
		}

	case *ui.CreateChannelState:
		switch msg.String() {
		case "esc":
			m.modal.Hide()
			return m, nil
		case "enter":
			name := strings.TrimSpace(state.Value())
			if name == "" {
				m.modal.SetError("Enter a channel name")
				return m, nil
			}
			return m, m.createChannelCmd(state.ServerID, name)
		}

	case *ui.ConfirmLogoutState:
		switch msg.String() {
		case "esc":
			m.modal.Hide()
			return m, nil
		case "enter":
			return m.performLogout()
		}
	}

	var cmd tea.Cmd
	m.modal, cmd = m.modal.Update(msg)
	return m, cmd
}

// performLogout clears the persisted identity and hard-resets every piece
// of conversation state before returning to the login modal.
func (m *Model) performLogout() (tea.Model, tea.Cmd) {
	if err := m.session.Logout(); err != nil {
		m.modal.Hide()
		return m, m.ShowFlashError("Logout failed: " + err.Error())
	}

	m.dir.Reset()
	m.sel.Reset()
	m.loader.Reset()
	m.comp.Reset()

	m.header.SetIdentity(nil)
	m.sidebar.SetData(nil, nil, nil)
	m.sidebar.SetActive(0, 0, 0)
	m.chat.ClearConversation()
	m.setFocus(FocusSidebar)

	m.modal.Show(ui.NewLoginState())
	m.syncFooter()
	return m, nil
}
