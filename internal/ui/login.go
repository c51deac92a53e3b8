package ui

import (
	"strings"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/incordes/incordes/internal/api"
)

// FormTheme returns a huh theme matching the color palette.
func FormTheme() huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		t.Focused.Base = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(ColorPrimary)
		t.Focused.Card = t.Focused.Base
		t.Focused.Title = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
		t.Focused.Description = lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true)
		t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(ColorWarning).SetString(" *")
		t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(ColorWarning)

		t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(ColorPrimary)
		t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(ColorTextMuted)
		t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(ColorPrimary)
		t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(ColorText)

		t.Blurred = t.Focused
		t.Blurred.Base = lipgloss.NewStyle().PaddingLeft(2)
		t.Blurred.Card = t.Blurred.Base

		t.Group.Title = lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
		t.Group.Description = lipgloss.NewStyle().Foreground(ColorTextMuted)

		t.FieldSeparator = lipgloss.NewStyle().SetString("\n")
		t.Help = help.New().Styles

		return t
	})
}

// =============================================================================
// LoginState - State for the login / register modal
// =============================================================================

type LoginState struct {
	Mode api.AuthMode

	form     *huh.Form
	email    string
	username string
	password string
}

func (*LoginState) modalState() {}

// NewLoginState creates the auth modal in login mode.
func NewLoginState() *LoginState {
	s := &LoginState{Mode: api.ModeLogin}
	s.buildForm()
	return s
}

// buildForm rebuilds the huh form for the current mode, keeping any values
// the user already typed.
func (s *LoginState) buildForm() {
	fields := []huh.Field{
		huh.NewInput().
			Key("email").
			Title("Email").
			Placeholder("you@example.com").
			Value(&s.email),
	}
	if s.Mode == api.ModeRegister {
		fields = append(fields, huh.NewInput().
			Key("username").
			Title("Username").
			Placeholder("maren").
			Value(&s.username))
	}
	fields = append(fields, huh.NewInput().
		Key("password").
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&s.password))

	s.form = huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(FormTheme()).
		WithShowHelp(false)
	s.form.Init()
}

// ToggleMode flips between login and register, preserving typed values.
func (s *LoginState) ToggleMode() {
	if s.Mode == api.ModeLogin {
		s.Mode = api.ModeRegister
	} else {
		s.Mode = api.ModeLogin
	}
	s.buildForm()
}

// Completed reports whether the user submitted the form.
func (s *LoginState) Completed() bool {
	return s.form.State == huh.StateCompleted
}

// Credentials returns the typed credentials, trimmed.
func (s *LoginState) Credentials() api.Credentials {
	return api.Credentials{
		Email:    strings.TrimSpace(s.email),
		Username: strings.TrimSpace(s.username),
		Password: s.password,
	}
}

// Reopen resets a completed form so it can be edited again after a
// rejected attempt.
func (s *LoginState) Reopen() {
	s.buildForm()
}

func (s *LoginState) Title() string {
	if s.Mode == api.ModeRegister {
		return "Create an Incordes account"
	}
	return "Sign in to Incordes"
}

func (s *LoginState) Help() string {
	if s.Mode == api.ModeRegister {
		return "Enter to submit, ctrl+t to sign in instead, ctrl+c to quit"
	}
	return "Enter to submit, ctrl+t to register instead, ctrl+c to quit"
}

func (s *LoginState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *LoginState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok && key.String() == "ctrl+t" {
		s.ToggleMode()
		return s, nil
	}

	m, cmd := s.form.Update(msg)
	if form, ok := m.(*huh.Form); ok {
		s.form = form
	}
	return s, cmd
}
