package ui

import "charm.land/lipgloss/v2"

// Color palette - Blurple + slate, after the Incordes web client
var (
	ColorPrimary     = lipgloss.Color("#5865F2") // Blurple
	ColorSecondary   = lipgloss.Color("#00A8FC") // Bright blue
	ColorMuted       = lipgloss.Color("#6B7280") // Gray
	ColorBorder      = lipgloss.Color("#374151") // Dark gray
	ColorBorderFocus = lipgloss.Color("#5865F2") // Blurple when focused
	ColorText        = lipgloss.Color("#F9FAFB") // Light text
	ColorTextMuted   = lipgloss.Color("#9CA3AF") // Muted text
	ColorTextInverse = lipgloss.Color("#1F2937") // Dark text for light backgrounds
	ColorSelf        = lipgloss.Color("#A5B4FC") // Light blurple for own messages
	ColorPeer        = lipgloss.Color("#34D399") // Green for other senders
	ColorPending     = lipgloss.Color("#F59E0B") // Amber for pending friend edges
	ColorError       = lipgloss.Color("#EF4444") // Red for errors
	ColorSuccess     = lipgloss.Color("#10B981") // Green for success
	ColorWarning     = lipgloss.Color("#F59E0B") // Amber for warnings
	ColorInfo        = lipgloss.Color("#00A8FC") // Blue for info
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)

	HeaderTagStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	HeaderIDStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Footer styles
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)
)

// Sidebar styles
var (
	SidebarItemStyle = lipgloss.NewStyle().
				Padding(0, 1)

	SidebarSelectedStyle = lipgloss.NewStyle().
				Background(ColorPrimary).
				Foreground(ColorText).
				Bold(true).
				Padding(0, 1)

	SidebarSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorTextMuted).
				Padding(0, 1)

	SidebarPendingStyle = lipgloss.NewStyle().
				Foreground(ColorPending)

	SidebarPresenceStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)
)

// Chat styles
var (
	ChatSenderSelfStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSelf)

	ChatSenderPeerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPeer)

	ChatTimestampStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	ChatEmptyStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	InputFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus).
				Padding(0, 1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			MarginTop(1)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError)
)

// Flash styles
var (
	FlashErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	FlashWarningStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorWarning)

	FlashInfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	FlashSuccessStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)
)

// Layout constants
const (
	// SidebarWidth is the fixed width of the left panel
	SidebarWidth = 32
	// InputHeight is the textarea height inside the input box
	InputHeight = 3
	// InputTotalHeight includes the input border rows
	InputTotalHeight = InputHeight + 2
	// HeaderHeight and FooterHeight are single rows
	HeaderHeight = 1
	FooterHeight = 1
)
