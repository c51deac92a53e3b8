package ui

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/incordes/incordes/internal/api"
)

// Header is the top bar showing the app name and the logged-in identity.
type Header struct {
	width    int
	identity *api.Identity
	version  string
}

// NewHeader creates a new header
func NewHeader(version string) *Header {
	return &Header{version: version}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetIdentity sets the logged-in identity shown on the right, nil when
// logged out.
func (h *Header) SetIdentity(id *api.Identity) {
	h.identity = id
}

// View renders the header
func (h *Header) View() string {
	title := "Incordes " + h.version

	var right string
	if h.identity != nil {
		right = HeaderTagStyle.Render(h.identity.Tag()) +
			HeaderIDStyle.Render("  "+h.identity.IncordesID)
	}

	gap := h.width - lipgloss.Width(title) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return HeaderStyle.Width(h.width).Render(title + strings.Repeat(" ", gap) + right)
}
