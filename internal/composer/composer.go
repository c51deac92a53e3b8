// Package composer holds the in-progress draft bound to the active
// conversation target. The draft is purely local: it is created empty when
// a target is selected, cleared after a successful send, and discarded on
// target change or logout. A failed send leaves the draft untouched so the
// user never loses typed text.
package composer

import (
	"strings"

	"github.com/incordes/incordes/internal/api"
	"github.com/incordes/incordes/internal/errors"
	"github.com/incordes/incordes/internal/selection"
)

// ErrNothingToSend is returned by Prepare when the draft is empty or
// whitespace-only, or when no target is active. Callers treat it as a
// no-op, not a failure.
var ErrNothingToSend = errors.E(errors.Op("composer.Prepare"), errors.KindInvalid, "nothing to send")

// Outgoing is a validated message ready for the message service.
type Outgoing struct {
	Content string
	Query   api.MessageQuery
}

// Composer tracks the draft for the active target.
type Composer struct {
	target selection.Target
	draft  string
}

// New creates a composer with no target and an empty draft.
func New() *Composer {
	return &Composer{}
}

// Rebind points the composer at a new target. The old draft is discarded;
// drafts are not persisted per-target.
func (c *Composer) Rebind(target selection.Target) {
	if !c.target.Equal(target) {
		c.draft = ""
	}
	c.target = target
}

// SetDraft replaces the draft text. No network effect.
func (c *Composer) SetDraft(text string) {
	c.draft = text
}

// Draft returns the current draft text.
func (c *Composer) Draft() string {
	return c.draft
}

// Target returns the target the draft is bound to.
func (c *Composer) Target() selection.Target {
	return c.target
}

// Prepare validates the draft for sending. Returns ErrNothingToSend for an
// empty/whitespace draft or when no target is active. The draft itself is
// not cleared here; callers clear it only after the send succeeds.
func (c *Composer) Prepare() (Outgoing, error) {
	content := strings.TrimSpace(c.draft)
	if content == "" || !c.target.Active() {
		return Outgoing{}, ErrNothingToSend
	}
	return Outgoing{Content: content, Query: c.target.Query()}, nil
}

// Clear empties the draft. Called after a successful send.
func (c *Composer) Clear() {
	c.draft = ""
}

// Reset drops the draft and target binding. Part of the logout hard reset.
func (c *Composer) Reset() {
	c.target = selection.Target{}
	c.draft = ""
}
