// Package transcript holds the message history for the active conversation
// target. Selection changes can fire overlapping fetches, so every fetch is
// issued under a token; a response whose token is no longer live is
// discarded rather than applied. Without that discipline a slow response
// for a deselected target would overwrite the transcript of the newly
// selected one.
package transcript

import (
	"sync"

	"github.com/google/uuid"

	"github.com/incordes/incordes/internal/api"
	"github.com/incordes/incordes/internal/logger"
	"github.com/incordes/incordes/internal/selection"
)

// Token identifies one in-flight transcript fetch. Only the most recently
// issued token is live.
type Token struct {
	ID     uuid.UUID
	Target selection.Target
	Seq    uint64
}

// Loader owns the transcript for the currently active target. There is no
// multi-target cache; switching targets discards the previous history.
// Safe for concurrent use; fetches run inside tea commands.
type Loader struct {
	mu        sync.Mutex
	live      *Token
	seq       uint64
	target    selection.Target
	messages  []api.Message
	discarded int
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Begin registers a fetch for the given target and returns its token,
// retiring any previously live token. If the target differs from the one
// the current transcript belongs to, the transcript is discarded now so a
// stale history is never shown against the new target.
func (l *Loader) Begin(target selection.Target) Token {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	tok := Token{ID: uuid.New(), Target: target, Seq: l.seq}
	l.live = &tok

	if !l.target.Equal(target) {
		l.messages = nil
		l.target = target
	}
	return tok
}

// Apply installs fetched messages if the token is still live. Returns false
// when the token is stale, in which case the messages are dropped.
func (l *Loader) Apply(tok Token, msgs []api.Message) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.live == nil || l.live.ID != tok.ID {
		l.discarded++
		logger.Debug("Transcript: discarded stale response seq=%d (%d total)", tok.Seq, l.discarded)
		return false
	}
	l.live = nil

	sorted := make([]api.Message, len(msgs))
	copy(sorted, msgs)
	api.SortMessages(sorted)
	l.messages = sorted
	l.target = tok.Target
	return true
}

// Fail retires a live token after a fetch error. The last successfully
// loaded transcript is retained; a failed refresh never clears history.
func (l *Loader) Fail(tok Token, err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.live == nil || l.live.ID != tok.ID {
		l.discarded++
		return false
	}
	l.live = nil
	logger.Warn("Transcript: fetch failed for seq=%d, keeping prior transcript: %v", tok.Seq, err)
	return true
}

// Messages returns the current transcript, ordered ascending by creation
// time with IDs breaking ties.
func (l *Loader) Messages() []api.Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]api.Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Target returns the target the current transcript belongs to.
func (l *Loader) Target() selection.Target {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.target
}

// Loading reports whether a fetch is outstanding.
func (l *Loader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.live != nil
}

// Discarded returns how many stale responses have been ignored.
func (l *Loader) Discarded() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.discarded
}

// Reset drops the transcript and any live token. Used on logout and when
// returning home.
func (l *Loader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.live = nil
	l.target = selection.Target{}
	l.messages = nil
}
