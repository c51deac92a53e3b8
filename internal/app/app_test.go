package app

import (
	"testing"

	"github.com/incordes/incordes/internal/api"
	"github.com/incordes/incordes/internal/selection"
	"github.com/incordes/incordes/internal/ui"
)

func TestRestoredSessionSkipsLogin(t *testing.T) {
	m := testModel(t, newFakeBackend())

	if !m.session.LoggedIn() {
		t.Fatal("persisted identity not restored")
	}
	if m.modal.IsVisible() {
		t.Error("login modal shown despite a restored session")
	}
	if m.selfID() != 42 {
		t.Errorf("selfID() = %d, want 42", m.selfID())
	}
}

func TestDirectoryLoad(t *testing.T) {
	m := testModel(t, newFakeBackend())
	loadDirectory(t, m)

	if got := len(m.dir.Servers()); got != 2 {
		t.Errorf("got %d servers, want 2", got)
	}
	if got := len(m.dir.Friends()); got != 2 {
		t.Errorf("got %d friends, want 2", got)
	}
	if m.sel.State() != selection.ViewingFriendsList {
		t.Errorf("initial state %v, want ViewingFriendsList", m.sel.State())
	}
}

// Opening a server loads its channels and lands in the first one, with
// the transcript fetched and ordered oldest-first.
func TestServerSelectionAutoSelectsFirstChannel(t *testing.T) {
	m := testModel(t, newFakeBackend())
	loadDirectory(t, m)

	openChannel(t, m, 1)

	if m.sel.State() != selection.ViewingChannel {
		t.Fatalf("state %v, want ViewingChannel", m.sel.State())
	}
	target := m.sel.Target()
	if target.ServerID != 1 || target.ChannelID != 10 {
		t.Fatalf("target %+v, want first channel of server 1", target)
	}

	msgs := m.chat.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Content != "welcome to general" {
		t.Errorf("transcript not ordered oldest-first: %q", msgs[0].Content)
	}
}

// A slow channel response landing after the user has switched to a DM
// must not overwrite the DM transcript.
func TestStaleTranscriptDiscarded(t *testing.T) {
	m := testModel(t, newFakeBackend())
	loadDirectory(t, m)

	// Fetch channel 10's transcript but hold the response
	_, cmd := m.enterServer(1)
	var held []any
	for _, msg := range collectMsgs(cmd) {
		_, next := m.Update(msg) // ChannelsLoadedMsg -> auto-select + fetch
		for _, lateMsg := range collectMsgs(next) {
			held = append(held, lateMsg) // TranscriptMsg for channel 10
		}
	}
	if len(held) != 1 {
		t.Fatalf("expected one held transcript response, got %d", len(held))
	}

	// Switch to the DM with maren; its response arrives first
	_, cmd = m.enterFriend(7)
	for _, msg := range collectMsgs(cmd) {
		m.Update(msg)
	}
	if got := m.chat.Messages(); len(got) != 1 || got[0].Content != "dm from maren" {
		t.Fatalf("DM transcript not loaded: %+v", got)
	}

	// Now the stale channel response lands
	m.Update(held[0])

	got := m.chat.Messages()
	if len(got) != 1 || got[0].Content != "dm from maren" {
		t.Errorf("stale channel response overwrote the DM transcript: %+v", got)
	}
	if m.loader.Discarded() != 1 {
		t.Errorf("discarded = %d, want 1", m.loader.Discarded())
	}
}

// A failed send keeps the draft so the user can retry.
func TestSendFailureRetainsDraft(t *testing.T) {
	backend := newFakeBackend()
	m := testModel(t, backend)
	loadDirectory(t, m)
	openChannel(t, m, 1)

	backend.failSend = true
	m.chat.SetInput("please don't lose me")

	_, cmd := m.sendDraft()
	for _, msg := range collectMsgs(cmd) {
		m.Update(msg) // SentMsg with error
	}

	if got := m.chat.Input(); got != "please don't lose me" {
		t.Errorf("draft lost after failed send: %q", got)
	}
	if got := m.comp.Draft(); got != "please don't lose me" {
		t.Errorf("composer draft lost after failed send: %q", got)
	}
	if !m.footer.HasFlash() {
		t.Error("failed send produced no flash")
	}
}

func TestSendSuccessClearsDraftAndRefreshes(t *testing.T) {
	m := testModel(t, newFakeBackend())
	loadDirectory(t, m)
	openChannel(t, m, 1)

	m.chat.SetInput("a new message")
	_, cmd := m.sendDraft()
	for _, msg := range collectMsgs(cmd) {
		_, next := m.Update(msg) // SentMsg -> re-fetch
		for _, msg2 := range collectMsgs(next) {
			m.Update(msg2) // TranscriptMsg with the new message
		}
	}

	if got := m.chat.Input(); got != "" {
		t.Errorf("draft not cleared after send: %q", got)
	}

	msgs := m.chat.Messages()
	if len(msgs) != 3 {
		t.Fatalf("got %d messages after send, want 3", len(msgs))
	}
	if msgs[2].Content != "a new message" {
		t.Errorf("sent message not at the end: %q", msgs[2].Content)
	}
}

// A failed refresh keeps the last good transcript on screen.
func TestTranscriptRefreshFailureRetainsHistory(t *testing.T) {
	backend := newFakeBackend()
	m := testModel(t, backend)
	loadDirectory(t, m)
	openChannel(t, m, 1)

	backend.failMessages = true
	for _, msg := range collectMsgs(m.beginTranscriptFetch()) {
		m.Update(msg)
	}

	if got := len(m.chat.Messages()); got != 2 {
		t.Errorf("failed refresh dropped the transcript (%d messages)", got)
	}
	if !m.footer.HasFlash() {
		t.Error("failed refresh produced no flash")
	}
}

func TestPendingFriendNotSelectable(t *testing.T) {
	m := testModel(t, newFakeBackend())
	loadDirectory(t, m)

	_, _ = m.enterFriend(8)
	if m.sel.Target().Active() {
		t.Error("pending friend became the active target")
	}
	if !m.footer.HasFlash() {
		t.Error("rejected selection produced no feedback")
	}
}

// Logout wipes every piece of per-user state.
func TestLogoutHardReset(t *testing.T) {
	m := testModel(t, newFakeBackend())
	loadDirectory(t, m)
	openChannel(t, m, 1)
	m.chat.SetInput("draft in progress")
	m.comp.SetDraft("draft in progress")

	_, _ = m.performLogout()

	if m.session.LoggedIn() {
		t.Error("still logged in")
	}
	if m.cfg.GetIdentity() != nil {
		t.Error("identity still persisted")
	}
	if len(m.dir.Servers()) != 0 || len(m.dir.Friends()) != 0 {
		t.Error("directory cache not cleared")
	}
	if m.sel.Target().Active() || m.sel.ServerID() != 0 {
		t.Error("selection not reset")
	}
	if len(m.loader.Messages()) != 0 {
		t.Error("transcript not cleared")
	}
	if m.comp.Draft() != "" {
		t.Error("draft not cleared")
	}
	if m.chat.Input() != "" {
		t.Error("chat input not cleared")
	}
	if _, ok := m.modal.State.(*ui.LoginState); !ok {
		t.Error("login modal not shown after logout")
	}
}

func TestFriendRemovalClosesOpenDM(t *testing.T) {
	m := testModel(t, newFakeBackend())
	loadDirectory(t, m)

	_, cmd := m.enterFriend(7)
	for _, msg := range collectMsgs(cmd) {
		m.Update(msg)
	}
	if m.sel.State() != selection.ViewingDirectMessage {
		t.Fatalf("state %v, want ViewingDirectMessage", m.sel.State())
	}

	m.Update(FriendRemovedMsg{FriendID: 7})

	if m.sel.Target().Active() {
		t.Error("removed friend's DM still the active target")
	}
	if len(m.chat.Messages()) != 0 {
		t.Error("removed friend's transcript still shown")
	}
}

func TestVanishedServerSendsViewHome(t *testing.T) {
	backend := newFakeBackend()
	m := testModel(t, backend)
	loadDirectory(t, m)
	openChannel(t, m, 1)

	// Server 1 disappears from the directory
	backend.servers = backend.servers[1:]
	for _, msg := range collectMsgs(m.refreshServersCmd()) {
		m.Update(msg)
	}

	if m.sel.ServerID() != 0 || m.sel.Target().Active() {
		t.Error("selection still points at a server that no longer exists")
	}
}

func TestChannelCreationReloadsList(t *testing.T) {
	backend := newFakeBackend()
	m := testModel(t, backend)
	loadDirectory(t, m)
	openChannel(t, m, 1)

	// Simulate the backend having created the channel
	backend.channels[1] = append(backend.channels[1], api.Channel{ID: 12, Name: "ops"})
	_, cmd := m.Update(ChannelCreatedMsg{ServerID: 1, ChannelID: 12, Name: "ops"})
	for _, msg := range collectMsgs(cmd) {
		m.Update(msg)
	}

	if _, ok := m.dir.Channel(1, 12); !ok {
		t.Error("new channel not in the cache after reload")
	}
}
