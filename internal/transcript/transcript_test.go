package transcript

import (
	"errors"
	"testing"

	"github.com/incordes/incordes/internal/api"
	"github.com/incordes/incordes/internal/selection"
)

func channelTarget(serverID, channelID int64) selection.Target {
	return selection.Target{Kind: selection.TargetChannel, ServerID: serverID, ChannelID: channelID}
}

func friendTarget(friendID int64) selection.Target {
	return selection.Target{Kind: selection.TargetFriend, FriendID: friendID}
}

func msg(id int64, content, createdAt string) api.Message {
	return api.Message{ID: id, Content: content, CreatedAt: createdAt}
}

func TestBeginAndApply(t *testing.T) {
	l := NewLoader()
	target := channelTarget(1, 10)

	tok := l.Begin(target)
	if !l.Loading() {
		t.Fatal("expected loading after Begin")
	}

	msgs := []api.Message{
		msg(1, "hello", "2026-01-01T10:00:00Z"),
		msg(2, "world", "2026-01-01T10:01:00Z"),
	}
	if !l.Apply(tok, msgs) {
		t.Fatal("expected live token to apply")
	}
	if l.Loading() {
		t.Error("expected loading to end after Apply")
	}
	if got := len(l.Messages()); got != 2 {
		t.Errorf("got %d messages, want 2", got)
	}
	if l.Target() != target {
		t.Errorf("got target %+v, want %+v", l.Target(), target)
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	l := NewLoader()

	// User opens channel A, then switches to friend B before A's
	// response arrives.
	tokA := l.Begin(channelTarget(1, 10))
	tokB := l.Begin(friendTarget(7))

	msgsA := []api.Message{msg(1, "from channel A", "2026-01-01T10:00:00Z")}
	if l.Apply(tokA, msgsA) {
		t.Fatal("stale response for channel A must be discarded")
	}
	if got := len(l.Messages()); got != 0 {
		t.Fatalf("stale apply leaked %d messages into the transcript", got)
	}
	if l.Discarded() != 1 {
		t.Errorf("got %d discarded, want 1", l.Discarded())
	}

	msgsB := []api.Message{msg(2, "from friend B", "2026-01-01T10:02:00Z")}
	if !l.Apply(tokB, msgsB) {
		t.Fatal("live response for friend B must apply")
	}
	got := l.Messages()
	if len(got) != 1 || got[0].Content != "from friend B" {
		t.Errorf("transcript shows %+v, want friend B's message", got)
	}
}

func TestLateResponseAfterReissue(t *testing.T) {
	l := NewLoader()
	target := channelTarget(1, 10)

	// Two fetches for the same target, e.g. a manual refresh racing the
	// post-send re-fetch. Only the newest token wins.
	tok1 := l.Begin(target)
	tok2 := l.Begin(target)

	if !l.Apply(tok2, []api.Message{msg(2, "new", "2026-01-01T10:05:00Z")}) {
		t.Fatal("newest token must apply")
	}
	if l.Apply(tok1, []api.Message{msg(1, "old", "2026-01-01T10:00:00Z")}) {
		t.Fatal("superseded token must be discarded")
	}
	got := l.Messages()
	if len(got) != 1 || got[0].Content != "new" {
		t.Errorf("transcript shows %+v, want the newer fetch", got)
	}
}

func TestBeginSameTargetKeepsTranscript(t *testing.T) {
	l := NewLoader()
	target := channelTarget(1, 10)

	tok := l.Begin(target)
	l.Apply(tok, []api.Message{msg(1, "hi", "2026-01-01T10:00:00Z")})

	// A re-fetch of the same target must not blank the visible history
	l.Begin(target)
	if got := len(l.Messages()); got != 1 {
		t.Errorf("re-fetch of the same target dropped the transcript (%d messages)", got)
	}
}

func TestBeginNewTargetClearsTranscript(t *testing.T) {
	l := NewLoader()

	tok := l.Begin(channelTarget(1, 10))
	l.Apply(tok, []api.Message{msg(1, "hi", "2026-01-01T10:00:00Z")})

	l.Begin(friendTarget(7))
	if got := len(l.Messages()); got != 0 {
		t.Errorf("old transcript still visible against new target (%d messages)", got)
	}
}

func TestFailRetainsTranscript(t *testing.T) {
	l := NewLoader()
	target := channelTarget(1, 10)

	tok := l.Begin(target)
	l.Apply(tok, []api.Message{msg(1, "hi", "2026-01-01T10:00:00Z")})

	tok2 := l.Begin(target)
	if !l.Fail(tok2, errors.New("connection refused")) {
		t.Fatal("live token failure should be acknowledged")
	}
	if l.Loading() {
		t.Error("failed fetch should end the loading state")
	}
	if got := len(l.Messages()); got != 1 {
		t.Errorf("failed refresh cleared the transcript (%d messages)", got)
	}
}

func TestStaleFailIgnored(t *testing.T) {
	l := NewLoader()

	tok1 := l.Begin(channelTarget(1, 10))
	l.Begin(channelTarget(1, 11))

	if l.Fail(tok1, errors.New("timeout")) {
		t.Error("stale failure should not be acknowledged")
	}
	if !l.Loading() {
		t.Error("the live fetch is still outstanding")
	}
}

func TestApplySortsAscendingWithIDTiebreak(t *testing.T) {
	l := NewLoader()
	target := channelTarget(1, 10)

	// Service order is newest-first; two rows share a timestamp
	tok := l.Begin(target)
	l.Apply(tok, []api.Message{
		msg(30, "third", "2026-01-01T10:02:00Z"),
		msg(21, "second-b", "2026-01-01T10:01:00Z"),
		msg(20, "second-a", "2026-01-01T10:01:00Z"),
		msg(10, "first", "2026-01-01T10:00:00Z"),
	})

	got := l.Messages()
	want := []int64{10, 20, 21, 30}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d has message %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestReset(t *testing.T) {
	l := NewLoader()

	tok := l.Begin(channelTarget(1, 10))
	l.Apply(tok, []api.Message{msg(1, "hi", "2026-01-01T10:00:00Z")})
	tok2 := l.Begin(channelTarget(1, 10))

	l.Reset()
	if l.Loading() {
		t.Error("reset should drop the live token")
	}
	if len(l.Messages()) != 0 {
		t.Error("reset should drop the transcript")
	}
	if l.Target().Active() {
		t.Error("reset should drop the target")
	}
	if l.Apply(tok2, []api.Message{msg(2, "late", "2026-01-01T10:03:00Z")}) {
		t.Error("token issued before reset must not apply")
	}
}
