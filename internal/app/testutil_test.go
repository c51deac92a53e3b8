package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/incordes/incordes/internal/api"
	"github.com/incordes/incordes/internal/config"
)

// fakeBackend is an in-memory stand-in for the four Incordes services.
// Tests mutate its fields directly between requests.
type fakeBackend struct {
	friends  []api.Friend
	servers  []api.Server
	channels map[int64][]api.Channel
	messages map[string][]api.Message // key: "c<channelId>" or "r<recipientId>"
	nextID   int64

	failMessages bool
	failSend     bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		friends: []api.Friend{
			{ID: 7, IncordesID: "INCRD-0007", Username: "maren", Discriminator: "0042", FriendStatus: api.FriendAccepted},
			{ID: 8, IncordesID: "INCRD-0008", Username: "piotr", Discriminator: "0137", FriendStatus: api.FriendPending},
		},
		servers: []api.Server{
			{ID: 1, Name: "gophers"},
			{ID: 2, Name: "hardware"},
		},
		channels: map[int64][]api.Channel{
			1: {{ID: 10, Name: "general"}, {ID: 11, Name: "random"}},
			2: {{ID: 20, Name: "general"}},
		},
		messages: map[string][]api.Message{
			"c10": {
				{ID: 1, Content: "welcome to general", CreatedAt: "2026-01-01T10:00:00Z", Sender: api.Sender{ID: 7, Username: "maren", Discriminator: "0042"}},
				{ID: 2, Content: "hello!", CreatedAt: "2026-01-01T10:01:00Z", Sender: api.Sender{ID: 42, Username: "self", Discriminator: "0001"}},
			},
			"r7": {
				{ID: 3, Content: "dm from maren", CreatedAt: "2026-01-01T11:00:00Z", Sender: api.Sender{ID: 7, Username: "maren", Discriminator: "0042"}},
			},
		},
		nextID: 100,
	}
}

func (b *fakeBackend) key(q map[string][]string) string {
	if v := q["channelId"]; len(v) > 0 {
		return "c" + v[0]
	}
	if v := q["recipientId"]; len(v) > 0 {
		return "r" + v[0]
	}
	return ""
}

func (b *fakeBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/friends":
			json.NewEncoder(w).Encode(map[string]any{"friends": b.friends})

		case "/servers":
			if sid := r.URL.Query().Get("serverId"); sid != "" {
				id, _ := strconv.ParseInt(sid, 10, 64)
				json.NewEncoder(w).Encode(map[string]any{"channels": b.channels[id]})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{"servers": b.servers})

		case "/messages":
			if r.Method == http.MethodPost {
				if b.failSend {
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{"error": "message store down"})
					return
				}
				var body struct {
					Content     string `json:"content"`
					ChannelID   int64  `json:"channelId"`
					RecipientID int64  `json:"recipientId"`
				}
				json.NewDecoder(r.Body).Decode(&body)
				key := "c" + strconv.FormatInt(body.ChannelID, 10)
				if body.RecipientID != 0 {
					key = "r" + strconv.FormatInt(body.RecipientID, 10)
				}
				b.nextID++
				b.messages[key] = append(b.messages[key], api.Message{
					ID: b.nextID, Content: body.Content, CreatedAt: "2026-01-02T09:00:00Z",
					Sender: api.Sender{ID: 42, Username: "self", Discriminator: "0001"},
				})
				json.NewEncoder(w).Encode(map[string]any{"id": b.nextID})
				return
			}
			if b.failMessages {
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": "message store down"})
				return
			}
			key := b.key(r.URL.Query())
			json.NewEncoder(w).Encode(map[string]any{"messages": b.messages[key]})

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

// testModel builds a logged-in model wired to the fake backend.
func testModel(t *testing.T, backend *fakeBackend) *Model {
	t.Helper()

	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Services: api.ServiceURLs{
			Auth:     srv.URL + "/auth",
			Friends:  srv.URL + "/friends",
			Servers:  srv.URL + "/servers",
			Messages: srv.URL + "/messages",
		},
	}
	cfg.SetFilePath(filepath.Join(t.TempDir(), "config.json"))
	cfg.SetIdentity(api.Identity{
		ID: 42, IncordesID: "INCRD-0042", Username: "self", Discriminator: "0001",
	})

	m := New(cfg, "0.0.0-test")
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

// collectMsgs executes a command tree synchronously and returns the
// messages it produces. Must not be used on timer commands.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if msg == nil {
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// loadDirectory runs the friends and servers refresh round trips.
func loadDirectory(t *testing.T, m *Model) {
	t.Helper()
	for _, msg := range collectMsgs(tea.Batch(m.refreshFriendsCmd(), m.refreshServersCmd())) {
		m.Update(msg)
	}
}

// openChannel walks the server-selection flow to completion: select the
// server, load channels, auto-select the first channel, apply the
// transcript.
func openChannel(t *testing.T, m *Model, serverID int64) {
	t.Helper()
	_, cmd := m.enterServer(serverID)
	for _, msg := range collectMsgs(cmd) {
		_, next := m.Update(msg)
		for _, msg2 := range collectMsgs(next) {
			m.Update(msg2)
		}
	}
}
