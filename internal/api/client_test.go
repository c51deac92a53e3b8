package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/incordes/incordes/internal/errors"
)

// testServer builds a client whose four service URLs all point at the
// given handler.
func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(ServiceURLs{
		Auth:     srv.URL + "/auth",
		Friends:  srv.URL + "/friends",
		Servers:  srv.URL + "/servers",
		Messages: srv.URL + "/messages",
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func TestAuthenticateLogin(t *testing.T) {
	var gotBody map[string]string
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("got method %s, want POST", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusOK, map[string]any{
			"id":            42,
			"incordesId":    "INCRD-1234-5678",
			"email":         "maren@example.com",
			"username":      "maren",
			"discriminator": "0042",
		})
	})

	id, err := c.Authenticate(context.Background(), Credentials{
		Email:    "maren@example.com",
		Password: "hunter2",
	}, ModeLogin)
	if err != nil {
		t.Fatal(err)
	}

	if gotBody["action"] != "login" {
		t.Errorf("got action %q, want login", gotBody["action"])
	}
	if _, ok := gotBody["username"]; ok {
		t.Error("login request should not carry a username")
	}
	if id.ID != 42 || id.Tag() != "maren#0042" {
		t.Errorf("decoded identity %+v", id)
	}
}

func TestAuthenticateRegisterSendsUsername(t *testing.T) {
	var gotBody map[string]string
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusOK, map[string]any{
			"id":            43,
			"incordesId":    "INCRD-9999-0001",
			"username":      "piotr",
			"discriminator": "0137",
		})
	})

	_, err := c.Authenticate(context.Background(), Credentials{
		Email:    "piotr@example.com",
		Username: "piotr",
		Password: "pw",
	}, ModeRegister)
	if err != nil {
		t.Fatal(err)
	}
	if gotBody["action"] != "register" || gotBody["username"] != "piotr" {
		t.Errorf("register body %+v", gotBody)
	}
}

func TestAuthenticateInvalidCredentials(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	})

	_, err := c.Authenticate(context.Background(), Credentials{Email: "x", Password: "y"}, ModeLogin)
	if !errors.Is(err, errors.KindAuth) {
		t.Errorf("got kind %v, want KindAuth", errors.GetKind(err))
	}
}

func TestAuthenticateDuplicateEmail(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Email already registered"})
	})

	_, err := c.Authenticate(context.Background(), Credentials{
		Email: "taken@example.com", Username: "u", Password: "p",
	}, ModeRegister)
	if !errors.Is(err, errors.KindDuplicate) {
		t.Errorf("got kind %v, want KindDuplicate", errors.GetKind(err))
	}
}

func TestUserIDHeaderCarriedAfterAuth(t *testing.T) {
	var gotHeader string
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth":
			writeJSON(w, http.StatusOK, map[string]any{
				"id": 42, "incordesId": "INCRD-1", "username": "m", "discriminator": "0001",
			})
		case "/friends":
			gotHeader = r.Header.Get("X-User-Id")
			writeJSON(w, http.StatusOK, map[string]any{"friends": []any{}})
		}
	})

	ctx := context.Background()
	if _, err := c.Authenticate(ctx, Credentials{Email: "e", Password: "p"}, ModeLogin); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Friends(ctx); err != nil {
		t.Fatal(err)
	}
	if gotHeader != "42" {
		t.Errorf("got X-User-Id %q, want 42", gotHeader)
	}
}

func TestFriendsMalformedBodyIsEmpty(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("not json at all"))
	})

	friends, err := c.Friends(context.Background())
	if err != nil {
		t.Fatalf("malformed 2xx body should not error: %v", err)
	}
	if len(friends) != 0 {
		t.Errorf("got %d friends from garbage body", len(friends))
	}
}

func TestFriendsTransportError(t *testing.T) {
	c := NewClient(ServiceURLs{Friends: "http://127.0.0.1:1/friends"})
	_, err := c.Friends(context.Background())
	if !errors.Is(err, errors.KindNetwork) {
		t.Errorf("got kind %v, want KindNetwork", errors.GetKind(err))
	}
}

func TestRemoveFriendUsesDelete(t *testing.T) {
	var gotMethod, gotQuery string
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	})

	if err := c.RemoveFriend(context.Background(), 7); err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("got method %s, want DELETE", gotMethod)
	}
	if gotQuery != "friendId=7" {
		t.Errorf("got query %q, want friendId=7", gotQuery)
	}
}

func TestChannelsQuery(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("serverId"); got != "3" {
			t.Errorf("got serverId %q, want 3", got)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"channels": []map[string]any{{"id": 30, "name": "general"}},
		})
	})

	channels, err := c.Channels(context.Background(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(channels) != 1 || channels[0].Name != "general" {
		t.Errorf("got channels %+v", channels)
	}
}

func TestMessagesResortedAscending(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("channelId") != "10" {
			t.Errorf("got channelId %q, want 10", q.Get("channelId"))
		}
		if q.Get("limit") != "50" {
			t.Errorf("got limit %q, want 50", q.Get("limit"))
		}
		// Newest-first, as the service sends them
		writeJSON(w, http.StatusOK, map[string]any{
			"messages": []map[string]any{
				{"id": 3, "content": "third", "createdAt": "2026-01-01T10:02:00Z"},
				{"id": 2, "content": "second", "createdAt": "2026-01-01T10:01:00Z"},
				{"id": 1, "content": "first", "createdAt": "2026-01-01T10:00:00Z"},
			},
		})
	})

	msgs, err := c.Messages(context.Background(), MessageQuery{ChannelID: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	for i, want := range []string{"first", "second", "third"} {
		if msgs[i].Content != want {
			t.Errorf("position %d is %q, want %q", i, msgs[i].Content, want)
		}
	}
}

func TestMessagesRequiresExactlyOneTarget(t *testing.T) {
	c := NewClient(ServiceURLs{})
	ctx := context.Background()

	if _, err := c.Messages(ctx, MessageQuery{}); err == nil {
		t.Error("empty query must fail")
	}
	if _, err := c.Messages(ctx, MessageQuery{ChannelID: 1, RecipientID: 2}); err == nil {
		t.Error("double-target query must fail")
	}
	if err := c.Send(ctx, "hi", MessageQuery{}); err == nil {
		t.Error("send with empty query must fail")
	}
}

func TestSendBody(t *testing.T) {
	var gotBody map[string]any
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusOK, map[string]any{"id": 99})
	})

	if err := c.Send(context.Background(), "hello there", MessageQuery{RecipientID: 7}); err != nil {
		t.Fatal(err)
	}
	if gotBody["content"] != "hello there" {
		t.Errorf("got content %v", gotBody["content"])
	}
	if gotBody["recipientId"] != float64(7) {
		t.Errorf("got recipientId %v", gotBody["recipientId"])
	}
	if _, ok := gotBody["channelId"]; ok {
		t.Error("DM send should not carry a channelId")
	}
}

func TestCreateServerAndChannel(t *testing.T) {
	c := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		switch body["action"] {
		case "createServer":
			writeJSON(w, http.StatusOK, map[string]any{"serverId": 5})
		case "createChannel":
			if body["serverId"] != float64(5) {
				t.Errorf("got serverId %v, want 5", body["serverId"])
			}
			writeJSON(w, http.StatusOK, map[string]any{"channelId": 50})
		default:
			t.Errorf("unexpected action %v", body["action"])
		}
	})

	ctx := context.Background()
	serverID, err := c.CreateServer(ctx, "gophers")
	if err != nil {
		t.Fatal(err)
	}
	if serverID != 5 {
		t.Errorf("got server ID %d, want 5", serverID)
	}

	channelID, err := c.CreateChannel(ctx, serverID, "random")
	if err != nil {
		t.Fatal(err)
	}
	if channelID != 50 {
		t.Errorf("got channel ID %d, want 50", channelID)
	}
}

func TestSortMessagesTiebreak(t *testing.T) {
	msgs := []Message{
		{ID: 9, CreatedAt: "2026-01-01T10:00:00Z"},
		{ID: 4, CreatedAt: "2026-01-01T10:00:00Z"},
		{ID: 1, CreatedAt: "2026-01-01T09:00:00Z"},
	}
	SortMessages(msgs)
	want := []int64{1, 4, 9}
	for i, id := range want {
		if msgs[i].ID != id {
			t.Fatalf("position %d has ID %d, want %d", i, msgs[i].ID, id)
		}
	}
}

func TestMessageTimeFallback(t *testing.T) {
	tests := []struct {
		name      string
		createdAt string
		wantZero  bool
	}{
		{name: "rfc3339", createdAt: "2026-01-01T10:00:00Z"},
		{name: "bare iso", createdAt: "2026-01-01T10:00:00"},
		{name: "garbage", createdAt: "yesterday-ish", wantZero: true},
		{name: "empty", createdAt: "", wantZero: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Message{CreatedAt: tt.createdAt}
			if got := m.Time().IsZero(); got != tt.wantZero {
				t.Errorf("IsZero() = %v, want %v", got, tt.wantZero)
			}
		})
	}
}
