package api

import (
	"sort"
	"time"
)

// Friend relationship status values as the friends service reports them.
const (
	FriendPending  = "pending"
	FriendAccepted = "accepted"
)

// Identity is the authenticated user record returned by the auth service
// and persisted locally between runs.
type Identity struct {
	ID            int64  `json:"id"`
	IncordesID    string `json:"incordesId"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
	Bio           string `json:"bio,omitempty"`
	CustomStatus  string `json:"customStatus,omitempty"`
}

// Tag returns the display handle, e.g. "maren#0042".
func (i Identity) Tag() string {
	return i.Username + "#" + i.Discriminator
}

// Friend is one edge of the viewer's friend list. FriendStatus is the
// relationship from the viewer's perspective; Status is presence and is
// display-only.
type Friend struct {
	ID            int64  `json:"id"`
	IncordesID    string `json:"incordesId"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
	Status        string `json:"status,omitempty"`
	FriendStatus  string `json:"friendStatus"`
}

// Accepted reports whether this edge can be a direct-message target.
func (f Friend) Accepted() bool {
	return f.FriendStatus == FriendAccepted
}

// Tag returns the display handle, e.g. "maren#0042".
func (f Friend) Tag() string {
	return f.Username + "#" + f.Discriminator
}

// Server is a chat server the user belongs to. Channels are fetched
// separately and only when the server is selected.
type Server struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	IconURL string `json:"iconUrl,omitempty"`
	OwnerID int64  `json:"ownerId"`
}

// Channel is a text channel within a server.
type Channel struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	IconURL     string `json:"iconUrl,omitempty"`
	Description string `json:"description,omitempty"`
}

// Sender is the message author summary embedded in each message.
type Sender struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
}

// Message is a single chat message. Immutable once created.
type Message struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	Sender    Sender `json:"sender"`
}

// Time parses the creation timestamp. A zero time is returned for
// malformed values so sorting stays total.
func (m Message) Time() time.Time {
	t, err := time.Parse(time.RFC3339, m.CreatedAt)
	if err != nil {
		// The service emits bare ISO timestamps without a zone for some rows
		t, err = time.Parse("2006-01-02T15:04:05", m.CreatedAt)
		if err != nil {
			return time.Time{}
		}
	}
	return t
}

// SortMessages orders messages ascending by creation time for display,
// breaking timestamp ties by ascending ID so the order is stable.
func SortMessages(msgs []Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		ti, tj := msgs[i].Time(), msgs[j].Time()
		if ti.Equal(tj) {
			return msgs[i].ID < msgs[j].ID
		}
		return ti.Before(tj)
	})
}
