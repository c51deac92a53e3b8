// Package api implements the JSON-over-HTTP clients for the four Incordes
// backend services: auth, friends, servers/channels, and messages. The
// authenticated user's numeric ID travels in the X-User-Id request header;
// mutating calls carry a JSON body.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/incordes/incordes/internal/errors"
	"github.com/incordes/incordes/internal/logger"
)

// DefaultTimeout bounds every request so a dead service can't leave the
// client stuck in a loading state.
const DefaultTimeout = 10 * time.Second

// DefaultMessageLimit matches the backend's default page size.
const DefaultMessageLimit = 50

// ServiceURLs holds the base URL for each backend service.
type ServiceURLs struct {
	Auth     string `json:"auth"`
	Friends  string `json:"friends"`
	Servers  string `json:"servers"`
	Messages string `json:"messages"`
}

// AuthMode selects between login and registration.
type AuthMode string

const (
	ModeLogin    AuthMode = "login"
	ModeRegister AuthMode = "register"
)

// Credentials is the user-supplied auth input. Username is only required
// when registering.
type Credentials struct {
	Email    string
	Username string
	Password string
}

// MessageQuery selects a conversation to fetch or send into. Exactly one
// of ChannelID or RecipientID must be set.
type MessageQuery struct {
	ChannelID   int64
	RecipientID int64
}

func (q MessageQuery) valid() bool {
	return (q.ChannelID != 0) != (q.RecipientID != 0)
}

// Client talks to the Incordes backend services.
type Client struct {
	http   *http.Client
	urls   ServiceURLs
	userID atomic.Int64 // 0 until authenticated
}

// NewClient creates a client for the given service endpoints.
func NewClient(urls ServiceURLs) *Client {
	return &Client{
		http: &http.Client{Timeout: DefaultTimeout},
		urls: urls,
	}
}

// SetUserID sets the identity carried on subsequent requests.
func (c *Client) SetUserID(id int64) {
	c.userID.Store(id)
}

// ClearUserID drops the identity header (logout).
func (c *Client) ClearUserID() {
	c.userID.Store(0)
}

// errorBody is the error payload every service returns on non-2xx.
type errorBody struct {
	Error string `json:"error"`
}

// do issues a request and returns the response body for 2xx statuses.
// Non-2xx statuses are mapped to structured errors using the service's
// {error} payload when present.
func (c *Client) do(ctx context.Context, op errors.Op, method, rawURL string, body any) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, errors.E(op, errors.KindInvalid, "encoding request", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, 0, errors.E(op, errors.KindInvalid, "building request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := c.userID.Load(); id != 0 {
		req.Header.Set("X-User-Id", strconv.FormatInt(id, 10))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("API: %s %s failed: %v", method, rawURL, err)
		return nil, 0, errors.Transport(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, errors.Transport(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		if eb.Error == "" {
			eb.Error = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return data, resp.StatusCode, errors.E(op, errors.KindInvalid, eb.Error)
	}

	return data, resp.StatusCode, nil
}

// decodeList unmarshals a 2xx list response. Malformed bodies decode to an
// empty collection rather than an error so the UI stays displayable.
func decodeList[T any](op errors.Op, data []byte, out *T) {
	if err := json.Unmarshal(data, out); err != nil {
		logger.Warn("API: %s returned malformed body, treating as empty: %v", op, err)
	}
}

// Authenticate performs a login or registration against the auth service.
// On success the returned identity becomes the client's request identity.
func (c *Client) Authenticate(ctx context.Context, creds Credentials, mode AuthMode) (Identity, error) {
	op := errors.Op("api.Authenticate")

	payload := map[string]string{
		"action":   string(mode),
		"email":    creds.Email,
		"password": creds.Password,
	}
	if mode == ModeRegister {
		payload["username"] = creds.Username
	}

	data, status, err := c.do(ctx, op, http.MethodPost, c.urls.Auth, payload)
	if err != nil {
		if errors.Is(err, errors.KindNetwork) {
			return Identity{}, err
		}
		switch {
		case status == http.StatusUnauthorized:
			return Identity{}, errors.InvalidCredentials()
		case mode == ModeRegister && status == http.StatusBadRequest:
			return Identity{}, errors.DuplicateAccount(creds.Email)
		}
		return Identity{}, err
	}

	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return Identity{}, errors.E(op, errors.KindInvalid, "decoding identity", err)
	}
	if id.ID == 0 {
		return Identity{}, errors.E(op, errors.KindInvalid, "auth service returned no user id")
	}

	c.SetUserID(id.ID)
	logger.Info("API: authenticated as %s (%s)", id.Tag(), id.IncordesID)
	return id, nil
}

// Friends fetches the viewer's friend list.
func (c *Client) Friends(ctx context.Context) ([]Friend, error) {
	op := errors.Op("api.Friends")

	data, _, err := c.do(ctx, op, http.MethodGet, c.urls.Friends, nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		Friends []Friend `json:"friends"`
	}
	decodeList(op, data, &body)
	if body.Friends == nil {
		body.Friends = []Friend{}
	}
	return body.Friends, nil
}

// AddFriend sends a friend request by Incordes ID.
func (c *Client) AddFriend(ctx context.Context, incordesID string) error {
	op := errors.Op("api.AddFriend")
	_, _, err := c.do(ctx, op, http.MethodPost, c.urls.Friends, map[string]string{
		"action":     "add",
		"incordesId": incordesID,
	})
	return err
}

// AcceptFriend accepts a pending friend request from the given user.
func (c *Client) AcceptFriend(ctx context.Context, friendID int64) error {
	op := errors.Op("api.AcceptFriend")
	_, _, err := c.do(ctx, op, http.MethodPost, c.urls.Friends, map[string]any{
		"action":   "accept",
		"friendId": friendID,
	})
	return err
}

// RemoveFriend deletes the friendship edge in both directions.
func (c *Client) RemoveFriend(ctx context.Context, friendID int64) error {
	op := errors.Op("api.RemoveFriend")
	u := fmt.Sprintf("%s?friendId=%d", c.urls.Friends, friendID)
	_, _, err := c.do(ctx, op, http.MethodDelete, u, nil)
	return err
}

// Servers fetches the servers the viewer belongs to.
func (c *Client) Servers(ctx context.Context) ([]Server, error) {
	op := errors.Op("api.Servers")

	data, _, err := c.do(ctx, op, http.MethodGet, c.urls.Servers, nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		Servers []Server `json:"servers"`
	}
	decodeList(op, data, &body)
	if body.Servers == nil {
		body.Servers = []Server{}
	}
	return body.Servers, nil
}

// Channels fetches the channel list for one server, in the directory
// service's stable display order.
func (c *Client) Channels(ctx context.Context, serverID int64) ([]Channel, error) {
	op := errors.Op("api.Channels")

	u := fmt.Sprintf("%s?serverId=%d", c.urls.Servers, serverID)
	data, _, err := c.do(ctx, op, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		Channels []Channel `json:"channels"`
	}
	decodeList(op, data, &body)
	if body.Channels == nil {
		body.Channels = []Channel{}
	}
	return body.Channels, nil
}

// CreateServer creates a server owned by the viewer and returns its ID.
// The backend seeds it with a default channel.
func (c *Client) CreateServer(ctx context.Context, name string) (int64, error) {
	op := errors.Op("api.CreateServer")

	data, _, err := c.do(ctx, op, http.MethodPost, c.urls.Servers, map[string]string{
		"action": "createServer",
		"name":   name,
	})
	if err != nil {
		return 0, err
	}

	var body struct {
		ServerID int64 `json:"serverId"`
	}
	_ = json.Unmarshal(data, &body)
	return body.ServerID, nil
}

// CreateChannel creates a text channel in the given server.
func (c *Client) CreateChannel(ctx context.Context, serverID int64, name string) (int64, error) {
	op := errors.Op("api.CreateChannel")

	data, _, err := c.do(ctx, op, http.MethodPost, c.urls.Servers, map[string]any{
		"action":   "createChannel",
		"serverId": serverID,
		"name":     name,
		"type":     "text",
	})
	if err != nil {
		return 0, err
	}

	var body struct {
		ChannelID int64 `json:"channelId"`
	}
	_ = json.Unmarshal(data, &body)
	return body.ChannelID, nil
}

// Messages fetches the transcript for a channel or a direct-message peer.
// The service returns newest-first; the result is re-sorted ascending for
// display.
func (c *Client) Messages(ctx context.Context, q MessageQuery) ([]Message, error) {
	op := errors.Op("api.Messages")

	if !q.valid() {
		return nil, errors.E(op, errors.KindInvalid, "exactly one of channel or recipient must be set")
	}

	v := url.Values{}
	if q.ChannelID != 0 {
		v.Set("channelId", strconv.FormatInt(q.ChannelID, 10))
	} else {
		v.Set("recipientId", strconv.FormatInt(q.RecipientID, 10))
	}
	v.Set("limit", strconv.Itoa(DefaultMessageLimit))

	data, _, err := c.do(ctx, op, http.MethodGet, c.urls.Messages+"?"+v.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		Messages []Message `json:"messages"`
	}
	decodeList(op, data, &body)
	if body.Messages == nil {
		body.Messages = []Message{}
	}
	SortMessages(body.Messages)
	return body.Messages, nil
}

// Send posts a message into a channel or a direct-message thread.
func (c *Client) Send(ctx context.Context, content string, q MessageQuery) error {
	op := errors.Op("api.Send")

	if !q.valid() {
		return errors.E(op, errors.KindInvalid, "exactly one of channel or recipient must be set")
	}

	payload := map[string]any{"content": content}
	if q.ChannelID != 0 {
		payload["channelId"] = q.ChannelID
	} else {
		payload["recipientId"] = q.RecipientID
	}

	_, _, err := c.do(ctx, op, http.MethodPost, c.urls.Messages, payload)
	return err
}
