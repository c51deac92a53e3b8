// Package directory caches the user's friends, servers, and
// channels-per-server. Friend and server refreshes replace the prior list
// wholesale; channel lists are fetched lazily when a server is first
// selected and cached for the session lifetime. All refreshes fail soft:
// on transport error the prior cached data is retained and the error is
// returned for optional surfacing.
package directory

import (
	"context"
	"sync"

	"github.com/incordes/incordes/internal/api"
	"github.com/incordes/incordes/internal/logger"
)

// Fetcher is the slice of the API client the cache needs.
type Fetcher interface {
	Friends(ctx context.Context) ([]api.Friend, error)
	Servers(ctx context.Context) ([]api.Server, error)
	Channels(ctx context.Context, serverID int64) ([]api.Channel, error)
}

// Cache is the process-wide directory cache. Safe for concurrent use; the
// refresh methods run inside tea commands off the update goroutine.
type Cache struct {
	mu       sync.RWMutex
	fetcher  Fetcher
	friends  []api.Friend
	servers  []api.Server
	channels map[int64][]api.Channel
}

// NewCache creates an empty directory cache.
func NewCache(fetcher Fetcher) *Cache {
	return &Cache{
		fetcher:  fetcher,
		channels: make(map[int64][]api.Channel),
	}
}

// RefreshFriends replaces the friend list from the friends service.
// On error the prior list is kept; friend list staleness is tolerated.
func (c *Cache) RefreshFriends(ctx context.Context) ([]api.Friend, error) {
	friends, err := c.fetcher.Friends(ctx)
	if err != nil {
		logger.Warn("Directory: friends refresh failed, keeping prior list: %v", err)
		return c.Friends(), err
	}

	c.mu.Lock()
	c.friends = friends
	c.mu.Unlock()
	logger.Debug("Directory: refreshed %d friends", len(friends))
	return friends, nil
}

// RefreshServers replaces the server list from the directory service.
// Same replace-wholesale, retain-on-error policy as friends.
func (c *Cache) RefreshServers(ctx context.Context) ([]api.Server, error) {
	servers, err := c.fetcher.Servers(ctx)
	if err != nil {
		logger.Warn("Directory: servers refresh failed, keeping prior list: %v", err)
		return c.Servers(), err
	}

	c.mu.Lock()
	c.servers = servers
	c.mu.Unlock()
	logger.Debug("Directory: refreshed %d servers", len(servers))
	return servers, nil
}

// LoadChannels returns the channel list for a server, fetching it on first
// request and serving the cached copy afterwards. Channel lists change
// rarely relative to messages, so there is no invalidation short of a full
// Reset or ReloadChannels.
func (c *Cache) LoadChannels(ctx context.Context, serverID int64) ([]api.Channel, error) {
	c.mu.RLock()
	cached, ok := c.channels[serverID]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}
	return c.ReloadChannels(ctx, serverID)
}

// ReloadChannels fetches the channel list for a server unconditionally,
// replacing any cached copy. Used after creating a channel.
func (c *Cache) ReloadChannels(ctx context.Context, serverID int64) ([]api.Channel, error) {
	channels, err := c.fetcher.Channels(ctx, serverID)
	if err != nil {
		logger.Warn("Directory: channel load for server %d failed: %v", serverID, err)
		return c.Channels(serverID), err
	}

	c.mu.Lock()
	c.channels[serverID] = channels
	c.mu.Unlock()
	logger.Debug("Directory: loaded %d channels for server %d", len(channels), serverID)
	return channels, nil
}

// Friends returns the cached friend list.
func (c *Cache) Friends() []api.Friend {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]api.Friend, len(c.friends))
	copy(out, c.friends)
	return out
}

// AcceptedFriends returns only edges eligible as conversation targets.
func (c *Cache) AcceptedFriends() []api.Friend {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []api.Friend
	for _, f := range c.friends {
		if f.Accepted() {
			out = append(out, f)
		}
	}
	return out
}

// Friend looks up a friend edge by user ID.
func (c *Cache) Friend(id int64) (api.Friend, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, f := range c.friends {
		if f.ID == id {
			return f, true
		}
	}
	return api.Friend{}, false
}

// Servers returns the cached server list.
func (c *Cache) Servers() []api.Server {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]api.Server, len(c.servers))
	copy(out, c.servers)
	return out
}

// Server looks up a server by ID.
func (c *Cache) Server(id int64) (api.Server, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.servers {
		if s.ID == id {
			return s, true
		}
	}
	return api.Server{}, false
}

// Channels returns the cached channel list for a server, or nil if the
// server's channels have not been loaded yet.
func (c *Cache) Channels(serverID int64) []api.Channel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cached, ok := c.channels[serverID]
	if !ok {
		return nil
	}
	out := make([]api.Channel, len(cached))
	copy(out, cached)
	return out
}

// HasChannels reports whether a server's channel list has been loaded.
func (c *Cache) HasChannels(serverID int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.channels[serverID]
	return ok
}

// Channel looks up a channel by ID within a server's cached list.
func (c *Cache) Channel(serverID, channelID int64) (api.Channel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ch := range c.channels[serverID] {
		if ch.ID == channelID {
			return ch, true
		}
	}
	return api.Channel{}, false
}

// Reset drops all cached directory data. Part of the logout hard reset.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.friends = nil
	c.servers = nil
	c.channels = make(map[int64][]api.Channel)
}
