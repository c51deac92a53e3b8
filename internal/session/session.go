// Package session owns the authenticated identity for the running client.
// The identity is created by authentication, persisted through config so a
// restart can skip login, and destroyed on logout. Everything downstream
// (directory, selection, transcript, composer) holds at most a read-only
// view of it.
package session

import (
	"context"

	"github.com/incordes/incordes/internal/api"
	"github.com/incordes/incordes/internal/config"
	"github.com/incordes/incordes/internal/errors"
	"github.com/incordes/incordes/internal/logger"
)

// Store manages the identity lifecycle. It is a process-wide singleton for
// the duration of a logged-in session; all identity mutation goes through
// Authenticate and Logout.
type Store struct {
	cfg     *config.Config
	client  *api.Client
	current *api.Identity
}

// NewStore creates a session store backed by the given config and client.
func NewStore(cfg *config.Config, client *api.Client) *Store {
	return &Store{cfg: cfg, client: client}
}

// Restore loads the persisted identity without touching the network.
// Returns nil when no identity is persisted.
func (s *Store) Restore() *api.Identity {
	id := s.cfg.GetIdentity()
	if id == nil {
		return nil
	}
	s.current = id
	s.client.SetUserID(id.ID)
	logger.Info("Session: restored identity %s", id.Tag())
	return id
}

// Authenticate logs in or registers against the auth service. On success the
// identity is persisted and becomes the current session identity.
func (s *Store) Authenticate(ctx context.Context, creds api.Credentials, mode api.AuthMode) (api.Identity, error) {
	id, err := s.client.Authenticate(ctx, creds, mode)
	if err != nil {
		return api.Identity{}, err
	}

	s.current = &id
	s.cfg.SetIdentity(id)
	if err := s.cfg.Save(); err != nil {
		// The session is still usable, it just won't survive a restart
		logger.Warn("Session: failed to persist identity: %v", err)
	}
	return id, nil
}

// Current returns the session identity, or nil when logged out.
func (s *Store) Current() *api.Identity {
	return s.current
}

// LoggedIn reports whether a session identity is active.
func (s *Store) LoggedIn() bool {
	return s.current != nil
}

// Logout clears the persisted identity and the client's request identity.
// Callers must also reset all dependent state; one user's data must never
// leak into another's session.
func (s *Store) Logout() error {
	s.current = nil
	s.client.ClearUserID()
	s.cfg.ClearIdentity()
	if err := s.cfg.Save(); err != nil {
		return errors.E(errors.Op("session.Logout"), errors.KindIO, "clearing persisted identity", err)
	}
	logger.Info("Session: logged out")
	return nil
}
