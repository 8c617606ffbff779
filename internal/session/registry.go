// Package session owns the client's authenticated identity and the two
// conversation-session identifiers, one per conversational surface. It is the
// only writer of this state; every outgoing request reads from it.
package session

import (
	"fmt"

	"github.com/charantej156/Air-Lines-Chat-Agent/internal/errors"
	"github.com/charantej156/Air-Lines-Chat-Agent/internal/log"
)

// Surface identifies one of the two independent conversational contexts.
// The surfaces never share a session id.
type Surface string

const (
	// SurfacePrimary is the full-page flow (search, booking, dashboard).
	SurfacePrimary Surface = "primary"

	// SurfaceWidget is the embedded chat widget.
	SurfaceWidget Surface = "widget"
)

// Identity describes the authenticated traveler.
type Identity struct {
	UserID      string `yaml:"user_id"`
	DisplayName string `yaml:"display_name"`
	Email       string `yaml:"email"`
}

// Registry holds Identity, the auth token, and the per-surface conversation
// session ids, persisting them through a Store. All methods run on the single
// event thread; writes happen only in response to a completed request.
type Registry struct {
	identity *Identity
	token    string
	sessions map[Surface]string
	store    Store
	logger   *log.Logger
}

// NewRegistry creates an empty, unauthenticated registry backed by store.
func NewRegistry(store Store, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Silent()
	}
	return &Registry{
		sessions: make(map[Surface]string),
		store:    store,
		logger:   logger,
	}
}

// Restore loads previously persisted identity, token, and session ids.
// Absence of stored state leaves the registry unauthenticated and is never an
// error.
func (r *Registry) Restore() error {
	state, err := r.store.Load()
	if err != nil {
		return err
	}

	r.identity = state.Identity
	r.token = state.Token
	if state.PrimarySessionID != "" {
		r.sessions[SurfacePrimary] = state.PrimarySessionID
	}
	if state.WidgetSessionID != "" {
		r.sessions[SurfaceWidget] = state.WidgetSessionID
	}

	if r.identity != nil {
		r.logger.Debug("restored identity", "user_id", r.identity.UserID)
	}
	return nil
}

// SetIdentity establishes the identity and auth token and persists both.
// Idempotent: calling it again with the same values only re-persists.
func (r *Registry) SetIdentity(identity Identity, token string) error {
	r.identity = &identity
	r.token = token
	return r.persist()
}

// Clear erases identity, token, and both conversation sessions, in memory and
// in the store. After Clear, a Restore finds nothing.
func (r *Registry) Clear() error {
	r.identity = nil
	r.token = ""
	r.sessions = make(map[Surface]string)
	return r.store.Clear()
}

// Bind assigns a conversation session id to a surface the first time the
// service returns one. A session id, once bound, is immutable for the
// lifetime of the registry: binding a different id to the same surface is
// rejected and the original id is retained. Re-binding the same id is a
// no-op.
func (r *Registry) Bind(surface Surface, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if existing, ok := r.sessions[surface]; ok {
		if existing == sessionID {
			return nil
		}
		return errors.New(errors.ErrCodeSessionRebind,
			fmt.Sprintf("surface %q already bound to session %s", surface, existing))
	}

	r.sessions[surface] = sessionID
	r.logger.Debug("bound conversation session", "surface", string(surface), "session_id", sessionID)
	return r.persist()
}

// Session returns the session id bound to surface, if any.
func (r *Registry) Session(surface Surface) (string, bool) {
	id, ok := r.sessions[surface]
	return id, ok
}

// SessionID returns the bound id or "" when none is held, the form the agent
// client wants.
func (r *Registry) SessionID(surface Surface) string {
	return r.sessions[surface]
}

// Identity returns the current identity, if authenticated.
func (r *Registry) Identity() (Identity, bool) {
	if r.identity == nil {
		return Identity{}, false
	}
	return *r.identity, true
}

// Token returns the auth token, or "" when unauthenticated.
func (r *Registry) Token() string {
	return r.token
}

// Authenticated reports whether an identity is established.
func (r *Registry) Authenticated() bool {
	return r.identity != nil
}

func (r *Registry) persist() error {
	return r.store.Save(State{
		Token:            r.token,
		Identity:         r.identity,
		PrimarySessionID: r.sessions[SurfacePrimary],
		WidgetSessionID:  r.sessions[SurfaceWidget],
	})
}
