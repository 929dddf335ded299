// Package session ties a signed-in user to their live cart and
// favorites, and checkpoints both to the key-value store so state
// survives restarts and new logins.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/Ahmad-Arslan-10/Steakaway/internal/cart"
	"github.com/Ahmad-Arslan-10/Steakaway/internal/favorites"
	pkgerrors "github.com/Ahmad-Arslan-10/Steakaway/pkg/errors"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/kv"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/logger"
	"github.com/Ahmad-Arslan-10/Steakaway/pkg/metrics"
)

// Session is one authenticated user's working state. Handlers must hold
// the session lock while reading or mutating Cart and Favorites.
type Session struct {
	ID        string
	UserID    string
	Cart      *cart.Cart
	Favorites *favorites.Set

	mu sync.Mutex
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Manager hands out sessions and persists their state. State is keyed
// by user id, not session id, so a fresh login picks up where the last
// one left off.
type Manager struct {
	store    kv.Store
	cartOpts cart.Options
	logg     *logger.Logger
	metrics  *metrics.EngineMetrics

	mu     sync.RWMutex
	active map[string]*Session
	// ended tombstones logged-out session ids so a still-valid token
	// cannot resurrect its session. Per-process; a restarted instance
	// relies on token expiry instead.
	ended map[string]struct{}
}

func NewManager(store kv.Store, cartOpts cart.Options, logg *logger.Logger, m *metrics.EngineMetrics) *Manager {
	return &Manager{
		store:    store,
		cartOpts: cartOpts,
		logg:     logg,
		metrics:  m,
		active:   make(map[string]*Session),
		ended:    make(map[string]struct{}),
	}
}

type cartState struct {
	Lines []cart.Line `json:"lines"`
}

type favoritesState struct {
	Items []favorites.Item `json:"items"`
}

func cartKey(userID string) string      { return "cart:" + userID }
func favoritesKey(userID string) string { return "favorites:" + userID }

// Start opens a new session for the user, hydrating cart and favorites
// from the store. Missing or unreadable snapshots start the session
// empty rather than failing the login.
func (m *Manager) Start(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	s := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Cart:      cart.New(m.cartOpts),
		Favorites: favorites.NewSet(),
	}
	m.hydrate(ctx, s)

	m.mu.Lock()
	m.active[s.ID] = s
	m.mu.Unlock()

	ctx = m.logg.WithSessionID(m.logg.WithUserID(ctx, userID), s.ID)
	m.logg.Info(ctx, "session started")
	return s, nil
}

// Resolve returns the live session for the id. When the instance has
// restarted since the token was minted, the session is rebuilt from the
// persisted user state under the same id.
func (m *Manager) Resolve(ctx context.Context, sessionID, userID string) (*Session, error) {
	if sessionID == "" || userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session is not established")
	}

	m.mu.RLock()
	_, loggedOut := m.ended[sessionID]
	s, ok := m.active[sessionID]
	m.mu.RUnlock()
	if loggedOut {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session has ended")
	}
	if ok {
		if s.UserID != userID {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session does not belong to user")
		}
		return s, nil
	}

	s = &Session{
		ID:        sessionID,
		UserID:    userID,
		Cart:      cart.New(m.cartOpts),
		Favorites: favorites.NewSet(),
	}
	m.hydrate(ctx, s)

	m.mu.Lock()
	if _, loggedOut := m.ended[sessionID]; loggedOut {
		m.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session has ended")
	}
	if existing, ok := m.active[sessionID]; ok {
		m.mu.Unlock()
		return existing, nil
	}
	m.active[sessionID] = s
	m.mu.Unlock()
	return s, nil
}

// End persists the session state, drops it from the active set, and
// tombstones the id so the token cannot be replayed for its remaining
// lifetime on this instance.
func (m *Manager) End(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	s, ok := m.active[sessionID]
	delete(m.active, sessionID)
	m.ended[sessionID] = struct{}{}
	m.mu.Unlock()
	if !ok {
		return nil
	}

	s.Lock()
	defer s.Unlock()
	if err := m.persistCartLocked(ctx, s); err != nil {
		return err
	}
	if err := m.persistFavoritesLocked(ctx, s); err != nil {
		return err
	}

	m.logg.Info(m.logg.WithSessionID(ctx, sessionID), "session ended")
	return nil
}

// PersistCart checkpoints the session's cart. Callers must hold the
// session lock.
func (m *Manager) PersistCart(ctx context.Context, s *Session) error {
	return m.persistCartLocked(ctx, s)
}

// PersistFavorites checkpoints the session's favorites. Callers must
// hold the session lock.
func (m *Manager) PersistFavorites(ctx context.Context, s *Session) error {
	return m.persistFavoritesLocked(ctx, s)
}

func (m *Manager) persistCartLocked(ctx context.Context, s *Session) error {
	payload, err := json.Marshal(cartState{Lines: s.Cart.Lines()})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart state")
	}
	if err := m.store.Set(ctx, cartKey(s.UserID), payload); err != nil {
		m.metrics.IncPersistFailure("cart")
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart state")
	}
	m.metrics.SetCartLines(s.Cart.Len())
	return nil
}

func (m *Manager) persistFavoritesLocked(ctx context.Context, s *Session) error {
	payload, err := json.Marshal(favoritesState{Items: s.Favorites.List()})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode favorites state")
	}
	if err := m.store.Set(ctx, favoritesKey(s.UserID), payload); err != nil {
		m.metrics.IncPersistFailure("favorites")
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist favorites state")
	}
	return nil
}

func (m *Manager) hydrate(ctx context.Context, s *Session) {
	ctx = m.logg.WithUserID(ctx, s.UserID)

	if raw, err := m.store.Get(ctx, cartKey(s.UserID)); err == nil {
		var state cartState
		if err := json.Unmarshal(raw, &state); err != nil {
			m.logg.Warn(m.logg.WithField(ctx, "error", err.Error()), "discarding unreadable cart snapshot")
		} else {
			s.Cart.Restore(state.Lines)
		}
	} else if !errors.Is(err, kv.ErrNotFound) {
		m.logg.Error(ctx, "load cart snapshot", err)
	}

	if raw, err := m.store.Get(ctx, favoritesKey(s.UserID)); err == nil {
		var state favoritesState
		if err := json.Unmarshal(raw, &state); err != nil {
			m.logg.Warn(m.logg.WithField(ctx, "error", err.Error()), "discarding unreadable favorites snapshot")
		} else {
			s.Favorites.Restore(state.Items)
		}
	} else if !errors.Is(err, kv.ErrNotFound) {
		m.logg.Error(ctx, "load favorites snapshot", err)
	}
}
