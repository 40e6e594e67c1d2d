package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
	"github.com/johnquangdev/voice-dataset/internal/domain/repositories"
)

// Manager owns the live controllers. Every operation on one session runs
// under that session's lock, and the session is snapshotted afterwards so
// it can be resumed by another process or after eviction.
type Manager struct {
	deps   Dependencies
	store  repositories.SessionStore
	ttl    time.Duration
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	mu       sync.Mutex
	ctrl     *Controller
	lastUsed time.Time
	// detached entries were removed from the map while a caller waited on mu
	detached bool
}

// NewManager creates a session manager
func NewManager(deps Dependencies, store repositories.SessionStore, ttl time.Duration, logger *zap.Logger) *Manager {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	deps.Logger = logger
	return &Manager{
		deps:     deps,
		store:    store,
		ttl:      ttl,
		logger:   logger,
		sessions: make(map[string]*entry),
	}
}

// Create starts a new session for contributor, or for the first contributor when empty
func (m *Manager) Create(ctx context.Context, contributor string) (Status, error) {
	m.evictIdle()

	id := uuid.NewString()
	ctrl := NewController(id, m.deps)
	if err := ctrl.Start(ctx, contributor); err != nil {
		return Status{}, err
	}

	e := &entry{ctrl: ctrl, lastUsed: m.deps.Now()}
	m.mu.Lock()
	m.sessions[id] = e
	m.mu.Unlock()

	m.persist(ctx, ctrl)
	m.logger.Info("session.created",
		zap.String("session_id", id),
		zap.String("contributor", ctrl.contributor),
	)
	return ctrl.Status(), nil
}

// Do runs fn against the session with exclusive access and snapshots the result.
// The snapshot is written even when fn fails, since failed operations still
// move the state machine (a failed save keeps the take, a failed stop drops it).
func (m *Manager) Do(ctx context.Context, id string, fn func(*Controller) error) error {
	return m.do(ctx, id, fn, true)
}

// Status returns the current view of a session. Reading does not change the
// session, so the snapshot only has its ttl refreshed.
func (m *Manager) Status(ctx context.Context, id string) (Status, error) {
	var st Status
	err := m.do(ctx, id, func(c *Controller) error {
		st = c.Status()
		return nil
	}, false)
	return st, err
}

func (m *Manager) do(ctx context.Context, id string, fn func(*Controller) error, write bool) error {
	e := m.lock(id)
	defer e.mu.Unlock()

	if e.ctrl == nil {
		ctrl, err := m.restore(ctx, id)
		if err != nil {
			m.forget(id, e)
			return err
		}
		e.ctrl = ctrl
	}
	e.lastUsed = m.deps.Now()

	err := fn(e.ctrl)
	if write {
		m.persist(ctx, e.ctrl)
	} else {
		m.touch(ctx, e.ctrl)
	}
	return err
}

// Close ends a session and removes its snapshot
func (m *Manager) Close(ctx context.Context, id string) error {
	e := m.lock(id)
	defer e.mu.Unlock()

	if e.ctrl == nil {
		if _, err := m.store.Load(ctx, id); err != nil {
			m.forget(id, e)
			if errors.Is(err, entities.ErrSnapshotNotFound) {
				return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
			}
			return fmt.Errorf("failed to load session: %w", err)
		}
	} else {
		e.ctrl.releaseCapture()
	}

	err := m.store.Delete(ctx, id)
	m.forget(id, e)
	if err != nil {
		return fmt.Errorf("failed to delete session snapshot: %w", err)
	}

	m.logger.Info("session.closed", zap.String("session_id", id))
	return nil
}

// lock returns the session's entry with its mutex held
func (m *Manager) lock(id string) *entry {
	for {
		m.mu.Lock()
		e, ok := m.sessions[id]
		if !ok {
			e = &entry{}
			m.sessions[id] = e
		}
		m.mu.Unlock()

		e.mu.Lock()
		if !e.detached {
			return e
		}
		e.mu.Unlock()
	}
}

// forget removes an entry whose mutex the caller holds
func (m *Manager) forget(id string, e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e.detached = true
	if m.sessions[id] == e {
		delete(m.sessions, id)
	}
}

func (m *Manager) restore(ctx context.Context, id string) (*Controller, error) {
	snap, err := m.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrSnapshotNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	ctrl := NewController(id, m.deps)
	if err := ctrl.Restore(ctx, snap); err != nil {
		if !errors.Is(err, entities.ErrInvalidSnapshot) {
			return nil, err
		}
		// The snapshot can never be resumed, so the session is gone
		m.logger.Warn("session.snapshot.invalid",
			zap.String("session_id", id),
			zap.Error(err),
		)
		if delErr := m.store.Delete(ctx, id); delErr != nil {
			m.logger.Warn("session.snapshot.delete_failed",
				zap.String("session_id", id),
				zap.Error(delErr),
			)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrSessionNotFound, id, err)
	}

	m.logger.Debug("session.restored",
		zap.String("session_id", id),
		zap.String("state", string(ctrl.state)),
	)
	return ctrl, nil
}

func (m *Manager) persist(ctx context.Context, ctrl *Controller) {
	if err := m.store.Save(ctx, ctrl.Snapshot(), m.ttl); err != nil {
		m.logger.Warn("session.snapshot.save_failed",
			zap.String("session_id", ctrl.id),
			zap.Error(err),
		)
	}
}

// touch refreshes the snapshot's ttl, writing it in full when the store lost it
func (m *Manager) touch(ctx context.Context, ctrl *Controller) {
	if m.ttl <= 0 {
		return
	}
	err := m.store.Touch(ctx, ctrl.id, m.ttl)
	if err == nil {
		return
	}
	if errors.Is(err, entities.ErrSnapshotNotFound) {
		m.persist(ctx, ctrl)
		return
	}
	m.logger.Warn("session.snapshot.touch_failed",
		zap.String("session_id", ctrl.id),
		zap.Error(err),
	)
}

// evictIdle drops resident controllers unused for longer than the ttl.
// Their snapshots stay in the store until it expires them.
func (m *Manager) evictIdle() {
	if m.ttl <= 0 {
		return
	}
	cutoff := m.deps.Now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	for id, e := range m.sessions {
		if !e.mu.TryLock() {
			continue
		}
		if e.ctrl != nil && e.lastUsed.Before(cutoff) {
			e.ctrl.releaseCapture()
			e.detached = true
			delete(m.sessions, id)
		}
		e.mu.Unlock()
	}
}
