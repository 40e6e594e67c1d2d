package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/voice-dataset/internal/domain/entities"
)

// memorySnapshots is a minimal SessionStore for manager tests
type memorySnapshots struct {
	mu      sync.Mutex
	items   map[string]entities.SessionSnapshot
	err     error
	saves   int
	touches int
}

func newSnapshots() *memorySnapshots {
	return &memorySnapshots{items: make(map[string]entities.SessionSnapshot)}
}

func (m *memorySnapshots) Save(_ context.Context, snap *entities.SessionSnapshot, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.items[snap.ID] = *snap
	return nil
}

func (m *memorySnapshots) Touch(_ context.Context, id string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.items[id]; !ok {
		return entities.ErrSnapshotNotFound
	}
	m.touches++
	return nil
}

func (m *memorySnapshots) counts() (saves, touches int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves, m.touches
}

func (m *memorySnapshots) Load(_ context.Context, id string) (*entities.SessionSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.items[id]
	if !ok {
		return nil, entities.ErrSnapshotNotFound
	}
	return &snap, nil
}

func (m *memorySnapshots) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

func newManager(f *fixture, snaps *memorySnapshots) *Manager {
	return NewManager(f.deps(), snaps, time.Hour, nil)
}

func TestManager_CreateAndDo(t *testing.T) {
	f := newFixture(3)
	snaps := newSnapshots()
	m := newManager(f, snaps)
	ctx := context.Background()

	st, err := m.Create(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "ann", st.Contributor)
	assert.NotEmpty(t, st.SessionID)

	err = m.Do(ctx, st.SessionID, func(c *Controller) error {
		return c.StartCapture(ctx)
	})
	require.NoError(t, err)

	snap, err := snaps.Load(ctx, st.SessionID)
	require.NoError(t, err)
	assert.Equal(t, entities.CaptureStateCapturing, snap.CaptureState)
}

func TestManager_UnknownSession(t *testing.T) {
	f := newFixture(3)
	m := newManager(f, newSnapshots())

	err := m.Do(context.Background(), "missing", func(*Controller) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, m.Close(context.Background(), "missing"), ErrSessionNotFound)
}

func TestManager_CreateInvalidContributor(t *testing.T) {
	f := newFixture(3)
	m := newManager(f, newSnapshots())

	_, err := m.Create(context.Background(), "zed")
	assert.ErrorIs(t, err, ErrInvalidContributor)
}

func TestManager_RestoresFromSnapshot(t *testing.T) {
	f := newFixture(3)
	snaps := newSnapshots()
	ctx := context.Background()

	first := newManager(f, snaps)
	st, err := first.Create(ctx, "bob")
	require.NoError(t, err)
	require.NoError(t, first.Do(ctx, st.SessionID, func(c *Controller) error {
		if err := c.StartCapture(ctx); err != nil {
			return err
		}
		return c.StopCapture(ctx)
	}))

	// A second manager shares only the snapshot store
	second := newManager(f, snaps)
	restored, err := second.Status(ctx, st.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "bob", restored.Contributor)
	assert.Equal(t, entities.CaptureStateCapturedUnsaved, restored.State)
	assert.True(t, restored.HasPending)

	require.NoError(t, second.Do(ctx, st.SessionID, func(c *Controller) error {
		return c.Save(ctx, true)
	}))
	after, err := second.Status(ctx, st.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.CompletedCount)
	assert.Equal(t, 1, after.SentenceIndex)
}

func TestManager_PersistsAfterFailedOperation(t *testing.T) {
	f := newFixture(3)
	snaps := newSnapshots()
	m := newManager(f, snaps)
	ctx := context.Background()

	st, err := m.Create(ctx, "ann")
	require.NoError(t, err)
	require.NoError(t, m.Do(ctx, st.SessionID, func(c *Controller) error { return c.StartCapture(ctx) }))

	f.input.next.blob = Blob{}
	err = m.Do(ctx, st.SessionID, func(c *Controller) error { return c.StopCapture(ctx) })
	assert.ErrorIs(t, err, ErrEmptyCapture)

	snap, err := snaps.Load(ctx, st.SessionID)
	require.NoError(t, err)
	assert.Equal(t, entities.CaptureStateIdle, snap.CaptureState)
}

func TestManager_SnapshotFailureDoesNotFailOperation(t *testing.T) {
	f := newFixture(3)
	snaps := newSnapshots()
	m := newManager(f, snaps)
	ctx := context.Background()

	st, err := m.Create(ctx, "ann")
	require.NoError(t, err)

	snaps.err = errors.New("redis down")
	_, err = m.Status(ctx, st.SessionID)
	assert.NoError(t, err)
}

func TestManager_Close(t *testing.T) {
	f := newFixture(3)
	snaps := newSnapshots()
	m := newManager(f, snaps)
	ctx := context.Background()

	st, err := m.Create(ctx, "ann")
	require.NoError(t, err)
	require.NoError(t, m.Do(ctx, st.SessionID, func(c *Controller) error { return c.StartCapture(ctx) }))

	require.NoError(t, m.Close(ctx, st.SessionID))
	assert.True(t, f.input.next.cancelled)

	_, err = m.Status(ctx, st.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_SerialisesOperations(t *testing.T) {
	f := newFixture(50)
	m := newManager(f, newSnapshots())
	ctx := context.Background()

	st, err := m.Create(ctx, "ann")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Do(ctx, st.SessionID, func(c *Controller) error {
				_, err := c.Advance(Next)
				return err
			})
		}()
	}
	wg.Wait()

	final, err := m.Status(ctx, st.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 20, final.SentenceIndex)
}

func TestManager_EvictsIdleSessions(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	f := newFixture(3)
	deps := f.deps()
	deps.Now = func() time.Time { return now }
	snaps := newSnapshots()
	m := NewManager(deps, snaps, time.Minute, nil)
	ctx := context.Background()

	old, err := m.Create(ctx, "ann")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = m.Create(ctx, "bob")
	require.NoError(t, err)

	m.mu.Lock()
	_, resident := m.sessions[old.SessionID]
	m.mu.Unlock()
	assert.False(t, resident)

	// The evicted session comes back from its snapshot
	st, err := m.Status(ctx, old.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "ann", st.Contributor)
}

func TestManager_StatusOnlyRefreshesSnapshot(t *testing.T) {
	f := newFixture(3)
	snaps := newSnapshots()
	ctx := context.Background()
	m := newManager(f, snaps)

	st, err := m.Create(ctx, "ann")
	require.NoError(t, err)
	require.NoError(t, m.Do(ctx, st.SessionID, func(c *Controller) error {
		if err := c.StartCapture(ctx); err != nil {
			return err
		}
		return c.StopCapture(ctx)
	}))
	saves, _ := snaps.counts()

	for i := 0; i < 3; i++ {
		_, err := m.Status(ctx, st.SessionID)
		require.NoError(t, err)
	}
	afterSaves, touches := snaps.counts()
	assert.Equal(t, saves, afterSaves)
	assert.Equal(t, 3, touches)

	// A snapshot the store dropped is written again from the live controller
	require.NoError(t, snaps.Delete(ctx, st.SessionID))
	_, err = m.Status(ctx, st.SessionID)
	require.NoError(t, err)
	snap, err := snaps.Load(ctx, st.SessionID)
	require.NoError(t, err)
	assert.Equal(t, entities.CaptureStateCapturedUnsaved, snap.CaptureState)
}

func TestManager_DropsInvalidSnapshot(t *testing.T) {
	f := newFixture(3)
	snaps := newSnapshots()
	ctx := context.Background()

	snaps.items["corrupt"] = entities.SessionSnapshot{
		ID:           "corrupt",
		Contributor:  "ann",
		CaptureState: entities.CaptureState("exploded"),
	}

	m := newManager(f, snaps)
	_, err := m.Status(ctx, "corrupt")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, err, entities.ErrInvalidSnapshot)

	_, err = snaps.Load(ctx, "corrupt")
	assert.ErrorIs(t, err, entities.ErrSnapshotNotFound)
}
