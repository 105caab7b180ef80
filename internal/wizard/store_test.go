package wizard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"timelessme/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	s := NewStore(ttl, Deps{Transformer: &fakeTransformer{result: generated()}, Now: clock.Now})
	t.Cleanup(s.Close)
	return s, clock
}

func TestStoreGetRefreshesExpiry(t *testing.T) {
	s, clock := newTestStore(t, time.Hour)
	ctrl := s.Create()

	clock.Advance(50 * time.Minute)
	got, err := s.Get(ctrl.ID())
	require.NoError(t, err)
	require.Same(t, ctrl, got)

	clock.Advance(50 * time.Minute)
	_, err = s.Get(ctrl.ID())
	require.NoError(t, err)
}

func TestStoreExpiredSessionIsClosed(t *testing.T) {
	s, clock := newTestStore(t, time.Hour)
	ctrl := s.Create()
	_, err := ctrl.ChooseFile(source())
	require.NoError(t, err)
	require.Equal(t, 1, s.Refs().Live())

	clock.Advance(61 * time.Minute)
	_, err = s.Get(ctrl.ID())
	require.ErrorIs(t, err, ErrSessionExpired)
	require.Zero(t, s.Refs().Live())
	require.Zero(t, s.Count())

	_, err = s.Get(ctrl.ID())
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStoreCleanup(t *testing.T) {
	s, clock := newTestStore(t, time.Hour)
	old := s.Create()
	_, err := old.ChooseFile(source())
	require.NoError(t, err)

	clock.Advance(45 * time.Minute)
	fresh := s.Create()

	clock.Advance(30 * time.Minute)
	require.Equal(t, 1, s.Cleanup())
	require.Equal(t, 1, s.Count())
	require.Zero(t, s.Refs().Live())

	_, err = s.Get(fresh.ID())
	require.NoError(t, err)
	_, err = old.ChooseDecade(domain.Decade1980s)
	require.ErrorIs(t, err, ErrClosed)
}

func TestStoreGetOrCreate(t *testing.T) {
	s, _ := newTestStore(t, time.Hour)

	first, created := s.GetOrCreate("")
	require.True(t, created)

	again, created := s.GetOrCreate(first.ID())
	require.False(t, created)
	require.Same(t, first, again)

	other, created := s.GetOrCreate("does-not-exist")
	require.True(t, created)
	require.NotEqual(t, first.ID(), other.ID())
}

func TestStoreCloseWaitsForGenerations(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	tr := &fakeTransformer{gate: make(chan struct{})}
	s := NewStore(time.Hour, Deps{Transformer: tr, Now: clock.Now})
	s.StartCleanupTicker(context.Background(), time.Millisecond)

	ctrl := s.Create()
	_, err := ctrl.ChooseFile(source())
	require.NoError(t, err)
	_, err = ctrl.ChooseDecade(domain.Decade1950s)
	require.NoError(t, err)

	s.Close()
	require.Zero(t, s.Count())
	require.Zero(t, s.Refs().Live())
	require.Equal(t, Initial, ctrl.Snapshot().State)
}

func TestStoreDelete(t *testing.T) {
	s, _ := newTestStore(t, time.Hour)
	ctrl := s.Create()
	s.Delete(ctrl.ID())
	s.Delete(ctrl.ID())

	_, err := s.Get(ctrl.ID())
	require.ErrorIs(t, err, ErrSessionNotFound)
}
