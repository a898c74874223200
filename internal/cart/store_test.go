package cart

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStorage is an in-memory Storage for tests, optionally failing writes.
type memStorage struct {
	data     map[string][]byte
	failSave bool
}

func newMemStorage() *memStorage {
	return &memStorage{data: make(map[string][]byte)}
}

func (m *memStorage) Load(_ context.Context, sessionID string) ([]byte, error) {
	return m.data[sessionID], nil
}

func (m *memStorage) Save(_ context.Context, sessionID string, data []byte) error {
	if m.failSave {
		return errors.New("storage down")
	}
	m.data[sessionID] = data
	return nil
}

func (m *memStorage) Delete(_ context.Context, sessionID string) error {
	delete(m.data, sessionID)
	return nil
}

func entry(id uint64) Entry {
	return Entry{ActivityID: id, Name: "Activity", DestinationID: 1}
}

func TestAddRemoveAndOrder(t *testing.T) {
	ctx := context.Background()
	st := newStore(ctx, "s1", nil)

	require.True(t, st.Add(ctx, entry(1)))
	require.True(t, st.Add(ctx, entry(2)))
	require.True(t, st.Add(ctx, entry(3)))
	assert.Equal(t, 3, st.Len())
	assert.True(t, st.Contains(2))

	st.Remove(ctx, 2)
	es := st.Entries()
	require.Len(t, es, 2)
	assert.EqualValues(t, 1, es[0].ActivityID, "insertion order survives removal")
	assert.EqualValues(t, 3, es[1].ActivityID)

	// Removing an absent id is a quiet no-op.
	st.Remove(ctx, 99)
	assert.Equal(t, 2, st.Len())
}

func TestDuplicateAddSuppressed(t *testing.T) {
	ctx := context.Background()
	st := newStore(ctx, "s1", nil)
	clock := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return clock }

	require.True(t, st.Add(ctx, entry(1)))
	n, ok := st.Notification()
	require.True(t, ok)
	assert.EqualValues(t, 1, n.ActivityID)

	// Let most of the notice window pass, then add the same activity again.
	clock = clock.Add(2 * time.Second)
	assert.False(t, st.Add(ctx, entry(1)))
	assert.Equal(t, 1, st.Len())

	// The duplicate did not restart the window: it closes on the original
	// schedule.
	clock = clock.Add(1500 * time.Millisecond)
	_, ok = st.Notification()
	assert.False(t, ok)
}

func TestNotificationWindow(t *testing.T) {
	ctx := context.Background()
	st := newStore(ctx, "s1", nil)
	clock := time.Date(2026, time.May, 1, 10, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return clock }

	_, ok := st.Notification()
	assert.False(t, ok, "no notice before the first add")

	st.Add(ctx, entry(1))
	clock = clock.Add(2999 * time.Millisecond)
	_, ok = st.Notification()
	assert.True(t, ok)

	clock = clock.Add(1 * time.Millisecond)
	_, ok = st.Notification()
	assert.False(t, ok, "the notice dismisses exactly at the window end")

	// A different activity arms a fresh notice.
	st.Add(ctx, entry(2))
	n, ok := st.Notification()
	require.True(t, ok)
	assert.EqualValues(t, 2, n.ActivityID)
}

func TestNavigateScoping(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	st := newStore(ctx, "s1", storage)
	st.Add(ctx, entry(1))

	// Browsing pages keep the cart.
	st.Navigate(ctx, "/destinations/5")
	st.Navigate(ctx, "/activities/9")
	st.Navigate(ctx, "/checkout")
	assert.Equal(t, 1, st.Len())

	// Anywhere else clears it, including the persisted copy.
	st.Navigate(ctx, "/about")
	assert.Zero(t, st.Len())
	assert.Empty(t, storage.data["s1"])
}

func TestRehydrateFromStorage(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	saved, err := json.Marshal([]Entry{entry(7), entry(8)})
	require.NoError(t, err)
	storage.data["s1"] = saved

	st := NewManager(storage).Get(ctx, "s1")
	assert.Equal(t, 2, st.Len())
	assert.True(t, st.Contains(7))
}

func TestRehydrateToleratesCorruptPayload(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	storage.data["s1"] = []byte("{not json")

	st := NewManager(storage).Get(ctx, "s1")
	assert.Zero(t, st.Len(), "a corrupt payload just means an empty cart")
}

func TestPersistFailureSwallowed(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	storage.failSave = true

	st := newStore(ctx, "s1", storage)
	assert.True(t, st.Add(ctx, entry(1)), "a storage failure never fails the add")
	assert.Equal(t, 1, st.Len())
}

func TestManagerReturnsSameStore(t *testing.T) {
	ctx := context.Background()
	m := NewManager(nil)
	a := m.Get(ctx, "s1")
	b := m.Get(ctx, "s1")
	assert.Same(t, a, b)
	assert.NotSame(t, a, m.Get(ctx, "s2"))
}

func TestManagerDropClearsPersistedCopy(t *testing.T) {
	ctx := context.Background()
	storage := newMemStorage()
	m := NewManager(storage)

	st := m.Get(ctx, "s1")
	st.Add(ctx, entry(1))
	require.NotEmpty(t, storage.data["s1"])

	m.Drop(ctx, "s1")
	assert.Empty(t, storage.data["s1"])

	// Dropping a session never seen in memory still clears storage.
	storage.data["s2"] = []byte(`[{"activity_id":9}]`)
	m.Drop(ctx, "s2")
	assert.Empty(t, storage.data["s2"])
}
