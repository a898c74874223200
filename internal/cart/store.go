package cart

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"
)

// notificationTTL is how long the transient "added to cart" notice stays
// visible before auto-dismissing.
const notificationTTL = 3 * time.Second

// Store holds one session's cart.  All mutations persist the new state to
// session storage best-effort; storage failures are logged and swallowed
// because the in-memory entries remain authoritative for the session.
// Store is safe for concurrent use: unlike a browser's single event loop,
// HTTP handlers can race on the same session.
type Store struct {
	mu          sync.Mutex
	sessionID   string
	entries     []Entry
	storage     Storage
	notifyEntry *Entry    // entry behind the current "added" notice, nil when none
	notifyUntil time.Time // when the notice auto-dismisses
	now         func() time.Time
}

// newStore builds a store and rehydrates it once from session storage.
func newStore(ctx context.Context, sessionID string, storage Storage) *Store {
	st := &Store{sessionID: sessionID, storage: storage, now: time.Now}
	st.rehydrate(ctx)
	return st
}

// rehydrate loads the persisted entries, tolerating every failure: a
// broken payload or an unreachable backend just means starting empty.
func (st *Store) rehydrate(ctx context.Context) {
	if st.storage == nil {
		return
	}
	bs, err := st.storage.Load(ctx, st.sessionID)
	if err != nil {
		log.Printf("cart: load for session %s failed: %v", st.sessionID, err)
		return
	}
	if len(bs) == 0 {
		return
	}
	var entries []Entry
	if err := json.Unmarshal(bs, &entries); err != nil {
		log.Printf("cart: corrupt persisted cart for session %s: %v", st.sessionID, err)
		return
	}
	st.entries = entries
}

// persist mirrors the current entries to session storage, best-effort.
// Callers must hold st.mu.
func (st *Store) persist(ctx context.Context) {
	if st.storage == nil {
		return
	}
	if len(st.entries) == 0 {
		if err := st.storage.Delete(ctx, st.sessionID); err != nil {
			log.Printf("cart: delete for session %s failed: %v", st.sessionID, err)
		}
		return
	}
	bs, err := json.Marshal(st.entries)
	if err != nil {
		log.Printf("cart: marshal for session %s failed: %v", st.sessionID, err)
		return
	}
	if err := st.storage.Save(ctx, st.sessionID, bs); err != nil {
		log.Printf("cart: save for session %s failed: %v", st.sessionID, err)
	}
}

// Add appends an entry unless its activity is already present.  A fresh
// add arms the 3-second "added" notice; a duplicate add is a complete
// no-op and does not restart an already-running notice.  Returns whether
// the entry was added.
func (st *Store) Add(ctx context.Context, e Entry) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, have := range st.entries {
		if have.ActivityID == e.ActivityID {
			return false
		}
	}
	st.entries = append(st.entries, e)
	added := e
	st.notifyEntry = &added
	st.notifyUntil = st.now().Add(notificationTTL)
	st.persist(ctx)
	return true
}

// Remove filters out the entry with the given activity id.  Removing an
// absent id is not an error.
func (st *Store) Remove(ctx context.Context, activityID uint64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	kept := st.entries[:0]
	for _, e := range st.entries {
		if e.ActivityID != activityID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(st.entries) {
		return
	}
	st.entries = kept
	st.persist(ctx)
}

// Clear empties the cart and its persisted copy.
func (st *Store) Clear(ctx context.Context) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.entries = nil
	st.persist(ctx)
}

// Contains reports whether an activity is already in the cart.  Browsing
// pages use this to disable duplicate "add" buttons.
func (st *Store) Contains(activityID uint64) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, e := range st.entries {
		if e.ActivityID == activityID {
			return true
		}
	}
	return false
}

// Entries returns a copy of the cart in insertion order.
func (st *Store) Entries() []Entry {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]Entry, len(st.entries))
	copy(out, st.entries)
	return out
}

// Len returns the number of entries.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.entries)
}

// Notification returns the entry behind the active "added" notice, if the
// 3-second window is still open.
func (st *Store) Notification() (Entry, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.notifyEntry == nil || !st.now().Before(st.notifyUntil) {
		return Entry{}, false
	}
	return *st.notifyEntry, true
}

// Navigate tells the cart where the visitor just went.  Paths outside the
// browsing allow-list clear the cart immediately.
func (st *Store) Navigate(ctx context.Context, path string) {
	if pathAllowed(path) {
		return
	}
	st.Clear(ctx)
}

// Manager hands out per-session stores, rehydrating each session from
// storage the first time it is seen and keeping it in memory afterwards.
type Manager struct {
	mu      sync.Mutex
	storage Storage
	stores  map[string]*Store
}

// NewManager builds a manager over the given session storage.  A nil
// storage is allowed and simply disables persistence.
func NewManager(storage Storage) *Manager {
	return &Manager{storage: storage, stores: make(map[string]*Store)}
}

// Get returns the store for a session, creating and rehydrating it on
// first access.
func (m *Manager) Get(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.stores[sessionID]; ok {
		return st
	}
	st := newStore(ctx, sessionID, m.storage)
	m.stores[sessionID] = st
	return st
}

// Drop forgets a session's in-memory store and its persisted copy.  Used
// after submission reconciliation and by session expiry.
func (m *Manager) Drop(ctx context.Context, sessionID string) {
	m.mu.Lock()
	st, ok := m.stores[sessionID]
	delete(m.stores, sessionID)
	m.mu.Unlock()
	if ok {
		st.Clear(ctx)
	} else if m.storage != nil {
		if err := m.storage.Delete(ctx, sessionID); err != nil {
			log.Printf("cart: delete for session %s failed: %v", sessionID, err)
		}
	}
}
