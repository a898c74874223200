package wizard

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// SubmissionStatus tracks one wizard session's submission state machine:
// idle -> saving -> {saved | error}.  saved is terminal; error is terminal
// for the attempt but the visitor may re-submit from the summary step.
type SubmissionStatus string

const (
	StatusIdle   SubmissionStatus = "idle"
	StatusSaving SubmissionStatus = "saving"
	StatusSaved  SubmissionStatus = "saved"
	StatusError  SubmissionStatus = "error"
)

// Session is one visitor's wizard: the sequencer with its answer record,
// the one-shot geolocation flag, and the submission status.  The browser
// original ran on a single event loop; here concurrent HTTP requests can
// hit the same session, so a mutex serializes them instead.
type Session struct {
	mu            sync.Mutex
	id            string
	seq           *Sequencer
	geoAttempted  bool // origin prefill fired (or failed) already
	status        SubmissionStatus
	tripRequestID uint64 // set once status reaches saved
	lastActive    time.Time
}

// View is a read-only snapshot handed to the HTTP layer.
type View struct {
	SessionID       string           `json:"session_id"`
	Step            Step             `json:"step"`
	StepIndex       int              `json:"step_index"`
	MaxVisitedIndex int              `json:"max_visited_index"`
	Steps           []Step           `json:"steps"`
	CanAdvance      bool             `json:"can_advance"`
	Complete        bool             `json:"complete"`
	Status          SubmissionStatus `json:"status"`
	TripRequestID   uint64           `json:"trip_request_id,omitempty"`
	Record          *AnswerRecord    `json:"answers"`
}

// ID returns the opaque session identifier.
func (s *Session) ID() string { return s.id }

// Snapshot captures the session state for a response body.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.seq.now()
	rec := s.seq.Record()
	cp := *rec // shallow copy; pointer fields are never mutated in place
	return View{
		SessionID:       s.id,
		Step:            s.seq.Current(),
		StepIndex:       s.seq.CurrentIndex(),
		MaxVisitedIndex: s.seq.MaxVisitedIndex(),
		Steps:           s.seq.Steps(),
		CanAdvance:      StepValid(s.seq.Current(), rec, s.seq.opts, now),
		Complete:        Complete(rec, s.seq.opts, now),
		Status:          s.status,
		TripRequestID:   s.tripRequestID,
		Record:          &cp,
	}
}

// ApplyPatch merges a partial answer update into the record.
func (s *Session) ApplyPatch(p AnswerPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.seq.Record().Apply(p)
}

// Advance moves forward when the current step validates.
func (s *Session) Advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.seq.Advance()
}

// Retreat moves back one step.
func (s *Session) Retreat() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.seq.Retreat()
}

// JumpTo moves to an already-visited position.
func (s *Session) JumpTo(target int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.seq.JumpTo(target)
}

// ResolveSeed answers the seed-confirmation step.
func (s *Session) ResolveSeed(keep bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.seq.ResolveSeed(keep)
}

// Prefill runs the one-shot geolocation origin prefill.  The first call
// consumes the attempt whatever happens; later calls are no-ops.  A
// prefill only lands when the visitor is on the origin step, the origin is
// still empty, and the coordinate matches a city within the threshold —
// every failure mode collapses silently into "no prefill".  located=false
// reports a denied/unavailable/timed-out platform location service.
func (s *Session) Prefill(lat, lng float64, located bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.geoAttempted {
		return false
	}
	s.geoAttempted = true
	if !located {
		return false
	}
	if s.seq.Current() != StepOrigin {
		return false
	}
	rec := s.seq.Record()
	if rec.Origin != nil {
		return false
	}
	name, ok := MatchOriginCity(lat, lng)
	if !ok {
		return false
	}
	rec.Origin = &name
	return true
}

// Status returns the submission status and, once saved, the lead id.
func (s *Session) Status() (SubmissionStatus, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.tripRequestID
}

// touch refreshes the idle timer.  Callers must hold s.mu.
func (s *Session) touch() { s.lastActive = time.Now() }

// SessionManager owns the live wizard sessions, keyed by opaque id.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionManager builds an empty manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session)}
}

// Create starts a new wizard session.  A non-empty seed label arms the
// conditional destination-seed step.
func (m *SessionManager) Create(seed string, opts OptionSets) *Session {
	s := &Session{
		id:         newSessionID(),
		seq:        NewSequencer(NewAnswerRecord(seed), opts),
		status:     StatusIdle,
		lastActive: time.Now(),
	}
	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	return s
}

// Get looks a session up by id.
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Drop forgets a session, e.g. after a successful submission redirect.
func (m *SessionManager) Drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// PurgeIdle removes sessions idle longer than maxIdle and reports how many
// were dropped.  Run it periodically; abandoned wizards otherwise pile up
// for the life of the process.
func (m *SessionManager) PurgeIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastActive.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// newSessionID returns a 32-hex-char random identifier.
func newSessionID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
