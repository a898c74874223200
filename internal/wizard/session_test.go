package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefillFillsOrigin(t *testing.T) {
	sess := NewSessionManager().Create("", testOptions())
	require.True(t, sess.Prefill(19.0760, 72.8777, true))
	assert.Equal(t, "Mumbai, India", *sess.seq.Record().Origin)
}

func TestPrefillIsOneShot(t *testing.T) {
	sess := NewSessionManager().Create("", testOptions())

	// A denied location still consumes the single attempt.
	assert.False(t, sess.Prefill(0, 0, false))
	assert.False(t, sess.Prefill(19.0760, 72.8777, true))
	assert.Nil(t, sess.seq.Record().Origin)
}

func TestPrefillFarFromEveryCity(t *testing.T) {
	sess := NewSessionManager().Create("", testOptions())
	assert.False(t, sess.Prefill(0, 0, true))
	assert.Nil(t, sess.seq.Record().Origin)
	// Attempt spent, even on a miss.
	assert.False(t, sess.Prefill(19.0760, 72.8777, true))
}

func TestPrefillNeverOverwrites(t *testing.T) {
	sess := NewSessionManager().Create("", testOptions())
	sess.ApplyPatch(AnswerPatch{Origin: sp("Delhi, India")})
	assert.False(t, sess.Prefill(19.0760, 72.8777, true))
	assert.Equal(t, "Delhi, India", *sess.seq.Record().Origin)
}

func TestPrefillOnlyOnOriginStep(t *testing.T) {
	sess := NewSessionManager().Create("", testOptions())
	sess.seq.now = func() time.Time { return testNow }
	sess.ApplyPatch(AnswerPatch{Origin: sp("Mumbai, India")})
	require.True(t, sess.Advance())

	assert.False(t, sess.Prefill(28.7041, 77.1025, true))
	assert.Equal(t, "Mumbai, India", *sess.seq.Record().Origin)
}

func TestPurgeIdle(t *testing.T) {
	m := NewSessionManager()
	stale := m.Create("", testOptions())
	fresh := m.Create("", testOptions())

	stale.mu.Lock()
	stale.lastActive = time.Now().Add(-2 * time.Hour)
	stale.mu.Unlock()

	assert.Equal(t, 1, m.PurgeIdle(time.Hour))

	_, ok := m.Get(stale.ID())
	assert.False(t, ok)
	_, ok = m.Get(fresh.ID())
	assert.True(t, ok)
}
