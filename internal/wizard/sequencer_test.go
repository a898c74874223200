package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSequencer pins the clock to testNow so date validation behaves
// the same regardless of when the suite runs.
func newTestSequencer(rec *AnswerRecord, opts OptionSets) *Sequencer {
	q := NewSequencer(rec, opts)
	q.now = func() time.Time { return testNow }
	return q
}

func TestAdvanceGatedByValidation(t *testing.T) {
	rec := NewAnswerRecord("")
	q := newTestSequencer(rec, testOptions())

	require.Equal(t, StepOrigin, q.Current())
	assert.False(t, q.Advance(), "advance must refuse while the origin is unanswered")
	assert.Equal(t, 0, q.CurrentIndex())

	rec.Origin = sp("Atlantis") // not in the origin option set
	assert.False(t, q.Advance())

	rec.Origin = sp("Mumbai, India")
	require.True(t, q.Advance())
	assert.Equal(t, StepDestination, q.Current(), "no seed, so destination follows origin directly")
	assert.Equal(t, 1, q.CurrentIndex())
}

func TestRetreatIsUnconditionalAndClamped(t *testing.T) {
	rec := validRecord()
	q := newTestSequencer(rec, testOptions())

	assert.False(t, q.Retreat(), "cannot retreat from the first step")

	require.True(t, q.Advance())
	require.True(t, q.Advance())
	// Invalidate the answer behind us; retreat must still work.
	rec.Origin = nil
	assert.True(t, q.Retreat())
	assert.True(t, q.Retreat())
	assert.Equal(t, 0, q.CurrentIndex())
	assert.False(t, q.Retreat())
}

func TestMaxVisitedNeverDecreases(t *testing.T) {
	rec := validRecord()
	q := newTestSequencer(rec, testOptions())

	for i := 0; i < 4; i++ {
		require.True(t, q.Advance())
	}
	require.Equal(t, 4, q.MaxVisitedIndex())

	q.Retreat()
	q.Retreat()
	assert.Equal(t, 2, q.CurrentIndex())
	assert.Equal(t, 4, q.MaxVisitedIndex(), "retreating must not lower the high-water mark")

	// Jumping is allowed anywhere up to the high-water mark, no further.
	assert.True(t, q.JumpTo(4))
	assert.Equal(t, 4, q.CurrentIndex())
	assert.True(t, q.JumpTo(0))
	assert.False(t, q.JumpTo(5), "jumping ahead of the high-water mark is refused")
	assert.Equal(t, 0, q.CurrentIndex())
	assert.False(t, q.JumpTo(-1))
	assert.False(t, q.JumpTo(999))
	assert.Equal(t, 4, q.MaxVisitedIndex())
}

func TestSeedStepOnlyPresentWhileSeeded(t *testing.T) {
	seeded := NewAnswerRecord("Dubai, UAE")
	plain := NewAnswerRecord("")

	withSeed := effectiveSteps(seeded)
	without := effectiveSteps(plain)
	assert.Len(t, withSeed, len(without)+1)
	assert.Equal(t, StepDestinationSeed, withSeed[1])
	assert.NotContains(t, without, StepDestinationSeed)
}

func TestResolveSeedKeep(t *testing.T) {
	rec := NewAnswerRecord("Dubai, UAE")
	rec.Origin = sp("Mumbai, India")
	q := newTestSequencer(rec, testOptions())

	require.True(t, q.Advance())
	require.Equal(t, StepDestinationSeed, q.Current())

	require.True(t, q.ResolveSeed(true))
	assert.Equal(t, "Dubai, UAE", *rec.Destination, "keeping copies the seed into the destination")
	assert.Equal(t, StepDestination, q.Current(), "wizard lands one step forward, on destination-select")
	assert.NotNil(t, rec.SeededDestination, "keeping retains the seed step in the list")
	assert.True(t, rec.SeedResolved)
}

func TestResolveSeedChange(t *testing.T) {
	rec := NewAnswerRecord("Dubai, UAE")
	rec.Origin = sp("Mumbai, India")
	q := newTestSequencer(rec, testOptions())

	require.True(t, q.Advance())
	require.Equal(t, StepDestinationSeed, q.Current())
	before := len(q.Steps())

	require.True(t, q.ResolveSeed(false))
	assert.Nil(t, rec.SeededDestination)
	assert.Nil(t, rec.Destination, "changing discards the referred destination")
	assert.Len(t, q.Steps(), before-1, "the seed step disappears from the list")
	assert.Equal(t, StepDestination, q.Current(), "same index now holds destination-select")
	assert.Equal(t, q.CurrentIndex(), q.MaxVisitedIndex())
}

func TestResolveSeedIsOneShot(t *testing.T) {
	rec := NewAnswerRecord("Dubai, UAE")
	rec.Origin = sp("Mumbai, India")
	q := newTestSequencer(rec, testOptions())

	require.True(t, q.Advance())
	require.True(t, q.ResolveSeed(true))

	// A repeated resolve finds the wizard past the seed step and does nothing.
	cur := q.CurrentIndex()
	dest := *rec.Destination
	assert.False(t, q.ResolveSeed(false))
	assert.Equal(t, cur, q.CurrentIndex())
	assert.Equal(t, dest, *rec.Destination)
}

func TestResolveSeedOffStepIsNoOp(t *testing.T) {
	rec := NewAnswerRecord("")
	q := newTestSequencer(rec, testOptions())
	assert.False(t, q.ResolveSeed(true), "no seed step exists without a seed")
}

func TestAdvanceStopsAtSummary(t *testing.T) {
	rec := validRecord()
	q := newTestSequencer(rec, testOptions())

	steps := q.Steps()
	for i := 0; i < len(steps)-1; i++ {
		require.True(t, q.Advance(), "step %s should validate", steps[i])
	}
	assert.Equal(t, StepSummary, q.Current())
	assert.False(t, q.Advance(), "there is nothing after the summary")
}
