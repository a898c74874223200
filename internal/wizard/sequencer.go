package wizard

import "time"

// Sequencer owns the visitor's position in the effective step list.  It
// tracks the current index and the furthest index ever visited, and it is
// the only component allowed to move between steps.  Invalid transitions
// are silently rejected: the methods simply leave the state unchanged and
// report false, and the UI surfaces that as a disabled control rather than
// an error message.
//
// Indices always refer to the effective list returned by Steps(), which is
// recomputed on every call because resolving the seed step with "change"
// shrinks the list mid-flow.
type Sequencer struct {
	rec        *AnswerRecord
	opts       OptionSets
	current    int
	maxVisited int
	now        func() time.Time // injectable clock for date validation
}

// NewSequencer starts a wizard at the first step of the effective list.
func NewSequencer(rec *AnswerRecord, opts OptionSets) *Sequencer {
	return &Sequencer{rec: rec, opts: opts, now: time.Now}
}

// Steps returns the current effective step list.
func (q *Sequencer) Steps() []Step {
	return effectiveSteps(q.rec)
}

// Record exposes the answer record the sequencer is driving.
func (q *Sequencer) Record() *AnswerRecord {
	return q.rec
}

// Current returns the step the visitor is looking at.
func (q *Sequencer) Current() Step {
	steps := q.Steps()
	return steps[q.clamp(q.current, steps)]
}

// CurrentIndex returns the current position in the effective list.
func (q *Sequencer) CurrentIndex() int {
	return q.clamp(q.current, q.Steps())
}

// MaxVisitedIndex returns the furthest position the visitor has reached.
// It never decreases over the life of the wizard.
func (q *Sequencer) MaxVisitedIndex() int {
	return q.clamp(q.maxVisited, q.Steps())
}

// Advance moves one step forward if the current step's answers pass
// validation.  The index clamps at the last step; maxVisited is raised to
// match when the new position exceeds it.  Returns whether movement
// happened.
func (q *Sequencer) Advance() bool {
	steps := q.Steps()
	cur := q.clamp(q.current, steps)
	if !StepValid(steps[cur], q.rec, q.opts, q.now()) {
		return false
	}
	if cur >= len(steps)-1 {
		return false
	}
	q.current = cur + 1
	if q.current > q.maxVisited {
		q.maxVisited = q.current
	}
	return true
}

// Retreat moves one step back unconditionally, clamped at the first step.
// maxVisited is untouched so the visitor can jump forward again.
func (q *Sequencer) Retreat() bool {
	cur := q.clamp(q.current, q.Steps())
	if cur == 0 {
		return false
	}
	q.current = cur - 1
	return true
}

// JumpTo moves directly to target, but only to positions already visited
// (target <= maxVisited).  Anything else — skipping ahead via a progress
// indicator, or an out-of-range index — is a no-op.
func (q *Sequencer) JumpTo(target int) bool {
	steps := q.Steps()
	if target < 0 || target >= len(steps) {
		return false
	}
	if target > q.clamp(q.maxVisited, steps) {
		return false
	}
	q.current = target
	return true
}

// ResolveSeed answers the destination-seed confirmation step.  Keeping the
// seed copies it into the destination answer; changing clears both the
// seed and the destination, which removes the conditional step from the
// effective list.  Either way the wizard lands exactly one step forward,
// on destination-select.  Calling this anywhere but on the seed step is a
// no-op, which makes a repeated resolve harmless.
func (q *Sequencer) ResolveSeed(keep bool) bool {
	steps := q.Steps()
	cur := q.clamp(q.current, steps)
	if steps[cur] != StepDestinationSeed {
		return false
	}
	if keep {
		dest := *q.rec.SeededDestination
		q.rec.Destination = &dest
		q.rec.SeedResolved = true
		q.current = cur + 1
		if q.current > q.maxVisited {
			q.maxVisited = q.current
		}
		return true
	}
	// Change: drop the seed.  The list loses the seed step, so the element
	// now sitting at the same index is destination-select — the visitor
	// has still moved one step forward in wizard terms.
	q.rec.SeededDestination = nil
	q.rec.Destination = nil
	q.rec.SeedResolved = true
	q.current = cur
	if q.maxVisited > cur {
		q.maxVisited-- // indices after the removed step shift down by one
	}
	if q.current > q.maxVisited {
		q.maxVisited = q.current
	}
	return true
}

// clamp bounds an index to the given step list.  Needed because the list
// can shrink between calls when the seed step is removed.
func (q *Sequencer) clamp(i int, steps []Step) int {
	if i < 0 {
		return 0
	}
	if i > len(steps)-1 {
		return len(steps) - 1
	}
	return i
}
