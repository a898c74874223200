package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonvoyages/travel-backend/internal/cart"
	"github.com/horizonvoyages/travel-backend/internal/model"
	"github.com/horizonvoyages/travel-backend/internal/queue"
)

type fakeCreator struct {
	id  uint64
	err error
	got []*model.TripRequest
}

func (f *fakeCreator) Create(_ context.Context, t *model.TripRequest) (uint64, error) {
	f.got = append(f.got, t)
	if f.err != nil {
		return 0, f.err
	}
	return f.id, nil
}

type fakeAssociator struct {
	err   error
	pairs [][2]uint64
}

func (f *fakeAssociator) AssociateActivity(_ context.Context, tripRequestID, activityID uint64) error {
	f.pairs = append(f.pairs, [2]uint64{tripRequestID, activityID})
	return f.err
}

// newFilledSession returns a session whose record passes every rule at
// testNow, with the phone number carrying formatting spaces.
func newFilledSession(m *SessionManager) *Session {
	sess := m.Create("", testOptions())
	sess.seq.now = func() time.Time { return testNow }
	rec := validRecord()
	rec.PhoneNumber = sp("98 765 43210")
	sess.seq.rec = rec
	return sess
}

func TestSubmitHappyPath(t *testing.T) {
	ctx := context.Background()
	creator := &fakeCreator{id: 42}
	assoc := &fakeAssociator{}
	var published []queue.LeadCreatedEvent
	publish := func(_ context.Context, ev queue.LeadCreatedEvent) error {
		published = append(published, ev)
		return nil
	}
	sb := NewSubmitter(creator, assoc, publish)

	sess := newFilledSession(NewSessionManager())
	st := cart.NewManager(nil).Get(ctx, sess.ID())
	require.True(t, st.Add(ctx, cart.Entry{ActivityID: 501, Name: "Desert Safari", DestinationID: 7}))

	id, status := sb.Submit(ctx, sess, st)
	require.Equal(t, StatusSaved, status)
	require.EqualValues(t, 42, id)

	// The stored phone number is digits only.
	require.Len(t, creator.got, 1)
	assert.Equal(t, "9876543210", creator.got[0].PhoneNumber)
	assert.Equal(t, "+91", creator.got[0].PhoneCountryCode)
	assert.Equal(t, "Mumbai, India", creator.got[0].Origin)
	assert.EqualValues(t, 2, creator.got[0].Adults)

	// Every cart entry was attached to the new lead, then the cart emptied.
	assert.Equal(t, [][2]uint64{{42, 501}}, assoc.pairs)
	assert.Zero(t, st.Len())

	require.Len(t, published, 1)
	assert.EqualValues(t, 42, published[0].TripRequestID)
	assert.Equal(t, "Asha Rao", published[0].FullName)
	assert.Equal(t, 1, published[0].ActivityCount)
}

func TestSubmitCreateFailureLeavesCartIntact(t *testing.T) {
	ctx := context.Background()
	creator := &fakeCreator{err: errors.New("insert failed")}
	assoc := &fakeAssociator{}
	publishCalls := 0
	sb := NewSubmitter(creator, assoc, func(context.Context, queue.LeadCreatedEvent) error {
		publishCalls++
		return nil
	})

	sess := newFilledSession(NewSessionManager())
	st := cart.NewManager(nil).Get(ctx, sess.ID())
	st.Add(ctx, cart.Entry{ActivityID: 501})

	id, status := sb.Submit(ctx, sess, st)
	assert.Equal(t, StatusError, status)
	assert.Zero(t, id)
	assert.Equal(t, 1, st.Len(), "failed creation must not drain the cart")
	assert.Empty(t, assoc.pairs)
	assert.Zero(t, publishCalls)

	// The error state is retryable: a second attempt can succeed.
	creator.err = nil
	creator.id = 77
	id, status = sb.Submit(ctx, sess, st)
	require.Equal(t, StatusSaved, status)
	assert.EqualValues(t, 77, id)
	assert.Zero(t, st.Len())
}

func TestSubmitRefusesIncompleteRecord(t *testing.T) {
	ctx := context.Background()
	creator := &fakeCreator{id: 1}
	sb := NewSubmitter(creator, &fakeAssociator{}, nil)

	sess := NewSessionManager().Create("", testOptions())
	id, status := sb.Submit(ctx, sess, nil)
	assert.Equal(t, StatusIdle, status)
	assert.Zero(t, id)
	assert.Empty(t, creator.got, "an incomplete record never reaches the creator")
}

func TestSubmitIdempotentAfterSave(t *testing.T) {
	ctx := context.Background()
	creator := &fakeCreator{id: 42}
	sb := NewSubmitter(creator, &fakeAssociator{}, nil)

	sess := newFilledSession(NewSessionManager())
	id, status := sb.Submit(ctx, sess, nil)
	require.Equal(t, StatusSaved, status)
	require.EqualValues(t, 42, id)

	id, status = sb.Submit(ctx, sess, nil)
	assert.Equal(t, StatusSaved, status)
	assert.EqualValues(t, 42, id, "a saved session reports the same lead id")
	assert.Len(t, creator.got, 1, "no second trip request is created")
}

func TestSubmitAssociationFailureIsBestEffort(t *testing.T) {
	ctx := context.Background()
	creator := &fakeCreator{id: 9}
	assoc := &fakeAssociator{err: errors.New("dup key")}
	sb := NewSubmitter(creator, assoc, nil)

	sess := newFilledSession(NewSessionManager())
	st := cart.NewManager(nil).Get(ctx, sess.ID())
	st.Add(ctx, cart.Entry{ActivityID: 1})
	st.Add(ctx, cart.Entry{ActivityID: 2})

	id, status := sb.Submit(ctx, sess, st)
	require.Equal(t, StatusSaved, status)
	assert.EqualValues(t, 9, id)
	assert.Len(t, assoc.pairs, 2, "a failing association does not stop the loop")
	assert.Zero(t, st.Len())
}
