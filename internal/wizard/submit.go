package wizard

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/horizonvoyages/travel-backend/internal/cart"
	"github.com/horizonvoyages/travel-backend/internal/model"
	"github.com/horizonvoyages/travel-backend/internal/queue"
)

// TripRequestCreator is the trip-request creation boundary.  It persists a
// complete lead and returns its new identifier.
type TripRequestCreator interface {
	Create(ctx context.Context, t *model.TripRequest) (uint64, error)
}

// ActivityAssociator is the activity-association boundary.  It must be
// idempotent: associating the same (trip request, activity) pair twice is
// treated as already satisfied.
type ActivityAssociator interface {
	AssociateActivity(ctx context.Context, tripRequestID, activityID uint64) error
}

// LeadPublisher pushes the lead.created event to the broker.  Publishing
// is best-effort; a nil publisher disables it.
type LeadPublisher func(ctx context.Context, ev queue.LeadCreatedEvent) error

// defaultSubmitTimeout bounds the trip-request creation call.  The source
// this flow was modelled on would sit in "saving" forever on a stalled
// network; here the timeout forces the error state instead so the visitor
// can retry.
const defaultSubmitTimeout = 15 * time.Second

// Submitter reconciles a finished wizard session into persistent records:
// create the trip request, attach every cart activity to it, clear the
// cart, announce the lead.
type Submitter struct {
	creator    TripRequestCreator
	associator ActivityAssociator
	publish    LeadPublisher
	timeout    time.Duration
}

// NewSubmitter wires the submission boundaries together.
func NewSubmitter(creator TripRequestCreator, associator ActivityAssociator, publish LeadPublisher) *Submitter {
	return &Submitter{creator: creator, associator: associator, publish: publish, timeout: defaultSubmitTimeout}
}

// Submit runs the reconciliation for one session:
//
//  1. Refuse silently unless the whole record validates and no submission
//     is in flight or already saved (status stays unchanged).
//  2. Enter saving, create the trip request under the timeout.  Any
//     failure is terminal for the attempt: status error, cart untouched,
//     no associations attempted.
//  3. Associate each cart entry with the new lead, sequentially in
//     insertion order, best-effort: one failure is logged and the loop
//     continues, nothing is rolled back.
//  4. Clear the cart, publish lead.created (also best-effort), mark saved.
//
// The returned id is non-zero only when the status comes back saved.
func (sb *Submitter) Submit(ctx context.Context, sess *Session, cartStore *cart.Store) (uint64, SubmissionStatus) {
	payload, ok := sess.beginSubmit()
	if !ok {
		status, id := sess.Status()
		return id, status
	}

	cctx, cancel := context.WithTimeout(ctx, sb.timeout)
	defer cancel()
	id, err := sb.creator.Create(cctx, payload)
	if err != nil {
		log.Printf("wizard: trip request creation failed: %v", err)
		sess.endSubmit(0, StatusError)
		return 0, StatusError
	}

	var entries []cart.Entry
	if cartStore != nil {
		entries = cartStore.Entries()
		for _, e := range entries {
			if err := sb.associator.AssociateActivity(ctx, id, e.ActivityID); err != nil {
				log.Printf("wizard: associate activity %d with trip request %d failed: %v", e.ActivityID, id, err)
			}
		}
		cartStore.Clear(ctx)
	}

	if sb.publish != nil {
		ev := queue.LeadCreatedEvent{
			TripRequestID: id,
			Origin:        payload.Origin,
			Destination:   payload.Destination,
			StartDate:     payload.StartDate,
			EndDate:       payload.EndDate,
			Adults:        payload.Adults,
			Children:      payload.Children,
			FullName:      payload.FirstName + " " + payload.LastName,
			Email:         payload.Email,
			ActivityCount: len(entries),
			CreatedAt:     time.Now().UTC().Format("2006-01-02 15:04:05"),
		}
		if err := sb.publish(ctx, ev); err != nil {
			log.Printf("wizard: publish lead.created for trip request %d failed: %v", id, err)
		}
	}

	sess.endSubmit(id, StatusSaved)
	return id, StatusSaved
}

// beginSubmit validates the record and claims the saving state.  It
// returns the flat submission payload, or ok=false when the record is
// incomplete, a submission is already in flight, or the session has
// already saved.
func (s *Session) beginSubmit() (*model.TripRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.status == StatusSaving || s.status == StatusSaved {
		return nil, false
	}
	rec := s.seq.Record()
	if !Complete(rec, s.seq.opts, s.seq.now()) {
		return nil, false
	}
	s.status = StatusSaving
	return buildPayload(rec), true
}

// endSubmit records the outcome of the attempt.
func (s *Session) endSubmit(id uint64, status SubmissionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	if status == StatusSaved {
		s.tripRequestID = id
	}
}

// buildPayload maps the answer record onto the external trip-request
// shape.  Phone formatting spaces are stripped so the stored number is
// digits only; the validator has already guaranteed every field is
// present and well-formed.
func buildPayload(rec *AnswerRecord) *model.TripRequest {
	return &model.TripRequest{
		Origin:           str(rec.Origin),
		Destination:      str(rec.Destination),
		StartDate:        str(rec.StartDate),
		EndDate:          str(rec.EndDate),
		Adults:           uint8(rec.Adults),
		Children:         uint8(rec.Children),
		FirstName:        str(rec.FirstName),
		LastName:         str(rec.LastName),
		PhoneCountryCode: str(rec.PhoneCountryCode),
		PhoneNumber:      strings.ReplaceAll(str(rec.PhoneNumber), " ", ""),
		Email:            str(rec.Email),
		Nationality:      str(rec.Nationality),
		Airline:          str(rec.Airline),
		Hotel:            str(rec.Hotel),
		FlightClass:      str(rec.FlightClass),
		VisaStatus:       str(rec.VisaStatus),
	}
}
