// Package cart implements the session-scoped activity cart.  A cart
// collects activities the visitor picks while browsing destination and
// activity pages, independently of the trip wizard; the wizard's
// submission reconciler drains it at the very end.  Carts live in memory
// and are mirrored to session storage (Redis) after every mutation so a
// page reload does not lose them; the in-memory state stays authoritative
// when persistence fails.
package cart

import "strings"

// Entry is one activity selected for potential inclusion in a trip.
//
// Fields:
//  ActivityID    – unique key within the cart; duplicates are suppressed.
//  Name          – display name shown in the cart panel.
//  ImageURL      – card image reference (optional).
//  DestinationID – destination the activity belongs to.
//  PriceCents    – indicative price (optional, "price on request" if nil).
//  Currency      – ISO currency code, empty when PriceCents is nil.
//  TripContext   – trip-request context label the entry was added under.
type Entry struct {
	ActivityID    uint64  `json:"activity_id"`
	Name          string  `json:"name"`
	ImageURL      string  `json:"image_url,omitempty"`
	DestinationID uint64  `json:"destination_id"`
	PriceCents    *uint32 `json:"price_cents,omitempty"`
	Currency      string  `json:"currency,omitempty"`
	TripContext   string  `json:"trip_context,omitempty"`
}

// allowedPathPrefixes lists where on the site a cart is meaningful.  A
// navigation to any other path clears the cart: selections only make sense
// mid-browsing, and this clearing is deliberate even though it can discard
// a cart on a back-button press to an excluded page.
var allowedPathPrefixes = []string{"/destinations", "/activities", "/checkout"}

// pathAllowed reports whether the cart survives navigation to path.
func pathAllowed(path string) bool {
	for _, p := range allowedPathPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
