package model

import "time"

// Activity represents a bookable excursion or experience offered at a
// destination, as stored in the `activities` table. Activities are what
// visitors collect into their session cart while browsing; on trip-request
// submission the cart contents are attached to the new lead.
//
// Fields:
//  ID            – primary key identifier.
//  DestinationID – destination the activity belongs to.
//  Name          – display name of the activity.
//  Description   – longer marketing description.
//  PriceCents    – indicative price in cents (nullable; "price on request").
//  Currency      – ISO currency code for PriceCents (nullable with it).
//  ReviewCount   – number of collected reviews, shown as social proof.
//  ImageURL      – card image reference (nullable).
//  IsActive      – whether the activity is visible on the site.
//  IsBookable    – whether the activity may be added to a cart.
//  CreatedAt     – timestamp of creation.
//  UpdatedAt     – timestamp of last update.
type Activity struct {
    ID            uint64    // activities.id
    DestinationID uint64    // activities.destination_id
    Name          string    // activities.name
    Description   string    // activities.description
    PriceCents    *uint32   // activities.price_cents (nullable)
    Currency      *string   // activities.currency (nullable)
    ReviewCount   uint32    // activities.review_count
    ImageURL      *string   // activities.image_url (nullable)
    IsActive      bool      // activities.is_active
    IsBookable    bool      // activities.is_bookable
    CreatedAt     time.Time // activities.created_at
    UpdatedAt     time.Time // activities.updated_at
}
