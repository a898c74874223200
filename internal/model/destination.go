package model

import "time"

// Destination represents a travel destination promoted on the site, as
// stored in the `destinations` table. Destinations are the top-level
// browsing unit: activities belong to a destination and the trip wizard
// asks the visitor to pick one.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display label shown to visitors (e.g. "Dubai, UAE").
//  Slug      – URL-safe identifier used in public page paths.
//  Country   – country the destination belongs to.
//  Summary   – short marketing blurb for listing cards.
//  ImageURL  – hero image reference (nullable).
//  IsActive  – whether the destination is currently promoted.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Destination struct {
    ID        uint64    // destinations.id
    Name      string    // destinations.name
    Slug      string    // destinations.slug
    Country   string    // destinations.country
    Summary   string    // destinations.summary
    ImageURL  *string   // destinations.image_url (nullable)
    IsActive  bool      // destinations.is_active
    CreatedAt time.Time // destinations.created_at
    UpdatedAt time.Time // destinations.updated_at
}
