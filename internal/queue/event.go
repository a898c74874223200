// Package queue defines message payloads exchanged over the message broker.
package queue

// LeadCreatedEvent is published when a trip request is successfully
// captured. It contains enough information for downstream consumers to
// log, notify the sales desk, or trigger analytics without querying the
// primary database.
type LeadCreatedEvent struct {
    TripRequestID uint64 `json:"trip_request_id"`
    Origin        string `json:"origin"`
    Destination   string `json:"destination"`
    StartDate     string `json:"start_date"`
    EndDate       string `json:"end_date"`
    Adults        uint8  `json:"adults"`
    Children      uint8  `json:"children"`
    FullName      string `json:"full_name"`
    Email         string `json:"email"`
    ActivityCount int    `json:"activity_count"`
    CreatedAt     string `json:"created_at"`
}
