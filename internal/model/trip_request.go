package model

import "time"

// TripRequest records one lead captured by the trip wizard, as stored in
// the `trip_requests` table. Every field is mandatory at the persistence
// boundary: the wizard only submits once its validator has approved the
// complete answer record.
//
// Fields:
//  ID               – primary key identifier.
//  Origin           – departure city label (e.g. "Mumbai, India").
//  Destination      – destination label chosen in the wizard.
//  StartDate        – first travel day (date only, stored as DATE).
//  EndDate          – last travel day.
//  Adults           – number of adult travellers (1..20).
//  Children         – number of child travellers (0..10).
//  FirstName        – passenger first name.
//  LastName         – passenger last name.
//  PhoneCountryCode – dialing prefix including '+' (e.g. "+91").
//  PhoneNumber      – digits-only subscriber number.
//  Email            – contact email address.
//  Nationality      – passenger nationality label.
//  Airline          – airline preference label.
//  Hotel            – hotel category preference label.
//  FlightClass      – cabin class preference label.
//  VisaStatus       – visa situation label.
//  Status           – lead workflow state (NEW, CONTACTED, CLOSED).
//  CreatedAt        – timestamp of creation.
//  UpdatedAt        – timestamp of last update.
type TripRequest struct {
    ID               uint64    // trip_requests.id
    Origin           string    // trip_requests.origin
    Destination      string    // trip_requests.destination
    StartDate        string    // trip_requests.start_date ("YYYY-MM-DD")
    EndDate          string    // trip_requests.end_date   ("YYYY-MM-DD")
    Adults           uint8     // trip_requests.adults
    Children         uint8     // trip_requests.children
    FirstName        string    // trip_requests.first_name
    LastName         string    // trip_requests.last_name
    PhoneCountryCode string    // trip_requests.phone_country_code
    PhoneNumber      string    // trip_requests.phone_number
    Email            string    // trip_requests.email
    Nationality      string    // trip_requests.nationality
    Airline          string    // trip_requests.airline
    Hotel            string    // trip_requests.hotel
    FlightClass      string    // trip_requests.flight_class
    VisaStatus       string    // trip_requests.visa_status
    Status           string    // trip_requests.status
    CreatedAt        time.Time // trip_requests.created_at
    UpdatedAt        time.Time // trip_requests.updated_at
}

// TripRequestActivity links a trip request to one activity the visitor had
// in their cart at submission time, as stored in `trip_request_activities`.
// The (TripRequestID, ActivityID) pair is unique, which makes recording an
// association idempotent: re-inserting the same pair is a no-op.
//
// Fields:
//  ID            – primary key identifier.
//  TripRequestID – reference to the trip request.
//  ActivityID    – reference to the activity.
//  CreatedAt     – timestamp of creation.
type TripRequestActivity struct {
    ID            uint64    // trip_request_activities.id
    TripRequestID uint64    // trip_request_activities.trip_request_id
    ActivityID    uint64    // trip_request_activities.activity_id
    CreatedAt     time.Time // trip_request_activities.created_at
}
