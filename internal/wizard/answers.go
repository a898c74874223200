package wizard

// AnswerRecord accumulates the visitor's answers for one in-progress trip
// request.  Every field is optional until submission; pointers distinguish
// "never answered" from an empty answer.  Fields are set independently:
// updating one never resets another, and stepping back to change an early
// answer deliberately leaves later answers untouched even when that risks
// a stale combination (the summary step re-validates everything anyway).
type AnswerRecord struct {
	Origin            *string // departure city label
	Destination       *string // destination label
	StartDate         *string // first travel day, "YYYY-MM-DD"
	EndDate           *string // last travel day, "YYYY-MM-DD"
	Adults            int     // adult traveller count, defaults to 1
	Children          int     // child traveller count, defaults to 0
	FirstName         *string // passenger first name
	LastName          *string // passenger last name
	PhoneCountryCode  *string // dialing prefix, "+" and 1-3 digits
	PhoneNumber       *string // subscriber number, digits with optional spaces
	Email             *string // contact email
	Nationality       *string // nationality label
	Airline           *string // airline preference label
	Hotel             *string // hotel category label
	FlightClass       *string // cabin class label
	VisaStatus        *string // visa situation label
	SeededDestination *string // destination pre-filled by an external referral
	SeedResolved      bool    // whether the seed prompt was already answered
}

// NewAnswerRecord creates a fresh record with the default traveller counts.
// A non-empty seed label arms the conditional seed-confirmation step.
func NewAnswerRecord(seed string) *AnswerRecord {
	rec := &AnswerRecord{Adults: 1, Children: 0}
	if seed != "" {
		s := seed
		rec.SeededDestination = &s
	}
	return rec
}

// AnswerPatch carries a partial update to the record.  Nil fields are left
// alone, so callers can change exactly one answer without re-sending the
// rest.  Counts use pointers here (unlike the record) because zero is a
// legal child count.
type AnswerPatch struct {
	Origin           *string `json:"origin"`
	Destination      *string `json:"destination"`
	StartDate        *string `json:"start_date"`
	EndDate          *string `json:"end_date"`
	Adults           *int    `json:"adults"`
	Children         *int    `json:"children"`
	FirstName        *string `json:"first_name"`
	LastName         *string `json:"last_name"`
	PhoneCountryCode *string `json:"phone_country_code"`
	PhoneNumber      *string `json:"phone_number"`
	Email            *string `json:"email"`
	Nationality      *string `json:"nationality"`
	Airline          *string `json:"airline"`
	Hotel            *string `json:"hotel"`
	FlightClass      *string `json:"flight_class"`
	VisaStatus       *string `json:"visa_status"`
}

// Apply merges a patch into the record field by field.  Only the fields
// present in the patch change; everything else keeps its current value.
func (rec *AnswerRecord) Apply(p AnswerPatch) {
	if p.Origin != nil {
		rec.Origin = p.Origin
	}
	if p.Destination != nil {
		rec.Destination = p.Destination
	}
	if p.StartDate != nil {
		rec.StartDate = p.StartDate
	}
	if p.EndDate != nil {
		rec.EndDate = p.EndDate
	}
	if p.Adults != nil {
		rec.Adults = *p.Adults
	}
	if p.Children != nil {
		rec.Children = *p.Children
	}
	if p.FirstName != nil {
		rec.FirstName = p.FirstName
	}
	if p.LastName != nil {
		rec.LastName = p.LastName
	}
	if p.Email != nil {
		rec.Email = p.Email
	}
	if p.PhoneCountryCode != nil {
		rec.PhoneCountryCode = p.PhoneCountryCode
	}
	if p.PhoneNumber != nil {
		rec.PhoneNumber = p.PhoneNumber
	}
	if p.Nationality != nil {
		rec.Nationality = p.Nationality
	}
	if p.Airline != nil {
		rec.Airline = p.Airline
	}
	if p.Hotel != nil {
		rec.Hotel = p.Hotel
	}
	if p.FlightClass != nil {
		rec.FlightClass = p.FlightClass
	}
	if p.VisaStatus != nil {
		rec.VisaStatus = p.VisaStatus
	}
}

// str dereferences an optional field, returning "" for unanswered.
func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
