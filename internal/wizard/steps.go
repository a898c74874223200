// Package wizard implements the multi-step trip-request flow: the ordered
// question steps, the accumulating answer record, per-step validation, the
// geolocation-based origin prefill and the final submission reconciler.
// The whole package is in-process state; nothing here touches the network
// or the database except through the boundary interfaces in submit.go.
package wizard

// Step identifies one question screen of the trip wizard.
type Step string

const (
	StepOrigin          Step = "origin"           // departure city selection
	StepDestinationSeed Step = "destination_seed" // confirm/override a referred destination (conditional)
	StepDestination     Step = "destination"      // destination selection
	StepDates           Step = "dates"            // travel start and end dates
	StepTravelers       Step = "travelers"        // adult and child counts
	StepName            Step = "name"             // passenger first and last name
	StepPhone           Step = "phone"            // phone country code and number
	StepEmail           Step = "email"            // contact email
	StepNationality     Step = "nationality"      // passenger nationality
	StepAirline         Step = "airline"          // airline preference
	StepHotel           Step = "hotel"            // hotel category preference
	StepFlightClass     Step = "flight_class"     // cabin class preference
	StepVisa            Step = "visa"             // visa status
	StepSummary         Step = "summary"          // review and submit
)

// masterSteps is the full ordered question sequence.  StepDestinationSeed
// is conditional: it only appears in the effective list while a seeded
// destination exists on the answer record.
var masterSteps = []Step{
	StepOrigin,
	StepDestinationSeed,
	StepDestination,
	StepDates,
	StepTravelers,
	StepName,
	StepPhone,
	StepEmail,
	StepNationality,
	StepAirline,
	StepHotel,
	StepFlightClass,
	StepVisa,
	StepSummary,
}

// effectiveSteps returns the step sequence for the given answer record.
// The list must be recomputed on every use: resolving the seed step with
// "change" removes it mid-flow and shifts every later index down by one.
func effectiveSteps(rec *AnswerRecord) []Step {
	if rec != nil && rec.SeededDestination != nil {
		return masterSteps
	}
	out := make([]Step, 0, len(masterSteps)-1)
	for _, s := range masterSteps {
		if s == StepDestinationSeed {
			continue
		}
		out = append(out, s)
	}
	return out
}
