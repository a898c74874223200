package wizard

import (
	"regexp"
	"strings"
	"time"
)

// Validation limits for the traveller and date steps.
const (
	maxTripDays     = 365 // longest allowed trip, inclusive
	maxAdults       = 20
	maxChildren     = 10
	maxTravelers    = 25 // adults + children together
	maxNameLen      = 50
	maxEmailLen     = 254
	minEmailLen     = 5
	dateLayout      = "2006-01-02"
	horizonYears    = 2 // both dates must lie within today + 2 years
	minPhoneDigits  = 6
	maxPhoneDigits  = 15
)

// Character rules for the free-text steps.  Names allow letters plus the
// separators that appear in real passenger names; the email pattern is the
// usual RFC-5322-lite local@domain shape with label rules, nothing more.
var (
	nameRe        = regexp.MustCompile(`^[A-Za-z\s\-'.]+$`)
	countryCodeRe = regexp.MustCompile(`^\+[1-9][0-9]{0,2}$`)
	phoneRe       = regexp.MustCompile(`^[0-9]{6,15}$`)
	emailRe       = regexp.MustCompile(`^[A-Za-z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?)+$`)
)

// StepValid is the pure predicate deciding whether the answers for one
// step are acceptable.  It never mutates the record and never errors:
// a failing rule simply yields false, which the sequencer surfaces by
// refusing to advance.  The summary step requires every rule across the
// whole record, making it the final gate before submission.
func StepValid(step Step, rec *AnswerRecord, opts OptionSets, now time.Time) bool {
	if rec == nil {
		return false
	}
	switch step {
	case StepOrigin:
		return chosen(opts.Origins, str(rec.Origin))
	case StepDestinationSeed:
		// The seed prompt itself has nothing to validate; resolving it
		// (keep or change) is what moves the wizard forward.
		return true
	case StepDestination:
		return chosen(opts.Destinations, str(rec.Destination))
	case StepDates:
		return validDates(rec, now)
	case StepTravelers:
		return validTravelers(rec)
	case StepName:
		return validName(str(rec.FirstName), 2) && validName(str(rec.LastName), 1)
	case StepPhone:
		return validPhone(str(rec.PhoneCountryCode), str(rec.PhoneNumber))
	case StepEmail:
		return validEmail(str(rec.Email))
	case StepNationality:
		return chosen(opts.Nationalities, str(rec.Nationality))
	case StepAirline:
		return chosen(opts.Airlines, str(rec.Airline))
	case StepHotel:
		return chosen(opts.Hotels, str(rec.Hotel))
	case StepFlightClass:
		return chosen(opts.FlightClasses, str(rec.FlightClass))
	case StepVisa:
		return chosen(opts.VisaStatuses, str(rec.VisaStatus))
	case StepSummary:
		return Complete(rec, opts, now)
	}
	return false
}

// Complete reports whether the whole record satisfies every field rule.
// It is the conjunction of all per-step rules, expressed over the struct
// rather than as a chain of truthiness checks.
func Complete(rec *AnswerRecord, opts OptionSets, now time.Time) bool {
	for _, s := range masterSteps {
		if s == StepDestinationSeed || s == StepSummary {
			continue
		}
		if !StepValid(s, rec, opts, now) {
			return false
		}
	}
	return true
}

// validDates enforces: start >= today, end >= start, trip length at most
// maxTripDays, and both dates within today + horizonYears.  "Today" is the
// caller's local calendar date; all arithmetic happens on UTC midnights so
// DST shifts can never make a whole-day difference come out fractional.
func validDates(rec *AnswerRecord, now time.Time) bool {
	start, ok := parseDay(str(rec.StartDate))
	if !ok {
		return false
	}
	end, ok := parseDay(str(rec.EndDate))
	if !ok {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if start.Before(today) {
		return false
	}
	if end.Before(start) {
		return false
	}
	if int(end.Sub(start).Hours()/24) > maxTripDays {
		return false
	}
	horizon := today.AddDate(horizonYears, 0, 0)
	if start.After(horizon) || end.After(horizon) {
		return false
	}
	return true
}

// parseDay parses a "YYYY-MM-DD" string into a UTC midnight.
func parseDay(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func validTravelers(rec *AnswerRecord) bool {
	if rec.Adults < 1 || rec.Adults > maxAdults {
		return false
	}
	if rec.Children < 0 || rec.Children > maxChildren {
		return false
	}
	return rec.Adults+rec.Children <= maxTravelers
}

// validName checks length bounds, the allowed character class, and that
// the value carries no leading or trailing whitespace.
func validName(v string, minLen int) bool {
	if len(v) < minLen || len(v) > maxNameLen {
		return false
	}
	if v != strings.TrimSpace(v) {
		return false
	}
	return nameRe.MatchString(v)
}

// validPhone validates the dialing prefix and the subscriber number.
// Formatting spaces inside the number are stripped before the digit check.
func validPhone(cc, number string) bool {
	if !countryCodeRe.MatchString(cc) {
		return false
	}
	digits := strings.ReplaceAll(number, " ", "")
	return phoneRe.MatchString(digits)
}

func validEmail(v string) bool {
	if len(v) < minEmailLen || len(v) > maxEmailLen {
		return false
	}
	return emailRe.MatchString(v)
}
