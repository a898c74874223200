package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNow is a fixed reference date so date-window assertions never depend
// on when the suite runs.
var testNow = time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

func testOptions() OptionSets {
	return DefaultOptions([]string{"Dubai, UAE", "Bali, Indonesia"})
}

func sp(s string) *string { return &s }

// validRecord returns a record that passes every step rule at testNow.
func validRecord() *AnswerRecord {
	return &AnswerRecord{
		Origin:           sp("Mumbai, India"),
		Destination:      sp("Dubai, UAE"),
		StartDate:        sp("2026-03-01"),
		EndDate:          sp("2026-03-10"),
		Adults:           2,
		Children:         0,
		FirstName:        sp("Asha"),
		LastName:         sp("Rao"),
		PhoneCountryCode: sp("+91"),
		PhoneNumber:      sp("9876543210"),
		Email:            sp("asha@example.com"),
		Nationality:      sp("Indian"),
		Airline:          sp("Any"),
		Hotel:            sp("4 Star"),
		FlightClass:      sp("Economy"),
		VisaStatus:       sp("N/A"),
	}
}

func TestCompleteWithValidRecord(t *testing.T) {
	rec := validRecord()
	require.True(t, Complete(rec, testOptions(), testNow))
	require.True(t, StepValid(StepSummary, rec, testOptions(), testNow))
}

func TestTravelerLimits(t *testing.T) {
	cases := []struct {
		name     string
		adults   int
		children int
		want     bool
	}{
		{"minimum party", 1, 0, true},
		{"max adults", 20, 0, true},
		{"no adults", 0, 3, false},
		{"too many adults", 21, 0, false},
		{"max children", 1, 10, true},
		{"too many children", 1, 11, false},
		{"negative children", 1, -1, false},
		{"total at cap", 20, 5, true},
		{"total above cap", 20, 6, false},
		{"total at cap other split", 15, 10, true},
		{"total above cap other split", 16, 10, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := validRecord()
			rec.Adults = tc.adults
			rec.Children = tc.children
			assert.Equal(t, tc.want, StepValid(StepTravelers, rec, testOptions(), testNow))
		})
	}
}

func TestDateRules(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"same day trip starting today", "2026-01-15", "2026-01-15", true},
		{"start in the past", "2026-01-14", "2026-01-20", false},
		{"end before start", "2026-03-10", "2026-03-01", false},
		{"exactly 365 days", "2026-02-01", "2027-02-01", true},
		{"366 days", "2026-02-01", "2027-02-02", false},
		{"start at the 2 year horizon", "2028-01-15", "2028-01-15", true},
		{"start past the horizon", "2028-01-16", "2028-01-16", false},
		{"end past the horizon", "2028-01-10", "2028-01-16", false},
		{"malformed start", "2026/03/01", "2026-03-10", false},
		{"missing end", "2026-03-01", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := validRecord()
			rec.StartDate = sp(tc.start)
			rec.EndDate = sp(tc.end)
			assert.Equal(t, tc.want, StepValid(StepDates, rec, testOptions(), testNow))
		})
	}
}

func TestNameRules(t *testing.T) {
	opts := testOptions()

	rec := validRecord()
	assert.True(t, StepValid(StepName, rec, opts, testNow))

	// first name needs at least two characters, last name just one
	rec.FirstName = sp("A")
	assert.False(t, StepValid(StepName, rec, opts, testNow))
	rec.FirstName = sp("Al")
	rec.LastName = sp("O")
	assert.True(t, StepValid(StepName, rec, opts, testNow))

	// separators common in passenger names are allowed
	rec.FirstName = sp("Mary-Jane")
	rec.LastName = sp("O'Neil Jr.")
	assert.True(t, StepValid(StepName, rec, opts, testNow))

	// digits and surrounding whitespace are not
	rec.FirstName = sp("As4a")
	assert.False(t, StepValid(StepName, rec, opts, testNow))
	rec.FirstName = sp(" Asha")
	assert.False(t, StepValid(StepName, rec, opts, testNow))

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	rec.FirstName = sp(string(long))
	assert.False(t, StepValid(StepName, rec, opts, testNow))
}

func TestPhoneRules(t *testing.T) {
	cases := []struct {
		name   string
		cc     string
		number string
		want   bool
	}{
		{"plain number", "+91", "9876543210", true},
		{"formatting spaces allowed", "+91", "98 765 43210", true},
		{"single digit prefix", "+1", "2025550123", true},
		{"three digit prefix", "+971", "501234567", true},
		{"prefix without plus", "91", "9876543210", false},
		{"prefix starting with zero", "+0", "9876543210", false},
		{"four digit prefix", "+1234", "9876543210", false},
		{"too short", "+91", "12345", false},
		{"minimum length", "+91", "123456", true},
		{"maximum length", "+91", "123456789012345", true},
		{"too long", "+91", "1234567890123456", false},
		{"letters", "+91", "98765abcde", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := validRecord()
			rec.PhoneCountryCode = sp(tc.cc)
			rec.PhoneNumber = sp(tc.number)
			assert.Equal(t, tc.want, StepValid(StepPhone, rec, testOptions(), testNow))
		})
	}
}

func TestEmailRules(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"asha@example.com", true},
		{"a@b.c", true}, // shortest accepted form
		{"a@b", false},
		{"@example.com", false},
		{"asha@", false},
		{"asha example@example.com", false},
		{"asha+trips@example.co.in", true},
	}
	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			rec := validRecord()
			rec.Email = sp(tc.email)
			assert.Equal(t, tc.want, StepValid(StepEmail, rec, testOptions(), testNow))
		})
	}
}

func TestOptionMembership(t *testing.T) {
	opts := testOptions()

	rec := validRecord()
	rec.Nationality = sp("Martian")
	assert.False(t, StepValid(StepNationality, rec, opts, testNow))

	rec = validRecord()
	rec.Destination = sp("Atlantis")
	assert.False(t, StepValid(StepDestination, rec, opts, testNow))

	// An empty destination set degrades to a plain non-empty check.
	open := opts
	open.Destinations = nil
	assert.True(t, StepValid(StepDestination, rec, open, testNow))
	rec.Destination = sp("")
	assert.False(t, StepValid(StepDestination, rec, open, testNow))
}

func TestCompleteRejectsAnyMissingField(t *testing.T) {
	opts := testOptions()

	rec := validRecord()
	rec.Email = nil
	assert.False(t, Complete(rec, opts, testNow))

	rec = validRecord()
	rec.Origin = sp("Atlantis") // not an origin option
	assert.False(t, Complete(rec, opts, testNow))

	// The unresolved seed never blocks completion; it is not a field rule.
	rec = validRecord()
	rec.SeededDestination = sp("Dubai, UAE")
	assert.True(t, Complete(rec, opts, testNow))
}
