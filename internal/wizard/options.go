package wizard

// OptionSets lists the accepted values for every selection step.  The
// preference lists are fixed site copy; Destinations is filled per session
// from the destination catalog so new destinations appear in the wizard
// without a deploy.  An empty set degrades to a plain non-empty check,
// which keeps the validator usable before the catalog has loaded.
type OptionSets struct {
	Origins       []string
	Destinations  []string
	Nationalities []string
	Airlines      []string
	Hotels        []string
	FlightClasses []string
	VisaStatuses  []string
}

// Fixed option lists shown by the preference steps.
var (
	Nationalities = []string{"Indian", "Emirati", "British", "American", "Canadian", "Australian", "Other"}
	Airlines      = []string{"Any", "Emirates", "Air India", "IndiGo", "Qatar Airways", "Etihad Airways", "Vistara"}
	Hotels        = []string{"Any", "3 Star", "4 Star", "5 Star"}
	FlightClasses = []string{"Economy", "Premium Economy", "Business", "First"}
	VisaStatuses  = []string{"N/A", "Required", "Already Have", "Assistance Needed"}
)

// DefaultOptions builds the option sets used in production: fixed
// preference lists, origin labels from the city reference table, and the
// caller-supplied destination labels.
func DefaultOptions(destinations []string) OptionSets {
	return OptionSets{
		Origins:       OriginCityNames(),
		Destinations:  destinations,
		Nationalities: Nationalities,
		Airlines:      Airlines,
		Hotels:        Hotels,
		FlightClasses: FlightClasses,
		VisaStatuses:  VisaStatuses,
	}
}

// chosen reports whether v is an acceptable selection from the given set:
// membership when the set is known, plain non-empty otherwise.
func chosen(set []string, v string) bool {
	if v == "" {
		return false
	}
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
