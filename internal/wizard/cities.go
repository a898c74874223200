package wizard

// OriginCity pairs an origin option label with its coordinate, used by the
// geolocation matcher to prefill the origin step.  The table is immutable
// reference data; its order is fixed, which makes the matcher's
// first-in-table tie-break stable across calls.
type OriginCity struct {
	Name string  // label shown in the origin step, matches the option set
	Lat  float64 // latitude in decimal degrees
	Lng  float64 // longitude in decimal degrees
}

// OriginCities lists the departure cities the agency sells from.
var OriginCities = []OriginCity{
	{Name: "Mumbai, India", Lat: 19.0760, Lng: 72.8777},
	{Name: "Delhi, India", Lat: 28.7041, Lng: 77.1025},
	{Name: "Bengaluru, India", Lat: 12.9716, Lng: 77.5946},
	{Name: "Hyderabad, India", Lat: 17.3850, Lng: 78.4867},
	{Name: "Chennai, India", Lat: 13.0827, Lng: 80.2707},
	{Name: "Kolkata, India", Lat: 22.5726, Lng: 88.3639},
	{Name: "Pune, India", Lat: 18.5204, Lng: 73.8567},
	{Name: "Ahmedabad, India", Lat: 23.0225, Lng: 72.5714},
	{Name: "Jaipur, India", Lat: 26.9124, Lng: 75.7873},
	{Name: "Kochi, India", Lat: 9.9312, Lng: 76.2673},
	{Name: "Lucknow, India", Lat: 26.8467, Lng: 80.9462},
	{Name: "Dubai, UAE", Lat: 25.2048, Lng: 55.2708},
}

// OriginCityNames returns the origin option labels in table order.
func OriginCityNames() []string {
	names := make([]string, len(OriginCities))
	for i, c := range OriginCities {
		names[i] = c.Name
	}
	return names
}
