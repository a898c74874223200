package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineKnownDistances(t *testing.T) {
	// Mumbai to Delhi is roughly 1150 km as the crow flies.
	d := haversineKm(19.0760, 72.8777, 28.7041, 77.1025)
	assert.InDelta(t, 1153, d, 15)

	// Zero distance for identical points.
	assert.Zero(t, haversineKm(19.0760, 72.8777, 19.0760, 72.8777))

	// Symmetry.
	assert.InDelta(t,
		haversineKm(25.2048, 55.2708, 19.0760, 72.8777),
		haversineKm(19.0760, 72.8777, 25.2048, 55.2708),
		1e-9)
}

func TestMatchOriginCity(t *testing.T) {
	// Right on top of Mumbai.
	name, ok := MatchOriginCity(19.0760, 72.8777)
	require.True(t, ok)
	assert.Equal(t, "Mumbai, India", name)

	// A point in the Gulf of Guinea is nowhere near any origin city.
	_, ok = MatchOriginCity(0, 0)
	assert.False(t, ok)
}

func TestThresholdIsInclusive(t *testing.T) {
	city := OriginCity{Name: "Somewhere", Lat: 10, Lng: 10}
	lat, lng := 10.0, 14.0 // a few hundred km east
	d := haversineKm(lat, lng, city.Lat, city.Lng)

	// A limit exactly at the computed distance accepts the city...
	_, ok := nearestWithin(lat, lng, []OriginCity{city}, d)
	assert.True(t, ok)

	// ...and a limit just below it rejects.
	_, ok = nearestWithin(lat, lng, []OriginCity{city}, d-0.001)
	assert.False(t, ok)
}

func TestNearestPrefersCloserCity(t *testing.T) {
	cities := []OriginCity{
		{Name: "Far", Lat: 20, Lng: 20},
		{Name: "Near", Lat: 10.5, Lng: 10.5},
	}
	c, ok := nearestWithin(10, 10, cities, 500)
	require.True(t, ok)
	assert.Equal(t, "Near", c.Name)
}

func TestTieBreakKeepsEarlierEntry(t *testing.T) {
	cities := []OriginCity{
		{Name: "First", Lat: 10, Lng: 10},
		{Name: "Second", Lat: 10, Lng: 10},
	}
	c, ok := nearestWithin(10.1, 10.1, cities, 500)
	require.True(t, ok)
	assert.Equal(t, "First", c.Name, "equal distances keep the earlier table entry")
}
