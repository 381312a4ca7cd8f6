package latlon

import "math"

// R is the mean earth radius in metres
const R = 6371e3

const NauticalMile = 1852.0

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func toRadians(a float64) float64 {
	return a * math.Pi / 180.0
}

func toDegrees(a float64) float64 {
	return a * 180.0 / math.Pi
}

func wrap360(d float64) float64 {
	if 0.0 <= d && d < 360.0 {
		return d
	}
	d1 := d + 360.0
	d2 := d1 - float64(int(d1/360.0)*360)
	return d2
}

// NauticalMiles returns the great circle distance between two points.
func NauticalMiles(from, to LatLon) float64 {
	return LatLonHaversine{}.DistanceTo(from, to) / NauticalMile
}

// Route is a trip leg entered as two points.
type Route struct {
	Start LatLon `json:"start"`
	End   LatLon `json:"end"`
}

func (r Route) Distance() float64 {
	return NauticalMiles(r.Start, r.End)
}

// Heading returns the distance in nautical miles and the initial bearing in
// degrees from Start to End.
func (r Route) Heading() (float64, float64) {
	d, b := LatLonHaversine{}.DistanceAndBearingTo(r.Start, r.End)
	return d / NauticalMile, b
}

// Duration returns the travel time in hours at the given speed in knots.
// ok is false when the speed is zero and the duration cannot be derived.
func (r Route) Duration(speed float64) (hours float64, ok bool) {
	if speed <= 0 {
		return 0, false
	}
	return r.Distance() / speed, true
}
