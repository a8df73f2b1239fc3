package geospatial

import "math"

const earthRadiusM = 6371000.0

// Haversine calculates the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusM * c
}

// PlanarApprox calculates the distance in meters treating the two points as
// lying on a local Cartesian plane. The longitude delta is scaled by the
// cosine of the mean latitude to correct for meridian convergence; using
// the mean keeps the result symmetric in its arguments. Accurate to well
// under a meter at city scale, drifts beyond that.
func PlanarApprox(lat1, lon1, lat2, lon2 float64) float64 {
	x := toRad(lon2-lon1) * math.Cos(toRad((lat1+lat2)/2))
	y := toRad(lat2 - lat1)
	return earthRadiusM * math.Hypot(x, y)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
