package pricing

import (
	"fmt"
	"math"

	"github.com/samirrijal/dopc/internal/core/domain"
	"github.com/samirrijal/dopc/internal/pkg/geospatial"
)

// DistanceMethod selects how the straight-line distance between the user
// and the venue is computed.
type DistanceMethod string

const (
	// MethodPlanar projects both points onto a local Cartesian plane.
	// Adequate for short distances only.
	MethodPlanar DistanceMethod = "planar"
	// MethodHaversine uses the great-circle haversine formula.
	MethodHaversine DistanceMethod = "haversine"
)

// ParseDistanceMethod maps a configuration string to a DistanceMethod.
func ParseDistanceMethod(s string) (DistanceMethod, error) {
	switch m := DistanceMethod(s); m {
	case MethodPlanar, MethodHaversine:
		return m, nil
	default:
		return "", fmt.Errorf("unknown distance method %q", s)
	}
}

// Distance returns the distance between two points in whole meters,
// rounded half up. Identical points yield 0. Any finite coordinate pair
// is valid input.
func Distance(a, b domain.GeoPoint, method DistanceMethod) int {
	var meters float64
	switch method {
	case MethodPlanar:
		meters = geospatial.PlanarApprox(a.Lat, a.Lon, b.Lat, b.Lon)
	default:
		meters = geospatial.Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
	}
	return int(math.Round(meters))
}
