// Package transform converts between geodetic and geocentric Cartesian
// coordinates on an arbitrary rotational ellipsoid and builds the local
// topocentric (East-North-Up) frame at a station.
//
// The geodetic-to-Cartesian direction is closed form. The reverse
// direction recovers latitude with a bounded fixed-point refinement,
// since the prime-vertical radius N(φ) depends on the latitude being
// solved for.
package transform

import (
	"math"

	"github.com/chord/chordgeo/internal/ellipsoid"
	"github.com/chord/chordgeo/internal/geodesy"
)

const (
	// latTolRad is the convergence tolerance for successive latitude
	// iterates, in radians.
	latTolRad = 1e-12

	// maxIterations caps the latitude refinement. Well-formed inputs
	// converge in 3-5 iterations; hitting the cap means the input is
	// degenerate or non-finite.
	maxIterations = 20
)

// ToCartesian converts a geodetic point to geocentric Cartesian meters on
// the given ellipsoid. Exact closed form, no iteration.
func ToCartesian(p geodesy.GeodeticPoint, ell *ellipsoid.Ellipsoid) geodesy.CartesianPoint {
	lat := p.LatDeg * geodesy.Deg2Rad
	lon := p.LonDeg * geodesy.Deg2Rad

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	n := ell.PrimeVerticalRadius(lat)

	return geodesy.CartesianPoint{
		X: (n + p.HeightM) * cosLat * math.Cos(lon),
		Y: (n + p.HeightM) * cosLat * math.Sin(lon),
		Z: (n*(1-ell.E2()) + p.HeightM) * sinLat,
	}
}

// ToGeodetic converts a geocentric Cartesian point back to geodetic
// coordinates on the given ellipsoid. Longitude is direct via atan2;
// latitude and height come from the bounded fixed-point refinement.
//
// On the rotation axis (X = Y = 0) the longitude is undefined and is
// reported as 0 by convention, with height |Z| - b.
func ToGeodetic(c geodesy.CartesianPoint, ell *ellipsoid.Ellipsoid) (geodesy.GeodeticPoint, error) {
	p, _, err := ToGeodeticCounted(c, ell)
	return p, err
}

// ToGeodeticCounted is ToGeodetic plus the number of refinement
// iterations consumed, for callers that observe convergence behavior.
func ToGeodeticCounted(c geodesy.CartesianPoint, ell *ellipsoid.Ellipsoid) (geodesy.GeodeticPoint, int, error) {
	rho := math.Hypot(c.X, c.Y)

	if rho == 0 {
		// On the rotation axis: latitude is ±90°, longitude undefined.
		lat := 90.0
		if c.Z < 0 {
			lat = -90.0
		}
		return geodesy.GeodeticPoint{
			LatDeg:  lat,
			LonDeg:  0,
			HeightM: math.Abs(c.Z) - ell.B(),
		}, 0, nil
	}

	lon := math.Atan2(c.Y, c.X)

	// Spherical latitude as the starting iterate.
	lat := math.Atan2(c.Z, rho*(1-ell.E2()))

	iters := 0
	converged := false
	for ; iters < maxIterations; iters++ {
		n := ell.PrimeVerticalRadius(lat)
		next := math.Atan2(c.Z+ell.E2()*n*math.Sin(lat), rho)
		if math.Abs(next-lat) < latTolRad {
			lat = next
			converged = true
			iters++
			break
		}
		lat = next
	}
	if !converged {
		return geodesy.GeodeticPoint{}, iters, &geodesy.ConvergenceError{Iterations: iters}
	}

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)

	// Height as the projection of the position onto the local vertical:
	// h = ρ·cosφ + Z·sinφ - a·sqrt(1 - e²·sin²φ). Algebraically equal to
	// ρ/cosφ - N(φ) but stable at high latitudes, and it degrades to
	// |Z| - b at the poles.
	w := math.Sqrt(1 - ell.E2()*sinLat*sinLat)
	h := rho*cosLat + c.Z*sinLat - ell.A()*w

	return geodesy.GeodeticPoint{
		LatDeg:  lat * geodesy.Rad2Deg,
		LonDeg:  lon * geodesy.Rad2Deg,
		HeightM: h,
	}, iters, nil
}
