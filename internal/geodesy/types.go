// Package geodesy holds the shared value types for geodetic computations:
// points in geodetic and geocentric Cartesian form, angle conversions, and
// the error taxonomy surfaced by the converters and solvers.
package geodesy

import "math"

const (
	Deg2Rad = math.Pi / 180
	Rad2Deg = 180 / math.Pi
)

// GeodeticPoint is a position relative to a reference ellipsoid:
// latitude and longitude in decimal degrees, ellipsoidal height in meters.
type GeodeticPoint struct {
	LatDeg  float64
	LonDeg  float64
	HeightM float64
}

// CartesianPoint is a geocentric position in meters, origin at the
// ellipsoid's center, Z along the rotation axis.
type CartesianPoint struct {
	X, Y, Z float64
}

// Normalize validates the point and returns a copy with the longitude
// wrapped into (-180, 180]. Latitude must lie in [-90, 90]; longitude is
// accepted in (-360, 360] (the wrap handles values given in [0, 360)
// convention); height must be finite.
func (p GeodeticPoint) Normalize() (GeodeticPoint, error) {
	if math.IsNaN(p.LatDeg) || p.LatDeg < -90 || p.LatDeg > 90 {
		return p, &InvalidParameterError{Param: "latitude", Value: p.LatDeg, Reason: "must be in [-90, 90] degrees"}
	}
	lon, err := NormalizeLongitude(p.LonDeg)
	if err != nil {
		return p, err
	}
	if math.IsNaN(p.HeightM) || math.IsInf(p.HeightM, 0) {
		return p, &InvalidParameterError{Param: "height", Value: p.HeightM, Reason: "must be finite"}
	}
	p.LonDeg = lon
	return p, nil
}

// NormalizeLongitude wraps a longitude in (-360, 360] into (-180, 180].
// Values outside (-360, 360] are rejected rather than wrapped further,
// since they are far more likely to be unit mistakes than intent.
func NormalizeLongitude(lonDeg float64) (float64, error) {
	if math.IsNaN(lonDeg) || lonDeg > 360 || lonDeg <= -360 {
		return lonDeg, &InvalidParameterError{Param: "longitude", Value: lonDeg, Reason: "must be in (-360, 360] degrees"}
	}
	if lonDeg > 180 {
		lonDeg -= 360
	} else if lonDeg <= -180 {
		lonDeg += 360
	}
	return lonDeg, nil
}

// NormalizeAzimuth wraps an azimuth in degrees into [0, 360).
func NormalizeAzimuth(azDeg float64) float64 {
	az := math.Mod(azDeg, 360)
	if az < 0 {
		az += 360
	}
	return az
}
