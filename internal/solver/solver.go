// Package solver implements the direct and inverse geodetic problems
// with ellipsoidal chords: the connecting line between two points is the
// straight 3-D segment through the ellipsoid's interior, not a surface
// arc. Both solvers are stateless pure functions of their inputs.
package solver

import (
	"math"

	"github.com/chord/chordgeo/internal/ellipsoid"
	"github.com/chord/chordgeo/internal/geodesy"
	"github.com/chord/chordgeo/internal/transform"
)

// ChordObservation describes the chord leaving a station: azimuth in
// degrees clockwise from local north in [0, 360), zenith distance in
// degrees from local up in [0, 180], and the chord length in meters.
type ChordObservation struct {
	AzimuthDeg float64
	ZenithDeg  float64
	ChordM     float64
}

// Normalize validates the observation and wraps the azimuth into
// [0, 360). Zenith distance and chord length are rejected rather than
// wrapped: a zenith outside [0, 180] or a negative chord has no single
// obvious intent.
func (o ChordObservation) Normalize() (ChordObservation, error) {
	if math.IsNaN(o.AzimuthDeg) || math.IsInf(o.AzimuthDeg, 0) {
		return o, &geodesy.InvalidParameterError{Param: "azimuth", Value: o.AzimuthDeg, Reason: "must be finite"}
	}
	if math.IsNaN(o.ZenithDeg) || o.ZenithDeg < 0 || o.ZenithDeg > 180 {
		return o, &geodesy.InvalidParameterError{Param: "zenith distance", Value: o.ZenithDeg, Reason: "must be in [0, 180] degrees"}
	}
	if math.IsNaN(o.ChordM) || math.IsInf(o.ChordM, 0) || o.ChordM < 0 {
		return o, &geodesy.InvalidParameterError{Param: "chord length", Value: o.ChordM, Reason: "must be finite and non-negative"}
	}
	o.AzimuthDeg = geodesy.NormalizeAzimuth(o.AzimuthDeg)
	return o, nil
}

// Inverse solves the inverse problem: given two geodetic points on the
// ellipsoid, return the azimuth, zenith distance, and length of the
// chord from p1 to p2. Fails with DegenerateInputError when the points
// coincide, since direction angles are then undefined.
func Inverse(p1, p2 geodesy.GeodeticPoint, ell *ellipsoid.Ellipsoid) (ChordObservation, error) {
	p1n, err := p1.Normalize()
	if err != nil {
		return ChordObservation{}, err
	}
	p2n, err := p2.Normalize()
	if err != nil {
		return ChordObservation{}, err
	}

	c1 := transform.ToCartesian(p1n, ell)
	c2 := transform.ToCartesian(p2n, ell)

	return chordBetween(p1n, c1, c2)
}

// chordBetween projects the chord from c1 (at station p1) to c2 into the
// local frame at p1 and derives the observation.
func chordBetween(p1 geodesy.GeodeticPoint, c1, c2 geodesy.CartesianPoint) (ChordObservation, error) {
	dx := c2.X - c1.X
	dy := c2.Y - c1.Y
	dz := c2.Z - c1.Z

	s := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if s == 0 {
		return ChordObservation{}, &geodesy.DegenerateInputError{
			Reason: "points coincide, azimuth and zenith distance are undefined",
		}
	}

	f := transform.FrameAtPoint(p1)
	e, n, u := f.ToLocal(dx, dy, dz)

	az := math.Atan2(e, n)
	if az < 0 {
		az += 2 * math.Pi
	}

	// Guard u/s against rounding just outside [-1, 1].
	cosZen := u / s
	if cosZen > 1 {
		cosZen = 1
	} else if cosZen < -1 {
		cosZen = -1
	}

	return ChordObservation{
		AzimuthDeg: geodesy.NormalizeAzimuth(az * geodesy.Rad2Deg),
		ZenithDeg:  math.Acos(cosZen) * geodesy.Rad2Deg,
		ChordM:     s,
	}, nil
}

// Direct solves the direct problem: given a station, plus the azimuth,
// zenith distance, and length of the chord leaving it, return the
// geodetic coordinates of the far endpoint. A ConvergenceError from the
// Cartesian-to-geodetic conversion is propagated.
func Direct(p1 geodesy.GeodeticPoint, obs ChordObservation, ell *ellipsoid.Ellipsoid) (geodesy.GeodeticPoint, error) {
	p2, _, _, _, err := direct(p1, obs, ell)
	return p2, err
}

func direct(p1 geodesy.GeodeticPoint, obs ChordObservation, ell *ellipsoid.Ellipsoid) (p2 geodesy.GeodeticPoint, c1, c2 geodesy.CartesianPoint, iters int, err error) {
	p1n, err := p1.Normalize()
	if err != nil {
		return geodesy.GeodeticPoint{}, c1, c2, 0, err
	}
	o, err := obs.Normalize()
	if err != nil {
		return geodesy.GeodeticPoint{}, c1, c2, 0, err
	}

	az := o.AzimuthDeg * geodesy.Deg2Rad
	zen := o.ZenithDeg * geodesy.Deg2Rad

	// Local displacement: east, north, up components of the chord.
	e := o.ChordM * math.Sin(zen) * math.Sin(az)
	n := o.ChordM * math.Sin(zen) * math.Cos(az)
	u := o.ChordM * math.Cos(zen)

	f := transform.FrameAtPoint(p1n)
	dx, dy, dz := f.ToGeocentric(e, n, u)

	c1 = transform.ToCartesian(p1n, ell)
	c2 = geodesy.CartesianPoint{X: c1.X + dx, Y: c1.Y + dy, Z: c1.Z + dz}

	p2, iters, err = transform.ToGeodeticCounted(c2, ell)
	return p2, c1, c2, iters, err
}
