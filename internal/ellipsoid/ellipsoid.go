// Package ellipsoid models a rotational reference ellipsoid by its
// semi-major and semi-minor axes and exposes the derived constants the
// coordinate conversions depend on.
package ellipsoid

import (
	"math"

	"github.com/chord/chordgeo/internal/geodesy"
)

// Ellipsoid is an immutable reference ellipsoid. Construct with New and
// share by reference; all derived constants are computed once.
type Ellipsoid struct {
	a  float64 // semi-major axis (m)
	b  float64 // semi-minor axis (m)
	e2 float64 // first eccentricity squared
	f  float64 // flattening
	mu float64 // (a⁴-b⁴)/a⁴, used by the chord-reduction formula
}

// New constructs an ellipsoid from its semi-major axis a and semi-minor
// axis b, both in meters. Axes must be finite, positive, and satisfy b ≤ a.
func New(a, b float64) (*Ellipsoid, error) {
	switch {
	case math.IsNaN(a) || math.IsInf(a, 0) || a <= 0:
		return nil, &geodesy.InvalidParameterError{Param: "semi-major axis", Value: a, Reason: "must be finite and positive"}
	case math.IsNaN(b) || math.IsInf(b, 0) || b <= 0:
		return nil, &geodesy.InvalidParameterError{Param: "semi-minor axis", Value: b, Reason: "must be finite and positive"}
	case b > a:
		return nil, &geodesy.InvalidParameterError{Param: "semi-minor axis", Value: b, Reason: "must not exceed the semi-major axis"}
	}

	ratio := b / a
	return &Ellipsoid{
		a:  a,
		b:  b,
		e2: 1 - ratio*ratio,
		f:  1 - ratio,
		mu: (a*a*a*a - b*b*b*b) / (a * a * a * a),
	}, nil
}

// A returns the semi-major axis in meters.
func (e *Ellipsoid) A() float64 { return e.a }

// B returns the semi-minor axis in meters.
func (e *Ellipsoid) B() float64 { return e.b }

// E2 returns the first eccentricity squared, 1 - (b/a)².
func (e *Ellipsoid) E2() float64 { return e.e2 }

// F returns the flattening, 1 - b/a.
func (e *Ellipsoid) F() float64 { return e.f }

// Mu returns (a⁴-b⁴)/a⁴.
func (e *Ellipsoid) Mu() float64 { return e.mu }

// PrimeVerticalRadius returns N(φ) = a / sqrt(1 - e²·sin²φ), the radius of
// curvature in the prime vertical at geodetic latitude φ (radians).
func (e *Ellipsoid) PrimeVerticalRadius(latRad float64) float64 {
	s := math.Sin(latRad)
	return e.a / math.Sqrt(1-e.e2*s*s)
}
