package geodesy

import "fmt"

// InvalidParameterError reports an input outside its accepted domain:
// malformed ellipsoid axes, latitude, zenith distance, longitude, or a
// non-finite numeric value.
type InvalidParameterError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Param, e.Value, e.Reason)
}

// DegenerateInputError reports inputs for which the requested quantities
// are mathematically undefined, e.g. the azimuth between coincident points.
type DegenerateInputError struct {
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return "degenerate input: " + e.Reason
}

// ConvergenceError reports that the Cartesian-to-geodetic refinement did
// not settle within its iteration cap. Reachable only with malformed or
// non-finite Cartesian inputs.
type ConvergenceError struct {
	Iterations int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("geodetic latitude iteration did not converge after %d iterations", e.Iterations)
}
