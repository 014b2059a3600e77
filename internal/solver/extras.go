package solver

import (
	"math"

	"github.com/chord/chordgeo/internal/ellipsoid"
	"github.com/chord/chordgeo/internal/geodesy"
	"github.com/chord/chordgeo/internal/transform"
)

// InverseResult extends the basic chord observation with the quantities
// observed from the far endpoint and the height-free reduced chord.
type InverseResult struct {
	ChordObservation
	ReverseAzimuthDeg float64
	ReverseZenithDeg  float64
	ReducedChordM     float64
}

// DirectResult is the full direct-problem solution: the computed
// endpoint plus the reverse observation from it back to the station.
// Iterations counts the Cartesian-to-geodetic refinement steps consumed.
type DirectResult struct {
	Point             geodesy.GeodeticPoint
	ReverseAzimuthDeg float64
	ReverseZenithDeg  float64
	ReducedChordM     float64
	Iterations        int
}

// InverseFull solves the inverse problem and additionally reports the
// reverse azimuth and zenith distance (from p2 back to p1) and the
// reduced chord. The reverse angles come from projecting the negated
// chord into the frame at p2; on an ellipsoid the reverse azimuth is
// not the forward azimuth ± 180° except in symmetric configurations.
func InverseFull(p1, p2 geodesy.GeodeticPoint, ell *ellipsoid.Ellipsoid) (InverseResult, error) {
	p1n, err := p1.Normalize()
	if err != nil {
		return InverseResult{}, err
	}
	p2n, err := p2.Normalize()
	if err != nil {
		return InverseResult{}, err
	}

	c1 := transform.ToCartesian(p1n, ell)
	c2 := transform.ToCartesian(p2n, ell)

	forward, err := chordBetween(p1n, c1, c2)
	if err != nil {
		return InverseResult{}, err
	}
	reverse, err := chordBetween(p2n, c2, c1)
	if err != nil {
		return InverseResult{}, err
	}

	return InverseResult{
		ChordObservation:  forward,
		ReverseAzimuthDeg: reverse.AzimuthDeg,
		ReverseZenithDeg:  reverse.ZenithDeg,
		ReducedChordM:     reducedChord(p1n, p2n, forward.ChordM, ell),
	}, nil
}

// DirectFull solves the direct problem and additionally reports the
// reverse observation from the computed endpoint and the reduced chord.
// Fails with DegenerateInputError when the chord length is zero, since
// the reverse angles are then undefined.
func DirectFull(p1 geodesy.GeodeticPoint, obs ChordObservation, ell *ellipsoid.Ellipsoid) (DirectResult, error) {
	p2, c1, c2, iters, err := direct(p1, obs, ell)
	if err != nil {
		return DirectResult{}, err
	}

	reverse, err := chordBetween(p2, c2, c1)
	if err != nil {
		return DirectResult{}, err
	}

	// The reduction reads only latitudes and heights, which normalization
	// never alters, so the raw p1 is fine here.
	return DirectResult{
		Point:             p2,
		ReverseAzimuthDeg: reverse.AzimuthDeg,
		ReverseZenithDeg:  reverse.ZenithDeg,
		ReducedChordM:     reducedChord(p1, p2, obs.ChordM, ell),
		Iterations:        iters,
	}, nil
}

// reducedChord removes the station heights from a chord of length s
// between p1 and p2, giving the chord between the corresponding surface
// points. Molodensky's reduction: with
//
//	k = h₁/N₁ + h₂/N₂ + h₁h₂/(N₁N₂)
//	τ = 2(N₂-N₁)(h₂-h₁) + k·μ·d² - 2e²·d·(h₂sinφ₂ - h₁sinφ₁)
//	p = (k + (h₂-h₁)²/s² + τ/s²) / (1+k)
//
// where d = N₂sinφ₂ - N₁sinφ₁ and μ = (a⁴-b⁴)/a⁴, the reduced chord is
// s - s·p/(1+√(1-p)).
func reducedChord(p1, p2 geodesy.GeodeticPoint, s float64, ell *ellipsoid.Ellipsoid) float64 {
	lat1 := p1.LatDeg * geodesy.Deg2Rad
	lat2 := p2.LatDeg * geodesy.Deg2Rad
	h1 := p1.HeightM
	h2 := p2.HeightM

	n1 := ell.PrimeVerticalRadius(lat1)
	n2 := ell.PrimeVerticalRadius(lat2)

	k := h1/n1 + h2/n2 + (h1*h2)/(n1*n2)
	d := n2*math.Sin(lat2) - n1*math.Sin(lat1)

	tau := 2*(n2-n1)*(h2-h1) +
		k*ell.Mu()*d*d -
		2*ell.E2()*d*(h2*math.Sin(lat2)-h1*math.Sin(lat1))

	p := (k + (h2-h1)*(h2-h1)/(s*s) + tau/(s*s)) / (1 + k)

	return s - s*p/(1+math.Sqrt(1-p))
}
