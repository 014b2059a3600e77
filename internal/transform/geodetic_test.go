package transform

import (
	"errors"
	"math"
	"testing"

	"github.com/chord/chordgeo/internal/ellipsoid"
	"github.com/chord/chordgeo/internal/geodesy"
)

func grs80(t *testing.T) *ellipsoid.Ellipsoid {
	t.Helper()
	e, err := ellipsoid.New(6378137.0, 6356752.314245)
	if err != nil {
		t.Fatalf("ellipsoid: %v", err)
	}
	return e
}

func TestToCartesianKnownPoints(t *testing.T) {
	ell := grs80(t)

	// Equator / prime meridian at zero height: X = a, Y = Z = 0.
	c := ToCartesian(geodesy.GeodeticPoint{LatDeg: 0, LonDeg: 0, HeightM: 0}, ell)
	if math.Abs(c.X-ell.A()) > 1e-6 || math.Abs(c.Y) > 1e-6 || math.Abs(c.Z) > 1e-6 {
		t.Errorf("equator/prime meridian = %+v, want (a, 0, 0)", c)
	}

	// North pole at zero height: X = Y = 0, Z = b.
	c = ToCartesian(geodesy.GeodeticPoint{LatDeg: 90, LonDeg: 0, HeightM: 0}, ell)
	if math.Hypot(c.X, c.Y) > 1e-6 || math.Abs(c.Z-ell.B()) > 1e-6 {
		t.Errorf("north pole = %+v, want (0, 0, b)", c)
	}

	// Height adds radially: magnitude grows by exactly h on the equator.
	c0 := ToCartesian(geodesy.GeodeticPoint{LatDeg: 0, LonDeg: 45, HeightM: 0}, ell)
	c100 := ToCartesian(geodesy.GeodeticPoint{LatDeg: 0, LonDeg: 45, HeightM: 100}, ell)
	m0 := math.Sqrt(c0.X*c0.X + c0.Y*c0.Y + c0.Z*c0.Z)
	m100 := math.Sqrt(c100.X*c100.X + c100.Y*c100.Y + c100.Z*c100.Z)
	if math.Abs(m100-m0-100) > 1e-6 {
		t.Errorf("height delta = %v, want 100", m100-m0)
	}
}

func TestRoundTrip(t *testing.T) {
	ell := grs80(t)

	lats := []float64{-89.9, -60, -45.0001, -10, 0, 0.5, 25.674, 48.836, 66.56, 89.9}
	lons := []float64{-179.99, -120, -75, -2.5, 0, 2.335, 91.913, 120, 179.99, 180}
	heights := []float64{-1000, 0, 124.553, 1007.2, 8848, 400000}

	for _, lat := range lats {
		for _, lon := range lons {
			for _, h := range heights {
				p := geodesy.GeodeticPoint{LatDeg: lat, LonDeg: lon, HeightM: h}
				got, err := ToGeodetic(ToCartesian(p, ell), ell)
				if err != nil {
					t.Fatalf("round trip %+v: %v", p, err)
				}
				if math.Abs(got.LatDeg-lat) > 1e-9 {
					t.Errorf("lat %v/%v/%v: got %v (diff %.2e)", lat, lon, h, got.LatDeg, got.LatDeg-lat)
				}
				lonDiff := math.Abs(got.LonDeg - lon)
				if lonDiff > 180 {
					lonDiff = 360 - lonDiff
				}
				if lonDiff > 1e-9 {
					t.Errorf("lon %v/%v/%v: got %v", lat, lon, h, got.LonDeg)
				}
				if math.Abs(got.HeightM-h) > 1e-6 {
					t.Errorf("height %v/%v/%v: got %v (diff %.2e)", lat, lon, h, got.HeightM, got.HeightM-h)
				}
			}
		}
	}
}

func TestToGeodeticPoleConvention(t *testing.T) {
	ell := grs80(t)

	tests := []struct {
		name    string
		z       float64
		wantLat float64
		wantH   float64
	}{
		{"north pole on surface", ell.B(), 90, 0},
		{"south pole on surface", -ell.B(), -90, 0},
		{"above north pole", ell.B() + 5000, 90, 5000},
		{"below south pole", -(ell.B() - 250), -90, -250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToGeodetic(geodesy.CartesianPoint{X: 0, Y: 0, Z: tt.z}, ell)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.LonDeg != 0 {
				t.Errorf("longitude = %v, want 0 by convention", got.LonDeg)
			}
			if math.Abs(got.LatDeg-tt.wantLat) > 1e-9 {
				t.Errorf("latitude = %v, want %v", got.LatDeg, tt.wantLat)
			}
			if math.Abs(got.HeightM-tt.wantH) > 1e-6 {
				t.Errorf("height = %v, want %v (|Z| - b)", got.HeightM, tt.wantH)
			}
		})
	}
}

func TestToGeodeticNonFinite(t *testing.T) {
	ell := grs80(t)

	inputs := []geodesy.CartesianPoint{
		{X: math.NaN(), Y: 0, Z: 0},
		{X: 1e6, Y: math.NaN(), Z: 1e6},
		{X: 1e6, Y: 1e6, Z: math.NaN()},
	}
	for _, c := range inputs {
		_, err := ToGeodetic(c, ell)
		if err == nil {
			t.Errorf("ToGeodetic(%+v): expected convergence error", c)
			continue
		}
		var ce *geodesy.ConvergenceError
		if !errors.As(err, &ce) {
			t.Errorf("ToGeodetic(%+v): error is %T, want *ConvergenceError", c, err)
		}
	}
}

func TestToGeodeticCountedConverges(t *testing.T) {
	ell := grs80(t)
	c := ToCartesian(geodesy.GeodeticPoint{LatDeg: 48.836, LonDeg: 2.335, HeightM: 124.553}, ell)
	_, iters, err := ToGeodeticCounted(c, ell)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if iters < 1 || iters > 10 {
		t.Errorf("iterations = %d, want a small positive count", iters)
	}
}
