package transform

import (
	"math"
	"testing"

	"github.com/chord/chordgeo/internal/geodesy"
)

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func TestFrameOrthonormal(t *testing.T) {
	points := []struct{ lat, lon float64 }{
		{0, 0}, {0, 90}, {45, -120}, {-33.9, 18.4}, {89.999, 7}, {-89.999, -170}, {48.836, 2.335},
	}
	for _, p := range points {
		f := FrameAt(p.lat*geodesy.Deg2Rad, p.lon*geodesy.Deg2Rad)

		for name, v := range map[string][3]float64{"east": f.East, "north": f.North, "up": f.Up} {
			if math.Abs(dot(v, v)-1) > 1e-14 {
				t.Errorf("(%v,%v) %s not unit length: %v", p.lat, p.lon, name, dot(v, v))
			}
		}
		if math.Abs(dot(f.East, f.North)) > 1e-14 ||
			math.Abs(dot(f.East, f.Up)) > 1e-14 ||
			math.Abs(dot(f.North, f.Up)) > 1e-14 {
			t.Errorf("(%v,%v) basis not orthogonal", p.lat, p.lon)
		}
	}
}

func TestFrameAtEquatorPrimeMeridian(t *testing.T) {
	f := FrameAt(0, 0)

	// At (0, 0): up = +X, east = +Y, north = +Z.
	if math.Abs(f.Up[0]-1) > 1e-15 || math.Abs(f.East[1]-1) > 1e-15 || math.Abs(f.North[2]-1) > 1e-15 {
		t.Errorf("frame at origin misaligned: %+v", f)
	}
}

func TestFrameRotationRoundTrip(t *testing.T) {
	f := FrameAtPoint(geodesy.GeodeticPoint{LatDeg: 25.674, LonDeg: 91.913})

	vectors := [][3]float64{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1234.5, -9876.5, 555.5},
	}
	for _, v := range vectors {
		e, n, u := f.ToLocal(v[0], v[1], v[2])
		x, y, z := f.ToGeocentric(e, n, u)
		if math.Abs(x-v[0]) > 1e-9 || math.Abs(y-v[1]) > 1e-9 || math.Abs(z-v[2]) > 1e-9 {
			t.Errorf("rotate round trip %v -> (%v,%v,%v)", v, x, y, z)
		}

		// Rotation preserves length.
		before := math.Sqrt(dot(v, v))
		after := math.Sqrt(e*e + n*n + u*u)
		if math.Abs(before-after) > 1e-9 {
			t.Errorf("rotation changed length: %v -> %v", before, after)
		}
	}
}
