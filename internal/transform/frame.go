package transform

import (
	"math"

	"github.com/chord/chordgeo/internal/geodesy"
)

// LocalFrame is the orthonormal East-North-Up basis at a geodetic point,
// expressed in geocentric Cartesian axes. The three vectors form the
// rotation matrix from local topocentric to geocentric coordinates; its
// transpose performs the inverse rotation.
type LocalFrame struct {
	East  [3]float64
	North [3]float64
	Up    [3]float64
}

// FrameAt builds the East-North-Up frame for geodetic latitude and
// longitude in radians. Orthonormal by construction.
func FrameAt(latRad, lonRad float64) LocalFrame {
	sinLat := math.Sin(latRad)
	cosLat := math.Cos(latRad)
	sinLon := math.Sin(lonRad)
	cosLon := math.Cos(lonRad)

	return LocalFrame{
		East:  [3]float64{-sinLon, cosLon, 0},
		North: [3]float64{-sinLat * cosLon, -sinLat * sinLon, cosLat},
		Up:    [3]float64{cosLat * cosLon, cosLat * sinLon, sinLat},
	}
}

// FrameAtPoint builds the frame at a geodetic point given in degrees.
func FrameAtPoint(p geodesy.GeodeticPoint) LocalFrame {
	return FrameAt(p.LatDeg*geodesy.Deg2Rad, p.LonDeg*geodesy.Deg2Rad)
}

// ToLocal rotates a geocentric vector into its (east, north, up)
// components at this frame's anchor point.
func (f LocalFrame) ToLocal(x, y, z float64) (e, n, u float64) {
	e = f.East[0]*x + f.East[1]*y + f.East[2]*z
	n = f.North[0]*x + f.North[1]*y + f.North[2]*z
	u = f.Up[0]*x + f.Up[1]*y + f.Up[2]*z
	return e, n, u
}

// ToGeocentric rotates local (east, north, up) components into geocentric
// Cartesian axes.
func (f LocalFrame) ToGeocentric(e, n, u float64) (x, y, z float64) {
	x = f.East[0]*e + f.North[0]*n + f.Up[0]*u
	y = f.East[1]*e + f.North[1]*n + f.Up[1]*u
	z = f.East[2]*e + f.North[2]*n + f.Up[2]*u
	return x, y, z
}
