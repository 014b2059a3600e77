// Package report renders solver results for human consumption. It is a
// presentation collaborator only: it consumes the structured numeric
// outputs and never participates in the computation itself.
package report

import (
	"fmt"

	"github.com/chord/chordgeo/internal/geodesy"
	"github.com/chord/chordgeo/internal/solver"
)

// Options controls rendering. DMS switches angular values from decimal
// degrees to degrees-minutes-seconds notation.
type Options struct {
	DMS bool
}

// FormatDMS renders a decimal-degree angle as DMS, e.g. 30.5 → 30°30'0.00000000".
func FormatDMS(decimalDegrees float64) string {
	degrees := int(decimalDegrees)

	minutesFloat := (abs(decimalDegrees) - absInt(degrees)) * 60
	minutes := int(minutesFloat)
	seconds := (minutesFloat - float64(minutes)) * 60

	return fmt.Sprintf("%d°%d'%.8f\"", degrees, minutes, seconds)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func absInt(x int) float64 {
	if x < 0 {
		return float64(-x)
	}
	return float64(x)
}

func (o Options) angle(deg float64) string {
	if o.DMS {
		return FormatDMS(deg)
	}
	return fmt.Sprintf("%.9f°", deg)
}

// Inverse renders the full inverse-problem solution as ordered lines.
func Inverse(res solver.InverseResult, opt Options) []string {
	return []string{
		fmt.Sprintf("Chord (distance): %.4f m", res.ChordM),
		fmt.Sprintf("Reduced chord: %.4f m", res.ReducedChordM),
		"Forward azimuth: " + opt.angle(res.AzimuthDeg),
		"Reverse azimuth: " + opt.angle(res.ReverseAzimuthDeg),
		"Forward zenith distance: " + opt.angle(res.ZenithDeg),
		"Reverse zenith distance: " + opt.angle(res.ReverseZenithDeg),
	}
}

// Direct renders the full direct-problem solution as ordered lines.
func Direct(res solver.DirectResult, opt Options) []string {
	return []string{
		"Latitude: " + opt.angle(res.Point.LatDeg),
		"Longitude: " + opt.angle(res.Point.LonDeg),
		fmt.Sprintf("Height: %.4f m", res.Point.HeightM),
		fmt.Sprintf("Reduced chord: %.4f m", res.ReducedChordM),
		"Reverse azimuth: " + opt.angle(res.ReverseAzimuthDeg),
		"Reverse zenith distance: " + opt.angle(res.ReverseZenithDeg),
	}
}

// Point renders a geodetic point on one line, for CLI echo output.
func Point(p geodesy.GeodeticPoint, opt Options) string {
	return fmt.Sprintf("%s %s %.4f m", opt.angle(p.LatDeg), opt.angle(p.LonDeg), p.HeightM)
}
