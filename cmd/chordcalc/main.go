// chordcalc solves a single direct or inverse chord problem from the
// command line and prints the full report. Offline companion to the
// chordgeo service.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chord/chordgeo/internal/ellipsoid"
	"github.com/chord/chordgeo/internal/geodesy"
	"github.com/chord/chordgeo/internal/report"
	"github.com/chord/chordgeo/internal/solver"
)

func main() {
	var (
		problem = flag.String("problem", "inverse", "problem to solve: inverse or direct")
		ellName = flag.String("ellipsoid", "", "named reference ellipsoid (default GRS80)")
		a       = flag.Float64("a", 0, "semi-major axis in meters (overrides -ellipsoid, requires -b)")
		b       = flag.Float64("b", 0, "semi-minor axis in meters (overrides -ellipsoid, requires -a)")
		dms     = flag.Bool("dms", false, "print angles in degrees-minutes-seconds")

		lat1    = flag.Float64("lat1", 0, "latitude of point 1 in degrees")
		lon1    = flag.Float64("lon1", 0, "longitude of point 1 in degrees")
		height1 = flag.Float64("height1", 0, "ellipsoidal height of point 1 in meters")

		lat2    = flag.Float64("lat2", 0, "inverse: latitude of point 2 in degrees")
		lon2    = flag.Float64("lon2", 0, "inverse: longitude of point 2 in degrees")
		height2 = flag.Float64("height2", 0, "inverse: ellipsoidal height of point 2 in meters")

		azimuth = flag.Float64("azimuth", 0, "direct: forward azimuth in degrees")
		zenith  = flag.Float64("zenith", 0, "direct: zenith distance in degrees")
		chord   = flag.Float64("chord", 0, "direct: chord length in meters")
	)
	flag.Parse()

	ell, err := resolveEllipsoid(*ellName, *a, *b)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}

	opt := report.Options{DMS: *dms}
	p1 := geodesy.GeodeticPoint{LatDeg: *lat1, LonDeg: *lon1, HeightM: *height1}

	var lines []string
	switch *problem {
	case "inverse":
		p2 := geodesy.GeodeticPoint{LatDeg: *lat2, LonDeg: *lon2, HeightM: *height2}
		res, err := solver.InverseFull(p1, p2, ell)
		if err != nil {
			fmt.Fprintln(os.Stderr, "ERROR:", err)
			os.Exit(1)
		}
		lines = report.Inverse(res, opt)
	case "direct":
		obs := solver.ChordObservation{AzimuthDeg: *azimuth, ZenithDeg: *zenith, ChordM: *chord}
		res, err := solver.DirectFull(p1, obs, ell)
		if err != nil {
			fmt.Fprintln(os.Stderr, "ERROR:", err)
			os.Exit(1)
		}
		fmt.Println("Point 2:", report.Point(res.Point, opt))
		lines = report.Direct(res, opt)
	default:
		fmt.Fprintf(os.Stderr, "ERROR: unknown problem %q (want inverse or direct)\n", *problem)
		os.Exit(1)
	}

	fmt.Printf("Ellipsoid: a=%.4f m, b=%.4f m\n", ell.A(), ell.B())
	for _, line := range lines {
		fmt.Println(line)
	}
}

func resolveEllipsoid(name string, a, b float64) (*ellipsoid.Ellipsoid, error) {
	switch {
	case name != "" && (a != 0 || b != 0):
		return nil, fmt.Errorf("use either -ellipsoid or -a/-b, not both")
	case a != 0 || b != 0:
		return ellipsoid.New(a, b)
	case name != "":
		return ellipsoid.Lookup(name)
	default:
		return ellipsoid.Default(), nil
	}
}
