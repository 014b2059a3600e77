package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/chord/chordgeo/internal/ellipsoid"
	"github.com/chord/chordgeo/internal/geodesy"
	"github.com/chord/chordgeo/internal/metrics"
	"github.com/chord/chordgeo/internal/solver"
)

// inverseResponse is the JSON shape of a solved inverse problem.
type inverseResponse struct {
	AzimuthDeg        float64 `json:"azimuth"`
	ZenithDeg         float64 `json:"zenith_distance"`
	ChordM            float64 `json:"chord_length"`
	ReverseAzimuthDeg float64 `json:"reverse_azimuth"`
	ReverseZenithDeg  float64 `json:"reverse_zenith_distance"`
	ReducedChordM     float64 `json:"reduced_chord"`
}

// directResponse is the JSON shape of a solved direct problem.
type directResponse struct {
	LatDeg            float64 `json:"lat2"`
	LonDeg            float64 `json:"lon2"`
	HeightM           float64 `json:"height2"`
	ReverseAzimuthDeg float64 `json:"reverse_azimuth"`
	ReverseZenithDeg  float64 `json:"reverse_zenith_distance"`
	ReducedChordM     float64 `json:"reduced_chord"`
}

func newInverseResponse(res solver.InverseResult) inverseResponse {
	return inverseResponse{
		AzimuthDeg:        res.AzimuthDeg,
		ZenithDeg:         res.ZenithDeg,
		ChordM:            res.ChordM,
		ReverseAzimuthDeg: res.ReverseAzimuthDeg,
		ReverseZenithDeg:  res.ReverseZenithDeg,
		ReducedChordM:     res.ReducedChordM,
	}
}

func newDirectResponse(res solver.DirectResult) directResponse {
	return directResponse{
		LatDeg:            res.Point.LatDeg,
		LonDeg:            res.Point.LonDeg,
		HeightM:           res.Point.HeightM,
		ReverseAzimuthDeg: res.ReverseAzimuthDeg,
		ReverseZenithDeg:  res.ReverseZenithDeg,
		ReducedChordM:     res.ReducedChordM,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// classify maps a solver error to an HTTP status and a metrics outcome
// label. Invalid parameters are the caller's fault; degenerate inputs are
// well-formed but unanswerable; convergence failures are internal.
func classify(err error) (int, string) {
	var ipe *geodesy.InvalidParameterError
	if errors.As(err, &ipe) {
		return http.StatusBadRequest, "invalid_parameter"
	}
	var de *geodesy.DegenerateInputError
	if errors.As(err, &de) {
		return http.StatusUnprocessableEntity, "degenerate_input"
	}
	var ce *geodesy.ConvergenceError
	if errors.As(err, &ce) {
		return http.StatusInternalServerError, "convergence"
	}
	return http.StatusBadRequest, "bad_request"
}

// queryFloat parses a required numeric query parameter.
func queryFloat(q url.Values, name string) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing required parameter %q", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parameter %q: not a number: %q", name, raw)
	}
	return v, nil
}

// ellipsoidFromQuery resolves the ellipsoid for a request: explicit a/b
// axes, a registry name, or the configured default. Mixing the two
// override styles is rejected.
func ellipsoidFromQuery(q url.Values, cfg Config) (*ellipsoid.Ellipsoid, error) {
	name := q.Get("ellipsoid")
	hasAxes := q.Get("a") != "" || q.Get("b") != ""

	switch {
	case name != "" && hasAxes:
		return nil, errors.New("specify either ellipsoid= or a=/b=, not both")
	case name != "":
		return ellipsoid.Lookup(name)
	case hasAxes:
		a, err := queryFloat(q, "a")
		if err != nil {
			return nil, err
		}
		b, err := queryFloat(q, "b")
		if err != nil {
			return nil, err
		}
		return ellipsoid.New(a, b)
	default:
		return cfg.DefaultEllipsoid, nil
	}
}

func inverseHandler(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		ell, err := ellipsoidFromQuery(q, cfg)
		if err != nil {
			status, outcome := classify(err)
			metrics.ObserveSolution("inverse", outcome)
			writeError(w, status, err.Error())
			return
		}

		var p1, p2 geodesy.GeodeticPoint
		fields := []struct {
			name string
			dst  *float64
		}{
			{"lat1", &p1.LatDeg}, {"lon1", &p1.LonDeg}, {"height1", &p1.HeightM},
			{"lat2", &p2.LatDeg}, {"lon2", &p2.LonDeg}, {"height2", &p2.HeightM},
		}
		for _, f := range fields {
			v, err := queryFloat(q, f.name)
			if err != nil {
				metrics.ObserveSolution("inverse", "bad_request")
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			*f.dst = v
		}

		res, err := solver.InverseFull(p1, p2, ell)
		if err != nil {
			status, outcome := classify(err)
			metrics.ObserveSolution("inverse", outcome)
			writeError(w, status, err.Error())
			return
		}

		metrics.ObserveSolution("inverse", "ok")
		writeJSON(w, http.StatusOK, newInverseResponse(res))
	}
}

func directHandler(logger *slog.Logger, cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		ell, err := ellipsoidFromQuery(q, cfg)
		if err != nil {
			status, outcome := classify(err)
			metrics.ObserveSolution("direct", outcome)
			writeError(w, status, err.Error())
			return
		}

		var p1 geodesy.GeodeticPoint
		var obs solver.ChordObservation
		fields := []struct {
			name string
			dst  *float64
		}{
			{"lat1", &p1.LatDeg}, {"lon1", &p1.LonDeg}, {"height1", &p1.HeightM},
			{"azimuth", &obs.AzimuthDeg}, {"zenith", &obs.ZenithDeg}, {"chord", &obs.ChordM},
		}
		for _, f := range fields {
			v, err := queryFloat(q, f.name)
			if err != nil {
				metrics.ObserveSolution("direct", "bad_request")
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			*f.dst = v
		}

		res, err := solver.DirectFull(p1, obs, ell)
		if err != nil {
			status, outcome := classify(err)
			if status == http.StatusInternalServerError {
				logger.Error("direct solve failed to converge", "component", "api", "error", err)
			}
			metrics.ObserveSolution("direct", outcome)
			writeError(w, status, err.Error())
			return
		}

		metrics.ObserveSolution("direct", "ok")
		metrics.ObserveGeodeticIterations(res.Iterations)
		writeJSON(w, http.StatusOK, newDirectResponse(res))
	}
}

func ellipsoidsHandler() http.HandlerFunc {
	type entry struct {
		Key  string  `json:"key"`
		Name string  `json:"name"`
		A    float64 `json:"semi_major_axis"`
		B    float64 `json:"semi_minor_axis"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		presets := ellipsoid.Presets()
		entries := make([]entry, 0, len(presets))
		for _, p := range presets {
			entries = append(entries, entry{Key: p.Key, Name: p.Name, A: p.A, B: p.B})
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"default":    ellipsoid.DefaultKey,
			"ellipsoids": entries,
		})
	}
}
