package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/chord/chordgeo/internal/batch"
	"github.com/chord/chordgeo/internal/ellipsoid"
	"github.com/chord/chordgeo/internal/geodesy"
	"github.com/chord/chordgeo/internal/metrics"
	"github.com/chord/chordgeo/internal/solver"
)

// batchEnvelope is the shared request framing for both batch endpoints.
// Exactly like the single-shot endpoints, the ellipsoid override is
// either a registry name or explicit axes, never both.
type batchEnvelope struct {
	Ellipsoid string   `json:"ellipsoid,omitempty"`
	A         *float64 `json:"a,omitempty"`
	B         *float64 `json:"b,omitempty"`
}

type inverseBatchRequest struct {
	batchEnvelope
	Problems []inverseProblemJSON `json:"problems"`
}

type inverseProblemJSON struct {
	Lat1    float64 `json:"lat1"`
	Lon1    float64 `json:"lon1"`
	Height1 float64 `json:"height1"`
	Lat2    float64 `json:"lat2"`
	Lon2    float64 `json:"lon2"`
	Height2 float64 `json:"height2"`
}

type directBatchRequest struct {
	batchEnvelope
	Problems []directProblemJSON `json:"problems"`
}

type directProblemJSON struct {
	Lat1    float64 `json:"lat1"`
	Lon1    float64 `json:"lon1"`
	Height1 float64 `json:"height1"`
	Azimuth float64 `json:"azimuth"`
	Zenith  float64 `json:"zenith"`
	Chord   float64 `json:"chord"`
}

type inverseBatchItem struct {
	Result *inverseResponse `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

type directBatchItem struct {
	Result *directResponse `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func (e batchEnvelope) ellipsoid(cfg Config) (*ellipsoid.Ellipsoid, error) {
	q := url.Values{}
	if e.Ellipsoid != "" {
		q.Set("ellipsoid", e.Ellipsoid)
	}
	if e.A != nil {
		q.Set("a", fmt.Sprintf("%v", *e.A))
	}
	if e.B != nil {
		q.Set("b", fmt.Sprintf("%v", *e.B))
	}
	return ellipsoidFromQuery(q, cfg)
}

// checkBatch enforces the problem-count budget before any work is done.
func checkBatch(w http.ResponseWriter, n int, cfg Config) bool {
	if n == 0 {
		writeError(w, http.StatusBadRequest, "batch contains no problems")
		return false
	}
	if n > cfg.BatchMaxProblems {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":        "too many problems in one batch",
			"max_problems": cfg.BatchMaxProblems,
		})
		return false
	}
	metrics.ObserveBatchSize(n)
	return true
}

func inverseBatchHandler(logger *slog.Logger, cfg Config, pool *batch.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req inverseBatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed JSON body: "+err.Error())
			return
		}
		if !checkBatch(w, len(req.Problems), cfg) {
			return
		}

		ell, err := req.ellipsoid(cfg)
		if err != nil {
			status, _ := classify(err)
			writeError(w, status, err.Error())
			return
		}

		problems := make([]batch.InverseProblem, len(req.Problems))
		for i, p := range req.Problems {
			problems[i] = batch.InverseProblem{
				P1: geodesy.GeodeticPoint{LatDeg: p.Lat1, LonDeg: p.Lon1, HeightM: p.Height1},
				P2: geodesy.GeodeticPoint{LatDeg: p.Lat2, LonDeg: p.Lon2, HeightM: p.Height2},
			}
		}

		outcomes := pool.SolveInverse(r.Context(), problems, ell)

		items := make([]inverseBatchItem, len(outcomes))
		failed := 0
		for i, o := range outcomes {
			if o.Err != "" {
				items[i].Error = o.Err
				failed++
				metrics.ObserveSolution("inverse", "batch_item_error")
				continue
			}
			resp := newInverseResponse(o.Result)
			items[i].Result = &resp
			metrics.ObserveSolution("inverse", "ok")
		}

		logger.Info("batch solved",
			"component", "api",
			"problem", "inverse",
			"count", len(items),
			"failed", failed,
		)
		writeJSON(w, http.StatusOK, map[string]any{"count": len(items), "results": items})
	}
}

func directBatchHandler(logger *slog.Logger, cfg Config, pool *batch.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req directBatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "malformed JSON body: "+err.Error())
			return
		}
		if !checkBatch(w, len(req.Problems), cfg) {
			return
		}

		ell, err := req.ellipsoid(cfg)
		if err != nil {
			status, _ := classify(err)
			writeError(w, status, err.Error())
			return
		}

		problems := make([]batch.DirectProblem, len(req.Problems))
		for i, p := range req.Problems {
			problems[i] = batch.DirectProblem{
				Origin: geodesy.GeodeticPoint{LatDeg: p.Lat1, LonDeg: p.Lon1, HeightM: p.Height1},
				Observation: solver.ChordObservation{
					AzimuthDeg: p.Azimuth,
					ZenithDeg:  p.Zenith,
					ChordM:     p.Chord,
				},
			}
		}

		outcomes := pool.SolveDirect(r.Context(), problems, ell)

		items := make([]directBatchItem, len(outcomes))
		failed := 0
		for i, o := range outcomes {
			if o.Err != "" {
				items[i].Error = o.Err
				failed++
				metrics.ObserveSolution("direct", "batch_item_error")
				continue
			}
			resp := newDirectResponse(o.Result)
			items[i].Result = &resp
			metrics.ObserveSolution("direct", "ok")
			metrics.ObserveGeodeticIterations(o.Result.Iterations)
		}

		logger.Info("batch solved",
			"component", "api",
			"problem", "direct",
			"count", len(items),
			"failed", failed,
		)
		writeJSON(w, http.StatusOK, map[string]any{"count": len(items), "results": items})
	}
}
