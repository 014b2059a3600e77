package geodesy

import (
	"errors"
	"math"
	"testing"
)

func TestNormalizeLongitude(t *testing.T) {
	tests := []struct {
		in      float64
		want    float64
		wantErr bool
	}{
		{0, 0, false},
		{180, 180, false},
		{-179.999, -179.999, false},
		{-180, 180, false}, // -180 and 180 are the same meridian; canonical form is +180
		{285, -75, false},  // -75°E given as 285°
		{190, -170, false},
		{360, 0, false},
		{-190, 170, false},
		{361, 0, true},
		{-360, 0, true},
		{720, 0, true},
		{math.NaN(), 0, true},
	}
	for _, tt := range tests {
		got, err := NormalizeLongitude(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NormalizeLongitude(%v): expected error, got %v", tt.in, got)
			}
			var ipe *InvalidParameterError
			if err != nil && !errors.As(err, &ipe) {
				t.Errorf("NormalizeLongitude(%v): error is %T, want *InvalidParameterError", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeLongitude(%v): unexpected error %v", tt.in, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("NormalizeLongitude(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeAzimuth(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{450, 90},
		{-90, 270},
		{-720, 0},
		{72.649, 72.649},
	}
	for _, tt := range tests {
		if got := NormalizeAzimuth(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("NormalizeAzimuth(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGeodeticPointNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      GeodeticPoint
		wantLon float64
		wantErr bool
	}{
		{"valid", GeodeticPoint{48.836, 2.335, 124.553}, 2.335, false},
		{"wraps high longitude", GeodeticPoint{10, 285, 0}, -75, false},
		{"latitude too high", GeodeticPoint{90.001, 0, 0}, 0, true},
		{"latitude too low", GeodeticPoint{-91, 0, 0}, 0, true},
		{"latitude NaN", GeodeticPoint{math.NaN(), 0, 0}, 0, true},
		{"height infinite", GeodeticPoint{0, 0, math.Inf(1)}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Normalize()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got.LonDeg-tt.wantLon) > 1e-12 {
				t.Errorf("LonDeg = %v, want %v", got.LonDeg, tt.wantLon)
			}
			if got.LatDeg != tt.in.LatDeg || got.HeightM != tt.in.HeightM {
				t.Errorf("latitude/height changed: %+v", got)
			}
		})
	}
}
