package metrics

import "testing"

func TestNormalizeRoute(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/healthz", "/healthz"},
		{"/readyz", "/readyz"},
		{"/metrics", "/metrics"},
		{"/api/v1/inverse", "/api/v1/inverse"},
		{"/api/v1/direct", "/api/v1/direct"},
		{"/api/v1/inverse/batch", "/api/v1/inverse/batch"},
		{"/api/v1/direct/batch", "/api/v1/direct/batch"},
		{"/api/v1/ellipsoids", "/api/v1/ellipsoids"},

		// Unknown/bot paths collapse to "other".
		{"/", "other"},
		{"/wp-admin", "other"},
		{"/robots.txt", "other"},
		{"/.env", "other"},
		{"/api/v1/inverse/", "other"},
		{"/api/v2/inverse", "other"},
		{"/favicon.ico", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := normalizeRoute(tt.path); got != tt.want {
				t.Errorf("normalizeRoute(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// TestMetricsCardinality verifies that arbitrary unknown paths produce a
// single label, not one per path.
func TestMetricsCardinality(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range []string{"/a", "/b/c", "/api/v1/x", "/api/v1/inverse/123", "/..%2f"} {
		seen[normalizeRoute(p)] = true
	}
	if len(seen) != 1 {
		t.Errorf("expected 1 unique label for unknown paths, got %d: %v", len(seen), seen)
	}
}
