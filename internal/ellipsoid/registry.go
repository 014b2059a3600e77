package ellipsoid

import (
	"fmt"
	"sort"
	"strings"
)

// Preset is a named reference ellipsoid from the registry.
type Preset struct {
	Key  string
	Name string
	A    float64
	B    float64
}

// DefaultKey is the registry key of the ellipsoid used when no override is given.
const DefaultKey = "grs80"

var presets = map[string]Preset{
	"grs80":            {Key: "grs80", Name: "GRS 1980", A: 6378137.0, B: 6356752.314140},
	"wgs84":            {Key: "wgs84", Name: "WGS 84", A: 6378137.0, B: 6356752.314245},
	"airy1830":         {Key: "airy1830", Name: "Airy 1830", A: 6377563.396, B: 6356256.909},
	"bessel1841":       {Key: "bessel1841", Name: "Bessel 1841", A: 6377397.155, B: 6356078.963},
	"clarke1880":       {Key: "clarke1880", Name: "Clarke 1880 (IGN)", A: 6378249.2, B: 6356515.0},
	"international1924": {Key: "international1924", Name: "International 1924 (Hayford)", A: 6378388.0, B: 6356911.946},
	"krassovsky1940":   {Key: "krassovsky1940", Name: "Krassovsky 1940", A: 6378245.0, B: 6356863.019},
}

// Lookup returns the ellipsoid registered under the given name
// (case-insensitive). Unknown names are an error listing what exists.
func Lookup(name string) (*Ellipsoid, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown ellipsoid %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	e, err := New(p.A, p.B)
	if err != nil {
		// Preset axes are compile-time constants; a failure here is a bug.
		return nil, fmt.Errorf("preset %q: %w", p.Key, err)
	}
	return e, nil
}

// Default returns the default reference ellipsoid (GRS 1980).
func Default() *Ellipsoid {
	e, err := Lookup(DefaultKey)
	if err != nil {
		panic(err)
	}
	return e
}

// Names returns the registry keys in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for k := range presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Presets returns all registered ellipsoids sorted by key.
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, k := range Names() {
		out = append(out, presets[k])
	}
	return out
}
