package geo

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature is a geometry with its attributes.
type Feature struct {
	Geometry   orb.Geometry
	Properties geojson.Properties
}

// Property returns the attribute key formatted as a string, or "" when
// the feature has no such attribute.
func (f Feature) Property(key string) string {
	v, ok := f.Properties[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Bound returns the union of the bounds of all feature geometries.
// The second result is false when no feature has a geometry.
func Bound(features []Feature) (orb.Bound, bool) {
	var b orb.Bound
	found := false
	for _, f := range features {
		if f.Geometry == nil {
			continue
		}
		if !found {
			b = f.Geometry.Bound()
			found = true
			continue
		}
		b = b.Union(f.Geometry.Bound())
	}
	return b, found
}
