package geo

import (
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"

	"github.com/gogpu/sketch"
)

// ReadGeoJSON reads a GeoJSON FeatureCollection from path. Features
// without a geometry are skipped.
func ReadGeoJSON(path string) ([]Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("geo: %w", err)
	}
	features, err := ParseGeoJSON(data)
	if err != nil {
		return nil, fmt.Errorf("geo: %s: %w", path, err)
	}
	sketch.Logger().Debug("geo: read geojson", "path", path, "features", len(features))
	return features, nil
}

// ParseGeoJSON decodes a GeoJSON FeatureCollection.
func ParseGeoJSON(data []byte) ([]Feature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}
	features := make([]Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		props := f.Properties
		if props == nil {
			props = geojson.Properties{}
		}
		features = append(features, Feature{Geometry: f.Geometry, Properties: props})
	}
	return features, nil
}
