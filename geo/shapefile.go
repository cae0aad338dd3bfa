package geo

import (
	"fmt"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/gogpu/sketch"
)

// ReadShapefile reads every record of the shapefile at path. The
// attributes of the matching DBF file, when present, become the feature
// properties keyed by field name.
//
// Polygon parts are grouped by orientation: a clockwise ring starts a
// new polygon and the counterclockwise rings that follow are its holes.
// Null records are skipped.
func ReadShapefile(path string) ([]Feature, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geo: open shapefile: %w", err)
	}
	defer r.Close()

	fields := r.Fields()
	var features []Feature
	for r.Next() {
		row, s := r.Shape()
		g := shapeGeometry(s)
		if g == nil {
			continue
		}
		props := geojson.Properties{}
		for i, f := range fields {
			props[f.String()] = strings.TrimRight(r.ReadAttribute(row, i), "\x00 ")
		}
		features = append(features, Feature{Geometry: g, Properties: props})
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("geo: read shapefile %s: %w", path, err)
	}

	sketch.Logger().Debug("geo: read shapefile",
		"path", path, "features", len(features), "fields", len(fields))
	return features, nil
}

func shapeGeometry(s shp.Shape) orb.Geometry {
	switch s := s.(type) {
	case *shp.Point:
		return orb.Point{s.X, s.Y}
	case *shp.PointZ:
		return orb.Point{s.X, s.Y}
	case *shp.PointM:
		return orb.Point{s.X, s.Y}
	case *shp.MultiPoint:
		return multiPoint(s.Points)
	case *shp.MultiPointZ:
		return multiPoint(s.Points)
	case *shp.MultiPointM:
		return multiPoint(s.Points)
	case *shp.PolyLine:
		return lines(parts(s.Parts, s.Points))
	case *shp.PolyLineZ:
		return lines(parts(s.Parts, s.Points))
	case *shp.PolyLineM:
		return lines(parts(s.Parts, s.Points))
	case *shp.Polygon:
		return polygons(parts(s.Parts, s.Points))
	case *shp.PolygonZ:
		return polygons(parts(s.Parts, s.Points))
	case *shp.PolygonM:
		return polygons(parts(s.Parts, s.Points))
	}
	return nil
}

func multiPoint(pts []shp.Point) orb.Geometry {
	if len(pts) == 0 {
		return nil
	}
	mp := make(orb.MultiPoint, len(pts))
	for i, p := range pts {
		mp[i] = orb.Point{p.X, p.Y}
	}
	return mp
}

// parts splits a point list at the given part offsets.
func parts(offsets []int32, pts []shp.Point) [][]orb.Point {
	out := make([][]orb.Point, 0, len(offsets))
	for i, start := range offsets {
		end := int32(len(pts))
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		if start < 0 || start >= end || end > int32(len(pts)) {
			continue
		}
		part := make([]orb.Point, 0, end-start)
		for _, p := range pts[start:end] {
			part = append(part, orb.Point{p.X, p.Y})
		}
		out = append(out, part)
	}
	return out
}

func lines(ps [][]orb.Point) orb.Geometry {
	var mls orb.MultiLineString
	for _, p := range ps {
		if len(p) >= 2 {
			mls = append(mls, orb.LineString(p))
		}
	}
	switch len(mls) {
	case 0:
		return nil
	case 1:
		return mls[0]
	}
	return mls
}

func polygons(ps [][]orb.Point) orb.Geometry {
	var mp orb.MultiPolygon
	for _, p := range ps {
		if len(p) < 3 {
			continue
		}
		ring := orb.Ring(p)
		if !ring.Closed() {
			ring = append(ring, ring[0])
		}
		// A hole before any outer ring is treated as an outer ring.
		if ring.Orientation() == orb.CW || len(mp) == 0 {
			mp = append(mp, orb.Polygon{ring})
			continue
		}
		last := len(mp) - 1
		mp[last] = append(mp[last], ring)
	}
	switch len(mp) {
	case 0:
		return nil
	case 1:
		return mp[0]
	}
	return mp
}
