package gallery

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/recording"
)

func TestNames(t *testing.T) {
	want := []string{"logo", "map", "pie", "plot", "sectors", "sierpinski", "stars", "tiles"}
	if got := Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestRenderAll(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			d := sketch.NewDrawingFormat(300, 200, "png")
			if err := Render(d, name, Inputs{}); err != nil {
				t.Fatalf("Render error: %v", err)
			}
			if len(d.Recording().Commands()) < 2 {
				t.Error("demo drew nothing beyond the background")
			}
			if d.Depth() != 0 {
				t.Errorf("demo left %d saved states", d.Depth())
			}
			var buf bytes.Buffer
			if err := d.Encode(&buf); err != nil {
				t.Fatalf("Encode error: %v", err)
			}
		})
	}
}

func TestRenderUnknown(t *testing.T) {
	d := sketch.NewDrawingFormat(10, 10, "png")
	if err := Render(d, "mandala", Inputs{}); !errors.Is(err, ErrUnknownDemo) {
		t.Errorf("error = %v, want ErrUnknownDemo", err)
	}
}

func TestSierpinski(t *testing.T) {
	d := sketch.NewDrawingFormat(100, 100, "png")
	pts := [3]sketch.Point{sketch.Pt(50, 0), sketch.Pt(100, 100), sketch.Pt(0, 100)}
	tests := []struct {
		depth, want int
	}{
		{-1, 1},
		{0, 1},
		{1, 3},
		{3, 27},
	}
	for _, tt := range tests {
		if got := Sierpinski(d, pts, tt.depth); got != tt.want {
			t.Errorf("Sierpinski depth %d = %d, want %d", tt.depth, got, tt.want)
		}
	}
	fills := 0
	for _, c := range d.Recording().Commands() {
		if _, ok := c.(recording.FillPathCommand); ok {
			fills++
		}
	}
	if fills != 1+1+3+27 {
		t.Errorf("recorded %d fills, want 32", fills)
	}
}

const geoJSON = `{"type":"FeatureCollection","features":[
{"type":"Feature","properties":{"name":"block"},
 "geometry":{"type":"Polygon","coordinates":[[[0,0],[20,0],[20,10],[0,10],[0,0]]]}}]}`

func TestRenderMapInputs(t *testing.T) {
	dir := t.TempDir()
	gj := filepath.Join(dir, "land.geojson")
	csv := filepath.Join(dir, "airports.csv")
	if err := os.WriteFile(gj, []byte(geoJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(csv, []byte("name,iata,lat,lon\nOne,ONE,5,5\nFar,FAR,60,120\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	empty := sketch.NewDrawingFormat(300, 200, "svg")
	if err := Render(empty, "map", Inputs{}); err != nil {
		t.Fatal(err)
	}
	d := sketch.NewDrawingFormat(300, 200, "svg")
	if err := Render(d, "map", Inputs{GeoJSON: gj, Airports: csv}); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if len(d.Recording().Commands()) <= len(empty.Recording().Commands()) {
		t.Error("features and airports added nothing to the map")
	}
}

func TestRenderInputErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bench.csv")
	if err := os.WriteFile(bad, []byte("fib,c,1\nfib,go,slow\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing")
	tests := []struct {
		name string
		demo string
		in   Inputs
	}{
		{"missing shapefile", "map", Inputs{Shapefile: missing + ".shp"}},
		{"missing geojson", "map", Inputs{GeoJSON: missing + ".geojson"}},
		{"missing airports", "map", Inputs{Airports: missing + ".csv"}},
		{"bad benchmarks", "sectors", Inputs{Benchmarks: bad}},
		{"bad benchmarks plot", "plot", Inputs{Benchmarks: bad}},
		{"missing benchmarks pie", "pie", Inputs{Benchmarks: missing + ".csv"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := sketch.NewDrawingFormat(100, 100, "png")
			if err := Render(d, tt.demo, tt.in); err == nil {
				t.Error("Render succeeded, want an error")
			}
		})
	}
}
