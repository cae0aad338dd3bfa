package geo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/gogpu/sketch"
)

// Airport is one row of an airport CSV file.
type Airport struct {
	Name     string
	Code     string
	Type     string
	Location orb.Point // longitude, latitude
}

// Accepted header names per column.
var airportColumns = map[string][]string{
	"name": {"name"},
	"code": {"iata_code", "iata", "code"},
	"lat":  {"latitude_deg", "latitude", "lat"},
	"lon":  {"longitude_deg", "longitude", "lon", "lng"},
	"type": {"type"},
}

// ReadAirports reads airports from CSV data with a header row. Columns
// are found by header name, case-insensitively; name and code may be
// missing, latitude and longitude may not. Extra columns are ignored.
//
// A row whose coordinates do not parse yields an error wrapping
// ErrBadRecord with the line number.
func ReadAirports(r io.Reader) ([]Airport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("geo: airports header: %w", err)
	}
	cols := airportIndex(header)
	for _, key := range []string{"lat", "lon"} {
		if cols[key] < 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, airportColumns[key][0])
		}
	}

	var airports []Airport
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("geo: airports: %w", err)
		}
		line, _ := cr.FieldPos(0)
		lat, err1 := parseCoord(field(rec, cols["lat"]))
		lon, err2 := parseCoord(field(rec, cols["lon"]))
		if err := errors.Join(err1, err2); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadRecord, line, err)
		}
		airports = append(airports, Airport{
			Name:     field(rec, cols["name"]),
			Code:     field(rec, cols["code"]),
			Type:     field(rec, cols["type"]),
			Location: orb.Point{lon, lat},
		})
	}
	return airports, nil
}

// ReadAirportsFile reads the airport CSV file at path.
func ReadAirportsFile(path string) ([]Airport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geo: %w", err)
	}
	defer f.Close()

	airports, err := ReadAirports(f)
	if err != nil {
		return nil, err
	}
	sketch.Logger().Debug("geo: read airports", "path", path, "airports", len(airports))
	return airports, nil
}

func airportIndex(header []string) map[string]int {
	cols := make(map[string]int, len(airportColumns))
	for key, names := range airportColumns {
		cols[key] = -1
	names:
		for _, name := range names {
			for i, h := range header {
				if strings.EqualFold(strings.TrimSpace(h), name) {
					cols[key] = i
					break names
				}
			}
		}
	}
	return cols
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseCoord(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("empty coordinate")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}
