package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// Graticule returns meridians and parallels every step degrees across
// the whole globe, starting at -180 and -90. Lines carry a vertex every
// step degrees so they bend under curved projections. A step <= 0
// returns nil.
func Graticule(step float64) orb.MultiLineString {
	if step <= 0 {
		return nil
	}
	nlon := int(math.Floor(360/step + 1e-9))
	nlat := int(math.Floor(180/step + 1e-9))

	g := make(orb.MultiLineString, 0, nlon+nlat+2)
	for i := 0; i <= nlon; i++ {
		lon := -180 + float64(i)*step
		ls := make(orb.LineString, 0, nlat+2)
		for j := 0; j <= nlat; j++ {
			ls = append(ls, orb.Point{lon, -90 + float64(j)*step})
		}
		if last := ls[len(ls)-1]; last[1] < 90 {
			ls = append(ls, orb.Point{lon, 90})
		}
		g = append(g, ls)
	}
	for j := 0; j <= nlat; j++ {
		lat := -90 + float64(j)*step
		ls := make(orb.LineString, 0, nlon+2)
		for i := 0; i <= nlon; i++ {
			ls = append(ls, orb.Point{-180 + float64(i)*step, lat})
		}
		if last := ls[len(ls)-1]; last[0] < 180 {
			ls = append(ls, orb.Point{180, lat})
		}
		g = append(g, ls)
	}
	return g
}
