package sketch

// Tile is one cell of a Tiler.
type Tile struct {
	Index         int
	Row, Col      int
	Center        Point
	Width, Height float64
}

// Rect returns the tile bounds.
func (t Tile) Rect() Rect {
	return Rect{
		Min: Pt(t.Center.X-t.Width/2, t.Center.Y-t.Height/2),
		Max: Pt(t.Center.X+t.Width/2, t.Center.Y+t.Height/2),
	}
}

// Tiler divides a width x height area centered on the origin into rows x
// cols equal tiles, inside a margin. Pair it with Origin.
type Tiler struct {
	Width, Height float64
	Rows, Cols    int
	Margin        float64
}

// NewTiler creates a Tiler. Rows and cols below 1 are treated as 1.
func NewTiler(width, height float64, rows, cols int, margin float64) *Tiler {
	return &Tiler{
		Width:  width,
		Height: height,
		Rows:   max(rows, 1),
		Cols:   max(cols, 1),
		Margin: margin,
	}
}

// TileWidth returns the width of each tile.
func (t *Tiler) TileWidth() float64 {
	return (t.Width - 2*t.Margin) / float64(t.Cols)
}

// TileHeight returns the height of each tile.
func (t *Tiler) TileHeight() float64 {
	return (t.Height - 2*t.Margin) / float64(t.Rows)
}

// Len returns the number of tiles.
func (t *Tiler) Len() int {
	return t.Rows * t.Cols
}

// Tile returns the tile at index i, counting row by row from the top left.
func (t *Tiler) Tile(i int) Tile {
	row, col := i/t.Cols, i%t.Cols
	tw, th := t.TileWidth(), t.TileHeight()
	x := -t.Width/2 + t.Margin + tw*(float64(col)+0.5)
	y := -t.Height/2 + t.Margin + th*(float64(row)+0.5)
	return Tile{
		Index:  i,
		Row:    row,
		Col:    col,
		Center: Pt(x, y),
		Width:  tw,
		Height: th,
	}
}

// Tiles returns all tiles in index order.
func (t *Tiler) Tiles() []Tile {
	tiles := make([]Tile, t.Len())
	for i := range tiles {
		tiles[i] = t.Tile(i)
	}
	return tiles
}

// Grid produces points on a rectangular grid, row by row.
type Grid struct {
	Start  Point
	DX, DY float64
	Cols   int

	n int
}

// NewGrid creates a grid starting at start with spacing dx, dy that wraps
// after cols points. A cols value below 1 never wraps.
func NewGrid(start Point, dx, dy float64, cols int) *Grid {
	return &Grid{Start: start, DX: dx, DY: dy, Cols: cols}
}

// Next returns the next grid point.
func (g *Grid) Next() Point {
	i := g.n
	g.n++
	if g.Cols < 1 {
		return g.Start.Add(Pt(float64(i)*g.DX, 0))
	}
	return g.Start.Add(Pt(float64(i%g.Cols)*g.DX, float64(i/g.Cols)*g.DY))
}

// Reset restarts the grid at its first point.
func (g *Grid) Reset() {
	g.n = 0
}
