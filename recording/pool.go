package recording

import "image"

// ResourcePool stores the paths, brushes and images referenced by commands.
// Each Add returns a handle that stays valid for the life of the pool.
type ResourcePool struct {
	paths   []*Path
	brushes []Brush
	images  []image.Image
}

// NewResourcePool creates an empty resource pool.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		paths:   make([]*Path, 0, 64),
		brushes: make([]Brush, 0, 32),
		images:  make([]image.Image, 0, 4),
	}
}

// AddPath stores a clone of path and returns its reference.
func (p *ResourcePool) AddPath(path *Path) PathRef {
	p.paths = append(p.paths, path.Clone())
	return PathRef(uint32(len(p.paths) - 1))
}

// GetPath returns the path for ref, or nil if ref is out of range.
func (p *ResourcePool) GetPath(ref PathRef) *Path {
	if int(ref) >= len(p.paths) {
		return nil
	}
	return p.paths[ref]
}

// PathCount returns the number of stored paths.
func (p *ResourcePool) PathCount() int {
	return len(p.paths)
}

// AddBrush stores a brush and returns its reference.
// Consecutive identical solid brushes share one entry.
func (p *ResourcePool) AddBrush(brush Brush) BrushRef {
	if sb, ok := brush.(SolidBrush); ok && len(p.brushes) > 0 {
		if last, ok := p.brushes[len(p.brushes)-1].(SolidBrush); ok && last == sb {
			return BrushRef(uint32(len(p.brushes) - 1))
		}
	}
	p.brushes = append(p.brushes, brush)
	return BrushRef(uint32(len(p.brushes) - 1))
}

// GetBrush returns the brush for ref, or nil if ref is out of range.
func (p *ResourcePool) GetBrush(ref BrushRef) Brush {
	if int(ref) >= len(p.brushes) {
		return nil
	}
	return p.brushes[ref]
}

// BrushCount returns the number of stored brushes.
func (p *ResourcePool) BrushCount() int {
	return len(p.brushes)
}

// AddImage stores an image and returns its reference.
func (p *ResourcePool) AddImage(img image.Image) ImageRef {
	p.images = append(p.images, img)
	return ImageRef(uint32(len(p.images) - 1))
}

// GetImage returns the image for ref, or nil if ref is out of range.
func (p *ResourcePool) GetImage(ref ImageRef) image.Image {
	if int(ref) >= len(p.images) {
		return nil
	}
	return p.images[ref]
}

// ImageCount returns the number of stored images.
func (p *ResourcePool) ImageCount() int {
	return len(p.images)
}
