// Package pixel implements the single-byte XOR pixel transform and the
// minimal pixel grid it operates on.
package pixel

// RGB is one pixel: red, green, blue.
type RGB [3]uint8

// Grid is the capability the transform needs from an image.
type Grid interface {
	Width() int
	Height() int
	At(x, y int) RGB
	Set(x, y int, p RGB)
}

// RGBGrid is a packed 3-bytes-per-pixel image held in memory.
// Pixel (x, y) starts at Pix[y*Stride+x*3].
type RGBGrid struct {
	Pix    []uint8
	Stride int
	W, H   int
}

// NewRGBGrid allocates a zeroed w x h grid.
func NewRGBGrid(w, h int) *RGBGrid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &RGBGrid{
		Pix:    make([]uint8, w*h*3),
		Stride: w * 3,
		W:      w,
		H:      h,
	}
}

func (g *RGBGrid) Width() int  { return g.W }
func (g *RGBGrid) Height() int { return g.H }

func (g *RGBGrid) offset(x, y int) int {
	return y*g.Stride + x*3
}

// At returns the pixel at (x, y). Out-of-bounds reads return black.
func (g *RGBGrid) At(x, y int) RGB {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return RGB{}
	}
	i := g.offset(x, y)
	return RGB{g.Pix[i], g.Pix[i+1], g.Pix[i+2]}
}

// Set writes the pixel at (x, y). Out-of-bounds writes are ignored.
func (g *RGBGrid) Set(x, y int, p RGB) {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return
	}
	i := g.offset(x, y)
	g.Pix[i], g.Pix[i+1], g.Pix[i+2] = p[0], p[1], p[2]
}

// Clone returns a deep copy of the grid.
func (g *RGBGrid) Clone() *RGBGrid {
	pix := make([]uint8, len(g.Pix))
	copy(pix, g.Pix)
	return &RGBGrid{Pix: pix, Stride: g.Stride, W: g.W, H: g.H}
}

// Equal reports whether two grids have the same size and pixels.
func Equal(a, b Grid) bool {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return false
	}
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			if a.At(x, y) != b.At(x, y) {
				return false
			}
		}
	}
	return true
}
