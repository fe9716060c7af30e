// Package imagefile loads images into 3-channel pixel grids, saves grids as
// PNG, and derives output file names.
package imagefile

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	pxerrors "github.com/provide-io/pixelxor/go/pixelxor/pkg/errors"
	"github.com/provide-io/pixelxor/go/pixelxor/pkg/mode"
	"github.com/provide-io/pixelxor/go/pixelxor/pkg/pixel"
)

// OutputExt is the extension of every written file, whatever the input format.
const OutputExt = ".png"

// Load decodes the image at path and normalizes it to 3 channels.
func Load(path string) (*pixel.RGBGrid, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", pxerrors.Wrap(pxerrors.ErrImageDecode, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", pxerrors.Wrap(pxerrors.ErrImageDecode, fmt.Errorf("%s: %w", path, err))
	}
	return Normalize(img), format, nil
}

// Normalize converts any image to packed RGB. Alpha is dropped without
// compositing, so a transparent pixel keeps its stored color, and palette
// entries are resolved to their colors. 16-bit channels keep the high byte.
func Normalize(img image.Image) *pixel.RGBGrid {
	b := img.Bounds()
	g := pixel.NewRGBGrid(b.Dx(), b.Dy())

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < g.H; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < g.W; x++ {
				g.Set(x, y, pixel.RGB{row[x*4], row[x*4+1], row[x*4+2]})
			}
		}
	case *image.NRGBA64:
		for y := 0; y < g.H; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < g.W; x++ {
				g.Set(x, y, pixel.RGB{row[x*8], row[x*8+2], row[x*8+4]})
			}
		}
	default:
		for y := 0; y < g.H; y++ {
			for x := 0; x < g.W; x++ {
				g.Set(x, y, straightRGB(img.At(b.Min.X+x, b.Min.Y+y)))
			}
		}
	}
	return g
}

// straightRGB returns the color channels without alpha. Non-premultiplied
// colors are read directly; premultiplied ones go through NRGBA64 so low
// alpha loses as little as possible.
func straightRGB(c color.Color) pixel.RGB {
	switch c := c.(type) {
	case color.NRGBA:
		return pixel.RGB{c.R, c.G, c.B}
	case color.NRGBA64:
		return pixel.RGB{uint8(c.R >> 8), uint8(c.G >> 8), uint8(c.B >> 8)}
	case color.NYCbCrA:
		r, g, b := color.YCbCrToRGB(c.Y, c.Cb, c.Cr)
		return pixel.RGB{r, g, b}
	case color.YCbCr:
		r, g, b := color.YCbCrToRGB(c.Y, c.Cb, c.Cr)
		return pixel.RGB{r, g, b}
	}
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return pixel.RGB{uint8(n.R >> 8), uint8(n.G >> 8), uint8(n.B >> 8)}
}

// ToImage returns an opaque RGBA copy of g. The PNG encoder writes opaque
// images as 8-bit truecolor, so the saved file has exactly 3 channels.
func ToImage(g pixel.Grid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width(), g.Height()))
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := g.At(x, y)
			i := img.PixOffset(x, y)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = p[0], p[1], p[2], 0xFF
		}
	}
	return img
}

// Save writes g to path as PNG, replacing any existing file.
func Save(path string, g pixel.Grid) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return pxerrors.Wrap(pxerrors.ErrSaveFailed, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = pxerrors.Wrap(pxerrors.ErrSaveFailed, cerr)
		}
	}()

	if err := png.Encode(f, ToImage(g)); err != nil {
		return pxerrors.Wrap(pxerrors.ErrSaveFailed, fmt.Errorf("%s: %w", path, err))
	}
	return nil
}

// OutputPath places <name>_<label>.png next to input, where name is the input
// base name without its last extension.
func OutputPath(input string, m mode.Mode) string {
	dir, file := filepath.Split(input)
	name := strings.TrimSuffix(file, filepath.Ext(file))
	if name == "" {
		// dotfiles like ".hidden" have no separate extension
		name = file
	}
	out := name + "_" + m.Label() + OutputExt
	if dir == "" {
		return out
	}
	return filepath.Join(dir, out)
}
