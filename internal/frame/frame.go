// Package frame rasterizes raycaster output into an RGBA framebuffer and
// composites it onto terminal cells, two pixels per cell using the upper
// half block glyph.
package frame

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/gdamore/tcell"
	"github.com/gdamore/tcell/views"
	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/pkg/errors"
)

// UpperHalf is the glyph used to show two pixels in one cell: its foreground
// is the top pixel and its background the bottom one.
const UpperHalf = '▀'

// Frame is a framebuffer covering a grid of terminal cells, along with the
// depth of whatever was last drawn into each pixel column.
type Frame struct {
	*image.RGBA
	depth []float64

	grain       opensimplex.Noise
	grainAmount float64
}

// New returns a frame covering w × h cells, which is w × 2h pixels.
func New(w, h int) *Frame {
	f := &Frame{}
	f.Resize(w, h)
	return f
}

// Resize changes the cell size of the frame, reusing storage when it can.
func (f *Frame) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	r := image.Rect(0, 0, w, 2*h)
	if f.RGBA != nil && f.RGBA.Rect == r {
		return
	}
	if f.RGBA != nil && cap(f.Pix) >= 4*r.Dx()*r.Dy() {
		f.Pix = f.Pix[:4*r.Dx()*r.Dy()]
		f.Stride = 4 * r.Dx()
		f.Rect = r
	} else {
		f.RGBA = image.NewRGBA(r)
	}
	if cap(f.depth) >= w {
		f.depth = f.depth[:w]
	} else {
		f.depth = make([]float64, w)
	}
	for i := range f.depth {
		f.depth[i] = math.Inf(1)
	}
}

// SetGrain textures walls with seeded simplex noise, darkening each pixel by
// up to amount. An amount of zero turns the texture off.
func (f *Frame) SetGrain(seed int64, amount float64) {
	if amount <= 0 {
		f.grain, f.grainAmount = nil, 0
		return
	}
	f.grain = opensimplex.NewNormalized(seed)
	f.grainAmount = amount
}

// Cells returns the frame size in terminal cells.
func (f *Frame) Cells() (w, h int) {
	return f.Rect.Dx(), f.Rect.Dy() / 2
}

// Pixels returns the frame size in pixels.
func (f *Frame) Pixels() (w, h int) {
	return f.Rect.Dx(), f.Rect.Dy()
}

// Depth returns the corrected distance drawn at pixel column x, +Inf if
// nothing was.
func (f *Frame) Depth(x int) float64 {
	if x < 0 || x >= len(f.depth) {
		return math.Inf(1)
	}
	return f.depth[x]
}

// Fill paints the whole frame one color and clears the depth buffer.
func (f *Frame) Fill(c color.RGBA) {
	draw.Draw(f.RGBA, f.Rect, image.NewUniform(c), image.Point{}, draw.Src)
	for i := range f.depth {
		f.depth[i] = math.Inf(1)
	}
}

// Blit writes the frame onto a view, one cell per two pixel rows, clipped to
// the smaller of the two.
func (f *Frame) Blit(v views.View) {
	vw, vh := v.Size()
	fw, fh := f.Cells()
	if vw > fw {
		vw = fw
	}
	if vh > fh {
		vh = fh
	}
	for y := 0; y < vh; y++ {
		for x := 0; x < vw; x++ {
			top := f.RGBAAt(x, 2*y)
			bot := f.RGBAAt(x, 2*y+1)
			v.SetContent(x, y, UpperHalf, nil, tcell.StyleDefault.
				Foreground(tcellColor(top)).
				Background(tcellColor(bot)))
		}
	}
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// EncodePNG writes the frame as a PNG image.
func (f *Frame) EncodePNG(w io.Writer) error {
	return errors.Wrap(png.Encode(w, f.RGBA), "encoding frame")
}
