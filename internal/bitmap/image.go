package bitmap

import (
	"image"
	"image/color"
)

// Writer is anything a bitmap can be drawn onto.
type Writer interface {
	Set(x, y int, b bool)
	Bounds() image.Rectangle
}

// ToImage renders a bitmap as a two color paletted image: on where bits are
// set, off elsewhere.
func ToImage(b *Bitmap, on, off color.Color) *image.Paletted {
	img := image.NewPaletted(b.Rect, color.Palette{off, on})
	for y := b.Rect.Min.Y; y < b.Rect.Max.Y; y++ {
		for x := b.Rect.Min.X; x < b.Rect.Max.X; x++ {
			if b.At(x, y) {
				img.SetColorIndex(x, y, 1)
			}
		}
	}
	return img
}
