package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const MediaTypePNG = "image/png"

var (
	inactiveFillColor   = color.NRGBA{0xe0, 0xe0, 0xe0, 0xff}
	inactiveStrokeColor = color.NRGBA{0x99, 0x99, 0x99, 0xff}
	borderColor         = color.NRGBA{0xcc, 0xcc, 0xcc, 0xff}
)

// Image rasterizes the drawing, scale pixels per user unit.
func (d Drawing) Image(scale int) *image.NRGBA {
	if scale < 1 {
		scale = 1
	}
	s := float64(scale)

	width := int(math.Ceil(d.Width * s))
	height := int(math.Ceil(d.Height * s))
	img := imaging.New(width, height, color.White)

	for x := 0; x < width; x++ {
		img.Set(x, 0, borderColor)
		img.Set(x, height-1, borderColor)
	}
	for y := 0; y < height; y++ {
		img.Set(0, y, borderColor)
		img.Set(width-1, y, borderColor)
	}

	radius := DotRadius * s
	stroke := math.Max(1, 0.5*s)
	for _, cell := range d.Cells {
		for _, dot := range cell.Dots {
			cx, cy := dot.X*s, dot.Y*s
			if dot.Active {
				fillCircle(img, cx, cy, radius, color.Black)
				continue
			}
			fillCircle(img, cx, cy, radius, inactiveStrokeColor)
			fillCircle(img, cx, cy, radius-stroke, inactiveFillColor)
		}
	}

	caption := captionImage(d.Caption, scale)
	if caption != nil {
		bounds := caption.Bounds()
		x := (width - bounds.Dx()) / 2
		y := int((Margin+15)*s) - int(float64(basicfont.Face7x13.Ascent)*s)
		img = imaging.Overlay(img, caption, image.Pt(x, y), 1.0)
	}

	return img
}

// PNG writes the rasterized drawing as a PNG image.
func (d Drawing) PNG(w io.Writer, scale int) error {
	err := imaging.Encode(w, d.Image(scale), imaging.PNG)
	if err != nil {
		return fmt.Errorf("could not encode png: %w", err)
	}
	return nil
}

// fillCircle paints every pixel whose centre lies within radius of (cx, cy).
func fillCircle(img *image.NRGBA, cx, cy, radius float64, c color.Color) {
	if radius <= 0 {
		return
	}

	bounds := img.Bounds()
	minX := int(math.Floor(cx - radius))
	maxX := int(math.Ceil(cx + radius))
	minY := int(math.Floor(cy - radius))
	maxY := int(math.Ceil(cy + radius))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if !image.Pt(x, y).In(bounds) {
				continue
			}
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= radius*radius {
				img.Set(x, y, c)
			}
		}
	}
}

// captionImage draws the caption with the built-in bitmap face and scales it
// up with nearest neighbour so the pixels stay crisp. Runes the face does not
// cover are drawn as its replacement box.
func captionImage(text string, scale int) *image.NRGBA {
	face := basicfont.Face7x13
	advance := font.MeasureString(face, text).Ceil()
	if advance == 0 {
		return nil
	}

	label := imaging.New(advance, face.Height, color.Transparent)
	drawer := font.Drawer{
		Dst:  label,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	drawer.DrawString(text)

	if scale == 1 {
		return label
	}

	return imaging.Resize(label, advance*scale, 0, imaging.NearestNeighbor)
}
