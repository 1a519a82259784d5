package pricetag

import (
	"image"
	"math"
)

// Box is a top-left anchored rectangle in some pixel space.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect converts a center-point prediction to a top-left box in the same
// coordinate space.
func (p Prediction) Rect() Box {
	return Box{
		X:      p.X - p.Width/2,
		Y:      p.Y - p.Height/2,
		Width:  p.Width,
		Height: p.Height,
	}
}

// ScaleBox maps a box from the detector's pixel space to a display space,
// scaling each axis proportionally and clamping to the display bounds.
func ScaleBox(b Box, srcW, srcH, dstW, dstH float64) Box {
	if srcW <= 0 || srcH <= 0 {
		return Box{}
	}
	scaleX := dstW / srcW
	scaleY := dstH / srcH

	out := Box{
		X:      b.X * scaleX,
		Y:      b.Y * scaleY,
		Width:  b.Width * scaleX,
		Height: b.Height * scaleY,
	}

	out.X = math.Max(0, out.X)
	out.Y = math.Max(0, out.Y)
	out.Width = math.Min(out.Width, dstW-out.X)
	out.Height = math.Min(out.Height, dstH-out.Y)
	return out
}

// cropRect expands a prediction by the given factor around its center and
// clamps it to the image bounds, mirroring the tag-crop behavior on device.
func cropRect(p Prediction, bounds image.Rectangle, expand float64) image.Rectangle {
	w := p.Width * expand
	h := p.Height * expand
	x0 := int(math.Max(0, p.X-w/2))
	y0 := int(math.Max(0, p.Y-h/2))
	x1 := int(math.Min(float64(bounds.Max.X), p.X+w/2))
	y1 := int(math.Min(float64(bounds.Max.Y), p.Y+h/2))
	return image.Rect(x0, y0, x1, y1).Intersect(bounds)
}

// contains reports whether the prediction's center falls inside the box.
func (b Box) contains(p Prediction) bool {
	return p.X >= b.X && p.X <= b.X+b.Width &&
		p.Y >= b.Y && p.Y <= b.Y+b.Height
}
