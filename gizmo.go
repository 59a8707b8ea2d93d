package reshaper

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gekko3d/reshaper/shape/feedback"

	"github.com/go-gl/mathgl/mgl32"
)

// RingGizmo is a visible ring projected into the viewport for one frame.
type RingGizmo struct {
	Body   BodyId
	Points []mgl32.Vec2
	// Width is the band width in pixels.
	Width float32
	Color [4]float32
}

// Gizmos collects the frame's overlay geometry for whatever draws it.
type Gizmos struct {
	Width, Height int
	Rings         []RingGizmo
}

// Draw rasterizes every ring over a transparent image of the viewport size.
func (g *Gizmos) Draw() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, max(1, g.Width), max(1, g.Height)))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Transparent), image.Point{}, draw.Src)
	for _, r := range g.Rings {
		feedback.Rasterize(img, r.Points, r.Width, r.Color)
	}
	return img
}

// pixelWidth scales a world-space band width by the ring's projected radius.
func pixelWidth(ring *feedback.Ring, pts []mgl32.Vec2) float32 {
	if len(pts) == 0 || ring.Radius <= 0 {
		return 0
	}
	var c mgl32.Vec2
	for _, p := range pts {
		c = c.Add(p)
	}
	c = c.Mul(1 / float32(len(pts)))
	var r float32
	for _, p := range pts {
		r += p.Sub(c).Len()
	}
	r /= float32(len(pts))
	return max(1, ring.Width/ring.Radius*r)
}
