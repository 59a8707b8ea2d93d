package feedback

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gekko3d/reshaper/shape/core"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/vector"
)

// Project maps the ring's points into viewport pixels through cam. Points
// behind the camera are dropped.
func Project(r *Ring, cam *core.Camera, width, height int) []mgl32.Vec2 {
	out := make([]mgl32.Vec2, 0, len(r.Points()))
	for _, p := range r.Points() {
		if s, ok := cam.WorldToScreen(p, width, height); ok {
			out = append(out, s)
		}
	}
	return out
}

// Rasterize draws the closed polyline pts (viewport pixels, origin bottom-left)
// into dst as a band of the given pixel width.
func Rasterize(dst draw.Image, pts []mgl32.Vec2, width float32, rgba [4]float32) {
	if len(pts) < 3 || width <= 0 {
		return
	}
	b := dst.Bounds()
	h := float32(b.Dy())

	var c mgl32.Vec2
	for _, p := range pts {
		c = c.Add(p)
	}
	c = c.Mul(1 / float32(len(pts)))

	half := width * 0.5
	offset := func(p mgl32.Vec2, by float32) (float32, float32) {
		d := p.Sub(c)
		if l := d.Len(); l > 1e-6 {
			p = p.Add(d.Mul(by / l))
		}
		return p.X(), h - p.Y()
	}

	z := vector.NewRasterizer(b.Dx(), b.Dy())
	x, y := offset(pts[0], half)
	z.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y = offset(p, half)
		z.LineTo(x, y)
	}
	z.ClosePath()

	// inner contour runs the other way so it cuts a hole
	x, y = offset(pts[len(pts)-1], -half)
	z.MoveTo(x, y)
	for i := len(pts) - 2; i >= 0; i-- {
		x, y = offset(pts[i], -half)
		z.LineTo(x, y)
	}
	z.ClosePath()

	src := image.NewUniform(color.NRGBA{
		R: channel(rgba[0]),
		G: channel(rgba[1]),
		B: channel(rgba[2]),
		A: channel(rgba[3]),
	})
	z.Draw(dst, b, src, image.Point{})
}

func channel(v float32) uint8 {
	return uint8(core.Clamp01(v)*255 + 0.5)
}
