package feedback

import (
	"math"

	"github.com/gekko3d/reshaper/shape/core"

	"github.com/go-gl/mathgl/mgl32"
)

type RingConfig struct {
	Segments  int
	WidthMin  float32 // width at zero error
	WidthMax  float32 // width at or beyond tolerance
	AlphaNear float32
	AlphaFar  float32
	Color     [3]float32
}

func DefaultRingConfig() RingConfig {
	return RingConfig{
		Segments:  128,
		WidthMin:  0.01,
		WidthMax:  0.04,
		AlphaNear: 0.3,
		AlphaFar:  1,
		Color:     [3]float32{1, 1, 1},
	}
}

// Ring is a closed circle polyline whose prominence drops as the error
// shrinks.
type Ring struct {
	cfg     RingConfig
	Center  mgl32.Vec3
	Normal  mgl32.Vec3
	Radius  float32
	Width   float32
	Color   [4]float32
	Visible bool

	points []mgl32.Vec3
}

func NewRing(cfg RingConfig) *Ring {
	r := &Ring{
		cfg:    cfg,
		Normal: mgl32.Vec3{0, 1, 0},
		Radius: 0.5,
	}
	r.SetError(1)
	r.Redraw()
	return r
}

// SetError maps t in [0, 1] (0 exact, 1 at tolerance) onto width and alpha.
func (r *Ring) SetError(t float32) {
	t = core.Clamp01(t)
	r.Width = core.Lerp(r.cfg.WidthMin, r.cfg.WidthMax, t)
	r.Color = [4]float32{
		r.cfg.Color[0], r.cfg.Color[1], r.cfg.Color[2],
		core.Lerp(r.cfg.AlphaFar, r.cfg.AlphaNear, 1-t),
	}
}

func (r *Ring) Show(on bool) {
	r.Visible = on
}

// Tint replaces the RGB channels and keeps the alpha SetError chose.
func (r *Ring) Tint(c [4]float32) {
	r.Color[0], r.Color[1], r.Color[2] = c[0], c[1], c[2]
}

func (r *Ring) SetRadius(radius float32) {
	r.Radius = max(0.001, radius)
	r.Redraw()
}

// Place moves the ring and rebuilds its points when anything changed.
func (r *Ring) Place(center, normal mgl32.Vec3, radius float32) {
	radius = max(0.001, radius)
	if center == r.Center && normal == r.Normal && radius == r.Radius && r.points != nil {
		return
	}
	r.Center, r.Normal, r.Radius = center, normal, radius
	r.Redraw()
}

// Redraw rebuilds max(3, Segments) evenly spaced points on the circle in the
// plane orthogonal to Normal.
func (r *Ring) Redraw() {
	n := max(3, r.cfg.Segments)
	if cap(r.points) < n {
		r.points = make([]mgl32.Vec3, n)
	}
	r.points = r.points[:n]

	t, b := Basis(r.Normal)
	for i := 0; i < n; i++ {
		a := float64(i) / float64(n) * 2 * math.Pi
		dir := t.Mul(float32(math.Cos(a))).Add(b.Mul(float32(math.Sin(a))))
		r.points[i] = r.Center.Add(dir.Mul(r.Radius))
	}
}

// Points is the closed polygon; the last point connects back to the first.
func (r *Ring) Points() []mgl32.Vec3 {
	return r.points
}

// Basis returns two unit vectors spanning the plane orthogonal to n.
func Basis(n mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	if n.Len() < 1e-9 {
		n = mgl32.Vec3{0, 1, 0}
	}
	n = n.Normalize()
	t := n.Cross(mgl32.Vec3{1, 0, 0})
	if t.Len() < 1e-3 {
		t = n.Cross(mgl32.Vec3{0, 0, 1})
	}
	t = t.Normalize()
	return t, n.Cross(t)
}
