package feedback

import (
	"image"
	"testing"

	"github.com/gekko3d/reshaper/shape/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetErrorInterpolation(t *testing.T) {
	r := NewRing(DefaultRingConfig())

	r.SetError(1)
	assert.InDelta(t, 0.04, r.Width, 1e-6)
	assert.InDelta(t, 1.0, r.Color[3], 1e-6)

	r.SetError(0)
	assert.InDelta(t, 0.01, r.Width, 1e-6)
	assert.InDelta(t, 0.3, r.Color[3], 1e-6)

	r.SetError(0.5)
	assert.InDelta(t, 0.025, r.Width, 1e-6)
	assert.InDelta(t, 0.65, r.Color[3], 1e-6)

	r.SetError(7)
	assert.InDelta(t, 0.04, r.Width, 1e-6)
	r.SetError(-3)
	assert.InDelta(t, 0.01, r.Width, 1e-6)
}

func TestRingGeometry(t *testing.T) {
	cfg := DefaultRingConfig()
	cfg.Segments = 64
	r := NewRing(cfg)
	center := mgl32.Vec3{1, 2, 3}
	r.Place(center, mgl32.Vec3{0, 0, 2}, 0.6)

	pts := r.Points()
	require.Len(t, pts, 64)
	for i, p := range pts {
		d := p.Sub(center)
		assert.InDelta(t, 0.6, d.Len(), 1e-5, "point %d", i)
		assert.InDelta(t, 0, d.Z(), 1e-5, "point %d leaves the plane", i)
	}
	// evenly spaced: every chord has the same length
	chord := pts[1].Sub(pts[0]).Len()
	for i := range pts {
		next := pts[(i+1)%len(pts)]
		assert.InDelta(t, chord, next.Sub(pts[i]).Len(), 1e-5)
	}

	r.SetRadius(0)
	assert.Equal(t, float32(0.001), r.Radius)

	few := DefaultRingConfig()
	few.Segments = 1
	assert.Len(t, NewRing(few).Points(), 3)
}

func TestBasisFallback(t *testing.T) {
	a, b := Basis(mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 1, a.Len(), 1e-6)
	assert.InDelta(t, 1, b.Len(), 1e-6)
	assert.InDelta(t, 0, a.Dot(b), 1e-6)
	assert.InDelta(t, 0, a.X(), 1e-6)
}

func TestMarkerHoldAndReset(t *testing.T) {
	tr := core.NewTransform()
	cfg := DefaultMarkerConfig()
	cfg.RequiredHold = 0.1
	cfg.Margin = 0.01
	ring := NewRing(DefaultRingConfig())
	m := NewMarker(cfg, tr, ring)

	m.SetStaticTarget(0.5)
	require.Equal(t, RadiusTarget, m.Mode())

	for i := 0; i < 4; i++ {
		m.Tick(0.02)
	}
	assert.True(t, m.Correct())
	assert.False(t, m.Held())
	m.Tick(0.02)
	m.Tick(0.02)
	assert.True(t, m.Held())
	assert.Equal(t, cfg.CorrectColor, ring.Color)

	m.SetMode(HeightMarker)
	assert.False(t, m.Held(), "switching modes resets the hold")

	tr.Scale = mgl32.Vec3{2, 2, 2}
	m.SetStaticTarget(0.5)
	m.Tick(1)
	assert.False(t, m.Correct())
	assert.False(t, m.Held())
	assert.Equal(t, cfg.DefaultColor, ring.Color)
}

func TestMarkerCalibrateHeight(t *testing.T) {
	tr := core.NewTransform()
	tr.Position = mgl32.Vec3{0, 1, 0}
	tr.Scale = mgl32.Vec3{1, 0.6, 1}
	ring := NewRing(DefaultRingConfig())
	m := NewMarker(DefaultMarkerConfig(), tr, ring)

	m.Calibrate()
	assert.InDelta(t, 0.5, m.TargetHeight, 1e-6)
	m.Tick(0.5)
	assert.False(t, m.Correct(), "squashed body top is below the marker")

	tr.Scale = mgl32.Vec3{1, 1, 1}
	m.Tick(0.5)
	assert.True(t, m.Correct())
	assert.True(t, m.Held())
	// ring sits so its top touches the target height
	assert.InDelta(t, 1+0.5-0.45, ring.Center.Y(), 1e-5)
}

func TestRasterizeDrawsBand(t *testing.T) {
	cfg := DefaultRingConfig()
	cfg.Segments = 64
	r := NewRing(cfg)
	r.Place(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, 0.5)

	cam := core.NewCamera()
	pts := Project(r, cam, 200, 200)
	require.Len(t, pts, 64)

	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	Rasterize(img, pts, 6, [4]float32{1, 1, 1, 1})

	// centre stays empty, the band on the ring is painted
	_, _, _, a := img.At(100, 100).RGBA()
	assert.Zero(t, a)

	edge := pts[0]
	_, _, _, a = img.At(int(edge.X()), 200-int(edge.Y())).RGBA()
	assert.NotZero(t, a)
}
