package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is the active viewpoint pointer rays are cast through.
// Y is up.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	FovY     float32 // degrees
	Near     float32
	Far      float32
}

func NewCamera() *Camera {
	return &Camera{
		Position: mgl32.Vec3{0, 0, 3},
		Target:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		FovY:     60,
		Near:     0.01,
		Far:      1000,
	}
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *Camera) ProjectionMatrix(width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// ScreenRay casts a world ray through viewport position (x, y), origin bottom-left.
// ok is false for a degenerate viewport.
func (c *Camera) ScreenRay(x, y float32, width, height int) (Ray, bool) {
	if width <= 0 || height <= 0 {
		return Ray{}, false
	}
	view := c.ViewMatrix()
	proj := c.ProjectionMatrix(width, height)

	near, err := mgl32.UnProject(mgl32.Vec3{x, y, 0}, view, proj, 0, 0, width, height)
	if err != nil {
		return Ray{}, false
	}
	far, err := mgl32.UnProject(mgl32.Vec3{x, y, 1}, view, proj, 0, 0, width, height)
	if err != nil {
		return Ray{}, false
	}
	dir := far.Sub(near)
	if dir.Len() < 1e-9 {
		return Ray{}, false
	}
	return NewRay(near, dir), true
}

// WorldToScreen projects p into viewport pixels, origin bottom-left.
// ok is false when p is behind the camera.
func (c *Camera) WorldToScreen(p mgl32.Vec3, width, height int) (mgl32.Vec2, bool) {
	vp := c.ProjectionMatrix(width, height).Mul4(c.ViewMatrix())
	clip := vp.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return mgl32.Vec2{}, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	return mgl32.Vec2{
		(ndc.X() + 1) * 0.5 * float32(width),
		(ndc.Y() + 1) * 0.5 * float32(height),
	}, true
}
