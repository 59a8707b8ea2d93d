package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Dirty    bool
}

func NewTransform() *Transform {
	return &Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
		Dirty:    true,
	}
}

func (t *Transform) ObjectToWorld() mgl32.Mat4 {
	// M = T * R * S
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

func (t *Transform) WorldToObject() mgl32.Mat4 {
	// inv(M) = inv(S) * inv(R) * inv(T)
	invScale := mgl32.Scale3D(safeInv(t.Scale.X()), safeInv(t.Scale.Y()), safeInv(t.Scale.Z()))
	invRotate := t.Rotation.Conjugate().Mat4()
	invTranslate := mgl32.Translate3D(-t.Position.X(), -t.Position.Y(), -t.Position.Z())

	return invScale.Mul4(invRotate).Mul4(invTranslate)
}

// TransformPoint maps a local-space point to world space.
func (t *Transform) TransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	s := mgl32.Vec3{p.X() * t.Scale.X(), p.Y() * t.Scale.Y(), p.Z() * t.Scale.Z()}
	return t.Position.Add(t.Rotation.Rotate(s))
}

// InverseTransformPoint maps a world-space point to local space.
func (t *Transform) InverseTransformPoint(p mgl32.Vec3) mgl32.Vec3 {
	r := t.Rotation.Conjugate().Rotate(p.Sub(t.Position))
	return mgl32.Vec3{r.X() * safeInv(t.Scale.X()), r.Y() * safeInv(t.Scale.Y()), r.Z() * safeInv(t.Scale.Z())}
}

// InverseTransformDirection rotates a world direction into local space.
// Scale is ignored, so unit vectors stay unit.
func (t *Transform) InverseTransformDirection(d mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Conjugate().Rotate(d)
}

// TransformDirection rotates a local direction into world space.
func (t *Transform) TransformDirection(d mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Rotate(d)
}

// LossyScale is the world scale. Transforms here have no parent, so it is the local scale.
func (t *Transform) LossyScale() mgl32.Vec3 {
	return t.Scale
}

// SetScale replaces the local scale and marks the transform dirty.
func (t *Transform) SetScale(s mgl32.Vec3) {
	t.Scale = s
	t.Dirty = true
}

func safeInv(v float32) float32 {
	if v > -1e-8 && v < 1e-8 {
		return 0
	}
	return 1.0 / v
}
