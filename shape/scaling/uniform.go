package scaling

import (
	"github.com/gekko3d/reshaper/shape/core"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniform scales every axis together from wheel or drag input. It has no
// Y stage, so YLocked is always true.
type Uniform struct {
	measure
	enabled bool
	drag    drag
}

func NewUniform(cfg Config, src Sources) *Uniform {
	return &Uniform{measure: measure{cfg: cfg, src: src}, enabled: true}
}

func (u *Uniform) Enable(on bool) {
	if on && !u.enabled {
		u.drag.reset()
	}
	u.enabled = on
}

func (u *Uniform) Enabled() bool {
	return u.enabled
}

func (u *Uniform) YLocked() bool {
	return true
}

func (u *Uniform) Tick(dt float32, in Input) {
	if !u.enabled || u.src.Transform == nil {
		return
	}

	m := float32(1)
	if core.Abs(in.Scroll) > 0.0001 {
		m *= 1 + in.Scroll*u.cfg.ScrollStep
	}
	if dy, ok := u.drag.step(in); ok {
		m *= 1 + dy*u.cfg.DragSensitivity
	}
	if m == 1 {
		return
	}
	if m < 0.01 {
		m = 0.01
	}

	tr := u.src.Transform
	prev := core.Max3(tr.Scale.X(), tr.Scale.Y(), tr.Scale.Z())
	s := tr.Scale.Mul(m)
	for i := 0; i < 3; i++ {
		s[i] = core.Clamp(s[i], u.cfg.MinScale, u.cfg.MaxScale)
	}

	// the measured diameter belongs to the previous scale
	if u.cfg.SnapMargin > 0 && u.cfg.TargetDiameter > 0 && prev > 0 {
		d := u.Diameter() * core.Max3(s.X(), s.Y(), s.Z()) / prev
		if d > 0 && core.Abs(d-u.cfg.TargetDiameter)*0.5 <= u.cfg.SnapMargin {
			s = s.Mul(u.cfg.TargetDiameter / d)
		}
	}
	tr.SetScale(mgl32.Vec3{s.X(), s.Y(), s.Z()})
}
