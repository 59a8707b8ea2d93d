package scaling

import (
	"github.com/gekko3d/reshaper/shape/core"

	"github.com/go-gl/mathgl/mgl32"
)

// TwoStage scales Y alone until it lands within tolerance of TargetYScale,
// snaps and locks it, then scales all axes together.
type TwoStage struct {
	measure
	enabled bool
	yLocked bool
	drag    drag
}

func NewTwoStage(cfg Config, src Sources) *TwoStage {
	return &TwoStage{measure: measure{cfg: cfg, src: src}, enabled: true}
}

func (s *TwoStage) Enable(on bool) {
	if on && !s.enabled {
		s.drag.reset()
	}
	s.enabled = on
}

func (s *TwoStage) Enabled() bool {
	return s.enabled
}

func (s *TwoStage) YLocked() bool {
	return s.yLocked
}

// Reset models a respawn: unlock and forget any drag.
func (s *TwoStage) Reset() {
	s.yLocked = false
	s.drag.reset()
}

func (s *TwoStage) IsYWithinTolerance() bool {
	if s.src.Transform == nil {
		return false
	}
	return core.WithinRelative(s.src.Transform.Scale.Y(), s.cfg.TargetYScale, s.cfg.YTolerancePct)
}

func (s *TwoStage) Tick(dt float32, in Input) {
	if !s.enabled || s.src.Transform == nil {
		return
	}
	tr := s.src.Transform

	dy, dragging := s.drag.step(in)
	if !s.yLocked {
		if dragging {
			y := tr.Scale.Y() * (1 + dy*s.cfg.YSpeed)
			y = core.Clamp(y, s.cfg.MinScale, s.cfg.MaxScale)
			tr.SetScale(mgl32.Vec3{tr.Scale.X(), y, tr.Scale.Z()})
		}
		if s.IsYWithinTolerance() {
			tr.SetScale(mgl32.Vec3{tr.Scale.X(), s.cfg.TargetYScale, tr.Scale.Z()})
			s.yLocked = true
		}
		return
	}

	if !dragging {
		return
	}
	factor := core.Clamp(1+dy*s.cfg.UniformSensitivity, s.cfg.StepMin, s.cfg.StepMax)
	u := core.Clamp(tr.Scale.X()*factor, s.cfg.MinScale, s.cfg.MaxScale)
	tr.SetScale(mgl32.Vec3{u, u, u})
}
