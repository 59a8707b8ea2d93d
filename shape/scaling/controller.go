package scaling

import (
	"fmt"

	"github.com/gekko3d/reshaper/shape/core"
)

type Mode string

const (
	ModeTwoStage Mode = "two-stage"
	ModeUniform  Mode = "uniform"
)

// Input is one tick of pointer state as the scalers see it. Y is in
// viewport pixels with the origin at the bottom.
type Input struct {
	Down           bool
	Held           bool
	Up             bool
	Y              float32
	ViewportHeight float32
	Scroll         float32
}

// Controller is the scaling capability the orchestrator drives. TwoStage and
// Uniform are the two strategies.
type Controller interface {
	Tick(dt float32, in Input)
	Enable(on bool)
	Enabled() bool
	// YLocked is true once scaling has become uniform.
	YLocked() bool
	Diameter() float32
	TargetDiameter() float32
	DiameterOk() bool
	// ErrorRatio maps the diameter error onto [0, 1], 1 at or beyond tolerance.
	ErrorRatio() float32
}

// DiameterSource supplies the measured mean world radius, zero when unknown.
type DiameterSource interface {
	MeanRadiusWorld() float32
}

// BoundsSource supplies the renderable world bounds.
type BoundsSource interface {
	WorldBounds() core.AABB
}

type Config struct {
	Mode Mode

	// two-stage
	TargetYScale       float32
	YTolerancePct      float32
	YSpeed             float32
	UniformSensitivity float32
	StepMin            float32
	StepMax            float32

	// uniform
	ScrollStep      float32
	DragSensitivity float32
	SnapMargin      float32

	MinScale             float32
	MaxScale             float32
	TargetDiameter       float32
	DiameterTolerancePct float32
}

func DefaultConfig() Config {
	return Config{
		Mode:                 ModeTwoStage,
		TargetYScale:         1.0,
		YTolerancePct:        0.02,
		YSpeed:               2.0,
		UniformSensitivity:   1.5,
		StepMin:              0.5,
		StepMax:              1.5,
		ScrollStep:           0.05,
		DragSensitivity:      1.5,
		MinScale:             0.2,
		MaxScale:             5,
		TargetDiameter:       1.2,
		DiameterTolerancePct: 0.05,
	}
}

// Sources are the non-owning references a controller reads.
type Sources struct {
	Transform *core.Transform
	Meter     DiameterSource
	Bounds    BoundsSource
}

// NewController picks the strategy named by cfg.Mode.
func NewController(cfg Config, src Sources) (Controller, error) {
	switch cfg.Mode {
	case ModeTwoStage, "":
		return NewTwoStage(cfg, src), nil
	case ModeUniform:
		return NewUniform(cfg, src), nil
	default:
		return nil, fmt.Errorf("unknown scaling mode %q", cfg.Mode)
	}
}

// measure is shared by both strategies: meter radius, then bounds, then scale.
type measure struct {
	cfg Config
	src Sources
}

func (m measure) Diameter() float32 {
	if m.src.Meter != nil {
		if r := m.src.Meter.MeanRadiusWorld(); r > 0 {
			return r * 2
		}
	}
	if m.src.Bounds != nil {
		if b := m.src.Bounds.WorldBounds(); !b.IsEmpty() {
			return b.Size().X()
		}
	}
	if m.src.Transform != nil {
		return m.src.Transform.LossyScale().X()
	}
	return 0
}

func (m measure) TargetDiameter() float32 {
	return m.cfg.TargetDiameter
}

func (m measure) DiameterOk() bool {
	return core.WithinRelative(m.Diameter(), m.cfg.TargetDiameter, m.cfg.DiameterTolerancePct)
}

func (m measure) ErrorRatio() float32 {
	if m.cfg.DiameterTolerancePct <= 0 {
		if m.DiameterOk() {
			return 0
		}
		return 1
	}
	err := core.RelativeError(m.Diameter(), m.cfg.TargetDiameter)
	return core.Clamp01(float32(err / float64(m.cfg.DiameterTolerancePct)))
}

// drag tracks one pointer drag session.
type drag struct {
	active bool
	lastY  float32
}

// step returns the normalized Y change since the previous tick, or ok=false
// when no drag is in progress.
func (d *drag) step(in Input) (dy float32, ok bool) {
	if in.Down {
		d.active = true
		d.lastY = in.Y
	}
	if in.Up {
		d.active = false
	}
	if !d.active {
		return 0, false
	}
	dy = (in.Y - d.lastY) / max(1, in.ViewportHeight)
	d.lastY = in.Y
	return dy, true
}

func (d *drag) reset() {
	d.active = false
}
