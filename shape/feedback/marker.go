package feedback

import (
	"github.com/gekko3d/reshaper/shape/core"

	"github.com/go-gl/mathgl/mgl32"
)

type Mode int

const (
	// HeightMarker sits above the body's centre and checks the body's top.
	HeightMarker Mode = iota
	// RadiusTarget is centred on the body and checks its radius.
	RadiusTarget
)

func (m Mode) String() string {
	if m == RadiusTarget {
		return "radius-target"
	}
	return "height-marker"
}

type MarkerConfig struct {
	Margin       float32
	RequiredHold float32 // seconds
	BaseRadius   float32 // mesh radius at unit scale
	CorrectColor [4]float32
	DefaultColor [4]float32
}

func DefaultMarkerConfig() MarkerConfig {
	return MarkerConfig{
		Margin:       0.01,
		RequiredHold: 0.1,
		BaseRadius:   0.5,
		CorrectColor: [4]float32{0, 0, 1, 1},
		DefaultColor: [4]float32{1, 0, 0, 1},
	}
}

// Marker decides whether a body has held the right size long enough and
// places a ring to show the target.
type Marker struct {
	cfg  MarkerConfig
	ring *Ring
	body *core.Transform

	mode         Mode
	TargetHeight float32
	RingRadius   float32
	targetRadius float32

	holdTimer float32
	correct   bool
	held      bool
}

func NewMarker(cfg MarkerConfig, body *core.Transform, ring *Ring) *Marker {
	return &Marker{
		cfg:          cfg,
		ring:         ring,
		body:         body,
		mode:         HeightMarker,
		TargetHeight: 0.55,
		RingRadius:   0.5,
		targetRadius: 0.5,
	}
}

func (m *Marker) Mode() Mode {
	return m.mode
}

func (m *Marker) TargetRadius() float32 {
	return m.targetRadius
}

// Held is true once the body stayed correct for RequiredHold seconds.
func (m *Marker) Held() bool {
	return m.held
}

// Correct reports the latest instantaneous check.
func (m *Marker) Correct() bool {
	return m.correct
}

func (m *Marker) SetMode(mode Mode) {
	m.mode = mode
	m.ResetHold()
}

// SetStaticTarget switches to RadiusTarget with the given radius.
func (m *Marker) SetStaticTarget(radius float32) {
	m.targetRadius = max(0.0001, radius)
	m.mode = RadiusTarget
	m.ResetHold()
}

// SetRingRadius sets the height marker's size and height, or the static
// target in RadiusTarget mode.
func (m *Marker) SetRingRadius(radius float32) {
	if m.mode == HeightMarker {
		m.RingRadius = max(0.0001, radius)
		m.TargetHeight = max(0.0001, radius)
	} else {
		m.SetStaticTarget(radius)
	}
	m.ResetHold()
}

// Calibrate aims the height marker at the body's current world radius so
// the first check is reachable.
func (m *Marker) Calibrate() {
	if m.body == nil {
		return
	}
	r := m.worldRadius()
	m.mode = HeightMarker
	m.TargetHeight = r
	m.RingRadius = max(0.01, r*0.9)
	m.cfg.Margin = max(0.02, m.cfg.Margin)
	m.ResetHold()
}

func (m *Marker) ResetHold() {
	m.holdTimer = 0
	m.held = false
}

func (m *Marker) worldRadius() float32 {
	s := m.body.LossyScale()
	return core.Max3(s.X(), s.Y(), s.Z()) * m.cfg.BaseRadius
}

// Tick checks the body against the target, advances or resets the hold
// timer and repositions the ring.
func (m *Marker) Tick(dt float32) {
	if m.body == nil {
		return
	}
	pos := m.body.Position

	if m.mode == HeightMarker {
		top := pos.Y() + m.body.Scale.Y()*m.cfg.BaseRadius
		m.correct = core.Abs(top-(pos.Y()+m.TargetHeight)) <= m.cfg.Margin
	} else {
		m.correct = core.Abs(m.worldRadius()-m.targetRadius) <= m.cfg.Margin
	}

	if m.correct {
		m.holdTimer += dt
		if !m.held && m.holdTimer >= m.cfg.RequiredHold {
			m.held = true
		}
	} else {
		m.ResetHold()
	}

	if m.ring == nil {
		return
	}
	if m.correct {
		m.ring.Tint(m.cfg.CorrectColor)
	} else {
		m.ring.Tint(m.cfg.DefaultColor)
	}
	side := mgl32.Vec3{1, 0, 0}
	if m.mode == HeightMarker {
		center := mgl32.Vec3{pos.X(), pos.Y() + (m.TargetHeight - m.RingRadius), pos.Z()}
		m.ring.Place(center, side, m.RingRadius)
	} else {
		m.ring.Place(pos, side, m.targetRadius)
	}
}
