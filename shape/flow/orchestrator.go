package flow

import (
	"github.com/gekko3d/reshaper/shape/core"
	"github.com/gekko3d/reshaper/shape/feedback"
	"github.com/gekko3d/reshaper/shape/scaling"

	"github.com/go-gl/mathgl/mgl32"
)

type Config struct {
	SphericityThreshold float32
	Ring                RingPolicy
	// HoldTime, when positive, requires the diameter to stay within
	// tolerance this many seconds before Done.
	HoldTime float32
	// MarkerHeight is where the pre-lock height marker sits above the centre.
	// Zero calibrates it from the body's world radius on Resize entry.
	MarkerHeight float32
}

func DefaultConfig() Config {
	return Config{SphericityThreshold: 0.95, Ring: RingAfterLock}
}

type ScoreSource interface {
	Score() float32
}

type Toggle interface {
	Enable(on bool)
}

// Collaborators are the components a body's orchestrator switches. All are
// optional; a missing one is skipped.
type Collaborators struct {
	Meter     ScoreSource
	Scaler    scaling.Controller
	Deformer  Toggle
	Collider  Toggle
	Ring      *feedback.Ring
	Marker    *feedback.Marker
	Transform *core.Transform
}

// Orchestrator moves one body through Deform, Resize and Done. It is the only
// writer of the phase and never moves backwards.
type Orchestrator struct {
	body string
	cfg  Config
	c    Collaborators

	phase     Phase
	ticks     int
	hold      float32
	targetSet bool
	listeners []func(Transition)
}

// New wires the collaborators and applies the Deform entry actions.
func New(body string, cfg Config, c Collaborators) *Orchestrator {
	o := &Orchestrator{body: body, cfg: cfg, c: c}
	o.enterDeform()
	return o
}

func (o *Orchestrator) Body() string {
	return o.body
}

func (o *Orchestrator) Phase() Phase {
	return o.phase
}

// OnTransition registers fn for every later phase change.
func (o *Orchestrator) OnTransition(fn func(Transition)) {
	o.listeners = append(o.listeners, fn)
}

// ErrorRatio is the ring's current error input, 1 when unknown.
func (o *Orchestrator) ErrorRatio() float32 {
	if o.c.Scaler == nil {
		return 1
	}
	return o.c.Scaler.ErrorRatio()
}

func (o *Orchestrator) Tick(dt float32) {
	o.ticks++
	switch o.phase {
	case Deform:
		if o.c.Meter != nil && o.c.Meter.Score() >= o.cfg.SphericityThreshold {
			o.enterResize()
		}

	case Resize:
		if o.c.Scaler == nil {
			break
		}
		locked := o.c.Scaler.YLocked()
		o.updateRing(dt, locked)
		if locked && o.diameterHeld(dt) && o.markerHeld() {
			o.enterDone()
		}
	}
}

func (o *Orchestrator) diameterHeld(dt float32) bool {
	if !o.c.Scaler.DiameterOk() {
		o.hold = 0
		return false
	}
	if o.cfg.HoldTime <= 0 {
		return true
	}
	o.hold += dt
	return o.hold >= o.cfg.HoldTime
}

// markerHeld gates Done on the marker's hold check when it is being ticked.
func (o *Orchestrator) markerHeld() bool {
	if o.cfg.Ring != RingAlways || o.c.Marker == nil || o.c.Ring == nil {
		return true
	}
	return o.c.Marker.Held()
}

func (o *Orchestrator) updateRing(dt float32, locked bool) {
	ring := o.c.Ring
	if ring == nil || o.cfg.Ring == RingOff || o.cfg.Ring == "" {
		return
	}

	switch o.cfg.Ring {
	case RingAfterLock:
		if !locked {
			return
		}
		if !ring.Visible {
			ring.Show(true)
			ring.Place(o.center(), mgl32.Vec3{0, 1, 0}, o.c.Scaler.TargetDiameter()*0.5)
		}
		ring.SetError(o.c.Scaler.ErrorRatio())

	case RingAlways:
		ring.Show(true)
		if locked {
			if !o.targetSet && o.c.Marker != nil {
				o.c.Marker.SetStaticTarget(o.c.Scaler.TargetDiameter() * 0.5)
				o.targetSet = true
			}
			ring.SetError(o.c.Scaler.ErrorRatio())
		}
		if o.c.Marker != nil {
			o.c.Marker.Tick(dt)
		}
	}
}

func (o *Orchestrator) center() mgl32.Vec3 {
	if o.c.Transform == nil {
		return mgl32.Vec3{}
	}
	return o.c.Transform.Position
}

func (o *Orchestrator) enterDeform() {
	o.phase = Deform
	if o.c.Deformer != nil {
		o.c.Deformer.Enable(true)
	}
	if o.c.Collider != nil {
		o.c.Collider.Enable(true)
	}
	if o.c.Scaler != nil {
		o.c.Scaler.Enable(false)
	}
	if o.c.Ring != nil {
		o.c.Ring.Show(false)
	}
}

func (o *Orchestrator) enterResize() {
	o.phase = Resize
	// no collider means no hits, so no further bulging
	if o.c.Deformer != nil {
		o.c.Deformer.Enable(false)
	}
	if o.c.Collider != nil {
		o.c.Collider.Enable(false)
	}
	if o.c.Scaler != nil {
		o.c.Scaler.Enable(true)
	}
	if o.c.Ring != nil {
		o.c.Ring.Show(false)
	}
	if o.cfg.Ring == RingAlways && o.c.Marker != nil {
		o.c.Marker.Calibrate()
		if o.cfg.MarkerHeight > 0 {
			o.c.Marker.SetRingRadius(o.cfg.MarkerHeight)
		}
	}
	o.emit(Deform, Resize)
}

func (o *Orchestrator) enterDone() {
	o.phase = Done
	if o.c.Deformer != nil {
		o.c.Deformer.Enable(false)
	}
	if o.c.Collider != nil {
		o.c.Collider.Enable(false)
	}
	if o.c.Scaler != nil {
		o.c.Scaler.Enable(false)
	}
	if o.c.Ring != nil {
		o.c.Ring.Show(false)
	}
	o.emit(Resize, Done)
}

func (o *Orchestrator) emit(from, to Phase) {
	tr := Transition{Body: o.body, From: from, To: to, Tick: o.ticks}
	for _, fn := range o.listeners {
		fn(tr)
	}
}
