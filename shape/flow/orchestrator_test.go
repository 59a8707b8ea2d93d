package flow

import (
	"testing"

	"github.com/gekko3d/reshaper/shape/core"
	"github.com/gekko3d/reshaper/shape/feedback"
	"github.com/gekko3d/reshaper/shape/scaling"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMeter struct{ score float32 }

func (m *fakeMeter) Score() float32 { return m.score }

type fakeToggle struct{ on bool }

func (t *fakeToggle) Enable(on bool) { t.on = on }

type fakeScaler struct {
	enabled bool
	locked  bool
	ok      bool
	ratio   float32
	ticks   int
}

func (s *fakeScaler) Tick(dt float32, in scaling.Input) { s.ticks++ }
func (s *fakeScaler) Enable(on bool)                    { s.enabled = on }
func (s *fakeScaler) Enabled() bool                     { return s.enabled }
func (s *fakeScaler) YLocked() bool                     { return s.locked }
func (s *fakeScaler) Diameter() float32                 { return 1 }
func (s *fakeScaler) TargetDiameter() float32           { return 1.2 }
func (s *fakeScaler) DiameterOk() bool                  { return s.ok }
func (s *fakeScaler) ErrorRatio() float32               { return s.ratio }

type rig struct {
	meter    *fakeMeter
	scaler   *fakeScaler
	deformer *fakeToggle
	collider *fakeToggle
	ring     *feedback.Ring
}

func newRig(cfg Config) (*Orchestrator, *rig) {
	r := &rig{
		meter:    &fakeMeter{},
		scaler:   &fakeScaler{ratio: 1},
		deformer: &fakeToggle{},
		collider: &fakeToggle{},
		ring:     feedback.NewRing(feedback.DefaultRingConfig()),
	}
	o := New("ball", cfg, Collaborators{
		Meter:     r.meter,
		Scaler:    r.scaler,
		Deformer:  r.deformer,
		Collider:  r.collider,
		Ring:      r.ring,
		Transform: core.NewTransform(),
	})
	return o, r
}

func TestStartsInDeform(t *testing.T) {
	o, r := newRig(DefaultConfig())

	assert.Equal(t, Deform, o.Phase())
	assert.True(t, r.deformer.on)
	assert.True(t, r.collider.on)
	assert.False(t, r.scaler.enabled)
	assert.False(t, r.ring.Visible)
}

func TestScoreCrossingEntersResizeOnSameTick(t *testing.T) {
	o, r := newRig(DefaultConfig())
	var seen []Transition
	o.OnTransition(func(tr Transition) { seen = append(seen, tr) })

	scores := []float32{0.5, 0.8, 0.94, 0.95, 0.99}
	for i, s := range scores {
		r.meter.score = s
		o.Tick(1.0 / 60)
		if i < 3 {
			assert.Equal(t, Deform, o.Phase(), "tick %d", i+1)
		}
	}

	assert.Equal(t, Resize, o.Phase())
	require.Len(t, seen, 1)
	assert.Equal(t, Transition{Body: "ball", From: Deform, To: Resize, Tick: 4}, seen[0])
	assert.False(t, r.deformer.on)
	assert.False(t, r.collider.on)
	assert.True(t, r.scaler.enabled)
	assert.False(t, r.ring.Visible)
}

func TestDoneRequiresLockAndDiameter(t *testing.T) {
	o, r := newRig(DefaultConfig())
	r.meter.score = 1
	o.Tick(0.1)
	require.Equal(t, Resize, o.Phase())

	r.scaler.ok = true
	o.Tick(0.1)
	assert.Equal(t, Resize, o.Phase(), "diameter alone is not enough before the lock")

	r.scaler.locked = true
	r.scaler.ok = false
	o.Tick(0.1)
	assert.Equal(t, Resize, o.Phase())

	r.scaler.ok = true
	o.Tick(0.1)
	assert.Equal(t, Done, o.Phase())
	assert.False(t, r.scaler.enabled)
	assert.False(t, r.deformer.on)
	assert.False(t, r.collider.on)
	assert.False(t, r.ring.Visible)
}

func TestPhaseNeverMovesBackwards(t *testing.T) {
	o, r := newRig(DefaultConfig())
	count := 0
	o.OnTransition(func(Transition) { count++ })

	r.meter.score = 1
	r.scaler.locked = true
	r.scaler.ok = true
	o.Tick(0.1)
	o.Tick(0.1)
	require.Equal(t, Done, o.Phase())

	r.meter.score = 0
	r.scaler.ok = false
	for i := 0; i < 10; i++ {
		o.Tick(0.1)
	}
	assert.Equal(t, Done, o.Phase())
	assert.Equal(t, 2, count)
	assert.False(t, r.scaler.enabled)
}

func TestRingAfterLock(t *testing.T) {
	o, r := newRig(DefaultConfig())
	r.meter.score = 1
	o.Tick(0.1)

	r.scaler.ratio = 0.5
	o.Tick(0.1)
	assert.False(t, r.ring.Visible, "hidden until Y locks")

	r.scaler.locked = true
	o.Tick(0.1)
	assert.True(t, r.ring.Visible)
	assert.InDelta(t, 0.6, r.ring.Radius, 1e-6)
	assert.InDelta(t, 0.025, r.ring.Width, 1e-6)
	assert.Equal(t, float32(0.5), o.ErrorRatio())
}

func TestRingOffStaysHidden(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Ring = RingOff
	o, r := newRig(cfg)
	r.meter.score = 1
	r.scaler.locked = true
	o.Tick(0.1)
	o.Tick(0.1)

	assert.Equal(t, Resize, o.Phase())
	assert.False(t, r.ring.Visible)
}

func TestRingAlwaysSwitchesMarkerOnLock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Ring = RingAlways
	cfg.MarkerHeight = 0.7

	body := core.NewTransform()
	ring := feedback.NewRing(feedback.DefaultRingConfig())
	marker := feedback.NewMarker(feedback.DefaultMarkerConfig(), body, ring)
	scaler := &fakeScaler{ratio: 1}
	meter := &fakeMeter{score: 1}
	o := New("ball", cfg, Collaborators{Meter: meter, Scaler: scaler, Ring: ring, Marker: marker, Transform: body})

	o.Tick(0.1)
	require.Equal(t, Resize, o.Phase())
	assert.InDelta(t, 0.7, marker.TargetHeight, 1e-6)
	o.Tick(0.1)
	assert.True(t, ring.Visible)
	assert.Equal(t, feedback.HeightMarker, marker.Mode())

	scaler.locked = true
	o.Tick(0.1)
	assert.Equal(t, feedback.RadiusTarget, marker.Mode())
	assert.InDelta(t, 0.6, marker.TargetRadius(), 1e-6)
}

func newMarkerRig(body *core.Transform) (*Orchestrator, *fakeScaler, *feedback.Ring, *feedback.Marker) {
	cfg := DefaultConfig()
	cfg.Ring = RingAlways

	ring := feedback.NewRing(feedback.DefaultRingConfig())
	mcfg := feedback.DefaultMarkerConfig()
	mcfg.RequiredHold = 0.1
	marker := feedback.NewMarker(mcfg, body, ring)
	scaler := &fakeScaler{ratio: 1}
	o := New("ball", cfg, Collaborators{
		Meter:     &fakeMeter{score: 1},
		Scaler:    scaler,
		Ring:      ring,
		Marker:    marker,
		Transform: body,
	})
	return o, scaler, ring, marker
}

func TestRingAlwaysKeepsErrorAlpha(t *testing.T) {
	o, scaler, ring, _ := newMarkerRig(core.NewTransform())
	o.Tick(0.1)
	require.Equal(t, Resize, o.Phase())

	scaler.locked = true
	scaler.ratio = 0.6
	o.Tick(0.1)

	cfg := feedback.DefaultMarkerConfig()
	assert.Equal(t, cfg.DefaultColor[0], ring.Color[0])
	assert.Equal(t, cfg.DefaultColor[2], ring.Color[2])
	assert.InDelta(t, 0.72, ring.Color[3], 1e-5)
	assert.InDelta(t, 0.028, ring.Width, 1e-6)
}

func TestRingAlwaysCalibratesMarker(t *testing.T) {
	body := core.NewTransform()
	body.Scale = mgl32.Vec3{1, 0.6, 1}
	o, _, _, marker := newMarkerRig(body)

	o.Tick(0.1)
	require.Equal(t, Resize, o.Phase())
	assert.Equal(t, feedback.HeightMarker, marker.Mode())
	assert.InDelta(t, 0.5, marker.TargetHeight, 1e-6)
	assert.InDelta(t, 0.45, marker.RingRadius, 1e-6)
}

func TestRingAlwaysDoneWaitsForMarkerHold(t *testing.T) {
	body := core.NewTransform()
	o, scaler, _, marker := newMarkerRig(body)
	o.Tick(0.1)
	require.Equal(t, Resize, o.Phase())

	scaler.locked = true
	scaler.ok = true
	for i := 0; i < 3; i++ {
		o.Tick(0.06)
	}
	assert.Equal(t, Resize, o.Phase(), "radius 0.5 misses the 0.6 target")
	assert.False(t, marker.Held())

	body.Scale = mgl32.Vec3{1.2, 1.2, 1.2}
	o.Tick(0.06)
	assert.Equal(t, Resize, o.Phase())
	assert.True(t, marker.Correct())

	o.Tick(0.06)
	assert.True(t, marker.Held())
	assert.Equal(t, Done, o.Phase())
}

func TestHoldTimeDelaysDone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HoldTime = 0.3
	o, r := newRig(cfg)
	r.meter.score = 1
	r.scaler.locked = true
	o.Tick(0.1)

	r.scaler.ok = true
	o.Tick(0.125)
	o.Tick(0.125)
	assert.Equal(t, Resize, o.Phase())

	r.scaler.ok = false
	o.Tick(0.125)
	r.scaler.ok = true
	o.Tick(0.125)
	o.Tick(0.125)
	assert.Equal(t, Resize, o.Phase(), "hold resets when the diameter leaves tolerance")

	o.Tick(0.125)
	assert.Equal(t, Done, o.Phase())
}

func TestMissingCollaboratorsAreSkipped(t *testing.T) {
	o := New("empty", DefaultConfig(), Collaborators{})
	assert.NotPanics(t, func() {
		for i := 0; i < 5; i++ {
			o.Tick(0.1)
		}
	})
	assert.Equal(t, Deform, o.Phase())
	assert.Equal(t, float32(1), o.ErrorRatio())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "deform", Deform.String())
	assert.Equal(t, "resize", Resize.String())
	assert.Equal(t, "done", Done.String())
	assert.Equal(t, "unknown", Phase(9).String())
}
