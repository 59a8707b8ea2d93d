package deform

import (
	"testing"

	"github.com/gekko3d/reshaper/shape/core"
	"github.com/gekko3d/reshaper/shape/mesh"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySingleVertexScenario(t *testing.T) {
	m := mesh.New([]mgl32.Vec3{{0.1, 0, 0}}, nil)
	d := New("body", m, Config{Radius: 0.25, Strength: 0.5, Falloff: 3})

	s := d.StrokeAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	dt := float32(1.0 / 60.0)
	moved := d.Apply(s, dt)
	require.Equal(t, 1, moved)

	want := 0.5 * core.Pow(1-0.1/0.25, 3) * dt
	got := m.Vertices[0].Sub(mgl32.Vec3{0.1, 0, 0})
	assert.InDelta(t, 0, got.X(), 1e-7)
	assert.InDelta(t, want, got.Y(), 1e-7)
	assert.InDelta(t, 0.0018, got.Y(), 1e-5)
}

func TestApplyLeavesVerticesOutsideRadius(t *testing.T) {
	m := mesh.NewIcosphere(0.5, 3)
	before := make([]mgl32.Vec3, len(m.Vertices))
	copy(before, m.Vertices)

	d := New("body", m, Config{Radius: 0.2, Strength: 2, Falloff: 2})
	contact := mgl32.Vec3{0, 0.5, 0}
	s := d.StrokeAt(contact, mgl32.Vec3{0, 1, 0})
	for i := 0; i < 30; i++ {
		d.Apply(s, 1.0/60.0)
	}

	changed := 0
	for i, v := range before {
		if v.Sub(contact).Len() > 0.2 {
			if m.Vertices[i] != v {
				t.Fatalf("Vertex %d outside radius moved from %v to %v", i, v, m.Vertices[i])
			}
		} else if m.Vertices[i] != v {
			changed++
		}
	}
	assert.Greater(t, changed, 0)
	assert.Greater(t, m.Bounds.Max.Y(), float32(0.5))
}

func TestWeightFalloff(t *testing.T) {
	s := Stroke{Radius: 1, Falloff: 2}
	assert.InDelta(t, 1, s.Weight(0), 1e-6)
	assert.InDelta(t, 0.25, s.Weight(0.5), 1e-6)
	assert.Equal(t, float32(0), s.Weight(1.01))
	assert.Equal(t, float32(0), Stroke{Radius: 0}.Weight(0))
}

func TestTickAccumulatesWhileHeld(t *testing.T) {
	m := mesh.New([]mgl32.Vec3{{0, 0, 0}}, nil)
	// zero falloff keeps the weight at 1 as the vertex drifts from the contact
	d := New("body", m, Config{Radius: 5, Strength: 1, Falloff: 0})
	hit := &core.Hit{Hit: true, Body: "body", LocalPoint: mgl32.Vec3{}, LocalNormal: mgl32.Vec3{0, 2, 0}}

	for i := 0; i < 10; i++ {
		assert.False(t, d.Tick(0.1, true, hit))
	}
	assert.InDelta(t, 1.0, m.Vertices[0].Y(), 1e-5)
	assert.True(t, d.Dragging())

	assert.True(t, d.Tick(0.1, false, nil), "release should be reported once")
	assert.False(t, d.Tick(0.1, false, nil))
}

func TestTickSkipsMissingOrForeignContact(t *testing.T) {
	m := mesh.New([]mgl32.Vec3{{0, 0, 0}}, nil)
	d := New("body", m, Config{Radius: 1, Strength: 1, Falloff: 1})

	d.Tick(0.1, true, nil)
	d.Tick(0.1, true, &core.Hit{Hit: false})
	d.Tick(0.1, true, &core.Hit{Hit: true, Body: "other", LocalNormal: mgl32.Vec3{0, 1, 0}})
	assert.Equal(t, mgl32.Vec3{}, m.Vertices[0])
	assert.False(t, d.Dragging())

	d.Enable(false)
	d.Tick(0.1, true, &core.Hit{Hit: true, Body: "body", LocalNormal: mgl32.Vec3{0, 1, 0}})
	assert.Equal(t, mgl32.Vec3{}, m.Vertices[0])
}
