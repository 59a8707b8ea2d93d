package reshaper

import (
	"context"
	"testing"

	"github.com/gekko3d/reshaper/shape/core"
	"github.com/gekko3d/reshaper/shape/flow"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeepestDentsFacesCamera(t *testing.T) {
	scene := NewScene(nil)
	b, err := scene.Spawn(testDef("ball"))
	require.NoError(t, err)
	cam := core.NewCamera()

	assert.Empty(t, deepestDents(b, cam, 3), "a perfect sphere has no dents")

	front, back := 0, 0
	for i, v := range b.Mesh.Vertices {
		if v.Z() > b.Mesh.Vertices[front].Z() {
			front = i
		}
		if v.Z() < b.Mesh.Vertices[back].Z() {
			back = i
		}
	}
	b.Mesh.Vertices[front] = b.Mesh.Vertices[front].Mul(0.9)
	b.Mesh.Vertices[back] = b.Mesh.Vertices[back].Mul(0.7)
	b.Mesh.Commit()

	dents := deepestDents(b, cam, 3)
	require.Len(t, dents, 1, "the back dent is hidden from the camera")
	assert.InDelta(t, 0, dents[0].World.Sub(b.Mesh.Vertices[front]).Len(), 1e-5)
}

func TestGrazingDentsReachPastFacingCone(t *testing.T) {
	scene := NewScene(nil)
	b, err := scene.Spawn(testDef("ball"))
	require.NoError(t, err)
	cam := core.NewCamera()

	facing := func(v mgl32.Vec3) float32 {
		p := b.Transform.TransformPoint(v)
		return p.Normalize().Dot(cam.Position.Sub(p).Normalize())
	}
	side := -1
	for i, v := range b.Mesh.Vertices {
		c := facing(v)
		if c >= 0.1 && c <= 0.4 && (side < 0 || c > facing(b.Mesh.Vertices[side])) {
			side = i
		}
	}
	require.GreaterOrEqual(t, side, 0)
	b.Mesh.Vertices[side] = b.Mesh.Vertices[side].Mul(0.9)
	b.Mesh.Commit()

	assert.Empty(t, deepestDents(b, cam, 3), "the dent is outside the facing cone")
	dents := grazingDents(b, cam, 3)
	require.Len(t, dents, 1)
	assert.InDelta(t, 0, dents[0].World.Sub(b.Mesh.Vertices[side]).Len(), 1e-5)
}

func TestAutopilotIdleWithoutScene(t *testing.T) {
	a := NewAutopilot(640, 480)
	s := a.Sample()
	assert.False(t, s.Down)
	assert.False(t, s.Held)
	assert.Equal(t, 640, s.ViewportW)
}

func TestAutopilotCompletesSession(t *testing.T) {
	def := testDef("ball")
	def.Scale = mgl32.Vec3{0.5, 0.5, 0.5}

	pilot := NewAutopilot(640, 480)
	app := NewSessionApp(SessionOptions{
		Scene:    SceneDef{Bodies: []BodyDef{def}},
		Source:   pilot,
		Step:     step,
		Viewport: [2]int{640, 480},
	})
	pilot.Attach(app)

	require.NoError(t, app.Run(context.Background(), 600))
	require.True(t, app.Finished())

	b := Resource[Scene](app).ByName("ball")
	assert.Equal(t, flow.Done, b.Phase())
	assert.True(t, b.Scaler.DiameterOk())
	assert.InDelta(t, 1.0, b.Scaler.Diameter(), 0.05)
}
