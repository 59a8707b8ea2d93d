package reshaper

import (
	"testing"

	"github.com/gekko3d/reshaper/shape/flow"
	"github.com/gekko3d/reshaper/shape/scaling"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDef(name string) BodyDef {
	def := DefaultBodyDef(name)
	def.Jitter = nil
	def.Subdivisions = 2
	def.Meter.Smoothing = 60
	def.Flow.SphericityThreshold = 0.9
	def.Scaling.TargetDiameter = 1.0
	return def
}

func TestSpawnWiresPipeline(t *testing.T) {
	scene := NewScene(nil)
	b, err := scene.Spawn(testDef("ball"))
	require.NoError(t, err)

	assert.NotEmpty(t, b.Id)
	assert.Equal(t, flow.Deform, b.Phase())
	assert.True(t, b.Deformer.Enabled())
	assert.True(t, b.Collider.Enabled)
	assert.False(t, b.Scaler.Enabled())
	assert.False(t, b.Ring.Visible)
	assert.Equal(t, string(b.Id), b.Collider.Body)
	assert.Equal(t, 162, b.Mesh.VertexCount())
	assert.Same(t, b, scene.ByName("ball"))
	assert.Same(t, b, scene.Body(b.Id))
}

func TestSpawnInstancesAreIndependent(t *testing.T) {
	scene := NewScene(nil)
	a, err := scene.Spawn(testDef("a"))
	require.NoError(t, err)
	b, err := scene.Spawn(testDef("b"))
	require.NoError(t, err)

	a.Mesh.Vertices[0] = mgl32.Vec3{9, 9, 9}
	assert.NotEqual(t, a.Mesh.Vertices[0], b.Mesh.Vertices[0])
	assert.Len(t, scene.templates, 1)
}

func TestSpawnJitterRoughensSphere(t *testing.T) {
	scene := NewScene(nil)
	smooth, err := scene.Spawn(testDef("smooth"))
	require.NoError(t, err)

	def := DefaultBodyDef("rough")
	def.Subdivisions = 2
	rough, err := scene.Spawn(def)
	require.NoError(t, err)

	smooth.Meter.Tick(1)
	rough.Meter.Tick(1)
	assert.InDelta(t, 1, smooth.Meter.Raw(), 1e-4)
	assert.Less(t, rough.Meter.Raw(), smooth.Meter.Raw())
}

func TestSpawnErrors(t *testing.T) {
	scene := NewScene(nil)
	_, err := scene.Spawn(testDef("sun"))
	require.NoError(t, err)

	_, err = scene.Spawn(testDef("sun"))
	assert.ErrorIs(t, err, ErrDuplicateBody)

	moon := testDef("moon")
	moon.RelativeTo = "earth"
	_, err = scene.Spawn(moon)
	assert.ErrorIs(t, err, ErrUnknownReference)

	bad := testDef("cube")
	bad.Scaling.Mode = scaling.Mode("cubic")
	_, err = scene.Spawn(bad)
	assert.Error(t, err)

	_, err = scene.Spawn(BodyDef{})
	assert.Error(t, err)
	assert.Len(t, scene.Bodies(), 1)
}

func TestRelativeTargets(t *testing.T) {
	scene := NewScene(nil)
	sun := testDef("sun")
	sun.Scaling.TargetDiameter = 2
	_, err := scene.Spawn(sun)
	require.NoError(t, err)

	earth := testDef("earth")
	earth.RelativeTo, earth.Ratio = "sun", 0.5
	e, err := scene.Spawn(earth)
	require.NoError(t, err)

	moon := testDef("moon")
	moon.RelativeTo, moon.Ratio = "earth", 0.25
	m, err := scene.Spawn(moon)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, e.Scaler.TargetDiameter(), 1e-6)
	assert.InDelta(t, 0.25, m.Scaler.TargetDiameter(), 1e-6)
}

func TestRemoveClearsSelection(t *testing.T) {
	scene := NewScene(nil)
	b, err := scene.Spawn(testDef("ball"))
	require.NoError(t, err)
	scene.Select(b.Id)
	require.Same(t, b, scene.Selected())

	assert.True(t, scene.Remove(b.Id))
	assert.Nil(t, scene.Selected())
	assert.False(t, scene.Remove(b.Id))
}

func TestCommandsSpawnIsBufferedUntilStageEnd(t *testing.T) {
	app := NewAppBuilder().UseModule(SceneModule{}).Build()
	scene := Resource[Scene](app)

	var seen int
	app.UseSystem(System(func(cmd *Commands, s *Scene) {
		if len(s.Bodies()) == 0 {
			cmd.SpawnBody(testDef("late"))
		}
		seen = len(s.Bodies())
	}))
	app.Tick()
	assert.Equal(t, 0, seen)
	assert.Len(t, scene.Bodies(), 1)

	id := scene.Bodies()[0].Id
	app.Commands().RemoveBody(id)
	app.FlushCommands()
	assert.Empty(t, scene.Bodies())
}
