package reshaper

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"testing"
	"time"

	"github.com/gekko3d/reshaper/shape/core"
	"github.com/gekko3d/reshaper/shape/flow"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const step = time.Second / 60

type recorder struct {
	events []string
}

func (r *recorder) ModuleStarted(name string)             { r.add("module started %s", name) }
func (r *recorder) TaskStarted(index int, title string)   { r.add("task %d started", index) }
func (r *recorder) TaskCompleted(index int, title string) { r.add("task %d completed", index) }
func (r *recorder) ModuleCompleted(name string)           { r.add("module completed %s", name) }

func (r *recorder) add(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func TestSessionRunsToCompletion(t *testing.T) {
	rec := &recorder{}
	var logs bytes.Buffer
	app := NewSessionApp(SessionOptions{
		Name:      "planets",
		Scene:     SceneDef{Bodies: []BodyDef{testDef("ball")}},
		Step:      step,
		Viewport:  [2]int{640, 480},
		LogOutput: &logs,
		Notifier:  rec,
	})

	require.NoError(t, app.Run(context.Background(), 100))

	require.True(t, app.Finished())
	assert.Equal(t, 4, app.Ticks())
	assert.Equal(t, StateComplete, app.State())
	assert.Equal(t, []string{
		"module started planets",
		"task 0 started",
		"task 0 completed",
		"task 1 started",
		"task 1 completed",
		"module completed planets",
	}, rec.events)

	scene := Resource[Scene](app)
	b := scene.ByName("ball")
	assert.Equal(t, flow.Done, b.Phase())
	assert.False(t, b.Scaler.Enabled())
	assert.False(t, b.Deformer.Enabled())
	assert.Contains(t, logs.String(), "ball: deform -> resize at tick 3")
	assert.Contains(t, logs.String(), "ball: resize -> done at tick 4")

	progress := Resource[Progress](app)
	assert.False(t, progress.Update(scene))
	assert.Len(t, rec.events, 6)

	rep := Report(app)
	assert.True(t, rep.Complete)
	assert.Equal(t, []string{"shape corrected", "size corrected"}, rep.Tasks)
	require.Len(t, rep.Bodies, 1)
	assert.Equal(t, "done", rep.Bodies[0].Phase)

	var out bytes.Buffer
	require.NoError(t, WriteReport(&out, rep))
	assert.Contains(t, out.String(), `"phase": "done"`)
}

func TestSessionWaitsForEveryBody(t *testing.T) {
	rec := &recorder{}
	small := testDef("small")
	small.Position = mgl32.Vec3{1, 0, 0}
	small.Scale = mgl32.Vec3{0.5, 0.5, 0.5}

	app := NewSessionApp(SessionOptions{
		Scene:    SceneDef{Bodies: []BodyDef{testDef("ball"), small}},
		Step:     step,
		Notifier: rec,
	})
	require.NoError(t, app.Run(context.Background(), 30))

	assert.False(t, app.Finished())
	scene := Resource[Scene](app)
	assert.Equal(t, flow.Done, scene.ByName("ball").Phase())
	assert.Equal(t, flow.Resize, scene.ByName("small").Phase())
	assert.Equal(t, []string{
		"module started reshape",
		"task 0 started",
		"task 0 completed",
		"task 1 started",
	}, rec.events)
	assert.InDelta(t, 1, Resource[Progress](app).Slider, 0.01)
}

func toolApp(src PointerSource, defs ...BodyDef) *App {
	return NewAppBuilder().
		UseModule(
			TimeModule{Fixed: step},
			InputModule{Source: src},
			SceneModule{Def: SceneDef{Bodies: defs}},
			DeformModule{},
			ScalingModule{},
			MetricsModule{},
			FeedbackModule{Width: 640, Height: 480},
		).
		Build()
}

func TestDragDeformsAndRefreshesColliderOnRelease(t *testing.T) {
	src := NewScriptedPointer(640, 480).Press(mgl32.Vec2{320, 240}, 30)
	app := toolApp(src, testDef("ball"))
	b := Resource[Scene](app).ByName("ball")
	before := b.Mesh.Bounds.Max.Z()

	require.NoError(t, app.Run(context.Background(), 12))
	assert.Greater(t, b.Mesh.Bounds.Max.Z(), before)
	assert.True(t, b.Deformer.Dragging())
	assert.Equal(t, 1, b.Collider.Refreshes(), "collider keeps the pre-drag shape")

	require.NoError(t, app.Run(context.Background(), 40))
	assert.False(t, b.Deformer.Dragging())
	assert.Equal(t, 2, b.Collider.Refreshes())
	assert.Less(t, b.Meter.Raw(), float32(1))
}

func TestDragScalesSelectedBodyAlongY(t *testing.T) {
	def := testDef("ball")
	def.Scale = mgl32.Vec3{0.5, 0.5, 0.5}
	src := NewScriptedPointer(640, 480).Drag(mgl32.Vec2{320, 240}, mgl32.Vec2{320, 400}, 10)
	app := toolApp(src, def)
	scene := Resource[Scene](app)
	b := scene.ByName("ball")
	b.Deformer.Enable(false)
	b.Scaler.Enable(true)

	require.NoError(t, app.Run(context.Background(), 12))

	assert.Same(t, b, scene.Selected())
	assert.InDelta(t, 0.953, b.Transform.Scale.Y(), 0.005)
	assert.Equal(t, float32(0.5), b.Transform.Scale.X())
	assert.False(t, b.Scaler.YLocked())
}

func TestPressSelectsBodyUnderPointer(t *testing.T) {
	left, right := testDef("left"), testDef("right")
	left.Position = mgl32.Vec3{-1, 0, 0}
	right.Position = mgl32.Vec3{1, 0, 0}
	left.Scale = mgl32.Vec3{0.5, 0.5, 0.5}
	right.Scale = mgl32.Vec3{0.5, 0.5, 0.5}

	cam := core.NewCamera()
	at, ok := cam.WorldToScreen(left.Position, 640, 480)
	require.True(t, ok)

	src := NewScriptedPointer(640, 480).
		Press(at, 1).
		Press(mgl32.Vec2{5, 5}, 1).
		Press(mgl32.Vec2{5, 5}, 1)
	app := toolApp(src, left, right)
	scene := Resource[Scene](app)
	for _, b := range scene.Bodies() {
		b.Deformer.Enable(false)
		b.Scaler.Enable(true)
	}

	app.Tick()
	assert.Equal(t, "left", scene.Selected().Name)

	app.Run(context.Background(), 4)
	assert.Nil(t, scene.Selected(), "a miss with several candidates clears the selection")

	scene.ByName("right").Scaler.Enable(false)
	app.Run(context.Background(), 7)
	assert.Equal(t, "left", scene.Selected().Name, "a single candidate is always picked")
}

func TestFeedbackProjectsVisibleRings(t *testing.T) {
	app := toolApp(nil, testDef("ball"))
	b := Resource[Scene](app).ByName("ball")
	b.Deformer.Enable(false)
	b.Ring.Show(true)
	b.Ring.Place(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, 0.5)

	app.Tick()

	gizmos := Resource[Gizmos](app)
	require.Len(t, gizmos.Rings, 1)
	assert.Equal(t, b.Id, gizmos.Rings[0].Body)
	assert.Len(t, gizmos.Rings[0].Points, 128)
	assert.GreaterOrEqual(t, gizmos.Rings[0].Width, float32(1))

	img := gizmos.Draw()
	assert.Equal(t, color.RGBA{}, img.RGBAAt(320, 240), "ring centre stays empty")
	painted := 0
	for x := 0; x < 640; x++ {
		if img.RGBAAt(x, 240).A > 0 {
			painted++
		}
	}
	assert.Greater(t, painted, 0)

	b.Ring.Show(false)
	app.Tick()
	assert.Empty(t, gizmos.Rings)
}
