package reshaper

import (
	"github.com/gekko3d/reshaper/shape/core"
	"github.com/gekko3d/reshaper/shape/scaling"

	"github.com/go-gl/mathgl/mgl32"
)

// PointerSample is one tick of primary-button pointer state. X and Y are
// viewport pixels with the origin at the bottom left. Down and Up are edges;
// Held is true on every tick the button is pressed, the Down tick included.
type PointerSample struct {
	Down   bool
	Held   bool
	Up     bool
	X, Y   float32
	Scroll float32

	ViewportW int
	ViewportH int

	// Ray, when HasRay, overrides the camera-derived ray.
	Ray    core.Ray
	HasRay bool
}

// PointerSource produces a sample per tick.
type PointerSource interface {
	Sample() PointerSample
}

// Pointer is the resource systems read: the latest sample with its world ray.
type Pointer struct {
	PointerSample
}

func (p *Pointer) ScalingInput() scaling.Input {
	return scaling.Input{
		Down:           p.Down,
		Held:           p.Held,
		Up:             p.Up,
		Y:              p.Y,
		ViewportHeight: float32(p.ViewportH),
		Scroll:         p.Scroll,
	}
}

// ScriptedPointer replays queued samples, then reports an idle pointer.
type ScriptedPointer struct {
	width, height int
	frames        []PointerSample
	next          int
	last          PointerSample
}

func NewScriptedPointer(width, height int) *ScriptedPointer {
	return &ScriptedPointer{width: width, height: height}
}

func (s *ScriptedPointer) Sample() PointerSample {
	if s.next >= len(s.frames) {
		return PointerSample{
			X: s.last.X, Y: s.last.Y,
			ViewportW: s.width, ViewportH: s.height,
		}
	}
	f := s.frames[s.next]
	s.next++
	s.last = f
	return f
}

func (s *ScriptedPointer) Remaining() int {
	return len(s.frames) - s.next
}

func (s *ScriptedPointer) push(f PointerSample) {
	f.ViewportW, f.ViewportH = s.width, s.height
	s.frames = append(s.frames, f)
}

// Idle queues n ticks with the button up.
func (s *ScriptedPointer) Idle(n int) *ScriptedPointer {
	for i := 0; i < n; i++ {
		s.push(PointerSample{X: s.tailX(), Y: s.tailY()})
	}
	return s
}

// Drag presses at from, moves linearly to `to` over n held ticks and
// releases there. n < 1 is treated as 1.
func (s *ScriptedPointer) Drag(from, to mgl32.Vec2, n int) *ScriptedPointer {
	n = max(1, n)
	s.push(PointerSample{Down: true, Held: true, X: from.X(), Y: from.Y()})
	for i := 1; i <= n; i++ {
		p := from.Add(to.Sub(from).Mul(float32(i) / float32(n)))
		s.push(PointerSample{Held: true, X: p.X(), Y: p.Y()})
	}
	s.push(PointerSample{Up: true, X: to.X(), Y: to.Y()})
	return s
}

// Press holds the button still at p for n ticks, then releases.
func (s *ScriptedPointer) Press(p mgl32.Vec2, n int) *ScriptedPointer {
	return s.Drag(p, p, n)
}

// Scroll queues n ticks of wheel movement with the button up.
func (s *ScriptedPointer) Scroll(amount float32, n int) *ScriptedPointer {
	for i := 0; i < n; i++ {
		s.push(PointerSample{X: s.tailX(), Y: s.tailY(), Scroll: amount})
	}
	return s
}

func (s *ScriptedPointer) tailX() float32 {
	if len(s.frames) == 0 {
		return float32(s.width) / 2
	}
	return s.frames[len(s.frames)-1].X
}

func (s *ScriptedPointer) tailY() float32 {
	if len(s.frames) == 0 {
		return float32(s.height) / 2
	}
	return s.frames[len(s.frames)-1].Y
}

type pointerFeed struct {
	source PointerSource
}

// InputModule samples Source once per tick into the Pointer resource and
// derives the world ray from the Camera resource.
type InputModule struct {
	Source PointerSource
	Camera *core.Camera
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cam := mod.Camera
	if cam == nil {
		cam = core.NewCamera()
	}
	cmd.AddResources(&Pointer{}, &pointerFeed{source: mod.Source}, cam)
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

func inputSystem(feed *pointerFeed, pointer *Pointer, cam *core.Camera) {
	if feed.source == nil {
		pointer.PointerSample = PointerSample{}
		return
	}
	s := feed.source.Sample()
	if !s.HasRay && s.ViewportW > 0 && s.ViewportH > 0 {
		s.Ray, s.HasRay = cam.ScreenRay(s.X, s.Y, s.ViewportW, s.ViewportH)
	}
	pointer.PointerSample = s
}
