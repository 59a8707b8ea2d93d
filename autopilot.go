package reshaper

import (
	"container/heap"

	"github.com/gekko3d/reshaper/shape/core"
	"github.com/gekko3d/reshaper/shape/flow"
	"github.com/gekko3d/reshaper/shape/mesh"
	"github.com/gekko3d/reshaper/shape/scaling"

	"github.com/go-gl/mathgl/mgl32"
)

// dent is a camera-facing vertex sitting inside the body's mean radius.
type dent struct {
	World mgl32.Vec3
	Depth float32
	index int
}

type dentQueue []*dent

func (q dentQueue) Len() int           { return len(q) }
func (q dentQueue) Less(i, j int) bool { return q[i].Depth > q[j].Depth }
func (q dentQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *dentQueue) Push(x any) {
	d := x.(*dent)
	d.index = len(*q)
	*q = append(*q, d)
}
func (q *dentQueue) Pop() any {
	old := *q
	n := len(old)
	d := old[n-1]
	d.index = -1
	*q = old[:n-1]
	return d
}

// facingCos is the minimum cosine between a dent's outward direction and
// the direction to the camera.
const facingCos = 0.5

// minDentDepth ignores dents shallower than this fraction of the mean radius.
const minDentDepth = 1e-3

// grazingDepth is the minimum depth, as a fraction of the mean radius, of a
// dent pressed near the silhouette.
const grazingDepth = 0.02

// deepestDents returns up to n camera-facing dents of b, deepest first.
func deepestDents(b *Body, cam *core.Camera, n int) []*dent {
	return collectDents(b, cam, facingCos, minDentDepth, n)
}

// grazingDents also returns dents turned up to 90 degrees away from the
// camera, such as the poles of a body seen side on.
func grazingDents(b *Body, cam *core.Camera, n int) []*dent {
	return collectDents(b, cam, 0, grazingDepth, n)
}

func collectDents(b *Body, cam *core.Camera, minCos, minDepth float32, n int) []*dent {
	center := b.Transform.Position
	verts := b.Mesh.Vertices
	if len(verts) == 0 {
		return nil
	}

	world := make([]mgl32.Vec3, len(verts))
	var mean float32
	for i, v := range verts {
		world[i] = b.Transform.TransformPoint(v)
		mean += world[i].Sub(center).Len()
	}
	mean /= float32(len(verts))

	q := &dentQueue{}
	heap.Init(q)
	for _, p := range world {
		out := p.Sub(center)
		r := out.Len()
		if r < 1e-6 || r >= mean*(1-minDepth) {
			continue
		}
		toCam := cam.Position.Sub(p).Normalize()
		if out.Mul(1/r).Dot(toCam) < minCos {
			continue
		}
		heap.Push(q, &dent{World: p, Depth: mean - r})
	}

	var out []*dent
	for q.Len() > 0 && len(out) < n {
		out = append(out, heap.Pop(q).(*dent))
	}
	return out
}

type pilotMode int

const (
	pilotIdle pilotMode = iota
	pilotDeform
	pilotResize
)

// Autopilot is a PointerSource that plays a session by itself: it presses
// on the deepest visible dent of a body in Deform, and drags a body in
// Resize toward its Y target and then its diameter target.
type Autopilot struct {
	// HoldTicks is how long each push on a dent lasts.
	HoldTicks int
	// MaxStep caps the vertical pointer move per tick, in pixels.
	MaxStep float32

	width, height int
	scene         *Scene
	cam           *core.Camera

	mode   pilotMode
	target BodyId
	pos    mgl32.Vec2
	left   int
}

func NewAutopilot(width, height int) *Autopilot {
	return &Autopilot{HoldTicks: 3, MaxStep: 12, width: width, height: height}
}

// Attach points the pilot at a built app's scene and camera.
func (a *Autopilot) Attach(app *App) {
	a.scene = Resource[Scene](app)
	a.cam = Resource[core.Camera](app)
}

func (a *Autopilot) sample(down, held, up bool) PointerSample {
	return PointerSample{
		Down: down, Held: held, Up: up,
		X: a.pos.X(), Y: a.pos.Y(),
		ViewportW: a.width, ViewportH: a.height,
	}
}

func (a *Autopilot) release() PointerSample {
	a.mode = pilotIdle
	return a.sample(false, false, true)
}

func (a *Autopilot) Sample() PointerSample {
	if a.scene == nil || a.cam == nil {
		return a.sample(false, false, false)
	}

	switch a.mode {
	case pilotDeform:
		b := a.scene.Body(a.target)
		if b == nil || b.Phase() != flow.Deform || a.left <= 0 {
			return a.release()
		}
		a.left--
		return a.sample(false, true, false)

	case pilotResize:
		b := a.scene.Body(a.target)
		if b == nil || b.Phase() != flow.Resize {
			return a.release()
		}
		a.pos[1] += a.resizeStep(b)
		if a.pos.Y() < 0 || a.pos.Y() > float32(a.height) {
			a.pos[1] = core.Clamp(a.pos.Y(), 0, float32(a.height))
			return a.release()
		}
		return a.sample(false, true, false)
	}

	for _, b := range a.scene.Bodies() {
		if b.Phase() != flow.Resize {
			continue
		}
		if p, ok := a.cam.WorldToScreen(b.Transform.Position, a.width, a.height); ok {
			a.mode, a.target, a.pos = pilotResize, b.Id, p
			return a.sample(true, true, false)
		}
	}
	for _, b := range a.scene.Bodies() {
		if b.Phase() != flow.Deform {
			continue
		}
		for _, d := range deepestDents(b, a.cam, 1) {
			if p, ok := a.cam.WorldToScreen(d.World, a.width, a.height); ok {
				return a.press(b, p)
			}
		}
	}
	// nothing faces the camera any more: try dents near the silhouette
	for _, b := range a.scene.Bodies() {
		if b.Phase() != flow.Deform {
			continue
		}
		for _, d := range grazingDents(b, a.cam, 16) {
			if p, ok := a.reach(b, d); ok {
				return a.press(b, p)
			}
		}
	}
	return a.sample(false, false, false)
}

func (a *Autopilot) press(b *Body, p mgl32.Vec2) PointerSample {
	a.mode, a.target, a.pos, a.left = pilotDeform, b.Id, p, a.HoldTicks
	return a.sample(true, true, false)
}

// reach returns the screen point whose pointer ray lands on b within half a
// brush radius of d.
func (a *Autopilot) reach(b *Body, d *dent) (mgl32.Vec2, bool) {
	p, ok := a.cam.WorldToScreen(d.World, a.width, a.height)
	if !ok {
		return p, false
	}
	ray, ok := a.cam.ScreenRay(p.X(), p.Y(), a.width, a.height)
	if !ok {
		return p, false
	}
	hit := mesh.Raycast(a.scene.Colliders(), ray, maxPickDistance)
	if !hit.Hit || hit.Body != string(b.Id) {
		return p, false
	}
	s := b.Transform.Scale
	slack := b.Def.Deform.Radius * core.Max3(s.X(), s.Y(), s.Z()) * 0.5
	return p, hit.Point.Sub(d.World).Len() <= slack
}

// resizeStep is the pixel move that would close the current scale error,
// capped at MaxStep.
func (a *Autopilot) resizeStep(b *Body) float32 {
	cfg := b.Def.Scaling
	h := float32(a.height)
	var px float32
	switch {
	case cfg.Mode == scaling.ModeUniform:
		px = (b.Scaler.TargetDiameter()/max(1e-4, b.Scaler.Diameter()) - 1) / cfg.DragSensitivity * h
	case !b.Scaler.YLocked():
		px = (cfg.TargetYScale/max(1e-4, b.Transform.Scale.Y()) - 1) / cfg.YSpeed * h
	default:
		px = (b.Scaler.TargetDiameter()/max(1e-4, b.Scaler.Diameter()) - 1) / cfg.UniformSensitivity * h
	}
	return core.Clamp(px, -a.MaxStep, a.MaxStep)
}
