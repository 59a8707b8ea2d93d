package reshaper

import (
	"github.com/gekko3d/reshaper/shape/scaling"
)

// ScalingModule routes pointer input to the selected body's scaler. A press
// selects the nearest scalable body under the ray; with a single scalable
// body the press selects it wherever it lands.
type ScalingModule struct{}

func (mod ScalingModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(scalingSystem).
			InStage(Update).
			RunAlways(),
	)
}

func scalingSystem(t *Time, pointer *Pointer, scene *Scene) {
	if pointer.Down {
		if b := pickScalable(scene, pointer); b != nil {
			scene.Select(b.Id)
		} else {
			scene.Select("")
		}
	}

	dt := t.Seconds()
	selected := scene.Selected()
	in := pointer.ScalingInput()
	idle := scaling.Input{ViewportHeight: in.ViewportHeight}
	for _, b := range scene.Bodies() {
		if b == selected {
			b.Scaler.Tick(dt, in)
		} else {
			b.Scaler.Tick(dt, idle)
		}
	}
}

func pickScalable(scene *Scene, pointer *Pointer) *Body {
	var (
		best    *Body
		bestT   float32
		only    *Body
		enabled int
	)
	for _, b := range scene.Bodies() {
		if !b.Scaler.Enabled() {
			continue
		}
		enabled++
		only = b
		if !pointer.HasRay {
			continue
		}
		center, radius := b.BoundingSphere()
		if t, ok := pointer.Ray.IntersectSphere(center, radius); ok && (best == nil || t < bestT) {
			best, bestT = b, t
		}
	}
	if best == nil && enabled == 1 {
		return only
	}
	return best
}
