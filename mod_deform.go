package reshaper

import (
	"github.com/gekko3d/reshaper/shape/core"
	"github.com/gekko3d/reshaper/shape/mesh"
)

const maxPickDistance = 100

// DeformModule pushes vertices under the held pointer and refreshes a
// body's collider once its drag ends.
type DeformModule struct{}

func (mod DeformModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(deformSystem).
			InStage(Update).
			RunAlways(),
	)
	app.UseSystem(
		System(colliderRefreshSystem).
			InStage(PostUpdate).
			RunAlways(),
	)
}

func deformSystem(t *Time, pointer *Pointer, scene *Scene) {
	var contact *core.Hit
	if pointer.Held && pointer.HasRay {
		hit := mesh.Raycast(scene.Colliders(), pointer.Ray, maxPickDistance)
		if hit.Hit {
			contact = &hit
		}
	}

	dt := t.Seconds()
	for _, b := range scene.Bodies() {
		if b.Deformer.Tick(dt, pointer.Held, contact) {
			b.refreshPending = true
		}
	}
}

// The collider keeps the pre-drag shape until release.
func colliderRefreshSystem(scene *Scene) {
	for _, b := range scene.Bodies() {
		if !b.refreshPending {
			continue
		}
		b.refreshPending = false
		b.Collider.Refresh()
		scene.logger.Debugf("%s: collider refreshed (%d)", b.Name, b.Collider.Refreshes())
	}
}
