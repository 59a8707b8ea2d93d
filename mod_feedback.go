package reshaper

import (
	"github.com/gekko3d/reshaper/shape/core"
	"github.com/gekko3d/reshaper/shape/feedback"
)

// FeedbackModule projects visible rings into the Gizmos resource each frame.
// Width and Height are the viewport used when the pointer reports none.
type FeedbackModule struct {
	Width  int
	Height int
}

func (mod FeedbackModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Gizmos{Width: mod.Width, Height: mod.Height})
	app.UseSystem(
		System(feedbackSystem).
			InStage(Render).
			RunAlways(),
	)
}

func feedbackSystem(scene *Scene, cam *core.Camera, pointer *Pointer, gizmos *Gizmos) {
	if pointer.ViewportW > 0 && pointer.ViewportH > 0 {
		gizmos.Width, gizmos.Height = pointer.ViewportW, pointer.ViewportH
	}
	gizmos.Rings = gizmos.Rings[:0]
	if gizmos.Width <= 0 || gizmos.Height <= 0 {
		return
	}

	for _, b := range scene.Bodies() {
		if !b.Ring.Visible {
			continue
		}
		pts := feedback.Project(b.Ring, cam, gizmos.Width, gizmos.Height)
		if len(pts) < 3 {
			continue
		}
		gizmos.Rings = append(gizmos.Rings, RingGizmo{
			Body:   b.Id,
			Points: pts,
			Width:  pixelWidth(b.Ring, pts),
			Color:  b.Ring.Color,
		})
	}
}
