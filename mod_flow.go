package reshaper

// FlowModule advances every body's orchestrator after scoring.
type FlowModule struct{}

func (mod FlowModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(flowSystem).
			InStage(PreRender).
			RunAlways(),
	)
}

func flowSystem(t *Time, scene *Scene) {
	dt := t.Seconds()
	for _, b := range scene.Bodies() {
		b.Flow.Tick(dt)
	}
}
