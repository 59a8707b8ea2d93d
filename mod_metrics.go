package reshaper

type MetricsModule struct{}

func (mod MetricsModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(meterSystem).
			InStage(PostUpdate).
			RunAlways(),
	)
}

func meterSystem(t *Time, scene *Scene) {
	dt := t.Seconds()
	for _, b := range scene.Bodies() {
		b.Meter.Tick(dt)
	}
}
