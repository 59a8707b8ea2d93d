package reshaper

type Commands struct {
	app *App
}

func (cmd *Commands) ChangeState(newState State) *Commands {
	cmd.app.changeState(newState)
	return cmd
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// SpawnBody queues def; the body joins the Scene when the current stage ends.
func (cmd *Commands) SpawnBody(def BodyDef) {
	cmd.app.pendingSpawns = append(cmd.app.pendingSpawns, def)
}

func (cmd *Commands) RemoveBody(id BodyId) {
	cmd.app.pendingRemovals = append(cmd.app.pendingRemovals, id)
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
