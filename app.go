package reshaper

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

type Module interface {
	Install(app *App, cmd *Commands)
}

type App struct {
	stateful           bool
	stateTransitioning bool
	initialState       State
	finalState         State
	nextState          State
	state              State
	stages             []Stage
	systems            map[string]map[State]map[statePhase][]systemFn
	systemsStateless   map[string][]systemFn
	resources          map[reflect.Type]any

	started  bool
	finished bool
	ticks    int

	// Command buffering
	pendingSpawns   []BodyDef
	pendingRemovals []BodyId
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

func (app *App) State() State {
	return app.state
}

func (app *App) Ticks() int {
	return app.ticks
}

// Finished is true once a stateful app has reached its final state.
func (app *App) Finished() bool {
	return app.finished
}

func (app *App) start() {
	if app.started {
		return
	}
	app.started = true

	if app.stateful {
		app.Logger().Debugf("running in stateful mode")
		app.state = app.initialState
		app.callSystems(app.state, enter)
	} else {
		app.Logger().Debugf("running in stateless mode")
	}
}

// Tick runs every stage once. It returns false when the app has finished.
func (app *App) Tick() bool {
	app.start()
	if app.finished {
		return false
	}

	app.ticks++
	app.callSystems(app.state, execute)

	if app.stateful {
		if app.stateTransitioning {
			app.stateTransitioning = false
			app.executeChangeState(app.nextState)
		}

		if app.state == app.finalState {
			app.callSystems(app.state, exit)
			app.finished = true
			return false
		}
	}
	return true
}

// Run ticks until the final state, ctx is done, or maxTicks ticks have run.
// maxTicks <= 0 means no limit.
func (app *App) Run(ctx context.Context, maxTicks int) error {
	for maxTicks <= 0 || app.ticks < maxTicks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !app.Tick() {
			return nil
		}
	}
	return nil
}

func (app *App) callSystems(state State, phase statePhase) {
	for _, stage := range app.stages {
		// On execute, call stateless/always run systems first
		if execute == phase {
			for _, system := range app.systemsStateless[stage.Name] {
				app.callSystem(system)
			}
		}

		if app.stateful {
			if systemsInStage, ok := app.systems[stage.Name]; ok {
				if systemsInState, ok := systemsInStage[state]; ok {
					for _, system := range systemsInState[phase] {
						app.callSystem(system)
					}
				}
			}
		}
		app.FlushCommands()
	}
}

func (app *App) changeState(newState State) {
	app.nextState = newState
	app.stateTransitioning = true
}

func (app *App) executeChangeState(newState State) {
	app.callSystems(app.state, exit)
	app.state = newState
	app.callSystems(app.state, enter)
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource returns the resource registered under T, or nil.
func Resource[T any](app *App) *T {
	r, ok := app.resources[reflect.TypeFor[T]()]
	if !ok {
		return nil
	}
	return r.(*T)
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)

		if argType.Kind() == reflect.Interface {
			if resource, ok := app.resourceImplementing(argType); ok {
				args[i] = reflect.ValueOf(resource)
				continue
			}
			app.unresolved(systemValue, systemType, argType)
		}

		underlyingType := argType.Elem()
		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			args[i] = reflect.ValueOf(resource)
		} else {
			app.unresolved(systemValue, systemType, argType)
		}
	}
	systemValue.Call(args)
}

func (app *App) resourceImplementing(iface reflect.Type) (any, bool) {
	for _, r := range app.resources {
		if reflect.TypeOf(r).Implements(iface) {
			return r, true
		}
	}
	return nil, false
}

func (app *App) unresolved(systemValue reflect.Value, systemType, argType reflect.Type) {
	msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
		runtime.FuncForPC(systemValue.Pointer()).Name(),
		fmt.Sprint(systemType),
		fmt.Sprint(argType),
	)
	panic(msg)
}

// FlushCommands applies buffered body spawns and removals to the Scene.
func (app *App) FlushCommands() {
	if len(app.pendingSpawns) == 0 && len(app.pendingRemovals) == 0 {
		return
	}
	scene := Resource[Scene](app)
	if scene == nil {
		app.Logger().Warnf("dropping %d spawns and %d removals: no scene",
			len(app.pendingSpawns), len(app.pendingRemovals))
		app.pendingSpawns = app.pendingSpawns[:0]
		app.pendingRemovals = app.pendingRemovals[:0]
		return
	}

	// Removals first so a respawn under the same name succeeds
	for _, id := range app.pendingRemovals {
		scene.Remove(id)
	}
	app.pendingRemovals = app.pendingRemovals[:0]

	for _, def := range app.pendingSpawns {
		if _, err := scene.Spawn(def); err != nil {
			app.Logger().Errorf("spawn %q: %v", def.Name, err)
		}
	}
	app.pendingSpawns = app.pendingSpawns[:0]
}
