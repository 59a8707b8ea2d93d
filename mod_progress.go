package reshaper

import (
	"github.com/gekko3d/reshaper/shape/flow"
)

// Notifier receives session progress signals. Cue playback and narration
// live behind it.
type Notifier interface {
	ModuleStarted(name string)
	TaskStarted(index int, title string)
	TaskCompleted(index int, title string)
	ModuleCompleted(name string)
}

type LogNotifier struct {
	Logger Logger
}

func (n LogNotifier) ModuleStarted(name string) {
	n.Logger.Infof("module %q started", name)
}

func (n LogNotifier) TaskStarted(index int, title string) {
	n.Logger.Infof("task %d started: %s", index, title)
}

func (n LogNotifier) TaskCompleted(index int, title string) {
	n.Logger.Infof("task %d completed: %s", index, title)
}

func (n LogNotifier) ModuleCompleted(name string) {
	n.Logger.Infof("module %q completed", name)
}

type Task struct {
	Title string
	Done  bool
	check func(*Scene) bool
}

// Progress tracks the session's tasks in order. Each signal fires once.
type Progress struct {
	Name  string
	Tasks []Task
	// Slider is the mean roundness score, for a progress bar.
	Slider float32

	notifier  Notifier
	started   bool
	completed bool
	current   int
}

func NewProgress(name string, notifier Notifier) *Progress {
	return &Progress{
		Name: name,
		Tasks: []Task{
			{Title: "shape corrected", check: allPast(flow.Deform)},
			{Title: "size corrected", check: allPast(flow.Resize)},
		},
		notifier: notifier,
	}
}

func allPast(p flow.Phase) func(*Scene) bool {
	return func(s *Scene) bool {
		if len(s.Bodies()) == 0 {
			return false
		}
		for _, b := range s.Bodies() {
			if b.Phase() <= p {
				return false
			}
		}
		return true
	}
}

func (p *Progress) Completed() bool {
	return p.completed
}

// Current is the index of the running task, len(Tasks) once all are done.
func (p *Progress) Current() int {
	return p.current
}

// Update checks tasks in order and reports whether the module completed on
// this call.
func (p *Progress) Update(scene *Scene) bool {
	if p.completed {
		return false
	}
	if !p.started {
		p.started = true
		p.notifier.ModuleStarted(p.Name)
		if len(p.Tasks) > 0 {
			p.notifier.TaskStarted(0, p.Tasks[0].Title)
		}
	}

	var sum float32
	for _, b := range scene.Bodies() {
		sum += b.Meter.Score()
	}
	if n := len(scene.Bodies()); n > 0 {
		p.Slider = sum / float32(n)
	}

	for p.current < len(p.Tasks) && p.Tasks[p.current].check(scene) {
		t := &p.Tasks[p.current]
		t.Done = true
		p.notifier.TaskCompleted(p.current, t.Title)
		p.current++
		if p.current < len(p.Tasks) {
			p.notifier.TaskStarted(p.current, p.Tasks[p.current].Title)
		}
	}
	if p.current < len(p.Tasks) {
		return false
	}
	p.completed = true
	p.notifier.ModuleCompleted(p.Name)
	return true
}

// ProgressModule reports task progress and moves a stateful app to
// StateComplete when the last task is done.
type ProgressModule struct {
	Name     string
	Notifier Notifier
}

func (mod ProgressModule) Install(app *App, cmd *Commands) {
	n := mod.Notifier
	if n == nil {
		n = LogNotifier{Logger: app.Logger()}
	}
	cmd.AddResources(NewProgress(mod.Name, n))
	app.UseSystem(
		System(progressSystem).
			InStage(Finale).
			RunAlways(),
	)
	if app.stateful {
		app.UseSystem(
			System(sessionSummarySystem).
				InStage(Finale).
				InState(OnEnter(StateComplete)),
		)
	}
}

func progressSystem(progress *Progress, scene *Scene, cmd *Commands) {
	if progress.Update(scene) {
		cmd.ChangeState(StateComplete)
	}
}

func sessionSummarySystem(scene *Scene, cmd *Commands) {
	for _, b := range scene.Bodies() {
		cmd.Logger().Infof("%s: score %.3f, diameter %.3f of %.3f",
			b.Name, b.Meter.Score(), b.Scaler.Diameter(), b.Scaler.TargetDiameter())
	}
}
