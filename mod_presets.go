package reshaper

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/gekko3d/reshaper/shape/core"
)

// SessionOptions describe a complete reshaping session.
type SessionOptions struct {
	Name   string
	Scene  SceneDef
	Source PointerSource
	Camera *core.Camera
	// Step fixes the tick length; zero follows the wall clock.
	Step      time.Duration
	Viewport  [2]int
	Debug     bool
	LogPrefix string
	LogOutput io.Writer
	Notifier  Notifier
}

// NewSessionApp builds a stateful app that runs from StateRunning until every
// body is Done.
func NewSessionApp(opts SessionOptions) *App {
	name := opts.Name
	if name == "" {
		name = "reshape"
	}
	prefix := opts.LogPrefix
	if prefix == "" {
		prefix = "reshaper"
	}
	return NewAppBuilder().
		UseStates(StateRunning, StateComplete).
		UseModule(
			LoggingModule{Prefix: prefix, Debug: opts.Debug, Output: opts.LogOutput},
			TimeModule{Fixed: opts.Step},
			InputModule{Source: opts.Source, Camera: opts.Camera},
			SceneModule{Def: opts.Scene},
			DeformModule{},
			ScalingModule{},
			MetricsModule{},
			FlowModule{},
			FeedbackModule{Width: opts.Viewport[0], Height: opts.Viewport[1]},
			ProgressModule{Name: name, Notifier: opts.Notifier},
		).
		Build()
}

type BodyReport struct {
	Id             BodyId     `json:"id"`
	Name           string     `json:"name"`
	Phase          string     `json:"phase"`
	Score          float32    `json:"score"`
	Diameter       float32    `json:"diameter"`
	TargetDiameter float32    `json:"target_diameter"`
	Scale          [3]float32 `json:"scale"`
	Vertices       int        `json:"vertices"`
}

// SessionReport is a snapshot of a session for tooling.
type SessionReport struct {
	Ticks    int          `json:"ticks"`
	Complete bool         `json:"complete"`
	Tasks    []string     `json:"tasks_done"`
	Bodies   []BodyReport `json:"bodies"`
}

func Report(app *App) SessionReport {
	rep := SessionReport{Ticks: app.Ticks(), Tasks: []string{}}
	if p := Resource[Progress](app); p != nil {
		rep.Complete = p.Completed()
		for _, t := range p.Tasks {
			if t.Done {
				rep.Tasks = append(rep.Tasks, t.Title)
			}
		}
	}
	if scene := Resource[Scene](app); scene != nil {
		for _, b := range scene.Bodies() {
			s := b.Transform.Scale
			rep.Bodies = append(rep.Bodies, BodyReport{
				Id:             b.Id,
				Name:           b.Name,
				Phase:          b.Phase().String(),
				Score:          b.Meter.Score(),
				Diameter:       b.Scaler.Diameter(),
				TargetDiameter: b.Scaler.TargetDiameter(),
				Scale:          [3]float32{s.X(), s.Y(), s.Z()},
				Vertices:       b.Mesh.VertexCount(),
			})
		}
	}
	return rep
}

func WriteReport(w io.Writer, rep SessionReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func SaveReport(filename string, rep SessionReport) error {
	bytes, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, bytes, 0644)
}
