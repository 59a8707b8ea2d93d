package reshaper

import (
	"time"
)

type Time struct {
	Time time.Time
	Dt   time.Duration
	// Fixed, when non-zero, replaces the wall clock with a constant step.
	Fixed time.Duration
}

// Seconds is Dt as the float step the shape packages take.
func (t *Time) Seconds() float32 {
	return float32(t.Dt.Seconds())
}

type TimeModule struct {
	Fixed time.Duration
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		Time:  time.Now(),
		Fixed: mod.Fixed,
	})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude).
			RunAlways(),
	)
}

func timeSystem(timeResource *Time) {
	if timeResource.Fixed > 0 {
		timeResource.Dt = timeResource.Fixed
		timeResource.Time = timeResource.Time.Add(timeResource.Fixed)
		return
	}

	now := time.Now()
	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
}
