package config

import (
	"time"

	"github.com/gekko3d/reshaper"
	"github.com/gekko3d/reshaper/shape/core"
	"github.com/gekko3d/reshaper/shape/deform"
	"github.com/gekko3d/reshaper/shape/feedback"
	"github.com/gekko3d/reshaper/shape/flow"
	"github.com/gekko3d/reshaper/shape/mesh"
	"github.com/gekko3d/reshaper/shape/metrics"
	"github.com/gekko3d/reshaper/shape/scaling"

	"github.com/go-gl/mathgl/mgl32"
)

func vec3(v [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}

// Step is one tick at the configured frame rate.
func (c Config) Step() time.Duration {
	return time.Second / time.Duration(max(1, c.Session.FPS))
}

func (c Config) NewCamera() *core.Camera {
	cam := core.NewCamera()
	cam.Position = vec3(c.Camera.Position)
	cam.Target = vec3(c.Camera.Target)
	cam.FovY = c.Camera.FovY
	cam.Near = c.Camera.Near
	cam.Far = c.Camera.Far
	return cam
}

func (c Config) DeformConfig() deform.Config {
	return deform.Config{Radius: c.Deform.Radius, Strength: c.Deform.Strength, Falloff: c.Deform.Falloff}
}

func (c Config) MeterConfig() metrics.Config {
	space := metrics.SpaceWorld
	if c.Meter.Space == "local" {
		space = metrics.SpaceLocal
	}
	return metrics.Config{Smoothing: c.Meter.Smoothing, Space: space}
}

func (c Config) ScalingConfig() scaling.Config {
	s := c.Scaling
	return scaling.Config{
		Mode:                 scaling.Mode(s.Mode),
		TargetYScale:         s.TargetYScale,
		YTolerancePct:        s.YTolerancePct,
		YSpeed:               s.YSpeed,
		UniformSensitivity:   s.UniformSensitivity,
		StepMin:              s.StepMin,
		StepMax:              s.StepMax,
		ScrollStep:           s.ScrollStep,
		DragSensitivity:      s.DragSensitivity,
		SnapMargin:           s.SnapMargin,
		MinScale:             s.MinScale,
		MaxScale:             s.MaxScale,
		TargetDiameter:       s.TargetDiameter,
		DiameterTolerancePct: s.DiameterTolerancePct,
	}
}

func (c Config) RingConfig() feedback.RingConfig {
	return feedback.RingConfig{
		Segments:  c.Ring.Segments,
		WidthMin:  c.Ring.WidthMin,
		WidthMax:  c.Ring.WidthMax,
		AlphaNear: c.Ring.AlphaNear,
		AlphaFar:  c.Ring.AlphaFar,
		Color:     c.Ring.Color,
	}
}

func (c Config) MarkerConfig() feedback.MarkerConfig {
	m := feedback.DefaultMarkerConfig()
	m.Margin = c.Marker.Margin
	m.RequiredHold = c.Marker.RequiredHold
	m.CorrectColor = c.Marker.CorrectColor
	m.DefaultColor = c.Marker.DefaultColor
	return m
}

func (c Config) FlowConfig() flow.Config {
	return flow.Config{
		SphericityThreshold: c.Flow.SphericityThreshold,
		Ring:                flow.RingPolicy(c.Flow.Ring),
		HoldTime:            c.Flow.HoldTime,
		MarkerHeight:        c.Flow.MarkerHeight,
	}
}

// BodyDef merges b over the session-wide settings.
func (c Config) BodyDef(b BodyConfig) reshaper.BodyDef {
	def := reshaper.DefaultBodyDef(b.Name)
	def.Position = vec3(b.Position)
	def.Scale = vec3(b.Scale)
	if b.Radius > 0 {
		def.Radius = b.Radius
	}
	def.Subdivisions = b.Subdivisions

	if c.Jitter.Enabled {
		j := mesh.JitterConfig{Amplitude: c.Jitter.Amplitude, Frequency: c.Jitter.Frequency, Seed: c.Jitter.Seed}
		if b.Seed != 0 {
			j.Seed = b.Seed
		}
		def.Jitter = &j
	} else {
		def.Jitter = nil
	}

	def.Deform = c.DeformConfig()
	def.Meter = c.MeterConfig()
	def.Scaling = c.ScalingConfig()
	if b.TargetYScale > 0 {
		def.Scaling.TargetYScale = b.TargetYScale
	}
	if b.TargetDiameter > 0 {
		def.Scaling.TargetDiameter = b.TargetDiameter
	}
	def.Ring = c.RingConfig()
	def.Marker = c.MarkerConfig()
	def.Flow = c.FlowConfig()
	def.RelativeTo = b.RelativeTo
	def.Ratio = b.Ratio
	return def
}

func (c Config) SceneDef() reshaper.SceneDef {
	var scene reshaper.SceneDef
	for _, b := range c.Bodies {
		scene.Bodies = append(scene.Bodies, c.BodyDef(b))
	}
	return scene
}

// SessionOptions fills everything but the pointer source.
func (c Config) SessionOptions() reshaper.SessionOptions {
	return reshaper.SessionOptions{
		Name:      c.Session.Name,
		Scene:     c.SceneDef(),
		Camera:    c.NewCamera(),
		Step:      c.Step(),
		Viewport:  [2]int{c.Session.Width, c.Session.Height},
		Debug:     c.Log.Debug,
		LogPrefix: c.Log.Prefix,
	}
}
