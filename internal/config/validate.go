package config

import (
	"errors"
	"fmt"
)

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float32) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float32) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, v))
		}
	}

	if c.Session.FPS <= 0 {
		errs = append(errs, fmt.Errorf("session.fps must be positive, got %d", c.Session.FPS))
	}
	if c.Session.Width <= 0 || c.Session.Height <= 0 {
		errs = append(errs, fmt.Errorf("session viewport must be positive, got %dx%d", c.Session.Width, c.Session.Height))
	}
	positive("camera.fov_y", c.Camera.FovY)
	positive("camera.near", c.Camera.Near)
	if c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera.far must exceed camera.near"))
	}

	if c.Jitter.Enabled {
		nonNegative("jitter.amplitude", c.Jitter.Amplitude)
		positive("jitter.frequency", c.Jitter.Frequency)
	}

	positive("deform.radius", c.Deform.Radius)
	nonNegative("deform.strength", c.Deform.Strength)
	nonNegative("deform.falloff", c.Deform.Falloff)

	nonNegative("meter.smoothing", c.Meter.Smoothing)
	if c.Meter.Space != "world" && c.Meter.Space != "local" {
		errs = append(errs, fmt.Errorf("meter.space must be world or local, got %q", c.Meter.Space))
	}

	s := c.Scaling
	if s.Mode != "two-stage" && s.Mode != "uniform" {
		errs = append(errs, fmt.Errorf("scaling.mode must be two-stage or uniform, got %q", s.Mode))
	}
	positive("scaling.target_y_scale", s.TargetYScale)
	nonNegative("scaling.y_tolerance_pct", s.YTolerancePct)
	positive("scaling.y_speed", s.YSpeed)
	positive("scaling.uniform_sensitivity", s.UniformSensitivity)
	positive("scaling.step_min", s.StepMin)
	if s.StepMax < s.StepMin {
		errs = append(errs, fmt.Errorf("scaling.step_max must be at least step_min"))
	}
	nonNegative("scaling.snap_margin", s.SnapMargin)
	positive("scaling.min_scale", s.MinScale)
	if s.MaxScale < s.MinScale {
		errs = append(errs, fmt.Errorf("scaling.max_scale must be at least min_scale"))
	}
	positive("scaling.target_diameter", s.TargetDiameter)
	positive("scaling.diameter_tolerance_pct", s.DiameterTolerancePct)

	if c.Ring.Segments < 3 {
		errs = append(errs, fmt.Errorf("ring.segments must be at least 3, got %d", c.Ring.Segments))
	}
	positive("ring.width_min", c.Ring.WidthMin)
	if c.Ring.WidthMax < c.Ring.WidthMin {
		errs = append(errs, fmt.Errorf("ring.width_max must be at least width_min"))
	}

	nonNegative("marker.margin", c.Marker.Margin)
	nonNegative("marker.required_hold", c.Marker.RequiredHold)

	switch c.Flow.Ring {
	case "off", "after-lock", "always":
	default:
		errs = append(errs, fmt.Errorf("flow.ring must be off, after-lock or always, got %q", c.Flow.Ring))
	}
	if c.Flow.SphericityThreshold <= 0 || c.Flow.SphericityThreshold > 1 {
		errs = append(errs, fmt.Errorf("flow.sphericity_threshold must be in (0, 1], got %v", c.Flow.SphericityThreshold))
	}
	nonNegative("flow.hold_time", c.Flow.HoldTime)

	errs = append(errs, c.validateBodies()...)
	return errors.Join(errs...)
}

func (c Config) validateBodies() []error {
	if len(c.Bodies) == 0 {
		return []error{errors.New("at least one body is required")}
	}
	var errs []error
	seen := make(map[string]bool)
	for i, b := range c.Bodies {
		if b.Name == "" {
			errs = append(errs, fmt.Errorf("bodies[%d]: name is empty", i))
		}
		if seen[b.Name] {
			errs = append(errs, fmt.Errorf("bodies[%d]: duplicate name %q", i, b.Name))
		}
		if b.Radius < 0 {
			errs = append(errs, fmt.Errorf("bodies[%d]: radius must not be negative", i))
		}
		if b.Subdivisions < 0 || b.Subdivisions > 6 {
			errs = append(errs, fmt.Errorf("bodies[%d]: subdivisions must be in [0, 6], got %d", i, b.Subdivisions))
		}
		for axis, v := range b.Scale {
			if v < 0 {
				errs = append(errs, fmt.Errorf("bodies[%d]: scale[%d] must not be negative", i, axis))
			}
		}
		if b.RelativeTo != "" {
			if !seen[b.RelativeTo] {
				errs = append(errs, fmt.Errorf("bodies[%d]: relative_to %q must name an earlier body", i, b.RelativeTo))
			}
			if b.Ratio <= 0 {
				errs = append(errs, fmt.Errorf("bodies[%d]: ratio must be positive", i))
			}
		}
		seen[b.Name] = true
	}
	return errs
}
