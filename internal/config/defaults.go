package config

import (
	_ "embed"
)

//go:embed defaults/reshaper.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultYAML...)
}

// Default returns the built-in configuration: three bodies sized relative to
// the first.
func Default() Config {
	return Config{
		Session: SessionConfig{
			Name:     "planets",
			FPS:      60,
			MaxTicks: 20000,
			Width:    1280,
			Height:   720,
		},
		Log: LogConfig{Prefix: "reshaper"},
		Camera: CameraConfig{
			Position: [3]float32{0, 0, 4},
			FovY:     60,
			Near:     0.01,
			Far:      100,
		},
		Jitter: JitterConfig{
			Enabled:   true,
			Amplitude: 0.04,
			Frequency: 1.8,
			Seed:      12345,
		},
		Deform: DeformConfig{Radius: 0.25, Strength: 0.5, Falloff: 3},
		Meter:  MeterConfig{Smoothing: 0.2, Space: "world"},
		Scaling: ScalingConfig{
			Mode:                 "two-stage",
			TargetYScale:         1.0,
			YTolerancePct:        0.02,
			YSpeed:               2.0,
			UniformSensitivity:   1.5,
			StepMin:              0.5,
			StepMax:              1.5,
			ScrollStep:           0.05,
			DragSensitivity:      1.5,
			MinScale:             0.2,
			MaxScale:             5,
			TargetDiameter:       1.2,
			DiameterTolerancePct: 0.05,
		},
		Ring: RingConfig{
			Segments:  128,
			WidthMin:  0.01,
			WidthMax:  0.04,
			AlphaNear: 0.3,
			AlphaFar:  1,
			Color:     [3]float32{1, 1, 1},
		},
		Marker: MarkerConfig{
			Margin:       0.01,
			RequiredHold: 0.1,
			CorrectColor: [4]float32{0, 0, 1, 1},
			DefaultColor: [4]float32{1, 0, 0, 1},
		},
		Flow: FlowConfig{
			SphericityThreshold: 0.95,
			Ring:                "after-lock",
			MarkerHeight:        0,
		},
		Bodies: []BodyConfig{
			{
				Name:         "sun",
				Position:     [3]float32{-1.2, 0, 0},
				Scale:        [3]float32{1.0, 1.0, 1.0},
				Radius:       0.5,
				Subdivisions: 3,
			},
			{
				Name:         "earth",
				Position:     [3]float32{0.6, 0, 0},
				Scale:        [3]float32{0.6, 0.6, 0.6},
				Radius:       0.5,
				Subdivisions: 3,
				RelativeTo:   "sun",
				Ratio:        0.5,
				Seed:         777,
			},
			{
				Name:         "moon",
				Position:     [3]float32{1.5, 0, 0},
				Scale:        [3]float32{0.3, 0.3, 0.3},
				Radius:       0.5,
				Subdivisions: 2,
				RelativeTo:   "earth",
				Ratio:        0.5,
				Seed:         4242,
			},
		},
	}
}
