// Package config provides YAML-based session configuration with
// environment overrides.
package config

// Config contains everything a reshaping session needs.
type Config struct {
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
	Camera  CameraConfig  `yaml:"camera"`
	Jitter  JitterConfig  `yaml:"jitter"`
	Deform  DeformConfig  `yaml:"deform"`
	Meter   MeterConfig   `yaml:"meter"`
	Scaling ScalingConfig `yaml:"scaling"`
	Ring    RingConfig    `yaml:"ring"`
	Marker  MarkerConfig  `yaml:"marker"`
	Flow    FlowConfig    `yaml:"flow"`
	Bodies  []BodyConfig  `yaml:"bodies"`

	// Source is where the config was read from; not serialized.
	Source string `yaml:"-"`
}

// SessionConfig defines the run loop.
type SessionConfig struct {
	Name     string `yaml:"name" env:"RESHAPER_SESSION"`
	FPS      int    `yaml:"fps" env:"RESHAPER_FPS"`
	MaxTicks int    `yaml:"max_ticks" env:"RESHAPER_MAX_TICKS"`
	Width    int    `yaml:"width" env:"RESHAPER_WIDTH"`
	Height   int    `yaml:"height" env:"RESHAPER_HEIGHT"`
}

type LogConfig struct {
	Prefix string `yaml:"prefix" env:"RESHAPER_LOG_PREFIX"`
	Debug  bool   `yaml:"debug" env:"RESHAPER_DEBUG"`
}

type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	FovY     float32    `yaml:"fov_y" env:"RESHAPER_CAMERA_FOV"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

// JitterConfig defines the one-shot roughening applied at spawn.
type JitterConfig struct {
	Enabled   bool    `yaml:"enabled" env:"RESHAPER_JITTER"`
	Amplitude float32 `yaml:"amplitude" env:"RESHAPER_JITTER_AMPLITUDE"`
	Frequency float32 `yaml:"frequency"`
	Seed      int64   `yaml:"seed" env:"RESHAPER_JITTER_SEED"`
}

type DeformConfig struct {
	Radius   float32 `yaml:"radius" env:"RESHAPER_DEFORM_RADIUS"`
	Strength float32 `yaml:"strength" env:"RESHAPER_DEFORM_STRENGTH"`
	Falloff  float32 `yaml:"falloff" env:"RESHAPER_DEFORM_FALLOFF"`
}

type MeterConfig struct {
	Smoothing float32 `yaml:"smoothing" env:"RESHAPER_METER_SMOOTHING"`
	// Space is "world" or "local".
	Space string `yaml:"space" env:"RESHAPER_METER_SPACE"`
}

type ScalingConfig struct {
	// Mode is "two-stage" or "uniform".
	Mode                 string  `yaml:"mode" env:"RESHAPER_SCALING_MODE"`
	TargetYScale         float32 `yaml:"target_y_scale"`
	YTolerancePct        float32 `yaml:"y_tolerance_pct"`
	YSpeed               float32 `yaml:"y_speed"`
	UniformSensitivity   float32 `yaml:"uniform_sensitivity"`
	StepMin              float32 `yaml:"step_min"`
	StepMax              float32 `yaml:"step_max"`
	ScrollStep           float32 `yaml:"scroll_step"`
	DragSensitivity      float32 `yaml:"drag_sensitivity"`
	SnapMargin           float32 `yaml:"snap_margin"`
	MinScale             float32 `yaml:"min_scale"`
	MaxScale             float32 `yaml:"max_scale"`
	TargetDiameter       float32 `yaml:"target_diameter" env:"RESHAPER_TARGET_DIAMETER"`
	DiameterTolerancePct float32 `yaml:"diameter_tolerance_pct" env:"RESHAPER_DIAMETER_TOLERANCE"`
}

type RingConfig struct {
	Segments  int        `yaml:"segments"`
	WidthMin  float32    `yaml:"width_min"`
	WidthMax  float32    `yaml:"width_max"`
	AlphaNear float32    `yaml:"alpha_near"`
	AlphaFar  float32    `yaml:"alpha_far"`
	Color     [3]float32 `yaml:"color"`
}

type MarkerConfig struct {
	Margin       float32    `yaml:"margin"`
	RequiredHold float32    `yaml:"required_hold"`
	CorrectColor [4]float32 `yaml:"correct_color"`
	DefaultColor [4]float32 `yaml:"default_color"`
}

type FlowConfig struct {
	SphericityThreshold float32 `yaml:"sphericity_threshold" env:"RESHAPER_SPHERICITY_THRESHOLD"`
	// Ring is "off", "after-lock" or "always".
	Ring         string  `yaml:"ring" env:"RESHAPER_RING"`
	HoldTime     float32 `yaml:"hold_time" env:"RESHAPER_HOLD_TIME"`
	MarkerHeight float32 `yaml:"marker_height"`
}

// BodyConfig defines one body. Zero-valued overrides fall back to the
// session-wide settings.
type BodyConfig struct {
	Name         string     `yaml:"name"`
	Position     [3]float32 `yaml:"position"`
	Scale        [3]float32 `yaml:"scale"`
	Radius       float32    `yaml:"radius"`
	Subdivisions int        `yaml:"subdivisions"`

	TargetYScale   float32 `yaml:"target_y_scale,omitempty"`
	TargetDiameter float32 `yaml:"target_diameter,omitempty"`
	RelativeTo     string  `yaml:"relative_to,omitempty"`
	Ratio          float32 `yaml:"ratio,omitempty"`
	Seed           int64   `yaml:"seed,omitempty"`
}
