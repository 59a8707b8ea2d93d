package metrics

import (
	"github.com/gekko3d/reshaper/shape/core"
	"github.com/gekko3d/reshaper/shape/mesh"

	"github.com/go-gl/mathgl/mgl32"
)

type Space int

const (
	// SpaceWorld measures transformed vertices, so non-uniform scale counts
	// against roundness.
	SpaceWorld Space = iota
	// SpaceLocal measures raw mesh vertices.
	SpaceLocal
)

type Config struct {
	Smoothing float32 // exponential rate per second
	Space     Space
}

func DefaultConfig() Config {
	return Config{Smoothing: 0.2, Space: SpaceWorld}
}

// Meter scores how close a mesh is to a sphere: 1 - std/mean of the
// vertex distances to their centroid, smoothed over time.
type Meter struct {
	cfg       Config
	mesh      *mesh.Mesh
	transform *core.Transform

	score      float32
	raw        float32
	meanRadius float32
	ticks      int
	scratch    []mgl32.Vec3
}

func New(m *mesh.Mesh, t *core.Transform, cfg Config) *Meter {
	return &Meter{cfg: cfg, mesh: m, transform: t}
}

// Score is the smoothed roundness in [0, 1].
func (m *Meter) Score() float32 {
	return m.score
}

// Raw is the unsmoothed roundness from the latest tick.
func (m *Meter) Raw() float32 {
	return m.raw
}

// MeanRadiusWorld is the mean centroid distance from the latest tick.
// In local mode it is in mesh units.
func (m *Meter) MeanRadiusWorld() float32 {
	return m.meanRadius
}

func (m *Meter) Ticks() int {
	return m.ticks
}

// Tick recomputes the raw score from the current geometry and moves the
// smoothed score toward it by 1 - exp(-rate*dt).
func (m *Meter) Tick(dt float32) {
	if m.mesh == nil {
		return
	}
	m.ticks++
	if m.mesh.IsEmpty() {
		m.score, m.raw, m.meanRadius = 0, 0, 0
		return
	}

	pts := m.points()
	raw, mean := Roundness(pts)
	m.raw = raw
	m.meanRadius = mean

	if dt <= 0 {
		return
	}
	k := 1 - core.Exp(-m.cfg.Smoothing*dt)
	m.score = core.Clamp01(core.Lerp(m.score, raw, k))
}

func (m *Meter) points() []mgl32.Vec3 {
	if m.cfg.Space == SpaceLocal || m.transform == nil {
		return m.mesh.Vertices
	}
	if cap(m.scratch) < len(m.mesh.Vertices) {
		m.scratch = make([]mgl32.Vec3, len(m.mesh.Vertices))
	}
	m.scratch = m.scratch[:len(m.mesh.Vertices)]
	for i, v := range m.mesh.Vertices {
		m.scratch[i] = m.transform.TransformPoint(v)
	}
	return m.scratch
}

// Roundness returns clamp01(1 - std/mean) of the distances from pts to their
// centroid, and the mean distance. An empty set scores 0.
func Roundness(pts []mgl32.Vec3) (score float32, mean float32) {
	n := len(pts)
	if n == 0 {
		return 0, 0
	}

	var c mgl32.Vec3
	for _, p := range pts {
		c = c.Add(p)
	}
	c = c.Mul(1 / float32(n))

	// float64 accumulation keeps large meshes stable
	var sum float64
	for _, p := range pts {
		sum += float64(p.Sub(c).Len())
	}
	meanD := sum / float64(n)

	var variance float64
	for _, p := range pts {
		dd := float64(p.Sub(c).Len()) - meanD
		variance += dd * dd
	}
	std := core.Sqrt(float32(variance / float64(n)))

	mean = float32(meanD)
	if mean < 1e-5 {
		return 0, mean
	}
	return core.Clamp01(1 - std/mean), mean
}
