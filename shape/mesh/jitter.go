package mesh

import (
	"errors"
	"math/rand/v2"

	"github.com/aquilax/go-perlin"
	"github.com/gekko3d/reshaper/shape/core"
)

var ErrAlreadyJittered = errors.New("mesh: jitter already applied")

type JitterConfig struct {
	Amplitude float32 // max displacement along the normal, either way
	Frequency float32
	Seed      int64
}

func DefaultJitterConfig() JitterConfig {
	return JitterConfig{Amplitude: 0.04, Frequency: 1.8, Seed: 12345}
}

// Jitterer roughens a freshly instanced mesh exactly once so the player has
// something to correct.
type Jitterer struct {
	cfg  JitterConfig
	done bool
}

func NewJitterer(cfg JitterConfig) *Jitterer {
	return &Jitterer{cfg: cfg}
}

func (j *Jitterer) Done() bool {
	return j.done
}

// Apply displaces every vertex along its normal by coherent noise sampled at
// the vertex direction, then commits the mesh. A second call is rejected.
func (j *Jitterer) Apply(m *Mesh) error {
	if j.done {
		return ErrAlreadyJittered
	}
	j.done = true
	if m == nil || m.IsEmpty() || j.cfg.Amplitude == 0 {
		return nil
	}

	seed := uint64(j.cfg.Seed)
	rnd := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	ox := rnd.Float64() * 10
	oy := rnd.Float64() * 10
	oz := rnd.Float64() * 10

	noise := perlin.NewPerlin(2, 2, 3, j.cfg.Seed)
	sample := func(x, y float64) float32 {
		// go-perlin is roughly [-1, 1]; the displacement math wants [0, 1].
		return core.Clamp01(float32((noise.Noise2D(x, y) + 1) * 0.5))
	}

	f := float64(j.cfg.Frequency)
	amp := core.Abs(j.cfg.Amplitude)
	for i, v := range m.Vertices {
		if v.Len() < 1e-12 {
			continue
		}
		p := v.Normalize()
		a := sample(float64(p.X())*f+ox, float64(p.Y())*f+oy)
		b := sample(float64(p.Y())*f+oy, float64(p.Z())*f+oz)
		t := 0.5 * (a + b)
		delta := core.Clamp((t*2-1)*amp, -amp, amp)
		m.Vertices[i] = v.Add(m.Normals[i].Mul(delta))
	}
	m.Commit()
	return nil
}
