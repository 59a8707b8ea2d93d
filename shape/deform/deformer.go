package deform

import (
	"github.com/gekko3d/reshaper/shape/core"
	"github.com/gekko3d/reshaper/shape/mesh"

	"github.com/go-gl/mathgl/mgl32"
)

type Config struct {
	Radius   float32
	Strength float32
	Falloff  float32
}

func DefaultConfig() Config {
	return Config{Radius: 0.25, Strength: 0.5, Falloff: 3}
}

// Stroke is one tick of pointer contact, in the mesh's local space.
type Stroke struct {
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Radius   float32
	Strength float32
	Falloff  float32
}

// Weight is the falloff factor (1 - d/R)^P for a vertex at distance d, zero beyond R.
func (s Stroke) Weight(d float32) float32 {
	if s.Radius <= 0 || d > s.Radius {
		return 0
	}
	return core.Pow(1-d/s.Radius, s.Falloff)
}

// Deformer pushes vertices of one mesh along the contact normal while the
// pointer is held on it. It is the only writer of the mesh after jitter.
type Deformer struct {
	Body string
	cfg  Config
	mesh *mesh.Mesh

	enabled  bool
	dragging bool
	lastHit  mgl32.Vec3
}

func New(body string, m *mesh.Mesh, cfg Config) *Deformer {
	return &Deformer{Body: body, cfg: cfg, mesh: m, enabled: true}
}

func (d *Deformer) Config() Config {
	return d.cfg
}

func (d *Deformer) Enable(on bool) {
	d.enabled = on
	if !on {
		d.dragging = false
	}
}

func (d *Deformer) Enabled() bool {
	return d.enabled
}

// Dragging reports whether the last tick deformed the mesh.
func (d *Deformer) Dragging() bool {
	return d.dragging
}

// LastHit is the world point of the most recent contact.
func (d *Deformer) LastHit() mgl32.Vec3 {
	return d.lastHit
}

// StrokeAt builds the stroke for a local contact point and normal.
func (d *Deformer) StrokeAt(localPoint, localNormal mgl32.Vec3) Stroke {
	n := localNormal
	if n.Len() > 1e-12 {
		n = n.Normalize()
	}
	return Stroke{
		Point:    localPoint,
		Normal:   n,
		Radius:   d.cfg.Radius,
		Strength: d.cfg.Strength,
		Falloff:  d.cfg.Falloff,
	}
}

// Apply displaces every vertex within the stroke radius by
// Strength * Weight(d) * dt along the stroke normal, then commits the mesh.
// It returns the number of vertices moved.
func (d *Deformer) Apply(s Stroke, dt float32) int {
	if d.mesh == nil || d.mesh.IsEmpty() || dt <= 0 {
		return 0
	}
	moved := 0
	verts := d.mesh.Vertices
	for i := range verts {
		dist := verts[i].Sub(s.Point).Len()
		if dist > s.Radius {
			continue
		}
		w := s.Weight(dist)
		step := s.Strength * w * dt
		if step == 0 {
			continue
		}
		verts[i] = verts[i].Add(s.Normal.Mul(step))
		moved++
	}
	if moved > 0 {
		d.mesh.Commit()
	}
	return moved
}

// Tick deforms at contact when the pointer is held. A nil contact, a miss,
// a hit on another body, or a disabled deformer leaves the mesh untouched.
// released is true on the tick a drag session ends.
func (d *Deformer) Tick(dt float32, held bool, contact *core.Hit) (released bool) {
	if !d.enabled {
		return false
	}
	if held {
		if contact == nil || !contact.Hit || contact.Body != d.Body {
			return false
		}
		d.Apply(d.StrokeAt(contact.LocalPoint, contact.LocalNormal), dt)
		d.dragging = true
		d.lastHit = contact.Point
		return false
	}
	if d.dragging {
		d.dragging = false
		return true
	}
	return false
}
