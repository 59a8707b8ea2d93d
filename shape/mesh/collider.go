package mesh

import (
	"github.com/gekko3d/reshaper/shape/core"

	"github.com/go-gl/mathgl/mgl32"
)

// Collider is the hit-test snapshot of a mesh. It only picks up new vertex
// positions on Refresh, so after edits it can lag the rendered surface.
type Collider struct {
	Body      string
	Transform *core.Transform
	Enabled   bool

	vertices  []mgl32.Vec3
	indices   []uint32
	bounds    core.AABB
	source    *Mesh
	refreshes int
}

func NewCollider(body string, m *Mesh, t *core.Transform) *Collider {
	c := &Collider{Body: body, Transform: t, Enabled: true, source: m}
	c.Refresh()
	return c
}

func (c *Collider) Enable(on bool) {
	c.Enabled = on
}

// Refresh copies the current vertex buffer of the source mesh.
func (c *Collider) Refresh() {
	if c.source == nil {
		return
	}
	if cap(c.vertices) < len(c.source.Vertices) {
		c.vertices = make([]mgl32.Vec3, len(c.source.Vertices))
	}
	c.vertices = c.vertices[:len(c.source.Vertices)]
	copy(c.vertices, c.source.Vertices)
	c.indices = c.source.Indices
	c.bounds = c.source.Bounds
	c.refreshes++
}

// Refreshes counts snapshots taken, including the initial one.
func (c *Collider) Refreshes() int {
	return c.refreshes
}

// Raycast returns the nearest hit within maxDist. Disabled colliders never hit.
func (c *Collider) Raycast(r core.Ray, maxDist float32) core.Hit {
	if c == nil || !c.Enabled || c.Transform == nil || len(c.indices) < 3 {
		return core.Hit{}
	}

	w2o := c.Transform.WorldToObject()
	o2w := c.Transform.ObjectToWorld()
	lo := w2o.Mul4x1(r.Origin.Vec4(1)).Vec3()
	ld := w2o.Mul4x1(r.Dir.Vec4(0)).Vec3()
	if ld.Len() < 1e-12 {
		return core.Hit{}
	}

	if !c.bounds.IsEmpty() && !rayHitsBox(lo, ld, c.bounds) {
		return core.Hit{}
	}

	best := core.Hit{}
	bestWorld := maxDist
	for i := 0; i+2 < len(c.indices); i += 3 {
		a, b, cc := c.vertices[c.indices[i]], c.vertices[c.indices[i+1]], c.vertices[c.indices[i+2]]
		tl, ok := intersectTriangle(lo, ld, a, b, cc)
		if !ok {
			continue
		}
		lp := lo.Add(ld.Mul(tl))
		wp := o2w.Mul4x1(lp.Vec4(1)).Vec3()
		tw := wp.Sub(r.Origin).Len()
		if tw > bestWorld {
			continue
		}
		ln := b.Sub(a).Cross(cc.Sub(a))
		if ln.Len() < 1e-12 {
			continue
		}
		ln = ln.Normalize()
		if ln.Dot(ld) > 0 {
			ln = ln.Mul(-1)
		}
		bestWorld = tw
		best = core.Hit{
			Hit:         true,
			T:           tw,
			Point:       wp,
			Normal:      c.Transform.TransformDirection(ln).Normalize(),
			LocalPoint:  lp,
			LocalNormal: ln,
			Triangle:    i / 3,
			Body:        c.Body,
		}
	}
	return best
}

// intersectTriangle is Möller–Trumbore, two-sided.
func intersectTriangle(o, d, a, b, c mgl32.Vec3) (float32, bool) {
	const eps = 1e-9
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := d.Cross(e2)
	det := e1.Dot(p)
	if det > -eps && det < eps {
		return 0, false
	}
	inv := 1 / det
	s := o.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := d.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

func rayHitsBox(o, d mgl32.Vec3, b core.AABB) bool {
	tmin := float32(-1e30)
	tmax := float32(1e30)
	for axis := 0; axis < 3; axis++ {
		if d[axis] > -1e-12 && d[axis] < 1e-12 {
			if o[axis] < b.Min[axis] || o[axis] > b.Max[axis] {
				return false
			}
			continue
		}
		inv := 1 / d[axis]
		t1 := (b.Min[axis] - o[axis]) * inv
		t2 := (b.Max[axis] - o[axis]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return false
		}
	}
	return tmax >= 0
}

// Raycast returns the nearest hit among colliders.
func Raycast(colliders []*Collider, r core.Ray, maxDist float32) core.Hit {
	best := core.Hit{}
	for _, c := range colliders {
		h := c.Raycast(r, maxDist)
		if h.Hit && (!best.Hit || h.T < best.T) {
			best = h
		}
	}
	return best
}
