package mesh

import (
	"github.com/gekko3d/reshaper/shape/core"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is a mutable triangle mesh in local space. Normals always has the same
// length as Vertices and Bounds reflects the latest vertex positions once
// Commit has run.
type Mesh struct {
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	Indices  []uint32
	Bounds   core.AABB

	version uint64
}

// New builds a mesh and derives normals and bounds.
func New(vertices []mgl32.Vec3, indices []uint32) *Mesh {
	m := &Mesh{
		Vertices: vertices,
		Normals:  make([]mgl32.Vec3, len(vertices)),
		Indices:  indices,
	}
	m.Commit()
	return m
}

func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Version increases on every Commit.
func (m *Mesh) Version() uint64 {
	return m.version
}

// Clone returns a deep copy that shares no buffers with m.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Vertices: make([]mgl32.Vec3, len(m.Vertices)),
		Normals:  make([]mgl32.Vec3, len(m.Normals)),
		Indices:  make([]uint32, len(m.Indices)),
		Bounds:   m.Bounds,
	}
	copy(c.Vertices, m.Vertices)
	copy(c.Normals, m.Normals)
	copy(c.Indices, m.Indices)
	return c
}

// Commit recomputes normals, then bounds. Every mutator calls it before
// consumers read the mesh again.
func (m *Mesh) Commit() {
	m.RecalculateNormals()
	m.RecalculateBounds()
	m.version++
}

// RecalculateNormals accumulates area-weighted face normals per vertex.
// Vertices not referenced by any triangle get the direction from the centroid.
func (m *Mesh) RecalculateNormals() {
	if len(m.Normals) != len(m.Vertices) {
		m.Normals = make([]mgl32.Vec3, len(m.Vertices))
	}
	for i := range m.Normals {
		m.Normals[i] = mgl32.Vec3{}
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if int(a) >= len(m.Vertices) || int(b) >= len(m.Vertices) || int(c) >= len(m.Vertices) {
			continue
		}
		va, vb, vc := m.Vertices[a], m.Vertices[b], m.Vertices[c]
		// Cross product length is twice the triangle area.
		n := vb.Sub(va).Cross(vc.Sub(va))
		m.Normals[a] = m.Normals[a].Add(n)
		m.Normals[b] = m.Normals[b].Add(n)
		m.Normals[c] = m.Normals[c].Add(n)
	}

	var centroid mgl32.Vec3
	centroidReady := false
	for i, n := range m.Normals {
		if n.Len() > 1e-12 {
			m.Normals[i] = n.Normalize()
			continue
		}
		if !centroidReady {
			centroid = m.Centroid()
			centroidReady = true
		}
		d := m.Vertices[i].Sub(centroid)
		if d.Len() > 1e-12 {
			m.Normals[i] = d.Normalize()
		} else {
			m.Normals[i] = mgl32.Vec3{0, 1, 0}
		}
	}
}

func (m *Mesh) RecalculateBounds() {
	b := core.EmptyAABB()
	for _, v := range m.Vertices {
		b = b.Extend(v)
	}
	m.Bounds = b
}

// Centroid is the mean vertex position; zero for an empty mesh.
func (m *Mesh) Centroid() mgl32.Vec3 {
	if len(m.Vertices) == 0 {
		return mgl32.Vec3{}
	}
	var c mgl32.Vec3
	for _, v := range m.Vertices {
		c = c.Add(v)
	}
	return c.Mul(1 / float32(len(m.Vertices)))
}

// Template is a shared source mesh. Bodies never edit it directly.
type Template struct {
	mesh *Mesh
}

func NewTemplate(m *Mesh) *Template {
	return &Template{mesh: m.Clone()}
}

// Instance clones the template so edits stay local to one body.
func (t *Template) Instance() *Mesh {
	return t.mesh.Clone()
}

func (t *Template) VertexCount() int {
	return t.mesh.VertexCount()
}
