package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var icosahedronFaces = []uint32{
	0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
	1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
	3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
	4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
}

// NewIcosphere builds a sphere of the given radius by subdividing an
// icosahedron. Every vertex sits exactly at radius from the origin.
func NewIcosphere(radius float32, subdivisions int) *Mesh {
	t := float32((1.0 + math.Sqrt(5.0)) / 2.0)

	vertices := []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	indices := make([]uint32, len(icosahedronFaces))
	copy(indices, icosahedronFaces)

	for i := 0; i < subdivisions; i++ {
		vertices, indices = subdivide(vertices, indices)
	}

	for i := range vertices {
		vertices[i] = vertices[i].Normalize().Mul(radius)
	}

	return New(vertices, indices)
}

func subdivide(vertices []mgl32.Vec3, indices []uint32) ([]mgl32.Vec3, []uint32) {
	midpoints := make(map[[2]uint32]uint32)
	newVertices := make([]mgl32.Vec3, len(vertices), len(vertices)*4)
	copy(newVertices, vertices)
	newIndices := make([]uint32, 0, len(indices)*4)

	getMidpoint := func(i1, i2 uint32) uint32 {
		key := [2]uint32{i1, i2}
		if i1 > i2 {
			key = [2]uint32{i2, i1}
		}
		if mid, ok := midpoints[key]; ok {
			return mid
		}
		mid := vertices[i1].Add(vertices[i2]).Mul(0.5)
		newVertices = append(newVertices, mid)
		midpoints[key] = uint32(len(newVertices) - 1)
		return midpoints[key]
	}

	for i := 0; i+2 < len(indices); i += 3 {
		v1, v2, v3 := indices[i], indices[i+1], indices[i+2]
		m1 := getMidpoint(v1, v2)
		m2 := getMidpoint(v2, v3)
		m3 := getMidpoint(v3, v1)

		newIndices = append(newIndices, v1, m1, m3, v2, m2, m1, v3, m3, m2, m1, m2, m3)
	}

	return newVertices, newIndices
}
