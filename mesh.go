// seehuhn.de/go/mesh - triangle meshes from vector paths
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package mesh

import (
	"fmt"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Mesh is an indexed triangle mesh.
//
// Vertex i is Vertices[i].  Every entry of Triangles lists the vertex
// indices of one triangle in counter-clockwise order (y axis pointing up).
// A Mesh is cleared and refilled on every build; slices keep their
// capacity between builds.
type Mesh struct {
	Vertices  []vec.Vec2
	Triangles [][3]uint32
}

// Clear removes all vertices and triangles, keeping allocated storage.
func (m *Mesh) Clear() {
	m.Vertices = m.Vertices[:0]
	m.Triangles = m.Triangles[:0]
}

// AddVertex appends p and returns its index.
func (m *Mesh) AddVertex(p vec.Vec2) uint32 {
	m.Vertices = append(m.Vertices, p)
	return uint32(len(m.Vertices) - 1)
}

// TriangleArea returns the signed area of triangle i.  The area is
// positive for counter-clockwise triangles.
func (m *Mesh) TriangleArea(i int) float64 {
	t := m.Triangles[i]
	a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
	return orient(a, b, c) / 2
}

// Area returns the total signed area of all triangles.
func (m *Mesh) Area() float64 {
	var sum float64
	for i := range m.Triangles {
		sum += m.TriangleArea(i)
	}
	return sum
}

// Bounds returns the bounding box of all vertices.
func (m *Mesh) Bounds() rect.Rect {
	return Contour(m.Vertices).Bounds()
}

// Validate checks the structural invariants of the mesh: all indices
// refer to existing vertices and every triangle is counter-clockwise with
// non-negligible area.  The first violation found is returned.
func (m *Mesh) Validate() error {
	n := uint32(len(m.Vertices))
	minArea := m.minArea()
	for i, t := range m.Triangles {
		for _, idx := range t {
			if idx >= n {
				return fmt.Errorf("mesh: triangle %d: vertex index %d out of range (%d vertices)", i, idx, n)
			}
		}
		if area := m.TriangleArea(i); area <= minArea {
			return fmt.Errorf("mesh: triangle %d %v: area %g is degenerate or clockwise", i, t, area)
		}
	}
	return nil
}

// minArea is the area below which a triangle of this mesh counts as
// degenerate.
func (m *Mesh) minArea() float64 {
	b := m.Bounds()
	return degenerateArea(b)
}

// degenerateArea returns the area threshold for triangles inside b.
func degenerateArea(b rect.Rect) float64 {
	size := max(b.URx-b.LLx, b.URy-b.LLy)
	return zeroAreaThreshold * size * size
}
