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
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Vertex is one entry of an interleaved vertex buffer, as expected by
// typical 2D renderers.
type Vertex struct {
	X, Y  float32
	Color color.NRGBA
}

// Target describes the coordinate system and colour of a vertex buffer.
type Target struct {
	// Transform maps mesh coordinates to target coordinates.  If the
	// matrix reverses orientation, the vertex order of every triangle is
	// reversed as well.
	Transform matrix.Matrix

	// Color is assigned to every vertex.
	Color color.NRGBA
}

// HostTarget returns a Target for a host whose y axis points down.  The
// mesh is flipped vertically within a region of the given height and then
// moved by offset.
func HostTarget(offset vec.Vec2, height float64, col color.NRGBA) Target {
	return Target{
		Transform: matrix.Matrix{1, 0, 0, -1, offset.X, offset.Y + height},
		Color:     col,
	}
}

// Append converts m into the target coordinate system and appends the
// result to the given vertex and index buffers.  Indices are shifted by
// the number of vertices already present in verts.
func (t Target) Append(verts []Vertex, idx []uint32, m *Mesh) ([]Vertex, []uint32) {
	M := t.Transform
	if M == (matrix.Matrix{}) {
		M = matrix.Identity
	}

	base := uint32(len(verts))
	for _, p := range m.Vertices {
		verts = append(verts, Vertex{
			X:     float32(M[0]*p.X + M[2]*p.Y + M[4]),
			Y:     float32(M[1]*p.X + M[3]*p.Y + M[5]),
			Color: t.Color,
		})
	}

	flip := M[0]*M[3]-M[1]*M[2] < 0
	for _, tri := range m.Triangles {
		a, b, c := tri[0]+base, tri[1]+base, tri[2]+base
		if flip {
			b, c = c, b
		}
		idx = append(idx, a, b, c)
	}
	return verts, idx
}
