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

import "seehuhn.de/go/geom/vec"

// emit classifies the triangles of c and copies the selected ones to m.
// pts, idx and offs describe the accepted contours, hull is the convex
// hull if it was inserted as a set of constraints.
func (t *Triangulator) emit(c *cdt, pts []vec.Vec2, idx, offs, hull []int, m *Mesh) {
	nIn := len(c.pts) - numCorners
	for _, p := range c.pts[numCorners:] {
		m.AddVertex(p)
	}
	if t.Exterior {
		for _, p := range c.pts[:numCorners] {
			m.AddVertex(p)
		}
	}
	outIndex := func(v int) uint32 {
		if v >= numCorners {
			return uint32(v - numCorners)
		}
		return uint32(nIn + v)
	}

	cpts := Acquire[vec.Vec2](t.Pool)
	defer Release(t.Pool, cpts)
	for _, i := range idx {
		*cpts = append(*cpts, pts[i])
	}

	minArea := m.minArea()
	for _, tr := range c.tris {
		a, b, cc := c.pts[tr.v[0]], c.pts[tr.v[1]], c.pts[tr.v[2]]
		if orient(a, b, cc)/2 <= minArea {
			continue
		}
		hasCorner := tr.v[0] < numCorners || tr.v[1] < numCorners || tr.v[2] < numCorners
		centroid := vec.Vec2{X: (a.X + b.X + cc.X) / 3, Y: (a.Y + b.Y + cc.Y) / 3}

		var include bool
		switch {
		case t.inside(centroid, *cpts, offs):
			include = t.Interior
		case hasCorner:
			include = t.Exterior
		case len(hull) >= 3 && !insideConvex(c.pts, hull, centroid):
			include = t.Exterior
		default:
			include = t.Hull
		}
		if !include || (hasCorner && !t.Exterior) {
			continue
		}
		m.Triangles = append(m.Triangles,
			[3]uint32{outIndex(tr.v[0]), outIndex(tr.v[1]), outIndex(tr.v[2])})
	}
}

// inside applies the fill rule to p.  cpts holds the points of all
// accepted contours back to back, offs the start of each contour.
func (t *Triangulator) inside(p vec.Vec2, cpts []vec.Vec2, offs []int) bool {
	sum := 0
	for k, start := range offs {
		end := contourEnd(k, offs, len(cpts))
		sum += Contour(cpts[start:end]).Winding(p)
	}
	if t.Rule == NonZero {
		return sum != 0
	}
	return sum%2 != 0
}
