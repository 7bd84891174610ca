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
	"cmp"
	"slices"

	"seehuhn.de/go/geom/vec"
)

// convexHull computes the convex hull of the points pts[i] for i in idx,
// using Andrew's monotone chain.  The hull vertices are appended to
// out[:0] in counter-clockwise order; collinear points on the hull
// boundary are omitted.  idx is sorted in place.
func convexHull(pts []vec.Vec2, idx []int, out []int) []int {
	slices.SortFunc(idx, func(i, j int) int {
		if c := cmp.Compare(pts[i].X, pts[j].X); c != 0 {
			return c
		}
		return cmp.Compare(pts[i].Y, pts[j].Y)
	})

	out = out[:0]
	if len(idx) < 3 {
		return append(out, idx...)
	}

	// lower hull
	for _, i := range idx {
		for len(out) >= 2 && orient(pts[out[len(out)-2]], pts[out[len(out)-1]], pts[i]) <= 0 {
			out = out[:len(out)-1]
		}
		out = append(out, i)
	}

	// upper hull
	lower := len(out) + 1
	for k := len(idx) - 2; k >= 0; k-- {
		i := idx[k]
		for len(out) >= lower && orient(pts[out[len(out)-2]], pts[out[len(out)-1]], pts[i]) <= 0 {
			out = out[:len(out)-1]
		}
		out = append(out, i)
	}

	// the last point repeats the first
	return out[:len(out)-1]
}

// insideConvex reports whether p lies inside or on the boundary of the
// counter-clockwise convex polygon with the given vertices.
func insideConvex(pts []vec.Vec2, hull []int, p vec.Vec2) bool {
	n := len(hull)
	if n < 3 {
		return false
	}
	for i := range n {
		if orient(pts[hull[i]], pts[hull[(i+1)%n]], p) < 0 {
			return false
		}
	}
	return true
}
