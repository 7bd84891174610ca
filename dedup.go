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
	"math"

	"seehuhn.de/go/geom/vec"
)

// cellKey identifies a cell of the deduplication grid.
type cellKey struct{ x, y int64 }

// collect deduplicates the contour points and appends the usable
// contours to idx, as indices into pts.  offs receives the start of each
// accepted contour in idx.
//
// Points of rejected contours are removed again, so that pts only
// contains points which are part of an accepted contour.
func (t *Triangulator) collect(contours []Contour, pts *[]vec.Vec2, idx, offs *[]int) {
	if t.grid == nil {
		t.grid = make(map[cellKey]int)
	}
	clear(t.grid)

	added := Acquire[cellKey](t.Pool)
	defer Release(t.Pool, added)

	for ci, contour := range contours {
		start, nPts := len(*idx), len(*pts)
		*added = (*added)[:0]

		for _, p := range contour {
			i := t.lookup(p, pts, added)
			if n := len(*idx); n > start && (*idx)[n-1] == i {
				continue
			}
			*idx = append(*idx, i)
		}
		for n := len(*idx); n-start > 1 && (*idx)[n-1] == (*idx)[start]; n-- {
			*idx = (*idx)[:n-1]
		}

		if !t.usable(*pts, (*idx)[start:]) {
			*idx = (*idx)[:start]
			*pts = (*pts)[:nPts]
			for _, key := range *added {
				delete(t.grid, key)
			}
			Logger().Debug("skipping degenerate contour",
				"contour", ci,
				"points", len(contour))
			continue
		}
		*offs = append(*offs, start)
	}
}

// lookup returns the index of a point in pts within Epsilon of p, adding
// p if there is none.
//
// The grid cell size is Epsilon/√2, so that any two points sharing a cell
// are within Epsilon of each other; a match can be at most two cells away.
func (t *Triangulator) lookup(p vec.Vec2, pts *[]vec.Vec2, added *[]cellKey) int {
	eps := t.Epsilon
	var key cellKey
	if eps > 0 {
		cell := eps / math.Sqrt2
		key = cellKey{gridCoord(p.X / cell), gridCoord(p.Y / cell)}
		for dx := int64(-2); dx <= 2; dx++ {
			for dy := int64(-2); dy <= 2; dy++ {
				i, ok := t.grid[cellKey{key.x + dx, key.y + dy}]
				if ok && (*pts)[i].Sub(p).Length() <= eps {
					return i
				}
			}
		}
	} else {
		key = cellKey{int64(math.Float64bits(p.X)), int64(math.Float64bits(p.Y))}
		if i, ok := t.grid[key]; ok {
			return i
		}
	}

	i := len(*pts)
	*pts = append(*pts, p)
	if _, ok := t.grid[key]; !ok {
		t.grid[key] = i
		*added = append(*added, key)
	}
	return i
}

// gridCoord converts a scaled coordinate to a grid index, saturating at
// the int64 range.
func gridCoord(x float64) int64 {
	const limit = 1 << 62
	x = math.Floor(x)
	switch {
	case x >= limit:
		return limit
	case x <= -limit:
		return -limit
	case math.IsNaN(x):
		return 0
	}
	return int64(x)
}

// usable reports whether the contour given by the indices ids has at
// least three points which are not all on one line.
func (t *Triangulator) usable(pts []vec.Vec2, ids []int) bool {
	if len(ids) < 3 {
		return false
	}

	a := pts[ids[0]]
	b, far := a, 0.0
	for _, i := range ids[1:] {
		if d := pts[i].Sub(a).Length(); d > far {
			b, far = pts[i], d
		}
	}
	if far <= t.Epsilon || far == 0 {
		return false
	}

	tol := max(t.Epsilon, collinearThreshold*far)
	for _, i := range ids[1:] {
		if math.Abs(orient(a, b, pts[i]))/far > tol {
			return true
		}
	}
	return false
}
