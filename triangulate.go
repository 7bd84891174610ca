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

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// FillRule decides which points are inside a set of contours.
type FillRule int

const (
	// EvenOdd counts a point as inside if it is enclosed by an odd number
	// of contour windings.  Nested contours alternate between filled and
	// hole.
	EvenOdd FillRule = iota

	// NonZero counts a point as inside if the total winding number of all
	// contours around it is non-zero.
	NonZero
)

func (r FillRule) String() string {
	switch r {
	case EvenOdd:
		return "evenodd"
	case NonZero:
		return "nonzero"
	default:
		return "FillRule(?)"
	}
}

// Triangulator converts contours into triangle meshes.
//
// The plane inside a synthetic bounding box is divided into three
// regions: the interior of the contours (as determined by Rule), the hull
// region (inside the convex hull of all contour points, but not interior)
// and the exterior (between the convex hull and the bounding box).
// Interior, Hull and Exterior select which regions are emitted.
//
// A Triangulator is not safe for concurrent use.
type Triangulator struct {
	// Delaunay enables edge flipping after the contour edges have been
	// inserted, so that the result is a constrained Delaunay
	// triangulation.
	Delaunay bool

	// Interior selects triangles inside the contours.
	Interior bool

	// Exterior selects triangles outside the convex hull of the contour
	// points, up to the bounding box.
	Exterior bool

	// Hull selects triangles inside the convex hull which are not
	// interior.
	Hull bool

	// Rule is the fill rule used to classify triangles as interior.
	Rule FillRule

	// Epsilon is the distance below which points are merged into a
	// single vertex.
	Epsilon float64

	// Margin is the gap between the contours' bounding box and the
	// synthetic bounding box, as a fraction of the larger side of the
	// contours' bounding box.  Must be positive.
	Margin float64

	// Pool supplies scratch buffers.  May be nil.
	Pool *Pool

	// reused between calls
	fixed map[edgeKey]edgeKind
	grid  map[cellKey]int
}

// NewTriangulator returns a Triangulator which fills the interior of the
// contours using the even-odd rule, without Delaunay refinement.
func NewTriangulator(pool *Pool) *Triangulator {
	return &Triangulator{
		Interior: true,
		Rule:     EvenOdd,
		Epsilon:  defaultEpsilon,
		Margin:   defaultMargin,
		Pool:     pool,
	}
}

// Triangulate replaces the contents of m with a triangulation of the
// selected regions.
//
// All contour points become vertices of m, in order of first appearance;
// points closer than Epsilon share a vertex.  If Exterior is set, the four
// corners of the bounding box are appended.  Contours with fewer than
// three distinct points, or with all points on a line, are ignored.
//
// Every contour edge is an edge of the mesh, unless the contour crosses
// another contour edge.  The triangulation of self-intersecting contours
// is not guaranteed to respect all edges.
func (t *Triangulator) Triangulate(contours []Contour, m *Mesh) {
	m.Clear()
	if !t.Interior && !t.Exterior && !t.Hull {
		return
	}

	pts := Acquire[vec.Vec2](t.Pool)
	defer Release(t.Pool, pts)
	idx := Acquire[int](t.Pool)
	defer Release(t.Pool, idx)
	offs := Acquire[int](t.Pool)
	defer Release(t.Pool, offs)

	t.collect(contours, pts, idx, offs)
	if len(*offs) == 0 {
		Logger().Debug("no usable contours", "contours", len(contours))
		return
	}

	bounds := Contour(*pts).Bounds()
	size := max(bounds.URx-bounds.LLx, bounds.URy-bounds.LLy)
	eps := max(t.Epsilon, collinearThreshold*size)

	if t.fixed == nil {
		t.fixed = make(map[edgeKey]edgeKind)
	}
	clear(t.fixed)
	c := newCDT(t.Pool, t.box(bounds), eps, t.fixed)
	defer c.release(t.Pool)
	c.maxFlips = flipLimitFactor * 3 * (len(*pts) + numCorners)

	vmap := Acquire[int](t.Pool)
	defer Release(t.Pool, vmap)
	for _, p := range *pts {
		*vmap = append(*vmap, c.insert(p))
	}

	failed := 0
	for k, start := range *offs {
		end := contourEnd(k, *offs, len(*idx))
		for j := start; j < end; j++ {
			jNext := j + 1
			if jNext == end {
				jNext = start
			}
			a, b := (*vmap)[(*idx)[j]], (*vmap)[(*idx)[jNext]]
			if a != b && !c.insertConstraint(a, b, edgeContour) {
				failed++
			}
		}
	}

	hull := Acquire[int](t.Pool)
	defer Release(t.Pool, hull)
	if t.Hull != t.Exterior {
		ids := Acquire[int](t.Pool)
		defer Release(t.Pool, ids)
		for v := numCorners; v < len(c.pts); v++ {
			*ids = append(*ids, v)
		}
		*hull = convexHull(c.pts, *ids, *hull)
		n := len(*hull)
		for i := range n {
			a, b := (*hull)[i], (*hull)[(i+1)%n]
			if !c.insertConstraint(a, b, edgeHull) {
				failed++
			}
		}
	}
	if failed > 0 {
		Logger().Warn("constrained edges could not be inserted, input is probably self-intersecting",
			"edges", failed)
	}

	if t.Delaunay && !c.refine() {
		Logger().Warn("flip limit reached, triangulation is not fully Delaunay",
			"flips", c.flips)
	}

	t.emit(c, *pts, *idx, *offs, *hull, m)

	Logger().Debug("triangulated contours",
		"contours", len(*offs),
		"vertices", len(m.Vertices),
		"triangles", len(m.Triangles),
		"flips", c.flips)
}

// box returns the synthetic bounding box around the contour bounds b.
func (t *Triangulator) box(b rect.Rect) rect.Rect {
	size := max(b.URx-b.LLx, b.URy-b.LLy)
	pad := t.Margin * size
	if !(pad > 0) || math.IsInf(pad, 0) {
		pad = minMargin * size
	}
	if !(pad > 0) {
		pad = 1
	}
	return rect.Rect{
		LLx: b.LLx - pad,
		LLy: b.LLy - pad,
		URx: b.URx + pad,
		URy: b.URy + pad,
	}
}

// contourEnd returns the end of contour k in a flat list of n entries
// whose contours start at offs.
func contourEnd(k int, offs []int, n int) int {
	if k+1 < len(offs) {
		return offs[k+1]
	}
	return n
}

// Default values for Flattener and Triangulator parameters.
const (
	// defaultTolerance is the default flattening tolerance in device
	// units.  At unit scale this is a quarter pixel.
	defaultTolerance = 0.25

	// defaultEpsilon is the default distance below which points are
	// considered coincident.
	defaultEpsilon = 1e-9

	// defaultMargin is the default gap around the contours, relative to
	// their extent, before the synthetic bounding box.
	defaultMargin = 0.5

	// minMargin is used instead of Margin if Margin is not positive.
	minMargin = 1e-3
)

// Safety caps and numerical tolerances.
const (
	// maxSubdivisionDepth limits the recursion of curve flattening.  A
	// single cubic yields at most 2^16 segments.
	maxSubdivisionDepth = 16

	// flipLimitFactor bounds the total number of edge flips of one
	// triangulation, per edge.
	flipLimitFactor = 32

	// recoveryLimitFactor bounds the work of inserting one constrained
	// edge, relative to the square of the number of edges it crosses.
	recoveryLimitFactor = 4

	// inCircleThreshold is the relative size below which the in-circle
	// determinant is treated as zero.
	inCircleThreshold = 1e-12

	// collinearThreshold is the smallest collinearity tolerance, relative
	// to the extent of the input.
	collinearThreshold = 1e-12

	// zeroAreaThreshold is the area, relative to the square of the mesh
	// extent, below which triangles count as degenerate.
	zeroAreaThreshold = 1e-14
)
