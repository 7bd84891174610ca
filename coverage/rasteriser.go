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

// Package coverage computes anti-aliased pixel coverage for triangle
// meshes and polygon contours.
//
// Mesh coverage is the sum of the coverage of all triangles, without
// clamping.  For a mesh which tiles its region exactly, every pixel
// fully inside the region has coverage 1; overlapping triangles show up
// as values above 1 and gaps as values below 1.  Contours are filled with
// a fill rule and clamped to [0, 1], so that the two can be compared
// pixel by pixel.
package coverage

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/mesh"
)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// rule selects how accumulated signed area is turned into coverage.
type rule int

const (
	ruleSum rule = iota // signed sum, normalised so that filled is +1
	ruleNonZero
	ruleEvenOdd
)

// Rasteriser converts meshes and contours to pixel coverage values.
// Internal buffers grow as needed but never shrink, so that a reused
// Rasteriser does not allocate in steady state.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM maps mesh coordinates to device coordinates.  Must be
	// non-singular.
	CTM matrix.Matrix

	// Clip is the output region in device coordinates.  Must be a
	// non-empty rectangle with integer coordinates.
	Clip rect.Rect

	// smallArea is the largest bounding box area, in pixels, which is
	// rasterised using full 2D buffers.  Larger regions use an active
	// edge list and one scanline at a time.
	smallArea int

	// reused between calls
	cover     []float32 // cover change per pixel; reused as output
	area      []float32 // signed area within pixel
	edges     []edge    // edges of the current mesh, in device space
	active    []int     // indices into edges
	rowXMax   []int     // per scanline: largest touched column, or -1
	crossings []float64 // y values where an edge crosses a pixel column

	// device space bounding box of edges
	haveBBox       bool
	bbXMin, bbXMax float64
	bbYMin, bbYMax float64

	// sign which makes counter-clockwise triangles positive
	orientation float32
}

// NewRasteriser returns a Rasteriser with the identity transformation.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		CTM:       matrix.Identity,
		Clip:      clip,
		smallArea: smallAreaThreshold,
	}
}

// Reset restores the initial state with the given clip rectangle,
// keeping buffer capacity.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.active = r.active[:0]
	r.rowXMax = r.rowXMax[:0]
	r.crossings = r.crossings[:0]
}

// Mesh computes the coverage of all triangles of m.  Counter-clockwise
// triangles count positive, clockwise ones negative.  Coverage is
// delivered row by row via emit; the slice is only valid for the duration
// of the call.
func (r *Rasteriser) Mesh(m *mesh.Mesh, emit func(y, xMin int, coverage []float32)) {
	r.begin()
	for _, t := range m.Triangles {
		a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
		r.addEdge(a, b)
		r.addEdge(b, c)
		r.addEdge(c, a)
	}
	r.run(ruleSum, emit)
}

// Contours fills the closed polygons cs using the given fill rule.
// Coverage values are in the range [0, 1].
func (r *Rasteriser) Contours(cs []mesh.Contour, fill mesh.FillRule, emit func(y, xMin int, coverage []float32)) {
	r.begin()
	for _, c := range cs {
		n := len(c)
		for i := range n {
			r.addEdge(c[i], c[(i+1)%n])
		}
	}
	if fill == mesh.NonZero {
		r.run(ruleNonZero, emit)
	} else {
		r.run(ruleEvenOdd, emit)
	}
}

func (r *Rasteriser) begin() {
	r.edges = r.edges[:0]
	r.haveBBox = false

	// Without reflection, counter-clockwise triangles accumulate negative
	// area.
	r.orientation = -1
	if r.CTM[0]*r.CTM[3]-r.CTM[1]*r.CTM[2] < 0 {
		r.orientation = 1
	}
}

// run rasterises the collected edges.
func (r *Rasteriser) run(mode rule, emit func(y, xMin int, coverage []float32)) {
	if len(r.edges) == 0 {
		return
	}

	xMin := max(int(math.Floor(r.bbXMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.bbXMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.bbYMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.bbYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}

	if (xMax-xMin)*(yMax-yMin) < r.smallArea {
		r.runSmall(xMin, xMax, yMin, yMax, mode, emit)
	} else {
		r.runLarge(xMin, xMax, yMin, yMax, mode, emit)
	}
}

// addEdge transforms the segment p0–p1 to device space and records it.
func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	M := r.CTM
	x0 := M[0]*p0.X + M[2]*p0.Y + M[4]
	y0 := M[1]*p0.X + M[3]*p0.Y + M[5]
	x1 := M[0]*p1.X + M[2]*p1.Y + M[4]
	y1 := M[1]*p1.X + M[3]*p1.Y + M[5]

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	if !r.haveBBox {
		r.bbXMin, r.bbXMax = x0, x0
		r.bbYMin, r.bbYMax = y0, y0
		r.haveBBox = true
	}
	r.bbXMin = min(r.bbXMin, x0, x1)
	r.bbXMax = max(r.bbXMax, x0, x1)
	r.bbYMin = min(r.bbYMin, y0, y1)
	r.bbYMax = max(r.bbYMax, y0, y1)
}

// Each edge adds to two per-pixel accumulators: cover is the signed
// vertical extent of the edge within the pixel, area is cover weighted by
// the part of the pixel to the right of the edge.  Integrating a scanline
// from left to right, the signed area inside pixel i is the running sum
// of cover over all pixels left of i, plus area[i].

// accumulate adds the part of e inside scanline y to cover and area,
// which are indexed by x - bxMin.  Contributions left of the buffer go to
// the first pixel; contributions right of it are dropped.
func (r *Rasteriser) accumulate(e *edge, y int, cover, area []float32, bxMin, bxMax int) (touched int, ok bool) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return 0, false
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xTop := e.x0 + e.dxdy*(yTop-e.y0)
	xBot := e.x0 + e.dxdy*(yBot-e.y0)
	pixLeft := int(math.Floor(min(xTop, xBot)))
	pixRight := int(math.Floor(max(xTop, xBot)))

	deposit := func(ya, yb float64) {
		c := sign * float32(yb-ya)
		xMid := e.x0 + e.dxdy*((ya+yb)/2-e.y0)
		pix := int(math.Floor(xMid))
		switch {
		case pix < bxMin:
			cover[0] += c
			area[0] += c
		case pix < bxMax:
			cover[pix-bxMin] += c
			area[pix-bxMin] += c * float32(1-(xMid-float64(pix)))
		}
	}

	if pixLeft == pixRight {
		deposit(yTop, yBot)
	} else {
		r.crossings = append(r.crossings[:0], yTop, yBot)
		for x := pixLeft + 1; x <= pixRight; x++ {
			yx := e.y0 + (float64(x)-e.x0)/e.dxdy
			if yx > yTop && yx < yBot {
				r.crossings = append(r.crossings, yx)
			}
		}
		slices.Sort(r.crossings)
		for i := range len(r.crossings) - 1 {
			if r.crossings[i+1] > r.crossings[i] {
				deposit(r.crossings[i], r.crossings[i+1])
			}
		}
	}

	xMid := e.x0 + e.dxdy*((yTop+yBot)/2-e.y0)
	touched = min(max(int(math.Floor(xMid)), bxMin), bxMax-1) - bxMin
	return touched, true
}

// integrate converts one scanline of accumulated values into coverage,
// in place in cover.
func (r *Rasteriser) integrate(cover, area []float32, mode rule) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]

		switch mode {
		case ruleSum:
			raw *= r.orientation
		case ruleNonZero:
			raw = min(abs32(raw), 1)
		case ruleEvenOdd:
			raw = abs32(raw)
			raw = 1 - abs32(1-(raw-2*float32(int(raw/2))))
		}
		cover[i] = raw
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// trimZeros returns the part of coverage between the first and last
// non-zero entry, together with its offset.  The result is nil if all
// entries are zero.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

// runSmall rasterises the region using buffers covering the whole
// bounding box.
func (r *Rasteriser) runSmall(xMin, xMax, yMin, yMax int, mode rule, emit func(y, xMin int, coverage []float32)) {
	width, height := xMax-xMin, yMax-yMin
	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)
	r.rowXMax = slices.Grow(r.rowXMax[:0], height)[:height]
	for i := range r.rowXMax {
		r.rowXMax[i] = -1
	}

	for i := range r.edges {
		e := &r.edges[i]
		first := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		last := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)
		for y := first; y < last; y++ {
			row := (y - yMin) * width
			x, ok := r.accumulate(e, y, r.cover[row:row+width], r.area[row:row+width], xMin, xMax)
			if ok {
				r.rowXMax[y-yMin] = max(r.rowXMax[y-yMin], x)
			}
		}
	}

	for k := range height {
		if r.rowXMax[k] < 0 {
			continue
		}
		row := k * width
		line := r.cover[row : row+width]
		r.integrate(line, r.area[row:row+width], mode)
		if trimmed, offs := trimZeros(line); trimmed != nil {
			emit(yMin+k, xMin+offs, trimmed)
		}
	}
}

// runLarge rasterises the region one scanline at a time, keeping a list
// of the edges which intersect the current scanline.
func (r *Rasteriser) runLarge(xMin, xMax, yMin, yMax int, mode rule, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < float64(y+1) {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if max(e.y0, e.y1) <= float64(y) {
				r.active[i] = r.active[len(r.active)-1]
				r.active = r.active[:len(r.active)-1]
				continue
			}
			if _, ok := r.accumulate(e, y, r.cover, r.area, xMin, xMax); ok {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		r.integrate(r.cover, r.area, mode)
		if trimmed, offs := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offs, trimmed)
		}
	}
}

const (
	// horizontalEdgeThreshold is the smallest vertical extent of an edge,
	// in device pixels, which contributes to coverage.
	horizontalEdgeThreshold = 1e-10

	// smallAreaThreshold is the default bounding box area, in pixels,
	// up to which 2D buffers are used.
	smallAreaThreshold = 65536
)
