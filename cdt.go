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
	"iter"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// tri is a triangle of the working triangulation.
type tri struct {
	v [3]int // vertex indices, counter-clockwise
	n [3]int // n[i] is the triangle across edge v[i]→v[i+1], or -1
}

// edgeKind distinguishes the origin of a constrained edge.
type edgeKind uint8

const (
	edgeFree edgeKind = iota
	edgeContour
	edgeHull
)

// edgeKey identifies an undirected edge by its vertex indices, a < b.
type edgeKey struct{ a, b int }

func makeEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Number of synthetic bounding box vertices.  These always occupy
// vertex indices 0 to 3.
const numCorners = 4

// cdt is a constrained Delaunay triangulation under construction.
//
// The triangulation always covers the synthetic bounding box given to
// init.  Triangles are never deleted: splits reuse the slot of the split
// triangle and flips rewrite both triangles in place.
type cdt struct {
	pts   []vec.Vec2 // vertex positions; indices 0-3 are the box corners
	tris  []tri
	vt    []int // vt[v] is some triangle incident to vertex v
	fixed map[edgeKey]edgeKind

	stack [][2]int // legalisation work list: (triangle, edge) pairs
	queue [][2]int // constraint recovery work list: vertex pairs

	eps      float64 // distance below which points count as coincident or collinear
	last     int     // triangle where the next point location starts
	flips    int     // total number of flips performed
	maxFlips int     // flip budget; see flipLimitFactor

	// pooled backing storage, written back by release
	ptsBuf   *[]vec.Vec2
	trisBuf  *[]tri
	vtBuf    *[]int
	stackBuf *[][2]int
	queueBuf *[][2]int
}

// newCDT prepares a triangulation of the rectangle box, using scratch
// storage from pool.  The caller must call release when done.
func newCDT(pool *Pool, box rect.Rect, eps float64, fixed map[edgeKey]edgeKind) *cdt {
	c := &cdt{
		ptsBuf:   Acquire[vec.Vec2](pool),
		trisBuf:  Acquire[tri](pool),
		vtBuf:    Acquire[int](pool),
		stackBuf: Acquire[[2]int](pool),
		queueBuf: Acquire[[2]int](pool),
		fixed:    fixed,
		eps:      eps,
	}
	c.pts = *c.ptsBuf
	c.tris = *c.trisBuf
	c.vt = *c.vtBuf
	c.stack = *c.stackBuf
	c.queue = *c.queueBuf

	c.pts = append(c.pts,
		vec.Vec2{X: box.LLx, Y: box.LLy},
		vec.Vec2{X: box.URx, Y: box.LLy},
		vec.Vec2{X: box.URx, Y: box.URy},
		vec.Vec2{X: box.LLx, Y: box.URy},
	)
	c.tris = append(c.tris,
		tri{v: [3]int{0, 1, 2}, n: [3]int{-1, -1, 1}},
		tri{v: [3]int{0, 2, 3}, n: [3]int{0, -1, -1}},
	)
	c.vt = append(c.vt, 0, 0, 0, 1)
	c.maxFlips = math.MaxInt
	return c
}

// release hands all scratch storage back to the pool.
func (c *cdt) release(pool *Pool) {
	*c.ptsBuf = c.pts
	*c.trisBuf = c.tris
	*c.vtBuf = c.vt
	*c.stackBuf = c.stack
	*c.queueBuf = c.queue
	Release(pool, c.ptsBuf)
	Release(pool, c.trisBuf)
	Release(pool, c.vtBuf)
	Release(pool, c.stackBuf)
	Release(pool, c.queueBuf)
}

func next(i int) int { return (i + 1) % 3 }
func prev(i int) int { return (i + 2) % 3 }

// vertexIndex returns the position of vertex v in triangle t, or -1.
func (c *cdt) vertexIndex(t, v int) int {
	for k, w := range c.tris[t].v {
		if w == v {
			return k
		}
	}
	return -1
}

// edgeIndex returns the index of the edge {x, y} in triangle t,
// regardless of direction, or -1.
func (c *cdt) edgeIndex(t, x, y int) int {
	v := c.tris[t].v
	for i := range 3 {
		a, b := v[i], v[next(i)]
		if (a == x && b == y) || (a == y && b == x) {
			return i
		}
	}
	return -1
}

// replaceNeighbor redirects the adjacency of triangle t from old to new.
func (c *cdt) replaceNeighbor(t, old, new int) {
	if t < 0 {
		return
	}
	n := &c.tris[t].n
	for i := range 3 {
		if n[i] == old {
			n[i] = new
			return
		}
	}
}

// touch records t as the incident triangle of its three vertices.
func (c *cdt) touch(t int) {
	for _, v := range c.tris[t].v {
		c.vt[v] = t
	}
}

// around iterates over the triangles incident to vertex v, yielding the
// triangle index and the position of v within that triangle.
func (c *cdt) around(v int) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		t0 := c.vt[v]
		limit := len(c.tris)

		t := t0
		for range limit {
			k := c.vertexIndex(t, v)
			if k < 0 || !yield(t, k) {
				return
			}
			t = c.tris[t].n[k]
			if t == t0 {
				return
			}
			if t < 0 {
				break
			}
		}

		// v is on the box boundary: turn the other way from t0
		t = t0
		for range limit {
			k := c.vertexIndex(t, v)
			t = c.tris[t].n[prev(k)]
			if t < 0 || t == t0 {
				return
			}
			k = c.vertexIndex(t, v)
			if k < 0 || !yield(t, k) {
				return
			}
		}
	}
}

// findEdge returns a triangle containing the edge {x, y} and the index
// of the edge in that triangle.  It returns -1, -1 if the edge is not
// part of the triangulation.
func (c *cdt) findEdge(x, y int) (int, int) {
	for t, k := range c.around(x) {
		v := c.tris[t].v
		if v[next(k)] == y {
			return t, k
		}
		if v[prev(k)] == y {
			return t, prev(k)
		}
	}
	return -1, -1
}

// locate finds the position of p in the triangulation.  If p coincides
// with an existing vertex, that vertex is returned as v.  Otherwise t is
// the containing triangle and e is the index of the edge p lies on, or -1
// if p is strictly inside t.
func (c *cdt) locate(p vec.Vec2) (t, e, v int) {
	t = c.last
	if t < 0 || t >= len(c.tris) {
		t = 0
	}

	found := false
	limit := 4*len(c.tris) + 16
walk:
	for step := range limit {
		tr := &c.tris[t]
		for j := range 3 {
			// rotate the starting edge to avoid cycling
			i := (j + step) % 3
			a, b := c.pts[tr.v[i]], c.pts[tr.v[next(i)]]
			if orient(a, b, p) < 0 && tr.n[i] >= 0 {
				t = tr.n[i]
				continue walk
			}
		}
		found = true
		break
	}
	if !found {
		t = c.bestTriangle(p)
	}
	c.last = t

	tr := c.tris[t]
	for _, w := range tr.v {
		if c.pts[w].Sub(p).Length() <= c.eps {
			return t, -1, w
		}
	}

	e = -1
	best := c.eps
	for i := range 3 {
		a, b := c.pts[tr.v[i]], c.pts[tr.v[next(i)]]
		ab := b.Sub(a)
		l := ab.Length()
		if s := p.Sub(a).Dot(ab); l == 0 || s <= 0 || s >= l*l {
			continue
		}
		if d := math.Abs(orient(a, b, p)) / l; d <= best {
			best = d
			e = i
		}
	}
	return t, e, -1
}

// bestTriangle is the slow path of locate: it returns the triangle for
// which p is furthest inside, measured by the smallest signed distance to
// the triangle's edges.
func (c *cdt) bestTriangle(p vec.Vec2) int {
	best, bestDist := 0, math.Inf(-1)
	for t := range c.tris {
		v := c.tris[t].v
		d := math.Inf(1)
		for i := range 3 {
			a, b := c.pts[v[i]], c.pts[v[next(i)]]
			l := b.Sub(a).Length()
			if l == 0 {
				continue
			}
			d = min(d, orient(a, b, p)/l)
		}
		if d > bestDist {
			best, bestDist = t, d
		}
	}
	return best
}

// insert adds p to the triangulation and restores the Delaunay property
// around it.  It returns the vertex index of p, or of the existing vertex
// p coincides with.
func (c *cdt) insert(p vec.Vec2) int {
	t, e, v := c.locate(p)
	if v >= 0 {
		return v
	}

	idx := len(c.pts)
	c.pts = append(c.pts, p)
	c.vt = append(c.vt, t)

	c.stack = c.stack[:0]
	if e < 0 {
		c.splitTriangle(t, idx)
	} else {
		c.splitEdge(t, e, idx)
	}
	c.legalize()
	return idx
}

// splitTriangle replaces triangle t = (a, b, c) by the three triangles
// (a, b, p), (b, c, p) and (c, a, p).  The new vertex is at position 2 in
// each of them.
func (c *cdt) splitTriangle(t, p int) {
	old := c.tris[t]
	a, b, cc := old.v[0], old.v[1], old.v[2]
	na, nb, nc := old.n[0], old.n[1], old.n[2]

	t1 := len(c.tris)
	t2 := t1 + 1
	c.tris[t] = tri{v: [3]int{a, b, p}, n: [3]int{na, t1, t2}}
	c.tris = append(c.tris,
		tri{v: [3]int{b, cc, p}, n: [3]int{nb, t2, t}},
		tri{v: [3]int{cc, a, p}, n: [3]int{nc, t, t1}},
	)
	c.replaceNeighbor(nb, t, t1)
	c.replaceNeighbor(nc, t, t2)

	c.touch(t)
	c.touch(t1)
	c.touch(t2)
	c.stack = append(c.stack, [2]int{t, 0}, [2]int{t1, 0}, [2]int{t2, 0})
}

// splitEdge inserts p on edge i of triangle t, splitting t and its
// neighbour across that edge into two triangles each.  The new vertex is
// at position 2 in all new triangles.
func (c *cdt) splitEdge(t, i, p int) {
	old := c.tris[t]
	a, b, cc := old.v[i], old.v[next(i)], old.v[prev(i)]
	nt1, nt2 := old.n[next(i)], old.n[prev(i)]
	u := old.n[i]

	tb := len(c.tris)
	if u < 0 {
		c.tris[t] = tri{v: [3]int{b, cc, p}, n: [3]int{nt1, tb, -1}}
		c.tris = append(c.tris, tri{v: [3]int{cc, a, p}, n: [3]int{nt2, -1, t}})
		c.replaceNeighbor(nt2, t, tb)
		c.touch(t)
		c.touch(tb)
		c.stack = append(c.stack, [2]int{t, 0}, [2]int{tb, 0})
		return
	}

	oldU := c.tris[u]
	j := c.edgeIndex(u, a, b)
	d := oldU.v[prev(j)]
	nu1, nu2 := oldU.n[next(j)], oldU.n[prev(j)]

	td := tb + 1
	c.tris[t] = tri{v: [3]int{b, cc, p}, n: [3]int{nt1, tb, td}}
	c.tris[u] = tri{v: [3]int{a, d, p}, n: [3]int{nu1, td, tb}}
	c.tris = append(c.tris,
		tri{v: [3]int{cc, a, p}, n: [3]int{nt2, u, t}},
		tri{v: [3]int{d, b, p}, n: [3]int{nu2, t, u}},
	)
	c.replaceNeighbor(nt2, t, tb)
	c.replaceNeighbor(nu2, u, td)

	c.touch(t)
	c.touch(u)
	c.touch(tb)
	c.touch(td)
	c.stack = append(c.stack, [2]int{t, 0}, [2]int{u, 0}, [2]int{tb, 0}, [2]int{td, 0})
}

// flip replaces the diagonal of the quadrilateral formed by triangle t
// and its neighbour across edge i.  With t = (a, b, c) and the neighbour
// u = (b, a, d), the result is t = (c, a, d) and u = (d, b, c).
func (c *cdt) flip(t, i int) {
	T := c.tris[t]
	a, b, cc := T.v[i], T.v[next(i)], T.v[prev(i)]
	u := T.n[i]
	U := c.tris[u]
	j := c.edgeIndex(u, a, b)
	d := U.v[prev(j)]

	nt1, nt2 := T.n[next(i)], T.n[prev(i)]
	nu1, nu2 := U.n[next(j)], U.n[prev(j)]

	c.tris[t] = tri{v: [3]int{cc, a, d}, n: [3]int{nt2, nu1, u}}
	c.tris[u] = tri{v: [3]int{d, b, cc}, n: [3]int{nu2, nt1, t}}
	c.replaceNeighbor(nu1, u, t)
	c.replaceNeighbor(nt1, t, u)

	c.touch(t)
	c.touch(u)
	c.flips++
}

// opposite returns the neighbour of t across edge i together with the
// vertex of the neighbour opposite that edge.  The vertex is -1 if there
// is no neighbour.
func (c *cdt) opposite(t, i int) (u, d int) {
	u = c.tris[t].n[i]
	if u < 0 {
		return -1, -1
	}
	v := c.tris[t].v
	j := c.edgeIndex(u, v[i], v[next(i)])
	if j < 0 {
		return -1, -1
	}
	return u, c.tris[u].v[prev(j)]
}

// canFlip reports whether edge i of t may be flipped: the edge must be
// unconstrained and the quadrilateral around it strictly convex.
func (c *cdt) canFlip(t, i int) bool {
	v := c.tris[t].v
	a, b, cc := v[i], v[next(i)], v[prev(i)]
	if c.fixed[makeEdgeKey(a, b)] != edgeFree {
		return false
	}
	_, d := c.opposite(t, i)
	if d < 0 {
		return false
	}
	pa, pb, pc, pd := c.pts[a], c.pts[b], c.pts[cc], c.pts[d]
	return orient(pc, pa, pd) > 0 && orient(pd, pb, pc) > 0
}

// violatesDelaunay reports whether the vertex across edge i of t lies
// strictly inside the circumcircle of t.
func (c *cdt) violatesDelaunay(t, i int) bool {
	_, d := c.opposite(t, i)
	if d < 0 {
		return false
	}
	v := c.tris[t].v
	return inCircle(c.pts[v[0]], c.pts[v[1]], c.pts[v[2]], c.pts[d])
}

// legalize processes the work list filled by the split operations.  Each
// entry names an edge opposite the newly inserted vertex.
func (c *cdt) legalize() {
	for len(c.stack) > 0 {
		n := len(c.stack) - 1
		t, i := c.stack[n][0], c.stack[n][1]
		c.stack = c.stack[:n]

		if c.flips >= c.maxFlips {
			return
		}
		if !c.violatesDelaunay(t, i) || !c.canFlip(t, i) {
			continue
		}
		u := c.tris[t].n[i]
		c.flip(t, i)
		// The new vertex is now at position 0 of t and 2 of u.
		c.stack = append(c.stack, [2]int{t, 1}, [2]int{u, 0})
	}
}

// refine flips unconstrained edges until the triangulation is
// constrained Delaunay or the flip budget is used up.  It reports
// whether the budget was sufficient.
func (c *cdt) refine() bool {
	c.queue = c.queue[:0]
	for t := range c.tris {
		for i, u := range c.tris[t].n {
			if u > t {
				v := c.tris[t].v
				c.queue = append(c.queue, [2]int{v[i], v[next(i)]})
			}
		}
	}

	for len(c.queue) > 0 {
		if c.flips >= c.maxFlips {
			return false
		}
		n := len(c.queue) - 1
		x, y := c.queue[n][0], c.queue[n][1]
		c.queue = c.queue[:n]

		t, i := c.findEdge(x, y)
		if t < 0 || !c.violatesDelaunay(t, i) || !c.canFlip(t, i) {
			continue
		}
		v := c.tris[t].v
		a, b, p := v[i], v[next(i)], v[prev(i)]
		_, q := c.opposite(t, i)
		c.flip(t, i)
		c.queue = append(c.queue,
			[2]int{a, q}, [2]int{q, b}, [2]int{b, p}, [2]int{p, a})
	}
	return true
}

// onSegment reports whether vertex w lies on the open segment a–b,
// within the collinearity tolerance.
func (c *cdt) onSegment(w, a, b int) bool {
	pa, pb, pw := c.pts[a], c.pts[b], c.pts[w]
	d := pb.Sub(pa)
	l := d.Length()
	if l == 0 || math.Abs(orient(pa, pb, pw))/l > c.eps {
		return false
	}
	s := pw.Sub(pa).Dot(d)
	return s > 0 && s < l*l
}

// insertConstraint makes the segment a–b part of the triangulation and
// marks it with the given kind.  Vertices found on the segment split it.
// The return value is false if the segment crosses another constrained
// edge, in which case part of the segment may be missing.
func (c *cdt) insertConstraint(a, b int, kind edgeKind) bool {
	for a != b {
		w, ok := c.collectCrossings(a, b)
		if !ok {
			return false
		}
		if len(c.queue) > 0 && !c.recoverEdge(a, w) {
			return false
		}
		key := makeEdgeKey(a, w)
		if c.fixed[key] == edgeFree || kind == edgeContour {
			c.fixed[key] = kind
		}
		a = w
	}
	return true
}

// collectCrossings walks from vertex a towards b and stores the edges
// crossed by the segment in c.queue.  The walk stops at b or at the first
// vertex lying on the segment, which is returned as w.
func (c *cdt) collectCrossings(a, b int) (w int, ok bool) {
	c.queue = c.queue[:0]
	pa, pb := c.pts[a], c.pts[b]

	// find the triangle around a through which the segment leaves a
	start, right, left := -1, -1, -1
	for t, k := range c.around(a) {
		v := c.tris[t].v
		v1, v2 := v[next(k)], v[prev(k)]
		if v1 == b || v2 == b {
			return b, true
		}
		if c.onSegment(v1, a, b) {
			return v1, true
		}
		if c.onSegment(v2, a, b) {
			return v2, true
		}
		if orient(pa, pb, c.pts[v1]) < 0 && orient(pa, pb, c.pts[v2]) > 0 {
			start, right, left = t, v1, v2
			break
		}
	}
	if start < 0 {
		return -1, false
	}

	t := start
	for range len(c.tris) {
		if c.fixed[makeEdgeKey(right, left)] != edgeFree {
			return -1, false
		}
		c.queue = append(c.queue, [2]int{right, left})

		i := c.edgeIndex(t, right, left)
		u, d := c.opposite(t, i)
		if u < 0 {
			return -1, false
		}
		if d == b || c.onSegment(d, a, b) {
			return d, true
		}
		if orient(pa, pb, c.pts[d]) > 0 {
			left = d
		} else {
			right = d
		}
		t = u
	}
	return -1, false
}

// recoverEdge flips the edges listed in c.queue, all of which cross the
// segment a–b, until the edge a–b is part of the triangulation.
func (c *cdt) recoverEdge(a, b int) bool {
	pa, pb := c.pts[a], c.pts[b]
	limit := recoveryLimitFactor*len(c.queue)*len(c.queue) + 64

	for head := 0; head < len(c.queue); head++ {
		if head > limit {
			return false
		}
		x, y := c.queue[head][0], c.queue[head][1]
		t, i := c.findEdge(x, y)
		if t < 0 {
			return false
		}
		_, q := c.opposite(t, i)
		if q < 0 {
			return false
		}
		p := c.tris[t].v[prev(i)]
		pp, pq := c.pts[p], c.pts[q]
		if orient(pp, pq, c.pts[x])*orient(pp, pq, c.pts[y]) >= 0 {
			// quadrilateral not strictly convex, try again later
			c.queue = append(c.queue, [2]int{x, y})
			continue
		}
		c.flip(t, i)

		if p != a && p != b && q != a && q != b && segmentsCross(pa, pb, pp, pq) {
			c.queue = append(c.queue, [2]int{p, q})
		}
	}
	c.queue = c.queue[:0]
	t, _ := c.findEdge(a, b)
	return t >= 0
}

// segmentsCross reports whether the open segments a–b and p–q cross.
func segmentsCross(a, b, p, q vec.Vec2) bool {
	return orient(a, b, p)*orient(a, b, q) < 0 && orient(p, q, a)*orient(p, q, b) < 0
}

// inCircle reports whether d lies strictly inside the circumcircle of the
// counter-clockwise triangle abc.  Near-cocircular configurations count
// as outside, so that flips cannot cycle.
func inCircle(a, b, c, d vec.Vec2) bool {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	alift := adx*adx + ady*ady
	blift := bdx*bdx + bdy*bdy
	clift := cdx*cdx + cdy*cdy

	det := alift*(bdx*cdy-cdx*bdy) +
		blift*(cdx*ady-adx*cdy) +
		clift*(adx*bdy-bdx*ady)
	perm := alift*(math.Abs(bdx*cdy)+math.Abs(cdx*bdy)) +
		blift*(math.Abs(cdx*ady)+math.Abs(adx*cdy)) +
		clift*(math.Abs(adx*bdy)+math.Abs(bdx*ady))
	return det > inCircleThreshold*perm
}
