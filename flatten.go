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
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Flattener converts paths into closed polygon contours, replacing curves
// by polylines.  Create one instance and reuse it; scratch storage is
// drawn from Pool.
//
// A Flattener is not safe for concurrent use.
type Flattener struct {
	// Tolerance is the maximum distance, in device units, between a curve
	// and its polyline approximation.  Must be positive.
	Tolerance float64

	// Scale is the number of device units per path unit.  The effective
	// tolerance in path coordinates is Tolerance/Scale.  Must be positive.
	Scale float64

	// Epsilon is the distance, in path units, below which consecutive
	// points are considered coincident.  The later point is dropped.
	Epsilon float64

	// Pool supplies scratch buffers.  May be nil.
	Pool *Pool
}

// NewFlattener returns a Flattener with default tolerance and unit scale.
func NewFlattener(pool *Pool) *Flattener {
	return &Flattener{
		Tolerance: defaultTolerance,
		Scale:     1,
		Epsilon:   defaultEpsilon,
		Pool:      pool,
	}
}

// Flatten converts p into contours using the given tolerance and scale.
// See [Flattener.Flatten].
func Flatten(p *path.Data, tolerance, scale float64) ([]Contour, error) {
	f := Flattener{
		Tolerance: tolerance,
		Scale:     scale,
		Epsilon:   defaultEpsilon,
	}
	return f.Flatten(p)
}

// cubic is a pending piece of a cubic Bézier curve on the subdivision
// stack.
type cubic struct {
	p0, p1, p2, p3 vec.Vec2
	depth          int
}

// Flatten returns one contour for every subpath of p, in path order.
// Subpaths consisting of a single point are omitted.  Close commands end
// the current subpath; every subpath is implicitly closed.
//
// A path in which a drawing command is not preceded by MoveTo is rejected
// with a *PathError wrapping ErrMissingMoveTo before any geometry is
// computed.  A path with too few coordinates for its commands is rejected
// in the same way, with ErrMissingCoords.
func (f *Flattener) Flatten(p *path.Data) ([]Contour, error) {
	if !(f.Tolerance > 0) || !(f.Scale > 0) {
		return nil, ErrInvalidTolerance
	}
	if p == nil {
		return nil, nil
	}
	if err := validatePath(p); err != nil {
		return nil, err
	}

	stack := Acquire[cubic](f.Pool)
	defer Release(f.Pool, stack)
	pts := Acquire[vec.Vec2](f.Pool)
	defer Release(f.Pool, pts)

	tol := f.Tolerance / f.Scale

	var contours []Contour
	finish := func() {
		if c := f.finishContour(*pts); c != nil {
			contours = append(contours, c)
		}
		*pts = (*pts)[:0]
	}

	var current vec.Vec2
	coordIdx := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			finish()
			current = p.Coords[coordIdx]
			*pts = append(*pts, current)
			coordIdx++

		case path.CmdLineTo:
			current = p.Coords[coordIdx]
			f.addPoint(pts, current)
			coordIdx++

		case path.CmdQuadTo:
			// degree elevation: C1 = P0 + 2/3 (Q - P0), C2 = P2 + 2/3 (Q - P2)
			q, end := p.Coords[coordIdx], p.Coords[coordIdx+1]
			c1 := current.Add(q.Sub(current).Mul(2.0 / 3))
			c2 := end.Add(q.Sub(end).Mul(2.0 / 3))
			f.flattenCubic(stack, pts, current, c1, c2, end, tol)
			current = end
			coordIdx += 2

		case path.CmdCubeTo:
			c1, c2, end := p.Coords[coordIdx], p.Coords[coordIdx+1], p.Coords[coordIdx+2]
			f.flattenCubic(stack, pts, current, c1, c2, end, tol)
			current = end
			coordIdx += 3

		case path.CmdClose:
			finish()
		}
	}
	finish()

	Logger().Debug("flattened path",
		"commands", len(p.Cmds),
		"contours", len(contours))
	return contours, nil
}

// validatePath checks that every subpath starts with MoveTo and that
// p.Coords holds enough points for all commands.  A Close directly after
// Close is allowed and has no effect.
func validatePath(p *path.Data) error {
	open, closed := false, false
	need := 0
	for i, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			open, closed = true, false
		case path.CmdClose:
			if !open && !closed {
				return &PathError{Index: i, Err: ErrMissingMoveTo}
			}
			open, closed = false, true
		default:
			if !open {
				return &PathError{Index: i, Err: ErrMissingMoveTo}
			}
		}
		need += coordCount(cmd)
		if need > len(p.Coords) {
			return &PathError{Index: i, Err: ErrMissingCoords}
		}
	}
	return nil
}

// coordCount returns the number of points taken by a path command.
func coordCount(cmd path.Command) int {
	switch cmd {
	case path.CmdMoveTo, path.CmdLineTo:
		return 1
	case path.CmdQuadTo:
		return 2
	case path.CmdCubeTo:
		return 3
	default:
		return 0
	}
}

// flattenCubic appends the polyline approximation of the cubic Bézier
// p0, p1, p2, p3 to pts, not including p0.
//
// The curve is split at t=1/2 until each piece is flat to within tol or
// maxSubdivisionDepth is reached.  The stack is processed depth-first,
// first half before second half, so points are emitted in curve order.
func (f *Flattener) flattenCubic(stack *[]cubic, pts *[]vec.Vec2, p0, p1, p2, p3 vec.Vec2, tol float64) {
	*stack = append((*stack)[:0], cubic{p0: p0, p1: p1, p2: p2, p3: p3})
	for len(*stack) > 0 {
		n := len(*stack) - 1
		c := (*stack)[n]
		*stack = (*stack)[:n]

		if c.depth >= maxSubdivisionDepth || cubicFlatness(c.p0, c.p1, c.p2, c.p3) <= tol {
			f.addPoint(pts, c.p3)
			continue
		}

		first, second := c.split()
		*stack = append(*stack, second, first)
	}
}

// split divides the curve at t=1/2 using De Casteljau's construction.
func (c cubic) split() (first, second cubic) {
	m01 := mid(c.p0, c.p1)
	m12 := mid(c.p1, c.p2)
	m23 := mid(c.p2, c.p3)
	m012 := mid(m01, m12)
	m123 := mid(m12, m23)
	m0123 := mid(m012, m123)

	depth := c.depth + 1
	first = cubic{p0: c.p0, p1: m01, p2: m012, p3: m0123, depth: depth}
	second = cubic{p0: m0123, p1: m123, p2: m23, p3: c.p3, depth: depth}
	return first, second
}

// cubicFlatness returns the larger of the distances of the two control
// points from the chord p0–p3.
func cubicFlatness(p0, p1, p2, p3 vec.Vec2) float64 {
	return max(distToSegment(p1, p0, p3), distToSegment(p2, p0, p3))
}

// distToSegment returns the distance from p to the segment a–b.  The
// projection is clamped to the segment, so control points beyond the
// chord ends count as deviation.
func distToSegment(p, a, b vec.Vec2) float64 {
	d := b.Sub(a)
	l2 := d.Dot(d)
	if l2 == 0 {
		return p.Sub(a).Length()
	}
	t := p.Sub(a).Dot(d) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Sub(a.Add(d.Mul(t))).Length()
}

func mid(a, b vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// addPoint appends q unless it coincides with the previous point.
func (f *Flattener) addPoint(pts *[]vec.Vec2, q vec.Vec2) {
	if n := len(*pts); n > 0 && (*pts)[n-1].Sub(q).Length() <= f.Epsilon {
		return
	}
	*pts = append(*pts, q)
}

// finishContour copies the points of a finished subpath into a new
// contour.  A closing point which repeats the start point is dropped.
// The result is nil if fewer than two points remain.
func (f *Flattener) finishContour(pts []vec.Vec2) Contour {
	for len(pts) > 1 && pts[len(pts)-1].Sub(pts[0]).Length() <= f.Epsilon {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 2 {
		return nil
	}
	return Contour(slices.Clone(pts))
}
