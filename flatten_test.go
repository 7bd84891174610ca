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
	"errors"
	"math"
	"slices"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// pathBuilder is a small helper for constructing test paths.
type pathBuilder struct{ *path.Data }

func newPath() pathBuilder { return pathBuilder{&path.Data{}} }

func (b pathBuilder) add(cmd path.Command, xy ...float64) pathBuilder {
	b.Cmds = append(b.Cmds, cmd)
	for i := 0; i+1 < len(xy); i += 2 {
		b.Coords = append(b.Coords, vec.Vec2{X: xy[i], Y: xy[i+1]})
	}
	return b
}

func (b pathBuilder) M(x, y float64) pathBuilder { return b.add(path.CmdMoveTo, x, y) }
func (b pathBuilder) L(x, y float64) pathBuilder { return b.add(path.CmdLineTo, x, y) }
func (b pathBuilder) Q(x1, y1, x, y float64) pathBuilder {
	return b.add(path.CmdQuadTo, x1, y1, x, y)
}
func (b pathBuilder) C(x1, y1, x2, y2, x, y float64) pathBuilder {
	return b.add(path.CmdCubeTo, x1, y1, x2, y2, x, y)
}
func (b pathBuilder) Z() pathBuilder { return b.add(path.CmdClose) }

// circlePath returns a counter-clockwise circle made of four cubic arcs.
func circlePath(cx, cy, r float64) pathBuilder {
	const k = 0.5522847498307936
	kr := k * r
	return newPath().M(cx+r, cy).
		C(cx+r, cy+kr, cx+kr, cy+r, cx, cy+r).
		C(cx-kr, cy+r, cx-r, cy+kr, cx-r, cy).
		C(cx-r, cy-kr, cx-kr, cy-r, cx, cy-r).
		C(cx+kr, cy-r, cx+r, cy-kr, cx+r, cy).
		Z()
}

func TestFlattenLines(t *testing.T) {
	p := newPath().M(0, 0).L(10, 0).L(10, 10).L(0, 10).Z()
	contours, err := Flatten(p.Data, 0.25, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(contours) != 1 {
		t.Fatalf("got %d contours, want 1", len(contours))
	}
	want := Contour{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if len(contours[0]) != len(want) {
		t.Fatalf("got %v, want %v", contours[0], want)
	}
	for i := range want {
		if contours[0][i] != want[i] {
			t.Errorf("point %d: got %v, want %v", i, contours[0][i], want[i])
		}
	}
}

func TestFlattenSubpaths(t *testing.T) {
	cases := []struct {
		name  string
		path  pathBuilder
		sizes []int
	}{
		{"empty", newPath(), nil},
		{"lone move", newPath().M(1, 1), nil},
		{"lone moves", newPath().M(1, 1).M(2, 2).M(3, 3), nil},
		{"move then square", newPath().M(5, 5).M(0, 0).L(1, 0).L(1, 1).Z(), []int{3}},
		{"unclosed", newPath().M(0, 0).L(1, 0).L(1, 1), []int{3}},
		{"explicit closing point", newPath().M(0, 0).L(1, 0).L(1, 1).L(0, 0).Z(), []int{3}},
		{"two squares", newPath().
			M(0, 0).L(1, 0).L(1, 1).L(0, 1).Z().
			M(2, 0).L(3, 0).L(3, 1).L(2, 1).Z(), []int{4, 4}},
		{"repeated points", newPath().M(0, 0).L(0, 0).L(1, 0).L(1, 0).L(1, 1), []int{3}},
		{"segment", newPath().M(0, 0).L(1, 0).Z(), []int{2}},
		{"point", newPath().M(0, 0).L(0, 0).Z(), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			contours, err := Flatten(tc.path.Data, 0.25, 1)
			if err != nil {
				t.Fatal(err)
			}
			if len(contours) != len(tc.sizes) {
				t.Fatalf("got %d contours, want %d", len(contours), len(tc.sizes))
			}
			for i, c := range contours {
				if len(c) != tc.sizes[i] {
					t.Errorf("contour %d has %d points, want %d", i, len(c), tc.sizes[i])
				}
			}
		})
	}
}

func TestFlattenNil(t *testing.T) {
	contours, err := Flatten(nil, 0.25, 1)
	if err != nil || contours != nil {
		t.Errorf("got %v, %v, want nil, nil", contours, err)
	}
}

func TestFlattenErrors(t *testing.T) {
	cases := []struct {
		name      string
		path      pathBuilder
		tolerance float64
		scale     float64
		index     int   // expected PathError index, -1 for none
		want      error // expected sentinel
	}{
		{"line first", newPath().L(1, 1).L(2, 2), 0.25, 1, 0, ErrMissingMoveTo},
		{"curve first", newPath().C(1, 1, 2, 2, 3, 3), 0.25, 1, 0, ErrMissingMoveTo},
		{"close first", newPath().Z(), 0.25, 1, 0, ErrMissingMoveTo},
		{"line after close", newPath().M(0, 0).L(1, 0).L(1, 1).Z().L(5, 5), 0.25, 1, 4, ErrMissingMoveTo},
		{"close after close", newPath().M(0, 0).L(1, 0).L(1, 1).Z().Z().L(5, 5), 0.25, 1, 5, ErrMissingMoveTo},
		{"missing coords", newPath().M(0, 0).L(1, 0).add(path.CmdCubeTo), 0.25, 1, 2, ErrMissingCoords},
		{"missing move coords", newPath().add(path.CmdMoveTo), 0.25, 1, 0, ErrMissingCoords},
		{"short quad", newPath().M(0, 0).add(path.CmdQuadTo, 1, 1).Z(), 0.25, 1, 1, ErrMissingCoords},
		{"zero tolerance", newPath().M(0, 0).L(1, 0), 0, 1, -1, ErrInvalidTolerance},
		{"negative tolerance", newPath().M(0, 0).L(1, 0), -1, 1, -1, ErrInvalidTolerance},
		{"zero scale", newPath().M(0, 0).L(1, 0), 0.25, 0, -1, ErrInvalidTolerance},
		{"NaN scale", newPath().M(0, 0).L(1, 0), 0.25, math.NaN(), -1, ErrInvalidTolerance},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			contours, err := Flatten(tc.path.Data, tc.tolerance, tc.scale)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got error %v, want %v", err, tc.want)
			}
			if contours != nil {
				t.Errorf("got %d contours on error", len(contours))
			}
			var pathErr *PathError
			isPathErr := errors.As(err, &pathErr)
			if isPathErr != (tc.index >= 0) {
				t.Fatalf("PathError: got %t, want %t", isPathErr, tc.index >= 0)
			}
			if isPathErr && pathErr.Index != tc.index {
				t.Errorf("got index %d, want %d", pathErr.Index, tc.index)
			}
		})
	}
}

func TestFlattenRepeatedClose(t *testing.T) {
	square := newPath().M(0, 0).L(1, 0).L(1, 1).L(0, 1)
	twice := newPath().M(0, 0).L(1, 0).L(1, 1).L(0, 1).Z().Z()
	thenMove := newPath().M(0, 0).L(1, 0).L(1, 1).L(0, 1).Z().Z().M(5, 5).L(6, 5).L(6, 6).Z()

	want, err := Flatten(square.Data, 0.25, 1)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Flatten(twice.Data, 0.25, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || !slices.Equal(got[0], want[0]) {
		t.Errorf("got %v, want %v", got, want)
	}

	got, err = Flatten(thenMove.Data, 0.25, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("got %d contours, want 2", len(got))
	}
}

// TestFlattenCircle checks that the polyline stays within the tolerance
// of a circle.
func TestFlattenCircle(t *testing.T) {
	const r = 100
	// maximal radial error of the four-arc cubic approximation
	const arcError = 0.03

	prevCount := 0
	for _, tol := range []float64{2, 1, 0.5, 0.25, 0.125, 0.01} {
		contours, err := Flatten(circlePath(0, 0, r).Data, tol, 1)
		if err != nil {
			t.Fatal(err)
		}
		if len(contours) != 1 {
			t.Fatalf("tolerance %g: got %d contours", tol, len(contours))
		}
		c := contours[0]

		n := len(c)
		for i := range n {
			p, q := c[i], c[(i+1)%n]
			if d := math.Abs(p.Length() - r); d > arcError {
				t.Errorf("tolerance %g: point %v is %g away from the circle", tol, p, d)
			}
			m := mid(p, q)
			if d := r - m.Length(); d > tol+arcError {
				t.Errorf("tolerance %g: segment %v-%v deviates by %g", tol, p, q, d)
			}
		}

		if n < prevCount {
			t.Errorf("tolerance %g: %d points, fewer than %d at twice the tolerance", tol, n, prevCount)
		}
		prevCount = n

		if a := c.Area(); a <= 0 || a > math.Pi*(r+arcError)*(r+arcError) {
			t.Errorf("tolerance %g: area %g", tol, a)
		}
	}
}

func TestFlattenScale(t *testing.T) {
	p := circlePath(0, 0, 10).Data
	a, err := Flatten(p, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Flatten(p, 0.1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 1 || len(b) != 1 || len(a[0]) != len(b[0]) {
		t.Fatalf("different results for equivalent tolerance and scale")
	}
}

func TestFlattenQuad(t *testing.T) {
	// parabola y = x(2-x) for x in [0, 2]
	p := newPath().M(0, 0).Q(1, 2, 2, 0).Z()
	contours, err := Flatten(p.Data, 0.001, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(contours) != 1 || len(contours[0]) < 10 {
		t.Fatalf("got %v", contours)
	}
	for _, q := range contours[0] {
		if want := q.X * (2 - q.X); math.Abs(q.Y-want) > 1e-9 {
			t.Errorf("point %v not on the parabola", q)
		}
	}
	if a, want := contours[0].Area(), 4.0/3; math.Abs(math.Abs(a)-want) > 0.01 {
		t.Errorf("area %g, want %g", a, want)
	}
}

// TestFlattenDepthLimit checks that subdivision stops at the depth limit
// even if the requested tolerance cannot be reached.
func TestFlattenDepthLimit(t *testing.T) {
	p := newPath().M(0, 0).C(0, 1e6, 1e6, 1e6, 1e6, 0).Z()
	contours, err := Flatten(p.Data, 1e-12, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(contours) != 1 {
		t.Fatalf("got %d contours", len(contours))
	}
	if n := len(contours[0]); n > 1<<maxSubdivisionDepth+1 {
		t.Errorf("got %d points, more than the depth limit allows", n)
	}
}

func TestFlattenDegenerateCurve(t *testing.T) {
	// all control points coincide
	p := newPath().M(1, 1).C(1, 1, 1, 1, 1, 1).L(2, 1).L(2, 2).Z()
	contours, err := Flatten(p.Data, 0.25, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(contours) != 1 || len(contours[0]) != 3 {
		t.Errorf("got %v", contours)
	}
}

func TestFlattenerPool(t *testing.T) {
	pool := NewPool()
	f := NewFlattener(pool)
	for range 3 {
		if _, err := f.Flatten(circlePath(0, 0, 10).Data); err != nil {
			t.Fatal(err)
		}
	}
	if n := pool.Idle(); n != 2 {
		t.Errorf("pool holds %d buffers, want 2", n)
	}
}

func TestCubicSplit(t *testing.T) {
	c := cubic{
		p0: vec.Vec2{X: 0, Y: 0},
		p1: vec.Vec2{X: 1, Y: 3},
		p2: vec.Vec2{X: 4, Y: 3},
		p3: vec.Vec2{X: 5, Y: 0},
	}
	first, second := c.split()
	if first.p3 != second.p0 {
		t.Errorf("halves do not meet: %v != %v", first.p3, second.p0)
	}
	// B(1/2) = (P0 + 3 P1 + 3 P2 + P3) / 8
	want := vec.Vec2{X: (0 + 3 + 12 + 5) / 8.0, Y: (0 + 9 + 9 + 0) / 8.0}
	if first.p3 != want {
		t.Errorf("midpoint %v, want %v", first.p3, want)
	}
	if first.depth != 1 || second.depth != 1 {
		t.Errorf("depth not incremented")
	}
}

func TestDistToSegment(t *testing.T) {
	a, b := vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 0}
	cases := []struct {
		p    vec.Vec2
		want float64
	}{
		{vec.Vec2{X: 5, Y: 3}, 3},
		{vec.Vec2{X: -3, Y: 4}, 5},
		{vec.Vec2{X: 13, Y: -4}, 5},
		{vec.Vec2{X: 7, Y: 0}, 0},
	}
	for _, tc := range cases {
		if got := distToSegment(tc.p, a, b); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("distToSegment(%v) = %g, want %g", tc.p, got, tc.want)
		}
	}
	if got := distToSegment(vec.Vec2{X: 3, Y: 4}, a, a); math.Abs(got-5) > 1e-12 {
		t.Errorf("degenerate segment: got %g, want 5", got)
	}
}
