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

// Package testcases holds named paths for exercising the mesh builder.
//
// All coordinates use a y-up coordinate system with the origin in the
// lower left corner of a Width×Height canvas.
package testcases

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// TestCase defines a single shape.
type TestCase struct {
	Name   string     // lowercase a-z, 0-9 and _ only
	Path   *path.Data // the shape to triangulate
	Width  int        // canvas width in pixels
	Height int        // canvas height in pixels
	Rule   FillRule   // rule which defines the interior of Path

	// Area is the exact area of the interior, or 0 if there is no closed
	// form.  Shapes with curves have no closed form, since the result
	// depends on the flattening tolerance.
	Area float64

	// SelfIntersecting is set for shapes whose contours cross.  For these,
	// the triangulation is not required to follow all contour edges.
	SelfIntersecting bool
}

// FillRule specifies the rule for determining interior points.
type FillRule int

const (
	EvenOdd FillRule = iota
	NonZero
)

// builder appends commands to a path.
type builder struct {
	d *path.Data
}

func newPath() builder {
	return builder{d: &path.Data{}}
}

func (b builder) moveTo(x, y float64) builder {
	b.d.Cmds = append(b.d.Cmds, path.CmdMoveTo)
	b.d.Coords = append(b.d.Coords, vec.Vec2{X: x, Y: y})
	return b
}

func (b builder) lineTo(x, y float64) builder {
	b.d.Cmds = append(b.d.Cmds, path.CmdLineTo)
	b.d.Coords = append(b.d.Coords, vec.Vec2{X: x, Y: y})
	return b
}

func (b builder) quadTo(x1, y1, x, y float64) builder {
	b.d.Cmds = append(b.d.Cmds, path.CmdQuadTo)
	b.d.Coords = append(b.d.Coords, vec.Vec2{X: x1, Y: y1}, vec.Vec2{X: x, Y: y})
	return b
}

func (b builder) cubeTo(c1, c2, p vec.Vec2) builder {
	b.d.Cmds = append(b.d.Cmds, path.CmdCubeTo)
	b.d.Coords = append(b.d.Coords, c1, c2, p)
	return b
}

func (b builder) close() builder {
	b.d.Cmds = append(b.d.Cmds, path.CmdClose)
	return b
}

// rect adds a closed axis-aligned rectangle.  The rectangle is
// counter-clockwise unless cw is set.
func (b builder) rect(x0, y0, x1, y1 float64, cw bool) builder {
	if cw {
		return b.moveTo(x0, y0).lineTo(x0, y1).lineTo(x1, y1).lineTo(x1, y0).close()
	}
	return b.moveTo(x0, y0).lineTo(x1, y0).lineTo(x1, y1).lineTo(x0, y1).close()
}

// circle adds a counter-clockwise circle made of four cubic arcs.
func (b builder) circle(cx, cy, r float64) builder {
	k := r * kappa
	b = b.moveTo(cx+r, cy)
	b = b.cubeTo(pt(cx+r, cy+k), pt(cx+k, cy+r), pt(cx, cy+r))
	b = b.cubeTo(pt(cx-k, cy+r), pt(cx-r, cy+k), pt(cx-r, cy))
	b = b.cubeTo(pt(cx-r, cy-k), pt(cx-k, cy-r), pt(cx, cy-r))
	b = b.cubeTo(pt(cx+k, cy-r), pt(cx+r, cy-k), pt(cx+r, cy))
	return b.close()
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// kappa is the control point distance for approximating a quarter circle
// of radius 1 by a cubic Bézier curve.
const kappa = 0.5522847498307936
