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
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Contour is a closed polyline.  The last point connects back to the
// first; the closing point is not repeated.
type Contour []vec.Vec2

// Area returns the signed area enclosed by the contour.  The area is
// positive for counter-clockwise contours in a y-up coordinate system.
func (c Contour) Area() float64 {
	n := len(c)
	if n < 3 {
		return 0
	}
	var sum float64
	prev := c[n-1]
	for _, p := range c {
		sum += cross(prev, p)
		prev = p
	}
	return sum / 2
}

// Winding returns the winding number of the contour around p.
// Points exactly on the contour may be counted on either side.
func (c Contour) Winding(p vec.Vec2) int {
	n := len(c)
	if n < 3 {
		return 0
	}
	wn := 0
	a := c[n-1]
	for _, b := range c {
		if a.Y <= p.Y {
			if b.Y > p.Y && orient(a, b, p) > 0 {
				wn++
			}
		} else if b.Y <= p.Y && orient(a, b, p) < 0 {
			wn--
		}
		a = b
	}
	return wn
}

// Bounds returns the smallest rectangle containing all points of the
// contour.  The result is the zero rectangle for an empty contour.
func (c Contour) Bounds() rect.Rect {
	if len(c) == 0 {
		return rect.Rect{}
	}
	b := rect.Rect{LLx: c[0].X, LLy: c[0].Y, URx: c[0].X, URy: c[0].Y}
	for _, p := range c[1:] {
		b.LLx = min(b.LLx, p.X)
		b.LLy = min(b.LLy, p.Y)
		b.URx = max(b.URx, p.X)
		b.URy = max(b.URy, p.Y)
	}
	return b
}

// cross returns the z-component of the cross product a × b.
func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// orient returns twice the signed area of the triangle abc.  The result
// is positive if c lies to the left of the directed line a→b.
func orient(a, b, c vec.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
