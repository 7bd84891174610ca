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

package testcases

import (
	"math"

	"seehuhn.de/go/geom/path"
)

var ruleCases = []TestCase{
	{
		Name:   "nested_evenodd",
		Path:   nestedSquares(),
		Width:  64,
		Height: 64,
		Rule:   EvenOdd,
		Area:   48*48 - 32*32 + 16*16,
	},
	{
		Name:   "nested_nonzero",
		Path:   nestedSquares(),
		Width:  64,
		Height: 64,
		Rule:   NonZero,
		Area:   48 * 48,
	},
	{
		// the inner square runs clockwise, so it is a hole under both rules
		Name: "hole_nonzero",
		Path: newPath().
			rect(8, 8, 56, 56, false).
			rect(20, 20, 44, 44, true).d,
		Width:  64,
		Height: 64,
		Rule:   NonZero,
		Area:   48*48 - 24*24,
	},
	{
		// two counter-clockwise squares inside a third one
		Name: "islands_nonzero",
		Path: newPath().
			rect(4, 4, 60, 60, false).
			rect(12, 12, 28, 52, false).
			rect(36, 12, 52, 52, false).d,
		Width:  64,
		Height: 64,
		Rule:   NonZero,
		Area:   56 * 56,
	},
	{
		Name:             "star_evenodd",
		Path:             fivePointStar(32, 32, 25),
		Width:            64,
		Height:           64,
		Rule:             EvenOdd,
		SelfIntersecting: true,
	},
	{
		Name:             "star_nonzero",
		Path:             fivePointStar(32, 32, 25),
		Width:            64,
		Height:           64,
		Rule:             NonZero,
		SelfIntersecting: true,
	},
}

// nestedSquares builds three concentric counter-clockwise squares.
func nestedSquares() *path.Data {
	return newPath().
		rect(8, 8, 56, 56, false).
		rect(16, 16, 48, 48, false).
		rect(24, 24, 40, 40, false).d
}

// fivePointStar builds a five-pointed star (self-intersecting).
func fivePointStar(cx, cy, r float64) *path.Data {
	var x, y [5]float64
	for i := range 5 {
		angle := float64(i)*2*math.Pi/5 + math.Pi/2
		x[i] = cx + r*math.Cos(angle)
		y[i] = cy + r*math.Sin(angle)
	}

	// draw star: 0 -> 2 -> 4 -> 1 -> 3 -> 0
	b := newPath().moveTo(x[0], y[0])
	for _, i := range []int{2, 4, 1, 3} {
		b = b.lineTo(x[i], y[i])
	}
	return b.close().d
}
