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

import "seehuhn.de/go/geom/path"

var basicCases = []TestCase{
	{
		Name:   "square",
		Path:   newPath().rect(10, 10, 54, 54, false).d,
		Width:  64,
		Height: 64,
		Area:   44 * 44,
	},
	{
		Name:   "square_cw",
		Path:   newPath().rect(10, 10, 54, 54, true).d,
		Width:  64,
		Height: 64,
		Area:   44 * 44,
	},
	{
		Name:   "triangle",
		Path:   newPath().moveTo(10, 10).lineTo(54, 10).lineTo(32, 54).close().d,
		Width:  64,
		Height: 64,
		Area:   44 * 44 / 2,
	},
	{
		Name: "ring",
		Path: newPath().
			rect(8, 8, 56, 56, false).
			rect(20, 20, 44, 44, true).d,
		Width:  64,
		Height: 64,
		Area:   48*48 - 24*24,
	},
	{
		Name:   "comb",
		Path:   comb(),
		Width:  64,
		Height: 64,
		Area:   48*48 - 2*6*36,
	},
	{
		// two squares sharing a corner point
		Name: "touching",
		Path: newPath().
			rect(8, 8, 32, 32, false).
			rect(32, 32, 56, 56, false).d,
		Width:  64,
		Height: 64,
		Area:   2 * 24 * 24,
	},
	{
		// two rectangles sharing an edge
		Name: "shared_edge",
		Path: newPath().
			rect(8, 16, 32, 48, false).
			rect(32, 16, 56, 48, false).d,
		Width:  64,
		Height: 64,
		Area:   2 * 24 * 32,
	},
	{
		// extra points in the middle of edges
		Name: "collinear",
		Path: newPath().moveTo(10, 10).lineTo(32, 10).lineTo(54, 10).
			lineTo(54, 32).lineTo(54, 54).lineTo(21, 54).lineTo(10, 54).
			lineTo(10, 40).close().d,
		Width:  64,
		Height: 64,
		Area:   44 * 44,
	},
	{
		// repeated points, including an explicit closing point
		Name: "duplicates",
		Path: newPath().moveTo(10, 10).lineTo(10, 10).lineTo(54, 10).
			lineTo(54, 10).lineTo(54, 54).lineTo(10, 54).lineTo(10, 10).
			close().d,
		Width:  64,
		Height: 64,
		Area:   44 * 44,
	},
}

// comb builds a square with two slots cut into it from the top.
func comb() *path.Data {
	return newPath().
		moveTo(8, 8).lineTo(56, 8).lineTo(56, 56).
		lineTo(44, 56).lineTo(44, 20).lineTo(38, 20).lineTo(38, 56).
		lineTo(26, 56).lineTo(26, 20).lineTo(20, 20).lineTo(20, 56).
		lineTo(8, 56).close().d
}
