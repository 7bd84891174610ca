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

var degenerateCases = []TestCase{
	{
		// a lone MoveTo before the real subpath
		Name:   "lone_moveto",
		Path:   newPath().moveTo(5, 5).moveTo(10, 10).lineTo(54, 10).lineTo(32, 54).close().d,
		Width:  64,
		Height: 64,
		Area:   44 * 44 / 2,
	},
	{
		Name:   "line_only",
		Path:   newPath().moveTo(10, 10).lineTo(54, 54).close().d,
		Width:  64,
		Height: 64,
	},
	{
		// a zero-area spike next to a square
		Name: "spike",
		Path: newPath().
			rect(10, 10, 40, 40, false).
			moveTo(50, 10).lineTo(50, 30).lineTo(50, 54).close().d,
		Width:  64,
		Height: 64,
		Area:   30 * 30,
	},
	{
		Name:   "tiny",
		Path:   newPath().rect(32, 32, 32.001, 32.001, false).d,
		Width:  64,
		Height: 64,
		Area:   0.001 * 0.001,
	},
	{
		Name:   "empty",
		Path:   newPath().d,
		Width:  64,
		Height: 64,
	},
}
