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

// Package mesh converts vector paths into triangle meshes.
//
// A path is first flattened into closed polygons ([Flattener]) and the
// polygons are then triangulated ([Triangulator]).  The triangulator can
// fill the interior of the path under the even-odd or non-zero rule, the
// area between the path and its convex hull, and the area between the
// convex hull and a surrounding rectangle.  [Builder] runs both steps with
// a shared [Pool] of scratch buffers, so that repeated builds do not
// allocate once the buffers have grown.
//
// [Target] converts a mesh into the interleaved vertex and index buffers
// used by typical GPU renderers.
package mesh
