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

package coverage

import "image"

// Gray returns an emit function which stores coverage values in img,
// clamped to [0, 1] and scaled to the range 0-255.  Rows and columns are
// device pixel coordinates.
func Gray(img *image.Gray) func(y, xMin int, coverage []float32) {
	return func(y, xMin int, coverage []float32) {
		for i, c := range coverage {
			x := xMin + i
			if !(image.Point{X: x, Y: y}).In(img.Rect) {
				continue
			}
			c = min(max(c, 0), 1)
			img.Pix[img.PixOffset(x, y)] = uint8(c*255 + 0.5)
		}
	}
}
