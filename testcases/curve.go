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

var curveCases = []TestCase{
	{
		Name:   "circle",
		Path:   newPath().circle(32, 32, 24).d,
		Width:  64,
		Height: 64,
	},
	{
		Name:   "donut",
		Path:   newPath().circle(32, 32, 26).circle(32, 32, 12).d,
		Width:  64,
		Height: 64,
	},
	{
		// a parabolic segment: area is 2/3 of base times height
		Name:   "quad_bump",
		Path:   newPath().moveTo(8, 8).lineTo(56, 8).quadTo(32, 80, 8, 8).close().d,
		Width:  64,
		Height: 64,
	},
	{
		Name:   "wave",
		Path:   wave(64, 64, 0.5, 0.35, 0.25, 0.1),
		Width:  64,
		Height: 64,
	},
	{
		Name:   "wave_flat",
		Path:   wave(64, 64, 0.3, 0.6, 0.08, 0.05),
		Width:  64,
		Height: 64,
	},
}

// wave builds the silhouette of a sliding panel with a drop-shaped bulge
// on its left edge.  The panel covers a width×height region, extended
// beyond the top and bottom edge.  The remaining arguments are fractions
// of the panel size: the vertical position of the bulge, its horizontal
// and vertical radius, and the width of the strip on the right which is
// left uncovered.
func wave(width, height, centerY, horRadius, vertRadius, sideWidth float64) *path.Data {
	centerY *= height
	horRadius *= width
	vertRadius *= height
	sideWidth *= width

	maskWidth := width - sideWidth
	curveStartY := centerY + vertRadius
	at := func(h, v float64) (x, y float64) {
		return maskWidth - horRadius*h, curveStartY - vertRadius*v
	}

	b := newPath().
		moveTo(maskWidth-sideWidth, -2*vertRadius).
		lineTo(-horRadius-sideWidth, -2*vertRadius).
		lineTo(-horRadius-sideWidth, height+2*vertRadius).
		lineTo(maskWidth, height+2*vertRadius).
		lineTo(maskWidth, curveStartY)
	for _, seg := range waveSegments {
		b = b.cubeTo(pt(at(seg[2], seg[3])), pt(at(seg[4], seg[5])), pt(at(seg[0], seg[1])))
	}
	return b.lineTo(maskWidth, -2*vertRadius).close().d
}

// waveSegments lists the cubic arcs of the bulge, as offsets from the
// start of the curve in units of the horizontal and vertical radius.
// Each row gives the end point, then the two control points.
var waveSegments = [][6]float64{
	{0.1561501458, 0.3322374268, 0, 0.1346194756, 0.05341339583, 0.2412779634},
	{0.5012484792, 0.5350576951, 0.2361659167, 0.4030805244, 0.3305285625, 0.4561193293},
	{0.574934875, 0.5689655122, 0.515878125, 0.5418222317, 0.5664134792, 0.5650349878},
	{0.8774032292, 0.7399037439, 0.7283715208, 0.6397387195, 0.8086618958, 0.6833456585},
	{1, 1, 0.9653464583, 0.8122605122, 1, 0.8936183659},
	{0.8608411667, 1.270484439, 1, 1.100142878, 0.9595746667, 1.1887991951},
	{0.5291125625, 1.4665102805, 0.7852123333, 1.3330544756, 0.703382125, 1.3795848049},
	{0.5015305417, 1.4802616098, 0.5241858333, 1.4689677195, 0.505739125, 1.4781625854},
	{0.1541165417, 1.687403, 0.3187486042, 1.5714239024, 0.2332057083, 1.6204116463},
	{0, 2, 0.0509933125, 1.774752061, 0, 1.8709256829},
}
