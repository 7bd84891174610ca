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

// Command genpdf draws the mesh of every test case for visual
// inspection.  It creates one PDF per test case, showing the source path
// in grey with the triangle edges on top, and renders them to PNGs using
// Ghostscript.
package main

import (
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/mesh"
	"seehuhn.de/go/mesh/testcases"
)

const outDir = "testdata/meshes"

func main() {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		panic(err)
	}

	b := mesh.NewBuilder()
	b.Delaunay = true
	m := &mesh.Mesh{}
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(outDir, name+".pdf")
			pngPath := filepath.Join(outDir, name+".png")

			b.Rule = mesh.EvenOdd
			if tc.Rule == testcases.NonZero {
				b.Rule = mesh.NonZero
			}
			if err := b.Build(tc.Path, m); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}

			if err := generatePDF(tc, m, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if err := renderPNG(pdfPath, pngPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func generatePDF(tc testcases.TestCase, m *mesh.Mesh, pdfPath string) error {
	// Page size in points (1 point = 1 pixel at 72 DPI).  Test cases use
	// a y-up coordinate system, like PDF.
	paper := &pdf.Rectangle{
		URx: float64(tc.Width) * scale,
		URy: float64(tc.Height) * scale,
	}

	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}
	page.Transform(matrix.Matrix{scale, 0, 0, scale, 0, 0})

	// source path
	page.SetFillColor(color.DeviceGray(0.8))
	for cmd, pts := range tc.Path.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			page.ClosePath()
		}
	}
	if len(tc.Path.Cmds) > 0 {
		if tc.Rule == testcases.EvenOdd {
			page.FillEvenOdd()
		} else {
			page.Fill()
		}
	}

	// mesh edges
	if len(m.Triangles) > 0 {
		page.SetStrokeColor(color.DeviceGray(0))
		page.SetLineWidth(0.5 / scale)
		page.SetLineJoin(graphics.LineJoinRound)
		for _, t := range m.Triangles {
			a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
			page.MoveTo(a.X, a.Y)
			page.LineTo(b.X, b.Y)
			page.LineTo(c.X, c.Y)
			page.ClosePath()
		}
		page.Stroke()
	}

	return page.Close()
}

func renderPNG(pdfPath, pngPath string) error {
	// -sDEVICE=pnggray: 8-bit grayscale
	// -r72: 72 DPI (1 point = 1 pixel)
	// -dGraphicsAlphaBits=4: 4x supersampling for anti-aliasing
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=pnggray",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// scale is the number of PDF points per canvas pixel.
const scale = 8
