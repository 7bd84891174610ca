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

// Command meshgen triangulates a shape described by a YAML job file.
//
// Usage:
//
//	meshgen [-v] job.yaml
//
// The job selects a built-in shape or gives SVG path data, sets the
// flattening and triangulation parameters, and names the output files.
// The mesh can be written as JSON vertex and index buffers, as a PNG
// coverage image and as a PDF wireframe.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	imgcolor "image/color"
	"image/png"
	"log"
	"log/slog"
	"os"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/mesh"
	"seehuhn.de/go/mesh/coverage"
	"seehuhn.de/go/mesh/internal/config"
)

func main() {
	verbose := flag.Bool("v", false, "log diagnostics to stderr")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-v] job.yaml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if *verbose {
		mesh.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(flag.Arg(0)); err != nil {
		log.Fatal(err)
	}
}

func run(jobFile string) error {
	job, err := config.Resolve(jobFile)
	if err != nil {
		return err
	}

	b := mesh.NewBuilder()
	b.Tolerance = job.Tolerance
	b.Scale = job.Scale
	b.Delaunay = job.Delaunay
	b.Interior = job.Interior
	b.Exterior = job.Exterior
	b.Hull = job.Hull
	b.Rule = job.Rule

	m := &mesh.Mesh{}
	if err := b.Build(job.Path, m); err != nil {
		return fmt.Errorf("%s: %w", job.Name, err)
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%s: %w", job.Name, err)
	}
	mesh.Logger().Info("built mesh",
		"shape", job.Name,
		"vertices", len(m.Vertices),
		"triangles", len(m.Triangles),
		"area", m.Area())

	fit := fitTransform(m.Bounds(), job.Width, job.Height)

	if job.JSON != "" {
		if err := writeJSON(job.JSON, job.Name, m, fit); err != nil {
			return err
		}
	}
	if job.PNG != "" {
		if err := writePNG(job.PNG, m, fit, job.Width, job.Height); err != nil {
			return err
		}
	}
	if job.PDF != "" {
		if err := writePDF(job.PDF, m, fit, job.Width, job.Height); err != nil {
			return err
		}
	}
	return nil
}

// fitTransform maps the rectangle b into a width×height image with the
// y axis pointing down, preserving the aspect ratio and leaving a margin.
func fitTransform(b rect.Rect, width, height int) matrix.Matrix {
	w, h := b.URx-b.LLx, b.URy-b.LLy
	s := 1.0
	if w > 0 && h > 0 {
		s = (1 - 2*margin) * min(float64(width)/w, float64(height)/h)
	}
	tx := (float64(width) - s*w) / 2
	ty := (float64(height) - s*h) / 2
	return matrix.Matrix{s, 0, 0, -s, tx - s*b.LLx, float64(height) - ty + s*b.LLy}
}

type jsonMesh struct {
	Name     string       `json:"name"`
	Area     float64      `json:"area"`
	Vertices [][2]float32 `json:"vertices"`
	Colors   [][4]uint8   `json:"colors"`
	Indices  []uint32     `json:"indices"`
}

func writeJSON(fname, name string, m *mesh.Mesh, fit matrix.Matrix) error {
	target := mesh.Target{
		Transform: fit,
		Color:     imgcolor.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
	verts, idx := target.Append(nil, []uint32{}, m)

	out := jsonMesh{
		Name:     name,
		Area:     m.Area(),
		Vertices: make([][2]float32, len(verts)),
		Colors:   make([][4]uint8, len(verts)),
		Indices:  idx,
	}
	for i, v := range verts {
		out.Vertices[i] = [2]float32{v.X, v.Y}
		out.Colors[i] = [4]uint8{v.Color.R, v.Color.G, v.Color.B, v.Color.A}
	}

	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("failed to create JSON output: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		f.Close()
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	return f.Close()
}

func writePNG(fname string, m *mesh.Mesh, fit matrix.Matrix, width, height int) error {
	img := image.NewGray(image.Rect(0, 0, width, height))
	r := coverage.NewRasteriser(rect.Rect{URx: float64(width), URy: float64(height)})
	r.CTM = fit
	r.Mesh(m, coverage.Gray(img))

	f, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("failed to create PNG output: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to write PNG output: %w", err)
	}
	return f.Close()
}

func writePDF(fname string, m *mesh.Mesh, fit matrix.Matrix, width, height int) error {
	paper := &pdf.Rectangle{URx: float64(width), URy: float64(height)}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return fmt.Errorf("failed to create PDF output: %w", err)
	}

	// PDF has the y axis pointing up; undo the flip of fit.
	s := fit[0]
	page.Transform(matrix.Matrix{s, 0, 0, s, fit[4], float64(height) - fit[5]})

	if len(m.Triangles) > 0 {
		page.SetFillColor(color.DeviceGray(0.85))
		page.SetStrokeColor(color.DeviceGray(0))
		page.SetLineWidth(0.5 / s)
		page.SetLineJoin(graphics.LineJoinRound)
		drawTriangles(page, m)
		page.Fill()
		drawTriangles(page, m)
		page.Stroke()
	}

	return page.Close()
}

func drawTriangles(page *document.Page, m *mesh.Mesh) {
	for _, t := range m.Triangles {
		a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
		page.MoveTo(a.X, a.Y)
		page.LineTo(b.X, b.Y)
		page.LineTo(c.X, c.Y)
		page.ClosePath()
	}
}

// margin is the fraction of the image size left empty on each side.
const margin = 0.05
