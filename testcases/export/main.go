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

// Command export writes all test cases, together with the meshes built
// from them, to testdata/testcases.json.
package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/mesh"
	"seehuhn.de/go/mesh/testcases"
)

func main() {
	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	b := mesh.NewBuilder()
	m := &mesh.Mesh{}
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			b.Rule = meshRule(tc.Rule)
			if err := b.Build(tc.Path, m); err != nil {
				panic(fmt.Errorf("%s_%s: %w", category, tc.Name, err))
			}
			out.TestCases = append(out.TestCases, toJSON(category, tc, m))
		}
	}

	if err := os.MkdirAll("testdata", 0755); err != nil {
		panic(err)
	}
	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

// meshRule converts a test case fill rule to the mesh fill rule.
func meshRule(r testcases.FillRule) mesh.FillRule {
	if r == testcases.NonZero {
		return mesh.NonZero
	}
	return mesh.EvenOdd
}

type jsonTestCase struct {
	Name      string        `json:"name"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Path      []jsonSegment `json:"path"`
	FillRule  string        `json:"fill_rule"`
	Area      float64       `json:"area,omitempty"`
	Vertices  [][]float64   `json:"vertices"`
	Triangles [][3]uint32   `json:"triangles"`
}

type jsonSegment struct {
	Cmd string      `json:"cmd"`
	Pts [][]float64 `json:"pts"`
}

func toJSON(category string, tc testcases.TestCase, m *mesh.Mesh) jsonTestCase {
	jtc := jsonTestCase{
		Name:      category + "_" + tc.Name,
		Width:     tc.Width,
		Height:    tc.Height,
		Path:      pathToJSON(tc.Path),
		FillRule:  meshRule(tc.Rule).String(),
		Area:      tc.Area,
		Vertices:  make([][]float64, len(m.Vertices)),
		Triangles: slices.Clone(m.Triangles),
	}
	for i, v := range m.Vertices {
		jtc.Vertices[i] = []float64{v.X, v.Y}
	}
	return jtc
}

func pathToJSON(p *path.Data) []jsonSegment {
	segs := []jsonSegment{}
	for cmd, pts := range p.Iter() {
		seg := jsonSegment{Pts: make([][]float64, len(pts))}
		switch cmd {
		case path.CmdMoveTo:
			seg.Cmd = "M"
		case path.CmdLineTo:
			seg.Cmd = "L"
		case path.CmdQuadTo:
			seg.Cmd = "Q"
		case path.CmdCubeTo:
			seg.Cmd = "C"
		case path.CmdClose:
			seg.Cmd = "Z"
		}
		for i, pt := range pts {
			seg.Pts[i] = []float64{pt.X, pt.Y}
		}
		segs = append(segs, seg)
	}
	return segs
}
