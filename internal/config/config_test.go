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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/mesh"
)

func TestResolveDefaults(t *testing.T) {
	job, err := Parse([]byte("path: M 0 0 L 10 0 L 0 10 Z\n"))
	if err != nil {
		t.Fatal(err)
	}
	res, err := job.Resolve()
	if err != nil {
		t.Fatal(err)
	}

	if res.Tolerance != defaultTolerance || res.Scale != 1 {
		t.Errorf("tolerance %g, scale %g", res.Tolerance, res.Scale)
	}
	if !res.Interior || res.Exterior || res.Hull || res.Delaunay {
		t.Errorf("regions %+v", res)
	}
	if res.Rule != mesh.EvenOdd {
		t.Errorf("rule %v", res.Rule)
	}
	if res.Width != defaultSize || res.Height != defaultSize {
		t.Errorf("size %dx%d", res.Width, res.Height)
	}
	if res.Name != "path" || len(res.Path.Cmds) != 4 {
		t.Errorf("name %q, %d commands", res.Name, len(res.Path.Cmds))
	}
}

func TestResolveShape(t *testing.T) {
	data := `
tolerance: 0.5
triangulation:
  delaunay: true
  interior: false
  hull: true
shape: curve_wave
output:
  png: wave.png
`
	job, err := Parse([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	res, err := job.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if res.Tolerance != 0.5 || !res.Delaunay || res.Interior || !res.Hull {
		t.Errorf("unexpected settings %+v", res)
	}
	if res.Path == nil || len(res.Path.Cmds) == 0 {
		t.Error("shape path is empty")
	}
	if res.Width != 64*previewScale || res.Height != 64*previewScale {
		t.Errorf("size %dx%d", res.Width, res.Height)
	}
	if res.PNG != "wave.png" || res.JSON != "" {
		t.Errorf("outputs %q %q", res.PNG, res.JSON)
	}
}

func TestResolveShapeRule(t *testing.T) {
	cases := []struct {
		data string
		want mesh.FillRule
	}{
		{"shape: nested_nonzero", mesh.NonZero},
		{"shape: nested_evenodd", mesh.EvenOdd},
		{"shape: nested_nonzero\ntriangulation: {rule: evenodd}", mesh.EvenOdd},
		{"shape: square\ntriangulation: {rule: Non-Zero}", mesh.NonZero},
	}
	for _, tc := range cases {
		job, err := Parse([]byte(tc.data))
		if err != nil {
			t.Fatal(err)
		}
		res, err := job.Resolve()
		if err != nil {
			t.Fatalf("%q: %v", tc.data, err)
		}
		if res.Rule != tc.want {
			t.Errorf("%q: rule %v, want %v", tc.data, res.Rule, tc.want)
		}
	}
}

func TestResolveErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
		msg  string
	}{
		{"no geometry", "tolerance: 1", "shape or a path"},
		{"both", "shape: square\npath: M 0 0 L 1 0 L 0 1 Z", "both"},
		{"unknown shape", "shape: dodecahedron", "unknown shape"},
		{"bad rule", "shape: square\ntriangulation: {rule: winding}", "unknown fill rule"},
		{"bad path", "path: M 0 0 X 1 1", "failed to parse path"},
		{"bad size", "shape: square\noutput: {width: -1}", "invalid output size"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			job, err := Parse([]byte(tc.data))
			if err != nil {
				t.Fatal(err)
			}
			_, err = job.Resolve()
			if err == nil || !strings.Contains(err.Error(), tc.msg) {
				t.Errorf("got error %v, want %q", err, tc.msg)
			}
		})
	}
}

func TestResolveInvalidTolerance(t *testing.T) {
	for _, data := range []string{"shape: square\ntolerance: -1", "shape: square\nscale: -2"} {
		job, err := Parse([]byte(data))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := job.Resolve(); !errors.Is(err, mesh.ErrInvalidTolerance) {
			t.Errorf("%q: got error %v", data, err)
		}
	}
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "job.yaml")
	if err := os.WriteFile(file, []byte("shape: circle\noutput: {json: out.json}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := Resolve(file)
	if err != nil {
		t.Fatal(err)
	}
	if res.Name != "circle" || res.JSON != "out.json" {
		t.Errorf("got %+v", res)
	}

	if _, err := Resolve(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got error %v", err)
	}
	if _, err := Parse([]byte("tolerance: [1, 2")); err == nil {
		t.Error("malformed yaml accepted")
	}
}

func TestParsePath(t *testing.T) {
	M, L, Q, C, Z := path.CmdMoveTo, path.CmdLineTo, path.CmdQuadTo, path.CmdCubeTo, path.CmdClose

	cases := []struct {
		name   string
		d      string
		cmds   []path.Command
		coords []vec.Vec2
	}{
		{
			name:   "absolute",
			d:      "M 0 0 L 10 0 L 10 10 Z",
			cmds:   []path.Command{M, L, L, Z},
			coords: []vec.Vec2{{}, {X: 10}, {X: 10, Y: 10}},
		},
		{
			name:   "relative",
			d:      "m1,1 l2,0 l0,2 z",
			cmds:   []path.Command{M, L, L, Z},
			coords: []vec.Vec2{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 3}},
		},
		{
			name:   "implicit lineto",
			d:      "M0 0 5 0 5 5",
			cmds:   []path.Command{M, L, L},
			coords: []vec.Vec2{{}, {X: 5}, {X: 5, Y: 5}},
		},
		{
			name:   "repeated command",
			d:      "M0 0 L1 0 2 0 3 1",
			cmds:   []path.Command{M, L, L, L},
			coords: []vec.Vec2{{}, {X: 1}, {X: 2}, {X: 3, Y: 1}},
		},
		{
			name:   "horizontal and vertical",
			d:      "M1 2 H5 V7 h-1 v-2",
			cmds:   []path.Command{M, L, L, L, L},
			coords: []vec.Vec2{{X: 1, Y: 2}, {X: 5, Y: 2}, {X: 5, Y: 7}, {X: 4, Y: 7}, {X: 4, Y: 5}},
		},
		{
			name:   "curves",
			d:      "M0 0 Q1 1 2 0 c0 1 1 1 1 0",
			cmds:   []path.Command{M, Q, C},
			coords: []vec.Vec2{{}, {X: 1, Y: 1}, {X: 2}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 3}},
		},
		{
			name:   "drawing after close",
			d:      "M1 1 L2 1 L2 2 Z L0 1 L1 0 Z",
			cmds:   []path.Command{M, L, L, Z, M, L, L, Z},
			coords: []vec.Vec2{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 1}},
		},
		{
			name:   "relative move after close",
			d:      "M1 1 L2 1 L2 2 z m1 0 l1 0 l0 1 z",
			cmds:   []path.Command{M, L, L, Z, M, L, L, Z},
			coords: []vec.Vec2{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 2}},
		},
		{
			name:   "compact numbers",
			d:      "M.5-.5L1e1,2E-1-3.5.25",
			cmds:   []path.Command{M, L, L},
			coords: []vec.Vec2{{X: 0.5, Y: -0.5}, {X: 10, Y: 0.2}, {X: -3.5, Y: 0.25}},
		},
		{
			name: "empty",
			d:    "  ",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := ParsePath(tc.d)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(p.Cmds, tc.cmds) {
				t.Errorf("commands %v, want %v", p.Cmds, tc.cmds)
			}
			if len(p.Coords) != len(tc.coords) {
				t.Fatalf("coordinates %v, want %v", p.Coords, tc.coords)
			}
			for i := range tc.coords {
				if p.Coords[i] != tc.coords[i] {
					t.Errorf("point %d: got %v, want %v", i, p.Coords[i], tc.coords[i])
				}
			}
		})
	}
}

func TestParsePathErrors(t *testing.T) {
	cases := []string{
		"0 0 L 1 1",
		"L 1 1",
		"M 0 0 L 1",
		"M 0 0 L 1 Z",
		"M 0 0 A 1 1 0 0 0 2 2",
		"M 0 0 L 1 1 Z 2 2",
		"M 0 0 L 1 # 2",
		"M 0 0 L 1..2 3",
	}
	for _, d := range cases {
		if _, err := ParsePath(d); err == nil {
			t.Errorf("%q: no error", d)
		}
	}
}

// TestParsePathMesh checks that parsed paths can be meshed.
func TestParsePathMesh(t *testing.T) {
	p, err := ParsePath("M 0 0 L 10 0 C 10 5 5 10 0 10 Z")
	if err != nil {
		t.Fatal(err)
	}
	m := &mesh.Mesh{}
	if err := mesh.NewBuilder().Build(p, m); err != nil {
		t.Fatal(err)
	}
	if err := m.Validate(); err != nil {
		t.Error(err)
	}
	if a := m.Area(); a < 50 || a > 100 {
		t.Errorf("area %g out of range", a)
	}
}
