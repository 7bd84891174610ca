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

package mesh

import (
	"errors"
	"math"
	"slices"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/mesh/testcases"
)

func TestBuildError(t *testing.T) {
	b := NewBuilder()
	m := &Mesh{
		Vertices:  []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		Triangles: [][3]uint32{{0, 1, 2}},
	}
	err := b.Build(newPath().L(1, 1).L(2, 0).Data, m)
	if !errors.Is(err, ErrMissingMoveTo) {
		t.Fatalf("got error %v, want ErrMissingMoveTo", err)
	}
	if len(m.Vertices) != 0 || len(m.Triangles) != 0 {
		t.Errorf("mesh not cleared after error")
	}

	b.Tolerance = 0
	err = b.Build(circlePath(0, 0, 1).Data, m)
	if !errors.Is(err, ErrInvalidTolerance) {
		t.Errorf("got error %v, want ErrInvalidTolerance", err)
	}
}

func TestBuildNil(t *testing.T) {
	b := NewBuilder()
	m := &Mesh{}
	if err := b.Build(nil, m); err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != 0 || len(m.Triangles) != 0 {
		t.Errorf("got %d vertices and %d triangles for nil path",
			len(m.Vertices), len(m.Triangles))
	}
}

// TestBuildWave builds the sliding panel shape with all three regions,
// Delaunay refinement and a coarse tolerance.
func TestBuildWave(t *testing.T) {
	var wave testcases.TestCase
	for _, tc := range testcases.All["curve"] {
		if tc.Name == "wave" {
			wave = tc
		}
	}
	if wave.Path == nil {
		t.Fatal("wave fixture not found")
	}

	b := NewBuilder()
	b.Tolerance = 0.5
	b.Delaunay = true
	b.Interior = true
	b.Hull = true
	b.Exterior = true

	m := &Mesh{}
	if err := b.Build(wave.Path, m); err != nil {
		t.Fatal(err)
	}
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}

	// all three regions together cover the full synthetic box
	bounds := m.Bounds()
	boxArea := (bounds.URx - bounds.LLx) * (bounds.URy - bounds.LLy)
	if a := m.Area(); math.Abs(a-boxArea) > 1e-9*boxArea {
		t.Errorf("area %g, want %g", a, boxArea)
	}

	// rebuilding with the same builder gives the same mesh
	verts := slices.Clone(m.Vertices)
	tris := slices.Clone(m.Triangles)
	if err := b.Build(wave.Path, m); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(verts, m.Vertices) || !slices.Equal(tris, m.Triangles) {
		t.Error("second build differs from the first")
	}
}

func TestBuildMatchesSteps(t *testing.T) {
	p := circlePath(10, 10, 5).Data

	b := NewBuilder()
	b.Delaunay = true
	m1 := &Mesh{}
	if err := b.Build(p, m1); err != nil {
		t.Fatal(err)
	}

	contours, err := Flatten(p, defaultTolerance, 1)
	if err != nil {
		t.Fatal(err)
	}
	tr := NewTriangulator(nil)
	tr.Delaunay = true
	m2 := &Mesh{}
	tr.Triangulate(contours, m2)

	if !slices.Equal(m1.Vertices, m2.Vertices) || !slices.Equal(m1.Triangles, m2.Triangles) {
		t.Error("Build differs from Flatten followed by Triangulate")
	}
}

func TestSetLoggerNil(t *testing.T) {
	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger() returned nil")
	}
	// must not panic
	Logger().Info("discarded")
}

func TestBuilderEpsilon(t *testing.T) {
	// two squares whose corners almost touch
	p := newPath().
		M(0, 0).L(1, 0).L(1, 1).L(0, 1).Z().
		M(1.01, 1).L(2, 1).L(2, 2).L(1, 2).Z()

	b := NewBuilder()
	m := &Mesh{}
	if err := b.Build(p.Data, m); err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != 8 {
		t.Errorf("default epsilon: got %d vertices, want 8", len(m.Vertices))
	}

	b.Triangulator.Epsilon = 0.1
	if err := b.Build(p.Data, m); err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != 7 {
		t.Errorf("triangulator epsilon 0.1: got %d vertices, want 7", len(m.Vertices))
	}
	if err := m.Validate(); err != nil {
		t.Error(err)
	}

	if b.Flattener.Pool != b.Triangulator.Pool || b.Flattener.Pool == nil {
		t.Error("flattener and triangulator do not share a pool")
	}
}

// TestBuildReleasesBuffers checks that every exit path of Build hands its
// scratch buffers back to the pool.
func TestBuildReleasesBuffers(t *testing.T) {
	b := NewBuilder()
	pool := b.Triangulator.Pool
	m := &Mesh{}

	// grow the pool to its working size
	if err := b.Build(circlePath(0, 0, 10).Data, m); err != nil {
		t.Fatal(err)
	}
	idle := pool.Idle()
	if idle == 0 {
		t.Fatal("pool is empty after a build")
	}

	cases := []struct {
		name    string
		path    pathBuilder
		setup   func(b *Builder)
		wantErr bool
	}{
		{"valid", circlePath(0, 0, 10), nil, false},
		{"collinear only", newPath().M(0, 0).L(1, 1).L(2, 2).Z(), nil, false},
		{"point only", newPath().M(3, 3).L(3, 3).Z(), nil, false},
		{"no regions", circlePath(0, 0, 10), func(b *Builder) {
			b.Interior, b.Hull, b.Exterior = false, false, false
		}, false},
		{"self-intersecting", newPath().M(0, 0).L(2, 2).L(2, 0).L(0, 2).Z(), nil, false},
		{"missing MoveTo", newPath().L(1, 1).L(2, 0), nil, true},
		{"missing coords", newPath().M(0, 0).add(path.CmdCubeTo, 1, 1), nil, true},
		{"bad tolerance", circlePath(0, 0, 10), func(b *Builder) { b.Tolerance = -1 }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b.Flattener.Tolerance = defaultTolerance
			b.Interior, b.Hull, b.Exterior = true, false, false
			if tc.setup != nil {
				tc.setup(b)
			}
			err := b.Build(tc.path.Data, m)
			if (err != nil) != tc.wantErr {
				t.Fatalf("got error %v, want error %t", err, tc.wantErr)
			}
			if got := pool.Idle(); got != idle {
				t.Errorf("pool holds %d buffers, want %d", got, idle)
			}
		})
	}
}
