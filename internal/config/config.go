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

// Package config reads the job files of the meshgen command.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
	"seehuhn.de/go/geom/path"

	"seehuhn.de/go/mesh"
	"seehuhn.de/go/mesh/testcases"
)

// Job represents a meshgen job file.
type Job struct {
	Tolerance     float64       `yaml:"tolerance,omitempty"`
	Scale         float64       `yaml:"scale,omitempty"`
	Triangulation Triangulation `yaml:"triangulation"`
	Shape         string        `yaml:"shape,omitempty"`
	Path          string        `yaml:"path,omitempty"`
	Output        Output        `yaml:"output"`
}

// Triangulation selects the regions to triangulate.
type Triangulation struct {
	Delaunay bool   `yaml:"delaunay,omitempty"`
	Interior *bool  `yaml:"interior,omitempty"`
	Exterior bool   `yaml:"exterior,omitempty"`
	Hull     bool   `yaml:"hull,omitempty"`
	Rule     string `yaml:"rule,omitempty"`
}

// Output names the files to write.  Empty names are skipped.
type Output struct {
	JSON   string `yaml:"json,omitempty"`
	PNG    string `yaml:"png,omitempty"`
	PDF    string `yaml:"pdf,omitempty"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
}

// Resolved contains a job with all defaults filled in.
type Resolved struct {
	Name      string
	Path      *path.Data
	Tolerance float64
	Scale     float64

	Delaunay bool
	Interior bool
	Exterior bool
	Hull     bool
	Rule     mesh.FillRule

	JSON   string
	PNG    string
	PDF    string
	Width  int
	Height int
}

// Load reads and parses a job file.
func Load(file string) (*Job, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	return Parse(data)
}

// Parse parses the contents of a job file.
func Parse(data []byte) (*Job, error) {
	var job Job
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}
	return &job, nil
}

// Resolve loads a job file and resolves defaults.
func Resolve(file string) (*Resolved, error) {
	job, err := Load(file)
	if err != nil {
		return nil, err
	}
	return job.Resolve()
}

// Resolve checks the job and fills in defaults.
func (job *Job) Resolve() (*Resolved, error) {
	res := &Resolved{
		Tolerance: job.Tolerance,
		Scale:     job.Scale,
		Delaunay:  job.Triangulation.Delaunay,
		Interior:  true,
		Exterior:  job.Triangulation.Exterior,
		Hull:      job.Triangulation.Hull,
		JSON:      job.Output.JSON,
		PNG:       job.Output.PNG,
		PDF:       job.Output.PDF,
		Width:     job.Output.Width,
		Height:    job.Output.Height,
	}
	if job.Triangulation.Interior != nil {
		res.Interior = *job.Triangulation.Interior
	}

	switch {
	case res.Tolerance == 0:
		res.Tolerance = defaultTolerance
	case res.Tolerance < 0:
		return nil, fmt.Errorf("invalid tolerance %g: %w", res.Tolerance, mesh.ErrInvalidTolerance)
	}
	switch {
	case res.Scale == 0:
		res.Scale = 1
	case res.Scale < 0:
		return nil, fmt.Errorf("invalid scale %g: %w", res.Scale, mesh.ErrInvalidTolerance)
	}

	switch strings.ToLower(strings.TrimSpace(job.Triangulation.Rule)) {
	case "", "evenodd", "even-odd":
		res.Rule = mesh.EvenOdd
	case "nonzero", "non-zero":
		res.Rule = mesh.NonZero
	default:
		return nil, fmt.Errorf("unknown fill rule %q", job.Triangulation.Rule)
	}

	shape := strings.TrimSpace(job.Shape)
	data := strings.TrimSpace(job.Path)
	switch {
	case shape != "" && data != "":
		return nil, errors.New("job file must not specify both shape and path")
	case shape != "":
		tc, ok := lookupShape(shape)
		if !ok {
			return nil, fmt.Errorf("unknown shape %q", shape)
		}
		res.Name = shape
		res.Path = tc.Path
		if job.Triangulation.Rule == "" && tc.Rule == testcases.NonZero {
			res.Rule = mesh.NonZero
		}
		if res.Width == 0 && res.Height == 0 {
			res.Width, res.Height = tc.Width*previewScale, tc.Height*previewScale
		}
	case data != "":
		p, err := ParsePath(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse path: %w", err)
		}
		res.Name = "path"
		res.Path = p
	default:
		return nil, errors.New("job file must specify a shape or a path")
	}

	if res.Width == 0 {
		res.Width = defaultSize
	}
	if res.Height == 0 {
		res.Height = defaultSize
	}
	if res.Width < 0 || res.Height < 0 {
		return nil, fmt.Errorf("invalid output size %dx%d", res.Width, res.Height)
	}

	return res, nil
}

// lookupShape finds a test case by name.  Names may be given with or
// without their category prefix, as in "curve_wave" or "wave".
func lookupShape(name string) (testcases.TestCase, bool) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			if name == tc.Name || name == category+"_"+tc.Name {
				return tc, true
			}
		}
	}
	return testcases.TestCase{}, false
}

const (
	defaultTolerance = 0.25
	defaultSize      = 256

	// previewScale is the number of output pixels per canvas pixel of a
	// test case shape.
	previewScale = 4
)
