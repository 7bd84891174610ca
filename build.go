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

import "seehuhn.de/go/geom/path"

// Builder combines a Flattener and a Triangulator which share one scratch
// pool.  The exported fields of both can be changed between builds.
//
// Epsilon and Pool exist in both embedded structs and must be qualified,
// as in b.Flattener.Epsilon or b.Triangulator.Epsilon.  NewBuilder sets
// both Pool fields to the same pool.
type Builder struct {
	Flattener
	Triangulator
}

// NewBuilder returns a Builder with default settings: curves are
// flattened to a quarter unit and the interior is filled using the
// even-odd rule.
func NewBuilder() *Builder {
	pool := NewPool()
	return &Builder{
		Flattener:    *NewFlattener(pool),
		Triangulator: *NewTriangulator(pool),
	}
}

// Build replaces the contents of m with the triangulation of p.
//
// On error, m is left empty.
func (b *Builder) Build(p *path.Data, m *Mesh) error {
	m.Clear()
	contours, err := b.Flattener.Flatten(p)
	if err != nil {
		return err
	}
	b.Triangulator.Triangulate(contours, m)
	return nil
}
