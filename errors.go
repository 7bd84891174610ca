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
	"fmt"
)

var (
	// ErrMissingMoveTo is reported when a subpath does not start with a
	// MoveTo command.
	ErrMissingMoveTo = errors.New("subpath does not start with MoveTo")

	// ErrMissingCoords is reported when a path has fewer coordinates than
	// its commands require.
	ErrMissingCoords = errors.New("not enough coordinates for path command")

	// ErrInvalidTolerance is reported when the flattening tolerance or
	// scale is not positive.
	ErrInvalidTolerance = errors.New("tolerance and scale must be positive")
)

// PathError records a malformed path command.
type PathError struct {
	Index int   // index of the offending command in path.Data.Cmds
	Err   error // the underlying error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("mesh: path command %d: %v", e.Index, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}
