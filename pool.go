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

import "reflect"

// Pool holds reusable scratch slices, keyed by element type.
//
// A buffer obtained from Acquire has length zero and undefined contents
// beyond that; only its capacity carries over from earlier use.
// Every buffer must be handed back with Release once the operation that
// acquired it returns, usually via defer.
//
// A Pool is not safe for concurrent use.  Builds running in parallel need
// one Pool each.  A nil *Pool is valid and allocates fresh buffers on
// every call.
type Pool struct {
	free map[reflect.Type][]any
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{free: make(map[reflect.Type][]any)}
}

// Acquire returns a zero-length scratch slice of element type T.
func Acquire[T any](p *Pool) *[]T {
	if p == nil {
		return new([]T)
	}
	key := reflect.TypeFor[T]()
	list := p.free[key]
	if len(list) == 0 {
		return new([]T)
	}
	buf := list[len(list)-1].(*[]T)
	p.free[key] = list[:len(list)-1]
	*buf = (*buf)[:0]
	return buf
}

// Release returns buf to the pool.  The caller must not use buf afterwards.
func Release[T any](p *Pool, buf *[]T) {
	if p == nil || buf == nil {
		return
	}
	if p.free == nil {
		p.free = make(map[reflect.Type][]any)
	}
	key := reflect.TypeFor[T]()
	p.free[key] = append(p.free[key], buf)
}

// Idle returns the number of buffers currently held by the pool, summed
// over all element types.
func (p *Pool) Idle() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, list := range p.free {
		n += len(list)
	}
	return n
}
