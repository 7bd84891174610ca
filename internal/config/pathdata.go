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
	"fmt"
	"strconv"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// ParsePath converts SVG path data into a path.
//
// The commands M, L, H, V, Q, C and Z are supported, in absolute
// (upper case) and relative (lower case) form.  As in SVG, coordinates
// following a command repeat that command, extra coordinate pairs after
// M are line segments, and drawing after Z starts a new subpath at the
// start of the closed one.
func ParsePath(d string) (*path.Data, error) {
	toks, err := tokenize(d)
	if err != nil {
		return nil, err
	}

	p := &path.Data{}
	var cur, start vec.Vec2
	open := false
	var cmd byte

	i := 0
	arg := func() float64 {
		x := toks[i].num
		i++
		return x
	}
	point := func(rel bool) vec.Vec2 {
		q := vec.Vec2{X: arg(), Y: arg()}
		if rel {
			q = q.Add(cur)
		}
		return q
	}
	// ensureOpen starts a new subpath at the current point after Z.
	ensureOpen := func() {
		if !open {
			p.Cmds = append(p.Cmds, path.CmdMoveTo)
			p.Coords = append(p.Coords, cur)
			start = cur
			open = true
		}
	}

	for i < len(toks) {
		if toks[i].cmd != 0 {
			cmd = toks[i].cmd
			i++
			if cmd == 'Z' || cmd == 'z' {
				if open {
					p.Cmds = append(p.Cmds, path.CmdClose)
					open = false
				}
				cur = start
				cmd = 0
			}
			continue
		}
		if cmd == 0 {
			return nil, fmt.Errorf("number %q without a command", toks[i].text)
		}
		if len(p.Cmds) == 0 && cmd != 'M' && cmd != 'm' {
			return nil, fmt.Errorf("path data must start with M, found %c", cmd)
		}

		n := argCount[cmd|0x20]
		if i+n > len(toks) {
			return nil, fmt.Errorf("incomplete %c command; need %d numbers", cmd, n)
		}
		for _, t := range toks[i : i+n] {
			if t.cmd != 0 {
				return nil, fmt.Errorf("incomplete %c command; need %d numbers", cmd, n)
			}
		}
		rel := cmd >= 'a'

		switch cmd {
		case 'M', 'm':
			cur = point(rel && len(p.Cmds) > 0)
			start = cur
			open = true
			p.Cmds = append(p.Cmds, path.CmdMoveTo)
			p.Coords = append(p.Coords, cur)
			// subsequent pairs are line segments
			if cmd == 'M' {
				cmd = 'L'
			} else {
				cmd = 'l'
			}

		case 'L', 'l':
			ensureOpen()
			cur = point(rel)
			p.Cmds = append(p.Cmds, path.CmdLineTo)
			p.Coords = append(p.Coords, cur)

		case 'H', 'h':
			ensureOpen()
			x := arg()
			if rel {
				x += cur.X
			}
			cur = vec.Vec2{X: x, Y: cur.Y}
			p.Cmds = append(p.Cmds, path.CmdLineTo)
			p.Coords = append(p.Coords, cur)

		case 'V', 'v':
			ensureOpen()
			y := arg()
			if rel {
				y += cur.Y
			}
			cur = vec.Vec2{X: cur.X, Y: y}
			p.Cmds = append(p.Cmds, path.CmdLineTo)
			p.Coords = append(p.Coords, cur)

		case 'Q', 'q':
			ensureOpen()
			c := point(rel)
			end := point(rel)
			p.Cmds = append(p.Cmds, path.CmdQuadTo)
			p.Coords = append(p.Coords, c, end)
			cur = end

		case 'C', 'c':
			ensureOpen()
			c1 := point(rel)
			c2 := point(rel)
			end := point(rel)
			p.Cmds = append(p.Cmds, path.CmdCubeTo)
			p.Coords = append(p.Coords, c1, c2, end)
			cur = end

		default:
			return nil, fmt.Errorf("unsupported path command %q", string(cmd))
		}
	}
	return p, nil
}

// argCount gives the number of numbers taken by each command.
var argCount = map[byte]int{
	'm': 2,
	'l': 2,
	'h': 1,
	'v': 1,
	'q': 4,
	'c': 6,
}

type token struct {
	cmd  byte // command letter, or 0 for a number
	num  float64
	text string
}

// tokenize splits path data into command letters and numbers.  Numbers
// may be separated by white space, commas, or a sign.
func tokenize(d string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(d) {
		c := d[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',':
			i++
		case c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z':
			if c != 'e' && c != 'E' {
				if _, ok := argCount[c|0x20]; !ok && c|0x20 != 'z' {
					return nil, fmt.Errorf("unsupported path command %q", string(c))
				}
				toks = append(toks, token{cmd: c, text: string(c)})
				i++
				continue
			}
			fallthrough
		default:
			j := scanNumber(d, i)
			if j == i {
				return nil, fmt.Errorf("unexpected character %q in path data", string(c))
			}
			x, err := strconv.ParseFloat(d[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q: %w", d[i:j], err)
			}
			toks = append(toks, token{num: x, text: d[i:j]})
			i = j
		}
	}
	return toks, nil
}

// scanNumber returns the end of the number starting at d[i].
func scanNumber(d string, i int) int {
	j := i
	if j < len(d) && (d[j] == '+' || d[j] == '-') {
		j++
	}
	digits := 0
	for j < len(d) && d[j] >= '0' && d[j] <= '9' {
		j++
		digits++
	}
	if j < len(d) && d[j] == '.' {
		j++
		for j < len(d) && d[j] >= '0' && d[j] <= '9' {
			j++
			digits++
		}
	}
	if digits == 0 {
		return i
	}
	if j < len(d) && (d[j] == 'e' || d[j] == 'E') {
		k := j + 1
		if k < len(d) && (d[k] == '+' || d[k] == '-') {
			k++
		}
		if k < len(d) && d[k] >= '0' && d[k] <= '9' {
			for k < len(d) && d[k] >= '0' && d[k] <= '9' {
				k++
			}
			j = k
		}
	}
	return j
}
