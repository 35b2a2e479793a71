/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "math"

// Path commands and shapes.

type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
	QuadTo  // quadratic bezier (cx, cy, x, y)
	CubicTo // cubic bezier (cx1, cy1, cx2, cy2, x, y)
	Close
)

func (op PathOp) String() string {
	switch op {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case QuadTo:
		return "Q"
	case CubicTo:
		return "C"
	case Close:
		return "Z"
	}
	return "?"
}

type PathCmd struct {
	Op   PathOp
	Data [6]float64 // enough for cubic; unused slots are zero
}

// Path is an opaque, renderable command list. Surfaces in the export package
// consume it directly.
type Path struct{ Cmds []PathCmd }

func (p *Path) MoveTo(x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: MoveTo, Data: [6]float64{x, y}})
}
func (p *Path) LineTo(x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: LineTo, Data: [6]float64{x, y}})
}
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: QuadTo, Data: [6]float64{cx, cy, x, y}})
}
func (p *Path) CubicTo(cx1, cy1, cx2, cy2, x, y float64) {
	p.Cmds = append(p.Cmds, PathCmd{Op: CubicTo, Data: [6]float64{cx1, cy1, cx2, cy2, x, y}})
}
func (p *Path) Close() { p.Cmds = append(p.Cmds, PathCmd{Op: Close}) }

// Empty reports whether the path has no commands.
func (p *Path) Empty() bool { return p == nil || len(p.Cmds) == 0 }

// Bounds returns an axis-aligned bounding box of the path using a simple
// approximation by considering control points.
func (p *Path) Bounds() Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	for _, c := range p.Cmds {
		switch c.Op {
		case MoveTo, LineTo:
			grow(c.Data[0], c.Data[1])
		case QuadTo:
			grow(c.Data[0], c.Data[1])
			grow(c.Data[2], c.Data[3])
		case CubicTo:
			grow(c.Data[0], c.Data[1])
			grow(c.Data[2], c.Data[3])
			grow(c.Data[4], c.Data[5])
		case Close:
			// no-op for bounds
		}
	}
	if minX > maxX || minY > maxY {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Polyline is one flattened subpath.
type Polyline struct {
	Pts    []Pt
	Closed bool
}

// Flatten converts curves into line segments so that no segment deviates from
// the true curve by more than roughly tol. A closed subpath repeats its first
// point at the end.
func (p *Path) Flatten(tol float64) []Polyline {
	if tol <= 0 {
		tol = 0.25
	}
	var out []Polyline
	var cur *Polyline
	var start, pen Pt
	flush := func() {
		if cur != nil && len(cur.Pts) > 0 {
			out = append(out, *cur)
		}
		cur = nil
	}
	ensure := func() {
		if cur == nil {
			cur = &Polyline{Pts: []Pt{pen}}
			start = pen
		}
	}
	for _, c := range p.Cmds {
		switch c.Op {
		case MoveTo:
			flush()
			pen = Pt{c.Data[0], c.Data[1]}
			ensure()
		case LineTo:
			ensure()
			pen = Pt{c.Data[0], c.Data[1]}
			cur.Pts = append(cur.Pts, pen)
		case QuadTo:
			ensure()
			p1 := Pt{c.Data[0], c.Data[1]}
			p2 := Pt{c.Data[2], c.Data[3]}
			n := segments(dist(pen, p1)+dist(p1, p2), tol)
			p0 := pen
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				u := 1 - t
				cur.Pts = append(cur.Pts, Pt{
					X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
					Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
				})
			}
			pen = p2
		case CubicTo:
			ensure()
			p1 := Pt{c.Data[0], c.Data[1]}
			p2 := Pt{c.Data[2], c.Data[3]}
			p3 := Pt{c.Data[4], c.Data[5]}
			n := segments(dist(pen, p1)+dist(p1, p2)+dist(p2, p3), tol)
			p0 := pen
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				u := 1 - t
				cur.Pts = append(cur.Pts, Pt{
					X: u*u*u*p0.X + 3*u*u*t*p1.X + 3*u*t*t*p2.X + t*t*t*p3.X,
					Y: u*u*u*p0.Y + 3*u*u*t*p1.Y + 3*u*t*t*p2.Y + t*t*t*p3.Y,
				})
			}
			pen = p3
		case Close:
			if cur != nil {
				cur.Closed = true
				if last := cur.Pts[len(cur.Pts)-1]; last != start {
					cur.Pts = append(cur.Pts, start)
				}
				flush()
			}
			pen = start
		}
	}
	flush()
	return out
}

func dist(a, b Pt) float64 { return math.Hypot(b.X-a.X, b.Y-a.Y) }

// segments picks a subdivision count from the control polygon length.
func segments(length, tol float64) int {
	n := int(math.Ceil(math.Sqrt(length / tol)))
	if n < 1 {
		return 1
	}
	if n > 256 {
		return 256
	}
	return n
}
