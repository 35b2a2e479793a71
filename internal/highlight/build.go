/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package highlight

import (
	"encoding/json"
	"fmt"
	"math"

	"overlaykit/internal/vector"
)

// Commands is a flat path command list: single-character opcodes (M, L, C, Q,
// Z) each followed by the coordinates it consumes. Numbers may be any Go
// numeric type or json.Number, so a decoded JSON array can be used directly.
type Commands []any

// pointsFor returns the number of (x, y) operand pairs an opcode consumes.
func pointsFor(op string) (int, vector.PathOp, bool) {
	switch op {
	case "M":
		return 1, vector.MoveTo, true
	case "L":
		return 1, vector.LineTo, true
	case "C":
		return 3, vector.CubicTo, true
	case "Q":
		return 2, vector.QuadTo, true
	case "Z":
		return 0, vector.Close, true
	}
	return 0, 0, false
}

// MalformedPathError reports a command list that cannot be turned into a path.
type MalformedPathError struct {
	Index  int // position of the offending token; -1 when not token specific
	Reason string
}

func (e *MalformedPathError) Error() string {
	if e.Index < 0 {
		return "malformed path: " + e.Reason
	}
	return fmt.Sprintf("malformed path at token %d: %s", e.Index, e.Reason)
}

type segment struct {
	op  vector.PathOp
	pts []Point
}

// BuildPath converts cmds into a path, scaling every coordinate by scale and
// rounding it to an integer. Each rounded point widens bounds.
//
// The whole command list is validated before bounds is touched: on error the
// returned path is nil and bounds is unchanged.
func BuildPath(cmds Commands, bounds *PathBounds, scale float64) (*vector.Path, error) {
	if bounds == nil {
		return nil, &MalformedPathError{Index: -1, Reason: "nil bounds"}
	}
	segs, err := parse(cmds, scale)
	if err != nil {
		return nil, err
	}
	path := &vector.Path{Cmds: make([]vector.PathCmd, 0, len(segs))}
	for _, s := range segs {
		for _, p := range s.pts {
			bounds.add(p.X, p.Y)
		}
		c := vector.PathCmd{Op: s.op}
		for i, p := range s.pts {
			c.Data[2*i] = float64(p.X)
			c.Data[2*i+1] = float64(p.Y)
		}
		path.Cmds = append(path.Cmds, c)
	}
	return path, nil
}

func parse(cmds Commands, scale float64) ([]segment, error) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, &MalformedPathError{Index: -1, Reason: fmt.Sprintf("invalid scale factor %v", scale)}
	}
	var segs []segment
	for i := 0; i < len(cmds); {
		op, ok := cmds[i].(string)
		if !ok {
			return nil, &MalformedPathError{Index: i, Reason: fmt.Sprintf("expected opcode, got %v", cmds[i])}
		}
		n, pop, ok := pointsFor(op)
		if !ok {
			return nil, &MalformedPathError{Index: i, Reason: fmt.Sprintf("unknown opcode %q", op)}
		}
		i++
		if len(cmds)-i < 2*n {
			return nil, &MalformedPathError{Index: i, Reason: fmt.Sprintf("opcode %s needs %d operands, %d left", op, 2*n, len(cmds)-i)}
		}
		s := segment{op: pop, pts: make([]Point, 0, n)}
		for k := 0; k < n; k++ {
			x, err := scaled(cmds, i, scale)
			if err != nil {
				return nil, err
			}
			y, err := scaled(cmds, i+1, scale)
			if err != nil {
				return nil, err
			}
			s.pts = append(s.pts, Point{X: x, Y: y})
			i += 2
		}
		segs = append(segs, s)
	}
	return segs, nil
}

func scaled(cmds Commands, i int, scale float64) (int, error) {
	v, ok := number(cmds[i])
	if !ok {
		return 0, &MalformedPathError{Index: i, Reason: fmt.Sprintf("expected number, got %v", cmds[i])}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &MalformedPathError{Index: i, Reason: fmt.Sprintf("non-finite coordinate %v", v)}
	}
	r := vector.Round(v * scale)
	if math.IsInf(r, 0) || math.Abs(r) > math.MaxInt32 {
		return 0, &MalformedPathError{Index: i, Reason: fmt.Sprintf("coordinate %v out of range", v)}
	}
	return int(r), nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// Quad is an element box after transform, corners in consistent winding order.
type Quad struct {
	P1 vector.Pt `json:"p1"`
	P2 vector.Pt `json:"p2"`
	P3 vector.Pt `json:"p3"`
	P4 vector.Pt `json:"p4"`
}

// Commands returns the closed outline of q.
func (q Quad) Commands() Commands {
	return Commands{"M", q.P1.X, q.P1.Y, "L", q.P2.X, q.P2.Y, "L", q.P3.X, q.P3.Y, "L", q.P4.X, q.P4.Y, "Z"}
}

// CreatePathForQuad traces outer and cuts every quad in clips out of it. Each
// hole is traced in reverse winding from outer's last corner and returns
// there, so both the non-zero and even-odd rules leave it unfilled.
func CreatePathForQuad(outer Quad, clips []Quad, bounds *PathBounds, scale float64) (*vector.Path, error) {
	cmds := Commands{
		"M", outer.P1.X, outer.P1.Y,
		"L", outer.P2.X, outer.P2.Y,
		"L", outer.P3.X, outer.P3.Y,
		"L", outer.P4.X, outer.P4.Y,
	}
	for _, q := range clips {
		cmds = append(cmds,
			"L", q.P4.X, q.P4.Y,
			"L", q.P3.X, q.P3.Y,
			"L", q.P2.X, q.P2.Y,
			"L", q.P1.X, q.P1.Y,
			"L", q.P4.X, q.P4.Y,
			"L", outer.P4.X, outer.P4.Y,
		)
	}
	cmds = append(cmds, "Z")
	return BuildPath(cmds, bounds, scale)
}
