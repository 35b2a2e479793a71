/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"strconv"
	"strings"

	"overlaykit/internal/vector"
)

// Call is one recorded surface operation.
type Call struct {
	Op    string
	Args  []float64
	Color vector.Color
	Path  *vector.Path
	Rule  vector.FillRule
}

// Recorder is a Surface that keeps a log of every call. It is used by tests
// and by the trace command to inspect what a frame draws.
type Recorder struct {
	stateStack
	Calls []Call
}

func NewRecorder() *Recorder {
	return &Recorder{stateStack: newStateStack("recorder")}
}

func (r *Recorder) add(c Call) { r.Calls = append(r.Calls, c) }

func (r *Recorder) Save() {
	r.stateStack.save()
	r.add(Call{Op: "save"})
}

func (r *Recorder) Restore() {
	r.stateStack.restore()
	r.add(Call{Op: "restore"})
}

func (r *Recorder) Translate(dx, dy float64) {
	r.stateStack.Translate(dx, dy)
	r.add(Call{Op: "translate", Args: []float64{dx, dy}})
}

func (r *Recorder) Rotate(rad float64) {
	r.stateStack.Rotate(rad)
	r.add(Call{Op: "rotate", Args: []float64{rad}})
}

func (r *Recorder) SetLineWidth(w float64) {
	r.stateStack.SetLineWidth(w)
	r.add(Call{Op: "lineWidth", Args: []float64{w}})
}

func (r *Recorder) SetLineDash(pattern []float64) {
	r.stateStack.SetLineDash(pattern)
	r.add(Call{Op: "lineDash", Args: append([]float64(nil), pattern...)})
}

func (r *Recorder) SetStrokeColor(c vector.Color) {
	r.stateStack.SetStrokeColor(c)
	r.add(Call{Op: "strokeStyle", Color: c})
}

func (r *Recorder) SetFillColor(c vector.Color) {
	r.stateStack.SetFillColor(c)
	r.add(Call{Op: "fillStyle", Color: c})
}

func (r *Recorder) Stroke(p *vector.Path) { r.add(Call{Op: "stroke", Path: p}) }

func (r *Recorder) Fill(p *vector.Path, rule vector.FillRule) {
	r.add(Call{Op: "fill", Path: p, Rule: rule})
}

func (r *Recorder) Clip(p *vector.Path) {
	r.cur.clips++
	r.add(Call{Op: "clip", Path: p})
}

// Ops returns the operation names in call order.
func (r *Recorder) Ops() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Op
	}
	return out
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Find returns the first call of op, if any.
func (r *Recorder) Find(op string) (Call, bool) {
	for _, c := range r.Calls {
		if c.Op == op {
			return c, true
		}
	}
	return Call{}, false
}

// String renders the call log one call per line.
func (r *Recorder) String() string {
	var b strings.Builder
	for _, c := range r.Calls {
		b.WriteString(c.Op)
		for _, a := range c.Args {
			b.WriteByte(' ')
			b.WriteString(strconv.FormatFloat(a, 'g', -1, 64))
		}
		switch c.Op {
		case "strokeStyle", "fillStyle":
			b.WriteByte(' ')
			b.WriteString(c.Color.CSS())
		case "stroke", "fill", "clip":
			fmt.Fprintf(&b, " %s", PathData(c.Path))
			if c.Op == "fill" && c.Rule == vector.EvenOdd {
				b.WriteString(" evenodd")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// PathData renders p in SVG path syntax.
func PathData(p *vector.Path) string {
	if p.Empty() {
		return ""
	}
	var b strings.Builder
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	for i, c := range p.Cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.Op.String())
		n := 0
		switch c.Op {
		case vector.MoveTo, vector.LineTo:
			n = 2
		case vector.QuadTo:
			n = 4
		case vector.CubicTo:
			n = 6
		}
		for k := 0; k < n; k++ {
			if k == 0 {
				b.WriteString(num(c.Data[k]))
			} else {
				b.WriteByte(' ')
				b.WriteString(num(c.Data[k]))
			}
		}
	}
	return b.String()
}
