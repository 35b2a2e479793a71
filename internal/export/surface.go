/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export implements the drawing surfaces the overlay renders onto:
// an in-memory call recorder, an anti-aliased raster image, an SVG document and
// a PDF page. All of them apply the current transform to path points
// themselves, so Save/Restore semantics are identical across backends.
package export

import (
	"log/slog"
	"math"

	applog "overlaykit/internal/log"
	"overlaykit/internal/vector"
)

// gstate is the drawing state scoped by Save/Restore.
type gstate struct {
	ctm       vector.Matrix
	lineWidth float64
	dash      []float64
	stroke    vector.Color
	fill      vector.Color
	clips     int // clips installed while this state was current
}

func defaultState() gstate {
	return gstate{ctm: vector.Identity, lineWidth: 1, stroke: vector.Black, fill: vector.Black}
}

// stateStack holds the current state plus everything saved beneath it.
type stateStack struct {
	cur   gstate
	saved []gstate
	name  string
}

func newStateStack(name string) stateStack {
	return stateStack{cur: defaultState(), name: name}
}

func (s *stateStack) save() {
	st := s.cur
	st.dash = append([]float64(nil), s.cur.dash...)
	s.saved = append(s.saved, st)
	s.cur.clips = 0
}

// restore pops the saved state. It returns the number of clips that were
// installed since the matching save, and false when there was nothing to pop.
func (s *stateStack) restore() (int, bool) {
	if len(s.saved) == 0 {
		applog.WithComponent("export").Warn("restore without save", slog.String("surface", s.name))
		return 0, false
	}
	clips := s.cur.clips
	s.cur = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	return clips, true
}

// Depth returns the number of unmatched Save calls.
func (s *stateStack) Depth() int { return len(s.saved) }

func (s *stateStack) Translate(dx, dy float64) {
	s.cur.ctm = s.cur.ctm.Mul(vector.Translate(dx, dy))
}

func (s *stateStack) Rotate(rad float64) {
	s.cur.ctm = s.cur.ctm.Mul(vector.Rotate(rad))
}

func (s *stateStack) SetLineWidth(w float64) {
	if w > 0 {
		s.cur.lineWidth = w
	}
}

// SetLineDash sets the dash array; an empty pattern, or one with a negative
// entry or only zeros, switches back to solid lines like a canvas does.
func (s *stateStack) SetLineDash(pattern []float64) {
	var sum float64
	for _, d := range pattern {
		if d < 0 {
			return
		}
		sum += d
	}
	if sum == 0 {
		s.cur.dash = nil
		return
	}
	p := append([]float64(nil), pattern...)
	if len(p)%2 == 1 {
		p = append(p, p...)
	}
	s.cur.dash = p
}

func (s *stateStack) SetStrokeColor(c vector.Color) { s.cur.stroke = c }
func (s *stateStack) SetFillColor(c vector.Color)   { s.cur.fill = c }

// devicePolylines flattens p and maps every point through the current
// transform.
func (s *stateStack) devicePolylines(p *vector.Path) []vector.Polyline {
	if p.Empty() {
		return nil
	}
	lines := p.Flatten(0.2)
	for i := range lines {
		for j, pt := range lines[i].Pts {
			lines[i].Pts[j] = s.cur.ctm.Apply2D(pt)
		}
	}
	return lines
}

// strokeOutlines returns the dashed polylines to stroke for p in user space.
func (s *stateStack) strokeOutlines(p *vector.Path) []vector.Polyline {
	if p.Empty() {
		return nil
	}
	return applyDash(p.Flatten(0.2), s.cur.dash)
}

// applyDash splits polylines into the "on" runs of dash. The dash phase
// restarts with every subpath.
func applyDash(lines []vector.Polyline, dash []float64) []vector.Polyline {
	if len(dash) == 0 {
		return lines
	}
	var out []vector.Polyline
	for _, l := range lines {
		idx := 0
		left := dash[0]
		on := true
		var run []vector.Pt
		if len(l.Pts) > 0 {
			run = []vector.Pt{l.Pts[0]}
		}
		for k := 1; k < len(l.Pts); k++ {
			a, b := l.Pts[k-1], l.Pts[k]
			segLen := hypot(a, b)
			pos := 0.0
			for segLen-pos > left {
				pos += left
				t := pos / segLen
				pt := vector.Pt{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
				if on {
					run = append(run, pt)
					out = append(out, vector.Polyline{Pts: run})
					run = nil
				} else {
					run = []vector.Pt{pt}
				}
				on = !on
				idx = (idx + 1) % len(dash)
				left = dash[idx]
			}
			left -= segLen - pos
			if on {
				run = append(run, b)
			}
		}
		if on && len(run) > 1 {
			out = append(out, vector.Polyline{Pts: run})
		}
	}
	return out
}

func hypot(a, b vector.Pt) float64 { return math.Hypot(b.X-a.X, b.Y-a.Y) }
