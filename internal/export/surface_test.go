/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"testing"

	"overlaykit/internal/vector"
)

func TestApplyDash_SplitsRuns(t *testing.T) {
	lines := []vector.Polyline{{Pts: []vector.Pt{{X: 0, Y: 0}, {X: 10, Y: 0}}}}
	runs := applyDash(lines, []float64{2, 2})
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d: %+v", len(runs), runs)
	}
	last := runs[2].Pts
	if last[0].X != 8 || last[len(last)-1].X != 10 {
		t.Fatalf("unexpected last run: %+v", last)
	}
}

func TestApplyDash_CarriesAcrossCorners(t *testing.T) {
	// 3 on along the first edge, then 1 more on after the corner
	lines := []vector.Polyline{{Pts: []vector.Pt{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 10}}}}
	runs := applyDash(lines, []float64{4, 2})
	if len(runs) < 1 {
		t.Fatalf("expected runs")
	}
	first := runs[0].Pts
	if len(first) != 3 || first[2] != (vector.Pt{X: 3, Y: 1}) {
		t.Fatalf("unexpected first run: %+v", first)
	}
}

func TestSetLineDash_Normalises(t *testing.T) {
	s := newStateStack("test")
	s.SetLineDash([]float64{5})
	if len(s.cur.dash) != 2 {
		t.Fatalf("odd dash should be repeated, got %v", s.cur.dash)
	}
	s.SetLineDash([]float64{-1, 2})
	if len(s.cur.dash) != 2 {
		t.Fatalf("negative entry should be ignored, got %v", s.cur.dash)
	}
	s.SetLineDash(nil)
	if s.cur.dash != nil {
		t.Fatalf("empty dash should reset to solid, got %v", s.cur.dash)
	}
}

func TestStateStack_SaveRestore(t *testing.T) {
	s := newStateStack("test")
	s.SetLineWidth(3)
	s.SetLineDash([]float64{2, 2})
	s.save()
	s.SetLineWidth(7)
	s.SetLineDash(nil)
	s.Translate(5, 5)
	if _, ok := s.restore(); !ok {
		t.Fatalf("restore should pop")
	}
	if s.cur.lineWidth != 3 || len(s.cur.dash) != 2 || s.cur.ctm != vector.Identity {
		t.Fatalf("state not restored: %+v", s.cur)
	}
	if _, ok := s.restore(); ok {
		t.Fatalf("unbalanced restore should report false")
	}
}
