/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestPath_QuadAndCubic_Bounds(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.QuadTo(10, 10, 20, 0)
	p.CubicTo(30, -10, 40, 10, 50, 0)
	p.Close()

	b := p.Bounds()
	// With our approximation including control points, min/max should reflect extremes
	if b.X != 0 || b.Y != -10 || b.W != 50 || b.H != 20 {
		t.Fatalf("unexpected bounds: %+v", b)
	}
}

func TestPath_EmptyBounds(t *testing.T) {
	var p Path
	if !p.Empty() {
		t.Fatalf("expected empty path")
	}
	if b := p.Bounds(); b != (Rect{}) {
		t.Fatalf("unexpected bounds for empty path: %+v", b)
	}
}

func TestPath_FlattenClosesSubpaths(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(10, 10)
	p.Close()
	p.MoveTo(20, 20)
	p.LineTo(30, 20)

	lines := p.Flatten(0.25)
	if len(lines) != 2 {
		t.Fatalf("expected 2 subpaths, got %d", len(lines))
	}
	first := lines[0]
	if !first.Closed || len(first.Pts) != 4 || first.Pts[3] != (Pt{0, 0}) {
		t.Fatalf("unexpected closed subpath: %+v", first)
	}
	if lines[1].Closed || len(lines[1].Pts) != 2 {
		t.Fatalf("unexpected open subpath: %+v", lines[1])
	}
}

func TestPath_FlattenCurveEndsOnEndpoint(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.CubicTo(0, 50, 50, 50, 50, 0)
	lines := p.Flatten(0.5)
	if len(lines) != 1 {
		t.Fatalf("expected 1 subpath, got %d", len(lines))
	}
	pts := lines[0].Pts
	if len(pts) < 3 {
		t.Fatalf("expected curve to be subdivided, got %d points", len(pts))
	}
	if end := pts[len(pts)-1]; end != (Pt{50, 0}) {
		t.Fatalf("curve should end on its endpoint, got %+v", end)
	}
}
