/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package overlay

import (
	"errors"
	"testing"

	"overlaykit/internal/export"
	"overlaykit/internal/highlight"
	"overlaykit/internal/vector"
)

func mustDecode(t *testing.T, s string) *Doc {
	t.Helper()
	doc, err := Decode([]byte(s))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return doc
}

func TestRender_Reports(t *testing.T) {
	doc := mustDecode(t, sampleFrame)
	r := export.NewRecorder()
	reports, err := Render(doc, r)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	p := reports[0]
	if p.Name != "content" || p.Kind != "path" || p.Points != 4 {
		t.Fatalf("unexpected path report: %+v", p)
	}
	if p.Bounds != (highlight.Bounds{MinX: 2, MinY: 2, MaxX: 10, MaxY: 10}) {
		t.Fatalf("path bounds not scaled: %+v", p.Bounds)
	}
	q := reports[1]
	if q.Name != "quad[0]" || q.Kind != "quad" || q.Points != 10 {
		t.Fatalf("unexpected quad report: %+v", q)
	}
	if q.Bounds != (highlight.Bounds{MinX: 0, MinY: 0, MaxX: 40, MaxY: 40}) {
		t.Fatalf("quad bounds: %+v", q.Bounds)
	}
}

func TestRender_DrawOrder(t *testing.T) {
	doc := mustDecode(t, sampleFrame)
	r := export.NewRecorder()
	if _, err := Render(doc, r); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if r.Depth() != 0 {
		t.Fatalf("save/restore not balanced")
	}
	if r.Count("fill") != 2 || r.Count("clip") != 1 {
		t.Fatalf("unexpected fills/clips:\n%s", r)
	}
	ops := r.Ops()
	firstFill, firstClip, lastStroke := -1, -1, -1
	for i, op := range ops {
		switch op {
		case "fill":
			if firstFill < 0 {
				firstFill = i
			}
		case "clip":
			firstClip = i
		case "stroke":
			lastStroke = i
		}
	}
	if !(firstFill < firstClip && firstClip < lastStroke) {
		t.Fatalf("expected fill, hatch, outline order:\n%s", r)
	}
	var quadFill export.Call
	for _, c := range r.Calls {
		if c.Op == "fill" {
			quadFill = c
		}
	}
	if quadFill.Rule != vector.EvenOdd {
		t.Fatalf("quad should fill even-odd")
	}
}

func TestRender_RasterHole(t *testing.T) {
	doc := mustDecode(t, sampleFrame)
	doc.Paths = nil
	ras := export.NewRaster(doc.Width, doc.Height, vector.White)
	if _, err := Render(doc, ras); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if c := ras.Image().RGBAAt(35, 35); c.G != 255 || c.R != 0 {
		t.Fatalf("expected green ring, got %+v", c)
	}
	if c := ras.Image().RGBAAt(20, 20); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Fatalf("expected hole to stay white, got %+v", c)
	}
}

func TestRender_Errors(t *testing.T) {
	bad := mustDecode(t, `{"width": 10, "height": 10, "paths": [{"name": "broken", "path": ["M", 1]}]}`)
	_, err := Render(bad, export.NewRecorder())
	var me *highlight.MalformedPathError
	if !errors.As(err, &me) {
		t.Fatalf("expected MalformedPathError, got %v", err)
	}

	color := mustDecode(t, `{"width": 10, "height": 10, "paths": [{"path": ["M", 1, 1, "L", 2, 2], "fillColor": "nope"}]}`)
	if _, err := Render(color, export.NewRecorder()); err == nil {
		t.Fatalf("expected a color error")
	}

	if _, err := Render(nil, export.NewRecorder()); err == nil {
		t.Fatalf("expected error for nil doc")
	}
}
