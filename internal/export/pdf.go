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
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"overlaykit/internal/vector"
)

// PDF is a single-page surface backed by gofpdf. One surface pixel maps to
// one point; the page origin is top-left.
type PDF struct {
	stateStack
	pdf *gofpdf.Fpdf
}

// NewPDF creates a width x height point page. A zero bg leaves the page blank.
func NewPDF(width, height int, bg vector.Color) *PDF {
	size := gofpdf.SizeType{Wd: float64(width), Ht: float64(height)}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: size})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("overlaykit", false)
	pdf.AddPageFormat("", size)
	pdf.SetLineCapStyle("butt")
	if !bg.IsZero() {
		setFillColor(pdf, bg)
		pdf.Rect(0, 0, size.Wd, size.Ht, "F")
	}
	return &PDF{stateStack: newStateStack("pdf"), pdf: pdf}
}

func (p *PDF) Save() { p.stateStack.save() }

func (p *PDF) Restore() {
	clips, ok := p.stateStack.restore()
	if !ok {
		return
	}
	for i := 0; i < clips; i++ {
		p.pdf.ClipEnd()
	}
}

// emit appends p's commands, mapped through the current transform, to the
// pdf's current path.
func (p *PDF) emit(path *vector.Path) {
	tp := transformPath(path, p.cur.ctm)
	for _, c := range tp.Cmds {
		d := c.Data
		switch c.Op {
		case vector.MoveTo:
			p.pdf.MoveTo(d[0], d[1])
		case vector.LineTo:
			p.pdf.LineTo(d[0], d[1])
		case vector.QuadTo:
			p.pdf.CurveTo(d[0], d[1], d[2], d[3])
		case vector.CubicTo:
			p.pdf.CurveBezierCubicTo(d[0], d[1], d[2], d[3], d[4], d[5])
		case vector.Close:
			p.pdf.ClosePath()
		}
	}
}

func (p *PDF) Fill(path *vector.Path, rule vector.FillRule) {
	if path.Empty() || p.cur.fill.A == 0 {
		return
	}
	setFillColor(p.pdf, p.cur.fill)
	p.pdf.SetAlpha(float64(p.cur.fill.A)/255, "Normal")
	p.emit(path)
	if rule == vector.EvenOdd {
		p.pdf.DrawPath("f*")
	} else {
		p.pdf.DrawPath("F")
	}
}

func (p *PDF) Stroke(path *vector.Path) {
	if path.Empty() || p.cur.stroke.A == 0 {
		return
	}
	setDrawColor(p.pdf, p.cur.stroke)
	p.pdf.SetAlpha(float64(p.cur.stroke.A)/255, "Normal")
	p.pdf.SetLineWidth(p.cur.lineWidth)
	p.pdf.SetDashPattern(p.cur.dash, 0)
	p.emit(path)
	p.pdf.DrawPath("D")
}

// Clip intersects the clip with the flattened path. gofpdf nests each clip
// in its own graphics state, so Restore ends the clips of the popped state.
func (p *PDF) Clip(path *vector.Path) {
	var pts []gofpdf.PointType
	for _, l := range p.devicePolylines(path) {
		for _, pt := range l.Pts {
			pts = append(pts, gofpdf.PointType{X: pt.X, Y: pt.Y})
		}
	}
	if len(pts) < 3 {
		// An empty clip hides everything; use a degenerate polygon.
		pts = []gofpdf.PointType{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 0}}
	}
	p.pdf.ClipPolygon(pts, false)
	p.cur.clips++
}

// Write closes any open states and writes the PDF document.
func (p *PDF) Write(w io.Writer) error {
	for p.Depth() > 0 {
		p.Restore()
	}
	for i := 0; i < p.cur.clips; i++ {
		p.pdf.ClipEnd()
	}
	p.cur.clips = 0
	if err := p.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// SaveFile writes the document to path, creating parent directories.
func (p *PDF) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pdf: %w", err)
	}
	if err := p.Write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close pdf: %w", err)
	}
	return nil
}

func setDrawColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}
