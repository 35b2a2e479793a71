/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"overlaykit/internal/vector"
)

// SVG is a surface that buffers SVG elements. Coordinates are written in
// device space; clips become chained <clipPath> definitions.
type SVG struct {
	stateStack
	width, height int
	bg            vector.Color
	defs          bytes.Buffer
	body          bytes.Buffer
	werr          error
	clipID        string   // current clip reference, empty when unclipped
	clipIDs       []string // saved with each Save
	nextClip      int
}

// NewSVG creates a width x height SVG surface. A zero bg leaves the
// background transparent.
func NewSVG(width, height int, bg vector.Color) *SVG {
	return &SVG{stateStack: newStateStack("svg"), width: width, height: height, bg: bg}
}

func (s *SVG) wf(buf *bytes.Buffer, format string, args ...any) {
	if s.werr != nil {
		return
	}
	_, s.werr = fmt.Fprintf(buf, format, args...)
}

func (s *SVG) Save() {
	s.stateStack.save()
	s.clipIDs = append(s.clipIDs, s.clipID)
}

func (s *SVG) Restore() {
	if _, ok := s.stateStack.restore(); !ok {
		return
	}
	s.clipID = s.clipIDs[len(s.clipIDs)-1]
	s.clipIDs = s.clipIDs[:len(s.clipIDs)-1]
}

func (s *SVG) beginElem() {
	if s.clipID != "" {
		s.wf(&s.body, "  <g clip-path=\"url(#%s)\">", s.clipID)
	} else {
		s.wf(&s.body, "  ")
	}
}

func (s *SVG) endElem() {
	if s.clipID != "" {
		s.wf(&s.body, "</g>")
	}
	s.wf(&s.body, "\n")
}

func (s *SVG) Fill(p *vector.Path, rule vector.FillRule) {
	if p.Empty() || s.cur.fill.A == 0 {
		return
	}
	d := PathData(transformPath(p, s.cur.ctm))
	r := "nonzero"
	if rule == vector.EvenOdd {
		r = "evenodd"
	}
	s.beginElem()
	s.wf(&s.body, "<path d=\"%s\" fill=\"%s\" fill-opacity=\"%s\" fill-rule=\"%s\"/>", d, svgColor(s.cur.fill), svgOpacity(s.cur.fill), r)
	s.endElem()
}

func (s *SVG) Stroke(p *vector.Path) {
	if p.Empty() || s.cur.stroke.A == 0 {
		return
	}
	d := PathData(transformPath(p, s.cur.ctm))
	s.beginElem()
	s.wf(&s.body, "<path d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-opacity=\"%s\" stroke-width=\"%g\"", d, svgColor(s.cur.stroke), svgOpacity(s.cur.stroke), s.cur.lineWidth)
	if len(s.cur.dash) > 0 {
		s.wf(&s.body, " stroke-dasharray=\"%s\"", dashList(s.cur.dash))
	}
	s.wf(&s.body, "/>")
	s.endElem()
}

func (s *SVG) Clip(p *vector.Path) {
	s.nextClip++
	id := "clip" + strconv.Itoa(s.nextClip)
	d := PathData(transformPath(p, s.cur.ctm))
	if s.clipID != "" {
		s.wf(&s.defs, "    <clipPath id=\"%s\" clipPathUnits=\"userSpaceOnUse\" clip-path=\"url(#%s)\"><path d=\"%s\"/></clipPath>\n", id, s.clipID, d)
	} else {
		s.wf(&s.defs, "    <clipPath id=\"%s\" clipPathUnits=\"userSpaceOnUse\"><path d=\"%s\"/></clipPath>\n", id, d)
	}
	s.clipID = id
	s.cur.clips++
}

// WriteTo writes the complete SVG document.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	if s.werr != nil {
		return 0, fmt.Errorf("build svg: %w", s.werr)
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&buf, "<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%dpx\" height=\"%dpx\" viewBox=\"0 0 %d %d\">\n", s.width, s.height, s.width, s.height)
	if s.defs.Len() > 0 {
		buf.WriteString("  <defs>\n")
		buf.Write(s.defs.Bytes())
		buf.WriteString("  </defs>\n")
	}
	if !s.bg.IsZero() {
		fmt.Fprintf(&buf, "  <rect x=\"0\" y=\"0\" width=\"%d\" height=\"%d\" fill=\"%s\" fill-opacity=\"%s\"/>\n", s.width, s.height, svgColor(s.bg), svgOpacity(s.bg))
	}
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// SaveFile writes the document to path, creating parent directories.
func (s *SVG) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func svgColor(c vector.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func svgOpacity(c vector.Color) string {
	return strconv.FormatFloat(float64(c.A)/255, 'f', 3, 64)
}

func dashList(d []float64) string {
	var b bytes.Buffer
	for i, v := range d {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	}
	return b.String()
}

// transformPath maps every point of p through m. Affine maps keep curves
// exact, so no flattening is needed.
func transformPath(p *vector.Path, m vector.Matrix) *vector.Path {
	out := &vector.Path{Cmds: make([]vector.PathCmd, len(p.Cmds))}
	for i, c := range p.Cmds {
		n := 0
		switch c.Op {
		case vector.MoveTo, vector.LineTo:
			n = 1
		case vector.QuadTo:
			n = 2
		case vector.CubicTo:
			n = 3
		}
		for k := 0; k < n; k++ {
			pt := m.Apply2D(vector.Pt{X: c.Data[2*k], Y: c.Data[2*k+1]})
			c.Data[2*k], c.Data[2*k+1] = pt.X, pt.Y
		}
		out.Cmds[i] = c
	}
	return out
}
