/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package overlay

import (
	"fmt"
	"log/slog"

	"overlaykit/internal/highlight"
	applog "overlaykit/internal/log"
	"overlaykit/internal/vector"
)

// Options holds render defaults that a document does not carry itself.
type Options struct {
	LineWidth  float64
	HatchDelta float64
}

// DefaultOptions returns the defaults used by Render.
func DefaultOptions() Options {
	return Options{LineWidth: 1, HatchDelta: 10}
}

// ShapeReport summarises one rendered shape.
type ShapeReport struct {
	Name   string
	Kind   string // "path" or "quad"
	Bounds highlight.Bounds
	Points int
}

// Render draws every shape of doc onto s with the default options.
func Render(doc *Doc, s highlight.Surface) ([]ShapeReport, error) {
	return RenderWith(doc, s, DefaultOptions())
}

// RenderWith draws every shape of doc onto s. Paths are drawn first, in
// document order: fill, hatch, then outline. Quads follow and are filled
// even-odd so their clip quads punch holes.
func RenderWith(doc *Doc, s highlight.Surface, opts Options) ([]ShapeReport, error) {
	if doc == nil {
		return nil, fmt.Errorf("render: nil frame document")
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = DefaultOptions().LineWidth
	}
	l := applog.WithOperation(applog.WithComponent("overlay"), "render")
	scale := doc.Scale()
	reports := make([]ShapeReport, 0, len(doc.Paths)+len(doc.Quads))

	for i, shape := range doc.Paths {
		name := shapeName(shape.Name, "path", i)
		b := highlight.EmptyBounds()
		p, err := highlight.BuildPath(shape.Path, b, scale)
		if err != nil {
			return reports, fmt.Errorf("%s: %w", name, err)
		}
		if err := fill(s, p, shape.FillColor, vector.NonZero); err != nil {
			return reports, fmt.Errorf("%s: %w", name, err)
		}
		if shape.HatchColor != "" {
			col, err := vector.ParseColor(shape.HatchColor)
			if err != nil {
				return reports, fmt.Errorf("%s: hatch color: %w", name, err)
			}
			h := Hatch{}
			if shape.Hatch != nil {
				h = *shape.Hatch
			}
			if h.Delta == 0 {
				h.Delta = opts.HatchDelta
			}
			highlight.HatchFillPath(s, p, b.Bounds, h.Delta, col, h.Angle, h.Flip)
		}
		style := &vector.LineStyle{Color: shape.OutlineColor, Pattern: shape.OutlinePattern}
		if err := highlight.DrawPathWithLineStyle(s, p, style, opts.LineWidth); err != nil {
			return reports, fmt.Errorf("%s: %w", name, err)
		}
		reports = append(reports, ShapeReport{Name: name, Kind: "path", Bounds: b.Bounds, Points: len(b.AllPoints)})
		l.Debug("path drawn", slog.String("name", name), slog.Int("points", len(b.AllPoints)))
	}

	for i, q := range doc.Quads {
		name := shapeName(q.Name, "quad", i)
		b := highlight.EmptyBounds()
		p, err := highlight.CreatePathForQuad(q.Outer, q.Clip, b, scale)
		if err != nil {
			return reports, fmt.Errorf("%s: %w", name, err)
		}
		if err := fill(s, p, q.FillColor, vector.EvenOdd); err != nil {
			return reports, fmt.Errorf("%s: %w", name, err)
		}
		style := &vector.LineStyle{Color: q.OutlineColor}
		if err := highlight.DrawPathWithLineStyle(s, p, style, opts.LineWidth); err != nil {
			return reports, fmt.Errorf("%s: %w", name, err)
		}
		reports = append(reports, ShapeReport{Name: name, Kind: "quad", Bounds: b.Bounds, Points: len(b.AllPoints)})
		l.Debug("quad drawn", slog.String("name", name), slog.Int("clips", len(q.Clip)))
	}
	return reports, nil
}

func fill(s highlight.Surface, p *vector.Path, color string, rule vector.FillRule) error {
	if color == "" {
		return nil
	}
	col, err := vector.ParseColor(color)
	if err != nil {
		return fmt.Errorf("fill color: %w", err)
	}
	s.Save()
	s.SetFillColor(col)
	s.Fill(p, rule)
	s.Restore()
	return nil
}

func shapeName(name, kind string, i int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("%s[%d]", kind, i)
}
