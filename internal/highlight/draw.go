/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package highlight

import (
	"fmt"
	"math"

	"overlaykit/internal/vector"
)

// Surface is the subset of a 2D drawing context the overlay needs. State set
// through the setters, the transform and the clip is scoped by Save/Restore.
type Surface interface {
	Save()
	Restore()
	Translate(dx, dy float64)
	Rotate(radians float64)
	SetLineWidth(w float64)
	SetLineDash(pattern []float64)
	SetStrokeColor(c vector.Color)
	SetFillColor(c vector.Color)
	Stroke(p *vector.Path)
	Fill(p *vector.Path, rule vector.FillRule)
	Clip(p *vector.Path)
}

// DashPattern returns the dash array for a line pattern; nil means a
// continuous stroke.
func DashPattern(p vector.LinePattern) []float64 {
	switch p {
	case vector.Dashed:
		return []float64{3, 3}
	case vector.Dotted:
		return []float64{2, 2}
	}
	return nil
}

// DrawPathWithLineStyle strokes path with style. Lines are offset by half a
// pixel so that 1px outlines land on the pixel grid. Nothing is drawn when
// style is nil or has no color.
func DrawPathWithLineStyle(s Surface, path *vector.Path, style *vector.LineStyle, lineWidth float64) error {
	if style == nil || style.Color == "" {
		return nil
	}
	col, err := vector.ParseColor(style.Color)
	if err != nil {
		return fmt.Errorf("outline color: %w", err)
	}
	s.Save()
	defer s.Restore()
	s.Translate(0.5, 0.5)
	s.SetLineWidth(lineWidth)
	if dash := DashPattern(style.Pattern); dash != nil {
		s.SetLineDash(dash)
	}
	s.SetStrokeColor(col)
	s.Stroke(path)
	return nil
}

// hatchDash is the dash used for every hatch line.
var hatchDash = []float64{5, 3}

// HatchFillPath fills path with parallel dashed lines delta apart, rotated by
// rotationAngle degrees about the center of bounds:
//
//	__________
//	|\  \  \ |
//	| \  \  \|
//	|  \  \  |
//	|\  \  \ |
//	**********
//
// With flipDirection the lines lean the other way. Nothing is drawn for an
// empty bounds or a non-positive delta.
func HatchFillPath(s Surface, path *vector.Path, bounds Bounds, delta float64, color vector.Color, rotationAngle float64, flipDirection bool) {
	if bounds.Empty() || !(delta > 0) || path.Empty() {
		return
	}
	dx := bounds.Width()
	dy := bounds.Height()

	s.Save()
	defer s.Restore()
	s.Clip(path)
	s.SetLineDash(hatchDash)
	s.SetStrokeColor(color)

	major := math.Max(dx, dy)
	cx := bounds.MinX + dx/2
	cy := bounds.MinY + dy/2
	s.Translate(cx, cy)
	s.Rotate(rotationAngle * math.Pi / 180)
	s.Translate(-cx, -cy)

	n, step := hatchLines(major, delta)
	for k := 0; k < n; k++ {
		i := -major + float64(k)*step
		var line vector.Path
		if flipDirection {
			line.MoveTo(bounds.MaxX-i, bounds.MinY)
			line.LineTo(bounds.MaxX-dy-i, bounds.MaxY)
		} else {
			line.MoveTo(i+bounds.MinX, bounds.MinY)
			line.LineTo(dy+i+bounds.MinX, bounds.MaxY)
		}
		s.Stroke(&line)
	}
}

// Hatch density caps. Closer lines only repaint the same pixels.
const (
	maxHatchLinesPerUnit = 2
	maxHatchLines        = 1 << 16
)

// hatchLines returns how many lines cover [-major, major) and their spacing.
// The spacing is delta unless that would exceed the density caps, in which
// case it is widened to fit.
func hatchLines(major, delta float64) (int, float64) {
	if !(major > 0) || math.IsInf(major, 0) || !(delta > 0) {
		return 0, delta
	}
	limit := math.Min(math.Ceil(2*major*maxHatchLinesPerUnit), maxHatchLines)
	n := math.Max(1, math.Ceil(2*major/delta))
	if n > limit {
		return int(limit), 2 * major / limit
	}
	return int(n), delta
}

// ApplyMatrixToPoint maps p through m. Projective matrices are normalised by
// the resulting w; affine ones leave it at 1.
func ApplyMatrixToPoint(p vector.Pt, m vector.Matrix) vector.Pt {
	x, y, _, w := m.Apply(p)
	if w != 0 && w != 1 {
		return vector.Pt{X: x / w, Y: y / w}
	}
	return vector.Pt{X: x, Y: y}
}
