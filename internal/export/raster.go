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
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	xvector "golang.org/x/image/vector"

	"overlaykit/internal/vector"
)

// Raster is an anti-aliased RGBA surface. Strokes use butt caps; dashes are
// split along the flattened outline.
type Raster struct {
	stateStack
	img   *image.RGBA
	ras   *xvector.Rasterizer
	clip  *image.Alpha   // nil means unclipped
	clips []*image.Alpha // clip masks saved with each Save
}

// NewRaster creates a width x height surface filled with bg.
func NewRaster(width, height int, bg vector.Color) *Raster {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if !bg.IsZero() {
		draw.Draw(img, img.Bounds(), &image.Uniform{C: toNRGBA(bg)}, image.Point{}, draw.Src)
	}
	return &Raster{
		stateStack: newStateStack("raster"),
		img:        img,
		ras:        xvector.NewRasterizer(width, height),
	}
}

// Image returns the backing image.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Save() {
	r.stateStack.save()
	r.clips = append(r.clips, r.clip)
}

func (r *Raster) Restore() {
	if _, ok := r.stateStack.restore(); !ok {
		return
	}
	r.clip = r.clips[len(r.clips)-1]
	r.clips = r.clips[:len(r.clips)-1]
}

func (r *Raster) Fill(p *vector.Path, rule vector.FillRule) {
	lines := r.devicePolylines(p)
	if len(lines) == 0 {
		return
	}
	area := r.maskRect(lines, true)
	var cov *image.Alpha
	if rule == vector.EvenOdd && len(lines) > 1 {
		// x/image/vector only knows non-zero; combine subpaths pairwise with
		// coverage XOR instead.
		for _, l := range lines {
			m := r.coverage([]vector.Polyline{l}, true, area)
			if cov == nil {
				cov = m
				continue
			}
			xorAlpha(cov, m)
		}
	} else {
		cov = r.coverage(lines, true, area)
	}
	r.paint(cov, r.cur.fill)
}

func (r *Raster) Stroke(p *vector.Path) {
	runs := r.strokeOutlines(p)
	if len(runs) == 0 {
		return
	}
	hw := r.cur.lineWidth / 2
	var quads []vector.Polyline
	for _, run := range runs {
		for k := 1; k < len(run.Pts); k++ {
			a, b := run.Pts[k-1], run.Pts[k]
			l := hypot(a, b)
			if l == 0 {
				continue
			}
			nx, ny := -(b.Y-a.Y)/l*hw, (b.X-a.X)/l*hw
			q := vector.Polyline{Closed: true, Pts: []vector.Pt{
				{X: a.X + nx, Y: a.Y + ny},
				{X: b.X + nx, Y: b.Y + ny},
				{X: b.X - nx, Y: b.Y - ny},
				{X: a.X - nx, Y: a.Y - ny},
			}}
			for i, pt := range q.Pts {
				q.Pts[i] = r.cur.ctm.Apply2D(pt)
			}
			quads = append(quads, q)
		}
	}
	if len(quads) == 0 {
		return
	}
	r.paint(r.coverage(quads, true, r.maskRect(quads, true)), r.cur.stroke)
}

func (r *Raster) Clip(p *vector.Path) {
	lines := r.devicePolylines(p)
	m := r.coverage(lines, false, r.maskRect(lines, false))
	if r.clip != nil {
		mulAlpha(m, r.clip)
	}
	r.clip = m
	r.cur.clips++
}

// maskRect returns the pixel area touched by lines, limited to the image and,
// when clipped is set, to the current clip.
func (r *Raster) maskRect(lines []vector.Polyline, clipped bool) image.Rectangle {
	b := r.img.Bounds()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, l := range lines {
		for _, pt := range l.Pts {
			minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
			minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
		}
	}
	if !(minX <= maxX && minY <= maxY) {
		return image.Rectangle{}
	}
	clamp := func(v float64, lo, hi int) int {
		return int(math.Max(float64(lo), math.Min(float64(hi), v)))
	}
	area := image.Rect(
		clamp(math.Floor(minX), b.Min.X, b.Max.X),
		clamp(math.Floor(minY), b.Min.Y, b.Max.Y),
		clamp(math.Ceil(maxX), b.Min.X, b.Max.X),
		clamp(math.Ceil(maxY), b.Min.Y, b.Max.Y),
	)
	if clipped && r.clip != nil {
		area = area.Intersect(r.clip.Rect)
	}
	return area
}

// coverage rasterises closed polylines into a fresh alpha mask covering area.
// Pixels outside area have no coverage. When clipped is set, the current clip
// is applied to the mask.
func (r *Raster) coverage(lines []vector.Polyline, clipped bool, area image.Rectangle) *image.Alpha {
	mask := image.NewAlpha(area)
	if area.Empty() {
		return mask
	}
	r.ras.Reset(area.Dx(), area.Dy())
	ox, oy := float64(area.Min.X), float64(area.Min.Y)
	drawn := false
	for _, l := range lines {
		if len(l.Pts) < 2 {
			continue
		}
		r.ras.MoveTo(float32(l.Pts[0].X-ox), float32(l.Pts[0].Y-oy))
		for _, pt := range l.Pts[1:] {
			r.ras.LineTo(float32(pt.X-ox), float32(pt.Y-oy))
		}
		r.ras.ClosePath()
		drawn = true
	}
	if drawn {
		r.ras.Draw(mask, area, image.Opaque, image.Point{})
	}
	if clipped && r.clip != nil {
		mulAlpha(mask, r.clip)
	}
	return mask
}

func (r *Raster) paint(mask *image.Alpha, c vector.Color) {
	if c.A == 0 || mask.Rect.Empty() {
		return
	}
	draw.DrawMask(r.img, mask.Rect, &image.Uniform{C: toNRGBA(c)}, image.Point{}, mask, mask.Rect.Min, draw.Over)
}

// WritePNG encodes the surface as PNG.
func (r *Raster) WritePNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SaveFile writes the surface to path, creating parent directories.
func (r *Raster) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := r.WritePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}

func toNRGBA(c vector.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// mulAlpha scales dst by src pixel by pixel. src is zero outside its bounds.
func mulAlpha(dst, src *image.Alpha) {
	for y := dst.Rect.Min.Y; y < dst.Rect.Max.Y; y++ {
		for x := dst.Rect.Min.X; x < dst.Rect.Max.X; x++ {
			i := dst.PixOffset(x, y)
			dst.Pix[i] = uint8((uint16(dst.Pix[i])*uint16(src.AlphaAt(x, y).A) + 127) / 255)
		}
	}
}

// xorAlpha sets dst to a + b - 2ab, the coverage form of even-odd overlap.
// Both masks must cover the same area.
func xorAlpha(dst, src *image.Alpha) {
	for i := range dst.Pix {
		a := float64(dst.Pix[i]) / 255
		b := float64(src.Pix[i]) / 255
		v := a + b - 2*a*b
		dst.Pix[i] = uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
}
