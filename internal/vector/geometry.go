/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Basic 2D geometry and transforms for overlay drawing.
// Values are float64 to match page coordinates reported by the inspected page.

import "math"

// Pt is a 2D point.
type Pt struct{ X, Y float64 }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Min() Pt { return Pt{r.X, r.Y} }
func (r Rect) Max() Pt { return Pt{r.X + r.W, r.Y + r.H} }

func (r Rect) Contains(p Pt) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Union returns the minimal rect containing both.
func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.X+r.W, o.X+o.W)
	maxY := math.Max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Matrix is a 4x4 transform laid out like a DOMMatrix. Field Mij is row i,
// column j; points are column vectors, so translation lives in M14/M24
// (DOMMatrix m41/m42).
type Matrix struct {
	M11, M12, M13, M14 float64
	M21, M22, M23, M24 float64
	M31, M32, M33, M34 float64
	M41, M42, M43, M44 float64
}

var Identity = Matrix{M11: 1, M22: 1, M33: 1, M44: 1}

// NewMatrix2D builds the matrix of the 2D affine transform
// | a c e |
// | b d f |
// | 0 0 1 |
// which is how a DOMMatrix is created from six values.
func NewMatrix2D(a, b, c, d, e, f float64) Matrix {
	m := Identity
	m.M11, m.M21 = a, b
	m.M12, m.M22 = c, d
	m.M14, m.M24 = e, f
	return m
}

// Is2D reports whether m only uses the 2D affine slots.
func (m Matrix) Is2D() bool {
	return m.M13 == 0 && m.M23 == 0 && m.M31 == 0 && m.M32 == 0 &&
		m.M33 == 1 && m.M34 == 0 && m.M41 == 0 && m.M42 == 0 && m.M43 == 0 && m.M44 == 1
}

// Mul returns m*n, i.e. n is applied first.
func (m Matrix) Mul(n Matrix) Matrix {
	a := m.rows()
	b := n.rows()
	var out [4][4]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var s float64
			for k := 0; k < 4; k++ {
				s += a[i][k] * b[k][j]
			}
			out[i][j] = s
		}
	}
	return fromRows(out)
}

// Apply maps (x, y, 0, 1) through m and returns the homogeneous result.
func (m Matrix) Apply(p Pt) (x, y, z, w float64) {
	x = m.M11*p.X + m.M12*p.Y + m.M14
	y = m.M21*p.X + m.M22*p.Y + m.M24
	z = m.M31*p.X + m.M32*p.Y + m.M34
	w = m.M41*p.X + m.M42*p.Y + m.M44
	return x, y, z, w
}

func (m Matrix) rows() [4][4]float64 {
	return [4][4]float64{
		{m.M11, m.M12, m.M13, m.M14},
		{m.M21, m.M22, m.M23, m.M24},
		{m.M31, m.M32, m.M33, m.M34},
		{m.M41, m.M42, m.M43, m.M44},
	}
}

func fromRows(r [4][4]float64) Matrix {
	return Matrix{
		M11: r[0][0], M12: r[0][1], M13: r[0][2], M14: r[0][3],
		M21: r[1][0], M22: r[1][1], M23: r[1][2], M24: r[1][3],
		M31: r[2][0], M32: r[2][1], M33: r[2][2], M34: r[2][3],
		M41: r[3][0], M42: r[3][1], M43: r[3][2], M44: r[3][3],
	}
}

func Translate(tx, ty float64) Matrix { return NewMatrix2D(1, 0, 0, 1, tx, ty) }
func Scale(sx, sy float64) Matrix     { return NewMatrix2D(sx, 0, 0, sy, 0, 0) }
func Rotate(rad float64) Matrix {
	c := math.Cos(rad)
	s := math.Sin(rad)
	return NewMatrix2D(c, s, -s, c, 0, 0)
}

// Apply2D maps p through the affine part of m, ignoring perspective.
func (m Matrix) Apply2D(p Pt) Pt {
	x, y, _, _ := m.Apply(p)
	return Pt{x, y}
}

// Round rounds half-way values towards positive infinity, the way the
// browser's Math.round does (2.5 -> 3, -2.5 -> -2).
// Adding 0.5 before flooring is not exact: 0.49999999999999994+0.5 rounds up
// to 1 in float64.
func Round(v float64) float64 {
	f := math.Floor(v)
	if v-f >= 0.5 {
		f++
	}
	return f
}
