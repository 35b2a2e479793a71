/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"math"
	"testing"
)

func TestRectContainsAndUnion(t *testing.T) {
	r := R(10, 20, 100, 50)
	if !r.Contains(Pt{10, 20}) || !r.Contains(Pt{110, 70}) {
		t.Fatalf("expected edge points to be contained")
	}
	u := r.Union(R(0, 0, 5, 5))
	if u.X != 0 || u.Y != 0 || u.W != 110 || u.H != 70 {
		t.Fatalf("unexpected union: %+v", u)
	}
}

func TestMatrixBasic(t *testing.T) {
	m := Translate(10, 5).Mul(Scale(2, 3))
	p := m.Apply2D(Pt{1, 1})
	if p.X != 12 || p.Y != 8 { // (1*2+10, 1*3+5)
		t.Fatalf("unexpected transform result: %+v", p)
	}
	if !m.Is2D() {
		t.Fatalf("expected 2D matrix")
	}
}

func TestMatrixRotate(t *testing.T) {
	p := Rotate(math.Pi / 2).Apply2D(Pt{1, 0})
	if math.Abs(p.X) > 1e-9 || math.Abs(p.Y-1) > 1e-9 {
		t.Fatalf("unexpected rotation result: %+v", p)
	}
}

func TestNewMatrix2DMatchesDOMMatrixLayout(t *testing.T) {
	m := NewMatrix2D(1, 2, 3, 4, 5, 6)
	p := m.Apply2D(Pt{1, 1})
	// x' = a*x + c*y + e, y' = b*x + d*y + f
	if p.X != 9 || p.Y != 12 {
		t.Fatalf("unexpected result: %+v", p)
	}
}

func TestRoundHalfUp(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{2.5, 3},
		{-2.5, -2},
		{2.4, 2},
		{-2.6, -3},
		{0.5, 1},
		{-0.5, 0},
		{7, 7},
		{0.49999999999999994, 0},
		{-0.49999999999999994, 0},
		{-1.5, -1},
		{4503599627370495.5, 4503599627370496},
		{1e300, 1e300},
	}
	for _, c := range cases {
		if got := Round(c.in); got != c.want {
			t.Errorf("Round(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
