/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package highlight

import "math"

// Bounds is an axis-aligned extent. A fresh Bounds holds +Inf/-Inf sentinels so
// that the first point always tightens it.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Empty reports whether no point has been added yet.
func (b Bounds) Empty() bool { return b.MinX > b.MaxX || b.MinY > b.MaxY }

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Point is a rounded, scaled path coordinate.
type Point struct {
	X, Y int
}

// PathBounds extends Bounds with per-row and per-column extremes and the list
// of every visited point, in visit order.
type PathBounds struct {
	Bounds

	LeftmostXForY   map[int]int
	RightmostXForY  map[int]int
	TopmostYForX    map[int]int
	BottommostYForX map[int]int

	AllPoints []Point
}

// EmptyBounds returns a PathBounds with sentinel extents and no points.
func EmptyBounds() *PathBounds {
	return &PathBounds{
		Bounds: Bounds{
			MinX: math.Inf(1),
			MinY: math.Inf(1),
			MaxX: math.Inf(-1),
			MaxY: math.Inf(-1),
		},
		LeftmostXForY:   map[int]int{},
		RightmostXForY:  map[int]int{},
		TopmostYForX:    map[int]int{},
		BottommostYForX: map[int]int{},
	}
}

// add widens b to include (x, y). Maps are lazily created so a zero
// PathBounds is usable too; its extents then start at zero, not at the
// sentinels.
func (b *PathBounds) add(x, y int) {
	fx, fy := float64(x), float64(y)
	b.MinX = math.Min(b.MinX, fx)
	b.MaxX = math.Max(b.MaxX, fx)
	b.MinY = math.Min(b.MinY, fy)
	b.MaxY = math.Max(b.MaxY, fy)

	if b.LeftmostXForY == nil {
		b.LeftmostXForY = map[int]int{}
	}
	if b.RightmostXForY == nil {
		b.RightmostXForY = map[int]int{}
	}
	if b.TopmostYForX == nil {
		b.TopmostYForX = map[int]int{}
	}
	if b.BottommostYForX == nil {
		b.BottommostYForX = map[int]int{}
	}
	if v, ok := b.LeftmostXForY[y]; !ok || x < v {
		b.LeftmostXForY[y] = x
	}
	if v, ok := b.RightmostXForY[y]; !ok || x > v {
		b.RightmostXForY[y] = x
	}
	if v, ok := b.TopmostYForX[x]; !ok || y < v {
		b.TopmostYForX[x] = y
	}
	if v, ok := b.BottommostYForX[x]; !ok || y > v {
		b.BottommostYForX[x] = y
	}
	b.AllPoints = append(b.AllPoints, Point{X: x, Y: y})
}
