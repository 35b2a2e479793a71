/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Styles and paint definitions.

type Color struct{ R, G, B, A uint8 }

var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

// IsZero reports whether c is fully transparent black, the zero value.
func (c Color) IsZero() bool { return c == Transparent }

type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

// LinePattern selects the dash pattern of an outline.
type LinePattern string

const (
	Solid  LinePattern = "solid"
	Dotted LinePattern = "dotted"
	Dashed LinePattern = "dashed"
)

// LineStyle describes how an outline is stroked. An empty Color disables the
// outline.
type LineStyle struct {
	Color   string      `json:"color,omitempty" yaml:"color,omitempty"`
	Pattern LinePattern `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// BoxStyle describes the fill of a highlighted box.
type BoxStyle struct {
	FillColor  string `json:"fillColor,omitempty" yaml:"fill_color,omitempty"`
	HatchColor string `json:"hatchColor,omitempty" yaml:"hatch_color,omitempty"`
}
