/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor parses the CSS color forms used by highlight configs:
// #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(...), rgba(...) and named colors.
func ParseColor(s string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return Color{}, fmt.Errorf("empty color")
	case v == "transparent":
		return Transparent, nil
	case strings.HasPrefix(v, "#"):
		return parseHex(v[1:])
	case strings.HasPrefix(v, "rgba(") || strings.HasPrefix(v, "rgb("):
		return parseFunc(v)
	}
	if c, ok := colornames.Map[v]; ok {
		return Color{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return Color{}, fmt.Errorf("unknown color %q", s)
}

// MustParseColor is ParseColor for literals known to be valid.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(h string) (Color, error) {
	expand := func(b byte) string { return string([]byte{b, b}) }
	switch len(h) {
	case 3:
		h = expand(h[0]) + expand(h[1]) + expand(h[2]) + "ff"
	case 4:
		h = expand(h[0]) + expand(h[1]) + expand(h[2]) + expand(h[3])
	case 6:
		h += "ff"
	case 8:
	default:
		return Color{}, fmt.Errorf("invalid hex color #%s", h)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color #%s: %w", h, err)
	}
	return Color{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

func parseFunc(v string) (Color, error) {
	open := strings.IndexByte(v, '(')
	if !strings.HasSuffix(v, ")") {
		return Color{}, fmt.Errorf("invalid color function %q", v)
	}
	body := strings.NewReplacer(",", " ", "/", " ").Replace(v[open+1 : len(v)-1])
	parts := strings.Fields(body)
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("invalid color function %q", v)
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		f, err := parseComponent(parts[i], 255)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color function %q: %w", v, err)
		}
		ch[i] = uint8(f)
	}
	alpha := uint8(255)
	if len(parts) == 4 {
		f, err := parseComponent(parts[3], 1)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color function %q: %w", v, err)
		}
		alpha = uint8(math.Round(f * 255))
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

// parseComponent parses a number or percentage and clamps it to [0, max].
func parseComponent(s string, max float64) (float64, error) {
	pct := strings.HasSuffix(s, "%")
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, err
	}
	if pct {
		f = f / 100 * max
	}
	f = math.Max(0, math.Min(max, f))
	if max > 1 {
		f = math.Round(f)
	}
	return f, nil
}

// CSS renders c as an rgba() string.
func (c Color) CSS() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B,
		strconv.FormatFloat(float64(c.A)/255, 'f', -1, 64))
}
