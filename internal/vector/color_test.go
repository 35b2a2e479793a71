/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want Color
	}{
		{"#f00", Color{255, 0, 0, 255}},
		{"#0f08", Color{0, 255, 0, 136}},
		{"#6fa8dc", Color{0x6f, 0xa8, 0xdc, 255}},
		{"#6fa8dc80", Color{0x6f, 0xa8, 0xdc, 0x80}},
		{"rgb(1, 2, 3)", Color{1, 2, 3, 255}},
		{"rgba(255, 0, 0, 0.5)", Color{255, 0, 0, 128}},
		{"RGBA(10 20 30 / 1)", Color{10, 20, 30, 255}},
		{"rgb(100%, 0%, 0%)", Color{255, 0, 0, 255}},
		{"red", Color{255, 0, 0, 255}},
		{"transparent", Transparent},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		if err != nil {
			t.Errorf("ParseColor(%q) error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "#12", "#xyz", "rgb(1,2)", "rgba(1,2,3,4,5)", "notacolor"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) expected error", in)
		}
	}
}

func TestColorCSS(t *testing.T) {
	if got := (Color{1, 2, 3, 255}).CSS(); got != "rgba(1, 2, 3, 1)" {
		t.Fatalf("unexpected css: %s", got)
	}
}
