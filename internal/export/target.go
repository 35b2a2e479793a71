/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"overlaykit/internal/vector"
)

// Format names an output file format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
)

// Target is a drawing surface that can be written to a file.
type Target interface {
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
	Depth() int
	SaveFile(path string) error
}

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatSVG, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// ErrNoExtension is returned by FormatFromPath for paths without an extension.
var ErrNoExtension = errors.New("path has no extension")

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot derive format from %q: %w", path, ErrNoExtension)
	}
	return ParseFormat(ext)
}

// New creates a surface of the given format and size.
func New(f Format, width, height int, bg vector.Color) (Target, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	switch f {
	case FormatPNG:
		return NewRaster(width, height, bg), nil
	case FormatSVG:
		return NewSVG(width, height, bg), nil
	case FormatPDF:
		return NewPDF(width, height, bg), nil
	}
	return nil, fmt.Errorf("unsupported format %q", f)
}
