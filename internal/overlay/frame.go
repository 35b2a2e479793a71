/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package overlay reads overlay frame documents and renders them onto a
// drawing surface. A frame is a JSON description of the highlight paths and
// quads the inspector draws for one pass.
package overlay

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"overlaykit/internal/highlight"
	"overlaykit/internal/vector"
)

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

// Schema returns the compiled frame document schema.
func Schema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return schema, schemaErr
}

// Doc is one overlay frame.
type Doc struct {
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	ScaleFactor float64     `json:"scaleFactor,omitempty"`
	Background  string      `json:"background,omitempty"`
	Paths       []PathShape `json:"paths,omitempty"`
	Quads       []QuadShape `json:"quads,omitempty"`
}

// PathShape is a highlight given as a flat command list.
type PathShape struct {
	Name           string             `json:"name,omitempty"`
	Path           highlight.Commands `json:"path"`
	FillColor      string             `json:"fillColor,omitempty"`
	OutlineColor   string             `json:"outlineColor,omitempty"`
	OutlinePattern vector.LinePattern `json:"outlinePattern,omitempty"`
	HatchColor     string             `json:"hatchColor,omitempty"`
	Hatch          *Hatch             `json:"hatch,omitempty"`
}

// Hatch tunes the hatch fill of a path. Zero values fall back to the render
// options.
type Hatch struct {
	Delta float64 `json:"delta,omitempty"`
	Angle float64 `json:"angle,omitempty"`
	Flip  bool    `json:"flip,omitempty"`
}

// QuadShape is a box given as an outer quad with optional clipped holes.
type QuadShape struct {
	Name         string           `json:"name,omitempty"`
	Outer        highlight.Quad   `json:"outer"`
	Clip         []highlight.Quad `json:"clip,omitempty"`
	FillColor    string           `json:"fillColor,omitempty"`
	OutlineColor string           `json:"outlineColor,omitempty"`
}

// Scale returns the device scale factor, 1 when unset.
func (d *Doc) Scale() float64 {
	if d.ScaleFactor == 0 {
		return 1
	}
	return d.ScaleFactor
}

// ValidationError lists the schema violations of a frame document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid frame document: " + strings.Join(e.Problems, "; ")
}

// ErrEmptyDocument is returned for empty input.
var ErrEmptyDocument = errors.New("empty frame document")

// Decode validates data against the frame schema and decodes it.
func Decode(data []byte) (*Doc, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptyDocument
	}
	sch, err := Schema()
	if err != nil {
		return nil, fmt.Errorf("load frame schema: %w", err)
	}
	res, err := sch.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("parse frame document: %w", err)
	}
	if !res.Valid() {
		ve := &ValidationError{}
		for _, re := range res.Errors() {
			ve.Problems = append(ve.Problems, re.String())
		}
		return nil, ve
	}
	var doc Doc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode frame document: %w", err)
	}
	return &doc, nil
}

// Load reads and decodes the frame document at path.
func Load(path string) (*Doc, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read frame: %w", err)
	}
	doc, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
