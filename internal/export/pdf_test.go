/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"overlaykit/internal/vector"
)

func TestPDF_WritesDocument(t *testing.T) {
	p := NewPDF(200, 100, vector.White)
	var curve vector.Path
	curve.MoveTo(10, 10)
	curve.QuadTo(50, 0, 90, 10)
	curve.CubicTo(100, 20, 110, 30, 120, 10)

	p.Save()
	p.Clip(rect(0, 0, 100, 100))
	p.SetLineDash([]float64{2, 2})
	p.SetStrokeColor(vector.Color{G: 128, A: 255})
	p.Stroke(&curve)
	p.Restore()
	p.SetFillColor(vector.Color{R: 255, A: 128})
	p.Fill(rect(20, 20, 60, 60), vector.EvenOdd)

	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a pdf")
	}
}

func TestPDF_WriteClosesOpenStates(t *testing.T) {
	p := NewPDF(50, 50, vector.Transparent)
	p.Save()
	p.Clip(rect(0, 0, 10, 10))
	path := filepath.Join(t.TempDir(), "open.pdf")
	if err := p.SaveFile(path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	st, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Size() <= 0 {
		t.Fatalf("pdf file empty")
	}
}
