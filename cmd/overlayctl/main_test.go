/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"overlaykit/internal/config"
)

const frame = `{
  "width": 40, "height": 40, "scaleFactor": 2,
  "paths": [{
    "name": "content",
    "path": ["M", 1, 1, "L", 5, 1, "L", 5, 5, "L", 1, 5, "Z"],
    "fillColor": "rgba(111, 168, 220, .66)",
    "outlineColor": "#ff0000",
    "hatchColor": "black"
  }],
  "quads": [{
    "outer": {"p1": {"x": 0, "y": 0}, "p2": {"x": 20, "y": 0}, "p3": {"x": 20, "y": 20}, "p4": {"x": 0, "y": 20}},
    "clip": [{"p1": {"x": 5, "y": 5}, "p2": {"x": 15, "y": 5}, "p3": {"x": 15, "y": 15}, "p4": {"x": 5, "y": 15}}],
    "fillColor": "#00ff00"
  }]
}`

const protocolLog = `{"direction":"sent","timestamp":1,"message":{"id":1,"method":"Page.enable"}}
{"direction":"received","timestamp":3,"message":{"id":1,"result":{}}}
{"direction":"sent","timestamp":5,"message":{"id":2,"method":"DOM.getDocument","params":{"depth":1}}}
{"direction":"received","timestamp":7,"message":{"method":"Network.requestWillBeSent","params":{"requestId":"r1"}}}
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func runCmd(t *testing.T, cfg config.AppConfig, args ...string) (int, string) {
	t.Helper()
	var out bytes.Buffer
	code := run(context.Background(), cfg, args, &out)
	return code, out.String()
}

func TestRun_VersionAndUsage(t *testing.T) {
	code, out := runCmd(t, config.Defaults(), "version")
	if code != 0 || !strings.HasPrefix(out, "overlayctl ") {
		t.Fatalf("version: code=%d out=%q", code, out)
	}
	code, out = runCmd(t, config.Defaults())
	if code != 0 || !strings.Contains(out, "Usage:") {
		t.Fatalf("no args: code=%d out=%q", code, out)
	}
	code, out = runCmd(t, config.Defaults(), "frobnicate")
	if code != 2 || !strings.Contains(out, "unknown command") {
		t.Fatalf("unknown: code=%d out=%q", code, out)
	}
}

func TestRun_Render(t *testing.T) {
	in := writeTemp(t, "frame.json", frame)
	dir := t.TempDir()
	for _, name := range []string{"out.png", "out.svg", "out.pdf"} {
		out := filepath.Join(dir, name)
		code, msg := runCmd(t, config.Defaults(), "render", in, out)
		if code != 0 {
			t.Fatalf("render %s: code=%d out=%q", name, code, msg)
		}
		if st, err := os.Stat(out); err != nil || st.Size() == 0 {
			t.Fatalf("render %s produced no file: %v", name, err)
		}
		if !strings.Contains(msg, "(2 shapes)") {
			t.Fatalf("unexpected message %q", msg)
		}
	}
}

func TestRun_RenderFallbackFormat(t *testing.T) {
	in := writeTemp(t, "frame.json", frame)
	cfg := config.Defaults()
	cfg.Render.Format = "svg"
	base := filepath.Join(t.TempDir(), "out")
	if code, msg := runCmd(t, cfg, "render", in, base); code != 0 {
		t.Fatalf("render: code=%d out=%q", code, msg)
	}
	data, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("expected svg output: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Fatalf("not an svg document")
	}
}

func TestRun_RenderErrors(t *testing.T) {
	if code, _ := runCmd(t, config.Defaults(), "render", "only-one-arg"); code != 2 {
		t.Fatalf("missing args should be a usage error, got %d", code)
	}
	missing := filepath.Join(t.TempDir(), "nope.json")
	code, out := runCmd(t, config.Defaults(), "render", missing, filepath.Join(t.TempDir(), "x.png"))
	if code != 1 || !strings.Contains(out, "Error:") {
		t.Fatalf("missing input: code=%d out=%q", code, out)
	}
	in := writeTemp(t, "frame.json", frame)
	if code, _ := runCmd(t, config.Defaults(), "render", in, filepath.Join(t.TempDir(), "x.gif")); code != 1 {
		t.Fatalf("unsupported format should fail, got %d", code)
	}
}

func TestRun_Bounds(t *testing.T) {
	in := writeTemp(t, "frame.json", frame)
	code, out := runCmd(t, config.Defaults(), "bounds", in)
	if code != 0 {
		t.Fatalf("bounds: code=%d out=%q", code, out)
	}
	for _, want := range []string{"content", "2,2 -> 10,10", "points=4", "quad[0]", "0,0 -> 40,40", "points=10"} {
		if !strings.Contains(out, want) {
			t.Errorf("bounds output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_Trace(t *testing.T) {
	in := writeTemp(t, "frame.json", frame)
	code, out := runCmd(t, config.Defaults(), "trace", in)
	if code != 0 {
		t.Fatalf("trace: code=%d out=%q", code, out)
	}
	for _, want := range []string{"save\n", "clip M2 2", "translate 0.5 0.5", " evenodd"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q", want)
		}
	}
}

func TestRun_Protocol(t *testing.T) {
	log := writeTemp(t, "log.jsonl", protocolLog)

	code, out := runCmd(t, config.Defaults(), "protocol", log)
	if code != 0 {
		t.Fatalf("protocol: code=%d out=%q", code, out)
	}
	for _, want := range []string{"Method", "Page.enable", "DOM.getDocument", "Network.requestWillBeSent", "3 messages"} {
		if !strings.Contains(out, want) {
			t.Errorf("protocol output missing %q:\n%s", want, out)
		}
	}

	_, out = runCmd(t, config.Defaults(), "protocol", log, "method:dom")
	if !strings.Contains(out, "DOM.getDocument") || strings.Contains(out, "Page.enable") || !strings.Contains(out, "1 messages") {
		t.Fatalf("filtered output unexpected:\n%s", out)
	}

	cfg := config.Defaults()
	cfg.Protocol.Ignore = []string{"Network.*"}
	_, out = runCmd(t, cfg, "protocol", "-docs", log)
	if strings.Contains(out, "Network.requestWillBeSent") || !strings.Contains(out, "2 messages") {
		t.Fatalf("ignored methods should not be recorded:\n%s", out)
	}
	if !strings.Contains(out, "https://chromedevtools.github.io/devtools-protocol/tot/DOM#method-getDocument") {
		t.Fatalf("docs link missing:\n%s", out)
	}
}

func TestRun_ProtocolColumnsAndSort(t *testing.T) {
	log := writeTemp(t, "log.jsonl", protocolLog)
	code, out := runCmd(t, config.Defaults(), "protocol", "-toggle", "timestamp", "-sort", "timestamp", "-desc", log)
	if code != 0 {
		t.Fatalf("protocol: code=%d out=%q", code, out)
	}
	if !strings.Contains(out, "Timestamp") || !strings.Contains(out, "5 ms") {
		t.Fatalf("timestamp column not shown:\n%s", out)
	}
	if strings.Index(out, "Network.requestWillBeSent") > strings.Index(out, "Page.enable") {
		t.Fatalf("descending sort expected newest first:\n%s", out)
	}
	if code, _ := runCmd(t, config.Defaults(), "protocol", "-toggle", "method", log); code != 1 {
		t.Fatalf("hiding the method column should fail, got %d", code)
	}
	if code, _ := runCmd(t, config.Defaults(), "protocol", "-sort", "request", log); code != 1 {
		t.Fatalf("sorting by request should fail, got %d", code)
	}
}

func TestExit_ClosesLogFirst(t *testing.T) {
	prevExit, prevClose := osExit, closeLog
	t.Cleanup(func() { osExit, closeLog = prevExit, prevClose })

	var calls []string
	closeLog = func() error { calls = append(calls, "close"); return nil }
	osExit = func(code int) { calls = append(calls, "exit "+strconv.Itoa(code)) }
	exit(3)
	if strings.Join(calls, ",") != "close,exit 3" {
		t.Fatalf("unexpected exit sequence %v", calls)
	}
}

func TestRun_Config(t *testing.T) {
	code, out := runCmd(t, config.Defaults(), "config")
	if code != 0 || !strings.Contains(out, "hatch_delta: 10") {
		t.Fatalf("config: code=%d out=%q", code, out)
	}
}
