/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"overlaykit/internal/config"
	"overlaykit/internal/export"
	applog "overlaykit/internal/log"
	"overlaykit/internal/overlay"
	"overlaykit/internal/vector"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func cmdRender(ctx context.Context, cfg config.AppConfig, args []string, stdout io.Writer) error {
	fs := newFlagSet("render")
	scale := fs.Float64("scale", 0, "scale factor for frames that do not set one")
	bg := fs.String("bg", "", "background color for frames that do not set one")
	format := fs.String("format", "", "output format when the file has no extension")
	lineWidth := fs.Float64("line-width", cfg.Render.LineWidth, "outline width")
	hatch := fs.Float64("hatch", cfg.Render.HatchDelta, "hatch line spacing")
	if err := fs.Parse(args); err != nil {
		return errUsage{msg: "render: " + err.Error()}
	}
	if fs.NArg() != 2 {
		return errUsage{msg: "render requires <frame.json> and <out>"}
	}
	in, out := fs.Arg(0), fs.Arg(1)

	doc, err := overlay.Load(in)
	if err != nil {
		return err
	}
	if doc.ScaleFactor == 0 {
		doc.ScaleFactor = firstNonZero(*scale, cfg.Render.ScaleFactor)
	}
	f, out, err := outputFormat(out, firstNonEmpty(*format, cfg.Render.Format))
	if err != nil {
		return err
	}
	bgColor, err := vector.ParseColor(firstNonEmpty(doc.Background, *bg, cfg.Render.Background))
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}
	target, err := export.New(f, doc.Width, doc.Height, bgColor)
	if err != nil {
		return err
	}
	reports, err := overlay.RenderWith(doc, target, overlay.Options{LineWidth: *lineWidth, HatchDelta: *hatch})
	if err != nil {
		return err
	}
	if err := target.SaveFile(out); err != nil {
		return err
	}
	applog.WithComponent("cli").InfoContext(ctx, "rendered", slog.String("in", in), slog.String("out", out), slog.Int("shapes", len(reports)))
	fmt.Fprintf(stdout, "Wrote %s (%d shapes)\n", out, len(reports))
	return nil
}

// outputFormat derives the format from the file extension, falling back to
// def and appending the matching extension.
func outputFormat(path, def string) (export.Format, string, error) {
	f, err := export.FormatFromPath(path)
	if err == nil {
		return f, path, nil
	}
	if !errors.Is(err, export.ErrNoExtension) {
		return "", path, err
	}
	f, err = export.ParseFormat(def)
	if err != nil {
		return "", path, err
	}
	return f, path + "." + string(f), nil
}

func cmdBounds(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return errUsage{msg: "bounds requires <frame.json>"}
	}
	doc, err := overlay.Load(args[0])
	if err != nil {
		return err
	}
	reports, err := overlay.Render(doc, export.NewRecorder())
	if err != nil {
		return err
	}
	for _, r := range reports {
		if r.Bounds.Empty() {
			fmt.Fprintf(stdout, "%-5s %-20s empty\n", r.Kind, r.Name)
			continue
		}
		fmt.Fprintf(stdout, "%-5s %-20s %g,%g -> %g,%g (%gx%g) points=%d\n",
			r.Kind, r.Name, r.Bounds.MinX, r.Bounds.MinY, r.Bounds.MaxX, r.Bounds.MaxY,
			r.Bounds.Width(), r.Bounds.Height(), r.Points)
	}
	applog.WithComponent("cli").DebugContext(ctx, "bounds", slog.Int("shapes", len(reports)))
	return nil
}

func cmdTrace(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return errUsage{msg: "trace requires <frame.json>"}
	}
	doc, err := overlay.Load(args[0])
	if err != nil {
		return err
	}
	rec := export.NewRecorder()
	if _, err := overlay.Render(doc, rec); err != nil {
		return err
	}
	applog.WithComponent("cli").DebugContext(ctx, "trace", slog.Int("calls", len(rec.Calls)))
	_, err = io.WriteString(stdout, rec.String())
	return err
}

func firstNonZero(vs ...float64) float64 {
	for _, v := range vs {
		if v != 0 {
			return v
		}
	}
	return 0
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}
