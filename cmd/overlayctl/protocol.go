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
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"overlaykit/internal/config"
	applog "overlaykit/internal/log"
	"overlaykit/internal/protocol"
)

var (
	accent = lipgloss.Color("#FFB3BA")
	muted  = lipgloss.Color("#6B7280")
	danger = lipgloss.Color("#FF6B6B")

	headerCell  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	plainCell   = lipgloss.NewStyle()
	pendingCell = lipgloss.NewStyle().Foreground(muted)
	errorCell   = lipgloss.NewStyle().Foreground(danger)
	linkStyle   = lipgloss.NewStyle().Foreground(muted).Italic(true)
)

// columnWidth maps a column weight to a terminal cell width.
func columnWidth(c protocol.Column) int { return c.Weight/2 + 2 }

func cmdProtocol(ctx context.Context, cfg config.AppConfig, args []string, stdout io.Writer) error {
	fs := newFlagSet("protocol")
	sortBy := fs.String("sort", "timestamp", "sort column")
	desc := fs.Bool("desc", false, "sort descending")
	toggle := fs.String("toggle", "", "comma separated columns to show or hide")
	docs := fs.Bool("docs", false, "print the reference link of each row")
	if err := fs.Parse(args); err != nil {
		return errUsage{msg: "protocol: " + err.Error()}
	}
	if fs.NArg() < 1 {
		return errUsage{msg: "protocol requires <log.jsonl>"}
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()
	entries, err := protocol.ReadJSONLines(f)
	if err != nil {
		return fmt.Errorf("%s: %w", fs.Arg(0), err)
	}

	mm, err := protocol.NewMethodMatcher(cfg.Protocol.Record, cfg.Protocol.Ignore)
	if err != nil {
		return err
	}
	m := protocol.NewMonitor(protocol.WithMethods(mm))
	m.Replay(entries)
	if *toggle != "" {
		for _, id := range strings.Split(*toggle, ",") {
			if _, err := m.ToggleColumn(strings.TrimSpace(id)); err != nil {
				return err
			}
		}
	}
	if err := m.Sort(*sortBy, !*desc); err != nil {
		return err
	}
	m.SetFilter(strings.Join(fs.Args()[1:], " "))

	rows := m.Visible()
	applog.WithComponent("cli").DebugContext(ctx, "protocol log", slog.String("session", m.Session()),
		slog.Int("entries", len(entries)), slog.Int("recorded", m.Len()), slog.Int("shown", len(rows)))
	writeTable(stdout, visibleLayout(m), rows, *docs)
	return nil
}

func visibleLayout(m *protocol.Monitor) []protocol.Column {
	var cols []protocol.Column
	for _, c := range m.Columns() {
		if c.Visible {
			cols = append(cols, c)
		}
	}
	return cols
}

func writeTable(w io.Writer, cols []protocol.Column, rows []protocol.Node, docs bool) {
	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = renderCell(headerCell, c.Title, columnWidth(c))
	}
	fmt.Fprintln(w, strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " "))
	for _, n := range rows {
		for i, c := range cols {
			text := n.Cell(c.ID)
			style := plainCell
			switch {
			case n.HasError:
				style = errorCell
			case text == protocol.Pending:
				style = pendingCell
			}
			cells[i] = renderCell(style, text, columnWidth(c))
		}
		fmt.Fprintln(w, strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " "))
		if docs {
			if u, ok := protocol.DocumentationURL(n); ok {
				fmt.Fprintln(w, "  "+linkStyle.Render(u))
			}
		}
	}
	fmt.Fprintf(w, "%d messages\n", len(rows))
}

func renderCell(style lipgloss.Style, text string, width int) string {
	return style.Width(width).PaddingRight(1).MaxWidth(width).MaxHeight(1).Render(text)
}
