/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package protocol

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Column describes one log column.
type Column struct {
	ID       string
	Title    string
	Visible  bool
	Sortable bool
	Hideable bool
	Weight   int
}

var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrNotSortable   = errors.New("column is not sortable")
	ErrNotHideable   = errors.New("column cannot be hidden")
)

// DefaultColumns returns the initial column layout.
func DefaultColumns() []Column {
	return []Column{
		{ID: "method", Title: "Method", Visible: true, Sortable: true, Hideable: false, Weight: 60},
		{ID: "direction", Title: "Direction", Visible: false, Sortable: true, Hideable: true, Weight: 30},
		{ID: "request", Title: "Request", Visible: true, Sortable: false, Hideable: true, Weight: 60},
		{ID: "response", Title: "Response", Visible: true, Sortable: false, Hideable: true, Weight: 60},
		{ID: "timestamp", Title: "Timestamp", Visible: false, Sortable: true, Hideable: true, Weight: 30},
		{ID: "target", Title: "Target", Visible: false, Sortable: true, Hideable: true, Weight: 30},
	}
}

// Columns returns a copy of the current column layout.
func (m *Monitor) Columns() []Column {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Column(nil), m.columns...)
}

// ToggleColumn flips the visibility of a hideable column and returns the
// new state.
func (m *Monitor) ToggleColumn(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.columns {
		c := &m.columns[i]
		if c.ID != id {
			continue
		}
		if !c.Hideable {
			return c.Visible, fmt.Errorf("%s: %w", id, ErrNotHideable)
		}
		c.Visible = !c.Visible
		return c.Visible, nil
	}
	return false, fmt.Errorf("%s: %w", id, ErrUnknownColumn)
}

// VisibleColumns returns the ids of the visible columns in layout order.
func (m *Monitor) VisibleColumns() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for _, c := range m.columns {
		if c.Visible {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Sort sets the order used by Visible. Method, direction and target compare
// as strings, timestamp numerically; equal keys keep arrival order.
func (m *Monitor) Sort(column string, ascending bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.columns {
		if c.ID != column {
			continue
		}
		if !c.Sortable {
			return fmt.Errorf("%s: %w", column, ErrNotSortable)
		}
		m.sortCol = column
		m.ascending = ascending
		return nil
	}
	return fmt.Errorf("%s: %w", column, ErrUnknownColumn)
}

// Visible returns the nodes that pass the active filter, in sort order.
func (m *Monitor) Visible() []Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Node
	for _, n := range m.nodes {
		if m.filter.Match(n) {
			out = append(out, *n)
		}
	}
	less := compareBy(m.sortCol)
	sort.SliceStable(out, func(i, j int) bool {
		c := less(&out[i], &out[j])
		if !m.ascending {
			c = -c
		}
		if c == 0 {
			return out[i].seq < out[j].seq
		}
		return c < 0
	})
	return out
}

func compareBy(column string) func(a, b *Node) int {
	switch column {
	case "method":
		return func(a, b *Node) int { return strings.Compare(a.Method, b.Method) }
	case "direction":
		return func(a, b *Node) int { return strings.Compare(string(a.Direction), string(b.Direction)) }
	case "target":
		return func(a, b *Node) int { return strings.Compare(a.Target, b.Target) }
	}
	return func(a, b *Node) int {
		switch {
		case a.Timestamp < b.Timestamp:
			return -1
		case a.Timestamp > b.Timestamp:
			return 1
		}
		return 0
	}
}

// CellWidth is the longest cell text before it is cut with an ellipsis.
const CellWidth = 50

// Cell renders the text shown for n in column. Strings are shown as is,
// other payloads as compact JSON, timestamps in milliseconds.
func (n Node) Cell(column string) string {
	switch column {
	case "method":
		return n.Method
	case "direction":
		return string(n.Direction)
	case "target":
		return n.Target
	case "timestamp":
		return strconv.FormatInt(n.Timestamp, 10) + " ms"
	case "request":
		return payload(n.Request)
	case "response":
		if n.Response == nil && n.Direction == Sent {
			return Pending
		}
		return payload(n.Response)
	}
	return ""
}

func payload(v any) string {
	var s string
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		s = x
	default:
		s = encode(x)
	}
	return truncate(s, CellWidth)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}
