/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package protocol

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Entry is one line of a recorded protocol log:
//
//	{"direction":"sent","target":"page","timestamp":12,"message":{"id":1,"method":"Page.enable"}}
//
// Timestamp is optional; replayed entries without one get the monitor clock.
type Entry struct {
	Direction Direction `json:"direction"`
	Target    string    `json:"target,omitempty"`
	Timestamp *int64    `json:"timestamp,omitempty"`
	Message   Message   `json:"message"`
}

const maxLine = 16 << 20

// ReadJSONLines decodes a newline-delimited log. Blank lines are skipped.
func ReadJSONLines(r io.Reader) ([]Entry, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	var out []Entry
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(text), &e); err != nil {
			return out, fmt.Errorf("line %d: %w", line, err)
		}
		switch e.Direction {
		case Sent, Received:
		default:
			return out, fmt.Errorf("line %d: unknown direction %q", line, e.Direction)
		}
		e.Message.Target = e.Target
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("read protocol log: %w", err)
	}
	return out, nil
}

// Replay feeds entries to m in order.
func (m *Monitor) Replay(entries []Entry) {
	for _, e := range entries {
		ts := m.elapsed()
		if e.Timestamp != nil {
			ts = *e.Timestamp
		}
		if e.Direction == Sent {
			m.sent(e.Message, ts)
		} else {
			m.received(e.Message, ts)
		}
	}
}
