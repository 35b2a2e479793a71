/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package protocol

import (
	"strings"
	"testing"
)

const sampleLog = `{"direction":"sent","target":"page","timestamp":3,"message":{"id":1,"method":"Runtime.enable"}}

{"direction":"received","timestamp":7,"message":{"method":"Runtime.executionContextCreated","params":{"context":{"id":1}}}}
{"direction":"received","timestamp":9,"message":{"id":1,"result":{}}}
`

func TestReadJSONLinesAndReplay(t *testing.T) {
	entries, err := ReadJSONLines(strings.NewReader(sampleLog))
	if err != nil {
		t.Fatalf("ReadJSONLines: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Message.Target != "page" || *entries[0].Message.ID != 1 {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}

	m := NewMonitor()
	m.Replay(entries)
	nodes := m.Nodes()
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	if nodes[0].Timestamp != 3 || nodes[0].Response == Pending || nodes[0].Target != "page" {
		t.Fatalf("request not paired: %+v", nodes[0])
	}
	if nodes[1].Timestamp != 7 || nodes[1].Direction != Received {
		t.Fatalf("unexpected event: %+v", nodes[1])
	}
}

func TestReadJSONLines_Errors(t *testing.T) {
	cases := map[string]string{
		"bad json":      "{\"direction\":\"sent\",\n",
		"bad direction": "{\"direction\":\"sideways\",\"message\":{}}\n",
	}
	for name, in := range cases {
		if _, err := ReadJSONLines(strings.NewReader(in)); err == nil || !strings.Contains(err.Error(), "line 1") {
			t.Errorf("%s: expected a line 1 error, got %v", name, err)
		}
	}
}
