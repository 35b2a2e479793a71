/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package protocol records inspector protocol traffic. Requests are paired
// with their responses by id, events are logged as they arrive, and the log
// can be filtered and sorted the way the protocol monitor panel does.
package protocol

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	applog "overlaykit/internal/log"
)

// Direction tells whether a message went to the backend or came from it.
type Direction string

const (
	Sent     Direction = "sent"
	Received Direction = "received"
)

// Pending is the response placeholder of a request still awaiting its reply.
const Pending = "(pending)"

// Message is one protocol message. Responses carry the id of their request
// and either Result or Error; events have no id.
type Message struct {
	ID     *int64 `json:"id,omitempty"`
	Method string `json:"method,omitempty"`
	Params any    `json:"params,omitempty"`
	Result any    `json:"result,omitempty"`
	Error  any    `json:"error,omitempty"`
	Target string `json:"-"`
}

// Node is one row of the monitor log.
type Node struct {
	ID        *int64    `json:"id,omitempty"`
	Method    string    `json:"method"`
	Direction Direction `json:"direction"`
	Request   any       `json:"request"`
	Response  any       `json:"response"`
	Timestamp int64     `json:"timestamp"` // ms since the monitor started
	Target    string    `json:"target"`
	HasError  bool      `json:"-"`

	seq int
}

// Monitor collects nodes. It is safe for concurrent use.
type Monitor struct {
	mu        sync.Mutex
	nodes     []*Node
	byID      map[int64]*Node
	recording bool
	now       func() time.Time
	start     time.Time
	seq       int
	session   string

	filter    Filter
	sortCol   string
	ascending bool
	columns   []Column
	methods   *MethodMatcher

	log *slog.Logger
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithClock replaces time.Now as the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

// WithMethods only records messages whose method passes mm.
func WithMethods(mm *MethodMatcher) Option {
	return func(m *Monitor) { m.methods = mm }
}

// NewMonitor returns a recording monitor whose clock starts now.
func NewMonitor(opts ...Option) *Monitor {
	m := &Monitor{
		byID:      map[int64]*Node{},
		recording: true,
		now:       time.Now,
		session:   uuid.New().String(),
		sortCol:   "timestamp",
		ascending: true,
		columns:   DefaultColumns(),
	}
	for _, o := range opts {
		o(m)
	}
	m.start = m.now()
	m.log = applog.WithComponent("protocol").With(slog.String("session", m.session))
	return m
}

// Session returns the unique id of this monitor, used to tag its log lines.
func (m *Monitor) Session() string { return m.session }

// SetRecording turns recording on or off. While off, messages are dropped.
func (m *Monitor) SetRecording(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recording = on
	m.log.Debug("recording", slog.Bool("on", on))
}

// Recording reports whether messages are being recorded.
func (m *Monitor) Recording() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recording
}

// Clear drops every node and forgets pending request ids.
func (m *Monitor) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nodes = nil
	m.byID = map[int64]*Node{}
}

// Sent records an outgoing request.
func (m *Monitor) Sent(msg Message) { m.sent(msg, m.elapsed()) }

// Received records an incoming message. A response updates the request it
// answers; a response to an unknown id is ignored. Anything without an id is
// logged as an event.
func (m *Monitor) Received(msg Message) { m.received(msg, m.elapsed()) }

func (m *Monitor) elapsed() int64 {
	return m.now().Sub(m.start).Milliseconds()
}

func (m *Monitor) sent(msg Message, ts int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.recording || !m.methods.Allows(msg.Method) {
		return
	}
	n := &Node{
		ID:        copyID(msg.ID),
		Method:    msg.Method,
		Direction: Sent,
		Request:   msg.Params,
		Response:  Pending,
		Timestamp: ts,
		Target:    msg.Target,
	}
	if msg.ID != nil {
		m.byID[*msg.ID] = n
	}
	m.push(n)
}

func (m *Monitor) received(msg Message, ts int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.recording {
		return
	}
	if msg.ID != nil {
		n, ok := m.byID[*msg.ID]
		if !ok {
			m.log.Debug("response for unknown request", slog.Int64("id", *msg.ID))
			return
		}
		if msg.Result != nil {
			n.Response = msg.Result
		} else {
			n.Response = msg.Error
		}
		n.HasError = msg.Error != nil
		return
	}
	if !m.methods.Allows(msg.Method) {
		return
	}
	m.push(&Node{
		Method:    msg.Method,
		Direction: Received,
		Request:   "",
		Response:  msg.Params,
		Timestamp: ts,
		Target:    msg.Target,
	})
}

func (m *Monitor) push(n *Node) {
	m.seq++
	n.seq = m.seq
	m.nodes = append(m.nodes, n)
}

// Nodes returns a snapshot of every node in arrival order.
func (m *Monitor) Nodes() []Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Node, len(m.nodes))
	for i, n := range m.nodes {
		out[i] = *n
	}
	return out
}

// Len returns the number of recorded nodes.
func (m *Monitor) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.nodes)
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
