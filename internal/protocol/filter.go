/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package protocol

import (
	"bytes"
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FilterKeys are the node fields a filter term can be scoped to.
var FilterKeys = []string{"method", "request", "response", "direction"}

// Term is one filter clause. A term without Key searches the whole node.
type Term struct {
	Key      string
	Text     string
	Negative bool
}

// Filter is a conjunction of terms.
type Filter []Term

// ParseFilter splits query on whitespace into terms. "key:text" scopes a
// term to a known key, a leading "-" negates it, and anything else is free
// text. An unknown key is kept as part of the text.
func ParseFilter(query string) Filter {
	var f Filter
	for _, tok := range strings.Fields(query) {
		neg := false
		if len(tok) > 1 && tok[0] == '-' {
			neg = true
			tok = tok[1:]
		}
		if i := strings.IndexByte(tok, ':'); i > 0 && isFilterKey(tok[:i]) {
			f = append(f, Term{Key: tok[:i], Text: tok[i+1:], Negative: neg})
			continue
		}
		f = append(f, Term{Text: tok, Negative: neg})
	}
	return f
}

func isFilterKey(k string) bool {
	for _, key := range FilterKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Match reports whether n passes every term. A term matches when its text is
// found, ignoring case, in the JSON encoding of the keyed field or of the
// whole node, unless the term is negated. Empty terms and terms on an empty
// field are skipped.
func (f Filter) Match(n *Node) bool {
	var whole string
	for _, t := range f {
		if t.Text == "" {
			continue
		}
		var hay string
		if t.Key == "" {
			if whole == "" {
				whole = fold(encode(n))
			}
			hay = whole
		} else {
			v := n.field(t.Key)
			if empty(v) {
				continue
			}
			hay = fold(encode(v))
		}
		found := strings.Contains(hay, fold(t.Text))
		if found == t.Negative {
			return false
		}
	}
	return true
}

func (n *Node) field(key string) any {
	switch key {
	case "method":
		return n.Method
	case "request":
		return n.Request
	case "response":
		return n.Response
	case "direction":
		return string(n.Direction)
	}
	return nil
}

// empty reports the values a filter treats as absent.
func empty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case float64:
		return x == 0
	case int:
		return x == 0
	case int64:
		return x == 0
	}
	return false
}

// encode renders v as compact JSON without HTML escaping.
func encode(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func fold(s string) string { return cases.Lower(language.Und).String(s) }

// SetFilter parses query and makes it the active filter.
func (m *Monitor) SetFilter(query string) {
	f := ParseFilter(query)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filter = f
}

// FilterForMethod returns the query that selects n's method.
func FilterForMethod(n Node) string { return "method:" + n.Method }
