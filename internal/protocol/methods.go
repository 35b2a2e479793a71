/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package protocol

import (
	"fmt"

	"github.com/gobwas/glob"
)

// MethodMatcher decides which methods are recorded using glob patterns such
// as "Page.*" or "Network.{request,response}*".
type MethodMatcher struct {
	allowed []glob.Glob
	denied  []glob.Glob
}

// NewMethodMatcher compiles the patterns. With no allowed patterns every
// method is allowed unless denied.
func NewMethodMatcher(allowed, denied []string) (*MethodMatcher, error) {
	mm := &MethodMatcher{}
	for _, pattern := range allowed {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed pattern '%s': %w", pattern, err)
		}
		mm.allowed = append(mm.allowed, g)
	}
	for _, pattern := range denied {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid denied pattern '%s': %w", pattern, err)
		}
		mm.denied = append(mm.denied, g)
	}
	return mm, nil
}

// Allows reports whether method should be recorded. A nil matcher allows
// everything.
func (mm *MethodMatcher) Allows(method string) bool {
	if mm == nil {
		return true
	}
	// Denied patterns take precedence
	for _, g := range mm.denied {
		if g.Match(method) {
			return false
		}
	}
	if len(mm.allowed) == 0 {
		return true
	}
	for _, g := range mm.allowed {
		if g.Match(method) {
			return true
		}
	}
	return false
}
