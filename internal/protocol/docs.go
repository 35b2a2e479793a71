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
	"strings"
)

// DocBaseURL is where the protocol reference lives.
const DocBaseURL = "https://chromedevtools.github.io/devtools-protocol/tot/"

// DocumentationURL returns the reference page anchor for n's method. Sent
// nodes link to the command, received ones to the event. ok is false when
// the method has no "Domain." prefix.
func DocumentationURL(n Node) (url string, ok bool) {
	domain, name, found := strings.Cut(n.Method, ".")
	if !found || domain == "" || name == "" {
		return "", false
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	kind := "event"
	if n.Direction == Sent {
		kind = "method"
	}
	return fmt.Sprintf("%s%s#%s-%s", DocBaseURL, domain, kind, name), true
}
