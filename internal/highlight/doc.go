/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package highlight builds the paths drawn by the element-highlight overlay.
//
// Commands arrive as the flat token list produced by the inspected page
// (opcode characters interleaved with coordinates). BuildPath turns them into a
// vector.Path and, while doing so, accumulates a PathBounds record that label
// placement uses to avoid the highlighted shape. Drawing helpers operate on the
// Surface interface, implemented by the export package.
package highlight
