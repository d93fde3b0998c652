// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sweep

import (
	"github.com/walteh/sweeptext/pkg/rule"
	"github.com/walteh/sweeptext/pkg/text"
)

// 🔀 Merge combines a target's original lines with buffered fragments under
// mode. Fragments keep their order and are never altered.
func Merge(mode rule.InsertMode, original, fragments []string) []string {
	out := make([]string, 0, len(original)+len(fragments))

	switch mode {
	case rule.InsertOverwrite:
		return append(out, fragments...)
	case rule.InsertTop:
		out = append(out, fragments...)
		return append(out, original...)
	case rule.InsertAfterBlank:
		for i, line := range original {
			if text.IsBlank(line) {
				out = append(out, original[:i+1]...)
				out = append(out, fragments...)
				return append(out, original[i+1:]...)
			}
		}
		return appendTerminated(out, original, fragments)
	default:
		return appendTerminated(out, original, fragments)
	}
}

// appendTerminated puts fragments after original, closing an unterminated
// final line first so the two never fuse
func appendTerminated(out, original, fragments []string) []string {
	out = append(out, original...)
	if n := len(out); n > 0 {
		out[n-1] = text.EnsureEOL(out[n-1])
	}
	return append(out, fragments...)
}
