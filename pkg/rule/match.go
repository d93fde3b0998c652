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

package rule

import (
	"path/filepath"

	"github.com/walteh/sweeptext/pkg/text"
)

// 🔎 Match is one matched line
type Match struct {
	// Text is the full text matched by the pattern
	Text string
	// Captures maps each named capture to the text it matched. Captures that
	// did not take part in the match map to "".
	Captures map[string]string

	target string
}

// Match applies the rule's matcher to line without its line ending, so `$`
// anchors at the end of the text. The second result is false when the line
// does not match.
func (r *Rule) Match(line string) (*Match, bool) {
	line = text.TrimEOL(line)
	idx := r.matcher.FindStringSubmatchIndex(line)
	if idx == nil {
		return nil, false
	}

	m := &Match{
		Text:     line[idx[0]:idx[1]],
		Captures: make(map[string]string),
	}
	for i, name := range r.matcher.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		if start := idx[2*i]; start >= 0 {
			m.Captures[name] = line[start:idx[2*i+1]]
		} else {
			m.Captures[name] = ""
		}
	}

	m.target = filepath.Clean(placeholderRe.ReplaceAllStringFunc(r.Target, func(p string) string {
		return m.Captures[p[1:len(p)-1]]
	}))

	return m, true
}

// Target returns the target identity: the target template with every
// placeholder replaced by its capture, cleaned so that spellings of the same
// path (`./work.txt`, `work.txt`) share one identity
func (m *Match) Target() string {
	return m.target
}
