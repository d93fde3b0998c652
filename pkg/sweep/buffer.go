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

// FragmentKind tells a buffered line from a header
type FragmentKind int

const (
	FragmentLine FragmentKind = iota
	FragmentHeader
)

func (k FragmentKind) String() string {
	if k == FragmentHeader {
		return "header"
	}
	return "line"
}

// Fragment is one buffered piece of target content. Text always ends in a
// line ending.
type Fragment struct {
	Kind   FragmentKind
	Text   string
	Source string
}

// 📥 Buffer is an append-only ordered multimap from target identity to the
// fragments bound for it
type Buffer struct {
	order   []string
	entries map[string][]Fragment
}

// NewBuffer creates an empty buffer
func NewBuffer() *Buffer {
	return &Buffer{entries: make(map[string][]Fragment)}
}

// Append adds f to the end of target's entry
func (b *Buffer) Append(target string, f Fragment) {
	if _, ok := b.entries[target]; !ok {
		b.order = append(b.order, target)
	}
	b.entries[target] = append(b.entries[target], f)
}

// Targets returns the identities in the order they were first buffered
func (b *Buffer) Targets() []string {
	return append([]string(nil), b.order...)
}

// Fragments returns the fragments buffered for target
func (b *Buffer) Fragments(target string) []Fragment {
	return b.entries[target]
}

// Texts returns the text of every fragment buffered for target
func (b *Buffer) Texts(target string) []string {
	frags := b.entries[target]
	out := make([]string, len(frags))
	for i, f := range frags {
		out[i] = f.Text
	}
	return out
}

// Len returns the number of targets with buffered fragments
func (b *Buffer) Len() int {
	return len(b.order)
}
