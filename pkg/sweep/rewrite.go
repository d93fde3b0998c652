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
	"io"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/sweeptext/pkg/commit"
	"github.com/walteh/sweeptext/pkg/text"
)

// UpdatedSources is the ordered set of sources with staged survivors
type UpdatedSources struct {
	order []string
	set   map[string]bool
}

// NewUpdatedSources creates an empty set
func NewUpdatedSources() *UpdatedSources {
	return &UpdatedSources{set: make(map[string]bool)}
}

// Add records name, keeping the first insertion position
func (u *UpdatedSources) Add(name string) {
	if u.set[name] {
		return
	}
	u.set[name] = true
	u.order = append(u.order, name)
}

// Has reports whether name is pending
func (u *UpdatedSources) Has(name string) bool {
	return u.set[name]
}

// Remove drops name, typically because it is committed as a target instead
func (u *UpdatedSources) Remove(name string) {
	if !u.set[name] {
		return
	}
	delete(u.set, name)
	for i, n := range u.order {
		if n == name {
			u.order = append(u.order[:i], u.order[i+1:]...)
			break
		}
	}
}

// Names returns the pending names in insertion order
func (u *UpdatedSources) Names() []string {
	return append([]string(nil), u.order...)
}

// ✂️ Rewriter stages the survivors of sources that lost lines
type Rewriter struct {
	stage   commit.Stage
	updated *UpdatedSources
}

// NewRewriter creates a rewriter staging into stage and recording into updated
func NewRewriter(stage commit.Stage, updated *UpdatedSources) *Rewriter {
	return &Rewriter{stage: stage, updated: updated}
}

// Rewrite stages survivors as the new content of name when removed > 0.
// A source that lost every line is staged empty. It reports whether
// anything was staged.
func (w *Rewriter) Rewrite(name string, survivors []string, removed int) (bool, error) {
	if removed == 0 {
		return false, nil
	}
	if err := writeStaged(w.stage, name, text.Join(survivors)); err != nil {
		return false, errors.Errorf("staging survivors of %s: %w", name, err)
	}
	w.updated.Add(name)
	return true, nil
}

func writeStaged(stage commit.Stage, name, content string) error {
	wc, err := stage.Create(name)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(wc, content); err != nil {
		wc.Close()
		return errors.Errorf("writing staged content: %w", err)
	}
	return wc.Close()
}
