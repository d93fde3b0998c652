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
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/walteh/sweeptext/pkg/rule"
	"github.com/walteh/sweeptext/pkg/status"
	"github.com/walteh/sweeptext/pkg/text"
)

// OpenFunc opens a source file for reading
type OpenFunc func(path string) (io.ReadCloser, error)

func openFile(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// scanSource classifies every line of one source, buffering accepted lines and
// staging the survivors when the rule moves lines
func (s *Session) scanSource(ctx context.Context, name string) error {
	logger := zerolog.Ctx(ctx)

	f, err := s.open(filepath.Join(s.rule.Folder, name))
	if err != nil {
		return &SourceError{Name: name, Err: err}
	}
	lines, err := text.ReadLines(f)
	f.Close()
	if err != nil {
		return &SourceError{Name: name, Err: err}
	}

	survivors := make([]string, 0, len(lines))
	removed := 0

	for i, line := range lines {
		outcome := s.classify(name, i+1, line)
		s.report.AddLine(outcome)

		if outcome.Status != status.LineAccepted || s.rule.Action != rule.ActionMove {
			survivors = append(survivors, line)
			continue
		}
		removed++
	}

	logger.Debug().
		Str("source", name).
		Int("lines", len(lines)).
		Int("removed", removed).
		Msg("scanned source")

	if s.rule.Action != rule.ActionMove {
		return nil
	}

	staged, err := s.rewriter.Rewrite(name, survivors, removed)
	if err != nil {
		return err
	}
	if staged {
		s.staged = append(s.staged, name)
		s.files[name] = &status.FileOutcome{
			Name:    name,
			Role:    status.RoleSource,
			Status:  status.StatusStaged,
			Removed: removed,
			Content: text.Join(survivors),
		}
	}
	return nil
}

// classify matches one line and, when its target exists, places it
func (s *Session) classify(source string, lineNo int, line string) status.LineOutcome {
	outcome := status.LineOutcome{
		Source: source,
		Line:   lineNo,
		Text:   line,
		Status: status.LineUnmatched,
	}

	m, ok := s.rule.Match(line)
	if !ok {
		return outcome
	}

	outcome.Target = m.Target()
	if err := s.resolver.Resolve(outcome.Target); err != nil {
		outcome.Status = status.LineTargetMissing
		outcome.Err = err
		return outcome
	}

	s.place(source, line, m)
	outcome.Status = status.LineAccepted
	return outcome
}

// place applies the per-line rewrites and buffers the result
func (s *Session) place(source, line string, m *rule.Match) {
	opts := s.rule.Options
	target := m.Target()

	if opts.CleanMatch {
		body, _ := text.RemoveFirst(text.TrimEOL(line), m.Text)
		line = body + text.EOL(line)
	}
	if opts.AddLinks {
		line = text.AppendMarker(line, s.rule.LinkMarker(source))
	}
	// the last header source is shared by every target
	if opts.AddHeaders && s.lastHeaderSource != source {
		s.buffer.Append(target, Fragment{
			Kind:   FragmentHeader,
			Text:   text.EnsureEOL(s.rule.HeaderMarker(source)),
			Source: source,
		})
		s.lastHeaderSource = source
	}

	s.buffer.Append(target, Fragment{
		Kind:   FragmentLine,
		Text:   text.EnsureEOL(line),
		Source: source,
	})
}
