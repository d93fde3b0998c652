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
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/sweeptext/pkg/commit"
	"github.com/walteh/sweeptext/pkg/rule"
	"github.com/walteh/sweeptext/pkg/status"
	"github.com/walteh/sweeptext/pkg/text"
)

// Options overrides the filesystem seams of a session. The zero value works
// against the local disk.
type Options struct {
	// FS performs the renames of the commit phase
	FS commit.FS

	// Stage holds staged content. Defaults to files next to the live ones, or
	// to memory for dry runs.
	Stage commit.Stage

	// Stat checks target existence
	Stat StatFunc

	// Open reads source files. Defaults to os.Open.
	Open OpenFunc
}

// 🏃 Session carries the state of one run of one rule
type Session struct {
	rule      *rule.Rule
	stage     commit.Stage
	committer *commit.Committer
	resolver  *Resolver
	open      OpenFunc
	buffer    *Buffer
	updated   *UpdatedSources
	rewriter  *Rewriter
	report    *status.Report

	lastHeaderSource string

	// staged lists every name with staged content, in staging order
	staged []string
	files  map[string]*status.FileOutcome
}

// NewSession prepares a run of r
func NewSession(r *rule.Rule, opts Options) *Session {
	stage := opts.Stage
	if stage == nil {
		if r.DryRun {
			stage = commit.NewMemStage()
		} else {
			stage = commit.NewDiskStage(r.Folder)
		}
	}

	open := opts.Open
	if open == nil {
		open = openFile
	}

	updated := NewUpdatedSources()
	return &Session{
		rule:      r,
		stage:     stage,
		committer: commit.NewCommitter(r.Folder, opts.FS),
		resolver:  NewResolver(r.Folder, opts.Stat),
		open:      open,
		buffer:    NewBuffer(),
		updated:   updated,
		rewriter:  NewRewriter(stage, updated),
		report: &status.Report{
			Rule:   r.String(),
			Folder: r.Folder,
			DryRun: r.DryRun,
		},
		files: make(map[string]*status.FileOutcome),
	}
}

// Run executes r once against its folder
func Run(ctx context.Context, r *rule.Rule, opts Options) (*status.Report, error) {
	return NewSession(r, opts).Run(ctx)
}

// Buffer exposes the insertion buffer, mostly for inspection after a run
func (s *Session) Buffer() *Buffer {
	return s.buffer
}

// Run scans and merges everything into staging, then commits unless the rule
// is a dry run. The report is returned even when the run fails.
func (s *Session) Run(ctx context.Context) (*status.Report, error) {
	logger := zerolog.Ctx(ctx).With().Str("rule", s.rule.Name).Logger()
	ctx = logger.WithContext(ctx)

	logger.Debug().
		Str("matcher", s.rule.Matcher().String()).
		Str("folder", s.rule.Folder).
		Bool("dry_run", s.rule.DryRun).
		Msg("starting sweep")

	order, err := s.prepare(ctx)
	if err != nil {
		s.abandon(ctx, s.staged, nil)
		for _, name := range s.staged {
			if s.report.File(name) == nil {
				s.report.AddFile(*s.files[name])
			}
		}
		return s.report, err
	}

	if s.rule.DryRun {
		for _, name := range order {
			s.files[name].Status = status.StatusSkipped
		}
		logger.Debug().Int("files", len(order)).Msg("dry run, nothing committed")
		return s.report, nil
	}

	for i, name := range order {
		if err := ctx.Err(); err != nil {
			s.abandon(ctx, order[i:], nil)
			return s.report, errors.Errorf("commit interrupted: %w", err)
		}

		out := s.files[name]
		if err := s.committer.Commit(ctx, name); err != nil {
			out.Status = status.StatusFailed
			out.Err = err
			s.abandon(ctx, order[i+1:], err)
			return s.report, err
		}
		out.Status = status.StatusCommitted
	}

	logger.Debug().Int("files", len(order)).Msg("sweep committed")
	return s.report, nil
}

// prepare runs phase 1 and returns the commit order
func (s *Session) prepare(ctx context.Context) ([]string, error) {
	sources, err := s.rule.Selector().Select(ctx, s.rule.Folder)
	if err != nil {
		return nil, err
	}
	s.report.Sources = sources

	for _, name := range sources {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("scan interrupted: %w", err)
		}
		if err := s.scanSource(ctx, name); err != nil {
			return nil, err
		}
	}

	order := make([]string, 0, s.buffer.Len()+len(s.updated.Names()))
	for _, target := range s.buffer.Targets() {
		if err := s.mergeTarget(ctx, target); err != nil {
			return nil, err
		}
		order = append(order, target)
	}
	// sources merged as targets were dropped from the set above
	order = append(order, s.updated.Names()...)

	for _, name := range order {
		s.files[name] = s.report.AddFile(*s.files[name])
	}
	return order, nil
}

// mergeTarget stages the merged content of target
func (s *Session) mergeTarget(ctx context.Context, target string) error {
	out, isSource := s.files[target]
	if !isSource {
		out = &status.FileOutcome{Name: target, Role: status.RoleTarget}
	}

	var baseline []byte
	var err error
	if s.updated.Has(target) {
		baseline, err = s.stage.ReadAll(target)
		s.updated.Remove(target)
		out.Role = status.RoleTargetAndSource
	} else {
		baseline, err = os.ReadFile(filepath.Join(s.rule.Folder, target))
	}
	if err != nil {
		return errors.Errorf("reading target %s: %w", target, err)
	}

	original, err := text.ReadLines(bytes.NewReader(baseline))
	if err != nil {
		return errors.Errorf("reading target %s: %w", target, err)
	}

	fragments := s.buffer.Texts(target)
	merged := text.Join(Merge(s.rule.Insert, original, fragments))

	if err := writeStaged(s.stage, target, merged); err != nil {
		return errors.Errorf("staging target %s: %w", target, err)
	}
	if !isSource {
		s.staged = append(s.staged, target)
	}

	out.Status = status.StatusStaged
	out.Mode = string(s.rule.Insert)
	out.Inserted = fragments
	out.Content = merged
	s.files[target] = out

	zerolog.Ctx(ctx).Debug().
		Str("target", target).
		Str("mode", out.Mode).
		Int("fragments", len(fragments)).
		Msg("merged target")
	return nil
}

// abandon discards the staged content of names. cause is nil when the
// discard follows a phase 1 failure.
func (s *Session) abandon(ctx context.Context, names []string, cause error) {
	logger := zerolog.Ctx(ctx)
	for _, name := range names {
		if err := s.stage.Discard(name); err != nil {
			logger.Warn().Str("file", name).Err(err).Msg("staging file not removed")
		}
		out, ok := s.files[name]
		if !ok {
			continue
		}
		out.Status = status.StatusAbandoned
		if cause != nil {
			out.Err = cause
		}
	}
}
