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

package commit

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrCommitFailure is the kind of every error raised while swapping a staged
// file into place. Files committed before the failure stay committed.
var ErrCommitFailure = errors.Base("commit failure")

// Step identifies one rename of the rotation protocol
type Step int

const (
	StepShiftSecond Step = iota + 1 // F.swtxt~2 -> F.swtxt~3
	StepShiftFirst                  // F.swtxt~1 -> F.swtxt~2
	StepBackupLive                  // F -> F.swtxt~1
	StepPromote                     // F.swtxttmp -> F
)

func (s Step) String() string {
	switch s {
	case StepShiftSecond:
		return "shift second backup"
	case StepShiftFirst:
		return "shift first backup"
	case StepBackupLive:
		return "back up live file"
	case StepPromote:
		return "promote staged file"
	default:
		return "unknown step"
	}
}

// CommitError reports the step of the rotation that failed
type CommitError struct {
	Name string
	Step Step
	Err  error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("committing %s: %s: %v", e.Name, e.Step, e.Err)
}

func (e *CommitError) Unwrap() []error {
	return []error{ErrCommitFailure, e.Err}
}

// 🔄 Committer applies the backup-rotating swap to files in one folder
type Committer struct {
	dir string
	fs  FS
}

// NewCommitter creates a committer for dir. A nil fsys uses the local
// filesystem.
func NewCommitter(dir string, fsys FS) *Committer {
	if fsys == nil {
		fsys = OSFS{}
	}
	return &Committer{
		dir: filepath.Clean(dir),
		fs:  fsys,
	}
}

// Commit makes the staged content of name live:
//
//  1. F.swtxt~2 (if any) replaces F.swtxt~3
//  2. F.swtxt~1 (if any) becomes F.swtxt~2
//  3. F becomes F.swtxt~1
//  4. F.swtxttmp becomes F
//
// It stops at the first failing step and does not retry.
func (c *Committer) Commit(ctx context.Context, name string) error {
	logger := zerolog.Ctx(ctx)
	live := filepath.Join(c.dir, name)

	for gen := Generations - 1; gen >= 1; gen-- {
		step := StepShiftFirst
		if gen == 2 {
			step = StepShiftSecond
		}
		from := filepath.Join(c.dir, BackupName(name, gen))
		exists, err := c.fs.Exists(from)
		if err != nil {
			return &CommitError{Name: name, Step: step, Err: err}
		}
		if !exists {
			continue
		}
		if err := c.fs.Replace(from, filepath.Join(c.dir, BackupName(name, gen+1))); err != nil {
			return &CommitError{Name: name, Step: step, Err: err}
		}
	}

	if err := c.fs.Replace(live, filepath.Join(c.dir, BackupName(name, 1))); err != nil {
		return &CommitError{Name: name, Step: StepBackupLive, Err: err}
	}

	if err := c.fs.Replace(filepath.Join(c.dir, StagingName(name)), live); err != nil {
		logger.Error().Str("file", name).Err(err).Msg("staged file not promoted, previous content kept in first backup")
		return &CommitError{Name: name, Step: StepPromote, Err: err}
	}

	logger.Debug().Str("file", name).Msg("committed")
	return nil
}
