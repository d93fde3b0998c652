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

package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"
)

func TestDefaultFormatter_FormatLine(t *testing.T) {
	f := NewDefaultFormatter()

	tests := []struct {
		name    string
		outcome LineOutcome
		want    string
	}{
		{
			name:    "accepted",
			outcome: LineOutcome{Source: "_inbox.txt", Line: 2, Text: "call bob @work\n", Status: LineAccepted, Target: "work.txt"},
			want:    "➡️  _inbox.txt:2 \"call bob @work\" -> work.txt",
		},
		{
			name:    "target missing",
			outcome: LineOutcome{Source: "a.txt", Line: 1, Text: "x @ghost\r\n", Status: LineTargetMissing, Target: "ghost.txt"},
			want:    "⏭️  a.txt:1 \"x @ghost\" -> ghost.txt (target missing)",
		},
		{
			name:    "unmatched",
			outcome: LineOutcome{Source: "a.txt", Line: 3, Text: "plain", Status: LineUnmatched},
			want:    "   a.txt:3 \"plain\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatLine(tt.outcome))
		})
	}
}

func TestDefaultFormatter_FormatFile(t *testing.T) {
	f := NewDefaultFormatter()

	tests := []struct {
		name    string
		outcome *FileOutcome
		want    string
	}{
		{
			name:    "committed target",
			outcome: &FileOutcome{Name: "work.txt", Role: RoleTarget, Status: StatusCommitted, Mode: "afterblank", Inserted: []string{"call bob\n"}},
			want:    "📝 Updated target work.txt (+1 line, afterblank)",
		},
		{
			name:    "dry run source",
			outcome: &FileOutcome{Name: "_inbox.txt", Role: RoleSource, Status: StatusSkipped, Removed: 2},
			want:    "👀 Would update source _inbox.txt (-2 lines)",
		},
		{
			name:    "failed",
			outcome: &FileOutcome{Name: "work.txt", Role: RoleTargetAndSource, Status: StatusFailed},
			want:    "❌ Failed target+source work.txt",
		},
		{
			name:    "abandoned",
			outcome: &FileOutcome{Name: "b.txt", Role: RoleSource, Status: StatusAbandoned, Removed: 1},
			want:    "🗑️  Abandoned source b.txt (-1 line)",
		},
		{
			name:    "staged",
			outcome: &FileOutcome{Name: "c.txt", Role: RoleTarget, Status: StatusStaged, Mode: "top", Inserted: []string{"a\n", "b\n"}},
			want:    "⏳ Staged target c.txt (+2 lines, top)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatFile(tt.outcome))
		})
	}
}

func TestDefaultFormatter_FormatSummary(t *testing.T) {
	f := NewDefaultFormatter()

	r := &Report{Sources: []string{"_inbox.txt"}}
	r.AddLine(LineOutcome{Status: LineAccepted})
	r.AddLine(LineOutcome{Status: LineTargetMissing})
	r.AddFile(FileOutcome{Name: "work.txt", Status: StatusCommitted})
	r.AddFile(FileOutcome{Name: "_inbox.txt", Status: StatusCommitted})

	assert.Equal(t, "✅ 1 file scanned, 2 matched, 1 placed, 1 skipped (missing target), 2 files committed", f.FormatSummary(r))

	r.DryRun = true
	for _, o := range r.Files {
		o.Status = StatusSkipped
	}
	assert.Equal(t, "✅ 1 file scanned, 2 matched, 1 placed, 1 skipped (missing target), 2 files would change", f.FormatSummary(r))
}

func TestDefaultFormatter_FormatError(t *testing.T) {
	f := NewDefaultFormatter()
	assert.Equal(t, "", f.FormatError(nil))
	assert.Equal(t, "❌ Error: boom", f.FormatError(errors.Base("boom")))
}
