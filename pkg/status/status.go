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

// 📊 LineStatus classifies a scanned line
type LineStatus int

const (
	LineUnmatched     LineStatus = iota // pattern did not match
	LineAccepted                        // matched and buffered for an existing target
	LineTargetMissing                   // matched but the resolved target does not exist
)

// String returns a string representation of LineStatus
func (s LineStatus) String() string {
	switch s {
	case LineUnmatched:
		return "unmatched"
	case LineAccepted:
		return "accepted"
	case LineTargetMissing:
		return "target missing"
	default:
		return "unknown"
	}
}

// LineOutcome is the classification of one source line
type LineOutcome struct {
	Source string     // source file name
	Line   int        // 1-based line number
	Text   string     // line as read, including its line ending
	Status LineStatus // classification
	Target string     // resolved target identity, empty when unmatched
	Err    error      // set for LineTargetMissing
}

// Matched reports whether the pattern matched the line
func (o LineOutcome) Matched() bool {
	return o.Status != LineUnmatched
}

// 📁 FileRole tells whether a staged file is a target, a source, or both
type FileRole int

const (
	RoleTarget FileRole = iota
	RoleSource
	RoleTargetAndSource
)

// String returns a string representation of FileRole
func (r FileRole) String() string {
	switch r {
	case RoleTarget:
		return "target"
	case RoleSource:
		return "source"
	case RoleTargetAndSource:
		return "target+source"
	default:
		return "unknown"
	}
}

// FileStatus is how far a staged file got
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusStaged               // content computed, not yet live
	StatusCommitted            // swapped in with backup rotation
	StatusSkipped              // dry run, never committed
	StatusFailed               // commit failed
	StatusAbandoned            // staging discarded after an earlier failure
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusStaged:
		return "staged"
	case StatusCommitted:
		return "committed"
	case StatusSkipped:
		return "dry run"
	case StatusFailed:
		return "failed"
	case StatusAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// 📄 FileOutcome describes one staged file
type FileOutcome struct {
	Name     string
	Role     FileRole
	Status   FileStatus
	Mode     string   // insertion mode, targets only
	Inserted []string // rendered fragments inserted, in order
	Removed  int      // lines removed from a source
	Content  string   // staged content
	Err      error
}

// 📋 Report is the result of one sweep
type Report struct {
	Rule    string
	Folder  string
	DryRun  bool
	Sources []string
	Lines   []LineOutcome
	Files   []*FileOutcome
}

// AddLine records a line outcome
func (r *Report) AddLine(o LineOutcome) {
	r.Lines = append(r.Lines, o)
}

// AddFile records a staged file, returning the stored outcome for later updates
func (r *Report) AddFile(o FileOutcome) *FileOutcome {
	f := &o
	r.Files = append(r.Files, f)
	return f
}

// File returns the outcome recorded for name, or nil
func (r *Report) File(name string) *FileOutcome {
	for _, f := range r.Files {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Count returns the number of lines with status s
func (r *Report) Count(s LineStatus) int {
	n := 0
	for _, l := range r.Lines {
		if l.Status == s {
			n++
		}
	}
	return n
}

// Matched returns the number of lines the pattern matched
func (r *Report) Matched() int {
	return r.Count(LineAccepted) + r.Count(LineTargetMissing)
}

// Committed returns the number of files swapped in
func (r *Report) Committed() int {
	n := 0
	for _, f := range r.Files {
		if f.Status == StatusCommitted {
			n++
		}
	}
	return n
}
