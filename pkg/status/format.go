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
	"fmt"
	"strings"
)

// Formatter defines how outcomes are rendered as text
type Formatter interface {
	// FormatLine formats a line outcome
	FormatLine(o LineOutcome) string

	// FormatFile formats a file outcome
	FormatFile(o *FileOutcome) string

	// FormatSummary formats the totals of a report
	FormatSummary(r *Report) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatLine formats a line outcome with emojis
func (f *DefaultFormatter) FormatLine(o LineOutcome) string {
	text := strings.TrimRight(o.Text, "\r\n")
	switch o.Status {
	case LineAccepted:
		return fmt.Sprintf("➡️  %s:%d %q -> %s", o.Source, o.Line, text, o.Target)
	case LineTargetMissing:
		return fmt.Sprintf("⏭️  %s:%d %q -> %s (target missing)", o.Source, o.Line, text, o.Target)
	default:
		return fmt.Sprintf("   %s:%d %q", o.Source, o.Line, text)
	}
}

// FormatFile formats a file outcome with emojis
func (f *DefaultFormatter) FormatFile(o *FileOutcome) string {
	var detail []string
	if n := len(o.Inserted); n > 0 {
		detail = append(detail, fmt.Sprintf("+%d %s", n, plural(n, "line")))
	}
	if o.Removed > 0 {
		detail = append(detail, fmt.Sprintf("-%d %s", o.Removed, plural(o.Removed, "line")))
	}
	if o.Mode != "" {
		detail = append(detail, o.Mode)
	}
	suffix := ""
	if len(detail) > 0 {
		suffix = " (" + strings.Join(detail, ", ") + ")"
	}

	switch o.Status {
	case StatusCommitted:
		return fmt.Sprintf("📝 Updated %s %s%s", o.Role, o.Name, suffix)
	case StatusSkipped:
		return fmt.Sprintf("👀 Would update %s %s%s", o.Role, o.Name, suffix)
	case StatusFailed:
		return fmt.Sprintf("❌ Failed %s %s%s", o.Role, o.Name, suffix)
	case StatusAbandoned:
		return fmt.Sprintf("🗑️  Abandoned %s %s%s", o.Role, o.Name, suffix)
	default:
		return fmt.Sprintf("⏳ Staged %s %s%s", o.Role, o.Name, suffix)
	}
}

// FormatSummary formats the totals of a report
func (f *DefaultFormatter) FormatSummary(r *Report) string {
	verb := "committed"
	if r.DryRun {
		verb = "would change"
	}
	files := len(r.Files)
	if !r.DryRun {
		files = r.Committed()
	}
	return fmt.Sprintf("✅ %d %s scanned, %d matched, %d placed, %d skipped (missing target), %d %s %s",
		len(r.Sources), plural(len(r.Sources), "file"),
		r.Matched(), r.Count(LineAccepted), r.Count(LineTargetMissing),
		files, plural(files, "file"), verb)
}

// FormatError formats an error message with emoji
func (f *DefaultFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
