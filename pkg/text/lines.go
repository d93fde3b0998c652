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

// Package text holds the line-level helpers shared by the scanner and the
// merger. A "line" always carries its own ending ("\n", "\r\n" or none for a
// final unterminated line) so content can be rebuilt byte for byte.
package text

import (
	"bufio"
	"io"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📖 ReadLines splits r into lines, keeping each line ending intact
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, errors.Errorf("reading line %d: %w", len(lines)+1, err)
		}
	}
}

// EOL returns the line ending carried by line
func EOL(line string) string {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return "\r\n"
	case strings.HasSuffix(line, "\n"):
		return "\n"
	default:
		return ""
	}
}

// TrimEOL returns line without its line ending
func TrimEOL(line string) string {
	return line[:len(line)-len(EOL(line))]
}

// IsBlank reports whether line is empty once its line ending is removed
func IsBlank(line string) bool {
	return TrimEOL(line) == ""
}

// EnsureEOL terminates line with "\n" if it has no line ending
func EnsureEOL(line string) string {
	if EOL(line) == "" {
		return line + "\n"
	}
	return line
}

// 🔗 AppendMarker places marker at the end of the line text, before the
// line ending, separated by a single space
func AppendMarker(line, marker string) string {
	return TrimEOL(line) + " " + marker + EOL(line)
}

// ✂️ RemoveFirst drops the first literal occurrence of s from line. The
// removal is textual: if s also appears before the span that produced it,
// that earlier occurrence is the one removed.
func RemoveFirst(line, s string) (string, bool) {
	if s == "" {
		return line, false
	}
	idx := strings.Index(line, s)
	if idx < 0 {
		return line, false
	}
	return line[:idx] + line[idx+len(s):], true
}

// Join concatenates lines back into file content
func Join(lines []string) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
	}
	return sb.String()
}
