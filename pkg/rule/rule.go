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
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/walteh/sweeptext/pkg/source"
	"gitlab.com/tozd/go/errors"
)

// 🎬 Action is what happens to a matched line
type Action string

const (
	// ActionMove removes matched lines from their source and inserts them into the target
	ActionMove Action = "move"
	// ActionCopy inserts matched lines into the target and leaves the source alone
	ActionCopy Action = "copy"
)

// ParseAction accepts the action names and their aliases (refile, collect)
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "move", "refile":
		return ActionMove, nil
	case "copy", "collect":
		return ActionCopy, nil
	default:
		return "", errors.Errorf("unknown action %q (want move, refile, copy or collect)", s)
	}
}

// 📍 InsertMode decides where buffered lines land in a target
type InsertMode string

const (
	InsertTop        InsertMode = "top"
	InsertAppend     InsertMode = "append"
	InsertOverwrite  InsertMode = "overwrite"
	InsertAfterBlank InsertMode = "afterblank"
)

// ParseInsertMode validates an insertion mode name
func ParseInsertMode(s string) (InsertMode, error) {
	switch m := InsertMode(strings.ToLower(strings.TrimSpace(s))); m {
	case InsertTop, InsertAppend, InsertOverwrite, InsertAfterBlank:
		return m, nil
	default:
		return "", errors.Errorf("unknown insert mode %q (want top, append, overwrite or afterblank)", s)
	}
}

// Options toggles the per-line rewrites applied to accepted lines
type Options struct {
	AddLinks   bool // append a link marker naming the source file
	CleanMatch bool // remove the matched text from the line
	AddHeaders bool // insert a header line when the source file changes
}

const (
	// DefaultInclude is used when a spec names no source files
	DefaultInclude = "*.txt"
	// DefaultMarkerFormat renders link and header markers
	DefaultMarkerFormat = "[{source}]"

	sourcePlaceholder = "{source}"
)

// 📋 Spec is an unresolved rule as produced by the CLI or a rules file.
// Nil option pointers and empty strings fall back to the per-action defaults.
type Spec struct {
	Name    string
	Action  Action
	Pattern string
	Target  string
	Include string
	Exclude string

	AddLinks   *bool
	CleanMatch *bool
	AddHeaders *bool
	Insert     InsertMode

	LinkFormat   string
	HeaderFormat string

	DryRun bool
	Folder string
}

// DefaultOptions returns the options and insertion mode an action implies
func DefaultOptions(action Action) (Options, InsertMode) {
	if action == ActionCopy {
		return Options{AddHeaders: true}, InsertOverwrite
	}
	return Options{CleanMatch: true}, InsertAfterBlank
}

// 🎯 Rule is a compiled, read-only rule
type Rule struct {
	Name    string
	Action  Action
	Pattern string
	Target  string
	Include *source.Spec
	Exclude *source.Spec // nil when no exclude spec was given
	Options Options
	Insert  InsertMode
	DryRun  bool
	Folder  string

	linkFormat   string
	headerFormat string
	matcher      *regexp.Regexp
	targetNames  []string
}

// Matcher returns the compiled expression built from the pattern template
func (r *Rule) Matcher() *regexp.Regexp {
	return r.matcher
}

// Placeholders returns the capture names referenced by the target template
func (r *Rule) Placeholders() []string {
	return append([]string(nil), r.targetNames...)
}

// Selector returns the source selector for the rule's include/exclude specs
func (r *Rule) Selector() source.Selector {
	return source.Selector{Include: r.Include, Exclude: r.Exclude}
}

// LinkMarker renders the back-reference appended to lines from sourceName
func (r *Rule) LinkMarker(sourceName string) string {
	return renderMarker(r.linkFormat, sourceName)
}

// HeaderMarker renders the header line text introducing lines from sourceName
func (r *Rule) HeaderMarker(sourceName string) string {
	return renderMarker(r.headerFormat, sourceName)
}

func renderMarker(format, sourceName string) string {
	stem := strings.TrimSuffix(sourceName, filepath.Ext(sourceName))
	return strings.ReplaceAll(format, sourcePlaceholder, stem)
}

// String returns a one-line description of the rule
func (r *Rule) String() string {
	s := fmt.Sprintf("%s %q from %s -> %s", r.Action, r.Pattern, r.Include, r.Target)
	if r.Exclude != nil {
		s += fmt.Sprintf(" (exclude %s)", r.Exclude)
	}
	return s
}
