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
	"path/filepath"
	"regexp"

	"github.com/walteh/sweeptext/pkg/source"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrInvalidPatternSyntax is returned when the expanded pattern is not a valid expression
	ErrInvalidPatternSyntax = errors.Base("invalid pattern syntax")

	// ErrUndefinedPlaceholder is returned when the target template names a
	// placeholder the pattern does not capture
	ErrUndefinedPlaceholder = errors.Base("undefined placeholder")
)

// placeholderRe finds {name} placeholders. Names start with a letter so that
// repetition counts like {3} or {2,5} are left alone.
var placeholderRe = regexp.MustCompile(`\{([A-Za-z]\w*)\}`)

// ExpandPattern rewrites every {name} in pattern into a non-greedy named
// capture bounded by a word boundary
func ExpandPattern(pattern string) string {
	return placeholderRe.ReplaceAllString(pattern, `(?P<${1}>.*?)\b`)
}

// 🏗️ Compile resolves spec against the per-action defaults and compiles its
// templates. It fails before any file is touched.
func Compile(spec Spec) (*Rule, error) {
	if spec.Action == "" {
		return nil, errors.Errorf("action is required")
	}
	action, err := ParseAction(string(spec.Action))
	if err != nil {
		return nil, err
	}
	if spec.Pattern == "" {
		return nil, errors.Errorf("pattern is required")
	}
	if spec.Target == "" {
		return nil, errors.Errorf("target is required")
	}

	matcher, err := compileMatcher(spec.Pattern)
	if err != nil {
		return nil, err
	}

	targetNames, err := checkTarget(spec.Target, matcher)
	if err != nil {
		return nil, err
	}

	include := spec.Include
	if include == "" {
		include = DefaultInclude
	}
	includeSpec, err := source.ParseSpec(include)
	if err != nil {
		return nil, errors.Errorf("parsing include spec: %w", err)
	}

	var excludeSpec *source.Spec
	if spec.Exclude != "" {
		excludeSpec, err = source.ParseSpec(spec.Exclude)
		if err != nil {
			return nil, errors.Errorf("parsing exclude spec: %w", err)
		}
	}

	opts, insert := DefaultOptions(action)
	if spec.AddLinks != nil {
		opts.AddLinks = *spec.AddLinks
	}
	if spec.CleanMatch != nil {
		opts.CleanMatch = *spec.CleanMatch
	}
	if spec.AddHeaders != nil {
		opts.AddHeaders = *spec.AddHeaders
	}
	if spec.Insert != "" {
		insert, err = ParseInsertMode(string(spec.Insert))
		if err != nil {
			return nil, err
		}
	}

	folder := spec.Folder
	if folder == "" {
		folder = "."
	}

	return &Rule{
		Name:         spec.Name,
		Action:       action,
		Pattern:      spec.Pattern,
		Target:       spec.Target,
		Include:      includeSpec,
		Exclude:      excludeSpec,
		Options:      opts,
		Insert:       insert,
		DryRun:       spec.DryRun,
		Folder:       filepath.Clean(folder),
		linkFormat:   orDefault(spec.LinkFormat, DefaultMarkerFormat),
		headerFormat: orDefault(spec.HeaderFormat, DefaultMarkerFormat),
		matcher:      matcher,
		targetNames:  targetNames,
	}, nil
}

func compileMatcher(pattern string) (*regexp.Regexp, error) {
	expanded := ExpandPattern(pattern)
	matcher, err := regexp.Compile(expanded)
	if err != nil {
		return nil, errors.Errorf("%w: %q: %s", ErrInvalidPatternSyntax, pattern, err.Error())
	}

	seen := make(map[string]bool)
	for _, name := range matcher.SubexpNames() {
		if name == "" {
			continue
		}
		if seen[name] {
			return nil, errors.Errorf("%w: %q: capture %q defined more than once", ErrInvalidPatternSyntax, pattern, name)
		}
		seen[name] = true
	}

	return matcher, nil
}

// checkTarget returns the placeholder names in the target template, failing on
// any the matcher does not capture
func checkTarget(target string, matcher *regexp.Regexp) ([]string, error) {
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(target, -1) {
		name := m[1]
		if matcher.SubexpIndex(name) < 0 {
			return nil, errors.Errorf("%w: {%s} in target %q is not captured by the pattern", ErrUndefinedPlaceholder, name, target)
		}
		names = append(names, name)
	}
	return names, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
