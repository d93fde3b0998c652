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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/sweeptext/pkg/rule"
)

// ErrInvalidConfig marks a rules file that fails validation
var ErrInvalidConfig = errors.Base("invalid config")

// 🔌 Parser is the interface for rules file parsers
type Parser interface {
	// 📝 Parse parses a rules file from bytes. filename is used in diagnostics.
	Parse(ctx context.Context, data []byte, filename string) (*RulesFile, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📋 RuleConfig is one rule as written in a rules file
type RuleConfig struct {
	Name         string `json:"name" yaml:"name" hcl:"name,label"`
	Action       string `json:"action" yaml:"action" hcl:"action"`
	Pattern      string `json:"pattern" yaml:"pattern" hcl:"pattern"`
	Target       string `json:"target" yaml:"target" hcl:"target"`
	Include      string `json:"include,omitempty" yaml:"include,omitempty" hcl:"include,optional"`
	Exclude      string `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"`
	Insert       string `json:"insert,omitempty" yaml:"insert,omitempty" hcl:"insert,optional"`
	AddLinks     *bool  `json:"add_links,omitempty" yaml:"add_links,omitempty" hcl:"add_links,optional"`
	CleanMatch   *bool  `json:"clean_match,omitempty" yaml:"clean_match,omitempty" hcl:"clean_match,optional"`
	AddHeaders   *bool  `json:"add_headers,omitempty" yaml:"add_headers,omitempty" hcl:"add_headers,optional"`
	LinkFormat   string `json:"link_format,omitempty" yaml:"link_format,omitempty" hcl:"link_format,optional"`
	HeaderFormat string `json:"header_format,omitempty" yaml:"header_format,omitempty" hcl:"header_format,optional"`
}

// 📚 RulesFile is the complete content of a rules file
type RulesFile struct {
	// Folder is resolved against the directory holding the rules file
	Folder string       `json:"folder,omitempty" yaml:"folder,omitempty" hcl:"folder,optional"`
	Rules  []RuleConfig `json:"rules" yaml:"rules" hcl:"rule,block"`

	location string
}

// ValidationError names the rule that failed validation
type ValidationError struct {
	Rule string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("invalid config: %v", e.Err)
	}
	return fmt.Sprintf("invalid config: rule %q: %v", e.Rule, e.Err)
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalidConfig, e.Err}
}

// 🎯 Load loads and validates the rules file at path
func Load(ctx context.Context, path string) (*RulesFile, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading rules file")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading rules file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	rf, err := p.Parse(ctx, data, path)
	if err != nil {
		return nil, errors.Errorf("parsing rules file: %w", err)
	}
	rf.location = path

	if err := rf.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().Str("path", path).Int("rules", len(rf.Rules)).Msg("rules file loaded")
	return rf, nil
}

// Location returns the path the file was loaded from, if any
func (rf *RulesFile) Location() string {
	return rf.location
}

// 🔍 Validate checks every rule by compiling it. Rules without a name are
// named after their position.
func (rf *RulesFile) Validate() error {
	if len(rf.Rules) == 0 {
		return &ValidationError{Err: errors.New("no rules defined")}
	}

	seen := make(map[string]bool, len(rf.Rules))
	for i := range rf.Rules {
		rc := &rf.Rules[i]
		if rc.Name == "" {
			rc.Name = fmt.Sprintf("rule-%d", i+1)
		}
		if seen[rc.Name] {
			return &ValidationError{Rule: rc.Name, Err: errors.New("duplicate rule name")}
		}
		seen[rc.Name] = true

		if _, err := rule.Compile(rc.Spec("", false)); err != nil {
			return &ValidationError{Rule: rc.Name, Err: err}
		}
	}
	return nil
}

// Spec converts the rule into an unresolved rule.Spec for folder
func (rc RuleConfig) Spec(folder string, dryRun bool) rule.Spec {
	return rule.Spec{
		Name:         rc.Name,
		Action:       rule.Action(rc.Action),
		Pattern:      rc.Pattern,
		Target:       rc.Target,
		Include:      rc.Include,
		Exclude:      rc.Exclude,
		AddLinks:     rc.AddLinks,
		CleanMatch:   rc.CleanMatch,
		AddHeaders:   rc.AddHeaders,
		Insert:       rule.InsertMode(rc.Insert),
		LinkFormat:   rc.LinkFormat,
		HeaderFormat: rc.HeaderFormat,
		DryRun:       dryRun,
		Folder:       folder,
	}
}

// ResolveFolder returns override when set, otherwise the file's folder
// resolved against the file's directory, otherwise "."
func (rf *RulesFile) ResolveFolder(override string) string {
	switch {
	case override != "":
		return override
	case rf.Folder == "":
		if rf.location != "" {
			return filepath.Dir(rf.location)
		}
		return "."
	case filepath.IsAbs(rf.Folder) || rf.location == "":
		return filepath.Clean(rf.Folder)
	default:
		return filepath.Join(filepath.Dir(rf.location), rf.Folder)
	}
}

// 📦 Specs returns one rule.Spec per rule, in file order
func (rf *RulesFile) Specs(folderOverride string, dryRun bool) []rule.Spec {
	folder := rf.ResolveFolder(folderOverride)
	specs := make([]rule.Spec, 0, len(rf.Rules))
	for _, rc := range rf.Rules {
		specs = append(specs, rc.Spec(folder, dryRun))
	}
	return specs
}

// 📝 String returns a string representation of the rules file
func (rf *RulesFile) String() string {
	return fmt.Sprintf("%d rules in %s", len(rf.Rules), rf.ResolveFolder(""))
}
