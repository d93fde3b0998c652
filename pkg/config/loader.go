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
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gitlab.com/tozd/go/errors"
)

// ErrNoRulesFile is returned when no default rules file exists
var ErrNoRulesFile = errors.Base("no rules file found")

// AppName names the per-user config directory
const AppName = "sweeptext"

// Extensions are tried in this order when looking for a rules file
var Extensions = []string{".yaml", ".yml", ".hcl", ".json"}

// 🔍 DefaultCandidates lists, in lookup order, where a rules file for folder
// may live: folder/.sweeptext.* first, then the user's config directory
func DefaultCandidates(folder string) []string {
	var out []string
	for _, ext := range Extensions {
		out = append(out, filepath.Join(folder, "."+AppName+ext))
	}
	for _, ext := range Extensions {
		out = append(out, filepath.Join(xdg.ConfigHome, AppName, "rules"+ext))
	}
	return out
}

// 🎯 FindDefault returns the first existing default rules file for folder
func FindDefault(folder string) (string, error) {
	candidates := DefaultCandidates(folder)
	for _, path := range candidates {
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", errors.Errorf("looked in %s and %s: %w", folder, filepath.Join(xdg.ConfigHome, AppName), ErrNoRulesFile)
}
