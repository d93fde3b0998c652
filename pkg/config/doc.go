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

/*
Package config loads rules files.

🎯 Purpose:
  - Parse a rules file written in YAML, HCL or JSON
  - Validate every rule before anything runs
  - Turn the rules into rule.Spec values for the sweep engine
  - Find the default rules file for a folder

🔄 Flow:
 1. FindDefault (or an explicit path) picks the file
 2. Load reads it and hands it to the parser registered for its extension
 3. Validate compiles every rule and reports the first bad one
 4. Specs resolves the folder and returns one rule.Spec per rule, in file order

📝 Formats:

	# .sweeptext.yaml
	folder: notes
	rules:
	  - name: inbox
	    action: move
	    pattern: '^\[{tag}\] '
	    target: '{tag}.txt'
	    include: _inbox.txt

	# .sweeptext.hcl
	folder = "${home}/notes"

	rule "inbox" {
	  action  = "move"
	  pattern = "^\\[{tag}\\] "
	  target  = "{tag}.txt"
	}
*/
package config
