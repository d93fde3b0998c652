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
Package sweep runs one compiled rule over a folder.

🏃 Pipeline:

	Selector ──► scan (Resolver, Buffer, survivors) ──► merge ──► commit
	                         phase 1                         phase 2

🎯 Purpose:
  - Classify every line of every selected source against the rule
  - Buffer accepted lines per target in discovery order
  - Stage the survivors of every source that lost a line (move only)
  - Merge each target's buffer with its baseline under the insertion mode
  - Hand staged files to the committer, targets first, then the remaining sources

🔒 Guarantees:
  - Phase 1 touches no live file
  - A target that is also a rewritten source sees post-removal content and is
    committed once
  - Dry runs stage in memory and never commit

📝 State:
The negative target cache, the insertion buffer, the updated source set and the
last source that emitted a header all live on one Session and die with it.
*/
package sweep
